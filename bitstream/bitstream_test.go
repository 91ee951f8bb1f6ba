package bitstream

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPutGetInt(t *testing.T) {
	vals := []struct {
		x uint64
		w uint
	}{
		{0, 1}, {1, 1}, {127, 7}, {128, 8}, {1<<32 - 1, 32}, {1<<64 - 1, 64},
	}
	buf := NewBitBuffer()
	sink := NewBitSink(buf)
	for _, v := range vals {
		sink.PutInt(v.x, v.w)
	}
	src := NewBitSource(buf)
	for _, v := range vals {
		got := src.GetInt(v.w)
		if got != v.x {
			t.Fatalf("GetInt(%d) = %d, want %d", v.w, got, v.x)
		}
	}
	if src.Tell() != sink.Tell() {
		t.Fatalf("cursor mismatch: read %d, wrote %d", src.Tell(), sink.Tell())
	}
}

func TestUnary(t *testing.T) {
	xs := []int{0, 1, 7, 63, 64, 65, 200, 1000}
	buf := NewBitBuffer()
	sink := NewBitSink(buf)
	for _, x := range xs {
		sink.PutUnary(x)
	}
	src := NewBitSource(buf)
	var got []int
	for range xs {
		got = append(got, src.GetUnary())
	}
	if diff := cmp.Diff(xs, got); diff != "" {
		t.Fatalf("unary round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGamma(t *testing.T) {
	xs := []uint64{1, 2, 3, 4, 5, 1000, 1 << 20, 1<<40 + 7}
	buf := NewBitBuffer()
	sink := NewBitSink(buf)
	for _, x := range xs {
		sink.PutGamma(x)
	}
	src := NewBitSource(buf)
	for i, x := range xs {
		if got := src.GetGamma(); got != x {
			t.Fatalf("GetGamma[%d] = %d, want %d", i, got, x)
		}
	}
}

func TestMinBin(t *testing.T) {
	u := uint64(20)
	xs := []uint64{1, 2, 7, 13, 19, 20}
	buf := NewBitBuffer()
	sink := NewBitSink(buf)
	for _, x := range xs {
		sink.PutMinBin(x, u)
	}
	src := NewBitSource(buf)
	for i, x := range xs {
		if got := src.GetMinBin(u); got != x {
			t.Fatalf("GetMinBin[%d] = %d, want %d", i, got, x)
		}
	}
}

func TestAlignAndSkip(t *testing.T) {
	buf := NewBitBuffer()
	sink := NewBitSink(buf)
	sink.PutInt(5, 3)
	sink.Align8()
	if sink.Tell() != 8 {
		t.Fatalf("Align8 landed at %d, want 8", sink.Tell())
	}
	sink.Skip(64)
	sink.PutInt(0xABCD, 16)
	sink.Align64()
	if sink.Tell()%64 != 0 {
		t.Fatalf("Align64 left unaligned position %d", sink.Tell())
	}

	src := NewBitSource(buf)
	if got := src.GetInt(3); got != 5 {
		t.Fatalf("GetInt(3) = %d, want 5", got)
	}
	src.Align8()
	src.Skip(64)
	if got := src.GetInt(16); got != 0xABCD {
		t.Fatalf("GetInt(16) = %#x, want 0xABCD", got)
	}
}

func TestSeekPatchUp(t *testing.T) {
	buf := NewBitBuffer()
	sink := NewBitSink(buf)
	lenPos := sink.Tell()
	sink.PutInt(0, 32) // placeholder length prefix
	payloadStart := sink.Tell()
	sink.PutInt(0xDEADBEEF, 32)
	sink.PutInt(0x12345678, 32)
	payloadLen := sink.Tell() - payloadStart
	end := sink.Tell()
	sink.Seek(lenPos)
	sink.PutInt(uint64(payloadLen), 32)
	sink.Seek(end) // restore append position

	src := NewBitSource(buf)
	gotLen := src.GetInt(32)
	if gotLen != uint64(payloadLen) {
		t.Fatalf("patched length = %d, want %d", gotLen, payloadLen)
	}
	if got := src.GetInt(32); got != 0xDEADBEEF {
		t.Fatalf("payload[0] = %#x, want 0xDEADBEEF", got)
	}
	if got := src.GetInt(32); got != 0x12345678 {
		t.Fatalf("payload[1] = %#x, want 0x12345678", got)
	}
}

func TestGrowthPreservesData(t *testing.T) {
	buf := NewBitBuffer()
	sink := NewBitSink(buf)
	const n = 2_000_000 // forces at least one doubling past the 1M-bit floor
	for i := 0; i < n; i++ {
		sink.PutBit(i%7 == 0)
	}
	src := NewBitSource(buf)
	for i := 0; i < n; i++ {
		want := i%7 == 0
		if got := src.GetBit(); got != want {
			t.Fatalf("bit %d = %v, want %v", i, got, want)
		}
	}
}
