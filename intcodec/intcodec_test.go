package intcodec

import (
	"testing"

	"github.com/dsnet/invidx/bitstream"
	"github.com/google/go-cmp/cmp"
)

func roundTrip(t *testing.T, name string, c Codec, src []uint64) {
	t.Helper()
	buf := bitstream.NewBitBuffer()
	sink := bitstream.NewBitSink(buf)
	c.Encode(sink, src)
	encodeEnd := sink.Tell()

	source := bitstream.NewBitSource(buf)
	dst := make([]uint64, len(src))
	c.Decode(source, dst)

	if diff := cmp.Diff(src, dst); diff != "" {
		t.Fatalf("%s round-trip mismatch (-want +got):\n%s", name, diff)
	}
	if source.Tell() != encodeEnd {
		t.Fatalf("%s cursor mismatch: encode ended at %d, decode ended at %d", name, encodeEnd, source.Tell())
	}
}

func TestVByteEdges(t *testing.T) {
	vals := []uint64{0, 127, 128, 16383, 16384, 1<<32 - 1}
	wantLens := []int{1, 1, 2, 2, 3, 5}

	for i, v := range vals {
		buf := bitstream.NewBitBuffer()
		sink := bitstream.NewBitSink(buf)
		putVByte(sink, v)
		if gotBits := sink.Tell(); gotBits != wantLens[i]*8 {
			t.Errorf("vbyte(%d) length = %d bits, want %d bytes", v, gotBits, wantLens[i])
		}
	}

	// Encoding of 0 is the single byte 0x80.
	buf := bitstream.NewBitBuffer()
	sink := bitstream.NewBitSink(buf)
	putVByte(sink, 0)
	source := bitstream.NewBitSource(buf)
	if got := source.GetInt(8); got != 0x80 {
		t.Fatalf("vbyte(0) = %#x, want 0x80", got)
	}

	roundTrip(t, "vbyte", VByte{}, vals)
}

func TestVByteFastPForRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, 2, 300, 70000, 1, 1, 999999}
	roundTrip(t, "vbyte_fastpfor", VByteFastPFor{}, vals)
}

func TestSimple16RoundTrip(t *testing.T) {
	vals := make([]uint64, 0, 200)
	for i := 0; i < 200; i++ {
		vals = append(vals, uint64(i%17))
	}
	roundTrip(t, "simple16", Simple16{}, vals)
}

func TestOp4RoundTrip(t *testing.T) {
	vals := make([]uint64, 0, 300)
	for i := 0; i < 300; i++ {
		v := uint64(i * 7 % 5000)
		if i == 50 {
			v = 1 << 20 // force an exception
		}
		vals = append(vals, v)
	}
	roundTrip(t, "op4", Op4{}, vals)
}

func TestFixedRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, 2, 3, 4, 5, 6, 7}
	roundTrip(t, "fixed3", Fixed{Width: 3}, vals)
}

func TestAlignedFixedRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, 1000, 70000, 1 << 31}
	roundTrip(t, "u32", AlignedFixed{Size: 4}, vals)
}

func TestQMXRoundTrip(t *testing.T) {
	vals := make([]uint64, 0, 260)
	for i := 0; i < 260; i++ {
		vals = append(vals, uint64(i*i%4096))
	}
	roundTrip(t, "qmx", QMX{}, vals)
}

func TestEliasFanoLiteral(t *testing.T) {
	// Spec section 8, scenario 3.
	src := []uint64{2, 7, 13, 19}
	u := uint64(20)

	if got := efLowWidth(len(src), u); got != 2 {
		t.Fatalf("efLowWidth = %d, want 2", got)
	}

	buf := bitstream.NewBitBuffer()
	sink := bitstream.NewBitSink(buf)
	EliasFano{}.Encode(sink, src, u)

	source := bitstream.NewBitSource(buf)
	dst := make([]uint64, len(src))
	EliasFano{}.Decode(source, dst, u)
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Fatalf("elias-fano literal round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEliasFanoRoundTrip(t *testing.T) {
	src := []uint64{1, 4, 9, 15, 22, 30, 31, 63, 64, 100}
	u := uint64(100)
	buf := bitstream.NewBitBuffer()
	sink := bitstream.NewBitSink(buf)
	EliasFano{}.Encode(sink, src, u)
	source := bitstream.NewBitSource(buf)
	dst := make([]uint64, len(src))
	EliasFano{}.Decode(source, dst, u)
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Fatalf("elias-fano round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpolativeLiteral(t *testing.T) {
	// Spec section 8, scenario 2.
	src := []uint64{3, 8, 9, 11, 12, 13, 17}
	u := uint64(20)

	buf := bitstream.NewBitBuffer()
	sink := bitstream.NewBitSink(buf)
	Interpolative{}.Encode(sink, src, u)
	encodeEnd := sink.Tell()

	source := bitstream.NewBitSource(buf)
	dst := make([]uint64, len(src))
	Interpolative{}.Decode(source, dst, u)
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Fatalf("interpolative literal round-trip mismatch (-want +got):\n%s", diff)
	}
	if source.Tell() != encodeEnd {
		t.Fatalf("interpolative cursor mismatch: encode ended at %d, decode ended at %d", encodeEnd, source.Tell())
	}
}

func TestInterpolativeRoundTrip(t *testing.T) {
	src := []uint64{1, 2, 3, 4, 5, 10, 50, 99, 100}
	u := uint64(100)
	buf := bitstream.NewBitBuffer()
	sink := bitstream.NewBitSink(buf)
	Interpolative{}.Encode(sink, src, u)
	source := bitstream.NewBitSource(buf)
	dst := make([]uint64, len(src))
	Interpolative{}.Decode(source, dst, u)
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Fatalf("interpolative round-trip mismatch (-want +got):\n%s", diff)
	}
}
