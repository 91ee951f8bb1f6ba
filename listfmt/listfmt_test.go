package listfmt

import (
	"testing"

	"github.com/dsnet/invidx/bitstream"
	"github.com/dsnet/invidx/bytecodec"
	"github.com/google/go-cmp/cmp"
)

func roundTrip(t *testing.T, name string, f ListFormat, vals []uint64, u uint64) {
	t.Helper()
	buf := bitstream.NewBitBuffer()
	sink := bitstream.NewBitSink(buf)
	f.Encode(sink, vals, u)

	source := bitstream.NewBitSource(buf)
	dst := make([]uint64, len(vals))
	f.Decode(source, dst, u)

	if diff := cmp.Diff(vals, dst); diff != "" {
		t.Fatalf("%s round-trip mismatch (-want +got):\n%s", name, diff)
	}
}

func monotone(n int) []uint64 {
	vals := make([]uint64, n)
	var v uint64
	for i := range vals {
		v += uint64(1 + i%7)
		vals[i] = v
	}
	return vals
}

func TestDocFormatsRoundTrip(t *testing.T) {
	vals := monotone(50)
	u := vals[len(vals)-1]
	for name, f := range DocFormats() {
		roundTrip(t, name, f, vals, u)
	}
}

func TestFreqFormatsRoundTrip(t *testing.T) {
	freqs := make([]uint64, 40)
	var sum uint64
	for i := range freqs {
		freqs[i] = uint64(1 + i%5)
		sum += freqs[i]
	}
	for name, f := range FreqFormats() {
		roundTrip(t, name, f, freqs, sum)
	}
}

func TestInterpBlockRoundTrip(t *testing.T) {
	vals := monotone(300)
	f := InterpBlock{BlockSize: 32}
	roundTrip(t, "interp_block", f, vals, vals[len(vals)-1])
}

func TestCascadeShortList(t *testing.T) {
	vals := monotone(4)
	f := VByteLZ(128, bytecodec.Zlib{}, DGap)
	roundTrip(t, "vbyte_lz/short", f, vals, vals[len(vals)-1])
}

func TestCascadeLongList(t *testing.T) {
	vals := monotone(2000)
	f := S16LZ(128, bytecodec.Zlib{}, DGap)
	roundTrip(t, "s16_lz/long", f, vals, vals[len(vals)-1])
}

func TestCascadeU32LongList(t *testing.T) {
	vals := monotone(1000)
	f := U32LZ(64, bytecodec.Zstd{}, DGap)
	roundTrip(t, "u32_lz/long", f, vals, vals[len(vals)-1])
}

func TestCascadeS16VbLZShortList(t *testing.T) {
	vals := monotone(4)
	f := S16VbLZ(128, bytecodec.Zlib{}, DGap)
	roundTrip(t, "s16_vblz/short", f, vals, vals[len(vals)-1])
}

func TestCascadeS16VbLZLongList(t *testing.T) {
	vals := monotone(2000)
	f := S16VbLZ(128, bytecodec.Zlib{}, DGap)
	roundTrip(t, "s16_vblz/long", f, vals, vals[len(vals)-1])
}
