package bytecodec

import (
	"testing"

	"github.com/dsnet/invidx/bitstream"
	"github.com/google/go-cmp/cmp"
)

// roundTrip encodes raw with c and decodes it back; bitstream's concrete
// BitSink/BitSource satisfy this package's Sink/Source interfaces directly.
func roundTrip(t *testing.T, name string, c ByteCodec, raw []byte) {
	t.Helper()
	buf := bitstream.NewBitBuffer()
	sink := bitstream.NewBitSink(buf)
	c.Encode(sink, raw)

	source := bitstream.NewBitSource(buf)
	got := c.Decode(source, len(raw))
	if diff := cmp.Diff(raw, got); diff != "" {
		t.Fatalf("%s round-trip mismatch (-want +got):\n%s", name, diff)
	}
}

func sampleBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte((i*37 + i/13) % 251)
	}
	return out
}

func TestZlibRoundTrip(t *testing.T) {
	roundTrip(t, "zlib", Zlib{}, sampleBytes(4096))
}

func TestBZip2RoundTrip(t *testing.T) {
	roundTrip(t, "bzip2", BZip2{}, sampleBytes(8192))
}

func TestBrotliRoundTrip(t *testing.T) {
	roundTrip(t, "brotli", Brotli{}, sampleBytes(4096))
}

func TestLz4hcRoundTrip(t *testing.T) {
	roundTrip(t, "lz4hc", Lz4hc{}, sampleBytes(4096))
}

func TestLzmaRoundTrip(t *testing.T) {
	roundTrip(t, "lzma", Lzma{}, sampleBytes(4096))
}

func TestZstdRoundTrip(t *testing.T) {
	roundTrip(t, "zstd", Zstd{}, sampleBytes(4096))
}

func TestZstdDictRoundTrip(t *testing.T) {
	dict := sampleBytes(1024)
	c := ZstdDict{Dict: dict}
	roundTrip(t, "zstd_dict", c, sampleBytes(4096))
}
