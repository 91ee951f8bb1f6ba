package intcodec

import "github.com/dsnet/invidx/bitstream"

// chunkCap is the maximum number of values encoded before vbyte_fastpfor
// starts a new length-prefixed chunk (spec section 4.2).
const chunkCap = 1 << 30

// VByteFastPFor batches plain vbyte over 32-bit-word-aligned chunks, each
// chunk prefixed with its length in 32-bit words. op4 falls back to this
// codec for any list tail shorter than its 128-value block size; the
// vbyte_lz cascade uses it as its inner stage and s16_vblz as its
// short-list fallback. The other *_lz cascades use other inner codecs.
type VByteFastPFor struct{}

func (VByteFastPFor) Type() string { return "vbyte_fastpfor" }

func (VByteFastPFor) Encode(sink *bitstream.BitSink, src []uint64) {
	sink.Align64()
	for len(src) > 0 {
		n := len(src)
		if n > chunkCap {
			n = chunkCap
		}
		chunk := src[:n]
		src = src[n:]

		lenPos := sink.Tell()
		sink.Skip(32) // placeholder for the 32-bit-word length prefix
		start := sink.Tell()
		for _, x := range chunk {
			putVByte(sink, x)
		}
		if pad := alignWords(sink.Tell(), 32); pad != 0 {
			sink.Skip(pad)
		}
		words := (sink.Tell() - start) / 32
		end := sink.Tell()
		sink.Seek(lenPos)
		sink.PutInt(uint64(words), 32)
		sink.Seek(end)
	}
}

func (VByteFastPFor) Decode(source *bitstream.BitSource, dst []uint64) {
	source.Align64()
	for len(dst) > 0 {
		n := len(dst)
		if n > chunkCap {
			n = chunkCap
		}
		words := source.GetInt(32)
		start := source.Tell()
		for i := 0; i < n; i++ {
			dst[i] = getVByte(source)
		}
		dst = dst[n:]
		// Skip whatever padding the encoder inserted to reach the
		// recorded word count; this also lets callers stop decoding
		// early (n < full chunk) without desyncing a following chunk.
		end := start + int(words)*32
		if end > source.Tell() {
			source.Skip(end - source.Tell())
		}
	}
}
