package listfmt

import (
	"github.com/dsnet/invidx/bitstream"
	"github.com/dsnet/invidx/intcodec"
)

// InterpBlock implements spec section 4.3's interp_block<B>: a sorted list
// is split into blocks of up to B values; each block stores its own last
// value as a fixed-32 "skip" (letting a reader binary-search for the block
// containing a target without decoding earlier blocks), then encodes its
// values with binary-interpolative coding against the local universe
// [low, skip] rather than the list's global universe.
type InterpBlock struct {
	BlockSize int
}

func (InterpBlock) Name() string { return "interp_block" }

func (b InterpBlock) Encode(sink *bitstream.BitSink, vals []uint64, u uint64) {
	bs := b.BlockSize
	if bs <= 0 {
		bs = 128
	}
	low := uint64(1)
	for i := 0; i < len(vals); i += bs {
		end := i + bs
		if end > len(vals) {
			end = len(vals)
		}
		block := vals[i:end]
		high := block[len(block)-1]

		sink.PutInt(high, 32)

		rel := make([]uint64, len(block))
		for j, v := range block {
			rel[j] = v - low + 1
		}
		uLocal := high - low + 1
		intcodec.Interpolative{}.Encode(sink, rel, uLocal)

		low = high + 1
	}
}

func (b InterpBlock) Decode(source *bitstream.BitSource, dst []uint64, u uint64) {
	bs := b.BlockSize
	if bs <= 0 {
		bs = 128
	}
	low := uint64(1)
	for i := 0; i < len(dst); i += bs {
		end := i + bs
		if end > len(dst) {
			end = len(dst)
		}
		block := dst[i:end]

		high := source.GetInt(32)
		uLocal := high - low + 1
		intcodec.Interpolative{}.Decode(source, block, uLocal)
		for j := range block {
			block[j] += low - 1
		}

		low = high + 1
	}
}
