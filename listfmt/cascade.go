package listfmt

import (
	"github.com/dsnet/invidx/bitstream"
	"github.com/dsnet/invidx/bytecodec"
	"github.com/dsnet/invidx/intcodec"
)

// Cascade implements the spec section 4.3 "*_lz"/"*_vblz" family: short
// lists (n <= Threshold) are left as the inner codec's raw bit-packed
// output; long lists have the inner codec's output zero-padded to a whole
// 32-bit word and then run through a generic byte compressor, with a
// 32-bit word-count prefix so the decoder knows the compressed payload's
// exact uncompressed size.
//
// A single leading bit records which path was taken, since the choice is
// a runtime branch on n (spec section 9's "short vs long is a runtime
// branch, not a separate type" design note) rather than two distinct
// on-disk formats.
type Cascade struct {
	name  string
	Inner intcodec.Codec
	// ShortInner, when set, codes the short-list (raw, uncompressed) path
	// instead of Inner; this is what lets a cascade's short-list fallback
	// differ from the codec its long-list path zero-pads and compresses.
	// Nil means "reuse Inner for both paths".
	ShortInner intcodec.Codec
	Outer      bytecodec.ByteCodec
	Threshold  int
	Transform  Transform
}

func (c Cascade) Name() string { return c.name }

func (c Cascade) shortInner() intcodec.Codec {
	if c.ShortInner != nil {
		return c.ShortInner
	}
	return c.Inner
}

func (c Cascade) Encode(sink *bitstream.BitSink, vals []uint64, u uint64) {
	work := c.Transform.forward(vals)
	if len(work) <= c.Threshold {
		sink.PutBit(false)
		c.shortInner().Encode(sink, work)
		return
	}
	sink.PutBit(true)

	buf := bitstream.NewBitBuffer()
	inner := bitstream.NewBitSink(buf)
	c.Inner.Encode(inner, work)
	inner.Align64() // a whole 32-bit word, with slack rounded up to 64

	payload := buf.Bytes()[:buf.Len()/8]
	sink.PutInt(uint64(len(payload)/4), 32)
	c.Outer.Encode(sink, payload)
}

func (c Cascade) Decode(source *bitstream.BitSource, dst []uint64, u uint64) {
	raw := !source.GetBit()
	if raw {
		c.shortInner().Decode(source, dst)
		c.Transform.inverse(dst)
		return
	}

	numWords := source.GetInt(32)
	payload := c.Outer.Decode(source, int(numWords)*4)

	buf := bitstream.NewBitBuffer()
	tmpSink := bitstream.NewBitSink(buf)
	tmpSink.PutBytes(payload)
	tmpSource := bitstream.NewBitSource(buf)
	c.Inner.Decode(tmpSource, dst)
	c.Transform.inverse(dst)
}

// VByteLZ, S16LZ, U32LZ and S16VbLZ are the four named cascades of spec
// section 4.3's table, each pairing a different inner bit-level codec with
// a caller-chosen generic byte compressor.
func VByteLZ(threshold int, outer bytecodec.ByteCodec, t Transform) ListFormat {
	return Cascade{name: "vbyte_lz", Inner: intcodec.VByteFastPFor{}, Outer: outer, Threshold: threshold, Transform: t}
}

func S16LZ(threshold int, outer bytecodec.ByteCodec, t Transform) ListFormat {
	return Cascade{name: "s16_lz", Inner: intcodec.Simple16{}, Outer: outer, Threshold: threshold, Transform: t}
}

func U32LZ(threshold int, outer bytecodec.ByteCodec, t Transform) ListFormat {
	return Cascade{name: "u32_lz", Inner: intcodec.AlignedFixed{Size: 4}, Outer: outer, Threshold: threshold, Transform: t}
}

// S16VbLZ pairs Simple16 for the long-list path (zero-padded and run
// through the outer byte compressor, same as S16LZ) with vbyte_fastpfor
// for the short-list raw fallback, instead of S16LZ's own Simple16
// fallback: a short list that never reaches the outer compressor pays
// vbyte_fastpfor's per-value cost instead of Simple16's fixed 28-bit-word
// selectors, which is cheaper when n is small enough that Simple16's
// selector overhead dominates.
func S16VbLZ(threshold int, outer bytecodec.ByteCodec, t Transform) ListFormat {
	return Cascade{
		name:       "s16_vblz",
		Inner:      intcodec.Simple16{},
		ShortInner: intcodec.VByteFastPFor{},
		Outer:      outer,
		Threshold:  threshold,
		Transform:  t,
	}
}
