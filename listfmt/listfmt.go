// Package listfmt implements spec section 4.3's list formats: the L3
// adapters that own both the transform (d-gap or prefix-sum) applied to a
// posting list's raw values and the L2 codec that encodes the transformed
// values. Containers (package container) never call intcodec or bytecodec
// directly — they hold a ListFormat and call Encode/Decode, the same
// split the teacher draws between its algorithm packages (bzip2, brotli)
// and the stages each composes (bwt, mtf, rle) internally.
package listfmt

import (
	"github.com/dsnet/invidx/bitstream"
	"github.com/dsnet/invidx/intcodec"
)

// ListFormat is implemented by every named format in spec section 4.3's
// table. Name is the format's static tag; the container layouts do not
// put it into on-disk file names.
type ListFormat interface {
	Name() string
	Encode(sink *bitstream.BitSink, vals []uint64, u uint64)
	Decode(source *bitstream.BitSource, dst []uint64, u uint64)
}

// Format wraps a plain intcodec.Codec (one that has no universe parameter:
// vbyte, simple16, op4, fixed widths, aligned_fixed, qmx) with a transform.
type Format struct {
	name      string
	Codec     intcodec.Codec
	Transform Transform
}

func NewFormat(name string, codec intcodec.Codec, t Transform) Format {
	return Format{name: name, Codec: codec, Transform: t}
}

func (f Format) Name() string { return f.name }

func (f Format) Encode(sink *bitstream.BitSink, vals []uint64, u uint64) {
	f.Codec.Encode(sink, f.Transform.forward(vals))
}

func (f Format) Decode(source *bitstream.BitSource, dst []uint64, u uint64) {
	f.Codec.Decode(source, dst)
	f.Transform.inverse(dst)
}

// UniverseFormat wraps an intcodec.UniverseCodec (elias_fano,
// interpolative) with a transform. u is the universe of the *transformed*
// values: callers computing it for a prefix-summed freq list must pass
// the sum of all frequencies (Ft), and for d-gapped... these two codecs
// are never d-gapped per spec's table, only NoTransform or PrefixSum.
type UniverseFormat struct {
	name      string
	Codec     intcodec.UniverseCodec
	Transform Transform
}

func NewUniverseFormat(name string, codec intcodec.UniverseCodec, t Transform) UniverseFormat {
	return UniverseFormat{name: name, Codec: codec, Transform: t}
}

func (f UniverseFormat) Name() string { return f.name }

func (f UniverseFormat) Encode(sink *bitstream.BitSink, vals []uint64, u uint64) {
	f.Codec.Encode(sink, f.Transform.forward(vals), u)
}

func (f UniverseFormat) Decode(source *bitstream.BitSource, dst []uint64, u uint64) {
	f.Codec.Decode(source, dst, u)
	f.Transform.inverse(dst)
}
