// Package intcodec implements the L2 integer codec family: per-element and
// per-array encoders/decoders sharing the uniform encode(sink, src, n) /
// decode(source, dst, n) contract of spec section 4.2. Each codec is its
// own type, the way github.com/dsnet/compress keeps one package per
// algorithm (bzip2, brotli, flate) rather than one interface with a
// variant-return switch.
//
// Codecs that need an upper bound on the values they represent (Elias-Fano,
// binary-interpolative) take that universe as an explicit extra parameter
// instead of being self-delimiting, matching spec section 3's definition
// of "universe".
package intcodec

import (
	"github.com/dsnet/invidx/bitstream"
	"github.com/dsnet/invidx/ixerr"
)

const pkg = "intcodec"

// Codec is satisfied by every fixed-contract integer codec that needs no
// universe bound: vbyte, vbyte_fastpfor, simple16, op4, fixed<w>, and
// aligned_fixed<T>.
type Codec interface {
	Type() string
	Encode(sink *bitstream.BitSink, src []uint64)
	Decode(source *bitstream.BitSource, dst []uint64)
}

// UniverseCodec is satisfied by codecs whose encoding depends on a known
// upper bound for the values: elias_fano and interpolative.
type UniverseCodec interface {
	Type() string
	Encode(sink *bitstream.BitSink, src []uint64, u uint64)
	Decode(source *bitstream.BitSource, dst []uint64, u uint64)
}

func corrupt(msg string) error { return ixerr.New(ixerr.CorruptInput, pkg, msg) }
func invariant(msg string) error {
	return ixerr.New(ixerr.InvariantViolation, pkg, msg)
}

// alignWords returns the number of bits to skip from bit position pos to
// reach the next w-bit boundary (0 if pos is already on one), since
// bitstream.BitSink only exposes align primitives for 8/64/128 bits;
// vbyte_fastpfor uses it to 32-bit-align its chunk length prefixes.
func alignWords(pos int, w int) int {
	rem := pos % w
	if rem == 0 {
		return 0
	}
	return w - rem
}
