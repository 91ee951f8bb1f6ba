package listfmt

import "github.com/dsnet/invidx/intcodec"

// The constructors below are the spec section 4.3 table's named entries.
// Each takes an explicit Transform so a container can pick the doc-list or
// freq-list pairing the table describes (docs get DGap almost everywhere;
// freqs get NoTransform except for ef/interp, which need PrefixSum to turn
// a freq list into something monotone a universe codec can represent).

func VByte(t Transform) ListFormat        { return NewFormat("vbyte", intcodec.VByte{}, t) }
func Simple16(t Transform) ListFormat     { return NewFormat("simple16", intcodec.Simple16{}, t) }
func Op4(t Transform) ListFormat          { return NewFormat("op4", intcodec.Op4{}, t) }
func U32(t Transform) ListFormat          { return NewFormat("u32", intcodec.AlignedFixed{Size: 4}, t) }
func QMX(t Transform) ListFormat          { return NewFormat("qmx", intcodec.QMX{}, t) }
func EF(t Transform) ListFormat           { return NewUniverseFormat("ef", intcodec.EliasFano{}, t) }
func Interp(t Transform) ListFormat       { return NewUniverseFormat("interp", intcodec.Interpolative{}, t) }

// DocFormats returns the standard doc-list pairing for every non-cascade,
// non-block format in the table: d-gap for the plain codecs, no transform
// for the universe codecs ef and interp.
func DocFormats() map[string]ListFormat {
	return map[string]ListFormat{
		"vbyte":    VByte(DGap),
		"simple16": Simple16(DGap),
		"op4":      Op4(DGap),
		"u32":      U32(DGap),
		"qmx":      QMX(DGap),
		"ef":       EF(NoTransform),
		"interp":   Interp(NoTransform),
	}
}

// FreqFormats returns the standard freq-list pairing: no transform for the
// small-value codecs, prefix-sum for the universe codecs.
func FreqFormats() map[string]ListFormat {
	return map[string]ListFormat{
		"vbyte":    VByte(NoTransform),
		"simple16": Simple16(NoTransform),
		"op4":      Op4(NoTransform),
		"u32":      U32(NoTransform),
		"qmx":      QMX(NoTransform),
		"ef":       EF(PrefixSum),
		"interp":   Interp(PrefixSum),
	}
}
