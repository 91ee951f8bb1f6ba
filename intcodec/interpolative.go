package intcodec

import "github.com/dsnet/invidx/bitstream"

// Interpolative implements spec section 4.2's binary-interpolative codec:
// recursive midpoint encoding over a sorted list constrained to a shrinking
// [low,high] range. The "median" is the element at 0-indexed position
// ceil(n/2)-1, whose own value is bounded by how many elements must fit
// below and above it; encoding it with minimal binary coding over that
// narrowed range, then recursing on both halves, is what gives the format
// its name.
type Interpolative struct{}

func (Interpolative) Type() string { return "interp" }

func (Interpolative) Encode(sink *bitstream.BitSink, src []uint64, u uint64) {
	sink.Align64()
	encodeInterpRange(sink, src, 1, u)
}

func (Interpolative) Decode(source *bitstream.BitSource, dst []uint64, u uint64) {
	source.Align64()
	decodeInterpRange(source, dst, 1, u)
}

func encodeInterpRange(sink *bitstream.BitSink, vals []uint64, low, high uint64) {
	n := len(vals)
	if n == 0 {
		return
	}
	m := (n+1)/2 - 1 // ceil(n/2) - 1, 0-indexed median position
	medianLow := low + uint64(m)
	medianHigh := high - uint64(n-1-m)
	median := vals[m]

	sink.PutMinBin(median-medianLow+1, medianHigh-medianLow+1)

	encodeInterpRange(sink, vals[:m], low, median-1)
	if m+1 < n {
		encodeInterpRange(sink, vals[m+1:], median+1, high)
	}
}

func decodeInterpRange(source *bitstream.BitSource, dst []uint64, low, high uint64) {
	n := len(dst)
	if n == 0 {
		return
	}
	m := (n+1)/2 - 1
	medianLow := low + uint64(m)
	medianHigh := high - uint64(n-1-m)

	code := source.GetMinBin(medianHigh - medianLow + 1)
	median := medianLow + code - 1
	dst[m] = median

	decodeInterpRange(source, dst[:m], low, median-1)
	if m+1 < n {
		decodeInterpRange(source, dst[m+1:], median+1, high)
	}
}
