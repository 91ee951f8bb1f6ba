package intcodec

import "github.com/dsnet/invidx/bitstream"

// EliasFano implements spec section 4.2's elias_fano codec: for n sorted
// values in [1,u], low = floor(log2(u/n)) bits are packed per value as a
// fixed-width array, and the remaining high bits are recorded as the
// per-value gap (in bucket index, bucket = value >> low) unary-coded.
// Works for both d-gapped doc-ID lists and prefix-summed frequency lists;
// the caller supplies u either way.
type EliasFano struct{}

func (EliasFano) Type() string { return "ef" }

func efLowWidth(n int, u uint64) int {
	if n <= 0 {
		return 0
	}
	q := u / uint64(n)
	if q == 0 {
		return 0
	}
	return bitLen64(q) - 1
}

func (EliasFano) Encode(sink *bitstream.BitSink, src []uint64, u uint64) {
	low := efLowWidth(len(src), u)
	sink.Align64()
	for _, v := range src {
		sink.PutInt(v, uint(low))
	}
	var prevBucket uint64
	for _, v := range src {
		bucket := v >> uint(low)
		sink.PutUnary(int(bucket - prevBucket))
		prevBucket = bucket
	}
}

func (EliasFano) Decode(source *bitstream.BitSource, dst []uint64, u uint64) {
	n := len(dst)
	low := efLowWidth(n, u)
	source.Align64()
	lowParts := make([]uint64, n)
	for i := range lowParts {
		lowParts[i] = source.GetInt(uint(low))
	}
	var bucket uint64
	for i := 0; i < n; i++ {
		bucket += uint64(source.GetUnary())
		dst[i] = bucket<<uint(low) | lowParts[i]
	}
}
