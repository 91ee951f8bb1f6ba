package container

import "github.com/dsnet/invidx/bytecodec"

// BuildZstdDictStore is spec section 4.7's RLZ variant that skips the
// suffix-array factoriser entirely and instead lets zstd's own dictionary
// support do the work: every block is compressed independently against
// the same shared Dictionary. It is an LzStore whose Codec happens to be
// bytecodec.ZstdDict, so it's built and read through LzStore itself rather
// than a parallel type.
func BuildZstdDictStore(dict *Dictionary, level bytecodec.ZstdDict, blockSize int, data []byte, workers int) *LzStore {
	level.Dict = dict.Bytes
	return BuildLzStore(level, blockSize, data, workers)
}
