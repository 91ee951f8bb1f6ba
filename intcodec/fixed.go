package intcodec

import (
	"fmt"

	"github.com/dsnet/invidx/bitstream"
)

// Fixed is the unpadded w-bit packing codec: every value uses exactly
// Width bits with no alignment or padding between values.
type Fixed struct{ Width uint }

func (f Fixed) Type() string { return fmt.Sprintf("fixed%d", f.Width) }

func (f Fixed) Encode(sink *bitstream.BitSink, src []uint64) {
	for _, x := range src {
		if f.Width < 64 && x>>f.Width != 0 {
			panic(invariant("value exceeds fixed width"))
		}
		sink.PutInt(x, f.Width)
	}
}

func (f Fixed) Decode(source *bitstream.BitSource, dst []uint64) {
	for i := range dst {
		dst[i] = source.GetInt(f.Width)
	}
}
