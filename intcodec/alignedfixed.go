package intcodec

import (
	"fmt"

	"github.com/dsnet/invidx/bitstream"
)

// AlignedFixed is a byte-aligned copy of n Size-byte integers: no bit
// packing at all, used when a list's values need the full width and
// random byte-level access to the stream matters more than density.
type AlignedFixed struct{ Size int } // bytes per element: 1, 2, 4, or 8

func (a AlignedFixed) Type() string { return fmt.Sprintf("u%d", a.Size*8) }

func (a AlignedFixed) Encode(sink *bitstream.BitSink, src []uint64) {
	sink.Align8()
	w := uint(a.Size * 8)
	for _, x := range src {
		sink.PutInt(x, w)
	}
}

func (a AlignedFixed) Decode(source *bitstream.BitSource, dst []uint64) {
	source.Align8()
	w := uint(a.Size * 8)
	for i := range dst {
		dst[i] = source.GetInt(w)
	}
}
