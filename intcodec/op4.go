package intcodec

import "github.com/dsnet/invidx/bitstream"

// op4BlockSize is OptPFor's fixed block size; spec section 4.2 says any
// list tail shorter than this is emitted with vbyte_fastpfor instead.
const op4BlockSize = 128

// Op4 implements OptPFor: each full 128-value block picks a bit width
// that captures all but a handful of exception values, packs the
// in-range residuals bit-aligned, and records the exceptions (their
// block-local position and full value) separately. The exact exception
// subformat beyond this block/selection shape is an open question per
// spec section 9 and is treated here as this module's own opaque choice
// rather than an attempt to bit-match a particular backend library.
type Op4 struct{}

func (Op4) Type() string { return "op4" }

func (Op4) Encode(sink *bitstream.BitSink, src []uint64) {
	sink.Align64()
	for len(src) >= op4BlockSize {
		encodeOp4Block(sink, src[:op4BlockSize])
		src = src[op4BlockSize:]
	}
	if len(src) > 0 {
		VByteFastPFor{}.Encode(sink, src)
	}
}

func (Op4) Decode(source *bitstream.BitSource, dst []uint64) {
	source.Align64()
	for len(dst) >= op4BlockSize {
		decodeOp4Block(source, dst[:op4BlockSize])
		dst = dst[op4BlockSize:]
	}
	if len(dst) > 0 {
		VByteFastPFor{}.Decode(source, dst)
	}
}

// chooseOp4Width picks the bit width minimizing the total bits spent on
// a block: width*blockSize for the packed residuals plus 40 bits
// (1-byte position + 4-byte value) per exception.
func chooseOp4Width(block []uint64) (width uint, exceptions []int) {
	bestWidth := uint(0)
	bestCost := -1
	var bestExceptions []int
	for w := uint(0); w <= 32; w++ {
		var exc []int
		for i, v := range block {
			if v>>w != 0 {
				exc = append(exc, i)
			}
		}
		cost := int(w)*len(block) + len(exc)*40
		if bestCost == -1 || cost < bestCost {
			bestCost = cost
			bestWidth = w
			bestExceptions = exc
		}
	}
	return bestWidth, bestExceptions
}

func encodeOp4Block(sink *bitstream.BitSink, block []uint64) {
	width, exceptions := chooseOp4Width(block)
	sink.PutInt(uint64(width), 8)
	sink.PutInt(uint64(len(exceptions)), 16)

	excSet := make(map[int]bool, len(exceptions))
	for _, i := range exceptions {
		excSet[i] = true
	}
	for i, v := range block {
		if excSet[i] {
			sink.PutInt(0, width) // placeholder; real value lives in the exception list
		} else {
			sink.PutInt(v, width)
		}
	}

	sink.Align8()
	for _, i := range exceptions {
		sink.PutInt(uint64(i), 8)
		sink.PutInt(block[i], 32)
	}
}

func decodeOp4Block(source *bitstream.BitSource, dst []uint64) {
	width := uint(source.GetInt(8))
	numExc := int(source.GetInt(16))
	for i := range dst {
		dst[i] = source.GetInt(width)
	}
	source.Align8()
	for e := 0; e < numExc; e++ {
		pos := int(source.GetInt(8))
		val := source.GetInt(32)
		dst[pos] = val
	}
}
