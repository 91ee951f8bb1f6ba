package intcodec

import "github.com/dsnet/invidx/bitstream"

// simple16Entry describes one of Simple16's 16 selectors: a word holds a
// 4-bit selector followed by count values of width bits each, count*width
// never exceeding the 28 usable bits of the 32-bit word.
type simple16Entry struct{ count, width int }

// simple16Table runs from selector 0 (twenty-eight 1-bit values) to
// selector 15 (one 28-bit value), per spec section 4.2.
var simple16Table = [16]simple16Entry{
	{28, 1}, {14, 2}, {9, 3}, {7, 4},
	{5, 5}, {4, 6}, {4, 7}, {3, 8},
	{3, 9}, {2, 10}, {2, 12}, {2, 14},
	{1, 16}, {1, 18}, {1, 20}, {1, 28},
}

// Simple16 packs groups of small integers into 28 usable bits of a 32-bit
// word, selecting the widest group of uniform-width values that still fit.
// Values that need more than 28 bits cannot be represented and are an
// invariant violation for this codec (callers route such lists through a
// wider codec instead).
type Simple16 struct{}

func (Simple16) Type() string { return "simple16" }

func (Simple16) Encode(sink *bitstream.BitSink, src []uint64) {
	sink.Align64()
	for len(src) > 0 {
		n := len(src)
		if n > chunkCap {
			n = chunkCap
		}
		chunk := src[:n]
		src = src[n:]

		lenPos := sink.Tell()
		sink.Skip(32)
		start := sink.Tell()
		pos := 0
		for pos < len(chunk) {
			sel, cnt := chooseSimple16(chunk[pos:])
			e := simple16Table[sel]
			sink.PutInt(uint64(sel), 4)
			for i := 0; i < cnt; i++ {
				sink.PutInt(chunk[pos+i], uint(e.width))
			}
			if pad := 28 - cnt*e.width; pad > 0 {
				sink.Skip(pad)
			}
			pos += cnt
		}
		words := (sink.Tell() - start) / 32
		end := sink.Tell()
		sink.Seek(lenPos)
		sink.PutInt(uint64(words), 32)
		sink.Seek(end)
	}
}

func chooseSimple16(vals []uint64) (sel, cnt int) {
	for sel, e := range simple16Table {
		cnt := e.count
		if cnt > len(vals) {
			cnt = len(vals)
		}
		ok := true
		for i := 0; i < cnt; i++ {
			if bitLen64(vals[i]) > e.width {
				ok = false
				break
			}
		}
		if ok {
			return sel, cnt
		}
	}
	panic(invariant("value exceeds simple16's 28-bit representable range"))
}

func bitLen64(x uint64) int {
	n := 0
	for x > 0 {
		n++
		x >>= 1
	}
	return n
}

func (Simple16) Decode(source *bitstream.BitSource, dst []uint64) {
	source.Align64()
	for len(dst) > 0 {
		n := len(dst)
		if n > chunkCap {
			n = chunkCap
		}
		words := source.GetInt(32)
		start := source.Tell()
		pos := 0
		for pos < n {
			sel := int(source.GetInt(4))
			e := simple16Table[sel]
			cnt := e.count
			if pos+cnt > n {
				cnt = n - pos
			}
			for i := 0; i < cnt; i++ {
				dst[pos+i] = source.GetInt(uint(e.width))
			}
			if pad := 28 - cnt*e.width; pad > 0 {
				source.Skip(pad)
			}
			pos += cnt
		}
		dst = dst[n:]
		end := start + int(words)*32
		if end > source.Tell() {
			source.Skip(end - source.Tell())
		}
	}
}
