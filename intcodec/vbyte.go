package intcodec

import "github.com/dsnet/invidx/bitstream"

// VByte is the plain variable-byte codec: 7-bit groups with the
// terminating byte's high bit set. Accepts any uint64 but this store only
// ever feeds it values that fit in 32 bits.
//
// Encoding 0 is the single byte 0x80; encoding 127 is 0xFF; 128 takes two
// bytes (0x00, 0x81); 16383 takes two bytes; 16384 takes three; values
// needing the full 32 bits take five.
type VByte struct{}

func (VByte) Type() string { return "vbyte" }

func (VByte) Encode(sink *bitstream.BitSink, src []uint64) {
	sink.Align8()
	for _, x := range src {
		putVByte(sink, x)
	}
}

func (VByte) Decode(source *bitstream.BitSource, dst []uint64) {
	source.Align8()
	for i := range dst {
		dst[i] = getVByte(source)
	}
}

func putVByte(sink *bitstream.BitSink, x uint64) {
	for {
		b := byte(x & 0x7f)
		x >>= 7
		if x == 0 {
			sink.PutInt(uint64(b|0x80), 8)
			return
		}
		sink.PutInt(uint64(b), 8)
	}
}

func getVByte(source *bitstream.BitSource) uint64 {
	var x uint64
	var shift uint
	for {
		b := byte(source.GetInt(8))
		x |= uint64(b&0x7f) << shift
		if b&0x80 != 0 {
			return x
		}
		shift += 7
	}
}

// vbyteLen reports the number of bytes putVByte would write for x. Nothing
// in the module calls it at present.
func vbyteLen(x uint64) int {
	n := 1
	for x >>= 7; x != 0; x >>= 7 {
		n++
	}
	return n
}
