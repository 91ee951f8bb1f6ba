package intcodec

import "github.com/dsnet/invidx/bitstream"

// qmxBlockSize matches op4's block granularity; QMX is SIMD-oriented in
// the source library, which this module treats as an opaque per-list
// block format per spec section 4.2's open question on OptPFor/QMX
// subformats: only its outward shape (byte-length-prefixed, 128-bit
// aligned payload) is specified, not a particular bit-exact backend.
const qmxBlockSize = 128

// QMX is the opaque SIMD-friendly block codec: each block is a
// fixed-width bit-packing of up to qmxBlockSize values, framed with a
// 32-bit byte-length prefix and padded to a 128-bit boundary.
type QMX struct{}

func (QMX) Type() string { return "qmx" }

func (QMX) Encode(sink *bitstream.BitSink, src []uint64) {
	sink.Align64()
	pos := 0
	for pos < len(src) {
		n := qmxBlockSize
		if pos+n > len(src) {
			n = len(src) - pos
		}
		block := src[pos : pos+n]
		width := 0
		for _, v := range block {
			if bl := bitLen64(v); bl > width {
				width = bl
			}
		}

		lenPos := sink.Tell()
		sink.Skip(32)
		sink.PutInt(uint64(width), 8)
		payloadStart := sink.Tell()
		for _, v := range block {
			sink.PutInt(v, uint(width))
		}
		sink.Align128()
		byteLen := (sink.Tell() - payloadStart) / 8
		end := sink.Tell()
		sink.Seek(lenPos)
		sink.PutInt(uint64(byteLen), 32)
		sink.Seek(end)

		pos += n
	}
}

func (QMX) Decode(source *bitstream.BitSource, dst []uint64) {
	source.Align64()
	pos := 0
	for pos < len(dst) {
		n := qmxBlockSize
		if pos+n > len(dst) {
			n = len(dst) - pos
		}
		byteLen := source.GetInt(32)
		width := uint(source.GetInt(8))
		payloadStart := source.Tell()
		for i := 0; i < n; i++ {
			dst[pos+i] = source.GetInt(width)
		}
		end := payloadStart + int(byteLen)*8
		if end > source.Tell() {
			source.Skip(end - source.Tell())
		}
		pos += n
	}
}
