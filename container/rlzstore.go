package container

import (
	"github.com/dsnet/invidx/bitstream"
	"github.com/dsnet/invidx/intcodec"
)

// FactorCoder names the three codecs spec section 4.7's
// factor_coder_blocked<C_off,C_len,C_lit> parametrises a block's encoded
// factor arrays with. The original's template also carries an integer
// width T for the factor fields; this drops it since every value here
// already travels as a uint64 through intcodec.Codec.
type FactorCoder struct {
	Offsets  intcodec.Codec
	Lengths  intcodec.Codec
	Literals intcodec.Codec
}

// DefaultFactorCoder uses vbyte for offsets and lengths (both open-ended,
// so self-delimiting beats a universe bound) and fixed-8 for literal bytes.
func DefaultFactorCoder() FactorCoder {
	return FactorCoder{
		Offsets:  intcodec.VByte{},
		Lengths:  intcodec.VByte{},
		Literals: intcodec.Fixed{Width: 8},
	}
}

// RlzStore is spec section 4.7's dictionary-based container: input is
// partitioned into fixed blocks, each factorised against a shared
// Dictionary into a sequence of Copy/Literal factors, and each block's
// factor arrays are coded independently by FactorCoder.
//
// A block's factors aren't self-describing from its count alone — the
// decoder also needs to know which of the block's factors are copies and
// which are literals before it can interleave the three decoded arrays
// back into order. Spec section 4.7 doesn't name where that bit comes
// from, so this stores one tag bit per factor (1 = copy) immediately
// before the three arrays.
type RlzStore struct {
	Dict             *Dictionary
	BlockSize        int
	DataSize         int
	LiteralThreshold int
	Coder            FactorCoder

	BlockOffsets     []int
	BlockFactorCount []int
	FactorStream     *bitstream.BitBuffer
}

// BuildRlzStore factorises data against dict one block at a time and
// writes each block's tag bits, offsets, lengths, and literals in that
// fixed order, per spec section 4.7's build path.
//
// dict.Reversed is an open question per spec section 9: the observed
// factorisation strategy always leaves it false, so the forward code path
// below is the only one implemented. A dictionary built with Reversed set
// fails loudly here rather than silently behaving like the forward case.
func BuildRlzStore(dict *Dictionary, blockSize int, data []byte, literalThreshold int, coder FactorCoder) (*RlzStore, error) {
	if dict.Reversed {
		return nil, invariant("reverse dictionary factorisation is not implemented")
	}
	sa := buildSuffixArray(dict.Bytes)

	store := &RlzStore{
		Dict:             dict,
		BlockSize:        blockSize,
		DataSize:         len(data),
		LiteralThreshold: literalThreshold,
		Coder:            coder,
		FactorStream:     bitstream.NewBitBuffer(),
	}
	sink := bitstream.NewBitSink(store.FactorStream)

	for off := 0; off < len(data); off += blockSize {
		end := off + blockSize
		if end > len(data) {
			end = len(data)
		}
		factors := FactorizeBlock(dict, sa, data[off:end], literalThreshold)

		store.BlockOffsets = append(store.BlockOffsets, sink.Tell())
		store.BlockFactorCount = append(store.BlockFactorCount, len(factors))

		for _, f := range factors {
			sink.PutBit(f.Copy)
		}

		var offsets, lengths []uint64
		var literals []uint64
		for _, f := range factors {
			if f.Copy {
				offsets = append(offsets, uint64(f.Offset))
				lengths = append(lengths, uint64(f.Length))
			} else {
				literals = append(literals, uint64(f.Lit))
			}
		}
		coder.Offsets.Encode(sink, offsets)
		coder.Lengths.Encode(sink, lengths)
		coder.Literals.Encode(sink, literals)
	}
	return store, nil
}

func (s *RlzStore) blockDataLen(i int) int {
	rem := s.DataSize - i*s.BlockSize
	if rem < s.BlockSize {
		return rem
	}
	return s.BlockSize
}

// Block decodes block i back to its original bytes.
func (s *RlzStore) Block(i int) ([]byte, error) {
	if i < 0 || i >= len(s.BlockOffsets) {
		return nil, corruptIndex("block index out of range")
	}

	source := bitstream.NewBitSource(s.FactorStream)
	source.Seek(s.BlockOffsets[i])

	n := s.BlockFactorCount[i]
	tags := make([]bool, n)
	var numCopies, numLits int
	for j := 0; j < n; j++ {
		tags[j] = source.GetBit()
		if tags[j] {
			numCopies++
		} else {
			numLits++
		}
	}

	offsets := make([]uint64, numCopies)
	lengths := make([]uint64, numCopies)
	literals := make([]uint64, numLits)
	s.Coder.Offsets.Decode(source, offsets)
	s.Coder.Lengths.Decode(source, lengths)
	s.Coder.Literals.Decode(source, literals)

	out := make([]byte, 0, s.blockDataLen(i))
	oi, li := 0, 0
	for j := 0; j < n; j++ {
		if tags[j] {
			off, length := int(offsets[oi]), int(lengths[oi])
			oi++
			if off < 0 || off+length > len(s.Dict.Bytes) {
				return nil, corruptIndex("copy factor out of dictionary bounds")
			}
			out = append(out, s.Dict.Bytes[off:off+length]...)
		} else {
			out = append(out, byte(literals[li]))
			li++
		}
	}
	return out, nil
}
