package container

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/dsnet/invidx/bitstream"
	"github.com/dsnet/invidx/bytecodec"
	"github.com/dsnet/invidx/intcodec"
)

// RlzFingerprint is spec section 4.8's {crc32(input)} xor {crc32(dict)}
// key used to name an RLZ/LZ store's files.
func RlzFingerprint(data, dict []byte) Fingerprint {
	return Fingerprint(crc32.ChecksumIEEE(data) ^ crc32.ChecksumIEEE(dict))
}

func rlzFactorPath(dir string, fp Fingerprint, codecType string) string {
	return filepath.Join(dir, fmt.Sprintf("%08x-%s.bin", uint32(fp), codecType))
}

func rlzBlockMapPath(dir string, fp Fingerprint, codecType string) string {
	return filepath.Join(dir, fmt.Sprintf("%08x-blockmap-%s.bin", uint32(fp), codecType))
}

// DictFilePath names the on-disk location of the learned dictionary
// bytes a fingerprint's RlzStore or ZstdDictStore was factorised against.
func DictFilePath(dir string, fp Fingerprint) string {
	return filepath.Join(dir, fmt.Sprintf("%08x-dict.bin", uint32(fp)))
}

// encodeBlockMap writes the block map shared by the factor-based RlzStore and the
// codec-based LzStore: offsets are strictly increasing so they compress
// well d-gapped through vbyte, and per-block factor counts (when present)
// are small non-negative integers needing no transform.
func encodeBlockMap(offsets []int, counts []int) *bitstream.BitBuffer {
	buf := bitstream.NewBitBuffer()
	sink := bitstream.NewBitSink(buf)
	sink.PutInt(uint64(len(offsets)), 32)
	sink.PutInt(uint64(len(counts)), 32)

	offVals := make([]uint64, len(offsets))
	for i, o := range offsets {
		offVals[i] = uint64(o)
	}
	intcodec.VByte{}.Encode(sink, deltaEncode(offVals))

	if len(counts) > 0 {
		cntVals := make([]uint64, len(counts))
		for i, c := range counts {
			cntVals[i] = uint64(c)
		}
		intcodec.VByte{}.Encode(sink, cntVals)
	}
	return buf
}

func decodeBlockMap(buf *bitstream.BitBuffer) (offsets []int, counts []int) {
	source := bitstream.NewBitSource(buf)
	numOff := int(source.GetInt(32))
	numCnt := int(source.GetInt(32))

	offVals := make([]uint64, numOff)
	intcodec.VByte{}.Decode(source, offVals)
	offVals = deltaDecode(offVals)
	offsets = make([]int, numOff)
	for i, v := range offVals {
		offsets[i] = int(v)
	}

	if numCnt > 0 {
		cntVals := make([]uint64, numCnt)
		intcodec.VByte{}.Decode(source, cntVals)
		counts = make([]int, numCnt)
		for i, v := range cntVals {
			counts[i] = int(v)
		}
	}
	return offsets, counts
}

func deltaEncode(vals []uint64) []uint64 {
	out := make([]uint64, len(vals))
	var prev uint64
	for i, v := range vals {
		if i == 0 {
			out[i] = v
		} else {
			out[i] = v - prev
		}
		prev = v
	}
	return out
}

func deltaDecode(vals []uint64) []uint64 {
	out := make([]uint64, len(vals))
	var sum uint64
	for i, v := range vals {
		sum += v
		out[i] = sum
	}
	return out
}

// SaveRlzStore writes the fingerprint-keyed factor-stream file and its
// companion blockmap file, per spec section 4.8/6.
func SaveRlzStore(dir string, s *RlzStore, fp Fingerprint, codecType string) error {
	if err := atomicWriteFile(rlzFactorPath(dir, fp, codecType), func(w io.Writer) error {
		return WriteSection(w, s.FactorStream)
	}); err != nil {
		return err
	}
	return atomicWriteFile(rlzBlockMapPath(dir, fp, codecType), func(w io.Writer) error {
		return WriteSection(w, encodeBlockMap(s.BlockOffsets, s.BlockFactorCount))
	})
}

// LoadRlzStore reads back an RlzStore saved by SaveRlzStore. The caller
// supplies the dictionary, block size, literal threshold, and factor
// coder it was built with, since those aren't recorded in the on-disk
// layout (spec section 4.8 records offsets and lengths, not codec
// configuration).
func LoadRlzStore(dir string, fp Fingerprint, codecType string, dict *Dictionary, blockSize, dataSize, literalThreshold int, coder FactorCoder) (*RlzStore, error) {
	factorFile, err := os.Open(rlzFactorPath(dir, fp, codecType))
	if err != nil {
		return nil, missingInput(err.Error())
	}
	defer factorFile.Close()
	factorStream, err := ReadSection(factorFile)
	if err != nil {
		return nil, err
	}

	blockMapFile, err := os.Open(rlzBlockMapPath(dir, fp, codecType))
	if err != nil {
		return nil, missingInput(err.Error())
	}
	defer blockMapFile.Close()
	blockMapBuf, err := ReadSection(blockMapFile)
	if err != nil {
		return nil, err
	}
	offsets, counts := decodeBlockMap(blockMapBuf)
	if len(counts) != len(offsets) {
		return nil, corruptIndex("blockmap factor-count length does not match offset length")
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] <= offsets[i-1] {
			return nil, corruptIndex("block offsets not strictly increasing")
		}
	}

	return &RlzStore{
		Dict:             dict,
		BlockSize:        blockSize,
		DataSize:         dataSize,
		LiteralThreshold: literalThreshold,
		Coder:            coder,
		BlockOffsets:     offsets,
		BlockFactorCount: counts,
		FactorStream:     factorStream,
	}, nil
}

// SaveLzStore writes an LzStore's compressed payload and blockmap file.
func SaveLzStore(dir string, s *LzStore, fp Fingerprint, codecType string) error {
	if err := atomicWriteFile(rlzFactorPath(dir, fp, codecType), func(w io.Writer) error {
		return WriteSection(w, s.Compressed)
	}); err != nil {
		return err
	}
	return atomicWriteFile(rlzBlockMapPath(dir, fp, codecType), func(w io.Writer) error {
		return WriteSection(w, encodeBlockMap(s.BlockOffsets, nil))
	})
}

// LoadLzStore reads back an LzStore saved by SaveLzStore. The caller
// supplies the same codec and block size the store was built with.
func LoadLzStore(dir string, fp Fingerprint, codecType string, codec bytecodec.ByteCodec, blockSize, dataSize int) (*LzStore, error) {
	factorFile, err := os.Open(rlzFactorPath(dir, fp, codecType))
	if err != nil {
		return nil, missingInput(err.Error())
	}
	defer factorFile.Close()
	compressed, err := ReadSection(factorFile)
	if err != nil {
		return nil, err
	}

	blockMapFile, err := os.Open(rlzBlockMapPath(dir, fp, codecType))
	if err != nil {
		return nil, missingInput(err.Error())
	}
	defer blockMapFile.Close()
	blockMapBuf, err := ReadSection(blockMapFile)
	if err != nil {
		return nil, err
	}
	offsets, _ := decodeBlockMap(blockMapBuf)
	for i := 1; i < len(offsets); i++ {
		if offsets[i] <= offsets[i-1] {
			return nil, corruptIndex("block offsets not strictly increasing")
		}
	}

	return &LzStore{
		Codec:        codec,
		BlockSize:    blockSize,
		DataSize:     dataSize,
		BlockOffsets: offsets,
		Compressed:   compressed,
	}, nil
}
