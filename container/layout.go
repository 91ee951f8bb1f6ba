package container

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/dsnet/invidx/bitstream"
	"github.com/dsnet/invidx/listfmt"
)

// Fingerprint is the CRC32-based key spec section 4.8 puts into on-disk
// file names. NewFingerprint computes it over a logical component name
// (e.g. "docs", "freqs", "dict") plus a caller-supplied build tag;
// RlzFingerprint computes it from an LZ/RLZ store's input and dictionary.
type Fingerprint uint32

func NewFingerprint(component, tag string) Fingerprint {
	return Fingerprint(crc32.ChecksumIEEE([]byte(component + "\x00" + tag)))
}

// FileName renders the fingerprint-keyed name spec section 4.8 uses:
// <component>-<fingerprint in hex>.bin.
func (f Fingerprint) FileName(component string) string {
	return fmt.Sprintf("%s-%08x.bin", component, uint32(f))
}

// WriteSection writes one component's on-disk section: a 64-bit
// little-endian bit-length header followed by the buffer's payload,
// word-aligned per spec section 4.8.
func WriteSection(w io.Writer, buf *bitstream.BitBuffer) error {
	var hdr [8]byte
	binary.LittleEndian.PutUint64(hdr[:], uint64(buf.Len()))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	payload := buf.Bytes()[:(buf.Len()+7)/8]
	_, err := w.Write(payload)
	return err
}

// ReadSection reads back a section written by WriteSection into a fresh
// BitBuffer sized to hold exactly the recorded bit length.
func ReadSection(r io.Reader) (*bitstream.BitBuffer, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, corruptIndex("section header: " + err.Error())
	}
	bitLen := binary.LittleEndian.Uint64(hdr[:])

	nbytes := (bitLen + 7) / 8
	payload := make([]byte, nbytes)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, corruptIndex("section payload: " + err.Error())
	}

	buf := bitstream.NewBitBuffer()
	sink := bitstream.NewBitSink(buf)
	full := bitLen / 8
	sink.PutBytes(payload[:full])
	if rem := bitLen % 8; rem != 0 {
		sink.PutInt(uint64(payload[full]), uint(rem))
	}
	if buf.Len() != int(bitLen) {
		return nil, invariant("section payload length mismatch")
	}
	return buf, nil
}

// MetaData is spec section 3/4.8's meta_data: the load-time summary a
// container's list-metadata file deserialises into.
type MetaData struct {
	NumPostings int
	NumDocs     int
	NumLists    int
	Lists       []ListMeta
}

// WriteMeta serialises m as a flat sequence of little-endian 64-bit
// fields: the three counts, then four fields per ListMeta entry.
func WriteMeta(w io.Writer, m MetaData) error {
	hdr := make([]byte, 24)
	binary.LittleEndian.PutUint64(hdr[0:], uint64(m.NumPostings))
	binary.LittleEndian.PutUint64(hdr[8:], uint64(m.NumDocs))
	binary.LittleEndian.PutUint64(hdr[16:], uint64(m.NumLists))
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	rec := make([]byte, 32*len(m.Lists))
	for i, lm := range m.Lists {
		off := i * 32
		binary.LittleEndian.PutUint64(rec[off:], uint64(lm.DocOffset))
		binary.LittleEndian.PutUint64(rec[off+8:], uint64(lm.FreqOffset))
		binary.LittleEndian.PutUint64(rec[off+16:], uint64(lm.ListLen))
		binary.LittleEndian.PutUint64(rec[off+24:], lm.Ft)
	}
	_, err := w.Write(rec)
	return err
}

// ReadMeta is WriteMeta's inverse. It checks spec section 4.4's load-time
// invariant (sum of list lengths equals num_postings) before returning.
func ReadMeta(r io.Reader) (MetaData, error) {
	hdr := make([]byte, 24)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return MetaData{}, corruptIndex("meta header: " + err.Error())
	}
	m := MetaData{
		NumPostings: int(binary.LittleEndian.Uint64(hdr[0:])),
		NumDocs:     int(binary.LittleEndian.Uint64(hdr[8:])),
		NumLists:    int(binary.LittleEndian.Uint64(hdr[16:])),
	}
	rec := make([]byte, 32*m.NumLists)
	if _, err := io.ReadFull(r, rec); err != nil {
		return MetaData{}, corruptIndex("meta list records: " + err.Error())
	}
	m.Lists = make([]ListMeta, m.NumLists)
	var sum int
	for i := range m.Lists {
		off := i * 32
		m.Lists[i] = ListMeta{
			DocOffset:  int(binary.LittleEndian.Uint64(rec[off:])),
			FreqOffset: int(binary.LittleEndian.Uint64(rec[off+8:])),
			ListLen:    int(binary.LittleEndian.Uint64(rec[off+16:])),
			Ft:         binary.LittleEndian.Uint64(rec[off+24:]),
		}
		sum += m.Lists[i].ListLen
	}
	if sum != m.NumPostings {
		return MetaData{}, corruptIndex("sum of list lengths does not match num_postings")
	}
	return m, nil
}

// atomicWriteFile writes through a temporary file in dir and renames it
// into place only once write succeeds, per spec section 5: a partial
// on-disk file after a failure is corrupt, so the builder never leaves
// one at the final path.
func atomicWriteFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// SaveFlatIndex writes a FlatIndex's three files (spec section 6's
// "Persisted layout"): raw_data.docs, raw_data.freqs, raw_data.meta.
func SaveFlatIndex(dir string, idx *FlatIndex) error {
	if err := atomicWriteFile(filepath.Join(dir, "raw_data.docs"), func(w io.Writer) error {
		return WriteSection(w, idx.DocStream)
	}); err != nil {
		return err
	}
	if err := atomicWriteFile(filepath.Join(dir, "raw_data.freqs"), func(w io.Writer) error {
		return WriteSection(w, idx.FreqStream)
	}); err != nil {
		return err
	}
	return atomicWriteFile(filepath.Join(dir, "raw_data.meta"), func(w io.Writer) error {
		return WriteMeta(w, MetaData{NumPostings: idx.NumPostings, NumDocs: idx.NumDocs, NumLists: idx.NumLists, Lists: idx.Lists})
	})
}

// LoadFlatIndex reads back a FlatIndex saved by SaveFlatIndex. The caller
// must supply the same doc/freq list formats the index was built with;
// spec section 4.8's layout records offsets and lengths but not which
// codec produced them.
func LoadFlatIndex(dir string, docFormat, freqFormat listfmt.ListFormat) (*FlatIndex, error) {
	docFile, err := os.Open(filepath.Join(dir, "raw_data.docs"))
	if err != nil {
		return nil, missingInput(err.Error())
	}
	defer docFile.Close()
	docStream, err := ReadSection(docFile)
	if err != nil {
		return nil, err
	}

	freqFile, err := os.Open(filepath.Join(dir, "raw_data.freqs"))
	if err != nil {
		return nil, missingInput(err.Error())
	}
	defer freqFile.Close()
	freqStream, err := ReadSection(freqFile)
	if err != nil {
		return nil, err
	}

	metaFile, err := os.Open(filepath.Join(dir, "raw_data.meta"))
	if err != nil {
		return nil, missingInput(err.Error())
	}
	defer metaFile.Close()
	meta, err := ReadMeta(metaFile)
	if err != nil {
		return nil, err
	}

	return &FlatIndex{
		NumDocs:     meta.NumDocs,
		NumLists:    meta.NumLists,
		NumPostings: meta.NumPostings,
		Lists:       meta.Lists,
		DocStream:   docStream,
		FreqStream:  freqStream,
		docFormat:   docFormat,
		freqFormat:  freqFormat,
	}, nil
}

// SaveInterleavedIndex writes raw_data.docfreqs and raw_data.meta for an
// InterleavedIndex (spec section 6's persisted layout; FreqOffset in each
// ListMeta is unused for this container, per spec section 3).
func SaveInterleavedIndex(dir string, idx *InterleavedIndex) error {
	if err := atomicWriteFile(filepath.Join(dir, "raw_data.docfreqs"), func(w io.Writer) error {
		return WriteSection(w, idx.ListStream)
	}); err != nil {
		return err
	}
	return atomicWriteFile(filepath.Join(dir, "raw_data.meta"), func(w io.Writer) error {
		return WriteMeta(w, MetaData{NumPostings: idx.NumPostings, NumDocs: idx.NumDocs, NumLists: idx.NumLists, Lists: idx.Lists})
	})
}

// LoadInterleavedIndex reads back an InterleavedIndex saved by
// SaveInterleavedIndex; the caller supplies the same single list format
// the index was built with.
func LoadInterleavedIndex(dir string, format listfmt.ListFormat) (*InterleavedIndex, error) {
	listFile, err := os.Open(filepath.Join(dir, "raw_data.docfreqs"))
	if err != nil {
		return nil, missingInput(err.Error())
	}
	defer listFile.Close()
	listStream, err := ReadSection(listFile)
	if err != nil {
		return nil, err
	}

	metaFile, err := os.Open(filepath.Join(dir, "raw_data.meta"))
	if err != nil {
		return nil, missingInput(err.Error())
	}
	defer metaFile.Close()
	meta, err := ReadMeta(metaFile)
	if err != nil {
		return nil, err
	}

	return &InterleavedIndex{
		NumDocs:     meta.NumDocs,
		NumLists:    meta.NumLists,
		NumPostings: meta.NumPostings,
		Lists:       meta.Lists,
		ListStream:  listStream,
		format:      format,
	}, nil
}
