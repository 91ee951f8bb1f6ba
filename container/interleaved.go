package container

import (
	"github.com/dsnet/invidx/bitstream"
	"github.com/dsnet/invidx/listfmt"
)

// InterleavedIndex is spec section 3's InterleavedInvIndex: a single
// stream of (dgap, freq) pairs per list instead of two independent
// streams; ListMeta.FreqOffset is unused (always 0).
type InterleavedIndex struct {
	NumDocs     int
	NumLists    int
	NumPostings int
	Lists       []ListMeta
	ListStream  *bitstream.BitBuffer
	format      listfmt.ListFormat

	buf []uint64
}

// BuildInterleavedIndex builds the interleaved peer of an existing flat
// index, per spec section 4.5: re-decode each list, interleave (dgap,
// freq) into one buffer of length 2*list_len, and encode it with a single
// list format against universe num_docs+Ft.
func BuildInterleavedIndex(flat *FlatIndex, format listfmt.ListFormat) (*InterleavedIndex, error) {
	idx := &InterleavedIndex{
		NumDocs:    flat.NumDocs,
		NumLists:   flat.NumLists,
		format:     format,
		ListStream: bitstream.NewBitBuffer(),
	}
	sink := bitstream.NewBitSink(idx.ListStream)

	interleaved := make([]uint64, 0)
	var prevDoc uint64
	for i := 0; i < flat.NumLists; i++ {
		list, err := flat.List(i)
		if err != nil {
			return nil, err
		}

		if cap(interleaved) < 2*len(list.DocIDs) {
			interleaved = make([]uint64, 2*len(list.DocIDs))
		}
		interleaved = interleaved[:2*len(list.DocIDs)]

		prevDoc = 0
		for j, d := range list.DocIDs {
			gap := d - prevDoc
			prevDoc = d
			interleaved[2*j] = gap
			interleaved[2*j+1] = list.Freqs[j]
		}

		u := uint64(idx.NumDocs) + flat.Lists[i].Ft
		meta := ListMeta{DocOffset: sink.Tell(), ListLen: len(list.DocIDs), Ft: flat.Lists[i].Ft}
		idx.format.Encode(sink, interleaved, u)
		idx.Lists = append(idx.Lists, meta)
		idx.NumPostings += len(list.DocIDs)
	}
	return idx, nil
}

func (idx *InterleavedIndex) decodeBufSize() int {
	n := idx.NumDocs
	for _, m := range idx.Lists {
		if 2*m.ListLen > n {
			n = 2 * m.ListLen
		}
	}
	return n + 1024
}

// List decodes the i-th list, deinterleaving (dgap, freq) pairs and
// reconstructing doc IDs by prefix sum.
func (idx *InterleavedIndex) List(i int) (PostingList, error) {
	if i < 0 || i >= idx.NumLists {
		return PostingList{}, invariant("list index out of range")
	}
	if idx.buf == nil {
		idx.buf = make([]uint64, idx.decodeBufSize())
	}

	m := idx.Lists[i]
	source := bitstream.NewBitSource(idx.ListStream)
	source.Seek(m.DocOffset)

	n := m.ListLen
	work := idx.buf[:2*n]
	u := uint64(idx.NumDocs) + m.Ft
	idx.format.Decode(source, work, u)

	docs := make([]uint64, n)
	freqs := make([]uint64, n)
	var prev uint64
	for j := 0; j < n; j++ {
		prev += work[2*j]
		docs[j] = prev
		freqs[j] = work[2*j+1]
	}
	return PostingList{DocIDs: docs, Freqs: freqs}, nil
}
