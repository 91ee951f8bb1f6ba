package container

import (
	"github.com/dsnet/invidx/bitstream"
	"github.com/dsnet/invidx/listfmt"
)

// PostingSource is the shape container consumes from the external d2si
// iterator (postingsrc.Source implements it) without needing to know
// anything about that format.
type PostingSource interface {
	Next() (docIDs, freqs []uint64, ok bool, err error)
}

// FlatIndex is spec section 3's InvIndex: independent per-list doc and
// freq streams, each list located by a ListMeta entry.
type FlatIndex struct {
	NumDocs      int
	NumLists     int
	NumPostings  int
	Lists        []ListMeta
	DocStream    *bitstream.BitBuffer
	FreqStream   *bitstream.BitBuffer
	docFormat    listfmt.ListFormat
	freqFormat   listfmt.ListFormat

	docBuf  []uint64
	freqBuf []uint64
}

// BuildFlatIndex consumes src to completion, encoding each list with the
// given doc/freq list formats (spec section 4.4's build path).
func BuildFlatIndex(src PostingSource, numDocs int, docFormat, freqFormat listfmt.ListFormat) (*FlatIndex, error) {
	idx := &FlatIndex{
		NumDocs:    numDocs,
		docFormat:  docFormat,
		freqFormat: freqFormat,
		DocStream:  bitstream.NewBitBuffer(),
		FreqStream: bitstream.NewBitBuffer(),
	}
	docSink := bitstream.NewBitSink(idx.DocStream)
	freqSink := bitstream.NewBitSink(idx.FreqStream)

	for {
		docIDs, freqs, ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		var ft uint64
		for _, f := range freqs {
			ft += f
		}

		meta := ListMeta{
			DocOffset:  docSink.Tell(),
			FreqOffset: freqSink.Tell(),
			ListLen:    len(docIDs),
			Ft:         ft,
		}

		if len(docIDs) > 0 && docIDs[len(docIDs)-1] > uint64(numDocs) {
			return nil, invariant("doc id exceeds num_docs")
		}
		idx.docFormat.Encode(docSink, docIDs, uint64(numDocs))
		idx.freqFormat.Encode(freqSink, freqs, ft)

		idx.Lists = append(idx.Lists, meta)
		idx.NumPostings += len(docIDs)
	}
	idx.NumLists = len(idx.Lists)
	return idx, nil
}

// decodeBufSize follows spec section 5's "max(num_docs, max_list_len) +
// 1024" slack rule for batched codecs that can overshoot their requested
// length by up to 127 values.
func (idx *FlatIndex) decodeBufSize() int {
	n := idx.NumDocs
	for _, m := range idx.Lists {
		if m.ListLen > n {
			n = m.ListLen
		}
	}
	return n + 1024
}

// List decodes the i-th posting list. The returned slices alias an
// internal reusable buffer; callers must copy before the next List call
// if they need to retain the result.
func (idx *FlatIndex) List(i int) (PostingList, error) {
	if i < 0 || i >= idx.NumLists {
		return PostingList{}, invariant("list index out of range")
	}
	if idx.docBuf == nil {
		n := idx.decodeBufSize()
		idx.docBuf = make([]uint64, n)
		idx.freqBuf = make([]uint64, n)
	}

	m := idx.Lists[i]
	docSource := bitstream.NewBitSource(idx.DocStream)
	docSource.Seek(m.DocOffset)
	freqSource := bitstream.NewBitSource(idx.FreqStream)
	freqSource.Seek(m.FreqOffset)

	docs := idx.docBuf[:m.ListLen]
	freqs := idx.freqBuf[:m.ListLen]

	docU := uint64(idx.NumDocs)
	idx.docFormat.Decode(docSource, docs, docU)
	idx.freqFormat.Decode(freqSource, freqs, m.Ft)

	return PostingList{DocIDs: docs, Freqs: freqs}, nil
}

// Validate checks spec section 4.4's load-time invariant: the sum of
// every list's length equals the recorded total posting count.
func (idx *FlatIndex) Validate() error {
	var sum int
	for _, m := range idx.Lists {
		sum += m.ListLen
	}
	if sum != idx.NumPostings {
		return corruptIndex("sum of list lengths does not match num_postings")
	}
	return nil
}
