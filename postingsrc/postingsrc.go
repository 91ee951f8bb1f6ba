// Package postingsrc implements the external "d2si" binary posting-format
// iterator spec section 6 describes as a collaborator: the core never
// parses this format directly, it only consumes the (doc_ids, freqs)
// pairs postingsrc yields. The format is little-endian 32-bit records: the
// docs file starts with [1][num_docs], then per term
// [list_len][doc_id x list_len]; the freqs file is [list_len][freq x
// list_len] per term with no header.
package postingsrc

import (
	"encoding/binary"
	"io"

	"github.com/dsnet/invidx/ixerr"
)

const pkg = "postingsrc"

func missingInput(msg string) error {
	return ixerr.New(ixerr.MissingInput, pkg, msg)
}

func corruptInput(msg string) error {
	return ixerr.New(ixerr.CorruptInput, pkg, msg)
}

// Source iterates the d2si format's per-term (doc_ids, freqs) pairs.
type Source struct {
	docs  io.Reader
	freqs io.Reader

	NumDocs int

	docBuf  []uint64
	freqBuf []uint64
}

// Open reads the docs stream's [1][num_docs] header and returns a Source
// ready to iterate terms. docs and freqs must be positioned at the start
// of their respective files.
func Open(docs, freqs io.Reader) (*Source, error) {
	var hdr [2]uint32
	if err := binary.Read(docs, binary.LittleEndian, &hdr); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, corruptInput("docs stream truncated before header")
		}
		return nil, corruptInput(err.Error())
	}
	if hdr[0] != 1 {
		return nil, corruptInput("docs stream header's first record must be 1")
	}
	return &Source{docs: docs, freqs: freqs, NumDocs: int(hdr[1])}, nil
}

// Next reads the next term's posting list. It returns ok=false and a nil
// error at a clean end of stream (both files exhausted together).
func (s *Source) Next() (docIDs, freqs []uint64, ok bool, err error) {
	var lenBuf [1]uint32
	if err := binary.Read(s.docs, binary.LittleEndian, &lenBuf); err != nil {
		if err == io.EOF {
			var extra [1]byte
			if _, ferr := io.ReadFull(s.freqs, extra[:]); ferr != io.EOF {
				return nil, nil, false, corruptInput("freqs stream has data past the last docs list")
			}
			return nil, nil, false, nil
		}
		return nil, nil, false, corruptInput("docs stream: " + err.Error())
	}
	n := int(lenBuf[0])

	docRecs := make([]uint32, n)
	if err := binary.Read(s.docs, binary.LittleEndian, &docRecs); err != nil {
		return nil, nil, false, corruptInput("docs stream: truncated list body")
	}

	var freqLenBuf [1]uint32
	if err := binary.Read(s.freqs, binary.LittleEndian, &freqLenBuf); err != nil {
		return nil, nil, false, corruptInput("freqs stream: " + err.Error())
	}
	if int(freqLenBuf[0]) != n {
		return nil, nil, false, corruptInput("docs/freqs list length mismatch")
	}
	freqRecs := make([]uint32, n)
	if err := binary.Read(s.freqs, binary.LittleEndian, &freqRecs); err != nil {
		return nil, nil, false, corruptInput("freqs stream: truncated list body")
	}

	if cap(s.docBuf) < n {
		s.docBuf = make([]uint64, n)
		s.freqBuf = make([]uint64, n)
	}
	s.docBuf = s.docBuf[:n]
	s.freqBuf = s.freqBuf[:n]
	var prev uint64
	for i, v := range docRecs {
		dv := uint64(v)
		if i > 0 && dv <= prev {
			return nil, nil, false, corruptInput("doc IDs not strictly increasing")
		}
		s.docBuf[i] = dv
		prev = dv
	}
	for i, v := range freqRecs {
		if v == 0 {
			return nil, nil, false, corruptInput("zero frequency")
		}
		s.freqBuf[i] = uint64(v)
	}
	return s.docBuf, s.freqBuf, true, nil
}
