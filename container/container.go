// Package container implements spec section 4's L4 layer: the four
// block-based random-access containers built on top of listfmt/intcodec/
// bytecodec — flat inverted index, interleaved inverted index, a generic
// LZ store over byte streams, and an RLZ store factorised against a
// learned dictionary — plus the on-disk layout (section 4.8) shared by
// all of them.
//
// Each container is produced by a Build function that writes into a
// growing BitBuffer, and is read through methods (List or Block) that seek
// a fresh BitSource into the sealed buffer; there are no separate writer
// and reader types.
package container

import "github.com/dsnet/invidx/ixerr"

const pkg = "container"

func corruptIndex(msg string) error {
	return ixerr.New(ixerr.CorruptIndex, pkg, msg)
}

func invariant(msg string) error {
	return ixerr.New(ixerr.InvariantViolation, pkg, msg)
}

func missingInput(msg string) error {
	return ixerr.New(ixerr.MissingInput, pkg, msg)
}

// ListMeta locates one posting list's encoded doc and freq regions within
// an InvIndex's two bit streams, per spec section 3.
type ListMeta struct {
	DocOffset  int
	FreqOffset int
	ListLen    int
	Ft         uint64
}

// PostingList is the decoded form of one term's entry, per spec section 3.
// DocIDs and Freqs alias reusable buffers owned by the reader that
// produced them — callers must copy before the next read if they need to
// retain a list.
type PostingList struct {
	DocIDs []uint64
	Freqs  []uint64
}
