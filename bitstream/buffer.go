// Package bitstream implements the L1 bit-level stream abstraction shared
// by every integer codec in this store: a growable BitBuffer, an
// append-only BitSink cursor for encoding, and a read-only BitSource
// cursor for decoding.
//
// The shape mirrors the bitReader in github.com/dsnet/compress/flate,
// generalized from "sequential over an io.Reader" to "random access over
// an owned or memory-mapped byte buffer", since the containers built on
// top (flat invidx, RLZ store, ...) need to seek to an arbitrary list or
// block offset rather than stream forward only.
package bitstream

import "github.com/dsnet/invidx/ixerr"

const pkg = "bitstream"

// minCapBits is the floor on a freshly allocated BitBuffer's capacity.
const minCapBits = 1_000_000

// slackBits is the permanent trailing slack kept beyond the logical
// length, so that a 64-bit read at length-1 never reads out of bounds.
const slackBits = 64

// BitBuffer is a growable sequence of bits backed by a byte array whose
// length is always a multiple of 8 (i.e. capacity is always a multiple of
// 64 bits, the "word" granularity of the spec). Logical length in bits is
// always <= capacity; bits beyond the logical length are unspecified.
//
// A BitBuffer is created and owned by exactly one builder (one BitSink);
// once sealed it may be read by any number of concurrent BitSource
// cursors, since reads never mutate it.
type BitBuffer struct {
	bytes  []byte
	length int // logical length, in bits
}

// NewBitBuffer returns an empty, pre-sized BitBuffer.
func NewBitBuffer() *BitBuffer {
	b := &BitBuffer{}
	b.growTo(minCapBits)
	return b
}

// capBits returns the current capacity in bits.
func (b *BitBuffer) capBits() int { return len(b.bytes) * 8 }

// Len returns the logical length of the buffer, in bits.
func (b *BitBuffer) Len() int { return b.length }

// Bytes returns the raw backing storage. Only the first ceil(Len()/8)
// bytes are meaningful; the rest is slack. Callers must not retain a
// mutable view across further writes to the buffer, since growth
// reallocates the backing array.
func (b *BitBuffer) Bytes() []byte { return b.bytes }

// growTo ensures the buffer's capacity is at least n bits, doubling
// (starting from the 1,000,000-bit floor) and always leaving one extra
// 64-bit word of slack beyond whatever was requested.
func (b *BitBuffer) growTo(n int) {
	if b.capBits() >= n {
		return
	}
	newCapBits := b.capBits()
	if newCapBits == 0 {
		newCapBits = minCapBits
	}
	for newCapBits < n {
		newCapBits *= 2
	}
	newCapBits += slackBits
	nb := (newCapBits + 7) / 8
	nb -= nb % 8 // keep byte length a multiple of 8 (64-bit words)
	grown := make([]byte, nb)
	copy(grown, b.bytes)
	b.bytes = grown
}

// ensureCapacity grows the buffer, if needed, so that bit position
// bitPos can be written with a span of nb bits while preserving the
// permanent slackBits beyond it.
func (b *BitBuffer) ensureCapacity(bitPos int, nb uint) {
	b.growTo(bitPos + int(nb) + slackBits)
}

func invariant(msg string) error {
	return ixerr.New(ixerr.InvariantViolation, pkg, msg)
}
