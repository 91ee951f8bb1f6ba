// Package ixerr defines the error kinds shared by every layer of the
// compressed postings store: the bit stream, the integer and byte codecs,
// the list formats, and the block containers built on top of them.
//
// None of those packages defines an error type of its own: every failure
// they report is an *Error from this package carrying a Kind, so that a
// caller one layer removed from the failure site can still tell a missing
// file apart from a corrupt one.
package ixerr

import "fmt"

// Kind classifies an error into one of the categories spec'd for this
// store. See the package doc for why these cross package boundaries.
type Kind int

const (
	// MissingInput means an expected input file is absent.
	MissingInput Kind = iota + 1
	// CorruptIndex means on-disk header sizes, block-offset monotonicity,
	// or checksums disagree.
	CorruptIndex
	// CorruptInput means the posting format was truncated or a codec's
	// length prefix contradicts its payload.
	CorruptInput
	// CodecFailure means a backend compression library signalled an error.
	CodecFailure
	// InvariantViolation means an internal bug: a seek past the end of a
	// buffer, a misaligned alignment call, or similar misuse that is never
	// expected to happen given correct callers.
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case MissingInput:
		return "missing input"
	case CorruptIndex:
		return "corrupt index"
	case CorruptInput:
		return "corrupt input"
	case CodecFailure:
		return "codec failure"
	case InvariantViolation:
		return "invariant violation"
	default:
		return "unknown error"
	}
}

// Error is a kinded error carrying the package that raised it and either a
// message or a wrapped cause.
type Error struct {
	Kind    Kind
	Pkg     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Pkg, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pkg, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs a Kind error with a message.
func New(kind Kind, pkg, msg string) error {
	return &Error{Kind: kind, Pkg: pkg, Message: msg}
}

// Wrap constructs a Kind error around a lower-level cause.
func Wrap(kind Kind, pkg string, cause error) error {
	return &Error{Kind: kind, Pkg: pkg, Cause: cause}
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Kind == kind
}
