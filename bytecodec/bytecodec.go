// Package bytecodec implements spec section 4.2's "generic byte
// compressor" adapters: thin wrappers over zlib, bzip2, brotli, lz4hc,
// lzma, and zstd (with and without a pretrained dictionary) that all
// share one length-prefix-then-payload framing, so list formats can
// cascade any of them behind the same ByteCodec interface.
//
// Per spec, the length prefix is 32 bits for zlib/bzip2/brotli/lz4hc and
// 64 bits for zstd/lzma, written before the aligned payload so a decoder
// knows exactly how many bytes to feed its backend.
package bytecodec

import "github.com/dsnet/invidx/ixerr"

const pkg = "bytecodec"

// ByteCodec is implemented by every generic byte compressor adapter. Raw
// is always exactly n*sizeof(T) bytes on encode, where T is the integer
// width the caller is compressing (usually 4-byte postings); Decode is
// told exactly how many bytes to reproduce.
type ByteCodec interface {
	Type() string
	Encode(sink Sink, raw []byte)
	Decode(source Source, n int) []byte
}

// Sink and Source are the subset of bitstream's BitSink/BitSource this
// package needs; declaring them locally keeps bytecodec from depending on
// bitstream's concrete types directly, mirroring how the teacher's
// brotli and bzip2 packages each define their own minimal byteReader
// interface (flate/bit_reader.go) instead of sharing one across packages.
type Sink interface {
	PutInt(x uint64, w uint)
	PutBytes(data []byte)
	Align8()
	Tell() int
	Seek(pos int)
}

type Source interface {
	GetInt(w uint) uint64
	GetBytes(n int) []byte
	Align8()
	Tell() int
	Seek(pos int)
}

func codecFailure(name string, cause error) error {
	return ixerr.Wrap(ixerr.CodecFailure, pkg+"."+name, cause)
}

func corruptInput(name, msg string) error {
	return ixerr.New(ixerr.CorruptInput, pkg+"."+name, msg)
}

// putFramed32 writes a 32-bit length prefix followed by payload.
func putFramed32(sink Sink, payload []byte) {
	sink.PutInt(uint64(len(payload)), 32)
	sink.PutBytes(payload)
}

func getFramed32(source Source) []byte {
	n := source.GetInt(32)
	return source.GetBytes(int(n))
}

// putFramed64 writes a 64-bit length prefix followed by payload.
func putFramed64(sink Sink, payload []byte) {
	sink.PutInt(uint64(len(payload)), 64)
	sink.PutBytes(payload)
}

func getFramed64(source Source) []byte {
	n := source.GetInt(64)
	return source.GetBytes(int(n))
}
