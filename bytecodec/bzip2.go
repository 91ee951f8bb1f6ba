package bytecodec

import (
	"bytes"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// gibSubChunk is the sub-chunk size the bzip2 encoder partitions its input
// into, per the length-prefix-per-chunk framing spec section 4.2 requires
// for this backend.
const gibSubChunk = 1 << 30

// BZip2 wraps github.com/dsnet/compress/bzip2's Writer/Reader behind the
// generic byte-compressor contract: a 32-bit length prefix per sub-chunk
// followed by its aligned payload.
type BZip2 struct{ Level int }

func (BZip2) Type() string { return "bzip2" }

func (z BZip2) Encode(sink Sink, raw []byte) {
	level := z.Level
	if level == 0 {
		level = bzip2.DefaultCompression
	}
	for len(raw) > 0 {
		n := gibSubChunk
		if n > len(raw) {
			n = len(raw)
		}
		chunk := raw[:n]
		raw = raw[n:]

		var buf bytes.Buffer
		w, err := bzip2.NewWriterLevel(&buf, level)
		if err != nil {
			panic(codecFailure("bzip2", err))
		}
		if _, err := w.Write(chunk); err != nil {
			panic(codecFailure("bzip2", err))
		}
		if err := w.Close(); err != nil {
			panic(codecFailure("bzip2", err))
		}
		putFramed32(sink, buf.Bytes())
	}
}

func (BZip2) Decode(source Source, n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		payload := getFramed32(source)
		r, err := bzip2.NewReader(bytes.NewReader(payload), nil)
		if err != nil {
			panic(codecFailure("bzip2", err))
		}
		want := gibSubChunk
		if rem := n - len(out); rem < want {
			want = rem
		}
		chunk := make([]byte, want)
		if _, err := io.ReadFull(r, chunk); err != nil {
			panic(corruptInput("bzip2", "decoded fewer bytes than requested"))
		}
		out = append(out, chunk...)
	}
	return out
}
