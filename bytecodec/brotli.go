package bytecodec

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

// Brotli wraps github.com/andybalholm/brotli. The teacher's own brotli
// package (adapted into this module's earlier bzip2/flate work) is
// decode-only — it has no Writer — so a two-directional backend for this
// slot has to come from outside the retrieval pack; see DESIGN.md.
type Brotli struct{ Quality int }

func (Brotli) Type() string { return "brotli" }

func (z Brotli) Encode(sink Sink, raw []byte) {
	q := z.Quality
	if q == 0 {
		q = brotli.DefaultCompression
	}
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, q)
	if _, err := w.Write(raw); err != nil {
		panic(codecFailure("brotli", err))
	}
	if err := w.Close(); err != nil {
		panic(codecFailure("brotli", err))
	}
	putFramed32(sink, buf.Bytes())
}

func (Brotli) Decode(source Source, n int) []byte {
	payload := getFramed32(source)
	r := brotli.NewReader(bytes.NewReader(payload))
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		panic(corruptInput("brotli", "decoded fewer bytes than requested"))
	}
	return out
}
