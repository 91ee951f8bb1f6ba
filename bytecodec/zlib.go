package bytecodec

import (
	"bytes"
	"compress/zlib"
	"io"
)

// Zlib wraps the DEFLATE container format. Unlike the other backends in
// this package, no example repo in the retrieval pack implements the
// zlib *container* (header + Adler-32 trailer around raw DEFLATE) — the
// teacher's own flate/brotli packages are decoders for their respective
// raw formats, not encoders, and nothing else in the pack ships a zlib
// writer. compress/zlib is used here for that reason alone; see
// DESIGN.md.
type Zlib struct{ Level int }

func (Zlib) Type() string { return "zlib" }

func (z Zlib) Encode(sink Sink, raw []byte) {
	var buf bytes.Buffer
	level := z.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		panic(codecFailure("zlib", err))
	}
	if _, err := w.Write(raw); err != nil {
		panic(codecFailure("zlib", err))
	}
	if err := w.Close(); err != nil {
		panic(codecFailure("zlib", err))
	}
	putFramed32(sink, buf.Bytes())
}

func (Zlib) Decode(source Source, n int) []byte {
	payload := getFramed32(source)
	r, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		panic(codecFailure("zlib", err))
	}
	defer r.Close()
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		panic(corruptInput("zlib", "decoded fewer bytes than requested"))
	}
	return out
}
