package bytecodec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd wraps github.com/klauspost/compress/zstd, already an indirect
// dependency of the teacher's go.mod and used for the same backend by the
// vendored zstd decoder in the ethereum-go-ethereum example.
type Zstd struct{ Level zstd.EncoderLevel }

func (Zstd) Type() string { return "zstd" }

func (z Zstd) Encode(sink Sink, raw []byte) {
	level := z.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(level))
	if err != nil {
		panic(codecFailure("zstd", err))
	}
	if _, err := w.Write(raw); err != nil {
		panic(codecFailure("zstd", err))
	}
	if err := w.Close(); err != nil {
		panic(codecFailure("zstd", err))
	}
	putFramed64(sink, buf.Bytes())
}

func (Zstd) Decode(source Source, n int) []byte {
	payload := getFramed64(source)
	r, err := zstd.NewReader(bytes.NewReader(payload))
	if err != nil {
		panic(codecFailure("zstd", err))
	}
	defer r.Close()
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		panic(corruptInput("zstd", "decoded fewer bytes than requested"))
	}
	return out
}
