package bytecodec

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4"
)

// Lz4hc wraps github.com/pierrec/lz4 with a non-zero CompressionLevel,
// which switches the writer from the fast LZ4 mode to LZ4 high-compression
// mode, grounded in the vendored pierrec/lz4 copy in the retrieval pack.
type Lz4hc struct{ Level int }

func (Lz4hc) Type() string { return "lz4hc" }

func (z Lz4hc) Encode(sink Sink, raw []byte) {
	level := z.Level
	if level == 0 {
		level = 9
	}
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	w.Header = lz4.Header{CompressionLevel: level}
	if _, err := w.Write(raw); err != nil {
		panic(codecFailure("lz4hc", err))
	}
	if err := w.Close(); err != nil {
		panic(codecFailure("lz4hc", err))
	}
	putFramed32(sink, buf.Bytes())
}

func (Lz4hc) Decode(source Source, n int) []byte {
	payload := getFramed32(source)
	r := lz4.NewReader(bytes.NewReader(payload))
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		panic(corruptInput("lz4hc", "decoded fewer bytes than requested"))
	}
	return out
}
