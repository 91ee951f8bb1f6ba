package bytecodec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ZstdDict is Zstd parametrised by an externally set compression/
// decompression dictionary handle, per spec section 4.2's zstd_dict
// codec and section 4.7's ZstdDictStore (which reuses the same dictionary
// the RLZ factoriser would otherwise factorise against).
type ZstdDict struct {
	Level zstd.EncoderLevel
	Dict  []byte
}

// zstdRawDictID is the dictionary ID recorded in frames compressed against
// Dict, which is raw content rather than a trained zstd dictionary.
const zstdRawDictID = 1

func (ZstdDict) Type() string { return "zstd_dict" }

func (z ZstdDict) Encode(sink Sink, raw []byte) {
	level := z.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(level), zstd.WithEncoderDictRaw(zstdRawDictID, z.Dict))
	if err != nil {
		panic(codecFailure("zstd_dict", err))
	}
	if _, err := w.Write(raw); err != nil {
		panic(codecFailure("zstd_dict", err))
	}
	if err := w.Close(); err != nil {
		panic(codecFailure("zstd_dict", err))
	}
	putFramed64(sink, buf.Bytes())
}

func (z ZstdDict) Decode(source Source, n int) []byte {
	payload := getFramed64(source)
	r, err := zstd.NewReader(bytes.NewReader(payload), zstd.WithDecoderDictRaw(zstdRawDictID, z.Dict))
	if err != nil {
		panic(codecFailure("zstd_dict", err))
	}
	defer r.Close()
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		panic(corruptInput("zstd_dict", "decoded fewer bytes than requested"))
	}
	return out
}
