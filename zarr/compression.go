package zarr

import (
	"bytes"
	"fmt"
	"io"

	"github.com/qri-io/dataset/compression"
)

// CompressionMeta defines compression settings of an array's chunks
type CompressionMeta struct {
	ID      string `json:"id"`
	Cname   string `json:"cname,omitempty"`
	Clevel  int    `json:"clevel,omitempty"`
	Shuffle int    `json:"shuffle,omitempty"`
}

// Codec returns the stream codec named by the compressor id
func (m *CompressionMeta) Codec() (Codec, error) {
	if m == nil {
		return CodecNone, nil
	}
	return ParseCodec(m.ID)
}

// Codec names a stream compression format. The zero value stores bytes as-is.
type Codec string

const (
	CodecNone Codec = ""
	CodecGzip Codec = "gzip"
	CodecZstd Codec = "zst"
)

// ParseCodec maps a compressor id onto a supported codec
func ParseCodec(s string) (Codec, error) {
	switch s {
	case "", "none", "raw":
		return CodecNone, nil
	case "gzip", "gz":
		return CodecGzip, nil
	case "zstd", "zst":
		return CodecZstd, nil
	default:
		return CodecNone, fmt.Errorf("unsupported codec %q", s)
	}
}

func (c Codec) String() string {
	if c == CodecNone {
		return "none"
	}
	return string(c)
}

// Encode compresses d
func (c Codec) Encode(d []byte) ([]byte, error) {
	if c == CodecNone {
		return d, nil
	}
	buf := &bytes.Buffer{}
	w, err := compression.Compressor(string(c), buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(d); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode
func (c Codec) Decode(d []byte) ([]byte, error) {
	if c == CodecNone {
		return d, nil
	}
	r, err := compression.Decompressor(string(c), bytes.NewReader(d))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
