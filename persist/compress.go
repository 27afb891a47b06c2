package persist

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the data section compression of an array file.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "invalid"
	}
}

// CompressionByName returns a Compression by its stable name.
// Chunk manifests store the compression name rather than the numeric value.
func CompressionByName(name string) (Compression, bool) {
	switch name {
	case "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

// Shared stateless coders; EncodeAll/DecodeAll are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil)
	if err != nil {
		panic(fmt.Sprintf("ndgo/persist: zstd encoder: %v", err))
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("ndgo/persist: zstd decoder: %v", err))
	}
}

func compress(c Compression, raw []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return raw, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(raw, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, c)
	}
}

func decompress(c Compression, stored []byte, rawSize int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(stored) != rawSize {
			return nil, fmt.Errorf("%w: stored size %d does not match raw size %d", ErrInvalidFormat, len(stored), rawSize)
		}
		return stored, nil
	case CompressionZstd:
		raw, err := zstdDecoder.DecodeAll(stored, make([]byte, 0, rawSize))
		if err != nil {
			return nil, err
		}
		if len(raw) != rawSize {
			return nil, fmt.Errorf("%w: decompressed to %d bytes, expected %d", ErrInvalidFormat, len(raw), rawSize)
		}
		return raw, nil
	case CompressionLZ4:
		raw := make([]byte, rawSize)
		if _, err := io.ReadFull(lz4.NewReader(bytes.NewReader(stored)), raw); err != nil {
			return nil, err
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, c)
	}
}
