package persist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/ndgo"
	"github.com/hupe1980/ndgo/internal/conv"
	"github.com/hupe1980/ndgo/internal/mmap"
)

// Save writes the array to path atomically: the file is written to a
// temporary sibling first and renamed into place, so readers never observe
// a partially written file.
func Save[T ndgo.Scalar](ctx context.Context, path string, a *ndgo.Array[T], optFns ...Option) error {
	o := applyOptions(optFns)

	start := time.Now()
	n, err := save(path, a, o.compression)
	o.metrics.RecordSave(n, time.Since(start), err)
	o.logger.LogSave(ctx, path, n, err)
	return err
}

func save[T ndgo.Scalar](path string, a *ndgo.Array[T], compression Compression) (int, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := Encode(tmp, a, compression)
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	return n, os.Rename(tmp.Name(), path)
}

// Load reads an array file into heap storage. The returned array owns its
// data and stays valid indefinitely; for large uncompressed files consider
// Map instead.
func Load[T ndgo.Scalar](ctx context.Context, path string, optFns ...Option) (*ndgo.Array[T], error) {
	o := applyOptions(optFns)

	start := time.Now()
	a, n, err := load[T](path)
	o.metrics.RecordLoad(n, time.Since(start), err)
	o.logger.LogLoad(ctx, path, n, err)
	return a, err
}

func load[T ndgo.Scalar](path string) (*ndgo.Array[T], int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	a, err := Decode[T](f)
	if err != nil {
		return nil, 0, err
	}
	return a, a.Size()*ndgo.DTypeOf[T]().ItemSize() + HeaderSize + 8*a.Rank(), nil
}

// Map memory-maps an uncompressed array file and returns an array whose
// storage aliases the file bytes, with no copy. The mapping is read-only:
// calling Set on the returned array (or any view of it) faults. Close the
// returned Closer to unmap; the array and every view derived from it become
// invalid afterwards.
//
// Compressed files cannot be mapped and fail with ErrNotMappable.
func Map[T ndgo.Scalar](path string) (*ndgo.Array[T], io.Closer, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, nil, err
	}

	a, err := decodeMapped[T](m.Bytes())
	if err != nil {
		m.Close()
		return nil, nil, err
	}
	return a, m, nil
}

func decodeMapped[T ndgo.Scalar](file []byte) (*ndgo.Array[T], error) {
	if len(file) < HeaderSize {
		return nil, fmt.Errorf("%w: file shorter than header", ErrInvalidFormat)
	}
	h, err := readHeader(bytes.NewReader(file[:HeaderSize]))
	if err != nil {
		return nil, err
	}
	if Compression(h.Compression) != CompressionNone {
		return nil, ErrNotMappable
	}
	if dtype, want := ndgo.DType(h.DType), ndgo.DTypeOf[T](); dtype != want {
		return nil, &ndgo.DTypeError{Want: want, Got: dtype}
	}

	rank, err := conv.Uint32ToInt(h.Rank)
	if err != nil {
		return nil, err
	}
	dataOff := HeaderSize + 8*rank
	rawSize, err := conv.Uint64ToInt(h.RawSize)
	if err != nil {
		return nil, err
	}
	if len(file) < dataOff+rawSize {
		return nil, fmt.Errorf("%w: file truncated", ErrInvalidFormat)
	}

	shapeBytes := file[HeaderSize:dataOff]
	raw := file[dataOff : dataOff+rawSize]

	if sum := Checksum(shapeBytes, raw); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got 0x%08x, expected 0x%08x", ErrChecksumMismatch, sum, h.Checksum)
	}

	shape, err := decodeShape(shapeBytes)
	if err != nil {
		return nil, err
	}
	if rawSize != shape.Size()*ndgo.DTypeOf[T]().ItemSize() {
		return nil, fmt.Errorf("%w: raw size %d does not match shape %v", ErrInvalidFormat, rawSize, shape)
	}

	data, ok := conv.SliceView[T](raw)
	if !ok {
		return nil, fmt.Errorf("%w: data section misaligned", ErrInvalidFormat)
	}
	return ndgo.FromSlice(data, shape)
}

// Info describes an array file without loading its data.
type Info struct {
	DType       ndgo.DType
	Shape       ndgo.Shape
	Compression Compression
	StoredSize  int64
	RawSize     int64
}

// Inspect reads only the header and shape sections of an array file.
func Inspect(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := readHeader(f)
	if err != nil {
		return nil, err
	}
	shape, _, err := readShape(f, h)
	if err != nil {
		return nil, err
	}
	return &Info{
		DType:       ndgo.DType(h.DType),
		Shape:       shape,
		Compression: Compression(h.Compression),
		StoredSize:  int64(h.StoredSize),
		RawSize:     int64(h.RawSize),
	}, nil
}
