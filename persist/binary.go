package persist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/ndgo"
	"github.com/hupe1980/ndgo/internal/conv"
)

// Encode writes the array to w in the ndgo binary format.
// Non-contiguous views are compacted first; the file always holds a dense
// row-major data section. Returns the number of bytes written.
func Encode[T ndgo.Scalar](w io.Writer, a *ndgo.Array[T], compression Compression) (int, error) {
	if a == nil {
		return 0, ndgo.ErrNilArray
	}

	data := a.Data()
	if data == nil {
		data = a.Copy().Data()
	}
	raw := conv.BytesView(data)

	stored, err := compress(compression, raw)
	if err != nil {
		return 0, err
	}

	shape := a.Shape()
	shapeBytes, err := encodeShape(shape)
	if err != nil {
		return 0, err
	}

	rank, err := conv.IntToUint32(shape.Rank())
	if err != nil {
		return 0, err
	}

	h := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		DType:       uint8(ndgo.DTypeOf[T]()),
		Compression: uint8(compression),
		Rank:        rank,
		StoredSize:  uint64(len(stored)),
		RawSize:     uint64(len(raw)),
		Checksum:    Checksum(shapeBytes, stored),
	}

	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return 0, err
	}
	if _, err := w.Write(shapeBytes); err != nil {
		return 0, err
	}
	if _, err := w.Write(stored); err != nil {
		return 0, err
	}
	return HeaderSize + len(shapeBytes) + len(stored), nil
}

// Decode reads an array in the ndgo binary format from r.
// The element type recorded in the header must match T.
func Decode[T ndgo.Scalar](r io.Reader) (*ndgo.Array[T], error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	shape, shapeBytes, err := readShape(r, h)
	if err != nil {
		return nil, err
	}

	storedSize, err := conv.Uint64ToInt(h.StoredSize)
	if err != nil {
		return nil, err
	}
	stored := make([]byte, storedSize)
	if _, err := io.ReadFull(r, stored); err != nil {
		return nil, err
	}

	if sum := Checksum(shapeBytes, stored); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got 0x%08x, expected 0x%08x", ErrChecksumMismatch, sum, h.Checksum)
	}

	return buildArray[T](h, shape, stored)
}

// DecodeBytes is a convenience wrapper over Decode for in-memory data.
func DecodeBytes[T ndgo.Scalar](data []byte) (*ndgo.Array[T], error) {
	return Decode[T](bytes.NewReader(data))
}

// EncodeBytes is a convenience wrapper over Encode returning the encoded file.
func EncodeBytes[T ndgo.Scalar](a *ndgo.Array[T], compression Compression) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Encode(&buf, a, compression); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readHeader(r io.Reader) (*FileHeader, error) {
	var h FileHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if h.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, h.Version)
	}
	return &h, nil
}

func encodeShape(shape ndgo.Shape) ([]byte, error) {
	out := make([]byte, 0, 8*shape.Rank())
	for _, d := range shape {
		v, err := conv.IntToUint64(d)
		if err != nil {
			return nil, err
		}
		out = binary.LittleEndian.AppendUint64(out, v)
	}
	return out, nil
}

func readShape(r io.Reader, h *FileHeader) (ndgo.Shape, []byte, error) {
	rank, err := conv.Uint32ToInt(h.Rank)
	if err != nil {
		return nil, nil, err
	}
	shapeBytes := make([]byte, 8*rank)
	if _, err := io.ReadFull(r, shapeBytes); err != nil {
		return nil, nil, err
	}
	shape, err := decodeShape(shapeBytes)
	if err != nil {
		return nil, nil, err
	}
	return shape, shapeBytes, nil
}

func decodeShape(shapeBytes []byte) (ndgo.Shape, error) {
	shape := make(ndgo.Shape, len(shapeBytes)/8)
	for j := range shape {
		d, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(shapeBytes[8*j:]))
		if err != nil {
			return nil, err
		}
		shape[j] = d
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return shape, nil
}

// buildArray decompresses the data section and validates it against the
// header before constructing the array.
func buildArray[T ndgo.Scalar](h *FileHeader, shape ndgo.Shape, stored []byte) (*ndgo.Array[T], error) {
	dtype := ndgo.DType(h.DType)
	if want := ndgo.DTypeOf[T](); dtype != want {
		return nil, &ndgo.DTypeError{Want: want, Got: dtype}
	}

	rawSize, err := conv.Uint64ToInt(h.RawSize)
	if err != nil {
		return nil, err
	}
	if rawSize != shape.Size()*dtype.ItemSize() {
		return nil, fmt.Errorf("%w: raw size %d does not match shape %v", ErrInvalidFormat, rawSize, shape)
	}

	raw, err := decompress(Compression(h.Compression), stored, rawSize)
	if err != nil {
		return nil, err
	}

	data, ok := conv.SliceCopy[T](raw)
	if !ok {
		return nil, fmt.Errorf("%w: data section not a multiple of the element size", ErrInvalidFormat)
	}
	return ndgo.FromSlice(data, shape)
}
