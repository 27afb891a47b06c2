package chunkstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/ndgo"
	"github.com/hupe1980/ndgo/internal/conv"
	"github.com/hupe1980/ndgo/persist"
)

// ManifestFormatVersion identifies the manifest layout. Readers reject
// manifests written with a newer format.
const ManifestFormatVersion = 1

// Manifest describes one published version of a chunked array.
// Manifests are immutable once written; a new Write produces a new one.
type Manifest struct {
	FormatVersion int    `json:"format_version"`
	Version       uint64 `json:"version"`
	DType         string `json:"dtype"`
	Shape         []int  `json:"shape"`
	ChunkShape    []int  `json:"chunk_shape"`
	Compression   string `json:"compression"`

	// Written is the serialized roaring bitmap of linear chunk indices
	// that hold data. Chunks absent from the set read back as zeros.
	Written []byte `json:"written_chunks"`
}

// Validate checks that the manifest is internally consistent.
func (m *Manifest) Validate() error {
	if m.FormatVersion != ManifestFormatVersion {
		return fmt.Errorf("unsupported manifest format version %d", m.FormatVersion)
	}

	if _, ok := ndgo.DTypeByName(m.DType); !ok {
		return fmt.Errorf("unknown dtype %q in manifest", m.DType)
	}

	if _, ok := persist.CompressionByName(m.Compression); !ok {
		return fmt.Errorf("unknown compression %q in manifest", m.Compression)
	}

	if len(m.Shape) == 0 || len(m.ChunkShape) != len(m.Shape) {
		return fmt.Errorf("manifest shape %v and chunk shape %v are inconsistent", m.Shape, m.ChunkShape)
	}

	for axis := range m.Shape {
		if m.Shape[axis] < 1 || m.ChunkShape[axis] < 1 {
			return fmt.Errorf("manifest has non-positive extent on axis %d", axis)
		}

		if m.ChunkShape[axis] > m.Shape[axis] {
			return fmt.Errorf("chunk shape %v exceeds array shape %v on axis %d", m.ChunkShape, m.Shape, axis)
		}
	}

	return nil
}

// Grid returns the number of chunks along each axis.
func (m *Manifest) Grid() []int {
	grid := make([]int, len(m.Shape))
	for axis := range m.Shape {
		grid[axis] = ceilDiv(m.Shape[axis], m.ChunkShape[axis])
	}

	return grid
}

// NumChunks returns the total number of chunks in the grid.
func (m *Manifest) NumChunks() int {
	n := 1
	for _, g := range m.Grid() {
		n *= g
	}

	return n
}

// ChunkIndex converts grid coordinates to a linear chunk index.
func (m *Manifest) ChunkIndex(coords []int) (int, error) {
	grid := m.Grid()
	if len(coords) != len(grid) {
		return 0, &ndgo.RankError{Indices: len(coords), Rank: len(grid)}
	}

	idx := 0
	for axis, c := range coords {
		if c < 0 || c >= grid[axis] {
			return 0, &ndgo.IndexError{Axis: axis, Index: c, Extent: grid[axis]}
		}

		idx = idx*grid[axis] + c
	}

	return idx, nil
}

// ChunkCoords converts a linear chunk index to grid coordinates.
func (m *Manifest) ChunkCoords(idx int) []int {
	grid := m.Grid()
	coords := make([]int, len(grid))

	for axis := len(grid) - 1; axis >= 0; axis-- {
		coords[axis] = idx % grid[axis]
		idx /= grid[axis]
	}

	return coords
}

// ChunkExtent returns the start offsets and sizes of the chunk at the
// given grid coordinates. Chunks on the trailing edge of an axis may be
// smaller than the chunk shape.
func (m *Manifest) ChunkExtent(coords []int) (starts, sizes []int) {
	starts = make([]int, len(coords))
	sizes = make([]int, len(coords))

	for axis, c := range coords {
		starts[axis] = c * m.ChunkShape[axis]
		sizes[axis] = min(m.ChunkShape[axis], m.Shape[axis]-starts[axis])
	}

	return starts, sizes
}

// WrittenSet deserializes the bitmap of written chunk indices.
func (m *Manifest) WrittenSet() (*roaring.Bitmap, error) {
	rb := roaring.New()
	if len(m.Written) == 0 {
		return rb, nil
	}

	if err := rb.UnmarshalBinary(m.Written); err != nil {
		return nil, fmt.Errorf("failed to decode written-chunk bitmap: %w", err)
	}

	return rb, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// chunkKey returns the blob name for the chunk at the given coordinates,
// e.g. "temps/c/0.2.1".
func chunkKey(name string, coords []int) string {
	var sb strings.Builder

	sb.WriteString(name)
	sb.WriteString("/c/")

	for axis, c := range coords {
		if axis > 0 {
			sb.WriteByte('.')
		}

		sb.WriteString(strconv.Itoa(c))
	}

	return sb.String()
}

func manifestKey(name string, version uint64) string {
	return fmt.Sprintf("%s/MANIFEST-%d.json", name, version)
}

func currentKey(name string) string {
	return name + "/CURRENT"
}

func chunkBit(idx int) (uint32, error) {
	return conv.IntToUint32(idx)
}
