package ndgo

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroStep is returned when a slice step of zero is given.
	ErrZeroStep = errors.New("slice step must be non-zero")

	// ErrNilArray is returned when an operation receives a nil array.
	ErrNilArray = errors.New("nil array")
)

// ShapeError indicates an invalid or inconsistent shape: jagged nested input
// at construction, a non-positive extent, or a shape/size mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ShapeError struct {
	Depth int // nesting depth (axis) at which the inconsistency was found
	Want  int
	Got   int
	cause error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch at depth %d: expected %d, got %d", e.Depth, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error { return e.cause }

// IndexError indicates an integer index outside [0, extent) on an axis.
type IndexError struct {
	Axis   int
	Index  int
	Extent int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d) on axis %d", e.Index, e.Extent, e.Axis)
}

// RankError indicates an index with the wrong number of components for the
// array's rank (too many, or too few where a full index is required).
type RankError struct {
	Indices int
	Rank    int
}

func (e *RankError) Error() string {
	return fmt.Sprintf("got %d index components for array of rank %d", e.Indices, e.Rank)
}

// ElementTypeError indicates a nested-input leaf that is not a supported
// scalar type.
type ElementTypeError struct {
	Value any
}

func (e *ElementTypeError) Error() string {
	return fmt.Sprintf("unsupported element type %T", e.Value)
}

// DTypeError indicates a mismatch between an array's element type and the
// element type recorded in persisted data.
type DTypeError struct {
	Want DType
	Got  DType
}

func (e *DTypeError) Error() string {
	return fmt.Sprintf("dtype mismatch: expected %s, got %s", e.Want, e.Got)
}
