package ndgo

import "slices"

// Shape is the sequence of per-axis extents of an array.
// A valid shape has at least one axis and only positive extents.
type Shape []int

// Rank returns the number of axes.
func (s Shape) Rank() int { return len(s) }

// Size returns the total number of elements, the product of all extents.
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Strides computes row-major (C-order) strides for the shape: the last axis
// varies fastest in storage.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	stride := 1
	for j := len(s) - 1; j >= 0; j-- {
		strides[j] = stride
		stride *= s[j]
	}
	return strides
}

// Equal reports whether two shapes have identical rank and extents.
func (s Shape) Equal(o Shape) bool { return slices.Equal(s, o) }

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape { return slices.Clone(s) }

// Validate checks that the shape has at least one axis and only positive
// extents.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return &ShapeError{Depth: 0, Want: 1, Got: 0}
	}
	for j, d := range s {
		if d <= 0 {
			return &ShapeError{Depth: j, Want: 1, Got: d}
		}
	}
	return nil
}
