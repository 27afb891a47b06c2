package ndgo

import "slices"

// Array is a fixed-shape N-dimensional view over flat contiguous storage.
//
// The zero value is not usable; construct arrays with FromNested, FromSlice,
// Zeros or Full. Views produced by View, Slice and Reverse share storage with
// the array they were derived from. The shape is immutable after
// construction.
type Array[T Scalar] struct {
	data    []T
	shape   Shape
	strides []int
	offset  int
}

// FromSlice creates an array over the given flat row-major data.
// The array shares the slice; it does not copy. The data length must match
// the shape's element count.
func FromSlice[T Scalar](data []T, shape Shape) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.Size() {
		return nil, &ShapeError{Depth: 0, Want: shape.Size(), Got: len(data)}
	}
	return &Array[T]{
		data:    data,
		shape:   shape.Clone(),
		strides: shape.Strides(),
	}, nil
}

// Zeros creates a zero-filled array of the given shape.
func Zeros[T Scalar](shape Shape) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Array[T]{
		data:    make([]T, shape.Size()),
		shape:   shape.Clone(),
		strides: shape.Strides(),
	}, nil
}

// Full creates an array of the given shape with every element set to v.
func Full[T Scalar](shape Shape, v T) (*Array[T], error) {
	a, err := Zeros[T](shape)
	if err != nil {
		return nil, err
	}
	for i := range a.data {
		a.data[i] = v
	}
	return a, nil
}

// Rank returns the number of axes.
func (a *Array[T]) Rank() int { return len(a.shape) }

// Shape returns a copy of the per-axis extents.
func (a *Array[T]) Shape() Shape { return a.shape.Clone() }

// Size returns the number of logical elements in the view.
func (a *Array[T]) Size() int { return a.shape.Size() }

// Contiguous reports whether the view's elements occupy a single dense
// row-major run of storage.
func (a *Array[T]) Contiguous() bool {
	return slices.Equal(a.strides, a.shape.Strides())
}

// Data returns the view's elements as one contiguous slice sharing the
// array's storage, or nil when the view is not contiguous (sliced with a
// step, reversed, ...). Use Copy to compact a non-contiguous view first.
func (a *Array[T]) Data() []T {
	if !a.Contiguous() {
		return nil
	}
	return a.data[a.offset : a.offset+a.shape.Size()]
}

// position resolves a full-rank index to a storage position.
// Validates every component before returning, so a failed resolution never
// touches storage.
func (a *Array[T]) position(indices []int) (int, error) {
	if len(indices) != len(a.shape) {
		return 0, &RankError{Indices: len(indices), Rank: len(a.shape)}
	}
	pos := a.offset
	for j, i := range indices {
		if i < 0 || i >= a.shape[j] {
			return 0, &IndexError{Axis: j, Index: i, Extent: a.shape[j]}
		}
		pos += i * a.strides[j]
	}
	return pos, nil
}

// At returns the scalar at a full-rank index.
func (a *Array[T]) At(indices ...int) (T, error) {
	pos, err := a.position(indices)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[pos], nil
}

// Set writes v at a full-rank index. The position is validated before the
// write; a failed Set never mutates storage. Because views share storage,
// the write is immediately visible through every overlapping view.
func (a *Array[T]) Set(v T, indices ...int) error {
	pos, err := a.position(indices)
	if err != nil {
		return err
	}
	a.data[pos] = v
	return nil
}

// View returns the sub-array selected by a partial index of 1 to rank-1
// leading axes. The result shares storage with a; construction is O(rank)
// and never copies elements. Use At for a full-rank index.
func (a *Array[T]) View(indices ...int) (*Array[T], error) {
	if len(indices) == 0 || len(indices) >= len(a.shape) {
		return nil, &RankError{Indices: len(indices), Rank: len(a.shape)}
	}
	offset := a.offset
	for j, i := range indices {
		if i < 0 || i >= a.shape[j] {
			return nil, &IndexError{Axis: j, Index: i, Extent: a.shape[j]}
		}
		offset += i * a.strides[j]
	}
	return &Array[T]{
		data:    a.data,
		shape:   a.shape[len(indices):].Clone(),
		strides: slices.Clone(a.strides[len(indices):]),
		offset:  offset,
	}, nil
}

// Copy returns a deep copy of the view's logical elements, compacted into
// fresh contiguous row-major storage. The copy owns its storage; mutations
// of the copy are never visible through a, and vice versa.
func (a *Array[T]) Copy() *Array[T] {
	out := &Array[T]{
		data:    make([]T, a.shape.Size()),
		shape:   a.shape.Clone(),
		strides: a.shape.Strides(),
	}
	if a.Contiguous() {
		copy(out.data, a.data[a.offset:a.offset+len(out.data)])
		return out
	}
	i := 0
	a.walk(func(pos int) bool {
		out.data[i] = a.data[pos]
		i++
		return true
	})
	return out
}

// CopyFrom overwrites every element of the view with the corresponding
// element of src. Shapes must match exactly. Writes go through the view's
// strides into shared storage.
func (a *Array[T]) CopyFrom(src *Array[T]) error {
	if src == nil {
		return ErrNilArray
	}
	if !a.shape.Equal(src.shape) {
		return &ShapeError{Depth: 0, Want: a.shape.Size(), Got: src.shape.Size()}
	}
	if a.Contiguous() && src.Contiguous() {
		copy(a.data[a.offset:a.offset+a.shape.Size()], src.data[src.offset:src.offset+src.shape.Size()])
		return nil
	}
	dst := make([]int, 0, a.shape.Size())
	a.walk(func(pos int) bool {
		dst = append(dst, pos)
		return true
	})
	i := 0
	src.walk(func(pos int) bool {
		a.data[dst[i]] = src.data[pos]
		i++
		return true
	})
	return nil
}

// Equal reports whether two arrays have identical shape and elements.
// Stride layout and storage identity do not matter, only logical content.
func (a *Array[T]) Equal(o *Array[T]) bool {
	if o == nil || !a.shape.Equal(o.shape) {
		return false
	}
	var ours []T
	a.walk(func(pos int) bool {
		ours = append(ours, a.data[pos])
		return true
	})
	i := 0
	eq := true
	o.walk(func(pos int) bool {
		if ours[i] != o.data[pos] {
			eq = false
			return false
		}
		i++
		return true
	})
	return eq
}

// walk visits the storage position of every logical element in row-major
// order until fn returns false. Odometer-style multi-index increment, no
// recursion.
func (a *Array[T]) walk(fn func(pos int) bool) {
	if a.shape.Size() == 0 {
		return
	}
	idx := make([]int, len(a.shape))
	pos := a.offset
	for {
		if !fn(pos) {
			return
		}
		j := len(a.shape) - 1
		for ; j >= 0; j-- {
			idx[j]++
			pos += a.strides[j]
			if idx[j] < a.shape[j] {
				break
			}
			pos -= idx[j] * a.strides[j]
			idx[j] = 0
		}
		if j < 0 {
			return
		}
	}
}
