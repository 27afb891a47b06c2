package ndgo

import "math"

// Range selects elements along one axis: Start, Start+Step, ... up to but
// excluding Stop. Step must be non-zero; a negative Step selects in reverse.
//
// Out-of-range bounds are clamped, not rejected, per standard slice
// semantics. For a negative Step, Stop == -1 includes index 0; All and
// Reversed cover the two common full-axis selections without knowing the
// extent.
type Range struct {
	Start int
	Stop  int
	Step  int
}

// All selects every element of an axis in order.
func All() Range { return Range{Start: 0, Stop: math.MaxInt, Step: 1} }

// Reversed selects every element of an axis in reverse order.
func Reversed() Range { return Range{Start: math.MaxInt, Stop: -1, Step: -1} }

// resolve clamps the range against an axis extent and returns the effective
// start index and selected element count.
func (r Range) resolve(extent int) (start, count int, err error) {
	if r.Step == 0 {
		return 0, 0, ErrZeroStep
	}
	if r.Step > 0 {
		start = min(max(r.Start, 0), extent)
		stop := min(max(r.Stop, 0), extent)
		if start >= stop {
			return start, 0, nil
		}
		return start, (stop-start-1)/r.Step + 1, nil
	}
	start = min(r.Start, extent-1)
	stop := max(r.Stop, -1)
	if start < 0 || start <= stop {
		return max(start, 0), 0, nil
	}
	return start, (start-stop-1)/(-r.Step) + 1, nil
}

// Slice returns a view selecting r along the given axis; all other axes are
// kept in full. The view shares storage with a. Clamping can produce an
// empty view (a zero extent on the sliced axis); that is not an error.
func (a *Array[T]) Slice(axis int, r Range) (*Array[T], error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, &IndexError{Axis: axis, Index: axis, Extent: len(a.shape)}
	}
	start, count, err := r.resolve(a.shape[axis])
	if err != nil {
		return nil, err
	}
	out := &Array[T]{
		data:    a.data,
		shape:   a.shape.Clone(),
		strides: append([]int(nil), a.strides...),
		offset:  a.offset,
	}
	out.shape[axis] = count
	out.strides[axis] = a.strides[axis] * r.Step
	if count > 0 {
		out.offset += start * a.strides[axis]
	}
	return out, nil
}

// Reverse returns a view of a with the given axis in reverse order.
func (a *Array[T]) Reverse(axis int) (*Array[T], error) {
	return a.Slice(axis, Reversed())
}
