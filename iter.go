package ndgo

import "iter"

// Rows iterates the first-axis sub-views of a rank >= 2 array in index
// order. Each yielded view shares storage with a. The sequence is lazy and
// restartable. For a rank-1 array the first-axis items are scalars; use
// Values instead.
func (a *Array[T]) Rows() iter.Seq2[int, *Array[T]] {
	return func(yield func(int, *Array[T]) bool) {
		if len(a.shape) < 2 {
			return
		}
		for i := 0; i < a.shape[0]; i++ {
			v, err := a.View(i)
			if err != nil {
				return
			}
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values iterates all elements in row-major order together with their flat
// position. For a rank-1 array the flat position equals the axis index.
// The sequence is lazy and restartable.
func (a *Array[T]) Values() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		a.walk(func(pos int) bool {
			ok := yield(i, a.data[pos])
			i++
			return ok
		})
	}
}
