package ndgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
		require.NoError(t, err)
		assert.Equal(t, Shape{2, 3}, a.Shape())
		assert.Equal(t, 2, a.Rank())
		assert.Equal(t, 6, a.Size())
		assert.True(t, a.Contiguous())
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := FromSlice([]float64{1, 2, 3}, Shape{2, 2})
		var se *ShapeError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 4, se.Want)
		assert.Equal(t, 3, se.Got)
	})

	t.Run("invalid shape", func(t *testing.T) {
		_, err := FromSlice([]float64{}, Shape{})
		var se *ShapeError
		assert.ErrorAs(t, err, &se)

		_, err = FromSlice([]float64{}, Shape{0, 2})
		assert.ErrorAs(t, err, &se)
	})

	t.Run("shares storage", func(t *testing.T) {
		data := []int32{1, 2, 3, 4}
		a, err := FromSlice(data, Shape{4})
		require.NoError(t, err)
		require.NoError(t, a.Set(9, 2))
		assert.Equal(t, int32(9), data[2])
	})
}

func TestZerosFull(t *testing.T) {
	a, err := Zeros[float32](Shape{3, 2})
	require.NoError(t, err)
	v, err := a.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(0), v)

	f, err := Full(Shape{2, 2}, int64(7))
	require.NoError(t, err)
	for _, x := range f.Values() {
		assert.Equal(t, int64(7), x)
	}
}

func TestAt(t *testing.T) {
	a, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)

	t.Run("full index", func(t *testing.T) {
		v, err := a.At(1, 2)
		require.NoError(t, err)
		assert.Equal(t, 6.0, v)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := a.At(0, 3)
		var ie *IndexError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, 1, ie.Axis)
		assert.Equal(t, 3, ie.Index)
		assert.Equal(t, 3, ie.Extent)
	})

	t.Run("negative index", func(t *testing.T) {
		_, err := a.At(-1, 0)
		var ie *IndexError
		assert.ErrorAs(t, err, &ie)
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := a.At(1)
		var re *RankError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, 1, re.Indices)
		assert.Equal(t, 2, re.Rank)

		_, err = a.At(0, 0, 0)
		assert.ErrorAs(t, err, &re)
	})
}

func TestView(t *testing.T) {
	a, err := FromNested[float64]([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	t.Run("first axis view", func(t *testing.T) {
		row, err := a.View(0)
		require.NoError(t, err)
		assert.Equal(t, Shape{2}, row.Shape())
		assert.Equal(t, "[1 2]", row.String())
	})

	t.Run("view shares storage with parent", func(t *testing.T) {
		row, err := a.View(0)
		require.NoError(t, err)
		require.NoError(t, row.Set(9, 1))

		v, err := a.At(0, 1)
		require.NoError(t, err)
		assert.Equal(t, 9.0, v)
	})

	t.Run("parent mutation visible through view", func(t *testing.T) {
		row, err := a.View(1)
		require.NoError(t, err)
		require.NoError(t, a.Set(42, 1, 0))

		v, err := row.At(0)
		require.NoError(t, err)
		assert.Equal(t, 42.0, v)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := a.View(2)
		var ie *IndexError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, 0, ie.Axis)
	})

	t.Run("full index is not a view", func(t *testing.T) {
		_, err := a.View(0, 0)
		var re *RankError
		assert.ErrorAs(t, err, &re)
	})

	t.Run("multi axis partial index", func(t *testing.T) {
		b, err := FromSlice([]int64{0, 1, 2, 3, 4, 5, 6, 7}, Shape{2, 2, 2})
		require.NoError(t, err)
		v, err := b.View(1, 0)
		require.NoError(t, err)
		assert.Equal(t, Shape{2}, v.Shape())
		assert.Equal(t, "[4 5]", v.String())
	})
}

func TestSet(t *testing.T) {
	a, err := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)

	t.Run("write", func(t *testing.T) {
		require.NoError(t, a.Set(8, 1, 1))
		v, err := a.At(1, 1)
		require.NoError(t, err)
		assert.Equal(t, 8.0, v)
	})

	t.Run("no partial mutation on failure", func(t *testing.T) {
		before := a.Copy()
		err := a.Set(99, 1, 5)
		var ie *IndexError
		require.ErrorAs(t, err, &ie)
		assert.True(t, a.Equal(before))
	})
}

func TestCopy(t *testing.T) {
	t.Run("independence", func(t *testing.T) {
		a, err := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
		require.NoError(t, err)
		b := a.Copy()
		require.NoError(t, b.Set(99, 0, 0))

		v, err := a.At(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1.0, v)
		assert.True(t, b.Contiguous())
	})

	t.Run("compacts non contiguous view", func(t *testing.T) {
		a, err := FromSlice([]int32{1, 2, 3, 4, 5}, Shape{5})
		require.NoError(t, err)
		r, err := a.Reverse(0)
		require.NoError(t, err)
		c := r.Copy()
		assert.True(t, c.Contiguous())
		assert.Equal(t, []int32{5, 4, 3, 2, 1}, c.Data())
	})
}

func TestCopyFrom(t *testing.T) {
	a, err := Zeros[float64](Shape{2, 2})
	require.NoError(t, err)
	src, err := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)

	require.NoError(t, a.CopyFrom(src))
	assert.True(t, a.Equal(src))

	t.Run("shape mismatch", func(t *testing.T) {
		bad, err := Zeros[float64](Shape{4})
		require.NoError(t, err)
		var se *ShapeError
		assert.ErrorAs(t, a.CopyFrom(bad), &se)
	})

	t.Run("through strided view", func(t *testing.T) {
		b, err := Zeros[float64](Shape{4})
		require.NoError(t, err)
		rev, err := b.Reverse(0)
		require.NoError(t, err)
		src, err := FromSlice([]float64{1, 2, 3, 4}, Shape{4})
		require.NoError(t, err)
		require.NoError(t, rev.CopyFrom(src))
		assert.Equal(t, []float64{4, 3, 2, 1}, b.Data())
	})
}

func TestEqual(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	b, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	c, _ := FromSlice([]float64{1, 2, 3, 5}, Shape{2, 2})
	d, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{4})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))

	// Layout does not matter, only logical content.
	rev, err := a.Reverse(0)
	require.NoError(t, err)
	expected, _ := FromSlice([]float64{3, 4, 1, 2}, Shape{2, 2})
	assert.True(t, rev.Equal(expected))
}

func TestData(t *testing.T) {
	a, err := FromSlice([]int64{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, a.Data())

	rev, err := a.Reverse(0)
	require.NoError(t, err)
	assert.Nil(t, rev.Data())

	// A plain first-axis view stays contiguous.
	row, err := a.View(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, row.Data())
}

func TestString(t *testing.T) {
	a, err := FromNested[int32]([][]int32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, "[[1 2] [3 4]]", a.String())
}
