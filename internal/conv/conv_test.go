package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := IntToUint32(42)
		assert.NoError(t, err)
		assert.Equal(t, uint32(42), got)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := IntToUint32(math.MaxUint32 + 1)
		assert.Error(t, err)
	})
}

func TestIntToUint64(t *testing.T) {
	got, err := IntToUint64(42)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), got)

	_, err = IntToUint64(-1)
	assert.Error(t, err)
}

func TestUint64ToInt(t *testing.T) {
	got, err := Uint64ToInt(42)
	assert.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.Error(t, err)
}

func TestBytesRoundTrip(t *testing.T) {
	t.Run("float64", func(t *testing.T) {
		in := []float64{1.5, -2.25, math.Pi}
		b := BytesView(in)
		require.Len(t, b, 24)

		out, ok := SliceCopy[float64](b)
		require.True(t, ok)
		assert.Equal(t, in, out)
	})

	t.Run("int32", func(t *testing.T) {
		in := []int32{1, -2, 3}
		out, ok := SliceCopy[int32](BytesView(in))
		require.True(t, ok)
		assert.Equal(t, in, out)
	})

	t.Run("view aliases", func(t *testing.T) {
		in := []int64{1, 2}
		view, ok := SliceView[int64](BytesView(in))
		require.True(t, ok)
		view[0] = 7
		assert.Equal(t, int64(7), in[0])
	})

	t.Run("ragged length rejected", func(t *testing.T) {
		_, ok := SliceView[float64](make([]byte, 12))
		assert.False(t, ok)
		_, ok = SliceCopy[float64](make([]byte, 12))
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, BytesView([]float64(nil)))
		out, ok := SliceCopy[float64](nil)
		require.True(t, ok)
		assert.Nil(t, out)
	})
}
