package persist

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ndgo"
	"github.com/hupe1980/ndgo/testutil"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	compressions := []Compression{CompressionNone, CompressionZstd, CompressionLZ4}

	for _, c := range compressions {
		t.Run(c.String(), func(t *testing.T) {
			a, err := ndgo.FromNested[float64]([][]float64{{1.5, 2}, {3, 4.25}, {5, 6}})
			require.NoError(t, err)

			data, err := EncodeBytes(a, c)
			require.NoError(t, err)

			got, err := DecodeBytes[float64](data)
			require.NoError(t, err)
			assert.True(t, got.Equal(a))
			assert.True(t, got.Contiguous())
		})
	}
}

func TestEncodeNonContiguousView(t *testing.T) {
	// Encoding a reversed view must persist the logical elements, compacted.
	a, err := ndgo.FromSlice([]int32{1, 2, 3, 4, 5}, ndgo.Shape{5})
	require.NoError(t, err)
	rev, err := a.Reverse(0)
	require.NoError(t, err)

	data, err := EncodeBytes(rev, CompressionNone)
	require.NoError(t, err)

	got, err := DecodeBytes[int32](data)
	require.NoError(t, err)
	assert.Equal(t, []int32{5, 4, 3, 2, 1}, got.Data())
}

func TestDecodeRejectsCorruption(t *testing.T) {
	a := testutil.RandomArray[float64](t, ndgo.Shape{4, 4}, 42)
	data, err := EncodeBytes(a, CompressionNone)
	require.NoError(t, err)

	t.Run("bad magic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] ^= 0xFF
		_, err := DecodeBytes[float64](bad)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("bad version", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[4] ^= 0xFF
		_, err := DecodeBytes[float64](bad)
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("flipped data bit", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-1] ^= 0x01
		_, err := DecodeBytes[float64](bad)
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := DecodeBytes[float64](data[:len(data)-8])
		assert.Error(t, err)
	})

	t.Run("dtype mismatch", func(t *testing.T) {
		_, err := DecodeBytes[int32](data)
		var de *ndgo.DTypeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, ndgo.DTypeInt32, de.Want)
		assert.Equal(t, ndgo.DTypeFloat64, de.Got)
	})
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a := testutil.RandomArray[float32](t, ndgo.Shape{8, 3}, 7)

	path := filepath.Join(dir, "a.nda")
	metrics := &ndgo.BasicMetricsCollector{}
	require.NoError(t, Save(ctx, path, a,
		WithCompression(CompressionZstd),
		WithMetrics(metrics),
	))

	got, err := Load[float32](ctx, path, WithMetrics(metrics))
	require.NoError(t, err)
	assert.True(t, got.Equal(a))

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Zero(t, stats.SaveErrors)

	t.Run("no temp files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.nda", entries[0].Name())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load[float32](ctx, filepath.Join(dir, "nope.nda"))
		assert.Error(t, err)
	})
}

func TestMap(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "m.nda")

	a, err := ndgo.FromNested[float64]([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.NoError(t, Save(ctx, path, a))

	t.Run("zero copy load", func(t *testing.T) {
		got, closer, err := Map[float64](path)
		require.NoError(t, err)
		defer closer.Close()

		assert.True(t, got.Equal(a))

		// Views over the mapped array work like any other view.
		row, err := got.View(1)
		require.NoError(t, err)
		v, err := row.At(0)
		require.NoError(t, err)
		assert.Equal(t, 3.0, v)
	})

	t.Run("compressed file is not mappable", func(t *testing.T) {
		zpath := filepath.Join(dir, "z.nda")
		require.NoError(t, Save(ctx, zpath, a, WithCompression(CompressionLZ4)))
		_, _, err := Map[float64](zpath)
		assert.ErrorIs(t, err, ErrNotMappable)
	})

	t.Run("dtype mismatch", func(t *testing.T) {
		_, _, err := Map[int64](path)
		var de *ndgo.DTypeError
		assert.ErrorAs(t, err, &de)
	})
}

func TestInspect(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "i.nda")

	a := testutil.RandomArray[int64](t, ndgo.Shape{2, 3, 4}, 1)
	require.NoError(t, Save(ctx, path, a, WithCompression(CompressionZstd)))

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, ndgo.DTypeInt64, info.DType)
	assert.Equal(t, ndgo.Shape{2, 3, 4}, info.Shape)
	assert.Equal(t, CompressionZstd, info.Compression)
	assert.Equal(t, int64(24*8), info.RawSize)
}

func TestCompressionByName(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		got, ok := CompressionByName(c.String())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := CompressionByName("snappy")
	assert.False(t, ok)
}
