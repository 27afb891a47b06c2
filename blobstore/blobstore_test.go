package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeUnderTest runs the shared contract suite against a BlobStore.
func storeUnderTest(t *testing.T, store BlobStore) {
	ctx := context.Background()

	t.Run("put and open", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/chunk-0", []byte("hello")))

		b, err := store.Open(ctx, "a/chunk-0")
		require.NoError(t, err)
		defer b.Close()

		assert.Equal(t, int64(5), b.Size())
		data, err := ReadAll(ctx, store, "a/chunk-0")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/chunk-0", []byte("world!")))
		data, err := ReadAll(ctx, store, "a/chunk-0")
		require.NoError(t, err)
		assert.Equal(t, []byte("world!"), data)
	})

	t.Run("read at offset", func(t *testing.T) {
		b, err := store.Open(ctx, "a/chunk-0")
		require.NoError(t, err)
		defer b.Close()

		p := make([]byte, 3)
		n, err := b.ReadAt(p, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []byte("orl"), p)
	})

	t.Run("missing blob", func(t *testing.T) {
		_, err := store.Open(ctx, "a/missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/chunk-1", []byte("x")))
		require.NoError(t, store.Put(ctx, "b/other", []byte("y")))

		names, err := store.List(ctx, "a/")
		require.NoError(t, err)
		assert.Equal(t, []string{"a/chunk-0", "a/chunk-1"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "a/chunk-1"))
		_, err := store.Open(ctx, "a/chunk-1")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting a missing blob is not an error.
		assert.NoError(t, store.Delete(ctx, "a/chunk-1"))
	})
}

func TestMemoryStore(t *testing.T) {
	storeUnderTest(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	storeUnderTest(t, NewLocalStore(t.TempDir()))
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", data))
	data[0] = 'z'

	got, err := ReadAll(ctx, store, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
	assert.Equal(t, 1, store.Len())
}

func TestLocalStoreMappable(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "m", []byte("mapped")))

	b, err := store.Open(ctx, "m")
	require.NoError(t, err)
	defer b.Close()

	m, ok := b.(Mappable)
	require.True(t, ok)
	data, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("mapped"), data)
}
