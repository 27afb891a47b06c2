package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestOpen(t *testing.T) {
	t.Run("maps file contents", func(t *testing.T) {
		path := writeTemp(t, []byte("hello ndarray"))
		m, err := Open(path)
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, []byte("hello ndarray"), m.Bytes())
		assert.Equal(t, 13, m.Size())
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTemp(t, nil)
		m, err := Open(path)
		require.NoError(t, err)
		defer m.Close()

		assert.Nil(t, m.Bytes())
		assert.Equal(t, 0, m.Size())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestClose(t *testing.T) {
	path := writeTemp(t, []byte("data"))
	m, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())

	// Idempotent.
	assert.NoError(t, m.Close())
}

func TestRegion(t *testing.T) {
	path := writeTemp(t, []byte("0123456789"))
	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	r, err := m.Region(2, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("2345"), r.Bytes())

	_, err = m.Region(8, 4)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = m.Region(-1, 2)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestReadAt(t *testing.T) {
	path := writeTemp(t, []byte("0123456789"))
	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	buf := make([]byte, 4)
	n, err := m.ReadAt(buf, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("3456"), buf)

	_, err = m.ReadAt(buf, 100)
	assert.Error(t, err)
}

func TestAdvise(t *testing.T) {
	path := writeTemp(t, []byte("0123456789"))
	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.NoError(t, m.Advise(AccessSequential))
	assert.NoError(t, m.Advise(AccessRandom))

	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.Advise(AccessSequential), ErrClosed)
}
