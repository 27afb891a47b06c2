package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Shape []int64 `json:"shape"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCrossCodecCompatibility(t *testing.T) {
	// JSON and GoJSON must stay wire-compatible: manifests written with one
	// are read with whichever codec the opener configured.
	in := sample{Name: "temps", Shape: []int64{100, 100}}

	b := MustMarshal(JSON{}, in)
	var out sample
	require.NoError(t, GoJSON{}.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	b = MustMarshal(GoJSON{}, in)
	out = sample{}
	require.NoError(t, JSON{}.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}
