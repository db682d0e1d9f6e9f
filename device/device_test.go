package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	d, err := FromConfig("cuda:1")
	require.NoError(t, err)
	assert.Equal(t, Device{Type: CUDA, Index: 1}, d)

	// The index defaults to 0.
	d, err = FromConfig("cpu")
	require.NoError(t, err)
	assert.Equal(t, Device{Type: CPU, Index: 0}, d)

	for _, config := range []string{"tpu:0", "cuda:x", "cuda:-1", ""} {
		_, err = FromConfig(config)
		assert.Error(t, err, "config %q", config)
	}
}

func TestOk(t *testing.T) {
	assert.False(t, Unset().Ok())
	assert.False(t, Device{Type: Unknown, Index: 0}.Ok())
	assert.False(t, Device{Type: CUDA, Index: -1}.Ok())
	assert.True(t, Device{Type: CUDA, Index: 0}.Ok())
}

func TestString(t *testing.T) {
	assert.Equal(t, "cuda:1", Device{Type: CUDA, Index: 1}.String())
	assert.Equal(t, "unset", Unset().String())
}

func TestCurrentAndSet(t *testing.T) {
	t.Setenv(TENSILE_DEVICE, "")
	t.Cleanup(func() { Set(Unset()) })

	Set(Unset())
	assert.False(t, Current().Ok())

	want := Device{Type: CUDA, Index: 2}
	Set(want)
	assert.Equal(t, want, Current())
}

func TestCurrentFromEnvironment(t *testing.T) {
	t.Setenv(TENSILE_DEVICE, "cuda:3")
	t.Cleanup(func() { Set(Unset()) })

	Set(Unset())
	assert.Equal(t, Device{Type: CUDA, Index: 3}, Current())
}
