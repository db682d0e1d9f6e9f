package shapes

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	s := Make(dtypes.Float32, 3, 4, 5)
	assert.Equal(t, 3, s.Rank())
	assert.Equal(t, 60, s.Size())
	assert.Equal(t, 5, s.Dim(-1))
	assert.Equal(t, 3, s.Dim(0))
	assert.Equal(t, "(Float32)[3 4 5]", s.String())

	require.Panics(t, func() { Make(dtypes.Float32, 3, -1) })
	require.Panics(t, func() { s.Dim(3) })
}

func TestScalar(t *testing.T) {
	s := Scalar[float64]()
	assert.True(t, s.IsScalar())
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, dtypes.Float64, s.DType)
}

func TestEqualAndClone(t *testing.T) {
	s := Make(dtypes.Int64, 2, 3)
	assert.True(t, s.Equal(Make(dtypes.Int64, 2, 3)))
	assert.False(t, s.Equal(Make(dtypes.Int64, 3, 2)))
	assert.False(t, s.Equal(Make(dtypes.Int32, 2, 3)))
	assert.False(t, s.Equal(Scalar[int64]()))

	clone := s.Clone()
	clone.Dimensions[0] = 7
	assert.Equal(t, 2, s.Dimensions[0])
}

func TestInvalid(t *testing.T) {
	assert.False(t, Invalid().Ok())
	assert.False(t, Shape{}.Ok())
	assert.False(t, Invalid().IsScalar())
}
