package values

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/tensile-ml/tensile/device"
	"github.com/tensile-ml/tensile/types/shapes"
)

func TestScalars(t *testing.T) {
	assert.True(t, IsScalar(Int(3)))
	assert.True(t, IsScalar(Float(3.5)))
	assert.True(t, IsScalar(Bool(true)))

	assert.Equal(t, dtypes.Int64, Int(3).DType())
	assert.Equal(t, dtypes.Float64, Float(3.5).DType())
	assert.Equal(t, dtypes.Bool, Bool(true).DType())

	assert.Equal(t, "3", Int(3).String())
	assert.Equal(t, "3.5", Float(3.5).String())
	assert.Equal(t, "true", Bool(true).String())
}

func TestTensor(t *testing.T) {
	dev := device.Device{Type: device.CUDA, Index: 1}
	tensor := NewTensor(dev, shapes.Make(dtypes.Float32, 2, 3))
	assert.False(t, IsScalar(tensor))
	assert.Equal(t, dtypes.Float32, tensor.DType())
	assert.Equal(t, shapes.Make(dtypes.Float32, 2, 3), tensor.Shape())
	assert.Equal(t, "Tensor[(Float32)[2 3]@cuda:1]", tensor.String())
}
