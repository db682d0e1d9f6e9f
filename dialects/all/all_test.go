package all

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tensile-ml/tensile/device"
	"github.com/tensile-ml/tensile/dialect"
	"github.com/tensile-ml/tensile/ir"
)

func TestGlobalRegistrations(t *testing.T) {
	// cuDNN outranks cuBLAS on elementwise ops, cuBLAS owns matmul.
	got, found := dialect.Global().Dispatch(ir.GetOp("add"), device.CUDA)
	require.True(t, found)
	assert.Same(t, ir.GetDialectOp("cudnn", "add"), got)

	got, found = dialect.Global().Dispatch(ir.GetOp("matmul"), device.CUDA)
	require.True(t, found)
	assert.Same(t, ir.GetDialectOp("cublas", "matmul"), got)

	// No CPU dialects are built in.
	_, found = dialect.Global().Dispatch(ir.GetOp("add"), device.CPU)
	assert.False(t, found)
}
