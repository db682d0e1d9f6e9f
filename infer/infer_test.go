package infer

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tensile-ml/tensile/declare"
	"github.com/tensile-ml/tensile/device"
	"github.com/tensile-ml/tensile/ir"
	"github.com/tensile-ml/tensile/types/shapes"
	"github.com/tensile-ml/tensile/values"
)

func constant(v values.Value) *ir.Constant {
	return &ir.Constant{Value: v}
}

func call(opName string, args ...ir.Expr) *ir.Call {
	return &ir.Call{Callee: ir.GetOp(opName), Args: args}
}

func fnOf(body ir.Expr) *ir.Function {
	return &ir.Function{Body: body}
}

func TestFoldsScalarCalls(t *testing.T) {
	d := NewDriver(declare.Global())

	out := must.M1(d.Function(fnOf(call("add", constant(values.Int(2)), constant(values.Int(3))))))
	require.IsType(t, &ir.Constant{}, out.Body)
	assert.Equal(t, values.Int(5), out.Body.(*ir.Constant).Value)

	// Nested folds cascade outwards.
	nested := call("multiply",
		call("add", constant(values.Int(2)), constant(values.Int(3))),
		constant(values.Int(4)))
	out = must.M1(d.Function(fnOf(nested)))
	require.IsType(t, &ir.Constant{}, out.Body)
	assert.Equal(t, values.Int(20), out.Body.(*ir.Constant).Value)
}

func TestLeavesUnfoldableCallsAlone(t *testing.T) {
	d := NewDriver(declare.Global())

	// Non-constant operand.
	withVar := fnOf(call("add", &ir.Var{Name: "x"}, constant(values.Int(3))))
	assert.Same(t, withVar, must.M1(d.Function(withVar)))

	// Operator unknown to the driver's schemas.
	unknown := fnOf(call("relu", constant(values.Int(3))))
	assert.Same(t, unknown, must.M1(d.Function(unknown)))

	// Tensor operands declare fine but still need a runtime kernel.
	tensor := constant(values.NewTensor(
		device.Device{Type: device.CPU, Index: 0}, shapes.Make(dtypes.Float32, 2, 3)))
	unfolded := fnOf(call("add", tensor, tensor))
	assert.Same(t, unfolded, must.M1(d.Function(unfolded)))
}

func TestDeclarationFailureAborts(t *testing.T) {
	d := NewDriver(declare.Global())

	_, err := d.Function(fnOf(call("divide", constant(values.Int(1)), constant(values.Int(0)))))
	require.ErrorIs(t, err, declare.ErrZeroDivision)

	_, err = d.Function(fnOf(call("add", constant(values.Int(1)), constant(values.NewTensor(
		device.Device{Type: device.CPU, Index: 0}, shapes.Make(dtypes.Float32, 2))))))
	require.ErrorIs(t, err, declare.ErrNotImplemented)
}

func TestModuleCollectsFailures(t *testing.T) {
	d := NewDriver(declare.Global())

	fns := map[string]*ir.Function{
		"good": fnOf(call("add", constant(values.Int(2)), constant(values.Int(3)))),
		"bad":  fnOf(call("divide", constant(values.Int(1)), constant(values.Int(0)))),
	}
	out, err := d.Module(fns)
	require.ErrorIs(t, err, declare.ErrZeroDivision)
	assert.Contains(t, err.Error(), `function "bad"`)

	// The good function is still inferred; the bad one comes back unchanged.
	assert.Equal(t, values.Int(5), out["good"].Body.(*ir.Constant).Value)
	assert.Same(t, fns["bad"], out["bad"])
}
