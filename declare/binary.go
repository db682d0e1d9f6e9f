// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

package declare

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"github.com/tensile-ml/tensile/types/shapes"
	"github.com/tensile-ml/tensile/values"
	"golang.org/x/exp/constraints"
)

func init() {
	for name, fns := range arithmeticOps {
		Register(name, declareBinaryArith(fns))
	}
	Register("divide", declareDivide)
	Register("mod", declareMod)
	for name, fns := range comparisonOps {
		Register(name, declareComparison(fns))
	}
	Register("add_dx", declareAddDx)
}

// scalar is the numeric view of a scalar Value used for folding. Bool
// payloads promote to the ints 0/1, so arithmetic on bools yields ints.
type scalar struct {
	isFloat bool
	f       float64
	i       int64
}

func scalarOf(v values.Value) (scalar, bool) {
	switch s := v.(type) {
	case values.Int:
		return scalar{i: int64(s)}, true
	case values.Float:
		return scalar{isFloat: true, f: float64(s)}, true
	case values.Bool:
		if s {
			return scalar{i: 1}, true
		}
		return scalar{}, true
	}
	return scalar{}, false
}

func (s scalar) float() float64 {
	if s.isFloat {
		return s.f
	}
	return float64(s.i)
}

func (s scalar) isZero() bool {
	if s.isFloat {
		return s.f == 0
	}
	return s.i == 0
}

type number interface {
	constraints.Integer | constraints.Float
}

func add[T number](a, b T) T      { return a + b }
func subtract[T number](a, b T) T { return a - b }
func multiply[T number](a, b T) T { return a * b }

func less[T number](a, b T) bool         { return a < b }
func greater[T number](a, b T) bool      { return a > b }
func lessEqual[T number](a, b T) bool    { return a <= b }
func greaterEqual[T number](a, b T) bool { return a >= b }
func equal[T number](a, b T) bool        { return a == b }
func notEqual[T number](a, b T) bool     { return a != b }

// arithFns folds one arithmetic operator over both scalar payload kinds:
// the result is a float if either operand is float, an int otherwise.
type arithFns struct {
	ints   func(a, b int64) int64
	floats func(a, b float64) float64
}

func (fns arithFns) fold(s1, s2 scalar) values.Value {
	if s1.isFloat || s2.isFloat {
		return values.Float(fns.floats(s1.float(), s2.float()))
	}
	return values.Int(fns.ints(s1.i, s2.i))
}

var arithmeticOps = map[string]arithFns{
	"add":      {add[int64], add[float64]},
	"subtract": {subtract[int64], subtract[float64]},
	"multiply": {multiply[int64], multiply[float64]},
}

// compareFns folds one comparison operator: operands compare as floats if
// either is float, as ints otherwise. The result is always a Bool.
type compareFns struct {
	ints   func(a, b int64) bool
	floats func(a, b float64) bool
}

func (fns compareFns) fold(s1, s2 scalar) values.Value {
	if s1.isFloat || s2.isFloat {
		return values.Bool(fns.floats(s1.float(), s2.float()))
	}
	return values.Bool(fns.ints(s1.i, s2.i))
}

var comparisonOps = map[string]compareFns{
	"less":          {less[int64], less[float64]},
	"greater":       {greater[int64], greater[float64]},
	"less_equal":    {lessEqual[int64], lessEqual[float64]},
	"greater_equal": {greaterEqual[int64], greaterEqual[float64]},
	"equal":         {equal[int64], equal[float64]},
	"not_equal":     {notEqual[int64], notEqual[float64]},
}

// broadcastTensors computes the result of broadcasting x1 against x2: shapes
// are right-aligned at the trailing axis, the output rank is the larger of
// the two ranks, and at each aligned axis a dimension of 1 stretches to the
// other side's dimension.
//
// The output takes dtype and device from x1; no promotion rule is applied
// for mixed dtypes.
func broadcastTensors(x1, x2 *values.Tensor) (*values.Tensor, error) {
	rank1 := x1.TensorShape.Rank()
	rank2 := x2.TensorShape.Rank()
	rank := max(rank1, rank2)
	dims := make([]int, rank)
	for ii := 0; ii < rank; ii++ {
		dim1, dim2 := 1, 1
		if ii < rank1 {
			dim1 = x1.TensorShape.Dimensions[rank1-1-ii]
		}
		if ii < rank2 {
			dim2 = x2.TensorShape.Dimensions[rank2-1-ii]
		}
		switch {
		case dim1 == 1:
			dims[rank-1-ii] = dim2
		case dim2 == 1:
			dims[rank-1-ii] = dim1
		case dim1 == dim2:
			dims[rank-1-ii] = dim1
		default:
			return nil, errors.Wrapf(ErrIncompatibleShape,
				"dimensions %d and %d of shapes %s and %s", dim1, dim2, x1.TensorShape, x2.TensorShape)
		}
	}
	return values.NewTensor(x1.Device, shapes.Make(x1.TensorShape.DType, dims...)), nil
}

// declareBinaryArith builds the declaration of a broadcasting arithmetic
// operator: two scalars fold at compile time, two tensors produce a
// broadcast-shaped tensor requiring a runtime kernel. Anything else, or an
// explicit out/where hint, is not implemented.
func declareBinaryArith(fns arithFns) Fn {
	return func(call *CallValues) (Resolution, error) {
		args, err := binaryUfuncArgs(call)
		if err != nil {
			return Resolution{}, err
		}
		if args.Out == nil && args.Where == nil {
			if s1, ok := scalarOf(args.X1); ok {
				if s2, ok := scalarOf(args.X2); ok {
					return Resolution{Out: fns.fold(s1, s2), Folded: true}, nil
				}
			}
			if t1, ok := args.X1.(*values.Tensor); ok {
				if t2, ok := args.X2.(*values.Tensor); ok {
					out, err := broadcastTensors(t1, t2)
					if err != nil {
						return Resolution{}, err
					}
					return Resolution{Out: out, Device: out.Device}, nil
				}
			}
		}
		return Resolution{}, errors.Wrapf(ErrNotImplemented,
			"operands %T and %T, out/where hints unsupported", args.X1, args.X2)
	}
}

// declareDivide folds scalar division. Integer operands divide with Go's
// truncating integer division; a float on either side switches to float64
// division. Tensor division is not declared.
func declareDivide(call *CallValues) (Resolution, error) {
	args, err := binaryUfuncArgs(call)
	if err != nil {
		return Resolution{}, err
	}
	if args.Out == nil && args.Where == nil {
		if s1, ok := scalarOf(args.X1); ok {
			if s2, ok := scalarOf(args.X2); ok {
				if s2.isZero() {
					return Resolution{}, errors.WithStack(ErrZeroDivision)
				}
				if s1.isFloat || s2.isFloat {
					return Resolution{Out: values.Float(s1.float() / s2.float()), Folded: true}, nil
				}
				return Resolution{Out: values.Int(s1.i / s2.i), Folded: true}, nil
			}
		}
	}
	return Resolution{}, errors.Wrapf(ErrNotImplemented,
		"operands %T and %T, out/where hints unsupported", args.X1, args.X2)
}

// declareMod folds scalar remainder: math.Mod if either operand is float,
// Go's native % otherwise. Both truncate toward zero, so the result takes
// the dividend's sign.
//
// TODO: switch to Euclidean (Python-style) modulo once the runtime kernels
// agree on that convention.
func declareMod(call *CallValues) (Resolution, error) {
	args, err := binaryUfuncArgs(call)
	if err != nil {
		return Resolution{}, err
	}
	if args.Out == nil && args.Where == nil {
		if s1, ok := scalarOf(args.X1); ok {
			if s2, ok := scalarOf(args.X2); ok {
				if s2.isZero() {
					return Resolution{}, errors.WithStack(ErrZeroDivision)
				}
				if s1.isFloat || s2.isFloat {
					return Resolution{Out: values.Float(math.Mod(s1.float(), s2.float())), Folded: true}, nil
				}
				return Resolution{Out: values.Int(s1.i % s2.i), Folded: true}, nil
			}
		}
	}
	return Resolution{}, errors.Wrapf(ErrNotImplemented,
		"operands %T and %T, out/where hints unsupported", args.X1, args.X2)
}

// declareComparison builds the declaration of a comparison operator. Only the
// scalar fold is declared; broadcasting comparison over tensors is not.
func declareComparison(fns compareFns) Fn {
	return func(call *CallValues) (Resolution, error) {
		args, err := binaryUfuncArgs(call)
		if err != nil {
			return Resolution{}, err
		}
		if args.Out == nil && args.Where == nil {
			if s1, ok := scalarOf(args.X1); ok {
				if s2, ok := scalarOf(args.X2); ok {
					return Resolution{Out: fns.fold(s1, s2), Folded: true}, nil
				}
			}
		}
		return Resolution{}, errors.Wrapf(ErrNotImplemented,
			"operands %T and %T, out/where hints unsupported", args.X1, args.X2)
	}
}

// declareAddDx validates a broadcast-reduced gradient against the forward
// operand's shape: every axis of x, right-aligned against dy, must be 1 or
// match dy's dimension. A violation is a graph-construction defect and
// panics. The declared output is exactly x's shape, dtype and device; the
// reduction itself is a runtime kernel's job.
func declareAddDx(call *CallValues) (Resolution, error) {
	args, err := binaryDxArgs(call)
	if err != nil {
		return Resolution{}, err
	}
	x, okX := args.X1.(*values.Tensor)
	dy, okDy := args.Dy.(*values.Tensor)
	if !okX || !okDy {
		return Resolution{}, errors.Wrapf(ErrNotImplemented,
			"operands %T and %T, add_dx requires tensors", args.X1, args.Dy)
	}
	xShape := x.TensorShape
	dyShape := dy.TensorShape
	if xShape.Rank() > dyShape.Rank() {
		exceptions.Panicf("add_dx: rank of x %s exceeds rank of dy %s", xShape, dyShape)
	}
	offset := dyShape.Rank() - xShape.Rank()
	for axis, dim := range xShape.Dimensions {
		if dim != 1 && dim != dyShape.Dimensions[axis+offset] {
			exceptions.Panicf("add_dx: axis %d of x %s can neither stretch to nor match dy %s",
				axis, xShape, dyShape)
		}
	}
	return Resolution{Out: values.NewTensor(x.Device, xShape.Clone()), Device: x.Device}, nil
}
