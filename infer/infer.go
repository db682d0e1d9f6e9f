// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

// Package infer drives per-call-site operator declaration over a graph: it
// builds the argument bundle of each Call node whose operands are statically
// known, invokes the operator's declaration, and folds the call into a
// constant when the declaration resolved it at compile time.
//
// A declaration failure aborts inference of the enclosing function; across a
// module, per-function failures are collected and reported together.
package infer

import (
	"github.com/pkg/errors"
	"github.com/tensile-ml/tensile/declare"
	"github.com/tensile-ml/tensile/ir"
	"github.com/tensile-ml/tensile/types"
	"github.com/tensile-ml/tensile/values"
	"go.uber.org/multierr"
)

// binaryUfuncOps are the operators taking a BinaryUfuncArgs schema.
var binaryUfuncOps = types.SetWith(
	"add", "subtract", "multiply", "divide", "mod",
	"less", "greater", "less_equal", "greater_equal", "equal", "not_equal",
)

// binaryDxOps are the gradient operators taking a BinaryDxArgs schema.
var binaryDxOps = types.SetWith(
	"add_dx",
)

// Driver runs declarations from one registry over graphs.
type Driver struct {
	decls *declare.Registry
}

// NewDriver returns a Driver using the given declaration registry. Pass
// declare.Global() for the default one.
func NewDriver(decls *declare.Registry) *Driver {
	return &Driver{decls: decls}
}

// Function infers fn: every Call to a declared operator whose operands are
// all constant values is declared, and calls fully folded at compile time
// are replaced by the folded constant. Calls to operators this driver has no
// schema for, or with non-constant operands, are left untouched.
//
// The first declaration failure aborts and is returned; fn is never
// modified, a new function is returned.
func (d *Driver) Function(fn *ir.Function) (*ir.Function, error) {
	var firstErr error
	rewriter := &ir.Rewriter{
		Call: func(node *ir.Call, r *ir.Rewriter) ir.Expr {
			if firstErr != nil {
				return node
			}
			// Children first, so nested folds cascade outwards.
			rewritten := r.Descend(node).(*ir.Call)
			if firstErr != nil {
				return rewritten
			}
			folded, err := d.foldCall(rewritten)
			if err != nil {
				firstErr = err
				return rewritten
			}
			if folded != nil {
				return folded
			}
			return rewritten
		},
	}
	out := rewriter.Rewrite(fn).(*ir.Function)
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Module infers every function of a module, collecting per-function failures
// into one combined error. Functions that fail are returned unchanged.
func (d *Driver) Module(fns map[string]*ir.Function) (map[string]*ir.Function, error) {
	var err error
	out := make(map[string]*ir.Function, len(fns))
	for name, fn := range fns {
		inferred, fnErr := d.Function(fn)
		if fnErr != nil {
			err = multierr.Append(err, errors.Wrapf(fnErr, "function %q", name))
			out[name] = fn
			continue
		}
		out[name] = inferred
	}
	return out, err
}

// foldCall declares one call site. It returns a replacement expression when
// the call folded to a constant, nil when the call must stay (no schema,
// non-constant operands, or an unfolded tensor resolution), and an error
// when the declaration failed.
func (d *Driver) foldCall(node *ir.Call) (ir.Expr, error) {
	op, ok := node.Callee.(*ir.Op)
	if !ok || op.IsDialect() {
		return nil, nil
	}
	args, ok := d.bundleArgs(op.Base(), node.Args)
	if !ok {
		return nil, nil
	}
	call := &declare.CallValues{Args: args, Callee: op}
	if err := d.decls.Declare(op.Base(), call); err != nil {
		return nil, err
	}
	if call.Callee == nil {
		return &ir.Constant{Value: call.Out}, nil
	}
	return nil, nil
}

// bundleArgs builds the operator's argument schema from the call arguments.
// It returns ok=false when the operator has no schema known to the driver or
// an argument is not a statically known value.
func (d *Driver) bundleArgs(opName string, args []ir.Expr) (any, bool) {
	switch {
	case binaryUfuncOps.Has(opName):
		operands, ok := constantValues(args, 2)
		if !ok {
			return nil, false
		}
		return &declare.BinaryUfuncArgs{X1: operands[0], X2: operands[1]}, true
	case binaryDxOps.Has(opName):
		operands, ok := constantValues(args, 4)
		if !ok {
			return nil, false
		}
		return &declare.BinaryDxArgs{X1: operands[0], X2: operands[1], Y: operands[2], Dy: operands[3]}, true
	}
	return nil, false
}

func constantValues(args []ir.Expr, want int) ([]values.Value, bool) {
	if len(args) != want {
		return nil, false
	}
	operands := make([]values.Value, len(args))
	for ii, arg := range args {
		constant, ok := arg.(*ir.Constant)
		if !ok {
			return nil, false
		}
		operands[ii] = constant.Value
	}
	return operands, true
}
