// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

package pass

import (
	"github.com/tensile-ml/tensile/device"
	"github.com/tensile-ml/tensile/dialect"
	"github.com/tensile-ml/tensile/ir"
	"k8s.io/klog/v2"
)

// DispatchDialect returns the pass that rewrites generic operator references
// into the highest-priority dialect implementation registered for the
// current device. Operators with no dialect implementation for the device
// stay generic; a generic-only graph remains valid for the fallback
// execution path.
//
// The current device is read once at pass entry. If it is unset the pass is
// a no-op: dispatching is an optimization, not a correctness requirement.
//
// The pass is idempotent: dialect operators are never rewritten again, and
// primitive (fused) functions are kept opaque -- their internal operator
// identities are load-bearing for fusion scheduling.
func DispatchDialect(reg *dialect.Registry) Pass {
	return Pass{
		Name: "DispatchDialect",
		Run: func(fn *ir.Function) (*ir.Function, error) {
			return dispatch(reg, fn, device.Current()), nil
		},
	}
}

func dispatch(reg *dialect.Registry, fn *ir.Function, dev device.Device) *ir.Function {
	if !dev.Ok() {
		klog.Warningf("device is not specified, skipping DispatchDialect pass")
		return fn
	}
	rewriter := &ir.Rewriter{
		Function: func(node *ir.Function, r *ir.Rewriter) ir.Expr {
			if node.Primitive {
				// Sealed output of fusion, don't go inside.
				return node
			}
			return r.Descend(node)
		},
		Op: func(op *ir.Op, r *ir.Rewriter) ir.Expr {
			if op.IsDialect() {
				return op
			}
			if dialectOp, found := reg.Dispatch(op, dev.Type); found {
				klog.V(1).Infof("dispatching %q to %q on %s", op.Name(), dialectOp.Name(), dev.Type)
				return dialectOp
			}
			return op
		},
	}
	return rewriter.Rewrite(fn).(*ir.Function)
}
