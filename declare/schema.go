// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

package declare

import (
	"github.com/pkg/errors"
	"github.com/tensile-ml/tensile/values"
)

// BinaryUfuncArgs is the argument schema of broadcasting binary operators
// (add, subtract, multiply, divide, mod and the comparisons).
//
// Out and Where are optional hints for in-place and masked ufunc semantics;
// declarations in this package do not support them and fail with
// ErrNotImplemented when either is present.
type BinaryUfuncArgs struct {
	X1, X2 values.Value

	Out   values.Value // explicit output buffer
	Where values.Value // conditional mask
}

// BinaryDxArgs is the argument schema of binary gradient operators: the
// original inputs and output of the forward op, plus the upstream gradient.
type BinaryDxArgs struct {
	X1, X2 values.Value
	Y      values.Value
	Dy     values.Value
}

func binaryUfuncArgs(call *CallValues) (*BinaryUfuncArgs, error) {
	args, ok := call.Args.(*BinaryUfuncArgs)
	if !ok || args == nil {
		return nil, errors.Errorf("expected *BinaryUfuncArgs, got %T", call.Args)
	}
	return args, nil
}

func binaryDxArgs(call *CallValues) (*BinaryDxArgs, error) {
	args, ok := call.Args.(*BinaryDxArgs)
	if !ok || args == nil {
		return nil, errors.Errorf("expected *BinaryDxArgs, got %T", call.Args)
	}
	return args, nil
}
