// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

// Package values defines the compile-time value model of tensile.
//
// A Value is the statically known (or statically described) result of an
// expression: a scalar with a concrete payload, or a tensor described by its
// shape, dtype and device, whose payload only exists at runtime. Values are
// immutable once constructed.
package values

import (
	"fmt"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/tensile-ml/tensile/device"
	"github.com/tensile-ml/tensile/types/shapes"
)

// Value is a tagged union over the variants Int, Float, Bool and *Tensor.
// It is sealed: no other implementations exist.
type Value interface {
	fmt.Stringer

	// DType of the value's elements.
	DType() dtypes.DType

	value()
}

// Int is a scalar signed integer value.
type Int int64

// Float is a scalar float value.
type Float float64

// Bool is a scalar boolean value.
type Bool bool

// Tensor describes a tensor result: its shape (with dtype) and device.
// The payload is materialized at runtime by a kernel, never here.
type Tensor struct {
	TensorShape shapes.Shape
	Device      device.Device
}

// NewTensor returns a Tensor value with the given device and shape.
func NewTensor(dev device.Device, shape shapes.Shape) *Tensor {
	return &Tensor{TensorShape: shape, Device: dev}
}

func (Int) value()     {}
func (Float) value()   {}
func (Bool) value()    {}
func (*Tensor) value() {}

// DType implements Value.
func (Int) DType() dtypes.DType { return dtypes.Int64 }

// DType implements Value.
func (Float) DType() dtypes.DType { return dtypes.Float64 }

// DType implements Value.
func (Bool) DType() dtypes.DType { return dtypes.Bool }

// DType implements Value: the element type of the tensor.
func (t *Tensor) DType() dtypes.DType { return t.TensorShape.DType }

// Shape implements shapes.HasShape.
func (t *Tensor) Shape() shapes.Shape { return t.TensorShape }

func (v Int) String() string   { return fmt.Sprintf("%d", int64(v)) }
func (v Float) String() string { return fmt.Sprintf("%g", float64(v)) }
func (v Bool) String() string  { return fmt.Sprintf("%v", bool(v)) }
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor[%s@%s]", t.TensorShape, t.Device)
}

// IsScalar reports whether v is one of the scalar variants.
func IsScalar(v Value) bool {
	switch v.(type) {
	case Int, Float, Bool:
		return true
	}
	return false
}
