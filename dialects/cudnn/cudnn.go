// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

// Package cudnn registers the cuDNN dialect: CUDA implementations of the
// neural-network operators.
//
// To enable it, blank-import the package:
//
//	import _ "github.com/tensile-ml/tensile/dialects/cudnn"
package cudnn

import (
	"github.com/tensile-ml/tensile/device"
	"github.com/tensile-ml/tensile/dialect"
)

// Name of the dialect.
const Name = "cudnn"

func init() {
	for opName, plevel := range map[string]int{
		"conv2d":     20,
		"conv2d_dx":  20,
		"conv2d_dw":  20,
		"max_pool2d": 20,
		"avg_pool2d": 20,
		"batch_norm": 20,
		"softmax":    20,
		"relu":       20,
		"tanh":       20,
		"sigmoid":    20,
		"add":        12,
		"subtract":   12,
		"multiply":   12,
	} {
		dialect.Register(opName, device.CUDA, Name, plevel)
	}
}
