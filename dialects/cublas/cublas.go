// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

// Package cublas registers the cuBLAS dialect: CUDA implementations of the
// dense linear-algebra operators.
//
// To enable it, blank-import the package:
//
//	import _ "github.com/tensile-ml/tensile/dialects/cublas"
package cublas

import (
	"github.com/tensile-ml/tensile/device"
	"github.com/tensile-ml/tensile/dialect"
)

// Name of the dialect.
const Name = "cublas"

func init() {
	// Matrix multiplication is what cuBLAS is for, so it outranks the
	// general-purpose CUDA dialects on these.
	for opName, plevel := range map[string]int{
		"matmul":       15,
		"batch_matmul": 15,
		"dense":        15,
		"add":          10,
		"multiply":     10,
	} {
		dialect.Register(opName, device.CUDA, Name, plevel)
	}
}
