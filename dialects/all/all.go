// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

// Package all registers every built-in dialect into the global registry.
//
// To use it simply include:
//
//	import _ "github.com/tensile-ml/tensile/dialects/all"
package all

import (
	_ "github.com/tensile-ml/tensile/dialects/cublas"
	_ "github.com/tensile-ml/tensile/dialects/cudnn"
)
