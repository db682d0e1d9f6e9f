// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

// Package pass provides named function-to-function compiler passes and a
// sequential runner for them.
package pass

import (
	"github.com/pkg/errors"
	"github.com/tensile-ml/tensile/ir"
	"k8s.io/klog/v2"
)

// Pass is a named transformation over a graph entry function. Passes are
// purely functional: they return a new function (possibly the input itself,
// unchanged) and never mutate their input.
type Pass struct {
	Name string
	Run  func(fn *ir.Function) (*ir.Function, error)
}

// Sequential applies the given passes in order, aborting at the first
// failure.
func Sequential(passes ...Pass) Pass {
	return Pass{
		Name: "Sequential",
		Run: func(fn *ir.Function) (*ir.Function, error) {
			for _, p := range passes {
				var err error
				fn, err = p.Run(fn)
				if err != nil {
					return nil, errors.Wrapf(err, "pass %q failed", p.Name)
				}
				klog.V(2).Infof("pass %q done", p.Name)
			}
			return fn, nil
		},
	}
}
