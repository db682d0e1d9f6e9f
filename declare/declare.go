// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

// Package declare implements per-operator declaration: given the statically
// known arguments of one call site, a declaration computes the resulting
// value, shape, dtype and device -- folding the call away entirely when both
// operands are compile-time scalars.
//
// Declarations are pure functions returning a Resolution; the registry
// applies the resolution to the call site's CallValues bundle. A folded
// resolution clears the bundle's Callee, signalling that no runtime kernel is
// needed; an unfolded tensor resolution keeps the Callee and records the
// output's shape, dtype and device.
//
// All declarations register at init() time; compilation-time access is
// read-only.
package declare

import (
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"github.com/tensile-ml/tensile/device"
	"github.com/tensile-ml/tensile/ir"
	"github.com/tensile-ml/tensile/values"
)

// Error taxonomy of declaration failures. All of them abort compilation of
// the enclosing graph; callers match with errors.Is.
var (
	// ErrNotImplemented: the input shape/kind combination has no declared
	// rule, e.g. tensor operands for a comparison operator, or an explicit
	// output-buffer/mask hint.
	ErrNotImplemented = errors.New("not implemented")

	// ErrZeroDivision: a scalar divisor is zero in divide/mod folding.
	ErrZeroDivision = errors.New("division by zero")

	// ErrIncompatibleShape: the broadcast rule cannot reconcile two tensor
	// shapes.
	ErrIncompatibleShape = errors.New("incompatible shapes for broadcast")
)

// CallValues is the per-call-site argument bundle. It is built by the
// inference driver from the raw call-site arguments, resolved exactly once by
// a declaration, then handed downstream to fusion/codegen -- this package
// never retains it.
type CallValues struct {
	// Args holds the operator-specific argument schema, e.g.
	// *BinaryUfuncArgs for binary operators.
	Args any

	// Out is the declared output value, set by the resolution.
	Out values.Value

	// Device is the resolved execution device of the output.
	Device device.Device

	// Callee is the operator to invoke at runtime. A nil Callee after
	// declaration means the result was folded at compile time and no runtime
	// kernel is needed.
	Callee *ir.Op
}

// Resolution is the outcome of a successful declaration.
type Resolution struct {
	// Out is the declared output value.
	Out values.Value

	// Device the output lives on. Only meaningful when Folded is false:
	// folded scalars are device-less compile-time values.
	Device device.Device

	// Folded reports that the result was fully computed at compile time and
	// the call site's runtime kernel invocation must be elided.
	Folded bool
}

// Fn is a declaration function for one operator. It must be pure: no side
// effects on the bundle, all outcome in the returned Resolution or error.
type Fn func(call *CallValues) (Resolution, error)

// Registry maps operator names to their declaration functions.
type Registry struct {
	mu  sync.RWMutex
	fns map[string]Fn
}

// NewRegistry returns an empty declaration registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Fn)}
}

// Register adds the declaration function for the operator with the given
// name. Duplicate registration is a programming error and panics. Call
// Register during package initialization, before any compilation starts.
func (r *Registry) Register(opName string, fn Fn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.fns[opName]; found {
		exceptions.Panicf("declare.Register(%q): already registered", opName)
	}
	r.fns[opName] = fn
}

// Lookup returns the declaration function registered for opName.
func (r *Registry) Lookup(opName string) (Fn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, found := r.fns[opName]
	return fn, found
}

// Declare runs the declaration registered for opName on the call bundle and
// applies the resolution: a folded result sets Out and clears Callee; an
// unfolded result sets Out and Device and leaves Callee untouched.
//
// On error the bundle is left unmodified.
func (r *Registry) Declare(opName string, call *CallValues) error {
	fn, found := r.Lookup(opName)
	if !found {
		return errors.Wrapf(ErrNotImplemented, "no declaration registered for operator %q", opName)
	}
	res, err := fn(call)
	if err != nil {
		return errors.Wrapf(err, "declaring operator %q", opName)
	}
	call.Out = res.Out
	if res.Folded {
		call.Callee = nil
	} else {
		call.Device = res.Device
	}
	return nil
}

var global = NewRegistry()

// Global returns the process-wide default registry, pre-populated by this
// package's init functions.
func Global() *Registry { return global }

// Register adds a declaration to the Global registry. See Registry.Register.
func Register(opName string, fn Fn) {
	global.Register(opName, fn)
}

// Declare runs the Global registry's declaration for opName on the bundle.
// See Registry.Declare.
func Declare(opName string, call *CallValues) error {
	return global.Declare(opName, call)
}
