// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

// Package dialect maps generic operators to device-specialized ("dialect")
// implementations.
//
// Device backends register their implementations at init() time with a
// priority level ("plevel"); compilation then asks, per generic operator and
// device type, for the highest-priority implementation available. The
// registry is read-only during compilation: all registration must complete
// before the first graph is compiled.
//
// A process-wide default registry is populated by backend packages; tests and
// embedding hosts can build their own with NewRegistry and pass it explicitly.
package dialect

import (
	"slices"
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/tensile-ml/tensile/device"
	"github.com/tensile-ml/tensile/ir"
)

// Entry is one registered dialect implementation of a generic operator.
type Entry struct {
	Op     *ir.Op
	PLevel int
}

type key struct {
	base    string
	devType device.Type
}

// Registry holds, per (generic operator, device type), the ranked dialect
// implementations. The zero value is not usable; see NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	entries map[key][]Entry
}

// NewRegistry returns an empty dialect registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[key][]Entry)}
}

// Register adds a dialect implementation of the generic operator baseOp for
// the given device type, at the given priority level, and returns the
// interned dialect operator handle.
//
// Registering the same dialect twice for the same (operator, device type)
// pair is a programming error and panics. Call Register during package
// initialization, before any compilation starts.
func (r *Registry) Register(baseOp string, devType device.Type, dialectName string, plevel int) *ir.Op {
	if plevel < 0 {
		exceptions.Panicf("dialect.Register(%q, %s, %q): negative plevel %d", baseOp, devType, dialectName, plevel)
	}
	op := ir.GetDialectOp(dialectName, baseOp)
	k := key{base: baseOp, devType: devType}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries[k] {
		if entry.Op == op {
			exceptions.Panicf("dialect.Register(%q, %s, %q): already registered", baseOp, devType, dialectName)
		}
	}
	r.entries[k] = append(r.entries[k], Entry{Op: op, PLevel: plevel})
	return op
}

// Dispatch returns the dialect implementation of the generic operator op with
// the strictly highest plevel registered for the given device type, or
// (nil, false) if none is registered -- a normal outcome for operators with
// no device-specific counterpart.
//
// Among implementations registered at the same plevel the earliest
// registration wins; relying on this tie-break is discouraged, backends are
// expected to pick distinct plevels.
func (r *Registry) Dispatch(op *ir.Op, devType device.Type) (*ir.Op, bool) {
	if op.IsDialect() {
		return op, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.entries[key{base: op.Base(), devType: devType}]
	if len(entries) == 0 {
		return nil, false
	}
	best := entries[0]
	for _, entry := range entries[1:] {
		if entry.PLevel > best.PLevel {
			best = entry
		}
	}
	return best.Op, true
}

// Entries returns a copy of the implementations registered for
// (baseOp, devType), ordered by decreasing plevel. For debugging and tests.
func (r *Registry) Entries(baseOp string, devType device.Type) []Entry {
	r.mu.RLock()
	entries := slices.Clone(r.entries[key{base: baseOp, devType: devType}])
	r.mu.RUnlock()
	slices.SortStableFunc(entries, func(a, b Entry) int { return b.PLevel - a.PLevel })
	return entries
}

var global = NewRegistry()

// Global returns the process-wide default registry, the one device backend
// packages register into.
func Global() *Registry { return global }

// Register adds a dialect implementation to the Global registry. See
// Registry.Register.
func Register(baseOp string, devType device.Type, dialectName string, plevel int) *ir.Op {
	return global.Register(baseOp, devType, dialectName, plevel)
}
