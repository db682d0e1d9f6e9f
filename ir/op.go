// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

package ir

import (
	"sync"
)

// Op is an interned operator handle, usable as the callee of a Call.
//
// An Op is either generic (device-agnostic, e.g. "add") or a dialect
// implementation of a generic op for one device backend (e.g. "cublas.add").
// Handles are interned: GetOp and GetDialectOp return the same pointer for
// the same name for the lifetime of the process, so handles compare with ==.
type Op struct {
	base    string
	dialect string
}

// Base returns the generic operator name, e.g. "add".
func (op *Op) Base() string { return op.base }

// Dialect returns the dialect this op belongs to, or "" for a generic op.
func (op *Op) Dialect() string { return op.dialect }

// IsDialect reports whether this is a device-specialized operator.
func (op *Op) IsDialect() bool { return op.dialect != "" }

// Name returns the fully qualified operator name: "add" for a generic op,
// "cublas.add" for a dialect op.
func (op *Op) Name() string {
	if op.dialect == "" {
		return op.base
	}
	return op.dialect + "." + op.base
}

// String implements fmt.Stringer.
func (op *Op) String() string { return op.Name() }

type opKey struct {
	base    string
	dialect string
}

var (
	muOps      sync.Mutex
	internedOp = make(map[opKey]*Op)
)

func internOp(base, dialect string) *Op {
	key := opKey{base: base, dialect: dialect}
	muOps.Lock()
	defer muOps.Unlock()
	if found, ok := internedOp[key]; ok {
		return found
	}
	op := &Op{base: base, dialect: dialect}
	internedOp[key] = op
	return op
}

// GetOp returns the interned generic operator handle with the given name,
// creating it on first use.
func GetOp(name string) *Op {
	return internOp(name, "")
}

// GetDialectOp returns the interned dialect operator handle implementing the
// generic operator base for the given dialect, creating it on first use.
func GetDialectOp(dialect, base string) *Op {
	return internOp(base, dialect)
}
