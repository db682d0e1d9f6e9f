// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

// Package ir defines the expression tree of tensile programs and a generic
// rewriting facility over it.
//
// Expressions are immutable: passes never modify a node, they build new nodes
// around unchanged subtrees. Operator references (Op) are interned handles,
// see op.go.
package ir

import (
	"github.com/tensile-ml/tensile/values"
)

// Expr is a node of the expression tree. It is a sealed interface over the
// variants *Var, *Constant, *Tuple, *Call, *Function, *Let, *If and *Op.
type Expr interface {
	expr()
}

// Var is a named variable reference.
type Var struct {
	Name string
}

// Constant is a literal value embedded in the tree, typically the result of
// constant folding or a program input known at compile time.
type Constant struct {
	Value values.Value
}

// Tuple groups several expressions into one.
type Tuple struct {
	Fields []Expr
}

// Call applies a callee (usually an *Op, possibly a *Function or *Var) to
// arguments.
type Call struct {
	Callee Expr
	Args   []Expr
}

// Function is a graph entry point: parameters and a body.
//
// Primitive marks the sealed output of an earlier fusion pass: its body's
// operator identities are load-bearing for fusion scheduling and later
// per-operator rewriting passes must treat it as an opaque unit.
type Function struct {
	Params    []*Var
	Body      Expr
	Primitive bool
}

// Let binds Value to Var within Body.
type Let struct {
	Var   *Var
	Value Expr
	Body  Expr
}

// If is a conditional expression.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*Var) expr()      {}
func (*Constant) expr() {}
func (*Tuple) expr()    {}
func (*Call) expr()     {}
func (*Function) expr() {}
func (*Let) expr()      {}
func (*If) expr()       {}
func (*Op) expr()       {}
