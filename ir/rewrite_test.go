package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpInterning(t *testing.T) {
	assert.Same(t, GetOp("add"), GetOp("add"))
	assert.NotSame(t, GetOp("add"), GetOp("subtract"))

	cublasAdd := GetDialectOp("cublas", "add")
	assert.Same(t, cublasAdd, GetDialectOp("cublas", "add"))
	assert.True(t, cublasAdd.IsDialect())
	assert.False(t, GetOp("add").IsDialect())
	assert.Equal(t, "cublas.add", cublasAdd.Name())
	assert.Equal(t, "add", cublasAdd.Base())
	assert.Equal(t, "cublas", cublasAdd.Dialect())
	assert.Equal(t, "add", GetOp("add").Name())
}

func TestRewriteIdentityPreservesSharing(t *testing.T) {
	x := &Var{Name: "x"}
	body := &Let{
		Var:   x,
		Value: &Call{Callee: GetOp("add"), Args: []Expr{x, x}},
		Body:  &If{Cond: x, Then: &Tuple{Fields: []Expr{x}}, Else: x},
	}
	fn := &Function{Params: []*Var{x}, Body: body}

	r := &Rewriter{}
	assert.Same(t, fn, r.Rewrite(fn))
}

func TestRewriteRebuildsOnlyChangedPaths(t *testing.T) {
	x := &Var{Name: "x"}
	left := &Call{Callee: GetOp("add"), Args: []Expr{x, x}}
	right := &Call{Callee: GetOp("relu"), Args: []Expr{x}}
	fn := &Function{Params: []*Var{x}, Body: &Tuple{Fields: []Expr{left, right}}}

	r := &Rewriter{
		Op: func(op *Op, _ *Rewriter) Expr {
			if op.Base() == "add" {
				return GetDialectOp("cublas", "add")
			}
			return op
		},
	}
	out := r.Rewrite(fn).(*Function)
	require.NotSame(t, fn, out)

	fields := out.Body.(*Tuple).Fields
	assert.Same(t, GetDialectOp("cublas", "add"), fields[0].(*Call).Callee)

	// The untouched branch keeps its identity; the input tree is unmodified.
	assert.Same(t, right, fields[1])
	assert.Same(t, GetOp("add"), left.Callee)
}

func TestRewriteHandlerControlsDescent(t *testing.T) {
	x := &Var{Name: "x"}
	inner := &Function{Params: []*Var{x}, Body: &Call{Callee: GetOp("add"), Args: []Expr{x, x}}, Primitive: true}
	outer := &Function{Params: []*Var{x}, Body: &Call{Callee: inner, Args: []Expr{x}}}

	r := &Rewriter{
		Function: func(fn *Function, r *Rewriter) Expr {
			if fn.Primitive {
				return fn
			}
			return r.Descend(fn)
		},
		Op: func(*Op, *Rewriter) Expr { return GetOp("noop") },
	}
	out := r.Rewrite(outer).(*Function)

	// The primitive function is returned as an opaque unit.
	assert.Same(t, inner, out.Body.(*Call).Callee)
	assert.Same(t, GetOp("add"), inner.Body.(*Call).Callee)
}
