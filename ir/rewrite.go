// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

package ir

// Rewriter is a generic top-down tree rewriter parameterized by per-variant
// handlers. A nil handler means "descend structurally and rebuild only if a
// child changed"; a handler takes full control of its variant and may call
// Descend to get the default structural behavior.
//
// Rewriting preserves sharing: a subtree with no rewritten descendants is
// returned as the same pointer, so an identity rewrite returns the input
// expression itself.
type Rewriter struct {
	Var      func(*Var, *Rewriter) Expr
	Constant func(*Constant, *Rewriter) Expr
	Tuple    func(*Tuple, *Rewriter) Expr
	Call     func(*Call, *Rewriter) Expr
	Function func(*Function, *Rewriter) Expr
	Let      func(*Let, *Rewriter) Expr
	If       func(*If, *Rewriter) Expr
	Op       func(*Op, *Rewriter) Expr
}

// Rewrite applies the rewriter to expr and returns the rewritten expression.
// A nil expr is returned unchanged.
func (r *Rewriter) Rewrite(expr Expr) Expr {
	if expr == nil {
		return nil
	}
	switch node := expr.(type) {
	case *Var:
		if r.Var != nil {
			return r.Var(node, r)
		}
	case *Constant:
		if r.Constant != nil {
			return r.Constant(node, r)
		}
	case *Tuple:
		if r.Tuple != nil {
			return r.Tuple(node, r)
		}
	case *Call:
		if r.Call != nil {
			return r.Call(node, r)
		}
	case *Function:
		if r.Function != nil {
			return r.Function(node, r)
		}
	case *Let:
		if r.Let != nil {
			return r.Let(node, r)
		}
	case *If:
		if r.If != nil {
			return r.If(node, r)
		}
	case *Op:
		if r.Op != nil {
			return r.Op(node, r)
		}
	}
	return r.Descend(expr)
}

// Descend rewrites the children of expr with r and rebuilds the node if any
// child changed. Leaves (*Var, *Constant, *Op) are returned as-is.
func (r *Rewriter) Descend(expr Expr) Expr {
	switch node := expr.(type) {
	case *Tuple:
		fields, changed := r.rewriteAll(node.Fields)
		if !changed {
			return node
		}
		return &Tuple{Fields: fields}
	case *Call:
		callee := r.Rewrite(node.Callee)
		args, changed := r.rewriteAll(node.Args)
		if callee == node.Callee && !changed {
			return node
		}
		return &Call{Callee: callee, Args: args}
	case *Function:
		body := r.Rewrite(node.Body)
		if body == node.Body {
			return node
		}
		return &Function{Params: node.Params, Body: body, Primitive: node.Primitive}
	case *Let:
		value := r.Rewrite(node.Value)
		body := r.Rewrite(node.Body)
		if value == node.Value && body == node.Body {
			return node
		}
		return &Let{Var: node.Var, Value: value, Body: body}
	case *If:
		cond := r.Rewrite(node.Cond)
		then := r.Rewrite(node.Then)
		otherwise := r.Rewrite(node.Else)
		if cond == node.Cond && then == node.Then && otherwise == node.Else {
			return node
		}
		return &If{Cond: cond, Then: then, Else: otherwise}
	}
	return expr
}

func (r *Rewriter) rewriteAll(exprs []Expr) (rewritten []Expr, changed bool) {
	rewritten = exprs
	for ii, e := range exprs {
		newExpr := r.Rewrite(e)
		if newExpr == e {
			continue
		}
		if !changed {
			changed = true
			rewritten = make([]Expr, len(exprs))
			copy(rewritten, exprs)
		}
		rewritten[ii] = newExpr
	}
	return
}
