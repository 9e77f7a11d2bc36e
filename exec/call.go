// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"gonum.org/v1/gonum/mat"

	"github.com/mtx-lang/mtx/value"
)

// CallEigen is CALL EIGEN(expr, evec, eval).
type CallEigen struct {
	Arg  value.Expr
	Evec string
	Eval string
}

func (cmd *CallEigen) Execute(c *Context) bool {
	m := cmd.Arg.Eval(c)
	if !m.IsSymmetric() {
		c.Errorf("%s: argument of EIGEN must be symmetric", cmd.Arg.Span())
	}
	n := m.Rows()

	var es mat.EigenSym
	if !es.Factorize(mat.NewSymDense(n, m.Data()), true) {
		c.Errorf("%s: eigendecomposition failed", cmd.Arg.Span())
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	// Eigenvalues come back ascending. Callers get them in
	// descending order with the eigenvector columns to match.
	evec := value.NewMatrix(n, n)
	eval := value.NewMatrix(n, 1)
	for j := 0; j < n; j++ {
		src := n - 1 - j
		eval.Data()[j] = vals[src]
		for i := 0; i < n; i++ {
			evec.Set(i, j, vecs.At(i, src))
		}
	}
	c.Assign(cmd.Evec, evec)
	c.Assign(cmd.Eval, eval)
	return true
}

// CallSetdiag is CALL SETDIAG(dst, expr).
type CallSetdiag struct {
	Dst     string
	DstSpan value.Span
	Arg     value.Expr
}

func (cmd *CallSetdiag) Execute(c *Context) bool {
	v := c.Lookup(cmd.Dst)
	if v == nil || v.Value() == nil {
		c.Errorf("%s: SETDIAG destination matrix %s is uninitialized", cmd.DstSpan, cmd.Dst)
	}
	dst := v.Value()
	src := cmd.Arg.Eval(c)

	n := min(dst.Rows(), dst.Cols())
	switch {
	case src.IsScalar():
		d := src.ScalarValue()
		for i := 0; i < n; i++ {
			dst.Set(i, i, d)
		}
	case src.IsVector():
		data := src.Data()
		for i := 0; i < n && i < len(data); i++ {
			dst.Set(i, i, data[i])
		}
	default:
		c.Errorf("%s: SETDIAG argument 2 must be a scalar or a vector, not a %s matrix",
			cmd.Arg.Span(), src.Shape())
	}
	return true
}

// CallSvd is CALL SVD(expr, u, s, v).
type CallSvd struct {
	Arg     value.Expr
	U, S, V string
}

func (cmd *CallSvd) Execute(c *Context) bool {
	m := cmd.Arg.Eval(c)
	r, cl := m.Rows(), m.Cols()
	n := min(r, cl)

	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(r, cl, m.Data()), mat.SVDThin) {
		c.Errorf("%s: singular value decomposition failed", cmd.Arg.Span())
	}
	vals := svd.Values(nil)
	var ud, vd mat.Dense
	svd.UTo(&ud)
	svd.VTo(&vd)

	u := value.NewMatrix(r, n)
	for i := 0; i < r; i++ {
		for j := 0; j < n; j++ {
			u.Set(i, j, ud.At(i, j))
		}
	}
	s := value.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		s.Set(i, i, vals[i])
	}
	v := value.NewMatrix(cl, n)
	for i := 0; i < cl; i++ {
		for j := 0; j < n; j++ {
			v.Set(i, j, vd.At(i, j))
		}
	}
	c.Assign(cmd.U, u)
	c.Assign(cmd.S, s)
	c.Assign(cmd.V, v)
	return true
}
