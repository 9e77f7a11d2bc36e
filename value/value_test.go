// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtx-lang/mtx/config"
	"github.com/mtx-lang/mtx/exec"
	"github.com/mtx-lang/mtx/value"
)

func newContext() *exec.Context {
	return exec.NewContext(&config.Config{})
}

// catch runs f and returns the text of the Error it panics with,
// or the empty string if it returns normally.
func catch(f func()) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = string(r.(value.Error))
		}
	}()
	f()
	return ""
}

func mat(rows, cols int, data ...float64) *value.Matrix {
	return value.NewMatrixData(rows, cols, data)
}

var litCount int

// lit makes an expression yielding m, going through a variable so that
// evaluation hands out a private copy each time.
func lit(c *exec.Context, m *value.Matrix) value.Expr {
	litCount++
	name := fmt.Sprintf("lit%d", litCount)
	c.Assign(name, m)
	return &value.VarExpr{Name: name}
}

func TestPackString(t *testing.T) {
	for _, s := range []string{"", "A", "hello", "12345678"} {
		require.Equal(t, s, value.UnpackString(value.PackString(s)))
	}
	// Longer strings truncate; trailing spaces are padding and trim away.
	require.Equal(t, "12345678", value.UnpackString(value.PackString("123456789")))
	require.Equal(t, "a", value.UnpackString(value.PackString("a   ")))
}

func TestMatrixBasics(t *testing.T) {
	m := mat(2, 3, 1, 2, 3, 4, 5, 6)
	require.Equal(t, "2×3", m.Shape())
	require.Equal(t, 6.0, m.At(1, 2))
	require.False(t, m.IsScalar())
	require.False(t, m.IsVector())
	require.True(t, value.Scalar(7).IsScalar())
	require.True(t, value.RowVector([]float64{1, 2}).IsVector())
	require.False(t, value.NewMatrix(0, 0).IsVector())

	c := m.Copy()
	c.Set(0, 0, 99)
	require.Equal(t, 1.0, m.At(0, 0))

	require.True(t, mat(2, 2, 1, 5, 5, 2).IsSymmetric())
	require.False(t, mat(2, 2, 1, 5, 6, 2).IsSymmetric())
}

func TestBinaryElementwise(t *testing.T) {
	c := newContext()
	a := mat(2, 2, 1, 2, 3, 4)
	tests := []struct {
		op    string
		right *value.Matrix
		want  *value.Matrix
	}{
		{"+", value.Scalar(10), mat(2, 2, 11, 12, 13, 14)},
		{"-", mat(2, 2, 1, 1, 1, 1), mat(2, 2, 0, 1, 2, 3)},
		{"&*", mat(2, 2, 2, 2, 2, 2), mat(2, 2, 2, 4, 6, 8)},
		{"/", value.Scalar(2), mat(2, 2, 0.5, 1, 1.5, 2)},
		{"&**", value.Scalar(2), mat(2, 2, 1, 4, 9, 16)},
		{"<", value.Scalar(3), mat(2, 2, 1, 1, 0, 0)},
		{">=", value.Scalar(2), mat(2, 2, 0, 1, 1, 1)},
		{"=", mat(2, 2, 1, 0, 3, 0), mat(2, 2, 1, 0, 1, 0)},
		{"<>", mat(2, 2, 1, 0, 3, 0), mat(2, 2, 0, 1, 0, 1)},
		{"AND", value.Scalar(1), mat(2, 2, 1, 1, 1, 1)},
		{"XOR", value.Scalar(1), mat(2, 2, 0, 0, 0, 0)},
	}
	for _, test := range tests {
		e := &value.BinaryExpr{Op: test.op, Left: lit(c, a.Copy()), Right: lit(c, test.right)}
		require.Equal(t, test.want, e.Eval(c), "op %s", test.op)
	}
}

func TestBinaryShapeError(t *testing.T) {
	c := newContext()
	e := &value.BinaryExpr{Op: "+", Left: lit(c, mat(2, 2, 1, 2, 3, 4)), Right: lit(c, mat(1, 3, 1, 2, 3))}
	msg := catch(func() { e.Eval(c) })
	require.Contains(t, msg, "must have the same dimensions")
}

func TestMatMul(t *testing.T) {
	c := newContext()
	a := mat(2, 3, 1, 2, 3, 4, 5, 6)
	b := mat(3, 2, 7, 8, 9, 10, 11, 12)
	e := &value.BinaryExpr{Op: "*", Left: lit(c, a), Right: lit(c, b)}
	require.Equal(t, mat(2, 2, 58, 64, 139, 154), e.Eval(c))

	// '*' with a scalar operand is elementwise.
	e = &value.BinaryExpr{Op: "*", Left: lit(c, value.Scalar(3)), Right: lit(c, mat(1, 2, 4, 5))}
	require.Equal(t, mat(1, 2, 12, 15), e.Eval(c))

	e = &value.BinaryExpr{Op: "*", Left: lit(c, mat(2, 3, 1, 2, 3, 4, 5, 6)), Right: lit(c, mat(2, 2, 1, 2, 3, 4))}
	msg := catch(func() { e.Eval(c) })
	require.Contains(t, msg, "not conformable for multiplication")
}

func TestMatPower(t *testing.T) {
	c := newContext()
	a := mat(2, 2, 1, 1, 0, 1)
	e := &value.BinaryExpr{Op: "**", Left: lit(c, a), Right: lit(c, value.Scalar(3))}
	require.Equal(t, mat(2, 2, 1, 3, 0, 1), e.Eval(c))

	e = &value.BinaryExpr{Op: "**", Left: lit(c, mat(2, 2, 5, 6, 7, 8)), Right: lit(c, value.Scalar(0))}
	require.Equal(t, mat(2, 2, 1, 0, 0, 1), e.Eval(c))

	e = &value.BinaryExpr{Op: "**", Left: lit(c, mat(2, 2, 2, 0, 0, 4)), Right: lit(c, value.Scalar(-1))}
	require.Equal(t, mat(2, 2, 0.5, 0, 0, 0.25), e.Eval(c))

	e = &value.BinaryExpr{Op: "**", Left: lit(c, mat(1, 2, 1, 2)), Right: lit(c, value.Scalar(2))}
	require.Contains(t, catch(func() { e.Eval(c) }), "must be square")

	e = &value.BinaryExpr{Op: "**", Left: lit(c, mat(2, 2, 1, 0, 0, 1)), Right: lit(c, value.Scalar(1.5))}
	require.Contains(t, catch(func() { e.Eval(c) }), "must be an integer")
}

func TestUnary(t *testing.T) {
	c := newContext()
	e := &value.UnaryExpr{Op: "-", Right: lit(c, mat(1, 3, 1, -2, 0))}
	require.Equal(t, mat(1, 3, -1, 2, 0), e.Eval(c))

	e = &value.UnaryExpr{Op: "NOT", Right: lit(c, mat(1, 3, 1, 0, -3))}
	require.Equal(t, mat(1, 3, 0, 1, 1), e.Eval(c))
}

func num(f float64) value.Expr { return &value.Num{Val: f} }

func TestSeqExpr(t *testing.T) {
	c := newContext()
	e := &value.SeqExpr{Start: num(1), End: num(3)}
	require.Equal(t, mat(1, 3, 1, 2, 3), e.Eval(c))

	e = &value.SeqExpr{Start: num(5), End: num(1), By: num(-1)}
	require.Equal(t, mat(1, 5, 5, 4, 3, 2, 1), e.Eval(c))

	e = &value.SeqExpr{Start: num(1), End: num(10), By: num(4)}
	require.Equal(t, mat(1, 3, 1, 5, 9), e.Eval(c))

	// An empty sequence.
	e = &value.SeqExpr{Start: num(3), End: num(1)}
	require.Equal(t, 0, e.Eval(c).Size())

	e = &value.SeqExpr{Start: num(1), End: num(3), By: num(0)}
	require.Contains(t, catch(func() { e.Eval(c) }), "must be nonzero")

	e = &value.SeqExpr{Start: num(1.5), End: num(3)}
	require.Contains(t, catch(func() { e.Eval(c) }), "must evaluate to an integer")
}

func TestIndexExpr(t *testing.T) {
	c := newContext()
	m := mat(2, 3, 1, 2, 3, 4, 5, 6)

	e := &value.IndexExpr{X: lit(c, m), Args: []value.Expr{num(2), nil}}
	require.Equal(t, mat(1, 3, 4, 5, 6), e.Eval(c))

	e = &value.IndexExpr{X: lit(c, m), Args: []value.Expr{nil, num(3)}}
	require.Equal(t, mat(2, 1, 3, 6), e.Eval(c))

	e = &value.IndexExpr{X: lit(c, m), Args: []value.Expr{num(2), num(1)}}
	require.Equal(t, value.Scalar(4), e.Eval(c))

	v := value.RowVector([]float64{10, 20, 30})
	e = &value.IndexExpr{X: lit(c, v), Args: []value.Expr{lit(c, mat(1, 2, 3, 1))}}
	require.Equal(t, mat(1, 2, 30, 10), e.Eval(c))

	e = &value.IndexExpr{X: lit(c, m), Args: []value.Expr{num(3), nil}}
	require.Contains(t, catch(func() { e.Eval(c) }), "row index value 3 is out of range")

	e = &value.IndexExpr{X: lit(c, m), Args: []value.Expr{num(1)}}
	require.Contains(t, catch(func() { e.Eval(c) }), "vector index operator may not be applied")
}

func TestPasteExpr(t *testing.T) {
	c := newContext()
	e := &value.PasteExpr{Rows: [][]value.Expr{
		{num(1), num(2)},
		{num(3), num(4)},
	}}
	require.Equal(t, mat(2, 2, 1, 2, 3, 4), e.Eval(c))

	// Sub-matrices paste by rows and columns.
	e = &value.PasteExpr{Rows: [][]value.Expr{
		{lit(c, mat(2, 2, 1, 2, 3, 4)), lit(c, mat(2, 1, 5, 6))},
	}}
	require.Equal(t, mat(2, 3, 1, 2, 5, 3, 4, 6), e.Eval(c))

	e = &value.PasteExpr{Rows: [][]value.Expr{}}
	require.Equal(t, 0, e.Eval(c).Size())

	e = &value.PasteExpr{Rows: [][]value.Expr{
		{lit(c, mat(2, 1, 1, 2)), num(3)},
	}}
	require.Contains(t, catch(func() { e.Eval(c) }), "row counts differ")
}

func TestVarExpr(t *testing.T) {
	c := newContext()
	c.Assign("x", value.Scalar(42))
	e := &value.VarExpr{Name: "x"}
	require.Equal(t, value.Scalar(42), e.Eval(c))

	// Declared but never assigned.
	c.Declare("y")
	e = &value.VarExpr{Name: "y"}
	require.Contains(t, catch(func() { e.Eval(c) }), "uninitialized variable y")
}
