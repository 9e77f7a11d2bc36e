// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type binaryFn func(left, right float64) float64

var binaryOps = map[string]binaryFn{
	"+":   func(a, b float64) float64 { return a + b },
	"-":   func(a, b float64) float64 { return a - b },
	"&*":  func(a, b float64) float64 { return a * b },
	"/":   func(a, b float64) float64 { return a / b },
	"&/":  func(a, b float64) float64 { return a / b },
	"&**": math.Pow,
	">":   boolFn(func(a, b float64) bool { return a > b }),
	">=":  boolFn(func(a, b float64) bool { return a >= b }),
	"<":   boolFn(func(a, b float64) bool { return a < b }),
	"<=":  boolFn(func(a, b float64) bool { return a <= b }),
	"=":   boolFn(func(a, b float64) bool { return a == b }),
	"<>":  boolFn(func(a, b float64) bool { return a != b }),
	"~=":  boolFn(func(a, b float64) bool { return a != b }),
	"AND": boolFn(func(a, b float64) bool { return IsTrue(a) && IsTrue(b) }),
	"OR":  boolFn(func(a, b float64) bool { return IsTrue(a) || IsTrue(b) }),
	"XOR": boolFn(func(a, b float64) bool { return IsTrue(a) != IsTrue(b) }),
}

func boolFn(f func(a, b float64) bool) binaryFn {
	return func(a, b float64) float64 {
		if f(a, b) {
			return 1
		}
		return 0
	}
}

// evalBinary applies a binary operator with the language's shape rules:
// equal shapes elementwise, scalar broadcast, matrix multiply for '*'
// between non-scalars, and repeated squaring for '**'.
func evalBinary(c Context, e *BinaryExpr, left, right *Matrix) *Matrix {
	switch e.Op {
	case "*":
		if left.IsScalar() || right.IsScalar() {
			return elementwise(c, e, binaryOps["&*"], left, right)
		}
		return matMul(c, e, left, right)
	case "**":
		return matPower(c, e, left, right)
	}
	fn := binaryOps[e.Op]
	if fn == nil {
		c.Errorf("internal error: unknown binary operator %s", e.Op)
	}
	return elementwise(c, e, fn, left, right)
}

// elementwise applies fn under the conformance rules, reusing the storage
// of the operand that already has the result's shape.
func elementwise(c Context, e *BinaryExpr, fn binaryFn, a, b *Matrix) *Matrix {
	switch {
	case a.rows == b.rows && a.cols == b.cols:
		for i := range a.data {
			a.data[i] = fn(a.data[i], b.data[i])
		}
		return a
	case a.IsScalar():
		s := a.data[0]
		for i := range b.data {
			b.data[i] = fn(s, b.data[i])
		}
		return b
	case b.IsScalar():
		s := b.data[0]
		for i := range a.data {
			a.data[i] = fn(a.data[i], s)
		}
		return a
	}
	c.Errorf("the operands of %s must have the same dimensions or one must be a scalar: "+
		"the left-hand operand (%s) is %s and the right-hand operand (%s) is %s",
		e.Op, e.Left.Span(), a.Shape(), e.Right.Span(), b.Shape())
	return nil
}

// matMul is the '*' operator between two non-scalar matrices.
func matMul(c Context, e *BinaryExpr, a, b *Matrix) *Matrix {
	if a.cols != b.rows {
		c.Errorf("matrices not conformable for multiplication: "+
			"the left-hand operand (%s) has dimensions %s and the right-hand operand (%s) has dimensions %s",
			e.Left.Span(), a.Shape(), e.Right.Span(), b.Shape())
	}
	return mulDense(a, b)
}

// mulDense multiplies conformable matrices, tolerating empty shapes that
// gonum rejects.
func mulDense(a, b *Matrix) *Matrix {
	if a.rows == 0 || b.cols == 0 {
		return NewMatrix(a.rows, b.cols)
	}
	if a.cols == 0 {
		// Inner dimension zero: the result is all zeros.
		return NewMatrix(a.rows, b.cols)
	}
	var dst mat.Dense
	dst.Mul(asDense(a), asDense(b))
	return fromDense(&dst)
}

// matPower is the '**' operator: square matrix to an integer power by
// repeated squaring, with the identity for 0 and inversion for negative
// exponents.
func matPower(c Context, e *BinaryExpr, a, b *Matrix) *Matrix {
	if a.rows != a.cols {
		c.Errorf("the left-hand operand of ** must be square, but it (%s) has dimensions %s",
			e.Left.Span(), a.Shape())
	}
	if !b.IsScalar() {
		c.Errorf("the exponent operand of ** must be a scalar, not a %s matrix (%s)",
			b.Shape(), e.Right.Span())
	}
	f := b.ScalarValue()
	n := int(f)
	if float64(n) != f {
		c.Errorf("the exponent operand of ** must be an integer, not %v (%s)", f, e.Right.Span())
	}
	if n < 0 {
		a = invert(c, e.Left, a)
		n = -n
	}
	result := identity(a.rows)
	base := a
	for n > 0 {
		if n&1 != 0 {
			result = mulDense(result, base)
		}
		n >>= 1
		if n > 0 {
			base = mulDense(base, base)
		}
	}
	return result
}

func identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// invert inverts a square matrix, reporting src's location when it is
// singular.
func invert(c Context, src Expr, a *Matrix) *Matrix {
	if a.rows == 0 {
		return a
	}
	var dst mat.Dense
	if err := dst.Inverse(asDense(a)); err != nil {
		c.Errorf("matrix (%s) is singular and cannot be inverted", src.Span())
	}
	return fromDense(&dst)
}

// pasteHorz joins a and b left to right. An empty operand yields the other.
func pasteHorz(c Context, a, b *Matrix) *Matrix {
	if a.rows == 0 && a.cols == 0 {
		return b
	}
	if b.rows == 0 && b.cols == 0 {
		return a
	}
	if a.rows != b.rows {
		c.Errorf("cannot paste a %s matrix and a %s matrix horizontally: row counts differ",
			a.Shape(), b.Shape())
	}
	m := NewMatrix(a.rows, a.cols+b.cols)
	for r := 0; r < a.rows; r++ {
		copy(m.data[r*m.cols:], a.data[r*a.cols:(r+1)*a.cols])
		copy(m.data[r*m.cols+a.cols:], b.data[r*b.cols:(r+1)*b.cols])
	}
	return m
}

// pasteVert joins a and b top to bottom. An empty operand yields the other.
func pasteVert(c Context, a, b *Matrix) *Matrix {
	if a.rows == 0 && a.cols == 0 {
		return b
	}
	if b.rows == 0 && b.cols == 0 {
		return a
	}
	if a.cols != b.cols {
		c.Errorf("cannot paste a %s matrix and a %s matrix vertically: column counts differ",
			a.Shape(), b.Shape())
	}
	m := &Matrix{rows: a.rows + b.rows, cols: a.cols, data: make([]float64, 0, len(a.data)+len(b.data))}
	m.data = append(m.data, a.data...)
	m.data = append(m.data, b.data...)
	return m
}

// asDense wraps m in a gonum Dense sharing m's storage.
func asDense(m *Matrix) *mat.Dense {
	return mat.NewDense(m.rows, m.cols, m.data)
}

// fromDense converts a gonum Dense to a Matrix, sharing storage.
func fromDense(d *mat.Dense) *Matrix {
	r, c := d.Dims()
	return &Matrix{rows: r, cols: c, data: d.RawMatrix().Data}
}
