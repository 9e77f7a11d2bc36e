// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"
)

// Span is a range of source lines covered by an expression.
type Span struct {
	Start, End int
}

func (s Span) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("line %d", s.Start)
	}
	return fmt.Sprintf("lines %d-%d", s.Start, s.End)
}

func (s Span) union(t Span) Span {
	if t.Start < s.Start {
		s.Start = t.Start
	}
	if t.End > s.End {
		s.End = t.End
	}
	return s
}

// Expr is the interface for a parsed expression.
type Expr interface {
	// ProgString returns the unambiguous representation of the
	// expression to be used in error messages.
	ProgString() string

	// Eval evaluates the expression, returning a new matrix or a
	// mutated operand whose storage the caller now owns.
	Eval(Context) *Matrix

	// Span returns the source lines this expression covers. It is
	// computed on first use, from the leaves, and cached.
	Span() Span
}

// span is the cached-span mixin embedded by interior nodes. The hull over
// the children is computed at most once.
type span struct {
	cached Span
	ok     bool
}

func (s *span) spanOver(exprs ...Expr) Span {
	if !s.ok {
		hull := Span{Start: int(^uint(0) >> 1)}
		for _, e := range exprs {
			if e != nil {
				hull = hull.union(e.Span())
			}
		}
		s.cached = hull
		s.ok = true
	}
	return s.cached
}

// Num is a numeric literal.
type Num struct {
	Val  float64
	Line int
}

func (n *Num) ProgString() string {
	return fmt.Sprintf("%v", n.Val)
}

func (n *Num) Span() Span {
	return Span{n.Line, n.Line}
}

func (n *Num) Eval(Context) *Matrix {
	return Scalar(n.Val)
}

// Str is a string literal, valued as its 8-byte packing.
type Str struct {
	Text string
	Line int
}

func (s *Str) ProgString() string {
	return fmt.Sprintf("%q", s.Text)
}

func (s *Str) Span() Span {
	return Span{s.Line, s.Line}
}

func (s *Str) Eval(Context) *Matrix {
	return Scalar(PackString(s.Text))
}

// VarExpr refers to a variable as a data source.
type VarExpr struct {
	Name string
	Line int
}

func (e *VarExpr) ProgString() string {
	return e.Name
}

func (e *VarExpr) Span() Span {
	return Span{e.Line, e.Line}
}

func (e *VarExpr) Eval(c Context) *Matrix {
	v := c.Lookup(e.Name)
	if v == nil || v.Value() == nil {
		c.Errorf("uninitialized variable %s used in expression", e.Name)
	}
	return v.Value().Copy()
}

// UnaryExpr is a unary operator applied to an expression: - + NOT.
type UnaryExpr struct {
	span
	Op    string
	Right Expr
}

func (e *UnaryExpr) ProgString() string {
	return fmt.Sprintf("%s %s", e.Op, e.Right.ProgString())
}

func (e *UnaryExpr) Span() Span {
	return e.spanOver(e.Right)
}

func (e *UnaryExpr) Eval(c Context) *Matrix {
	m := e.Right.Eval(c)
	switch e.Op {
	case "+":
		return m
	case "-":
		for i, f := range m.data {
			m.data[i] = -f
		}
		return m
	case "NOT":
		for i, f := range m.data {
			if IsTrue(f) {
				m.data[i] = 0
			} else {
				m.data[i] = 1
			}
		}
		return m
	}
	c.Errorf("internal error: unknown unary operator %s", e.Op)
	return nil
}

// BinaryExpr is a binary operator applied to two expressions.
type BinaryExpr struct {
	span
	Op    string
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) ProgString() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.ProgString(), e.Op, e.Right.ProgString())
}

func (e *BinaryExpr) Span() Span {
	return e.spanOver(e.Left, e.Right)
}

func (e *BinaryExpr) Eval(c Context) *Matrix {
	left := e.Left.Eval(c)
	right := e.Right.Eval(c)
	return evalBinary(c, e, left, right)
}

// SeqExpr is a sequence a:b or a:b:c.
type SeqExpr struct {
	span
	Start Expr
	End   Expr
	By    Expr // nil means increment 1
}

func (e *SeqExpr) ProgString() string {
	if e.By == nil {
		return fmt.Sprintf("(%s:%s)", e.Start.ProgString(), e.End.ProgString())
	}
	return fmt.Sprintf("(%s:%s:%s)", e.Start.ProgString(), e.End.ProgString(), e.By.ProgString())
}

func (e *SeqExpr) Span() Span {
	return e.spanOver(e.Start, e.End, e.By)
}

func (e *SeqExpr) Eval(c Context) *Matrix {
	start := evalInteger(c, e.Start, "the start of a sequence")
	end := evalInteger(c, e.End, "the end of a sequence")
	by := 1
	if e.By != nil {
		by = evalInteger(c, e.By, "the sequence increment")
		if by == 0 {
			c.Errorf("the increment operand to : must be nonzero")
		}
	}
	var data []float64
	if by > 0 {
		for x := start; x <= end; x += by {
			data = append(data, float64(x))
		}
	} else {
		for x := start; x >= end; x += by {
			data = append(data, float64(x))
		}
	}
	return &Matrix{rows: 1, cols: len(data), data: data}
}

// PasteExpr is a {...} matrix literal: a list of rows, each a list of
// horizontally pasted sub-expressions. An empty literal is the 0×0 matrix.
type PasteExpr struct {
	span
	Rows [][]Expr
	Line int
}

func (e *PasteExpr) ProgString() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, row := range e.Rows {
		if i > 0 {
			sb.WriteString("; ")
		}
		for j, sub := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(sub.ProgString())
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

func (e *PasteExpr) Span() Span {
	exprs := make([]Expr, 0, 8)
	for _, row := range e.Rows {
		exprs = append(exprs, row...)
	}
	if len(exprs) == 0 {
		return Span{e.Line, e.Line}
	}
	return e.spanOver(exprs...)
}

func (e *PasteExpr) Eval(c Context) *Matrix {
	result := NewMatrix(0, 0)
	for _, row := range e.Rows {
		pasted := NewMatrix(0, 0)
		for _, sub := range row {
			pasted = pasteHorz(c, pasted, sub.Eval(c))
		}
		result = pasteVert(c, result, pasted)
	}
	return result
}

// IndexExpr is postfix indexing: x(i), x(:), x(i,j), x(i,:), x(:,j).
// A nil argument stands for ':', the full range.
type IndexExpr struct {
	span
	X    Expr
	Args []Expr // one or two entries
	Line int
}

func (e *IndexExpr) ProgString() string {
	var sb strings.Builder
	sb.WriteString(e.X.ProgString())
	sb.WriteByte('(')
	for i, a := range e.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if a == nil {
			sb.WriteByte(':')
		} else {
			sb.WriteString(a.ProgString())
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

func (e *IndexExpr) Span() Span {
	exprs := append([]Expr{e.X}, e.Args...)
	return e.spanOver(exprs...)
}

func (e *IndexExpr) Eval(c Context) *Matrix {
	m := e.X.Eval(c)
	switch len(e.Args) {
	case 1:
		return indexVectorElems(c, m, evalOptional(c, e.Args[0]))
	case 2:
		return indexMatrixElems(c, m, evalOptional(c, e.Args[0]), evalOptional(c, e.Args[1]))
	}
	c.Errorf("internal error: %d index arguments", len(e.Args))
	return nil
}

func evalOptional(c Context, e Expr) *Matrix {
	if e == nil {
		return nil
	}
	return e.Eval(c)
}

// CallExpr is a call of a catalog function.
type CallExpr struct {
	span
	Fn   *Function
	Args []Expr
	Line int
}

func (e *CallExpr) ProgString() string {
	var sb strings.Builder
	sb.WriteString(e.Fn.Name)
	sb.WriteByte('(')
	for i, a := range e.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.ProgString())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (e *CallExpr) Span() Span {
	if len(e.Args) == 0 {
		return Span{e.Line, e.Line}
	}
	return e.spanOver(e.Args...)
}

func (e *CallExpr) Eval(c Context) *Matrix {
	args := make([]*Matrix, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Eval(c)
	}
	e.Fn.check(c, e, args)
	return e.Fn.Impl(c, e, args)
}

// EvalScalar evaluates e and requires a 1×1 result.
// The context string names the construct for the error message.
func EvalScalar(c Context, e Expr, context string) float64 {
	m := e.Eval(c)
	if !m.IsScalar() {
		c.Errorf("%s must evaluate to a scalar, not a %s matrix (%s)",
			context, m.Shape(), e.Span())
	}
	return m.ScalarValue()
}

func evalInteger(c Context, e Expr, context string) int {
	f := EvalScalar(c, e, context)
	i := int(f)
	if float64(i) != f {
		c.Errorf("%s must evaluate to an integer, not %v (%s)", context, f, e.Span())
	}
	return i
}

// EvalInteger evaluates e and requires an integral 1×1 result.
func EvalInteger(c Context, e Expr, context string) int {
	return evalInteger(c, e, context)
}
