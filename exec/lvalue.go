// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"github.com/mtx-lang/mtx/value"
)

// An Lvalue is an assignment destination: a bare variable, a vector
// element selection X(i), or a submatrix selection X(r, c). A nil index
// expression stands for ':', selecting everything along that axis.
type Lvalue struct {
	Name     string
	NameSpan value.Span
	NIndex   int // 0, 1, or 2
	RowIndex value.Expr
	ColIndex value.Expr
}

// A Target is an evaluated Lvalue: the destination matrix along with
// its normalized index selections. Commands that need the selection's
// shape before producing a value (READ) evaluate the lvalue once and
// then assign through the Target.
type Target struct {
	lv         *Lvalue
	dst        *value.Matrix // nil for a bare variable
	vec        value.IndexVector
	rows, cols value.IndexVector
}

// Assign stores rhs through the lvalue. A bare variable is replaced
// wholesale; indexed forms update elements of the existing value in
// place and require shape agreement with the selection.
func (lv *Lvalue) Assign(ctx value.Context, rhs *value.Matrix, rhsSpan value.Span) {
	lv.Evaluate(ctx).Assign(ctx, rhs, rhsSpan)
}

// Evaluate resolves the lvalue's index expressions against the current
// value of the destination variable.
func (lv *Lvalue) Evaluate(ctx value.Context) *Target {
	t := &Target{lv: lv}
	if lv.NIndex == 0 {
		return t
	}

	v := ctx.Lookup(lv.Name)
	if v == nil || v.Value() == nil {
		ctx.Errorf("uninitialized variable %s used as indexed assignment target (%s)",
			lv.Name, lv.NameSpan)
	}
	t.dst = v.Value()

	if lv.NIndex == 1 {
		if !t.dst.IsVector() {
			ctx.Errorf("cannot index %s with a single subscript because it is %s, not a vector (%s)",
				lv.Name, t.dst.Shape(), lv.NameSpan)
		}
		t.vec = lv.index(ctx, lv.RowIndex, t.dst.Size(), value.VectorIndex)
		return t
	}

	t.rows = lv.index(ctx, lv.RowIndex, t.dst.Rows(), value.RowIndex)
	t.cols = lv.index(ctx, lv.ColIndex, t.dst.Cols(), value.ColumnIndex)
	return t
}

// Dims returns the shape of the selection, or (-1, -1) for a bare
// variable, whose shape is whatever gets assigned.
func (t *Target) Dims() (rows, cols int) {
	switch t.lv.NIndex {
	case 0:
		return -1, -1
	case 1:
		if t.dst.Rows() == 1 {
			return 1, t.vec.N()
		}
		return t.vec.N(), 1
	}
	return t.rows.N(), t.cols.N()
}

func (t *Target) Assign(ctx value.Context, rhs *value.Matrix, rhsSpan value.Span) {
	lv := t.lv
	switch lv.NIndex {
	case 0:
		ctx.Assign(lv.Name, rhs)

	case 1:
		if !rhs.IsVector() || rhs.Size() != t.vec.N() {
			ctx.Errorf("cannot assign a %s matrix (%s) to the %d selected elements of %s (%s)",
				rhs.Shape(), rhsSpan, t.vec.N(), lv.Name, lv.NameSpan)
		}
		data := t.dst.Data()
		for i, idx := range t.vec.Indexes {
			data[idx] = rhs.Data()[i]
		}

	case 2:
		if rhs.Rows() != t.rows.N() {
			ctx.Errorf("cannot assign a %s matrix (%s) to a %d×%d submatrix of %s: "+
				"the row counts differ (%s)",
				rhs.Shape(), rhsSpan, t.rows.N(), t.cols.N(), lv.Name, lv.NameSpan)
		}
		if rhs.Cols() != t.cols.N() {
			ctx.Errorf("cannot assign a %s matrix (%s) to a %d×%d submatrix of %s: "+
				"the column counts differ (%s)",
				rhs.Shape(), rhsSpan, t.rows.N(), t.cols.N(), lv.Name, lv.NameSpan)
		}
		for y, ry := range t.rows.Indexes {
			for x, cx := range t.cols.Indexes {
				t.dst.Set(ry, cx, rhs.At(y, x))
			}
		}
	}
}

func (lv *Lvalue) index(ctx value.Context, e value.Expr, size int, kind value.IndexKind) value.IndexVector {
	if e == nil {
		return value.AllIndexes(size)
	}
	return value.NormalizeIndexVector(ctx, e.Eval(ctx), size, kind)
}
