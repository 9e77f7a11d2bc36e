// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// IndexKind names the context an index is used in, to make the error
// messages precise.
type IndexKind int

const (
	VectorIndex IndexKind = iota
	RowIndex
	ColumnIndex
)

func (k IndexKind) String() string {
	switch k {
	case RowIndex:
		return "row index"
	case ColumnIndex:
		return "column index"
	}
	return "vector index"
}

// An IndexVector is a resolved list of zero-based positions along one
// matrix axis.
type IndexVector struct {
	Indexes []int
}

// N returns the number of selected positions.
func (iv IndexVector) N() int {
	return len(iv.Indexes)
}

// AllIndexes returns the full index range 0..size-1, the meaning of an
// omitted (':') index.
func AllIndexes(size int) IndexVector {
	ix := make([]int, size)
	for i := range ix {
		ix[i] = i
	}
	return IndexVector{Indexes: ix}
}

// NormalizeIndexVector validates a user-supplied index matrix against an
// axis of the given size and converts its 1-based inclusive entries to
// zero-based positions. A nil index matrix selects the whole axis.
func NormalizeIndexVector(c Context, iv *Matrix, size int, kind IndexKind) IndexVector {
	if iv == nil {
		return AllIndexes(size)
	}
	if !iv.IsVector() && iv.Size() > 0 {
		c.Errorf("%s must be a vector, not a %s matrix", kind, iv.Shape())
	}
	ix := make([]int, 0, iv.Size())
	for _, f := range iv.data {
		i := int(f)
		if float64(i) != f || i < 1 || i > size {
			c.Errorf("%s value %v is out of range: it must be an integer between 1 and %d", kind, f, size)
		}
		ix = append(ix, i-1)
	}
	return IndexVector{Indexes: ix}
}

// indexVectorElems implements x(i) for vector-shaped x, preserving x's
// orientation in the result.
func indexVectorElems(c Context, m, iv *Matrix) *Matrix {
	if !m.IsVector() && m.Size() > 0 {
		c.Errorf("vector index operator may not be applied to a %s matrix", m.Shape())
	}
	ix := NormalizeIndexVector(c, iv, m.Size(), VectorIndex)
	data := make([]float64, ix.N())
	for i, pos := range ix.Indexes {
		data[i] = m.data[pos]
	}
	if m.rows == 1 {
		return RowVector(data)
	}
	return ColVector(data)
}

// indexMatrixElems implements x(i,j): the submatrix selected by the row
// and column index sets.
func indexMatrixElems(c Context, m, rowIdx, colIdx *Matrix) *Matrix {
	ri := NormalizeIndexVector(c, rowIdx, m.rows, RowIndex)
	ci := NormalizeIndexVector(c, colIdx, m.cols, ColumnIndex)
	result := NewMatrix(ri.N(), ci.N())
	for r, mr := range ri.Indexes {
		for col, mc := range ci.Indexes {
			result.Set(r, col, m.At(mr, mc))
		}
	}
	return result
}
