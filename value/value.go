// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value implements the matrix values, expression trees, and
// built-in functions of the matrix language. The only runtime datatype
// is a dense 2-D matrix of float64; a scalar is a 1×1 matrix and a
// string is up to 8 bytes packed into the bit pattern of one float64.
package value // import "github.com/mtx-lang/mtx/value"

import (
	"fmt"
	"math"
	"strings"
)

// Error is the type we recover in the execution loop.
type Error string

func (e Error) Error() string {
	return string(e)
}

// Errorf panics with a formatted Error. It is recovered per-command by
// the driver, which reports the error and continues with the next command.
func Errorf(format string, args ...interface{}) Error {
	panic(Error(fmt.Sprintf(format, args...)))
}

// Matrix is a dense rows×cols matrix of float64s stored in row-major
// order. The zero-row and zero-column shapes are valid and distinct from
// an uninitialized variable, which is represented by a nil *Matrix.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a zero-filled rows×cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		Errorf("invalid matrix dimensions %d×%d", rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// NewMatrixData returns a rows×cols matrix using data, which is row-major
// and must have exactly rows*cols elements.
func NewMatrixData(rows, cols int, data []float64) *Matrix {
	if len(data) != rows*cols {
		Errorf("internal error: matrix data length %d for %d×%d matrix", len(data), rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Scalar returns f as a 1×1 matrix.
func Scalar(f float64) *Matrix {
	return &Matrix{rows: 1, cols: 1, data: []float64{f}}
}

// RowVector returns data as a 1×n matrix.
func RowVector(data []float64) *Matrix {
	return &Matrix{rows: 1, cols: len(data), data: data}
}

// ColVector returns data as an n×1 matrix.
func ColVector(data []float64) *Matrix {
	return &Matrix{rows: len(data), cols: 1, data: data}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Size returns the number of elements.
func (m *Matrix) Size() int { return len(m.data) }

// Data returns the row-major backing slice.
func (m *Matrix) Data() []float64 { return m.data }

// At returns the element at (row, col), zero-based.
func (m *Matrix) At(row, col int) float64 {
	return m.data[row*m.cols+col]
}

// Set sets the element at (row, col), zero-based.
func (m *Matrix) Set(row, col int, f float64) {
	m.data[row*m.cols+col] = f
}

// IsScalar reports whether m is 1×1.
func (m *Matrix) IsScalar() bool {
	return m.rows == 1 && m.cols == 1
}

// IsVector reports whether m has a single row or a single column.
// A scalar is a vector; an empty matrix is not.
func (m *Matrix) IsVector() bool {
	return (m.rows == 1 || m.cols == 1) && len(m.data) > 0
}

// ScalarValue returns the single element of a 1×1 matrix.
func (m *Matrix) ScalarValue() float64 {
	return m.data[0]
}

// Shape returns the dimensions formatted for error messages, like "2×3".
func (m *Matrix) Shape() string {
	return fmt.Sprintf("%d×%d", m.rows, m.cols)
}

// Copy returns a deep copy of m.
func (m *Matrix) Copy() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// IsSymmetric reports whether m is square and equal to its transpose.
func (m *Matrix) IsSymmetric() bool {
	if m.rows != m.cols {
		return false
	}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < r; c++ {
			if m.At(r, c) != m.At(c, r) {
				return false
			}
		}
	}
	return true
}

// IsTrue reports the truth value of a scalar: true iff greater than zero.
func IsTrue(f float64) bool {
	return f > 0
}

// PackString packs up to 8 bytes of s, space-padded, into the bit pattern
// of one float64. Longer strings are truncated. This type punning is the
// language's representation of short strings in numeric storage.
func PackString(s string) float64 {
	var b [8]byte
	for i := range b {
		b[i] = ' '
	}
	copy(b[:], s)
	var bits uint64
	for i := 7; i >= 0; i-- {
		bits = bits<<8 | uint64(b[i])
	}
	return math.Float64frombits(bits)
}

// UnpackString reverses PackString, trimming trailing spaces.
func UnpackString(f float64) string {
	bits := math.Float64bits(f)
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(bits)
		bits >>= 8
	}
	return strings.TrimRight(string(b[:]), " ")
}

// Sprint formats m compactly on one or more lines, for debugging and for
// the DISPLAY of small values in tests.
func (m *Matrix) Sprint() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%v", m.At(r, c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
