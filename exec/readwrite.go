// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"math"
	"strconv"
	"strings"

	"github.com/mtx-lang/mtx/value"
)

// Read is the READ statement. C1 and C2 give the record columns
// holding data, 1-based with C2 exclusive. W is the fixed field width,
// or 0 for free format. Size is nil when the destination is a
// submatrix, whose selection supplies the dimensions.
type Read struct {
	Target    *Lvalue
	File      string
	C1, C2    int
	W         int
	Size      value.Expr
	Symmetric bool
	Format    Format
	Reread    bool
	Span      value.Span
}

func (cmd *Read) Execute(c *Context) bool {
	t := cmd.Target.Evaluate(c)

	rows, cols := -1, -1
	if cmd.Size != nil {
		m := cmd.Size.Eval(c)
		if !m.IsVector() || m.Size() < 1 || m.Size() > 2 {
			c.Errorf("%s: SIZE must evaluate to a scalar or a 2-element vector, not a %s matrix",
				cmd.Size.Span(), m.Shape())
		}
		d0, d1 := m.Data()[0], 1.0
		if m.Size() == 2 {
			d1 = m.Data()[1]
		}
		if d0 < 0 || d1 < 0 || d0 != math.Trunc(d0) || d1 != math.Trunc(d1) {
			c.Errorf("%s: matrix dimensions %g×%g specified on SIZE are outside valid range",
				cmd.Size.Span(), d0, d1)
		}
		rows, cols = int(d0), int(d1)
	}

	if cmd.Target.NIndex > 0 {
		sr, sc := t.Dims()
		if cmd.Size != nil {
			if rows != sr || cols != sc {
				c.Errorf("%s: dimensions %d×%d specified on SIZE differ from "+
					"the %d×%d dimensions of the destination submatrix",
					cmd.Span, rows, cols, sr, sc)
			}
		} else {
			rows, cols = sr, sc
		}
	}

	rf := c.ReadFile(c, cmd.File)
	if cmd.Reread {
		rf.Reread()
	}

	if cmd.Symmetric && rows != cols {
		c.Errorf("%s: cannot read non-square %d×%d matrix using READ with MODE=SYMMETRIC",
			cmd.Span, rows, cols)
	}
	tmp := value.NewMatrix(rows, cols)
	cmd.read(c, rf, tmp)
	t.Assign(c, tmp, cmd.Span)
	return true
}

// clip extracts the configured column range from an input record.
func (cmd *Read) clip(record string) string {
	start := cmd.C1 - 1
	if start >= len(record) {
		return ""
	}
	end := start + (cmd.C2 - cmd.C1)
	if end > len(record) {
		end = len(record)
	}
	return record[start:end]
}

func (cmd *Read) read(c *Context, rf *ReadFile, m *value.Matrix) {
	for y := 0; y < m.Rows(); y++ {
		nx := m.Cols()
		if cmd.Symmetric {
			nx = y + 1
		}

		if cmd.W == 0 {
			// Free format: fields separated by spaces or commas,
			// spilling onto as many records as needed.
			line := ""
			for x := 0; x < nx; x++ {
				for {
					line = strings.TrimLeft(line, " ,")
					if line != "" {
						break
					}
					line = cmd.clip(rf.Record(c))
					rf.Forward()
				}
				var p string
				if i := strings.IndexAny(line, " ,"); i < 0 {
					p, line = line, ""
				} else {
					p, line = line[:i], line[i:]
				}
				cmd.setField(c, m, p, y, x)
			}
			if rest := strings.TrimLeft(line, " ,"); rest != "" {
				c.Warnf("trailing garbage following data for matrix row %d", y+1)
			}
		} else {
			fieldsPerLine := (cmd.C2 - cmd.C1) / cmd.W
			for x := 0; x < nx; x++ {
				line := cmd.clip(rf.Record(c))
				f := x % fieldsPerLine
				if f == fieldsPerLine-1 {
					rf.Forward()
				}
				var p string
				if start := cmd.W * f; start < len(line) {
					end := start + cmd.W
					if end > len(line) {
						end = len(line)
					}
					p = line[start:end]
				}
				cmd.setField(c, m, p, y, x)
			}
			rf.Forward()
		}
	}
}

func (cmd *Read) setField(c *Context, m *value.Matrix, p string, y, x int) {
	var f float64
	if cmd.Format.Numeric() {
		s := strings.TrimSpace(p)
		if s == "" || s == "." {
			c.Errorf("matrix data may not contain missing value (row %d, column %d)", y+1, x+1)
		}
		var err error
		f, err = strconv.ParseFloat(s, 64)
		if err != nil {
			c.Errorf("cannot parse %q as matrix data for row %d, column %d in format %s",
				s, y+1, x+1, cmd.Format)
		}
		// F input with implied decimals scales values written
		// without a decimal point.
		if cmd.Format.Type == 'F' && cmd.Format.D > 0 && !strings.ContainsAny(s, ".eE") {
			f /= math.Pow(10, float64(cmd.Format.D))
		}
	} else {
		f = value.PackString(p)
	}
	m.Set(y, x, f)
	if cmd.Symmetric && x != y {
		m.Set(x, y, f)
	}
}

// Write is the WRITE statement. A nil Format writes each value in its
// shortest representation, one space between fields.
type Write struct {
	Expr       value.Expr
	File       string
	C1, C2     int
	Format     *Format
	Triangular bool
	Hold       bool
}

func (cmd *Write) Execute(c *Context) bool {
	m := cmd.Expr.Eval(c)
	if cmd.Triangular && m.Rows() != m.Cols() {
		c.Errorf("%s: WRITE with MODE=TRIANGULAR requires a square matrix but "+
			"the matrix to be written has dimensions %s", cmd.Expr.Span(), m.Shape())
	}
	wf := c.WriteFile(c, cmd.File)
	if m.Rows() == 0 {
		return true
	}

	line, _ := wf.TakeHeld()
	for y := 0; y < m.Rows(); y++ {
		nx := m.Cols()
		if cmd.Triangular {
			nx = y + 1
		}
		x0 := cmd.C1
		for x := 0; x < nx; x++ {
			f := m.At(y, x)
			var s string
			if cmd.Format != nil {
				s = cmd.Format.Apply(f)
			} else {
				s = strconv.FormatFloat(f, 'G', -1, 64)
			}
			if x0+len(s) > cmd.C2 {
				wf.WriteLine(c, line)
				line = ""
				x0 = cmd.C1
			}
			line = linePut(line, x0-1, s)
			if cmd.Format != nil {
				x0 += cmd.Format.W
			} else {
				x0 += len(s) + 1
			}
		}
		if y+1 >= m.Rows() && cmd.Hold {
			break
		}
		wf.WriteLine(c, line)
		line = ""
	}
	if cmd.Hold {
		wf.Hold(line)
	}
	return true
}

// linePut overlays s onto line at a 0-based column, extending the line
// with spaces as needed.
func linePut(line string, pos int, s string) string {
	if len(line) < pos {
		line += strings.Repeat(" ", pos-len(line))
	}
	if len(line) > pos+len(s) {
		return line[:pos] + s + line[pos+len(s):]
	}
	return line[:pos] + s
}
