// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mtx-lang/mtx/value"
)

// Print is the PRINT statement. Expr is nil when the statement only
// emits spacing and a title. Space is the number of leading blank
// lines, or -1 for a page break. The default title, filled in at
// parse time, is the source text of the expression.
type Print struct {
	Expr     value.Expr
	Format   *Format
	Title    string
	HasTitle bool
	Space    int
	RLabels  *PrintLabels
	CLabels  *PrintLabels
}

// PrintLabels is an RLABELS/CLABELS or RNAMES/CNAMES clause: either
// literal strings or an expression evaluating to a vector of packed
// strings.
type PrintLabels struct {
	Literals []string
	Expr     value.Expr
}

// get produces exactly n labels. Shortfalls are padded with
// "row1"-style names when the labels came from an expression, with
// empty strings when they were literal.
func (pl *PrintLabels) get(c *Context, n int, prefix string, truncate bool) []string {
	if pl == nil {
		return nil
	}
	out := []string{}
	if len(pl.Literals) > 0 {
		out = append(out, pl.Literals...)
	} else if pl.Expr != nil {
		m := pl.Expr.Eval(c)
		if m.IsVector() {
			for _, d := range m.Data() {
				out = append(out, value.UnpackString(d))
			}
		}
	}
	for len(out) < n {
		if pl.Expr != nil {
			out = append(out, fmt.Sprintf("%s%d", prefix, len(out)+1))
		} else {
			out = append(out, "")
		}
	}
	out = out[:n]
	if truncate {
		for i, s := range out {
			if len(s) > 8 {
				out[i] = s[:8]
			}
		}
	}
	return out
}

func (cmd *Print) Execute(c *Context) bool {
	out := c.config.Output()
	cmd.printSpace(out)
	if cmd.Expr == nil {
		if cmd.HasTitle {
			fmt.Fprintln(out, cmd.Title)
		}
		return true
	}

	m := cmd.Expr.Eval(c)
	var format Format
	logScale := 0
	if cmd.Format != nil {
		format = *cmd.Format
	} else {
		format, logScale = defaultFormat(m)
	}

	if cmd.HasTitle {
		fmt.Fprintln(out, cmd.Title)
	}
	if logScale != 0 {
		fmt.Fprintf(out, "  10 ** %d   X\n", logScale)
	}

	clabels := cmd.CLabels.get(c, m.Cols(), "col", true)
	if clabels != nil && format.W < 8 {
		format.W = 8
	}
	rlabels := cmd.RLabels.get(c, m.Rows(), "row", true)

	if clabels != nil {
		var line strings.Builder
		if rlabels != nil {
			line.WriteString(strings.Repeat(" ", 8))
		}
		for _, s := range clabels {
			fmt.Fprintf(&line, " %*s", format.W, s)
		}
		fmt.Fprintln(out, line.String())
	}

	scale := math.Pow(10, float64(logScale))
	for y := 0; y < m.Rows(); y++ {
		var line strings.Builder
		if rlabels != nil {
			fmt.Fprintf(&line, "%-8s", rlabels[y])
		}
		for x := 0; x < m.Cols(); x++ {
			f := m.At(y, x)
			var s string
			if format.Numeric() {
				s = format.Apply(f / scale)
			} else {
				s = value.UnpackString(f)
			}
			line.WriteString(" ")
			line.WriteString(s)
		}
		fmt.Fprintln(out, line.String())
	}
	return true
}

func (cmd *Print) printSpace(out io.Writer) {
	if cmd.Space < 0 {
		fmt.Fprint(out, "\f")
	}
	for i := 0; i < cmd.Space; i++ {
		fmt.Fprintln(out)
	}
}
