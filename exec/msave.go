// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mtx-lang/mtx/value"
)

// Msave is the MSAVE statement. All MSAVEs in a program write to one
// matrix file whose layout (split columns, ROWTYPE_, factor columns,
// VARNAME_, continuous columns) is fixed by the first MSAVE executed.
type Msave struct {
	Expr      value.Expr
	Rowtype   string // COV, CORR, MEAN, STDDEV, N, or COUNT
	Outfile   string
	Variables []string
	Fnames    []string
	Snames    []string
	Factor    value.Expr
	Split     value.Expr
	Span      value.Span
}

func (cmd *Msave) Execute(c *Context) bool {
	m := cmd.Expr.Eval(c)

	var factors, splits []float64
	if cmd.Factor != nil {
		factors = msaveVector(c, cmd.Factor, "FACTOR")
	}
	if cmd.Split != nil {
		splits = msaveVector(c, cmd.Split, "SPLIT")
	}

	common := c.Common()
	if common == nil {
		common = c.MatrixWriterFor(&MatrixWriter{
			Outfile:  cmd.Outfile,
			Varnames: defaultNames(cmd.Variables, "COL", m.Cols()),
			Fnames:   defaultNames(cmd.Fnames, "FAC", len(factors)),
			Snames:   defaultNames(cmd.Snames, "SPL", len(splits)),
		})
	} else {
		if cmd.Outfile != "" && cmd.Outfile != common.Outfile {
			c.Errorf("%s: OUTFILE must name the same file %s as the first MSAVE",
				cmd.Span, common.Outfile)
		}
		if len(cmd.Variables) > 0 && !sameNames(cmd.Variables, common.Varnames) {
			c.Errorf("%s: VARIABLES differs from the first MSAVE", cmd.Span)
		}
		if len(cmd.Fnames) > 0 && !sameNames(cmd.Fnames, common.Fnames) {
			c.Errorf("%s: FNAMES differs from the first MSAVE", cmd.Span)
		}
		if len(cmd.Snames) > 0 && !sameNames(cmd.Snames, common.Snames) {
			c.Errorf("%s: SNAMES differs from the first MSAVE", cmd.Span)
		}
	}

	if m.Cols() != len(common.Varnames) {
		c.Errorf("%s: matrix on MSAVE has %d columns but there are %d variables",
			cmd.Expr.Span(), m.Cols(), len(common.Varnames))
	}
	if len(factors) != len(common.Fnames) {
		c.Errorf("%s: there are %d factor variables, but %d factor values were supplied",
			cmd.Span, len(common.Fnames), len(factors))
	}
	if len(splits) != len(common.Snames) {
		c.Errorf("%s: there are %d split variables, but %d split values were supplied",
			cmd.Span, len(common.Snames), len(splits))
	}

	isMatrix := cmd.Rowtype == "COV" || cmd.Rowtype == "CORR"
	for y := 0; y < m.Rows(); y++ {
		var rec []string
		for _, s := range splits {
			rec = append(rec, formatNumber(s))
		}
		rec = append(rec, cmd.Rowtype)
		for _, f := range factors {
			rec = append(rec, formatNumber(f))
		}
		if isMatrix && y < len(common.Varnames) {
			rec = append(rec, common.Varnames[y])
		} else {
			rec = append(rec, "")
		}
		for x := 0; x < m.Cols(); x++ {
			rec = append(rec, formatNumber(m.At(y, x)))
		}
		common.WriteRecord(c, rec)
	}
	return true
}

func msaveVector(c *Context, e value.Expr, name string) []float64 {
	m := e.Eval(c)
	if !m.IsVector() {
		c.Errorf("%s: %s expression must evaluate to vector, not a %s matrix",
			e.Span(), name, m.Shape())
	}
	return m.Data()
}

func defaultNames(names []string, prefix string, n int) []string {
	if len(names) > 0 {
		return names
	}
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + strconv.Itoa(i+1)
	}
	return out
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'G', -1, 64)
}

// Mget is the MGET statement. It reads a matrix file of the layout
// MSAVE writes, splitting it into matrices on changes of split
// values, factor values, or row type, and assigns each matrix to a
// variable named after its row type.
type Mget struct {
	File     string
	Rowtypes []string // accepted row types, empty accepts all
	Span     value.Span
}

func (cmd *Mget) Execute(c *Context) bool {
	f, err := os.Open(cmd.File)
	if err != nil {
		c.Errorf("cannot open %s for reading: %v", cmd.File, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		c.Errorf("cannot read column names from %s: %v", cmd.File, err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	rowtypeCol := columnIndex(header, "ROWTYPE_")
	varnameCol := columnIndex(header, "VARNAME_")
	if rowtypeCol < 0 {
		c.Errorf("%s: matrix data file lacks ROWTYPE_ variable", cmd.Span)
	}
	if varnameCol < 0 {
		c.Errorf("%s: matrix data file lacks VARNAME_ variable", cmd.Span)
	}
	if rowtypeCol >= varnameCol {
		c.Errorf("%s: ROWTYPE_ must precede VARNAME_ in matrix data file", cmd.Span)
	}
	if varnameCol+1 >= len(header) {
		c.Errorf("%s: matrix data file contains no continuous variables", cmd.Span)
	}

	sn := rowtypeCol                // split columns [0, sn)
	fs, fn := rowtypeCol+1, varnameCol-rowtypeCol-1
	cs, cn := varnameCol+1, len(header)-varnameCol-1

	g := mgetGrouper{
		cmd: cmd, c: c,
		rowtypeCol: rowtypeCol,
		fs: fs, fn: fn, cs: cs, cn: cn, sn: sn,
	}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.Errorf("error reading %s: %v", cmd.File, err)
		}
		if len(rec) != len(header) {
			c.Errorf("%s: %s record has %d fields but the file has %d variables",
				cmd.Span, cmd.File, len(rec), len(header))
		}
		g.add(rec)
	}
	g.commit()
	return true
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// mgetGrouper accumulates consecutive records into one matrix until
// the split values, factor values, or row type change.
type mgetGrouper struct {
	cmd        *Mget
	c          *Context
	rowtypeCol int
	sn         int
	fs, fn     int
	cs, cn     int

	rows   [][]string
	sc, fc []string // last split and factor cells seen
	si, fi int
}

func (g *mgetGrouper) add(rec []string) {
	const (
		splitsChanged = iota
		factorsChanged
		rowtypeChanged
		nothingChanged
	)
	change := nothingChanged
	switch {
	case g.sn > 0 && (g.sc == nil || !sameCells(g.sc, rec, 0, g.sn)):
		change = splitsChanged
	case g.fn > 0 && (g.fc == nil || !sameCells(g.fc, rec, g.fs, g.fn)):
		change = factorsChanged
	case len(g.rows) == 0 || !strings.EqualFold(
		strings.TrimSpace(g.rows[len(g.rows)-1][g.rowtypeCol]),
		strings.TrimSpace(rec[g.rowtypeCol])):
		change = rowtypeChanged
	}
	if change != nothingChanged {
		g.commit()
	}
	g.rows = append(g.rows, rec)

	hasFactors := g.fn > 0 && !cellsAllMissing(rec, g.fs, g.fn)
	switch change {
	case splitsChanged:
		g.si++
		g.sc = rec
		if g.fn > 0 {
			g.fi = 0
			if hasFactors {
				g.fi++
			}
			g.fc = rec
		}
	case factorsChanged:
		if hasFactors {
			g.fi++
		}
		g.fc = rec
	}
}

func (g *mgetGrouper) commit() {
	rows := g.rows
	g.rows = nil
	if len(rows) == 0 {
		return
	}
	c := g.c

	pooled := g.fn == 0 || cellsAllMissing(rows[0], g.fs, g.fn)

	rowtype := strings.TrimSpace(rows[0][g.rowtypeCol])
	if len(g.cmd.Rowtypes) > 0 {
		accepted := false
		for _, rt := range g.cmd.Rowtypes {
			if strings.EqualFold(rt, rowtype) {
				accepted = true
				break
			}
		}
		if !accepted {
			return
		}
	}

	var prefix string
	switch strings.ToUpper(rowtype) {
	case "COV":
		prefix = "CV"
	case "CORR":
		prefix = "CR"
	case "MEAN":
		prefix = "MN"
	case "STDDEV":
		prefix = "SD"
	case "N":
		prefix = "NC"
	case "COUNT":
		prefix = "CN"
	default:
		c.Warnf("matrix data file contains unknown ROWTYPE_ %q", rowtype)
		return
	}

	name := prefix
	if !pooled {
		name += "F" + strconv.Itoa(g.fi)
	}
	if g.si > 0 {
		name += "S" + strconv.Itoa(g.si)
	}

	if v := c.Lookup(name); v != nil && v.Value() != nil {
		c.Warnf("matrix data file contains variable with existing name %s", name)
		return
	}

	m := value.NewMatrix(len(rows), g.cn)
	nMissing := 0
	for y, rec := range rows {
		for x := 0; x < g.cn; x++ {
			cell := strings.TrimSpace(rec[g.cs+x])
			if cellMissing(cell) {
				nMissing++
				continue
			}
			f, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				c.Errorf("%s: cannot parse %q as number in %s",
					g.cmd.Span, cell, g.cmd.File)
			}
			m.Set(y, x, f)
		}
	}
	if nMissing > 0 {
		c.Warnf("matrix data file variable %s contains %d missing values, "+
			"which were treated as zero", name, nMissing)
	}
	c.Assign(name, m)
}

func cellMissing(cell string) bool {
	return cell == "" || cell == "." || strings.EqualFold(cell, "SYSMIS")
}

func sameCells(prev, rec []string, start, n int) bool {
	for i := 0; i < n; i++ {
		if strings.TrimSpace(prev[start+i]) != strings.TrimSpace(rec[start+i]) {
			return false
		}
	}
	return true
}

func cellsAllMissing(rec []string, start, n int) bool {
	for i := 0; i < n; i++ {
		if !cellMissing(strings.TrimSpace(rec[start+i])) {
			return false
		}
	}
	return true
}
