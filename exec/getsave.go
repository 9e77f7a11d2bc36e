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

// A Treatment says what GET does with a missing cell.
type Treatment int

const (
	TreatError Treatment = iota // default
	TreatAccept
	TreatOmit       // drop the case
	TreatSubstitute // store the configured value
)

// Get is the GET statement. It reads the numeric columns of a
// CSV case file, whose first record names the columns. Empty cells
// and "." follow the Missing treatment; cells reading "SYSMIS" follow
// the Sysmis treatment.
type Get struct {
	Target       *Lvalue
	File         string
	Variables    []string
	Names        string
	Missing      Treatment
	MissingValue float64
	Sysmis       Treatment
	SysmisValue  float64
	Span         value.Span
}

func (cmd *Get) Execute(c *Context) bool {
	t := cmd.Target.Evaluate(c)

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

	var cols []int
	if len(cmd.Variables) > 0 {
		for _, want := range cmd.Variables {
			ci := -1
			for i, name := range header {
				if strings.EqualFold(name, want) {
					ci = i
					break
				}
			}
			if ci < 0 {
				c.Errorf("%s: %s has no variable %s", cmd.Span, cmd.File, want)
			}
			cols = append(cols, ci)
		}
	} else {
		for i := range header {
			cols = append(cols, i)
		}
	}

	var data []float64
	nrows := 0
	row := make([]float64, len(cols))
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.Errorf("error reading %s: %v", cmd.File, err)
		}
		omit := false
		for i, ci := range cols {
			var cell string
			if ci < len(rec) {
				cell = strings.TrimSpace(rec[ci])
			}
			treatment, sub := TreatAccept, 0.0
			switch {
			case cell == "" || cell == ".":
				treatment, sub = cmd.Missing, cmd.MissingValue
			case strings.EqualFold(cell, "SYSMIS"):
				treatment, sub = cmd.Sysmis, cmd.SysmisValue
			default:
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					c.Errorf("%s: %s case %d: cannot parse %q as number for variable %s",
						cmd.Span, cmd.File, nrows+1, cell, header[ci])
				}
				row[i] = v
				continue
			}
			switch treatment {
			case TreatOmit:
				omit = true
			case TreatSubstitute:
				row[i] = sub
			default:
				c.Errorf("%s: %s case %d: variable %s is missing", cmd.Span,
					cmd.File, nrows+1, header[ci])
			}
		}
		if omit {
			continue
		}
		data = append(data, row...)
		nrows++
	}

	if cmd.Names != "" {
		names := make([]float64, len(cols))
		for i, ci := range cols {
			names[i] = value.PackString(header[ci])
		}
		c.Assign(cmd.Names, value.RowVector(names))
	}
	t.Assign(c, value.NewMatrixData(nrows, len(cols), data), cmd.Span)
	return true
}

// Save is the SAVE statement. Rows of the matrix become CSV cases in
// the named file. The first SAVE to a file fixes the column layout.
type Save struct {
	Expr      value.Expr
	File      string
	Variables []string
	Names     value.Expr
	Strings   []string
	Span      value.Span
}

func (cmd *Save) Execute(c *Context) bool {
	m := cmd.Expr.Eval(c)
	sf := c.SaveFile(c, cmd.File)

	if sf.colNames == nil {
		names := cmd.columnNames(c, m.Cols())
		if len(names) != m.Cols() {
			c.Errorf("%s: %d variable names given for a matrix with %d columns",
				cmd.Span, len(names), m.Cols())
		}
		sf.colNames = names
		sf.firstSpan = cmd.Span
		sf.stringCol = make(map[string]bool)
		for _, s := range cmd.Strings {
			sf.stringCol[strings.ToUpper(s)] = true
		}
		sf.w.Write(names)
	} else if m.Cols() != len(sf.colNames) {
		c.Errorf("%s: cannot save %s matrix to %s, whose first SAVE (%s) fixed it at %d columns",
			cmd.Span, m.Shape(), cmd.File, sf.firstSpan, len(sf.colNames))
	}

	rec := make([]string, m.Cols())
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			f := m.At(y, x)
			if sf.stringCol[strings.ToUpper(sf.colNames[x])] {
				rec[x] = value.UnpackString(f)
			} else {
				rec[x] = strconv.FormatFloat(f, 'G', -1, 64)
			}
		}
		if err := sf.w.Write(rec); err != nil {
			c.Errorf("error writing %s: %v", cmd.File, err)
		}
	}
	return true
}

func (cmd *Save) columnNames(c *Context, n int) []string {
	if len(cmd.Variables) > 0 {
		if cmd.Names != nil {
			c.Warnf("ignoring NAMES because VARIABLES was also specified")
		}
		return cmd.Variables
	}
	if cmd.Names != nil {
		m := cmd.Names.Eval(c)
		if !m.IsVector() {
			c.Errorf("%s: NAMES must evaluate to a vector, not a %s matrix",
				cmd.Names.Span(), m.Shape())
		}
		names := make([]string, m.Size())
		for i, d := range m.Data() {
			names[i] = value.UnpackString(d)
		}
		return names
	}
	names := make([]string, n)
	for i := range names {
		names[i] = "COL" + strconv.Itoa(i+1)
	}
	return names
}
