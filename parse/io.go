// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strconv"
	"strings"

	"github.com/mtx-lang/mtx/exec"
	"github.com/mtx-lang/mtx/scan"
	"github.com/mtx-lang/mtx/value"
)

// nameList parses a list of variable names separated by optional
// commas.
func (p *Parser) nameList(context string) []string {
	p.match(scan.Assign)
	var names []string
	for {
		tok := p.expect(scan.Identifier, context)
		names = append(names, tok.Text)
		p.match(scan.Comma)
		if p.peek().Type != scan.Identifier {
			return names
		}
	}
}

// fieldClause is the FIELD=c1 TO c2 [BY w] subcommand shared by READ
// and WRITE. c2 is stored exclusive.
func (p *Parser) fieldClause(c1, c2, by *int) {
	p.match(scan.Assign)
	*c1 = p.integer("FIELD")
	if *c1 < 1 {
		p.errorf("%s:%d: FIELD column must be positive", p.fileName, p.lineNum)
	}
	if !p.matchKeyword("TO") {
		p.errorf("%s:%d: expected TO in FIELD clause", p.fileName, p.lineNum)
	}
	*c2 = p.integer("TO") + 1
	if *c2 <= *c1 {
		p.errorf("%s:%d: FIELD columns must not be in decreasing order", p.fileName, p.lineNum)
	}
	if p.matchKeyword("BY") {
		*by = p.integer("BY")
		width := *c2 - *c1
		if *by < 1 || *by > width {
			p.errorf("%s:%d: BY field width must be between 1 and the record width", p.fileName, p.lineNum)
		}
		if width%*by != 0 {
			p.errorf("%s:%d: field width %d does not evenly divide record width %d",
				p.fileName, p.lineNum, *by, width)
		}
	}
}

// ioFormat parses the FORMAT subcommand of READ or WRITE: a bare type
// name like F, a repetition count with a type like 5F, or a full
// specifier like F8.2. It returns the repetition count and the format,
// whose width is zero unless a full specifier gave one.
func (p *Parser) ioFormat() (repetitions int, format exec.Format) {
	p.match(scan.Assign)
	format.Type = 'F'
	if p.peek().Type == scan.Number {
		repetitions = p.integer("FORMAT")
		tok := p.expect(scan.Identifier, "FORMAT")
		typ, ok := formatType(tok.Text)
		if !ok {
			p.errorf("%s:%d: unknown format %s", p.fileName, tok.Line, tok.Text)
		}
		format.Type = typ
		return repetitions, format
	}
	tok := p.expect(scan.Identifier, "FORMAT")
	if typ, ok := formatType(tok.Text); ok {
		format.Type = typ
		return 0, format
	}
	text := tok.Text
	if nxt := p.peek(); nxt.Type == scan.Number && strings.HasPrefix(nxt.Text, ".") {
		p.next()
		text += nxt.Text
	}
	f, err := exec.ParseFormat(text)
	if err != nil {
		p.errorf("%s:%d: %v", p.fileName, tok.Line, err)
	}
	return 0, f
}

func formatType(name string) (byte, bool) {
	switch strings.ToUpper(name) {
	case "F":
		return 'F', true
	case "E":
		return 'E', true
	case "A":
		return 'A', true
	}
	return 0, false
}

// fieldWidth resolves the field width, which can come from BY on
// FIELD, the width of the FORMAT specifier, or the record width
// divided by the FORMAT repetition count. All present sources must
// agree; none at all means free field.
func (p *Parser) fieldWidth(repetitions, formatW, by, recordWidth int) int {
	if repetitions > recordWidth {
		p.errorf("%s:%d: %d repetitions cannot fit in record width %d",
			p.fileName, p.lineNum, repetitions, recordWidth)
	}
	w := by
	if repetitions > 0 {
		w = recordWidth / repetitions
	} else if formatW > 0 {
		w = formatW
	}
	if by != 0 && w != by {
		p.errorf("%s:%d: this command specifies two different field widths",
			p.fileName, p.lineNum)
	}
	return w
}

// READ target [/FILE=file] /FIELD=c1 TO c2 [BY w] [/SIZE=expr]
// [/MODE={RECTANGULAR|SYMMETRIC}] [/REREAD] [/FORMAT=spec].
func (p *Parser) read() exec.Command {
	line := p.lineNum
	cmd := &exec.Read{Target: p.lvalue(), Format: exec.Format{Type: 'F'}}
	var repetitions, by, formatW int
	seenFormat := false
	for p.match(scan.Slash) {
		switch {
		case p.matchKeyword("FILE"):
			p.match(scan.Assign)
			cmd.File = p.file()
		case p.matchKeyword("FIELD"):
			p.fieldClause(&cmd.C1, &cmd.C2, &by)
		case p.matchKeyword("SIZE"):
			p.match(scan.Assign)
			cmd.Size = p.restrictedExpr()
		case p.matchKeyword("MODE"):
			p.match(scan.Assign)
			if p.matchKeyword("SYMMETRIC") {
				cmd.Symmetric = true
			} else if !p.matchKeyword("RECTANGULAR") {
				p.errorf("%s:%d: expected RECTANGULAR or SYMMETRIC", p.fileName, p.lineNum)
			}
		case p.matchKeyword("REREAD"):
			cmd.Reread = true
		case p.matchKeyword("FORMAT"):
			if seenFormat {
				p.errorf("%s:%d: FORMAT may appear at most once", p.fileName, p.lineNum)
			}
			seenFormat = true
			var f exec.Format
			repetitions, f = p.ioFormat()
			cmd.Format.Type = f.Type
			cmd.Format.D = f.D
			formatW = f.W
		default:
			p.errorf("%s:%d: expected FILE, FIELD, SIZE, MODE, REREAD, or FORMAT, found %s",
				p.fileName, p.lineNum, p.peek())
		}
	}
	if cmd.C1 == 0 {
		p.errorf("%s:%d: READ requires FIELD", p.fileName, line)
	}
	if cmd.Target.NIndex == 0 && cmd.Size == nil {
		p.errorf("%s:%d: SIZE is required for reading data into a full matrix "+
			"(as opposed to a submatrix)", p.fileName, line)
	}
	if cmd.File == "" {
		if p.prevReadFile == "" {
			p.errorf("%s:%d: READ requires FILE", p.fileName, line)
		}
		cmd.File = p.prevReadFile
	}
	p.prevReadFile = cmd.File

	cmd.W = p.fieldWidth(repetitions, formatW, by, cmd.C2-cmd.C1)
	cmd.Format.W = cmd.W
	cmd.Span = value.Span{Start: line, End: p.lineNum}
	return cmd
}

// WRITE expr [/OUTFILE=file] /FIELD=c1 TO c2 [BY w]
// [/MODE={RECTANGULAR|TRIANGULAR}] [/HOLD] [/FORMAT=spec].
func (p *Parser) write() exec.Command {
	line := p.lineNum
	cmd := &exec.Write{Expr: p.restrictedExpr()}
	var repetitions, by int
	var format *exec.Format
	typ := byte('F')
	seenFormat := false
	for p.match(scan.Slash) {
		switch {
		case p.matchKeyword("OUTFILE"):
			p.match(scan.Assign)
			cmd.File = p.file()
		case p.matchKeyword("FIELD"):
			p.fieldClause(&cmd.C1, &cmd.C2, &by)
		case p.matchKeyword("MODE"):
			p.match(scan.Assign)
			if p.matchKeyword("TRIANGULAR") {
				cmd.Triangular = true
			} else if !p.matchKeyword("RECTANGULAR") {
				p.errorf("%s:%d: expected RECTANGULAR or TRIANGULAR", p.fileName, p.lineNum)
			}
		case p.matchKeyword("HOLD"):
			cmd.Hold = true
		case p.matchKeyword("FORMAT"):
			if seenFormat {
				p.errorf("%s:%d: FORMAT may appear at most once", p.fileName, p.lineNum)
			}
			seenFormat = true
			var f exec.Format
			repetitions, f = p.ioFormat()
			typ = f.Type
			if f.W > 0 {
				format = &f
			}
		default:
			p.errorf("%s:%d: expected OUTFILE, FIELD, MODE, HOLD, or FORMAT, found %s",
				p.fileName, p.lineNum, p.peek())
		}
	}
	if cmd.C1 == 0 {
		p.errorf("%s:%d: WRITE requires FIELD", p.fileName, line)
	}
	if cmd.File == "" {
		if p.prevWriteFile == "" {
			p.errorf("%s:%d: WRITE requires OUTFILE", p.fileName, line)
		}
		cmd.File = p.prevWriteFile
	}
	p.prevWriteFile = cmd.File

	formatW := 0
	if format != nil {
		formatW = format.W
	}
	w := p.fieldWidth(repetitions, formatW, by, cmd.C2-cmd.C1)
	if w != 0 && format == nil {
		f, err := exec.NewFormat(typ, w, 0)
		if err != nil {
			p.errorf("%s:%d: %v", p.fileName, line, err)
		}
		format = &f
	}
	cmd.Format = format
	return cmd
}

// GET target [/FILE=file] [/VARIABLES=names] [/NAMES=var]
// [/MISSING={ACCEPT|OMIT|value}] [/SYSMIS={OMIT|value}].
func (p *Parser) get() exec.Command {
	line := p.lineNum
	cmd := &exec.Get{Target: p.lvalue()}
	for p.match(scan.Slash) {
		switch {
		case p.matchKeyword("FILE"):
			p.match(scan.Assign)
			cmd.File = p.file()
		case p.matchKeyword("VARIABLES"):
			if cmd.Variables != nil {
				p.errorf("%s:%d: VARIABLES may appear at most once", p.fileName, p.lineNum)
			}
			cmd.Variables = p.nameList("VARIABLES")
		case p.matchKeyword("NAMES"):
			p.match(scan.Assign)
			tok := p.expect(scan.Identifier, "NAMES")
			p.context.Declare(tok.Text)
			cmd.Names = tok.Text
		case p.matchKeyword("MISSING"):
			p.match(scan.Assign)
			switch {
			case p.matchKeyword("ACCEPT"):
				cmd.Missing = exec.TreatAccept
			case p.matchKeyword("OMIT"):
				cmd.Missing = exec.TreatOmit
			case p.peek().Type == scan.Number:
				cmd.Missing = exec.TreatSubstitute
				cmd.MissingValue = p.number("MISSING")
			default:
				p.errorf("%s:%d: expected ACCEPT, OMIT, or a number for MISSING", p.fileName, p.lineNum)
			}
		case p.matchKeyword("SYSMIS"):
			p.match(scan.Assign)
			switch {
			case p.matchKeyword("OMIT"):
				cmd.Sysmis = exec.TreatOmit
			case p.peek().Type == scan.Number:
				cmd.Sysmis = exec.TreatSubstitute
				cmd.SysmisValue = p.number("SYSMIS")
			default:
				p.errorf("%s:%d: expected OMIT or a number for SYSMIS", p.fileName, p.lineNum)
			}
		default:
			p.errorf("%s:%d: expected FILE, VARIABLES, NAMES, MISSING, or SYSMIS, found %s",
				p.fileName, p.lineNum, p.peek())
		}
	}
	if cmd.File == "" {
		p.errorf("%s:%d: GET requires FILE", p.fileName, line)
	}
	// The SYSMIS treatment only applies when user-missing values are
	// accepted; otherwise system-missing values are always an error.
	if cmd.Missing != exec.TreatAccept {
		cmd.Sysmis = exec.TreatError
	}
	cmd.Span = value.Span{Start: line, End: p.lineNum}
	return cmd
}

// SAVE expr [/OUTFILE=file] [/VARIABLES=names] [/NAMES=expr]
// [/STRINGS=names].
func (p *Parser) save() exec.Command {
	line := p.lineNum
	cmd := &exec.Save{Expr: p.restrictedExpr()}
	for p.match(scan.Slash) {
		switch {
		case p.matchKeyword("OUTFILE"):
			p.match(scan.Assign)
			cmd.File = p.file()
		case p.matchKeyword("VARIABLES"):
			cmd.Variables = p.nameList("VARIABLES")
		case p.matchKeyword("NAMES"):
			p.match(scan.Assign)
			cmd.Names = p.restrictedExpr()
		case p.matchKeyword("STRINGS"):
			cmd.Strings = p.nameList("STRINGS")
		default:
			p.errorf("%s:%d: expected OUTFILE, VARIABLES, NAMES, or STRINGS, found %s",
				p.fileName, p.lineNum, p.peek())
		}
	}
	if cmd.File == "" {
		if p.prevSaveFile == "" {
			p.errorf("%s:%d: SAVE requires OUTFILE", p.fileName, line)
		}
		cmd.File = p.prevSaveFile
	}
	p.prevSaveFile = cmd.File
	if cmd.Variables != nil && cmd.Names != nil {
		p.context.Warnf("ignoring NAMES because VARIABLES was also specified")
		cmd.Names = nil
	}
	cmd.Span = value.Span{Start: line, End: p.lineNum}
	return cmd
}

var rowtypes = []string{"COV", "CORR", "MEAN", "STDDEV", "N", "COUNT"}

func (p *Parser) rowtype() string {
	for _, rt := range rowtypes {
		if p.matchKeyword(rt) {
			return rt
		}
	}
	p.errorf("%s:%d: expected COV, CORR, MEAN, STDDEV, N, or COUNT, found %s",
		p.fileName, p.lineNum, p.peek())
	return ""
}

// MGET [/FILE=file] [/TYPE=rowtype...].
func (p *Parser) mget() exec.Command {
	line := p.lineNum
	cmd := &exec.Mget{}
	p.match(scan.Slash)
	for p.peek().Type != scan.EOF {
		switch {
		case p.matchKeyword("FILE"):
			p.match(scan.Assign)
			cmd.File = p.file()
		case p.matchKeyword("TYPE"):
			p.match(scan.Assign)
			for p.peek().Type != scan.Slash && p.peek().Type != scan.EOF {
				cmd.Rowtypes = append(cmd.Rowtypes, p.rowtype())
			}
		default:
			p.errorf("%s:%d: expected FILE or TYPE, found %s", p.fileName, p.lineNum, p.peek())
		}
		p.match(scan.Slash)
	}
	if cmd.File == "" {
		p.errorf("%s:%d: MGET requires FILE", p.fileName, line)
	}
	cmd.Span = value.Span{Start: line, End: p.lineNum}
	return cmd
}

// reservedNames rejects the record-structure column names in MSAVE
// name lists.
func (p *Parser) reservedNames(names []string) {
	for _, n := range names {
		if strings.EqualFold(n, "ROWTYPE_") || strings.EqualFold(n, "VARNAME_") {
			p.errorf("%s:%d: variable name %s is reserved", p.fileName, p.lineNum, n)
		}
	}
}

// MSAVE expr /TYPE=rowtype [/OUTFILE=file] [/VARIABLES=names]
// [/FNAMES=names] [/SNAMES=names] [/FACTOR=expr] [/SPLIT=expr].
// OUTFILE, VARIABLES, FNAMES, and SNAMES are set once, by the first
// MSAVE; later MSAVE commands may repeat but not change them. FACTOR
// and SPLIT expressions carry over until replaced.
func (p *Parser) msaveCmd() exec.Command {
	line := p.lineNum
	cmd := &exec.Msave{Expr: p.restrictedExpr()}
	clause := msaveCommon{}
	for p.match(scan.Slash) {
		switch {
		case p.matchKeyword("TYPE"):
			p.match(scan.Assign)
			cmd.Rowtype = p.rowtype()
		case p.matchKeyword("OUTFILE"):
			p.match(scan.Assign)
			clause.outfile = p.file()
		case p.matchKeyword("VARIABLES"):
			clause.variables = p.nameList("VARIABLES")
			p.reservedNames(clause.variables)
		case p.matchKeyword("FNAMES"):
			clause.fnames = p.nameList("FNAMES")
			p.reservedNames(clause.fnames)
		case p.matchKeyword("SNAMES"):
			clause.snames = p.nameList("SNAMES")
			p.reservedNames(clause.snames)
		case p.matchKeyword("FACTOR"):
			p.match(scan.Assign)
			clause.factor = p.restrictedExpr()
		case p.matchKeyword("SPLIT"):
			p.match(scan.Assign)
			clause.split = p.restrictedExpr()
		default:
			p.errorf("%s:%d: expected TYPE, OUTFILE, VARIABLES, FNAMES, SNAMES, FACTOR, or SPLIT, found %s",
				p.fileName, p.lineNum, p.peek())
		}
	}
	if cmd.Rowtype == "" {
		p.errorf("%s:%d: MSAVE requires TYPE", p.fileName, line)
	}

	if p.msave == nil {
		if len(clause.fnames) > 0 && clause.factor == nil {
			p.errorf("%s:%d: FNAMES requires FACTOR", p.fileName, line)
		}
		if len(clause.snames) > 0 && clause.split == nil {
			p.errorf("%s:%d: SNAMES requires SPLIT", p.fileName, line)
		}
		if clause.outfile == "" {
			p.errorf("%s:%d: MSAVE requires OUTFILE", p.fileName, line)
		}
		p.msave = &clause
	} else {
		common := p.msave
		if clause.outfile != "" && clause.outfile != common.outfile {
			p.errorf("%s:%d: OUTFILE must name the same file on each MSAVE "+
				"within a single MATRIX program", p.fileName, line)
		}
		p.sameMsaveNames("VARIABLES", clause.variables, common.variables, line)
		p.sameMsaveNames("FNAMES", clause.fnames, common.fnames, line)
		p.sameMsaveNames("SNAMES", clause.snames, common.snames, line)
		if clause.factor != nil {
			common.factor = clause.factor
		}
		if clause.split != nil {
			common.split = clause.split
		}
	}

	common := p.msave
	cmd.Outfile = common.outfile
	cmd.Variables = common.variables
	cmd.Fnames = common.fnames
	cmd.Snames = common.snames
	cmd.Factor = common.factor
	cmd.Split = common.split
	cmd.Span = value.Span{Start: line, End: p.lineNum}
	return cmd
}

func (p *Parser) sameMsaveNames(clause string, names, common []string, line int) {
	if names == nil {
		return
	}
	same := len(names) == len(common)
	for i := 0; same && i < len(names); i++ {
		same = strings.EqualFold(names[i], common[i])
	}
	if !same {
		p.errorf("%s:%d: %s must be the same on each MSAVE within a single MATRIX program",
			p.fileName, line, clause)
	}
}

// number parses a numeric literal.
func (p *Parser) number(context string) float64 {
	tok := p.expect(scan.Number, context)
	f, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		p.errorf("%s:%d: bad number %q for %s", p.fileName, tok.Line, tok.Text, context)
	}
	return f
}
