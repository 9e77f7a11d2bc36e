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

// The expression grammar is a precedence ladder, loosest first:
//
//	expr:       and { (OR | XOR) and }
//	and:        not { AND not }
//	not:        (NOT | ~) not | rel
//	rel:        add { relop add }
//	add:        mul { (+ | -) mul }
//	mul:        pow { (* | / | &* | &/) pow }
//	pow:        seq { (** | &**) seq }
//	seq:        unary [ : unary [ : unary ] ]
//	unary:      (- | +) unary | postfix
//	postfix:    primary [ ( index [ , index ] ) ]
//	primary:    number | string | ( expr ) | { rows } |
//	            EOF ( file ) | function ( args ) | variable
//
// Commands with slash-introduced subcommands parse their expression
// operands with restrictedExpr, which starts the ladder at pow so that
// a slash always introduces the next subcommand instead of dividing.
// COMPUTE right sides, conditions, and anything inside parentheses or
// braces use the full ladder.

func (p *Parser) expr() value.Expr {
	e := p.andExpr()
	for {
		switch {
		case p.matchKeyword("OR"):
			e = &value.BinaryExpr{Op: "OR", Left: e, Right: p.andExpr()}
		case p.matchKeyword("XOR"):
			e = &value.BinaryExpr{Op: "XOR", Left: e, Right: p.andExpr()}
		default:
			return e
		}
	}
}

func (p *Parser) andExpr() value.Expr {
	e := p.notExpr()
	for p.matchKeyword("AND") {
		e = &value.BinaryExpr{Op: "AND", Left: e, Right: p.notExpr()}
	}
	return e
}

func (p *Parser) notExpr() value.Expr {
	if p.matchKeyword("NOT") || p.matchOperator("~") {
		return &value.UnaryExpr{Op: "NOT", Right: p.notExpr()}
	}
	return p.relExpr()
}

// relKeywords maps the spelled-out relational operators to their
// symbolic forms.
var relKeywords = map[string]string{
	"EQ": "=", "NE": "<>", "LT": "<", "LE": "<=", "GT": ">", "GE": ">=",
}

func (p *Parser) relExpr() value.Expr {
	e := p.addExpr()
	for {
		op, ok := p.relOp()
		if !ok {
			return e
		}
		e = &value.BinaryExpr{Op: op, Left: e, Right: p.addExpr()}
	}
}

func (p *Parser) relOp() (string, bool) {
	switch tok := p.peek(); tok.Type {
	case scan.Assign:
		p.next()
		return "=", true
	case scan.Operator:
		switch tok.Text {
		case ">", ">=", "<", "<=", "<>":
			p.next()
			return tok.Text, true
		case "~=": // alternate spelling
			p.next()
			return "<>", true
		}
	case scan.Identifier:
		if op, ok := relKeywords[strings.ToUpper(tok.Text)]; ok {
			p.next()
			return op, true
		}
	}
	return "", false
}

func (p *Parser) addExpr() value.Expr {
	e := p.mulExpr()
	for {
		switch tok := p.peek(); {
		case tok.Type == scan.Operator && (tok.Text == "+" || tok.Text == "-"):
			p.next()
			e = &value.BinaryExpr{Op: tok.Text, Left: e, Right: p.mulExpr()}
		case tok.Type == scan.Number && (tok.Text[0] == '-' || tok.Text[0] == '+'):
			// A signed number directly follows an operand, as in
			// "x -1". The sign serves as the additive operator.
			e = &value.BinaryExpr{Op: "+", Left: e, Right: p.mulExpr()}
		default:
			return e
		}
	}
}

func (p *Parser) mulExpr() value.Expr {
	e := p.powExpr()
	for {
		switch tok := p.peek(); {
		case tok.Type == scan.Slash:
			p.next()
			e = &value.BinaryExpr{Op: "/", Left: e, Right: p.powExpr()}
		case tok.Type == scan.Operator && (tok.Text == "*" || tok.Text == "&*" || tok.Text == "&/"):
			p.next()
			e = &value.BinaryExpr{Op: tok.Text, Left: e, Right: p.powExpr()}
		default:
			return e
		}
	}
}

// powExpr is also the entry point for restricted expressions, the
// operands of slash-subcommand clauses.
func (p *Parser) powExpr() value.Expr {
	e := p.seqExpr()
	for {
		tok := p.peek()
		if tok.Type != scan.Operator || (tok.Text != "**" && tok.Text != "&**") {
			return e
		}
		p.next()
		e = &value.BinaryExpr{Op: tok.Text, Left: e, Right: p.seqExpr()}
	}
}

func (p *Parser) restrictedExpr() value.Expr {
	return p.powExpr()
}

func (p *Parser) seqExpr() value.Expr {
	e := p.unaryExpr()
	if !p.match(scan.Colon) {
		return e
	}
	seq := &value.SeqExpr{Start: e, End: p.unaryExpr()}
	if p.match(scan.Colon) {
		seq.By = p.unaryExpr()
	}
	return seq
}

func (p *Parser) unaryExpr() value.Expr {
	switch tok := p.peek(); {
	case tok.Type == scan.Operator && tok.Text == "-":
		p.next()
		return &value.UnaryExpr{Op: "-", Right: p.unaryExpr()}
	case tok.Type == scan.Operator && tok.Text == "+":
		p.next()
		return p.unaryExpr()
	}
	return p.postfixExpr()
}

func (p *Parser) postfixExpr() value.Expr {
	e := p.primary()
	if !p.match(scan.LeftParen) {
		return e
	}
	line := p.lineNum
	args := []value.Expr{p.indexExpr()}
	if p.match(scan.Comma) {
		args = append(args, p.indexExpr())
	}
	p.expect(scan.RightParen, "index")
	return &value.IndexExpr{X: e, Args: args, Line: line}
}

// indexExpr parses one index: a bare colon selects everything and
// yields nil.
func (p *Parser) indexExpr() value.Expr {
	if p.match(scan.Colon) {
		return nil
	}
	return p.expr()
}

func (p *Parser) primary() value.Expr {
	tok := p.next()
	switch tok.Type {
	case scan.Number:
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.errorf("%s:%d: bad number %q", p.fileName, tok.Line, tok.Text)
		}
		return &value.Num{Val: f, Line: tok.Line}

	case scan.String:
		return &value.Str{Text: unquote(tok.Text), Line: tok.Line}

	case scan.LeftParen:
		e := p.expr()
		p.expect(scan.RightParen, "parenthesized expression")
		return e

	case scan.LeftBrace:
		return p.curly(tok.Line)

	case scan.Identifier:
		if strings.EqualFold(tok.Text, "EOF") && p.peek().Type == scan.LeftParen {
			p.next()
			name := p.file()
			p.expect(scan.RightParen, "EOF")
			return &exec.EOFExpr{File: name, Line: tok.Line}
		}
		if p.peek().Type == scan.LeftParen {
			if fn := value.LookupFunction(tok.Text); fn != nil {
				return p.call(fn, tok.Line)
			}
		}
		if v := p.context.Lookup(tok.Text); v == nil {
			p.errorf("%s:%d: unknown variable %s", p.fileName, tok.Line, tok.Text)
		}
		return &value.VarExpr{Name: tok.Text, Line: tok.Line}
	}
	p.errorf("%s:%d: unexpected %s in expression", p.fileName, tok.Line, tok)
	return nil
}

// curly parses the body of a {...} matrix literal. The opening brace
// has been consumed. Rows are separated by semicolons, the pasted
// pieces within a row by commas. {} is the empty matrix.
func (p *Parser) curly(line int) value.Expr {
	paste := &value.PasteExpr{Line: line}
	if p.match(scan.RightBrace) {
		return paste
	}
	for {
		row := []value.Expr{p.expr()}
		for p.match(scan.Comma) {
			row = append(row, p.expr())
		}
		paste.Rows = append(paste.Rows, row)
		if !p.match(scan.Semicolon) {
			break
		}
	}
	p.expect(scan.RightBrace, "matrix literal")
	return paste
}

// call parses a function call's arguments. The opening parenthesis has
// not yet been consumed.
func (p *Parser) call(fn *value.Function, line int) value.Expr {
	p.expect(scan.LeftParen, "function call")
	var args []value.Expr
	if !p.match(scan.RightParen) {
		args = append(args, p.expr())
		for p.match(scan.Comma) {
			args = append(args, p.expr())
		}
		p.expect(scan.RightParen, "function call")
	}
	if len(args) < fn.MinArgs || len(args) > fn.MaxArgs {
		switch {
		case fn.MinArgs == fn.MaxArgs:
			p.errorf("%s:%d: function %s requires %d argument(s)",
				p.fileName, line, fn.Name, fn.MinArgs)
		case fn.MaxArgs == fn.MinArgs+1:
			p.errorf("%s:%d: function %s requires %d or %d arguments, but %d provided",
				p.fileName, line, fn.Name, fn.MinArgs, fn.MaxArgs, len(args))
		default:
			p.errorf("%s:%d: function %s requires at least one argument",
				p.fileName, line, fn.Name)
		}
	}
	return &value.CallExpr{Fn: fn, Args: args, Line: line}
}

// lvalue parses an assignment destination: a variable name with an
// optional subscript. An unsubscripted name is declared here if it is
// new; a subscripted name must already exist.
func (p *Parser) lvalue() *exec.Lvalue {
	tok := p.expect(scan.Identifier, "variable name")
	lv := &exec.Lvalue{
		Name:     tok.Text,
		NameSpan: value.Span{Start: tok.Line, End: tok.Line},
	}
	if !p.match(scan.LeftParen) {
		p.context.Declare(lv.Name)
		return lv
	}
	if p.context.Lookup(lv.Name) == nil {
		p.errorf("%s:%d: undefined variable %s", p.fileName, tok.Line, lv.Name)
	}
	lv.RowIndex = p.indexExpr()
	lv.NIndex = 1
	if p.match(scan.Comma) {
		lv.ColIndex = p.indexExpr()
		lv.NIndex = 2
	}
	p.expect(scan.RightParen, "index")
	return lv
}
