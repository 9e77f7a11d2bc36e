// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"github.com/mtx-lang/mtx/exec"
	"github.com/mtx-lang/mtx/scan"
	"github.com/mtx-lang/mtx/value"
)

// COMPUTE target = expression.
func (p *Parser) compute() exec.Command {
	lv := p.lvalue()
	p.expect(scan.Assign, "COMPUTE")
	return &exec.Compute{Target: lv, RHS: p.expr()}
}

// dstVar parses a variable name that a CALL will store into, declaring
// it if new.
func (p *Parser) dstVar() string {
	tok := p.expect(scan.Identifier, "variable name")
	p.context.Declare(tok.Text)
	return tok.Text
}

// CALL EIGEN(expr, evec, eval).
func (p *Parser) callEigen() exec.Command {
	p.expect(scan.LeftParen, "CALL EIGEN")
	cmd := &exec.CallEigen{Arg: p.expr()}
	p.expect(scan.Comma, "CALL EIGEN")
	cmd.Evec = p.dstVar()
	p.expect(scan.Comma, "CALL EIGEN")
	cmd.Eval = p.dstVar()
	p.expect(scan.RightParen, "CALL EIGEN")
	return cmd
}

// CALL SETDIAG(dst, expr). The destination must already exist.
func (p *Parser) callSetdiag() exec.Command {
	p.expect(scan.LeftParen, "CALL SETDIAG")
	tok := p.expect(scan.Identifier, "variable name")
	if p.context.Lookup(tok.Text) == nil {
		p.errorf("%s:%d: unknown variable %s", p.fileName, tok.Line, tok.Text)
	}
	cmd := &exec.CallSetdiag{
		Dst:     tok.Text,
		DstSpan: value.Span{Start: tok.Line, End: tok.Line},
	}
	p.expect(scan.Comma, "CALL SETDIAG")
	cmd.Arg = p.expr()
	p.expect(scan.RightParen, "CALL SETDIAG")
	return cmd
}

// CALL SVD(expr, u, s, v).
func (p *Parser) callSvd() exec.Command {
	p.expect(scan.LeftParen, "CALL SVD")
	cmd := &exec.CallSvd{Arg: p.expr()}
	p.expect(scan.Comma, "CALL SVD")
	cmd.U = p.dstVar()
	p.expect(scan.Comma, "CALL SVD")
	cmd.S = p.dstVar()
	p.expect(scan.Comma, "CALL SVD")
	cmd.V = p.dstVar()
	p.expect(scan.RightParen, "CALL SVD")
	return cmd
}

// PRINT [expr] [/FORMAT=fmt] [/TITLE=title] [/SPACE={NEWPAGE|n}]
// [/{RLABELS|CLABELS}=label...] [/{RNAMES|CNAMES}=expr].
func (p *Parser) print() exec.Command {
	cmd := &exec.Print{}
	if tok := p.peek(); tok.Type != scan.Slash && tok.Type != scan.EOF {
		before := p.tokens
		cmd.Expr = p.restrictedExpr()
		cmd.Title = sourceText(before[:len(before)-len(p.tokens)])
		cmd.HasTitle = true
	}
	for p.match(scan.Slash) {
		switch {
		case p.matchKeyword("FORMAT"):
			p.match(scan.Assign)
			f := p.formatSpec()
			cmd.Format = &f
		case p.matchKeyword("TITLE"):
			p.match(scan.Assign)
			tok := p.expect(scan.String, "TITLE")
			cmd.Title = unquote(tok.Text)
			cmd.HasTitle = true
		case p.matchKeyword("SPACE"):
			p.match(scan.Assign)
			if p.matchKeyword("NEWPAGE") {
				cmd.Space = -1
			} else if n := p.integer("SPACE"); n >= 1 {
				cmd.Space = n
			} else {
				p.errorf("%s:%d: SPACE must be NEWPAGE or a positive integer", p.fileName, p.lineNum)
			}
		case p.matchKeyword("RLABELS"):
			cmd.RLabels = &exec.PrintLabels{Literals: p.literalLabels()}
		case p.matchKeyword("CLABELS"):
			cmd.CLabels = &exec.PrintLabels{Literals: p.literalLabels()}
		case p.matchKeyword("RNAMES"):
			p.match(scan.Assign)
			cmd.RLabels = &exec.PrintLabels{Expr: p.restrictedExpr()}
		case p.matchKeyword("CNAMES"):
			p.match(scan.Assign)
			cmd.CLabels = &exec.PrintLabels{Expr: p.restrictedExpr()}
		default:
			p.errorf("%s:%d: expected FORMAT, TITLE, SPACE, RLABELS, CLABELS, RNAMES, or CNAMES, found %s",
				p.fileName, p.lineNum, p.peek())
		}
	}
	return cmd
}

// literalLabels parses an RLABELS/CLABELS list. Labels are separated
// by commas; within one label, tokens up to the next comma or slash
// are joined by single spaces.
func (p *Parser) literalLabels() []string {
	p.match(scan.Assign)
	var labels []string
	for {
		var words []string
		for {
			tok := p.peek()
			if tok.Type == scan.EOF || tok.Type == scan.Slash || tok.Type == scan.Comma {
				break
			}
			p.next()
			text := tok.Text
			if tok.Type == scan.String {
				text = unquote(text)
			}
			words = append(words, text)
		}
		labels = append(labels, strings.Join(words, " "))
		if !p.match(scan.Comma) {
			return labels
		}
	}
}

// sourceText reconstructs command text from tokens, for default PRINT
// titles. Adjacent word-like tokens get a separating space.
func sourceText(toks []scan.Token) string {
	var sb strings.Builder
	prevWord := false
	for _, tok := range toks {
		word := tok.Type == scan.Identifier || tok.Type == scan.Number || tok.Type == scan.String
		if sb.Len() > 0 && (prevWord && word ||
			tok.Type == scan.Operator && len(tok.Text) > 1 && (tok.Text[0] == '&' || prevWord)) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text)
		prevWord = word
	}
	return sb.String()
}

// DO IF cond ... [ELSE IF cond ...]... [ELSE ...] END IF.
func (p *Parser) doIf() exec.Command {
	cmd := &exec.DoIf{}
	cond := p.expr()
	p.endOfCommand()
	for {
		body, term := p.parseBlock("DO IF", "ELSE IF", "ELSE", "END IF")
		cmd.Clauses = append(cmd.Clauses, exec.DoIfClause{Cond: cond, Body: body})
		switch term {
		case "ELSE IF":
			cond = p.expr()
			p.endOfCommand()
		case "ELSE":
			p.endOfCommand()
			body, _ := p.parseBlock("DO IF", "END IF")
			cmd.Clauses = append(cmd.Clauses, exec.DoIfClause{Body: body})
			return cmd
		case "END IF":
			return cmd
		}
	}
}

// LOOP [var = start TO end [BY by]] [IF cond] ... END LOOP [IF cond].
func (p *Parser) loop() exec.Command {
	cmd := &exec.Loop{}
	if p.peek().Type == scan.Identifier && p.peekN(1).Type == scan.Assign {
		tok := p.next()
		cmd.Var = tok.Text
		p.context.Declare(cmd.Var)
		p.next() // the '='
		cmd.Start = p.expr()
		if !p.matchKeyword("TO") {
			p.errorf("%s:%d: expected TO in LOOP index clause", p.fileName, p.lineNum)
		}
		cmd.End = p.expr()
		if p.matchKeyword("BY") {
			cmd.By = p.expr()
		}
	}
	if p.matchKeyword("IF") {
		cmd.TopCond = p.expr()
	}
	p.endOfCommand()

	p.loopDepth++
	cmd.Body, _ = p.parseBlock("LOOP", "END LOOP")
	p.loopDepth--

	if p.matchKeyword("IF") {
		cmd.BottomCond = p.expr()
	}
	return cmd
}

// RELEASE var, var, ...
func (p *Parser) release() exec.Command {
	cmd := &exec.Release{}
	for {
		tok := p.expect(scan.Identifier, "RELEASE")
		if p.context.Lookup(tok.Text) == nil {
			p.errorf("%s:%d: unknown variable %s", p.fileName, tok.Line, tok.Text)
		}
		cmd.Names = append(cmd.Names, tok.Text)
		if !p.match(scan.Comma) {
			return cmd
		}
	}
}

// DISPLAY [DICTIONARY] [STATUS].
func (p *Parser) display() exec.Command {
	for p.peek().Type != scan.EOF {
		if !p.matchKeyword("DICTIONARY") && !p.matchKeyword("STATUS") {
			p.errorf("%s:%d: expected DICTIONARY or STATUS, found %s",
				p.fileName, p.lineNum, p.peek())
		}
	}
	return &exec.Display{}
}

// integer parses an integer literal.
func (p *Parser) integer(context string) int {
	tok := p.expect(scan.Number, context)
	n := 0
	for _, c := range tok.Text {
		if c < '0' || c > '9' {
			p.errorf("%s:%d: %s requires an integer, not %q", p.fileName, tok.Line, context, tok.Text)
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// formatSpec parses a full format specifier such as F8.2. The scanner
// splits it into an identifier F8 and a number .2.
func (p *Parser) formatSpec() exec.Format {
	tok := p.expect(scan.Identifier, "format")
	text := tok.Text
	if nxt := p.peek(); nxt.Type == scan.Number && strings.HasPrefix(nxt.Text, ".") {
		p.next()
		text += nxt.Text
	}
	f, err := exec.ParseFormat(text)
	if err != nil {
		p.errorf("%s:%d: %v", p.fileName, tok.Line, err)
	}
	return f
}
