// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse // import "github.com/mtx-lang/mtx/parse"

import (
	"strings"

	"github.com/mtx-lang/mtx/exec"
	"github.com/mtx-lang/mtx/scan"
	"github.com/mtx-lang/mtx/value"
)

// Parser stores the state for the parser. Commands are parsed one at a
// time, each from its own token slice gathered up to the terminating
// period.
type Parser struct {
	scanner  *scan.Scanner
	tokens   []scan.Token    // Points to tokenBuf.
	tokenBuf [100]scan.Token // Reusable.
	fileName string
	lineNum  int
	context  *exec.Context

	loopDepth int  // nesting of LOOP bodies, for BREAK
	fatal     bool // the program structure is broken; do not resync

	// File names carried between commands: a READ, WRITE, or SAVE
	// without a FILE or OUTFILE clause reuses the previous one.
	prevReadFile  string
	prevWriteFile string
	prevSaveFile  string

	// MSAVE settings shared by every MSAVE in the program. The first
	// MSAVE establishes them; later ones may repeat but not change
	// them. FACTOR and SPLIT expressions persist until replaced.
	msave *msaveCommon
}

type msaveCommon struct {
	outfile   string
	variables []string
	fnames    []string
	snames    []string
	factor    value.Expr
	split     value.Expr
}

// NewParser returns a new parser that will read from the scanner.
// The context must have been created by exec.NewContext.
func NewParser(fileName string, scanner *scan.Scanner, context value.Context) *Parser {
	return &Parser{
		scanner:  scanner,
		fileName: fileName,
		context:  context.(*exec.Context),
	}
}

func (p *Parser) next() scan.Token {
	tok := p.peek()
	if tok.Type != scan.EOF {
		p.tokens = p.tokens[1:]
		p.lineNum = tok.Line
	}
	return tok
}

func (p *Parser) peek() scan.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) scan.Token {
	if n >= len(p.tokens) {
		return scan.Token{Type: scan.EOF}
	}
	return p.tokens[n]
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.tokens = p.tokenBuf[:0]
	p.context.Errorf(format, args...)
}

// fatalf reports a malformed top-level command structure. Such errors
// invalidate everything that follows, so the driver must stop instead
// of resynchronizing at the next command.
func (p *Parser) fatalf(format string, args ...interface{}) {
	p.fatal = true
	p.errorf(format, args...)
}

// Fatal reports whether parsing hit an error the driver may not
// continue past.
func (p *Parser) Fatal() bool {
	return p.fatal
}

// match consumes the next token if it has the given type, reporting
// whether it did.
func (p *Parser) match(typ scan.Type) bool {
	if p.peek().Type == typ {
		p.next()
		return true
	}
	return false
}

// expect consumes the next token, which must have the given type.
func (p *Parser) expect(typ scan.Type, context string) scan.Token {
	tok := p.next()
	if tok.Type != typ {
		p.errorf("%s: expected %s, found %s", context, typ, tok)
	}
	return tok
}

// matchOperator consumes the next token if it is the given operator.
func (p *Parser) matchOperator(op string) bool {
	tok := p.peek()
	if tok.Type == scan.Operator && tok.Text == op {
		p.next()
		return true
	}
	return false
}

// matchKeyword consumes the next token if it is the given keyword,
// ignoring case.
func (p *Parser) matchKeyword(kw string) bool {
	tok := p.peek()
	if tok.Type == scan.Identifier && strings.EqualFold(tok.Text, kw) {
		p.next()
		return true
	}
	return false
}

// peekPhrase reports whether the next tokens are the given
// space-separated keywords, without consuming them.
func (p *Parser) peekPhrase(phrase string) bool {
	for i, kw := range strings.Fields(phrase) {
		tok := p.peekN(i)
		if tok.Type != scan.Identifier || !strings.EqualFold(tok.Text, kw) {
			return false
		}
	}
	return true
}

// matchPhrase consumes the next tokens if they are the given
// space-separated keywords.
func (p *Parser) matchPhrase(phrase string) bool {
	if !p.peekPhrase(phrase) {
		return false
	}
	for range strings.Fields(phrase) {
		p.next()
	}
	return true
}

// readCommand gathers the tokens of the next command, up to but not
// including its terminating period. It reports false at end of input.
func (p *Parser) readCommand() bool {
	p.tokens = p.tokenBuf[:0]
	for {
		tok := p.scanner.Next()
		switch tok.Type {
		case scan.EOF:
			return len(p.tokens) > 0
		case scan.Error:
			p.errorf("%s:%d: %s", p.fileName, tok.Line, tok.Text)
		case scan.EndCmd:
			return true
		}
		if len(p.tokens) == len(p.tokenBuf) {
			p.errorf("%s:%d: command too long", p.fileName, tok.Line)
		}
		p.tokens = append(p.tokens, tok)
		p.lineNum = tok.Line
	}
}

// endOfCommand checks that the current command's tokens are exhausted.
func (p *Parser) endOfCommand() {
	if tok := p.peek(); tok.Type != scan.EOF {
		p.errorf("%s:%d: trailing %s at end of command", p.fileName, tok.Line, tok)
	}
}

// Command reads and parses the next command. A nil Command with true
// means the input held something to skip, such as a blank command or
// the MATRIX keyword itself; the caller should just call Command again.
// The boolean is false at END MATRIX or end of input.
func (p *Parser) Command() (exec.Command, bool) {
	if !p.readCommand() {
		return nil, false
	}
	if len(p.tokens) == 0 {
		return nil, true
	}
	if p.matchPhrase("END MATRIX") {
		return nil, false
	}
	if p.matchKeyword("MATRIX") {
		p.endOfCommand()
		return nil, true
	}
	return p.command(), true
}

// command parses one command from the current token slice. The command
// keyword has not yet been consumed.
func (p *Parser) command() exec.Command {
	var cmd exec.Command
	switch {
	case p.matchKeyword("COMPUTE"):
		cmd = p.compute()
	case p.matchPhrase("CALL EIGEN"):
		cmd = p.callEigen()
	case p.matchPhrase("CALL SETDIAG"):
		cmd = p.callSetdiag()
	case p.matchPhrase("CALL SVD"):
		cmd = p.callSvd()
	case p.matchKeyword("PRINT"):
		cmd = p.print()
	case p.matchPhrase("DO IF"):
		cmd = p.doIf()
	case p.matchKeyword("LOOP"):
		cmd = p.loop()
	case p.matchKeyword("BREAK"):
		if p.loopDepth == 0 {
			p.errorf("%s:%d: BREAK not inside LOOP", p.fileName, p.lineNum)
		}
		cmd = &exec.Break{}
	case p.matchKeyword("READ"):
		cmd = p.read()
	case p.matchKeyword("WRITE"):
		cmd = p.write()
	case p.matchKeyword("GET"):
		cmd = p.get()
	case p.matchKeyword("SAVE"):
		cmd = p.save()
	case p.matchKeyword("MGET"):
		cmd = p.mget()
	case p.matchKeyword("MSAVE"):
		cmd = p.msaveCmd()
	case p.matchKeyword("DISPLAY"):
		cmd = p.display()
	case p.matchKeyword("RELEASE"):
		cmd = p.release()
	default:
		p.fatalf("%s:%d: unknown matrix command %s", p.fileName, p.lineNum, p.peek())
	}
	p.endOfCommand()
	return cmd
}

// parseBlock parses the body of a DO IF clause or a LOOP: a sequence of
// complete commands ending at one of the terminator phrases. It returns
// the body and the terminator that ended it, with the terminator's
// tokens consumed.
func (p *Parser) parseBlock(outer string, terminators ...string) ([]exec.Command, string) {
	var body []exec.Command
	for {
		if !p.readCommand() {
			p.errorf("%s:%d: unexpected end of input within %s", p.fileName, p.lineNum, outer)
		}
		if len(p.tokens) == 0 {
			continue
		}
		for _, t := range terminators {
			if p.matchPhrase(t) {
				return body, t
			}
		}
		if p.peekPhrase("END MATRIX") {
			p.fatalf("%s:%d: premature END MATRIX within %s", p.fileName, p.lineNum, outer)
		}
		body = append(body, p.command())
	}
}

// unquote strips the quotes from a string token's text and collapses
// the doubled quote characters standing for themselves.
func unquote(text string) string {
	quote := text[0]
	body := text[1 : len(text)-1]
	return strings.ReplaceAll(body, string([]byte{quote, quote}), string(quote))
}

// file parses a file name: a quoted string or a bare identifier.
func (p *Parser) file() string {
	tok := p.next()
	switch tok.Type {
	case scan.String:
		return unquote(tok.Text)
	case scan.Identifier:
		return tok.Text
	}
	p.errorf("%s:%d: expected file name, found %s", p.fileName, tok.Line, tok)
	return ""
}
