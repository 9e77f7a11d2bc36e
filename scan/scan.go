// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:generate stringer -type Type

package scan // import "github.com/mtx-lang/mtx/scan"

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mtx-lang/mtx/config"
)

// Token represents a token or text string returned from the scanner.
type Token struct {
	Type Type   // The type of this item.
	Line int    // The line number on which this token appears
	Text string // The text of this item.
}

// Type identifies the type of lex items.
type Type int

const (
	EOF   Type = iota // zero value so exhausted input delivers EOF
	Error             // error occurred; value is text of error
	EndCmd
	// Interesting things
	Assign     // '='; also the equality operator in expressions
	Colon      // ':'
	Comma      // ','
	Identifier // alphanumeric identifier, possibly with interior dots
	LeftBrace  // '{'
	LeftParen  // '('
	Number     // simple number
	Operator   // known operator
	RightBrace // '}'
	RightParen // ')'
	Semicolon  // ';'
	Slash      // '/', divides or introduces a subcommand
	String     // quoted string (includes quotes)
)

func (i Token) String() string {
	switch {
	case i.Type == EOF:
		return "EOF"
	case i.Type == Error:
		return "error: " + i.Text
	case len(i.Text) > 10:
		return fmt.Sprintf("%s: %.10q...", i.Type, i.Text)
	}
	return fmt.Sprintf("%s: %q", i.Type, i.Text)
}

const eof = -1

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*Scanner) stateFn

// Scanner holds the state of the scanner.
type Scanner struct {
	conf      *config.Config
	r         io.ByteReader
	done      bool
	name      string  // the name of the input; used only for error reports
	buf       []byte  // I/O buffer, re-used.
	input     string  // the line of text being scanned.
	lastRune  rune    // most recent return from next()
	lastWidth int     // size of that rune
	state     stateFn // the next lexing function to enter
	line      int     // line number in input
	pos       int     // current position in the input
	start     int     // start position of this item
	token     Token
}

// loadLine reads the next line of input and stores it in (appends it to) the input.
// (l.input may have data left over when we are called.)
// It strips carriage returns to make subsequent processing simpler.
func (l *Scanner) loadLine() {
	l.buf = l.buf[:0]
	for {
		c, err := l.r.ReadByte()
		if err != nil {
			l.done = true
			break
		}
		if c != '\r' { // There will never be a \r in l.input.
			l.buf = append(l.buf, c)
		}
		if c == '\n' {
			break
		}
	}
	// Reset to beginning of input buffer if there is nothing pending.
	if l.start == l.pos {
		l.input = string(l.buf)
		l.start = 0
		l.pos = 0
	} else {
		l.input += string(l.buf)
	}
}

// readRune reads the next rune from the input.
func (l *Scanner) readRune() (rune, int) {
	if !l.done && l.pos == len(l.input) {
		l.loadLine()
	}
	if len(l.input) == l.pos {
		return eof, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

// next returns the next rune in the input.
func (l *Scanner) next() rune {
	l.lastRune, l.lastWidth = l.readRune()
	l.pos += l.lastWidth
	return l.lastRune
}

// peek returns but does not consume the next rune in the input.
func (l *Scanner) peek() rune {
	r, _ := l.readRune()
	return r
}

// peek2 returns the next two runes ahead, but does not consume anything.
func (l *Scanner) peek2() (rune, rune) {
	pos := l.pos
	r1 := l.next()
	r2 := l.next()
	l.pos = pos
	return r1, r2
}

// backup steps back one rune. Should only be called once per call of next.
func (l *Scanner) backup() {
	if l.lastRune == eof {
		return
	}
	if l.pos == l.start {
		l.errorf("internal error: backup at start of input")
	}
	if l.pos > l.start {
		l.pos -= l.lastWidth
	}
}

// emit passes an item back to the client.
func (l *Scanner) emit(t Type) stateFn {
	text := l.input[l.start:l.pos]
	if l.conf.Debug("tokens") {
		fmt.Fprintf(l.conf.Output(), "%s:%d: emit %s\n", l.name, l.line, Token{t, l.line, text})
	}
	l.token = Token{t, l.line, text}
	l.start = l.pos
	return nil
}

// accept consumes the next rune if it's from the valid set.
func (l *Scanner) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *Scanner) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// errorf returns an error token and empties the input.
func (l *Scanner) errorf(format string, args ...interface{}) stateFn {
	l.token = Token{Error, l.line, fmt.Sprintf(format, args...)}
	l.start = 0
	l.pos = 0
	l.input = l.input[:0]
	return nil
}

// New creates and returns a new scanner.
func New(conf *config.Config, name string, r io.ByteReader) *Scanner {
	l := &Scanner{
		r:    r,
		name: name,
		line: 1,
		conf: conf,
	}
	return l
}

// Name returns the name of the input source.
func (l *Scanner) Name() string {
	return l.name
}

// Next returns the next token.
func (l *Scanner) Next() Token {
	l.lastRune = eof
	l.lastWidth = 0
	l.token = Token{EOF, l.line, "EOF"}
	state := lexAny
	for {
		state = state(l)
		if state == nil {
			return l.token
		}
	}
}

// state functions

// lexAny scans non-space items.
func lexAny(l *Scanner) stateFn {
	switch r := l.next(); {
	case r == eof:
		return nil
	case r == '\n':
		l.line++
		l.start = l.pos
		return lexAny
	case isSpace(r):
		return lexSpace
	case r == '\'' || r == '"':
		l.backup() // So lexQuote can read the quote character.
		return lexQuote
	case r == '-' || r == '+':
		// It's an operator if it's preceded immediately (no spaces) by an
		// operand: an identifier, an indexed or parenthesized expression,
		// or a number. Otherwise it could be a signed number.
		if l.start > 0 {
			rr, _ := utf8.DecodeLastRuneInString(l.input[:l.start])
			if isAlphaNumeric(rr) || rr == ')' || rr == '}' {
				return l.emit(Operator)
			}
		}
		if r2 := l.peek(); r2 == '.' || isDigit(r2) {
			l.backup()
			return lexNumber
		}
		return l.emit(Operator)
	case r == '.':
		// A period introduces a number (.5), or terminates a command.
		if isDigit(l.peek()) {
			l.backup()
			return lexNumber
		}
		return l.emit(EndCmd)
	case isDigit(r):
		l.backup()
		return lexNumber
	case r == '=':
		return l.emit(Assign)
	case r == '&':
		// Elementwise operators: &* &/ &**.
		switch l.next() {
		case '*':
			l.accept("*")
			return l.emit(Operator)
		case '/':
			return l.emit(Operator)
		}
		return l.errorf("expected &* or &/ or &**")
	case r == '*':
		l.accept("*")
		return l.emit(Operator)
	case r == '<':
		switch l.peek() {
		case '=', '>':
			l.next()
		}
		return l.emit(Operator)
	case r == '>':
		if l.peek() == '=' {
			l.next()
		}
		return l.emit(Operator)
	case r == '~':
		if l.peek() == '=' { // alternate spelling of <>
			l.next()
			return l.emit(Operator)
		}
		return l.emit(Operator) // alternate spelling of NOT
	case isAlphaNumeric(r):
		l.backup()
		return lexIdentifier
	case r == '{':
		return l.emit(LeftBrace)
	case r == '}':
		return l.emit(RightBrace)
	case r == '(':
		return l.emit(LeftParen)
	case r == ')':
		return l.emit(RightParen)
	case r == ',':
		return l.emit(Comma)
	case r == ';':
		return l.emit(Semicolon)
	case r == ':':
		return l.emit(Colon)
	case r == '/':
		return l.emit(Slash)
	case r <= unicode.MaxASCII && unicode.IsPrint(r):
		return l.emit(Operator)
	default:
		return l.errorf("unrecognized character: %#U", r)
	}
}

// lexSpace scans a run of space characters.
// One space has already been seen.
func lexSpace(l *Scanner) stateFn {
	for isSpace(l.peek()) {
		l.next()
	}
	// Skips over the pending input.
	l.start = l.pos
	return lexAny
}

// lexIdentifier scans an alphanumeric. Interior periods are part of the
// identifier when a letter follows, so CDF.NORMAL is one token while the
// period of "PRINT X." terminates the command.
func lexIdentifier(l *Scanner) stateFn {
	for {
		for isAlphaNumeric(l.peek()) {
			l.next()
		}
		if r1, r2 := l.peek2(); r1 == '.' && unicode.IsLetter(r2) {
			l.next() // absorb the period
			continue
		}
		break
	}
	return l.emit(Identifier)
}

// lexNumber scans a number: integer, float, possibly signed.
// It isn't a perfect scanner - when it's wrong the input is invalid
// and the parser (via strconv) will notice.
func lexNumber(l *Scanner) stateFn {
	l.accept("+-")
	l.acceptRun("0123456789")
	if r1, r2 := l.peek2(); r1 == '.' && isDigit(r2) {
		l.next()
		l.acceptRun("0123456789")
	}
	if l.accept("eE") {
		l.accept("+-")
		l.acceptRun("0123456789")
	}
	return l.emit(Number)
}

// lexQuote scans a quoted string. The next character is the quote.
// A doubled quote character stands for itself.
func lexQuote(l *Scanner) stateFn {
	quote := l.next()
	for {
		switch l.next() {
		case eof, '\n':
			return l.errorf("unterminated quoted string")
		case quote:
			if l.peek() == quote {
				l.next()
				continue
			}
			return l.emit(String)
		}
	}
}

// isSpace reports whether r is a space character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// isAlphaNumeric reports whether r is an alphabetic, digit, underscore, or
// one of the extra characters allowed in identifiers.
func isAlphaNumeric(r rune) bool {
	return r == '_' || r == '#' || r == '@' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isDigit reports whether r is an ASCII digit.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
