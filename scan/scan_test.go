// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtx-lang/mtx/config"
)

// tokens scans input to EOF and returns the tokens.
func tokens(t *testing.T, input string) []Token {
	t.Helper()
	s := New(&config.Config{}, "test", strings.NewReader(input))
	var toks []Token
	for {
		tok := s.Next()
		if tok.Type == EOF {
			return toks
		}
		toks = append(toks, tok)
		if tok.Type == Error {
			return toks
		}
		require.Less(t, len(toks), 1000, "scanner did not terminate")
	}
}

func tok(typ Type, text string) Token {
	return Token{typ, 1, text}
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{"", nil},
		{"COMPUTE x = 1.", []Token{
			tok(Identifier, "COMPUTE"),
			tok(Identifier, "x"),
			tok(Assign, "="),
			tok(Number, "1"),
			tok(EndCmd, "."),
		}},
		{"{1, 2; 3, 4}", []Token{
			tok(LeftBrace, "{"),
			tok(Number, "1"),
			tok(Comma, ","),
			tok(Number, "2"),
			tok(Semicolon, ";"),
			tok(Number, "3"),
			tok(Comma, ","),
			tok(Number, "4"),
			tok(RightBrace, "}"),
		}},
		{"a(1:2, :)", []Token{
			tok(Identifier, "a"),
			tok(LeftParen, "("),
			tok(Number, "1"),
			tok(Colon, ":"),
			tok(Number, "2"),
			tok(Comma, ","),
			tok(Colon, ":"),
			tok(RightParen, ")"),
		}},
		{"x / 2", []Token{
			tok(Identifier, "x"),
			tok(Slash, "/"),
			tok(Number, "2"),
		}},
	}
	for _, test := range tests {
		require.Equal(t, test.want, tokens(t, test.input), "input %q", test.input)
	}
}

// A minus sign binds into the following number unless the previous
// character ends an operand.
func TestScanSign(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{"a-2", []Token{tok(Identifier, "a"), tok(Operator, "-"), tok(Number, "2")}},
		{"a - 2", []Token{tok(Identifier, "a"), tok(Operator, "-"), tok(Number, "2")}},
		{"a -2", []Token{tok(Identifier, "a"), tok(Number, "-2")}},
		{"a, -2", []Token{tok(Identifier, "a"), tok(Comma, ","), tok(Number, "-2")}},
		{"= -2", []Token{tok(Assign, "="), tok(Number, "-2")}},
		{"(a)-2", []Token{
			tok(LeftParen, "("), tok(Identifier, "a"), tok(RightParen, ")"),
			tok(Operator, "-"), tok(Number, "2"),
		}},
		{"-x", []Token{tok(Operator, "-"), tok(Identifier, "x")}},
		{"+2.5", []Token{tok(Number, "+2.5")}},
		{"1e-3", []Token{tok(Number, "1e-3")}},
	}
	for _, test := range tests {
		require.Equal(t, test.want, tokens(t, test.input), "input %q", test.input)
	}
}

// Identifiers absorb interior periods when a letter follows, so function
// names like CDF.NORMAL are single tokens while the period in a format
// like F8.2 starts a number.
func TestScanIdentifierPeriods(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{"CDF.NORMAL", []Token{tok(Identifier, "CDF.NORMAL")}},
		{"MAKE.ME.LONGER", []Token{tok(Identifier, "MAKE.ME.LONGER")}},
		{"F8.2", []Token{tok(Identifier, "F8"), tok(Number, ".2")}},
		{"x.", []Token{tok(Identifier, "x"), tok(EndCmd, ".")}},
		{".5", []Token{tok(Number, ".5")}},
		{"var_1", []Token{tok(Identifier, "var_1")}},
		{"#x", []Token{tok(Identifier, "#x")}},
	}
	for _, test := range tests {
		require.Equal(t, test.want, tokens(t, test.input), "input %q", test.input)
	}
}

func TestScanOperators(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{"**", []Token{tok(Operator, "**")}},
		{"&*", []Token{tok(Operator, "&*")}},
		{"&/", []Token{tok(Operator, "&/")}},
		{"&**", []Token{tok(Operator, "&**")}},
		{"<= >= <>", []Token{tok(Operator, "<="), tok(Operator, ">="), tok(Operator, "<>")}},
		{"~=", []Token{tok(Operator, "~=")}},
		{"~x", []Token{tok(Operator, "~"), tok(Identifier, "x")}},
		{"a<b", []Token{tok(Identifier, "a"), tok(Operator, "<"), tok(Identifier, "b")}},
	}
	for _, test := range tests {
		require.Equal(t, test.want, tokens(t, test.input), "input %q", test.input)
	}
	bad := tokens(t, "&!")
	require.NotEmpty(t, bad)
	require.Equal(t, Error, bad[len(bad)-1].Type)
}

func TestScanString(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{`'hello'`, []Token{tok(String, `'hello'`)}},
		{`"hello"`, []Token{tok(String, `"hello"`)}},
		{`'it''s'`, []Token{tok(String, `'it''s'`)}},
		{`'a' 'b'`, []Token{tok(String, `'a'`), tok(String, `'b'`)}},
	}
	for _, test := range tests {
		require.Equal(t, test.want, tokens(t, test.input), "input %q", test.input)
	}
	bad := tokens(t, "'unterminated")
	require.NotEmpty(t, bad)
	require.Equal(t, Error, bad[len(bad)-1].Type)
}

func TestScanLineNumbers(t *testing.T) {
	s := New(&config.Config{}, "test", strings.NewReader("a\nb\n\nc"))
	var lines []int
	for {
		tok := s.Next()
		if tok.Type == EOF {
			break
		}
		lines = append(lines, tok.Line)
	}
	require.Equal(t, []int{1, 2, 4}, lines)
}
