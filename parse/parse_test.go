// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtx-lang/mtx/config"
	"github.com/mtx-lang/mtx/exec"
	"github.com/mtx-lang/mtx/scan"
	"github.com/mtx-lang/mtx/value"
)

// newTestParser builds a parser over input with the named variables
// already assigned, so expressions may mention them.
func newTestParser(input string, vars ...string) *Parser {
	conf := &config.Config{}
	context := exec.NewContext(conf)
	for _, v := range vars {
		context.Assign(v, value.Scalar(0))
	}
	s := scan.New(conf, "test", strings.NewReader(input))
	return NewParser("test", s, context)
}

func catch(f func()) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = string(r.(value.Error))
		}
	}()
	f()
	return ""
}

// parseCommand parses one command from input.
func parseCommand(t *testing.T, input string, vars ...string) exec.Command {
	t.Helper()
	p := newTestParser(input, vars...)
	cmd, ok := p.Command()
	require.True(t, ok, "input %q", input)
	require.NotNil(t, cmd, "input %q", input)
	return cmd
}

// parseError parses commands until the first error and returns its text.
func parseError(t *testing.T, input string, vars ...string) string {
	t.Helper()
	p := newTestParser(input, vars...)
	msg := catch(func() {
		for {
			if _, ok := p.Command(); !ok {
				break
			}
		}
	})
	require.NotEmpty(t, msg, "expected a parse error for %q", input)
	return msg
}

// rhs parses a COMPUTE and returns the unambiguous rendering of its
// right-hand side.
func rhs(t *testing.T, expr string, vars ...string) string {
	t.Helper()
	cmd := parseCommand(t, "COMPUTE x = "+expr+".", vars...)
	return cmd.(*exec.Compute).RHS.ProgString()
}

func TestExprPrecedence(t *testing.T) {
	tests := []struct{ in, out string }{
		{"2+3*4", "(2 + (3 * 4))"},
		{"2*3**2", "(2 * (3 ** 2))"},
		{"2**3**2", "((2 ** 3) ** 2)"}, // ** is left-associative
		{"-2**2", "(-2 ** 2)"},         // the sign binds into the number
		{"2+3 < 5", "((2 + 3) < 5)"},
		{"1 EQ 2", "(1 = 2)"},
		{"1 ~= 2", "(1 <> 2)"},
		{"1 <> 2 OR 3 > 4", "((1 <> 2) OR (3 > 4))"},
		{"1 OR 0 AND 0", "(1 OR (0 AND 0))"},
		{"NOT 1 < 2", "NOT (1 < 2)"},
		{"~ 1", "NOT 1"},
		{"1:10:2", "(1:10:2)"},
		{"1:5+1", "((1:5) + 1)"}, // ':' binds tighter than '+'
		{"6 &/ 2", "(6 &/ 2)"},
		{"2 &** 3", "(2 &** 3)"},
		{"(2+3)*4", "((2 + 3) * 4)"},
		{"{1, 2; 3, 4}", "{1, 2; 3, 4}"},
		{"{}", "{}"},
		{"'abc'", `"abc"`},
		{"SQRT(4)", "SQRT(4)"},
		{"CDF.NOR(0, 0, 1)", "CDF.NORMAL(0, 0, 1)"},
		{"a(1, :)", "a(1, :)"},
		{"a(2)", "a(2)"},
		{"a + -2", "(a + -2)"},
		{"EOF(somefile)", "EOF(somefile)"},
	}
	for _, test := range tests {
		require.Equal(t, test.out, rhs(t, test.in, "a"), "expression %q", test.in)
	}
}

func TestComputeLvalue(t *testing.T) {
	cmd := parseCommand(t, "COMPUTE x = 1.").(*exec.Compute)
	require.Equal(t, "x", cmd.Target.Name)
	require.Equal(t, 0, cmd.Target.NIndex)

	cmd = parseCommand(t, "COMPUTE a(2) = 1.", "a").(*exec.Compute)
	require.Equal(t, 1, cmd.Target.NIndex)
	require.NotNil(t, cmd.Target.RowIndex)

	cmd = parseCommand(t, "COMPUTE a(1, :) = 1.", "a").(*exec.Compute)
	require.Equal(t, 2, cmd.Target.NIndex)
	require.NotNil(t, cmd.Target.RowIndex)
	require.Nil(t, cmd.Target.ColIndex)

	// Plain assignment declares; indexed assignment requires the variable.
	require.Contains(t, parseError(t, "COMPUTE q(1) = 1."), "undefined variable q")
}

func TestParseErrors(t *testing.T) {
	require.Contains(t, parseError(t, "COMPUTE x = y + 1."), "unknown variable y")
	require.Contains(t, parseError(t, "COMPUTE x = FOO(1)."), "unknown variable FOO")
	require.Contains(t, parseError(t, "COMPUTE x = SQRT(1, 2)."), "function SQRT requires 1 argument(s)")
	require.Contains(t, parseError(t, "COMPUTE x = IDENT(1, 2, 3)."),
		"function IDENT requires 1 or 2 arguments, but 3 provided")
	require.Contains(t, parseError(t, "BREAK."), "BREAK not inside LOOP")
	require.Contains(t, parseError(t, "FROBNICATE x."), "unknown matrix command")
	require.Contains(t, parseError(t, "COMPUTE x = 1. 2 + 2."), "unknown matrix command")
	require.Contains(t, parseError(t, "DO IF 1. END MATRIX."), "premature END MATRIX within DO IF")
	require.Contains(t, parseError(t, "LOOP."), "unexpected end of input within LOOP")
	require.Contains(t, parseError(t, "COMPUTE x = 1 + ."), "unexpected")
	require.Contains(t, parseError(t, "DISPLAY FROB."), "expected DICTIONARY or STATUS")
	require.Contains(t, parseError(t, "RELEASE zz."), "unknown variable zz")
}

func TestEndMatrix(t *testing.T) {
	// The MATRIX line itself produces a nil command to skip.
	p := newTestParser("MATRIX. COMPUTE x = 1. END MATRIX.")
	var cmds []exec.Command
	for {
		cmd, ok := p.Command()
		if !ok {
			break
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	require.Len(t, cmds, 1)
	require.IsType(t, &exec.Compute{}, cmds[0])

	// End of input without END MATRIX also stops.
	p = newTestParser("COMPUTE x = 1.")
	_, ok := p.Command()
	require.True(t, ok)
	_, ok = p.Command()
	require.False(t, ok)
}

func TestDoIf(t *testing.T) {
	cmd := parseCommand(t, `
DO IF a > 0.
COMPUTE x = 1.
ELSE IF a < 0.
COMPUTE x = 2.
ELSE.
COMPUTE x = 3.
END IF.`, "a").(*exec.DoIf)
	require.Len(t, cmd.Clauses, 3)
	require.NotNil(t, cmd.Clauses[0].Cond)
	require.NotNil(t, cmd.Clauses[1].Cond)
	require.Nil(t, cmd.Clauses[2].Cond)
	for _, clause := range cmd.Clauses {
		require.Len(t, clause.Body, 1)
	}
}

func TestLoop(t *testing.T) {
	cmd := parseCommand(t, `
LOOP i = 1 TO 10 BY 2.
COMPUTE x = i.
END LOOP.`).(*exec.Loop)
	require.Equal(t, "i", cmd.Var)
	require.NotNil(t, cmd.Start)
	require.NotNil(t, cmd.End)
	require.NotNil(t, cmd.By)
	require.Len(t, cmd.Body, 1)

	cmd = parseCommand(t, `
LOOP IF a > 0.
COMPUTE a = a - 1.
END LOOP IF a < 2.`, "a").(*exec.Loop)
	require.Empty(t, cmd.Var)
	require.NotNil(t, cmd.TopCond)
	require.NotNil(t, cmd.BottomCond)

	// BREAK is valid inside a loop body.
	cmd = parseCommand(t, `
LOOP.
BREAK.
END LOOP.`).(*exec.Loop)
	require.IsType(t, &exec.Break{}, cmd.Body[0])
}

func TestPrint(t *testing.T) {
	cmd := parseCommand(t, "PRINT a.", "a").(*exec.Print)
	require.True(t, cmd.HasTitle)
	require.Equal(t, "a", cmd.Title)
	require.NotNil(t, cmd.Expr)
	require.Nil(t, cmd.Format)

	// The default title is the source text of the expression. An
	// unparenthesized a+1 would not parse: PRINT operands stop below
	// the additive level so that slash clauses are unambiguous.
	cmd = parseCommand(t, "PRINT (a+1).", "a").(*exec.Print)
	require.Equal(t, "(a+1)", cmd.Title)

	cmd = parseCommand(t, "PRINT a /FORMAT=F8.2 /TITLE='Results' /SPACE=2 /RLABELS=one, two /CNAMES=a.",
		"a").(*exec.Print)
	require.Equal(t, &exec.Format{Type: 'F', W: 8, D: 2}, cmd.Format)
	require.Equal(t, "Results", cmd.Title)
	require.Equal(t, 2, cmd.Space)
	require.Equal(t, []string{"one", "two"}, cmd.RLabels.Literals)
	require.NotNil(t, cmd.CLabels.Expr)

	// A slash ends the operand rather than dividing.
	cmd = parseCommand(t, "PRINT 6 /TITLE='t'.").(*exec.Print)
	require.Equal(t, "6", cmd.Expr.ProgString())

	// PRINT with no expression still prints its title.
	cmd = parseCommand(t, "PRINT /TITLE='note'.").(*exec.Print)
	require.Nil(t, cmd.Expr)
	require.True(t, cmd.HasTitle)
	require.Equal(t, "note", cmd.Title)

	require.Contains(t, parseError(t, "PRINT a /SPACE=0.", "a"), "SPACE must be NEWPAGE or a positive integer")
}

func TestReadWriteClauses(t *testing.T) {
	cmd := parseCommand(t, "READ x /FILE=data /FIELD=1 TO 20 /SIZE={2, 5}.").(*exec.Read)
	require.Equal(t, "data", cmd.File)
	require.Equal(t, 1, cmd.C1)
	require.Equal(t, 21, cmd.C2)
	require.NotNil(t, cmd.Size)

	// Field width algebra.
	cmd = parseCommand(t, "READ x /FILE=data /FIELD=1 TO 20 BY 5 /SIZE=4.").(*exec.Read)
	require.Equal(t, 5, cmd.W)
	cmd = parseCommand(t, "READ x /FILE=data /FIELD=1 TO 20 /SIZE=4 /FORMAT=4F.").(*exec.Read)
	require.Equal(t, 5, cmd.W)

	require.Contains(t, parseError(t, "READ x /FILE=data /FIELD=1 TO 10 BY 3 /SIZE=2."),
		"field width 3 does not evenly divide record width 10")
	require.Contains(t, parseError(t, "READ x /FILE=data /FIELD=1 TO 10 /SIZE=2 /FORMAT=20F.", "x"),
		"20 repetitions cannot fit in record width 10")
	require.Contains(t, parseError(t, "READ x /FILE=data /FIELD=1 TO 20 BY 5 /SIZE=4 /FORMAT=F4."),
		"two different field widths")
	require.Contains(t, parseError(t, "READ x /FILE=data /FIELD=1 TO 20."),
		"SIZE is required for reading data into a full matrix")
	require.Contains(t, parseError(t, "READ x /FILE=data /SIZE=2."), "READ requires FIELD")
	require.Contains(t, parseError(t, "READ x /FIELD=1 TO 20 /SIZE=2."), "READ requires FILE")

	wcmd := parseCommand(t, "WRITE a /OUTFILE=out /FIELD=1 TO 40.", "a").(*exec.Write)
	require.Equal(t, "out", wcmd.File)
	require.Contains(t, parseError(t, "WRITE a /FIELD=1 TO 40.", "a"), "WRITE requires OUTFILE")

	// A second READ may rely on the first command's file.
	p := newTestParser("READ x /FILE=data /FIELD=1 TO 20 /SIZE=2. READ y /FIELD=1 TO 20 /SIZE=2.")
	cmd1, ok := p.Command()
	require.True(t, ok)
	cmd2, ok := p.Command()
	require.True(t, ok)
	require.Equal(t, cmd1.(*exec.Read).File, cmd2.(*exec.Read).File)
}

func TestGetSaveClauses(t *testing.T) {
	cmd := parseCommand(t, "GET x /FILE=data /VARIABLES=v1, v2 /NAMES=nm.").(*exec.Get)
	require.Equal(t, "data", cmd.File)
	require.Equal(t, []string{"v1", "v2"}, cmd.Variables)
	require.Equal(t, "nm", cmd.Names)

	// Rejecting missing values implies rejecting system-missing ones.
	require.Equal(t, exec.TreatError, cmd.Missing)
	require.Equal(t, exec.TreatError, cmd.Sysmis)

	cmd = parseCommand(t, "GET x /FILE=data /MISSING=ACCEPT /SYSMIS=OMIT.").(*exec.Get)
	require.Equal(t, exec.TreatAccept, cmd.Missing)
	require.Equal(t, exec.TreatOmit, cmd.Sysmis)

	require.Contains(t, parseError(t, "GET x."), "GET requires FILE")

	scmd := parseCommand(t, "SAVE a /OUTFILE=out /STRINGS=s1.", "a").(*exec.Save)
	require.Equal(t, "out", scmd.File)
	require.Equal(t, []string{"s1"}, scmd.Strings)
	require.Contains(t, parseError(t, "SAVE a.", "a"), "SAVE requires OUTFILE")
}

func TestMsaveConsistency(t *testing.T) {
	cmd := parseCommand(t, "MSAVE a /TYPE=COV /OUTFILE=out /VARIABLES=v1, v2.", "a").(*exec.Msave)
	require.Equal(t, "COV", cmd.Rowtype)
	require.Equal(t, "out", cmd.Outfile)
	require.Equal(t, []string{"v1", "v2"}, cmd.Variables)

	require.Contains(t, parseError(t, "MSAVE a /TYPE=COV.", "a"), "MSAVE requires OUTFILE")
	require.Contains(t, parseError(t, "MSAVE a /OUTFILE=out.", "a"), "MSAVE requires TYPE")
	require.Contains(t, parseError(t, "MSAVE a /TYPE=COV /OUTFILE=out /FNAMES=f1.", "a"),
		"FNAMES requires FACTOR")

	require.Contains(t, parseError(t,
		"MSAVE a /TYPE=COV /OUTFILE=out. MSAVE a /TYPE=MEAN /OUTFILE=other.", "a"),
		"OUTFILE must name the same file on each MSAVE")
	require.Contains(t, parseError(t,
		"MSAVE a /TYPE=COV /OUTFILE=out /VARIABLES=v1. MSAVE a /TYPE=MEAN /VARIABLES=v2.", "a"),
		"VARIABLES must be the same on each MSAVE")

	require.Contains(t, parseError(t, "MSAVE a /TYPE=COV /OUTFILE=out /VARIABLES=ROWTYPE_.", "a"),
		"variable name ROWTYPE_ is reserved")
}

func TestMget(t *testing.T) {
	cmd := parseCommand(t, "MGET /FILE=data /TYPE=COV MEAN.").(*exec.Mget)
	require.Equal(t, "data", cmd.File)
	require.Equal(t, []string{"COV", "MEAN"}, cmd.Rowtypes)
	require.Contains(t, parseError(t, "MGET /TYPE=COV."), "MGET requires FILE")
}

func TestCallCommands(t *testing.T) {
	cmd := parseCommand(t, "CALL EIGEN(a, vec, val).", "a").(*exec.CallEigen)
	require.Equal(t, "vec", cmd.Evec)
	require.Equal(t, "val", cmd.Eval)

	svd := parseCommand(t, "CALL SVD(a, u, s, v).", "a").(*exec.CallSvd)
	require.Equal(t, "u", svd.U)
	require.Equal(t, "s", svd.S)
	require.Equal(t, "v", svd.V)

	sd := parseCommand(t, "CALL SETDIAG(a, 5).", "a").(*exec.CallSetdiag)
	require.Equal(t, "a", sd.Dst)
	require.Contains(t, parseError(t, "CALL SETDIAG(zz, 5)."), "unknown variable zz")
}
