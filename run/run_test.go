// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtx-lang/mtx/config"
)

// runProgram runs one complete program and returns what it wrote to
// the regular and error outputs.
func runProgram(conf *config.Config, src string) (stdout, stderr string, ok bool) {
	var out, errOut bytes.Buffer
	conf.SetOutput(&out)
	conf.SetErrOutput(&errOut)
	ok = ProgramString(conf, src)
	return out.String(), errOut.String(), ok
}

func TestComputePrint(t *testing.T) {
	stdout, stderr, ok := runProgram(&config.Config{},
		"COMPUTE x = {1, 2; 3, 4}.\nPRINT x.\nEND MATRIX.\n")
	require.True(t, ok)
	require.Empty(t, stderr)
	require.Equal(t, "x\n  1  2\n  3  4\n", stdout)
}

func TestPrintFormat(t *testing.T) {
	stdout, _, ok := runProgram(&config.Config{},
		"COMPUTE x = {1.5, 2.25}.\nPRINT x /FORMAT=F6.2.\n")
	require.True(t, ok)
	require.Equal(t, "x\n   1.50   2.25\n", stdout)
}

func TestPrintLabels(t *testing.T) {
	stdout, _, ok := runProgram(&config.Config{},
		"COMPUTE m = {1, 2; 3, 4}.\n"+
			"PRINT m /FORMAT=F2 /TITLE='Table' /RLABELS=r1, r2 /CLABELS=c1, c2.\n")
	require.True(t, ok)
	// CLABELS widen the cells to eight columns.
	require.Equal(t, "Table\n"+
		"               c1       c2\n"+
		"r1              1        2\n"+
		"r2              3        4\n", stdout)
}

func TestLoopSum(t *testing.T) {
	stdout, _, ok := runProgram(&config.Config{},
		"COMPUTE s = 0.\nLOOP i = 1 TO 10.\nCOMPUTE s = s + i.\nEND LOOP.\nPRINT s.\n")
	require.True(t, ok)
	require.Equal(t, "s\n  55\n", stdout)
}

func TestDoIfElse(t *testing.T) {
	const branches = "DO IF x = 1.\nCOMPUTE y = 10.\n" +
		"ELSE IF x = 2.\nCOMPUTE y = 20.\n" +
		"ELSE.\nCOMPUTE y = 30.\nEND IF.\nPRINT y.\n"
	for _, test := range []struct {
		x    string
		want string
	}{
		{"COMPUTE x = 1.\n", "y\n  10\n"},
		{"COMPUTE x = 2.\n", "y\n  20\n"},
		{"COMPUTE x = 3.\n", "y\n  30\n"},
	} {
		stdout, _, ok := runProgram(&config.Config{}, test.x+branches)
		require.True(t, ok)
		require.Equal(t, test.want, stdout, "%s", test.x)
	}
}

func TestBreak(t *testing.T) {
	stdout, _, ok := runProgram(&config.Config{},
		"COMPUTE n = 0.\n"+
			"LOOP i = 1 TO 100.\n"+
			"COMPUTE n = n + 1.\n"+
			"DO IF i >= 5.\nBREAK.\nEND IF.\n"+
			"END LOOP.\n"+
			"PRINT n.\n")
	require.True(t, ok)
	require.Equal(t, "n\n  5\n", stdout)
}

func TestMaxLoops(t *testing.T) {
	conf := &config.Config{}
	conf.SetMaxLoops(7)
	stdout, _, ok := runProgram(conf,
		"COMPUTE n = 0.\nLOOP.\nCOMPUTE n = n + 1.\nEND LOOP.\nPRINT n.\n")
	require.True(t, ok)
	require.Equal(t, "n\n  7\n", stdout)
}

func TestErrorRecovery(t *testing.T) {
	stdout, stderr, ok := runProgram(&config.Config{},
		"COMPUTE y = 7.\n"+
			"COMPUTE z = {1, 2} + {1, 2, 3}.\n"+
			"PRINT y.\n")
	require.False(t, ok)
	require.Contains(t, stderr, "must have the same dimensions")
	require.Equal(t, "y\n  7\n", stdout)
}

func TestFatalParseError(t *testing.T) {
	// END MATRIX inside an unfinished block breaks the program
	// structure; nothing after it may run.
	stdout, stderr, ok := runProgram(&config.Config{},
		"DO IF 1.\nEND MATRIX.\nCOMPUTE z = 42.\nPRINT z.\n")
	require.False(t, ok)
	require.Contains(t, stderr, "premature END MATRIX within DO IF")
	require.Empty(t, stdout)

	// So does an unknown command.
	stdout, stderr, ok = runProgram(&config.Config{},
		"FROBNICATE x.\nCOMPUTE z = 42.\nPRINT z.\n")
	require.False(t, ok)
	require.Contains(t, stderr, "unknown matrix command")
	require.Empty(t, stdout)
}

func TestDisplayAndRelease(t *testing.T) {
	stdout, _, ok := runProgram(&config.Config{},
		"COMPUTE a = {1, 2; 3, 4}.\nCOMPUTE bb = 1.\nRELEASE bb.\nDISPLAY.\n")
	require.True(t, ok)
	require.Equal(t,
		"Variable     Rows  Columns  Size (kB)\n"+
			"a               2        2          0\n", stdout)
}

func TestWriteReadRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data")
	_, stderr, ok := runProgram(&config.Config{},
		"COMPUTE x = {1, 2; 3, 4}.\n"+
			"WRITE x /OUTFILE='"+file+"' /FIELD=1 TO 20 /FORMAT=F5.\n")
	require.True(t, ok, "%s", stderr)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "    1    2\n    3    4\n", string(data))

	stdout, stderr, ok := runProgram(&config.Config{},
		"READ y /FILE='"+file+"' /FIELD=1 TO 20 /SIZE={2, 2} /FORMAT=F5.\n"+
			"PRINT y.\n")
	require.True(t, ok, "%s", stderr)
	require.Equal(t, "y\n  1  2\n  3  4\n", stdout)
}

func TestReadUntilEOF(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(file, []byte("1 2 3\n4 5 6\n"), 0o600))

	stdout, stderr, ok := runProgram(&config.Config{},
		"COMPUTE total = 0.\n"+
			"LOOP IF EOF('"+file+"') = 0.\n"+
			"READ row /FILE='"+file+"' /FIELD=1 TO 80 /SIZE={1, 3}.\n"+
			"COMPUTE total = total + RSUM(row).\n"+
			"END LOOP.\n"+
			"PRINT total.\n")
	require.True(t, ok, "%s", stderr)
	require.Equal(t, "total\n  21\n", stdout)
}

func TestSaveGetRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data.csv")
	_, stderr, ok := runProgram(&config.Config{},
		"COMPUTE x = {1, 2; 3, 4}.\n"+
			"SAVE x /OUTFILE='"+file+"' /VARIABLES=a, b.\n")
	require.True(t, ok, "%s", stderr)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "a,b\n1,2\n3,4\n", string(data))

	stdout, stderr, ok := runProgram(&config.Config{},
		"GET y /FILE='"+file+"' /NAMES=nm.\n"+
			"PRINT y.\nPRINT nm /FORMAT=A8.\n")
	require.True(t, ok, "%s", stderr)
	require.Equal(t, "y\n  1  2\n  3  4\n"+"nm\n a b\n", stdout)
}

func TestGetMissing(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(file, []byte("v1,v2\n1,\n3,4\n"), 0o600))

	// Substitute a value for the missing cell.
	stdout, stderr, ok := runProgram(&config.Config{},
		"GET y /FILE='"+file+"' /MISSING=9.\nPRINT y.\n")
	require.True(t, ok, "%s", stderr)
	require.Equal(t, "y\n  1  9\n  3  4\n", stdout)

	// Omit the case with the missing cell.
	stdout, stderr, ok = runProgram(&config.Config{},
		"GET y /FILE='"+file+"' /MISSING=OMIT.\nPRINT y.\n")
	require.True(t, ok, "%s", stderr)
	require.Equal(t, "y\n  3  4\n", stdout)

	// The default is an error.
	_, stderr, ok = runProgram(&config.Config{},
		"GET y /FILE='"+file+"'.\nPRINT y.\n")
	require.False(t, ok)
	require.Contains(t, stderr, "variable v2 is missing")
}

func TestMsaveMgetRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "matrix.csv")
	_, stderr, ok := runProgram(&config.Config{},
		"COMPUTE cv = {1, 2; 2, 4}.\n"+
			"COMPUTE mn = {5, 6}.\n"+
			"MSAVE cv /TYPE=COV /OUTFILE='"+file+"' /VARIABLES=a, b.\n"+
			"MSAVE mn /TYPE=MEAN.\n")
	require.True(t, ok, "%s", stderr)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "ROWTYPE_,VARNAME_,a,b\n"+
		"COV,a,1,2\nCOV,b,2,4\nMEAN,,5,6\n", string(data))

	stdout, stderr, ok := runProgram(&config.Config{},
		"MGET /FILE='"+file+"'.\nPRINT CV.\nPRINT MN.\n")
	require.True(t, ok, "%s", stderr)
	require.Equal(t, "CV\n  1  2\n  2  4\n"+"MN\n  5  6\n", stdout)
}

func TestCallCommands(t *testing.T) {
	stdout, stderr, ok := runProgram(&config.Config{},
		"COMPUTE a = {2, 0; 0, 3}.\n"+
			"CALL EIGEN(a, vec, val).\n"+
			"PRINT val.\n"+
			"CALL SETDIAG(a, 9).\n"+
			"PRINT a.\n")
	require.True(t, ok, "%s", stderr)
	require.Equal(t, "val\n  3\n  2\n"+"a\n  9  0\n  0  9\n", stdout)
}
