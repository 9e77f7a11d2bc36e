// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Mtx is an interpreter for a matrix-oriented statistical language. Every
value is a matrix of double-precision numbers; a scalar is a 1×1 matrix
and a string is a number holding up to eight packed bytes.

A program is a sequence of commands, each terminated by a period. The
optional MATRIX and END MATRIX commands bracket a program. Variables
spring into existence when first assigned:

	COMPUTE x = {1, 2; 3, 4}.
	COMPUTE y = x * TRANSPOS(x).
	PRINT y /FORMAT=F6.2.

Curly braces build matrices: commas paste operands side by side,
semicolons stack rows. a:b:c builds the sequence from a to b by c.
Indexing uses parentheses, with a colon selecting a whole dimension:

	COMPUTE row = x(1, :).
	COMPUTE x(2, 2) = 9.

Operators follow the usual precedence. * is matrix multiplication
unless an operand is scalar; &*, &/ and &** are the elementwise forms.
Comparison, AND, OR, XOR and NOT produce 0/1 matrices. Over a hundred
built-in functions cover construction (IDENT, MAKE, UNIFORM),
reduction (CSUM, RMAX, MSSQ), linear algebra (INV, CHOL, DET, GINV,
SOLVE), and the statistical distribution families (CDF.*, IDF.*,
PDF.*, RV.*, and their significance forms).

Control flow is DO IF/ELSE IF/ELSE/END IF and LOOP/BREAK/END LOOP.
CALL EIGEN, CALL SVD and CALL SETDIAG store decompositions through
their output arguments.

Data commands move matrices between variables and files: READ and
WRITE exchange text records laid out in columns, GET and SAVE exchange
cases with CSV files, and MGET and MSAVE exchange the standard
matrix-file layout whose records carry ROWTYPE_ and VARNAME_ columns.
DISPLAY lists the defined variables and RELEASE frees their storage.

Usage:

	mtx [options] [file ...]

With no files, mtx reads a program from the standard input. The -e
option runs its argument as a program directly.

*/
package main
