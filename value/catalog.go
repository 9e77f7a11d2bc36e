// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"strconv"
	"strings"
)

// Proto classifies a catalog function's argument shapes: how many
// arguments it takes, which must be scalars, and whether its first
// argument(s) are mapped elementwise.
type Proto int

const (
	protoM_E    Proto = iota // one arg, elementwise in place
	protoM_ED                // elementwise arg plus one scalar
	protoM_EDD               // elementwise arg plus two scalars
	protoM_EDDD              // elementwise arg plus three scalars
	protoM_EED               // two broadcast args plus one scalar
	protoD_NONE              // no args, scalar result
	protoD_D                 // one scalar arg, scalar result
	protoD_DD                // two scalar args, scalar result
	protoD_DDD               // three scalar args, scalar result
	protoD_M                 // one matrix arg, scalar result
	protoM_M                 // one matrix arg, matrix result
	protoM_D                 // one scalar arg, matrix result
	protoM_MD                // matrix arg plus scalar
	protoM_DDD               // three scalar args, matrix result
	protoM_DD                // two scalar args, matrix result
	protoM_MM                // two matrix args
	protoM_MDD               // matrix arg plus two scalars
	protoM_V                 // one vector arg
	protoM_ANY               // one or more matrix args
	protoM_MMN               // two matrix args, reports arg locations
	protoIdent               // IDENT's one-or-two scalar form
)

// argCounts returns the argument count range for a prototype.
func (p Proto) argCounts() (min, max int) {
	switch p {
	case protoD_NONE:
		return 0, 0
	case protoM_E, protoD_D, protoD_M, protoM_M, protoM_D, protoM_V:
		return 1, 1
	case protoM_ED, protoD_DD, protoM_MD, protoM_DD, protoM_MM, protoM_MMN:
		return 2, 2
	case protoM_EDD, protoM_EED, protoD_DDD, protoM_DDD, protoM_MDD:
		return 3, 3
	case protoM_EDDD:
		return 4, 4
	case protoM_ANY:
		return 1, int(^uint(0) >> 1)
	case protoIdent:
		return 1, 2
	}
	return 0, 0
}

// ImplFunc is the implementation of a catalog function. It may mutate and
// return one of its arguments.
type ImplFunc func(c Context, call *CallExpr, args []*Matrix) *Matrix

// A Function is one entry in the built-in function catalog.
type Function struct {
	Name             string
	Proto            Proto
	Constraints      string
	MinArgs, MaxArgs int
	Impl             ImplFunc
}

// check validates argument shapes against the prototype and then the
// declarative constraint string. It panics with an Error on violation.
func (f *Function) check(c Context, call *CallExpr, args []*Matrix) {
	for i, a := range args {
		if f.scalarArg(i) && !a.IsScalar() {
			c.Errorf("argument %d to %s must be a scalar, not a %s matrix (%s)",
				i+1, f.Name, a.Shape(), call.Args[i].Span())
		}
	}
	if f.Proto == protoM_V && !args[0].IsVector() {
		c.Errorf("argument 1 to %s must be a vector, not a %s matrix (%s)",
			f.Name, args[0].Shape(), call.Args[0].Span())
	}
	if f.Constraints != "" {
		f.checkConstraints(c, call, args)
	}
}

// scalarArg reports whether argument i must be 1×1.
func (f *Function) scalarArg(i int) bool {
	switch f.Proto {
	case protoM_ED, protoM_MD:
		return i == 1
	case protoM_EDD, protoM_EDDD, protoM_MDD:
		return i >= 1
	case protoM_EED:
		return i == 2
	case protoD_D, protoD_DD, protoD_DDD, protoM_D, protoM_DD, protoM_DDD, protoIdent:
		return true
	}
	return false
}

// Constraint strings.
//
// A constraint string is a space-separated list of clauses, one per
// constrained argument. Each clause starts with the argument letter
// (a is the first argument), an optional "i" requiring integer values,
// and then conditions: a range like "[0,1]" or "(0,1]" (brackets are
// inclusive, parens exclusive), or a comparison like ">0", ">=b", "!=0"
// whose operand may be a literal or another scalar argument's letter.
// For a non-scalar argument every element is checked.

type constraintClause struct {
	arg     int
	integer bool
	conds   []constraintCond
}

type constraintCond struct {
	op       string // "range" or a comparison operator
	lo, hi   float64
	loX, hiX bool // range ends exclusive
	operand  float64
	operandA int // argument index, -1 if operand is the literal
}

func (f *Function) checkConstraints(c Context, call *CallExpr, args []*Matrix) {
	for _, clause := range parseConstraints(f.Constraints) {
		if clause.arg >= len(args) {
			continue
		}
		m := args[clause.arg]
		for i, v := range m.Data() {
			if clause.integer && v != float64(int64(v)) {
				f.constraintError(c, call, clause.arg, m, i, "an integer", v)
			}
			for _, cond := range clause.conds {
				if !cond.holds(v, args) {
					f.constraintError(c, call, clause.arg, m, i, cond.describe(args), v)
				}
			}
		}
	}
}

func (cond *constraintCond) holds(v float64, args []*Matrix) bool {
	rhs := cond.operand
	if cond.operandA >= 0 {
		rhs = args[cond.operandA].ScalarValue()
	}
	switch cond.op {
	case "range":
		if cond.loX && v <= cond.lo || !cond.loX && v < cond.lo {
			return false
		}
		if cond.hiX && v >= cond.hi || !cond.hiX && v > cond.hi {
			return false
		}
		return true
	case "<":
		return v < rhs
	case "<=":
		return v <= rhs
	case ">":
		return v > rhs
	case ">=":
		return v >= rhs
	case "!=":
		return v != rhs
	}
	return true
}

func (cond *constraintCond) describe(args []*Matrix) string {
	if cond.op == "range" {
		lo, hi := "[", "]"
		if cond.loX {
			lo = "("
		}
		if cond.hiX {
			hi = ")"
		}
		return "in range " + lo + fmtNum(cond.lo) + "," + fmtNum(cond.hi) + hi
	}
	rhs := fmtNum(cond.operand)
	if cond.operandA >= 0 {
		rhs = fmtNum(args[cond.operandA].ScalarValue())
	}
	switch cond.op {
	case "<":
		return "less than " + rhs
	case "<=":
		return "at most " + rhs
	case ">":
		return "greater than " + rhs
	case ">=":
		return "at least " + rhs
	}
	return "not equal to " + rhs
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (f *Function) constraintError(c Context, call *CallExpr, arg int, m *Matrix, elem int, what string, v float64) {
	where := ""
	if !m.IsScalar() {
		where = " (row " + strconv.Itoa(elem/m.Cols()+1) + ", column " + strconv.Itoa(elem%m.Cols()+1) + ")"
	}
	c.Errorf("argument %d to %s must be %s, but its value%s is %v (%s)",
		arg+1, f.Name, what, where, v, call.Args[arg].Span())
}

// parseConstraints parses a constraint string. The strings are authored
// with the catalog, so a malformed one is an internal error.
func parseConstraints(s string) []constraintClause {
	var clauses []constraintClause
	for _, word := range strings.Fields(s) {
		clause := constraintClause{arg: int(word[0] - 'a')}
		rest := word[1:]
		if strings.HasPrefix(rest, "i") {
			clause.integer = true
			rest = rest[1:]
		}
		for rest != "" {
			var cond constraintCond
			cond.operandA = -1
			switch rest[0] {
			case '[', '(':
				cond.op = "range"
				cond.loX = rest[0] == '('
				comma := strings.IndexByte(rest, ',')
				close := strings.IndexAny(rest, "])")
				cond.lo = parseConstraintNum(rest[1:comma])
				cond.hi = parseConstraintNum(rest[comma+1 : close])
				cond.hiX = rest[close] == ')'
				rest = rest[close+1:]
			default:
				n := 1
				if len(rest) > 1 && rest[1] == '=' {
					n = 2
				}
				cond.op = rest[:n]
				rest = rest[n:]
				end := len(rest)
				for i := 0; i < len(rest); i++ {
					if strings.IndexByte("<>!=", rest[i]) >= 0 {
						end = i
						break
					}
				}
				operand := rest[:end]
				rest = rest[end:]
				if len(operand) == 1 && operand[0] >= 'a' && operand[0] <= 'z' {
					cond.operandA = int(operand[0] - 'a')
				} else {
					cond.operand = parseConstraintNum(operand)
				}
			}
			clause.conds = append(clause.conds, cond)
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

func parseConstraintNum(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic("internal error: bad constraint number " + s)
	}
	return f
}

// LookupFunction finds the catalog function matching name, honoring the
// language's abbreviation rule: each dot-separated word of the input must
// be a prefix, at least 3 characters long or the whole word, of the
// corresponding catalog word, and the word counts must agree.
// It returns nil if there is no match.
func LookupFunction(name string) *Function {
	for i := range catalog {
		if matchFunctionName(name, catalog[i].Name) {
			return &catalog[i]
		}
	}
	return nil
}

func matchFunctionName(name, full string) bool {
	nw := strings.Split(strings.ToUpper(name), ".")
	fw := strings.Split(full, ".")
	if len(nw) != len(fw) {
		return false
	}
	for i := range nw {
		if nw[i] == fw[i] {
			continue
		}
		if len(nw[i]) < 3 || !strings.HasPrefix(fw[i], nw[i]) {
			return false
		}
	}
	return true
}

// fn builds a catalog entry, deriving the argument count range from the
// prototype.
func fn(name string, proto Proto, constraints string, impl ImplFunc) Function {
	min, max := proto.argCounts()
	return Function{
		Name:        name,
		Proto:       proto,
		Constraints: constraints,
		MinArgs:     min,
		MaxArgs:     max,
		Impl:        impl,
	}
}

// Elementwise wrappers. Each mutates its first argument in place and
// returns it, which is the evaluator's ownership convention for
// elementwise functions.

func each1(f func(x float64) float64) ImplFunc {
	return func(c Context, call *CallExpr, args []*Matrix) *Matrix {
		m := args[0]
		for i, x := range m.data {
			m.data[i] = f(x)
		}
		return m
	}
}

func each2(f func(x, a float64) float64) ImplFunc {
	return func(c Context, call *CallExpr, args []*Matrix) *Matrix {
		m, a := args[0], args[1].ScalarValue()
		for i, x := range m.data {
			m.data[i] = f(x, a)
		}
		return m
	}
}

func each3(f func(x, a, b float64) float64) ImplFunc {
	return func(c Context, call *CallExpr, args []*Matrix) *Matrix {
		m, a, b := args[0], args[1].ScalarValue(), args[2].ScalarValue()
		for i, x := range m.data {
			m.data[i] = f(x, a, b)
		}
		return m
	}
}

func each4(f func(x, a, b, d float64) float64) ImplFunc {
	return func(c Context, call *CallExpr, args []*Matrix) *Matrix {
		m := args[0]
		a, b, d := args[1].ScalarValue(), args[2].ScalarValue(), args[3].ScalarValue()
		for i, x := range m.data {
			m.data[i] = f(x, a, b, d)
		}
		return m
	}
}

// eachPair broadcasts the first two arguments against each other, with
// the third a scalar parameter.
func eachPair(f func(x, y, a float64) float64) ImplFunc {
	return func(c Context, call *CallExpr, args []*Matrix) *Matrix {
		x, y := args[0], args[1]
		a := args[2].ScalarValue()
		switch {
		case x.rows == y.rows && x.cols == y.cols:
			for i := range x.data {
				x.data[i] = f(x.data[i], y.data[i], a)
			}
			return x
		case x.IsScalar():
			s := x.data[0]
			for i := range y.data {
				y.data[i] = f(s, y.data[i], a)
			}
			return y
		case y.IsScalar():
			s := y.data[0]
			for i := range x.data {
				x.data[i] = f(x.data[i], s, a)
			}
			return x
		}
		c.Errorf("arguments 1 and 2 to %s must have the same dimensions or one must be a scalar, "+
			"not %s (%s) and %s (%s)", call.Fn.Name,
			x.Shape(), call.Args[0].Span(), y.Shape(), call.Args[1].Span())
		return nil
	}
}

// Scalar wrappers, used by the RV.* functions.

func scalar0(f func(c Context) float64) ImplFunc {
	return func(c Context, call *CallExpr, args []*Matrix) *Matrix {
		return Scalar(f(c))
	}
}

func scalar1(f func(c Context, a float64) float64) ImplFunc {
	return func(c Context, call *CallExpr, args []*Matrix) *Matrix {
		return Scalar(f(c, args[0].ScalarValue()))
	}
}

func scalar2(f func(c Context, a, b float64) float64) ImplFunc {
	return func(c Context, call *CallExpr, args []*Matrix) *Matrix {
		return Scalar(f(c, args[0].ScalarValue(), args[1].ScalarValue()))
	}
}

func scalar3(f func(c Context, a, b, d float64) float64) ImplFunc {
	return func(c Context, call *CallExpr, args []*Matrix) *Matrix {
		return Scalar(f(c, args[0].ScalarValue(), args[1].ScalarValue(), args[2].ScalarValue()))
	}
}

// catalog is the built-in function table. The names, prototypes, and
// constraint strings define the language's function surface; the
// abbreviation rule in LookupFunction applies to the names.
var catalog = []Function{
	fn("ABS", protoM_E, "", each1(absFn)),
	fn("ALL", protoD_M, "", fnAll),
	fn("ANY", protoD_M, "", fnAny),
	fn("ARSIN", protoM_E, "a[-1,1]", each1(arsinFn)),
	fn("ARTAN", protoM_E, "", each1(artanFn)),
	fn("BLOCK", protoM_ANY, "", fnBlock),
	fn("CHOL", protoM_M, "", fnChol),
	fn("CMIN", protoM_M, "", fnCmin),
	fn("CMAX", protoM_M, "", fnCmax),
	fn("COS", protoM_E, "", each1(cosFn)),
	fn("CSSQ", protoM_M, "", fnCssq),
	fn("CSUM", protoM_M, "", fnCsum),
	fn("DESIGN", protoM_M, "", fnDesign),
	fn("DET", protoD_M, "", fnDet),
	fn("DIAG", protoM_M, "", fnDiag),
	fn("EVAL", protoM_M, "", fnEval),
	fn("EXP", protoM_E, "", each1(expFn)),
	fn("GINV", protoM_M, "", fnGinv),
	fn("GRADE", protoM_M, "", fnGrade),
	fn("GSCH", protoM_M, "", fnGsch),
	fn("IDENT", protoIdent, "", fnIdent),
	fn("INV", protoM_M, "", fnInv),
	fn("KRONEKER", protoM_MM, "", fnKroneker),
	fn("LG10", protoM_E, "a>0", each1(lg10Fn)),
	fn("LN", protoM_E, "a>0", each1(lnFn)),
	fn("MAGIC", protoM_D, "ai>=3", fnMagic),
	fn("MAKE", protoM_DDD, "ai>=0 bi>=0", fnMake),
	fn("MDIAG", protoM_V, "", fnMdiag),
	fn("MMAX", protoD_M, "", fnMmax),
	fn("MMIN", protoD_M, "", fnMmin),
	fn("MOD", protoM_MD, "b!=0", fnMod),
	fn("MSSQ", protoD_M, "", fnMssq),
	fn("MSUM", protoD_M, "", fnMsum),
	fn("NCOL", protoD_M, "", fnNcol),
	fn("NROW", protoD_M, "", fnNrow),
	fn("RANK", protoD_M, "", fnRank),
	fn("RESHAPE", protoM_MDD, "bi>=0 ci>=0", fnReshape),
	fn("RMAX", protoM_M, "", fnRmax),
	fn("RMIN", protoM_M, "", fnRmin),
	fn("RND", protoM_E, "", each1(rndFn)),
	fn("RNKORDER", protoM_M, "", fnRnkorder),
	fn("RSSQ", protoM_M, "", fnRssq),
	fn("RSUM", protoM_M, "", fnRsum),
	fn("SIN", protoM_E, "", each1(sinFn)),
	fn("SOLVE", protoM_MMN, "", fnSolve),
	fn("SQRT", protoM_E, "a>=0", each1(sqrtFn)),
	fn("SSCP", protoM_M, "", fnSscp),
	fn("SVAL", protoM_M, "", fnSval),
	fn("SWEEP", protoM_MD, "", fnSweep),
	fn("T", protoM_M, "", fnTranspos),
	fn("TRACE", protoD_M, "", fnTrace),
	fn("TRANSPOS", protoM_M, "", fnTranspos),
	fn("TRUNC", protoM_E, "", each1(truncFn)),
	fn("UNIFORM", protoM_DD, "ai>=0 bi>=0", fnUniform),

	fn("PDF.BETA", protoM_EDD, "a[0,1] b>0 c>0", each3(pdfBeta)),
	fn("CDF.BETA", protoM_EDD, "a[0,1] b>0 c>0", each3(cdfBeta)),
	fn("IDF.BETA", protoM_EDD, "a[0,1] b>0 c>0", each3(idfBeta)),
	fn("RV.BETA", protoD_DD, "a>0 b>0", scalar2(rvBeta)),
	fn("NCDF.BETA", protoM_EDDD, "a>=0 b>0 c>0 d>0", each4(ncdfBeta)),
	fn("NPDF.BETA", protoM_EDDD, "a>=0 b>0 c>0 d>0", each4(npdfBeta)),
	fn("CDF.BVNOR", protoM_EED, "c[-1,1]", eachPair(cdfBvnor)),
	fn("PDF.BVNOR", protoM_EED, "c[-1,1]", eachPair(pdfBvnor)),
	fn("CDF.CAUCHY", protoM_EDD, "c>0", each3(cdfCauchy)),
	fn("IDF.CAUCHY", protoM_EDD, "a(0,1) c>0", each3(idfCauchy)),
	fn("PDF.CAUCHY", protoM_EDD, "c>0", each3(pdfCauchy)),
	fn("RV.CAUCHY", protoD_DD, "b>0", scalar2(rvCauchy)),
	fn("CDF.CHISQ", protoM_ED, "a>=0 b>0", each2(cdfChisq)),
	fn("CHICDF", protoM_ED, "a>=0 b>0", each2(cdfChisq)),
	fn("IDF.CHISQ", protoM_ED, "a[0,1) b>0", each2(idfChisq)),
	fn("PDF.CHISQ", protoM_ED, "a>=0 b>0", each2(pdfChisq)),
	fn("RV.CHISQ", protoD_D, "a>0", scalar1(rvChisq)),
	fn("SIG.CHISQ", protoM_ED, "a>=0 b>0", each2(sigChisq)),
	fn("CDF.EXP", protoM_ED, "a>=0 b>=0", each2(cdfExp)),
	fn("IDF.EXP", protoM_ED, "a[0,1) b>0", each2(idfExp)),
	fn("PDF.EXP", protoM_ED, "a>=0 b>0", each2(pdfExp)),
	fn("RV.EXP", protoD_D, "a>0", scalar1(rvExp)),
	fn("PDF.XPOWER", protoM_EDD, "b>0 c>=0", each3(pdfXpower)),
	fn("RV.XPOWER", protoD_DD, "a>0 c>=0", scalar2(rvXpower)),
	fn("CDF.F", protoM_EDD, "a>=0 b>0 c>0", each3(cdfF)),
	fn("FCDF", protoM_EDD, "a>=0 b>0 c>0", each3(cdfF)),
	fn("IDF.F", protoM_EDD, "a[0,1) b>0 c>0", each3(idfF)),
	fn("PDF.F", protoM_EDD, "a>=0 b>0 c>0", each3(pdfF)),
	fn("RV.F", protoD_DD, "a>0 b>0", scalar2(rvF)),
	fn("SIG.F", protoM_EDD, "a>=0 b>0 c>0", each3(sigF)),
	fn("CDF.GAMMA", protoM_EDD, "a>=0 b>0 c>0", each3(cdfGamma)),
	fn("IDF.GAMMA", protoM_EDD, "a[0,1] b>0 c>0", each3(idfGamma)),
	fn("PDF.GAMMA", protoM_EDD, "a>=0 b>0 c>0", each3(pdfGamma)),
	fn("RV.GAMMA", protoD_DD, "a>0 b>0", scalar2(rvGamma)),
	fn("PDF.LANDAU", protoM_E, "", each1(pdfLandau)),
	fn("RV.LANDAU", protoD_NONE, "", scalar0(rvLandau)),
	fn("CDF.LAPLACE", protoM_EDD, "c>0", each3(cdfLaplace)),
	fn("IDF.LAPLACE", protoM_EDD, "a(0,1) c>0", each3(idfLaplace)),
	fn("PDF.LAPLACE", protoM_EDD, "c>0", each3(pdfLaplace)),
	fn("RV.LAPLACE", protoD_DD, "b>0", scalar2(rvLaplace)),
	fn("RV.LEVY", protoD_DD, "b(0,2]", scalar2(rvLevy)),
	fn("RV.LVSKEW", protoD_DDD, "b(0,2] c[-1,1]", scalar3(rvLvskew)),
	fn("CDF.LOGISTIC", protoM_EDD, "c>0", each3(cdfLogistic)),
	fn("IDF.LOGISTIC", protoM_EDD, "a(0,1) c>0", each3(idfLogistic)),
	fn("PDF.LOGISTIC", protoM_EDD, "c>0", each3(pdfLogistic)),
	fn("RV.LOGISTIC", protoD_DD, "b>0", scalar2(rvLogistic)),
	fn("CDF.LNORMAL", protoM_EDD, "a>=0 b>0 c>0", each3(cdfLnormal)),
	fn("IDF.LNORMAL", protoM_EDD, "a[0,1) b>0 c>0", each3(idfLnormal)),
	fn("PDF.LNORMAL", protoM_EDD, "a>=0 b>0 c>0", each3(pdfLnormal)),
	fn("RV.LNORMAL", protoD_DD, "a>0 b>0", scalar2(rvLnormal)),
	fn("CDF.NORMAL", protoM_EDD, "c>0", each3(cdfNormal)),
	fn("IDF.NORMAL", protoM_EDD, "a(0,1) c>0", each3(idfNormal)),
	fn("PDF.NORMAL", protoM_EDD, "c>0", each3(pdfNormal)),
	fn("RV.NORMAL", protoD_DD, "b>0", scalar2(rvNormal)),
	fn("CDFNORM", protoM_E, "", each1(cdfnorm)),
	fn("PROBIT", protoM_E, "a(0,1)", each1(probit)),
	fn("NORMAL", protoM_E, "a>0", normalFn),
	fn("PDF.NTAIL", protoM_EDD, "b>0 c>0", each3(pdfNtail)),
	fn("RV.NTAIL", protoD_DD, "a>0 b>0", scalar2(rvNtail)),
	fn("CDF.PARETO", protoM_EDD, "a>=b b>0 c>0", each3(cdfPareto)),
	fn("IDF.PARETO", protoM_EDD, "a[0,1) b>0 c>0", each3(idfPareto)),
	fn("PDF.PARETO", protoM_EDD, "a>=b b>0 c>0", each3(pdfPareto)),
	fn("RV.PARETO", protoD_DD, "a>0 b>0", scalar2(rvPareto)),
	fn("CDF.RAYLEIGH", protoM_ED, "b>0", each2(cdfRayleigh)),
	fn("IDF.RAYLEIGH", protoM_ED, "a[0,1] b>0", each2(idfRayleigh)),
	fn("PDF.RAYLEIGH", protoM_ED, "b>0", each2(pdfRayleigh)),
	fn("RV.RAYLEIGH", protoD_D, "a>0", scalar1(rvRayleigh)),
	fn("PDF.RTAIL", protoM_EDD, "", each3(pdfRtail)),
	fn("RV.RTAIL", protoD_DD, "", scalar2(rvRtail)),
	fn("CDF.T", protoM_ED, "b>0", each2(cdfT)),
	fn("TCDF", protoM_ED, "b>0", each2(cdfT)),
	fn("IDF.T", protoM_ED, "a(0,1) b>0", each2(idfT)),
	fn("PDF.T", protoM_ED, "b>0", each2(pdfT)),
	fn("RV.T", protoD_D, "a>0", scalar1(rvT)),
	fn("CDF.T1G", protoM_EDD, "", each3(cdfT1g)),
	fn("IDF.T1G", protoM_EDD, "a(0,1)", each3(idfT1g)),
	fn("PDF.T1G", protoM_EDD, "", each3(pdfT1g)),
	fn("RV.T1G", protoD_DD, "", scalar2(rvT1g)),
	fn("CDF.T2G", protoM_EDD, "", each3(cdfT1g)),
	fn("IDF.T2G", protoM_EDD, "a(0,1)", each3(idfT1g)),
	fn("PDF.T2G", protoM_EDD, "", each3(pdfT1g)),
	fn("RV.T2G", protoD_DD, "", scalar2(rvT1g)),
	fn("CDF.UNIFORM", protoM_EDD, "a<=c b<=c", each3(cdfUniform)),
	fn("IDF.UNIFORM", protoM_EDD, "a[0,1] b<=c", each3(idfUniform)),
	fn("PDF.UNIFORM", protoM_EDD, "a<=c b<=c", each3(pdfUniform)),
	fn("RV.UNIFORM", protoD_DD, "a<=b", scalar2(rvUniform)),
	fn("CDF.WEIBULL", protoM_EDD, "a>=0 b>0 c>0", each3(cdfWeibull)),
	fn("IDF.WEIBULL", protoM_EDD, "a[0,1) b>0 c>0", each3(idfWeibull)),
	fn("PDF.WEIBULL", protoM_EDD, "a>=0 b>0 c>0", each3(pdfWeibull)),
	fn("RV.WEIBULL", protoD_DD, "a>0 b>0", scalar2(rvWeibull)),
	fn("CDF.BERNOULLI", protoM_ED, "ai[0,1] b[0,1]", each2(cdfBernoulli)),
	fn("PDF.BERNOULLI", protoM_ED, "ai[0,1] b[0,1]", each2(pdfBernoulli)),
	fn("RV.BERNOULLI", protoD_D, "a[0,1]", scalar1(rvBernoulli)),
	fn("CDF.BINOM", protoM_EDD, "bi>0 c[0,1]", each3(cdfBinom)),
	fn("PDF.BINOM", protoM_EDD, "ai>=0<=b bi>0 c[0,1]", each3(pdfBinom)),
	fn("RV.BINOM", protoD_DD, "ai>0 b[0,1]", scalar2(rvBinom)),
	fn("CDF.GEOM", protoM_ED, "ai>=1 b[0,1]", each2(cdfGeom)),
	fn("PDF.GEOM", protoM_ED, "ai>=1 b[0,1]", each2(pdfGeom)),
	fn("RV.GEOM", protoD_D, "a[0,1]", scalar1(rvGeom)),
	fn("CDF.HYPER", protoM_EDDD, "ai>=0<=d bi>0 ci>0<=b di>0<=b", each4(cdfHyper)),
	fn("PDF.HYPER", protoM_EDDD, "ai>=0<=d bi>0 ci>0<=b di>0<=b", each4(pdfHyper)),
	fn("RV.HYPER", protoD_DDD, "ai>0 bi>0<=a ci>0<=a", scalar3(rvHyper)),
	fn("PDF.LOG", protoM_ED, "a>=1 b(0,1]", each2(pdfLog)),
	fn("RV.LOG", protoD_D, "a(0,1]", scalar1(rvLog)),
	fn("CDF.NEGBIN", protoM_EDD, "a>=1 bi c(0,1]", each3(cdfNegbin)),
	fn("PDF.NEGBIN", protoM_EDD, "a>=1 bi c(0,1]", each3(pdfNegbin)),
	fn("RV.NEGBIN", protoD_DD, "ai b(0,1]", scalar2(rvNegbin)),
	fn("CDF.POISSON", protoM_ED, "ai>=0 b>0", each2(cdfPoisson)),
	fn("PDF.POISSON", protoM_ED, "ai>=0 b>0", each2(pdfPoisson)),
	fn("RV.POISSON", protoD_D, "a>0", scalar1(rvPoisson)),
}
