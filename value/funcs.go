// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Elementwise scalar functions.

func absFn(x float64) float64   { return math.Abs(x) }
func arsinFn(x float64) float64 { return math.Asin(x) }
func artanFn(x float64) float64 { return math.Atan(x) }
func cosFn(x float64) float64   { return math.Cos(x) }
func expFn(x float64) float64   { return math.Exp(x) }
func lg10Fn(x float64) float64  { return math.Log10(x) }
func lnFn(x float64) float64    { return math.Log(x) }
func rndFn(x float64) float64   { return math.RoundToEven(x) }
func sinFn(x float64) float64   { return math.Sin(x) }
func sqrtFn(x float64) float64  { return math.Sqrt(x) }
func truncFn(x float64) float64 { return math.Trunc(x) }

// Whole-matrix predicates and reductions.

func fnAll(c Context, call *CallExpr, args []*Matrix) *Matrix {
	for _, x := range args[0].data {
		if x == 0 {
			return Scalar(0)
		}
	}
	return Scalar(1)
}

func fnAny(c Context, call *CallExpr, args []*Matrix) *Matrix {
	for _, x := range args[0].data {
		if x != 0 {
			return Scalar(1)
		}
	}
	return Scalar(0)
}

func fnMmax(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return matrixExtremum(c, call, args[0], false)
}

func fnMmin(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return matrixExtremum(c, call, args[0], true)
}

func matrixExtremum(c Context, call *CallExpr, m *Matrix, min bool) *Matrix {
	if m.Size() == 0 {
		c.Errorf("argument 1 to %s must not be empty (%s)", call.Fn.Name, call.Args[0].Span())
	}
	ext := m.data[0]
	for _, x := range m.data[1:] {
		if min && x < ext || !min && x > ext {
			ext = x
		}
	}
	return Scalar(ext)
}

func fnMssq(c Context, call *CallExpr, args []*Matrix) *Matrix {
	sum := 0.0
	for _, x := range args[0].data {
		sum += x * x
	}
	return Scalar(sum)
}

func fnMsum(c Context, call *CallExpr, args []*Matrix) *Matrix {
	sum := 0.0
	for _, x := range args[0].data {
		sum += x
	}
	return Scalar(sum)
}

func fnNcol(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return Scalar(float64(args[0].cols))
}

func fnNrow(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return Scalar(float64(args[0].rows))
}

func fnTrace(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	sum := 0.0
	for i := 0; i < min(m.rows, m.cols); i++ {
		sum += m.At(i, i)
	}
	return Scalar(sum)
}

// Column and row reductions.

func fnCmax(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return colExtremum(args[0], false)
}

func fnCmin(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return colExtremum(args[0], true)
}

func colExtremum(m *Matrix, min bool) *Matrix {
	if m.rows <= 1 {
		return m
	}
	if m.cols == 0 {
		return NewMatrix(1, 0)
	}
	ext := NewMatrix(1, m.cols)
	copy(ext.data, m.data[:m.cols])
	for y := 1; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			v := m.At(y, x)
			if min && v < ext.data[x] || !min && v > ext.data[x] {
				ext.data[x] = v
			}
		}
	}
	return ext
}

func fnCssq(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return colSum(args[0], true)
}

func fnCsum(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return colSum(args[0], false)
}

func colSum(m *Matrix, square bool) *Matrix {
	if m.rows == 0 {
		return m
	}
	if m.cols == 0 {
		return NewMatrix(1, 0)
	}
	sum := NewMatrix(1, m.cols)
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			v := m.At(y, x)
			if square {
				v *= v
			}
			sum.data[x] += v
		}
	}
	return sum
}

func fnRmax(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return rowExtremum(args[0], false)
}

func fnRmin(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return rowExtremum(args[0], true)
}

func rowExtremum(m *Matrix, min bool) *Matrix {
	if m.cols <= 1 {
		return m
	}
	if m.rows == 0 {
		return NewMatrix(0, 1)
	}
	ext := NewMatrix(m.rows, 1)
	for y := 0; y < m.rows; y++ {
		e := m.At(y, 0)
		for x := 1; x < m.cols; x++ {
			v := m.At(y, x)
			if min && v < e || !min && v > e {
				e = v
			}
		}
		ext.data[y] = e
	}
	return ext
}

func fnRssq(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return rowSum(args[0], true)
}

func fnRsum(c Context, call *CallExpr, args []*Matrix) *Matrix {
	return rowSum(args[0], false)
}

func rowSum(m *Matrix, square bool) *Matrix {
	if m.rows == 0 {
		return m
	}
	sum := NewMatrix(m.rows, 1)
	for y := 0; y < m.rows; y++ {
		s := 0.0
		for x := 0; x < m.cols; x++ {
			v := m.At(y, x)
			if square {
				v *= v
			}
			s += v
		}
		sum.data[y] = s
	}
	return sum
}

// Construction functions.

func fnBlock(c Context, call *CallExpr, args []*Matrix) *Matrix {
	r, cl := 0, 0
	for _, m := range args {
		r += m.rows
		cl += m.cols
	}
	block := NewMatrix(r, cl)
	r, cl = 0, 0
	for _, m := range args {
		for y := 0; y < m.rows; y++ {
			for x := 0; x < m.cols; x++ {
				block.Set(r+y, cl+x, m.At(y, x))
			}
		}
		r += m.rows
		cl += m.cols
	}
	return block
}

func fnDesign(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]

	// Sorted distinct values per column. Constant columns contribute
	// nothing to the result.
	unique := make([][]float64, m.cols)
	total := 0
	for x := 0; x < m.cols; x++ {
		col := make([]float64, m.rows)
		for y := 0; y < m.rows; y++ {
			col[y] = m.At(y, x)
		}
		sort.Float64s(col)
		u := col[:0]
		for i, v := range col {
			if i == 0 || v != u[len(u)-1] {
				u = append(u, v)
			}
		}
		if len(u) <= 1 {
			c.Warnf("column %d in DESIGN argument has constant value", x+1)
		} else {
			unique[x] = u
			total += len(u)
		}
	}

	result := NewMatrix(m.rows, total)
	dx := 0
	for x := 0; x < m.cols; x++ {
		for _, v := range unique[x] {
			for y := 0; y < m.rows; y++ {
				if m.At(y, x) == v {
					result.Set(y, dx, 1)
				}
			}
			dx++
		}
	}
	return result
}

func fnDiag(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	n := min(m.rows, m.cols)
	diag := NewMatrix(n, 1)
	for i := 0; i < n; i++ {
		diag.data[i] = m.At(i, i)
	}
	return diag
}

func fnIdent(c Context, call *CallExpr, args []*Matrix) *Matrix {
	r := int(args[0].ScalarValue())
	cl := r
	if len(args) == 2 {
		cl = int(args[1].ScalarValue())
	}
	m := NewMatrix(r, cl)
	for i := 0; i < min(r, cl); i++ {
		m.Set(i, i, 1)
	}
	return m
}

func fnKroneker(c Context, call *CallExpr, args []*Matrix) *Matrix {
	a, b := args[0], args[1]
	k := NewMatrix(a.rows*b.rows, a.cols*b.cols)
	for ar := 0; ar < a.rows; ar++ {
		for br := 0; br < b.rows; br++ {
			for ac := 0; ac < a.cols; ac++ {
				av := a.At(ar, ac)
				for bc := 0; bc < b.cols; bc++ {
					k.Set(ar*b.rows+br, ac*b.cols+bc, av*b.At(br, bc))
				}
			}
		}
	}
	return k
}

func fnMake(c Context, call *CallExpr, args []*Matrix) *Matrix {
	r := int(args[0].ScalarValue())
	cl := int(args[1].ScalarValue())
	v := args[2].ScalarValue()
	m := NewMatrix(r, cl)
	for i := range m.data {
		m.data[i] = v
	}
	return m
}

func fnMdiag(c Context, call *CallExpr, args []*Matrix) *Matrix {
	v := args[0]
	n := v.Size()
	m := NewMatrix(n, n)
	for i, x := range v.data {
		m.Set(i, i, x)
	}
	return m
}

func fnMod(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m, divisor := args[0], args[1].ScalarValue()
	for i, x := range m.data {
		m.data[i] = math.Mod(x, divisor)
	}
	return m
}

func fnReshape(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	r := int(args[1].ScalarValue())
	cl := int(args[2].ScalarValue())
	if r*cl != m.Size() {
		c.Errorf("product of RESHAPE size arguments (%d×%d = %d) differs from "+
			"product of matrix dimensions (%d×%d = %d) (%s)",
			r, cl, r*cl, m.rows, m.cols, m.Size(),
			call.Args[1].Span().union(call.Args[2].Span()))
	}
	// Row-major storage makes reshaping a relabeling of the same data.
	return NewMatrixData(r, cl, m.data)
}

func fnTranspos(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	if m.rows == m.cols {
		for y := 0; y < m.rows; y++ {
			for x := 0; x < y; x++ {
				m.data[y*m.cols+x], m.data[x*m.cols+y] = m.data[x*m.cols+y], m.data[y*m.cols+x]
			}
		}
		return m
	}
	t := NewMatrix(m.cols, m.rows)
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			t.Set(x, y, m.At(y, x))
		}
	}
	return t
}

func fnUniform(c Context, call *CallExpr, args []*Matrix) *Matrix {
	r := int(args[0].ScalarValue())
	cl := int(args[1].ScalarValue())
	rng := c.Rand()
	m := NewMatrix(r, cl)
	for i := range m.data {
		m.data[i] = rng.Float64()
	}
	return m
}

// Magic squares. Odd orders use the Siamese method; even orders follow
// A. Umar, "On the Construction of Even Order Magic Squares",
// https://arxiv.org/ftp/arxiv/papers/1202/1202.0948.pdf.

func fnMagic(c Context, call *CallExpr, args []*Matrix) *Matrix {
	n := int(args[0].ScalarValue())
	m := NewMatrix(n, n)
	switch {
	case n%2 == 1:
		magicOdd(m, n)
	case n%4 != 0:
		magicSinglyEven(m, n)
	default:
		magicDoublyEven(m, n)
	}
	return m
}

func magicOdd(m *Matrix, n int) {
	y, x := 0, n/2
	for i := 1; i <= n*n; i++ {
		m.Set(y, x, float64(i))
		y1 := y - 1
		if y1 < 0 {
			y1 = n - 1
		}
		x1 := x + 1
		if x1 >= n {
			x1 = 0
		}
		if m.At(y1, x1) == 0 {
			y, x = y1, x1
		} else {
			y++
			if y >= n {
				y = 0
			}
		}
	}
}

func (m *Matrix) swap(y1, x1, y2, x2 int) {
	a, b := m.At(y1, x1), m.At(y2, x2)
	m.Set(y1, x1, b)
	m.Set(y2, x2, a)
}

func magicDoublyEven(m *Matrix, n int) {
	x, y := 0, 0
	for i := 1; i <= n*n/2; i++ {
		m.Set(y, x, float64(i))
		if y++; y >= n {
			y = 0
			x++
		}
	}

	x, y = n-1, 0
	for i := n * n; i > n*n/2; i-- {
		m.Set(y, x, float64(i))
		if y++; y >= n {
			y = 0
			x--
		}
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n/2; x++ {
			d := int(m.At(y, x))
			if (d%2 == 1) != (y < n/2) {
				m.swap(y, x, y, n-x-1)
			}
		}
	}

	y1, y2 := n/2, n-1
	x1, x2 := n/2-1, n/2
	m.swap(y1, x1, y2, x1)
	m.swap(y1, x2, y2, x2)
}

func magicSinglyEven(m *Matrix, n int) {
	x, y := 0, 0
	for i := 1; ; i++ {
		m.Set(y, x, float64(i))
		if y++; y == n/2-1 {
			y += 2
		} else if y >= n {
			y = 0
			if x++; x >= n/2 {
				break
			}
		}
	}

	x, y = n-1, 0
	for i := n * n; ; i-- {
		m.Set(y, x, float64(i))
		if y++; y == n/2-1 {
			y += 2
		} else if y >= n {
			y = 0
			if x--; x < n/2 {
				break
			}
		}
	}

	for y := 0; y < n; y++ {
		if y == n/2-1 || y == n/2 {
			continue
		}
		for x := 0; x < n/2; x++ {
			d := int(m.At(y, x))
			if (d%2 == 1) != (y < n/2) {
				m.swap(y, x, y, n-x-1)
			}
		}
	}

	a0 := (n*n-2*n)/2 + 1
	for i := 0; i < n/2; i++ {
		a := a0 + i
		m.Set(n/2, i, float64(a))
		m.Set(n/2-1, i, float64(n*n+1-a))
	}
	for i := 0; i < n/2; i++ {
		a := a0 + i + n/2
		m.Set(n/2-1, n-i-1, float64(a))
		m.Set(n/2, n-i-1, float64(n*n+1-a))
	}
	for x := 1; x < n/2; x += 2 {
		m.swap(n/2, x, n/2-1, x)
	}
	for x := n/2 + 2; x <= n-3; x += 2 {
		m.swap(n/2, x, n/2-1, x)
	}
	x1, x2 := n/2-2, n/2+1
	y1, y2 := n/2-2, n/2+1
	m.swap(y1, x1, y2, x1)
	m.swap(y1, x2, y2, x2)
}

// Ordering functions.

func fnGrade(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	order := make([]int, m.Size())
	for i := range order {
		order[i] = i
	}
	// Ties rank in row-major position order.
	sort.SliceStable(order, func(i, j int) bool {
		return m.data[order[i]] < m.data[order[j]]
	})
	for rank, i := range order {
		m.data[i] = float64(rank + 1)
	}
	return m
}

func fnRnkorder(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	order := make([]int, m.Size())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return m.data[order[i]] < m.data[order[j]]
	})
	for i := 0; i < len(order); {
		j := i + 1
		for j < len(order) && m.data[order[i]] == m.data[order[j]] {
			j++
		}
		// Tied values share the mean of the ranks they span.
		rank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			m.data[order[k]] = rank
		}
		i = j
	}
	return m
}

// Linear algebra.

func fnChol(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	if m.rows != m.cols {
		c.Errorf("input to CHOL function must be square, not %s (%s)",
			m.Shape(), call.Args[0].Span())
	}
	if m.Size() == 0 {
		return m
	}
	var ch mat.Cholesky
	if !ch.Factorize(mat.NewSymDense(m.rows, m.data)) {
		c.Errorf("input to CHOL function is not positive-definite (%s)",
			call.Args[0].Span())
	}
	var u mat.TriDense
	ch.UTo(&u)
	result := NewMatrix(m.rows, m.cols)
	for y := 0; y < m.rows; y++ {
		for x := y; x < m.cols; x++ {
			result.Set(y, x, u.At(y, x))
		}
	}
	return result
}

func fnDet(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	if m.rows != m.cols {
		c.Errorf("argument 1 to DET must be a square matrix, not %s (%s)",
			m.Shape(), call.Args[0].Span())
	}
	if m.Size() == 0 {
		return Scalar(1)
	}
	return Scalar(mat.Det(asDense(m)))
}

func fnEval(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	if !m.IsSymmetric() {
		c.Errorf("argument of EVAL must be symmetric, not %s (%s)",
			m.Shape(), call.Args[0].Span())
	}
	if m.Size() == 0 {
		return NewMatrix(0, 1)
	}
	var es mat.EigenSym
	if !es.Factorize(mat.NewSymDense(m.rows, m.data), false) {
		c.Errorf("eigenvalue computation for EVAL failed (%s)", call.Args[0].Span())
	}
	vals := es.Values(nil)
	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))
	return ColVector(vals)
}

func fnGinv(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	if m.Size() == 0 {
		return NewMatrix(m.cols, m.rows)
	}
	var svd mat.SVD
	if !svd.Factorize(asDense(m), mat.SVDThin) {
		c.Errorf("singular value decomposition for GINV failed (%s)", call.Args[0].Span())
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// Zero the reciprocals of singular values below the cutoff so the
	// pseudoinverse stays finite for rank-deficient input.
	cutoff := 1e-15 * s[0]
	k := len(s)
	inv := mat.NewDiagDense(k, nil)
	for i, x := range s {
		if x > cutoff {
			inv.SetDiag(i, 1/x)
		}
	}

	var vs, pinv mat.Dense
	vs.Mul(&v, inv)
	pinv.Mul(&vs, u.T())
	return fromDense(&pinv)
}

func fnGsch(c Context, call *CallExpr, args []*Matrix) *Matrix {
	v := args[0]
	if v.cols < v.rows {
		c.Errorf("GSCH requires its argument to have at least as many columns "+
			"as rows, but it has dimensions %s (%s)", v.Shape(), call.Args[0].Span())
	}
	if v.rows == 0 || v.cols == 0 {
		return v
	}

	u := NewMatrix(v.rows, v.cols)
	col := func(m *Matrix, x int) []float64 {
		c := make([]float64, m.rows)
		for y := 0; y < m.rows; y++ {
			c[y] = m.At(y, x)
		}
		return c
	}
	ux := 0
	for vx := 0; vx < v.cols; vx++ {
		ui := col(v, vx)
		for j := 0; j < ux; j++ {
			uj := col(u, j)
			dot, nrm2 := 0.0, 0.0
			for k := range uj {
				dot += uj[k] * ui[k]
				nrm2 += uj[k] * uj[k]
			}
			scale := dot / nrm2
			for k := range ui {
				ui[k] -= scale * uj[k]
			}
		}
		nrm2 := 0.0
		for _, x := range ui {
			nrm2 += x * x
		}
		if length := math.Sqrt(nrm2); length > 1e-15 {
			for y, x := range ui {
				u.Set(y, ux, x/length)
			}
			if ux++; ux >= v.rows {
				break
			}
		}
	}
	if ux < v.rows {
		c.Errorf("%s argument to GSCH contains only %d linearly independent columns (%s)",
			v.Shape(), ux, call.Args[0].Span())
	}

	result := NewMatrix(v.rows, v.rows)
	for y := 0; y < v.rows; y++ {
		for x := 0; x < v.rows; x++ {
			result.Set(y, x, u.At(y, x))
		}
	}
	return result
}

func fnInv(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	if m.rows != m.cols {
		c.Errorf("argument 1 to INV must be a square matrix, not %s (%s)",
			m.Shape(), call.Args[0].Span())
	}
	return invert(c, call.Args[0], m)
}

func fnRank(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	if m.Size() == 0 {
		return Scalar(0)
	}
	var svd mat.SVD
	if !svd.Factorize(asDense(m), mat.SVDNone) {
		c.Errorf("singular value decomposition for RANK failed (%s)", call.Args[0].Span())
	}
	s := svd.Values(nil)
	tol := 20 * float64(m.rows+m.cols) * 2.220446049250313e-16 * s[0]
	rank := 0
	for _, x := range s {
		if x > tol {
			rank++
		}
	}
	return Scalar(float64(rank))
}

func fnSolve(c Context, call *CallExpr, args []*Matrix) *Matrix {
	a, b := args[0], args[1]
	if a.rows != b.rows {
		c.Errorf("SOLVE arguments must have the same number of rows: "+
			"argument 1 is %s (%s) and argument 2 is %s (%s)",
			a.Shape(), call.Args[0].Span(), b.Shape(), call.Args[1].Span())
	}
	if a.rows != a.cols {
		c.Errorf("argument 1 to SOLVE must be a square matrix, not %s (%s)",
			a.Shape(), call.Args[0].Span())
	}
	if a.Size() == 0 {
		return NewMatrix(b.rows, b.cols)
	}
	var x mat.Dense
	if err := x.Solve(asDense(a), asDense(b)); err != nil {
		c.Errorf("argument 1 to SOLVE (%s) is singular (%s)", a.Shape(), call.Args[0].Span())
	}
	return fromDense(&x)
}

func fnSscp(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	if m.rows == 0 || m.cols == 0 {
		return NewMatrix(m.cols, m.cols)
	}
	d := asDense(m)
	var sscp mat.Dense
	sscp.Mul(d.T(), d)
	return fromDense(&sscp)
}

func fnSval(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	n := min(m.rows, m.cols)
	if n == 0 {
		return NewMatrix(0, 1)
	}
	var svd mat.SVD
	if !svd.Factorize(asDense(m), mat.SVDNone) {
		c.Errorf("singular value decomposition for SVAL failed (%s)", call.Args[0].Span())
	}
	return ColVector(svd.Values(nil))
}

func fnSweep(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	d := args[1].ScalarValue()
	if d < 1 || d != math.Trunc(d) || int(d) > min(m.rows, m.cols) {
		c.Errorf("scalar argument to SWEEP must be an integer between 1 and "+
			"the smaller of the matrix argument's rows and columns (%s)",
			call.Args[1].Span())
	}
	k := int(d) - 1

	mkk := m.At(k, k)
	if math.Abs(mkk) <= 1e-19 {
		for i := 0; i < m.rows; i++ {
			m.Set(i, k, 0)
		}
		for j := 0; j < m.cols; j++ {
			m.Set(k, j, 0)
		}
		return m
	}

	a := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			var v float64
			switch {
			case i != k && j != k:
				v = m.At(i, j)*mkk - m.At(i, k)*m.At(k, j)
			case i != k:
				v = -m.At(i, k)
			case j != k:
				v = m.At(k, j)
			default:
				v = 1
			}
			a.Set(i, j, v/mkk)
		}
	}
	return a
}
