// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// The distribution functions follow a shared parameter style: continuous
// distributions take a location a and scale b where that makes sense,
// with CDF.*(x,...), IDF.*(P,...), PDF.*(x,...) and RV.*(...) variants.
// Families that gonum's distuv covers use it directly; the rest are
// closed forms or short series.

var unitNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Beta.

func pdfBeta(x, a, b float64) float64 {
	return distuv.Beta{Alpha: a, Beta: b}.Prob(x)
}

func cdfBeta(x, a, b float64) float64 {
	return distuv.Beta{Alpha: a, Beta: b}.CDF(x)
}

func idfBeta(p, a, b float64) float64 {
	return distuv.Beta{Alpha: a, Beta: b}.Quantile(p)
}

func rvBeta(c Context, a, b float64) float64 {
	return distuv.Beta{Alpha: a, Beta: b, Src: c.Rand()}.Rand()
}

// Noncentral beta, as a Poisson mixture of central betas.

func ncdfBeta(x, a, b, lambda float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	c := lambda / 2
	weight := math.Exp(-c)
	psum := weight
	sum := weight * mathext.RegIncBeta(a, b, x)
	for k := 1; k <= 200 && 1-psum > 2e-16; k++ {
		weight *= c / float64(k)
		psum += weight
		sum += weight * mathext.RegIncBeta(a+float64(k), b, x)
	}
	return sum
}

func npdfBeta(x, a, b, lambda float64) float64 {
	if lambda == 0 {
		return pdfBeta(x, a, b)
	}
	c := lambda / 2
	term := pdfBeta(x, a, b)
	weight := math.Exp(-c)
	sum := weight * term
	psum := weight
	for k := 1; k <= 200 && 1-psum > 2e-16; k++ {
		weight *= c / float64(k)
		term *= x * (a + b) / a
		sum += weight * term
		psum += weight
		a++
	}
	return sum
}

// Bivariate normal with unit variances and correlation r. The CDF uses
// Plackett's identity: the derivative of the CDF with respect to the
// correlation is the density, so integrating the density over the
// correlation from 0 to r corrects the independent-case product.

func pdfBvnor(x, y, r float64) float64 {
	s := 1 - r*r
	z := x*x - 2*r*x*y + y*y
	return math.Exp(-z/(2*s)) / (2 * math.Pi * math.Sqrt(s))
}

func cdfBvnor(x, y, r float64) float64 {
	switch {
	case r >= 0.9999:
		return unitNormal.CDF(math.Min(x, y))
	case r <= -0.9999:
		return math.Max(0, unitNormal.CDF(x)+unitNormal.CDF(y)-1)
	}
	const n = 128
	h := r / n
	sum := pdfBvnor(x, y, 0) + pdfBvnor(x, y, r)
	for i := 1; i < n; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4
		}
		sum += w * pdfBvnor(x, y, float64(i)*h)
	}
	return unitNormal.CDF(x)*unitNormal.CDF(y) + sum*h/3
}

// Cauchy with location a and scale b.

func cdfCauchy(x, a, b float64) float64 {
	return 0.5 + math.Atan((x-a)/b)/math.Pi
}

func idfCauchy(p, a, b float64) float64 {
	return a + b*math.Tan(math.Pi*(p-0.5))
}

func pdfCauchy(x, a, b float64) float64 {
	z := (x - a) / b
	return 1 / (math.Pi * (1 + z*z) * b)
}

func rvCauchy(c Context, a, b float64) float64 {
	return a + b*math.Tan(math.Pi*(c.Rand().Float64()-0.5))
}

// Chi-squared.

func cdfChisq(x, df float64) float64 {
	return distuv.ChiSquared{K: df}.CDF(x)
}

func idfChisq(p, df float64) float64 {
	return distuv.ChiSquared{K: df}.Quantile(p)
}

func pdfChisq(x, df float64) float64 {
	return distuv.ChiSquared{K: df}.Prob(x)
}

func rvChisq(c Context, df float64) float64 {
	return distuv.ChiSquared{K: df, Src: c.Rand()}.Rand()
}

func sigChisq(x, df float64) float64 {
	return mathext.GammaIncRegComp(df/2, x/2)
}

// Exponential with rate a.

func cdfExp(x, a float64) float64 {
	return distuv.Exponential{Rate: a}.CDF(x)
}

func idfExp(p, a float64) float64 {
	return distuv.Exponential{Rate: a}.Quantile(p)
}

func pdfExp(x, a float64) float64 {
	return distuv.Exponential{Rate: a}.Prob(x)
}

func rvExp(c Context, a float64) float64 {
	return c.Rand().ExpFloat64() / a
}

// Exponential power with scale a and exponent b.

func pdfXpower(x, a, b float64) float64 {
	lg, _ := math.Lgamma(1 + 1/b)
	return math.Exp(-math.Pow(math.Abs(x/a), b)) / (2 * a * math.Exp(lg))
}

func rvXpower(c Context, a, b float64) float64 {
	rng := c.Rand()
	g := distuv.Gamma{Alpha: 1 / b, Beta: 1, Src: rng}.Rand()
	x := a * math.Pow(g, 1/b)
	if rng.Float64() < 0.5 {
		return -x
	}
	return x
}

// F.

func cdfF(x, df1, df2 float64) float64 {
	return distuv.F{D1: df1, D2: df2}.CDF(x)
}

func idfF(p, df1, df2 float64) float64 {
	t := distuv.Beta{Alpha: df1 / 2, Beta: df2 / 2}.Quantile(p)
	return t * df2 / ((1 - t) * df1)
}

func pdfF(x, df1, df2 float64) float64 {
	return distuv.F{D1: df1, D2: df2}.Prob(x)
}

func rvF(c Context, df1, df2 float64) float64 {
	return distuv.F{D1: df1, D2: df2, Src: c.Rand()}.Rand()
}

func sigF(x, df1, df2 float64) float64 {
	return mathext.RegIncBeta(df2/2, df1/2, df2/(df2+df1*x))
}

// Gamma with shape a and rate b.

func cdfGamma(x, a, b float64) float64 {
	return distuv.Gamma{Alpha: a, Beta: b}.CDF(x)
}

func idfGamma(p, a, b float64) float64 {
	return distuv.Gamma{Alpha: a, Beta: b}.Quantile(p)
}

func pdfGamma(x, a, b float64) float64 {
	return distuv.Gamma{Alpha: a, Beta: b}.Prob(x)
}

func rvGamma(c Context, a, b float64) float64 {
	return distuv.Gamma{Alpha: a, Beta: b, Src: c.Rand()}.Rand()
}

// Landau. The density comes from the defining integral
//
//	p(x) = (1/π) ∫ exp(-t·ln t - x·t) sin(π t) dt
//
// evaluated by Simpson's rule. Left of x = -4 the density is far below
// the integration noise floor, so it is treated as zero. Sampling
// inverts a cached table of the CDF, with a 1/x tail beyond it.

func pdfLandau(x float64) float64 {
	if x < -4 {
		return 0
	}
	const (
		upper = 100.0
		n     = 4000
	)
	h := upper / n
	f := func(t float64) float64 {
		if t == 0 {
			return 0
		}
		return math.Exp(-t*math.Log(t)-x*t) * math.Sin(math.Pi*t)
	}
	sum := f(0) + f(upper)
	for i := 1; i < n; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4
		}
		sum += w * f(float64(i) * h)
	}
	return math.Max(0, sum*h/3/math.Pi)
}

var landauTable struct {
	once sync.Once
	x    []float64
	cdf  []float64
}

func landauInit() {
	// Uniform steps through the body of the distribution, then
	// geometric steps out the heavy right tail.
	var xs []float64
	for x := -4.0; x < 15; x += 0.02 {
		xs = append(xs, x)
	}
	for x := 15.0; x < 2000; x *= 1.05 {
		xs = append(xs, x)
	}
	cdf := make([]float64, len(xs))
	prev := pdfLandau(xs[0])
	for i := 1; i < len(xs); i++ {
		p := pdfLandau(xs[i])
		cdf[i] = cdf[i-1] + (prev+p)/2*(xs[i]-xs[i-1])
		prev = p
	}
	landauTable.x = xs
	landauTable.cdf = cdf
}

func rvLandau(c Context) float64 {
	landauTable.once.Do(landauInit)
	u := c.Rand().Float64()
	cdf := landauTable.cdf
	last := cdf[len(cdf)-1]
	if u >= last {
		// Pareto-like 1/x tail extrapolation.
		xMax := landauTable.x[len(landauTable.x)-1]
		return xMax * (1 - last) / (1 - u)
	}
	i := sort.SearchFloat64s(cdf, u)
	if i == 0 {
		return landauTable.x[0]
	}
	x0, x1 := landauTable.x[i-1], landauTable.x[i]
	c0, c1 := cdf[i-1], cdf[i]
	if c1 == c0 {
		return x0
	}
	return x0 + (x1-x0)*(u-c0)/(c1-c0)
}

// Laplace with location a and scale b.

func cdfLaplace(x, a, b float64) float64 {
	z := (x - a) / b
	if z < 0 {
		return math.Exp(z) / 2
	}
	return 1 - math.Exp(-z)/2
}

func idfLaplace(p, a, b float64) float64 {
	if p < 0.5 {
		return a + b*math.Log(2*p)
	}
	return a - b*math.Log(2*(1-p))
}

func pdfLaplace(x, a, b float64) float64 {
	return math.Exp(-math.Abs((x-a)/b)) / 2
}

func rvLaplace(c Context, a, b float64) float64 {
	u := c.Rand().Float64() - 0.5
	z := -math.Log(1 - 2*math.Abs(u))
	if u < 0 {
		z = -z
	}
	return a + b*z
}

// Symmetric and skewed alpha-stable variates by the
// Chambers-Mallows-Stuck method.

func rvLevy(c Context, scale, alpha float64) float64 {
	rng := c.Rand()
	u := math.Pi * (rng.Float64() - 0.5)
	if alpha == 1 {
		return scale * math.Tan(u)
	}
	if alpha == 2 {
		return scale * math.Sqrt2 * rng.NormFloat64()
	}
	w := rng.ExpFloat64()
	t := math.Sin(alpha*u) / math.Pow(math.Cos(u), 1/alpha)
	s := math.Pow(math.Cos((1-alpha)*u)/w, (1-alpha)/alpha)
	return scale * t * s
}

func rvLvskew(c Context, scale, alpha, beta float64) float64 {
	if beta == 0 {
		return rvLevy(c, scale, alpha)
	}
	rng := c.Rand()
	v := math.Pi * (rng.Float64() - 0.5)
	w := rng.ExpFloat64()
	if alpha == 1 {
		t := (math.Pi/2+beta*v)*math.Tan(v) -
			beta*math.Log(math.Pi/2*w*math.Cos(v)/(math.Pi/2+beta*v))
		return scale * t / (math.Pi / 2)
	}
	t := beta * math.Tan(math.Pi/2*alpha)
	b := math.Atan(t) / alpha
	s := math.Pow(1+t*t, 1/(2*alpha))
	x := s * math.Sin(alpha*(v+b)) / math.Pow(math.Cos(v), 1/alpha) *
		math.Pow(math.Cos(v-alpha*(v+b))/w, (1-alpha)/alpha)
	return scale * x
}

// Logistic with location a and scale b.

func cdfLogistic(x, a, b float64) float64 {
	return 1 / (1 + math.Exp(-(x-a)/b))
}

func idfLogistic(p, a, b float64) float64 {
	return a + b*math.Log(p/(1-p))
}

func pdfLogistic(x, a, b float64) float64 {
	e := math.Exp(-math.Abs((x - a) / b))
	return e / ((1 + e) * (1 + e) * b)
}

func rvLogistic(c Context, a, b float64) float64 {
	u := c.Rand().Float64()
	return a + b*math.Log(u/(1-u))
}

// Lognormal parameterized by the median m, so the underlying normal has
// mean log(m).

func cdfLnormal(x, m, s float64) float64 {
	return distuv.LogNormal{Mu: math.Log(m), Sigma: s}.CDF(x)
}

func idfLnormal(p, m, s float64) float64 {
	return distuv.LogNormal{Mu: math.Log(m), Sigma: s}.Quantile(p)
}

func pdfLnormal(x, m, s float64) float64 {
	return distuv.LogNormal{Mu: math.Log(m), Sigma: s}.Prob(x)
}

func rvLnormal(c Context, m, s float64) float64 {
	return distuv.LogNormal{Mu: math.Log(m), Sigma: s, Src: c.Rand()}.Rand()
}

// Normal with mean u and standard deviation s.

func cdfNormal(x, u, s float64) float64 {
	return unitNormal.CDF((x - u) / s)
}

func idfNormal(p, u, s float64) float64 {
	return u + s*unitNormal.Quantile(p)
}

func pdfNormal(x, u, s float64) float64 {
	return unitNormal.Prob((x-u)/s) / s
}

func rvNormal(c Context, u, s float64) float64 {
	return u + s*c.Rand().NormFloat64()
}

func cdfnorm(x float64) float64 {
	return unitNormal.CDF(x)
}

func probit(p float64) float64 {
	return unitNormal.Quantile(p)
}

// normalFn replaces each element s with a normal variate of standard
// deviation s.
func normalFn(c Context, call *CallExpr, args []*Matrix) *Matrix {
	m := args[0]
	rng := c.Rand()
	for i, s := range m.data {
		m.data[i] = s * rng.NormFloat64()
	}
	return m
}

// Upper tail of the normal, truncated at a, with standard deviation
// sigma.

func pdfNtail(x, a, sigma float64) float64 {
	if x < a {
		return 0
	}
	tail := 1 - unitNormal.CDF(a/sigma)
	return unitNormal.Prob(x/sigma) / sigma / tail
}

func rvNtail(c Context, a, sigma float64) float64 {
	rng := c.Rand()
	s := a / sigma
	if s < 1 {
		for {
			if x := rng.NormFloat64(); x >= s {
				return x * sigma
			}
		}
	}
	// Marsaglia's exponential rejection for far tails.
	for {
		u := rng.Float64()
		var v float64
		for v == 0 {
			v = rng.Float64()
		}
		x := math.Sqrt(s*s - 2*math.Log(v))
		if x*u <= s {
			return x * sigma
		}
	}
}

// Pareto with minimum a and exponent b.

func cdfPareto(x, a, b float64) float64 {
	return distuv.Pareto{Xm: a, Alpha: b}.CDF(x)
}

func idfPareto(p, a, b float64) float64 {
	return a / math.Pow(1-p, 1/b)
}

func pdfPareto(x, a, b float64) float64 {
	return distuv.Pareto{Xm: a, Alpha: b}.Prob(x)
}

func rvPareto(c Context, a, b float64) float64 {
	return a / math.Pow(1-c.Rand().Float64(), 1/b)
}

// Rayleigh with scale sigma.

func cdfRayleigh(x, sigma float64) float64 {
	return 1 - math.Exp(-x*x/(2*sigma*sigma))
}

func idfRayleigh(p, sigma float64) float64 {
	return sigma * math.Sqrt(-2*math.Log(1-p))
}

func pdfRayleigh(x, sigma float64) float64 {
	return x / (sigma * sigma) * math.Exp(-x*x/(2*sigma*sigma))
}

func rvRayleigh(c Context, sigma float64) float64 {
	return sigma * math.Sqrt(2*c.Rand().ExpFloat64())
}

// Rayleigh tail truncated at a.

func pdfRtail(x, a, sigma float64) float64 {
	if x < a {
		return 0
	}
	return x / (sigma * sigma) * math.Exp((a*a-x*x)/(2*sigma*sigma))
}

func rvRtail(c Context, a, sigma float64) float64 {
	return math.Sqrt(a*a + 2*sigma*sigma*c.Rand().ExpFloat64())
}

// Student's t.

func cdfT(x, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.CDF(x)
}

func idfT(p, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(p)
}

func pdfT(x, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Prob(x)
}

func rvT(c Context, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df, Src: c.Rand()}.Rand()
}

// Type-1 Gumbel with parameters a and b.

func cdfT1g(x, a, b float64) float64 {
	return math.Exp(-b * math.Exp(-a*x))
}

func idfT1g(p, a, b float64) float64 {
	return (math.Log(b) - math.Log(-math.Log(p))) / a
}

func pdfT1g(x, a, b float64) float64 {
	return a * b * math.Exp(-(b*math.Exp(-a*x) + a*x))
}

func rvT1g(c Context, a, b float64) float64 {
	u := c.Rand().Float64()
	return (math.Log(b) - math.Log(-math.Log(u))) / a
}

// Uniform on [a, b].

func cdfUniform(x, a, b float64) float64 {
	switch {
	case x < a:
		return 0
	case x > b:
		return 1
	}
	return (x - a) / (b - a)
}

func idfUniform(p, a, b float64) float64 {
	return a + p*(b-a)
}

func pdfUniform(x, a, b float64) float64 {
	if x < a || x > b {
		return 0
	}
	return 1 / (b - a)
}

func rvUniform(c Context, a, b float64) float64 {
	return a + c.Rand().Float64()*(b-a)
}

// Weibull with scale a and exponent b.

func cdfWeibull(x, a, b float64) float64 {
	return distuv.Weibull{Lambda: a, K: b}.CDF(x)
}

func idfWeibull(p, a, b float64) float64 {
	return a * math.Pow(-math.Log(1-p), 1/b)
}

func pdfWeibull(x, a, b float64) float64 {
	return distuv.Weibull{Lambda: a, K: b}.Prob(x)
}

func rvWeibull(c Context, a, b float64) float64 {
	return a * math.Pow(c.Rand().ExpFloat64(), 1/b)
}

// Bernoulli.

func cdfBernoulli(k, p float64) float64 {
	if k != 0 {
		return 1
	}
	return 1 - p
}

func pdfBernoulli(k, p float64) float64 {
	switch k {
	case 0:
		return 1 - p
	case 1:
		return p
	}
	return 0
}

func rvBernoulli(c Context, p float64) float64 {
	if c.Rand().Float64() < p {
		return 1
	}
	return 0
}

// Binomial with count n and probability p.

func cdfBinom(k, n, p float64) float64 {
	return distuv.Binomial{N: n, P: p}.CDF(k)
}

func pdfBinom(k, n, p float64) float64 {
	return distuv.Binomial{N: n, P: p}.Prob(k)
}

func rvBinom(c Context, n, p float64) float64 {
	return distuv.Binomial{N: n, P: p, Src: c.Rand()}.Rand()
}

// Geometric on 1, 2, ... with success probability p.

func cdfGeom(k, p float64) float64 {
	if k < 1 {
		return 0
	}
	return 1 - math.Pow(1-p, math.Floor(k))
}

func pdfGeom(k, p float64) float64 {
	return p * math.Pow(1-p, k-1)
}

func rvGeom(c Context, p float64) float64 {
	if p == 1 {
		return 1
	}
	u := c.Rand().Float64()
	return math.Floor(math.Log(u)/math.Log1p(-p)) + 1
}

// Hypergeometric: k successes drawn, a objects total, b draws,
// c successes in the population.

func lchoose(n, k float64) float64 {
	a, _ := math.Lgamma(n + 1)
	b, _ := math.Lgamma(k + 1)
	c, _ := math.Lgamma(n - k + 1)
	return a - b - c
}

func hyperProb(k, n1, n2, t float64) float64 {
	if k < math.Max(0, t-n2) || k > math.Min(t, n1) {
		return 0
	}
	return math.Exp(lchoose(n1, k) + lchoose(n2, t-k) - lchoose(n1+n2, t))
}

func cdfHyper(k, a, b, c float64) float64 {
	n1, n2, t := c, a-c, b
	sum := 0.0
	for i := math.Max(0, t-n2); i <= math.Floor(k) && i <= math.Min(t, n1); i++ {
		sum += hyperProb(i, n1, n2, t)
	}
	return math.Min(sum, 1)
}

func pdfHyper(k, a, b, c float64) float64 {
	return hyperProb(k, c, a-c, b)
}

func rvHyper(ctx Context, a, b, c float64) float64 {
	n1, n2, t := c, a-c, b
	u := ctx.Rand().Float64()
	sum := 0.0
	lo, hi := math.Max(0, t-n2), math.Min(t, n1)
	for k := lo; k < hi; k++ {
		sum += hyperProb(k, n1, n2, t)
		if u < sum {
			return k
		}
	}
	return hi
}

// Logarithmic distribution on 1, 2, ... with parameter p.

func pdfLog(k, p float64) float64 {
	return -math.Pow(p, k) / (k * math.Log1p(-p))
}

// rvLog uses Kemp's second accelerated generator.
func rvLog(c Context, p float64) float64 {
	rng := c.Rand()
	v := rng.Float64()
	if v >= p {
		return 1
	}
	lq := math.Log1p(-p)
	q := -math.Expm1(lq * rng.Float64())
	switch {
	case v <= q*q:
		return math.Floor(1 + math.Log(v)/math.Log(q))
	case v <= q:
		return 2
	}
	return 1
}

// Negative binomial: k failures before n successes, each with
// probability p.

func cdfNegbin(k, n, p float64) float64 {
	return mathext.RegIncBeta(n, math.Floor(k)+1, p)
}

func pdfNegbin(k, n, p float64) float64 {
	a, _ := math.Lgamma(n + k)
	b, _ := math.Lgamma(k + 1)
	g, _ := math.Lgamma(n)
	return math.Exp(a - b - g + n*math.Log(p) + k*math.Log1p(-p))
}

// rvNegbin draws from the gamma-Poisson mixture.
func rvNegbin(c Context, n, p float64) float64 {
	rng := c.Rand()
	mean := distuv.Gamma{Alpha: n, Beta: 1, Src: rng}.Rand() * (1 - p) / p
	if mean == 0 {
		return 0
	}
	return distuv.Poisson{Lambda: mean, Src: rng}.Rand()
}

// Poisson.

func cdfPoisson(k, mu float64) float64 {
	return distuv.Poisson{Lambda: mu}.CDF(k)
}

func pdfPoisson(k, mu float64) float64 {
	return distuv.Poisson{Lambda: mu}.Prob(k)
}

func rvPoisson(c Context, mu float64) float64 {
	return distuv.Poisson{Lambda: mu, Src: c.Rand()}.Rand()
}
