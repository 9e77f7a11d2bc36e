// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtx-lang/mtx/config"
	"github.com/mtx-lang/mtx/exec"
	"github.com/mtx-lang/mtx/value"
)

// distScalar evaluates a distribution function on scalar arguments.
func distScalar(t *testing.T, c *exec.Context, name string, args ...float64) float64 {
	t.Helper()
	exprs := make([]value.Expr, len(args))
	for i, a := range args {
		exprs[i] = num(a)
	}
	m := callFn(t, c, name, exprs...)
	require.True(t, m.IsScalar(), "%s result", name)
	return m.ScalarValue()
}

// The parameter conventions differ from the underlying distributions
// in several families; these known values pin the mappings down.

func TestGammaParameters(t *testing.T) {
	c := newContext()
	// The third argument is the rate: shape 1, rate 2 at x = 0.5 is
	// the unit exponential at 1.
	require.InDelta(t, 1-math.Exp(-1), distScalar(t, c, "CDF.GAMMA", 0.5, 1, 2), 1e-12)
	require.InDelta(t, 0.5, distScalar(t, c, "IDF.GAMMA", 1-math.Exp(-1), 1, 2), 1e-10)
	require.InDelta(t, 2*math.Exp(-1), distScalar(t, c, "PDF.GAMMA", 0.5, 1, 2), 1e-12)
}

func TestExpParameters(t *testing.T) {
	c := newContext()
	// The second argument is the rate.
	require.InDelta(t, 1-math.Exp(-1), distScalar(t, c, "CDF.EXP", 0.5, 2), 1e-12)
	require.InDelta(t, 0.5, distScalar(t, c, "IDF.EXP", 1-math.Exp(-1), 2), 1e-12)
}

func TestParetoParameters(t *testing.T) {
	c := newContext()
	// Minimum 1, exponent 3: CDF(x) = 1 - (1/x)**3.
	require.InDelta(t, 0.875, distScalar(t, c, "CDF.PARETO", 2, 1, 3), 1e-12)
	require.InDelta(t, 2, distScalar(t, c, "IDF.PARETO", 0.875, 1, 3), 1e-12)
	require.InDelta(t, 3.0/16, distScalar(t, c, "PDF.PARETO", 2, 1, 3), 1e-12)
}

func TestLnormalParameters(t *testing.T) {
	c := newContext()
	// The second argument is the median, not the log-scale mean.
	require.InDelta(t, 0.5, distScalar(t, c, "CDF.LNORMAL", 3, 3, 2), 1e-12)
	// One log-sigma above the median.
	require.InDelta(t, 0.8413447460685429,
		distScalar(t, c, "CDF.LNORMAL", 2*math.E, 2, 1), 1e-12)
	require.InDelta(t, 3, distScalar(t, c, "IDF.LNORMAL", 0.5, 3, 2), 1e-10)
}

func TestHyperParameters(t *testing.T) {
	c := newContext()
	// (k, total, draws, successes): 4 draws from 10 objects of which
	// 5 are successes. P(0) = 5/210, P(1) = 50/210.
	require.InDelta(t, 55.0/210, distScalar(t, c, "CDF.HYPER", 1, 10, 4, 5), 1e-12)
	require.InDelta(t, 50.0/210, distScalar(t, c, "PDF.HYPER", 1, 10, 4, 5), 1e-12)
	require.InDelta(t, 1, distScalar(t, c, "CDF.HYPER", 4, 10, 4, 5), 1e-12)
}

func TestBernoulli(t *testing.T) {
	c := newContext()
	require.InDelta(t, 0.7, distScalar(t, c, "CDF.BERNOULLI", 0, 0.3), 1e-12)
	require.InDelta(t, 1, distScalar(t, c, "CDF.BERNOULLI", 1, 0.3), 1e-12)
	require.InDelta(t, 0.3, distScalar(t, c, "PDF.BERNOULLI", 1, 0.3), 1e-12)
}

func TestGumbelFamilies(t *testing.T) {
	c := newContext()
	// CDF(x) = exp(-b exp(-a x)), and the type-2 names share the
	// type-1 implementation.
	want := math.Exp(-3 * math.Exp(-2*1.5))
	require.InDelta(t, want, distScalar(t, c, "CDF.T1G", 1.5, 2, 3), 1e-12)
	require.Equal(t,
		distScalar(t, c, "CDF.T1G", 1.5, 2, 3),
		distScalar(t, c, "CDF.T2G", 1.5, 2, 3))
	require.Equal(t,
		distScalar(t, c, "IDF.T1G", 0.25, 2, 3),
		distScalar(t, c, "IDF.T2G", 0.25, 2, 3))
}

func TestNormalFamily(t *testing.T) {
	c := newContext()
	require.InDelta(t, 0.5, distScalar(t, c, "CDFNORM", 0), 1e-12)
	require.InDelta(t, 0.975, distScalar(t, c, "CDFNORM", 1.959963984540054), 1e-12)
	require.InDelta(t, 4.919927969080108, distScalar(t, c, "IDF.NORMAL", 0.975, 1, 2), 1e-10)
	require.InDelta(t, 0.975, distScalar(t, c, "CDF.NORMAL", 4.919927969080108, 1, 2), 1e-12)
}

func TestSigTails(t *testing.T) {
	c := newContext()
	// SIG.CHISQ is the upper tail: exp(-x/2) for 2 degrees of freedom.
	require.InDelta(t, math.Exp(-1), distScalar(t, c, "SIG.CHISQ", 2, 2), 1e-12)
	require.InDelta(t, 1-distScalar(t, c, "CDF.F", 1.5, 3, 7),
		distScalar(t, c, "SIG.F", 1.5, 3, 7), 1e-12)
}

func TestRvSeeding(t *testing.T) {
	draw := func(seed uint64) []float64 {
		conf := &config.Config{}
		conf.SetSeed(seed)
		c := exec.NewContext(conf)
		var out []float64
		for i := 0; i < 3; i++ {
			u := distScalar(t, c, "RV.UNIFORM", 0, 10)
			require.GreaterOrEqual(t, u, 0.0)
			require.Less(t, u, 10.0)
			out = append(out, u)
		}
		return out
	}
	require.Equal(t, draw(42), draw(42))
	require.NotEqual(t, draw(42), draw(43))

	c := newContext()
	b := distScalar(t, c, "RV.BERNOULLI", 0.5)
	require.Contains(t, []float64{0, 1}, b)
}
