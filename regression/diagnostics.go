package regression

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/wtsi-npg/simple-stats/util"
)

// minOmnibusSamples is the smallest sample for which the skewness test
// behind the omnibus statistic is valid.
const minOmnibusSamples = 8

// normalityTestDF is the degrees of freedom of the χ² reference distribution
// for both the omnibus and Jarque-Bera statistics.
const normalityTestDF = 2

// omnibusNormTest returns D'Agostino and Pearson's K² statistic for the
// residuals and its χ²(2) p-value. Both are NaN for fewer than
// minOmnibusSamples residuals.
//
// Ref: D'Agostino, R. B. and Pearson, E. S. (1973), "Tests for departure from
// normality", Biometrika 60, 613-622.
func omnibusNormTest(resid []float64) (float64, float64) {
	if len(resid) < minOmnibusSamples {
		return math.NaN(), math.NaN()
	}

	zs := skewTest(resid)
	zk := kurtosisTest(resid)
	k2 := zs*zs + zk*zk

	return k2, survival(distuv.ChiSquared{K: normalityTestDF}, k2)
}

// skewTest returns the z-score of the sample skewness.
func skewTest(numbers []float64) float64 {
	n := float64(len(numbers))
	b2 := util.CalcSkewness(numbers)

	y := b2 * math.Sqrt(((n+1)*(n+3))/(6*(n-2)))
	beta2 := (3 * (n*n + 27*n - 70) * (n + 1) * (n + 3)) /
		((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		y = 1
	}
	ya := y / alpha

	return delta * math.Log(ya+math.Sqrt(ya*ya+1))
}

// kurtosisTest returns the z-score of the sample (Pearson) kurtosis.
func kurtosisTest(numbers []float64) float64 {
	n := float64(len(numbers))
	b2 := util.CalcKurtosis(numbers)

	e := 3 * (n - 1) / (n + 1)
	varb2 := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	x := (b2 - e) / math.Sqrt(varb2)
	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) *
		math.Sqrt((6*(n+3)*(n+5))/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	term1 := 1 - 2/(9*a)
	denom := 1 + x*math.Sqrt(2/(a-4))
	if denom == 0 {
		return math.NaN()
	}
	term2 := math.Cbrt((1 - 2/a) / denom)

	return (term1 - term2) / math.Sqrt(2/(9*a))
}

// jarqueBera returns the Jarque-Bera statistic for the given skewness and
// Pearson kurtosis of n residuals, and its χ²(2) p-value.
func jarqueBera(n int, skew, kurtosis float64) (float64, float64) {
	excess := kurtosis - 3
	jb := float64(n) / 6 * (skew*skew + excess*excess/4)
	return jb, survival(distuv.ChiSquared{K: normalityTestDF}, jb)
}

// durbinWatson returns Σ (e_i - e_{i-1})² / Σ e_i².
func durbinWatson(resid []float64) float64 {
	diffs := 0.0
	for i := 1; i < len(resid); i++ {
		d := resid[i] - resid[i-1]
		diffs += d * d
	}
	return diffs / sumSquares(resid)
}

// conditionNumber returns sqrt(λmax / λmin) of XᵀX for the design matrix
// X = [1 x]. NaN is returned if the eigen decomposition fails.
func conditionNumber(xs []float64) float64 {
	X := designMatrix(xs)

	var xtx mat.SymDense
	xtx.SymOuterK(1, X.T())

	var eig mat.EigenSym
	if ok := eig.Factorize(&xtx, false); !ok {
		return math.NaN()
	}
	values := eig.Values(nil)

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return math.Sqrt(hi / lo)
}
