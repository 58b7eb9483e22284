// Package regression fits a simple linear model y = intercept + slope*x by
// ordinary least squares and derives the usual summary statistics.
package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/wtsi-npg/simple-stats/types"
	"github.com/wtsi-npg/simple-stats/util"
)

const (
	// numParams is the number of fitted coefficients (intercept and slope).
	numParams = 2

	// confidenceLevel is the coverage of the reported coefficient intervals.
	confidenceLevel = 0.95
)

type (
	// Fit is the result of a least-squares fit. It is never modified after
	// Fit returns it.
	Fit struct {
		Intercept float64   `yaml:"intercept"`
		Slope     float64   `yaml:"slope"`
		Residuals []float64 `yaml:"-"`
		Summary   Summary   `yaml:"summary"`
	}

	// Coefficient describes one fitted parameter.
	Coefficient struct {
		Name     string  `yaml:"name"`
		Estimate float64 `yaml:"estimate"`
		StdErr   float64 `yaml:"std_err"`
		TValue   float64 `yaml:"t"`
		PValue   float64 `yaml:"p_value"`
		CILower  float64 `yaml:"ci_lower"`
		CIUpper  float64 `yaml:"ci_upper"`
	}

	// Summary holds the goodness-of-fit and residual statistics of a Fit.
	// Statistics that are undefined for the input (for example anything
	// depending on the residual variance when N = 2) are NaN.
	Summary struct {
		Solver          string        `yaml:"solver"`
		NumObservations int           `yaml:"num_observations"`
		DFResidual      int           `yaml:"df_residual"`
		DFModel         int           `yaml:"df_model"`
		Coefficients    []Coefficient `yaml:"coefficients"`

		RSquared       float64 `yaml:"r_squared"`
		AdjRSquared    float64 `yaml:"adj_r_squared"`
		FStatistic     float64 `yaml:"f_statistic"`
		FPValue        float64 `yaml:"f_p_value"`
		LogLikelihood  float64 `yaml:"log_likelihood"`
		AIC            float64 `yaml:"aic"`
		BIC            float64 `yaml:"bic"`
		ResidualStdErr float64 `yaml:"residual_std_err"`

		Omnibus          float64 `yaml:"omnibus"`
		OmnibusPValue    float64 `yaml:"omnibus_p_value"`
		Skew             float64 `yaml:"skew"`
		Kurtosis         float64 `yaml:"kurtosis"`
		DurbinWatson     float64 `yaml:"durbin_watson"`
		JarqueBera       float64 `yaml:"jarque_bera"`
		JarqueBeraPValue float64 `yaml:"jarque_bera_p_value"`
		ConditionNumber  float64 `yaml:"condition_number"`
	}
)

// FitSamples fits samples.Y on samples.X with the given solver.
//
// It returns ErrLengthMismatch when X and Y differ in length,
// ErrTooFewSamples for fewer than two observations and ErrSingularFit when
// every predictor value is the same.
func FitSamples(samples types.Samples, solver Solver) (Fit, error) {
	if err := samples.Validate(); err != nil {
		return Fit{}, err
	}

	n := samples.Len()
	if n < numParams {
		return Fit{}, types.ErrTooFewSamples.Wrapf("got %d", n)
	}

	xs, ys := samples.X, samples.Y
	if util.IsConstant(xs) {
		return Fit{}, types.ErrSingularFit.Wrapf("all %d predictor values equal %g", n, xs[0])
	}
	sxx := util.CalcSumOfSquares(xs)

	intercept, slope, err := solver.Solve(xs, ys)
	if err != nil {
		return Fit{}, err
	}

	fit := Fit{
		Intercept: intercept,
		Slope:     slope,
		Residuals: make([]float64, n),
	}
	for i := range xs {
		fit.Residuals[i] = ys[i] - fit.PredictY(xs[i])
	}
	fit.Summary = summarize(solver.Name(), xs, ys, sxx, fit)

	return fit, nil
}

// PredictY evaluates the fitted line at x.
func (f Fit) PredictY(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// String returns the fitted function.
func (f Fit) String() string {
	return fmt.Sprintf("f(x) = %g + %g * x", f.Intercept, f.Slope)
}

func summarize(solverName string, xs, ys []float64, sxx float64, fit Fit) Summary {
	var (
		n         = len(xs)
		nf        = float64(n)
		dfResid   = n - numParams
		dfModel   = numParams - 1
		ssr       = sumSquares(fit.Residuals)
		sst       = util.CalcSumOfSquares(ys)
		ssm       = sst - ssr
		meanX     = util.CalcMean(xs)
		sigma2    = math.NaN()
		tCritical = math.NaN()
	)

	if dfResid > 0 {
		sigma2 = ssr / float64(dfResid)
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfResid)}
		tCritical = t.Quantile(1 - (1-confidenceLevel)/2)
	}

	s := Summary{
		Solver:          solverName,
		NumObservations: n,
		DFResidual:      dfResid,
		DFModel:         dfModel,
		Coefficients: []Coefficient{
			coefficient("const", fit.Intercept, math.Sqrt(sigma2*(1/nf+meanX*meanX/sxx)), dfResid, tCritical),
			coefficient("x1", fit.Slope, math.Sqrt(sigma2/sxx), dfResid, tCritical),
		},
		RSquared:       1 - ssr/sst,
		AdjRSquared:    math.NaN(),
		FStatistic:     math.NaN(),
		FPValue:        math.NaN(),
		ResidualStdErr: math.Sqrt(sigma2),
	}

	if dfResid > 0 {
		s.AdjRSquared = 1 - (nf-1)/float64(dfResid)*(1-s.RSquared)
		s.FStatistic = (ssm / float64(dfModel)) / sigma2
		s.FPValue = survival(distuv.F{D1: float64(dfModel), D2: float64(dfResid)}, s.FStatistic)
	}

	// Gaussian log-likelihood evaluated at the maximum likelihood variance.
	s.LogLikelihood = -nf/2*math.Log(2*math.Pi) - nf/2*math.Log(ssr/nf) - nf/2
	s.AIC = -2*s.LogLikelihood + 2*numParams
	s.BIC = -2*s.LogLikelihood + math.Log(nf)*numParams

	s.Skew = util.CalcSkewness(fit.Residuals)
	s.Kurtosis = util.CalcKurtosis(fit.Residuals)
	s.Omnibus, s.OmnibusPValue = omnibusNormTest(fit.Residuals)
	s.JarqueBera, s.JarqueBeraPValue = jarqueBera(n, s.Skew, s.Kurtosis)
	s.DurbinWatson = durbinWatson(fit.Residuals)
	s.ConditionNumber = conditionNumber(xs)

	return s
}

func coefficient(name string, estimate, stdErr float64, df int, tCritical float64) Coefficient {
	c := Coefficient{
		Name:     name,
		Estimate: estimate,
		StdErr:   stdErr,
		TValue:   estimate / stdErr,
		PValue:   math.NaN(),
		CILower:  estimate - tCritical*stdErr,
		CIUpper:  estimate + tCritical*stdErr,
	}
	if df > 0 {
		c.PValue = 2 * survival(distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}, math.Abs(c.TValue))
	}
	return c
}

// survival returns the upper tail probability of d at x, mapping +Inf to 0 and
// NaN to NaN without consulting d.
func survival(d interface{ Survival(float64) float64 }, x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case math.IsInf(x, 1):
		return 0
	}
	return d.Survival(x)
}

func sumSquares(numbers []float64) float64 {
	sum := 0.0
	for _, num := range numbers {
		sum += num * num
	}
	return sum
}
