package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/wtsi-npg/simple-stats/types"
)

const tolerance = 1e-9

type FitTestSuite struct {
	suite.Suite

	solver Solver
}

func TestClosedFormSuite(t *testing.T) {
	suite.Run(t, &FitTestSuite{solver: ClosedForm{}})
}

func TestQRSuite(t *testing.T) {
	suite.Run(t, &FitTestSuite{solver: QR{}})
}

func TestGonumStatSuite(t *testing.T) {
	suite.Run(t, &FitTestSuite{solver: GonumStat{}})
}

// noisyLine returns 20 points around y = 3 + 0.5x.
func noisyLine() types.Samples {
	s := types.NewSamples(20)
	for i := 0; i < 20; i++ {
		x := float64(i) / 2
		s.Append(x, 3+0.5*x+math.Sin(float64(i)))
	}
	return s
}

func (fts *FitTestSuite) TestPerfectLine() {
	samples := types.Samples{X: []float64{1, 2, 3}, Y: []float64{2, 4, 6}}

	fit, err := FitSamples(samples, fts.solver)
	fts.Require().NoError(err)
	fts.Require().InDelta(0, fit.Intercept, tolerance)
	fts.Require().InDelta(2, fit.Slope, tolerance)
	fts.Require().InDelta(1, fit.Summary.RSquared, tolerance)
	fts.Require().Equal(3, fit.Summary.NumObservations)
	fts.Require().Equal(fts.solver.Name(), fit.Summary.Solver)

	predictions := Predict(fit, DefaultEvalPoints(), DefaultBase)
	fts.Require().Len(predictions, 2)
	fts.Require().InDelta(4, predictions[0].Value, tolerance)
	fts.Require().InDelta(10000, predictions[0].BackTransform, 1e-6)
	fts.Require().InDelta(6, predictions[1].Value, tolerance)
	fts.Require().InDelta(1e6, predictions[1].BackTransform, 1e-3)
}

func (fts *FitTestSuite) TestNormalEquations() {
	samples := noisyLine()

	fit, err := FitSamples(samples, fts.solver)
	fts.Require().NoError(err)

	var sumResid, sumResidX float64
	for i, r := range fit.Residuals {
		sumResid += r
		sumResidX += r * samples.X[i]
	}
	fts.Require().InDelta(0, sumResid, 1e-9)
	fts.Require().InDelta(0, sumResidX, 1e-9)
}

func (fts *FitTestSuite) TestDeterministic() {
	first, err := FitSamples(noisyLine(), fts.solver)
	fts.Require().NoError(err)
	second, err := FitSamples(noisyLine(), fts.solver)
	fts.Require().NoError(err)

	fts.Require().Equal(first.Intercept, second.Intercept)
	fts.Require().Equal(first.Slope, second.Slope)
}

func (fts *FitTestSuite) TestTwoSamples() {
	fit, err := FitSamples(types.Samples{X: []float64{1, 3}, Y: []float64{5, 1}}, fts.solver)
	fts.Require().NoError(err)

	fts.Require().InDelta(7, fit.Intercept, tolerance)
	fts.Require().InDelta(-2, fit.Slope, tolerance)
	for _, r := range fit.Residuals {
		fts.Require().InDelta(0, r, tolerance)
	}
	fts.Require().InDelta(1, fit.Summary.RSquared, tolerance)
	fts.Require().Zero(fit.Summary.DFResidual)
	fts.Require().True(math.IsNaN(fit.Summary.ResidualStdErr))
	fts.Require().True(math.IsNaN(fit.Summary.Coefficients[1].StdErr))
	fts.Require().True(math.IsNaN(fit.Summary.Coefficients[1].PValue))
	fts.Require().True(math.IsNaN(fit.Summary.FStatistic))
	fts.Require().True(math.IsNaN(fit.Summary.Omnibus))
}

func (fts *FitTestSuite) TestDegenerate() {
	_, err := FitSamples(types.Samples{X: []float64{1}, Y: []float64{1}}, fts.solver)
	fts.Require().ErrorIs(err, types.ErrTooFewSamples)

	_, err = FitSamples(types.Samples{}, fts.solver)
	fts.Require().ErrorIs(err, types.ErrTooFewSamples)

	_, err = FitSamples(types.Samples{X: []float64{2, 2, 2}, Y: []float64{1, 2, 3}}, fts.solver)
	fts.Require().ErrorIs(err, types.ErrSingularFit)

	// The mean of 0.1, 0.1, 0.1 is not exactly 0.1, so Sxx is tiny but not 0.
	_, err = FitSamples(types.Samples{X: []float64{0.1, 0.1, 0.1}, Y: []float64{1, 2, 3}}, fts.solver)
	fts.Require().ErrorIs(err, types.ErrSingularFit)

	_, err = FitSamples(types.Samples{X: []float64{1, 2, 3}, Y: []float64{1, 2}}, fts.solver)
	fts.Require().ErrorIs(err, types.ErrLengthMismatch)
}

func TestSolversAgree(t *testing.T) {
	samples := noisyLine()

	reference, err := FitSamples(samples, ClosedForm{})
	require.NoError(t, err)

	for _, name := range SupportedSolvers {
		solver, err := NewSolver(name)
		require.NoError(t, err)

		fit, err := FitSamples(samples, solver)
		require.NoError(t, err)
		require.InDelta(t, reference.Intercept, fit.Intercept, 1e-9, name)
		require.InDelta(t, reference.Slope, fit.Slope, 1e-9, name)
	}
}

func TestSolversRejectConstantPredictor(t *testing.T) {
	xs := []float64{0.1, 0.1, 0.1}
	ys := []float64{1, 2, 3}

	for _, solver := range []Solver{ClosedForm{}, QR{}, GonumStat{}} {
		_, _, err := solver.Solve(xs, ys)
		require.ErrorIs(t, err, types.ErrSingularFit, solver.Name())
	}
}

func TestGonumStatRejectsNaNCoefficients(t *testing.T) {
	_, _, err := GonumStat{}.Solve([]float64{1, 2, 3}, []float64{1, math.NaN(), 3})
	require.ErrorIs(t, err, types.ErrSingularFit)
}

func TestNewSolverUnknown(t *testing.T) {
	_, err := NewSolver("lasso")
	require.ErrorIs(t, err, types.ErrUnknownSolver)
}

// TestSummaryStatistics checks the summary of y = (1, 3, 2) on x = (1, 2, 3).
// With one residual degree of freedom the t distribution is Cauchy, so the
// two-sided p-value of t is 1 - 2/π·atan(|t|).
func TestSummaryStatistics(t *testing.T) {
	samples := types.Samples{X: []float64{1, 2, 3}, Y: []float64{1, 3, 2}}

	fit, err := FitSamples(samples, ClosedForm{})
	require.NoError(t, err)

	s := fit.Summary
	require.InDelta(t, 1, fit.Intercept, tolerance)
	require.InDelta(t, 0.5, fit.Slope, tolerance)
	require.InDeltaSlice(t, []float64{-0.5, 1, -0.5}, fit.Residuals, tolerance)

	require.Equal(t, 1, s.DFResidual)
	require.Equal(t, 1, s.DFModel)
	require.InDelta(t, 0.25, s.RSquared, tolerance)
	require.InDelta(t, -0.5, s.AdjRSquared, tolerance)
	require.InDelta(t, math.Sqrt(1.5), s.ResidualStdErr, tolerance)

	intercept, slope := s.Coefficients[0], s.Coefficients[1]
	require.Equal(t, "const", intercept.Name)
	require.Equal(t, "x1", slope.Name)
	require.InDelta(t, math.Sqrt(3.5), intercept.StdErr, tolerance)
	require.InDelta(t, math.Sqrt(0.75), slope.StdErr, tolerance)
	require.InDelta(t, 1/math.Sqrt(3), slope.TValue, tolerance)
	require.InDelta(t, 2.0/3, slope.PValue, 1e-9)
	require.InDelta(t, 1-2/math.Pi*math.Atan(intercept.TValue), intercept.PValue, 1e-9)

	tCritical := math.Tan(0.475 * math.Pi)
	require.InDelta(t, 0.5-tCritical*slope.StdErr, slope.CILower, 1e-6)
	require.InDelta(t, 0.5+tCritical*slope.StdErr, slope.CIUpper, 1e-6)

	// F = t² for a single predictor.
	require.InDelta(t, slope.TValue*slope.TValue, s.FStatistic, tolerance)
	require.InDelta(t, slope.PValue, s.FPValue, 1e-9)

	require.InDelta(t, -3.2170948287741004, s.LogLikelihood, tolerance)
	require.InDelta(t, 10.434189657548201, s.AIC, 1e-9)
	require.InDelta(t, 6.434189657548201+2*math.Log(3), s.BIC, 1e-9)

	require.InDelta(t, 3, s.DurbinWatson, tolerance)
	require.InDelta(t, 1/math.Sqrt(2), s.Skew, tolerance)
	require.InDelta(t, 1.5, s.Kurtosis, tolerance)
	require.InDelta(t, 0.53125, s.JarqueBera, tolerance)
	require.InDelta(t, math.Exp(-0.53125/2), s.JarqueBeraPValue, 1e-9)
	require.InDelta(t, 6.793010808505649, s.ConditionNumber, 1e-9)

	require.True(t, math.IsNaN(s.Omnibus))
	require.True(t, math.IsNaN(s.OmnibusPValue))
}

func TestOmnibus(t *testing.T) {
	fit, err := FitSamples(noisyLine(), ClosedForm{})
	require.NoError(t, err)

	require.False(t, math.IsNaN(fit.Summary.Omnibus))
	require.GreaterOrEqual(t, fit.Summary.Omnibus, 0.0)
	require.GreaterOrEqual(t, fit.Summary.OmnibusPValue, 0.0)
	require.LessOrEqual(t, fit.Summary.OmnibusPValue, 1.0)
}

func TestFitString(t *testing.T) {
	fit := Fit{Intercept: 1.5, Slope: -2}
	require.Equal(t, "f(x) = 1.5 + -2 * x", fit.String())
}
