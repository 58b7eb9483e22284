package regression

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/wtsi-npg/simple-stats/types"
	"github.com/wtsi-npg/simple-stats/util"
)

const (
	SolverClosedForm = "closed-form"
	SolverQR         = "qr"
	SolverGonumStat  = "gonum-stat"
)

var (
	_ Solver = ClosedForm{}
	_ Solver = QR{}
	_ Solver = GonumStat{}

	// SupportedSolvers lists the solver names accepted by NewSolver.
	SupportedSolvers = []string{SolverClosedForm, SolverQR, SolverGonumStat}
)

// Solver computes the least-squares intercept and slope of ys on xs. Callers
// guarantee len(xs) == len(ys) >= 2 and that xs is not constant.
type Solver interface {
	Name() string
	Solve(xs, ys []float64) (intercept, slope float64, err error)
}

// NewSolver returns the Solver registered under name.
func NewSolver(name string) (Solver, error) {
	switch name {
	case SolverClosedForm:
		return ClosedForm{}, nil
	case SolverQR:
		return QR{}, nil
	case SolverGonumStat:
		return GonumStat{}, nil
	default:
		return nil, types.ErrUnknownSolver.Wrapf("%q, expected one of %v", name, SupportedSolvers)
	}
}

// ClosedForm solves the normal equations directly:
// slope = Sxy / Sxx, intercept = mean(y) - slope * mean(x).
type ClosedForm struct{}

func (ClosedForm) Name() string { return SolverClosedForm }

func (ClosedForm) Solve(xs, ys []float64) (float64, float64, error) {
	if util.IsConstant(xs) {
		return 0, 0, types.ErrSingularFit
	}
	sxx := util.CalcSumOfSquares(xs)
	slope := util.CalcCrossProducts(xs, ys) / sxx
	intercept := util.CalcMean(ys) - slope*util.CalcMean(xs)
	return intercept, slope, nil
}

// QR solves the overdetermined system [1 x] * coef = y in the least-squares
// sense using gonum's QR based SolveVec.
type QR struct{}

func (QR) Name() string { return SolverQR }

func (QR) Solve(xs, ys []float64) (float64, float64, error) {
	if util.IsConstant(xs) {
		return 0, 0, types.ErrSingularFit
	}
	X := designMatrix(xs)
	Y := mat.NewVecDense(len(ys), append([]float64(nil), ys...))

	var coef mat.VecDense
	if err := coef.SolveVec(X, Y); err != nil {
		return 0, 0, types.ErrSingularFit.Wrap(err.Error())
	}

	return coef.AtVec(0), coef.AtVec(1), nil
}

// GonumStat delegates to stat.LinearRegression.
type GonumStat struct{}

func (GonumStat) Name() string { return SolverGonumStat }

func (GonumStat) Solve(xs, ys []float64) (float64, float64, error) {
	if util.IsConstant(xs) {
		return 0, 0, types.ErrSingularFit
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return 0, 0, types.ErrSingularFit.Wrap("gonum linear regression returned NaN coefficients")
	}
	return alpha, beta, nil
}

// designMatrix returns the n×2 matrix with a constant column followed by xs.
func designMatrix(xs []float64) *mat.Dense {
	X := mat.NewDense(len(xs), 2, nil)
	for i, x := range xs {
		X.Set(i, 0, 1) // constant term
		X.Set(i, 1, x)
	}
	return X
}
