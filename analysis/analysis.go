// Package analysis runs the read, fit, predict pipeline once.
package analysis

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/wtsi-npg/simple-stats/input"
	"github.com/wtsi-npg/simple-stats/regression"
	"github.com/wtsi-npg/simple-stats/report"
	"github.com/wtsi-npg/simple-stats/telemetry"
	"github.com/wtsi-npg/simple-stats/types"
)

// Analysis fits a line to samples read from a stream and evaluates it at a
// fixed set of points.
type Analysis struct {
	logger  zerolog.Logger
	solver  regression.Solver
	points  []regression.EvalPoint
	base    float64
	metrics *telemetry.Metrics
}

// New returns an Analysis. metrics may be nil.
func New(
	logger zerolog.Logger,
	solver regression.Solver,
	points []regression.EvalPoint,
	base float64,
	metrics *telemetry.Metrics,
) *Analysis {
	return &Analysis{
		logger:  logger.With().Str("module", "analysis").Logger(),
		solver:  solver,
		points:  points,
		base:    base,
		metrics: metrics,
	}
}

// Run reads all of r, fits the model and returns the fit with its
// predictions. Any error aborts the run.
func (a *Analysis) Run(r io.Reader) (report.Report, error) {
	samples, lines, err := input.ScanSamples(r)
	a.metrics.IncrCounter([]string{"input", "lines"}, float32(lines))
	if err != nil {
		a.metrics.IncrCounter([]string{"input", "error"}, 1)
		return report.Report{}, err
	}
	a.metrics.IncrCounter([]string{"input", "samples"}, float32(samples.Len()))
	a.logger.Debug().Int("samples", samples.Len()).Msg("input read")

	fit, err := a.Fit(samples)
	if err != nil {
		return report.Report{}, err
	}

	predictions := regression.Predict(fit, a.points, a.base)
	for _, p := range predictions {
		a.logger.Debug().
			Str("label", p.Label).
			Float64("point", p.Point).
			Float64("value", p.Value).
			Float64("back_transform", p.BackTransform).
			Msg("prediction")
	}

	return report.Report{Fit: fit, Predictions: predictions}, nil
}

// Fit fits samples with the configured solver.
func (a *Analysis) Fit(samples types.Samples) (regression.Fit, error) {
	defer a.metrics.MeasureSince([]string{"fit", "duration"}, time.Now())

	fit, err := regression.FitSamples(samples, a.solver)
	if err != nil {
		a.metrics.IncrCounter([]string{"fit", "error"}, 1)
		a.logger.Error().Err(err).Int("samples", samples.Len()).Msg("failed to fit model")
		return regression.Fit{}, err
	}

	a.metrics.SetGauge([]string{"fit", "r_squared"}, float32(fit.Summary.RSquared))
	a.logger.Info().
		Str("solver", a.solver.Name()).
		Float64("intercept", fit.Intercept).
		Float64("slope", fit.Slope).
		Float64("r_squared", fit.Summary.RSquared).
		Msg("model fitted")

	return fit, nil
}
