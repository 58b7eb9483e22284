package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wtsi-npg/simple-stats/regression"
	"github.com/wtsi-npg/simple-stats/report"
)

const (
	defaultServiceName = "simple-stats"

	SampleConfigPath = "simple-stats.example.toml"
)

var validate = validator.New()

type (
	// Config defines all simple-stats configuration parameters.
	Config struct {
		Solver      string                 `mapstructure:"solver" validate:"required"`
		Output      string                 `mapstructure:"output" validate:"required"`
		Base        float64                `mapstructure:"base" validate:"gt=0,ne=1"`
		Predictions []regression.EvalPoint `mapstructure:"predictions" validate:"required,gt=0,unique=Label,dive"`
		Telemetry   Telemetry              `mapstructure:"telemetry"`
	}

	// Telemetry defines the run metrics configuration.
	Telemetry struct {
		Enabled     bool   `mapstructure:"enabled"`
		ServiceName string `mapstructure:"service_name"`
	}
)

// Default returns the configuration used when no file is given: the
// closed-form solver, text output and predictions at log10(100) and
// log10(1000) back-transformed with base 10.
func Default() Config {
	cfg := Config{Base: regression.DefaultBase}
	cfg.setDefaults()
	return cfg
}

// telemetryValidation is custom validation for the Telemetry struct.
func telemetryValidation(sl validator.StructLevel) {
	tel := sl.Current().Interface().(Telemetry)

	if tel.Enabled && len(tel.ServiceName) == 0 {
		sl.ReportError(tel.ServiceName, "service_name", "ServiceName", "enabledNoServiceName", "")
	}
}

// Validate returns an error if the Config object is invalid.
func (c Config) Validate() (err error) {
	if _, err = regression.NewSolver(c.Solver); err != nil {
		return err
	}

	if _, err = report.ParseFormat(c.Output); err != nil {
		return err
	}

	validate.RegisterStructValidation(telemetryValidation, Telemetry{})
	return validate.Struct(c)
}

func (c *Config) setDefaults() {
	if c.Solver == "" {
		c.Solver = regression.SolverClosedForm
	}
	if c.Output == "" {
		c.Output = report.FormatText
	}
	if len(c.Predictions) == 0 {
		c.Predictions = regression.DefaultEvalPoints()
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = defaultServiceName
	}
}

// parseEvalPoint parses the compact "<label>=<point>" form used by
// environment variables and flags, e.g. "100=2".
func parseEvalPoint(s string) (regression.EvalPoint, error) {
	label, point, ok := strings.Cut(s, "=")
	if !ok {
		return regression.EvalPoint{}, fmt.Errorf("prediction %q must have the form <label>=<point>", s)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(point), 64)
	if err != nil {
		return regression.EvalPoint{}, fmt.Errorf("prediction %q has a non numeric point: %w", s, err)
	}

	return regression.EvalPoint{Label: strings.TrimSpace(label), Point: v}, nil
}
