package regression

import "math"

// DefaultBase is the base of the logarithm the response is assumed to have
// been transformed with before fitting.
const DefaultBase = 10.0

type (
	// EvalPoint is a labelled predictor value at which the model is
	// evaluated. The label names the quantity on its original scale.
	EvalPoint struct {
		Label string  `mapstructure:"label" yaml:"label" validate:"required"`
		Point float64 `mapstructure:"point" yaml:"point"`
	}

	// Prediction is the fitted value at an EvalPoint together with its
	// back-transform base^Value.
	Prediction struct {
		Label         string  `yaml:"label"`
		Point         float64 `yaml:"point"`
		Value         float64 `yaml:"value"`
		BackTransform float64 `yaml:"back_transform"`
	}
)

// DefaultEvalPoints returns log10(100) and log10(1000) labelled "100" and
// "1000".
func DefaultEvalPoints() []EvalPoint {
	return []EvalPoint{
		{Label: "100", Point: 2},
		{Label: "1000", Point: 3},
	}
}

// Predict evaluates fit at every point and back-transforms the result with
// base^value.
func Predict(fit Fit, points []EvalPoint, base float64) []Prediction {
	predictions := make([]Prediction, 0, len(points))
	for _, p := range points {
		value := fit.PredictY(p.Point)
		predictions = append(predictions, Prediction{
			Label:         p.Label,
			Point:         p.Point,
			Value:         value,
			BackTransform: math.Pow(base, value),
		})
	}
	return predictions
}
