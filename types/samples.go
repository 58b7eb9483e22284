package types

// Samples holds paired predictor (X) and response (Y) observations in input
// order. X and Y always have the same length.
type Samples struct {
	X []float64
	Y []float64
}

// NewSamples returns Samples with room for n observations.
func NewSamples(n int) Samples {
	return Samples{
		X: make([]float64, 0, n),
		Y: make([]float64, 0, n),
	}
}

// Append adds one observation.
func (s *Samples) Append(x, y float64) {
	s.X = append(s.X, x)
	s.Y = append(s.Y, y)
}

// Len returns the number of observations.
func (s Samples) Len() int {
	return len(s.X)
}

// Validate returns ErrLengthMismatch if X and Y do not pair up.
func (s Samples) Validate() error {
	if len(s.X) != len(s.Y) {
		return ErrLengthMismatch.Wrapf("%d predictors, %d responses", len(s.X), len(s.Y))
	}
	return nil
}
