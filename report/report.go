// Package report renders a fitted model and its predictions.
package report

import (
	"io"

	"github.com/wtsi-npg/simple-stats/regression"
)

// Report is everything a single run produces.
type Report struct {
	Fit         regression.Fit          `yaml:"fit"`
	Predictions []regression.Prediction `yaml:"predictions"`
}

// Write renders r to w in the given format.
func Write(w io.Writer, format string, r Report) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case FormatYAML:
		return WriteYAML(w, r)
	default:
		return WriteText(w, r)
	}
}
