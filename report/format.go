package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wtsi-npg/simple-stats/types"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// SupportedFormats lists the output formats accepted by ParseFormat.
var SupportedFormats = []string{FormatText, FormatYAML}

// ParseFormat normalizes and validates an output format name.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	for _, supported := range SupportedFormats {
		if f == supported {
			return f, nil
		}
	}
	return "", types.ErrUnknownFormat.Wrapf("%q, expected one of %v", s, SupportedFormats)
}

// FormatFloat renders v in the shortest form that round-trips, always with a
// decimal point or exponent: 4 -> "4.0", 1e-05 -> "1e-05", 1e16 -> "1e+16".
func FormatFloat(v float64) string {
	if s, ok := formatNonFinite(v); ok {
		return s
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatStat renders a summary statistic with four significant digits.
func formatStat(v float64) string {
	if s, ok := formatNonFinite(v); ok {
		return s
	}
	return fmt.Sprintf("%#.4g", v)
}

// formatFixed renders v with the given number of decimals.
func formatFixed(v float64, decimals int) string {
	if s, ok := formatNonFinite(v); ok {
		return s
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func formatNonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "nan", true
	case math.IsInf(v, 1):
		return "inf", true
	case math.IsInf(v, -1):
		return "-inf", true
	}
	return "", false
}
