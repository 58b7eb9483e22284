// Package input reads paired numeric observations from tab-separated text.
package input

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/wtsi-npg/simple-stats/types"
)

const (
	fieldSeparator = "\t"

	initialBufferSize = 64 * 1024
	// maxLineSize bounds a single line including any trailing whitespace.
	maxLineSize = 64 * 1024 * 1024
)

// ParseSamples reads lines of the form "<predictor>\t<response>" from r until
// EOF. Trailing whitespace is stripped and blank lines are skipped. Any other
// line that does not hold exactly two finite numbers fails the whole read
// with types.ErrInputFormat.
func ParseSamples(r io.Reader) (types.Samples, error) {
	samples, _, err := ScanSamples(r)
	return samples, err
}

// ScanSamples behaves like ParseSamples and also returns the number of lines
// scanned, blank ones included.
func ScanSamples(r io.Reader) (types.Samples, int, error) {
	samples := types.NewSamples(64)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialBufferSize), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)
		if line == "" {
			continue
		}

		x, y, err := parseLine(line)
		if err != nil {
			return types.Samples{}, lineNum, types.ErrInputFormat.Wrapf("line %d %q: %s", lineNum, line, err)
		}
		samples.Append(x, y)
	}
	if err := scanner.Err(); err != nil {
		return types.Samples{}, lineNum, fmt.Errorf("failed to read input: %w", err)
	}

	return samples, lineNum, nil
}

// parseLine parses an individual record
func parseLine(line string) (x, y float64, err error) {
	const (
		predictor = iota
		response
		numFields
	)

	fields := strings.Split(line, fieldSeparator)
	if len(fields) != numFields {
		return 0, 0, fmt.Errorf("expected %d tab separated fields, got %d", numFields, len(fields))
	}

	x, err = parseFloat(fields[predictor])
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing predictor: %w", err)
	}

	y, err = parseFloat(fields[response])
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing response: %w", err)
	}

	return x, y, nil
}

// parseFloat parses a finite float value.
func parseFloat(val string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %q is not finite", val)
	}
	return f, nil
}
