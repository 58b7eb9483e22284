package util

import (
	"math"
)

func CalcMean(numbers []float64) float64 {
	sum := 0.0
	for _, num := range numbers {
		sum += num
	}
	return sum / float64(len(numbers))
}

// IsConstant reports whether every value equals the first one exactly. It
// does not go through the mean, so rounding cannot hide a constant series.
func IsConstant(numbers []float64) bool {
	if len(numbers) == 0 {
		return true
	}
	for _, num := range numbers[1:] {
		if num != numbers[0] {
			return false
		}
	}
	return true
}

// CalcSumOfSquares returns Σ (x - mean)².
func CalcSumOfSquares(numbers []float64) float64 {
	mean := CalcMean(numbers)
	ss := 0.0
	for _, num := range numbers {
		diff := num - mean
		ss += diff * diff
	}
	return ss
}

// CalcCrossProducts returns Σ (x - mean(x)) * (y - mean(y)). xs and ys must
// have the same length.
func CalcCrossProducts(xs, ys []float64) float64 {
	meanX := CalcMean(xs)
	meanY := CalcMean(ys)
	sp := 0.0
	for i := range xs {
		sp += (xs[i] - meanX) * (ys[i] - meanY)
	}
	return sp
}

// CalcSkewness returns the biased sample skewness m3 / m2^1.5.
func CalcSkewness(numbers []float64) float64 {
	m2, m3, _ := centralMoments(numbers)
	return m3 / math.Pow(m2, 1.5)
}

// CalcKurtosis returns the biased Pearson kurtosis m4 / m2² (3 for a normal
// distribution, not the excess form).
func CalcKurtosis(numbers []float64) float64 {
	m2, _, m4 := centralMoments(numbers)
	return m4 / (m2 * m2)
}

func centralMoments(numbers []float64) (m2, m3, m4 float64) {
	mean := CalcMean(numbers)
	for _, num := range numbers {
		d := num - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	n := float64(len(numbers))
	return m2 / n, m3 / n, m4 / n
}
