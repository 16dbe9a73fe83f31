// Package stats implements the statistical primitives shared by the survey
// generator and the validation engine: descriptive moments, correlation,
// least-squares regression with coefficient standard errors, normality
// tests, reliability coefficients and the Fleishman power-method transform.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Descriptive summarizes a single column.
type Descriptive struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // excess kurtosis
}

// Describe computes the descriptive summary of data. Empty input returns the
// zero value.
func Describe(data []float64) Descriptive {
	if len(data) == 0 {
		return Descriptive{}
	}

	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	return Descriptive{
		Mean:     stat.Mean(data, nil),
		Median:   median,
		StdDev:   stat.StdDev(data, nil),
		Min:      min,
		Max:      max,
		Skewness: stat.Skew(data, nil),
		Kurtosis: stat.ExKurtosis(data, nil),
	}
}

// Correlation returns the Pearson correlation of x and y, or NaN when either
// column has zero variance. Callers treat NaN as a degenerate sentinel.
func Correlation(x, y []float64) float64 {
	r := stat.Correlation(x, y, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}

// Standardize returns a copy of data centered to zero mean and scaled to
// unit sample standard deviation. Zero-variance input is returned centered
// only.
func Standardize(data []float64) []float64 {
	mean := stat.Mean(data, nil)
	sd := stat.StdDev(data, nil)
	out := make([]float64, len(data))
	for i, v := range data {
		if sd > 0 {
			out[i] = (v - mean) / sd
		} else {
			out[i] = v - mean
		}
	}
	return out
}

// MeanOf is a convenience wrapper for the sample mean.
func MeanOf(data []float64) float64 { return stat.Mean(data, nil) }

// Skewness is a convenience wrapper for the sample skewness.
func Skewness(data []float64) float64 { return stat.Skew(data, nil) }

// ExKurtosis is a convenience wrapper for the sample excess kurtosis.
func ExKurtosis(data []float64) float64 { return stat.ExKurtosis(data, nil) }

// StdDevOf is a convenience wrapper for the sample standard deviation.
func StdDevOf(data []float64) float64 { return stat.StdDev(data, nil) }

// RowMeans computes the per-row mean across columns. All columns must have
// equal length; the caller guarantees this (matrix invariant).
func RowMeans(columns [][]float64) []float64 {
	if len(columns) == 0 {
		return nil
	}
	n := len(columns[0])
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for _, col := range columns {
			sum += col[i]
		}
		out[i] = sum / float64(len(columns))
	}
	return out
}
