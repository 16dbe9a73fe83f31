package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CronbachAlpha computes Cronbach's alpha from item columns, clamped to
// [0, 1]. A construct with fewer than two items has no defined alpha; the
// result is NaN and the caller reports it as not applicable.
func CronbachAlpha(items [][]float64) float64 {
	k := len(items)
	if k < 2 {
		return math.NaN()
	}

	sumItemVar := 0.0
	for _, col := range items {
		sumItemVar += stat.Variance(col, nil)
	}

	n := len(items[0])
	totals := make([]float64, n)
	for i := 0; i < n; i++ {
		for _, col := range items {
			totals[i] += col[i]
		}
	}
	totalVar := stat.Variance(totals, nil)
	if totalVar <= 0 {
		return math.NaN()
	}

	alpha := (float64(k) / float64(k-1)) * (1 - sumItemVar/totalVar)
	return clamp01(alpha)
}

// Loadings computes each item's loading as its correlation with the
// construct score (the per-row item average), floored at zero. Degenerate
// correlations come back as NaN and are preserved for the caller to flag.
func Loadings(items [][]float64) []float64 {
	score := RowMeans(items)
	out := make([]float64, len(items))
	for i, col := range items {
		l := Correlation(col, score)
		if !math.IsNaN(l) && l < 0 {
			l = 0
		}
		out[i] = l
	}
	return out
}

// CompositeReliability computes CR from loadings, treating 1 - l^2 as the
// item error variance.
func CompositeReliability(loadings []float64) float64 {
	sumL := 0.0
	sumErr := 0.0
	for _, l := range loadings {
		if math.IsNaN(l) {
			return math.NaN()
		}
		sumL += l
		sumErr += 1 - l*l
	}
	den := sumL*sumL + sumErr
	if den == 0 {
		return 0
	}
	return clamp01(sumL * sumL / den)
}

// AVE is the average variance extracted: the mean squared loading.
func AVE(loadings []float64) float64 {
	if len(loadings) == 0 {
		return 0
	}
	sum := 0.0
	for _, l := range loadings {
		if math.IsNaN(l) {
			return math.NaN()
		}
		sum += l * l
	}
	return clamp01(sum / float64(len(loadings)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
