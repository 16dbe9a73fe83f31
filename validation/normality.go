package validation

import (
	"math"

	"github.com/semforge/go-semforge/stats"
)

const (
	skewnessLimit = 2.0
	kurtosisLimit = 7.0
	alphaLevel    = 0.05
)

// testNormality runs the per-item distribution battery. The KS test uses
// the fitted sample mean and standard deviation; Shapiro-Wilk is skipped
// outside its valid sample range. Zero-variance items are degenerate: both
// tests are meaningless there, so the item is flagged and left out of the
// overall verdict.
func (v *Validator) testNormality() map[string]*ItemNormality {
	out := make(map[string]*ItemNormality)
	for _, name := range v.itemNames() {
		data, _ := v.matrix.ItemColumn(name)
		out[name] = v.testItem(name, data)
	}
	return out
}

func (v *Validator) testItem(name string, data []float64) *ItemNormality {
	mean := stats.MeanOf(data)
	sd := stats.StdDevOf(data)

	if sd == 0 || len(data) < 3 {
		v.warn("degenerate", name, "item has zero variance, normality tests skipped")
		return &ItemNormality{
			KolmogorovSmirnov: TestResult{Statistic: math.NaN(), PValue: math.NaN()},
			Skewness:          math.NaN(),
			Kurtosis:          math.NaN(),
			Degenerate:        true,
		}
	}

	d, p := stats.KolmogorovSmirnov(data, mean, sd)
	res := &ItemNormality{
		KolmogorovSmirnov: TestResult{Statistic: d, PValue: p, Normal: p > alphaLevel},
		Skewness:          stats.Skewness(data),
		Kurtosis:          stats.ExKurtosis(data),
	}

	if w, wp, err := stats.ShapiroWilk(data); err == nil {
		res.ShapiroWilk = &TestResult{Statistic: w, PValue: wp, Normal: wp > alphaLevel}
	}

	res.SkewnessAcceptable = v.check(math.Abs(res.Skewness) < skewnessLimit)
	res.KurtosisAcceptable = v.check(math.Abs(res.Kurtosis) < kurtosisLimit)
	return res
}
