package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ShapiroWilkMaxN is the upper sample-size bound for the Shapiro-Wilk test.
// Above it the Royston approximation degrades and the test is skipped.
const ShapiroWilkMaxN = 5000

// shapiroWilkMinN is the lower bound of the Royston (1995) p-value
// approximation implemented here.
const shapiroWilkMinN = 12

// KolmogorovSmirnov tests data against a normal reference with the given
// mean and standard deviation. It returns the KS statistic D and the
// asymptotic two-sided p-value.
func KolmogorovSmirnov(data []float64, mean, sd float64) (statistic, pValue float64) {
	n := len(data)
	if n == 0 || sd <= 0 {
		return math.NaN(), math.NaN()
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	ref := distuv.Normal{Mu: mean, Sigma: sd}
	d := 0.0
	for i, v := range sorted {
		cdf := ref.CDF(v)
		upper := float64(i+1)/float64(n) - cdf
		lower := cdf - float64(i)/float64(n)
		if upper > d {
			d = upper
		}
		if lower > d {
			d = lower
		}
	}

	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d
	return d, kolmogorovSurvival(lambda)
}

// kolmogorovSurvival evaluates the Kolmogorov distribution tail
// Q(lambda) = 2 * sum_{k>=1} (-1)^(k-1) exp(-2 k^2 lambda^2).
func kolmogorovSurvival(lambda float64) float64 {
	if lambda <= 0 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := math.Exp(-2 * float64(k*k) * lambda * lambda)
		sum += sign * term
		sign = -sign
		if term < 1e-12 {
			break
		}
	}
	p := 2 * sum
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ShapiroWilk computes the Shapiro-Wilk W statistic and p-value using the
// Royston AS R94 approximation. Valid for 12 <= n <= 5000; outside that
// range, or for zero-variance data, an error is returned and the caller
// omits the test.
func ShapiroWilk(data []float64) (w, pValue float64, err error) {
	n := len(data)
	if n < shapiroWilkMinN || n > ShapiroWilkMaxN {
		return 0, 0, fmt.Errorf("shapiro-wilk: n=%d outside [%d, %d]", n, shapiroWilkMinN, ShapiroWilkMaxN)
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	// Expected values of normal order statistics (Blom scores).
	m := make([]float64, n)
	mm := 0.0
	for i := 0; i < n; i++ {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		mm += m[i] * m[i]
	}

	// Royston polynomial-corrected weights for the two extreme order
	// statistics on each side.
	u := 1 / math.Sqrt(float64(n))
	rm := 1 / math.Sqrt(mm)
	a := make([]float64, n)
	aN := -2.706056*pow5(u) + 4.434685*pow4(u) - 2.071190*pow3(u) - 0.147981*u*u + 0.221157*u + m[n-1]*rm
	aN1 := -3.582633*pow5(u) + 5.682633*pow4(u) - 1.752461*pow3(u) - 0.293762*u*u + 0.042981*u + m[n-2]*rm

	phi := (mm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*aN*aN - 2*aN1*aN1)
	if phi <= 0 {
		return 0, 0, fmt.Errorf("shapiro-wilk: degenerate weight normalization")
	}
	rphi := 1 / math.Sqrt(phi)

	a[n-1] = aN
	a[n-2] = aN1
	a[0] = -aN
	a[1] = -aN1
	for i := 2; i < n-2; i++ {
		a[i] = m[i] * rphi
	}

	mean := MeanOf(sorted)
	num := 0.0
	den := 0.0
	for i := 0; i < n; i++ {
		num += a[i] * sorted[i]
		d := sorted[i] - mean
		den += d * d
	}
	if den <= 0 {
		return 0, 0, fmt.Errorf("shapiro-wilk: zero variance")
	}

	w = num * num / den
	if w > 1 {
		w = 1
	}

	// Royston normalizing transformation of (1 - W) for n > 11.
	logN := math.Log(float64(n))
	mu := 0.0038915*pow3(logN) - 0.083751*logN*logN - 0.31082*logN - 1.5861
	sigma := math.Exp(0.0030302*logN*logN - 0.082676*logN - 0.4803)
	z := (math.Log(1-w) - mu) / sigma
	pValue = 1 - distuv.UnitNormal.CDF(z)

	return w, pValue, nil
}

func pow3(x float64) float64 { return x * x * x }
func pow4(x float64) float64 { return x * x * x * x }
func pow5(x float64) float64 { return x * x * x * x * x }
