package stats

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

// normalScores returns an ideal standard-normal sample: the quantiles at
// plotting positions (i+0.5)/n. Deterministic, exactly symmetric.
func normalScores(n int) []float64 {
	d := distuv.Normal{Mu: 0, Sigma: 1}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = d.Quantile((float64(i) + 0.5) / float64(n))
	}
	return out
}

// expScores returns an ideal unit-exponential sample, strongly right-skewed.
func expScores(n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = -math.Log(1 - (float64(i)+0.5)/float64(n))
	}
	return out
}

func TestDescribe(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	d := Describe(data)
	if d.Mean != 3 {
		t.Errorf("Mean = %g, want 3", d.Mean)
	}
	if d.Median != 3 {
		t.Errorf("Median = %g, want 3", d.Median)
	}
	if d.Min != 1 || d.Max != 5 {
		t.Errorf("Min/Max = %g/%g, want 1/5", d.Min, d.Max)
	}
	if math.Abs(d.Skewness) > 1e-12 {
		t.Errorf("Skewness = %g, want 0", d.Skewness)
	}
}

func TestCorrelationDegenerate(t *testing.T) {
	flat := []float64{2, 2, 2, 2}
	vary := []float64{1, 2, 3, 4}
	if r := Correlation(flat, vary); !math.IsNaN(r) {
		t.Errorf("Expected NaN for zero-variance column, got %g", r)
	}
	if r := Correlation(vary, vary); math.Abs(r-1) > 1e-12 {
		t.Errorf("Self correlation = %g, want 1", r)
	}
}

func TestStandardize(t *testing.T) {
	data := []float64{2, 4, 6, 8, 10}
	z := Standardize(data)
	if m := MeanOf(z); math.Abs(m) > 1e-12 {
		t.Errorf("Standardized mean = %g, want 0", m)
	}
	if sd := StdDevOf(z); math.Abs(sd-1) > 1e-12 {
		t.Errorf("Standardized SD = %g, want 1", sd)
	}
}

func TestFitOLSRecoversCoefficients(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 200
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = rng.NormFloat64()
		x2[i] = rng.NormFloat64()
		y[i] = 3 + 2*x1[i] - 1.5*x2[i] + 0.01*rng.NormFloat64()
	}

	fit, err := FitOLS(y, [][]float64{x1, x2}, []string{"x1", "x2"})
	if err != nil {
		t.Fatalf("FitOLS: %v", err)
	}
	if math.Abs(fit.Intercept-3) > 0.01 {
		t.Errorf("Intercept = %g, want 3", fit.Intercept)
	}
	if b, _, _ := fit.Coeff("x1"); math.Abs(b-2) > 0.01 {
		t.Errorf("b1 = %g, want 2", b)
	}
	if b, _, _ := fit.Coeff("x2"); math.Abs(b+1.5) > 0.01 {
		t.Errorf("b2 = %g, want -1.5", b)
	}
	if fit.R2 < 0.99 {
		t.Errorf("R2 = %g, want near 1", fit.R2)
	}
	for _, tv := range fit.TStats {
		if math.Abs(tv) > tStatCap {
			t.Errorf("t statistic %g exceeds cap", tv)
		}
	}
}

func TestFitOLSSingular(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	same := []float64{2, 4, 6, 8, 10, 12} // perfectly collinear with x
	y := []float64{1, 2, 3, 4, 5, 6}
	if _, err := FitOLS(y, [][]float64{x, same}, []string{"a", "b"}); err == nil {
		t.Error("Expected error for collinear predictors")
	}
}

func TestFitOLSTooFewObservations(t *testing.T) {
	if _, err := FitOLS([]float64{1, 2}, [][]float64{{1, 2}}, []string{"x"}); err == nil {
		t.Error("Expected error for n <= p+1")
	}
}

func TestKolmogorovSmirnovNormal(t *testing.T) {
	data := normalScores(300)
	d, p := KolmogorovSmirnov(data, MeanOf(data), StdDevOf(data))
	if d > 0.05 {
		t.Errorf("D = %g for ideal normal data, want small", d)
	}
	if p < 0.5 {
		t.Errorf("p = %g for ideal normal data, want large", p)
	}
}

func TestKolmogorovSmirnovNonNormal(t *testing.T) {
	data := expScores(300)
	_, p := KolmogorovSmirnov(data, MeanOf(data), StdDevOf(data))
	if p > 0.05 {
		t.Errorf("p = %g for exponential data, want rejection", p)
	}
}

func TestShapiroWilk(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		w, p, err := ShapiroWilk(normalScores(100))
		if err != nil {
			t.Fatalf("ShapiroWilk: %v", err)
		}
		if w < 0.98 {
			t.Errorf("W = %g for ideal normal data, want near 1", w)
		}
		if p < 0.05 {
			t.Errorf("p = %g for ideal normal data, want non-rejection", p)
		}
	})

	t.Run("exponential", func(t *testing.T) {
		w, p, err := ShapiroWilk(expScores(100))
		if err != nil {
			t.Fatalf("ShapiroWilk: %v", err)
		}
		if w > 0.95 {
			t.Errorf("W = %g for exponential data, want well below 1", w)
		}
		if p > 0.01 {
			t.Errorf("p = %g for exponential data, want rejection", p)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		if _, _, err := ShapiroWilk(normalScores(5)); err == nil {
			t.Error("Expected error below minimum sample size")
		}
		if _, _, err := ShapiroWilk(normalScores(ShapiroWilkMaxN + 1)); err == nil {
			t.Error("Expected error above maximum sample size")
		}
	})
}

// correlatedItems builds k items sharing a common factor, deterministic.
func correlatedItems(k, n int, loading float64, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	factor := make([]float64, n)
	for i := range factor {
		factor[i] = rng.NormFloat64()
	}
	errW := math.Sqrt(1 - loading*loading)
	items := make([][]float64, k)
	for j := 0; j < k; j++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = loading*factor[i] + errW*rng.NormFloat64()
		}
		items[j] = col
	}
	return items
}

func TestCronbachAlpha(t *testing.T) {
	items := correlatedItems(3, 1000, 0.9, 11)
	alpha := CronbachAlpha(items)
	if alpha < 0.85 || alpha > 1 {
		t.Errorf("Alpha = %g for strongly correlated items, want high", alpha)
	}

	// Adding parallel items must not lower alpha materially.
	more := correlatedItems(6, 1000, 0.9, 11)
	if a6 := CronbachAlpha(more); a6 < alpha-0.02 {
		t.Errorf("Alpha with 6 items = %g, below 3-item alpha %g", a6, alpha)
	}
}

func TestCronbachAlphaDegenerate(t *testing.T) {
	if a := CronbachAlpha([][]float64{{1, 2, 3}}); !math.IsNaN(a) {
		t.Errorf("Expected NaN for a single item, got %g", a)
	}
	flat := [][]float64{{2, 2, 2}, {2, 2, 2}}
	if a := CronbachAlpha(flat); !math.IsNaN(a) {
		t.Errorf("Expected NaN for zero total variance, got %g", a)
	}
}

func TestReliabilityFromLoadings(t *testing.T) {
	items := correlatedItems(4, 2000, 0.9, 13)
	loadings := Loadings(items)
	for _, l := range loadings {
		if l < 0.8 || l > 1 {
			t.Errorf("Loading = %g, want near 0.9", l)
		}
	}
	if cr := CompositeReliability(loadings); cr < 0.85 {
		t.Errorf("CR = %g, want high", cr)
	}
	if ave := AVE(loadings); ave < 0.6 {
		t.Errorf("AVE = %g, want above 0.6", ave)
	}
}

func TestSolveFleishman(t *testing.T) {
	cases := []struct {
		skew, kurt float64
	}{
		{0.8, 0.5},
		{-1.0, 1.5},
		{1.5, 3.0},
		{0.5, -0.3},
	}
	for _, tc := range cases {
		coeffs, ok := SolveFleishman(tc.skew, tc.kurt)
		if !ok {
			t.Errorf("Solve(%g, %g) reported infeasible", tc.skew, tc.kurt)
			continue
		}
		b, c, d := coeffs.B, coeffs.C, coeffs.D
		// The power-method moment equations.
		varErr := b*b + 6*b*d + 2*c*c + 15*d*d - 1
		skewErr := 2*c*(b*b+24*b*d+105*d*d+2) - tc.skew
		kurtErr := 24*(b*d+c*c*(1+b*b+28*b*d)+d*d*(12+48*b*d+141*c*c+225*d*d)) - tc.kurt
		if math.Abs(varErr) > 1e-6 || math.Abs(skewErr) > 1e-6 || math.Abs(kurtErr) > 1e-6 {
			t.Errorf("Solve(%g, %g): residuals var=%g skew=%g kurt=%g",
				tc.skew, tc.kurt, varErr, skewErr, kurtErr)
		}
		if coeffs.A != -coeffs.C {
			t.Errorf("Expected a = -c, got a=%g c=%g", coeffs.A, coeffs.C)
		}
	}
}

func TestSolveFleishmanIdentity(t *testing.T) {
	coeffs, ok := SolveFleishman(0, 0)
	if !ok || !coeffs.IsIdentity() {
		t.Errorf("Expected identity transform for zero targets, got %+v ok=%v", coeffs, ok)
	}
}

func TestSolveFleishmanInfeasible(t *testing.T) {
	// Kurtosis far below the feasible boundary for the given skewness.
	coeffs, ok := SolveFleishman(2.0, -1.9)
	if ok {
		t.Error("Expected infeasible report")
	}
	// The fallback must still be usable.
	if math.IsNaN(coeffs.Apply(0.5)) {
		t.Error("Fallback coefficients produced NaN")
	}
}
