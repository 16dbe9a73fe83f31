package validation

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/semforge/go-semforge/generator"
	"github.com/semforge/go-semforge/model"
)

func chainModel() *model.Model {
	return model.Build().
		Named("chain").
		Construct("Trust").
		Item("T1", 4.2, 1.3).
		Item("T2", 4.0, 1.2).
		Item("T3", 4.1, 1.3).
		Construct("Quality").
		Item("Q1", 4.5, 1.2).
		Item("Q2", 4.4, 1.3).
		Item("Q3", 4.6, 1.2).
		Construct("Satisfaction").
		Item("S1", 4.3, 1.3).
		Item("S2", 4.2, 1.2).
		Path("Trust", "Quality", 0.6).
		Path("Quality", "Satisfaction", 0.5).
		Path("Trust", "Satisfaction", 0.3).
		Done()
}

func generateAndValidate(t *testing.T, m *model.Model, n int, seed int64) *Report {
	t.Helper()
	opts := generator.CleanOptions()
	opts.Seed = seed
	matrix, err := generator.New(m, n, opts).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	report, err := New(matrix, m).Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return report
}

func TestValidateChainModel(t *testing.T) {
	m := chainModel()
	r := generateAndValidate(t, m, 1000, 42)

	if r.Metadata.SampleSize != 1000 {
		t.Errorf("SampleSize = %d, want 1000", r.Metadata.SampleSize)
	}
	if r.Metadata.Items != 8 {
		t.Errorf("Items = %d, want 8", r.Metadata.Items)
	}

	t.Run("normality", func(t *testing.T) {
		if len(r.Normality) != 8 {
			t.Fatalf("Expected 8 item entries, got %d", len(r.Normality))
		}
		for name, n := range r.Normality {
			if n.Degenerate {
				t.Errorf("%s unexpectedly degenerate", name)
			}
			if !n.SkewnessAcceptable || !n.KurtosisAcceptable {
				t.Errorf("%s fails rule-of-thumb flags: skew=%g kurt=%g", name, n.Skewness, n.Kurtosis)
			}
			if n.ShapiroWilk == nil {
				t.Errorf("%s missing Shapiro-Wilk at n=1000", name)
			}
		}
	})

	t.Run("reliability", func(t *testing.T) {
		for _, name := range []string{"Trust", "Quality", "Satisfaction"} {
			cr := r.Reliability[name]
			if cr == nil || !cr.Applicable {
				t.Fatalf("%s reliability missing or inapplicable", name)
			}
			if cr.CronbachAlpha < 0.70 {
				t.Errorf("%s alpha = %g, want >= 0.70", name, cr.CronbachAlpha)
			}
			if cr.AVE < 0.50 {
				t.Errorf("%s AVE = %g, want >= 0.50", name, cr.AVE)
			}
		}
	})

	t.Run("validity", func(t *testing.T) {
		if len(r.Validity.FornellLarcker) != 3 {
			t.Errorf("Expected 3 FL pairs, got %d", len(r.Validity.FornellLarcker))
		}
		for key, pair := range r.Validity.FornellLarcker {
			if !pair.Valid {
				t.Errorf("FL pair %s invalid: corr=%g sqrtAVE=%g/%g",
					key, pair.Correlation, pair.SqrtAVEA, pair.SqrtAVEB)
			}
		}
		for key, pair := range r.Validity.HTMT {
			if !pair.Valid {
				t.Errorf("HTMT pair %s = %g, want < 0.85", key, pair.HTMT)
			}
		}
		passed := 0
		for _, cl := range r.Validity.CrossLoadings {
			if cl.Valid {
				passed++
			}
		}
		if passed < 7 { // at least 90% of the 8 items
			t.Errorf("Only %d/8 items pass cross-loadings", passed)
		}
	})

	t.Run("structural", func(t *testing.T) {
		if len(r.Structural.Paths) != 3 {
			t.Fatalf("Expected 3 paths, got %d", len(r.Structural.Paths))
		}
		for _, p := range r.Structural.Paths {
			if !p.Significant {
				t.Errorf("Path %s->%s not significant: beta=%g p=%g", p.From, p.To, p.Beta, p.PValue)
			}
			if p.Beta <= 0 {
				t.Errorf("Path %s->%s beta = %g, want positive", p.From, p.To, p.Beta)
			}
		}

		if len(r.Structural.IndirectEffects) != 1 {
			t.Fatalf("Expected 1 indirect effect, got %d", len(r.Structural.IndirectEffects))
		}
		ie := r.Structural.IndirectEffects[0]
		if !ie.Significant {
			t.Errorf("Indirect effect not significant: z=%g p=%g", ie.ZScore, ie.PValue)
		}
		if ie.IndirectEffect < 0.1 || ie.IndirectEffect > 0.5 {
			t.Errorf("Indirect effect = %g, want near 0.3", ie.IndirectEffect)
		}

		if len(r.Structural.TotalEffects) != 1 {
			t.Fatalf("Expected 1 total effect, got %d", len(r.Structural.TotalEffects))
		}
		te := r.Structural.TotalEffects[0]
		if !te.DirectExists || !te.VAFDefined {
			t.Fatalf("Expected defined VAF with a direct path, got %+v", te)
		}
		if te.VAF < 0.2 || te.VAF > 0.8 {
			t.Errorf("VAF = %g, want partial-mediation range", te.VAF)
		}
		if te.MediationType != MediationPartial {
			t.Errorf("MediationType = %q, want partial", te.MediationType)
		}
		if math.Abs(te.TotalEffect-(te.DirectEffect+te.IndirectEffect)) > 1e-12 {
			t.Error("Total effect must equal direct + indirect")
		}

		for name, rs := range r.Structural.RSquared {
			if rs.RSquared <= 0 || rs.RSquared >= 1 {
				t.Errorf("R2[%s] = %g, want in (0, 1)", name, rs.RSquared)
			}
		}
		if len(r.Structural.Moderation) != 2 {
			t.Errorf("Expected 2 moderation tests, got %d", len(r.Structural.Moderation))
		}
	})

	t.Run("multicollinearity", func(t *testing.T) {
		pv := r.Multicollinearity["Satisfaction"]
		if pv == nil {
			t.Fatal("Expected VIFs for Satisfaction's two predictors")
		}
		for name, res := range pv.VIFs {
			if !res.Acceptable {
				t.Errorf("VIF[%s] = %g, want < 5", name, res.VIF)
			}
		}
		if r.Multicollinearity["Quality"] != nil {
			t.Error("Single-predictor regression must not report VIFs")
		}
	})

	t.Run("model fit", func(t *testing.T) {
		if r.ModelFit.GoF <= 0 {
			t.Errorf("GoF = %g, want positive", r.ModelFit.GoF)
		}
		want := math.Sqrt(r.ModelFit.AvgAVE * r.ModelFit.AvgR2)
		if math.Abs(r.ModelFit.GoF-want) > 1e-12 {
			t.Errorf("GoF = %g, want sqrt(avgAVE*avgR2) = %g", r.ModelFit.GoF, want)
		}
	})

	if !r.OverallValid {
		t.Errorf("Expected overall valid report, warnings: %v", r.Warnings)
	}
}

// TestMediationArithmetic checks indirect-effect recovery where
// discretization is negligible: wide-scale items carrying the latent factor
// directly, so the product of the chain betas comes back near 0.5 * 0.6.
func TestMediationArithmetic(t *testing.T) {
	m := model.Build().
		Construct("A").
		BoundedItem("A1", 50, 10, 0, 100).
		BoundedItem("A2", 50, 10, 0, 100).
		BoundedItem("A3", 50, 10, 0, 100).
		Construct("B").
		BoundedItem("B1", 50, 10, 0, 100).
		BoundedItem("B2", 50, 10, 0, 100).
		BoundedItem("B3", 50, 10, 0, 100).
		Construct("C").
		BoundedItem("C1", 50, 10, 0, 100).
		BoundedItem("C2", 50, 10, 0, 100).
		BoundedItem("C3", 50, 10, 0, 100).
		Path("A", "B", 0.5).
		Path("B", "C", 0.6).
		Done()

	opts := generator.CleanOptions()
	opts.Seed = 21
	opts.Communality = 1.0
	matrix, err := generator.New(m, 2000, opts).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	r, err := New(matrix, m).Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if len(r.Structural.IndirectEffects) != 1 {
		t.Fatalf("Expected 1 indirect effect, got %d", len(r.Structural.IndirectEffects))
	}
	ie := r.Structural.IndirectEffects[0]
	if math.Abs(ie.IndirectEffect-0.30) > 0.05 {
		t.Errorf("Indirect effect = %g, want 0.30 +/- 0.05", ie.IndirectEffect)
	}

	te := r.Structural.TotalEffects[0]
	if te.DirectExists {
		t.Error("No direct A->C path declared")
	}
	if te.DirectEffect != 0 {
		t.Errorf("Direct effect = %g, want 0 without a declared path", te.DirectEffect)
	}
	if te.MediationType != MediationFull {
		t.Errorf("Significant indirect with no direct path must classify full, got %q", te.MediationType)
	}
}

// TestExtremeSpecStaysFinite fuzzes an over-specified model: three unit
// betas into one construct. The generator floors the residual and the
// report must still come out finite everywhere.
func TestExtremeSpecStaysFinite(t *testing.T) {
	m := model.Build().
		Construct("A").Item("A1", 4, 1.2).
		Construct("B").Item("B1", 4, 1.2).
		Construct("C").Item("C1", 4, 1.2).
		Construct("D").Item("D1", 4, 1.2).Item("D2", 4, 1.2).
		Path("A", "D", 1.0).
		Path("B", "D", 1.0).
		Path("C", "D", 1.0).
		Done()
	r := generateAndValidate(t, m, 200, 17)

	found := false
	for _, w := range r.Warnings {
		if w.Category == "variance" && w.Target == "D" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected residual-floor warning, got %v", r.Warnings)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	assertFinite(t, "", decoded)
}

func TestValidateReportIsFinite(t *testing.T) {
	r := generateAndValidate(t, chainModel(), 500, 7)
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Report must marshal cleanly: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	assertFinite(t, "", decoded)
}

func assertFinite(t *testing.T, path string, v any) {
	t.Helper()
	switch x := v.(type) {
	case map[string]any:
		for k, child := range x {
			assertFinite(t, path+"."+k, child)
		}
	case []any:
		for _, child := range x {
			assertFinite(t, path, child)
		}
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Errorf("Non-finite value at %s", path)
		}
	}
}

func TestSingleItemConstructNotApplicable(t *testing.T) {
	m := model.Build().
		Construct("A").Item("A1", 4, 1.2).
		Construct("B").Item("B1", 4, 1.2).Item("B2", 4, 1.2).
		Path("A", "B", 0.5).
		Done()
	r := generateAndValidate(t, m, 300, 3)

	if r.Reliability["A"].Applicable {
		t.Error("Single-item construct must be marked not applicable")
	}
	if !r.Reliability["B"].Applicable {
		t.Error("Two-item construct must be applicable")
	}
	// FL and HTMT need AVE on both sides; the pair must be degenerate, not
	// failed.
	for _, pair := range r.Validity.FornellLarcker {
		if !pair.Degenerate {
			t.Errorf("Expected degenerate FL pair, got %+v", pair)
		}
		if pair.Valid {
			t.Error("Degenerate pair must not claim validity")
		}
	}
}

func TestNoPathsModel(t *testing.T) {
	m := model.Build().
		Construct("A").Item("A1", 4, 1.2).Item("A2", 4, 1.2).
		Construct("B").Item("B1", 4, 1.2).Item("B2", 4, 1.2).
		Done()
	r := generateAndValidate(t, m, 200, 5)

	if len(r.Structural.Paths) != 0 {
		t.Errorf("Expected no paths, got %d", len(r.Structural.Paths))
	}
	if len(r.Structural.RSquared) != 0 {
		t.Errorf("Expected no R2 entries, got %d", len(r.Structural.RSquared))
	}
	if r.ModelFit.AvgR2 != 0 || r.ModelFit.GoF != 0 {
		t.Errorf("Expected zero structural fit, got %+v", r.ModelFit)
	}
	// Uncorrelated constructs still pass discriminant validity.
	if !r.OverallValid {
		t.Errorf("Expected valid report, warnings: %v", r.Warnings)
	}
}

func TestClassifyVAF(t *testing.T) {
	tests := []struct {
		vaf  float64
		want string
	}{
		{0.85, MediationFull},
		{0.81, MediationFull},
		{0.80, MediationPartial}, // boundary belongs to partial
		{0.50, MediationPartial},
		{0.20, MediationPartial}, // boundary belongs to partial
		{0.19, MediationNone},
		{0.05, MediationNone},
	}
	for _, tt := range tests {
		if got := classifyVAF(tt.vaf); got != tt.want {
			t.Errorf("classifyVAF(%g) = %q, want %q", tt.vaf, got, tt.want)
		}
	}
}

func TestSobel(t *testing.T) {
	z, p := sobel(0.5, 0.05, 0.4, 0.05)
	if z <= 0 {
		t.Errorf("z = %g, want positive", z)
	}
	if p >= 0.05 {
		t.Errorf("p = %g, want significant", p)
	}

	z, p = sobel(0.5, 0, 0.4, 0)
	if z != 0 || p != 1 {
		t.Errorf("Zero SEs must yield z=0 p=1, got z=%g p=%g", z, p)
	}
}

func TestSanitize(t *testing.T) {
	r := &Report{
		Normality: map[string]*ItemNormality{
			"X1": {
				KolmogorovSmirnov: TestResult{Statistic: math.NaN(), PValue: math.NaN()},
				Skewness:          math.Inf(1),
				Kurtosis:          math.Inf(-1),
			},
		},
		Reliability: map[string]*ConstructReliability{
			"A": {CronbachAlpha: math.NaN(), Loadings: map[string]float64{"X1": math.NaN()}},
		},
		Structural: &StructuralReport{
			Paths: []*PathResult{{Beta: math.NaN(), TStatistic: math.Inf(1)}},
		},
	}
	Sanitize(r)

	n := r.Normality["X1"]
	if n.KolmogorovSmirnov.Statistic != 0 || n.KolmogorovSmirnov.PValue != 0 {
		t.Errorf("NaN must become 0, got %+v", n.KolmogorovSmirnov)
	}
	if n.Skewness != 999 || n.Kurtosis != -999 {
		t.Errorf("Infinities must become +/-999, got skew=%g kurt=%g", n.Skewness, n.Kurtosis)
	}
	if r.Reliability["A"].CronbachAlpha != 0 {
		t.Error("NaN alpha must become 0")
	}
	if r.Reliability["A"].Loadings["X1"] != 0 {
		t.Error("NaN map value must become 0")
	}
	if r.Structural.Paths[0].Beta != 0 || r.Structural.Paths[0].TStatistic != 999 {
		t.Errorf("Path sentinels wrong: %+v", r.Structural.Paths[0])
	}
}

func TestModerationEffectSizes(t *testing.T) {
	tests := []struct {
		f2   float64
		want string
	}{
		{0.40, "Large"},
		{0.20, "Medium"},
		{0.05, "Small"},
		{0.01, "None"},
	}
	for _, tt := range tests {
		if got := interpretFSquared(tt.f2); got != tt.want {
			t.Errorf("interpretFSquared(%g) = %q, want %q", tt.f2, got, tt.want)
		}
	}
}

func TestInterpretations(t *testing.T) {
	if got := interpretR2(0.8); got != "Substantial" {
		t.Errorf("interpretR2(0.8) = %q", got)
	}
	if got := interpretR2(0.3); got != "Weak" {
		t.Errorf("interpretR2(0.3) = %q", got)
	}
	if got := interpretGoF(0.4); got != "Large" {
		t.Errorf("interpretGoF(0.4) = %q", got)
	}
	if got := interpretGoF(0.05); got != "Poor" {
		t.Errorf("interpretGoF(0.05) = %q", got)
	}
}
