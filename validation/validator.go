package validation

import (
	"fmt"
	"time"

	"github.com/semforge/go-semforge/generator"
	"github.com/semforge/go-semforge/model"
	"github.com/semforge/go-semforge/stats"
)

// Validator runs the full validation battery over one generated matrix.
// Sub-analyses never abort the run: degenerate inputs are flagged, warned
// about and excluded from the overall verdict.
type Validator struct {
	matrix *generator.Matrix
	mod    *model.Model

	scores map[string][]float64 // raw construct scores, row mean of item columns
	std    map[string][]float64 // standardized scores

	regs map[string]*stats.OLS // one regression per endogenous construct

	warnings []model.Warning
	valid    bool
}

// New builds a Validator for the matrix/model pair. The matrix must have
// been generated from the same model, or at least carry a column per item
// the model declares.
func New(m *generator.Matrix, mod *model.Model) *Validator {
	return &Validator{
		matrix: m,
		mod:    mod,
		scores: make(map[string][]float64),
		std:    make(map[string][]float64),
		regs:   make(map[string]*stats.OLS),
		valid:  true,
	}
}

// Validate computes the complete report. It returns an error only when the
// matrix is missing item columns the model declares; every statistical
// degeneracy is reported in-band instead.
func (v *Validator) Validate() (*Report, error) {
	start := time.Now()

	if err := v.computeScores(); err != nil {
		return nil, err
	}
	v.fitRegressions()

	r := &Report{
		Version: SchemaVersion,
		Metadata: Metadata{
			Timestamp:  start.UTC(),
			SampleSize: v.matrix.N(),
			Constructs: len(v.mod.Constructs),
			Items:      v.mod.ItemCount(),
		},
	}

	r.Normality = v.testNormality()
	r.Descriptives = v.describeItems()
	r.Reliability = v.testReliability()
	r.Validity = v.testValidity()
	r.Structural = &StructuralReport{
		Paths:           v.analyzePaths(),
		IndirectEffects: v.analyzeIndirectEffects(),
		Moderation:      v.analyzeModeration(),
		RSquared:        v.analyzeRSquared(),
	}
	r.Structural.TotalEffects = v.analyzeTotalEffects(r.Structural.IndirectEffects)
	r.Multicollinearity = v.analyzeVIF()
	r.ModelFit = v.modelFit(r.Reliability, r.Structural.RSquared)

	r.Warnings = append(append([]model.Warning{}, v.matrix.Warnings...), v.warnings...)
	r.OverallValid = v.valid
	r.Metadata.ComputeTime = time.Since(start).Seconds()

	Sanitize(r)
	return r, nil
}

// check folds an acceptability flag into the overall verdict.
func (v *Validator) check(flag bool) bool {
	if !flag {
		v.valid = false
	}
	return flag
}

func (v *Validator) warn(category, target, message string) {
	v.warnings = append(v.warnings, model.Warning{Category: category, Target: target, Message: message})
}

func (v *Validator) computeScores() error {
	for i := range v.mod.Constructs {
		c := &v.mod.Constructs[i]
		cols, err := v.matrix.ItemColumns(c.ItemNames())
		if err != nil {
			return fmt.Errorf("construct %s: %w", c.Name, err)
		}
		score := stats.RowMeans(cols)
		v.scores[c.Name] = score
		v.std[c.Name] = stats.Standardize(score)
		if stats.StdDevOf(score) == 0 {
			v.warn("degenerate", c.Name, "construct score has zero variance")
		}
	}
	return nil
}

// fitRegressions runs one OLS per endogenous construct, regressing its
// standardized score on the standardized scores of all declared
// predecessors. Estimated betas, standard errors and p-values for every
// declared path come from these fits.
func (v *Validator) fitRegressions() {
	for _, target := range v.mod.EndogenousConstructs() {
		preds := predictorNames(v.mod.Predecessors(target))
		cols := make([][]float64, len(preds))
		for i, p := range preds {
			cols[i] = v.std[p]
		}
		fit, err := stats.FitOLS(v.std[target], cols, preds)
		if err != nil {
			v.warn("degenerate", target, fmt.Sprintf("regression failed: %v", err))
			continue
		}
		v.regs[target] = fit
	}
}

// predictorNames returns the unique From constructs of paths, keeping
// declaration order.
func predictorNames(paths []model.PathSpec) []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range paths {
		if seen[p.From] {
			continue
		}
		seen[p.From] = true
		names = append(names, p.From)
	}
	return names
}

func (v *Validator) describeItems() map[string]*stats.Descriptive {
	out := make(map[string]*stats.Descriptive)
	for _, name := range v.itemNames() {
		data, _ := v.matrix.ItemColumn(name)
		d := stats.Describe(data)
		out[name] = &d
	}
	return out
}

func (v *Validator) itemNames() []string {
	var names []string
	for i := range v.mod.Constructs {
		names = append(names, v.mod.Constructs[i].ItemNames()...)
	}
	return names
}

// modelFit recomputes GoF from the reliability and R-squared sections. AVE
// averages over multi-item constructs only; R-squared averages over
// endogenous constructs only. With no endogenous constructs the structural
// side is 0 and so is GoF.
func (v *Validator) modelFit(rel map[string]*ConstructReliability, r2 map[string]*RSquared) *ModelFit {
	avgAVE := 0.0
	n := 0
	for _, cr := range rel {
		if !cr.Applicable {
			continue
		}
		avgAVE += cr.AVE
		n++
	}
	if n > 0 {
		avgAVE /= float64(n)
	}

	avgR2 := 0.0
	n = 0
	for _, rs := range r2 {
		avgR2 += rs.RSquared
		n++
	}
	if n > 0 {
		avgR2 /= float64(n)
	}

	gof := sqrtNonNeg(avgAVE * avgR2)
	return &ModelFit{
		GoF:            gof,
		Interpretation: interpretGoF(gof),
		AvgAVE:         avgAVE,
		AvgR2:          avgR2,
	}
}

func interpretGoF(gof float64) string {
	switch {
	case gof >= 0.36:
		return "Large"
	case gof >= 0.25:
		return "Medium"
	case gof >= 0.10:
		return "Small"
	default:
		return "Poor"
	}
}
