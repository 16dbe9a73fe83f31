package validation

import (
	"math"

	"github.com/semforge/go-semforge/stats"
)

const (
	vifCap           = 999.0
	vifGoodLimit     = 3.0
	vifAcceptLimit   = 5.0
	totalEffectFloor = 1e-10
)

// analyzePaths reports the regression estimate for every declared path, in
// declaration order. A path whose target regression could not be fitted is
// marked degenerate and excluded from the overall verdict.
func (v *Validator) analyzePaths() []*PathResult {
	out := make([]*PathResult, 0, len(v.mod.Paths))
	for _, p := range v.mod.Paths {
		res := &PathResult{From: p.From, To: p.To, ExpectedSignificant: p.Significant}
		fit := v.regs[p.To]
		idx := predictorIndex(fit, p.From)
		if idx < 0 {
			res.Beta = math.NaN()
			res.StdError = math.NaN()
			res.TStatistic = math.NaN()
			res.PValue = math.NaN()
			res.Degenerate = true
			out = append(out, res)
			continue
		}
		res.Beta = fit.Coeffs[idx]
		res.StdError = fit.StdErrs[idx]
		res.TStatistic = fit.TStats[idx]
		res.PValue = fit.PValues[idx]
		res.Significant = res.PValue < alphaLevel
		if res.Significant != res.ExpectedSignificant {
			v.warn("significance", p.From+"->"+p.To, "estimated significance differs from declared")
		}
		out = append(out, res)
	}
	return out
}

func predictorIndex(fit *stats.OLS, name string) int {
	if fit == nil {
		return -1
	}
	for i, p := range fit.Predictors {
		if p == name {
			return i
		}
	}
	return -1
}

// analyzeRSquared reports R-squared per endogenous construct.
func (v *Validator) analyzeRSquared() map[string]*RSquared {
	out := make(map[string]*RSquared)
	for _, target := range v.mod.EndogenousConstructs() {
		fit := v.regs[target]
		if fit == nil {
			continue
		}
		out[target] = &RSquared{
			RSquared:       fit.R2,
			Interpretation: interpretR2(fit.R2),
		}
	}
	return out
}

func interpretR2(r2 float64) string {
	switch {
	case r2 >= 0.75:
		return "Substantial"
	case r2 >= 0.50:
		return "Moderate"
	case r2 >= 0.25:
		return "Weak"
	default:
		return "Very Weak"
	}
}

// analyzeVIF computes variance inflation factors for every regression with
// two or more predictors. Each predictor is regressed on the others; VIF is
// 1/(1-R^2), capped when the predictors are near collinear.
func (v *Validator) analyzeVIF() map[string]*PredictorVIFs {
	out := make(map[string]*PredictorVIFs)
	for _, target := range v.mod.EndogenousConstructs() {
		fit := v.regs[target]
		if fit == nil || len(fit.Predictors) < 2 {
			continue
		}
		pv := &PredictorVIFs{Target: target, VIFs: make(map[string]*VIFResult)}
		for i, pred := range fit.Predictors {
			others := make([][]float64, 0, len(fit.Predictors)-1)
			names := make([]string, 0, len(fit.Predictors)-1)
			for j, o := range fit.Predictors {
				if j == i {
					continue
				}
				others = append(others, v.std[o])
				names = append(names, o)
			}
			vif := vifCap
			sub, err := stats.FitOLS(v.std[pred], others, names)
			if err == nil && sub.R2 < 1 {
				vif = 1.0 / (1.0 - sub.R2)
				if vif > vifCap {
					vif = vifCap
				}
			}
			pv.VIFs[pred] = &VIFResult{
				VIF:        vif,
				Acceptable: v.check(vif < vifAcceptLimit),
				Good:       vif < vifGoodLimit,
			}
		}
		out[target] = pv
	}
	return out
}
