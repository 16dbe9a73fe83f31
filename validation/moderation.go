package validation

import (
	"fmt"

	"github.com/semforge/go-semforge/stats"
)

const (
	fSquaredLarge  = 0.35
	fSquaredMedium = 0.15
	fSquaredSmall  = 0.02
)

// analyzeModeration tests each candidate interaction by comparing the
// dependent construct's regression with and without the product of the
// standardized independent and moderator scores. Effect size is Cohen's
// f-squared on the R-squared change.
func (v *Validator) analyzeModeration() []*ModerationResult {
	pairs := v.mod.ModerationCandidates()
	out := make([]*ModerationResult, 0, len(pairs))
	for _, pr := range pairs {
		res, err := v.testInteraction(pr.Independent, pr.Dependent, pr.Moderator)
		if err != nil {
			v.warn("degenerate", pr.Independent+"x"+pr.Moderator+"->"+pr.Dependent,
				fmt.Sprintf("moderation test failed: %v", err))
			continue
		}
		out = append(out, res)
	}
	return out
}

func (v *Validator) testInteraction(indep, dep, moder string) (*ModerationResult, error) {
	x := v.std[indep]
	m := v.std[moder]
	y := v.std[dep]

	product := make([]float64, len(x))
	for i := range x {
		product[i] = x[i] * m[i]
	}

	base, err := stats.FitOLS(y, [][]float64{x, m}, []string{indep, moder})
	if err != nil {
		return nil, err
	}
	full, err := stats.FitOLS(y, [][]float64{x, m, product}, []string{indep, moder, "interaction"})
	if err != nil {
		return nil, err
	}

	coeff, _, _ := full.Coeff("interaction")
	change := full.R2 - base.R2
	if change < 0 {
		change = 0
	}
	f2 := 0.0
	if full.R2 < 1 {
		f2 = change / (1 - full.R2)
	}

	return &ModerationResult{
		Independent:            indep,
		Dependent:              dep,
		Moderator:              moder,
		InteractionCoefficient: coeff,
		R2Without:              base.R2,
		R2With:                 full.R2,
		R2Change:               change,
		FSquared:               f2,
		EffectSize:             interpretFSquared(f2),
	}, nil
}

func interpretFSquared(f2 float64) string {
	switch {
	case f2 >= fSquaredLarge:
		return "Large"
	case f2 >= fSquaredMedium:
		return "Medium"
	case f2 >= fSquaredSmall:
		return "Small"
	default:
		return "None"
	}
}
