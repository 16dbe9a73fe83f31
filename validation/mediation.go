package validation

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/semforge/go-semforge/stats"
)

const (
	vafFullBound    = 0.80
	vafPartialBound = 0.20
	sobelZCap       = 100.0
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// analyzeIndirectEffects estimates every derived mediation chain A->B->C
// with a Sobel test on the product of the two regression coefficients.
// Chains whose legs could not be estimated are skipped with a warning.
func (v *Validator) analyzeIndirectEffects() []*IndirectEffect {
	chains := v.mod.MediationChains()
	out := make([]*IndirectEffect, 0, len(chains))
	for _, ch := range chains {
		a, seA, okA := coeffOf(v.regs[ch.Mediator], ch.From)
		b, seB, okB := coeffOf(v.regs[ch.To], ch.Mediator)
		if !okA || !okB {
			v.warn("degenerate", ch.From+"->"+ch.Mediator+"->"+ch.To, "mediation legs not estimable")
			continue
		}

		indirect := a * b
		z, p := sobel(a, seA, b, seB)
		out = append(out, &IndirectEffect{
			From:           ch.From,
			Mediator:       ch.Mediator,
			To:             ch.To,
			BetaAM:         a,
			BetaMC:         b,
			IndirectEffect: indirect,
			ZScore:         z,
			PValue:         p,
			Significant:    p < alphaLevel,
		})
	}
	return out
}

func coeffOf(fit *stats.OLS, name string) (beta, se float64, ok bool) {
	if fit == nil {
		return 0, 0, false
	}
	return fit.Coeff(name)
}

// sobel computes the Sobel z for an indirect effect a*b. A zero standard
// error makes the test undefined; z falls back to 0 with p = 1.
func sobel(a, seA, b, seB float64) (z, p float64) {
	se := math.Sqrt(b*b*seA*seA + a*a*seB*seB)
	if se == 0 || math.IsNaN(se) {
		return 0, 1
	}
	z = a * b / se
	if z > sobelZCap {
		z = sobelZCap
	} else if z < -sobelZCap {
		z = -sobelZCap
	}
	p = 2 * (1 - stdNormal.CDF(math.Abs(z)))
	return z, p
}

// analyzeTotalEffects combines each chain's direct and indirect estimates
// and classifies the mediation by variance accounted for. VAF is undefined
// when there is no direct path or the total effect is numerically zero; the
// classification then falls back to the indirect effect's significance.
func (v *Validator) analyzeTotalEffects(indirect []*IndirectEffect) []*TotalEffect {
	out := make([]*TotalEffect, 0, len(indirect))
	for _, ie := range indirect {
		te := &TotalEffect{
			From:           ie.From,
			Mediator:       ie.Mediator,
			To:             ie.To,
			IndirectEffect: ie.IndirectEffect,
		}
		if v.mod.DirectPath(ie.From, ie.To) != nil {
			if beta, _, ok := coeffOf(v.regs[ie.To], ie.From); ok {
				te.DirectEffect = beta
				te.DirectExists = true
			}
		}
		te.TotalEffect = te.DirectEffect + te.IndirectEffect

		if te.DirectExists && math.Abs(te.TotalEffect) > totalEffectFloor {
			te.VAF = math.Abs(te.IndirectEffect) / math.Abs(te.TotalEffect)
			if te.VAF > 1 {
				te.VAF = 1
			}
			te.VAFDefined = true
			te.MediationType = classifyVAF(te.VAF)
		} else if ie.Significant {
			te.MediationType = MediationFull
		} else {
			te.MediationType = MediationNone
		}
		out = append(out, te)
	}
	return out
}

func classifyVAF(vaf float64) string {
	switch {
	case vaf > vafFullBound:
		return MediationFull
	case vaf >= vafPartialBound:
		return MediationPartial
	default:
		return MediationNone
	}
}
