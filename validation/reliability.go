package validation

import (
	"fmt"
	"math"

	"github.com/semforge/go-semforge/stats"
)

const (
	alphaThreshold = 0.70
	crThreshold    = 0.70
	aveThreshold   = 0.50
)

// testReliability computes Cronbach's alpha, composite reliability and AVE
// per construct. Loadings are each item's correlation with the construct
// score, floored at zero. Single-item constructs are reported but marked
// not applicable.
func (v *Validator) testReliability() map[string]*ConstructReliability {
	out := make(map[string]*ConstructReliability)
	for i := range v.mod.Constructs {
		c := &v.mod.Constructs[i]
		cols, _ := v.matrix.ItemColumns(c.ItemNames())

		cr := &ConstructReliability{Loadings: make(map[string]float64)}
		loadings := stats.Loadings(cols)
		degenerate := false
		for j, name := range c.ItemNames() {
			cr.Loadings[name] = loadings[j]
			if math.IsNaN(loadings[j]) {
				degenerate = true
			}
		}

		if len(cols) < 2 {
			cr.CronbachAlpha = math.NaN()
			cr.CompositeReliability = math.NaN()
			cr.AVE = math.NaN()
			v.warn("degenerate", c.Name, "single-item construct, reliability not applicable")
			out[c.Name] = cr
			continue
		}
		if degenerate {
			cr.CronbachAlpha = math.NaN()
			cr.CompositeReliability = math.NaN()
			cr.AVE = math.NaN()
			v.warn("degenerate", c.Name, "zero-variance item, reliability not applicable")
			out[c.Name] = cr
			continue
		}

		cr.Applicable = true
		cr.CronbachAlpha = stats.CronbachAlpha(cols)
		cr.CompositeReliability = stats.CompositeReliability(loadings)
		cr.AVE = stats.AVE(loadings)
		cr.AlphaAcceptable = v.check(cr.CronbachAlpha >= alphaThreshold)
		cr.CRAcceptable = v.check(cr.CompositeReliability >= crThreshold)
		cr.AVEAcceptable = v.check(cr.AVE >= aveThreshold)
		out[c.Name] = cr
	}
	return out
}

// pairKey gives a stable map key for an unordered construct pair, in
// declaration order of the two names as passed.
func pairKey(a, b string) string {
	return fmt.Sprintf("%s|%s", a, b)
}
