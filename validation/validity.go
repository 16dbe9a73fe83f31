package validation

import (
	"math"

	"github.com/semforge/go-semforge/stats"
)

const htmtThreshold = 0.85

// testValidity runs the three discriminant-validity criteria. Pairs
// involving single-item or zero-variance constructs cannot be judged; they
// are marked degenerate and excluded from the overall verdict.
func (v *Validator) testValidity() *ValidityReport {
	return &ValidityReport{
		FornellLarcker: v.fornellLarcker(),
		HTMT:           v.htmt(),
		CrossLoadings:  v.crossLoadings(),
	}
}

func (v *Validator) fornellLarcker() map[string]*FornellLarckerPair {
	names := v.mod.ConstructNames()
	out := make(map[string]*FornellLarckerPair)
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := names[i], names[j]
			pair := &FornellLarckerPair{
				ConstructA:  a,
				ConstructB:  b,
				Correlation: stats.Correlation(v.scores[a], v.scores[b]),
				SqrtAVEA:    sqrtNonNeg(v.constructAVE(a)),
				SqrtAVEB:    sqrtNonNeg(v.constructAVE(b)),
			}
			if math.IsNaN(pair.Correlation) || math.IsNaN(pair.SqrtAVEA) || math.IsNaN(pair.SqrtAVEB) {
				pair.Degenerate = true
				v.warn("degenerate", pairKey(a, b), "Fornell-Larcker not computable for pair")
			} else {
				r := math.Abs(pair.Correlation)
				pair.Valid = v.check(pair.SqrtAVEA > r && pair.SqrtAVEB > r)
			}
			out[pairKey(a, b)] = pair
		}
	}
	return out
}

// constructAVE recomputes AVE from the construct's item loadings. NaN for
// single-item constructs and zero-variance items.
func (v *Validator) constructAVE(name string) float64 {
	c := v.mod.Construct(name)
	if c == nil || len(c.Items) < 2 {
		return math.NaN()
	}
	cols, _ := v.matrix.ItemColumns(c.ItemNames())
	loadings := stats.Loadings(cols)
	for _, l := range loadings {
		if math.IsNaN(l) {
			return math.NaN()
		}
	}
	return stats.AVE(loadings)
}

// htmt computes the heterotrait-monotrait ratio per pair: the mean absolute
// cross-construct item correlation over the geometric mean of the two mean
// within-construct item correlations.
func (v *Validator) htmt() map[string]*HTMTPair {
	names := v.mod.ConstructNames()
	out := make(map[string]*HTMTPair)
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := names[i], names[j]
			pair := &HTMTPair{ConstructA: a, ConstructB: b, HTMT: v.htmtRatio(a, b)}
			if math.IsNaN(pair.HTMT) {
				pair.Degenerate = true
				v.warn("degenerate", pairKey(a, b), "HTMT not computable for pair")
			} else {
				pair.Valid = v.check(pair.HTMT < htmtThreshold)
			}
			out[pairKey(a, b)] = pair
		}
	}
	return out
}

func (v *Validator) htmtRatio(a, b string) float64 {
	itemsA, _ := v.matrix.ItemColumns(v.mod.Construct(a).ItemNames())
	itemsB, _ := v.matrix.ItemColumns(v.mod.Construct(b).ItemNames())

	hetero := meanAbsCrossCorrelation(itemsA, itemsB)
	monoA := meanAbsWithinCorrelation(itemsA)
	monoB := meanAbsWithinCorrelation(itemsB)
	if math.IsNaN(hetero) || math.IsNaN(monoA) || math.IsNaN(monoB) || monoA <= 0 || monoB <= 0 {
		return math.NaN()
	}
	return hetero / math.Sqrt(monoA*monoB)
}

func meanAbsCrossCorrelation(a, b [][]float64) float64 {
	sum, n := 0.0, 0
	for _, x := range a {
		for _, y := range b {
			r := stats.Correlation(x, y)
			if math.IsNaN(r) {
				return math.NaN()
			}
			sum += math.Abs(r)
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func meanAbsWithinCorrelation(items [][]float64) float64 {
	sum, n := 0.0, 0
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			r := stats.Correlation(items[i], items[j])
			if math.IsNaN(r) {
				return math.NaN()
			}
			sum += math.Abs(r)
			n++
		}
	}
	if n == 0 {
		// single-item construct, no monotrait correlations
		return math.NaN()
	}
	return sum / float64(n)
}

// crossLoadings correlates every item with every construct score. Absolute
// correlations are compared; the item passes when its own-construct loading
// strictly exceeds every cross loading.
func (v *Validator) crossLoadings() map[string]*CrossLoading {
	names := v.mod.ConstructNames()
	out := make(map[string]*CrossLoading)
	for i := range v.mod.Constructs {
		c := &v.mod.Constructs[i]
		for _, itemName := range c.ItemNames() {
			data, _ := v.matrix.ItemColumn(itemName)
			cl := &CrossLoading{
				OwnConstruct: c.Name,
				Loadings:     make(map[string]float64),
			}
			maxCross := math.Inf(-1)
			for _, target := range names {
				r := stats.Correlation(data, v.scores[target])
				cl.Loadings[target] = r
				if math.IsNaN(r) {
					cl.Degenerate = true
					continue
				}
				if target == c.Name {
					cl.OwnLoading = math.Abs(r)
				} else if math.Abs(r) > maxCross {
					maxCross = math.Abs(r)
				}
			}
			if cl.Degenerate {
				v.warn("degenerate", itemName, "cross-loadings not computable")
			} else {
				if len(names) > 1 {
					cl.MaxCrossLoading = maxCross
				}
				cl.Valid = v.check(len(names) < 2 || cl.OwnLoading > cl.MaxCrossLoading)
			}
			out[itemName] = cl
		}
	}
	return out
}

func sqrtNonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}
