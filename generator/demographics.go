package generator

import (
	"math"

	"github.com/semforge/go-semforge/model"
)

// addDemographics appends one column per demographic spec, drawn
// independently of the construct items.
func (g *Generator) addDemographics(out *Matrix) {
	for i := range g.model.Demographics {
		d := &g.model.Demographics[i]
		switch d.Type {
		case model.DemographicCategorical:
			out.addLabelColumn(d.ColumnName(), g.drawCategorical(d.Categories, d.Weights))
		case model.DemographicOrdinal:
			out.addValueColumn(d.ColumnName(), ColumnNumeric, g.drawOrdinal(len(d.Levels), d.Weights))
		case model.DemographicNumerical:
			out.addValueColumn(d.ColumnName(), ColumnNumeric, g.drawNumeric(d))
		}
	}
}

func (g *Generator) drawCategorical(categories []string, weights []float64) []string {
	cum := cumulative(len(categories), weights)
	out := make([]string, g.n)
	for i := range out {
		out[i] = categories[g.pick(cum)]
	}
	return out
}

// drawOrdinal encodes levels as 1..k.
func (g *Generator) drawOrdinal(k int, weights []float64) []float64 {
	cum := cumulative(k, weights)
	out := make([]float64, g.n)
	for i := range out {
		out[i] = float64(g.pick(cum) + 1)
	}
	return out
}

func (g *Generator) drawNumeric(d *model.DemographicSpec) []float64 {
	mean := d.Mean
	if mean == 0 {
		mean = (d.Min + d.Max) / 2
	}
	sd := d.StdDev
	if sd <= 0 {
		sd = (d.Max - d.Min) / 6
	}

	out := make([]float64, g.n)
	for i := range out {
		v := mean + sd*g.rng.NormFloat64()
		if v < d.Min {
			v = d.Min
		} else if v > d.Max {
			v = d.Max
		}
		out[i] = math.Round(v)
	}
	return out
}

// cumulative builds a cumulative weight table; nil weights mean uniform.
func cumulative(k int, weights []float64) []float64 {
	cum := make([]float64, k)
	total := 0.0
	for i := 0; i < k; i++ {
		w := 1.0
		if len(weights) == k {
			w = weights[i]
		}
		if w < 0 {
			w = 0
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		for i := range cum {
			cum[i] = float64(i + 1)
		}
		total = float64(k)
	}
	for i := range cum {
		cum[i] /= total
	}
	return cum
}

func (g *Generator) pick(cum []float64) int {
	u := g.rng.Float64()
	for i, c := range cum {
		if u <= c {
			return i
		}
	}
	return len(cum) - 1
}
