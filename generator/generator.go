package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/semforge/go-semforge/model"
	"github.com/semforge/go-semforge/stats"
)

// Generator produces sample matrices for one model. A Generator is built per
// run; it holds no state shared across runs.
type Generator struct {
	model    *model.Model
	n        int
	opts     *Options
	rng      *rand.Rand
	warnings []model.Warning
}

// New creates a generator for the given model and sample size. Nil options
// select DefaultOptions.
func New(m *model.Model, sampleSize int, opts *Options) *Generator {
	if opts == nil {
		opts = DefaultOptions()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		model: m,
		n:     sampleSize,
		opts:  opts,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Generate runs the full synthesis pipeline and returns the sample matrix.
// Specification errors are returned before any drawing happens; numerical
// infeasibilities are recovered with a best-effort approximation and
// recorded on Matrix.Warnings.
func (g *Generator) Generate() (*Matrix, error) {
	if err := g.model.Validate(); err != nil {
		return nil, err
	}
	if g.n < MinSampleSize || g.n > MaxSampleSize {
		return nil, fmt.Errorf("sample size %d outside [%d, %d]", g.n, MinSampleSize, MaxSampleSize)
	}
	if g.opts.LikertScale < 2 {
		return nil, fmt.Errorf("likert scale %d must be at least 2", g.opts.LikertScale)
	}
	// Mean feasibility depends on the run's Likert scale, so items without
	// explicit bounds can only be checked here, not in Model.Validate.
	for ci := range g.model.Constructs {
		c := &g.model.Constructs[ci]
		for ii := range c.Items {
			it := &c.Items[ii]
			lo, hi := it.Bounds(float64(g.opts.LikertScale))
			if it.Mean < lo || it.Mean > hi {
				return nil, fmt.Errorf("item %q: %w: mean %g outside scale bounds [%g, %g]",
					it.Name, model.ErrBadItemSpec, it.Mean, lo, hi)
			}
		}
	}

	factors := g.latentFactors()

	out := newMatrix()
	for ci := range g.model.Constructs {
		c := &g.model.Constructs[ci]
		factor := factors[c.Name]
		for ii := range c.Items {
			it := &c.Items[ii]
			out.addValueColumn(it.Name, ColumnItem, g.generateItem(it, factor))
		}
	}

	g.addDemographics(out)

	out.Warnings = g.warnings
	return out, nil
}

// latentFactors draws one standard-normal factor per construct and combines
// them along the structural model in topological order. Each endogenous
// factor is the beta-weighted sum of its predictors plus a residual scaled
// to preserve unit variance; the residual is floored when the declared betas
// over-specify the construct. All factors are re-standardized to the sample.
func (g *Generator) latentFactors() map[string][]float64 {
	// Base draws happen in declaration order so results are seed-stable
	// regardless of path topology.
	base := make(map[string][]float64, len(g.model.Constructs))
	for i := range g.model.Constructs {
		base[g.model.Constructs[i].Name] = g.normals(g.n)
	}

	order, cyclic := g.model.ConstructOrder()
	for _, name := range cyclic {
		g.warn("topology", name, "construct is part of a path cycle; predecessors applied in declaration order")
	}

	factors := make(map[string][]float64, len(g.model.Constructs))
	for _, name := range order {
		preds := g.model.Predecessors(name)
		z := base[name]

		if len(preds) == 0 {
			factors[name] = stats.Standardize(z)
			continue
		}

		sumBetaSq := 0.0
		combined := make([]float64, g.n)
		for _, p := range preds {
			pf := factors[p.From]
			if pf == nil {
				// Unresolved predecessor inside a cycle; skip it, the
				// topology warning already covers this construct.
				continue
			}
			beta := effectiveBeta(p)
			sumBetaSq += beta * beta
			for i := range combined {
				combined[i] += beta * pf[i]
			}
		}

		residual := 1 - sumBetaSq
		if residual < residualFloor {
			g.warn("variance", name,
				fmt.Sprintf("declared betas over-specify construct (sum beta^2 = %.3f); residual variance floored at %g",
					sumBetaSq, residualFloor))
			residual = residualFloor
		}
		scale := math.Sqrt(residual)
		for i := range combined {
			combined[i] += scale * z[i]
		}
		factors[name] = stats.Standardize(combined)
	}

	return factors
}

// effectiveBeta attenuates paths the caller declared non-significant so the
// generated relationship fails significance tests as intended.
func effectiveBeta(p model.PathSpec) float64 {
	if !p.Significant {
		return p.Beta * 0.1
	}
	return p.Beta
}

// generateItem draws one item column: factor plus item-specific noise,
// Fleishman shaping, rescale to target moments, response noise, then clip
// and round inside the scale bounds. Rounding is last so moment matching is
// computed pre-discretization.
func (g *Generator) generateItem(it *model.ItemSpec, factor []float64) []float64 {
	communality := g.opts.Communality
	loadW := math.Sqrt(communality)
	errW := math.Sqrt(1 - communality)

	raw := make([]float64, g.n)
	for i := range raw {
		raw[i] = loadW*factor[i] + errW*g.rng.NormFloat64()
	}

	coeffs, feasible := stats.SolveFleishman(it.Skewness, it.Kurtosis)
	if !feasible {
		g.warn("feasibility", it.Name,
			fmt.Sprintf("skewness %.2f / kurtosis %.2f outside the Fleishman region; using clamped approximation",
				it.Skewness, it.Kurtosis))
	}
	if !coeffs.IsIdentity() {
		for i, v := range raw {
			raw[i] = coeffs.Apply(v)
		}
	}

	// Rescale the sample exactly to the target mean and SD.
	values := stats.Standardize(raw)
	for i := range values {
		values[i] = it.Mean + it.StdDev*values[i]
	}

	if g.opts.AddNoise && g.opts.NoiseLevel > 0 {
		noiseSD := g.opts.NoiseLevel * float64(g.opts.LikertScale)
		for i := range values {
			values[i] += g.rng.NormFloat64() * noiseSD
		}
	}

	lo, hi := it.Bounds(float64(g.opts.LikertScale))
	for i, v := range values {
		if v < lo {
			v = lo
		} else if v > hi {
			v = hi
		}
		values[i] = math.Round(v)
	}

	return values
}

func (g *Generator) normals(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.rng.NormFloat64()
	}
	return out
}

func (g *Generator) warn(category, target, message string) {
	g.warnings = append(g.warnings, model.Warning{
		Category: category,
		Target:   target,
		Message:  message,
	})
}
