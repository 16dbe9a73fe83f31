package model

// Builder provides a fluent API for constructing survey models.
// Items attach to the most recently declared construct.
//
// Example:
//
//	m := model.Build().
//	    Construct("Trust").
//	    Item("T1", 4.2, 1.1).
//	    Item("T2", 4.0, 1.0).
//	    Construct("Satisfaction").
//	    Item("S1", 5.0, 1.2).
//	    SkewedItem("S2", 5.1, 1.2, -0.5, 0.3).
//	    Path("Trust", "Satisfaction", 0.5).
//	    Done()
type Builder struct {
	m       *Model
	current int // index of the construct items attach to
}

// Build creates a new Builder for constructing a survey model.
func Build() *Builder {
	return &Builder{m: &Model{}, current: -1}
}

// Named sets the model name.
func (b *Builder) Named(name string) *Builder {
	b.m.Name = name
	return b
}

// Construct declares a latent construct. Subsequent Item calls attach to it.
func (b *Builder) Construct(name string) *Builder {
	b.m.Constructs = append(b.m.Constructs, ConstructSpec{Name: name})
	b.current = len(b.m.Constructs) - 1
	return b
}

// Item adds a normally shaped item (zero skew/kurtosis) to the current construct.
func (b *Builder) Item(name string, mean, std float64) *Builder {
	return b.SkewedItem(name, mean, std, 0, 0)
}

// SkewedItem adds an item with target skewness and excess kurtosis.
func (b *Builder) SkewedItem(name string, mean, std, skewness, kurtosis float64) *Builder {
	if b.current < 0 {
		// Items before any construct are silently dropped; Validate will
		// reject the empty model anyway.
		return b
	}
	c := &b.m.Constructs[b.current]
	c.Items = append(c.Items, ItemSpec{
		Name:     name,
		Mean:     mean,
		StdDev:   std,
		Skewness: skewness,
		Kurtosis: kurtosis,
	})
	return b
}

// BoundedItem adds an item with explicit scale bounds overriding the
// generator's Likert range.
func (b *Builder) BoundedItem(name string, mean, std, lo, hi float64) *Builder {
	b.SkewedItem(name, mean, std, 0, 0)
	if b.current >= 0 {
		c := &b.m.Constructs[b.current]
		it := &c.Items[len(c.Items)-1]
		it.ScaleMin, it.ScaleMax = lo, hi
	}
	return b
}

// Path declares a significant direct path with the given beta.
func (b *Builder) Path(from, to string, beta float64) *Builder {
	b.m.Paths = append(b.m.Paths, PathSpec{
		From: from, To: to, Beta: beta, Significant: true, Type: PathDirect,
	})
	return b
}

// PathWithType declares a path with an explicit type tag and significance
// intent. Moderation-tagged paths are always picked up as interaction
// candidates; see Model.ModerationCandidates.
func (b *Builder) PathWithType(from, to string, beta float64, significant bool, pt PathType) *Builder {
	b.m.Paths = append(b.m.Paths, PathSpec{
		From: from, To: to, Beta: beta, Significant: significant, Type: pt,
	})
	return b
}

// CategoricalDemographic adds a categorical column with optional weights.
// Nil weights mean uniform.
func (b *Builder) CategoricalDemographic(name string, categories []string, weights []float64) *Builder {
	b.m.Demographics = append(b.m.Demographics, DemographicSpec{
		Name: name, Type: DemographicCategorical, Categories: categories, Weights: weights,
	})
	return b
}

// NumericDemographic adds a bounded numeric column. Zero mean/std default to
// the midpoint and one sixth of the range.
func (b *Builder) NumericDemographic(name string, min, max, mean, std float64) *Builder {
	b.m.Demographics = append(b.m.Demographics, DemographicSpec{
		Name: name, Type: DemographicNumerical, Min: min, Max: max, Mean: mean, StdDev: std,
	})
	return b
}

// OrdinalDemographic adds an ordinal column encoded 1..len(levels).
func (b *Builder) OrdinalDemographic(name string, levels []string, weights []float64) *Builder {
	b.m.Demographics = append(b.m.Demographics, DemographicSpec{
		Name: name, Type: DemographicOrdinal, Levels: levels, Weights: weights,
	})
	return b
}

// Done returns the constructed model.
func (b *Builder) Done() *Model {
	return b.m
}
