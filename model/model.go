// Package model defines construct, item and path specifications for a
// structural-equation (PLS-SEM) survey model, plus the derived topology
// (mediation chains, moderation candidates, construct ordering) used by the
// generator and the validator.
package model

import (
	"errors"
	"fmt"
)

// PathType tags a declared path. It is a caller hint only: mediation chains
// are always derived from topology, never trusted from the tag.
type PathType string

const (
	PathDirect     PathType = "direct"
	PathMediation  PathType = "mediation"
	PathModeration PathType = "moderation"
)

// DemographicType selects how a demographic column is drawn.
type DemographicType string

const (
	DemographicCategorical DemographicType = "categorical"
	DemographicNumerical   DemographicType = "numerical"
	DemographicOrdinal     DemographicType = "ordinal"
)

// DemographicPrefix distinguishes demographic columns from construct items.
const DemographicPrefix = "DEM_"

// Specification errors. All are detected synchronously by Validate before
// any computation starts.
var (
	ErrNoConstructs     = errors.New("model has no constructs")
	ErrNoItems          = errors.New("construct has no items")
	ErrDuplicateName    = errors.New("duplicate name")
	ErrUnknownConstruct = errors.New("path references unknown construct")
	ErrBetaOutOfRange   = errors.New("path beta outside [-1, 1]")
	ErrBadItemSpec      = errors.New("invalid item specification")
	ErrBadDemographic   = errors.New("invalid demographic specification")
	ErrSelfPath         = errors.New("path from construct to itself")
	ErrDuplicatePath    = errors.New("duplicate path declaration")
)

// ItemSpec describes one observed survey item (a single column).
type ItemSpec struct {
	Name     string  `json:"name"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	// ScaleMin/ScaleMax override the model-wide Likert bounds when both are
	// set. Zero values mean "use the generator's Likert scale".
	ScaleMin float64 `json:"scaleMin,omitempty"`
	ScaleMax float64 `json:"scaleMax,omitempty"`
}

// Bounds returns the item's scale bounds, falling back to [1, likert].
func (it *ItemSpec) Bounds(likert float64) (lo, hi float64) {
	if it.ScaleMax > it.ScaleMin {
		return it.ScaleMin, it.ScaleMax
	}
	return 1, likert
}

// ConstructSpec is a latent variable measured by one or more items.
type ConstructSpec struct {
	Name  string     `json:"name"`
	Items []ItemSpec `json:"items"`
}

// ItemNames returns the item names in declaration order.
func (c *ConstructSpec) ItemNames() []string {
	names := make([]string, len(c.Items))
	for i := range c.Items {
		names[i] = c.Items[i].Name
	}
	return names
}

// PathSpec is a directed structural relationship between two constructs.
type PathSpec struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	Beta        float64  `json:"beta"`
	Significant bool     `json:"significant"`
	Type        PathType `json:"type,omitempty"`
}

// DemographicSpec describes an optional demographic column.
type DemographicSpec struct {
	Name       string          `json:"name"`
	Type       DemographicType `json:"type"`
	Categories []string        `json:"categories,omitempty"` // categorical
	Levels     []string        `json:"levels,omitempty"`     // ordinal
	Weights    []float64       `json:"weights,omitempty"`    // categorical/ordinal
	Min        float64         `json:"min,omitempty"`        // numerical
	Max        float64         `json:"max,omitempty"`
	Mean       float64         `json:"mean,omitempty"`
	StdDev     float64         `json:"std,omitempty"`
}

// ColumnName returns the prefixed matrix column name.
func (d *DemographicSpec) ColumnName() string {
	return DemographicPrefix + d.Name
}

// Model is a complete construct/path specification. It is immutable during a
// generation run; callers build it once via Build() or literal construction
// and must call Validate before handing it to the generator.
type Model struct {
	Name         string            `json:"name,omitempty"`
	Constructs   []ConstructSpec   `json:"constructs"`
	Paths        []PathSpec        `json:"paths,omitempty"`
	Demographics []DemographicSpec `json:"demographics,omitempty"`
}

// Construct returns the named construct, or nil.
func (m *Model) Construct(name string) *ConstructSpec {
	for i := range m.Constructs {
		if m.Constructs[i].Name == name {
			return &m.Constructs[i]
		}
	}
	return nil
}

// ConstructNames returns construct names in declaration order.
func (m *Model) ConstructNames() []string {
	names := make([]string, len(m.Constructs))
	for i := range m.Constructs {
		names[i] = m.Constructs[i].Name
	}
	return names
}

// ItemCount returns the total number of declared items.
func (m *Model) ItemCount() int {
	n := 0
	for i := range m.Constructs {
		n += len(m.Constructs[i].Items)
	}
	return n
}

// Predecessors returns the declared direct predictors of a construct, in
// path declaration order.
func (m *Model) Predecessors(name string) []PathSpec {
	var preds []PathSpec
	for _, p := range m.Paths {
		if p.To == name {
			preds = append(preds, p)
		}
	}
	return preds
}

// DirectPath returns the declared path from→to, or nil.
func (m *Model) DirectPath(from, to string) *PathSpec {
	for i := range m.Paths {
		if m.Paths[i].From == from && m.Paths[i].To == to {
			return &m.Paths[i]
		}
	}
	return nil
}

// Validate checks the specification against the error taxonomy: empty
// constructs, duplicate names or paths, dangling path references, out-of-range betas
// and malformed item or demographic parameters. The returned error names the
// offending field.
func (m *Model) Validate() error {
	if len(m.Constructs) == 0 {
		return ErrNoConstructs
	}

	constructSeen := make(map[string]bool, len(m.Constructs))
	itemSeen := make(map[string]bool, m.ItemCount())

	for i := range m.Constructs {
		c := &m.Constructs[i]
		if c.Name == "" {
			return fmt.Errorf("construct %d: %w: empty construct name", i, ErrBadItemSpec)
		}
		if constructSeen[c.Name] {
			return fmt.Errorf("construct %q: %w", c.Name, ErrDuplicateName)
		}
		constructSeen[c.Name] = true

		if len(c.Items) == 0 {
			return fmt.Errorf("construct %q: %w", c.Name, ErrNoItems)
		}
		for j := range c.Items {
			it := &c.Items[j]
			if it.Name == "" {
				return fmt.Errorf("construct %q item %d: %w: empty item name", c.Name, j, ErrBadItemSpec)
			}
			if itemSeen[it.Name] {
				return fmt.Errorf("item %q: %w", it.Name, ErrDuplicateName)
			}
			itemSeen[it.Name] = true

			if it.StdDev <= 0 {
				return fmt.Errorf("item %q: %w: std must be > 0, got %g", it.Name, ErrBadItemSpec, it.StdDev)
			}
			if it.ScaleMax > it.ScaleMin {
				if it.Mean < it.ScaleMin || it.Mean > it.ScaleMax {
					return fmt.Errorf("item %q: %w: mean %g outside scale bounds [%g, %g]",
						it.Name, ErrBadItemSpec, it.Mean, it.ScaleMin, it.ScaleMax)
				}
			}
		}
	}

	pathSeen := make(map[string]bool, len(m.Paths))
	for i := range m.Paths {
		p := &m.Paths[i]
		if !constructSeen[p.From] {
			return fmt.Errorf("path %d (%s -> %s): from: %w: %q", i, p.From, p.To, ErrUnknownConstruct, p.From)
		}
		if !constructSeen[p.To] {
			return fmt.Errorf("path %d (%s -> %s): to: %w: %q", i, p.From, p.To, ErrUnknownConstruct, p.To)
		}
		if p.From == p.To {
			return fmt.Errorf("path %d: %w: %q", i, ErrSelfPath, p.From)
		}
		key := p.From + "->" + p.To
		if pathSeen[key] {
			return fmt.Errorf("path %d: %w: %s -> %s", i, ErrDuplicatePath, p.From, p.To)
		}
		pathSeen[key] = true
		if p.Beta < -1 || p.Beta > 1 {
			return fmt.Errorf("path %s -> %s: %w: got %g", p.From, p.To, ErrBetaOutOfRange, p.Beta)
		}
	}

	for i := range m.Demographics {
		d := &m.Demographics[i]
		if d.Name == "" {
			return fmt.Errorf("demographic %d: %w: empty name", i, ErrBadDemographic)
		}
		switch d.Type {
		case DemographicCategorical:
			if len(d.Categories) == 0 {
				return fmt.Errorf("demographic %q: %w: categorical needs categories", d.Name, ErrBadDemographic)
			}
			if len(d.Weights) > 0 && len(d.Weights) != len(d.Categories) {
				return fmt.Errorf("demographic %q: %w: %d weights for %d categories",
					d.Name, ErrBadDemographic, len(d.Weights), len(d.Categories))
			}
		case DemographicOrdinal:
			if len(d.Levels) == 0 {
				return fmt.Errorf("demographic %q: %w: ordinal needs levels", d.Name, ErrBadDemographic)
			}
			if len(d.Weights) > 0 && len(d.Weights) != len(d.Levels) {
				return fmt.Errorf("demographic %q: %w: %d weights for %d levels",
					d.Name, ErrBadDemographic, len(d.Weights), len(d.Levels))
			}
		case DemographicNumerical:
			if d.Max <= d.Min {
				return fmt.Errorf("demographic %q: %w: max %g <= min %g", d.Name, ErrBadDemographic, d.Max, d.Min)
			}
		default:
			return fmt.Errorf("demographic %q: %w: unknown type %q", d.Name, ErrBadDemographic, d.Type)
		}
	}

	return nil
}

// Warning is a recoverable condition recorded during generation or
// validation. It is attached to the report rather than failing the run.
type Warning struct {
	Category string `json:"category"` // "feasibility", "variance", "degenerate", "topology"
	Target   string `json:"target"`   // item, construct or path the warning refers to
	Message  string `json:"message"`
}
