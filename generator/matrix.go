// Package generator synthesizes survey sample matrices from a model
// specification: latent factor scores per construct, structural combination
// along declared paths, Fleishman moment shaping per item, and optional
// noise and demographic columns.
package generator

import (
	"fmt"
	"strings"

	"github.com/semforge/go-semforge/model"
)

// ColumnKind distinguishes construct items from demographic columns.
type ColumnKind string

const (
	ColumnItem        ColumnKind = "item"
	ColumnNumeric     ColumnKind = "numeric"     // DEM_ numeric
	ColumnCategorical ColumnKind = "categorical" // DEM_ categorical/ordinal labels
)

// Column is one matrix column. Item and numeric columns carry Values;
// categorical columns carry Labels.
type Column struct {
	Name   string
	Kind   ColumnKind
	Values []float64
	Labels []string
}

// Matrix is a rectangular respondent-by-column sample. Item columns appear
// in construct/item declaration order followed by demographic columns.
// The validator treats it as read-only.
type Matrix struct {
	Columns  []Column
	Warnings []model.Warning

	index map[string]int
}

func newMatrix() *Matrix {
	return &Matrix{index: make(map[string]int)}
}

func (m *Matrix) addValueColumn(name string, kind ColumnKind, values []float64) {
	m.index[name] = len(m.Columns)
	m.Columns = append(m.Columns, Column{Name: name, Kind: kind, Values: values})
}

func (m *Matrix) addLabelColumn(name string, labels []string) {
	m.index[name] = len(m.Columns)
	m.Columns = append(m.Columns, Column{Name: name, Kind: ColumnCategorical, Labels: labels})
}

// N returns the number of respondents (rows).
func (m *Matrix) N() int {
	if len(m.Columns) == 0 {
		return 0
	}
	c := &m.Columns[0]
	if c.Labels != nil {
		return len(c.Labels)
	}
	return len(c.Values)
}

// Column returns the named column, or nil.
func (m *Matrix) Column(name string) *Column {
	i, ok := m.index[name]
	if !ok {
		return nil
	}
	return &m.Columns[i]
}

// ItemColumn returns the values of a construct item column.
func (m *Matrix) ItemColumn(name string) ([]float64, error) {
	c := m.Column(name)
	if c == nil {
		return nil, fmt.Errorf("matrix: no column %q", name)
	}
	if c.Kind != ColumnItem {
		return nil, fmt.Errorf("matrix: column %q is %s, not an item", name, c.Kind)
	}
	return c.Values, nil
}

// ItemColumns returns the value slices for the given item names, preserving
// order.
func (m *Matrix) ItemColumns(names []string) ([][]float64, error) {
	out := make([][]float64, len(names))
	for i, name := range names {
		col, err := m.ItemColumn(name)
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return out, nil
}

// ColumnNames returns all column names in display order.
func (m *Matrix) ColumnNames() []string {
	names := make([]string, len(m.Columns))
	for i := range m.Columns {
		names[i] = m.Columns[i].Name
	}
	return names
}

// IsDemographic reports whether a column name carries the demographic prefix.
func IsDemographic(name string) bool {
	return strings.HasPrefix(name, model.DemographicPrefix)
}
