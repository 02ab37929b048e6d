// Package table builds the normalized data table every layout component reads.
//
// A [Table] is an ordered sequence of [Column] values (x-axis categories) by an
// ordered sequence of series names. It is rebuilt wholesale from host data on
// every refresh with [Build]; nothing mutates a table in place; [Trim] and
// [Table.WithoutCapacity] return new tables.
//
// # Capacity
//
// When any series carries a capacity value, a synthetic column labelled
// [CapacityLabel] is placed first. It is exempt from trimming and is treated
// as the default baseline for stacked growth indicators.
package table

import (
	"math"
	"slices"
)

// CapacityLabel is the label of the synthetic capacity column.
const CapacityLabel = "Capacity"

// Column is one x-axis category.
type Column struct {
	Label    string             `json:"label"`
	Index    int                `json:"index"`
	Values   map[string]float64 `json:"values"`
	Capacity bool               `json:"capacity,omitempty"`
}

// Value returns the column's value for a series, 0 when absent.
func (c Column) Value(series string) float64 {
	return c.Values[series]
}

// Table is the normalized columns x series data set for one layout pass.
type Table struct {
	Columns           []Column           `json:"columns"`
	Series            []string           `json:"series"`
	ThresholdValues   []float64          `json:"threshold_values,omitempty"`
	CapacityPerSeries map[string]float64 `json:"capacity_per_series,omitempty"`
}

// Len returns the number of columns.
func (t *Table) Len() int { return len(t.Columns) }

// Total returns the sum of all series values in column i.
func (t *Table) Total(i int) float64 {
	var sum float64
	for _, s := range t.Series {
		sum += t.Columns[i].Values[s]
	}
	return sum
}

// Totals returns the per-column totals in column order.
func (t *Table) Totals() []float64 {
	out := make([]float64, len(t.Columns))
	for i := range t.Columns {
		out[i] = t.Total(i)
	}
	return out
}

// MaxTotal returns the largest column total, never below 0.
func (t *Table) MaxTotal() float64 {
	var m float64
	for i := range t.Columns {
		m = max(m, t.Total(i))
	}
	return m
}

// HasCapacity reports whether the first column is the capacity column.
func (t *Table) HasCapacity() bool {
	return len(t.Columns) > 0 && t.Columns[0].Capacity
}

// IndexOf returns the index of the first column whose label equals label,
// or -1.
func (t *Table) IndexOf(label string) int {
	return slices.IndexFunc(t.Columns, func(c Column) bool { return c.Label == label })
}

// SeriesIndex returns the position of a series name, or -1.
func (t *Table) SeriesIndex(name string) int {
	return slices.Index(t.Series, name)
}

// LastNonZero returns the index of the last column with a non-zero total,
// or -1 when every column sums to zero.
func (t *Table) LastNonZero() int {
	for i := len(t.Columns) - 1; i >= 0; i-- {
		if t.Total(i) != 0 {
			return i
		}
	}
	return -1
}

// Labels returns the column labels in display order.
func (t *Table) Labels() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Label
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns:         make([]Column, len(t.Columns)),
		Series:          slices.Clone(t.Series),
		ThresholdValues: slices.Clone(t.ThresholdValues),
	}
	for i, c := range t.Columns {
		c.Values = cloneValues(c.Values)
		out.Columns[i] = c
	}
	if t.CapacityPerSeries != nil {
		out.CapacityPerSeries = cloneValues(t.CapacityPerSeries)
	}
	return out
}

// WithoutCapacity returns a copy of the table with the capacity column removed.
func (t *Table) WithoutCapacity() *Table {
	out := t.Clone()
	out.Columns = slices.DeleteFunc(out.Columns, func(c Column) bool { return c.Capacity })
	out.reindex()
	return out
}

func (t *Table) reindex() {
	for i := range t.Columns {
		t.Columns[i].Index = i
	}
}

func cloneValues(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// finite maps NaN and infinities to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// DataColumns counts the columns that are not the capacity column.
func (t *Table) DataColumns() int {
	n := 0
	for _, c := range t.Columns {
		if !c.Capacity {
			n++
		}
	}
	return n
}
