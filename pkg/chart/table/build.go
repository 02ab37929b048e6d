package table

import (
	"fmt"

	"github.com/matzehuels/growthchart/pkg/errors"
)

// EmptyTableMessage is the static message reported when no drawable column
// survives normalization.
const EmptyTableMessage = "Bar data is missing."

// Options control table normalization.
type Options struct {
	// CleanAxis trims all-zero columns from both ends. See [Trim].
	CleanAxis bool
}

// Build normalizes raw host data into a Table.
//
// Every group becomes a series named after the group (or "Series N" when the
// name is blank). Each category becomes a column reading the group's
// Column Values measure; missing or NaN cells become 0. When any group has a
// Capacities measure, a capacity column built from the first row of those
// measures is placed first. Line Values measures of the first group that has
// any supply the threshold values, again from their first row.
//
// Build fails with an ErrCodeData error when the input has no categories, no
// groups, no Column Values measure, or no labelled column.
func Build(raw Raw, opts Options) (*Table, error) {
	if len(raw.Categories) == 0 {
		return nil, errors.New(errors.ErrCodeData, "missing categories")
	}
	if len(raw.Groups) == 0 {
		return nil, errors.New(errors.ErrCodeData, "missing source")
	}

	t := &Table{Series: make([]string, len(raw.Groups))}
	values := make([]Measure, len(raw.Groups))
	var (
		hasValues   bool
		hasCapacity bool
	)
	for i, g := range raw.Groups {
		name := g.Name
		if name == "" {
			name = fmt.Sprintf("Series %d", i+1)
		}
		t.Series[i] = name

		if m, ok := g.measure(RoleColumnValues); ok {
			values[i] = m
			hasValues = true
		}
		if m, ok := g.measure(RoleCapacities); ok {
			if t.CapacityPerSeries == nil {
				t.CapacityPerSeries = make(map[string]float64, len(raw.Groups))
			}
			t.CapacityPerSeries[name] = m.at(0)
			hasCapacity = true
		}
		if t.ThresholdValues == nil {
			for _, m := range g.Measures {
				if role, ok := ParseRole(m.Role); ok && role == RoleLineValues {
					t.ThresholdValues = append(t.ThresholdValues, m.at(0))
				}
			}
		}
	}
	if !hasValues {
		return nil, errors.New(errors.ErrCodeData, "missing values")
	}

	first, last := 0, len(raw.Categories)
	for first < last && raw.Categories[first] == "" {
		first++
	}
	for last > first && raw.Categories[last-1] == "" {
		last--
	}

	if hasCapacity {
		col := Column{Label: CapacityLabel, Capacity: true, Values: make(map[string]float64, len(t.Series))}
		for _, s := range t.Series {
			col.Values[s] = t.CapacityPerSeries[s]
		}
		t.Columns = append(t.Columns, col)
	}
	for ci := first; ci < last; ci++ {
		col := Column{Label: raw.Categories[ci], Values: make(map[string]float64, len(t.Series))}
		for si, s := range t.Series {
			col.Values[s] = values[si].at(ci)
		}
		t.Columns = append(t.Columns, col)
	}
	t.reindex()

	if opts.CleanAxis {
		t = Trim(t)
	}
	if t.DataColumns() == 0 {
		return nil, errors.New(errors.ErrCodeData, EmptyTableMessage)
	}
	return t, nil
}
