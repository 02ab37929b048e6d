package source

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/errors"
)

// headerSep separates series and role in a tabular header cell.
const headerSep = "|"

// ReadCSV decodes wide-format CSV from r.
func ReadCSV(r io.Reader) (table.Raw, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return table.Raw{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode csv")
	}
	return FromRows(rows)
}

// FromRows converts wide-format rows (header first) into a [table.Raw].
// Short rows are padded with missing values.
func FromRows(rows [][]string) (table.Raw, error) {
	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return table.Raw{}, errors.New(errors.ErrCodeData, "missing categories")
	}
	header := rows[0]
	if len(header) < 2 {
		return table.Raw{}, errors.New(errors.ErrCodeData, "missing source")
	}

	var raw table.Raw
	type slot struct{ group, measure int }
	slots := make([]slot, len(header))
	groups := make(map[string]int)
	for ci := 1; ci < len(header); ci++ {
		series, role := splitHeader(header[ci])
		gi, ok := groups[series]
		if !ok {
			gi = len(raw.Groups)
			groups[series] = gi
			raw.Groups = append(raw.Groups, table.Group{Name: series})
		}
		g := &raw.Groups[gi]
		g.Measures = append(g.Measures, table.Measure{Role: role})
		slots[ci] = slot{gi, len(g.Measures) - 1}
	}

	for _, row := range rows[1:] {
		raw.Categories = append(raw.Categories, strings.TrimSpace(cell(row, 0)))
		for ci := 1; ci < len(header); ci++ {
			s := slots[ci]
			m := &raw.Groups[s.group].Measures[s.measure]
			m.Values = append(m.Values, table.ParseValue(cell(row, ci)))
		}
	}
	return raw, nil
}

func splitHeader(h string) (series, role string) {
	series, role, ok := strings.Cut(h, headerSep)
	series = strings.TrimSpace(series)
	role = strings.TrimSpace(role)
	if !ok || role == "" {
		role = string(table.RoleColumnValues)
	}
	return series, role
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
