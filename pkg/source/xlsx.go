package source

import (
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/errors"
)

// ReadXLSX decodes a wide-format worksheet from an XLSX workbook. An empty
// sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (table.Raw, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return table.Raw{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return table.Raw{}, errors.New(errors.ErrCodeData, "workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return table.Raw{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", sheet)
	}
	return FromRows(rows)
}

// WriteXLSX writes raw as a wide-format worksheet. Capacity and Line Values
// measures fill only the first data row.
func WriteXLSX(raw table.Raw, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []any{"Category"}
	for _, g := range raw.Groups {
		for _, m := range g.Measures {
			name := g.Name
			if role, ok := table.ParseRole(m.Role); !ok || role != table.RoleColumnValues {
				name += headerSep + m.Role
			}
			header = append(header, name)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write header")
	}

	for ri, category := range raw.Categories {
		row := []any{category}
		for _, g := range raw.Groups {
			for _, m := range g.Measures {
				row = append(row, xlsxCell(m, ri))
			}
		}
		cellName, err := excelize.CoordinatesToCellName(1, ri+2)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "cell name")
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write row %d", ri+2)
		}
	}
	return f.Write(w)
}

// xlsxCell returns the i-th value of m, or nil for a missing cell.
func xlsxCell(m table.Measure, i int) any {
	if i >= len(m.Values) {
		return nil
	}
	v := float64(m.Values[i])
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
