package table

// Trim returns a copy of t with all-zero columns removed from both ends.
// Trimming stops at the first column with a non-zero total from each side.
// The capacity column is exempt wherever it sits and is always returned
// first. Trim is idempotent.
func Trim(t *Table) *Table {
	out := t.Clone()

	var capacity []Column
	data := make([]Column, 0, len(out.Columns))
	for _, c := range out.Columns {
		if c.Capacity {
			capacity = append(capacity, c)
			continue
		}
		data = append(data, c)
	}

	start, end := 0, len(data)
	for start < end && columnTotal(data[start], out.Series) == 0 {
		start++
	}
	for end > start && columnTotal(data[end-1], out.Series) == 0 {
		end--
	}

	out.Columns = append(capacity, data[start:end]...)
	out.reindex()
	return out
}

func columnTotal(c Column, series []string) float64 {
	var sum float64
	for _, s := range series {
		sum += c.Values[s]
	}
	return sum
}
