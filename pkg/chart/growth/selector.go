package growth

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/errors"
)

// CalendarFallback decides the default baseline column when no capacity
// column exists and the lookback label is not in the table.
type CalendarFallback string

const (
	// FallbackFirst starts the search at the first column.
	FallbackFirst CalendarFallback = "first"
	// FallbackOffset starts the search Lookback columns before the later
	// endpoint, or at the first column when that underflows.
	FallbackOffset CalendarFallback = "offset"
)

// DefaultLookback is the number of periods the calendar default looks back.
const DefaultLookback = 12

// ParseCalendarFallback parses a policy name. Empty selects FallbackFirst.
func ParseCalendarFallback(s string) (CalendarFallback, error) {
	switch f := CalendarFallback(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FallbackFirst, nil
	case FallbackFirst, FallbackOffset:
		return f, nil
	}
	return "", fmt.Errorf("unknown calendar fallback %q", s)
}

var months = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Period is a parsed "Mon-YY" or "Mon-YYYY" column label.
type Period struct {
	Month     int // 0 = January
	Year      int
	yearWidth int
}

// ParsePeriod parses labels such as "Jan-21", "jan-2021" or "SEP-99".
func ParsePeriod(label string) (Period, bool) {
	mon, yr, ok := strings.Cut(strings.TrimSpace(label), "-")
	if !ok || len(mon) != 3 || (len(yr) != 2 && len(yr) != 4) {
		return Period{}, false
	}
	p := Period{Month: -1, yearWidth: len(yr)}
	for i, m := range months {
		if strings.EqualFold(m, mon) {
			p.Month = i
			break
		}
	}
	if p.Month < 0 {
		return Period{}, false
	}
	y, err := strconv.Atoi(yr)
	if err != nil || y < 0 {
		return Period{}, false
	}
	p.Year = y
	return p, true
}

// Back returns the period n months earlier. Two-digit years wrap within
// 00-99.
func (p Period) Back(n int) Period {
	total := p.Year*12 + p.Month - n
	if p.yearWidth == 2 {
		total = ((total % 1200) + 1200) % 1200
	}
	return Period{Month: ((total % 12) + 12) % 12, Year: floorDiv(total, 12), yearWidth: p.yearWidth}
}

// String formats the period as "Mon-YY" or "Mon-YYYY".
func (p Period) String() string {
	return fmt.Sprintf("%s-%0*d", months[p.Month], p.yearWidth, p.Year)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// indexFold returns the first column whose label equals label ignoring case.
func indexFold(t *table.Table, label string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c.Label, label) {
			return i
		}
	}
	return -1
}

// lookback returns the index of the column lookback periods before idx2, or
// -1 if the label does not parse, the target is missing or it is not before
// idx2.
func lookback(t *table.Table, idx2, periods int) int {
	p, ok := ParsePeriod(t.Columns[idx2].Label)
	if !ok {
		return -1
	}
	i := indexFold(t, p.Back(periods).String())
	if i < 0 || i >= idx2 {
		return -1
	}
	return i
}

// ErrNoDefault is the cause of selector errors raised when a blank selector
// has no possible default. Resolve treats these as fatal for the primary
// indicator.
var ErrNoDefault = stderrors.New("no default growth selector")

func noDefault(format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeSelectorNotFound, ErrNoDefault, format, args...)
}

func notFound(sel string) error {
	return errors.New(errors.ErrCodeSelectorNotFound, "growth selector %q not found", sel)
}

func badOrder(a, b string) error {
	return errors.New(errors.ErrCodeInvalidSelectorOrder, "growth selectors %q and %q must name two different columns in display order", a, b)
}

// ColumnPair resolves the two column indices of a stacked indicator.
//
// A blank sel2 selects the last non-zero column. A blank sel1 selects the
// capacity column when present; otherwise the column Lookback periods
// before sel2 by calendar label, falling back per policy, and then advances
// to the first column with a non-zero total. The resolved sel1 must be
// strictly before sel2.
func ColumnPair(t *table.Table, sel1, sel2 string, opts Options) (int, int, error) {
	sel1, sel2 = strings.TrimSpace(sel1), strings.TrimSpace(sel2)

	idx2 := t.LastNonZero()
	if sel2 != "" {
		if idx2 = t.IndexOf(sel2); idx2 < 0 {
			return 0, 0, notFound(sel2)
		}
	} else if idx2 < 0 {
		return 0, 0, noDefault("no column with a non-zero total")
	}

	if sel1 != "" {
		idx1 := t.IndexOf(sel1)
		if idx1 < 0 {
			return 0, 0, notFound(sel1)
		}
		if idx1 >= idx2 {
			return 0, 0, badOrder(sel1, t.Columns[idx2].Label)
		}
		return idx1, idx2, nil
	}

	if t.HasCapacity() {
		if idx2 == 0 {
			return 0, 0, badOrder(table.CapacityLabel, t.Columns[idx2].Label)
		}
		return 0, idx2, nil
	}

	periods := opts.Lookback
	if periods <= 0 {
		periods = DefaultLookback
	}
	idx1 := lookback(t, idx2, periods)
	if idx1 < 0 {
		idx1 = 0
		if opts.CalendarFallback == FallbackOffset {
			idx1 = max(idx2-periods, 0)
		}
	}
	for idx1 < idx2 && t.Total(idx1) == 0 {
		idx1++
	}
	if idx1 >= idx2 {
		return 0, 0, badOrder(t.Columns[min(idx1, len(t.Columns)-1)].Label, t.Columns[idx2].Label)
	}
	return idx1, idx2, nil
}

// SeriesPair resolves the two series indices of a clustered indicator.
// Blank selectors default to the second-to-last and last series.
func SeriesPair(t *table.Table, sel1, sel2 string) (int, int, error) {
	sel1, sel2 = strings.TrimSpace(sel1), strings.TrimSpace(sel2)
	n := len(t.Series)

	resolve := func(sel string, def int) (int, error) {
		if sel == "" {
			if def < 0 {
				return 0, noDefault("growth needs at least two series")
			}
			return def, nil
		}
		i := t.SeriesIndex(sel)
		if i < 0 {
			return 0, notFound(sel)
		}
		return i, nil
	}
	s1, err := resolve(sel1, n-2)
	if err != nil {
		return 0, 0, err
	}
	s2, err := resolve(sel2, n-1)
	if err != nil {
		return 0, 0, err
	}
	if s1 == s2 {
		return 0, 0, badOrder(t.Series[s1], t.Series[s2])
	}
	return s1, s2, nil
}

// SplitList splits a comma-separated selector list, trimming each entry.
// An empty list yields one blank selector.
func SplitList(list string) []string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// zip pairs two selector lists positionally, padding the shorter with blanks.
func zip(a, b []string) [][2]string {
	n := max(len(a), len(b))
	out := make([][2]string, n)
	for i := range out {
		if i < len(a) {
			out[i][0] = a[i]
		}
		if i < len(b) {
			out[i][1] = b[i]
		}
	}
	return out
}
