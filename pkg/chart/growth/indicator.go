package growth

import (
	stderrors "errors"

	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/geom"
	"github.com/matzehuels/growthchart/pkg/chart/scale"
	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/errors"
	"github.com/matzehuels/growthchart/pkg/measure"
)

// Frame is the resolved chart geometry indicators are drawn against.
type Frame struct {
	Table *table.Table
	Type  chart.Type
	Band  scale.Band
	Y     scale.Linear
	// TrueWidth bounds secondary indicators on the right: the plot width
	// plus the horizontal margin.
	TrueWidth float64
}

// Result collects resolved indicators and skipped groups.
type Result struct {
	Indicators []Indicator
	Warnings   []error
}

// Resolve computes the primary and secondary indicator families. Per-group
// failures become warnings. The returned error is non-nil only when the
// enabled primary family of a stacked chart cannot derive a default
// selector at all. A clustered chart with a single series has no pair to
// compare and only records a warning.
func Resolve(f Frame, m measure.Measurer, primary, secondary Options) (Result, error) {
	var res Result
	if primary.Enabled {
		var err error
		if f.Type == chart.Clustered {
			err = res.clusteredPrimary(f, m, primary)
		} else {
			err = res.stackedPrimary(f, m, primary)
		}
		if err != nil {
			if stderrors.Is(err, ErrNoDefault) && f.Type != chart.Clustered {
				return Result{}, err
			}
			res.Warnings = append(res.Warnings, groupError(Primary, 0, err))
		}
	}
	if secondary.Enabled {
		if f.Type == chart.Clustered {
			res.clusteredSecondary(f, m, secondary)
		} else {
			res.stackedSecondary(f, m, secondary)
		}
	}
	return res, nil
}

// groupError prefixes a per-group error with its family and position while
// keeping its code.
func groupError(k Kind, group int, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "%s growth indicator %d skipped", k, group+1)
}

// ============================================================================
// Stacked
// ============================================================================

func (r *Result) stackedPrimary(f Frame, m measure.Measurer, opts Options) error {
	i1, i2, err := ColumnPair(f.Table, opts.Selector1, opts.Selector2, opts)
	if err != nil {
		return err
	}
	v1, v2 := f.Table.Total(i1), f.Table.Total(i2)
	pct, err := Percent(v1, v2)
	if err != nil {
		return err
	}
	ind := primaryGeometry(
		geom.Pt(f.Band.Center(i1), f.Y.Y(v1)),
		geom.Pt(f.Band.Center(i2), f.Y.Y(v2)),
		opts,
	)
	ind.fill(Primary, 0, f.Table.Columns[i1].Label, f.Table.Columns[i2].Label, -1, v1, v2, pct, m, opts)
	r.Indicators = append(r.Indicators, ind)
	return nil
}

func (r *Result) stackedSecondary(f Frame, m measure.Measurer, opts Options) {
	pairs := zip(SplitList(opts.Selector1), SplitList(opts.Selector2))
	for g, p := range pairs {
		i1, i2, err := secondaryColumns(f.Table, p[0], p[1])
		if err != nil {
			r.Warnings = append(r.Warnings, groupError(Secondary, g, err))
			continue
		}
		v1, v2 := f.Table.Total(i1), f.Table.Total(i2)
		pct, err := Percent(v1, v2)
		if err != nil {
			r.Warnings = append(r.Warnings, groupError(Secondary, g, err))
			continue
		}
		x1, x2 := f.Band.X(i1), f.Band.X(i2)
		if opts.Label.Side != SideLeft {
			x1 += f.Band.Bandwidth()
			x2 += f.Band.Bandwidth()
		}
		ind := sideGeometry(geom.Pt(x1, f.Y.Y(v1)), geom.Pt(x2, f.Y.Y(v2)), f.TrueWidth, opts)
		ind.fill(Secondary, g, f.Table.Columns[i1].Label, f.Table.Columns[i2].Label, -1, v1, v2, pct, m, opts)
		r.Indicators = append(r.Indicators, ind)
	}
}

// secondaryColumns resolves a secondary stacked pair. A blank sel2 selects
// the last non-zero column and a blank sel1 the column just before sel2.
func secondaryColumns(t *table.Table, sel1, sel2 string) (int, int, error) {
	idx2 := t.LastNonZero()
	if sel2 != "" {
		if idx2 = t.IndexOf(sel2); idx2 < 0 {
			return 0, 0, notFound(sel2)
		}
	} else if idx2 < 0 {
		return 0, 0, errors.New(errors.ErrCodeSelectorNotFound, "no column with a non-zero total")
	}
	idx1 := idx2 - 1
	if sel1 != "" {
		if idx1 = t.IndexOf(sel1); idx1 < 0 {
			return 0, 0, notFound(sel1)
		}
	}
	if idx1 < 0 || idx1 >= idx2 {
		first := sel1
		if first == "" {
			first = "(previous column)"
		}
		return 0, 0, badOrder(first, t.Columns[idx2].Label)
	}
	return idx1, idx2, nil
}

// ============================================================================
// Clustered
// ============================================================================

// slotCenter returns the horizontal center of series si in column ci.
func slotCenter(f Frame, ci, si int) float64 {
	w := f.Band.Bandwidth() / float64(len(f.Table.Series))
	return f.Band.X(ci) + w*float64(si) + w/2
}

func (r *Result) clusteredPrimary(f Frame, m measure.Measurer, opts Options) error {
	s1, s2, err := SeriesPair(f.Table, opts.Selector1, opts.Selector2)
	if err != nil {
		return err
	}
	name1, name2 := f.Table.Series[s1], f.Table.Series[s2]
	for ci, col := range f.Table.Columns {
		v1, v2 := col.Values[name1], col.Values[name2]
		if v1 == 0 || v2 == 0 {
			continue
		}
		pct, _ := Percent(v1, v2)
		ind := primaryGeometry(
			geom.Pt(slotCenter(f, ci, s1), f.Y.Y(v1)),
			geom.Pt(slotCenter(f, ci, s2), f.Y.Y(v2)),
			opts,
		)
		ind.fill(Primary, ci, name1, name2, ci, v1, v2, pct, m, opts)
		r.Indicators = append(r.Indicators, ind)
	}
	return nil
}

func (r *Result) clusteredSecondary(f Frame, m measure.Measurer, opts Options) {
	s1, s2, err := SeriesPair(f.Table, opts.Selector1, opts.Selector2)
	if err != nil {
		r.Warnings = append(r.Warnings, groupError(Secondary, 0, err))
		return
	}
	name1, name2 := f.Table.Series[s1], f.Table.Series[s2]
	slot := f.Band.Bandwidth() / float64(len(f.Table.Series))

	for g, sel := range SplitList(opts.SelectorsList) {
		ci := f.Table.LastNonZero()
		if sel != "" {
			ci = f.Table.IndexOf(sel)
		}
		if ci < 0 {
			if sel == "" {
				sel = "(last column)"
			}
			r.Warnings = append(r.Warnings, groupError(Secondary, g, notFound(sel)))
			continue
		}
		v1, v2 := f.Table.Columns[ci].Values[name1], f.Table.Columns[ci].Values[name2]
		pct, err := Percent(v1, v2)
		if err != nil {
			r.Warnings = append(r.Warnings, groupError(Secondary, g, err))
			continue
		}
		x1 := f.Band.X(ci) + slot*float64(s1)
		x2 := f.Band.X(ci) + slot*float64(s2)
		if opts.Label.Side != SideLeft {
			x1 += slot
			x2 += slot
		}
		ind := sideGeometry(geom.Pt(x1, f.Y.Y(v1)), geom.Pt(x2, f.Y.Y(v2)), f.TrueWidth, opts)
		ind.fill(Secondary, g, name1, name2, ci, v1, v2, pct, m, opts)
		r.Indicators = append(r.Indicators, ind)
	}
}

// ============================================================================
// Geometry
// ============================================================================

// primaryGeometry builds the bracket above two bar tops a and b: vertical
// legs rise by the line offset to a shared row, joined horizontally. The
// row sits two label heights above the higher endpoint, clamped to the plot
// top, unless indicators are aligned at the top.
func primaryGeometry(a, b geom.Point, opts Options) Indicator {
	off := opts.Line.OffsetHeight
	p1 := geom.Pt(a.X, a.Y-off)
	p2 := geom.Pt(b.X, b.Y-off)

	var row float64
	if !opts.Label.AlignIndicators {
		row = max(min(p1.Y, p2.Y)-2*opts.Label.Height, 0) - opts.Label.OffsetHeight
	}
	return Indicator{
		Path:   []geom.Point{p1, geom.Pt(p1.X, row), geom.Pt(p2.X, row), p2},
		Label:  geom.Pt((p1.X+p2.X)/2, row),
		Arrows: arrows([]geom.Point{p1, p2}, opts.Line.Arrow, RotationDown, RotationDown),
	}
}

// sideGeometry builds the bracket beside two bar tops a and b: horizontal
// legs reach a shared column offset to one side, joined vertically.
func sideGeometry(a, b geom.Point, trueWidth float64, opts Options) Indicator {
	var (
		xPos float64
		rot  float64
	)
	if opts.Label.Side == SideLeft {
		xPos = max(min(a.X, b.X)-opts.Label.XOffset, 0)
		rot = RotationRight
	} else {
		xPos = max(a.X, b.X) + opts.Label.XOffset
		if trueWidth > 0 {
			xPos = min(xPos, trueWidth)
		}
		rot = RotationLeft
	}
	path := []geom.Point{a, geom.Pt(xPos, a.Y), geom.Pt(xPos, b.Y), b}
	return Indicator{
		Path:   path,
		Label:  geom.Pt(xPos, (a.Y+b.Y)/2),
		Arrows: arrows(path, opts.Line.Arrow, rot, rot),
	}
}

// fill sets the descriptive fields and sizes the label.
func (ind *Indicator) fill(k Kind, group int, from, to string, column int, v1, v2, pct float64, m measure.Measurer, opts Options) {
	ind.Kind = k
	ind.Group = group
	ind.From, ind.To = from, to
	ind.Column = column
	ind.Value1, ind.Value2 = v1, v2
	ind.Percent = pct
	ind.Text = Text(pct, opts.Label.ShowSign)
	ind.TextWidth = m.Width(ind.Text, opts.Label.FontFamily, opts.Label.FontSize)
	ind.Ellipse = ellipse(ind.Label, ind.TextWidth, opts.Label)
	ind.Dashed = opts.Line.Dashed
	ind.LineSize = opts.Line.Size
	ind.ArrowSize = opts.Line.ArrowSize
}
