package layout

import (
	"github.com/matzehuels/growthchart/pkg/chart/geom"
	"github.com/matzehuels/growthchart/pkg/chart/growth"
	"github.com/matzehuels/growthchart/pkg/chart/label"
	"github.com/matzehuels/growthchart/pkg/chart/legend"
	"github.com/matzehuels/growthchart/pkg/chart/scale"
	"github.com/matzehuels/growthchart/pkg/chart/stack"
	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/config"
	"github.com/matzehuels/growthchart/pkg/errors"
	"github.com/matzehuels/growthchart/pkg/measure"
)

// tickDigits is the precision of axis tick labels.
const tickDigits = 3

// thresholdDash is the SVG dash pattern of dashed threshold lines.
const thresholdDash = "5,4"

const (
	msgWidthTooSmall  = "Width is too small."
	msgHeightTooSmall = "Height is too small."
)

// Compute runs one full layout pass over raw host data.
func Compute(raw table.Raw, cfg config.LayoutConfig, m measure.Measurer) *Layout {
	l := newLayout(cfg)
	if err := cfg.Validate(); err != nil {
		return l.fail(StageConfig, err)
	}
	t, err := table.Build(raw, table.Options{CleanAxis: cfg.Chart.CleanAxis})
	if err != nil {
		return l.fail(StageData, err)
	}
	return computeTable(l, t, cfg, m)
}

// ComputeTable runs a layout pass over an already normalized table. Clean
// axis trimming is applied when configured.
func ComputeTable(t *table.Table, cfg config.LayoutConfig, m measure.Measurer) *Layout {
	l := newLayout(cfg)
	if err := cfg.Validate(); err != nil {
		return l.fail(StageConfig, err)
	}
	if cfg.Chart.CleanAxis && t != nil {
		t = table.Trim(t)
	}
	return computeTable(l, t, cfg, m)
}

func newLayout(cfg config.LayoutConfig) *Layout {
	return &Layout{
		Version: FormatVersion,
		Type:    cfg.ChartType(),
		Width:   cfg.Chart.Width,
		Height:  cfg.Chart.Height,
	}
}

func computeTable(l *Layout, t *table.Table, cfg config.LayoutConfig, m measure.Measurer) *Layout {
	if m == nil {
		m = measure.Heuristic{}
	}
	typ := cfg.ChartType()

	if t == nil || t.DataColumns() == 0 {
		return l.fail(StageData, errors.New(errors.ErrCodeData, table.EmptyTableMessage))
	}
	if t.HasCapacity() && (!cfg.Chart.Capacity || t.Total(0) == 0) {
		t = t.WithoutCapacity()
	}
	l.Series = append([]string(nil), t.Series...)

	// Frame: reserve legend space, then the plot takes what is left.
	marginX, marginY := cfg.Chart.MarginX, cfg.Chart.MarginY
	plot := geom.Rect{
		X: marginX / 2,
		Y: marginY / 2,
		W: cfg.Chart.Width - marginX,
		H: cfg.Chart.Height - marginY,
	}
	if cfg.Legend.Enabled && len(t.Series) > 0 {
		pos := cfg.LegendPosition()
		res := legend.Layout(t.Series, m, cfg.LegendOptions(plot.W+marginX))
		lg := &Legend{Result: res, FontFamily: cfg.Legend.FontFamily, FontSize: cfg.Legend.FontSize}
		switch pos {
		case legend.Left:
			lg.Origin = geom.Pt(marginX/2, plot.Y)
			plot.X += res.Width + cfg.Legend.Margin
			plot.W -= res.Width + cfg.Legend.Margin
		case legend.Bottom:
			plot.H -= res.Height + cfg.Legend.Margin
			lg.Origin = geom.Pt(0, plot.Bottom()+cfg.Legend.Margin)
		default:
			lg.Origin = geom.Pt(0, plot.Y)
			plot.Y += res.Height + cfg.Legend.Margin
			plot.H -= res.Height + cfg.Legend.Margin
		}
		for i := range lg.Items {
			lg.Items[i].Anchor.X += lg.Origin.X
			lg.Items[i].Anchor.Y += lg.Origin.Y
		}
		l.Legend = lg
	}
	l.Plot = plot
	if plot.W <= 0 {
		return l.fail(StageGeometry, errors.New(errors.ErrCodeGeometryDegenerate, msgWidthTooSmall))
	}
	if plot.H <= 0 {
		return l.fail(StageGeometry, errors.New(errors.ErrCodeGeometryDegenerate, msgHeightTooSmall))
	}

	// Scales.
	sr, err := scale.Resolve(t, cfg.ScaleOptions())
	if err != nil {
		return l.fail(StageScale, err)
	}
	for _, w := range sr.Warnings {
		l.warn(StageScale, w)
	}
	band := scale.NewBand(t.Len(), plot.W, cfg.Chart.BarWhiteSpace)
	if band.Bandwidth() <= 0 {
		return l.fail(StageGeometry, errors.New(errors.ErrCodeGeometryDegenerate, msgWidthTooSmall))
	}
	l.Bandwidth = band.Bandwidth()
	y := scale.Linear{Domain: sr.Primary, Height: plot.H}
	l.Primary = axis(sr.Primary, cfg.YAxis.TickCount, cfg.YAxis.DisplayUnits, y)
	var y2 *scale.Linear
	if sr.Secondary != nil {
		y2 = &scale.Linear{Domain: *sr.Secondary, Height: plot.H}
		l.Secondary = axis(*sr.Secondary, cfg.SecondaryAxis.TickCount, cfg.SecondaryAxis.DisplayUnits, *y2)
	}

	l.Columns = make([]Column, t.Len())
	for i, c := range t.Columns {
		l.Columns[i] = Column{
			Label:    c.Label,
			Index:    i,
			Total:    t.Total(i),
			Capacity: c.Capacity,
			X:        band.X(i),
			Center:   band.Center(i),
		}
	}

	// Segments and labels.
	l.Segments = stack.Place(stack.Build(t, typ), typ, band, y, len(t.Series))
	lo := cfg.LabelOptions()
	l.Labels = append(label.Segments(l.Segments, typ, band, len(t.Series), m, lo),
		label.Sums(t, typ, band, y, m, lo)...)

	// Growth indicators.
	gr, err := growth.Resolve(growth.Frame{
		Table:     t,
		Type:      typ,
		Band:      band,
		Y:         y,
		TrueWidth: plot.W + marginX,
	}, m, cfg.PrimaryGrowth.GrowthOptions(), cfg.SecondaryGrowth.GrowthOptions())
	if err != nil {
		return l.fail(StageGrowth, err)
	}
	l.Indicators = gr.Indicators
	for _, w := range gr.Warnings {
		l.warn(StageGrowth, w)
	}

	// Threshold lines.
	if cfg.Threshold.Enabled {
		l.Thresholds = thresholds(t, cfg, y, y2, plot.W)
		if len(t.ThresholdValues) == 0 {
			l.warn(StageThreshold, errors.New(errors.ErrCodeData, "threshold enabled but no Line Values measure"))
		}
	}
	return l
}

func axis(d scale.Domain, ticks int, units string, y scale.Linear) *Axis {
	a := &Axis{Domain: d, Units: units}
	for _, v := range scale.Ticks(d, ticks) {
		a.Ticks = append(a.Ticks, Tick{Value: v, Y: y.Y(v), Text: label.FormatNumber(v, tickDigits, units)})
	}
	return a
}

// thresholds builds one line for the summed threshold values ("sum" mode)
// or one per value ("each" mode). With per_series the value is multiplied by
// the series count.
func thresholds(t *table.Table, cfg config.LayoutConfig, y scale.Linear, y2 *scale.Linear, width float64) []Threshold {
	if len(t.ThresholdValues) == 0 {
		return nil
	}
	values := t.ThresholdValues
	if cfg.Threshold.Mode != "each" {
		var sum float64
		for _, v := range values {
			sum += v
		}
		values = []float64{sum}
	}

	ax, secondary := y, false
	if cfg.ThresholdOnSecondary() && y2 != nil {
		ax, secondary = *y2, true
	}
	var dash string
	if config.IsDashed(cfg.Threshold.LineType) {
		dash = thresholdDash
	}

	out := make([]Threshold, 0, len(values))
	for _, v := range values {
		if cfg.Threshold.PerSeries {
			v *= float64(len(t.Series))
		}
		out = append(out, Threshold{
			Value:     v,
			Secondary: secondary,
			Y:         ax.Y(v),
			X1:        0,
			X2:        width,
			Thickness: cfg.Threshold.LineThickness,
			Dash:      dash,
		})
	}
	return out
}
