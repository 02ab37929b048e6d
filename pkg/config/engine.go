package config

import (
	"strings"

	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/growth"
	"github.com/matzehuels/growthchart/pkg/chart/label"
	"github.com/matzehuels/growthchart/pkg/chart/legend"
	"github.com/matzehuels/growthchart/pkg/chart/scale"
)

// The conversions below assume a validated config; unparsable enums fall
// back to their defaults.

// ChartType returns the parsed chart type.
func (c LayoutConfig) ChartType() chart.Type {
	t, err := chart.ParseType(c.Chart.Type)
	if err != nil {
		return chart.Stacked
	}
	return t
}

// LegendPosition returns the parsed legend position.
func (c LayoutConfig) LegendPosition() legend.Position {
	p, err := legend.ParsePosition(c.Legend.Position)
	if err != nil {
		return legend.Top
	}
	return p
}

// ScaleOptions maps the axis groups to scale resolution options.
func (c LayoutConfig) ScaleOptions() scale.Options {
	return scale.Options{
		Type:        c.ChartType(),
		ScaleFactor: c.YAxis.ScaleFactor,
		MaxValue:    c.YAxis.MaxValue,
		MaxOptional: c.YAxis.MaxOptional,
		Rounded:     c.YAxis.Rounded,
		Secondary: scale.SecondaryOptions{
			Enabled: c.SecondaryAxis.Enabled,
			Min:     c.SecondaryAxis.MinValue,
			Max:     c.SecondaryAxis.MaxValue,
		},
	}
}

// LegendOptions maps the legend group for a container of the given width.
func (c LayoutConfig) LegendOptions(availableWidth float64) legend.Options {
	return legend.Options{
		Position:       c.LegendPosition(),
		FontFamily:     c.Legend.FontFamily,
		FontSize:       c.Legend.FontSize,
		RowHeight:      c.Legend.RowHeight,
		Padding:        c.Legend.HorizontalPadding,
		AvailableWidth: availableWidth,
	}
}

// LabelOptions maps the labels group.
func (c LayoutConfig) LabelOptions() label.Options {
	return label.Options{
		BarLabels:    c.Labels.BarLabels,
		SumLabels:    c.Labels.SumLabels,
		FontFamily:   c.Labels.FontFamily,
		BarFontSize:  c.Labels.BarFontSize,
		SumFontSize:  c.Labels.SumFontSize,
		Units:        c.Labels.DisplayUnits,
		Digits:       c.Labels.DisplayDigits,
		Tolerance:    c.Labels.Tolerance,
		SumBoxHeight: c.Labels.SumBoxHeight,
	}
}

// ThresholdOnSecondary reports whether threshold lines use the secondary
// axis. An unset axis follows the secondary axis toggle.
func (c LayoutConfig) ThresholdOnSecondary() bool {
	switch strings.ToLower(c.Threshold.Axis) {
	case "primary":
		return false
	case "secondary":
		return c.SecondaryAxis.Enabled
	}
	return c.SecondaryAxis.Enabled
}

// GrowthOptions maps one growth group.
func (g GrowthConfig) GrowthOptions() growth.Options {
	fallback, err := growth.ParseCalendarFallback(g.CalendarFallback)
	if err != nil {
		fallback = growth.FallbackFirst
	}
	arrow, err := growth.ParseArrowMode(g.Line.DisplayArrow)
	if err != nil {
		arrow = growth.ArrowBoth
	}
	side, err := growth.ParseSide(g.Label.DisplaySide)
	if err != nil {
		side = growth.SideRight
	}
	return growth.Options{
		Enabled:          g.Enabled,
		Selector1:        g.Selector1,
		Selector2:        g.Selector2,
		SelectorsList:    g.SelectorsList,
		CalendarFallback: fallback,
		Lookback:         g.LookbackPeriods,
		Line: growth.LineOptions{
			OffsetHeight: g.Line.OffsetHeight,
			Size:         g.Line.Size,
			Dashed:       IsDashed(g.Line.LineType),
			Arrow:        arrow,
			ArrowSize:    g.Line.ArrowSize,
		},
		Label: growth.LabelOptions{
			FontFamily:      g.Label.FontFamily,
			FontSize:        g.Label.FontSize,
			Height:          g.Label.Height,
			MinWidth:        g.Label.MinWidth,
			OffsetHeight:    g.Label.OffsetHeight,
			BgShape:         g.Label.BgShape,
			ShowSign:        g.Label.ShowSign,
			Side:            side,
			XOffset:         g.Label.XOffset,
			AlignIndicators: g.Label.AlignIndicators,
		},
	}
}

// IsDashed reports whether a line type draws dashed.
func IsDashed(lineType string) bool {
	return strings.EqualFold(lineType, "dashed")
}
