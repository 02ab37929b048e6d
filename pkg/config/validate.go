package config

import (
	"strings"

	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/growth"
	"github.com/matzehuels/growthchart/pkg/chart/label"
	"github.com/matzehuels/growthchart/pkg/chart/legend"
	"github.com/matzehuels/growthchart/pkg/errors"
)

// Validate reports the first invalid option as an ErrCodeInvalidConfig error.
func (c LayoutConfig) Validate() error {
	if c.Version != 0 && c.Version != CurrentVersion {
		return invalid("unsupported layout version %d (want %d)", c.Version, CurrentVersion)
	}
	if _, err := chart.ParseType(c.Chart.Type); err != nil {
		return invalid("chart.type: %v", err)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return invalid("chart width and height must be positive")
	}
	if c.Chart.MarginX < 0 || c.Chart.MarginY < 0 {
		return invalid("chart margins cannot be negative")
	}
	if c.Chart.BarWhiteSpace < 0 || c.Chart.BarWhiteSpace >= 1 {
		return invalid("chart.bar_white_space must be in [0, 1)")
	}

	if c.YAxis.TickCount < 0 || c.SecondaryAxis.TickCount < 0 {
		return invalid("tick_count cannot be negative")
	}
	if c.YAxis.ScaleFactor < 0 {
		return invalid("y_axis.scale_factor cannot be negative")
	}
	if c.YAxis.MaxValue < 0 {
		return invalid("y_axis.max_value cannot be negative")
	}
	for _, u := range [][2]string{
		{"y_axis.display_units", c.YAxis.DisplayUnits},
		{"secondary_axis.display_units", c.SecondaryAxis.DisplayUnits},
		{"labels.display_units", c.Labels.DisplayUnits},
	} {
		if u[1] != "" && !label.ValidUnit(u[1]) {
			return invalid("%s: unknown unit %q", u[0], u[1])
		}
	}
	if c.Labels.DisplayDigits < 0 || c.Labels.DisplayDigits > 10 {
		return invalid("labels.display_digits must be between 0 and 10")
	}

	if _, err := legend.ParsePosition(c.Legend.Position); err != nil {
		return invalid("legend.position: %v", err)
	}

	switch strings.ToLower(c.Threshold.Axis) {
	case "", "primary", "secondary":
	default:
		return invalid("threshold.axis: unknown axis %q", c.Threshold.Axis)
	}
	switch strings.ToLower(c.Threshold.Mode) {
	case "", "sum", "each":
	default:
		return invalid("threshold.mode: unknown mode %q", c.Threshold.Mode)
	}
	if err := validLineType("threshold.line_type", c.Threshold.LineType); err != nil {
		return err
	}
	if c.Threshold.Enabled && c.Threshold.LineThickness < 1 {
		return invalid("Threshold Height needs to be greater than 1.")
	}

	if err := c.PrimaryGrowth.validate("primary_growth"); err != nil {
		return err
	}
	return c.SecondaryGrowth.validate("secondary_growth")
}

func (g GrowthConfig) validate(name string) error {
	if _, err := growth.ParseCalendarFallback(g.CalendarFallback); err != nil {
		return invalid("%s.calendar_fallback: %v", name, err)
	}
	if _, err := growth.ParseArrowMode(g.Line.DisplayArrow); err != nil {
		return invalid("%s.line.display_arrow: %v", name, err)
	}
	if _, err := growth.ParseSide(g.Label.DisplaySide); err != nil {
		return invalid("%s.label.display_side: %v", name, err)
	}
	if err := validLineType(name+".line.line_type", g.Line.LineType); err != nil {
		return err
	}
	for _, list := range []string{g.Selector1, g.Selector2, g.SelectorsList} {
		if err := errors.ValidateSelectorList(list); err != nil {
			return invalid("%s: %s", name, errors.UserMessage(err))
		}
	}
	if g.LookbackPeriods < 0 {
		return invalid("%s.lookback_periods cannot be negative", name)
	}
	if g.Enabled && g.Line.OffsetHeight < 1 {
		return invalid("Growth Line Height too small.")
	}
	return nil
}

func validLineType(name, v string) error {
	switch strings.ToLower(v) {
	case "", "solid", "dashed":
		return nil
	}
	return invalid("%s: unknown line type %q", name, v)
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
