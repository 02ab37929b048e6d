// Package growth resolves growth indicators: percentage-change callouts
// between two columns of a stacked chart or two series of a clustered chart.
//
// # Selectors
//
// Each indicator group names its two endpoints with selector strings. Blank
// selectors are inferred: the later endpoint defaults to the last column with
// a non-zero total, and the earlier one to the capacity column when present,
// otherwise to the column one lookback period before (see [CalendarFallback]).
// Clustered charts default to the last two series.
//
// # Errors
//
// Per-group failures (an unknown selector, a bad order, a zero baseline) skip
// that group and are returned as warnings. Only a toggled-on indicator whose
// defaults cannot be derived at all is fatal.
//
// # Sign
//
// Growth is always (1 - v2/v1) * 100. ShowSign only chooses between the
// signed and the absolute value for display.
package growth

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/growthchart/pkg/chart/geom"
	"github.com/matzehuels/growthchart/pkg/errors"
)

// ArrowMode selects which endpoints of an indicator carry an arrow.
type ArrowMode string

const (
	ArrowLeft  ArrowMode = "left"
	ArrowRight ArrowMode = "right"
	ArrowBoth  ArrowMode = "both"
	ArrowNone  ArrowMode = "none"
)

// Side selects which side of the bars a secondary indicator is drawn on.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Kind distinguishes the two indicator families.
type Kind string

const (
	Primary   Kind = "primary"
	Secondary Kind = "secondary"
)

// Arrow rotations in degrees, applied clockwise to an upward-pointing
// equilateral triangle centered on the arrow point.
const (
	RotationDown  = 60
	RotationLeft  = 30
	RotationRight = 90
)

// ellipsePadding is subtracted from the measured text width when the label
// ellipse grows past its minimum.
const ellipsePadding = 10

// LineOptions shape the indicator polyline.
type LineOptions struct {
	OffsetHeight float64   `json:"offset_height"`
	Size         float64   `json:"size"`
	Dashed       bool      `json:"dashed"`
	Arrow        ArrowMode `json:"arrow"`
	ArrowSize    float64   `json:"arrow_size"`
}

// LabelOptions shape the percentage label.
type LabelOptions struct {
	FontFamily      string  `json:"font_family"`
	FontSize        float64 `json:"font_size"`
	Height          float64 `json:"height"`
	MinWidth        float64 `json:"min_width"`
	OffsetHeight    float64 `json:"offset_height"`
	BgShape         bool    `json:"bg_shape"`
	ShowSign        bool    `json:"show_sign"`
	Side            Side    `json:"side"`
	XOffset         float64 `json:"x_offset"`
	AlignIndicators bool    `json:"align_indicators"`
}

// Options configure one indicator family.
type Options struct {
	Enabled          bool
	Selector1        string
	Selector2        string
	SelectorsList    string
	CalendarFallback CalendarFallback
	Lookback         int
	Line             LineOptions
	Label            LabelOptions
}

// Arrow is an arrow marker at a path endpoint.
type Arrow struct {
	At       geom.Point `json:"at"`
	Rotation float64    `json:"rotation"`
}

// Ellipse is the background shape behind a label.
type Ellipse struct {
	Center geom.Point `json:"center"`
	RX     float64    `json:"rx"`
	RY     float64    `json:"ry"`
}

// Indicator is one resolved growth callout in plot coordinates.
type Indicator struct {
	Kind      Kind         `json:"kind"`
	Group     int          `json:"group"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Column    int          `json:"column"`
	Value1    float64      `json:"value1"`
	Value2    float64      `json:"value2"`
	Percent   float64      `json:"percent"`
	Text      string       `json:"text"`
	TextWidth float64      `json:"text_width"`
	Path      []geom.Point `json:"path"`
	Label     geom.Point   `json:"label"`
	Arrows    []Arrow      `json:"arrows,omitempty"`
	Ellipse   *Ellipse     `json:"ellipse,omitempty"`
	Dashed    bool         `json:"dashed,omitempty"`
	LineSize  float64      `json:"line_size"`
	ArrowSize float64      `json:"arrow_size"`
}

// ParseArrowMode parses an arrow mode. Empty selects ArrowBoth.
func ParseArrowMode(s string) (ArrowMode, error) {
	switch m := ArrowMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ArrowBoth, nil
	case ArrowLeft, ArrowRight, ArrowBoth, ArrowNone:
		return m, nil
	}
	return "", fmt.Errorf("unknown arrow mode %q", s)
}

// ParseSide parses a label side. Empty selects SideRight.
func ParseSide(s string) (Side, error) {
	switch v := Side(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return SideRight, nil
	case SideLeft, SideRight:
		return v, nil
	}
	return "", fmt.Errorf("unknown display side %q", s)
}

// Percent returns (1 - v2/v1) * 100. It fails with ErrCodeGrowthUndefined
// when v1 is zero.
func Percent(v1, v2 float64) (float64, error) {
	if v1 == 0 {
		return 0, errors.New(errors.ErrCodeGrowthUndefined, "growth baseline is zero")
	}
	return (1 - v2/v1) * 100, nil
}

// Text formats a growth percentage rounded half-up to one decimal place.
// With showSign false the absolute value is shown.
func Text(pct float64, showSign bool) string {
	if !showSign {
		pct = math.Abs(pct)
	}
	r := math.Floor(pct*10+0.5) / 10
	if r == 0 { // negative zero
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64) + "%"
}

// arrows returns the markers for a path under mode.
func arrows(path []geom.Point, mode ArrowMode, first, last float64) []Arrow {
	if len(path) == 0 {
		return nil
	}
	var out []Arrow
	if mode == ArrowLeft || mode == ArrowBoth {
		out = append(out, Arrow{At: path[0], Rotation: first})
	}
	if mode == ArrowRight || mode == ArrowBoth {
		out = append(out, Arrow{At: path[len(path)-1], Rotation: last})
	}
	return out
}

// ellipse sizes the label background for text of width w.
func ellipse(center geom.Point, w float64, opts LabelOptions) *Ellipse {
	if !opts.BgShape {
		return nil
	}
	rx := opts.MinWidth
	if opts.MinWidth+ellipsePadding <= w {
		rx = w - ellipsePadding
	}
	return &Ellipse{Center: center, RX: rx, RY: opts.Height}
}
