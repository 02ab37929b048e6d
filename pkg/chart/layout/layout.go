// Package layout sequences the chart stages into one resolved drawing plan.
//
// [Compute] turns raw host data and a [config.LayoutConfig] into a [Layout]:
// scale domains and ticks, placed bar segments, label placements, legend
// items, growth indicators and threshold lines. It performs no I/O and keeps
// no state between calls, so concurrent calls never interfere.
//
// # Errors
//
// Failures that make the rest of the pass meaningless (invalid config,
// missing data, an axis override below the data, a collapsed draw area, an
// enabled growth indicator with no possible default) stop the pass and are
// reported in [Layout.Error]. Everything else degrades: labels that do not
// fit are marked invisible and failing indicator groups are skipped with a
// [Warning].
//
// # Coordinates
//
// Segment, label, indicator and threshold coordinates are relative to the
// plot area, whose position in the frame is [Layout.Plot]. Legend anchors
// are relative to the frame.
package layout

import (
	stderrors "errors"

	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/geom"
	"github.com/matzehuels/growthchart/pkg/chart/growth"
	"github.com/matzehuels/growthchart/pkg/chart/label"
	"github.com/matzehuels/growthchart/pkg/chart/legend"
	"github.com/matzehuels/growthchart/pkg/chart/scale"
	"github.com/matzehuels/growthchart/pkg/chart/stack"
	"github.com/matzehuels/growthchart/pkg/errors"
)

// FormatVersion is the version written into serialized layouts.
const FormatVersion = 1

// Stage names the pipeline step a warning or error came from.
type Stage string

const (
	StageConfig    Stage = "config"
	StageData      Stage = "data"
	StageScale     Stage = "scale"
	StageGeometry  Stage = "geometry"
	StageGrowth    Stage = "growth"
	StageThreshold Stage = "threshold"
)

// Error is a fatal layout failure. The renderer shows Message in place of
// the chart.
type Error struct {
	Stage   Stage       `json:"stage"`
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.Stage) + ": " + e.Message
}

// Warning is a recoverable irregularity recorded during a pass.
type Warning struct {
	Stage   Stage       `json:"stage"`
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// Column describes one placed column.
type Column struct {
	Label    string  `json:"label"`
	Index    int     `json:"index"`
	Total    float64 `json:"total"`
	Capacity bool    `json:"capacity,omitempty"`
	X        float64 `json:"x"`
	Center   float64 `json:"center"`
}

// Tick is one axis tick in plot coordinates.
type Tick struct {
	Value float64 `json:"value"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
}

// Axis is a resolved value axis.
type Axis struct {
	Domain scale.Domain `json:"domain"`
	Ticks  []Tick       `json:"ticks"`
	Units  string       `json:"units"`
}

// Threshold is a horizontal reference line across the plot.
type Threshold struct {
	Value     float64 `json:"value"`
	Secondary bool    `json:"secondary,omitempty"`
	Y         float64 `json:"y"`
	X1        float64 `json:"x1"`
	X2        float64 `json:"x2"`
	Thickness float64 `json:"thickness"`
	Dash      string  `json:"dash,omitempty"`
}

// Legend is the placed legend with frame-relative anchors.
type Legend struct {
	legend.Result
	Origin     geom.Point `json:"origin"`
	FontFamily string     `json:"font_family"`
	FontSize   float64    `json:"font_size"`
}

// Layout is the resolved drawing plan for one pass. It is never modified
// after Compute returns.
type Layout struct {
	Version   int        `json:"version"`
	Type      chart.Type `json:"type"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Plot      geom.Rect  `json:"plot"`
	Bandwidth float64    `json:"bandwidth"`

	Series  []string `json:"series"`
	Columns []Column `json:"columns"`

	Primary   *Axis `json:"primary,omitempty"`
	Secondary *Axis `json:"secondary,omitempty"`

	Segments   []stack.Segment    `json:"segments,omitempty"`
	Labels     []label.Placement  `json:"labels,omitempty"`
	Legend     *Legend            `json:"legend,omitempty"`
	Indicators []growth.Indicator `json:"indicators,omitempty"`
	Thresholds []Threshold        `json:"thresholds,omitempty"`

	Warnings []Warning `json:"warnings,omitempty"`
	Error    *Error    `json:"error,omitempty"`
}

// Err returns the fatal error, or nil.
func (l *Layout) Err() error {
	if l.Error == nil {
		return nil
	}
	return l.Error
}

// OK reports whether the pass completed.
func (l *Layout) OK() bool { return l.Error == nil }

// VisibleLabels returns the labels marked visible.
func (l *Layout) VisibleLabels() []label.Placement {
	var out []label.Placement
	for _, p := range l.Labels {
		if p.Visible {
			out = append(out, p)
		}
	}
	return out
}

func (l *Layout) fail(stage Stage, err error) *Layout {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	l.Error = &Error{Stage: stage, Code: code, Message: errors.UserMessage(err)}
	return l
}

func (l *Layout) warn(stage Stage, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := err.Error()
	var e *errors.Error
	if stderrors.As(err, &e) {
		msg = e.Message
		if e.Cause != nil {
			msg += ": " + errors.UserMessage(e.Cause)
		}
	}
	l.Warnings = append(l.Warnings, Warning{Stage: stage, Code: code, Message: msg})
}
