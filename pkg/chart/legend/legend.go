// Package legend places legend items for a chart's series.
//
// Items are laid out either as a vertical list (Left) or as a horizontal
// flow that wraps onto new rows when the next item would overflow the
// available width (Top, Bottom). Bottom legends are centered as a block.
// Text is measured through an injected [measure.Measurer]; the package never
// touches font data itself.
package legend

import (
	"fmt"
	"strings"

	"github.com/matzehuels/growthchart/pkg/chart/geom"
	"github.com/matzehuels/growthchart/pkg/measure"
)

// Position is where the legend sits relative to the plot.
type Position string

const (
	Top    Position = "top"
	Bottom Position = "bottom"
	Left   Position = "left"
)

// ParsePosition parses a position name case-insensitively. Empty selects Top.
func ParsePosition(s string) (Position, error) {
	switch p := Position(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Top, nil
	case Top, Bottom, Left:
		return p, nil
	}
	return "", fmt.Errorf("unknown legend position %q", s)
}

// Default geometry.
const (
	DefaultRowHeight = 15
	DefaultPadding   = 30
)

// Options configure legend layout.
type Options struct {
	Position       Position
	FontFamily     string
	FontSize       float64
	RowHeight      float64 // 0 means DefaultRowHeight
	Padding        float64 // horizontal space after each name; 0 means DefaultPadding
	AvailableWidth float64
}

// Item is one placed legend entry. Anchor is the top-left of the entry
// relative to the legend origin.
type Item struct {
	Series string     `json:"series"`
	Index  int        `json:"index"`
	Row    int        `json:"row"`
	Anchor geom.Point `json:"anchor"`
	Width  float64    `json:"width"`
}

// Result is a placed legend.
type Result struct {
	Position Position `json:"position"`
	Items    []Item   `json:"items"`
	Rows     int      `json:"rows"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
}

// Layout places one item per series name. It is a pure function of its
// arguments.
func Layout(series []string, m measure.Measurer, opts Options) Result {
	rowH := opts.RowHeight
	if rowH <= 0 {
		rowH = DefaultRowHeight
	}
	pad := opts.Padding
	if pad <= 0 {
		pad = DefaultPadding
	}

	widths := make([]float64, len(series))
	var total float64
	for i, s := range series {
		widths[i] = m.Width(s, opts.FontFamily, opts.FontSize) + pad
		total += widths[i]
	}

	res := Result{Position: opts.Position, Items: make([]Item, len(series))}
	if len(series) == 0 {
		return res
	}

	if opts.Position == Left {
		for i, s := range series {
			res.Items[i] = Item{Series: s, Index: i, Row: i, Anchor: geom.Pt(0, float64(i)*rowH), Width: widths[i]}
			res.Width = max(res.Width, widths[i])
		}
		res.Rows = len(series)
		res.Height = float64(res.Rows) * rowH
		return res
	}

	avail := opts.AvailableWidth
	var startX float64
	if opts.Position == Bottom {
		startX = (avail - min(total, avail)) / 2
	}

	var (
		row  int
		curr float64
	)
	for i, s := range series {
		if curr > 0 && curr+widths[i] > avail {
			row++
			curr = 0
		}
		res.Items[i] = Item{Series: s, Index: i, Row: row, Anchor: geom.Pt(startX+curr, float64(row)*rowH), Width: widths[i]}
		curr += widths[i]
		res.Width = max(res.Width, startX+curr)
	}
	res.Rows = row + 1
	res.Height = float64(res.Rows) * rowH
	return res
}
