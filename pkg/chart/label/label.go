// Package label decides which value labels fit and where they sit.
//
// A label is visible only when its measured text width fits the available
// width plus a tolerance and the segment it annotates is taller than the
// font. Suppressed labels are still returned with Visible false so callers
// can inspect them; suppression is never an error.
package label

import (
	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/geom"
	"github.com/matzehuels/growthchart/pkg/chart/scale"
	"github.com/matzehuels/growthchart/pkg/chart/stack"
	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/measure"
)

// Kind distinguishes segment labels from column sum labels.
type Kind string

const (
	KindSegment Kind = "segment"
	KindSum     Kind = "sum"
)

// DefaultSumBoxHeight is the height of the background box behind sum labels.
const DefaultSumBoxHeight = 20

// Placement is one resolved label. Anchor is the center of the text.
type Placement struct {
	Kind    Kind       `json:"kind"`
	Column  int        `json:"column"`
	Series  string     `json:"series,omitempty"`
	Text    string     `json:"text"`
	Anchor  geom.Point `json:"anchor"`
	Width   float64    `json:"width"`
	Visible bool       `json:"visible"`
	Box     *geom.Rect `json:"box,omitempty"`
}

// Options configure label resolution.
type Options struct {
	BarLabels    bool
	SumLabels    bool
	FontFamily   string
	BarFontSize  float64
	SumFontSize  float64
	Units        string
	Digits       int
	Tolerance    float64
	SumBoxHeight float64
}

// Fits reports whether text of width w fits into avail with tolerance tol.
// The boundary is inclusive.
func Fits(w, avail, tol float64) bool {
	return w <= avail+tol
}

// Visible combines Fits with the height rule: the segment must be strictly
// taller than the font.
func Visible(w, avail, tol, segmentHeight, fontSize float64) bool {
	return Fits(w, avail, tol) && segmentHeight > fontSize
}

// Segments resolves one label per placed segment. The available width is the
// bandwidth for stacked charts and the per-series slot for clustered charts.
func Segments(segs []stack.Segment, typ chart.Type, band scale.Band, seriesCount int, m measure.Measurer, opts Options) []Placement {
	if !opts.BarLabels {
		return nil
	}
	avail := band.Bandwidth()
	if typ == chart.Clustered && seriesCount > 0 {
		avail /= float64(seriesCount)
	}
	out := make([]Placement, 0, len(segs))
	for _, s := range segs {
		text := FormatNumber(s.Value(), opts.Digits, opts.Units)
		w := m.Width(text, opts.FontFamily, opts.BarFontSize)
		out = append(out, Placement{
			Kind:    KindSegment,
			Column:  s.Column,
			Series:  s.Series,
			Text:    text,
			Anchor:  geom.Pt(s.Rect.CenterX(), s.Rect.CenterY()),
			Width:   w,
			Visible: Visible(w, avail, opts.Tolerance, s.Rect.H, opts.BarFontSize),
		})
	}
	return out
}

// Sums resolves one summation label above each stacked column with a
// non-zero total. Clustered charts have no sum labels. Visibility uses only
// the width rule against the column bandwidth.
func Sums(t *table.Table, typ chart.Type, band scale.Band, y scale.Linear, m measure.Measurer, opts Options) []Placement {
	if !opts.SumLabels || typ == chart.Clustered {
		return nil
	}
	boxH := opts.SumBoxHeight
	if boxH <= 0 {
		boxH = DefaultSumBoxHeight
	}
	var out []Placement
	for i := range t.Columns {
		total := t.Total(i)
		if total == 0 {
			continue
		}
		text := FormatNumber(total, opts.Digits, opts.Units)
		w := m.Width(text, opts.FontFamily, opts.SumFontSize)
		cx, top := band.Center(i), y.Y(total)
		box := geom.Rect{X: cx - band.Bandwidth()/2, Y: top - boxH, W: band.Bandwidth(), H: boxH}
		out = append(out, Placement{
			Kind:    KindSum,
			Column:  i,
			Text:    text,
			Anchor:  geom.Pt(cx, top-boxH/2),
			Width:   w,
			Visible: Fits(w, band.Bandwidth(), opts.Tolerance),
			Box:     &box,
		})
	}
	return out
}
