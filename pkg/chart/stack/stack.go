// Package stack turns a table into drawable bar segments.
//
// Stacked charts accumulate series values within one bar per column;
// clustered charts give each series its own bar from zero, side by side
// within the column's bandwidth. Zero values still produce zero-height
// segments so every column has exactly one segment per series.
package stack

import (
	"math"

	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/geom"
	"github.com/matzehuels/growthchart/pkg/chart/scale"
	"github.com/matzehuels/growthchart/pkg/chart/table"
)

// Segment is one drawable bar piece. Rect is zero until [Place] runs.
type Segment struct {
	Column      int       `json:"column"`
	Series      string    `json:"series"`
	SeriesIndex int       `json:"series_index"`
	Low         float64   `json:"low"`
	High        float64   `json:"high"`
	Rect        geom.Rect `json:"rect"`
}

// Value returns the segment's own value, High - Low.
func (s Segment) Value() float64 { return s.High - s.Low }

// Build returns segments in column order, then series order.
func Build(t *table.Table, typ chart.Type) []Segment {
	segs := make([]Segment, 0, len(t.Columns)*len(t.Series))
	for ci, col := range t.Columns {
		var acc float64
		for si, s := range t.Series {
			v := col.Values[s]
			seg := Segment{Column: ci, Series: s, SeriesIndex: si}
			if typ == chart.Clustered {
				seg.High = v
			} else {
				seg.Low, seg.High = acc, acc+v
				acc += v
			}
			segs = append(segs, seg)
		}
	}
	return segs
}

// Place returns a copy of segs with pixel rectangles computed from the band
// and linear scales. Clustered segments split the bandwidth evenly across
// seriesCount slots.
func Place(segs []Segment, typ chart.Type, band scale.Band, y scale.Linear, seriesCount int) []Segment {
	out := make([]Segment, len(segs))
	bw := band.Bandwidth()
	for i, s := range segs {
		x, w := band.X(s.Column), bw
		if typ == chart.Clustered && seriesCount > 0 {
			w = bw / float64(seriesCount)
			x += w * float64(s.SeriesIndex)
		}
		top, bottom := y.Y(s.High), y.Y(s.Low)
		s.Rect = geom.Rect{X: x, Y: math.Min(top, bottom), W: w, H: math.Abs(bottom - top)}
		out[i] = s
	}
	return out
}

// Top returns the highest value reached in column ci: the stack total for
// stacked charts or the largest series value for clustered charts.
func Top(segs []Segment, ci int) float64 {
	var top float64
	for _, s := range segs {
		if s.Column == ci {
			top = math.Max(top, s.High)
		}
	}
	return top
}

// ForColumn returns the segments of column ci in series order.
func ForColumn(segs []Segment, ci int) []Segment {
	var out []Segment
	for _, s := range segs {
		if s.Column == ci {
			out = append(out, s)
		}
	}
	return out
}
