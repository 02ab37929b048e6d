package stack

import (
	"math"
	"testing"

	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/scale"
	"github.com/matzehuels/growthchart/pkg/chart/table"
)

func fixture() *table.Table {
	return &table.Table{
		Series: []string{"North", "South", "East"},
		Columns: []table.Column{
			{Label: "Jan-21", Values: map[string]float64{"North": 40, "South": 10, "East": 5}},
			{Label: "Feb-21", Index: 1, Values: map[string]float64{"North": 0, "South": 0, "East": 0}},
			{Label: "Mar-21", Index: 2, Values: map[string]float64{"North": 60.5, "South": 30.25, "East": 0.1}},
		},
	}
}

func TestBuildStackedConservation(t *testing.T) {
	tbl := fixture()
	segs := Build(tbl, chart.Stacked)
	if len(segs) != len(tbl.Columns)*len(tbl.Series) {
		t.Fatalf("len(segs) = %d, want %d", len(segs), len(tbl.Columns)*len(tbl.Series))
	}
	for ci := range tbl.Columns {
		var sum float64
		prev := 0.0
		for _, s := range ForColumn(segs, ci) {
			if s.Low != prev {
				t.Errorf("column %d series %s starts at %v, want %v", ci, s.Series, s.Low, prev)
			}
			prev = s.High
			sum += s.Value()
		}
		if math.Abs(sum-tbl.Total(ci)) > 1e-9 {
			t.Errorf("column %d: segments sum to %v, total %v", ci, sum, tbl.Total(ci))
		}
	}
}

func TestBuildZeroColumnKept(t *testing.T) {
	segs := ForColumn(Build(fixture(), chart.Stacked), 1)
	if len(segs) != 3 {
		t.Fatalf("zero column has %d segments, want 3", len(segs))
	}
	for _, s := range segs {
		if s.Low != 0 || s.High != 0 {
			t.Errorf("zero column segment %+v", s)
		}
	}
}

func TestBuildClustered(t *testing.T) {
	for _, s := range Build(fixture(), chart.Clustered) {
		if s.Low != 0 {
			t.Errorf("clustered segment %s/%d starts at %v", s.Series, s.Column, s.Low)
		}
	}
	if got := Top(Build(fixture(), chart.Clustered), 0); got != 40 {
		t.Errorf("Top(clustered, 0) = %v, want 40", got)
	}
	if got := Top(Build(fixture(), chart.Stacked), 0); got != 55 {
		t.Errorf("Top(stacked, 0) = %v, want 55", got)
	}
}

func TestPlace(t *testing.T) {
	band := scale.NewBand(3, 300, 0)
	y := scale.Linear{Domain: scale.Domain{Max: 100}, Height: 200}

	stacked := Place(Build(fixture(), chart.Stacked), chart.Stacked, band, y, 3)
	south := stacked[1]
	if south.Rect.X != 0 || south.Rect.W != 100 {
		t.Errorf("stacked x/w = %v/%v", south.Rect.X, south.Rect.W)
	}
	if south.Rect.Y != 100 || south.Rect.H != 20 {
		t.Errorf("stacked y/h = %v/%v, want 100/20", south.Rect.Y, south.Rect.H)
	}

	clustered := Place(Build(fixture(), chart.Clustered), chart.Clustered, band, y, 3)
	east := clustered[2]
	if math.Abs(east.Rect.W-100.0/3) > 1e-9 || math.Abs(east.Rect.X-200.0/3) > 1e-9 {
		t.Errorf("clustered east x/w = %v/%v", east.Rect.X, east.Rect.W)
	}
	if east.Rect.Bottom() != 200 {
		t.Errorf("clustered bottom = %v, want 200", east.Rect.Bottom())
	}
}
