package growth

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/geom"
	"github.com/matzehuels/growthchart/pkg/chart/scale"
	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/errors"
	"github.com/matzehuels/growthchart/pkg/measure"
)

func col(label string, n, s float64) table.Column {
	return table.Column{Label: label, Values: map[string]float64{"North": n, "South": s}}
}

// pairs returns the From->To pairs of the resolved indicators.
func pairs(r Result) []string {
	out := make([]string, len(r.Indicators))
	for i, ind := range r.Indicators {
		out[i] = ind.From + "->" + ind.To
	}
	return out
}

func newTable(cols ...table.Column) *table.Table {
	for i := range cols {
		cols[i].Index = i
		if cols[i].Label == table.CapacityLabel {
			cols[i].Capacity = true
		}
	}
	return &table.Table{Series: []string{"North", "South"}, Columns: cols}
}

func capacityTable() *table.Table {
	return newTable(col("Capacity", 100, 50), col("Jan-21", 40, 10), col("Feb-21", 60, 30))
}

func frame(t *table.Table, typ chart.Type) Frame {
	return Frame{
		Table:     t,
		Type:      typ,
		Band:      scale.NewBand(len(t.Columns), 300, 0),
		Y:         scale.Linear{Domain: scale.Domain{Max: 200}, Height: 200},
		TrueWidth: 340,
	}
}

func defaults() Options {
	return Options{
		Enabled: true,
		Line:    LineOptions{OffsetHeight: 25, Size: 2, Arrow: ArrowBoth, ArrowSize: 20},
		Label:   LabelOptions{FontSize: 11, Height: 20, MinWidth: 50, BgShape: true, ShowSign: true, Side: SideRight, XOffset: 20},
	}
}

var m = measure.Lookup{Widths: map[string]float64{}, Fallback: measure.Func(func(string, string, float64) float64 { return 30 })}

func TestResolveDefaultCapacityPair(t *testing.T) {
	res, err := Resolve(frame(capacityTable(), chart.Stacked), m, defaults(), Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.Indicators) != 1 || len(res.Warnings) != 0 {
		t.Fatalf("indicators=%d warnings=%v", len(res.Indicators), res.Warnings)
	}
	ind := res.Indicators[0]
	if ind.From != "Capacity" || ind.To != "Feb-21" {
		t.Errorf("pair = %s -> %s, want Capacity -> Feb-21", ind.From, ind.To)
	}
	if ind.Value1 != 150 || ind.Value2 != 90 {
		t.Errorf("values = %v, %v", ind.Value1, ind.Value2)
	}
	if math.Abs(ind.Percent-40) > 1e-9 || ind.Text != "40%" {
		t.Errorf("percent = %v (%q), want 40", ind.Percent, ind.Text)
	}
}

func TestPrimaryGeometry(t *testing.T) {
	res, err := Resolve(frame(capacityTable(), chart.Stacked), m, defaults(), Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	ind := res.Indicators[0]
	// Capacity top y=50, Feb-21 top y=110; columns centered at 50 and 250.
	want := []geom.Point{{X: 50, Y: 25}, {X: 50, Y: 0}, {X: 250, Y: 0}, {X: 250, Y: 85}}
	if fmt.Sprint(ind.Path) != fmt.Sprint(want) {
		t.Errorf("Path = %v, want %v", ind.Path, want)
	}
	if ind.Label != (geom.Point{X: 150, Y: 0}) {
		t.Errorf("Label = %+v", ind.Label)
	}
	if len(ind.Arrows) != 2 || ind.Arrows[0].Rotation != RotationDown || ind.Arrows[1].At != want[3] {
		t.Errorf("Arrows = %+v", ind.Arrows)
	}
	if ind.Ellipse == nil || ind.Ellipse.RX != 50 || ind.Ellipse.RY != 20 {
		t.Errorf("Ellipse = %+v", ind.Ellipse)
	}
}

func TestPrimaryRowOffset(t *testing.T) {
	tbl := newTable(col("Capacity", 20, 10), col("Jan-21", 20, 10), col("Feb-21", 30, 15))
	opts := defaults()
	opts.Label.OffsetHeight = 5
	res, err := Resolve(frame(tbl, chart.Stacked), m, opts, Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Tops at 170 and 155; endpoints at 145 and 130; row = 130-2*20-5.
	if got := res.Indicators[0].Label.Y; got != 85 {
		t.Errorf("row = %v, want 85", got)
	}

	// Tall bars clamp the row to the plot top before the offset applies.
	tall := newTable(col("Capacity", 20, 10), col("Jan-21", 100, 50), col("Feb-21", 110, 60))
	res, _ = Resolve(frame(tall, chart.Stacked), m, opts, Options{})
	if got := res.Indicators[0].Label.Y; got != -5 {
		t.Errorf("clamped row = %v, want -5", got)
	}

	opts.Label.AlignIndicators = true
	res, _ = Resolve(frame(tbl, chart.Stacked), m, opts, Options{})
	if got := res.Indicators[0].Label.Y; got != 0 {
		t.Errorf("aligned row = %v, want 0", got)
	}
}

func TestResolveSelectorErrors(t *testing.T) {
	tests := []struct {
		name       string
		sel1, sel2 string
		code       errors.Code
	}{
		{"identical", "Feb-21", "Feb-21", errors.ErrCodeInvalidSelectorOrder},
		{"reversed", "Feb-21", "Jan-21", errors.ErrCodeInvalidSelectorOrder},
		{"missing first", "Dec-20", "Feb-21", errors.ErrCodeSelectorNotFound},
		{"missing second", "Jan-21", "Mar-21", errors.ErrCodeSelectorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaults()
			opts.Selector1, opts.Selector2 = tt.sel1, tt.sel2
			res, err := Resolve(frame(capacityTable(), chart.Stacked), m, opts, Options{})
			if err != nil {
				t.Fatalf("per-group failure was fatal: %v", err)
			}
			if len(res.Indicators) != 0 {
				t.Errorf("rendered %d indicators", len(res.Indicators))
			}
			if len(res.Warnings) != 1 || !errors.Is(res.Warnings[0], tt.code) {
				t.Errorf("warnings = %v, want one %s", res.Warnings, tt.code)
			}
		})
	}
}

func TestResolveGrowthUndefined(t *testing.T) {
	tbl := newTable(col("Jan-21", 0, 0), col("Feb-21", 10, 0))
	opts := defaults()
	opts.Selector1 = "Jan-21"
	res, err := Resolve(frame(tbl, chart.Stacked), m, opts, Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.Warnings) != 1 || !errors.Is(res.Warnings[0], errors.ErrCodeGrowthUndefined) {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestResolveNoDefaultIsFatal(t *testing.T) {
	tbl := newTable(col("Jan-21", 0, 0), col("Feb-21", 0, 0))
	_, err := Resolve(frame(tbl, chart.Stacked), m, defaults(), Options{})
	if !errors.Is(err, errors.ErrCodeSelectorNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeSelectorNotFound)
	}

}

func TestResolveClusteredSingleSeriesWarns(t *testing.T) {
	one := &table.Table{Series: []string{"Only"}, Columns: []table.Column{{Label: "x", Values: map[string]float64{"Only": 1}}}}
	res, err := Resolve(frame(one, chart.Clustered), m, defaults(), Options{})
	if err != nil {
		t.Fatalf("single series should not be fatal: %v", err)
	}
	if len(res.Indicators) != 0 {
		t.Errorf("indicators = %v, want none", pairs(res))
	}
	if len(res.Warnings) != 1 || !errors.Is(res.Warnings[0], errors.ErrCodeSelectorNotFound) {
		t.Errorf("warnings = %v, want one %s", res.Warnings, errors.ErrCodeSelectorNotFound)
	}
}

func TestColumnPairCalendar(t *testing.T) {
	labels := []string{"Dec-19", "Jan-20", "Feb-20", "Mar-20", "Apr-20", "May-20", "Jun-20",
		"Jul-20", "Aug-20", "Sep-20", "Oct-20", "Nov-20", "Dec-20", "Jan-21", "Feb-21"}
	build := func(zeroFirst bool, last string) *table.Table {
		cols := make([]table.Column, 0, len(labels))
		for i, l := range labels {
			v := float64(i + 1)
			if zeroFirst && i < 3 {
				v = 0
			}
			cols = append(cols, col(l, v, 0))
		}
		if last != "" {
			cols[len(cols)-1].Label = last
		}
		return newTable(cols...)
	}

	tests := []struct {
		name     string
		tbl      *table.Table
		fallback CalendarFallback
		lookback int
		want1    int
	}{
		{"exact lookback", build(false, ""), FallbackFirst, 12, 2},
		{"case-insensitive", build(false, "FEB-21"), FallbackFirst, 12, 2},
		{"unparsable first", build(false, "Week 7"), FallbackFirst, 12, 0},
		{"unparsable offset", build(false, "Week 7"), FallbackOffset, 12, 2},
		{"offset underflow", build(false, "Week 7"), FallbackOffset, 40, 0},
		{"advance past zeros", build(true, "Week 7"), FallbackFirst, 12, 3},
		{"three back", build(false, ""), FallbackFirst, 3, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i1, i2, err := ColumnPair(tt.tbl, "", "", Options{CalendarFallback: tt.fallback, Lookback: tt.lookback})
			if err != nil {
				t.Fatalf("ColumnPair: %v", err)
			}
			if i1 != tt.want1 || i2 != len(labels)-1 {
				t.Errorf("pair = (%d, %d), want (%d, %d)", i1, i2, tt.want1, len(labels)-1)
			}
		})
	}
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		in   string
		back int
		want string
	}{
		{"Jan-21", 12, "Jan-20"},
		{"Jan-21", 1, "Dec-20"},
		{"mar-2021", 15, "Dec-2019"},
		{"Jan-00", 1, "Dec-99"},
	}
	for _, tt := range tests {
		p, ok := ParsePeriod(tt.in)
		if !ok {
			t.Fatalf("ParsePeriod(%q) failed", tt.in)
		}
		if got := p.Back(tt.back).String(); got != tt.want {
			t.Errorf("%s back %d = %s, want %s", tt.in, tt.back, got, tt.want)
		}
	}
	for _, bad := range []string{"Capacity", "Foo-21", "Jan21", "Jan-1", "Jan-xx"} {
		if _, ok := ParsePeriod(bad); ok {
			t.Errorf("ParsePeriod(%q) succeeded", bad)
		}
	}
}

func TestSecondaryStacked(t *testing.T) {
	tbl := newTable(col("Jan-21", 40, 10), col("Feb-21", 60, 30), col("Mar-21", 80, 40))
	sec := defaults()
	sec.Selector1 = "Jan-21, ,Mar-21"
	sec.Selector2 = "Feb-21,Mar-21,Jan-21"
	res, err := Resolve(frame(tbl, chart.Stacked), m, Options{}, sec)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.Indicators) != 2 || len(res.Warnings) != 1 {
		t.Fatalf("indicators=%v warnings=%v", pairs(res), res.Warnings)
	}
	if got := pairs(res); got[0] != "Jan-21->Feb-21" || got[1] != "Feb-21->Mar-21" {
		t.Errorf("pairs = %v", got)
	}
	if res.Indicators[1].Group != 1 || !errors.Is(res.Warnings[0], errors.ErrCodeInvalidSelectorOrder) {
		t.Errorf("group numbering or warning code wrong: %+v", res.Warnings)
	}

	// Right side: bar right edges 100 and 200, offset 20.
	ind := res.Indicators[0]
	want := []geom.Point{{X: 100, Y: 150}, {X: 220, Y: 150}, {X: 220, Y: 110}, {X: 200, Y: 110}}
	if fmt.Sprint(ind.Path) != fmt.Sprint(want) {
		t.Errorf("Path = %v, want %v", ind.Path, want)
	}
	if ind.Label != (geom.Point{X: 220, Y: 130}) || ind.Arrows[0].Rotation != RotationLeft {
		t.Errorf("Label = %+v, Arrows = %+v", ind.Label, ind.Arrows)
	}
}

func TestSecondarySideClamp(t *testing.T) {
	tbl := newTable(col("Jan-21", 40, 10), col("Feb-21", 60, 30))
	sec := defaults()
	sec.Label.XOffset = 500
	res, _ := Resolve(frame(tbl, chart.Stacked), m, Options{}, sec)
	if got := res.Indicators[0].Label.X; got != 340 {
		t.Errorf("right clamp x = %v, want 340", got)
	}

	sec.Label.Side = SideLeft
	res, _ = Resolve(frame(tbl, chart.Stacked), m, Options{}, sec)
	if got := res.Indicators[0].Label.X; got != 0 {
		t.Errorf("left clamp x = %v, want 0", got)
	}
	if res.Indicators[0].Arrows[0].Rotation != RotationRight {
		t.Errorf("left side rotation = %v", res.Indicators[0].Arrows[0].Rotation)
	}
}

func TestClusteredPrimary(t *testing.T) {
	tbl := newTable(col("Jan-21", 40, 10), col("Feb-21", 0, 30), col("Mar-21", 80, 60))
	res, err := Resolve(frame(tbl, chart.Clustered), m, defaults(), Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.Indicators) != 2 || len(res.Warnings) != 0 {
		t.Fatalf("indicators=%d warnings=%v", len(res.Indicators), res.Warnings)
	}
	ind := res.Indicators[1]
	if ind.Column != 2 || ind.From != "North" || ind.To != "South" || ind.Text != "25%" {
		t.Errorf("indicator = %+v", ind)
	}
	// Slots are 50px wide; centers at 225 and 275.
	if ind.Path[0].X != 225 || ind.Path[3].X != 275 {
		t.Errorf("Path = %v", ind.Path)
	}
}

func TestClusteredSecondary(t *testing.T) {
	tbl := newTable(col("Jan-21", 40, 10), col("Feb-21", 0, 30), col("Mar-21", 80, 60))
	sec := defaults()
	sec.SelectorsList = "Jan-21,Feb-21,Apr-21,"
	res, err := Resolve(frame(tbl, chart.Clustered), m, Options{}, sec)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.Indicators) != 2 || len(res.Warnings) != 2 {
		t.Fatalf("indicators=%v warnings=%v", pairs(res), res.Warnings)
	}
	if res.Indicators[0].Column != 0 || res.Indicators[1].Column != 2 {
		t.Errorf("columns = %d, %d", res.Indicators[0].Column, res.Indicators[1].Column)
	}
	if !errors.Is(res.Warnings[0], errors.ErrCodeGrowthUndefined) || !errors.Is(res.Warnings[1], errors.ErrCodeSelectorNotFound) {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		pct  float64
		sign bool
		want string
	}{
		{40, true, "40%"},
		{12.25, true, "12.3%"},
		{-20, true, "-20%"},
		{-20, false, "20%"},
		{-0.01, true, "0%"},
		{33.333, true, "33.3%"},
	}
	for _, tt := range tests {
		if got := Text(tt.pct, tt.sign); got != tt.want {
			t.Errorf("Text(%v, %v) = %q, want %q", tt.pct, tt.sign, got, tt.want)
		}
	}
}

func TestEllipse(t *testing.T) {
	opts := LabelOptions{BgShape: true, MinWidth: 50, Height: 20}
	if e := ellipse(geom.Point{}, 59, opts); e.RX != 50 {
		t.Errorf("narrow text rx = %v, want 50", e.RX)
	}
	if e := ellipse(geom.Point{}, 80, opts); e.RX != 70 {
		t.Errorf("wide text rx = %v, want 70", e.RX)
	}
	opts.BgShape = false
	if ellipse(geom.Point{}, 80, opts) != nil {
		t.Error("ellipse without bg shape")
	}
}

func TestArrowModes(t *testing.T) {
	path := []geom.Point{{X: 1}, {X: 2}, {X: 3}}
	for mode, n := range map[ArrowMode]int{ArrowLeft: 1, ArrowRight: 1, ArrowBoth: 2, ArrowNone: 0} {
		if got := arrows(path, mode, 0, 0); len(got) != n {
			t.Errorf("%s: %d arrows, want %d", mode, len(got), n)
		}
	}
	if got := arrows(path, ArrowRight, 0, 0); got[0].At.X != 3 {
		t.Errorf("right arrow at %+v", got[0].At)
	}
}

func ExampleResolve() {
	tbl := &table.Table{
		Series: []string{"North", "South"},
		Columns: []table.Column{
			{Label: "Capacity", Capacity: true, Values: map[string]float64{"North": 100, "South": 50}},
			{Label: "Jan-21", Index: 1, Values: map[string]float64{"North": 40, "South": 10}},
			{Label: "Feb-21", Index: 2, Values: map[string]float64{"North": 60, "South": 30}},
		},
	}
	f := Frame{
		Table: tbl,
		Type:  chart.Stacked,
		Band:  scale.NewBand(3, 300, 0.2),
		Y:     scale.Linear{Domain: scale.Domain{Max: 180}, Height: 300},
	}
	res, _ := Resolve(f, measure.Heuristic{}, Options{Enabled: true, Label: LabelOptions{ShowSign: true}}, Options{})
	ind := res.Indicators[0]
	fmt.Println(ind.From, ind.To, ind.Text)
	// Output: Capacity Feb-21 40%
}
