package legend

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/growthchart/pkg/measure"
)

var widths = measure.Lookup{Widths: map[string]float64{
	"North": 40, "South": 40, "East": 30, "West": 30, "Central": 60,
}}

func TestLayoutWrap(t *testing.T) {
	series := []string{"North", "South", "East", "West", "Central"}
	// Item widths with padding: 70 70 60 60 90.
	res := Layout(series, widths, Options{Position: Top, AvailableWidth: 200})

	wantRows := []int{0, 0, 0, 1, 1}
	wantX := []float64{0, 70, 140, 0, 60}
	for i, it := range res.Items {
		if it.Row != wantRows[i] || it.Anchor.X != wantX[i] {
			t.Errorf("item %s: row %d x %v, want row %d x %v", it.Series, it.Row, it.Anchor.X, wantRows[i], wantX[i])
		}
		if it.Anchor.Y != float64(it.Row)*DefaultRowHeight {
			t.Errorf("item %s: y %v", it.Series, it.Anchor.Y)
		}
	}
	if res.Rows != 2 || res.Height != 30 {
		t.Errorf("Rows = %d, Height = %v", res.Rows, res.Height)
	}
}

func TestLayoutExactFit(t *testing.T) {
	res := Layout([]string{"North", "South"}, widths, Options{Position: Top, AvailableWidth: 140})
	if res.Rows != 1 {
		t.Errorf("exact fit wrapped: %d rows", res.Rows)
	}
	res = Layout([]string{"North", "South"}, widths, Options{Position: Top, AvailableWidth: 139})
	if res.Rows != 2 {
		t.Errorf("overflow did not wrap: %d rows", res.Rows)
	}
}

func TestLayoutOversizedItem(t *testing.T) {
	res := Layout([]string{"Central", "East"}, widths, Options{Position: Top, AvailableWidth: 50})
	if res.Items[0].Row != 0 || res.Items[1].Row != 1 {
		t.Errorf("rows = %d, %d; want 0, 1", res.Items[0].Row, res.Items[1].Row)
	}
}

func TestLayoutBottomCentered(t *testing.T) {
	res := Layout([]string{"North", "South"}, widths, Options{Position: Bottom, AvailableWidth: 300})
	if got := res.Items[0].Anchor.X; got != 80 {
		t.Errorf("start x = %v, want 80", got)
	}
	// A legend wider than the container starts at 0.
	res = Layout([]string{"North", "South", "East", "West", "Central"}, widths, Options{Position: Bottom, AvailableWidth: 200})
	if got := res.Items[0].Anchor.X; got != 0 {
		t.Errorf("overflowing start x = %v, want 0", got)
	}
}

func TestLayoutLeft(t *testing.T) {
	res := Layout([]string{"North", "Central", "East"}, widths, Options{Position: Left, RowHeight: 20})
	for i, it := range res.Items {
		if it.Anchor.X != 0 || it.Anchor.Y != float64(i)*20 {
			t.Errorf("item %d anchor %+v", i, it.Anchor)
		}
	}
	if res.Width != 90 || res.Height != 60 {
		t.Errorf("Width = %v, Height = %v", res.Width, res.Height)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	series := []string{"North", "South", "East", "West", "Central"}
	opts := Options{Position: Bottom, AvailableWidth: 170}
	first := Layout(series, widths, opts)
	for range 10 {
		if again := Layout(series, widths, opts); !reflect.DeepEqual(first, again) {
			t.Fatalf("Layout not deterministic:\n%+v\n%+v", first, again)
		}
	}
}

func TestParsePosition(t *testing.T) {
	for in, want := range map[string]Position{"": Top, "TOP": Top, "bottom": Bottom, " Left ": Left} {
		got, err := ParsePosition(in)
		if err != nil || got != want {
			t.Errorf("ParsePosition(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParsePosition("right"); err == nil {
		t.Error("ParsePosition(right) succeeded")
	}
}

func ExampleLayout() {
	m := measure.Lookup{Widths: map[string]float64{"North": 40, "South": 40}}
	res := Layout([]string{"North", "South"}, m, Options{Position: Top, AvailableWidth: 100})
	for _, it := range res.Items {
		fmt.Println(it.Series, it.Row, it.Anchor.X, it.Anchor.Y)
	}
	// Output:
	// North 0 0 0
	// South 1 0 15
}
