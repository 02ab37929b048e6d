package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/growth"
	"github.com/matzehuels/growthchart/pkg/chart/legend"
	"github.com/matzehuels/growthchart/pkg/errors"
)

func TestDefaultValid(t *testing.T) {
	f := Default()
	if err := f.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if f.Layout.ChartType() != chart.Stacked || f.Layout.LegendPosition() != legend.Top {
		t.Errorf("unexpected defaults: %s %s", f.Layout.ChartType(), f.Layout.LegendPosition())
	}
}

func TestDecodeKeepsDefaults(t *testing.T) {
	src := `
version = 1

[layout.chart]
type = "clustered"
width = 1024

[layout.primary_growth]
selector1 = "Jan-21"

[layout.primary_growth.label]
show_sign = false

[cache]
backend = "redis"
`
	f, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.Layout.ChartType() != chart.Clustered || f.Layout.Chart.Width != 1024 {
		t.Errorf("chart = %+v", f.Layout.Chart)
	}
	if f.Layout.Chart.Height != 500 || f.Layout.YAxis.ScaleFactor != 1.2 {
		t.Errorf("defaults lost: height %v factor %v", f.Layout.Chart.Height, f.Layout.YAxis.ScaleFactor)
	}
	g := f.Layout.PrimaryGrowth.GrowthOptions()
	if g.Selector1 != "Jan-21" || g.Label.ShowSign || !g.Label.BgShape || g.Line.Arrow != growth.ArrowBoth {
		t.Errorf("growth options = %+v", g)
	}
	if f.Cache.Backend != "redis" || f.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", f.Cache)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unknown key", "version = 1\n[layout.chart]\ncolour = 1\n", "unknown config keys: layout.chart.colour"},
		{"bad version", "version = 2\n", "unsupported config version 2"},
		{"bad type", "version = 1\n[layout.chart]\ntype = \"pie\"\n", "chart.type"},
		{"threshold", "version = 1\n[layout.threshold]\nenabled = true\nline_thickness = 0.5\n", "Threshold Height needs to be greater than 1."},
		{"growth height", "version = 1\n[layout.primary_growth.line]\noffset_height = 0\n", "Growth Line Height too small."},
		{"white space", "version = 1\n[layout.chart]\nbar_white_space = 1.0\n", "bar_white_space"},
		{"units", "version = 1\n[layout.labels]\ndisplay_units = \"dozens\"\n", "unknown unit"},
		{"arrow", "version = 1\n[layout.secondary_growth.line]\ndisplay_arrow = \"up\"\n", "display_arrow"},
		{"threshold line", "version = 1\n[layout.threshold]\nline_type = \"dotted\"\n", "threshold.line_type: unknown line type \"dotted\""},
		{"growth line", "version = 1\n[layout.primary_growth.line]\nline_type = \"dotted\"\n", "unknown line type"},
		{"ttl", "version = 1\n[cache]\nttl = \"soon\"\n", "cache.ttl"},
		{"syntax", "version = \n", "decode config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("err = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("err = %q, want it to contain %q", err, tt.msg)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "growthchart.toml")
	f := Default()
	f.Layout.Legend.Position = "bottom"
	f.Layout.SecondaryGrowth.Enabled = true
	f.Layout.SecondaryGrowth.Selector1 = "Jan-21,Feb-21"

	if err := Save(path, f); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Layout.LegendPosition() != legend.Bottom || got.Layout.SecondaryGrowth.Selector1 != "Jan-21,Feb-21" {
		t.Errorf("round trip lost values: %+v", got.Layout)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestEncodeIsDecodable(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), "[layout.primary_growth.label]") {
		t.Errorf("missing nested table:\n%s", buf.String())
	}
	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load(encoded defaults) = %v", err)
	}
}

func TestThresholdAxis(t *testing.T) {
	c := DefaultLayout()
	if c.ThresholdOnSecondary() {
		t.Error("threshold on secondary without a secondary axis")
	}
	c.SecondaryAxis.Enabled = true
	if !c.ThresholdOnSecondary() {
		t.Error("unset axis should follow the secondary axis")
	}
	c.Threshold.Axis = "primary"
	if c.ThresholdOnSecondary() {
		t.Error("explicit primary axis ignored")
	}
}

func TestDuration(t *testing.T) {
	if got := Duration("90s", time.Second); got != 90*time.Second {
		t.Errorf("Duration = %v", got)
	}
	if got := Duration("", time.Second); got != time.Second {
		t.Errorf("fallback = %v", got)
	}
	if got := (CacheConfig{TTL: "1h"}).TTLOr(0); got != time.Hour {
		t.Errorf("TTLOr = %v", got)
	}
}
