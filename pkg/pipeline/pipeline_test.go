package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/growthchart/pkg/cache"
	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/config"
	"github.com/matzehuels/growthchart/pkg/measure"
)

func regionRaw() *table.Raw {
	return &table.Raw{
		Categories: []string{"Jan-21", "Feb-21"},
		Groups: []table.Group{
			{Name: "North", Measures: []table.Measure{
				{Role: "Column Values", Values: []table.Value{40, 60}},
				{Role: "Capacities", Values: []table.Value{100}},
			}},
			{Name: "South", Measures: []table.Measure{
				{Role: "Column Values", Values: []table.Value{10, 30}},
				{Role: "Capacities", Values: []table.Value{50}},
			}},
		},
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	r := NewRunner(c, nil, logger)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateMeasurer(t *testing.T) {
	for _, name := range []string{"", "opentype", "heuristic"} {
		if err := ValidateMeasurer(name); err != nil {
			t.Errorf("ValidateMeasurer(%q) = %v", name, err)
		}
	}
	if err := ValidateMeasurer("freetype"); err == nil {
		t.Error("ValidateMeasurer(freetype) should fail")
	}
}

func TestValidateForLoad(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"neither", Options{}, true},
		{"both", Options{DataPath: "a.csv", Data: regionRaw()}, true},
		{"path", Options{DataPath: "a.csv"}, false},
		{"inline", Options{Data: regionRaw()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLoad()
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateForRenderDefaults(t *testing.T) {
	opts := Options{Formats: []string{" SVG", "json", "svg"}}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if strings.Join(opts.Formats, ",") != "svg,json" {
		t.Errorf("formats = %v, want [svg json]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Config.Version != config.CurrentVersion {
		t.Error("default config not applied")
	}

	cfg := config.Default()
	cfg.Render.Formats = []string{"json"}
	opts = Options{Config: cfg}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "json" {
		t.Errorf("formats = %v, want config formats", opts.Formats)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 3}
	_ = opts.ValidateForRender()

	svg, err := opts.ArtifactKeyOpts(FormatSVG)
	if err != nil {
		t.Fatal(err)
	}
	png, _ := opts.ArtifactKeyOpts(FormatPNG)
	if svg.Scale != 0 || png.Scale != 3 {
		t.Errorf("scale: svg %v png %v, want 0 and 3", svg.Scale, png.Scale)
	}

	opts.Title = "Regions"
	titled, _ := opts.ArtifactKeyOpts(FormatSVG)
	if titled.StyleHash == svg.StyleHash {
		t.Error("title should change the style hash")
	}
}

func TestExecuteCaches(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{
		Data:     regionRaw(),
		Formats:  []string{"svg", "json"},
		Measurer: measure.Heuristic{},
	}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.Err() != nil {
		t.Fatalf("layout failed: %v", first.Err())
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run cache info = %+v, want misses", first.CacheInfo)
	}
	if !bytes.Contains(first.Artifacts["svg"], []byte("40%")) {
		t.Error("svg missing growth label 40%")
	}
	if len(first.Artifacts["json"]) == 0 {
		t.Error("json artifact empty")
	}
	if first.Stats.Columns != 3 || first.Stats.Series != 2 || first.DataHash == "" {
		t.Errorf("stats = %+v hash %q", first.Stats, first.DataHash)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh cache info = %+v, want misses", third.CacheInfo)
	}
}

func TestExecuteConfigChangeMissesLayoutCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Data: regionRaw(), Formats: []string{"json"}, Measurer: measure.Heuristic{}}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Layout.Chart.Capacity = false
	opts.Config = cfg
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("changed layout config should miss the layout cache")
	}
	if res.Stats.Columns != 2 {
		t.Errorf("columns = %d, want 2 without capacity", res.Stats.Columns)
	}
}

func TestExecuteLayoutFailure(t *testing.T) {
	r := newTestRunner(t)
	cfg := config.Default()
	cfg.Layout.Chart.Width = 30

	res, err := r.Execute(context.Background(), Options{
		Data:     regionRaw(),
		Config:   cfg,
		Measurer: measure.Heuristic{},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Err() == nil {
		t.Fatal("expected layout failure")
	}
	if !bytes.Contains(res.Artifacts["svg"], []byte("Width is too small.")) {
		t.Errorf("svg should carry the failure message: %s", res.Artifacts["svg"])
	}
}

func TestExecuteDataPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.csv")
	csv := "Month,North,North|Capacities,South,South|Capacities\nJan-21,40,100,10,50\nFeb-21,60,,30,\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newTestRunner(t)
	res, err := r.Execute(context.Background(), Options{
		DataPath: path,
		Formats:  []string{"json"},
		Measurer: measure.Heuristic{},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.Categories != 2 || res.Err() != nil {
		t.Errorf("stats = %+v err = %v", res.Stats, res.Err())
	}

	_, err = r.Execute(context.Background(), Options{DataPath: filepath.Join(t.TempDir(), "missing.csv")})
	if err == nil {
		t.Error("missing data file should fail")
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Execute(context.Background(), Options{Data: regionRaw(), Formats: []string{"gif"}})
	if err == nil {
		t.Error("expected invalid format error")
	}
}

func TestLayoutTable(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	tbl, err := table.Build(*regionRaw(), table.Options{})
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Measurer: measure.Heuristic{}}

	cached, err := r.Layout(ctx, *regionRaw(), opts)
	if err != nil {
		t.Fatal(err)
	}
	l, err := r.LayoutTable(ctx, tbl, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Columns) != len(cached.Columns) || len(l.Indicators) != len(cached.Indicators) {
		t.Errorf("table layout = %d columns %d indicators, want %d and %d",
			len(l.Columns), len(l.Indicators), len(cached.Columns), len(cached.Indicators))
	}

	cfg := config.Default()
	cfg.Layout.Chart.Capacity = false
	l, err = r.LayoutTable(ctx, tbl, Options{Config: cfg, Measurer: measure.Heuristic{}})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Columns) != 2 {
		t.Errorf("columns = %d, want 2 without capacity", len(l.Columns))
	}
	if !tbl.HasCapacity() {
		t.Error("LayoutTable should not modify the caller's table")
	}

	cfg.Render.Measurer = "freetype"
	if _, err := r.LayoutTable(ctx, tbl, Options{Config: cfg}); err == nil {
		t.Error("unknown measurer should fail")
	}
}
