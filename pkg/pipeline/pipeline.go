// Package pipeline provides the load → layout → render pipeline for growthchart.
//
// The CLI and the HTTP server both run charts through a [Runner] so caching,
// logging and format handling behave the same at every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read host data from a JSON, CSV or XLSX file (or take it inline)
//  2. Layout: Resolve the drawing plan with the layout engine
//  3. Render: Produce SVG, PNG, PDF or JSON artifacts from the plan
//
// Layouts are cached by the hash of the data together with the layout
// configuration. Artifacts are cached per format by the hash of the layout
// together with the render style.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DataPath: "regions.csv",
//	    Config:   cfg,
//	    Formats:  []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// A layout that failed (see [layout.Layout.Error]) still renders: the
// artifacts show the error message in place of the chart.
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/growthchart/pkg/cache"
	"github.com/matzehuels/growthchart/pkg/chart/layout"
	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/config"
	"github.com/matzehuels/growthchart/pkg/measure"
	"github.com/matzehuels/growthchart/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultScale is the PNG pixel density used when Options.Scale is unset.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Measurer names accepted in [config.RenderConfig].
const (
	MeasurerOpentype  = "opentype"
	MeasurerHeuristic = "heuristic"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input: either a file path or inline data.
	DataPath string     `json:"-"`
	Data     *table.Raw `json:"data,omitempty"`

	// Config holds the layout options and the render settings.
	Config config.File `json:"-"`

	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Title   string   `json:"title,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger      `json:"-"`
	Measurer measure.Measurer `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Raw is the loaded host data.
	Raw table.Raw

	// DataHash is the content hash of Raw.
	DataHash string

	// Layout is the resolved drawing plan. Layout.Error is set when the pass
	// failed.
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Err returns the layout failure, or nil.
func (r *Result) Err() error {
	if r == nil || r.Layout == nil {
		return nil
	}
	return r.Layout.Err()
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Categories int
	Series     int
	Columns    int
	Warnings   int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMeasurer checks a measurer name. Empty selects the default.
func ValidateMeasurer(name string) error {
	switch name {
	case "", MeasurerOpentype, MeasurerHeuristic:
		return nil
	}
	return fmt.Errorf("invalid measurer: %q (must be one of: opentype, heuristic)", name)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that exactly one input is given.
func (o *Options) ValidateForLoad() error {
	if o.DataPath == "" && o.Data == nil {
		return fmt.Errorf("data or data path is required")
	}
	if o.DataPath != "" && o.Data != nil {
		return fmt.Errorf("data and data path are mutually exclusive")
	}
	o.setLogger()
	return nil
}

// ValidateForLayout applies the default configuration when none was given.
// The layout options themselves are validated by the engine, which reports
// problems in the layout rather than as an error.
func (o *Options) ValidateForLayout() error {
	if o.Config.Version == 0 {
		o.Config = config.Default()
	}
	o.setLogger()
	return ValidateMeasurer(o.Config.Render.Measurer)
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if o.Config.Version == 0 {
		o.Config = config.Default()
	}
	if len(o.Formats) == 0 {
		o.Formats = o.Config.Render.Formats
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	formats := make([]string, 0, len(o.Formats))
	seen := make(map[string]bool, len(o.Formats))
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Style returns the render style derived from the configuration.
func (o *Options) Style() sink.Style {
	return sink.StyleFromConfig(o.Config)
}

// MeasurerName returns the configured measurer, defaulting to opentype.
// A caller-supplied Measurer is reported as "custom".
func (o *Options) MeasurerName() string {
	if o.Measurer != nil {
		return "custom"
	}
	if o.Config.Render.Measurer == "" {
		return MeasurerOpentype
	}
	return o.Config.Render.Measurer
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() (cache.LayoutKeyOpts, error) {
	h, err := cache.HashJSON(o.Config.Layout)
	if err != nil {
		return cache.LayoutKeyOpts{}, err
	}
	return cache.LayoutKeyOpts{ConfigHash: h, Measurer: o.MeasurerName()}, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) (cache.ArtifactKeyOpts, error) {
	h, err := cache.HashJSON(struct {
		Style sink.Style
		Title string
	}{o.Style(), o.Title})
	if err != nil {
		return cache.ArtifactKeyOpts{}, err
	}
	k := cache.ArtifactKeyOpts{Format: format, StyleHash: h}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k, nil
}
