// Package config defines the versioned configuration for growthchart.
//
// The layout engine reads a [LayoutConfig] snapshot: one explicitly
// enumerated option group per subsystem (chart, axes, legend, labels,
// threshold, growth indicators). A [File] wraps it together with the
// ambient settings of the command-line tool and server (render output,
// cache backend, listen address) and is stored as TOML.
//
// # Loading
//
// [Load] decodes a file on top of [Default], so omitted keys keep their
// defaults, rejects unknown keys and versions, and runs [LayoutConfig.Validate].
//
//	cfg, err := config.Load("growthchart.toml")
//	if err != nil {
//	    return err
//	}
//	result := layout.Compute(raw, cfg.Layout, measurer)
package config

// CurrentVersion is the configuration schema version this build reads and
// writes.
const CurrentVersion = 1

// =============================================================================
// Layout options
// =============================================================================

// LayoutConfig is the immutable option snapshot for one layout pass.
type LayoutConfig struct {
	Version         int                 `toml:"version" json:"version"`
	Chart           ChartConfig         `toml:"chart" json:"chart"`
	YAxis           YAxisConfig         `toml:"y_axis" json:"y_axis"`
	SecondaryAxis   SecondaryAxisConfig `toml:"secondary_axis" json:"secondary_axis"`
	Legend          LegendConfig        `toml:"legend" json:"legend"`
	Labels          LabelsConfig        `toml:"labels" json:"labels"`
	Threshold       ThresholdConfig     `toml:"threshold" json:"threshold"`
	PrimaryGrowth   GrowthConfig        `toml:"primary_growth" json:"primary_growth"`
	SecondaryGrowth GrowthConfig        `toml:"secondary_growth" json:"secondary_growth"`
}

// ChartConfig holds the frame and chart type.
type ChartConfig struct {
	Type          string  `toml:"type" json:"type"`
	Width         float64 `toml:"width" json:"width"`
	Height        float64 `toml:"height" json:"height"`
	MarginX       float64 `toml:"margin_x" json:"margin_x"`
	MarginY       float64 `toml:"margin_y" json:"margin_y"`
	BarWhiteSpace float64 `toml:"bar_white_space" json:"bar_white_space"`
	CleanAxis     bool    `toml:"clean_axis" json:"clean_axis"`
	Capacity      bool    `toml:"capacity" json:"capacity"`
}

// YAxisConfig controls the primary value axis.
type YAxisConfig struct {
	TickCount    int     `toml:"tick_count" json:"tick_count"`
	MaxValue     float64 `toml:"max_value" json:"max_value"`
	MaxOptional  bool    `toml:"max_optional" json:"max_optional"`
	ScaleFactor  float64 `toml:"scale_factor" json:"scale_factor"`
	Rounded      bool    `toml:"rounded" json:"rounded"`
	DisplayUnits string  `toml:"display_units" json:"display_units"`
	FontFamily   string  `toml:"font_family" json:"font_family"`
	FontSize     float64 `toml:"font_size" json:"font_size"`
}

// SecondaryAxisConfig controls the optional right-hand axis.
type SecondaryAxisConfig struct {
	Enabled      bool    `toml:"enabled" json:"enabled"`
	MinValue     float64 `toml:"min_value" json:"min_value"`
	MaxValue     float64 `toml:"max_value" json:"max_value"`
	TickCount    int     `toml:"tick_count" json:"tick_count"`
	DisplayUnits string  `toml:"display_units" json:"display_units"`
}

// LegendConfig controls legend placement.
type LegendConfig struct {
	Enabled           bool    `toml:"enabled" json:"enabled"`
	Position          string  `toml:"position" json:"position"`
	Margin            float64 `toml:"margin" json:"margin"`
	FontFamily        string  `toml:"font_family" json:"font_family"`
	FontSize          float64 `toml:"font_size" json:"font_size"`
	RowHeight         float64 `toml:"row_height" json:"row_height"`
	HorizontalPadding float64 `toml:"horizontal_padding" json:"horizontal_padding"`
}

// LabelsConfig controls segment and summation labels.
type LabelsConfig struct {
	BarLabels     bool    `toml:"bar_labels" json:"bar_labels"`
	SumLabels     bool    `toml:"sum_labels" json:"sum_labels"`
	FontFamily    string  `toml:"font_family" json:"font_family"`
	BarFontSize   float64 `toml:"bar_font_size" json:"bar_font_size"`
	SumFontSize   float64 `toml:"sum_font_size" json:"sum_font_size"`
	DisplayUnits  string  `toml:"display_units" json:"display_units"`
	DisplayDigits int     `toml:"display_digits" json:"display_digits"`
	Tolerance     float64 `toml:"tolerance" json:"tolerance"`
	SumBoxHeight  float64 `toml:"sum_box_height" json:"sum_box_height"`
}

// ThresholdConfig controls reference lines drawn from Line Values.
type ThresholdConfig struct {
	Enabled       bool    `toml:"enabled" json:"enabled"`
	Axis          string  `toml:"axis" json:"axis"`
	Mode          string  `toml:"mode" json:"mode"`
	PerSeries     bool    `toml:"per_series" json:"per_series"`
	LineType      string  `toml:"line_type" json:"line_type"`
	LineThickness float64 `toml:"line_thickness" json:"line_thickness"`
}

// GrowthConfig controls one growth indicator family.
type GrowthConfig struct {
	Enabled          bool              `toml:"enabled" json:"enabled"`
	Selector1        string            `toml:"selector1" json:"selector1"`
	Selector2        string            `toml:"selector2" json:"selector2"`
	SelectorsList    string            `toml:"selectors_list" json:"selectors_list"`
	CalendarFallback string            `toml:"calendar_fallback" json:"calendar_fallback"`
	LookbackPeriods  int               `toml:"lookback_periods" json:"lookback_periods"`
	Line             GrowthLineConfig  `toml:"line" json:"line"`
	Label            GrowthLabelConfig `toml:"label" json:"label"`
}

// GrowthLineConfig shapes the indicator polyline.
type GrowthLineConfig struct {
	OffsetHeight float64 `toml:"offset_height" json:"offset_height"`
	Size         float64 `toml:"size" json:"size"`
	LineType     string  `toml:"line_type" json:"line_type"`
	DisplayArrow string  `toml:"display_arrow" json:"display_arrow"`
	ArrowSize    float64 `toml:"arrow_size" json:"arrow_size"`
}

// GrowthLabelConfig shapes the percentage label.
type GrowthLabelConfig struct {
	FontFamily      string  `toml:"font_family" json:"font_family"`
	FontSize        float64 `toml:"font_size" json:"font_size"`
	Height          float64 `toml:"height" json:"height"`
	MinWidth        float64 `toml:"min_width" json:"min_width"`
	OffsetHeight    float64 `toml:"offset_height" json:"offset_height"`
	BgShape         bool    `toml:"bg_shape" json:"bg_shape"`
	ShowSign        bool    `toml:"show_sign" json:"show_sign"`
	DisplaySide     string  `toml:"display_side" json:"display_side"`
	XOffset         float64 `toml:"x_offset" json:"x_offset"`
	AlignIndicators bool    `toml:"align_indicators" json:"align_indicators"`
}

// =============================================================================
// Ambient settings
// =============================================================================

// File is the on-disk configuration.
type File struct {
	Version int          `toml:"version"`
	Layout  LayoutConfig `toml:"layout"`
	Render  RenderConfig `toml:"render"`
	Cache   CacheConfig  `toml:"cache"`
	Server  ServerConfig `toml:"server"`
}

// RenderConfig controls output artifacts.
type RenderConfig struct {
	Formats    []string `toml:"formats"`
	Palette    []string `toml:"palette"`
	Background string   `toml:"background"`
	EmbedFont  bool     `toml:"embed_font"`
	Measurer   string   `toml:"measurer"` // "opentype" or "heuristic"
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend         string `toml:"backend"` // file, redis, mongo or none
	Dir             string `toml:"dir"`
	TTL             string `toml:"ttl"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	ReadTimeout  string `toml:"read_timeout"`
	WriteTimeout string `toml:"write_timeout"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}
