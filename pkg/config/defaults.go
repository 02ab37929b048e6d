package config

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Version: CurrentVersion,
		Layout:  DefaultLayout(),
		Render: RenderConfig{
			Formats:    []string{"svg"},
			Palette:    DefaultPalette(),
			Background: "#ffffff",
			Measurer:   "opentype",
		},
		Cache: CacheConfig{
			Backend:         "file",
			TTL:             "24h",
			RedisAddr:       "localhost:6379",
			MongoDatabase:   "growthchart",
			MongoCollection: "cache",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  "15s",
			WriteTimeout: "60s",
			MaxBodyBytes: 10 << 20,
		},
	}
}

// DefaultLayout returns the default layout options.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Version: CurrentVersion,
		Chart: ChartConfig{
			Type:          "stacked",
			Width:         800,
			Height:        500,
			MarginX:       40,
			MarginY:       40,
			BarWhiteSpace: 0.3,
			Capacity:      true,
		},
		YAxis: YAxisConfig{
			TickCount:    3,
			ScaleFactor:  1.2,
			DisplayUnits: "auto",
			FontFamily:   "Calibri",
			FontSize:     11,
		},
		SecondaryAxis: SecondaryAxisConfig{
			TickCount:    3,
			DisplayUnits: "auto",
		},
		Legend: LegendConfig{
			Enabled:           true,
			Position:          "top",
			Margin:            10,
			FontFamily:        "Calibri",
			FontSize:          13,
			RowHeight:         15,
			HorizontalPadding: 30,
		},
		Labels: LabelsConfig{
			BarLabels:     true,
			SumLabels:     true,
			FontFamily:    "Calibri",
			BarFontSize:   10,
			SumFontSize:   11,
			DisplayUnits:  "auto",
			DisplayDigits: 1,
			SumBoxHeight:  20,
		},
		Threshold: ThresholdConfig{
			Mode:          "sum",
			LineType:      "dashed",
			LineThickness: 2,
		},
		PrimaryGrowth:   defaultGrowth(true),
		SecondaryGrowth: defaultGrowth(false),
	}
}

func defaultGrowth(enabled bool) GrowthConfig {
	return GrowthConfig{
		Enabled:          enabled,
		CalendarFallback: "first",
		LookbackPeriods:  12,
		Line: GrowthLineConfig{
			OffsetHeight: 25,
			Size:         2,
			LineType:     "solid",
			DisplayArrow: "both",
			ArrowSize:    20,
		},
		Label: GrowthLabelConfig{
			FontFamily:  "Calibri",
			FontSize:    11,
			Height:      20,
			MinWidth:    50,
			BgShape:     true,
			ShowSign:    true,
			DisplaySide: "right",
			XOffset:     20,
		},
	}
}

// DefaultPalette returns the series colors used by the renderers.
func DefaultPalette() []string {
	return []string{
		"#118dff", "#12239e", "#e66c37", "#6b007b",
		"#e044a7", "#744ec2", "#d9b300", "#d64550",
	}
}
