package sink

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/growthchart/pkg/chart/geom"
	"github.com/matzehuels/growthchart/pkg/chart/growth"
	"github.com/matzehuels/growthchart/pkg/chart/label"
	"github.com/matzehuels/growthchart/pkg/config"
	"github.com/matzehuels/growthchart/pkg/fonts"
)

const (
	axisColor      = "#605e5c"
	gridColor      = "#e1dfdd"
	textColor      = "#252423"
	indicatorColor = "#404040"
	thresholdColor = "#d64550"
	errorColor     = "#a80000"
)

// Style holds the presentation settings that are not part of the layout:
// colors and the font sizes of each text role.
type Style struct {
	Palette    []string
	Background string
	EmbedFont  bool

	AxisFontSize        float64
	BarFontSize         float64
	SumFontSize         float64
	PrimaryGrowthSize   float64
	SecondaryGrowthSize float64
}

// DefaultStyle returns the style of the default configuration.
func DefaultStyle() Style {
	return StyleFromConfig(config.Default())
}

// StyleFromConfig derives the style from a configuration file.
func StyleFromConfig(f config.File) Style {
	return Style{
		Palette:             f.Render.Palette,
		Background:          f.Render.Background,
		EmbedFont:           f.Render.EmbedFont,
		AxisFontSize:        f.Layout.YAxis.FontSize,
		BarFontSize:         f.Layout.Labels.BarFontSize,
		SumFontSize:         f.Layout.Labels.SumFontSize,
		PrimaryGrowthSize:   f.Layout.PrimaryGrowth.Label.FontSize,
		SecondaryGrowthSize: f.Layout.SecondaryGrowth.Label.FontSize,
	}
}

// SeriesColor returns the palette color of series i, cycling the palette.
func (s Style) SeriesColor(i int) string {
	if len(s.Palette) == 0 {
		return config.DefaultPalette()[i%len(config.DefaultPalette())]
	}
	return s.Palette[i%len(s.Palette)]
}

func (s Style) labelSize(k label.Kind) float64 {
	if k == label.KindSum {
		return s.SumFontSize
	}
	return s.BarFontSize
}

func (s Style) growthSize(k growth.Kind) float64 {
	if k == growth.Secondary {
		return s.SecondaryGrowthSize
	}
	return s.PrimaryGrowthSize
}

func (s Style) fontFamily() string {
	if s.EmbedFont {
		return "'" + fonts.FontFamily + "', " + fonts.FallbackFontFamily
	}
	return fonts.FallbackFontFamily
}

// triangle returns the corners of an arrow marker: an upward triangle of the
// given symbol area centered on a.At, rotated clockwise by a.Rotation degrees.
func triangle(a growth.Arrow, area float64) []geom.Point {
	y := -math.Sqrt(area / (math.Sqrt(3) * 3))
	pts := []geom.Point{
		{X: 0, Y: 2 * y},
		{X: -math.Sqrt(3) * y, Y: -y},
		{X: math.Sqrt(3) * y, Y: -y},
	}
	rad := a.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	for i, p := range pts {
		pts[i] = geom.Pt(a.At.X+p.X*cos-p.Y*sin, a.At.Y+p.X*sin+p.Y*cos)
	}
	return pts
}

// parseHex parses "#rgb" or "#rrggbb". Invalid input yields black.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
