package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/growthchart/pkg/chart/geom"
	"github.com/matzehuels/growthchart/pkg/chart/layout"
	"github.com/matzehuels/growthchart/pkg/fonts"
)

// svgUnits is the number of viewBox units per pixel. svgo takes integer
// coordinates, so the canvas is drawn at ten times the resolution.
const svgUnits = 10

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style Style
	title string
}

// WithStyle sets colors and font sizes.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG renders the layout as an SVG document. A layout that failed
// renders its error message in place of the chart.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: DefaultStyle()}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	c := svg.New(&buf)
	c.Startview(px(l.Width), px(l.Height), 0, 0, u(l.Width), u(l.Height))
	if r.title != "" {
		c.Title(r.title)
	}
	if r.style.EmbedFont {
		c.Style("text/css", fmt.Sprintf(
			"@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
			fonts.FontFamily, fonts.RegularTTFBase64()))
	}
	c.Rect(0, 0, u(l.Width), u(l.Height), "fill:"+r.style.Background)

	if !l.OK() {
		c.Text(u(l.Width/2), u(l.Height/2), l.Error.Message,
			r.text(r.style.AxisFontSize, "middle")+";fill:"+errorColor)
		c.End()
		return buf.Bytes()
	}

	c.Gtransform(fmt.Sprintf("translate(%d,%d)", u(l.Plot.X), u(l.Plot.Y)))
	r.axes(c, l)
	r.segments(c, l)
	r.thresholds(c, l)
	r.labels(c, l)
	r.indicators(c, l)
	c.Gend()
	r.legend(c, l)
	c.End()
	return buf.Bytes()
}

func (r *svgRenderer) text(size float64, anchor string) string {
	return fmt.Sprintf("font-family:%s;font-size:%dpx;text-anchor:%s;dominant-baseline:central;fill:%s",
		r.style.fontFamily(), u(size), anchor, textColor)
}

func (r *svgRenderer) axes(c *svg.SVG, l *layout.Layout) {
	w := l.Plot.W
	if l.Primary != nil {
		for _, t := range l.Primary.Ticks {
			c.Line(0, u(t.Y), u(w), u(t.Y), stroke(gridColor, 1, ""))
			c.Text(u(-6), u(t.Y), t.Text, r.text(r.style.AxisFontSize, "end"))
		}
	}
	if l.Secondary != nil {
		for _, t := range l.Secondary.Ticks {
			c.Text(u(w+6), u(t.Y), t.Text, r.text(r.style.AxisFontSize, "start"))
		}
	}
	c.Line(0, u(l.Plot.H), u(w), u(l.Plot.H), stroke(axisColor, 1, ""))
	for _, col := range l.Columns {
		c.Text(u(col.Center), u(l.Plot.H+r.style.AxisFontSize), col.Label, r.text(r.style.AxisFontSize, "middle"))
	}
}

func (r *svgRenderer) segments(c *svg.SVG, l *layout.Layout) {
	for _, s := range l.Segments {
		if s.Rect.Empty() {
			continue
		}
		c.Rect(u(s.Rect.X), u(s.Rect.Y), u(s.Rect.W), u(s.Rect.H), "fill:"+r.style.SeriesColor(s.SeriesIndex))
	}
}

func (r *svgRenderer) thresholds(c *svg.SVG, l *layout.Layout) {
	for _, t := range l.Thresholds {
		c.Line(u(t.X1), u(t.Y), u(t.X2), u(t.Y), stroke(thresholdColor, t.Thickness, t.Dash))
	}
}

func (r *svgRenderer) labels(c *svg.SVG, l *layout.Layout) {
	for _, p := range l.VisibleLabels() {
		if p.Box != nil {
			c.Rect(u(p.Box.X), u(p.Box.Y), u(p.Box.W), u(p.Box.H), "fill:"+r.style.Background+";fill-opacity:0.8")
		}
		c.Text(u(p.Anchor.X), u(p.Anchor.Y), p.Text, r.text(r.style.labelSize(p.Kind), "middle"))
	}
}

func (r *svgRenderer) indicators(c *svg.SVG, l *layout.Layout) {
	for _, ind := range l.Indicators {
		dash := ""
		if ind.Dashed {
			dash = "4,3"
		}
		xs, ys := coords(ind.Path)
		c.Polyline(xs, ys, stroke(indicatorColor, ind.LineSize, dash)+";fill:none")
		for _, a := range ind.Arrows {
			xs, ys := coords(triangle(a, ind.ArrowSize))
			c.Polygon(xs, ys, "fill:"+indicatorColor)
		}
		if e := ind.Ellipse; e != nil {
			c.Ellipse(u(e.Center.X), u(e.Center.Y), u(e.RX), u(e.RY),
				"fill:"+r.style.Background+";"+stroke(indicatorColor, 1, ""))
		}
		c.Text(u(ind.Label.X), u(ind.Label.Y), ind.Text, r.text(r.style.growthSize(ind.Kind), "middle"))
	}
}

func (r *svgRenderer) legend(c *svg.SVG, l *layout.Layout) {
	if l.Legend == nil {
		return
	}
	size := l.Legend.FontSize
	for _, it := range l.Legend.Items {
		y := it.Anchor.Y + size/2
		c.Circle(u(it.Anchor.X+size/2), u(y), u(size/3), "fill:"+r.style.SeriesColor(it.Index))
		c.Text(u(it.Anchor.X+size), u(y), it.Series, r.text(size, "start"))
	}
}

func stroke(color string, width float64, dash string) string {
	s := fmt.Sprintf("stroke:%s;stroke-width:%d", color, u(width))
	if dash != "" {
		s += ";stroke-dasharray:" + scaleDash(dash)
	}
	return s
}

// scaleDash converts a pixel dash pattern such as "5,4" to viewBox units.
func scaleDash(dash string) string {
	var a, b float64
	if n, _ := fmt.Sscanf(dash, "%g,%g", &a, &b); n == 2 {
		return fmt.Sprintf("%d,%d", u(a), u(b))
	}
	return dash
}

func coords(pts []geom.Point) (xs, ys []int) {
	xs = make([]int, len(pts))
	ys = make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = u(p.X), u(p.Y)
	}
	return xs, ys
}

// u converts pixels to viewBox units.
func u(v float64) int { return int(math.Round(v * svgUnits)) }

// px rounds a pixel size for the width and height attributes.
func px(v float64) int { return int(math.Round(v)) }
