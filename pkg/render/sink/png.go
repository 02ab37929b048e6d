package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/growthchart/pkg/chart/layout"
	"github.com/matzehuels/growthchart/pkg/fonts"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style Style
	scale float64
	faces map[float64]font.Face
}

// WithPNGStyle sets colors and font sizes.
func WithPNGStyle(s Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the layout with gg using the embedded font, so no
// external tools are needed.
func RenderPNG(l *layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: DefaultStyle(), scale: 2.0, faces: make(map[float64]font.Face)}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	defer r.close()

	w := int(math.Ceil(l.Width * r.scale))
	h := int(math.Ceil(l.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty frame %vx%v", l.Width, l.Height)
	}
	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	dc.SetColor(parseHex(r.style.Background))
	dc.Clear()

	if !l.OK() {
		if err := r.font(dc, r.style.AxisFontSize); err != nil {
			return nil, err
		}
		dc.SetColor(parseHex(errorColor))
		dc.DrawStringAnchored(l.Error.Message, l.Width/2, l.Height/2, 0.5, 0.5)
		return encode(dc)
	}

	dc.Push()
	dc.Translate(l.Plot.X, l.Plot.Y)
	steps := []func(*gg.Context, *layout.Layout) error{r.axes, r.segments, r.thresholds, r.labels, r.indicators}
	for _, step := range steps {
		if err := step(dc, l); err != nil {
			return nil, err
		}
	}
	dc.Pop()
	if err := r.legend(dc, l); err != nil {
		return nil, err
	}
	return encode(dc)
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) font(dc *gg.Context, size float64) error {
	f, ok := r.faces[size]
	if !ok {
		var err error
		if f, err = fonts.Face(size); err != nil {
			return fmt.Errorf("load font: %w", err)
		}
		r.faces[size] = f
	}
	dc.SetFontFace(f)
	return nil
}

func (r *pngRenderer) close() {
	for _, f := range r.faces {
		f.Close()
	}
}

func (r *pngRenderer) axes(dc *gg.Context, l *layout.Layout) error {
	if err := r.font(dc, r.style.AxisFontSize); err != nil {
		return err
	}
	w := l.Plot.W
	dc.SetLineWidth(1)
	if l.Primary != nil {
		for _, t := range l.Primary.Ticks {
			dc.SetColor(parseHex(gridColor))
			dc.DrawLine(0, t.Y, w, t.Y)
			dc.Stroke()
			dc.SetColor(parseHex(textColor))
			dc.DrawStringAnchored(t.Text, -6, t.Y, 1, 0.5)
		}
	}
	if l.Secondary != nil {
		dc.SetColor(parseHex(textColor))
		for _, t := range l.Secondary.Ticks {
			dc.DrawStringAnchored(t.Text, w+6, t.Y, 0, 0.5)
		}
	}
	dc.SetColor(parseHex(axisColor))
	dc.DrawLine(0, l.Plot.H, w, l.Plot.H)
	dc.Stroke()
	dc.SetColor(parseHex(textColor))
	for _, col := range l.Columns {
		dc.DrawStringAnchored(col.Label, col.Center, l.Plot.H+r.style.AxisFontSize, 0.5, 0.5)
	}
	return nil
}

func (r *pngRenderer) segments(dc *gg.Context, l *layout.Layout) error {
	for _, s := range l.Segments {
		if s.Rect.Empty() {
			continue
		}
		dc.SetColor(parseHex(r.style.SeriesColor(s.SeriesIndex)))
		dc.DrawRectangle(s.Rect.X, s.Rect.Y, s.Rect.W, s.Rect.H)
		dc.Fill()
	}
	return nil
}

func (r *pngRenderer) thresholds(dc *gg.Context, l *layout.Layout) error {
	dc.SetColor(parseHex(thresholdColor))
	for _, t := range l.Thresholds {
		dc.SetLineWidth(t.Thickness)
		if t.Dash != "" {
			var a, b float64
			if n, _ := fmt.Sscanf(t.Dash, "%g,%g", &a, &b); n == 2 {
				dc.SetDash(a, b)
			}
		}
		dc.DrawLine(t.X1, t.Y, t.X2, t.Y)
		dc.Stroke()
		dc.SetDash()
	}
	return nil
}

func (r *pngRenderer) labels(dc *gg.Context, l *layout.Layout) error {
	for _, p := range l.VisibleLabels() {
		if p.Box != nil {
			bg := parseHex(r.style.Background)
			bg.A = 0xcc
			dc.SetColor(bg)
			dc.DrawRectangle(p.Box.X, p.Box.Y, p.Box.W, p.Box.H)
			dc.Fill()
		}
		if err := r.font(dc, r.style.labelSize(p.Kind)); err != nil {
			return err
		}
		dc.SetColor(parseHex(textColor))
		dc.DrawStringAnchored(p.Text, p.Anchor.X, p.Anchor.Y, 0.5, 0.5)
	}
	return nil
}

func (r *pngRenderer) indicators(dc *gg.Context, l *layout.Layout) error {
	ink := parseHex(indicatorColor)
	for _, ind := range l.Indicators {
		dc.SetColor(ink)
		dc.SetLineWidth(ind.LineSize)
		if ind.Dashed {
			dc.SetDash(4, 3)
		}
		for i, p := range ind.Path {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.Stroke()
		dc.SetDash()

		for _, a := range ind.Arrows {
			for i, p := range triangle(a, ind.ArrowSize) {
				if i == 0 {
					dc.MoveTo(p.X, p.Y)
				} else {
					dc.LineTo(p.X, p.Y)
				}
			}
			dc.ClosePath()
			dc.Fill()
		}
		if e := ind.Ellipse; e != nil {
			dc.DrawEllipse(e.Center.X, e.Center.Y, e.RX, e.RY)
			dc.SetColor(parseHex(r.style.Background))
			dc.FillPreserve()
			dc.SetColor(ink)
			dc.SetLineWidth(1)
			dc.Stroke()
		}
		if err := r.font(dc, r.style.growthSize(ind.Kind)); err != nil {
			return err
		}
		dc.SetColor(parseHex(textColor))
		dc.DrawStringAnchored(ind.Text, ind.Label.X, ind.Label.Y, 0.5, 0.5)
	}
	return nil
}

func (r *pngRenderer) legend(dc *gg.Context, l *layout.Layout) error {
	if l.Legend == nil {
		return nil
	}
	size := l.Legend.FontSize
	if err := r.font(dc, size); err != nil {
		return err
	}
	for _, it := range l.Legend.Items {
		y := it.Anchor.Y + size/2
		dc.SetColor(parseHex(r.style.SeriesColor(it.Index)))
		dc.DrawCircle(it.Anchor.X+size/2, y, size/3)
		dc.Fill()
		dc.SetColor(parseHex(textColor))
		dc.DrawStringAnchored(it.Series, it.Anchor.X+size, y, 0, 0.5)
	}
	return nil
}
