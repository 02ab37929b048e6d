package measure

import (
	"sync"

	"golang.org/x/image/font"

	"github.com/matzehuels/growthchart/pkg/fonts"
)

// Opentype measures text with the embedded Go Regular font. The family
// argument is ignored; all families share the embedded metrics. Faces are
// created once per size. If the font cannot be loaded it falls back to
// Heuristic. The zero value is ready to use.
type Opentype struct {
	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewOpentype returns a measurer backed by the embedded font.
func NewOpentype() *Opentype {
	return &Opentype{faces: make(map[float64]font.Face)}
}

// Width implements Measurer.
func (o *Opentype) Width(text, family string, size float64) float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	face, ok := o.faces[size]
	if !ok {
		f, err := fonts.Face(size)
		if err != nil {
			return Heuristic{}.Width(text, family, size)
		}
		if o.faces == nil {
			o.faces = make(map[float64]font.Face)
		}
		o.faces[size] = f
		face = f
	}
	return float64(font.MeasureString(face, text)) / 64
}

// Close releases all cached faces.
func (o *Opentype) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for size, f := range o.faces {
		f.Close()
		delete(o.faces, size)
	}
	return nil
}
