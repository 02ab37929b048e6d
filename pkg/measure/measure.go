// Package measure provides the text-measurement capability injected into the
// legend and label stages.
//
// The layout engine never measures text itself. Callers pick an
// implementation:
//
//   - [Opentype] measures with real glyph advances from the embedded font.
//   - [Heuristic] estimates width from character count, for environments
//     without font data.
//   - [Lookup] returns fixed widths, for tests.
//   - [Cached] memoizes any other Measurer.
package measure

import (
	"sync"
	"unicode/utf8"
)

// Measurer returns the rendered pixel width of text in a font family at a
// pixel size.
type Measurer interface {
	Width(text, family string, size float64) float64
}

// Func adapts a plain function to Measurer.
type Func func(text, family string, size float64) float64

// Width calls f.
func (f Func) Width(text, family string, size float64) float64 { return f(text, family, size) }

// DefaultCharWidth is the average glyph advance as a fraction of font size
// used by the zero Heuristic.
const DefaultCharWidth = 0.55

// Heuristic estimates width as runes x size x CharWidth.
type Heuristic struct {
	CharWidth float64
}

// Width implements Measurer.
func (h Heuristic) Width(text, _ string, size float64) float64 {
	cw := h.CharWidth
	if cw <= 0 {
		cw = DefaultCharWidth
	}
	return float64(utf8.RuneCountInString(text)) * size * cw
}

// Lookup returns fixed widths by text, deferring to Fallback (or the zero
// Heuristic) for anything not listed.
type Lookup struct {
	Widths   map[string]float64
	Fallback Measurer
}

// Width implements Measurer.
func (l Lookup) Width(text, family string, size float64) float64 {
	if w, ok := l.Widths[text]; ok {
		return w
	}
	if l.Fallback != nil {
		return l.Fallback.Width(text, family, size)
	}
	return Heuristic{}.Width(text, family, size)
}

type key struct {
	text, family string
	size         float64
}

// Cached memoizes an underlying Measurer. It is safe for concurrent use.
type Cached struct {
	inner Measurer

	mu    sync.RWMutex
	cache map[key]float64
}

// NewCached wraps m.
func NewCached(m Measurer) *Cached {
	return &Cached{inner: m, cache: make(map[key]float64)}
}

// Width implements Measurer.
func (c *Cached) Width(text, family string, size float64) float64 {
	k := key{text, family, size}
	c.mu.RLock()
	w, ok := c.cache[k]
	c.mu.RUnlock()
	if ok {
		return w
	}
	w = c.inner.Width(text, family, size)
	c.mu.Lock()
	c.cache[k] = w
	c.mu.Unlock()
	return w
}

// Len returns the number of memoized measurements.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
