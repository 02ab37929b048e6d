package scale

// Band spaces n columns across a width. Padding is the fraction of each step
// left empty, applied both between columns and at the outer edges.
type Band struct {
	N       int
	Width   float64
	Padding float64
}

// NewBand returns a band scale for n columns.
func NewBand(n int, width, padding float64) Band {
	return Band{N: n, Width: width, Padding: padding}
}

// Step returns the distance between the left edges of adjacent columns.
func (b Band) Step() float64 {
	if b.N <= 0 {
		return 0
	}
	return b.Width / (float64(b.N) + b.Padding)
}

// Bandwidth returns the pixel width of one column.
func (b Band) Bandwidth() float64 {
	return b.Step() * (1 - b.Padding)
}

// X returns the left edge of column i.
func (b Band) X(i int) float64 {
	s := b.Step()
	return s*b.Padding + s*float64(i)
}

// Center returns the horizontal center of column i.
func (b Band) Center(i int) float64 {
	return b.X(i) + b.Bandwidth()/2
}

// Linear maps a domain onto [Height, 0] so that Domain.Max lands at the top.
type Linear struct {
	Domain Domain
	Height float64
}

// Y returns the pixel row for v. A zero-span domain maps everything to the
// bottom.
func (l Linear) Y(v float64) float64 {
	span := l.Domain.Span()
	if span == 0 {
		return l.Height
	}
	return l.Height - (v-l.Domain.Min)/span*l.Height
}

// Extent returns the pixel height of the interval [low, high].
func (l Linear) Extent(low, high float64) float64 {
	return l.Y(low) - l.Y(high)
}
