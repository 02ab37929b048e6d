// Package fonts provides the font used for text measurement and raster
// output.
//
// The Go Regular font ships inside golang.org/x/image, so it is compiled into
// the binary without any external files. It is parsed once on first use.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go"

// FallbackFontFamily is the CSS font stack written into SVG output. Charts
// are configured with office fonts such as Calibri; the embedded font is the
// last resort.
const FallbackFontFamily = `Calibri, 'Segoe UI', Arial, 'Go', sans-serif`

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

var (
	parsed     *opentype.Font
	parsedErr  error
	parsedOnce sync.Once
)

// Regular returns the parsed embedded font. The result is cached after first
// computation.
func Regular() (*opentype.Font, error) {
	parsedOnce.Do(func() {
		parsed, parsedErr = opentype.Parse(goregular.TTF)
	})
	return parsed, parsedErr
}

// Face returns a face of the embedded font at size pixels (72 DPI, so one
// point is one pixel). Callers should Close the face when done.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// RegularTTFBase64 returns the TTF font data as a base64 string for
// embedding in an SVG @font-face rule. The result is cached after first
// computation.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}
