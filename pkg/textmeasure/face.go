package textmeasure

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// measureDPI is the resolution used for advance measurement. At 72 DPI one
// point equals one pixel, so font sizes map directly to pixel sizes.
const measureDPI = 72

// Face measures text with a real truetype font. Faces for each requested
// size are created lazily and reused.
//
// Face is safe for concurrent use; each layout pass is single threaded but
// the same Face may back several passes at once (e.g. CLI render and
// preview sharing one font).
type Face struct {
	font *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFace creates a measurer backed by the given truetype font.
func NewFace(f *truetype.Font) *Face {
	return &Face{
		font:  f,
		faces: make(map[float64]font.Face),
	}
}

// Width returns the advance width of text at fontSize, in pixels.
func (f *Face) Width(text string, fontSize float64) float64 {
	if text == "" {
		return 0
	}
	adv := font.MeasureString(f.faceFor(fontSize), text)
	return fix26_6ToPixels(adv)
}

// Measure word-wraps text at maxWidth and returns the wrapped metrics.
func (f *Face) Measure(text string, fontSize, lineHeight, maxWidth float64) Metrics {
	face := f.faceFor(fontSize)
	widthOf := func(s string) float64 {
		return fix26_6ToPixels(font.MeasureString(face, s))
	}
	return measureWith(text, lineHeight, maxWidth, widthOf)
}

// faceFor returns a cached font.Face for the given size, creating it on
// first use.
func (f *Face) faceFor(size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.font, &truetype.Options{
		Size:    size,
		DPI:     measureDPI,
		Hinting: font.HintingFull,
	})
	f.faces[size] = face
	return face
}

// fix26_6ToPixels converts a 26.6 fixed-point advance to float pixels.
func fix26_6ToPixels(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// Ensure Face implements Measurer.
var _ Measurer = (*Face)(nil)
