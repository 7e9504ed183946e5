package textmeasure

import "unicode/utf8"

// defaultAdvance is the assumed advance per rune as a fraction of the font
// size. 0.55 is a reasonable average for proportional Latin text.
const defaultAdvance = 0.55

// Rule approximates text extent with a fixed advance per rune. It needs no
// font data and is fully deterministic, which makes it the measurer of
// choice for the terminal preview (where no pixel fonts exist) and for
// layout tests that construct widths around exact thresholds.
type Rule struct {
	// Advance is the width of one rune as a fraction of the font size.
	Advance float64
}

// NewRule creates a Rule measurer with the default advance ratio.
func NewRule() *Rule {
	return &Rule{Advance: defaultAdvance}
}

// Width returns fontSize * Advance per rune.
func (r *Rule) Width(text string, fontSize float64) float64 {
	if text == "" {
		return 0
	}
	return fontSize * r.Advance * float64(utf8.RuneCountInString(text))
}

// Measure word-wraps text at maxWidth using the fixed advance.
func (r *Rule) Measure(text string, fontSize, lineHeight, maxWidth float64) Metrics {
	widthOf := func(s string) float64 { return r.Width(s, fontSize) }
	return measureWith(text, lineHeight, maxWidth, widthOf)
}

// Ensure Rule implements Measurer.
var _ Measurer = (*Rule)(nil)
