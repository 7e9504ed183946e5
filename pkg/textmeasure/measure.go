// Package textmeasure provides pixel measurement of text at a given font
// size, with greedy word wrapping at a maximum width.
//
// The layout engine treats measurement as an injected capability: anything
// implementing [Measurer] works, as long as it is deterministic for a fixed
// font environment. Three implementations are provided:
//
//   - [Face]: real measurement backed by a truetype font
//   - [Rule]: fixed advance per rune, for terminal previews and tests
//   - [Memo]: a memoizing wrapper for the lifetime of one layout pass
package textmeasure

import "strings"

// Metrics describes the measured extent of a text block.
// Width is the widest wrapped line, Height is line count times line height.
// The zero value represents an empty block that contributes nothing to layout.
type Metrics struct {
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Lines  []string `json:"lines,omitempty"`
}

// LineCount returns the number of wrapped lines.
func (m Metrics) LineCount() int { return len(m.Lines) }

// Measurer returns pixel dimensions for a string at a font size.
// Implementations must be pure: identical inputs yield identical outputs.
type Measurer interface {
	// Width returns the single-line advance width of text in pixels.
	Width(text string, fontSize float64) float64

	// Measure word-wraps text at maxWidth and returns the wrapped metrics.
	// A maxWidth <= 0 disables wrapping. Empty text yields the zero Metrics.
	Measure(text string, fontSize, lineHeight, maxWidth float64) Metrics
}

// wrapWords greedily packs whitespace-separated words into lines no wider
// than maxWidth, as measured by widthOf. A single word wider than maxWidth
// gets its own overflowing line; wrapping never breaks inside a word.
func wrapWords(text string, maxWidth float64, widthOf func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if widthOf(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}

// measureWith computes Metrics using widthOf for line widths.
// Shared by the Face and Rule implementations.
func measureWith(text string, lineHeight, maxWidth float64, widthOf func(string) float64) Metrics {
	lines := wrapWords(text, maxWidth, widthOf)
	if len(lines) == 0 {
		return Metrics{}
	}

	var widest float64
	for _, line := range lines {
		if w := widthOf(line); w > widest {
			widest = w
		}
	}
	return Metrics{
		Width:  widest,
		Height: float64(len(lines)) * lineHeight,
		Lines:  lines,
	}
}
