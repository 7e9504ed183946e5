package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/aestriplex/grapher-footer/pkg/fonts"
	"github.com/aestriplex/grapher-footer/pkg/footer"
)

// Default palette. Sources and note render in body gray, the license a
// shade lighter; buttons get a flat fill with a hairline border.
const (
	colorText         = "#5b5b5b"
	colorMuted        = "#858585"
	colorButtonFill   = "#f2f2f2"
	colorButtonBorder = "#e7e7e7"
	colorButtonText   = "#404040"

	buttonCornerRadius = 4.0
	buttonIconRadius   = 5.0
	buttonIconInset    = 16.0

	// baselineRatio places the text baseline within a line box.
	baselineRatio = 0.8
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontFamily string
	background string
}

// WithFontFamily sets the CSS font-family written on text elements. The
// default names the bundled Go font with system fallbacks.
func WithFontFamily(family string) SVGOption {
	return func(r *svgRenderer) { r.fontFamily = family }
}

// WithBackground fills the footer area with the given color. By default
// the background is transparent so the footer composes onto its chart.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG serializes the arrangement as a standalone SVG document.
// The output is deterministic: identical arrangements produce identical
// bytes, which keeps artifact caching and golden tests honest.
func RenderSVG(a footer.Arrangement, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: fonts.FallbackFamilies}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		a.Width, a.Height, a.Width, a.Height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			a.Width, a.Height, r.background)
	}

	for _, b := range a.Blocks {
		switch b.Kind {
		case footer.BlockButtons:
			r.renderButtons(&buf, b)
		default:
			r.renderText(&buf, b)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderText writes one wrapped text block as a <text> with per-line
// tspans.
func (r *svgRenderer) renderText(buf *bytes.Buffer, b footer.PlacedBlock) {
	color := colorText
	if b.Kind == footer.BlockLicense {
		color = colorMuted
	}
	fmt.Fprintf(buf, `  <text class="%s" font-family="%s" font-size="%.1f" fill="%s">`+"\n",
		b.Kind, escapeXML(r.fontFamily), b.FontSize, color)
	for i, line := range b.Lines {
		y := b.Y + (float64(i)+baselineRatio)*b.LineHeight
		fmt.Fprintf(buf, `    <tspan x="%.1f" y="%.1f">%s</tspan>`+"\n",
			b.X, y, escapeXML(line))
	}
	buf.WriteString("  </text>\n")
}

// renderButtons writes the action-button cluster: one rounded rect per
// button with an icon dot and, when decided, its label.
func (r *svgRenderer) renderButtons(buf *bytes.Buffer, b footer.PlacedBlock) {
	fmt.Fprintf(buf, `  <g class="action-buttons">`+"\n")
	x := b.X
	for _, btn := range b.Buttons {
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s"/>`+"\n",
			x, b.Y, btn.Width, b.H, buttonCornerRadius, colorButtonFill, colorButtonBorder)
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			x+buttonIconInset, b.Y+b.H/2, buttonIconRadius, colorButtonText)
		if btn.ShowLabel {
			fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="13" fill="%s">%s</text>`+"\n",
				x+buttonIconInset*2, b.Y+b.H/2+13*baselineRatio/2, escapeXML(r.fontFamily),
				colorButtonText, escapeXML(btn.Label))
		}
		x += btn.Width + footer.HGap
	}
	buf.WriteString("  </g>\n")
}

// escapeXML escapes text for embedding in SVG markup.
func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
