package footer

import (
	"github.com/aestriplex/grapher-footer/pkg/textmeasure"
)

// Button geometry. Icon width and height cover the icon glyph plus its
// padding; the label, when shown, extends the button by the measured text
// width plus an internal gap.
const (
	buttonIconWidth = 32.0
	buttonHeight    = 32.0
	buttonLabelGap  = 6.0
	buttonFontSize  = 13.0
)

// ButtonKind identifies one of the four action buttons.
type ButtonKind string

// The action buttons, in display order.
const (
	ButtonDownload   ButtonKind = "download"
	ButtonShare      ButtonKind = "share"
	ButtonFullScreen ButtonKind = "full-screen"
	ButtonExplore    ButtonKind = "explore"
)

var buttonLabels = map[ButtonKind]string{
	ButtonDownload:   "Download",
	ButtonShare:      "Share",
	ButtonFullScreen: "Enter full-screen",
	ButtonExplore:    "Explore the data",
}

// Button is one packed action button.
type Button struct {
	Kind      ButtonKind `json:"kind"`
	Label     string     `json:"label"`
	ShowLabel bool       `json:"show_label"`
	Width     float64    `json:"width"`
}

// ButtonsDecision is the packed action-button cluster: which buttons exist,
// whether they carry labels, and the cluster's total extent. The zero value
// is an empty cluster contributing nothing to layout.
type ButtonsDecision struct {
	Buttons []Button `json:"buttons,omitempty"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
}

// ShowLabels reports whether the cluster renders text labels (the explore
// button keeps its label even when this is false).
func (d ButtonsDecision) ShowLabels() bool {
	for _, b := range d.Buttons {
		if b.Kind != ButtonExplore && b.ShowLabel {
			return true
		}
	}
	return false
}

// PackButtons decides the action-button cluster for the given slot.
//
// Labels are shown when the fully labeled cluster fits availableWidth.
// Failing that, labels are still shown when the labeled cluster stays
// within a third of containerWidth: slightly overflowing the strict slot
// reads better than bare icons as long as the cluster does not dominate
// the frame. Otherwise buttons fall back to icon-only — except explore,
// which keeps its label unconditionally.
func PackButtons(in ButtonsInput, m textmeasure.Measurer, availableWidth, containerWidth float64) ButtonsDecision {
	kinds := presentButtons(in)
	if len(kinds) == 0 {
		return ButtonsDecision{}
	}

	labeledWidth := func(k ButtonKind) float64 {
		return buttonIconWidth + buttonLabelGap + m.Width(buttonLabels[k], buttonFontSize)
	}

	totalLabeled := HGap * float64(len(kinds)-1)
	for _, k := range kinds {
		totalLabeled += labeledWidth(k)
	}

	// The budget comparison multiplies instead of dividing so the
	// inclusive boundary is exact in floating point.
	showLabels := totalLabeled <= availableWidth ||
		totalLabeled*labelBudgetDivisor <= containerWidth

	d := ButtonsDecision{
		Buttons: make([]Button, 0, len(kinds)),
		Height:  buttonHeight,
	}
	for i, k := range kinds {
		b := Button{
			Kind:      k,
			Label:     buttonLabels[k],
			ShowLabel: showLabels || k == ButtonExplore,
			Width:     buttonIconWidth,
		}
		if b.ShowLabel {
			b.Width = labeledWidth(k)
		}
		d.Buttons = append(d.Buttons, b)
		d.Width += b.Width
		if i > 0 {
			d.Width += HGap
		}
	}
	return d
}

// presentButtons returns the buttons enabled by the input flags, in display
// order.
func presentButtons(in ButtonsInput) []ButtonKind {
	var kinds []ButtonKind
	if in.HasTabOverlays {
		kinds = append(kinds, ButtonDownload)
	}
	if !in.HideShare && in.CanonicalURL != "" {
		kinds = append(kinds, ButtonShare)
	}
	if !in.HideFullScreen {
		kinds = append(kinds, ButtonFullScreen)
	}
	if !in.HideExplore && in.CanonicalURL != "" {
		kinds = append(kinds, ButtonExplore)
	}
	return kinds
}
