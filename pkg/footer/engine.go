package footer

import (
	"math"
	"strings"

	"github.com/aestriplex/grapher-footer/pkg/textmeasure"
)

// Decision is the complete layout decision for one footer pass. It is a
// pure function of the Input and the measurer: no field survives between
// passes, and recomputation replaces it wholesale.
type Decision struct {
	MaxWidth float64 `json:"max_width"`

	// Row arrangement flags.
	UseFullWidthSources  bool `json:"use_full_width_sources"`
	UseFullWidthNote     bool `json:"use_full_width_note"`
	LicenseNextToSources bool `json:"license_next_to_sources"`
	ShowOriginURL        bool `json:"show_origin_url"`
	CenterBottomRow      bool `json:"center_bottom_row"`

	// Degraded marks the accepted failure mode: the frame is narrower than
	// the buttons' own minimum, so rendered output may overlap.
	Degraded bool `json:"degraded,omitempty"`

	// Font sizes chosen per group.
	SourcesFontSize float64 `json:"sources_font_size"`
	NoteFontSize    float64 `json:"note_font_size"`
	LicenseFontSize float64 `json:"license_font_size"`

	// Wrap widths allocated per group (rule 4).
	SourcesMaxWidth       float64 `json:"sources_max_width"`
	NoteMaxWidth          float64 `json:"note_max_width"`
	ActionButtonsMaxWidth float64 `json:"action_buttons_max_width"`

	// Texts actually rendered. LicenseLine includes the origin URL prefix
	// when ShowOriginURL is true.
	SourcesText string `json:"sources_text,omitempty"`
	NoteText    string `json:"note_text,omitempty"`
	LicenseLine string `json:"license_line,omitempty"`

	// Measured extents at the chosen sizes and wrap widths.
	Sources textmeasure.Metrics `json:"sources"`
	Note    textmeasure.Metrics `json:"note"`
	License textmeasure.Metrics `json:"license"`
	Buttons ButtonsDecision     `json:"action_buttons"`

	// Row heights. Height is the total the parent must reserve and always
	// equals the union of the rows Arrange produces.
	TopRowHeight     float64 `json:"top_row_height"`
	BottomTextHeight float64 `json:"bottom_text_height"`
	BottomRowHeight  float64 `json:"bottom_row_height"`
	Height           float64 `json:"height"`
}

// Decide computes the layout decision for in using m for measurement.
//
// The rules apply in a fixed order: full-width tests for sources and note,
// button packing against the license-reserved slot, the origin-URL
// keep-or-drop test, wrap-width allocation, license placement, then the
// height and centering computation. See the package documentation for the
// degradation behavior.
func Decide(in Input, m textmeasure.Measurer) Decision {
	d := Decision{MaxWidth: in.MaxWidth}

	inline := in.InlineFontSize()
	sources := strings.TrimSpace(in.SourcesLine)
	note := strings.TrimSpace(in.Note)
	license := strings.TrimSpace(in.LicenseText)
	origin := strings.TrimSpace(in.OriginURL)

	// Full-width tests. A note never shares a row with the sources, so its
	// presence alone forces the sources onto a full row. Independently, a
	// sources or note line that would wrap more than twice at the inline
	// size claims the full width.
	if sources != "" {
		natural := m.Width(sources, inline)
		d.UseFullWidthSources = note != "" || natural > wrapThresholdFactor*in.MaxWidth
	}
	if note != "" {
		d.UseFullWidthNote = m.Width(note, inline) > wrapThresholdFactor*in.MaxWidth
	}

	d.SourcesFontSize = inline
	if d.UseFullWidthSources {
		d.SourcesFontSize = in.FullWidthFontSize()
	}
	d.NoteFontSize = inline
	d.LicenseFontSize = inline

	// Buttons pack first: their width is known upfront and every later
	// rule reserves room for them. The slot leaves space for the bare
	// license text, which is always shown.
	d.ActionButtonsMaxWidth = in.MaxWidth
	if license != "" {
		d.ActionButtonsMaxWidth = in.MaxWidth - m.Width(license, inline) - HGap
	}
	d.Buttons = PackButtons(in.Buttons, m, d.ActionButtonsMaxWidth, in.MaxWidth)

	// Origin URL keeps all-or-nothing: prefix it to the license line when
	// the combined text fits the space left beside the buttons, otherwise
	// drop it entirely. The URL is never abbreviated.
	d.LicenseLine = license
	if origin != "" {
		candidate := origin
		if license != "" {
			candidate = origin + originSeparator + license
		}
		avail := in.MaxWidth
		if d.Buttons.Width > 0 {
			avail -= d.Buttons.Width + HGap
		}
		if m.Width(candidate, inline) <= avail {
			d.LicenseLine = candidate
			d.ShowOriginURL = true
		}
	}

	// Wrap-width allocation: blocks sharing the bottom row wrap beside the
	// buttons, full-width blocks wrap at the container width.
	sharedWidth := in.MaxWidth
	if d.Buttons.Width > 0 {
		sharedWidth = in.MaxWidth - d.Buttons.Width - HGap
	}
	d.SourcesMaxWidth = sharedWidth
	if d.UseFullWidthSources {
		d.SourcesMaxWidth = in.MaxWidth
	}
	d.NoteMaxWidth = sharedWidth
	if d.UseFullWidthNote {
		d.NoteMaxWidth = in.MaxWidth
	}

	// Final wrapped metrics. The license renders as a single line.
	if sources != "" {
		d.SourcesText = sources
		d.Sources = m.Measure(sources, d.SourcesFontSize, lineHeightFor(d.SourcesFontSize), d.SourcesMaxWidth)
	}
	if note != "" {
		d.NoteText = note
		d.Note = m.Measure(note, d.NoteFontSize, lineHeightFor(d.NoteFontSize), d.NoteMaxWidth)
	}
	if d.LicenseLine != "" {
		d.License = m.Measure(d.LicenseLine, d.LicenseFontSize, lineHeightFor(d.LicenseFontSize), 0)
	}

	// License placement: beside the sources only when the sources own a
	// full row and both fit side by side; otherwise in the bottom row next
	// to the buttons.
	if d.UseFullWidthSources && d.LicenseLine != "" &&
		d.Sources.Width+HGap+d.License.Width <= in.MaxWidth {
		d.LicenseNextToSources = true
	}

	// Bottom-row composition and heights.
	bottomSources := sources != "" && !d.UseFullWidthSources
	bottomNote := note != "" && !d.UseFullWidthNote
	bottomLicense := d.LicenseLine != "" && !d.LicenseNextToSources

	blocks := 0
	if bottomSources {
		d.BottomTextHeight += d.Sources.Height
		blocks++
	}
	if bottomNote {
		d.BottomTextHeight += d.Note.Height
		blocks++
	}
	if bottomLicense {
		d.BottomTextHeight += d.License.Height
		blocks++
	}
	if blocks > 1 {
		d.BottomTextHeight += VGap * float64(blocks-1)
	}
	d.BottomRowHeight = math.Max(d.BottomTextHeight, d.Buttons.Height)

	if d.UseFullWidthSources {
		d.TopRowHeight += d.Sources.Height + VGap
	}
	if d.UseFullWidthNote {
		d.TopRowHeight += d.Note.Height + VGap
	}
	if d.TopRowHeight > 0 && d.BottomRowHeight == 0 {
		d.TopRowHeight -= VGap
	}
	d.Height = d.TopRowHeight + d.BottomRowHeight

	// Centering: short bottom content centers against the buttons, longer
	// content aligns to the row's bottom edge.
	onlyLicense := bottomLicense && !bottomSources && !bottomNote
	onlyShortNote := bottomNote && !bottomSources && !bottomLicense && d.Note.LineCount() <= 2
	d.CenterBottomRow = onlyLicense || onlyShortNote

	// Below the buttons' own minimum width the engine has no fallback
	// left; the output may overlap and the caller is told so. The same
	// holds when a single unbreakable word defeats wrapping and a bottom
	// block spills past its slot.
	licenseSlot := in.MaxWidth
	if d.Buttons.Width > 0 {
		licenseSlot = in.MaxWidth - d.Buttons.Width - HGap
	}
	d.Degraded = d.Buttons.Width > in.MaxWidth ||
		((bottomSources || bottomNote) && sharedWidth <= 0) ||
		(bottomSources && d.Sources.Width > d.SourcesMaxWidth) ||
		(bottomNote && d.Note.Width > d.NoteMaxWidth) ||
		(bottomLicense && d.License.Width > licenseSlot)

	return d
}
