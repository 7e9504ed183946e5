package footer

// Layout constants. Gaps are fixed by design; the threshold factors are
// tunable in principle but their literal values are kept for compatibility
// with the layouts this engine reproduces.
const (
	// HGap is the horizontal gap between blocks sharing a row, in pixels.
	HGap = 8.0

	// VGap is the vertical gap between stacked rows, in pixels.
	VGap = 4.0

	// wrapThresholdFactor forces a block onto its own full-width row when
	// its natural single-line width exceeds this many container widths
	// (i.e. it would wrap more than twice).
	wrapThresholdFactor = 2.0

	// labelBudgetDivisor keeps button labels when the labeled cluster
	// stays within a third of the container width, even if it exceeds the
	// strict slot left next to the license.
	labelBudgetDivisor = 3.0

	// originSeparator joins the origin URL and the license text into one
	// license line.
	originSeparator = " | "

	// lineHeightPad is added to the font size to obtain the line height.
	lineHeightPad = 2.0
)

// Input is everything the decision engine needs for one layout pass.
// All texts are optional; MaxWidth must be positive. Inputs are constructed
// fresh per render request and never mutated by the engine.
type Input struct {
	// SourcesLine is the data provenance line ("Data source: ...").
	SourcesLine string `json:"sources_line,omitempty" toml:"sources_line"`

	// Note is an optional annotation shown below or beside the sources.
	Note string `json:"note,omitempty" toml:"note"`

	// LicenseText is the license attribution ("CC BY"). Always shown when
	// non-empty, regardless of available space.
	LicenseText string `json:"license_text,omitempty" toml:"license_text"`

	// OriginURL is the canonical chart URL prefixed to the license line
	// when it fits; dropped whole when it does not.
	OriginURL string `json:"origin_url,omitempty" toml:"origin_url"`

	// HasLogo indicates the hosting chart displays a logo; carried through
	// to renderers, it does not influence the layout decision.
	HasLogo bool `json:"has_logo,omitempty" toml:"has_logo"`

	// IsSmall and IsMedium select the compact font scales.
	IsSmall  bool `json:"is_small,omitempty" toml:"is_small"`
	IsMedium bool `json:"is_medium,omitempty" toml:"is_medium"`

	// Buttons configures the action-button cluster.
	Buttons ButtonsInput `json:"buttons" toml:"buttons"`

	// MaxWidth is the available horizontal space in pixels.
	MaxWidth float64 `json:"max_width" toml:"max_width"`
}

// ButtonsInput controls which action buttons exist.
type ButtonsInput struct {
	// HideShare, HideFullScreen and HideExplore remove the respective
	// buttons regardless of other conditions.
	HideShare      bool `json:"hide_share,omitempty" toml:"hide_share"`
	HideFullScreen bool `json:"hide_full_screen,omitempty" toml:"hide_full_screen"`
	HideExplore    bool `json:"hide_explore,omitempty" toml:"hide_explore"`

	// HasTabOverlays enables the download button: there must be a tab
	// overlay (chart image or data table) to download.
	HasTabOverlays bool `json:"has_tab_overlays,omitempty" toml:"has_tab_overlays"`

	// CanonicalURL enables the share and explore buttons; both need a
	// stable URL to point at.
	CanonicalURL string `json:"canonical_url,omitempty" toml:"canonical_url"`
}

// InlineFontSize is the size for blocks sharing a row with the buttons.
func (in Input) InlineFontSize() float64 {
	if in.IsSmall {
		return 11
	}
	return 12
}

// FullWidthFontSize is the larger size for blocks on their own row.
func (in Input) FullWidthFontSize() float64 {
	if in.IsSmall || in.IsMedium {
		return 12
	}
	return 13
}

// lineHeightFor derives the line height from a font size.
func lineHeightFor(fontSize float64) float64 {
	return fontSize + lineHeightPad
}
