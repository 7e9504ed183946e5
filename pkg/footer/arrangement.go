package footer

// BlockKind identifies a placed footer block.
type BlockKind string

// The renderable block kinds.
const (
	BlockSources BlockKind = "sources"
	BlockNote    BlockKind = "note"
	BlockLicense BlockKind = "license"
	BlockButtons BlockKind = "action-buttons"
)

// PlacedBlock is one positioned footer block in footer-local coordinates
// (origin top-left, y growing downward).
type PlacedBlock struct {
	Kind BlockKind `json:"kind"`

	// Text content; Lines holds the wrapped lines for text blocks and is
	// empty for the button cluster.
	Text  string   `json:"text,omitempty"`
	Lines []string `json:"lines,omitempty"`

	FontSize   float64 `json:"font_size,omitempty"`
	LineHeight float64 `json:"line_height,omitempty"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`

	// Buttons is set on the action-buttons block only.
	Buttons []Button `json:"buttons,omitempty"`
}

// Right returns the block's right edge.
func (b PlacedBlock) Right() float64 { return b.X + b.W }

// Bottom returns the block's bottom edge.
func (b PlacedBlock) Bottom() float64 { return b.Y + b.H }

// Arrangement is the positioned footer: every non-empty block with its
// final coordinates. Render sinks consume this and nothing else.
type Arrangement struct {
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Blocks []PlacedBlock `json:"blocks"`
}

// Block returns the placed block of the given kind, if present.
func (a Arrangement) Block(kind BlockKind) (PlacedBlock, bool) {
	for _, b := range a.Blocks {
		if b.Kind == kind {
			return b, true
		}
	}
	return PlacedBlock{}, false
}

// Arrange positions every block per the decision. The result's Height is
// identical to d.Height: the union of placed rows never under- or
// overshoots the reserved space.
func Arrange(d Decision) Arrangement {
	a := Arrangement{Width: d.MaxWidth, Height: d.Height}
	y := 0.0

	// Full-width rows stack first. A license placed beside the sources
	// aligns to the bottom edge of the sources row.
	if d.UseFullWidthSources {
		a.Blocks = append(a.Blocks, PlacedBlock{
			Kind:       BlockSources,
			Text:       d.SourcesText,
			Lines:      d.Sources.Lines,
			FontSize:   d.SourcesFontSize,
			LineHeight: lineHeightFor(d.SourcesFontSize),
			X:          0, Y: y,
			W: d.Sources.Width, H: d.Sources.Height,
		})
		if d.LicenseNextToSources {
			a.Blocks = append(a.Blocks, PlacedBlock{
				Kind:       BlockLicense,
				Text:       d.LicenseLine,
				Lines:      d.License.Lines,
				FontSize:   d.LicenseFontSize,
				LineHeight: lineHeightFor(d.LicenseFontSize),
				X:          d.Sources.Width + HGap,
				Y:          y + d.Sources.Height - d.License.Height,
				W:          d.License.Width, H: d.License.Height,
			})
		}
		y += d.Sources.Height + VGap
	}
	if d.UseFullWidthNote {
		a.Blocks = append(a.Blocks, PlacedBlock{
			Kind:       BlockNote,
			Text:       d.NoteText,
			Lines:      d.Note.Lines,
			FontSize:   d.NoteFontSize,
			LineHeight: lineHeightFor(d.NoteFontSize),
			X:          0, Y: y,
			W: d.Note.Width, H: d.Note.Height,
		})
		y += d.Note.Height + VGap
	}

	if d.BottomRowHeight == 0 {
		return a
	}

	// Bottom row: the text column stacks on the left, buttons sit flush
	// right. Short content centers against the buttons, longer content
	// aligns to the row's bottom edge.
	ty := y + d.BottomRowHeight - d.BottomTextHeight
	if d.CenterBottomRow {
		ty = y + (d.BottomRowHeight-d.BottomTextHeight)/2
	}

	appendText := func(kind BlockKind, text string, m blockMetrics) {
		a.Blocks = append(a.Blocks, PlacedBlock{
			Kind:       kind,
			Text:       text,
			Lines:      m.lines,
			FontSize:   m.fontSize,
			LineHeight: lineHeightFor(m.fontSize),
			X:          0, Y: ty,
			W: m.width, H: m.height,
		})
		ty += m.height + VGap
	}

	if d.SourcesText != "" && !d.UseFullWidthSources {
		appendText(BlockSources, d.SourcesText, blockMetrics{d.Sources.Lines, d.SourcesFontSize, d.Sources.Width, d.Sources.Height})
	}
	if d.NoteText != "" && !d.UseFullWidthNote {
		appendText(BlockNote, d.NoteText, blockMetrics{d.Note.Lines, d.NoteFontSize, d.Note.Width, d.Note.Height})
	}
	if d.LicenseLine != "" && !d.LicenseNextToSources {
		appendText(BlockLicense, d.LicenseLine, blockMetrics{d.License.Lines, d.LicenseFontSize, d.License.Width, d.License.Height})
	}

	if d.Buttons.Width > 0 {
		a.Blocks = append(a.Blocks, PlacedBlock{
			Kind:    BlockButtons,
			X:       d.MaxWidth - d.Buttons.Width,
			Y:       y + d.BottomRowHeight - d.Buttons.Height,
			W:       d.Buttons.Width,
			H:       d.Buttons.Height,
			Buttons: d.Buttons.Buttons,
		})
	}
	return a
}

// blockMetrics bundles the per-block fields Arrange copies into a
// PlacedBlock.
type blockMetrics struct {
	lines    []string
	fontSize float64
	width    float64
	height   float64
}
