package footer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/aestriplex/grapher-footer/pkg/textmeasure"
)

// The Rule measurer makes widths exact: width = fontSize * 0.55 * runes.
// At the regular inline size of 12 that is 6.6 px per rune.
func ruleMeasurer() textmeasure.Measurer {
	return textmeasure.NewRule()
}

func TestDecideEmptyTopRow(t *testing.T) {
	// No sources and no note: the top row must not exist, whatever else
	// the footer carries.
	in := Input{
		LicenseText: "CC BY",
		MaxWidth:    600,
		Buttons:     ButtonsInput{HasTabOverlays: true, CanonicalURL: "https://example.org/chart"},
	}
	d := Decide(in, ruleMeasurer())

	if d.TopRowHeight != 0 {
		t.Errorf("TopRowHeight = %v, want 0", d.TopRowHeight)
	}
	if d.UseFullWidthSources || d.UseFullWidthNote {
		t.Error("no full-width flags should be set without sources or note")
	}
	if d.Height != d.BottomRowHeight {
		t.Errorf("Height = %v, want bottom row only = %v", d.Height, d.BottomRowHeight)
	}
}

func TestDecideAllEmpty(t *testing.T) {
	// The full-screen button exists unless hidden, so an entirely empty
	// footer needs the hide flag too.
	d := Decide(Input{MaxWidth: 600, Buttons: ButtonsInput{HideFullScreen: true}}, ruleMeasurer())
	if d.Height != 0 {
		t.Errorf("Height = %v, want 0 for empty footer", d.Height)
	}
	a := Arrange(d)
	if len(a.Blocks) != 0 {
		t.Errorf("Arrange placed %d blocks for empty footer", len(a.Blocks))
	}
}

func TestDecideFullWidthThreshold(t *testing.T) {
	// At maxWidth 300 the wrap threshold is a natural width of 600 px.
	// 90 runes measure 594 px (under), 92 runes measure 607.2 px (over).
	tests := []struct {
		name  string
		runes int
		want  bool
	}{
		{name: "just under twice the width", runes: 90, want: false},
		{name: "just over twice the width", runes: 92, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{
				SourcesLine: strings.Repeat("s", tt.runes),
				MaxWidth:    300,
			}
			d := Decide(in, ruleMeasurer())
			if d.UseFullWidthSources != tt.want {
				t.Errorf("UseFullWidthSources = %v, want %v", d.UseFullWidthSources, tt.want)
			}
		})
	}
}

func TestDecideNoteForcesFullWidthSources(t *testing.T) {
	// The concrete boundary case: a sources line far narrower than the
	// frame still claims a full row the moment a note exists.
	in := Input{
		SourcesLine: "Data source: X",
		Note:        "Note: Y",
		MaxWidth:    600,
	}
	d := Decide(in, ruleMeasurer())

	if !d.UseFullWidthSources {
		t.Fatal("UseFullWidthSources = false, want true when a note is present")
	}
	if d.UseFullWidthNote {
		t.Error("a short note should stay inline, not full-width")
	}
	if d.SourcesFontSize != in.FullWidthFontSize() {
		t.Errorf("full-width sources should use the full-width size, got %v", d.SourcesFontSize)
	}
}

func TestDecideNoteFullWidthThreshold(t *testing.T) {
	long := strings.Repeat("n", 200) // 1320 px natural at size 12
	in := Input{
		SourcesLine: "Data source: X",
		Note:        long,
		MaxWidth:    300, // threshold 600
	}
	d := Decide(in, ruleMeasurer())
	if !d.UseFullWidthNote {
		t.Error("UseFullWidthNote = false, want true beyond twice the width")
	}
	if d.NoteMaxWidth != in.MaxWidth {
		t.Errorf("full-width note should wrap at the container width, got %v", d.NoteMaxWidth)
	}
}

func TestDecideIdempotent(t *testing.T) {
	in := Input{
		SourcesLine: "Data source: Multiple sources compiled by Our World in Data",
		Note:        "Shown is the annual average.",
		LicenseText: "CC BY",
		OriginURL:   "ourworldindata.org/life-expectancy",
		MaxWidth:    680,
		Buttons:     ButtonsInput{HasTabOverlays: true, CanonicalURL: "https://example.org"},
	}
	m := ruleMeasurer()

	d1 := Decide(in, m)
	d2 := Decide(in, m)
	if !reflect.DeepEqual(d1, d2) {
		t.Error("Decide is not idempotent for identical inputs")
	}

	// Also identical through a fresh memoizing pass.
	d3 := Decide(in, textmeasure.NewMemo(textmeasure.NewRule()))
	if !reflect.DeepEqual(d1, d3) {
		t.Error("memoized pass diverges from direct measurement")
	}
}

func TestDecideOriginURLAllOrNothing(t *testing.T) {
	buttons := ButtonsInput{HasTabOverlays: true, CanonicalURL: "https://example.org"}

	t.Run("kept when it fits", func(t *testing.T) {
		in := Input{
			SourcesLine: "Data source: X",
			LicenseText: "CC BY",
			OriginURL:   "owid.io/x",
			MaxWidth:    2000,
			Buttons:     buttons,
		}
		d := Decide(in, ruleMeasurer())
		if !d.ShowOriginURL {
			t.Fatal("ShowOriginURL = false, want true in a wide frame")
		}
		want := "owid.io/x" + originSeparator + "CC BY"
		if d.LicenseLine != want {
			t.Errorf("LicenseLine = %q, want %q", d.LicenseLine, want)
		}
	})

	t.Run("dropped whole when it overflows", func(t *testing.T) {
		in := Input{
			SourcesLine: "Data source: X",
			LicenseText: "CC BY",
			OriginURL:   "ourworldindata.org/a-rather-long-chart-slug-that-cannot-fit",
			MaxWidth:    420,
			Buttons:     buttons,
		}
		d := Decide(in, ruleMeasurer())
		if d.ShowOriginURL {
			t.Fatal("ShowOriginURL = true, want false in a narrow frame")
		}
		if d.LicenseLine != "CC BY" {
			t.Errorf("LicenseLine = %q, want license only", d.LicenseLine)
		}
		if strings.Contains(d.LicenseLine, "ourworldindata") {
			t.Error("no partial or truncated URL may ever appear")
		}
	})
}

func TestDecideLicensePlacement(t *testing.T) {
	t.Run("beside full-width sources when both fit", func(t *testing.T) {
		in := Input{
			SourcesLine: "Data source: X", // 14 runes, ~100 px at size 13
			Note:        "Note: Y",        // forces sources full-width
			LicenseText: "CC BY",
			MaxWidth:    600,
		}
		d := Decide(in, ruleMeasurer())
		if !d.LicenseNextToSources {
			t.Error("license should sit beside the full-width sources")
		}
	})

	t.Run("bottom row when sources row is crowded", func(t *testing.T) {
		in := Input{
			SourcesLine: strings.Repeat("s", 90), // ~585 px at size 13: no room left
			Note:        "Note: Y",
			LicenseText: "CC BY",
			MaxWidth:    600,
		}
		d := Decide(in, ruleMeasurer())
		if d.LicenseNextToSources {
			t.Error("license cannot share a crowded sources row")
		}
	})

	t.Run("bottom row when sources are inline", func(t *testing.T) {
		in := Input{
			SourcesLine: "Data source: X",
			LicenseText: "CC BY",
			MaxWidth:    600,
		}
		d := Decide(in, ruleMeasurer())
		if d.LicenseNextToSources {
			t.Error("license only joins a full-width sources row")
		}
	})
}

func TestDecideSharedRowWrapWidth(t *testing.T) {
	in := Input{
		SourcesLine: strings.Repeat("word ", 30),
		MaxWidth:    600,
		Buttons:     ButtonsInput{HasTabOverlays: true, CanonicalURL: "https://example.org"},
	}
	d := Decide(in, ruleMeasurer())

	if d.UseFullWidthSources {
		t.Skip("sources crossed the full-width threshold; wrap-width rule not exercised")
	}
	wantWrap := in.MaxWidth - d.Buttons.Width - HGap
	if d.SourcesMaxWidth != wantWrap {
		t.Errorf("SourcesMaxWidth = %v, want container minus buttons minus gap = %v", d.SourcesMaxWidth, wantWrap)
	}
	// The no-overlap invariant: shared-row widths never exceed the frame.
	if d.Sources.Width+HGap+d.Buttons.Width > in.MaxWidth {
		t.Errorf("row overflows: %v + %v + %v > %v", d.Sources.Width, HGap, d.Buttons.Width, in.MaxWidth)
	}
}

func TestDecideHeights(t *testing.T) {
	in := Input{
		SourcesLine: "Data source: Multiple sources compiled by Our World in Data",
		Note:        "Shown is the annual average.",
		LicenseText: "CC BY",
		MaxWidth:    680,
		Buttons:     ButtonsInput{HasTabOverlays: true, CanonicalURL: "https://example.org"},
	}
	d := Decide(in, ruleMeasurer())

	if d.Height != d.TopRowHeight+d.BottomRowHeight {
		t.Errorf("Height = %v, want top %v + bottom %v", d.Height, d.TopRowHeight, d.BottomRowHeight)
	}
	if d.BottomRowHeight < d.Buttons.Height {
		t.Errorf("bottom row %v cannot be shorter than the buttons %v", d.BottomRowHeight, d.Buttons.Height)
	}
	// Height is monotonic in the rows actually rendered: adding a
	// full-width row on top of the same bottom row grows the total.
	if d.TopRowHeight > 0 && d.Height <= d.BottomRowHeight {
		t.Errorf("Height = %v should exceed the bottom row %v when a top row exists", d.Height, d.BottomRowHeight)
	}
}

func TestDecideCentering(t *testing.T) {
	buttons := ButtonsInput{HasTabOverlays: true, CanonicalURL: "https://example.org"}

	tests := []struct {
		name string
		in   Input
		want bool
	}{
		{
			name: "license alone centers",
			in:   Input{LicenseText: "CC BY", MaxWidth: 600, Buttons: buttons},
			want: true,
		},
		{
			name: "short inline note centers",
			in: Input{
				SourcesLine: strings.Repeat("s", 200), // full-width by threshold
				Note:        "Note: Y",
				MaxWidth:    300,
				Buttons:     buttons,
			},
			want: true,
		},
		{
			name: "inline sources align to the bottom edge",
			in:   Input{SourcesLine: "Data source: X", MaxWidth: 600, Buttons: buttons},
			want: false,
		},
		{
			name: "note plus license align to the bottom edge",
			in: Input{
				SourcesLine: strings.Repeat("s", 200),
				Note:        "Note: Y",
				LicenseText: "CC BY",
				MaxWidth:    300,
				Buttons:     buttons,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.in, ruleMeasurer())
			if d.CenterBottomRow != tt.want {
				t.Errorf("CenterBottomRow = %v, want %v", d.CenterBottomRow, tt.want)
			}
		})
	}
}

func TestDecideDegradedBelowButtonMinimum(t *testing.T) {
	in := Input{
		LicenseText: "CC BY",
		MaxWidth:    40, // narrower than a single icon row
		Buttons:     ButtonsInput{HasTabOverlays: true, CanonicalURL: "https://example.org"},
	}
	d := Decide(in, ruleMeasurer())
	if !d.Degraded {
		t.Error("Degraded = false, want true when buttons alone overflow the frame")
	}
	// Still no error and still a usable height: degraded, not failed.
	if d.Height <= 0 {
		t.Errorf("Height = %v, want > 0 even when degraded", d.Height)
	}
}
