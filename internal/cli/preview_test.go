package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/aestriplex/grapher-footer/pkg/footer"
	"github.com/aestriplex/grapher-footer/pkg/textmeasure"
)

func testPreviewModel(t *testing.T) previewModel {
	t.Helper()
	in := footer.Input{
		SourcesLine: "Data source: World Bank",
		LicenseText: "CC BY",
		Buttons:     footer.ButtonsInput{CanonicalURL: "https://example.org/x"},
		MaxWidth:    640,
	}
	var buf bytes.Buffer
	return newPreviewModel(context.Background(), in, textmeasure.NewRule(), newLogger(&buf, log.DebugLevel))
}

func TestPreviewModelResizeRecomputes(t *testing.T) {
	m := testPreviewModel(t)
	before := m.input.MaxWidth

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	p := updated.(previewModel)

	if p.input.MaxWidth == before {
		t.Error("resize should change the layout width")
	}
	if p.input.MaxWidth != 40*pxPerCol {
		t.Errorf("width = %g, want %g", p.input.MaxWidth, 40*pxPerCol)
	}
	if p.arrangement.Width != p.input.MaxWidth {
		t.Error("arrangement not recomputed after resize")
	}
}

func TestPreviewModelHoverTooltip(t *testing.T) {
	m := testPreviewModel(t)

	// The sources block starts at the origin; hover its first cell.
	// Canvas rows start below the header line.
	updated, _ := m.Update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion})
	p := updated.(previewModel)
	if p.hover == nil {
		t.Fatal("hover over the sources block should set a tooltip")
	}
	if p.hover.kind != footer.BlockSources {
		t.Errorf("tooltip kind = %s, want sources", p.hover.kind)
	}

	// Moving far outside the footer clears the tooltip.
	updated, _ = p.Update(tea.MouseMsg{X: 1, Y: 200, Action: tea.MouseActionMotion})
	p = updated.(previewModel)
	if p.hover != nil {
		t.Error("leaving the footer area should clear the tooltip")
	}
}

func TestPreviewModelQuitKeys(t *testing.T) {
	m := testPreviewModel(t)
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		var msg tea.KeyMsg
		switch key {
		case "q":
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}
}

func TestPreviewModelView(t *testing.T) {
	m := testPreviewModel(t)
	view := m.View()

	if !strings.Contains(view, "World Bank") {
		t.Error("view should contain the sources text")
	}
	if !strings.Contains(view, "CC BY") {
		t.Error("view should contain the license text")
	}
	if !strings.Contains(view, "640px") {
		t.Error("view header should state the width")
	}
}
