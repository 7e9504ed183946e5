package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aestriplex/grapher-footer/pkg/footer"
	"github.com/aestriplex/grapher-footer/pkg/observability"
	"github.com/aestriplex/grapher-footer/pkg/textmeasure"
)

// Terminal cell geometry. A text cell stands in for pxPerCol × pxPerRow
// footer pixels, so a 100-column terminal previews an 800px footer.
const (
	pxPerCol = 8.0
	pxPerRow = 16.0
)

// newPreviewCmd creates the preview command: an interactive terminal view
// of the arranged footer that recomputes on every resize and shows block
// tooltips on mouse hover.
func newPreviewCmd() *cobra.Command {
	var opts layoutFlags

	cmd := &cobra.Command{
		Use:   "preview [content-file]",
		Short: "Interactively preview a footer layout in the terminal",
		Long: `Preview renders the arranged footer as a live terminal view. Resizing
the terminal recomputes the layout at the new width, and hovering a block
with the mouse shows its text and geometry in the status line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func runPreview(ctx context.Context, input string, opts *layoutFlags) error {
	logger := loggerFromContext(ctx)

	pipeOpts, err := opts.options(input)
	if err != nil {
		return err
	}
	m, err := pipeOpts.NewMeasurer()
	if err != nil {
		return err
	}

	model := newPreviewModel(ctx, pipeOpts.Input, m, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// =============================================================================
// previewModel - Live footer preview
// =============================================================================

// tooltip is the hover state shown in the status line. Only the latest
// hover wins; leaving all blocks clears it.
type tooltip struct {
	kind footer.BlockKind
	text string
}

// previewModel is the bubbletea model for the footer preview.
type previewModel struct {
	ctx      context.Context
	input    footer.Input
	measurer textmeasure.Measurer
	logger   *log.Logger

	cols, rows  int
	decision    footer.Decision
	arrangement footer.Arrangement
	hover       *tooltip
}

func newPreviewModel(ctx context.Context, in footer.Input, m textmeasure.Measurer, logger *log.Logger) previewModel {
	p := previewModel{
		ctx:      ctx,
		input:    in,
		measurer: m,
		logger:   logger,
		cols:     int(in.MaxWidth / pxPerCol),
	}
	p.relayout()
	return p
}

// relayout recomputes the decision and arrangement for the current width.
func (p *previewModel) relayout() {
	start := time.Now()
	p.input.MaxWidth = float64(p.cols) * pxPerCol
	p.decision = footer.Decide(p.input, p.measurer)
	p.arrangement = footer.Arrange(p.decision)
	observability.Preview().OnResize(p.ctx, p.input.MaxWidth, time.Since(start))
}

func (p previewModel) Init() tea.Cmd {
	return nil
}

func (p previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		p.cols = msg.Width
		if p.cols < 4 {
			p.cols = 4
		}
		p.rows = msg.Height
		p.relayout()
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			p.hover = p.hitTest(msg.X, msg.Y)
		}
	}
	return p, nil
}

// hitTest maps a terminal cell to footer pixels and finds the block under
// it. A hover inside the footer area that lands on no block is logged as a
// debug-level warning; it usually means the gap arithmetic regressed.
func (p previewModel) hitTest(col, row int) *tooltip {
	x := (float64(col) + 0.5) * pxPerCol
	// The canvas starts on the row below the header line.
	y := (float64(row-1) + 0.5) * pxPerRow

	if y < 0 || y > p.arrangement.Height {
		return nil
	}
	for _, b := range p.arrangement.Blocks {
		if x >= b.X && x <= b.Right() && y >= b.Y && y <= b.Bottom() {
			observability.Preview().OnTooltipShow(p.ctx, string(b.Kind))
			return &tooltip{kind: b.Kind, text: blockSummary(b)}
		}
	}
	p.logger.Debug("hover hit no block", "col", col, "row", row)
	observability.Preview().OnTooltipMiss(p.ctx, col, row)
	return nil
}

// blockSummary is the tooltip line for a hovered block.
func blockSummary(b footer.PlacedBlock) string {
	switch b.Kind {
	case footer.BlockButtons:
		labels := make([]string, len(b.Buttons))
		for i, btn := range b.Buttons {
			if btn.ShowLabel {
				labels[i] = btn.Label
			} else {
				labels[i] = string(btn.Kind)
			}
		}
		return strings.Join(labels, " / ")
	default:
		if len(b.Lines) > 0 {
			return b.Lines[0]
		}
		return b.Text
	}
}

func (p previewModel) View() string {
	var sb strings.Builder

	header := fmt.Sprintf("footer preview — %.0fpx", p.input.MaxWidth)
	if p.decision.Degraded {
		header += "  " + StyleWarning.Render("degraded")
	}
	sb.WriteString(StyleTitle.Render(header))
	sb.WriteString("\n")
	sb.WriteString(p.renderCanvas())
	sb.WriteString("\n")

	if p.hover != nil {
		sb.WriteString(StyleHighlight.Render(string(p.hover.kind)) + " " + StyleValue.Render(p.hover.text))
	} else {
		sb.WriteString(StyleDim.Render("hover a block for details — q quits"))
	}
	return sb.String()
}

// renderCanvas paints the arrangement onto a cell grid.
func (p previewModel) renderCanvas() string {
	height := int(p.arrangement.Height/pxPerRow) + 1
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, p.cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	place := func(row, col int, s string) {
		if row < 0 || row >= height {
			return
		}
		for i, r := range s {
			if col+i < 0 || col+i >= p.cols {
				return
			}
			grid[row][col+i] = r
		}
	}

	for _, b := range p.arrangement.Blocks {
		col := int(b.X / pxPerCol)
		row := int(b.Y / pxPerRow)
		switch b.Kind {
		case footer.BlockButtons:
			var cells []string
			for _, btn := range b.Buttons {
				if btn.ShowLabel {
					cells = append(cells, "["+btn.Label+"]")
				} else {
					cells = append(cells, "[•]")
				}
			}
			place(row, col, strings.Join(cells, " "))
		default:
			for i, line := range b.Lines {
				place(row+i, col, line)
			}
		}
	}

	lines := make([]string, height)
	for i, r := range grid {
		lines[i] = strings.TrimRight(string(r), " ")
	}
	return strings.Join(lines, "\n")
}
