package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/aestriplex/grapher-footer/pkg/footer"
)

// newExplainCmd creates the explain command, which prints the layout
// decision for a content file at a given width without rendering anything.
func newExplainCmd() *cobra.Command {
	var opts layoutFlags

	cmd := &cobra.Command{
		Use:   "explain [content-file]",
		Short: "Print the layout decision for a content file",
		Long: `Explain computes the layout decision for a footer content file at the
given width and prints which rules fired: full-width promotion, license
placement, origin URL retention, button labeling, and the resulting block
geometry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func runExplain(ctx context.Context, input string, opts *layoutFlags) error {
	logger := loggerFromContext(ctx)

	pipeOpts, err := opts.options(input)
	if err != nil {
		return err
	}

	runner := newRunner(opts.noCache, logger)
	defer runner.Close()

	d, err := runner.Decide(ctx, pipeOpts)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Layout at %.0fpx", d.MaxWidth)))
	printInfo("content %s", input)
	fmt.Println()

	printDecisionFlags(d)
	if d.ShowOriginURL && pipeOpts.Input.OriginURL != "" {
		fmt.Println("    " + StyleLink.Render(pipeOpts.Input.OriginURL))
	}
	fmt.Println()
	printBlockTable(d)

	if d.Degraded {
		fmt.Println()
		printWarning("degraded: content cannot fit this width without overlap")
	}
	return nil
}

// printDecisionFlags lists which layout rules fired.
func printDecisionFlags(d footer.Decision) {
	flag := func(name string, on bool, detail string) {
		marker := StyleDim.Render("·")
		if on {
			marker = StyleHighlight.Render(iconSuccess)
		}
		line := fmt.Sprintf("%s %s", marker, name)
		if detail != "" && on {
			line += " " + StyleDim.Render(detail)
		}
		fmt.Println("  " + line)
	}

	flag("full-width sources", d.UseFullWidthSources,
		fmt.Sprintf("(%.0fpx font)", d.SourcesFontSize))
	flag("full-width note", d.UseFullWidthNote, "")
	flag("license beside sources", d.LicenseNextToSources, "")
	flag("origin URL shown", d.ShowOriginURL, "")
	flag("bottom row centered", d.CenterBottomRow, "")
	flag("button labels", d.Buttons.ShowLabels(),
		fmt.Sprintf("(%.0fpx cluster)", d.Buttons.Width))
}

// printBlockTable prints per-block geometry for the arranged layout.
func printBlockTable(d footer.Decision) {
	a := footer.Arrange(d)

	rows := make([][]string, 0, len(a.Blocks))
	for _, b := range a.Blocks {
		label := string(b.Kind)
		if b.Kind == footer.BlockButtons {
			names := make([]string, len(b.Buttons))
			for i, btn := range b.Buttons {
				names[i] = string(btn.Kind)
			}
			label += " (" + strings.Join(names, ", ") + ")"
		}
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%.1f, %.1f", b.X, b.Y),
			fmt.Sprintf("%.1f × %.1f", b.W, b.H),
			fmt.Sprintf("%d", len(b.Lines)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Block", "Position", "Size", "Lines").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})

	fmt.Println(t)
	fmt.Println()
	printDetail("total height %.1fpx (top rows %.1f, bottom row %.1f)",
		a.Height, d.TopRowHeight, d.BottomRowHeight)
}
