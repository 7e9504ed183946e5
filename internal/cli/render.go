package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aestriplex/grapher-footer/pkg/chartio"
	"github.com/aestriplex/grapher-footer/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	layoutFlags
	output string // output file path, or base path when several formats are requested
	style  string // visual style: "default" or "plain"
	scale  float64
}

// newRenderCmd creates the render command for laying out a content file and
// writing the rendered artifacts.
//
// Default settings:
//   - format: svg
//   - style: default (transparent background)
//   - width: from the content file, else 680px
//   - scale: 2.0 for PNG output
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		style: pipeline.DefaultStyle,
		scale: pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [content-file]",
		Short: "Lay out a footer content file and write artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.style); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], formats, &opts)
		},
	}

	opts.layoutFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: default, plain")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale for PNG output")

	return cmd
}

// runRender executes the pipeline for a content file and writes every
// requested artifact next to the output base path.
func runRender(ctx context.Context, input string, formats []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	pipeOpts, err := opts.options(input)
	if err != nil {
		return err
	}
	pipeOpts.Formats = formats
	pipeOpts.Style = opts.style
	pipeOpts.Scale = opts.scale

	runner := newRunner(opts.noCache, logger)
	defer runner.Close()

	p := newProgress(logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}
	p.done("Computed layout")

	logger.Debugf("Layout: %d blocks, height %.1fpx (layout %s, render %s)",
		result.Stats.BlockCount, result.Decision.Height,
		cacheBadge(result.CacheInfo.LayoutHit), cacheBadge(result.CacheInfo.RenderHit))

	if result.Decision.Degraded {
		printWarning("layout degraded: content cannot fit %.0fpx", result.Decision.MaxWidth)
	}

	base := basePath(opts.output, input)
	paths, err := chartio.WriteArtifacts(base, result.Artifacts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printSuccess("Generated %s", p)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return output
}
