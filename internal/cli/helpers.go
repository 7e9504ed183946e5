package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aestriplex/grapher-footer/pkg/cache"
	"github.com/aestriplex/grapher-footer/pkg/chartio"
	"github.com/aestriplex/grapher-footer/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "grapher-footer"

// layoutFlags are the sizing flags shared by render, explain and preview.
type layoutFlags struct {
	width    float64 // container width in pixels (0 uses the content file or default)
	small    bool    // compact font scale
	medium   bool    // medium frame scale
	fontFile string  // TTF file for measurement and PNG output
	fontName string  // system font name for measurement and PNG output
	noCache  bool    // disable the file cache
	refresh  bool    // recompute even when cached
}

// register adds the shared flags to cmd.
func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", 0, "container width in pixels (default from content file, else 680)")
	fs.BoolVar(&f.small, "small", false, "use the compact font scale")
	fs.BoolVar(&f.medium, "medium", false, "use the medium frame scale")
	fs.StringVar(&f.fontFile, "font-file", "", "measure with a TTF file instead of the bundled font")
	fs.StringVar(&f.fontName, "font", "", "measure with a system font by name")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the layout cache")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// options builds pipeline options from a content file and the shared flags.
func (f *layoutFlags) options(contentPath string) (pipeline.Options, error) {
	content, err := chartio.ImportFile(contentPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Input:    content.ToInput(f.width, f.small, f.medium),
		Refresh:  f.refresh,
		FontFile: f.fontFile,
		FontName: f.fontName,
	}, nil
}

// newRunner creates a pipeline runner for CLI use.
func newRunner(noCache bool, logger *log.Logger) *pipeline.Runner {
	c, err := newCache(noCache)
	if err != nil {
		logger.Debug("falling back to null cache", "err", err)
		c = cache.NewNullCache()
	}
	return pipeline.NewRunner(c, nil, logger)
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/grapher-footer/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
