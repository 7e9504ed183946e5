// Package pipeline provides the core layout pipeline for grapher-footer.
//
// This package implements the complete decide → arrange → render pipeline
// that can be used by CLI and embedding callers. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decide: Resolve the layout decision for footer content at a width
//  2. Arrange: Place the decided blocks into absolute geometry
//  3. Render: Generate output in various formats (SVG, PNG, JSON)
//
// Decide and Render are cached; Arrange is a cheap pure function of the
// decision and runs every time.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   in,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/freetype/truetype"

	"github.com/aestriplex/grapher-footer/pkg/cache"
	"github.com/aestriplex/grapher-footer/pkg/errors"
	"github.com/aestriplex/grapher-footer/pkg/fonts"
	"github.com/aestriplex/grapher-footer/pkg/footer"
	"github.com/aestriplex/grapher-footer/pkg/textmeasure"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Embedders
// =============================================================================

const (
	// DefaultWidth is the default footer container width in pixels. It
	// matches the default chart frame the footer was designed against.
	DefaultWidth = 680.0

	// DefaultScale is the default raster scale for PNG output.
	DefaultScale = 2.0
)

// DefaultStyle is the default visual style.
const DefaultStyle = StyleDefault

// Style constants for rendered output.
const (
	StyleDefault = "default"
	StylePlain   = "plain"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleDefault: true,
	StylePlain:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for embedding callers.
type Options struct {
	// Input is the footer content and sizing flags to lay out. A zero
	// Input.MaxWidth falls back to DefaultWidth.
	Input footer.Input `json:"input"`

	// Refresh forces recomputation even when a cached decision exists.
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Font options. FontFile loads a TTF from disk, FontName searches the
	// system font directories. When both are empty the bundled font is used.
	FontFile string `json:"font_file,omitempty"`
	FontName string `json:"font_name,omitempty"`

	// Runtime options (not serialized). An injected Measurer cannot be
	// named in a cache key, so the runner computes decisions measured
	// with it fresh on every call.
	Logger   *log.Logger          `json:"-"`
	Measurer textmeasure.Measurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Decision is the computed layout decision.
	Decision footer.Decision

	// InputHash is the content hash of the footer input.
	InputHash string

	// Arrangement is the placed geometry derived from the decision.
	Arrangement footer.Arrangement

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount int
	DecideTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the decision came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: default, plain)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Input.MaxWidth == 0 {
		o.Input.MaxWidth = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Input.MaxWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"width must be positive, got %g", o.Input.MaxWidth)
	}
	if o.FontFile != "" && o.FontName != "" {
		return errors.New(errors.ErrCodeInvalidInput,
			"font_file and font_name are mutually exclusive")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"scale must be positive, got %g", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	font := o.FontFile
	if font == "" {
		font = o.FontName
	}
	return cache.LayoutKeyOpts{
		Width:  o.Input.MaxWidth,
		Small:  o.Input.IsSmall,
		Medium: o.Input.IsMedium,
		Font:   font,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// InputHash computes the content hash of the footer input. Sizing flags
// and width are excluded here; they travel in [Options.LayoutKeyOpts] so
// the same content at several widths shares one content identity.
func (o *Options) InputHash() string {
	content := struct {
		Sources string              `json:"sources"`
		Note    string              `json:"note"`
		License string              `json:"license"`
		Origin  string              `json:"origin"`
		Logo    bool                `json:"logo"`
		Buttons footer.ButtonsInput `json:"buttons"`
	}{
		Sources: o.Input.SourcesLine,
		Note:    o.Input.Note,
		License: o.Input.LicenseText,
		Origin:  o.Input.OriginURL,
		Logo:    o.Input.HasLogo,
		Buttons: o.Input.Buttons,
	}
	data, _ := json.Marshal(content)
	return cache.Hash(data)
}

// NewMeasurer resolves the text measurer for these options: the injected
// one if set, otherwise a memoized truetype face from the font options.
func (o *Options) NewMeasurer() (textmeasure.Measurer, error) {
	if o.Measurer != nil {
		return o.Measurer, nil
	}

	var (
		f   *truetype.Font
		err error
	)
	switch {
	case o.FontFile != "":
		f, err = fonts.LoadFile(o.FontFile)
	case o.FontName != "":
		f, err = fonts.FindSystem(o.FontName)
	default:
		f = fonts.Regular()
	}
	if err != nil {
		return nil, err
	}
	return textmeasure.NewMemo(textmeasure.NewFace(f)), nil
}
