package pipeline

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/aestriplex/grapher-footer/pkg/cache"
	"github.com/aestriplex/grapher-footer/pkg/errors"
	"github.com/aestriplex/grapher-footer/pkg/footer"
	"github.com/aestriplex/grapher-footer/pkg/textmeasure"
)

func testOptions() Options {
	return Options{
		Input: footer.Input{
			SourcesLine: "Data source: World Bank",
			Note:        "Note: Values are inflation-adjusted.",
			LicenseText: "CC BY",
			OriginURL:   "https://example.org/charts/gdp",
			Buttons:     footer.ButtonsInput{CanonicalURL: "https://example.org/charts/gdp"},
			MaxWidth:    680,
		},
		Formats:  []string{FormatSVG, FormatJSON},
		Measurer: textmeasure.NewRule(),
	}
}

// cacheableOptions uses the bundled font instead of an injected measurer,
// so the resulting decisions are eligible for the layout cache.
func cacheableOptions() Options {
	opts := testOptions()
	opts.Measurer = nil
	return opts
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) should carry the invalid-format code", tt.format)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"default", false},
		{"plain", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("empty options should validate: %v", err)
	}

	if opts.Input.MaxWidth != DefaultWidth {
		t.Errorf("MaxWidth should be %g, got %g", DefaultWidth, opts.Input.MaxWidth)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should default to [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %q, got %q", DefaultStyle, opts.Style)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %g, got %g", DefaultScale, opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	opts := Options{FontFile: "a.ttf", FontName: "Lato"}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("conflicting font options should fail with invalid input, got %v", err)
	}

	opts = Options{}
	opts.Input.MaxWidth = -1
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative width should fail with invalid input, got %v", err)
	}
}

func TestInputHashStableAcrossWidths(t *testing.T) {
	a := testOptions()
	b := testOptions()
	b.Input.MaxWidth = 320
	if a.InputHash() != b.InputHash() {
		t.Error("content hash should not depend on width")
	}

	c := testOptions()
	c.Input.Note = "Note: Different."
	if a.InputHash() == c.InputHash() {
		t.Error("content hash should change with content")
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, testLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Decision.Height <= 0 {
		t.Error("decision should have positive height")
	}
	if result.Arrangement.Height != result.Decision.Height {
		t.Error("arrangement height should match decision height")
	}
	if result.Stats.BlockCount != len(result.Arrangement.Blocks) {
		t.Error("stats block count should match arrangement")
	}
	if result.InputHash == "" {
		t.Error("input hash should be set")
	}
	for _, format := range []string{FormatSVG, FormatJSON} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("null cache should never hit")
	}
}

func TestRunnerCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, testLogger())
	defer r.Close()

	ctx := context.Background()
	first, err := r.Execute(ctx, cacheableOptions())
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss on both stages")
	}

	second, err := r.Execute(ctx, cacheableOptions())
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should equal the rendered one")
	}

	// Refresh bypasses the cache
	opts := cacheableOptions()
	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should bypass the cache")
	}
}

func TestRunnerCacheKeySeparation(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, testLogger())
	defer r.Close()

	ctx := context.Background()
	if _, err := r.Execute(ctx, cacheableOptions()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// Same content at another width is a different layout
	narrow := cacheableOptions()
	narrow.Input.MaxWidth = 320
	result, err := r.Execute(ctx, narrow)
	if err != nil {
		t.Fatalf("Execute at 320: %v", err)
	}
	if result.CacheInfo.LayoutHit {
		t.Error("a different width must not hit the layout cache")
	}
}

func TestRunnerInjectedMeasurerSkipsLayoutCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, testLogger())
	defer r.Close()

	ctx := context.Background()
	d1, hit, err := r.DecideWithCacheInfo(ctx, testOptions())
	if err != nil {
		t.Fatalf("DecideWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("injected measurer must not hit the layout cache")
	}

	// A wider per-rune advance under the same options must be measured
	// fresh, not served from a decision cached under the first metric.
	wide := testOptions()
	wide.Measurer = &textmeasure.Rule{Advance: 2.0}
	d2, hit, err := r.DecideWithCacheInfo(ctx, wide)
	if err != nil {
		t.Fatalf("DecideWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("injected measurer must not hit the layout cache")
	}
	if d1.Height == d2.Height {
		t.Error("decisions measured under different advances should differ")
	}

	// The injected runs must not have seeded the cache either.
	if _, hit, err := r.DecideWithCacheInfo(ctx, testOptions()); err != nil {
		t.Fatalf("DecideWithCacheInfo: %v", err)
	} else if hit {
		t.Error("injected measurer must not populate the layout cache")
	}
}

func TestRunnerDecideDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())

	ctx := context.Background()
	d1, err := r.Decide(ctx, testOptions())
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	d2, err := r.Decide(ctx, testOptions())
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if d1.Height != d2.Height || d1.ShowOriginURL != d2.ShowOriginURL {
		t.Error("Decide should be deterministic for equal options")
	}
}

func TestRunnerInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())

	opts := testOptions()
	opts.Formats = []string{"pdf"}
	if _, err := r.Execute(context.Background(), opts); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unsupported format should fail with invalid format code, got %v", err)
	}
}
