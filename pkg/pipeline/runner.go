package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aestriplex/grapher-footer/pkg/cache"
	"github.com/aestriplex/grapher-footer/pkg/errors"
	"github.com/aestriplex/grapher-footer/pkg/footer"
	"github.com/aestriplex/grapher-footer/pkg/observability"
	"github.com/aestriplex/grapher-footer/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decide → arrange → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
		InputHash: opts.InputHash(),
	}

	// Stage 1: Decide
	decideStart := time.Now()
	d, layoutHit, err := r.DecideWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Decision = d
	result.Stats.DecideTime = time.Since(decideStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("decided layout",
		"width", d.MaxWidth,
		"height", d.Height,
		"degraded", d.Degraded,
		"duration", result.Stats.DecideTime)

	// Stage 2: Arrange (pure, uncached)
	result.Arrangement = footer.Arrange(d)
	result.Stats.BlockCount = len(result.Arrangement.Blocks)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Arrangement, d, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// DecideWithCacheInfo computes the layout decision with caching and returns
// cache hit info.
func (r *Runner) DecideWithCacheInfo(ctx context.Context, opts Options) (footer.Decision, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return footer.Decision{}, false, err
	}
	r.applyLogger(&opts)

	// An injected measurer has no representation in the cache key, so its
	// decisions never touch the layout cache.
	cacheable := opts.Measurer == nil
	cacheKey := r.Keyer.LayoutKey(opts.InputHash(), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached footer.Decision
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Corrupt entry, fall through to recompute
		}
	}
	if cacheable {
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	m, err := opts.NewMeasurer()
	if err != nil {
		return footer.Decision{}, false, err
	}

	observability.Layout().OnDecideStart(ctx, opts.Input.MaxWidth)
	start := time.Now()
	d := footer.Decide(opts.Input, m)
	observability.Layout().OnDecideComplete(ctx, opts.Input.MaxWidth, d.Degraded, time.Since(start))
	if d.Degraded {
		observability.Layout().OnDegradedLayout(ctx, opts.Input.MaxWidth)
		r.Logger.Warn("layout degraded below minimum width", "width", opts.Input.MaxWidth)
	}

	// Cache the result
	if cacheable {
		if data, err := json.Marshal(d); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return d, false, nil
}

// Decide is a convenience wrapper that calls DecideWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Decide(ctx context.Context, opts Options) (footer.Decision, error) {
	d, _, err := r.DecideWithCacheInfo(ctx, opts)
	return d, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, a footer.Arrangement, d footer.Decision, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Key artifacts off the decision, which fully determines the geometry.
	decisionData, err := json.Marshal(d)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize decision for cache key")
	}
	decisionHash := cache.Hash(decisionData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(decisionHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	observability.Layout().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := r.renderFormats(a, d, opts)
	observability.Layout().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(decisionHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, a footer.Arrangement, d footer.Decision, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, a, d, opts)
	return artifacts, err
}

// renderFormats dispatches to the sinks for every requested format.
func (r *Runner) renderFormats(a footer.Arrangement, d footer.Decision, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			var svgOpts []sink.SVGOption
			if opts.Style == StylePlain {
				svgOpts = append(svgOpts, sink.WithBackground("#ffffff"))
			}
			out[format] = sink.RenderSVG(a, svgOpts...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
			data, err := sink.RenderPNG(a, pngOpts...)
			if err != nil {
				return nil, err
			}
			out[format] = data
		case FormatJSON:
			data, err := sink.RenderJSON(a, sink.WithDecision(d))
			if err != nil {
				return nil, err
			}
			out[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
