// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout computation, cache operations, and the
// interactive preview.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnDecideStart(ctx, maxWidth)
//	// ... compute layout ...
//	observability.Layout().OnDecideComplete(ctx, maxWidth, degraded, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout and rendering pipeline.
type LayoutHooks interface {
	// Decide events
	OnDecideStart(ctx context.Context, maxWidth float64)
	OnDecideComplete(ctx context.Context, maxWidth float64, degraded bool, duration time.Duration)

	// OnDegradedLayout records a layout that could not satisfy its width
	// constraint and fell back to overflowing geometry.
	OnDegradedLayout(ctx context.Context, maxWidth float64)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Preview Hooks
// =============================================================================

// PreviewHooks receives events from the interactive terminal preview.
type PreviewHooks interface {
	// OnTooltipShow records a hover that resolved to a block tooltip.
	OnTooltipShow(ctx context.Context, blockKind string)

	// OnTooltipMiss records a hover over footer area that hit no block.
	OnTooltipMiss(ctx context.Context, x, y int)

	// OnResize records a terminal resize and the recomputed width.
	OnResize(ctx context.Context, width float64, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnDecideStart(context.Context, float64)                          {}
func (NoopLayoutHooks) OnDecideComplete(context.Context, float64, bool, time.Duration)  {}
func (NoopLayoutHooks) OnDegradedLayout(context.Context, float64)                       {}
func (NoopLayoutHooks) OnRenderStart(context.Context, []string)                         {}
func (NoopLayoutHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopPreviewHooks is a no-op implementation of PreviewHooks.
type NoopPreviewHooks struct{}

func (NoopPreviewHooks) OnTooltipShow(context.Context, string)                 {}
func (NoopPreviewHooks) OnTooltipMiss(context.Context, int, int)               {}
func (NoopPreviewHooks) OnResize(context.Context, float64, time.Duration)      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks  LayoutHooks  = NoopLayoutHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	previewHooks PreviewHooks = NoopPreviewHooks{}
	hooksMu      sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout operations.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetPreviewHooks registers custom preview hooks.
// This should be called once at application startup before the preview runs.
func SetPreviewHooks(h PreviewHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		previewHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Preview returns the registered preview hooks.
func Preview() PreviewHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return previewHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
	previewHooks = NoopPreviewHooks{}
}
