// Package cache provides content-addressed caching for layout and
// artifact computation.
//
// # Usage
//
// The pipeline caches two stages independently: the layout decision
// (keyed by input hash plus layout options) and each rendered artifact
// (keyed by layout hash plus format options). Both stages share one
// [Cache] backend and one [Keyer]:
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().LayoutKey(inputHash, cache.LayoutKeyOpts{Width: 680})
//	data, hit, err := c.Get(ctx, key)
//
// Use [NullCache] to disable caching and [ScopedKeyer] to namespace
// keys when several charts share a cache directory.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Layout decisions are pure functions of
// their key, so both stages could cache forever; bounded TTLs keep stale
// entries from accumulating in shared cache directories.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache stores opaque byte payloads under string keys with optional
// expiration. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the inputs, beyond the content itself, that change
// a layout decision.
type LayoutKeyOpts struct {
	Width  float64 `json:"width"`
	Small  bool    `json:"small"`
	Medium bool    `json:"medium"`
	Font   string  `json:"font,omitempty"`
}

// ArtifactKeyOpts are the inputs, beyond the layout, that change a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a layout decision computed from the
	// content with the given hash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for an artifact rendered from the
	// layout with the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hashed, stage-prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
