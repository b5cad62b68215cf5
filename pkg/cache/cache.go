// Package cache provides pluggable byte caches for computed layouts and
// rendered artifacts.
//
// Three backends are available:
//
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: Redis-backed, for server deployments
//   - [NullCache]: no-op, for tests and --no-cache runs
//
// Keys are produced by a [Keyer] so every component derives them the
// same way. Scoped keyers add a prefix for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Default TTLs per content class. Layout documents are pure functions of
// their inputs, so they effectively never go stale; artifacts are cheap
// to re-render and expire sooner.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// LayoutKeyOpts captures everything that changes a computed layout.
type LayoutKeyOpts struct {
	Direction       string
	SiblingDistance float64
	SubtreeDistance float64
	LevelDistance   float64
	MaxDepth        int
}

// ArtifactKeyOpts captures everything that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string
	Scale    float64
	Detailed bool
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey keys a computed layout document by the hash of its
	// normalized word list plus the layout options.
	LayoutKey(wordsHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its layout
	// document plus the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key derivation: a stage prefix plus a
// SHA-256 over the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout document caching.
func (k *DefaultKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", wordsHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
