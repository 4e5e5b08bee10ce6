// Package cache provides caching for computed layouts and rendered
// artifacts.
//
// Layout computation is cheap for small diagrams but the external solver
// and SVG rendering are not, so both the server and the CLI cache results
// keyed by a hash of the spec and the options that influenced the output.
//
// # Backends
//
//   - memory: In-process cache for the server and tests
//   - file: On-disk cache for CLI usage across invocations
//   - redis: Shared cache for multi-instance deployments
//   - null: Disabled caching
//
// All backends implement the [Cache] interface. Keys are produced by a
// [Keyer] so every caller derives them the same way.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures everything besides the spec itself that changes a
// computed layout.
type LayoutKeyOpts struct {
	DiagramType string // layout strategy selector
	Engine      string // "dot" or "" for the pure strategies
	ConfigHash  string // hash of the layout config in effect
}

// ArtifactKeyOpts captures rendering options that change the output bytes.
type ArtifactKeyOpts struct {
	Format string  // "svg", "dot", "json"
	Theme  string  // render theme name
	Scale  float64 // raster scale factor
}

// Keyer derives cache keys. Implementations must be deterministic: the same
// inputs always produce the same key.
type Keyer interface {
	// LayoutKey generates a key for a computed layout.
	LayoutKey(specHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer derives keys by hashing the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(specHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", specHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
