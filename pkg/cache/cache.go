// Package cache provides build-product caching for planweave.
//
// The build pipeline caches its expensive products, expanded event
// occurrences and rendered document artifacts, keyed by content hashes of
// their inputs, so rebuilding an unchanged plan is served from disk.
//
// [FileCache] is the backend used by the CLI; [NullCache] disables caching.
// Keys are derived through a [Keyer] so that callers never concatenate key
// strings by hand, and [NewScopedKeyer] prefixes keys when one cache
// directory is shared between plans.
package cache

import (
	"context"
	"time"
)

// TTLs for the cache families. Zero would mean no expiration; both families
// expire so stale plans cannot shadow edited inputs forever.
const (
	// TTLEvents bounds reuse of expanded event occurrences. Event files
	// change often while a plan is being edited, so this is short.
	TTLEvents = time.Hour

	// TTLArtifact bounds rendered document artifacts. Artifacts are keyed
	// by a full declaration hash, so they only go stale through schema
	// changes; a month keeps the cache directory from growing unbounded.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache stores opaque bytes under string keys with per-entry TTLs.
//
// Implementations must treat Get misses as (nil, false, nil); errors are
// reserved for I/O failures.
type Cache interface {
	// Get retrieves data by key. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes an entry; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the render options that participate in an artifact
// cache key. Two builds that differ in any of these must not share an
// artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Theme  string `json:"theme"`
	Year   int    `json:"year"`
}

// Keyer derives cache keys for the planner's cacheable products.
type Keyer interface {
	// ArtifactKey keys a rendered artifact by the plan's declaration hash
	// plus the render options.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string

	// EventsKey keys expanded event occurrences by their source pattern
	// and planner year.
	EventsKey(pattern string, year int) string
}

// DefaultKeyer is the standard key derivation: a family prefix plus a
// SHA-256 hash of the JSON-encoded key parts.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// EventsKey generates a key for expanded event occurrences.
func (k *DefaultKeyer) EventsKey(pattern string, year int) string {
	return hashKey("events", pattern, year)
}
