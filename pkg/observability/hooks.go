// Package observability provides instrumentation hooks for the build
// pipeline.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about build phases, cache operations,
// and the watch loop.
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
//	    observability.SetBuildHooks(&myBuildHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Build().OnDeclareStart(ctx, title, year)
//	// ... collect declarations ...
//	observability.Build().OnDeclareComplete(ctx, title, year, pageCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from the build pipeline.
type BuildHooks interface {
	// Declare events
	OnDeclareStart(ctx context.Context, title string, year int)
	OnDeclareComplete(ctx context.Context, title string, year int, pageCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, pageCount int)
	OnRenderComplete(ctx context.Context, pageCount int, duration time.Duration, err error)

	// Artifact encoding events
	OnEncodeStart(ctx context.Context, formats []string)
	OnEncodeComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations. The keyType identifies
// the cached product: "events" or "artifact".
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Watch Hooks
// =============================================================================

// WatchHooks receives events from the file-watch loop.
type WatchHooks interface {
	// OnWatchStart records the start of a watch session.
	OnWatchStart(ctx context.Context, paths, globs int)

	// OnChange records a debounced batch of changed input files.
	OnChange(ctx context.Context, paths []string)

	// OnWatchError records a filesystem watcher error.
	OnWatchError(ctx context.Context, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnDeclareStart(context.Context, string, int) {}
func (NoopBuildHooks) OnDeclareComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopBuildHooks) OnRenderStart(context.Context, int)                          {}
func (NoopBuildHooks) OnRenderComplete(context.Context, int, time.Duration, error) {}
func (NoopBuildHooks) OnEncodeStart(context.Context, []string)                     {}
func (NoopBuildHooks) OnEncodeComplete(context.Context, []string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopWatchHooks is a no-op implementation of WatchHooks.
type NoopWatchHooks struct{}

func (NoopWatchHooks) OnWatchStart(context.Context, int, int) {}
func (NoopWatchHooks) OnChange(context.Context, []string)     {}
func (NoopWatchHooks) OnWatchError(context.Context, error)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	buildHooks BuildHooks = NoopBuildHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	watchHooks WatchHooks = NoopWatchHooks{}
	hooksMu    sync.RWMutex
)

// SetBuildHooks registers custom build hooks.
// This should be called once at application startup before any builds run.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
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

// SetWatchHooks registers custom watch hooks.
// This should be called once at application startup before any watch session.
func SetWatchHooks(h WatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		watchHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Watch returns the registered watch hooks.
func Watch() WatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return watchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	cacheHooks = NoopCacheHooks{}
	watchHooks = NoopWatchHooks{}
}
