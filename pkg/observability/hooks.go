// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about plan
// loading, explain sessions, cache operations, and served requests. No
// backend is imported here; the defaults do nothing.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExplainHooks(&myExplainHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Explain().OnExplainStart(ctx, format)
//	// ... explain ...
//	observability.Explain().OnExplainComplete(ctx, format, records, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Explain Hooks
// =============================================================================

// ExplainHooks receives events from the load → explain → render pipeline.
type ExplainHooks interface {
	// OnLoadComplete fires after a plan file is parsed.
	OnLoadComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	// OnExplainStart fires before a plan is explained into format.
	OnExplainStart(ctx context.Context, format string)

	// OnExplainComplete fires after the output is rendered. records is the
	// number of relation records written.
	OnExplainComplete(ctx context.Context, format string, records int, duration time.Duration, err error)
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
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExplainHooks is a no-op implementation of ExplainHooks.
type NoopExplainHooks struct{}

func (NoopExplainHooks) OnLoadComplete(context.Context, int, time.Duration, error) {}
func (NoopExplainHooks) OnExplainStart(context.Context, string)                    {}
func (NoopExplainHooks) OnExplainComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	explainHooks ExplainHooks = NoopExplainHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetExplainHooks registers custom explain hooks.
// This should be called once at application startup.
func SetExplainHooks(h ExplainHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		explainHooks = h
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

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Explain returns the registered explain hooks.
func Explain() ExplainHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return explainHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	explainHooks = NoopExplainHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
