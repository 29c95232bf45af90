// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the CLI registers
// implementations at startup (debug logging, the progress view). Nothing in
// this package depends on a particular observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetEvaluationHooks(&progressHooks{})
//	observability.SetHTTPHooks(&logHooks{})
//
// Libraries call hooks to emit events:
//
//	observability.Evaluation().OnMetricStart(ctx, url, "BusFactor")
//	// ... compute ...
//	observability.Evaluation().OnMetricComplete(ctx, url, "BusFactor", score, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Evaluation Hooks
// =============================================================================

// EvaluationHooks receives events from the batch orchestrator.
type EvaluationHooks interface {
	// Per-reference events
	OnEvaluateStart(ctx context.Context, reference string)
	OnEvaluateComplete(ctx context.Context, url string, netScore float64, duration time.Duration, err error)

	// Per-metric events
	OnMetricStart(ctx context.Context, url, metric string)
	OnMetricComplete(ctx context.Context, url, metric string, score float64, duration time.Duration, err error)
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

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEvaluationHooks is a no-op implementation of EvaluationHooks.
type NoopEvaluationHooks struct{}

func (NoopEvaluationHooks) OnEvaluateStart(context.Context, string)                              {}
func (NoopEvaluationHooks) OnEvaluateComplete(context.Context, string, float64, time.Duration, error) {}
func (NoopEvaluationHooks) OnMetricStart(context.Context, string, string)                        {}
func (NoopEvaluationHooks) OnMetricComplete(context.Context, string, string, float64, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	evaluationHooks EvaluationHooks = NoopEvaluationHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetEvaluationHooks registers custom evaluation hooks.
// This should be called once at application startup before any batch runs.
func SetEvaluationHooks(h EvaluationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		evaluationHooks = h
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
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Evaluation returns the registered evaluation hooks.
func Evaluation() EvaluationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return evaluationHooks
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
	evaluationHooks = NoopEvaluationHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
