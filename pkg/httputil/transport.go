package httputil

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/matzehuels/pkgtrust/pkg/observability"
)

// Limiter returns a token-bucket limiter allowing rps requests per second
// with a burst of one. A non-positive rps returns nil (unlimited).
func Limiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// Transport is a throttled, instrumented [http.RoundTripper].
type Transport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// NewTransport wraps base, which defaults to [http.DefaultTransport].
// A nil limiter disables throttling.
func NewTransport(base http.RoundTripper, limiter *rate.Limiter) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, limiter: limiter}
}

// RoundTrip waits for the limiter, then performs the request.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	hooks := observability.HTTP()

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
			return nil, err
		}
	}

	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, err
	}
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))
	return resp, nil
}
