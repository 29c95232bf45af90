// Package httputil provides the HTTP transport shared by the remote API
// clients.
//
// [NewTransport] wraps a base [http.RoundTripper] with two concerns:
//
//   - throttling: an optional [rate.Limiter] gates every request so long
//     batches stay under the hosting API quota
//   - instrumentation: every request reports to [observability.HTTP]
//
// Requests are never retried; a failed request is returned to the caller as is.
//
//	limiter := httputil.Limiter(5) // 5 requests per second
//	client := &http.Client{
//	    Timeout:   10 * time.Second,
//	    Transport: httputil.NewTransport(nil, limiter),
//	}
package httputil
