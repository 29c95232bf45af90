package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/matzehuels/pkgtrust/pkg/buildinfo"
	"github.com/matzehuels/pkgtrust/pkg/cache"
	"github.com/matzehuels/pkgtrust/pkg/errors"
	"github.com/matzehuels/pkgtrust/pkg/httputil"
	"github.com/matzehuels/pkgtrust/pkg/observability"
)

// Client provides shared HTTP functionality for the remote API clients.
// It handles response caching, throttling, and common request headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	headers   map[string]string
}

// Option configures a [Client].
type Option func(*Client)

// WithLimiter throttles every request through l.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.http.Transport = httputil.NewTransport(nil, l)
	}
}

// WithKeyer replaces the default cache keyer.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient creates a Client that caches responses in c under namespace for
// ttl. Headers are applied to all requests made through this client.
// A nil cache disables caching; nil headers are allowed.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string, opts ...Option) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	client := &Client{
		http:      NewHTTPClient(),
		cache:     c,
		keyer:     cache.NewDefaultKeyer(),
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	data, err := c.fetch(ctx, url, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// fetch returns the body for url, serving it from the cache when present.
// Only successful responses are cached.
func (c *Client) fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	key := c.keyer.HTTPKey(c.namespace, url)
	if data, ok := c.lookup(ctx, key); ok {
		return data, nil
	}

	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	c.store(ctx, key, data)
	return data, nil
}

func (c *Client) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, c.namespace)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, c.namespace)
	return data, true
}

func (c *Client) store(ctx context.Context, key string, data []byte) {
	if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, c.namespace, len(data))
	}
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if err := checkResponse(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// checkResponse maps rate-limit responses before falling back to checkStatus.
func checkResponse(resp *http.Response) error {
	limited := resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0")
	if limited {
		rl := &errors.RateLimitedError{}
		if s := resp.Header.Get("Retry-After"); s != "" {
			rl.RetryAfter, _ = strconv.Atoi(s)
		} else if s := resp.Header.Get("X-RateLimit-Reset"); s != "" {
			if reset, err := strconv.ParseInt(s, 10, 64); err == nil {
				rl.RetryAfter = max(int(time.Until(time.Unix(reset, 0)).Seconds()), 0)
			}
		}
		return fmt.Errorf("%w: %w", ErrNetwork, rl)
	}
	return checkStatus(resp.StatusCode)
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
