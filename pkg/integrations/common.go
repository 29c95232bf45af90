package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/pkgtrust/pkg/httputil"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")
)

// Contributor represents a repository contributor with their contribution count.
type Contributor struct {
	Login         string `json:"login"`         // GitHub username
	Contributions int    `json:"contributions"` // Number of commits
}

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout, Transport: httputil.NewTransport(nil, nil)}
}

// StripRepoURL removes a leading "git+" and a trailing ".git" and nothing
// else. This is the cleaning applied to registry repository links.
func StripRepoURL(raw string) string {
	return strings.TrimSuffix(strings.TrimPrefix(raw, "git+"), ".git")
}

// PathEscape escapes a string for use as a single URL path segment.
// Scoped npm names keep their "@" and have the "/" escaped.
func PathEscape(s string) string { return url.PathEscape(s) }
