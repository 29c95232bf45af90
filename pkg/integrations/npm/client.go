package npm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/pkgtrust/pkg/cache"
	pkgerrors "github.com/matzehuels/pkgtrust/pkg/errors"
	"github.com/matzehuels/pkgtrust/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// Client reads package manifests from the npm registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// Config configures [NewClient].
type Config struct {
	BaseURL string        // defaults to DefaultBaseURL
	Cache   cache.Cache   // nil disables caching
	TTL     time.Duration // cache entry lifetime
	Options []integrations.Option
}

// NewClient creates an npm registry client.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(cfg.Cache, "npm", cfg.TTL, nil, cfg.Options...),
		baseURL: strings.TrimSuffix(base, "/"),
	}
}

// RepositoryURL returns the manifest's top-level repository link with a
// leading "git+" and trailing ".git" removed.
//
// The repository field may be a plain string or an object with a url.
// A manifest without one fails with REPOSITORY_URL_NOT_FOUND. Transport
// errors are returned wrapped, not classified.
func (c *Client) RepositoryURL(ctx context.Context, pkg string) (string, error) {
	pkg = strings.Trim(strings.TrimSpace(pkg), "/")
	if err := pkgerrors.ValidatePackageName(pkg); err != nil {
		return "", err
	}

	var data registryResponse
	if err := c.Get(ctx, c.baseURL+"/"+integrations.PathEscape(pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return "", fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return "", fmt.Errorf("npm package %s: %w", pkg, err)
	}

	raw := extractField(data.Repository, "url")
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.ErrCodeRepositoryURLNotFound, "npm package %s has no repository url", pkg)
	}
	return integrations.StripRepoURL(raw), nil
}

func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}

type registryResponse struct {
	Name       string `json:"name"`
	Repository any    `json:"repository"`
}
