package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/pkgtrust/pkg/cache"
	"github.com/matzehuels/pkgtrust/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// Client provides access to the GitHub API for repository signals.
// It handles HTTP requests with caching, throttling, and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// Config configures [NewClient].
type Config struct {
	Token   string        // optional bearer credential
	BaseURL string        // defaults to DefaultBaseURL
	Cache   cache.Cache   // nil disables caching
	TTL     time.Duration // cache entry lifetime
	Options []integrations.Option
}

// NewClient creates a GitHub API client.
// An empty token makes unauthenticated requests (lower rate limits).
func NewClient(cfg Config) *Client {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if cfg.Token != "" {
		headers["Authorization"] = "Bearer " + cfg.Token
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	opts := append([]integrations.Option{
		integrations.WithKeyer(cache.NewScopedKeyer(nil, cache.CredentialScope(cfg.Token))),
	}, cfg.Options...)

	return &Client{
		Client:  integrations.NewClient(cfg.Cache, "github", cfg.TTL, headers, opts...),
		baseURL: strings.TrimSuffix(base, "/"),
	}
}

func (c *Client) repoURL(owner, repo, suffix string) (string, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/repos/%s/%s%s", c.baseURL, owner, repo, suffix), nil
}

func (c *Client) get(ctx context.Context, owner, repo, suffix string, v any) error {
	url, err := c.repoURL(owner, repo, suffix)
	if err != nil {
		return err
	}
	if err := c.Get(ctx, url, v); err != nil {
		return fmt.Errorf("github %s/%s%s: %w", owner, repo, suffix, err)
	}
	return nil
}

// Repository fetches repository metadata.
func (c *Client) Repository(ctx context.Context, owner, repo string) (*Repository, error) {
	var data Repository
	if err := c.get(ctx, owner, repo, "", &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Contributors fetches the first page of up to 30 contributors, in API order.
// Bot accounts are not filtered.
func (c *Client) Contributors(ctx context.Context, owner, repo string) ([]integrations.Contributor, error) {
	var data []contributorResponse
	if err := c.get(ctx, owner, repo, "/contributors?per_page=30", &data); err != nil {
		return nil, err
	}
	result := make([]integrations.Contributor, 0, len(data))
	for _, cr := range data {
		result = append(result, integrations.Contributor{
			Login:         cr.Login,
			Contributions: cr.Contributions,
		})
	}
	return result, nil
}

// OpenIssues fetches up to 100 open issues.
//
// The issues endpoint also lists pull requests; they are returned as is.
func (c *Client) OpenIssues(ctx context.Context, owner, repo string) ([]Issue, error) {
	var data []Issue
	if err := c.get(ctx, owner, repo, "/issues?state=open&per_page=100", &data); err != nil {
		return nil, err
	}
	return data, nil
}

// OpenPulls fetches up to 100 open pull requests.
func (c *Client) OpenPulls(ctx context.Context, owner, repo string) ([]Issue, error) {
	var data []Issue
	if err := c.get(ctx, owner, repo, "/pulls?state=open&per_page=100", &data); err != nil {
		return nil, err
	}
	return data, nil
}

// LatestCommitTime returns the committer date of the newest commit on the
// default branch.
func (c *Client) LatestCommitTime(ctx context.Context, owner, repo string) (time.Time, error) {
	var data []commitResponse
	if err := c.get(ctx, owner, repo, "/commits", &data); err != nil {
		return time.Time{}, err
	}
	if len(data) == 0 {
		return time.Time{}, fmt.Errorf("%w: github %s/%s has no commits", integrations.ErrNotFound, owner, repo)
	}
	return data[0].Commit.Committer.Date, nil
}

// Readme fetches README.md from the repository root through the contents API
// and decodes it.
func (c *Client) Readme(ctx context.Context, owner, repo string) (string, error) {
	return c.FileContent(ctx, owner, repo, "README.md")
}

// FileContent fetches a file through the contents API and decodes it.
func (c *Client) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	var data apiContentResponse
	if err := c.get(ctx, owner, repo, "/contents/"+path, &data); err != nil {
		return "", err
	}
	if data.Type != "" && data.Type != "file" {
		return "", fmt.Errorf("github %s/%s/%s: not a file (%s)", owner, repo, path, data.Type)
	}
	if data.Encoding != "" && data.Encoding != "base64" {
		return data.Content, nil
	}
	// GitHub wraps base64 content at 60 columns.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(data.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return string(decoded), nil
}
