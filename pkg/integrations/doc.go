// Package integrations provides HTTP clients for the remote APIs pkgtrust
// reads from.
//
// # Overview
//
// Each API has its own subpackage:
//
//   - [github]: GitHub REST API (repository, contributors, issues, pulls, commits, readme)
//   - [npm]: npm registry (package manifest repository links)
//
// # Client Pattern
//
// Clients wrap the shared [Client], which handles:
//   - HTTP requests with optional throttling (no retries)
//   - Response caching through any [cache.Cache] backend
//   - Mapping of status codes onto [ErrNotFound] and [ErrNetwork]
//
//	c := integrations.NewClient(backend, "github", time.Hour, headers,
//	    integrations.WithLimiter(httputil.Limiter(5)))
//	var v map[string]any
//	err := c.Get(ctx, "https://api.github.com/repos/a/b", &v)
//
// [github]: github.com/matzehuels/pkgtrust/pkg/integrations/github
// [npm]: github.com/matzehuels/pkgtrust/pkg/integrations/npm
// [cache.Cache]: github.com/matzehuels/pkgtrust/pkg/cache.Cache
package integrations
