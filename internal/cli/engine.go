package cli

import (
	"context"
	"io"

	"github.com/matzehuels/pkgtrust/pkg/cache"
	"github.com/matzehuels/pkgtrust/pkg/httputil"
	"github.com/matzehuels/pkgtrust/pkg/integrations"
	"github.com/matzehuels/pkgtrust/pkg/integrations/github"
	"github.com/matzehuels/pkgtrust/pkg/integrations/npm"
	"github.com/matzehuels/pkgtrust/pkg/metrics"
	"github.com/matzehuels/pkgtrust/pkg/pipeline"
	"github.com/matzehuels/pkgtrust/pkg/profile"
	"github.com/matzehuels/pkgtrust/pkg/resolve"
	"github.com/matzehuels/pkgtrust/pkg/vcs"
)

// engine is a fully wired runner and the resources it holds.
type engine struct {
	runner *pipeline.Runner
	cache  cache.Cache
}

// Close releases the response cache.
func (e *engine) Close() error {
	return e.cache.Close()
}

// newEngine wires the collaborators, metrics and runner from settings.
// Records are echoed to echo.
func (c *CLI) newEngine(ctx context.Context, echo io.Writer) (*engine, error) {
	s := c.settings
	logger := loggerFromContext(ctx)
	prof, err := profile.Load(s.Profile)
	if err != nil {
		return nil, err
	}

	cc, err := c.openCache(ctx)
	if err != nil {
		return nil, err
	}

	var opts []integrations.Option
	if limiter := httputil.Limiter(s.Rate); limiter != nil {
		opts = append(opts, integrations.WithLimiter(limiter))
	}
	if s.GitHubToken == "" {
		logger.Warn("GITHUB_TOKEN not set, using unauthenticated GitHub API (60 requests/hour)")
	}
	host := github.NewClient(github.Config{Token: s.GitHubToken, Cache: cc, TTL: s.CacheTTL, Options: opts})
	registry := npm.NewClient(npm.Config{Cache: cc, TTL: s.CacheTTL, Options: opts})

	set := metrics.Standard(metrics.Deps{
		Host:              host,
		Git:               vcs.NewLocalGitClient(),
		Workspace:         vcs.NewWorkspace(s.WorkDir),
		Licenses:          prof.Licenses,
		ActivityReference: prof.ActivityReference,
		Logger:            logger,
	})

	runner := pipeline.NewRunner(pipeline.Options{
		Resolver:       resolve.New(registry, logger),
		Metrics:        set,
		Weights:        prof.Weights,
		LatencyCeiling: prof.LatencyCeiling,
		Concurrent:     s.Concurrent,
		Echo:           echo,
		Logger:         logger,
	})
	return &engine{runner: runner, cache: cc}, nil
}
