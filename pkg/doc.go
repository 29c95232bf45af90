// Package pkg provides the core libraries for pkgtrust package evaluation.
//
// # Overview
//
// pkgtrust reads a list of package references, one per line, and scores each
// referenced repository on five trust metrics. The weighted composite of
// those scores is the NetScore. One JSON record per package is written to an
// NDJSON export and to standard output.
//
// # Architecture
//
// The data flow for one input line:
//
//	GitHub URL or npm package URL
//	         ↓
//	    [resolve] package (npm manifest → repository URL)
//	         ↓
//	    [subject] package (canonical URL → owner/repository)
//	         ↓
//	    [metrics] package (BusFactor, ResponsiveMaintainer, License, RampUp, Correctness)
//	         ↓
//	    [score] package (latency normalization + weighted composite)
//	         ↓
//	    [pipeline] package (record assembly + NDJSON sink)
//
// # Quick Start
//
// Wire the collaborators and evaluate one reference:
//
//	host := github.NewClient(github.Config{Token: os.Getenv("GITHUB_TOKEN")})
//	registry := npm.NewClient(npm.Config{})
//
//	runner := pipeline.NewRunner(pipeline.Options{
//	    Resolver: resolve.New(registry, nil),
//	    Metrics: metrics.Standard(metrics.Deps{
//	        Host:      host,
//	        Git:       vcs.NewLocalGitClient(),
//	        Workspace: vcs.NewWorkspace(""),
//	    }),
//	})
//	rec, err := runner.Evaluate(ctx, "https://www.npmjs.com/package/express")
//
// # Main Packages
//
// ## Evaluation
//
// [metrics] - The five metrics. Each returns a score in [0, 1] and the wall
// time it took. BusFactor propagates errors; the others degrade to 0.
//
// [score] - Latency normalization and the positional weighted composite.
//
// [pipeline] - The batch runner: per-line evaluation, fail-fast streaming,
// NDJSON export with standard-output mirroring.
//
// [profile] - TOML scoring profiles (allowed licenses, weights, latency
// ceiling, activity reference date).
//
// ## Inputs
//
// [resolve] - Classifies input lines and resolves npm packages to their
// repository URL.
//
// [subject] - Parses canonical repository URLs into owner and name.
//
// ## External Integrations
//
// [integrations] - HTTP clients for the GitHub REST API and the npm registry,
// sharing retry, rate limiting and response caching.
//
// [vcs] - Local git materialization of repositories into scratch
// directories.
//
// ## Infrastructure
//
// [cache] - Response cache backends: none, file, SQLite, MySQL, Postgres,
// Redis and MongoDB.
//
// [observability] - Hook interfaces for HTTP, cache and evaluation events.
//
// [errors] - Structured error codes. The codes that abort a batch are
// INVALID_REFERENCE_KIND, REPOSITORY_URL_NOT_FOUND, MALFORMED_URL and
// ARITY_MISMATCH.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/metrics/...            # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include integration tests
//
// [metrics]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/metrics
// [score]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/score
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/pipeline
// [profile]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/profile
// [resolve]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/resolve
// [subject]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/subject
// [integrations]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/integrations
// [vcs]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/vcs
// [cache]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pkgtrust/pkg/errors
package pkg
