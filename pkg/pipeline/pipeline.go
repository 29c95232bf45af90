// Package pipeline evaluates batches of package references.
//
// Every input line goes through the same stages:
//
//  1. Resolve: map the reference to a canonical repository URL
//  2. Measure: run every metric against the repository, timing each one
//  3. Compose: normalise latencies and combine scores into the NetScore
//  4. Export: append one JSON record to the export file and echo it
//
// The batch is fail-fast: the first error from any stage aborts it, and the
// records already written are kept.
//
// # Usage
//
//	runner := pipeline.NewRunner(pipeline.Options{
//	    Resolver: resolve.New(npmClient, logger),
//	    Metrics:  metrics.Standard(deps),
//	    Echo:     os.Stdout,
//	    Logger:   logger,
//	})
//	n, err := runner.Run(ctx, "urls.txt", "scores.ndjson")
//
// A single reference can be scored without a batch:
//
//	rec, err := runner.Evaluate(ctx, "https://www.npmjs.com/package/express")
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgtrust/pkg/metrics"
	"github.com/matzehuels/pkgtrust/pkg/score"
)

// ComposeOrder is the metric order the composite scorer consumes.
var ComposeOrder = []string{
	metrics.NameBusFactor,
	metrics.NameResponsiveness,
	metrics.NameRampUp,
	metrics.NameCorrectness,
	metrics.NameLicense,
}

// Resolver maps an input line to a canonical repository URL.
type Resolver interface {
	Resolve(ctx context.Context, line string) (string, error)
}

// Options configures a Runner.
type Options struct {
	Resolver Resolver

	// Metrics run in this order for every line.
	Metrics []metrics.Metric

	// Weights are passed to the composite scorer; nil uses score.DefaultWeights.
	Weights []float64

	// LatencyCeiling is the elapsed time that normalises to 1; zero uses
	// score.DefaultLatencyCeiling.
	LatencyCeiling time.Duration

	// Concurrent runs the metrics of one line in parallel. Output order is
	// unaffected.
	Concurrent bool

	// Echo receives a copy of every exported line; nil disables echoing.
	Echo io.Writer

	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Weights == nil {
		o.Weights = score.DefaultWeights
	}
	if o.LatencyCeiling <= 0 {
		o.LatencyCeiling = score.DefaultLatencyCeiling
	}
	if o.Echo == nil {
		o.Echo = io.Discard
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}
