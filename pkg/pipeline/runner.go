package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/matzehuels/pkgtrust/pkg/errors"
	"github.com/matzehuels/pkgtrust/pkg/metrics"
	"github.com/matzehuels/pkgtrust/pkg/observability"
	"github.com/matzehuels/pkgtrust/pkg/score"
	"github.com/matzehuels/pkgtrust/pkg/subject"
)

// Runner evaluates references and streams records to an export.
//
// A Runner holds no per-batch state; Evaluate may be called concurrently.
type Runner struct {
	opts Options
}

// NewRunner creates a runner. Unset options take their defaults.
func NewRunner(opts Options) *Runner {
	opts.setDefaults()
	return &Runner{opts: opts}
}

// Run evaluates every line of inputPath and writes one record per line to
// outputPath, which is truncated first. It returns the number of records
// written. The first error aborts the batch.
func (r *Runner) Run(ctx context.Context, inputPath, outputPath string) (int, error) {
	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("create export: %w", err)
	}
	defer out.Close()

	in, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	n, err := r.Stream(ctx, in, NewSink(out, r.opts.Echo))
	if err != nil {
		return n, err
	}
	return n, out.Sync()
}

// Stream evaluates each newline-delimited reference from in, in order, and
// writes its record to sink.
func (r *Runner) Stream(ctx context.Context, in io.Reader, sink *Sink) (int, error) {
	br := bufio.NewReader(in)
	written := 0
	for lineNo := 1; ; lineNo++ {
		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return written, fmt.Errorf("read input: %w", readErr)
		}
		// A trailing newline does not start another line.
		if line == "" && errors.Is(readErr, io.EOF) {
			return written, nil
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}

		rec, err := r.Evaluate(ctx, line)
		if err != nil {
			return written, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := sink.Write(rec); err != nil {
			return written, err
		}
		written++

		if readErr != nil {
			return written, nil
		}
	}
}

// Evaluate scores one reference.
func (r *Runner) Evaluate(ctx context.Context, reference string) (Record, error) {
	hooks := observability.Evaluation()
	start := time.Now()
	reference = strings.TrimSpace(reference)
	hooks.OnEvaluateStart(ctx, reference)

	rec, err := r.evaluate(ctx, reference)
	target := rec.URL
	if target == "" {
		target = reference
	}
	hooks.OnEvaluateComplete(ctx, target, rec.NetScore, time.Since(start), err)
	if err != nil {
		return Record{}, err
	}
	r.opts.Logger.Info("evaluated", "url", rec.URL, "net_score", rec.NetScore, "duration", time.Since(start))
	return rec, nil
}

func (r *Runner) evaluate(ctx context.Context, reference string) (Record, error) {
	url, err := r.opts.Resolver.Resolve(ctx, reference)
	if err != nil {
		return Record{}, err
	}
	s, err := subject.Parse(url)
	if err != nil {
		return Record{}, err
	}

	results, err := r.measure(ctx, s)
	if err != nil {
		return Record{URL: url}, err
	}

	byName := make(map[string]metricResult, len(results))
	for _, res := range results {
		byName[res.Name] = metricResult{
			score:   res.Score,
			latency: score.NormalizeLatency(res.Elapsed.Seconds(), r.opts.LatencyCeiling),
		}
	}

	var scores, latencies []float64
	var missing []string
	for _, name := range ComposeOrder {
		res, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		scores = append(scores, res.score)
		latencies = append(latencies, res.latency)
	}
	if len(missing) > 0 {
		return Record{URL: url}, pkgerrors.New(pkgerrors.ErrCodeArityMismatch,
			"composite needs %d metrics, missing %s", len(ComposeOrder), strings.Join(missing, ", "))
	}
	composite, err := score.Compose(url, scores, r.opts.Weights, latencies)
	if err != nil {
		return Record{URL: url}, err
	}
	return newRecord(composite, byName, r.opts.LatencyCeiling), nil
}

// measure runs every metric, sequentially or in parallel, and returns the
// results in metric order.
func (r *Runner) measure(ctx context.Context, s subject.Subject) ([]metrics.Result, error) {
	results := make([]metrics.Result, len(r.opts.Metrics))
	if !r.opts.Concurrent {
		for i, m := range r.opts.Metrics {
			res, err := r.measureOne(ctx, m, s)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range r.opts.Metrics {
		g.Go(func() error {
			res, err := r.measureOne(gctx, m, s)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) measureOne(ctx context.Context, m metrics.Metric, s subject.Subject) (metrics.Result, error) {
	hooks := observability.Evaluation()
	hooks.OnMetricStart(ctx, s.URL, m.Name())

	res, err := metrics.Measure(ctx, m, s)
	hooks.OnMetricComplete(ctx, s.URL, m.Name(), res.Score, res.Elapsed, err)
	if err != nil {
		return res, fmt.Errorf("%s: %w", m.Name(), err)
	}
	r.opts.Logger.Debug("metric", "url", s.URL, "metric", m.Name(), "score", res.Score, "duration", res.Elapsed)
	return res, nil
}
