package observability

import (
	"context"
	"testing"
	"time"
)

type recordingEvaluation struct {
	NoopEvaluationHooks
	metrics []string
}

func (r *recordingEvaluation) OnMetricComplete(_ context.Context, _, metric string, _ float64, _ time.Duration, _ error) {
	r.metrics = append(r.metrics, metric)
}

type countingCache struct {
	NoopCacheHooks
	hits int
}

func (c *countingCache) OnCacheHit(context.Context, string) { c.hits++ }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Evaluation().(NoopEvaluationHooks); !ok {
		t.Errorf("Evaluation() default = %T, want NoopEvaluationHooks", Evaluation())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() default = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() default = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestSetAndReset(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	rec := &recordingEvaluation{}
	SetEvaluationHooks(rec)
	Evaluation().OnMetricComplete(ctx, "https://github.com/a/b", "License", 1, time.Millisecond, nil)
	if len(rec.metrics) != 1 || rec.metrics[0] != "License" {
		t.Errorf("recorded metrics = %v, want [License]", rec.metrics)
	}

	cc := &countingCache{}
	SetCacheHooks(cc)
	Cache().OnCacheHit(ctx, "http")
	if cc.hits != 1 {
		t.Errorf("hits = %d, want 1", cc.hits)
	}

	// nil registrations are ignored
	SetEvaluationHooks(nil)
	if Evaluation() != EvaluationHooks(rec) {
		t.Error("SetEvaluationHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Evaluation().(NoopEvaluationHooks); !ok {
		t.Error("Reset() should restore no-op evaluation hooks")
	}
}
