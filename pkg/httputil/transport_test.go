package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/pkgtrust/pkg/observability"
)

type recordingHTTP struct {
	observability.NoopHTTPHooks
	requests  int
	responses []int
	errors    int
}

func (r *recordingHTTP) OnRequest(context.Context, string, string, string) { r.requests++ }
func (r *recordingHTTP) OnResponse(_ context.Context, _, _, _ string, code int, _ time.Duration) {
	r.responses = append(r.responses, code)
}
func (r *recordingHTTP) OnError(context.Context, string, string, string, error) { r.errors++ }

func TestLimiter(t *testing.T) {
	if Limiter(0) != nil {
		t.Error("Limiter(0) should be nil")
	}
	if Limiter(-1) != nil {
		t.Error("Limiter(-1) should be nil")
	}
	l := Limiter(2)
	if l == nil || l.Limit() != 2 || l.Burst() != 1 {
		t.Errorf("Limiter(2) = %v", l)
	}
}

func TestTransportReportsHooks(t *testing.T) {
	rec := &recordingHTTP{}
	observability.SetHTTPHooks(rec)
	defer observability.Reset()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	client := &http.Client{Transport: NewTransport(server.Client().Transport, nil)}
	resp, err := client.Get(server.URL + "/x")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	resp.Body.Close()

	if rec.requests != 1 {
		t.Errorf("requests = %d, want 1", rec.requests)
	}
	if len(rec.responses) != 1 || rec.responses[0] != http.StatusTeapot {
		t.Errorf("responses = %v, want [418]", rec.responses)
	}
}

func TestTransportCancelledWhileThrottled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	// One request every 10 minutes: the second call must block on the limiter.
	tr := NewTransport(server.Client().Transport, Limiter(1.0/600))
	client := &http.Client{Transport: tr}

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("first Get() error: %v", err)
	}
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if _, err := client.Do(req); err == nil {
		t.Error("throttled request should fail once its context expires")
	}
}
