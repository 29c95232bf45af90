package npm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/matzehuels/pkgtrust/pkg/errors"
	"github.com/matzehuels/pkgtrust/pkg/integrations"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/express":
			w.Write([]byte(`{"name":"express","repository":{"type":"git","url":"git+https://github.com/expressjs/express.git"}}`))
		case "/plain":
			w.Write([]byte(`{"name":"plain","repository":"https://github.com/owner/plain"}`))
		case "/norepo":
			w.Write([]byte(`{"name":"norepo"}`))
		case "/emptyurl":
			w.Write([]byte(`{"name":"emptyurl","repository":{"type":"git"}}`))
		case "/@types%2Fnode":
			w.Write([]byte(`{"name":"@types/node","repository":{"url":"https://github.com/DefinitelyTyped/DefinitelyTyped.git"}}`))
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestRepositoryURL(t *testing.T) {
	server := testServer(t)
	defer server.Close()
	c := NewClient(Config{BaseURL: server.URL})

	tests := []struct {
		pkg  string
		want string
	}{
		{"express", "https://github.com/expressjs/express"},
		{"/express", "https://github.com/expressjs/express"},
		{"plain", "https://github.com/owner/plain"},
		{"@types/node", "https://github.com/DefinitelyTyped/DefinitelyTyped"},
	}
	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			got, err := c.RepositoryURL(context.Background(), tt.pkg)
			if err != nil {
				t.Fatalf("RepositoryURL() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RepositoryURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepositoryURLMissing(t *testing.T) {
	server := testServer(t)
	defer server.Close()
	c := NewClient(Config{BaseURL: server.URL})

	for _, pkg := range []string{"norepo", "emptyurl"} {
		_, err := c.RepositoryURL(context.Background(), pkg)
		if !pkgerrors.Is(err, pkgerrors.ErrCodeRepositoryURLNotFound) {
			t.Errorf("RepositoryURL(%q) error = %v, want REPOSITORY_URL_NOT_FOUND", pkg, err)
		}
	}
}

func TestRepositoryURLTransportErrors(t *testing.T) {
	server := testServer(t)
	defer server.Close()
	c := NewClient(Config{BaseURL: server.URL})

	if _, err := c.RepositoryURL(context.Background(), "missing"); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("missing package error = %v, want ErrNotFound", err)
	}
	if _, err := c.RepositoryURL(context.Background(), "broken"); !errors.Is(err, integrations.ErrNetwork) {
		t.Errorf("broken registry error = %v, want ErrNetwork", err)
	}
}

func TestRepositoryURLInvalidName(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:0"})
	for _, pkg := range []string{"", "../etc/passwd"} {
		if _, err := c.RepositoryURL(context.Background(), pkg); !pkgerrors.Is(err, pkgerrors.ErrCodeInvalidInput) {
			t.Errorf("RepositoryURL(%q) error = %v, want INVALID_INPUT", pkg, err)
		}
	}
}

func TestExtractField(t *testing.T) {
	if got := extractField("https://x", "url"); got != "https://x" {
		t.Errorf("string field = %q", got)
	}
	if got := extractField(map[string]any{"url": "https://y"}, "url"); got != "https://y" {
		t.Errorf("object field = %q", got)
	}
	if got := extractField(map[string]any{"url": 3}, "url"); got != "" {
		t.Errorf("non-string field = %q", got)
	}
	if got := extractField(nil, "url"); got != "" {
		t.Errorf("nil field = %q", got)
	}
}
