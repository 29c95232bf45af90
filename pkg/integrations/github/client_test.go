package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/pkgtrust/pkg/integrations"
)

func testClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	return NewClient(Config{Token: token, BaseURL: baseURL})
}

func TestClient_Headers(t *testing.T) {
	var accept, auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Repository{})
	}))
	defer server.Close()

	c := testClient(t, server.URL, "secret")
	if _, err := c.Repository(context.Background(), "owner", "repo"); err != nil {
		t.Fatalf("Repository() error: %v", err)
	}
	if accept != "application/vnd.github.v3+json" {
		t.Errorf("Accept = %q", accept)
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", auth)
	}
}

func TestClient_NoTokenNoAuthorization(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Repository{})
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")
	if _, err := c.Repository(context.Background(), "owner", "repo"); err != nil {
		t.Fatalf("Repository() error: %v", err)
	}
	if auth != "" {
		t.Errorf("Authorization = %q, want empty", auth)
	}
}

func TestClient_Repository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"full_name":"owner/repo","updated_at":"2024-05-01T00:00:00Z","forks_count":1200,"open_issues_count":12,"stargazers_count":51000}`))
	}))
	defer server.Close()

	repo, err := testClient(t, server.URL, "").Repository(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("Repository() error: %v", err)
	}
	if repo.Stars != 51000 || repo.Forks != 1200 || repo.OpenIssues != 12 {
		t.Errorf("Repository() = %+v", repo)
	}
	if !repo.UpdatedAt.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("UpdatedAt = %v", repo.UpdatedAt)
	}
}

func TestClient_RepositoryNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testClient(t, server.URL, "").Repository(context.Background(), "owner", "missing")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Repository() error = %v, want ErrNotFound", err)
	}
}

func TestClient_Contributors(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		json.NewEncoder(w).Encode([]contributorResponse{
			{Login: "user1", Contributions: 10, Type: "User"},
			{Login: "dependabot[bot]", Contributions: 3, Type: "Bot"},
		})
	}))
	defer server.Close()

	got, err := testClient(t, server.URL, "").Contributors(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("Contributors() error: %v", err)
	}
	if query != "per_page=30" {
		t.Errorf("query = %q, want per_page=30", query)
	}
	if len(got) != 2 || got[0].Login != "user1" || got[1].Contributions != 3 {
		t.Errorf("Contributors() = %+v", got)
	}
}

func TestClient_OpenIssuesAndPulls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != "open" || r.URL.Query().Get("per_page") != "100" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		switch r.URL.Path {
		case "/repos/owner/repo/issues":
			w.Write([]byte(`[{"number":1,"created_at":"2024-01-01T00:00:00Z","user":{"login":"a","type":"User"}}]`))
		case "/repos/owner/repo/pulls":
			w.Write([]byte(`[{"number":2,"created_at":"2024-01-02T00:00:00Z","user":{"login":"renovate[bot]","type":"Bot"}}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")
	issues, err := c.OpenIssues(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("OpenIssues() error: %v", err)
	}
	if len(issues) != 1 || issues[0].IsBot() {
		t.Errorf("OpenIssues() = %+v", issues)
	}
	pulls, err := c.OpenPulls(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("OpenPulls() error: %v", err)
	}
	if len(pulls) != 1 || !pulls[0].IsBot() {
		t.Errorf("OpenPulls() = %+v", pulls)
	}
}

func TestClient_LatestCommitTime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/owner/repo/commits":
			w.Write([]byte(`[{"commit":{"committer":{"date":"2024-03-04T05:06:07Z"}}},{"commit":{"committer":{"date":"2020-01-01T00:00:00Z"}}}]`))
		case "/repos/owner/empty/commits":
			w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")
	got, err := c.LatestCommitTime(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("LatestCommitTime() error: %v", err)
	}
	if want := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC); !got.Equal(want) {
		t.Errorf("LatestCommitTime() = %v, want %v", got, want)
	}

	if _, err := c.LatestCommitTime(context.Background(), "owner", "empty"); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("empty history error = %v, want ErrNotFound", err)
	}
}

func TestClient_Readme(t *testing.T) {
	text := "# Title\n\nSee https://example.com\n"
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	// GitHub splits base64 content across lines.
	wrapped := encoded[:10] + "\n" + encoded[10:]

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/contents/README.md" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(apiContentResponse{
			Name: "README.md", Path: "README.md", Type: "file",
			Content: wrapped, Encoding: "base64",
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")
	got, err := c.Readme(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("Readme() error: %v", err)
	}
	if got != text {
		t.Errorf("Readme() = %q, want %q", got, text)
	}

	if _, err := c.Readme(context.Background(), "owner", "missing"); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("missing readme error = %v, want ErrNotFound", err)
	}
}

func TestClient_ReadmeBadEncoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(apiContentResponse{Type: "file", Content: "!!!not base64", Encoding: "base64"})
	}))
	defer server.Close()

	if _, err := testClient(t, server.URL, "").Readme(context.Background(), "owner", "repo"); err == nil {
		t.Error("Readme() should fail on undecodable content")
	}
}

func TestValidateRepoRef(t *testing.T) {
	tests := []struct {
		owner, repo string
		ok          bool
	}{
		{"lodash", "lodash", true},
		{"cloudinary", "cloudinary_npm", true},
		{"owner", "repo.js", true},
		{"-bad", "repo", false},
		{"owner", "..", false},
		{"owner", "a/b", false},
		{"", "repo", false},
		{"owner", "", false},
	}
	for _, tt := range tests {
		err := ValidateRepoRef(tt.owner, tt.repo)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateRepoRef(%q, %q) error = %v, want ok=%v", tt.owner, tt.repo, err, tt.ok)
		}
		if err != nil && !errors.Is(err, integrations.ErrNotFound) {
			t.Errorf("ValidateRepoRef(%q, %q) error should wrap ErrNotFound", tt.owner, tt.repo)
		}
	}
}

func TestClient_InvalidRefSkipsRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := testClient(t, server.URL, "").Contributors(context.Background(), "..", "..")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Contributors() error = %v, want ErrNotFound", err)
	}
	if called {
		t.Error("invalid reference should not reach the API")
	}
}
