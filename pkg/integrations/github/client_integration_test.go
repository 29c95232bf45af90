//go:build integration

package github

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/pkgtrust/pkg/integrations"
)

func TestRepository_Integration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("GITHUB_TOKEN not set, skipping integration test")
	}

	client := NewClient(Config{Token: token})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := client.Repository(ctx, "golang", "go")
	if err != nil {
		t.Fatalf("Repository() error: %v", err)
	}
	if repo.Stars < 10000 {
		t.Errorf("golang/go stars = %d, expected a popular repository", repo.Stars)
	}

	_, err = client.Repository(ctx, "nonexistent-owner-12345", "nonexistent-repo")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Repository(nonexistent) error = %v, want ErrNotFound", err)
	}

	readme, err := client.Readme(ctx, "golang", "go")
	if err != nil {
		t.Fatalf("Readme() error: %v", err)
	}
	if readme == "" {
		t.Error("Readme() returned empty content")
	}
}
