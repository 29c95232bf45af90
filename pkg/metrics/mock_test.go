package metrics

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/matzehuels/pkgtrust/pkg/integrations"
	"github.com/matzehuels/pkgtrust/pkg/integrations/github"
)

type mockHost struct {
	mock.Mock
}

func (m *mockHost) Contributors(ctx context.Context, owner, repo string) ([]integrations.Contributor, error) {
	args := m.Called(ctx, owner, repo)
	c, _ := args.Get(0).([]integrations.Contributor)
	return c, args.Error(1)
}

func (m *mockHost) Repository(ctx context.Context, owner, repo string) (*github.Repository, error) {
	args := m.Called(ctx, owner, repo)
	r, _ := args.Get(0).(*github.Repository)
	return r, args.Error(1)
}

func (m *mockHost) OpenIssues(ctx context.Context, owner, repo string) ([]github.Issue, error) {
	args := m.Called(ctx, owner, repo)
	i, _ := args.Get(0).([]github.Issue)
	return i, args.Error(1)
}

func (m *mockHost) OpenPulls(ctx context.Context, owner, repo string) ([]github.Issue, error) {
	args := m.Called(ctx, owner, repo)
	i, _ := args.Get(0).([]github.Issue)
	return i, args.Error(1)
}

func (m *mockHost) LatestCommitTime(ctx context.Context, owner, repo string) (time.Time, error) {
	args := m.Called(ctx, owner, repo)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *mockHost) Readme(ctx context.Context, owner, repo string) (string, error) {
	args := m.Called(ctx, owner, repo)
	return args.String(0), args.Error(1)
}

var _ HostSource = (*mockHost)(nil)

// fakeGit writes a fixed set of files instead of cloning.
type fakeGit struct {
	files   map[string]string
	err     error
	initErr error
	inits   int
	dests   []string
}

func (g *fakeGit) Materialize(_ context.Context, _, dest string) error {
	g.dests = append(g.dests, dest)
	if g.err != nil {
		return g.err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for name, content := range g.files {
		if err := os.WriteFile(filepath.Join(dest, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (g *fakeGit) InitEmpty(_ context.Context, dest string) error {
	g.inits++
	if g.initErr != nil {
		return g.initErr
	}
	return os.MkdirAll(filepath.Join(dest, ".git"), 0o755)
}
