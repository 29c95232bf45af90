// Package vcs materialises remote repositories into local working trees.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client is the version-control collaborator used by the file-scanning
// metrics.
type Client interface {
	// Materialize makes a shallow copy of the repository at url in dest.
	Materialize(ctx context.Context, url, dest string) error

	// InitEmpty creates an empty repository in dest with branch "main".
	InitEmpty(ctx context.Context, dest string) error
}

// LocalGitClient implements Client by executing the local git binary.
type LocalGitClient struct {
	// Binary is the git executable, "git" when empty.
	Binary string
}

var _ Client = (*LocalGitClient)(nil)

// NewLocalGitClient creates a client that runs git from PATH.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Materialize runs "git clone --depth 1 <url> <dest>".
//
// When dest already holds a repository created by InitEmpty, cloning into it
// is not possible; the newest commit is fetched and checked out onto "main"
// instead, which leaves the same tree on disk.
func (c *LocalGitClient) Materialize(ctx context.Context, url, dest string) error {
	if isRepo(dest) {
		if _, err := c.run(ctx, "-C", dest, "fetch", "--depth", "1", url, "HEAD"); err != nil {
			return err
		}
		_, err := c.run(ctx, "-C", dest, "checkout", "-q", "-B", "main", "FETCH_HEAD")
		return err
	}
	_, err := c.run(ctx, "clone", "--depth", "1", "-q", url, dest)
	return err
}

// InitEmpty runs "git init --initial-branch main <dest>".
func (c *LocalGitClient) InitEmpty(ctx context.Context, dest string) error {
	_, err := c.run(ctx, "init", "-q", "--initial-branch", "main", dest)
	return err
}

func (c *LocalGitClient) run(ctx context.Context, args ...string) ([]byte, error) {
	bin := c.Binary
	if bin == "" {
		bin = "git"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	// Never block on a credential prompt for private or missing repositories.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			errMsg := strings.TrimSpace(string(exitErr.Stderr))
			return nil, fmt.Errorf("git command '%s' failed: %s: %w", strings.Join(args, " "), errMsg, err)
		}
		return nil, fmt.Errorf("could not execute git command (is git installed and in PATH?): %w", err)
	}
	return out, nil
}

func isRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}
