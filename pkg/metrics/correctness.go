package metrics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgtrust/pkg/integrations/github"
	"github.com/matzehuels/pkgtrust/pkg/subject"
	"github.com/matzehuels/pkgtrust/pkg/vcs"
)

// DefaultActivityReference is the date after which a repository update
// counts as recent activity.
var DefaultActivityReference = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

var npmDownloadsBadge = regexp.MustCompile(`\[!\[.*NPM Downloads.*\]\[npm-downloads\]\]\s?\[npmtrends-url\]`)

// RepositorySource fetches repository metadata.
type RepositorySource interface {
	Repository(ctx context.Context, owner, repo string) (*github.Repository, error)
}

// Correctness scores engineering hygiene from the working tree and the
// repository's popularity and activity.
type Correctness struct {
	git       vcs.Client
	workspace *vcs.Workspace
	source    RepositorySource
	reference time.Time
	logger    *log.Logger
}

// NewCorrectness creates the metric. A zero reference uses
// DefaultActivityReference.
func NewCorrectness(git vcs.Client, workspace *vcs.Workspace, source RepositorySource, reference time.Time, logger *log.Logger) *Correctness {
	if reference.IsZero() {
		reference = DefaultActivityReference
	}
	if workspace == nil {
		workspace = vcs.NewWorkspace("")
	}
	return &Correctness{git: git, workspace: workspace, source: source, reference: reference, logger: orDiscard(logger)}
}

// Name implements Metric.
func (m *Correctness) Name() string { return NameCorrectness }

// Compute implements Metric. Any failure, including the clone, scores 0.
// The working tree is removed afterwards.
func (m *Correctness) Compute(ctx context.Context, s subject.Subject) (float64, error) {
	dir := m.workspace.NewDir()
	defer func() { _ = m.workspace.Remove(dir) }()

	score, err := m.compute(ctx, s, dir)
	if err != nil {
		m.logger.Warn("correctness failed, scoring 0", "repo", s, "err", err)
		return 0, nil
	}
	return score, nil
}

func (m *Correctness) compute(ctx context.Context, s subject.Subject, dir string) (float64, error) {
	if err := m.git.Materialize(ctx, s.URL, dir); err != nil {
		return 0, err
	}

	manifestPath := filepath.Join(dir, "package.json")
	readmePath := filepath.Join(dir, "README.md")
	if !exists(manifestPath) && !exists(readmePath) {
		m.logger.Debug("correctness: neither package.json nor README.md exists", "repo", s)
		return 0, nil
	}

	manifest, err := ManifestScore(manifestPath)
	if err != nil {
		return 0, err
	}
	readme, err := ReadmeBadgeScore(readmePath)
	if err != nil {
		return 0, err
	}
	repo, err := m.source.Repository(ctx, s.Owner, s.Repo)
	if err != nil {
		return 0, err
	}
	activity := ActivityScore(repo, m.reference)

	m.logger.Debug("correctness", "repo", s, "manifest", manifest, "readme", readme, "activity", activity)
	return min(manifest+readme+activity, 1.0), nil
}

// ManifestScore awards points for package.json fields. A missing manifest
// scores 0; malformed JSON is an error. A field counts when it is present and
// not null, false, 0 or "". A document or scripts value that is not an
// object contributes no points.
//
//	+0.025 devDependencies   +0.025 dependencies
//	+0.025 scripts.build     +0.05  scripts.test
//	+0.025 scripts.lint      +0.025 scripts.prettier
func ManifestScore(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if !json.Valid(data) {
		return 0, fmt.Errorf("parse %s: invalid JSON", filepath.Base(path))
	}

	manifest := jsonObject(data)
	scripts := jsonObject(manifest["scripts"])

	var score float64
	if truthy(manifest["devDependencies"]) {
		score += 0.025
	}
	if truthy(manifest["dependencies"]) {
		score += 0.025
	}
	if truthy(scripts["build"]) {
		score += 0.025
	}
	if truthy(scripts["test"]) {
		score += 0.05
	}
	if truthy(scripts["lint"]) {
		score += 0.025
	}
	if truthy(scripts["prettier"]) {
		score += 0.025
	}
	return score, nil
}

// jsonObject returns the members of raw, or nil when raw is not an object.
func jsonObject(raw json.RawMessage) map[string]json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// ReadmeBadgeScore awards 0.05 for README.md and 0.3 more for an npm
// downloads badge.
func ReadmeBadgeScore(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	score := 0.05
	if npmDownloadsBadge.Match(data) {
		score += 0.3
	}
	return score, nil
}

// ActivityScore awards points for recent updates and popularity.
//
//	+0.15 updated after reference   +0.2 more than 1000 forks
//	+0.1  at most 50 open issues    +0.2 at least 10k stars
//	+0.4  at least 50k stars (on top of the 10k award)
func ActivityScore(repo *github.Repository, reference time.Time) float64 {
	var score float64
	if repo.UpdatedAt.After(reference) {
		score += 0.15
	}
	if repo.Forks > 1000 {
		score += 0.2
	}
	if repo.OpenIssues <= 50 {
		score += 0.1
	}
	if repo.Stars >= 10_000 {
		score += 0.2
	}
	if repo.Stars >= 50_000 {
		score += 0.4
	}
	return score
}

// truthy reports whether a JSON value is present and not null, false, 0 or "".
func truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", `""`:
		return false
	}
	var n float64
	if json.Unmarshal(v, &n) == nil {
		return n != 0
	}
	return true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
