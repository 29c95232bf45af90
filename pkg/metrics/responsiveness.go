package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgtrust/pkg/integrations/github"
	"github.com/matzehuels/pkgtrust/pkg/subject"
)

const (
	daysPerYear = 365
	day         = 24 * time.Hour

	issueWeight   = 0.4
	pullWeight    = 0.4
	recencyWeight = 0.2
)

// ActivitySource provides the repository activity Responsiveness reads.
type ActivitySource interface {
	Repository(ctx context.Context, owner, repo string) (*github.Repository, error)
	OpenIssues(ctx context.Context, owner, repo string) ([]github.Issue, error)
	OpenPulls(ctx context.Context, owner, repo string) ([]github.Issue, error)
	LatestCommitTime(ctx context.Context, owner, repo string) (time.Time, error)
}

// Responsiveness scores how actively maintainers respond.
type Responsiveness struct {
	source ActivitySource
	now    func() time.Time
	logger *log.Logger
}

// NewResponsiveness creates the metric. A nil now uses time.Now; a nil
// logger discards output.
func NewResponsiveness(source ActivitySource, now func() time.Time, logger *log.Logger) *Responsiveness {
	if now == nil {
		now = time.Now
	}
	return &Responsiveness{source: source, now: now, logger: orDiscard(logger)}
}

// Name implements Metric.
func (m *Responsiveness) Name() string { return NameResponsiveness }

// Compute implements Metric. Any collaborator failure scores 0.
func (m *Responsiveness) Compute(ctx context.Context, s subject.Subject) (float64, error) {
	score, err := m.compute(ctx, s)
	if err != nil {
		m.logger.Warn("responsiveness failed, scoring 0", "repo", s, "err", err)
		return 0, nil
	}
	return score, nil
}

func (m *Responsiveness) compute(ctx context.Context, s subject.Subject) (float64, error) {
	repo, err := m.source.Repository(ctx, s.Owner, s.Repo)
	if err != nil {
		return 0, err
	}
	issues, err := m.source.OpenIssues(ctx, s.Owner, s.Repo)
	if err != nil {
		return 0, err
	}
	pulls, err := m.source.OpenPulls(ctx, s.Owner, s.Repo)
	if err != nil {
		return 0, err
	}
	humanPulls := pulls[:0:0]
	for _, p := range pulls {
		if !p.IsBot() {
			humanPulls = append(humanPulls, p)
		}
	}

	// Commits are listed under the canonical name when the API reports one.
	owner, name := s.Owner, s.Repo
	if o, n, ok := strings.Cut(repo.FullName, "/"); ok && o != "" && n != "" {
		owner, name = o, n
	}
	last, err := m.source.LatestCommitTime(ctx, owner, name)
	if err != nil {
		return 0, err
	}

	now := m.now()
	issueScore := AgeScore(issues, now)
	pullScore := AgeScore(humanPulls, now)
	recency := RecencyScore(last, now)
	m.logger.Debug("responsiveness",
		"repo", s, "issues", len(issues), "pulls", len(humanPulls),
		"issue_score", issueScore, "pull_score", pullScore, "recency", recency)

	return clamp(issueWeight*issueScore + pullWeight*pullScore + recencyWeight*recency), nil
}

// AgeScore is max(1 - meanAgeDays/365, 0) over items, or 1 when empty.
func AgeScore(items []github.Issue, now time.Time) float64 {
	if len(items) == 0 {
		return 1
	}
	var totalDays float64
	for _, it := range items {
		totalDays += now.Sub(it.CreatedAt).Hours() / 24
	}
	mean := totalDays / float64(len(items))
	return max(1-mean/daysPerYear, 0)
}

// RecencyScore is max(1 - daysSince(last)/365, 0).
func RecencyScore(last, now time.Time) float64 {
	days := float64(now.Sub(last)) / float64(day)
	return max(1-days/daysPerYear, 0)
}
