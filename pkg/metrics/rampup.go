package metrics

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgtrust/pkg/subject"
)

var docLinkPattern = regexp.MustCompile(`https?://[^\s]+`)

// minReadmeLines is the length below which a README counts as thin.
const minReadmeLines = 50

// ReadmeSource fetches a repository's README.md.
type ReadmeSource interface {
	Readme(ctx context.Context, owner, repo string) (string, error)
}

// RampUp scores how easy it is for a newcomer to get started.
type RampUp struct {
	source ReadmeSource
	logger *log.Logger
}

// NewRampUp creates the metric. A nil logger discards output.
func NewRampUp(source ReadmeSource, logger *log.Logger) *RampUp {
	return &RampUp{source: source, logger: orDiscard(logger)}
}

// Name implements Metric.
func (m *RampUp) Name() string { return NameRampUp }

// Compute implements Metric. A README that cannot be fetched or decoded is
// treated as absent; only cancellation is returned as an error.
func (m *RampUp) Compute(ctx context.Context, s subject.Subject) (float64, error) {
	readme, err := m.source.Readme(ctx, s.Owner, s.Repo)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}
		m.logger.Debug("readme unavailable", "repo", s, "err", err)
		readme = ""
	}
	return RampUpScore(readme), nil
}

// RampUpScore scores README content. The empty string means no README.
//
//	+0.5 README present
//	-0.4 fewer than 50 lines
//	+0.5 contains an http(s) link
func RampUpScore(readme string) float64 {
	if readme == "" {
		return 0
	}
	score := 0.5
	if len(strings.Split(readme, "\n")) < minReadmeLines {
		score -= 0.4
	}
	if docLinkPattern.MatchString(readme) {
		score += 0.5
	}
	return clamp(score)
}
