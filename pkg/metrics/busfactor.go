package metrics

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgtrust/pkg/integrations"
	"github.com/matzehuels/pkgtrust/pkg/subject"
)

const (
	// criticalRatio ends the critical group at the first contributor with at
	// least this many times the commits of the next one.
	criticalRatio = 3.8
	// busShare is the fraction of the critical group's commits that the
	// "bus" has to cover.
	busShare = 0.6
)

// ContributorSource lists a repository's contributors.
type ContributorSource interface {
	Contributors(ctx context.Context, owner, repo string) ([]integrations.Contributor, error)
}

// BusFactor scores how many people the project depends on.
type BusFactor struct {
	source ContributorSource
	logger *log.Logger
}

// NewBusFactor creates the metric. A nil logger discards output.
func NewBusFactor(source ContributorSource, logger *log.Logger) *BusFactor {
	return &BusFactor{source: source, logger: orDiscard(logger)}
}

// Name implements Metric.
func (m *BusFactor) Name() string { return NameBusFactor }

// Compute implements Metric. Fetch errors are returned.
func (m *BusFactor) Compute(ctx context.Context, s subject.Subject) (float64, error) {
	contributors, err := m.source.Contributors(ctx, s.Owner, s.Repo)
	if err != nil {
		return 0, fmt.Errorf("bus factor %s: %w", s, err)
	}
	m.logger.Debug("fetched contributors", "repo", s, "count", len(contributors))
	return BusFactorScore(contributors), nil
}

// BusFactorScore computes 1 - people/critical over contributors.
//
// Contributors are sorted by contribution count, descending. The critical
// group runs from the top down to the first contributor whose count is at
// least 3.8 times the next one's (inclusive), or the whole list. "people" is
// how many top contributors it takes to reach 60% of the critical group's
// total. Zero or one contributor scores 0.
func BusFactorScore(contributors []integrations.Contributor) float64 {
	if len(contributors) <= 1 {
		return 0
	}
	sorted := make([]integrations.Contributor, len(contributors))
	copy(sorted, contributors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Contributions > sorted[j].Contributions
	})

	var total float64
	critical := 0
	for i, curr := range sorted {
		total += float64(curr.Contributions)
		critical++
		if i+1 < len(sorted) {
			// A zero "next" gives +Inf, which ends the group; 0/0 is NaN and does not.
			ratio := float64(curr.Contributions) / float64(sorted[i+1].Contributions)
			if ratio >= criticalRatio {
				break
			}
		}
	}

	target := total * busShare
	var cumulative float64
	people := 0
	for _, c := range sorted {
		cumulative += float64(c.Contributions)
		people++
		if cumulative >= target {
			break
		}
	}

	return clamp(1 - float64(people)/float64(critical))
}
