// Package subject identifies the repository a batch line refers to.
package subject

import (
	"strings"

	"github.com/matzehuels/pkgtrust/pkg/errors"
)

// Subject is the canonical repository identity shared by every metric
// evaluated for one input line.
type Subject struct {
	Owner string
	Repo  string
	URL   string
}

// String returns "owner/repo".
func (s Subject) String() string {
	return s.Owner + "/" + s.Repo
}

// Parse extracts the owner and repository from a canonical repository URL.
//
// The URL is split on "/" and the fourth and fifth segments are taken, so
// "https://github.com/owner/repo/tree/main" yields owner "owner" and repo
// "repo". Anything shorter, or with an empty owner or repo, fails with
// MALFORMED_URL.
func Parse(url string) (Subject, error) {
	parts := strings.Split(url, "/")
	if len(parts) < 5 || parts[3] == "" || parts[4] == "" {
		return Subject{}, errors.New(errors.ErrCodeMalformedURL, "cannot derive owner/repo from %q", url)
	}
	return Subject{Owner: parts[3], Repo: parts[4], URL: url}, nil
}
