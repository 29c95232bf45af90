package github

import (
	"fmt"
	"regexp"

	"github.com/matzehuels/pkgtrust/pkg/integrations"
)

// Regex patterns for GitHub resource validation.
var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ValidateRepoRef checks that owner and repo are names GitHub could host.
//
// A name GitHub cannot host can never be found, so failures wrap
// [integrations.ErrNotFound] and callers handle them like a 404. Dot-only
// repo names are rejected.
func ValidateRepoRef(owner, repo string) error {
	if !validOwner.MatchString(owner) {
		return fmt.Errorf("%w: invalid github owner %q", integrations.ErrNotFound, owner)
	}
	if !validRepo.MatchString(repo) || repo == "." || repo == ".." {
		return fmt.Errorf("%w: invalid github repo %q", integrations.ErrNotFound, repo)
	}
	return nil
}
