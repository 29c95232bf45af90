package github

import "time"

// Repository is the subset of GET /repos/{owner}/{repo} used for scoring.
type Repository struct {
	FullName   string    `json:"full_name"`
	UpdatedAt  time.Time `json:"updated_at"`
	Forks      int       `json:"forks_count"`
	OpenIssues int       `json:"open_issues_count"`
	Stars      int       `json:"stargazers_count"`
}

// Issue is an open issue or pull request.
type Issue struct {
	Number    int        `json:"number"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	User      User       `json:"user"`
}

// IsBot reports whether the author is a bot account.
func (i Issue) IsBot() bool {
	return i.User.Type == "Bot"
}

// User is the author of an issue or pull request.
type User struct {
	Login string `json:"login"`
	Type  string `json:"type"` // "User", "Bot" or "Organization"
}

type contributorResponse struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type"`
}

type commitResponse struct {
	Commit struct {
		Committer struct {
			Date time.Time `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
}

// apiContentResponse is the GitHub API response for file content.
type apiContentResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Size     int    `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}
