// Package github provides an HTTP client for the GitHub API.
//
// # Overview
//
// This package fetches the repository signals pkgtrust scores from
// (https://api.github.com):
//
//   - [Client.Repository]: stars, forks, open issue count, last update
//   - [Client.Contributors]: first page of contributors with commit counts
//   - [Client.OpenIssues], [Client.OpenPulls]: open work items with authors
//   - [Client.LatestCommitTime]: committer date of the newest commit
//   - [Client.Readme]: README.md through the contents API, base64-decoded
//
// # Usage
//
//	client := github.NewClient(github.Config{Token: os.Getenv("GITHUB_TOKEN")})
//	repo, err := client.Repository(ctx, "lodash", "lodash")
//	if err != nil {
//	    return err
//	}
//	fmt.Println("Stars:", repo.Stars)
//
// # Authentication
//
// A GitHub personal access token is optional but recommended to avoid rate
// limits. Without a token, the client is limited to 60 requests/hour.
// With a token, the limit is 5000 requests/hour.
//
// # Caching
//
// Responses are cached in the configured [cache.Cache] for the configured
// TTL. Keys are scoped by credential so anonymous and authenticated
// responses never mix.
//
// [cache.Cache]: github.com/matzehuels/pkgtrust/pkg/cache.Cache
package github
