// Package npm provides an HTTP client for the npm registry.
//
// The only operation pkgtrust needs is [Client.RepositoryURL], which maps a
// package name to the source repository declared in its manifest:
//
//	client := npm.NewClient(npm.Config{})
//	url, err := client.RepositoryURL(ctx, "express")
//	// url == "https://github.com/expressjs/express"
package npm
