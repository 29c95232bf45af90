package integrations_test

import (
	"fmt"

	"github.com/matzehuels/pkgtrust/pkg/integrations"
)

func ExampleStripRepoURL() {
	// Only the git+ prefix and .git suffix are removed
	fmt.Println(integrations.StripRepoURL("git+https://github.com/expressjs/express.git"))
	fmt.Println(integrations.StripRepoURL("git+ssh://git@github.com/user/repo.git"))
	// Output:
	// https://github.com/expressjs/express
	// ssh://git@github.com/user/repo
}

func ExamplePathEscape() {
	fmt.Println(integrations.PathEscape("@types/node"))
	fmt.Println(integrations.PathEscape("express"))
	// Output:
	// @types%2Fnode
	// express
}

func Example_errors() {
	// Standard errors for API operations
	fmt.Println("ErrNotFound:", integrations.ErrNotFound)
	fmt.Println("ErrNetwork:", integrations.ErrNetwork)
	// Output:
	// ErrNotFound: resource not found
	// ErrNetwork: network error
}
