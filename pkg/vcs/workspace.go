package vcs

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace hands out scratch directories for working trees.
//
// Every directory is named pkgtrust-<uuid> so concurrent evaluations never
// share a tree.
type Workspace struct {
	root string
}

// NewWorkspace returns a workspace under root, or the system temp directory
// when root is empty.
func NewWorkspace(root string) *Workspace {
	if root == "" {
		root = os.TempDir()
	}
	return &Workspace{root: root}
}

// Root returns the parent directory of all scratch trees.
func (w *Workspace) Root() string {
	return w.root
}

// NewDir returns a fresh scratch path. The directory is not created.
func (w *Workspace) NewDir() string {
	return filepath.Join(w.root, "pkgtrust-"+uuid.NewString())
}

// Remove deletes a scratch tree. A missing tree is not an error.
func (w *Workspace) Remove(dir string) error {
	return os.RemoveAll(dir)
}
