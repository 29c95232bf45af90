package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgtrust/pkg/subject"
	"github.com/matzehuels/pkgtrust/pkg/vcs"
)

// DefaultLicenses is the default allow-list of license identifiers.
var DefaultLicenses = []string{"LGPLv2.1", "MIT", "Apache-2.0"}

var (
	licenseFiles = []string{"LICENSE", "license", "LICENSE.txt", "license.txt", "LICENSE.md", "license.md"}
	readmeFiles  = []string{"README", "README.md", "README.txt"}
)

// License scores 1 when an allow-listed license identifier appears in the
// repository's license file or, failing that, its README.
type License struct {
	git       vcs.Client
	workspace *vcs.Workspace
	allowed   []string
	logger    *log.Logger
}

// NewLicense creates the metric. An empty allow-list uses DefaultLicenses.
func NewLicense(git vcs.Client, workspace *vcs.Workspace, allowed []string, logger *log.Logger) *License {
	if len(allowed) == 0 {
		allowed = DefaultLicenses
	}
	if workspace == nil {
		workspace = vcs.NewWorkspace("")
	}
	return &License{git: git, workspace: workspace, allowed: allowed, logger: orDiscard(logger)}
}

// Name implements Metric.
func (m *License) Name() string { return NameLicense }

// Compute implements Metric. Any failure scores 0. The working tree is
// removed before and after the scan.
func (m *License) Compute(ctx context.Context, s subject.Subject) (float64, error) {
	dir := m.workspace.NewDir()
	_ = m.workspace.Remove(dir)
	defer func() { _ = m.workspace.Remove(dir) }()

	if err := m.git.InitEmpty(ctx, dir); err != nil {
		m.logger.Warn("license: init failed, scoring 0", "repo", s, "err", err)
		return 0, nil
	}
	if err := m.git.Materialize(ctx, s.URL, dir); err != nil {
		m.logger.Warn("license: clone failed, scoring 0", "repo", s, "err", err)
		return 0, nil
	}

	if id, file, ok := ScanLicense(dir, m.allowed); ok {
		m.logger.Debug("license compatible", "repo", s, "license", id, "file", file)
		return 1, nil
	}
	return 0, nil
}

// ScanLicense looks for any allowed identifier as a literal substring of the
// license files in dir, then of the README files. It returns the first match
// and the file it was found in.
func ScanLicense(dir string, allowed []string) (id, file string, ok bool) {
	for _, group := range [][]string{licenseFiles, readmeFiles} {
		for _, name := range group {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			content := string(data)
			for _, lic := range allowed {
				if strings.Contains(content, lic) {
					return lic, name, true
				}
			}
		}
	}
	return "", "", false
}
