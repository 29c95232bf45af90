// Package resolve turns a batch input line into a canonical repository URL.
package resolve

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgtrust/pkg/errors"
)

// Kind classifies an input reference.
type Kind int

const (
	KindUnknown Kind = iota
	KindRepository
	KindRegistryPackage
)

func (k Kind) String() string {
	switch k {
	case KindRepository:
		return "repository"
	case KindRegistryPackage:
		return "registry-package"
	default:
		return "unknown"
	}
}

var (
	repositoryPattern = regexp.MustCompile(`https://github.com/.*`)
	registryPattern   = regexp.MustCompile(`https://www.npmjs.com/package/.*`)
)

// Classify reports the kind of reference. Repository URLs take precedence.
func Classify(line string) Kind {
	switch {
	case repositoryPattern.MatchString(line):
		return KindRepository
	case registryPattern.MatchString(line):
		return KindRegistryPackage
	default:
		return KindUnknown
	}
}

// Registry looks up the source repository of a registry package.
type Registry interface {
	RepositoryURL(ctx context.Context, pkg string) (string, error)
}

// Resolver maps references to canonical repository URLs.
type Resolver struct {
	registry Registry
	logger   *log.Logger
}

// New creates a resolver. A nil logger discards output.
func New(registry Registry, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{registry: registry, logger: logger}
}

// Resolve returns the canonical repository URL for one trimmed input line.
//
// Repository URLs are returned unchanged. For registry package URLs, the
// registry's repository link is returned with "git+" and ".git" stripped.
// Registry errors are returned as is. Anything else fails with
// INVALID_REFERENCE_KIND.
func (r *Resolver) Resolve(ctx context.Context, line string) (string, error) {
	switch Classify(line) {
	case KindRepository:
		r.logger.Debug("repository reference", "url", line)
		return line, nil
	case KindRegistryPackage:
		pkg := PackageName(line)
		if err := errors.ValidateNpmPackageName(pkg); err != nil {
			r.logger.Warn("unusual npm package name", "package", pkg, "err", err)
		}
		url, err := r.registry.RepositoryURL(ctx, pkg)
		if err != nil {
			return "", err
		}
		r.logger.Debug("resolved registry package", "package", pkg, "url", url)
		return url, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidReferenceKind,
			"invalid reference %q: must be a GitHub or npm package URL", line)
	}
}

// PackageName extracts the package name from an npm package page URL,
// dropping any query or fragment: "https://www.npmjs.com/package/@a/b?x"
// yields "@a/b".
func PackageName(line string) string {
	_, name, _ := strings.Cut(line, "/package/")
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return strings.Trim(name, "/")
}
