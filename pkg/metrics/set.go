package metrics

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgtrust/pkg/vcs"
)

// HostSource is everything the metrics read from the hosting API.
type HostSource interface {
	ContributorSource
	ActivitySource
	ReadmeSource
}

// Deps are the collaborators shared by the standard metrics.
type Deps struct {
	Host      HostSource
	Git       vcs.Client
	Workspace *vcs.Workspace

	// Licenses is the license allow-list; empty uses DefaultLicenses.
	Licenses []string
	// ActivityReference is the Correctness "recently updated" cutoff.
	ActivityReference time.Time
	// Now is the clock for age computations; nil uses time.Now.
	Now func() time.Time

	Logger *log.Logger
}

// Standard returns the five metrics in evaluation order: BusFactor,
// ResponsiveMaintainer, License, RampUp, Correctness.
func Standard(d Deps) []Metric {
	ws := d.Workspace
	if ws == nil {
		ws = vcs.NewWorkspace("")
	}
	return []Metric{
		NewBusFactor(d.Host, d.Logger),
		NewResponsiveness(d.Host, d.Now, d.Logger),
		NewLicense(d.Git, ws, d.Licenses, d.Logger),
		NewRampUp(d.Host, d.Logger),
		NewCorrectness(d.Git, ws, d.Host, d.ActivityReference, d.Logger),
	}
}
