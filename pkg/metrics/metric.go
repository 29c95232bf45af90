// Package metrics implements the five trust signals scored for every package.
//
// Each [Metric] computes a score in [0,1] for one [subject.Subject]:
//
//   - [BusFactor]: how concentrated commits are among the top contributors
//   - [Responsiveness]: age of open issues and pull requests, commit recency
//   - [License]: whether an allow-listed license appears in the working tree
//   - [RampUp]: whether the README is substantial and links documentation
//   - [Correctness]: manifest hygiene, README badges and repository activity
//
// Metrics differ in how they treat collaborator failures. License,
// Responsiveness and Correctness report a zero score; BusFactor returns the
// error. RampUp treats a README it cannot fetch as absent.
package metrics

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgtrust/pkg/subject"
)

// Metric names, as they appear in export records.
const (
	NameBusFactor      = "BusFactor"
	NameResponsiveness = "ResponsiveMaintainer"
	NameLicense        = "License"
	NameRampUp         = "RampUp"
	NameCorrectness    = "Correctness"
)

// Metric scores one repository.
type Metric interface {
	// Name identifies the metric in records and logs.
	Name() string

	// Compute returns a score in [0,1]. A non-nil error is fatal to the batch.
	Compute(ctx context.Context, s subject.Subject) (float64, error)
}

// Result is one timed metric evaluation.
type Result struct {
	Name    string
	Score   float64
	Elapsed time.Duration
}

// Measure runs m and records its wall-clock duration.
func Measure(ctx context.Context, m Metric, s subject.Subject) (Result, error) {
	start := time.Now()
	score, err := m.Compute(ctx, s)
	return Result{Name: m.Name(), Score: clamp(score), Elapsed: time.Since(start)}, err
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
