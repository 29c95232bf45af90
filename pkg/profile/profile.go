// Package profile loads scoring profiles.
//
// A profile tunes the scoring run without changing the formulas:
//
//	licenses = ["MIT", "Apache-2.0", "ISC"]
//	weights = [0.2, 0.2, 0.2, 0.2, 0.2]
//	latency_ceiling = "5s"
//	activity_reference_date = 2024-04-01T00:00:00Z
//
// Keys that are absent keep their defaults.
package profile

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pkgtrust/pkg/errors"
	"github.com/matzehuels/pkgtrust/pkg/metrics"
	"github.com/matzehuels/pkgtrust/pkg/score"
)

// Profile holds the tunable inputs of a scoring run.
type Profile struct {
	Licenses          []string
	Weights           []float64
	LatencyCeiling    time.Duration
	ActivityReference time.Time
}

// Default returns the built-in profile.
func Default() Profile {
	return Profile{
		Licenses:          append([]string(nil), metrics.DefaultLicenses...),
		Weights:           append([]float64(nil), score.DefaultWeights...),
		LatencyCeiling:    score.DefaultLatencyCeiling,
		ActivityReference: metrics.DefaultActivityReference,
	}
}

type file struct {
	Licenses          []string   `toml:"licenses"`
	Weights           []float64  `toml:"weights"`
	LatencyCeiling    string     `toml:"latency_ceiling"`
	ActivityReference *time.Time `toml:"activity_reference_date"`
}

// Load reads a TOML profile from path. An empty path returns Default.
func Load(path string) (Profile, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidProfile, err, "read profile %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes TOML profile data over the defaults.
func Parse(data []byte) (Profile, error) {
	var f file
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidProfile, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Profile{}, errors.New(errors.ErrCodeInvalidProfile, "unknown key %q", undecoded[0].String())
	}

	p := Default()
	if md.IsDefined("licenses") {
		p.Licenses = f.Licenses
	}
	if md.IsDefined("weights") {
		if len(f.Weights) != score.Arity {
			return Profile{}, errors.New(errors.ErrCodeInvalidProfile,
				"weights: expected %d values, got %d", score.Arity, len(f.Weights))
		}
		p.Weights = f.Weights
	}
	if f.LatencyCeiling != "" {
		d, err := time.ParseDuration(f.LatencyCeiling)
		if err != nil || d <= 0 {
			return Profile{}, errors.New(errors.ErrCodeInvalidProfile,
				"latency_ceiling: want a positive duration, got %q", f.LatencyCeiling)
		}
		p.LatencyCeiling = d
	}
	if f.ActivityReference != nil {
		p.ActivityReference = *f.ActivityReference
	}
	return p, nil
}
