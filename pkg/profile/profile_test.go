package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/pkgtrust/pkg/errors"
	"github.com/matzehuels/pkgtrust/pkg/metrics"
	"github.com/matzehuels/pkgtrust/pkg/score"
)

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.LatencyCeiling != score.DefaultLatencyCeiling {
		t.Errorf("LatencyCeiling = %v", p.LatencyCeiling)
	}
	if len(p.Licenses) != len(metrics.DefaultLicenses) {
		t.Errorf("Licenses = %v", p.Licenses)
	}
	if !p.ActivityReference.Equal(metrics.DefaultActivityReference) {
		t.Errorf("ActivityReference = %v", p.ActivityReference)
	}
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte(`
licenses = ["ISC"]
latency_ceiling = "10s"
activity_reference_date = 2025-01-01T00:00:00Z
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(p.Licenses) != 1 || p.Licenses[0] != "ISC" {
		t.Errorf("Licenses = %v", p.Licenses)
	}
	if p.LatencyCeiling != 10*time.Second {
		t.Errorf("LatencyCeiling = %v", p.LatencyCeiling)
	}
	if want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC); !p.ActivityReference.Equal(want) {
		t.Errorf("ActivityReference = %v, want %v", p.ActivityReference, want)
	}
	if len(p.Weights) != score.Arity {
		t.Errorf("Weights should keep the default, got %v", p.Weights)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `licenses = [`},
		{"weights arity", `weights = [0.5, 0.5]`},
		{"bad ceiling", `latency_ceiling = "soon"`},
		{"negative ceiling", `latency_ceiling = "-1s"`},
		{"unknown key", `colour = "blue"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidProfile) {
				t.Errorf("Parse() error = %v, want INVALID_PROFILE", err)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte(`weights = [0.1, 0.2, 0.3, 0.2, 0.2]`), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.Weights[2] != 0.3 {
		t.Errorf("Weights = %v", p.Weights)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("missing file error = %v", err)
	}
}
