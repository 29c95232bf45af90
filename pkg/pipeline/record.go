package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/matzehuels/pkgtrust/pkg/metrics"
	"github.com/matzehuels/pkgtrust/pkg/score"
)

// Record is one export line. Field order is part of the export format.
type Record struct {
	URL                         string  `json:"URL"`
	NetScore                    float64 `json:"NetScore"`
	NetScoreLatency             float64 `json:"NetScore_Latency"`
	BusFactor                   float64 `json:"BusFactor"`
	BusFactorLatency            float64 `json:"BusFactor_Latency"`
	ResponsiveMaintainer        float64 `json:"ResponsiveMaintainer"`
	ResponsiveMaintainerLatency float64 `json:"ResponsiveMaintainer_Latency"`
	RampUp                      float64 `json:"RampUp"`
	RampUpLatency               float64 `json:"RampUp_Latency"`
	Correctness                 float64 `json:"Correctness"`
	CorrectnessLatency          float64 `json:"Correctness_Latency"`
	License                     float64 `json:"License"`
	LicenseLatency              float64 `json:"License_Latency"`
}

// metricResult is a measured metric with its normalised latency.
type metricResult struct {
	score   float64
	latency float64
}

// newRecord builds the export row. Every value is rounded to 3 decimals.
func newRecord(c score.Composite, byName map[string]metricResult, ceiling time.Duration) Record {
	get := func(name string) (float64, float64) {
		r := byName[name]
		return score.Round3(r.score), score.Round3(r.latency)
	}
	rec := Record{
		URL:             c.URL,
		NetScore:        score.Round3(c.NetScore),
		NetScoreLatency: score.Round3(score.NormalizeLatency(c.Latency, ceiling)),
	}
	rec.BusFactor, rec.BusFactorLatency = get(metrics.NameBusFactor)
	rec.ResponsiveMaintainer, rec.ResponsiveMaintainerLatency = get(metrics.NameResponsiveness)
	rec.RampUp, rec.RampUpLatency = get(metrics.NameRampUp)
	rec.Correctness, rec.CorrectnessLatency = get(metrics.NameCorrectness)
	rec.License, rec.LicenseLatency = get(metrics.NameLicense)
	return rec
}

// Sink writes records as newline-delimited JSON to the export and the echo
// writer.
type Sink struct {
	mu     sync.Mutex
	export io.Writer
	echo   io.Writer
}

// NewSink creates a sink. A nil echo disables echoing.
func NewSink(export, echo io.Writer) *Sink {
	if echo == nil {
		echo = io.Discard
	}
	return &Sink{export: export, echo: echo}
}

// Write appends rec as one JSON line.
func (s *Sink) Write(rec Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.export.Write(line); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	if _, err := s.echo.Write(line); err != nil {
		return fmt.Errorf("echo record: %w", err)
	}
	return nil
}

// ReadRecords decodes an NDJSON export.
func ReadRecords(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	var out []Record
	for dec.More() {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return out, fmt.Errorf("decode record %d: %w", len(out)+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
