package qc

import (
	"time"

	"meteo-qc/internal/models"
)

// FindingKind classifies a quality-control finding.
type FindingKind string

const (
	FindingMissingValue  FindingKind = "missing_value"
	FindingOutOfRange    FindingKind = "out_of_range"
	FindingSteepGradient FindingKind = "steep_gradient"
)

// Finding is a single quality-control event. For missing values only the
// timestamp is meaningful; for out-of-range events Value holds the rejected
// reading; for gradient events Value holds the absolute step magnitude.
type Finding struct {
	Kind      FindingKind    `json:"kind" db:"kind"`
	Channel   models.Channel `json:"channel,omitempty" db:"channel"`
	Timestamp time.Time      `json:"timestamp" db:"observed_at"`
	Value     float64        `json:"value" db:"value"`
}

// Report accumulates findings across the pipeline stages. It is append-only:
// stages add findings in processing order and the renderer reads them back
// after the run completes. A report belongs to exactly one run and is not
// safe for concurrent use; the pipeline is single-threaded so none is needed.
type Report struct {
	findings []Finding
}

// NewReport creates an empty quality-control report.
func NewReport() *Report {
	return &Report{findings: make([]Finding, 0)}
}

// AddMissingValue records a grid timestamp with no usable observation.
func (r *Report) AddMissingValue(ts time.Time) {
	r.findings = append(r.findings, Finding{
		Kind:      FindingMissingValue,
		Timestamp: ts,
	})
}

// AddOutOfRange records a reading outside its plausible range, captured
// before the value is nulled.
func (r *Report) AddOutOfRange(ch models.Channel, ts time.Time, value float64) {
	r.findings = append(r.findings, Finding{
		Kind:      FindingOutOfRange,
		Channel:   ch,
		Timestamp: ts,
		Value:     value,
	})
}

// AddSteepGradient records an adjacent-sample step exceeding the channel
// threshold. magnitude is the absolute difference.
func (r *Report) AddSteepGradient(ch models.Channel, ts time.Time, magnitude float64) {
	r.findings = append(r.findings, Finding{
		Kind:      FindingSteepGradient,
		Channel:   ch,
		Timestamp: ts,
		Value:     magnitude,
	})
}

// Findings returns all findings in append order.
func (r *Report) Findings() []Finding {
	return r.findings
}

// MissingTimestamps lists the timestamps of all missing-value findings.
func (r *Report) MissingTimestamps() []time.Time {
	var out []time.Time
	for _, f := range r.findings {
		if f.Kind == FindingMissingValue {
			out = append(out, f.Timestamp)
		}
	}
	return out
}

// OutOfRange lists the out-of-range findings of one channel.
func (r *Report) OutOfRange(ch models.Channel) []Finding {
	return r.filter(FindingOutOfRange, ch)
}

// SteepGradients lists the gradient findings of one channel.
func (r *Report) SteepGradients(ch models.Channel) []Finding {
	return r.filter(FindingSteepGradient, ch)
}

// Count returns the number of findings of the given kind.
func (r *Report) Count(kind FindingKind) int {
	n := 0
	for _, f := range r.findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Report) filter(kind FindingKind, ch models.Channel) []Finding {
	var out []Finding
	for _, f := range r.findings {
		if f.Kind == kind && f.Channel == ch {
			out = append(out, f)
		}
	}
	return out
}
