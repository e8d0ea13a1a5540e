package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReportKind string

const (
	ReportKindModelValidation ReportKind = "model_validation"
	ReportKindDataQuality     ReportKind = "data_quality"
)

// Check names
const (
	CheckModelLoaded       = "model_loaded"
	CheckModelSignature    = "model_signature"
	CheckModelPerformance  = "model_performance"
	CheckSchemaConsistency = "schema_consistency"
	CheckCompleteness      = "completeness"
	CheckTargetSanity      = "target_sanity"
)

// Failure is one itemized assertion that did not hold.
type Failure struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Observed string `json:"observed,omitempty"`
	Expected string `json:"expected,omitempty"`
}

// CheckResult is the outcome of one named check.
type CheckResult struct {
	Name     string             `json:"name"`
	Passed   bool               `json:"passed"`
	Failures []Failure          `json:"failures,omitempty"`
	Details  map[string]float64 `json:"details,omitempty"`
}

func NewCheckResult(name string) *CheckResult {
	return &CheckResult{Name: name, Passed: true, Details: map[string]float64{}}
}

// Fail records a failure and marks the check failed.
func (c *CheckResult) Fail(f Failure) {
	c.Passed = false
	c.Failures = append(c.Failures, f)
}

type Report struct {
	ID         uuid.UUID      `json:"id"`
	Kind       ReportKind     `json:"kind"`
	Subject    string         `json:"subject"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Checks     []*CheckResult `json:"checks"`
}

func NewReport(kind ReportKind, subject string) *Report {
	return &Report{
		ID:        uuid.New(),
		Kind:      kind,
		Subject:   subject,
		StartedAt: time.Now().UTC(),
	}
}

func (r *Report) Add(c *CheckResult) {
	r.Checks = append(r.Checks, c)
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// FailureCount is the number of itemized failures across all checks.
func (r *Report) FailureCount() int {
	n := 0
	for _, c := range r.Checks {
		n += len(c.Failures)
	}
	return n
}

func (r *Report) Finish() {
	r.FinishedAt = time.Now().UTC()
}
