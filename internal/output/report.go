// Package output renders pipeline reports in the supported output formats.
package output

import (
	"time"

	"github.com/apexfix/apexfix-core/internal/fix"
	"github.com/apexfix/apexfix-core/internal/priority"
	"github.com/apexfix/apexfix-core/internal/types"
	"github.com/apexfix/apexfix-core/internal/verify"
)

// Report aggregates the results of one pipeline run. Fix and Verification
// are nil when the run was scan-only.
type Report struct {
	Tool         string           `json:"tool"`
	Version      string           `json:"version"`
	Target       string           `json:"target"`
	GeneratedAt  time.Time        `json:"generated_at"`
	Scan         *types.ScanResult `json:"scan"`
	Prioritized  *priority.Result `json:"prioritized,omitempty"`
	Fix          *fix.Outcome     `json:"fix,omitempty"`
	Verification *verify.Result   `json:"verification,omitempty"`
	FailOn       types.Severity   `json:"fail_on"`
	Result       string           `json:"result"`
}

// NewReport builds a report for one run against target.
func NewReport(version, target string, scan *types.ScanResult) *Report {
	return &Report{
		Tool:        "apexfix",
		Version:     version,
		Target:      target,
		GeneratedAt: time.Now().UTC(),
		Scan:        scan,
		FailOn:      types.SeverityHigh,
	}
}

// Compute sets Result to PASS or FAIL. A run fails when any finding at or
// above the fail-on severity remains: suppressed findings and findings whose
// fix was verified do not count.
func (r *Report) Compute() {
	verified := map[*types.Finding]bool{}
	if r.Verification != nil {
		for _, entry := range r.Verification.Verified {
			verified[entry.Finding] = true
		}
	}

	r.Result = "PASS"
	for _, f := range r.Scan.Findings {
		if f.Ignored || verified[f] {
			continue
		}
		if f.Severity.AtLeast(r.FailOn) {
			r.Result = "FAIL"
			return
		}
	}
}

// RemainingCount returns the number of findings still actionable after
// suppression and verified fixes.
func (r *Report) RemainingCount() int {
	verified := map[*types.Finding]bool{}
	if r.Verification != nil {
		for _, entry := range r.Verification.Verified {
			verified[entry.Finding] = true
		}
	}

	count := 0
	for _, f := range r.Scan.Findings {
		if f.Ignored || verified[f] {
			continue
		}
		count++
	}
	return count
}
