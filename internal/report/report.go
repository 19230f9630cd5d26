// Package report assembles collected facts and check verdicts into the
// single immutable record a run produces.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/go-tangra/go-tangra-readiness/internal/checks"
	"github.com/go-tangra/go-tangra-readiness/internal/dxdiag"
	"github.com/go-tangra/go-tangra-readiness/internal/facts"
)

// Report is the complete readiness record for one run. It is built once
// and never mutated afterwards; it is printed, submitted, or both.
type Report struct {
	RunID        string            `json:"run_id"`
	CollectedAt  time.Time         `json:"collected_at"`
	Hostname     string            `json:"hostname"`
	MachineLabel string            `json:"machine_label"`
	Facts        *facts.Facts      `json:"facts"`
	Graphics     dxdiag.Diagnostic `json:"graphics"`
	Checks       []checks.Verdict  `json:"checks"`
	Eligible     bool              `json:"eligible"`
}

// Build assembles the report. Pure assembly: everything except the run
// id and the all-passed flag was already produced upstream.
func Build(f *facts.Facts, d dxdiag.Diagnostic, verdicts []checks.Verdict) *Report {
	eligible := len(verdicts) > 0
	for _, v := range verdicts {
		if !v.Passed {
			eligible = false
			break
		}
	}

	return &Report{
		RunID:        uuid.NewString(),
		CollectedAt:  f.CollectedAt,
		Hostname:     f.Identity.Hostname,
		MachineLabel: f.Identity.Label(),
		Facts:        f,
		Graphics:     d,
		Checks:       verdicts,
		Eligible:     eligible,
	}
}
