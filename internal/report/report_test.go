package report

import (
	"testing"
	"time"

	"github.com/go-tangra/go-tangra-readiness/internal/checks"
	"github.com/go-tangra/go-tangra-readiness/internal/dxdiag"
	"github.com/go-tangra/go-tangra-readiness/internal/facts"
)

func TestBuild(t *testing.T) {
	f := &facts.Facts{
		CollectedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Identity:    facts.IdentityInfo{Hostname: "desk-01", Domain: "WORKGROUP", CloudJoined: true},
	}
	verdicts := []checks.Verdict{
		{Check: checks.CheckProcessor, Passed: true},
		{Check: checks.CheckTPM, Passed: true},
	}

	rep := Build(f, dxdiag.Diagnostic{DirectXVersion: "DirectX 12"}, verdicts)

	if rep.RunID == "" {
		t.Error("RunID not assigned")
	}
	if rep.Hostname != "desk-01" {
		t.Errorf("Hostname = %q", rep.Hostname)
	}
	if rep.MachineLabel != facts.CloudJoinedLabel {
		t.Errorf("MachineLabel = %q, want the cloud-joined label", rep.MachineLabel)
	}
	if !rep.CollectedAt.Equal(f.CollectedAt) {
		t.Errorf("CollectedAt = %v, want %v", rep.CollectedAt, f.CollectedAt)
	}
	if !rep.Eligible {
		t.Error("all checks passed but Eligible is false")
	}
}

func TestBuildNotEligible(t *testing.T) {
	f := &facts.Facts{Identity: facts.IdentityInfo{Hostname: "desk-02"}}
	verdicts := []checks.Verdict{
		{Check: checks.CheckProcessor, Passed: true},
		{Check: checks.CheckTPM, Passed: false},
	}

	if rep := Build(f, dxdiag.Diagnostic{}, verdicts); rep.Eligible {
		t.Error("a failed check must clear Eligible")
	}
}

func TestBuildNoVerdicts(t *testing.T) {
	f := &facts.Facts{Identity: facts.IdentityInfo{Hostname: "desk-03"}}
	if rep := Build(f, dxdiag.Diagnostic{}, nil); rep.Eligible {
		t.Error("an empty verdict list must not be eligible")
	}
}
