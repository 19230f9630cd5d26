package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-tangra/go-tangra-readiness/internal/checks"
	"github.com/go-tangra/go-tangra-readiness/internal/report"
)

func TestPrintReport(t *testing.T) {
	rep := &report.Report{
		Hostname:     "desk-01",
		MachineLabel: "corp.example.com",
		Checks: []checks.Verdict{
			{Check: checks.CheckProcessor, Passed: true, Detail: "2.4 GHz (minimum 1 GHz)"},
			{Check: checks.CheckTPM, Passed: false, Detail: "NO TPM"},
			{Check: checks.CheckSecureBoot, Passed: false, Detail: "firmware BIOS, secure boot enabled: false"},
		},
		Eligible: false,
	}

	var buf bytes.Buffer
	New(&buf, true).PrintReport(rep)
	out := buf.String()

	for _, want := range []string{
		"desk-01",
		"corp.example.com",
		"TPM:",
		"Fail",
		"NO TPM",
		"Eligible for upgrade: No",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Pass lines carry no detail; Fail lines do.
	if strings.Contains(out, "2.4 GHz") {
		t.Errorf("detail printed for a passing check:\n%s", out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	var verdictLines []string
	for _, l := range lines {
		if strings.Contains(l, ": ") && !strings.HasPrefix(l, " ") && !strings.HasPrefix(l, "Upgrade") && !strings.HasPrefix(l, "Eligible") {
			verdictLines = append(verdictLines, l)
		}
	}
	if len(verdictLines) != 3 {
		t.Fatalf("expected 3 verdict lines, got %d:\n%s", len(verdictLines), out)
	}

	// Labels are padded to a common column.
	col := strings.Index(verdictLines[0], "Pass")
	for _, l := range verdictLines[1:] {
		if strings.Index(l, "Fail") != col {
			t.Errorf("verdict column misaligned:\n%s", out)
		}
	}
}

func TestPrintReportEligible(t *testing.T) {
	rep := &report.Report{
		Hostname: "desk-02",
		Checks: []checks.Verdict{
			{Check: checks.CheckProcessor, Passed: true, Detail: "2.4 GHz"},
		},
		Eligible: true,
	}

	var buf bytes.Buffer
	New(&buf, true).PrintReport(rep)

	if !strings.Contains(buf.String(), "Eligible for upgrade: Yes") {
		t.Errorf("missing eligibility footer:\n%s", buf.String())
	}
}
