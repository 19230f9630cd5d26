package convert

import (
	"testing"
	"time"

	"github.com/go-tangra/go-tangra-readiness/internal/checks"
	"github.com/go-tangra/go-tangra-readiness/internal/facts"
	"github.com/go-tangra/go-tangra-readiness/internal/report"
)

func TestReportRecordRoundTrip(t *testing.T) {
	rep := &report.Report{
		RunID:        "run-1",
		CollectedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Hostname:     "desk-01",
		MachineLabel: "corp.example.com",
		Facts: &facts.Facts{
			TPM: facts.TpmInfo{Present: true, SpecVersion: "2.0, 0, 1.38"},
		},
		Checks: []checks.Verdict{
			{Check: checks.CheckTPM, Passed: true, Detail: "version 2.0, 0, 1.38 (minimum 2.0)"},
		},
		Eligible: true,
	}

	rec, err := ReportToRecord(rep)
	if err != nil {
		t.Fatalf("ReportToRecord failed: %v", err)
	}
	if rec.RunID != "run-1" || rec.Hostname != "desk-01" || !rec.Eligible {
		t.Errorf("record fields wrong: %+v", rec)
	}
	if !rec.CollectedAt.Equal(rep.CollectedAt) {
		t.Errorf("CollectedAt = %v", rec.CollectedAt)
	}

	back, err := RecordToReport(rec)
	if err != nil {
		t.Fatalf("RecordToReport failed: %v", err)
	}
	if back.RunID != rep.RunID || back.MachineLabel != rep.MachineLabel {
		t.Errorf("round trip lost identity: %+v", back)
	}
	if len(back.Checks) != 1 || back.Checks[0].Check != checks.CheckTPM {
		t.Errorf("round trip lost verdicts: %+v", back.Checks)
	}
	if back.Facts == nil || !back.Facts.TPM.Present {
		t.Error("round trip lost facts")
	}
}

func TestReportToRecordStampsCollectedAt(t *testing.T) {
	rec, err := ReportToRecord(&report.Report{Hostname: "desk-01"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.CollectedAt.IsZero() {
		t.Error("zero CollectedAt should be stamped at conversion time")
	}
}

func TestRecordToReportMalformed(t *testing.T) {
	rec, _ := ReportToRecord(&report.Report{Hostname: "desk-01"})
	rec.ReportJSON = "{broken"
	if _, err := RecordToReport(rec); err == nil {
		t.Fatal("expected an error for malformed stored JSON")
	}
}

func TestRecordToSummary(t *testing.T) {
	rec, _ := ReportToRecord(&report.Report{
		RunID:        "run-9",
		Hostname:     "desk-09",
		MachineLabel: "AzureAD",
		Eligible:     false,
		CollectedAt:  time.Now().UTC(),
	})
	rec.ID = 9

	s := RecordToSummary(rec)
	if s.ID != 9 || s.RunID != "run-9" || s.Hostname != "desk-09" || s.MachineLabel != "AzureAD" || s.Eligible {
		t.Errorf("summary = %+v", s)
	}
}
