package convert

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-tangra/go-tangra-readiness/internal/report"
	"github.com/go-tangra/go-tangra-readiness/internal/store"
)

// Summary is the list-response DTO: record identity plus the verdict,
// without the report body.
type Summary struct {
	ID           int64     `json:"id"`
	RunID        string    `json:"run_id"`
	Hostname     string    `json:"hostname"`
	MachineLabel string    `json:"machine_label"`
	Eligible     bool      `json:"eligible"`
	CollectedAt  time.Time `json:"collected_at"`
	StoredAt     time.Time `json:"stored_at"`
}

// ReportToRecord converts a readiness report to a store record.
func ReportToRecord(rep *report.Report) (*store.ReportRecord, error) {
	jsonBytes, err := json.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("marshal report to JSON: %w", err)
	}

	collectedAt := rep.CollectedAt
	if collectedAt.IsZero() {
		collectedAt = time.Now().UTC()
	}

	return &store.ReportRecord{
		RunID:        rep.RunID,
		Hostname:     rep.Hostname,
		MachineLabel: rep.MachineLabel,
		Eligible:     rep.Eligible,
		CollectedAt:  collectedAt,
		ReportJSON:   string(jsonBytes),
	}, nil
}

// RecordToReport converts a store record back to a readiness report.
func RecordToReport(rec *store.ReportRecord) (*report.Report, error) {
	var rep report.Report
	if err := json.Unmarshal([]byte(rec.ReportJSON), &rep); err != nil {
		return nil, fmt.Errorf("unmarshal report JSON: %w", err)
	}
	return &rep, nil
}

// RecordToSummary converts a store record to a list Summary.
func RecordToSummary(rec *store.ReportRecord) Summary {
	return Summary{
		ID:           rec.ID,
		RunID:        rec.RunID,
		Hostname:     rec.Hostname,
		MachineLabel: rec.MachineLabel,
		Eligible:     rec.Eligible,
		CollectedAt:  rec.CollectedAt,
		StoredAt:     rec.StoredAt,
	}
}
