package server

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/go-kratos/kratos/v2/errors"

	"github.com/go-tangra/go-tangra-readiness/internal/convert"
	"github.com/go-tangra/go-tangra-readiness/internal/report"
	"github.com/go-tangra/go-tangra-readiness/internal/store"
)

// Handler implements the collector service operations.
type Handler struct {
	store    *store.Store
	notifier *Notifier
}

// NewHandler creates a handler backed by the given store. notifier may
// be nil when republishing is disabled.
func NewHandler(s *store.Store, notifier *Notifier) *Handler {
	return &Handler{store: s, notifier: notifier}
}

// SubmitReply answers a report submission.
type SubmitReply struct {
	ID       int64     `json:"id"`
	StoredAt time.Time `json:"stored_at"`
}

// GetReply answers a single-report fetch.
type GetReply struct {
	ID       int64          `json:"id"`
	Report   *report.Report `json:"report"`
	StoredAt time.Time      `json:"stored_at"`
}

// ListRequest carries the list query parameters. Eligible is tri-state:
// empty matches both outcomes.
type ListRequest struct {
	Hostname        string `json:"hostname"`
	MachineLabel    string `json:"machine_label"`
	Eligible        string `json:"eligible"`
	CollectedAfter  string `json:"collected_after"`
	CollectedBefore string `json:"collected_before"`
	PageSize        int    `json:"page_size"`
	Page            int    `json:"page"`
}

// ListReply answers a list query.
type ListReply struct {
	Reports    []convert.Summary `json:"reports"`
	TotalCount int               `json:"total_count"`
}

func (h *Handler) submitReport(ctx context.Context, rep *report.Report) (*SubmitReply, error) {
	if rep.Hostname == "" {
		return nil, errors.BadRequest("HOSTNAME_REQUIRED", "hostname is required")
	}

	rec, err := convert.ReportToRecord(rep)
	if err != nil {
		return nil, errors.InternalServer("CONVERT_FAILED", err.Error())
	}

	id, storedAt, err := h.store.Insert(ctx, rec)
	if err != nil {
		return nil, errors.InternalServer("STORE_FAILED", err.Error())
	}

	if h.notifier != nil {
		h.notifier.Publish(rep)
	}

	return &SubmitReply{ID: id, StoredAt: storedAt}, nil
}

func (h *Handler) getReport(ctx context.Context, id int64) (*GetReply, error) {
	rec, err := h.store.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("REPORT_NOT_FOUND", "report not found")
		}
		return nil, errors.InternalServer("STORE_FAILED", err.Error())
	}
	return recordReply(rec)
}

func (h *Handler) getLatestByHostname(ctx context.Context, hostname string) (*GetReply, error) {
	if hostname == "" {
		return nil, errors.BadRequest("HOSTNAME_REQUIRED", "hostname is required")
	}

	rec, err := h.store.GetLatestByHostname(ctx, hostname)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("REPORT_NOT_FOUND", "no report for hostname "+hostname)
		}
		return nil, errors.InternalServer("STORE_FAILED", err.Error())
	}
	return recordReply(rec)
}

func (h *Handler) listReports(ctx context.Context, req *ListRequest) (*ListReply, error) {
	filter := store.ListFilter{
		Hostname:     req.Hostname,
		MachineLabel: req.MachineLabel,
		PageSize:     req.PageSize,
		Page:         req.Page,
	}

	switch req.Eligible {
	case "":
	case "true":
		v := true
		filter.Eligible = &v
	case "false":
		v := false
		filter.Eligible = &v
	default:
		return nil, errors.BadRequest("INVALID_ELIGIBLE", "eligible must be true, false, or empty")
	}

	if req.CollectedAfter != "" {
		t, err := time.Parse(time.RFC3339, req.CollectedAfter)
		if err != nil {
			return nil, errors.BadRequest("INVALID_TIME", "collected_after must be RFC3339")
		}
		filter.CollectedAfter = &t
	}
	if req.CollectedBefore != "" {
		t, err := time.Parse(time.RFC3339, req.CollectedBefore)
		if err != nil {
			return nil, errors.BadRequest("INVALID_TIME", "collected_before must be RFC3339")
		}
		filter.CollectedBefore = &t
	}

	records, total, err := h.store.List(ctx, filter)
	if err != nil {
		return nil, errors.InternalServer("STORE_FAILED", err.Error())
	}

	summaries := make([]convert.Summary, len(records))
	for i := range records {
		summaries[i] = convert.RecordToSummary(&records[i])
	}

	return &ListReply{Reports: summaries, TotalCount: total}, nil
}

func (h *Handler) deleteReport(ctx context.Context, id int64) error {
	if err := h.store.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NotFound("REPORT_NOT_FOUND", "report not found")
		}
		return errors.InternalServer("STORE_FAILED", err.Error())
	}
	return nil
}

func recordReply(rec *store.ReportRecord) (*GetReply, error) {
	rep, err := convert.RecordToReport(rec)
	if err != nil {
		return nil, errors.InternalServer("DECODE_FAILED", err.Error())
	}
	return &GetReply{ID: rec.ID, Report: rep, StoredAt: rec.StoredAt}, nil
}
