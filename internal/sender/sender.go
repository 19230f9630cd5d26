// Package sender submits readiness reports to the collector endpoint.
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-tangra/go-tangra-readiness/internal/report"
)

const submitTimeout = 30 * time.Second

// Response is the collector's reply to a submitted report.
type Response struct {
	ID       int64     `json:"id"`
	StoredAt time.Time `json:"stored_at"`
}

// Send POSTs the report as JSON to the collector at endpoint. When
// secret is non-empty, it is sent as the X-Client-Secret header.
// Returns the assigned record ID when the collector includes one; a
// non-2xx status is an error carrying the status line.
func Send(ctx context.Context, endpoint, secret string, rep *report.Report) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	body, err := json.Marshal(rep)
	if err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Client-Secret", secret)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("submit report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("collector returned %s: %s", resp.Status, bytes.TrimSpace(msg))
	}

	// A reply body is optional; local console output is the source of
	// truth either way.
	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, nil
	}
	return out.ID, nil
}
