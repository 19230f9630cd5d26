// Package dxdiag bridges to the external graphics diagnostic tool. The
// tool writes its dump asynchronously and signals completion through no
// channel other than the output file appearing, so the bridge launches
// it, polls for the file under a deadline, and parses the result.
package dxdiag

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ErrDumpTimeout is returned when the diagnostic dump never appears
// within the wait ceiling. This is the one fatal, report-less abort in
// a readiness run.
var ErrDumpTimeout = errors.New("timed out waiting for diagnostic dump")

// DumpFileName is the dump file the external tool is asked to write
// inside the bridge working directory.
const DumpFileName = "dxdiag.xml"

const (
	defaultPollInterval = time.Second
	defaultWaitCeiling  = 120 * time.Second
)

// Bridge launches the diagnostic tool and waits for its dump.
// A zero-value field falls back to its default; Launch is injectable so
// tests can stand in for the real tool.
type Bridge struct {
	WorkDir      string
	PollInterval time.Duration
	WaitCeiling  time.Duration
	Launch       func(ctx context.Context, outputPath string) error
}

// Run drives the bridge through launch, wait, and parse. A dump that
// exists but cannot be parsed degrades to an empty Diagnostic with a
// logged warning; downstream checks then fail on the absent values
// instead of the run crashing.
func (b *Bridge) Run(ctx context.Context) (Diagnostic, error) {
	if b.WorkDir == "" {
		return Diagnostic{}, errors.New("dxdiag: working directory not set")
	}
	if err := os.MkdirAll(b.WorkDir, 0o755); err != nil {
		return Diagnostic{}, fmt.Errorf("create working directory: %w", err)
	}

	path := filepath.Join(b.WorkDir, DumpFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return Diagnostic{}, fmt.Errorf("remove stale dump: %w", err)
	}

	launch := b.Launch
	if launch == nil {
		launch = launchTool
	}
	if err := launch(ctx, path); err != nil {
		return Diagnostic{}, fmt.Errorf("launch diagnostic tool: %w", err)
	}

	if err := b.waitForDump(ctx, path); err != nil {
		return Diagnostic{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Diagnostic{}, fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()

	diag, err := parseDump(f)
	if err != nil {
		log.Printf("warning: malformed diagnostic dump at %s: %v", path, err)
		return Diagnostic{}, nil
	}
	return diag, nil
}

// waitForDump polls for the dump file once per interval until it
// appears, the ceiling elapses, or the context is cancelled.
func (b *Bridge) waitForDump(ctx context.Context, path string) error {
	interval := b.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ceiling := b.WaitCeiling
	if ceiling <= 0 {
		ceiling = defaultWaitCeiling
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.NewTimer(ceiling)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("no dump at %s after %s: %w", path, ceiling, ErrDumpTimeout)
		case <-ticker.C:
			if _, err := os.Stat(path); err == nil {
				return nil
			}
		}
	}
}
