package dxdiag

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDumpAfter(t *testing.T, delay time.Duration, content string) func(context.Context, string) error {
	t.Helper()
	return func(_ context.Context, path string) error {
		go func() {
			time.Sleep(delay)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Errorf("write dump: %v", err)
			}
		}()
		return nil
	}
}

func TestBridgeRun(t *testing.T) {
	b := &Bridge{
		WorkDir:      t.TempDir(),
		PollInterval: 10 * time.Millisecond,
		WaitCeiling:  2 * time.Second,
		Launch:       writeDumpAfter(t, 30*time.Millisecond, sampleDump),
	}

	diag, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if diag.DirectXVersion != "DirectX 12" {
		t.Errorf("DirectXVersion = %q, want %q", diag.DirectXVersion, "DirectX 12")
	}
	if diag.DriverModel != "WDDM 2.7" {
		t.Errorf("DriverModel = %q, want %q", diag.DriverModel, "WDDM 2.7")
	}
}

func TestBridgeTimeout(t *testing.T) {
	b := &Bridge{
		WorkDir:      t.TempDir(),
		PollInterval: 10 * time.Millisecond,
		WaitCeiling:  50 * time.Millisecond,
		Launch:       func(context.Context, string) error { return nil }, // never writes
	}

	_, err := b.Run(context.Background())
	if !errors.Is(err, ErrDumpTimeout) {
		t.Fatalf("expected ErrDumpTimeout, got %v", err)
	}
}

func TestBridgeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	b := &Bridge{
		WorkDir:      t.TempDir(),
		PollInterval: 10 * time.Millisecond,
		WaitCeiling:  5 * time.Second,
		Launch: func(context.Context, string) error {
			cancel()
			return nil
		},
	}

	_, err := b.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBridgeLaunchFailure(t *testing.T) {
	boom := errors.New("tool not found")
	b := &Bridge{
		WorkDir: t.TempDir(),
		Launch:  func(context.Context, string) error { return boom },
	}

	if _, err := b.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected launch error, got %v", err)
	}
}

func TestBridgeMalformedDumpDegrades(t *testing.T) {
	b := &Bridge{
		WorkDir:      t.TempDir(),
		PollInterval: 10 * time.Millisecond,
		WaitCeiling:  2 * time.Second,
		Launch:       writeDumpAfter(t, 0, "not xml"),
	}

	diag, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("malformed dump must not fail the run: %v", err)
	}
	if diag != (Diagnostic{}) {
		t.Errorf("expected an empty diagnostic, got %+v", diag)
	}
}

func TestBridgeRemovesStaleDump(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, DumpFileName)
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	var sawStale bool
	b := &Bridge{
		WorkDir:      dir,
		PollInterval: 10 * time.Millisecond,
		WaitCeiling:  2 * time.Second,
		Launch: func(_ context.Context, path string) error {
			if _, err := os.Stat(path); err == nil {
				sawStale = true
			}
			return os.WriteFile(path, []byte(sampleDump), 0o644)
		},
	}

	if _, err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sawStale {
		t.Error("stale dump still present at launch time")
	}
}
