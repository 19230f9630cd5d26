//go:build windows

package dxdiag

import (
	"context"
	"os/exec"
	"syscall"
)

// launchTool starts dxdiag writing an XML dump to outputPath. dxdiag
// exits only after the dump is complete, so the process is started and
// reaped in the background while the bridge polls for the file.
func launchTool(ctx context.Context, outputPath string) error {
	cmd := exec.CommandContext(ctx, "dxdiag", "/whql:off", "/x", outputPath)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
