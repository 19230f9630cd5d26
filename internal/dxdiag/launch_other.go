//go:build !windows

package dxdiag

import (
	"context"
	"errors"
)

// launchTool is unavailable off Windows; tests inject Bridge.Launch.
func launchTool(_ context.Context, _ string) error {
	return errors.New("the dxdiag tool is only available on Windows")
}
