//go:build !windows

package winsvc

import (
	"context"
	"errors"
)

// ServiceConfig describes a service registration; it is only honored
// on Windows.
type ServiceConfig struct {
	Name        string
	DisplayName string
	Description string
	Args        []string
}

var errUnsupported = errors.New("windows services are not supported on this platform")

// IsWindowsService always returns false on non-Windows platforms.
func IsWindowsService() bool { return false }

// RunService is not supported on non-Windows platforms.
func RunService(_ string, _ func(ctx context.Context) error) error {
	return errUnsupported
}

// SetupEventLog is a no-op on non-Windows platforms.
func SetupEventLog(_ string) {}

// Install is not supported on non-Windows platforms.
func Install(_ ServiceConfig) error { return errUnsupported }

// Uninstall is not supported on non-Windows platforms.
func Uninstall(_ string) error { return errUnsupported }

// Start is not supported on non-Windows platforms.
func Start(_ string) error { return errUnsupported }

// Stop is not supported on non-Windows platforms.
func Stop(_ string) error { return errUnsupported }
