//go:build windows

package facts

import "golang.org/x/sys/windows"

// IsElevated reports whether the process token carries administrator
// rights. TPM and boot-configuration queries are denied without them.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
