//go:build !windows

package facts

// IsElevated always reports true off Windows; the fallback provider
// reads nothing that needs special rights.
func IsElevated() bool {
	return true
}
