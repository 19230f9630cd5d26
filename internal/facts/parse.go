package facts

import (
	"bufio"
	"strings"
)

// resolveFirmwareMode derives the firmware boot mode from boot-configuration
// output (bcdedit). A loader path ending in .efi means the machine booted
// through UEFI; the legacy loader ends in .exe.
func resolveFirmwareMode(bootConfig string) string {
	sc := bufio.NewScanner(strings.NewReader(bootConfig))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || !strings.EqualFold(fields[0], "path") {
			continue
		}
		if strings.HasSuffix(strings.ToLower(fields[1]), ".efi") {
			return FirmwareModeUEFI
		}
		return FirmwareModeBIOS
	}
	return FirmwareModeBIOS
}

// parseJoinStatus reports whether device-registration output (dsregcmd
// /status) declares the host Azure AD joined. Lines look like
// "AzureAdJoined : YES" with variable indentation.
func parseJoinStatus(status string) bool {
	sc := bufio.NewScanner(strings.NewReader(status))
	for sc.Scan() {
		key, value, found := strings.Cut(sc.Text(), ":")
		if !found {
			continue
		}
		if strings.TrimSpace(key) == "AzureAdJoined" {
			return strings.EqualFold(strings.TrimSpace(value), "YES")
		}
	}
	return false
}
