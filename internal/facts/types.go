package facts

import (
	"strings"
	"time"
)

// Firmware boot modes reported by FirmwareInfo.Mode.
const (
	FirmwareModeUEFI = "UEFI"
	FirmwareModeBIOS = "BIOS"
)

// NoTPM is the placeholder spec version reported when no TPM device exists.
const NoTPM = "NO TPM"

// CloudJoinedLabel replaces "WORKGROUP" when the host is cloud-joined
// without classic domain membership.
const CloudJoinedLabel = "AzureAD"

// Facts holds every fact collected from the local host in one pass.
// It is built once per run and never mutated afterwards.
type Facts struct {
	CollectedAt time.Time     `json:"collected_at"`
	Identity    IdentityInfo  `json:"identity"`
	Processor   ProcessorInfo `json:"processor"`
	TPM         TpmInfo       `json:"tpm"`
	Memory      MemoryInfo    `json:"memory"`
	Disk        DiskInfo      `json:"disk"`
	Display     DisplayInfo   `json:"display"`
	Firmware    FirmwareInfo  `json:"firmware"`
}

// IdentityInfo holds the hostname and membership facts used to label the
// machine in reports.
type IdentityInfo struct {
	Hostname     string `json:"hostname"`
	Domain       string `json:"domain"`
	PartOfDomain bool   `json:"part_of_domain"`
	CloudJoined  bool   `json:"cloud_joined"`
}

// Label returns the name reported for the machine's membership: the domain
// when the host is domain-joined, the cloud-joined label when the host only
// reports WORKGROUP but is cloud-joined, and the raw domain value otherwise.
func (i IdentityInfo) Label() string {
	if i.PartOfDomain && i.Domain != "" && !strings.EqualFold(i.Domain, "WORKGROUP") {
		return i.Domain
	}
	if i.CloudJoined {
		return CloudJoinedLabel
	}
	return i.Domain
}

// ProcessorInfo holds details of the first-enumerated processor package.
type ProcessorInfo struct {
	Name              string `json:"name"`
	MaxClockSpeedMHz  uint32 `json:"max_clock_speed_mhz"`
	AddressWidth      uint16 `json:"address_width"`
	Cores             uint32 `json:"cores"`
	LogicalProcessors uint32 `json:"logical_processors"`
}

// TpmInfo holds the TPM device state. Present is false when no device
// exists; SpecVersion then carries the NoTPM placeholder.
type TpmInfo struct {
	Present     bool   `json:"present"`
	SpecVersion string `json:"spec_version"`
}

// VersionToken returns the first whitespace-delimited, comma-trimmed segment
// of SpecVersion (e.g. "2.0" from "2.0, 0, 1.38"). Empty when no TPM is
// present or the version string is empty.
func (t TpmInfo) VersionToken() string {
	if !t.Present {
		return ""
	}
	fields := strings.Fields(t.SpecVersion)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSuffix(fields[0], ",")
}

// MemoryInfo holds installed physical memory: the per-module breakdown and
// the capacity sum across all modules.
type MemoryInfo struct {
	TotalBytes uint64         `json:"total_bytes"`
	Modules    []MemoryModule `json:"modules,omitempty"`
}

// MemoryModule holds a single physical memory module.
type MemoryModule struct {
	CapacityBytes uint64 `json:"capacity_bytes"`
	DeviceLocator string `json:"device_locator,omitempty"`
}

// NewMemoryInfo builds a MemoryInfo whose TotalBytes is the sum of the given
// module capacities.
func NewMemoryInfo(modules []MemoryModule) MemoryInfo {
	info := MemoryInfo{Modules: modules}
	for _, m := range modules {
		info.TotalBytes += m.CapacityBytes
	}
	return info
}

// DiskInfo holds the first-enumerated disk device. When multiple disks
// exist the first is taken as representative; sizes are never summed.
type DiskInfo struct {
	Model     string `json:"model"`
	SizeBytes uint64 `json:"size_bytes"`
}

// DisplayInfo holds the first-enumerated video controller's active mode.
type DisplayInfo struct {
	Name                 string `json:"name"`
	HorizontalResolution uint32 `json:"horizontal_resolution"`
	VerticalResolution   uint32 `json:"vertical_resolution"`
	BitsPerPixel         uint32 `json:"bits_per_pixel"`
}

// FirmwareInfo holds the firmware boot mode and Secure Boot state.
type FirmwareInfo struct {
	Mode              string `json:"mode"`
	SecureBootEnabled bool   `json:"secure_boot_enabled"`
}
