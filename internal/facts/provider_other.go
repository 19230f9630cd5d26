//go:build !windows

package facts

import (
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostProvider is the development fallback for non-Windows hosts. It
// answers the fact categories gopsutil and sysfs can cover; display
// facts are a well-defined absence since the readiness checks target
// Windows display drivers.
type HostProvider struct{}

// NewProvider returns the native provider for this platform.
func NewProvider() Provider {
	return HostProvider{}
}

func (HostProvider) Identity() (IdentityInfo, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return IdentityInfo{}, fmt.Errorf("hostname: %w", err)
	}
	return IdentityInfo{Hostname: hostname, Domain: "WORKGROUP"}, nil
}

func (HostProvider) Processor() (ProcessorInfo, error) {
	infos, err := cpu.Info()
	if err != nil {
		return ProcessorInfo{}, err
	}
	if len(infos) == 0 {
		return ProcessorInfo{}, fmt.Errorf("no processor entries returned")
	}

	logical, err := cpu.Counts(true)
	if err != nil {
		logical = 0
	}
	physical, err := cpu.Counts(false)
	if err != nil {
		physical = 0
	}

	c := infos[0]
	return ProcessorInfo{
		Name:              strings.TrimSpace(c.ModelName),
		MaxClockSpeedMHz:  uint32(c.Mhz),
		AddressWidth:      64,
		Cores:             uint32(physical),
		LogicalProcessors: uint32(logical),
	}, nil
}

func (HostProvider) TPM() (TpmInfo, error) {
	// Device nodes appear only when a TPM is present and the driver is
	// loaded; their absence is an absence, not an error.
	major, err := os.ReadFile("/sys/class/tpm/tpm0/tpm_version_major")
	if err != nil {
		if os.IsNotExist(err) {
			return TpmInfo{Present: false, SpecVersion: NoTPM}, nil
		}
		return TpmInfo{}, err
	}
	return TpmInfo{
		Present:     true,
		SpecVersion: strings.TrimSpace(string(major)) + ".0",
	}, nil
}

func (HostProvider) Memory() (MemoryInfo, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return MemoryInfo{}, err
	}
	// No per-DIMM breakdown without DMI table access; report the total
	// as a single module so the sum invariant still holds.
	return NewMemoryInfo([]MemoryModule{{CapacityBytes: vm.Total}}), nil
}

func (HostProvider) Disk() (DiskInfo, error) {
	usage, err := disk.Usage("/")
	if err != nil {
		return DiskInfo{}, err
	}
	return DiskInfo{Model: "root filesystem", SizeBytes: usage.Total}, nil
}

func (HostProvider) Display() (DisplayInfo, error) {
	return DisplayInfo{}, nil
}

func (HostProvider) Firmware() (FirmwareInfo, error) {
	info := FirmwareInfo{Mode: FirmwareModeBIOS}

	if _, err := os.Stat("/sys/firmware/efi"); err == nil {
		info.Mode = FirmwareModeUEFI
	} else if !os.IsNotExist(err) {
		return FirmwareInfo{}, err
	}

	// The SecureBoot efivar carries four bytes of attributes followed by
	// the flag byte.
	const secureBootVar = "/sys/firmware/efi/efivars/SecureBoot-8be4df61-93ca-11d2-aa0d-00e098032b8c"
	data, err := os.ReadFile(secureBootVar)
	if err == nil && len(data) >= 5 {
		info.SecureBootEnabled = data[4] == 1
	}

	return info, nil
}
