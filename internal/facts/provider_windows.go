//go:build windows

package facts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows/registry"
)

// commandTimeout bounds every external tool invocation.
const commandTimeout = 15 * time.Second

const tpmNamespace = `root\CIMV2\Security\MicrosoftTpm`

// WMIProvider collects facts from the local Windows host through WMI,
// the registry, and the boot-configuration tools.
type WMIProvider struct{}

// NewProvider returns the native provider for this platform.
func NewProvider() Provider {
	return WMIProvider{}
}

type win32ComputerSystem struct {
	Domain       string
	PartOfDomain bool
}

func (WMIProvider) Identity() (IdentityInfo, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return IdentityInfo{}, fmt.Errorf("hostname: %w", err)
	}

	var cs []win32ComputerSystem
	if err := wmi.Query("SELECT Domain, PartOfDomain FROM Win32_ComputerSystem", &cs); err != nil {
		return IdentityInfo{}, err
	}

	info := IdentityInfo{Hostname: hostname}
	if len(cs) > 0 {
		info.Domain = cs[0].Domain
		info.PartOfDomain = cs[0].PartOfDomain
	}

	// Cloud-join status is only consulted when classic domain membership
	// reports WORKGROUP. dsregcmd is absent on older builds, so a failed
	// invocation means "not cloud-joined" rather than a fatal error.
	if !info.PartOfDomain || strings.EqualFold(info.Domain, "WORKGROUP") {
		if out, err := runTool("dsregcmd", "/status"); err == nil {
			info.CloudJoined = parseJoinStatus(out)
		}
	}

	return info, nil
}

type win32Processor struct {
	Name                      string
	MaxClockSpeed             uint32
	AddressWidth              uint16
	NumberOfCores             uint32
	NumberOfLogicalProcessors uint32
}

func (WMIProvider) Processor() (ProcessorInfo, error) {
	var procs []win32Processor
	q := "SELECT Name, MaxClockSpeed, AddressWidth, NumberOfCores, NumberOfLogicalProcessors FROM Win32_Processor"
	if err := wmi.Query(q, &procs); err != nil {
		return ProcessorInfo{}, err
	}
	if len(procs) == 0 {
		return ProcessorInfo{}, fmt.Errorf("no processor rows returned")
	}

	p := procs[0]
	return ProcessorInfo{
		Name:              strings.TrimSpace(p.Name),
		MaxClockSpeedMHz:  p.MaxClockSpeed,
		AddressWidth:      p.AddressWidth,
		Cores:             p.NumberOfCores,
		LogicalProcessors: p.NumberOfLogicalProcessors,
	}, nil
}

type win32Tpm struct {
	SpecVersion string
}

func (WMIProvider) TPM() (TpmInfo, error) {
	var devices []win32Tpm
	q := "SELECT SpecVersion FROM Win32_Tpm"
	if err := wmi.QueryNamespace(q, &devices, tpmNamespace); err != nil {
		return TpmInfo{}, err
	}
	// Zero rows means no TPM device, which is a well-defined absence.
	if len(devices) == 0 {
		return TpmInfo{Present: false, SpecVersion: NoTPM}, nil
	}
	return TpmInfo{Present: true, SpecVersion: devices[0].SpecVersion}, nil
}

type win32PhysicalMemory struct {
	Capacity      uint64
	DeviceLocator string
}

func (WMIProvider) Memory() (MemoryInfo, error) {
	var pm []win32PhysicalMemory
	if err := wmi.Query("SELECT Capacity, DeviceLocator FROM Win32_PhysicalMemory", &pm); err != nil {
		return MemoryInfo{}, err
	}

	modules := make([]MemoryModule, len(pm))
	for i, m := range pm {
		modules[i] = MemoryModule{
			CapacityBytes: m.Capacity,
			DeviceLocator: m.DeviceLocator,
		}
	}
	return NewMemoryInfo(modules), nil
}

type win32DiskDrive struct {
	Model string
	Size  uint64
}

func (WMIProvider) Disk() (DiskInfo, error) {
	var disks []win32DiskDrive
	if err := wmi.Query("SELECT Model, Size FROM Win32_DiskDrive", &disks); err != nil {
		return DiskInfo{}, err
	}
	if len(disks) == 0 {
		return DiskInfo{}, fmt.Errorf("no disk rows returned")
	}
	// First-enumerated disk is the representative device.
	return DiskInfo{
		Model:     strings.TrimSpace(disks[0].Model),
		SizeBytes: disks[0].Size,
	}, nil
}

type win32VideoController struct {
	Name                        string
	CurrentHorizontalResolution uint32
	CurrentVerticalResolution   uint32
	CurrentBitsPerPixel         uint32
}

func (WMIProvider) Display() (DisplayInfo, error) {
	var vcs []win32VideoController
	q := "SELECT Name, CurrentHorizontalResolution, CurrentVerticalResolution, CurrentBitsPerPixel FROM Win32_VideoController"
	if err := wmi.Query(q, &vcs); err != nil {
		return DisplayInfo{}, err
	}
	if len(vcs) == 0 {
		return DisplayInfo{}, fmt.Errorf("no video controller rows returned")
	}

	v := vcs[0]
	return DisplayInfo{
		Name:                 strings.TrimSpace(v.Name),
		HorizontalResolution: v.CurrentHorizontalResolution,
		VerticalResolution:   v.CurrentVerticalResolution,
		BitsPerPixel:         v.CurrentBitsPerPixel,
	}, nil
}

func (WMIProvider) Firmware() (FirmwareInfo, error) {
	// bcdedit needs elevation; a denied query must surface rather than
	// silently report BIOS and falsify the Secure Boot verdict.
	out, err := runTool("bcdedit", "/enum", "{current}")
	if err != nil {
		return FirmwareInfo{}, fmt.Errorf("bcdedit: %w", err)
	}

	info := FirmwareInfo{Mode: resolveFirmwareMode(out)}

	enabled, err := readSecureBootState()
	if err != nil {
		return FirmwareInfo{}, fmt.Errorf("secure boot state: %w", err)
	}
	info.SecureBootEnabled = enabled

	return info, nil
}

// readSecureBootState reads the firmware-reported Secure Boot flag from
// the registry. A missing key means the firmware is not Secure Boot
// capable (legacy BIOS), which is an absence rather than an error.
func readSecureBootState() (bool, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SYSTEM\CurrentControlSet\Control\SecureBoot\State`, registry.QUERY_VALUE)
	if err == registry.ErrNotExist {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("UEFISecureBootEnabled")
	if err == registry.ErrNotExist {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// runTool runs a system tool with a bounded timeout and a hidden window,
// returning its stdout as a string.
func runTool(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
