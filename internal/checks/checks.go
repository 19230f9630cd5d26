// Package checks evaluates the published upgrade-eligibility criteria
// against collected facts. Every predicate is a pure function and every
// threshold comparison is inclusive.
package checks

import (
	"fmt"
	"strings"

	"github.com/go-tangra/go-tangra-readiness/internal/dxdiag"
	"github.com/go-tangra/go-tangra-readiness/internal/facts"
)

// Check labels, printed and reported in this fixed order.
const (
	CheckProcessor  = "Processor"
	CheckTPM        = "TPM"
	CheckMemory     = "Memory"
	CheckDisk       = "Disk"
	CheckSecureBoot = "Secure Boot"
	CheckDirectX    = "DirectX"
	CheckWDDM       = "WDDM"
	CheckDisplay    = "Display"
)

// Published minimums.
const (
	minClockGHz      = 1.0
	minMemoryGiB     = 4.0
	minDiskGiB       = 64.0
	requiredDirectX  = "DirectX 12"
	minDriverModel   = 2.0
	minVerticalRes   = 720
	minHorizontalRes = 1200
	strictBitDepth   = 32
	minLegacyDepth   = 8
)

const gib = 1 << 30

// DepthProfile selects the display bit-depth policy. Two policies exist
// historically, so both are named profiles rather than one guessed
// threshold.
type DepthProfile string

const (
	// DepthProfileStrict requires exactly 32 bits per pixel.
	DepthProfileStrict DepthProfile = "strict"
	// DepthProfileLegacy accepts any depth of 8 bits per pixel or more.
	DepthProfileLegacy DepthProfile = "legacy"
)

// ParseDepthProfile maps a flag value to a DepthProfile.
func ParseDepthProfile(s string) (DepthProfile, error) {
	switch DepthProfile(strings.ToLower(s)) {
	case DepthProfileStrict:
		return DepthProfileStrict, nil
	case DepthProfileLegacy:
		return DepthProfileLegacy, nil
	default:
		return "", fmt.Errorf("unknown depth profile %q (want %q or %q)", s, DepthProfileStrict, DepthProfileLegacy)
	}
}

// Verdict is one check outcome. Detail always carries the raw measured
// value so a Fail is explainable from the report alone.
type Verdict struct {
	Check  string `json:"check"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Evaluate runs all eight checks in their fixed reporting order.
func Evaluate(f *facts.Facts, d dxdiag.Diagnostic, profile DepthProfile) []Verdict {
	return []Verdict{
		Processor(f.Processor),
		TPM(f.TPM),
		Memory(f.Memory),
		Disk(f.Disk),
		SecureBoot(f.Firmware),
		DirectX(d),
		WDDM(d),
		Display(f.Display, profile),
	}
}

// Processor requires a maximum clock speed of at least 1 GHz.
func Processor(p facts.ProcessorInfo) Verdict {
	ghz := float64(p.MaxClockSpeedMHz) / 1000
	return Verdict{
		Check:  CheckProcessor,
		Passed: ghz >= minClockGHz,
		Detail: fmt.Sprintf("%.1f GHz (minimum %.0f GHz)", ghz, minClockGHz),
	}
}

// TPM requires a present device whose version token contains "2.0".
func TPM(t facts.TpmInfo) Verdict {
	if !t.Present {
		return Verdict{Check: CheckTPM, Passed: false, Detail: facts.NoTPM}
	}
	return Verdict{
		Check:  CheckTPM,
		Passed: strings.Contains(t.VersionToken(), "2.0"),
		Detail: fmt.Sprintf("version %s (minimum 2.0)", t.SpecVersion),
	}
}

// Memory requires at least 4 GiB of installed physical memory.
func Memory(m facts.MemoryInfo) Verdict {
	total := float64(m.TotalBytes) / gib
	return Verdict{
		Check:  CheckMemory,
		Passed: total >= minMemoryGiB,
		Detail: fmt.Sprintf("%.1f GiB installed (minimum %.0f GiB)", total, minMemoryGiB),
	}
}

// Disk requires the representative disk to hold at least 64 GiB.
func Disk(d facts.DiskInfo) Verdict {
	size := float64(d.SizeBytes) / gib
	return Verdict{
		Check:  CheckDisk,
		Passed: size >= minDiskGiB,
		Detail: fmt.Sprintf("%.1f GiB (minimum %.0f GiB)", size, minDiskGiB),
	}
}

// SecureBoot requires UEFI firmware with Secure Boot enabled.
func SecureBoot(f facts.FirmwareInfo) Verdict {
	return Verdict{
		Check:  CheckSecureBoot,
		Passed: f.SecureBootEnabled && f.Mode == facts.FirmwareModeUEFI,
		Detail: fmt.Sprintf("firmware %s, secure boot enabled: %t", f.Mode, f.SecureBootEnabled),
	}
}

// DirectX requires the negotiated API version to be DirectX 12.
func DirectX(d dxdiag.Diagnostic) Verdict {
	got := d.DirectXVersion
	if got == "" {
		got = "unknown"
	}
	return Verdict{
		Check:  CheckDirectX,
		Passed: d.DirectXVersion == requiredDirectX,
		Detail: fmt.Sprintf("%s (required %s)", got, requiredDirectX),
	}
}

// WDDM requires a WDDM driver model of version 2.0 or later. The
// version segment is compared as a decimal, never lexically.
func WDDM(d dxdiag.Diagnostic) Verdict {
	v := Verdict{Check: CheckWDDM}
	if !strings.Contains(d.DriverModel, "WDDM") {
		got := d.DriverModel
		if got == "" {
			got = "unknown"
		}
		v.Detail = fmt.Sprintf("driver model %s (required WDDM %.1f or later)", got, minDriverModel)
		return v
	}
	version, ok := d.DriverModelVersion()
	if !ok {
		v.Detail = fmt.Sprintf("driver model %s has no parsable version", d.DriverModel)
		return v
	}
	v.Passed = version >= minDriverModel
	v.Detail = fmt.Sprintf("WDDM %.1f (minimum %.1f)", version, minDriverModel)
	return v
}

// Display requires at least 1200x720 at the bit depth the selected
// profile demands.
func Display(d facts.DisplayInfo, profile DepthProfile) Verdict {
	depthOK := d.BitsPerPixel == strictBitDepth
	depthWant := fmt.Sprintf("%dbpp", strictBitDepth)
	if profile == DepthProfileLegacy {
		depthOK = d.BitsPerPixel >= minLegacyDepth
		depthWant = fmt.Sprintf("at least %dbpp", minLegacyDepth)
	}
	return Verdict{
		Check: CheckDisplay,
		Passed: d.VerticalResolution >= minVerticalRes &&
			d.HorizontalResolution >= minHorizontalRes &&
			depthOK,
		Detail: fmt.Sprintf("%dx%d at %dbpp (minimum %dx%d, %s)",
			d.HorizontalResolution, d.VerticalResolution, d.BitsPerPixel,
			minHorizontalRes, minVerticalRes, depthWant),
	}
}
