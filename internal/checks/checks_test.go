package checks

import (
	"testing"

	"github.com/go-tangra/go-tangra-readiness/internal/dxdiag"
	"github.com/go-tangra/go-tangra-readiness/internal/facts"
)

const gibTest = 1 << 30

func TestProcessor(t *testing.T) {
	tests := []struct {
		mhz  uint32
		want bool
	}{
		{1000, true}, // inclusive boundary
		{999, false},
		{2400, true},
		{0, false},
	}

	for _, tc := range tests {
		if got := Processor(facts.ProcessorInfo{MaxClockSpeedMHz: tc.mhz}); got.Passed != tc.want {
			t.Errorf("Processor(%d MHz) = %v, want %v (%s)", tc.mhz, got.Passed, tc.want, got.Detail)
		}
	}
}

func TestTPM(t *testing.T) {
	tests := []struct {
		name string
		tpm  facts.TpmInfo
		want bool
	}{
		{"v2 full string", facts.TpmInfo{Present: true, SpecVersion: "2.0, 0, 1.38"}, true},
		{"v1.2", facts.TpmInfo{Present: true, SpecVersion: "1.2"}, false},
		{"absent", facts.TpmInfo{Present: false, SpecVersion: facts.NoTPM}, false},
	}

	for _, tc := range tests {
		got := TPM(tc.tpm)
		if got.Passed != tc.want {
			t.Errorf("%s: TPM = %v, want %v", tc.name, got.Passed, tc.want)
		}
	}

	if got := TPM(facts.TpmInfo{}); got.Detail != facts.NoTPM {
		t.Errorf("absent TPM detail = %q, want the %q placeholder", got.Detail, facts.NoTPM)
	}
}

func TestMemory(t *testing.T) {
	tests := []struct {
		name    string
		modules []facts.MemoryModule
		want    bool
	}{
		{"2+2 GiB boundary", []facts.MemoryModule{{CapacityBytes: 2 * gibTest}, {CapacityBytes: 2 * gibTest}}, true},
		{"2+1 GiB", []facts.MemoryModule{{CapacityBytes: 2 * gibTest}, {CapacityBytes: 1 * gibTest}}, false},
		{"single 8 GiB", []facts.MemoryModule{{CapacityBytes: 8 * gibTest}}, true},
	}

	for _, tc := range tests {
		if got := Memory(facts.NewMemoryInfo(tc.modules)); got.Passed != tc.want {
			t.Errorf("%s: Memory = %v, want %v (%s)", tc.name, got.Passed, tc.want, got.Detail)
		}
	}
}

func TestDisk(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		want  bool
	}{
		{"exactly 64 GiB", 64 * gibTest, true}, // inclusive boundary
		{"63.9 GiB", 64*gibTest - 100*1024*1024, false},
		{"256 GiB", 256 * gibTest, true},
	}

	for _, tc := range tests {
		if got := Disk(facts.DiskInfo{SizeBytes: tc.bytes}); got.Passed != tc.want {
			t.Errorf("%s: Disk = %v, want %v (%s)", tc.name, got.Passed, tc.want, got.Detail)
		}
	}
}

func TestSecureBoot(t *testing.T) {
	tests := []struct {
		name string
		fw   facts.FirmwareInfo
		want bool
	}{
		{"uefi enabled", facts.FirmwareInfo{Mode: facts.FirmwareModeUEFI, SecureBootEnabled: true}, true},
		{"uefi disabled", facts.FirmwareInfo{Mode: facts.FirmwareModeUEFI, SecureBootEnabled: false}, false},
		{"bios", facts.FirmwareInfo{Mode: facts.FirmwareModeBIOS, SecureBootEnabled: false}, false},
	}

	for _, tc := range tests {
		if got := SecureBoot(tc.fw); got.Passed != tc.want {
			t.Errorf("%s: SecureBoot = %v, want %v", tc.name, got.Passed, tc.want)
		}
	}
}

func TestDirectX(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"DirectX 12", true},
		{"DirectX 11", false},
		{"", false},
	}

	for _, tc := range tests {
		got := DirectX(dxdiag.Diagnostic{DirectXVersion: tc.version})
		if got.Passed != tc.want {
			t.Errorf("DirectX(%q) = %v, want %v", tc.version, got.Passed, tc.want)
		}
	}
}

func TestWDDM(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{"WDDM 2.0", true}, // inclusive boundary
		{"WDDM 2.7", true},
		{"WDDM 1.3", false},
		{"XDDM 3.0", false}, // no WDDM substring, numeric suffix irrelevant
		{"WDDM", false},
		{"", false},
	}

	for _, tc := range tests {
		got := WDDM(dxdiag.Diagnostic{DriverModel: tc.model})
		if got.Passed != tc.want {
			t.Errorf("WDDM(%q) = %v, want %v (%s)", tc.model, got.Passed, tc.want, got.Detail)
		}
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name    string
		display facts.DisplayInfo
		profile DepthProfile
		want    bool
	}{
		{"720p 32bpp strict", facts.DisplayInfo{HorizontalResolution: 1280, VerticalResolution: 720, BitsPerPixel: 32}, DepthProfileStrict, true},
		{"720p 24bpp strict", facts.DisplayInfo{HorizontalResolution: 1280, VerticalResolution: 720, BitsPerPixel: 24}, DepthProfileStrict, false},
		{"720p 24bpp legacy", facts.DisplayInfo{HorizontalResolution: 1280, VerticalResolution: 720, BitsPerPixel: 24}, DepthProfileLegacy, true},
		{"720p 8bpp legacy", facts.DisplayInfo{HorizontalResolution: 1280, VerticalResolution: 720, BitsPerPixel: 8}, DepthProfileLegacy, true},
		{"720p 4bpp legacy", facts.DisplayInfo{HorizontalResolution: 1280, VerticalResolution: 720, BitsPerPixel: 4}, DepthProfileLegacy, false},
		{"too narrow", facts.DisplayInfo{HorizontalResolution: 1024, VerticalResolution: 768, BitsPerPixel: 32}, DepthProfileStrict, false},
		{"too short", facts.DisplayInfo{HorizontalResolution: 1280, VerticalResolution: 600, BitsPerPixel: 32}, DepthProfileStrict, false},
	}

	for _, tc := range tests {
		got := Display(tc.display, tc.profile)
		if got.Passed != tc.want {
			t.Errorf("%s: Display = %v, want %v (%s)", tc.name, got.Passed, tc.want, got.Detail)
		}
	}
}

func TestParseDepthProfile(t *testing.T) {
	if p, err := ParseDepthProfile("strict"); err != nil || p != DepthProfileStrict {
		t.Errorf("ParseDepthProfile(strict) = %v, %v", p, err)
	}
	if p, err := ParseDepthProfile("Legacy"); err != nil || p != DepthProfileLegacy {
		t.Errorf("ParseDepthProfile(Legacy) = %v, %v", p, err)
	}
	if _, err := ParseDepthProfile("loose"); err == nil {
		t.Error("ParseDepthProfile accepted an unknown profile")
	}
}

func TestEvaluateOrder(t *testing.T) {
	f := &facts.Facts{}
	verdicts := Evaluate(f, dxdiag.Diagnostic{}, DepthProfileStrict)

	wantOrder := []string{
		CheckProcessor, CheckTPM, CheckMemory, CheckDisk,
		CheckSecureBoot, CheckDirectX, CheckWDDM, CheckDisplay,
	}
	if len(verdicts) != len(wantOrder) {
		t.Fatalf("Evaluate returned %d verdicts, want %d", len(verdicts), len(wantOrder))
	}
	for i, want := range wantOrder {
		if verdicts[i].Check != want {
			t.Errorf("verdict %d = %q, want %q", i, verdicts[i].Check, want)
		}
	}
}
