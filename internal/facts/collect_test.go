package facts

import (
	"errors"
	"strings"
	"testing"
)

func fixtureFacts() Facts {
	return Facts{
		Identity:  IdentityInfo{Hostname: "desk-01", Domain: "corp.example.com", PartOfDomain: true},
		Processor: ProcessorInfo{Name: "Test CPU", MaxClockSpeedMHz: 2400, AddressWidth: 64, Cores: 4, LogicalProcessors: 8},
		TPM:       TpmInfo{Present: true, SpecVersion: "2.0, 0, 1.38"},
		Memory:    NewMemoryInfo([]MemoryModule{{CapacityBytes: 8 << 30}}),
		Disk:      DiskInfo{Model: "Test SSD", SizeBytes: 256 << 30},
		Display:   DisplayInfo{Name: "Test GPU", HorizontalResolution: 1920, VerticalResolution: 1080, BitsPerPixel: 32},
		Firmware:  FirmwareInfo{Mode: FirmwareModeUEFI, SecureBootEnabled: true},
	}
}

func TestCollect(t *testing.T) {
	p := StaticProvider{Facts: fixtureFacts()}

	got, err := Collect(p)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if got.CollectedAt.IsZero() {
		t.Error("CollectedAt not stamped")
	}
	if got.Identity.Hostname != "desk-01" {
		t.Errorf("hostname = %q, want desk-01", got.Identity.Hostname)
	}
	if got.Memory.TotalBytes != 8<<30 {
		t.Errorf("memory total = %d, want %d", got.Memory.TotalBytes, uint64(8<<30))
	}
}

func TestCollectCategoryError(t *testing.T) {
	denied := errors.New("access denied")
	p := StaticProvider{
		Facts: fixtureFacts(),
		Errs:  map[string]error{"tpm": denied},
	}

	got, err := Collect(p)
	if err == nil {
		t.Fatal("expected an error when a category fails")
	}
	if !strings.Contains(err.Error(), "tpm:") {
		t.Errorf("error %q missing category prefix", err)
	}
	// Partial results are still returned so the facts dump can show
	// what was obtained.
	if got == nil || got.Processor.Name != "Test CPU" {
		t.Error("partial facts not returned alongside the error")
	}
}

func TestCollectMultipleErrors(t *testing.T) {
	p := StaticProvider{
		Facts: fixtureFacts(),
		Errs: map[string]error{
			"disk":    errors.New("disk query failed"),
			"display": errors.New("display query failed"),
		},
	}

	_, err := Collect(p)
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"disk:", "display:"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}
