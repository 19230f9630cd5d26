package facts

// StaticProvider answers every fact category from canned values. It backs
// tests and lets the rule evaluator run without a real machine. Errs maps
// a category name (identity, processor, tpm, memory, disk, display,
// firmware) to an error that category should return instead.
type StaticProvider struct {
	Facts Facts
	Errs  map[string]error
}

func (p StaticProvider) Identity() (IdentityInfo, error) {
	if err := p.Errs["identity"]; err != nil {
		return IdentityInfo{}, err
	}
	return p.Facts.Identity, nil
}

func (p StaticProvider) Processor() (ProcessorInfo, error) {
	if err := p.Errs["processor"]; err != nil {
		return ProcessorInfo{}, err
	}
	return p.Facts.Processor, nil
}

func (p StaticProvider) TPM() (TpmInfo, error) {
	if err := p.Errs["tpm"]; err != nil {
		return TpmInfo{}, err
	}
	return p.Facts.TPM, nil
}

func (p StaticProvider) Memory() (MemoryInfo, error) {
	if err := p.Errs["memory"]; err != nil {
		return MemoryInfo{}, err
	}
	return p.Facts.Memory, nil
}

func (p StaticProvider) Disk() (DiskInfo, error) {
	if err := p.Errs["disk"]; err != nil {
		return DiskInfo{}, err
	}
	return p.Facts.Disk, nil
}

func (p StaticProvider) Display() (DisplayInfo, error) {
	if err := p.Errs["display"]; err != nil {
		return DisplayInfo{}, err
	}
	return p.Facts.Display, nil
}

func (p StaticProvider) Firmware() (FirmwareInfo, error) {
	if err := p.Errs["firmware"]; err != nil {
		return FirmwareInfo{}, err
	}
	return p.Facts.Firmware, nil
}
