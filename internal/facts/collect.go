package facts

import (
	"fmt"
	"time"
)

// Collect gathers all fact categories from the given provider. It attempts
// every collector and returns the partial result alongside any errors, so
// callers that only inspect facts can still show what was obtained; callers
// evaluating checks must treat a non-nil error as fatal for the run.
func Collect(p Provider) (*Facts, error) {
	f := &Facts{CollectedAt: time.Now().UTC()}

	var errs []error

	identity, err := p.Identity()
	if err != nil {
		errs = append(errs, fmt.Errorf("identity: %w", err))
	}
	f.Identity = identity

	proc, err := p.Processor()
	if err != nil {
		errs = append(errs, fmt.Errorf("processor: %w", err))
	}
	f.Processor = proc

	tpm, err := p.TPM()
	if err != nil {
		errs = append(errs, fmt.Errorf("tpm: %w", err))
	}
	f.TPM = tpm

	mem, err := p.Memory()
	if err != nil {
		errs = append(errs, fmt.Errorf("memory: %w", err))
	}
	f.Memory = mem

	disk, err := p.Disk()
	if err != nil {
		errs = append(errs, fmt.Errorf("disk: %w", err))
	}
	f.Disk = disk

	display, err := p.Display()
	if err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}
	f.Display = display

	fw, err := p.Firmware()
	if err != nil {
		errs = append(errs, fmt.Errorf("firmware: %w", err))
	}
	f.Firmware = fw

	if len(errs) > 0 {
		return f, fmt.Errorf("collection errors: %v", errs)
	}
	return f, nil
}
