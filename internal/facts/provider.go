package facts

// Provider exposes one blocking query per fact category. Each method
// returns either a populated record or a well-defined absence (a TPM that
// does not exist is not an error); a failing query returns an error so the
// caller never evaluates checks against silently-zeroed facts.
type Provider interface {
	Identity() (IdentityInfo, error)
	Processor() (ProcessorInfo, error)
	TPM() (TpmInfo, error)
	Memory() (MemoryInfo, error)
	Disk() (DiskInfo, error)
	Display() (DisplayInfo, error)
	Firmware() (FirmwareInfo, error)
}
