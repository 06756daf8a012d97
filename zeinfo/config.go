package zeinfo

// Config carries the device and policy inputs of a decode.
type Config struct {
	// TolerateUnknown turns unknown keys into warnings. When false they
	// fail the decode.
	TolerateUnknown bool

	// MinScratchSpaceSize floors every scratch slot size.
	MinScratchSpaceSize uint32

	// GRFSize is the register size in bytes, used to pad per-thread local ids.
	GRFSize uint32

	// AppendElws reserves an enqueued local size triple after the
	// cross-thread data of every kernel.
	AppendElws bool
}

// DefaultConfig returns the settings used when the caller has no device.
func DefaultConfig() Config {
	return Config{
		TolerateUnknown:     true,
		MinScratchSpaceSize: 1024,
		GRFSize:             32,
	}
}
