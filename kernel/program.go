package kernel

// KernelInfo pairs a decoded descriptor with the kernel's machine code.
type KernelInfo struct {
	Descriptor *Descriptor
	ISA        []byte
}

// Name returns the kernel name.
func (k *KernelInfo) Name() string {
	if k == nil || k.Descriptor == nil {
		return ""
	}
	return k.Descriptor.Metadata.KernelName
}

// ExternalFunctionInfo describes a function callable across kernels.
type ExternalFunctionInfo struct {
	Name           string
	BarrierCount   uint8
	NumGrfRequired uint16
	SimdSize       uint8
	HasRTCalls     bool
}

// Surface is a global data segment: initialized bytes followed by
// ZeroInitSize bytes that the loader must clear.
type Surface struct {
	InitData     []byte
	ZeroInitSize uint64
}

// Size returns the full size of the segment once loaded.
func (s Surface) Size() uint64 {
	return uint64(len(s.InitData)) + s.ZeroInitSize
}

// ProgramInfo is the result of decoding one program.
type ProgramInfo struct {
	KernelInfos                []*KernelInfo
	GlobalVariables            Surface
	GlobalConstants            Surface
	GlobalStrings              Surface
	ExternalFunctions          []ExternalFunctionInfo
	GlobalsDeviceToHostNameMap map[string]string
}

// NewProgramInfo returns an empty program.
func NewProgramInfo() *ProgramInfo {
	return &ProgramInfo{GlobalsDeviceToHostNameMap: make(map[string]string)}
}

// Kernel looks a kernel up by name.
func (p *ProgramInfo) Kernel(name string) (*KernelInfo, bool) {
	for _, k := range p.KernelInfos {
		if k.Name() == name {
			return k, true
		}
	}
	return nil, false
}
