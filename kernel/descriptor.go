package kernel

// Undefined marks an offset the binary did not provide.
const Undefined uint16 = 0xFFFF

// Offset types. All are byte offsets; Undefined when absent.
type (
	CrossThreadDataOffset  = uint16 // into the per-dispatch cross-thread data
	SurfaceStateHeapOffset = uint16 // into the generated SSH
	DynamicStateHeapOffset = uint16 // into the generated DSH
)

// AddressingMode is the way a kernel reaches buffers or images.
type AddressingMode uint8

const (
	AddressingUnknown AddressingMode = iota
	BindfulAndStateless
	Stateless
	BindlessAndStateless
	Bindless
	Bindful
)

func (m AddressingMode) String() string {
	switch m {
	case BindfulAndStateless:
		return "BindfulAndStateless"
	case Stateless:
		return "Stateless"
	case BindlessAndStateless:
		return "BindlessAndStateless"
	case Bindless:
		return "Bindless"
	case Bindful:
		return "Bindful"
	}
	return "Unknown"
}

// ThreadArbitrationPolicy is the EU thread scheduling requested by the kernel.
type ThreadArbitrationPolicy uint8

const (
	ArbitrationNotPresent ThreadArbitrationPolicy = iota
	ArbitrationAgeBased
	ArbitrationRoundRobin
	ArbitrationRoundRobinAfterDependency
)

func (p ThreadArbitrationPolicy) String() string {
	switch p {
	case ArbitrationAgeBased:
		return "AgeBased"
	case ArbitrationRoundRobin:
		return "RoundRobin"
	case ArbitrationRoundRobinAfterDependency:
		return "RoundRobinAfterDependency"
	}
	return "NotPresent"
}

// Flags are the boolean kernel properties derived during decode.
type Flags struct {
	PassInlineData                             bool
	RequiresDisabledMidThreadPreemption        bool
	RequiresSubgroupIndependentForwardProgress bool
	RequiresDisabledEUFusion                   bool
	RequiresImplicitArgs                       bool
	RequireIAB                                 bool
	UseGlobalAtomics                           bool
	UseStackCalls                              bool
	UsesFencesForReadWriteImages               bool
	UsesSystolicPipelineSelectMode             bool
	UsesStatelessWrites                        bool
	UsesImages                                 bool
	UsesSamplers                               bool
	UsesVme                                    bool
	UsesPrintf                                 bool
	UsesAssert                                 bool
	UsesSyncBuffer                             bool
	UsesRegionGroupBarrier                     bool
	HasRTCalls                                 bool
	HasSample                                  bool
	HasPrintfCalls                             bool
	HasIndirectCalls                           bool
	HasLscStoresWithNonDefaultL1CacheControls  bool
	IsInvalid                                  bool
}

// Attributes hold the sizes, counts and modes of one kernel.
type Attributes struct {
	SimdSize              uint8
	NumGrfRequired        uint32
	BarrierCount          uint8
	RequiredWorkgroupSize [3]uint16
	WorkgroupWalkOrder    [3]uint8
	SlmInlineSize         uint32
	InlineDataPayloadSize uint16
	CrossThreadDataSize   uint16
	PerThreadDataSize     uint16
	NumLocalIDChannels    uint8
	LocalID               [3]bool

	// Scratch and private memory, per hardware thread.
	PerHwThreadPrivateMemorySize uint32
	PerThreadScratchSize         [2]uint32
	SpillFillScratchMemorySize   uint32
	PrivateScratchMemorySize     uint32

	// Dispatch partitioning hints; -1 when absent.
	LocalRegionSize   int32
	DispatchWalkOrder int32
	PartitionDim      int32

	NumArgsToPatch     uint16
	NumArgsStateful    uint16
	NumThreadsRequired uint32

	BufferAddressingMode    AddressingMode
	ImageAddressingMode     AddressingMode
	ThreadArbitrationPolicy ThreadArbitrationPolicy

	HasIndirectStatelessAccess bool
	HasNonKernelArgLoad        bool
	HasNonKernelArgStore       bool
	HasNonKernelArgAtomic      bool

	Flags Flags
}

// EntryPoints are instruction offsets into the kernel ISA.
type EntryPoints struct {
	SkipPerThreadDataLoad   uint32
	SkipSetFFIDGP           uint32
	ActualKernelStartOffset uint32
}

// DispatchTraits locate the work-size vectors in cross-thread data.
type DispatchTraits struct {
	LocalWorkSize         [3]CrossThreadDataOffset
	LocalWorkSize2        [3]CrossThreadDataOffset
	EnqueuedLocalWorkSize [3]CrossThreadDataOffset
	GlobalWorkOffset      [3]CrossThreadDataOffset
	GlobalWorkSize        [3]CrossThreadDataOffset
	NumWorkGroups         [3]CrossThreadDataOffset
	WorkDim               CrossThreadDataOffset
	RegionGroupSize       [3]CrossThreadDataOffset
	RegionGroupDimension  CrossThreadDataOffset
	RegionGroupWgCount    CrossThreadDataOffset
}

// InlineDataPointer is an implicit pointer passed through inline data.
type InlineDataPointer struct {
	Offset      CrossThreadDataOffset
	PointerSize uint8
}

// ImplicitArgs locate the buffers the runtime patches on the kernel's behalf.
type ImplicitArgs struct {
	PrivateMemoryAddress          ArgPointer
	PrintfSurfaceAddress          ArgPointer
	AssertBufferAddress           ArgPointer
	SyncBufferAddress             ArgPointer
	RtDispatchGlobals             ArgPointer
	GlobalConstantsSurfaceAddress ArgPointer
	GlobalVariablesSurfaceAddress ArgPointer
	SystemThreadSurfaceAddress    ArgPointer
	RegionGroupBarrierBuffer      ArgPointer
	ScratchPointerAddress         InlineDataPointer
	IndirectDataPointerAddress    InlineDataPointer
	ImplicitArgsBuffer            CrossThreadDataOffset
}

// BindingTable describes the surface binding table inside the SSH.
type BindingTable struct {
	NumEntries  uint8
	TableOffset SurfaceStateHeapOffset
}

// SamplerTable describes the sampler table inside the DSH.
type SamplerTable struct {
	NumSamplers uint8
	TableOffset DynamicStateHeapOffset
	BorderColor DynamicStateHeapOffset
}

// PayloadMappings tie arguments and implicit values to their locations.
type PayloadMappings struct {
	ExplicitArgs []ArgDescriptor
	// ExtendedDescriptors is indexed like ExplicitArgs; entries are nil
	// for arguments without VME data.
	ExtendedDescriptors []*ArgVme
	DispatchTraits      DispatchTraits
	ImplicitArgs        ImplicitArgs
	BindingTable        BindingTable
	SamplerTable        SamplerTable
}

// SamplerAddrMode is the addressing mode of an inline sampler.
type SamplerAddrMode uint8

const (
	SamplerAddrUnknown SamplerAddrMode = iota
	SamplerAddrNone
	SamplerAddrRepeat
	SamplerAddrClampEdge
	SamplerAddrClampBorder
	SamplerAddrMirror
)

func (m SamplerAddrMode) String() string {
	switch m {
	case SamplerAddrNone:
		return "None"
	case SamplerAddrRepeat:
		return "Repeat"
	case SamplerAddrClampEdge:
		return "ClampEdge"
	case SamplerAddrClampBorder:
		return "ClampBorder"
	case SamplerAddrMirror:
		return "Mirror"
	}
	return "Unknown"
}

// SamplerFilterMode is the filtering of an inline sampler.
type SamplerFilterMode uint8

const (
	SamplerFilterUnknown SamplerFilterMode = iota
	SamplerFilterNearest
	SamplerFilterLinear
)

func (m SamplerFilterMode) String() string {
	switch m {
	case SamplerFilterNearest:
		return "Nearest"
	case SamplerFilterLinear:
		return "Linear"
	}
	return "Unknown"
}

// InlineSampler is a sampler declared in kernel source rather than passed as an argument.
type InlineSampler struct {
	SamplerIndex   uint32
	AddrMode       SamplerAddrMode
	FilterMode     SamplerFilterMode
	IsNormalized   bool
	BindlessOffset CrossThreadDataOffset
}

// ArgTypeMetadataExtended is the source-level description of one argument.
type ArgTypeMetadataExtended struct {
	ArgName          string
	AddressQualifier string
	AccessQualifier  string
	Type             string
	TypeQualifiers   string
}

// Metadata is the descriptive part of a kernel.
type Metadata struct {
	KernelName                      string
	LanguageAttributes              string
	RequiredSubGroupSize            uint8
	RequiredThreadGroupDispatchSize uint32
}

// Descriptor is everything the runtime needs to know to dispatch one kernel.
type Descriptor struct {
	Attributes                   Attributes
	EntryPoints                  EntryPoints
	PayloadMappings              PayloadMappings
	InlineSamplers               []InlineSampler
	ExplicitArgsExtendedMetadata []ArgTypeMetadataExtended
	Metadata                     Metadata

	GeneratedSSH []byte
	GeneratedDSH []byte
}

// NewDescriptor returns a descriptor with every offset Undefined.
func NewDescriptor() *Descriptor {
	d := &Descriptor{}
	d.Attributes.WorkgroupWalkOrder = [3]uint8{0, 1, 2}
	d.Attributes.LocalRegionSize = -1
	d.Attributes.DispatchWalkOrder = -1
	d.Attributes.PartitionDim = -1
	d.Attributes.BufferAddressingMode = BindfulAndStateless
	d.Attributes.ImageAddressingMode = Bindful

	dt := &d.PayloadMappings.DispatchTraits
	for _, v := range []*[3]CrossThreadDataOffset{
		&dt.LocalWorkSize, &dt.LocalWorkSize2, &dt.EnqueuedLocalWorkSize,
		&dt.GlobalWorkOffset, &dt.GlobalWorkSize, &dt.NumWorkGroups,
		&dt.RegionGroupSize,
	} {
		*v = [3]CrossThreadDataOffset{Undefined, Undefined, Undefined}
	}
	dt.WorkDim = Undefined
	dt.RegionGroupDimension = Undefined
	dt.RegionGroupWgCount = Undefined

	ia := &d.PayloadMappings.ImplicitArgs
	for _, p := range []*ArgPointer{
		&ia.PrivateMemoryAddress, &ia.PrintfSurfaceAddress, &ia.AssertBufferAddress,
		&ia.SyncBufferAddress, &ia.RtDispatchGlobals, &ia.GlobalConstantsSurfaceAddress,
		&ia.GlobalVariablesSurfaceAddress, &ia.SystemThreadSurfaceAddress,
		&ia.RegionGroupBarrierBuffer,
	} {
		*p = NewArgPointer()
	}
	ia.ScratchPointerAddress = InlineDataPointer{Offset: Undefined}
	ia.IndirectDataPointerAddress = InlineDataPointer{Offset: Undefined}
	ia.ImplicitArgsBuffer = Undefined

	d.PayloadMappings.BindingTable.TableOffset = Undefined
	d.PayloadMappings.SamplerTable.TableOffset = Undefined
	d.PayloadMappings.SamplerTable.BorderColor = Undefined
	return d
}

// Arg returns explicit argument i, or nil when i is out of range.
func (d *Descriptor) Arg(i int) *ArgDescriptor {
	if i < 0 || i >= len(d.PayloadMappings.ExplicitArgs) {
		return nil
	}
	return &d.PayloadMappings.ExplicitArgs[i]
}

// Vme returns the VME descriptor for argument i, creating it on first use.
func (d *Descriptor) Vme(i int) *ArgVme {
	pm := &d.PayloadMappings
	for len(pm.ExtendedDescriptors) < len(pm.ExplicitArgs) {
		pm.ExtendedDescriptors = append(pm.ExtendedDescriptors, nil)
	}
	if pm.ExtendedDescriptors[i] == nil {
		pm.ExtendedDescriptors[i] = NewArgVme()
	}
	return pm.ExtendedDescriptors[i]
}

// InlineSampler returns the inline sampler with the given index.
func (d *Descriptor) InlineSampler(index uint32) (*InlineSampler, bool) {
	for i := range d.InlineSamplers {
		if d.InlineSamplers[i].SamplerIndex == index {
			return &d.InlineSamplers[i], true
		}
	}
	return nil, false
}
