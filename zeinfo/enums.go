package zeinfo

import (
	"fmt"

	"github.com/wippyai/zebin/kernel"
)

// ArgType is the arg_type of a payload or per-thread payload argument.
type ArgType uint8

const (
	ArgTypeUnknown ArgType = iota
	ArgTypePackedLocalIDs
	ArgTypeLocalID
	ArgTypeLocalSize
	ArgTypeGroupCount
	ArgTypeGlobalSize
	ArgTypeEnqueuedLocalSize
	ArgTypeGlobalIDOffset
	ArgTypePrivateBaseStateless
	ArgTypeArgByValue
	ArgTypeArgByPointer
	ArgTypeBufferAddress
	ArgTypeBufferOffset
	ArgTypePrintfBuffer
	ArgTypeWorkDimensions
	ArgTypeImplicitArgBuffer
	ArgTypeImageWidth
	ArgTypeImageHeight
	ArgTypeImageDepth
	ArgTypeImageChannelDataType
	ArgTypeImageChannelOrder
	ArgTypeImageArraySize
	ArgTypeImageNumSamples
	ArgTypeImageMipLevels
	ArgTypeImageFlatBaseOffset
	ArgTypeImageFlatWidth
	ArgTypeImageFlatHeight
	ArgTypeImageFlatPitch
	ArgTypeSamplerSnapWa
	ArgTypeSamplerNormCoords
	ArgTypeSamplerAddrMode
	ArgTypeVmeMbBlockType
	ArgTypeVmeSubpixelMode
	ArgTypeVmeSadAdjustMode
	ArgTypeVmeSearchPathType
	ArgTypeSyncBuffer
	ArgTypeRtGlobalBuffer
	ArgTypeDataConstBuffer
	ArgTypeDataGlobalBuffer
	ArgTypeAssertBuffer
	ArgTypeIndirectDataPointer
	ArgTypeScratchPointer
	ArgTypeRegionGroupSize
	ArgTypeRegionGroupDimension
	ArgTypeRegionGroupWgCount
	ArgTypeRegionGroupBarrierBuffer
	ArgTypeInlineSampler
	ArgTypeBufferSize
	argTypeCount
)

func (t ArgType) String() string { return argTypes.spelling(t) }

// AddressingMode is a payload argument's addrmode.
type AddressingMode uint8

const (
	AddressingModeUnknown AddressingMode = iota
	AddressingModeStateful
	AddressingModeStateless
	AddressingModeBindless
	AddressingModeSLM
	addressingModeCount
)

func (m AddressingMode) String() string { return addressingModes.spelling(m) }

// AddressSpace is a payload argument's addrspace.
type AddressSpace uint8

const (
	AddressSpaceUnknown AddressSpace = iota
	AddressSpaceGlobal
	AddressSpaceLocal
	AddressSpaceConstant
	AddressSpaceImage
	AddressSpaceSampler
	addressSpaceCount
)

func (s AddressSpace) String() string { return addressSpaces.spelling(s) }

// AccessType is a payload argument's access_type.
type AccessType uint8

const (
	AccessTypeUnknown AccessType = iota
	AccessTypeReadOnly
	AccessTypeWriteOnly
	AccessTypeReadWrite
	accessTypeCount
)

func (a AccessType) String() string { return accessTypes.spelling(a) }

// AllocationType is a per-thread memory buffer's type.
type AllocationType uint8

const (
	AllocationTypeUnknown AllocationType = iota
	AllocationTypeGlobal
	AllocationTypeScratch
	AllocationTypeSLM
	allocationTypeCount
)

func (a AllocationType) String() string { return allocationTypes.spelling(a) }

// MemoryUsage is a per-thread memory buffer's usage.
type MemoryUsage uint8

const (
	MemoryUsageUnknown MemoryUsage = iota
	MemoryUsagePrivateSpace
	MemoryUsageSpillFillSpace
	MemoryUsageSingleSpace
	memoryUsageCount
)

func (u MemoryUsage) String() string { return memoryUsages.spelling(u) }

// ThreadSchedulingMode is execution_env's thread_scheduling_mode.
type ThreadSchedulingMode uint8

const (
	ThreadSchedulingModeUnknown ThreadSchedulingMode = iota
	ThreadSchedulingModeAgeBased
	ThreadSchedulingModeRoundRobin
	ThreadSchedulingModeRoundRobinStall
	threadSchedulingModeCount
)

func (m ThreadSchedulingMode) String() string { return threadSchedulingModes.spelling(m) }

// InlineSamplerAddrMode is an inline sampler's addrmode.
type InlineSamplerAddrMode uint8

const (
	InlineSamplerAddrModeUnknown InlineSamplerAddrMode = iota
	InlineSamplerAddrModeNone
	InlineSamplerAddrModeRepeat
	InlineSamplerAddrModeClampEdge
	InlineSamplerAddrModeClampBorder
	InlineSamplerAddrModeMirror
	inlineSamplerAddrModeCount
)

func (m InlineSamplerAddrMode) String() string { return inlineSamplerAddrModes.spelling(m) }

// InlineSamplerFilterMode is an inline sampler's filtermode.
type InlineSamplerFilterMode uint8

const (
	InlineSamplerFilterModeUnknown InlineSamplerFilterMode = iota
	InlineSamplerFilterModeNearest
	InlineSamplerFilterModeLinear
	inlineSamplerFilterModeCount
)

func (m InlineSamplerFilterMode) String() string { return inlineSamplerFilterModes.spelling(m) }

type enumRow[T ~uint8] struct {
	spelling string
	value    T
}

// enumTable maps spellings to values. Every value in 1..count must have
// exactly one row; 0 is the unknown value and has none.
type enumTable[T ~uint8] struct {
	name  string
	count int
	rows  []enumRow[T]
}

func (t *enumTable[T]) lookup(s string) (T, bool) {
	for _, r := range t.rows {
		if r.spelling == s {
			return r.value, true
		}
	}
	return 0, false
}

func (t *enumTable[T]) spelling(v T) string {
	for _, r := range t.rows {
		if r.value == v {
			return r.spelling
		}
	}
	return "unknown"
}

func (t *enumTable[T]) spellings() []string {
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.spelling
	}
	return out
}

func (t *enumTable[T]) validate() error {
	seen := make(map[T]string, len(t.rows))
	names := make(map[string]bool, len(t.rows))
	for _, r := range t.rows {
		if r.value == 0 || int(r.value) > t.count {
			return fmt.Errorf("%s: %q maps to out of range value %d", t.name, r.spelling, r.value)
		}
		if prev, dup := seen[r.value]; dup {
			return fmt.Errorf("%s: value %d spelled both %q and %q", t.name, r.value, prev, r.spelling)
		}
		if r.spelling == "" || names[r.spelling] {
			return fmt.Errorf("%s: duplicate or empty spelling %q", t.name, r.spelling)
		}
		seen[r.value] = r.spelling
		names[r.spelling] = true
	}
	if len(seen) != t.count {
		return fmt.Errorf("%s: %d of %d values have a spelling", t.name, len(seen), t.count)
	}
	return nil
}

type validator interface{ validate() error }

var argTypes = &enumTable[ArgType]{
	name:  "arg type",
	count: int(argTypeCount) - 1,
	rows: []enumRow[ArgType]{
		{"packed_local_ids", ArgTypePackedLocalIDs},
		{"local_id", ArgTypeLocalID},
		{"local_size", ArgTypeLocalSize},
		{"group_count", ArgTypeGroupCount},
		{"global_size", ArgTypeGlobalSize},
		{"enqueued_local_size", ArgTypeEnqueuedLocalSize},
		{"global_id_offset", ArgTypeGlobalIDOffset},
		{"private_base_stateless", ArgTypePrivateBaseStateless},
		{"arg_byvalue", ArgTypeArgByValue},
		{"arg_bypointer", ArgTypeArgByPointer},
		{"buffer_address", ArgTypeBufferAddress},
		{"buffer_offset", ArgTypeBufferOffset},
		{"printf_buffer", ArgTypePrintfBuffer},
		{"work_dimensions", ArgTypeWorkDimensions},
		{"implicit_arg_buffer", ArgTypeImplicitArgBuffer},
		{"image_width", ArgTypeImageWidth},
		{"image_height", ArgTypeImageHeight},
		{"image_depth", ArgTypeImageDepth},
		{"image_channel_data_type", ArgTypeImageChannelDataType},
		{"image_channel_order", ArgTypeImageChannelOrder},
		{"image_array_size", ArgTypeImageArraySize},
		{"image_num_samples", ArgTypeImageNumSamples},
		{"image_num_mip_levels", ArgTypeImageMipLevels},
		{"flat_image_baseoffset", ArgTypeImageFlatBaseOffset},
		{"flat_image_width", ArgTypeImageFlatWidth},
		{"flat_image_height", ArgTypeImageFlatHeight},
		{"flat_image_pitch", ArgTypeImageFlatPitch},
		{"sampler_snap_wa", ArgTypeSamplerSnapWa},
		{"sampler_normalized", ArgTypeSamplerNormCoords},
		{"sampler_address", ArgTypeSamplerAddrMode},
		{"vme_mb_block_type", ArgTypeVmeMbBlockType},
		{"vme_subpixel_mode", ArgTypeVmeSubpixelMode},
		{"vme_sad_adjust_mode", ArgTypeVmeSadAdjustMode},
		{"vme_search_path_type", ArgTypeVmeSearchPathType},
		{"sync_buffer", ArgTypeSyncBuffer},
		{"rt_global_buffer", ArgTypeRtGlobalBuffer},
		{"const_base", ArgTypeDataConstBuffer},
		{"global_base", ArgTypeDataGlobalBuffer},
		{"assert_buffer", ArgTypeAssertBuffer},
		{"indirect_data_pointer", ArgTypeIndirectDataPointer},
		{"scratch_pointer", ArgTypeScratchPointer},
		{"region_group_size", ArgTypeRegionGroupSize},
		{"region_group_dimension", ArgTypeRegionGroupDimension},
		{"region_group_wg_count", ArgTypeRegionGroupWgCount},
		{"region_group_barrier_buffer", ArgTypeRegionGroupBarrierBuffer},
		{"inline_sampler", ArgTypeInlineSampler},
		{"buffer_size", ArgTypeBufferSize},
	},
}

var addressingModes = &enumTable[AddressingMode]{
	name:  "memory addressing mode",
	count: int(addressingModeCount) - 1,
	rows: []enumRow[AddressingMode]{
		{"stateful", AddressingModeStateful},
		{"stateless", AddressingModeStateless},
		{"bindless", AddressingModeBindless},
		{"slm", AddressingModeSLM},
	},
}

var addressSpaces = &enumTable[AddressSpace]{
	name:  "address space",
	count: int(addressSpaceCount) - 1,
	rows: []enumRow[AddressSpace]{
		{"global", AddressSpaceGlobal},
		{"local", AddressSpaceLocal},
		{"constant", AddressSpaceConstant},
		{"image", AddressSpaceImage},
		{"sampler", AddressSpaceSampler},
	},
}

var accessTypes = &enumTable[AccessType]{
	name:  "access type",
	count: int(accessTypeCount) - 1,
	rows: []enumRow[AccessType]{
		{"readonly", AccessTypeReadOnly},
		{"writeonly", AccessTypeWriteOnly},
		{"readwrite", AccessTypeReadWrite},
	},
}

var allocationTypes = &enumTable[AllocationType]{
	name:  "allocation type",
	count: int(allocationTypeCount) - 1,
	rows: []enumRow[AllocationType]{
		{"global", AllocationTypeGlobal},
		{"scratch", AllocationTypeScratch},
		{"slm", AllocationTypeSLM},
	},
}

var memoryUsages = &enumTable[MemoryUsage]{
	name:  "memory usage",
	count: int(memoryUsageCount) - 1,
	rows: []enumRow[MemoryUsage]{
		{"private_space", MemoryUsagePrivateSpace},
		{"spill_fill_space", MemoryUsageSpillFillSpace},
		{"single_space", MemoryUsageSingleSpace},
	},
}

var imageTypes = &enumTable[kernel.ImageType]{
	name:  "image type",
	count: int(kernel.ImageType2DMediaBlock),
	rows: []enumRow[kernel.ImageType]{
		{"image_buffer", kernel.ImageTypeBuffer},
		{"image_1d", kernel.ImageType1D},
		{"image_1d_array", kernel.ImageType1DArray},
		{"image_2d", kernel.ImageType2D},
		{"image_2d_array", kernel.ImageType2DArray},
		{"image_3d", kernel.ImageType3D},
		{"image_cube", kernel.ImageTypeCube},
		{"image_cube_array", kernel.ImageTypeCubeArray},
		{"image_2d_depth", kernel.ImageType2DDepth},
		{"image_2d_array_depth", kernel.ImageType2DArrayDepth},
		{"image_2d_msaa", kernel.ImageType2DMSAA},
		{"image_2d_msaa_depth", kernel.ImageType2DMSAADepth},
		{"image_2d_array_msaa", kernel.ImageType2DArrayMSAA},
		{"image_2d_array_msaa_depth", kernel.ImageType2DArrayMSAADepth},
		{"image_2d_media", kernel.ImageType2DMedia},
		{"image_2d_media_block", kernel.ImageType2DMediaBlock},
	},
}

var samplerTypes = &enumTable[kernel.SamplerType]{
	name:  "sampler type",
	count: int(kernel.SamplerTypeVD),
	rows: []enumRow[kernel.SamplerType]{
		{"texture", kernel.SamplerTypeTexture},
		{"sample_8x8", kernel.SamplerType8x8},
		{"sample_8x8_2dconvolve", kernel.SamplerType2DConvolve8x8},
		{"sample_8x8_erode", kernel.SamplerTypeErode8x8},
		{"sample_8x8_dilate", kernel.SamplerTypeDilate8x8},
		{"sample_8x8_minmaxfilter", kernel.SamplerTypeMinMaxFilter8x8},
		{"sample_8x8_centroid", kernel.SamplerTypeCentroid8x8},
		{"sample_8x8_bool_centroid", kernel.SamplerTypeBoolCentroid8x8},
		{"sample_8x8_bool_sum", kernel.SamplerTypeBoolSum8x8},
		{"vme", kernel.SamplerTypeVME},
		{"ve", kernel.SamplerTypeVE},
		{"vd", kernel.SamplerTypeVD},
	},
}

var threadSchedulingModes = &enumTable[ThreadSchedulingMode]{
	name:  "thread scheduling mode",
	count: int(threadSchedulingModeCount) - 1,
	rows: []enumRow[ThreadSchedulingMode]{
		{"age_based", ThreadSchedulingModeAgeBased},
		{"round_robin", ThreadSchedulingModeRoundRobin},
		{"round_robin_stall", ThreadSchedulingModeRoundRobinStall},
	},
}

var inlineSamplerAddrModes = &enumTable[InlineSamplerAddrMode]{
	name:  "inline sampler addressing mode",
	count: int(inlineSamplerAddrModeCount) - 1,
	rows: []enumRow[InlineSamplerAddrMode]{
		{"none", InlineSamplerAddrModeNone},
		{"repeat", InlineSamplerAddrModeRepeat},
		{"clamp_edge", InlineSamplerAddrModeClampEdge},
		{"clamp_border", InlineSamplerAddrModeClampBorder},
		{"mirror", InlineSamplerAddrModeMirror},
	},
}

var inlineSamplerFilterModes = &enumTable[InlineSamplerFilterMode]{
	name:  "inline sampler filter mode",
	count: int(inlineSamplerFilterModeCount) - 1,
	rows: []enumRow[InlineSamplerFilterMode]{
		{"nearest", InlineSamplerFilterModeNearest},
		{"linear", InlineSamplerFilterModeLinear},
	},
}

var allTables = []validator{
	argTypes, addressingModes, addressSpaces, accessTypes, allocationTypes,
	memoryUsages, imageTypes, samplerTypes, threadSchedulingModes,
	inlineSamplerAddrModes, inlineSamplerFilterModes,
}

// validateTables checks that every table spells each known value exactly once.
func validateTables() error {
	for _, t := range allTables {
		if err := t.validate(); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	if err := validateTables(); err != nil {
		panic("zeinfo: " + err.Error())
	}
}
