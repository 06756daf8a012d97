package zeinfo

// Global scope.
const (
	tagKernels               = "kernels"
	tagVersion               = "version"
	tagGlobalHostAccessTable = "global_host_access_table"
	tagFunctions             = "functions"
	tagKernelsMiscInfo       = "kernels_misc_info"
)

// Kernel scope.
const (
	tagName                      = "name"
	tagUserAttributes            = "user_attributes"
	tagExecutionEnv              = "execution_env"
	tagDebugEnv                  = "debug_env"
	tagPayloadArguments          = "payload_arguments"
	tagBindingTableIndices       = "binding_table_indices"
	tagPerThreadPayloadArguments = "per_thread_payload_arguments"
	tagPerThreadMemoryBuffers    = "per_thread_memory_buffers"
	tagExperimentalProperties    = "experimental_properties"
	tagInlineSamplers            = "inline_samplers"
)

// execution_env members.
const (
	tagBarrierCount                  = "barrier_count"
	tagDisableMidThreadPreemption    = "disable_mid_thread_preemption"
	tagEuThreadCount                 = "eu_thread_count"
	tagGrfCount                      = "grf_count"
	tagHas4GBBuffers                 = "has_4gb_buffers"
	tagHasDpas                       = "has_dpas"
	tagHasFenceForImageAccess        = "has_fence_for_image_access"
	tagHasGlobalAtomics              = "has_global_atomics"
	tagHasMultiScratchSpaces         = "has_multi_scratch_spaces"
	tagHasNoStatelessWrite           = "has_no_stateless_write"
	tagHasStackCalls                 = "has_stack_calls"
	tagHasRTCalls                    = "has_rtcalls"
	tagHwPreemptionMode              = "hw_preemption_mode"
	tagInlineDataPayloadSize         = "inline_data_payload_size"
	tagOffsetToSkipPerThreadDataLoad = "offset_to_skip_per_thread_data_load"
	tagOffsetToSkipSetFfidGp         = "offset_to_skip_set_ffid_gp"
	tagRequiredSubGroupSize          = "required_sub_group_size"
	tagRequiredWorkGroupSize         = "required_work_group_size"
	tagRequireDisableEUFusion        = "require_disable_eufusion"
	tagSimdSize                      = "simd_size"
	tagSlmSize                       = "slm_size"
	tagSubgroupIndependentFwdProg    = "subgroup_independent_forward_progress"
	tagWorkGroupWalkOrderDimensions  = "work_group_walk_order_dimensions"
	tagThreadSchedulingMode          = "thread_scheduling_mode"
	tagIndirectStatelessCount        = "indirect_stateless_count"
	tagHasSample                     = "has_sample"
	tagActualKernelStartOffset       = "actual_kernel_start_offset"
	tagRequireIAB                    = "require_iab"
	tagHasLscStoresNonDefaultL1      = "has_lsc_stores_with_non_default_l1_cache_controls"
	tagHasPrintfCalls                = "has_printf_calls"
	tagHasIndirectCalls              = "has_indirect_calls"
	tagPrivateSize                   = "private_size"
	tagSpillSize                     = "spill_size"
	tagLocalRegionSize               = "local_region_size"
	tagDispatchWalkOrder             = "dispatch_walk_order"
	tagPartitionDim                  = "partition_dim"
)

// user_attributes members.
const (
	tagIntelReqdSubgroupSize            = "intel_reqd_sub_group_size"
	tagIntelReqdWorkgroupWalkOrder      = "intel_reqd_workgroup_walk_order"
	tagReqdWorkgroupSize                = "reqd_work_group_size"
	tagInvalidKernel                    = "invalid_kernel"
	tagVecTypeHint                      = "vec_type_hint"
	tagWorkgroupSizeHint                = "work_group_size_hint"
	tagIntelReqdThreadgroupDispatchSize = "intel_reqd_thread_group_dispatch_size"
	hintSuffix                          = "_hint"
)

// debug_env members.
const (
	tagSipSurfaceBTI    = "sip_surface_bti"
	tagSipSurfaceOffset = "sip_surface_offset"
)

// payload_arguments members.
const (
	tagArgType            = "arg_type"
	tagArgIndex           = "arg_index"
	tagOffset             = "offset"
	tagSize               = "size"
	tagAddrMode           = "addrmode"
	tagAddrSpace          = "addrspace"
	tagAccessType         = "access_type"
	tagSamplerIndex       = "sampler_index"
	tagSourceOffset       = "source_offset"
	tagSlmAlignment       = "slm_alignment"
	tagImageType          = "image_type"
	tagImageTransformable = "image_transformable"
	tagSamplerType        = "sampler_type"
	tagSamplerDescAddr    = "sampler_desc_addrmode"
	tagSamplerDescFilter  = "sampler_desc_filtermode"
	tagSamplerDescNorm    = "sampler_desc_normalized"
	tagIsPipe             = "is_pipe"
	tagIsPtr              = "is_ptr"
	tagBtiValue           = "bti_value"
)

// per_thread_memory_buffers members.
const (
	tagAllocationType = "type"
	tagMemoryUsage    = "usage"
	tagIsSimtThread   = "is_simt_thread"
	tagSlot           = "slot"
)

// experimental_properties members.
const (
	tagHasNonKernelArgLoad   = "has_non_kernel_arg_load"
	tagHasNonKernelArgStore  = "has_non_kernel_arg_store"
	tagHasNonKernelArgAtomic = "has_non_kernel_arg_atomic"
)

// inline_samplers members.
const (
	tagInlineAddrMode   = "addrmode"
	tagInlineFilterMode = "filtermode"
	tagNormalized       = "normalized"
)

// global_host_access_table members.
const (
	tagDeviceName = "device_name"
	tagHostName   = "host_name"
)

// kernels_misc_info members.
const (
	tagArgsInfo         = "args_info"
	tagIndex            = "index"
	tagAddressQualifier = "address_qualifier"
	tagAccessQualifier  = "access_qualifier"
	tagTypeName         = "type_name"
	tagTypeQualifiers   = "type_qualifiers"
)

var globalTags = []string{tagKernels, tagVersion, tagGlobalHostAccessTable, tagFunctions, tagKernelsMiscInfo}

var kernelTags = []string{
	tagName, tagUserAttributes, tagExecutionEnv, tagDebugEnv, tagPayloadArguments,
	tagBindingTableIndices, tagPerThreadPayloadArguments, tagPerThreadMemoryBuffers,
	tagExperimentalProperties, tagInlineSamplers,
}

var executionEnvTags = []string{
	tagBarrierCount, tagDisableMidThreadPreemption, tagEuThreadCount, tagGrfCount,
	tagHas4GBBuffers, tagHasDpas, tagHasFenceForImageAccess, tagHasGlobalAtomics,
	tagHasMultiScratchSpaces, tagHasNoStatelessWrite, tagHasStackCalls, tagHasRTCalls,
	tagHwPreemptionMode, tagInlineDataPayloadSize, tagOffsetToSkipPerThreadDataLoad,
	tagOffsetToSkipSetFfidGp, tagRequiredSubGroupSize, tagRequiredWorkGroupSize,
	tagRequireDisableEUFusion, tagSimdSize, tagSlmSize, tagSubgroupIndependentFwdProg,
	tagWorkGroupWalkOrderDimensions, tagThreadSchedulingMode, tagIndirectStatelessCount,
	tagHasSample, tagActualKernelStartOffset, tagRequireIAB, tagHasLscStoresNonDefaultL1,
	tagHasPrintfCalls, tagHasIndirectCalls, tagPrivateSize, tagSpillSize,
	tagLocalRegionSize, tagDispatchWalkOrder, tagPartitionDim,
}

var payloadArgumentTags = []string{
	tagArgType, tagArgIndex, tagOffset, tagSize, tagAddrMode, tagAddrSpace, tagAccessType,
	tagSamplerIndex, tagSourceOffset, tagSlmAlignment, tagImageType, tagImageTransformable,
	tagSamplerType, tagSamplerDescAddr, tagSamplerDescFilter, tagSamplerDescNorm,
	tagIsPipe, tagIsPtr, tagBtiValue,
}
