package zeinfo

import (
	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/kernel"
	"github.com/wippyai/zebin/yaml"
)

// execEnv mirrors the execution_env group as written in the document.
type execEnv struct {
	actualKernelStartOffset            int32
	barrierCount                       int32
	disableMidThreadPreemption         bool
	euThreadCount                      int32
	grfCount                           int32
	has4GBBuffers                      bool
	hasDpas                            bool
	hasFenceForImageAccess             bool
	hasGlobalAtomics                   bool
	hasMultiScratchSpaces              bool
	hasNoStatelessWrite                bool
	hasStackCalls                      bool
	hasRTCalls                         bool
	hwPreemptionMode                   int32
	inlineDataPayloadSize              int32
	offsetToSkipPerThreadDataLoad      int32
	offsetToSkipSetFfidGp              int32
	requiredSubGroupSize               int32
	requiredWorkGroupSize              [3]int32
	requireDisableEUFusion             bool
	simdSize                           int32
	slmSize                            int32
	subgroupIndependentForwardProgress bool
	workGroupWalkOrderDimensions       [3]int32
	threadSchedulingMode               ThreadSchedulingMode
	indirectStatelessCount             int32
	hasSample                          bool
	privateSize                        int32
	spillSize                          int32
	localRegionSize                    int32
	dispatchWalkOrder                  int32
	partitionDim                       int32
	requireIAB                         bool
	hasLscStoresWithNonDefaultL1       bool
	hasPrintfCalls                     bool
	hasIndirectCalls                   bool
}

func newExecEnv() *execEnv {
	return &execEnv{
		grfCount:                     -1,
		hwPreemptionMode:             -1,
		simdSize:                     -1,
		workGroupWalkOrderDimensions: [3]int32{0, 1, 2},
		localRegionSize:              -1,
		dispatchWalkOrder:            -1,
		partitionDim:                 -1,
	}
}

// readExecEnv reads an execution_env group of a kernel or external function.
func (d *decoder) readExecEnv(id yaml.NodeID, ctx string, env *execEnv) error {
	g := d.group(ctx)
	for c := range d.p.Children(id) {
		switch d.p.ReadKey(c) {
		case tagActualKernelStartOffset:
			readInt(g, c, &env.actualKernelStartOffset)
		case tagBarrierCount:
			readInt(g, c, &env.barrierCount)
		case tagDisableMidThreadPreemption:
			readBool(g, c, &env.disableMidThreadPreemption)
		case tagEuThreadCount:
			readInt(g, c, &env.euThreadCount)
		case tagGrfCount:
			readInt(g, c, &env.grfCount)
		case tagHas4GBBuffers:
			readBool(g, c, &env.has4GBBuffers)
		case tagHasDpas:
			readBool(g, c, &env.hasDpas)
		case tagHasFenceForImageAccess:
			readBool(g, c, &env.hasFenceForImageAccess)
		case tagHasGlobalAtomics:
			readBool(g, c, &env.hasGlobalAtomics)
		case tagHasMultiScratchSpaces:
			readBool(g, c, &env.hasMultiScratchSpaces)
		case tagHasNoStatelessWrite:
			readBool(g, c, &env.hasNoStatelessWrite)
		case tagHasStackCalls:
			readBool(g, c, &env.hasStackCalls)
		case tagHasRTCalls:
			readBool(g, c, &env.hasRTCalls)
		case tagHwPreemptionMode:
			readInt(g, c, &env.hwPreemptionMode)
		case tagInlineDataPayloadSize:
			readInt(g, c, &env.inlineDataPayloadSize)
		case tagOffsetToSkipPerThreadDataLoad:
			readInt(g, c, &env.offsetToSkipPerThreadDataLoad)
		case tagOffsetToSkipSetFfidGp:
			readInt(g, c, &env.offsetToSkipSetFfidGp)
		case tagRequiredSubGroupSize:
			readInt(g, c, &env.requiredSubGroupSize)
		case tagRequiredWorkGroupSize:
			readTriple(g, c, &env.requiredWorkGroupSize)
		case tagRequireDisableEUFusion:
			readBool(g, c, &env.requireDisableEUFusion)
		case tagSimdSize:
			readInt(g, c, &env.simdSize)
		case tagSlmSize:
			readInt(g, c, &env.slmSize)
		case tagSubgroupIndependentFwdProg:
			readBool(g, c, &env.subgroupIndependentForwardProgress)
		case tagWorkGroupWalkOrderDimensions:
			readTriple(g, c, &env.workGroupWalkOrderDimensions)
		case tagThreadSchedulingMode:
			readEnum(g, c, threadSchedulingModes, &env.threadSchedulingMode)
		case tagIndirectStatelessCount:
			readInt(g, c, &env.indirectStatelessCount)
		case tagHasSample:
			readBool(g, c, &env.hasSample)
		case tagRequireIAB:
			readBool(g, c, &env.requireIAB)
		case tagHasLscStoresNonDefaultL1:
			readBool(g, c, &env.hasLscStoresWithNonDefaultL1)
		case tagHasPrintfCalls:
			readBool(g, c, &env.hasPrintfCalls)
		case tagHasIndirectCalls:
			readBool(g, c, &env.hasIndirectCalls)
		case tagPrivateSize:
			readInt(g, c, &env.privateSize)
		case tagSpillSize:
			readInt(g, c, &env.spillSize)
		case tagLocalRegionSize:
			readInt(g, c, &env.localRegionSize)
		case tagDispatchWalkOrder:
			readInt(g, c, &env.dispatchWalkOrder)
		case tagPartitionDim:
			readInt(g, c, &env.partitionDim)
		default:
			g.unknown(c, "in context of "+ctx, executionEnvTags)
		}
	}
	if g.err != nil {
		return g.err
	}

	switch env.simdSize {
	case 1, 8, 16, 32:
		return nil
	}
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Path(d.p.Path(id)...).
		Value(env.simdSize).
		Detail("Invalid simd size : %d in context of : %s. Expected 1, 8, 16 or 32. Got : %d", env.simdSize, ctx, env.simdSize).
		Build()
}

func (k *kernelDecoder) decodeExecEnv() error {
	env := newExecEnv()
	if err := k.readExecEnv(k.s.executionEnv[0], k.name, env); err != nil {
		return err
	}

	d := k.desc
	a := &d.Attributes
	f := &a.Flags

	d.EntryPoints.SkipPerThreadDataLoad = uint32(env.offsetToSkipPerThreadDataLoad)
	d.EntryPoints.SkipSetFFIDGP = uint32(env.offsetToSkipSetFfidGp)
	d.EntryPoints.ActualKernelStartOffset = uint32(env.actualKernelStartOffset)

	f.PassInlineData = env.inlineDataPayloadSize != 0
	f.RequiresDisabledMidThreadPreemption = env.disableMidThreadPreemption
	f.RequiresSubgroupIndependentForwardProgress = env.subgroupIndependentForwardProgress
	f.RequiresDisabledEUFusion = env.requireDisableEUFusion
	f.RequireIAB = env.requireIAB
	f.UseGlobalAtomics = env.hasGlobalAtomics
	f.UseStackCalls = env.hasStackCalls
	f.HasRTCalls = env.hasRTCalls
	f.UsesFencesForReadWriteImages = env.hasFenceForImageAccess
	f.UsesSystolicPipelineSelectMode = env.hasDpas
	f.UsesStatelessWrites = !env.hasNoStatelessWrite
	f.HasSample = env.hasSample
	f.HasLscStoresWithNonDefaultL1CacheControls = env.hasLscStoresWithNonDefaultL1
	f.HasPrintfCalls = env.hasPrintfCalls
	f.HasIndirectCalls = env.hasIndirectCalls

	a.BarrierCount = uint8(env.barrierCount)
	if env.has4GBBuffers {
		a.BufferAddressingMode = kernel.Stateless
	} else {
		a.BufferAddressingMode = kernel.BindfulAndStateless
	}
	a.InlineDataPayloadSize = uint16(env.inlineDataPayloadSize)
	a.NumGrfRequired = uint32(env.grfCount)
	for i := range a.RequiredWorkgroupSize {
		a.RequiredWorkgroupSize[i] = uint16(env.requiredWorkGroupSize[i])
		a.WorkgroupWalkOrder[i] = uint8(env.workGroupWalkOrderDimensions[i])
	}
	a.SimdSize = uint8(env.simdSize)
	a.SlmInlineSize = uint32(env.slmSize)
	a.HasIndirectStatelessAccess = env.indirectStatelessCount > 0
	a.NumThreadsRequired = uint32(env.euThreadCount)
	a.LocalRegionSize = env.localRegionSize
	a.DispatchWalkOrder = env.dispatchWalkOrder
	a.PartitionDim = env.partitionDim
	d.Metadata.RequiredSubGroupSize = uint8(env.requiredSubGroupSize)

	if k.version.AtLeast(scratchSlotVersion) {
		a.PrivateScratchMemorySize = uint32(env.privateSize)
		a.SpillFillScratchMemorySize = uint32(env.spillSize)
	}

	switch env.threadSchedulingMode {
	case ThreadSchedulingModeAgeBased:
		a.ThreadArbitrationPolicy = kernel.ArbitrationAgeBased
	case ThreadSchedulingModeRoundRobin:
		a.ThreadArbitrationPolicy = kernel.ArbitrationRoundRobin
	case ThreadSchedulingModeRoundRobinStall:
		a.ThreadArbitrationPolicy = kernel.ArbitrationRoundRobinAfterDependency
	default:
		a.ThreadArbitrationPolicy = kernel.ArbitrationNotPresent
	}
	return nil
}
