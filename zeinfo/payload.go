package zeinfo

import (
	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/internal/mathutil"
	"github.com/wippyai/zebin/kernel"
	"github.com/wippyai/zebin/yaml"
)

const (
	// Upper bound on explicit argument indices.
	maxExplicitArgs = 4096

	samplerStateSize         = 16
	indirectSamplerStateSize = 64
	pointerByValSize         = 8
	crossThreadDataAlignment = 32
)

type payloadArg struct {
	argType       ArgType
	offset        int32
	sourceOffset  int32
	size          int32
	argIndex      int32
	btiValue      int32
	samplerIndex  int32
	slmAlignment  uint8
	addrMode      AddressingMode
	addrSpace     AddressSpace
	accessType    AccessType
	imageType     kernel.ImageType
	samplerType   kernel.SamplerType
	transformable bool
	isPipe        bool
	isPtr         bool

	descAddrMode   InlineSamplerAddrMode
	descFilterMode InlineSamplerFilterMode
	descNormalized bool
}

func newPayloadArg() payloadArg {
	return payloadArg{
		offset:       -1,
		sourceOffset: -1,
		argIndex:     -1,
		btiValue:     -1,
		samplerIndex: -1,
		slmAlignment: 16,
	}
}

func (d *decoder) readPayloadArgs(id yaml.NodeID, ctx string) ([]payloadArg, int32, error) {
	g := d.group(ctx)
	var out []payloadArg
	maxIndex := int32(-1)
	for entry := range d.p.Children(id) {
		a := newPayloadArg()
		for c := range d.p.Children(entry) {
			switch d.p.ReadKey(c) {
			case tagArgType:
				readEnum(g, c, argTypes, &a.argType)
			case tagArgIndex:
				readInt(g, c, &a.argIndex)
				maxIndex = max(maxIndex, a.argIndex)
			case tagOffset:
				readInt(g, c, &a.offset)
			case tagSize:
				readInt(g, c, &a.size)
			case tagAddrMode:
				readEnum(g, c, addressingModes, &a.addrMode)
			case tagAddrSpace:
				readEnum(g, c, addressSpaces, &a.addrSpace)
			case tagAccessType:
				readEnum(g, c, accessTypes, &a.accessType)
			case tagSamplerIndex:
				readInt(g, c, &a.samplerIndex)
			case tagSourceOffset:
				readInt(g, c, &a.sourceOffset)
			case tagSlmAlignment:
				readInt(g, c, &a.slmAlignment)
			case tagImageType:
				readEnum(g, c, imageTypes, &a.imageType)
			case tagImageTransformable:
				readBool(g, c, &a.transformable)
			case tagSamplerType:
				readEnum(g, c, samplerTypes, &a.samplerType)
			case tagSamplerDescAddr:
				readEnum(g, c, inlineSamplerAddrModes, &a.descAddrMode)
			case tagSamplerDescFilter:
				readEnum(g, c, inlineSamplerFilterModes, &a.descFilterMode)
			case tagSamplerDescNorm:
				readBool(g, c, &a.descNormalized)
			case tagIsPipe:
				readBool(g, c, &a.isPipe)
			case tagIsPtr:
				readBool(g, c, &a.isPtr)
			case tagBtiValue:
				readInt(g, c, &a.btiValue)
			default:
				g.unknown(c, "for payload argument in context of "+ctx, payloadArgumentTags)
			}
		}
		out = append(out, a)
	}
	return out, maxIndex, g.err
}

func (k *kernelDecoder) decodePayloadArguments() error {
	if len(k.s.payloadArguments) == 0 {
		return nil
	}
	args, maxIndex, err := k.readPayloadArgs(k.s.payloadArguments[0], k.name)
	if err != nil {
		return err
	}
	if maxIndex >= maxExplicitArgs {
		return errors.OutOfBounds(errors.PhaseDecode, []string{tagKernels, k.name, tagPayloadArguments},
			int(maxIndex), maxExplicitArgs)
	}

	pm := &k.desc.PayloadMappings
	pm.ExplicitArgs = make([]kernel.ArgDescriptor, maxIndex+1)
	k.desc.Attributes.NumArgsToPatch = uint16(maxIndex + 1)

	var bindlessBuffer, bindlessImage, bindfulBuffer, bindfulImage bool
	for i := range args {
		a := &args[i]
		if err := k.addPayloadArg(a); err != nil {
			return err
		}
		arg := k.desc.Arg(int(a.argIndex))
		if arg == nil {
			continue
		}
		switch a.addrMode {
		case AddressingModeBindless:
			bindlessBuffer = bindlessBuffer || arg.Is(kernel.ArgKindPointer)
			bindlessImage = bindlessImage || arg.Is(kernel.ArgKindImage)
		case AddressingModeStateful:
			bindfulBuffer = bindfulBuffer || arg.Is(kernel.ArgKindPointer)
			bindfulImage = bindfulImage || arg.Is(kernel.ArgKindImage)
		}
	}

	bindless := bindlessBuffer || bindlessImage
	if (bindlessBuffer && bindfulBuffer) || (bindlessImage && bindfulImage) ||
		(bindless && len(k.s.bindingTable) > 0 && k.p.Node(k.s.bindingTable[0]).NumChildren > 0) {
		return k.failf(errors.KindInvalidData, "bindless and bindful addressing modes must not be mixed.")
	}
	attrs := &k.desc.Attributes
	if bindlessBuffer {
		attrs.BufferAddressingMode = kernel.BindlessAndStateless
	}
	if bindlessImage {
		attrs.ImageAddressingMode = kernel.Bindless
	}
	attrs.CrossThreadDataSize = mathutil.AlignUp(attrs.CrossThreadDataSize, crossThreadDataAlignment)
	return nil
}

// explicitArg returns the argument a refers to, or an error when its index
// is out of range.
func (k *kernelDecoder) explicitArg(a *payloadArg) (*kernel.ArgDescriptor, error) {
	arg := k.desc.Arg(int(a.argIndex))
	if arg == nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path(tagKernels, k.name, tagPayloadArguments).
			Value(a.argIndex).
			Detail("Invalid arg index %d for argument of type %s in context of : %s. Expected 0 to %d",
				a.argIndex, a.argType, k.name, len(k.desc.PayloadMappings.ExplicitArgs)-1).
			Build()
	}
	return arg, nil
}

func (k *kernelDecoder) addPayloadArg(a *payloadArg) error {
	attrs := &k.desc.Attributes
	pm := &k.desc.PayloadMappings
	dt := &pm.DispatchTraits
	ia := &pm.ImplicitArgs
	off := kernel.CrossThreadDataOffset(a.offset)

	if a.offset != -1 {
		attrs.CrossThreadDataSize = max(attrs.CrossThreadDataSize, uint16(a.offset+a.size))
	}

	switch a.argType {
	case ArgTypeArgByPointer:
		return k.addArgByPointer(a)
	case ArgTypeArgByValue:
		return k.addArgByValue(a)

	case ArgTypeBufferAddress:
		return k.withPointer(a, func(p *kernel.ArgPointer) error {
			k.setStateless(p, a)
			return nil
		})
	case ArgTypeBufferOffset:
		return k.withPointer(a, func(p *kernel.ArgPointer) error {
			return k.setChecked(&p.BufferOffset, a, 4)
		})
	case ArgTypeBufferSize:
		return k.withPointer(a, func(p *kernel.ArgPointer) error {
			return k.setChecked(&p.BufferSize, a, 8)
		})

	case ArgTypeLocalSize:
		return k.setVec(&dt.LocalWorkSize, a)
	case ArgTypeGlobalIDOffset:
		return k.setVec(&dt.GlobalWorkOffset, a)
	case ArgTypeGroupCount:
		return k.setVec(&dt.NumWorkGroups, a)
	case ArgTypeGlobalSize:
		return k.setVec(&dt.GlobalWorkSize, a)
	case ArgTypeEnqueuedLocalSize:
		return k.setVec(&dt.EnqueuedLocalWorkSize, a)
	case ArgTypeRegionGroupSize:
		return k.setVec(&dt.RegionGroupSize, a)
	case ArgTypeWorkDimensions:
		return k.setChecked(&dt.WorkDim, a, 4)
	case ArgTypeRegionGroupDimension:
		dt.RegionGroupDimension = off
	case ArgTypeRegionGroupWgCount:
		dt.RegionGroupWgCount = off

	case ArgTypePrivateBaseStateless:
		k.setStateless(&ia.PrivateMemoryAddress, a)
	case ArgTypePrintfBuffer:
		attrs.Flags.UsesPrintf = true
		k.setStateless(&ia.PrintfSurfaceAddress, a)
	case ArgTypeAssertBuffer:
		attrs.Flags.UsesAssert = true
		k.setStateless(&ia.AssertBufferAddress, a)
	case ArgTypeSyncBuffer:
		attrs.Flags.UsesSyncBuffer = true
		k.setStateless(&ia.SyncBufferAddress, a)
	case ArgTypeRtGlobalBuffer:
		attrs.Flags.HasRTCalls = true
		k.setStateless(&ia.RtDispatchGlobals, a)
	case ArgTypeRegionGroupBarrierBuffer:
		attrs.Flags.UsesRegionGroupBarrier = true
		k.setStateless(&ia.RegionGroupBarrierBuffer, a)

	case ArgTypeScratchPointer:
		ia.ScratchPointerAddress = kernel.InlineDataPointer{Offset: off, PointerSize: uint8(a.size)}
	case ArgTypeIndirectDataPointer:
		ia.IndirectDataPointerAddress = kernel.InlineDataPointer{Offset: off, PointerSize: uint8(a.size)}
	case ArgTypeImplicitArgBuffer:
		attrs.Flags.RequiresImplicitArgs = true
		ia.ImplicitArgsBuffer = off

	case ArgTypeDataConstBuffer:
		return k.setGlobalBase(&ia.GlobalConstantsSurfaceAddress, a)
	case ArgTypeDataGlobalBuffer:
		return k.setGlobalBase(&ia.GlobalVariablesSurfaceAddress, a)

	case ArgTypeImageWidth, ArgTypeImageHeight, ArgTypeImageDepth,
		ArgTypeImageChannelDataType, ArgTypeImageChannelOrder, ArgTypeImageArraySize,
		ArgTypeImageNumSamples, ArgTypeImageMipLevels, ArgTypeImageFlatBaseOffset,
		ArgTypeImageFlatWidth, ArgTypeImageFlatHeight, ArgTypeImageFlatPitch:
		arg, err := k.explicitArg(a)
		if err != nil {
			return err
		}
		img, err := arg.AsImage()
		if err != nil {
			return k.kindConflict(a, err)
		}
		*imageMetadataField(&img.Metadata, a.argType) = off

	case ArgTypeSamplerAddrMode, ArgTypeSamplerNormCoords, ArgTypeSamplerSnapWa:
		arg, err := k.explicitArg(a)
		if err != nil {
			return err
		}
		s, err := arg.AsSampler()
		if err != nil {
			return k.kindConflict(a, err)
		}
		switch a.argType {
		case ArgTypeSamplerAddrMode:
			s.Metadata.AddressingMode = off
		case ArgTypeSamplerNormCoords:
			s.Metadata.NormalizedCoords = off
		default:
			s.Metadata.SnapWa = off
		}

	case ArgTypeVmeMbBlockType, ArgTypeVmeSubpixelMode, ArgTypeVmeSadAdjustMode, ArgTypeVmeSearchPathType:
		if _, err := k.explicitArg(a); err != nil {
			return err
		}
		vme := k.desc.Vme(int(a.argIndex))
		switch a.argType {
		case ArgTypeVmeMbBlockType:
			vme.MbBlockType = off
		case ArgTypeVmeSubpixelMode:
			vme.SubpixelMode = off
		case ArgTypeVmeSadAdjustMode:
			vme.SadAdjustMode = off
		default:
			vme.SearchPathType = off
		}

	case ArgTypeInlineSampler:
		return k.setInlineSamplerOffset(a)

	default:
		return k.failf(errors.KindInvalidData, "Invalid arg type in cross thread data section in context of : %s.", k.name)
	}
	return nil
}

func (k *kernelDecoder) addArgByPointer(a *payloadArg) error {
	arg, err := k.explicitArg(a)
	if err != nil {
		return err
	}
	attrs := &k.desc.Attributes
	tr := &arg.Traits

	switch a.addrSpace {
	case AddressSpaceImage:
		img, err := arg.AsImage()
		if err != nil {
			return k.kindConflict(a, err)
		}
		if a.imageType != kernel.ImageTypeUnknown {
			img.ImageType = a.imageType
		}
		arg.Extended.IsMediaImage = a.imageType == kernel.ImageType2DMedia
		arg.Extended.IsMediaBlockImage = a.imageType == kernel.ImageType2DMediaBlock
		arg.Extended.IsTransformable = a.transformable
		attrs.Flags.UsesImages = true

	case AddressSpaceSampler:
		s, err := arg.AsSampler()
		if err != nil {
			return k.kindConflict(a, err)
		}
		s.SamplerType = a.samplerType
		switch a.samplerType {
		case kernel.SamplerTypeVME, kernel.SamplerTypeVE, kernel.SamplerTypeVD:
			arg.Extended.IsAccelerator = true
		}
		usesVme := a.samplerType == kernel.SamplerTypeVME
		arg.Extended.HasVmeExtendedDescriptor = usesVme
		attrs.Flags.UsesVme = usesVme
		attrs.Flags.UsesSamplers = true
		if a.samplerIndex >= 0 {
			s.Index = uint8(a.samplerIndex)
		}

	default:
		if _, err := arg.AsPointer(); err != nil {
			return k.kindConflict(a, err)
		}
		switch a.addrSpace {
		case AddressSpaceGlobal:
			tr.AddressQualifier = kernel.AddrGlobal
		case AddressSpaceLocal:
			tr.AddressQualifier = kernel.AddrLocal
		case AddressSpaceConstant:
			tr.AddressQualifier = kernel.AddrConstant
		default:
			tr.AddressQualifier = kernel.AddrUnknown
		}
	}

	switch a.accessType {
	case AccessTypeReadOnly:
		tr.AccessQualifier = kernel.AccessReadOnly
	case AccessTypeWriteOnly:
		tr.AccessQualifier = kernel.AccessWriteOnly
	case AccessTypeReadWrite:
		tr.AccessQualifier = kernel.AccessReadWrite
	default:
		tr.AccessQualifier = kernel.AccessUnknown
	}

	tr.ArgByValSize = pointerByValSize
	if arg.Is(kernel.ArgKindPointer) {
		arg.Pointer.AccessedStateless = false
		if a.isPipe {
			tr.TypeQualifiers.Pipe = true
		}
	}

	off := kernel.CrossThreadDataOffset(a.offset)
	switch a.addrMode {
	case AddressingModeStateful:
		if arg.Is(kernel.ArgKindSampler) {
			if a.samplerIndex < 0 || a.samplerIndex >= 0xFF {
				return k.failf(errors.KindInvalidData, "Invalid sampler index %d for stateful sampler arg idx : %d in context of : %s.",
					a.samplerIndex, a.argIndex, k.name)
			}
			arg.Sampler.Bindful = kernel.DynamicStateHeapOffset(indirectSamplerStateSize + samplerStateSize*a.samplerIndex)
			st := &k.desc.PayloadMappings.SamplerTable
			st.NumSamplers = max(st.NumSamplers, uint8(a.samplerIndex+1))
		} else {
			attrs.NumArgsStateful++
		}

	case AddressingModeStateless:
		if !arg.Is(kernel.ArgKindPointer) {
			return k.failf(errors.KindInvalidData, "Invalid or missing memory addressing %s for arg idx : %d in context of : %s.",
				AddressingModeStateless, a.argIndex, k.name)
		}
		arg.Pointer.Stateless = off
		arg.Pointer.PointerSize = uint8(a.size)
		arg.Pointer.AccessedStateless = true

	case AddressingModeBindless:
		switch arg.Kind {
		case kernel.ArgKindPointer:
			arg.Pointer.Bindless = off
		case kernel.ArgKindImage:
			arg.Image.Bindless = off
		default:
			sampler, err := arg.AsSampler()
			if err != nil {
				return k.kindConflict(a, err)
			}
			sampler.Bindless = off
		}
		attrs.NumArgsStateful++

	case AddressingModeSLM:
		p, err := arg.AsPointer()
		if err != nil {
			return k.kindConflict(a, err)
		}
		p.SlmOffset = off
		p.RequiredSlmAlignment = a.slmAlignment

	default:
		return k.failf(errors.KindInvalidData, "Invalid or missing memory addressing mode for arg idx : %d in context of : %s.", a.argIndex, k.name)
	}
	return nil
}

func (k *kernelDecoder) addArgByValue(a *payloadArg) error {
	arg, err := k.explicitArg(a)
	if err != nil {
		return err
	}
	v, err := arg.AsValue()
	if err != nil {
		return k.kindConflict(a, err)
	}
	el := kernel.ValueElement{IsPtr: a.isPtr}
	if a.sourceOffset != -1 {
		el.SourceOffset = uint16(a.sourceOffset)
	} else if len(v.Elements) > 0 {
		return k.failf(errors.KindFieldMissing, "Missing source offset value for element in argByValue")
	}
	el.Offset = kernel.CrossThreadDataOffset(a.offset)
	el.Size = uint16(a.size)
	v.Elements = append(v.Elements, el)
	return nil
}

func (k *kernelDecoder) withPointer(a *payloadArg, fn func(*kernel.ArgPointer) error) error {
	arg, err := k.explicitArg(a)
	if err != nil {
		return err
	}
	p, err := arg.AsPointer()
	if err != nil {
		return k.kindConflict(a, err)
	}
	return fn(p)
}

func (k *kernelDecoder) kindConflict(a *payloadArg, cause error) error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Path(tagKernels, k.name, tagPayloadArguments).
		Value(a.argIndex).
		Cause(cause).
		Detail("Invalid argument of type %s for arg idx : %d in context of : %s", a.argType, a.argIndex, k.name).
		Build()
}

func (k *kernelDecoder) setStateless(p *kernel.ArgPointer, a *payloadArg) {
	p.Stateless = kernel.CrossThreadDataOffset(a.offset)
	p.PointerSize = uint8(a.size)
}

func (k *kernelDecoder) setChecked(dst *kernel.CrossThreadDataOffset, a *payloadArg, size int32) error {
	if a.size != size {
		return k.failf(errors.KindInvalidData, "Invalid size for argument of type %s in context of : %s. Expected %d. Got : %d",
			a.argType, k.name, size, a.size)
	}
	*dst = kernel.CrossThreadDataOffset(a.offset)
	return nil
}

// setVec places 1 to 3 consecutive 32-bit components starting at the
// argument's offset.
func (k *kernelDecoder) setVec(dst *[3]kernel.CrossThreadDataOffset, a *payloadArg) error {
	const elemSize = 4
	switch a.size {
	case elemSize, 2 * elemSize, 3 * elemSize:
	default:
		return k.failf(errors.KindInvalidData, "Invalid size for argument of type %s in context of : %s. Expected 4 or 8 or 12. Got : %d",
			a.argType, k.name, a.size)
	}
	for i := int32(0); i < a.size/elemSize; i++ {
		dst[i] = kernel.CrossThreadDataOffset(a.offset + i*elemSize)
	}
	return nil
}

func (k *kernelDecoder) setGlobalBase(p *kernel.ArgPointer, a *payloadArg) error {
	if a.addrMode == AddressingModeBindless {
		p.Bindless = kernel.CrossThreadDataOffset(a.offset)
		return nil
	}
	if a.offset != -1 {
		k.setStateless(p, a)
	}
	return k.setBindful(&p.Bindful, a.btiValue)
}

// setInlineSamplerOffset records where the bindless state of an inline
// sampler lives. A sampler not declared in inline_samplers is created from
// the sampler_desc_* members.
func (k *kernelDecoder) setInlineSamplerOffset(a *payloadArg) error {
	if a.samplerIndex < 0 {
		return k.failf(errors.KindInvalidData, "Invalid inline sampler index (must be >= 0) in context of : %s.", k.name)
	}
	if s, ok := k.desc.InlineSampler(uint32(a.samplerIndex)); ok {
		s.BindlessOffset = kernel.CrossThreadDataOffset(a.offset)
		return nil
	}
	if a.descAddrMode == InlineSamplerAddrModeUnknown && a.descFilterMode == InlineSamplerFilterModeUnknown {
		return errors.New(errors.PhaseDecode, errors.KindNotFound).
			Path(tagKernels, k.name, tagPayloadArguments).
			Value(a.samplerIndex).
			Detail("Missing inline sampler with index %d in context of : %s.", a.samplerIndex, k.name).
			Build()
	}
	if err := k.addInlineSampler(inlineSampler{
		samplerIndex: a.samplerIndex,
		addrMode:     a.descAddrMode,
		filterMode:   a.descFilterMode,
		normalized:   a.descNormalized,
	}); err != nil {
		return err
	}
	s := &k.desc.InlineSamplers[len(k.desc.InlineSamplers)-1]
	s.BindlessOffset = kernel.CrossThreadDataOffset(a.offset)
	return nil
}

func imageMetadataField(m *kernel.ImageMetadataPayload, t ArgType) *kernel.CrossThreadDataOffset {
	switch t {
	case ArgTypeImageWidth:
		return &m.Width
	case ArgTypeImageHeight:
		return &m.Height
	case ArgTypeImageDepth:
		return &m.Depth
	case ArgTypeImageChannelDataType:
		return &m.ChannelDataType
	case ArgTypeImageChannelOrder:
		return &m.ChannelOrder
	case ArgTypeImageArraySize:
		return &m.ArraySize
	case ArgTypeImageNumSamples:
		return &m.NumSamples
	case ArgTypeImageMipLevels:
		return &m.NumMipLevels
	case ArgTypeImageFlatBaseOffset:
		return &m.FlatBaseOffset
	case ArgTypeImageFlatWidth:
		return &m.FlatWidth
	case ArgTypeImageFlatHeight:
		return &m.FlatHeight
	}
	return &m.FlatPitch
}
