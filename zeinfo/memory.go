package zeinfo

import (
	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/internal/mathutil"
	"github.com/wippyai/zebin/yaml"
)

var memoryBufferTags = []string{tagAllocationType, tagMemoryUsage, tagSize, tagIsSimtThread, tagSlot}

type memoryBuffer struct {
	allocationType AllocationType
	memoryUsage    MemoryUsage
	size           int32
	isSimtThread   bool
	slot           int32
}

func (d *decoder) readMemoryBuffers(id yaml.NodeID, ctx string) ([]memoryBuffer, error) {
	g := d.group(ctx)
	var out []memoryBuffer
	for entry := range d.p.Children(id) {
		var b memoryBuffer
		for c := range d.p.Children(entry) {
			switch d.p.ReadKey(c) {
			case tagAllocationType:
				readEnum(g, c, allocationTypes, &b.allocationType)
			case tagMemoryUsage:
				readEnum(g, c, memoryUsages, &b.memoryUsage)
			case tagSize:
				readInt(g, c, &b.size)
			case tagIsSimtThread:
				readBool(g, c, &b.isSimtThread)
			case tagSlot:
				readInt(g, c, &b.slot)
			default:
				g.unknown(c, "for per-thread memory buffer in context of "+ctx, memoryBufferTags)
			}
		}
		out = append(out, b)
	}
	return out, g.err
}

func (k *kernelDecoder) decodeMemoryBuffers() error {
	if len(k.s.perThreadMemory) == 0 {
		return nil
	}
	buffers, err := k.readMemoryBuffers(k.s.perThreadMemory[0], k.name)
	if err != nil {
		return err
	}
	for _, b := range buffers {
		if err := k.addMemoryBuffer(b); err != nil {
			return err
		}
	}
	return nil
}

func (k *kernelDecoder) addMemoryBuffer(b memoryBuffer) error {
	attrs := &k.desc.Attributes
	if b.size <= 0 {
		return k.failf(errors.KindInvalidData, "Invalid per-thread memory buffer allocation size (size must be greater than 0) in context of : %s.", k.name)
	}
	size := uint32(b.size)
	if b.isSimtThread {
		size *= uint32(attrs.SimdSize)
	}

	switch b.allocationType {
	case AllocationTypeGlobal:
		if b.memoryUsage != MemoryUsagePrivateSpace {
			return k.failf(errors.KindInvalidData, "Invalid per-thread memory buffer memory usage type for %s allocation type in context of : %s. Expected : %s.",
				AllocationTypeGlobal, k.name, MemoryUsagePrivateSpace)
		}
		attrs.PerHwThreadPrivateMemorySize = size

	case AllocationTypeScratch:
		slot := b.slot
		if !k.version.AtLeast(scratchSlotVersion) {
			// Older documents have no slot and no sizes in execution_env.
			slot = 0
			if b.memoryUsage == MemoryUsagePrivateSpace {
				slot = 1
				attrs.PrivateScratchMemorySize = uint32(b.size)
			} else {
				attrs.SpillFillScratchMemorySize = uint32(b.size)
			}
		}
		if slot < 0 || slot > 1 {
			return k.failf(errors.KindOutOfBounds, "Invalid scratch buffer slot %d in context of : %s. Expected 0 or 1.", slot, k.name)
		}
		if attrs.PerThreadScratchSize[slot] != 0 {
			return k.failf(errors.KindInvalidData, "Invalid duplicated scratch buffer entry %d in context of : %s.", slot, k.name)
		}
		scratch := max(uint32(b.size), k.cfg.MinScratchSpaceSize)
		if !mathutil.IsPow2(scratch) {
			scratch = mathutil.NextPowerOfTwo(scratch)
		}
		attrs.PerThreadScratchSize[slot] = scratch

	default:
		return k.failf(errors.KindInvalidData, "Invalid per-thread memory buffer allocation type in context of : %s.", k.name)
	}
	return nil
}

func (k *kernelDecoder) decodeExperimental() error {
	if len(k.s.experimental) == 0 {
		return nil
	}
	g := k.group(k.name)
	var load, store, atomic int32
	for entry := range k.p.Children(k.s.experimental[0]) {
		for c := range k.p.Children(entry) {
			switch k.p.ReadKey(c) {
			case tagHasNonKernelArgLoad:
				readInt(g, c, &load)
			case tagHasNonKernelArgStore:
				readInt(g, c, &store)
			case tagHasNonKernelArgAtomic:
				readInt(g, c, &atomic)
			default:
				key := k.p.ReadKey(c)
				k.w.Addf("Unknown entry %q in context of %s", key, k.name)
				g.fail(errors.FieldUnknown(errors.PhaseDecode, k.p.Path(c), key))
			}
		}
	}
	if g.err != nil {
		return g.err
	}
	attrs := &k.desc.Attributes
	attrs.HasNonKernelArgLoad = load != 0
	attrs.HasNonKernelArgStore = store != 0
	attrs.HasNonKernelArgAtomic = atomic != 0
	return nil
}
