package zeinfo

import (
	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/kernel"
)

func (k *kernelDecoder) decodeDebugEnv() error {
	if len(k.s.debugEnv) == 0 {
		return nil
	}
	g := k.group(k.name)
	sipBTI := int32(-1)
	for c := range k.p.Children(k.s.debugEnv[0]) {
		switch k.p.ReadKey(c) {
		case tagSipSurfaceBTI:
			readInt(g, c, &sipBTI)
		case tagSipSurfaceOffset:
			var off int32
			readInt(g, c, &off)
		default:
			g.unknown(c, "in context of "+k.name, []string{tagSipSurfaceBTI, tagSipSurfaceOffset})
		}
	}
	if g.err != nil {
		return g.err
	}
	if sipBTI == 0 {
		return k.setBindful(&k.desc.PayloadMappings.ImplicitArgs.SystemThreadSurfaceAddress.Bindful, 0)
	}
	return nil
}

type bindingTableEntry struct {
	argIndex int32
	btiValue int32
}

func (k *kernelDecoder) decodeBindingTable() error {
	if len(k.s.bindingTable) == 0 {
		return nil
	}
	g := k.group(k.name)
	var entries []bindingTableEntry
	for entry := range k.p.Children(k.s.bindingTable[0]) {
		var e bindingTableEntry
		for c := range k.p.Children(entry) {
			switch k.p.ReadKey(c) {
			case tagArgIndex:
				readInt(g, c, &e.argIndex)
			case tagBtiValue:
				readInt(g, c, &e.btiValue)
			default:
				g.unknown(c, "for binding table index in context of "+k.name, []string{tagArgIndex, tagBtiValue})
			}
		}
		entries = append(entries, e)
	}
	if g.err != nil {
		return g.err
	}

	for _, e := range entries {
		arg := k.desc.Arg(int(e.argIndex))
		if arg == nil {
			return errors.OutOfBounds(errors.PhaseDecode, []string{tagKernels, k.name, tagBindingTableIndices},
				int(e.argIndex), len(k.desc.PayloadMappings.ExplicitArgs))
		}
		var err error
		switch arg.Kind {
		case kernel.ArgKindPointer:
			err = k.setBindful(&arg.Pointer.Bindful, e.btiValue)
		case kernel.ArgKindImage:
			err = k.setBindful(&arg.Image.Bindful, e.btiValue)
		default:
			err = k.failf(errors.KindInvalidData, "Invalid binding table entry for non-pointer and non-image argument idx : %d.", e.argIndex)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
