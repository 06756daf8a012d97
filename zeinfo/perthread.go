package zeinfo

import (
	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/internal/mathutil"
	"github.com/wippyai/zebin/yaml"
)

// Local ids are 16-bit per lane.
const localIDSize = 2

type perThreadArg struct {
	argType ArgType
	size    int32
	offset  int32
}

func (d *decoder) readPerThreadPayload(id yaml.NodeID, ctx string) ([]perThreadArg, error) {
	g := d.group(ctx)
	var out []perThreadArg
	for entry := range d.p.Children(id) {
		a := perThreadArg{size: -1, offset: -1}
		for c := range d.p.Children(entry) {
			switch d.p.ReadKey(c) {
			case tagArgType:
				readEnum(g, c, argTypes, &a.argType)
			case tagSize:
				readInt(g, c, &a.size)
			case tagOffset:
				readInt(g, c, &a.offset)
			default:
				g.unknown(c, "for per-thread payload argument in context of "+ctx, []string{tagArgType, tagSize, tagOffset})
			}
		}
		if a.size == 0 {
			d.w.Addf("Skipping 0-size per-thread argument of type : %s in context of %s", a.argType, ctx)
			continue
		}
		out = append(out, a)
	}
	return out, g.err
}

func (k *kernelDecoder) decodePerThreadPayload() error {
	if len(k.s.perThreadPayload) == 0 {
		return nil
	}
	args, err := k.readPerThreadPayload(k.s.perThreadPayload[0], k.name)
	if err != nil {
		return err
	}
	for _, a := range args {
		if err := k.addPerThreadArg(a); err != nil {
			return err
		}
	}
	return nil
}

func (k *kernelDecoder) addPerThreadArg(a perThreadArg) error {
	attrs := &k.desc.Attributes
	switch a.argType {
	case ArgTypeLocalID:
		if a.offset != 0 {
			return k.failf(errors.KindInvalidData, "Invalid offset for argument of type %s in context of : %s. Expected 0.", a.argType, k.name)
		}
		grf := k.cfg.GRFSize
		if grf == 0 {
			return k.failf(errors.KindInvalidInput, "GRF size must be greater than 0 to lay out %s in context of : %s", a.argType, k.name)
		}
		lanes := uint32(16)
		if attrs.SimdSize == 32 {
			lanes = 32
		}
		chanBytes := mathutil.AlignUp(lanes*localIDSize, grf)
		tuple := uint32(max(a.size, 0)) / chanBytes
		if tuple < 1 || tuple > 3 || tuple*chanBytes != uint32(a.size) {
			return k.failf(errors.KindInvalidData, "Invalid size for argument of type %s in context of : %s. For simd=%d expected : %d or %d or %d. Got : %d",
				a.argType, k.name, attrs.SimdSize, chanBytes, chanBytes*2, chanBytes*3, a.size)
		}
		k.setLocalIDs(tuple)
		attrs.PerThreadDataSize = uint16(mathutil.AlignUp(uint32(attrs.SimdSize)*localIDSize, grf) * tuple)

	case ArgTypePackedLocalIDs:
		if a.offset != 0 {
			return k.failf(errors.KindInvalidData, "Unhandled offset for argument of type %s in context of : %s. Expected 0.", a.argType, k.name)
		}
		tuple := uint32(max(a.size, 0)) / localIDSize
		if tuple < 1 || tuple > 3 || tuple*localIDSize != uint32(a.size) {
			return k.failf(errors.KindInvalidData, "Invalid size for argument of type %s in context of : %s. Expected : %d or %d or %d. Got : %d",
				a.argType, k.name, localIDSize, localIDSize*2, localIDSize*3, a.size)
		}
		k.setLocalIDs(tuple)
		attrs.SimdSize = 1
		attrs.PerThreadDataSize = uint16(tuple * localIDSize)

	default:
		return k.failf(errors.KindInvalidData, "Invalid arg type in per-thread data section in context of : %s.", k.name)
	}
	return nil
}

func (k *kernelDecoder) setLocalIDs(channels uint32) {
	attrs := &k.desc.Attributes
	attrs.NumLocalIDChannels = uint8(channels)
	for i := range attrs.LocalID {
		attrs.LocalID[i] = uint32(i) < channels
	}
}
