package zeinfo

import (
	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/kernel"
	"github.com/wippyai/zebin/yaml"
)

var inlineSamplerTags = []string{tagSamplerIndex, tagInlineAddrMode, tagInlineFilterMode, tagNormalized}

type inlineSampler struct {
	samplerIndex int32
	addrMode     InlineSamplerAddrMode
	filterMode   InlineSamplerFilterMode
	normalized   bool
}

var samplerAddrModes = [...]kernel.SamplerAddrMode{
	InlineSamplerAddrModeNone:        kernel.SamplerAddrNone,
	InlineSamplerAddrModeRepeat:      kernel.SamplerAddrRepeat,
	InlineSamplerAddrModeClampEdge:   kernel.SamplerAddrClampEdge,
	InlineSamplerAddrModeClampBorder: kernel.SamplerAddrClampBorder,
	InlineSamplerAddrModeMirror:      kernel.SamplerAddrMirror,
}

var samplerFilterModes = [...]kernel.SamplerFilterMode{
	InlineSamplerFilterModeNearest: kernel.SamplerFilterNearest,
	InlineSamplerFilterModeLinear:  kernel.SamplerFilterLinear,
}

func (d *decoder) readInlineSamplers(id yaml.NodeID, ctx string) ([]inlineSampler, error) {
	g := d.group(ctx)
	var out []inlineSampler
	for entry := range d.p.Children(id) {
		s := inlineSampler{samplerIndex: -1}
		for c := range d.p.Children(entry) {
			switch d.p.ReadKey(c) {
			case tagSamplerIndex:
				readInt(g, c, &s.samplerIndex)
			case tagInlineAddrMode:
				readEnum(g, c, inlineSamplerAddrModes, &s.addrMode)
			case tagInlineFilterMode:
				readEnum(g, c, inlineSamplerFilterModes, &s.filterMode)
			case tagNormalized:
				readBool(g, c, &s.normalized)
			default:
				g.unknown(c, "for inline sampler in context of "+ctx, inlineSamplerTags)
			}
		}
		out = append(out, s)
	}
	return out, g.err
}

func (k *kernelDecoder) decodeInlineSamplers() error {
	if len(k.s.inlineSamplers) == 0 {
		return nil
	}
	samplers, err := k.readInlineSamplers(k.s.inlineSamplers[0], k.name)
	if err != nil {
		return err
	}
	for _, s := range samplers {
		if err := k.addInlineSampler(s); err != nil {
			return err
		}
	}
	return nil
}

func (k *kernelDecoder) addInlineSampler(s inlineSampler) error {
	if s.samplerIndex < 0 || s.samplerIndex >= 0xFF {
		return k.failf(errors.KindInvalidData, "Invalid inline sampler index (must be >= 0) in context of : %s.", k.name)
	}
	if s.addrMode == InlineSamplerAddrModeUnknown {
		return k.failf(errors.KindInvalidData, "Invalid inline sampler addressing mode in context of : %s", k.name)
	}
	if s.filterMode == InlineSamplerFilterModeUnknown {
		return k.failf(errors.KindInvalidData, "Invalid inline sampler filterMode mode in context of : %s", k.name)
	}

	k.desc.InlineSamplers = append(k.desc.InlineSamplers, kernel.InlineSampler{
		SamplerIndex:   uint32(s.samplerIndex),
		AddrMode:       samplerAddrModes[s.addrMode],
		FilterMode:     samplerFilterModes[s.filterMode],
		IsNormalized:   s.normalized,
		BindlessOffset: kernel.Undefined,
	})
	st := &k.desc.PayloadMappings.SamplerTable
	st.NumSamplers = max(st.NumSamplers, uint8(s.samplerIndex+1))
	return nil
}
