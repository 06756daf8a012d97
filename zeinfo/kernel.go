package zeinfo

import (
	"go.uber.org/multierr"

	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/heap"
	"github.com/wippyai/zebin/internal/mathutil"
	"github.com/wippyai/zebin/kernel"
	"github.com/wippyai/zebin/yaml"
)

// kernelSections buckets the children of one kernel entry by tag.
type kernelSections struct {
	name             []yaml.NodeID
	attributes       []yaml.NodeID
	executionEnv     []yaml.NodeID
	debugEnv         []yaml.NodeID
	payloadArguments []yaml.NodeID
	perThreadPayload []yaml.NodeID
	bindingTable     []yaml.NodeID
	perThreadMemory  []yaml.NodeID
	experimental     []yaml.NodeID
	inlineSamplers   []yaml.NodeID
}

func (s *kernelSections) validate() error {
	const scope = "kernel"
	var err error
	err = multierr.Append(err, countExactly(s.name, 1, tagName, scope))
	err = multierr.Append(err, countExactly(s.executionEnv, 1, tagExecutionEnv, scope))
	err = multierr.Append(err, countAtMost(s.attributes, 1, tagUserAttributes, scope))
	err = multierr.Append(err, countAtMost(s.debugEnv, 1, tagDebugEnv, scope))
	err = multierr.Append(err, countAtMost(s.payloadArguments, 1, tagPayloadArguments, scope))
	err = multierr.Append(err, countAtMost(s.perThreadPayload, 1, tagPerThreadPayloadArguments, scope))
	err = multierr.Append(err, countAtMost(s.bindingTable, 1, tagBindingTableIndices, scope))
	err = multierr.Append(err, countAtMost(s.perThreadMemory, 1, tagPerThreadMemoryBuffers, scope))
	err = multierr.Append(err, countAtMost(s.experimental, 1, tagExperimentalProperties, scope))
	err = multierr.Append(err, countAtMost(s.inlineSamplers, 1, tagInlineSamplers, scope))
	return err
}

// kernelDecoder fills one descriptor.
type kernelDecoder struct {
	*decoder
	s    *kernelSections
	desc *kernel.Descriptor
	name string
}

func (d *decoder) extractKernelSections(id yaml.NodeID) (*kernelSections, error) {
	s := &kernelSections{}
	g := d.group(".ze_info")
	for c := range d.p.Children(id) {
		switch d.p.ReadKey(c) {
		case tagName:
			s.name = append(s.name, c)
		case tagUserAttributes:
			s.attributes = append(s.attributes, c)
		case tagExecutionEnv:
			s.executionEnv = append(s.executionEnv, c)
		case tagDebugEnv:
			s.debugEnv = append(s.debugEnv, c)
		case tagPayloadArguments:
			s.payloadArguments = append(s.payloadArguments, c)
		case tagPerThreadPayloadArguments:
			s.perThreadPayload = append(s.perThreadPayload, c)
		case tagBindingTableIndices:
			s.bindingTable = append(s.bindingTable, c)
		case tagPerThreadMemoryBuffers:
			s.perThreadMemory = append(s.perThreadMemory, c)
		case tagExperimentalProperties:
			s.experimental = append(s.experimental, c)
		case tagInlineSamplers:
			s.inlineSamplers = append(s.inlineSamplers, c)
		default:
			g.unknown(c, "in context of : "+g.ctx, kernelTags)
		}
	}
	return s, g.err
}

func (d *decoder) decodeKernel(id yaml.NodeID) (*kernel.KernelInfo, error) {
	s, err := d.extractKernelSections(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	k := &kernelDecoder{decoder: d, s: s, desc: kernel.NewDescriptor()}
	k.name = d.p.ReadValueNoQuotes(s.name[0])
	k.desc.Metadata.KernelName = k.name

	for _, step := range []func() error{
		k.decodeExecEnv,
		k.decodeAttributes,
		k.decodeDebugEnv,
		k.decodeInlineSamplers,
		k.decodePerThreadPayload,
		k.decodePayloadArguments,
		k.decodeMemoryBuffers,
		k.decodeExperimental,
		k.decodeBindingTable,
	} {
		if err := step(); err != nil {
			return nil, err
		}
	}

	attrs := &k.desc.Attributes
	pm := &k.desc.PayloadMappings
	if pm.BindingTable.NumEntries > 0 {
		heap.GenerateSSH(k.desc)
		attrs.NumArgsStateful = max(attrs.NumArgsStateful, uint16(pm.BindingTable.NumEntries))
	}
	if pm.SamplerTable.NumSamplers > 0 {
		heap.GenerateDSH(k.desc, heap.SamplerStateSize, heap.BorderColorStateSize)
	}
	if d.cfg.AppendElws {
		elws := &pm.DispatchTraits.EnqueuedLocalWorkSize
		elws[0] = attrs.CrossThreadDataSize
		elws[1] = elws[0] + 4
		elws[2] = elws[1] + 4
		attrs.CrossThreadDataSize = mathutil.AlignUp(elws[2]+4, 32)
	}
	return &kernel.KernelInfo{Descriptor: k.desc}, nil
}

// failf builds a decode error in the context of the current kernel.
func (k *kernelDecoder) failf(kind errors.Kind, format string, args ...any) error {
	return errors.New(errors.PhaseDecode, kind).
		Path(tagKernels, k.name).
		Detail(format, args...).
		Build()
}

// setBindful points a surface at binding-table slot bti and grows the table.
// bti -1 means no slot.
func (k *kernelDecoder) setBindful(dst *kernel.SurfaceStateHeapOffset, bti int32) error {
	if bti == -1 {
		return nil
	}
	if bti < 0 || bti >= 0xFF {
		return k.failf(errors.KindOutOfBounds, "Invalid binding table index %d in context of : %s. Expected 0 to 254", bti, k.name)
	}
	*dst = kernel.SurfaceStateHeapOffset(bti) * heap.SurfaceStateSize
	bt := &k.desc.PayloadMappings.BindingTable
	bt.NumEntries = max(bt.NumEntries, uint8(bti+1))
	return nil
}
