package zeinfo

import (
	"strings"

	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/kernel"
	"github.com/wippyai/zebin/yaml"
)

type argInfo struct {
	index            int32
	name             string
	addressQualifier string
	accessQualifier  string
	typeName         string
	typeQualifiers   string
}

type kernelMiscInfo struct {
	name string
	args []argInfo
}

func (d *decoder) readArgsInfo(id yaml.NodeID, g *group) []argInfo {
	var out []argInfo
	for entry := range d.p.Children(id) {
		info := argInfo{index: -1}
		for c := range d.p.Children(entry) {
			switch key := d.p.ReadKey(c); key {
			case tagName:
				readString(g, c, &info.name)
			case tagAccessQualifier:
				readString(g, c, &info.accessQualifier)
			case tagAddressQualifier:
				readString(g, c, &info.addressQualifier)
			case tagIndex:
				readInt(g, c, &info.index)
			case tagTypeName:
				info.typeName = d.p.ReadValueNoQuotes(c)
				if info.typeName == "" {
					g.failf(c, errors.KindFieldMissing, "KernelMiscInfo : empty %s in context of : %s", tagTypeName, g.ctx)
				}
			case tagTypeQualifiers:
				readString(g, c, &info.typeQualifiers)
			default:
				d.w.Addf("KernelMiscInfo : Unrecognized argsInfo member %s", key)
			}
		}
		if info.index == -1 {
			g.failf(entry, errors.KindFieldMissing, "KernelMiscInfo : ArgInfo index missing (has default value -1)")
			continue
		}
		out = append(out, info)
	}
	return out
}

// decodeMiscInfo attaches kernels_misc_info to the kernels decoded earlier.
func (d *decoder) decodeMiscInfo(prog *kernel.ProgramInfo, id yaml.NodeID) error {
	g := d.group(tagKernelsMiscInfo)
	var infos []kernelMiscInfo
	for entry := range d.p.Children(id) {
		var mi kernelMiscInfo
		for c := range d.p.Children(entry) {
			switch key := d.p.ReadKey(c); key {
			case tagName:
				readString(g, c, &mi.name)
			case tagArgsInfo:
				mi.args = append(mi.args, d.readArgsInfo(c, g)...)
			default:
				d.w.Addf("Unrecognized entry: %s in %s zeInfo's section.", key, tagKernelsMiscInfo)
			}
		}
		if mi.name == "" {
			g.failf(entry, errors.KindFieldMissing, "Missing kernel name in %s section.", tagKernelsMiscInfo)
			continue
		}
		infos = append(infos, mi)
	}
	if g.err != nil {
		return g.err
	}

	for _, mi := range infos {
		ki, ok := prog.Kernel(mi.name)
		if !ok {
			return errors.New(errors.PhaseDecode, errors.KindNotFound).
				Path(tagKernelsMiscInfo).
				Value(mi.name).
				Detail("Cannot find kernel info for kernel %s.", mi.name).
				Build()
		}
		if err := d.applyMiscInfo(ki.Descriptor, mi); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) applyMiscInfo(desc *kernel.Descriptor, mi kernelMiscInfo) error {
	desc.ExplicitArgsExtendedMetadata = make([]kernel.ArgTypeMetadataExtended, len(mi.args))
	member := func(value, tag string) string {
		if value == "" {
			d.w.Addf("KernelMiscInfo : ArgInfo member %q missing. Ignoring.", tag)
		}
		return value
	}
	for _, info := range mi.args {
		arg := desc.Arg(int(info.index))
		if arg == nil || int(info.index) >= len(desc.ExplicitArgsExtendedMetadata) {
			return errors.OutOfBounds(errors.PhaseDecode, []string{tagKernelsMiscInfo, mi.name, tagArgsInfo},
				int(info.index), min(len(desc.PayloadMappings.ExplicitArgs), len(mi.args)))
		}
		md := kernel.ArgTypeMetadataExtended{
			ArgName:          member(info.name, tagName),
			AccessQualifier:  member(info.accessQualifier, tagAccessQualifier),
			AddressQualifier: member(info.addressQualifier, tagAddressQualifier),
			Type:             member(info.typeName, tagTypeName),
			TypeQualifiers:   member(info.typeQualifiers, tagTypeQualifiers),
		}
		if i := strings.IndexByte(md.Type, ';'); i >= 0 {
			md.Type = md.Type[:i]
		}

		arg.Traits.AccessQualifier = kernel.ParseAccessQualifier(md.AccessQualifier)
		arg.Traits.AddressQualifier = kernel.ParseAddressQualifier(md.AddressQualifier)
		arg.Traits.TypeQualifiers = kernel.ParseTypeQualifiers(md.TypeQualifiers)
		desc.ExplicitArgsExtendedMetadata[info.index] = md
	}
	return nil
}
