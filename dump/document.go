package dump

import (
	"encoding/hex"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/wippyai/zebin"
	"github.com/wippyai/zebin/container"
	"github.com/wippyai/zebin/kernel"
)

// Document is the serializable summary of one decode.
type Document struct {
	Source            string            `json:"source,omitempty" yaml:"source,omitempty"`
	Outcome           string            `json:"outcome" yaml:"outcome"`
	Error             string            `json:"error,omitempty" yaml:"error,omitempty"`
	Warnings          []string          `json:"warnings" yaml:"warnings"`
	Kernels           []Kernel          `json:"kernels" yaml:"kernels"`
	Globals           *Globals          `json:"globals,omitempty" yaml:"globals,omitempty"`
	ExternalFunctions []Function        `json:"external_functions,omitempty" yaml:"external_functions,omitempty"`
	HostAccess        map[string]string `json:"host_access,omitempty" yaml:"host_access,omitempty"`
	Notes             *Notes            `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Kernel summarizes one kernel descriptor.
type Kernel struct {
	Name                string    `json:"name" yaml:"name"`
	SimdSize            uint8     `json:"simd_size" yaml:"simd_size"`
	GRFCount            uint32    `json:"grf_count" yaml:"grf_count"`
	BarrierCount        uint8     `json:"barrier_count" yaml:"barrier_count"`
	SlmSize             uint32    `json:"slm_size" yaml:"slm_size"`
	CrossThreadDataSize uint16    `json:"cross_thread_data_size" yaml:"cross_thread_data_size"`
	PerThreadDataSize   uint16    `json:"per_thread_data_size" yaml:"per_thread_data_size"`
	InlineDataSize      uint16    `json:"inline_data_size" yaml:"inline_data_size"`
	BufferAddressing    string    `json:"buffer_addressing" yaml:"buffer_addressing"`
	ImageAddressing     string    `json:"image_addressing" yaml:"image_addressing"`
	ScratchSize         [2]uint32 `json:"scratch_size" yaml:"scratch_size,flow"`
	PrivateMemorySize   uint32    `json:"private_memory_size" yaml:"private_memory_size"`
	BindingTableEntries uint8     `json:"binding_table_entries" yaml:"binding_table_entries"`
	Samplers            uint8     `json:"samplers" yaml:"samplers"`
	SSHSize             int       `json:"ssh_size" yaml:"ssh_size"`
	DSHSize             int       `json:"dsh_size" yaml:"dsh_size"`
	ISASize             int       `json:"isa_size" yaml:"isa_size"`
	Fingerprint         string    `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	LanguageAttributes  string    `json:"language_attributes,omitempty" yaml:"language_attributes,omitempty"`
	Args                []Arg     `json:"args" yaml:"args"`
}

// Arg summarizes one explicit argument.
type Arg struct {
	Index        int    `json:"index" yaml:"index"`
	Kind         string `json:"kind" yaml:"kind"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty"`
	AddressSpace string `json:"address_space" yaml:"address_space"`
	Access       string `json:"access" yaml:"access"`
	Size         uint16 `json:"size,omitempty" yaml:"size,omitempty"`
}

// Globals are the sizes of the program's global segments.
type Globals struct {
	Variables uint64 `json:"variables" yaml:"variables"`
	Constants uint64 `json:"constants" yaml:"constants"`
	Strings   uint64 `json:"strings" yaml:"strings"`
}

// Function summarizes an external function.
type Function struct {
	Name         string `json:"name" yaml:"name"`
	SimdSize     uint8  `json:"simd_size" yaml:"simd_size"`
	GRFCount     uint16 `json:"grf_count" yaml:"grf_count"`
	BarrierCount uint8  `json:"barrier_count" yaml:"barrier_count"`
	HasRTCalls   bool   `json:"has_rtcalls,omitempty" yaml:"has_rtcalls,omitempty"`
}

// Notes mirrors container.Notes with plain values.
type Notes struct {
	ProductFamily  *uint32 `json:"product_family,omitempty" yaml:"product_family,omitempty"`
	GfxCore        *uint32 `json:"gfx_core,omitempty" yaml:"gfx_core,omitempty"`
	ProductConfig  *uint32 `json:"product_config,omitempty" yaml:"product_config,omitempty"`
	ZebinVersion   string  `json:"zebin_version,omitempty" yaml:"zebin_version,omitempty"`
	VISAABIVersion *uint32 `json:"visa_abi_version,omitempty" yaml:"visa_abi_version,omitempty"`
	MinRevision    *uint8  `json:"min_revision,omitempty" yaml:"min_revision,omitempty"`
	MaxRevision    *uint8  `json:"max_revision,omitempty" yaml:"max_revision,omitempty"`
}

// New summarizes a decode result. err is the decode error, if any.
func New(source string, res *zebin.Result, err error) *Document {
	doc := &Document{
		Source:   source,
		Outcome:  res.Outcome.String(),
		Warnings: append([]string{}, res.Warnings.List()...),
		Kernels:  []Kernel{},
	}
	if err != nil {
		doc.Error = err.Error()
	}
	doc.Notes = newNotes(res.Notes)

	prog := res.Program
	if prog == nil {
		return doc
	}
	for _, k := range prog.KernelInfos {
		doc.Kernels = append(doc.Kernels, newKernel(k))
	}
	doc.Globals = &Globals{
		Variables: prog.GlobalVariables.Size(),
		Constants: prog.GlobalConstants.Size(),
		Strings:   prog.GlobalStrings.Size(),
	}
	for _, f := range prog.ExternalFunctions {
		doc.ExternalFunctions = append(doc.ExternalFunctions, Function{
			Name:         f.Name,
			SimdSize:     f.SimdSize,
			GRFCount:     f.NumGrfRequired,
			BarrierCount: f.BarrierCount,
			HasRTCalls:   f.HasRTCalls,
		})
	}
	sort.Slice(doc.ExternalFunctions, func(i, j int) bool {
		return doc.ExternalFunctions[i].Name < doc.ExternalFunctions[j].Name
	})
	if len(prog.GlobalsDeviceToHostNameMap) > 0 {
		doc.HostAccess = prog.GlobalsDeviceToHostNameMap
	}
	return doc
}

func newKernel(k *kernel.KernelInfo) Kernel {
	d := k.Descriptor
	a := &d.Attributes
	out := Kernel{
		Name:                k.Name(),
		SimdSize:            a.SimdSize,
		GRFCount:            a.NumGrfRequired,
		BarrierCount:        a.BarrierCount,
		SlmSize:             a.SlmInlineSize,
		CrossThreadDataSize: a.CrossThreadDataSize,
		PerThreadDataSize:   a.PerThreadDataSize,
		InlineDataSize:      a.InlineDataPayloadSize,
		BufferAddressing:    a.BufferAddressingMode.String(),
		ImageAddressing:     a.ImageAddressingMode.String(),
		ScratchSize:         a.PerThreadScratchSize,
		PrivateMemorySize:   a.PerHwThreadPrivateMemorySize,
		BindingTableEntries: d.PayloadMappings.BindingTable.NumEntries,
		Samplers:            d.PayloadMappings.SamplerTable.NumSamplers,
		SSHSize:             len(d.GeneratedSSH),
		DSHSize:             len(d.GeneratedDSH),
		ISASize:             len(k.ISA),
		Fingerprint:         Fingerprint(k.ISA),
		LanguageAttributes:  d.Metadata.LanguageAttributes,
		Args:                []Arg{},
	}
	for i, arg := range d.PayloadMappings.ExplicitArgs {
		da := Arg{
			Index:        i,
			Kind:         arg.Kind.String(),
			AddressSpace: arg.Traits.AddressQualifier.String(),
			Access:       arg.Traits.AccessQualifier.String(),
			Size:         arg.Traits.ArgByValSize,
		}
		if i < len(d.ExplicitArgsExtendedMetadata) {
			md := d.ExplicitArgsExtendedMetadata[i]
			da.Name, da.Type = md.ArgName, md.Type
		}
		out.Args = append(out.Args, da)
	}
	return out
}

func newNotes(n *container.Notes) *Notes {
	if n == nil {
		return nil
	}
	out := &Notes{
		ProductFamily:  n.ProductFamily,
		GfxCore:        n.GfxCore,
		ProductConfig:  n.ProductConfig,
		ZebinVersion:   n.ZebinVersion,
		VISAABIVersion: n.VISAABIVersion,
	}
	if m := n.Metadata; m != nil && m.ValidateRevisionID {
		lo, hi := m.MinHwRevisionID, m.MaxHwRevisionID
		out.MinRevision, out.MaxRevision = &lo, &hi
	}
	return out
}

// Fingerprint is the hex BLAKE2b-256 digest of isa, or "" when isa is empty.
func Fingerprint(isa []byte) string {
	if len(isa) == 0 {
		return ""
	}
	sum := blake2b.Sum256(isa)
	return hex.EncodeToString(sum[:])
}
