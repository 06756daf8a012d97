// Package heap synthesizes the surface-state and dynamic-state heap images
// a kernel expects when its binding and sampler tables are not shipped in
// the binary.
package heap

import (
	"encoding/binary"

	"github.com/wippyai/zebin/internal/mathutil"
	"github.com/wippyai/zebin/kernel"
)

// Record sizes, in bytes.
const (
	SurfaceStateSize      = 64
	BindingTableEntrySize = 4
	SamplerStateSize      = 16
	BorderColorStateSize  = 64
)

// GenerateSSH lays out one zeroed surface state per binding-table entry,
// followed by the binding table itself. Entry i holds the offset of surface
// state i. The table offset is written back to d.
func GenerateSSH(d *kernel.Descriptor) {
	bt := &d.PayloadMappings.BindingTable
	n := uint32(bt.NumEntries)
	bt.TableOffset = uint16(n * SurfaceStateSize)

	size := mathutil.AlignUp(n*SurfaceStateSize+n*BindingTableEntrySize, SurfaceStateSize)
	ssh := make([]byte, size)
	for i := uint32(0); i < n; i++ {
		off := uint32(bt.TableOffset) + i*BindingTableEntrySize
		binary.LittleEndian.PutUint32(ssh[off:], i*SurfaceStateSize)
	}
	d.GeneratedSSH = ssh
}

// GenerateDSH reserves a border color block followed by one sampler state
// per sampler-table entry, all zeroed.
func GenerateDSH(d *kernel.Descriptor, samplerStateSize, borderColorSize uint32) {
	d.Attributes.Flags.UsesSamplers = true
	st := &d.PayloadMappings.SamplerTable
	st.BorderColor = 0
	st.TableOffset = uint16(borderColorSize)

	size := borderColorSize + uint32(st.NumSamplers)*samplerStateSize
	if borderColorSize != 0 {
		size = alignUpAny(size, borderColorSize)
	}
	d.GeneratedDSH = make([]byte, size)
}

// alignUpAny rounds n up to a multiple of align, which need not be a power of two.
func alignUpAny(n, align uint32) uint32 {
	return (n + align - 1) / align * align
}
