package heap

import (
	"encoding/binary"
	"testing"

	"github.com/wippyai/zebin/kernel"
)

func TestGenerateSSH(t *testing.T) {
	tests := []struct {
		entries  uint8
		wantSize int
	}{
		{1, 128},
		{3, 256},
		{16, 1088},
	}
	for _, tt := range tests {
		d := kernel.NewDescriptor()
		d.PayloadMappings.BindingTable.NumEntries = tt.entries
		GenerateSSH(d)

		if len(d.GeneratedSSH) != tt.wantSize {
			t.Errorf("entries %d: SSH size = %d, want %d", tt.entries, len(d.GeneratedSSH), tt.wantSize)
			continue
		}
		off := int(d.PayloadMappings.BindingTable.TableOffset)
		if off != int(tt.entries)*SurfaceStateSize {
			t.Errorf("entries %d: table offset = %d, want %d", tt.entries, off, int(tt.entries)*SurfaceStateSize)
		}
		for i := 0; i < int(tt.entries); i++ {
			got := binary.LittleEndian.Uint32(d.GeneratedSSH[off+i*BindingTableEntrySize:])
			if got != uint32(i*SurfaceStateSize) {
				t.Errorf("entries %d: bt[%d] = %d, want %d", tt.entries, i, got, i*SurfaceStateSize)
			}
		}
		for i := 0; i < off; i++ {
			if d.GeneratedSSH[i] != 0 {
				t.Fatalf("entries %d: surface state byte %d = %d, want 0", tt.entries, i, d.GeneratedSSH[i])
			}
		}
	}
}

func TestGenerateDSH(t *testing.T) {
	d := kernel.NewDescriptor()
	d.PayloadMappings.SamplerTable.NumSamplers = 5
	GenerateDSH(d, SamplerStateSize, BorderColorStateSize)

	if len(d.GeneratedDSH) != 192 {
		t.Errorf("DSH size = %d, want 192", len(d.GeneratedDSH))
	}
	st := d.PayloadMappings.SamplerTable
	if st.BorderColor != 0 || st.TableOffset != BorderColorStateSize {
		t.Errorf("sampler table = %+v", st)
	}
	if !d.Attributes.Flags.UsesSamplers {
		t.Error("UsesSamplers not set")
	}
}

func TestGenerateDSHExactFit(t *testing.T) {
	d := kernel.NewDescriptor()
	d.PayloadMappings.SamplerTable.NumSamplers = 4
	GenerateDSH(d, SamplerStateSize, BorderColorStateSize)
	if len(d.GeneratedDSH) != 128 {
		t.Errorf("DSH size = %d, want 128", len(d.GeneratedDSH))
	}
}
