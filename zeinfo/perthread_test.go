package zeinfo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perThreadDoc(simd int, argType string, size int) string {
	return fmt.Sprintf(`kernels:
  - name: foo
    execution_env:
      simd_size: %d
    per_thread_payload_arguments:
      - arg_type: %s
        offset: 0
        size: %d
`, simd, argType, size)
}

func TestPerThreadLocalID(t *testing.T) {
	tests := []struct {
		simd     int
		size     int
		channels uint8
		ptd      uint16
	}{
		{16, 96, 3, 96},
		{16, 32, 1, 32},
		{8, 64, 2, 64},
		{32, 192, 3, 192},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("simd%d_%d", tt.simd, tt.size), func(t *testing.T) {
			desc, _ := mustDecode(t, perThreadDoc(tt.simd, "local_id", tt.size))
			a := desc.Attributes
			assert.Equal(t, tt.channels, a.NumLocalIDChannels)
			assert.Equal(t, tt.ptd, a.PerThreadDataSize)
			for i := range a.LocalID {
				assert.Equal(t, uint8(i) < tt.channels, a.LocalID[i], "LocalID[%d]", i)
			}
		})
	}
}

func TestPerThreadLocalIDBadSize(t *testing.T) {
	for _, size := range []int{16, 128, 40} {
		_, _, err := decode(t, perThreadDoc(16, "local_id", size))
		require.Error(t, err, "size %d", size)
		assert.Contains(t, err.Error(), "Invalid size for argument of type local_id")
	}
}

func TestPerThreadZeroGRF(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GRFSize = 0
	_, err := Decode(perThreadDoc(16, "local_id", 96), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GRF size must be greater than 0")
}

func TestPerThreadPackedLocalIDs(t *testing.T) {
	desc, _ := mustDecode(t, perThreadDoc(16, "packed_local_ids", 6))
	a := desc.Attributes
	assert.Equal(t, uint8(1), a.SimdSize)
	assert.Equal(t, uint8(3), a.NumLocalIDChannels)
	assert.Equal(t, uint16(6), a.PerThreadDataSize)

	_, _, err := decode(t, perThreadDoc(16, "packed_local_ids", 8))
	require.Error(t, err)
}

func TestPerThreadZeroSizeSkipped(t *testing.T) {
	desc, w := mustDecode(t, perThreadDoc(16, "local_id", 0))
	assert.Equal(t, uint16(0), desc.Attributes.PerThreadDataSize)
	assert.True(t, w.Contains("Skipping 0-size per-thread argument of type : local_id"))
}

func TestPerThreadInvalidArgType(t *testing.T) {
	_, _, err := decode(t, perThreadDoc(16, "local_size", 12))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid arg type in per-thread data section")
}
