package zeinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/zebin/errors"
)

func TestUserAttributes(t *testing.T) {
	desc, _ := mustDecode(t, `kernels:
  - name: foo
    execution_env:
      simd_size: 16
      required_sub_group_size: 8
    user_attributes:
      intel_reqd_sub_group_size: 16
      reqd_work_group_size: [8, 1, 1]
      work_group_size_hint: [1, 1, 1]
      my_hint: int4
      invalid_kernel: reason
      intel_reqd_thread_group_dispatch_size: 4
`)
	md := desc.Metadata
	assert.Equal(t, "my_hint(int4) intel_reqd_sub_group_size(16) reqd_work_group_size(8,1,1) work_group_size_hint(1,1,1) invalid_kernel(reason)",
		md.LanguageAttributes)
	assert.Equal(t, uint8(16), md.RequiredSubGroupSize)
	assert.Equal(t, uint32(4), md.RequiredThreadGroupDispatchSize)
	assert.True(t, desc.Attributes.Flags.IsInvalid)
}

func TestUserAttributesKeepExecEnvSubGroup(t *testing.T) {
	desc, _ := mustDecode(t, `kernels:
  - name: foo
    execution_env:
      simd_size: 16
      required_sub_group_size: 8
    user_attributes:
      vec_type_hint: float4
`)
	assert.Equal(t, uint8(8), desc.Metadata.RequiredSubGroupSize)
	assert.Equal(t, "vec_type_hint(float4)", desc.Metadata.LanguageAttributes)
	assert.False(t, desc.Attributes.Flags.IsInvalid)
}

func TestUserAttributesUnknown(t *testing.T) {
	_, _, err := decode(t, `kernels:
  - name: foo
    execution_env:
      simd_size: 16
    user_attributes:
      reqd_work_group_sise: [8, 1, 1]
`)
	require.Error(t, err)
	assert.Equal(t, errors.KindFieldUnknown, errorKind(err))
	assert.Contains(t, err.Error(), "reqd_work_group_size")
}

func TestUserAttributesBadTriple(t *testing.T) {
	_, _, err := decode(t, `kernels:
  - name: foo
    execution_env:
      simd_size: 16
    user_attributes:
      reqd_work_group_size: [8, 1]
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong size of collection reqd_work_group_size")
}

func TestLanguageAttributesEmpty(t *testing.T) {
	var a userAttributes
	if got := a.languageAttributes(); got != "" {
		t.Errorf("languageAttributes() = %q, want empty", got)
	}
}
