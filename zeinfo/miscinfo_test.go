package zeinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/kernel"
)

const miscKernel = `kernels:
  - name: foo
    execution_env:
      simd_size: 16
    payload_arguments:
      - arg_type: arg_bypointer
        offset: 0
        size: 8
        arg_index: 0
        addrmode: stateless
        addrspace: global
      - arg_type: arg_byvalue
        offset: 8
        size: 4
        arg_index: 1
`

func TestMiscInfo(t *testing.T) {
	desc, w := mustDecode(t, miscKernel+`kernels_misc_info:
  - name: foo
    args_info:
      - index: 0
        name: buf
        address_qualifier: __global
        access_qualifier: NONE
        type_name: 'int*;8'
        type_qualifiers: 'const restrict'
      - index: 1
        name: n
        address_qualifier: __private
        access_qualifier: NONE
        type_name: 'int;4'
`)
	require.Len(t, desc.ExplicitArgsExtendedMetadata, 2)
	md := desc.ExplicitArgsExtendedMetadata[0]
	assert.Equal(t, "buf", md.ArgName)
	assert.Equal(t, "int*", md.Type)
	assert.Equal(t, "__global", md.AddressQualifier)

	arg := desc.PayloadMappings.ExplicitArgs[0]
	assert.Equal(t, kernel.AddrGlobal, arg.Traits.AddressQualifier)
	assert.Equal(t, kernel.AccessNone, arg.Traits.AccessQualifier)
	assert.Equal(t, kernel.TypeQualifiers{Const: true, Restrict: true}, arg.Traits.TypeQualifiers)
	assert.Equal(t, uint16(8), arg.Traits.ArgByValSize)

	assert.Equal(t, "int", desc.ExplicitArgsExtendedMetadata[1].Type)
	assert.Equal(t, kernel.AddrPrivate, desc.PayloadMappings.ExplicitArgs[1].Traits.AddressQualifier)
	assert.True(t, w.Contains(`ArgInfo member "type_qualifiers" missing`))
}

func TestMiscInfoUnknownKernel(t *testing.T) {
	_, _, err := decode(t, miscKernel+`kernels_misc_info:
  - name: bar
    args_info:
      - index: 0
        name: buf
        type_name: 'int*;8'
`)
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errorKind(err))
	assert.Contains(t, err.Error(), "Cannot find kernel info for kernel bar")
}

func TestMiscInfoMissingIndex(t *testing.T) {
	_, _, err := decode(t, miscKernel+`kernels_misc_info:
  - name: foo
    args_info:
      - name: buf
        type_name: 'int*;8'
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ArgInfo index missing")
}

func TestMiscInfoUnknownMember(t *testing.T) {
	_, w := mustDecode(t, miscKernel+`kernels_misc_info:
  - name: foo
    args_info:
      - index: 0
        name: buf
        type_name: 'int*;8'
        alignment: 8
`)
	assert.True(t, w.Contains("Unrecognized argsInfo member alignment"))
}

func TestMiscInfoIndexOutOfRange(t *testing.T) {
	_, _, err := decode(t, miscKernel+`kernels_misc_info:
  - name: foo
    args_info:
      - index: 7
        name: buf
        type_name: 'int*;8'
`)
	require.Error(t, err)
	assert.Equal(t, errors.KindOutOfBounds, errorKind(err))
}
