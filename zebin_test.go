package zebin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/zebin/container"
	"github.com/wippyai/zebin/elf"
	"github.com/wippyai/zebin/errors"
)

const twoKernels = `version: '1.52'
kernels:
  - name: foo
    execution_env:
      simd_size: 16
  - name: bar
    execution_env:
      simd_size: 8
`

func u32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

type fixture struct {
	zeinfo string
	texts  []string
	notes  []container.Note
	extra  func(b *elf.Builder)
}

func (fx fixture) build() []byte {
	b := elf.NewBuilder(elf.TypeZebinExe, elf.MachineIntelGT)
	for _, name := range fx.texts {
		b.Add(container.TextPrefix+name, elf.SectionProgbits, []byte(name+"-isa"))
	}
	if fx.zeinfo != "" {
		b.Add(container.ZeInfo, elf.SectionZebinZeInfo, []byte(fx.zeinfo))
	}
	if fx.notes != nil {
		b.Add(container.NoteIntelGT, elf.SectionNote, container.EncodeNotes(fx.notes))
	}
	if fx.extra != nil {
		fx.extra(b)
	}
	return b.Encode()
}

func TestDecodeContainer(t *testing.T) {
	data := fixture{
		zeinfo: twoKernels,
		texts:  []string{"foo", "bar"},
		extra: func(b *elf.Builder) {
			b.Add(container.DataGlobal, elf.SectionProgbits, []byte{1, 2, 3, 4})
			b.Add(container.BssGlobal, elf.SectionNobits, nil).Size = 60
			b.Add(container.DataConst, elf.SectionProgbits, []byte{9})
			b.Add(container.DataConstString, elf.SectionProgbits, []byte("str\x00"))
		},
	}.build()

	res, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, errors.OutcomeSuccess, res.Outcome)
	require.Len(t, res.Program.KernelInfos, 2)

	foo, ok := res.Program.Kernel("foo")
	require.True(t, ok)
	assert.Equal(t, []byte("foo-isa"), foo.ISA)
	bar, _ := res.Program.Kernel("bar")
	assert.Equal(t, []byte("bar-isa"), bar.ISA)
	assert.Equal(t, uint8(8), bar.Descriptor.Attributes.SimdSize)

	assert.Equal(t, []byte{1, 2, 3, 4}, res.Program.GlobalVariables.InitData)
	assert.Equal(t, uint64(64), res.Program.GlobalVariables.Size())
	assert.Equal(t, []byte{9}, res.Program.GlobalConstants.InitData)
	assert.Equal(t, uint64(0), res.Program.GlobalConstants.ZeroInitSize)
	assert.Equal(t, []byte("str\x00"), res.Program.GlobalStrings.InitData)
	assert.Nil(t, res.Notes)
}

func TestDecodeRawZeInfo(t *testing.T) {
	res, err := Decode([]byte(twoKernels))
	require.NoError(t, err)
	require.Len(t, res.Program.KernelInfos, 2)
	for _, k := range res.Program.KernelInfos {
		assert.Nil(t, k.ISA, k.Name())
	}
}

func TestDecodeMissingText(t *testing.T) {
	res, err := Decode(fixture{zeinfo: twoKernels, texts: []string{"foo"}}.build())
	require.Error(t, err)
	assert.Nil(t, res.Program)
	assert.Equal(t, errors.OutcomeInvalidBinary, res.Outcome)
	assert.Contains(t, err.Error(), `"bar" not found`)
}

func TestDecodeNoZeInfo(t *testing.T) {
	res, err := Decode(fixture{texts: []string{"foo"}}.build())
	require.NoError(t, err)
	assert.Empty(t, res.Program.KernelInfos)
	assert.True(t, res.Warnings.Contains("Expected at least one .ze_info section, got 0"))
}

func TestDecodeDuplicateZeInfo(t *testing.T) {
	data := fixture{
		zeinfo: twoKernels,
		texts:  []string{"foo", "bar"},
		extra: func(b *elf.Builder) {
			b.Add(container.ZeInfo, elf.SectionZebinZeInfo, []byte(twoKernels))
		},
	}.build()
	res, err := Decode(data)
	require.Error(t, err)
	assert.Equal(t, errors.OutcomeInvalidBinary, res.Outcome)
	assert.Contains(t, err.Error(), "at most 1 of .ze_info")
}

func TestDecodeSymbols(t *testing.T) {
	build := func(entsize uint64) []byte {
		return fixture{
			zeinfo: twoKernels,
			texts:  []string{"foo", "bar"},
			extra: func(b *elf.Builder) {
				strtab := []byte{0}
				syms := elf.EncodeSymbols([]elf.Symbol{{}, {Name: "foo", Shndx: 1, Size: 7}}, &strtab)
				sh := b.Add(".symtab", elf.SectionSymtab, syms)
				sh.EntSize = entsize
				sh.Link = b.Index()
				b.Add(".strtab", elf.SectionStrtab, strtab)
			},
		}.build()
	}

	res, err := Decode(build(elf.SymbolSize))
	require.NoError(t, err)
	require.Len(t, res.Symbols, 2)
	assert.Equal(t, "foo", res.Symbols[1].Name)

	res, err = Decode(build(16))
	require.NoError(t, err)
	assert.Empty(t, res.Symbols)
	assert.True(t, res.Warnings.Contains("Ignoring symbol table"))
}

func TestDecodeTarget(t *testing.T) {
	notes := []container.Note{
		{Owner: container.NoteOwner, Type: container.NoteProductFamily, Desc: u32(33)},
		{Owner: container.NoteOwner, Type: container.NoteZebinVersion, Desc: []byte("1.52\x00")},
	}
	data := fixture{zeinfo: twoKernels, texts: []string{"foo", "bar"}, notes: notes}.build()

	res, err := Decode(data, WithTarget(container.Target{ProductFamily: 33}))
	require.NoError(t, err)
	require.NotNil(t, res.Notes)
	assert.Equal(t, "1.52", res.Notes.ZebinVersion)

	res, err = Decode(data, WithTarget(container.Target{ProductFamily: 34}))
	require.Error(t, err)
	assert.Equal(t, errors.OutcomeUnhandledBinary, res.Outcome)

	_, err = Decode(data)
	require.NoError(t, err, "no target means no device check")
}

func TestDecodeNoteVersion(t *testing.T) {
	notes := []container.Note{
		{Owner: container.NoteOwner, Type: container.NoteZebinVersion, Desc: []byte("2.0\x00")},
	}
	res, err := Decode(fixture{zeinfo: twoKernels, texts: []string{"foo", "bar"}, notes: notes}.build())
	require.Error(t, err)
	assert.Equal(t, errors.OutcomeUnhandledBinary, res.Outcome)
}

func TestDecodeStrict(t *testing.T) {
	const doc = "kernels:\n  - name: foo\n    execution_env:\n      simd_size: 16\n    bogus_key: 1\n"

	res, err := DecodeZeInfo(doc)
	require.NoError(t, err)
	assert.True(t, res.Warnings.Len() > 0)

	res, err = DecodeZeInfo(doc, WithTolerateUnknown(false))
	require.Error(t, err)
	assert.Equal(t, errors.OutcomeInvalidBinary, res.Outcome)
	assert.NotNil(t, res.Warnings)
}

func TestOptions(t *testing.T) {
	o := NewOptions(
		WithTolerateUnknown(false),
		WithMinScratchSpaceSize(2048),
		WithGRFSize(64),
		WithAppendElws(true),
		WithTarget(container.Target{GfxCore: 12}),
	)
	assert.False(t, o.Config.TolerateUnknown)
	assert.Equal(t, uint32(2048), o.Config.MinScratchSpaceSize)
	assert.Equal(t, uint32(64), o.Config.GRFSize)
	assert.True(t, o.Config.AppendElws)
	require.NotNil(t, o.Target)
	assert.Equal(t, uint32(12), o.Target.GfxCore)
	assert.NotNil(t, o.Logger)

	d := NewOptions()
	assert.True(t, d.Config.TolerateUnknown)
	assert.Nil(t, d.Target)
}

func TestZeInfoText(t *testing.T) {
	text, err := ZeInfoText(fixture{zeinfo: twoKernels, texts: []string{"foo"}}.build())
	require.NoError(t, err)
	assert.Equal(t, twoKernels, text)

	text, err = ZeInfoText([]byte("kernels:\n"))
	require.NoError(t, err)
	assert.Equal(t, "kernels:\n", text)

	_, err = ZeInfoText(fixture{texts: []string{"foo"}}.build())
	assert.Error(t, err)
}
