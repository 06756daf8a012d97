package elf

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/zebin/errors"
)

func buildSample() []byte {
	b := NewBuilder(TypeZebinExe, MachineIntelGT)
	b.Add(".text.k", SectionProgbits, []byte{1, 2, 3, 4, 5})
	b.Add(".ze_info", SectionZebinZeInfo, []byte("kernels:\n"))
	b.Add(".bss.global", SectionNobits, nil).Size = 128
	strtabIdx := b.Index() + 1
	strtab := []byte{0}
	syms := EncodeSymbols([]Symbol{
		{},
		{Name: "k", Info: SymbolBindGlobal<<4 | SymbolTypeFunc, Shndx: 1, Size: 5},
	}, &strtab)
	sh := b.Add(".symtab", SectionSymtab, syms)
	sh.EntSize = SymbolSize
	sh.Link = strtabIdx
	b.Add(".strtab", SectionStrtab, strtab)
	b.Add(".rela.text.k", SectionRela, EncodeRelocations([]Relocation{
		{Offset: 16, Symbol: 1, Type: 2, Addend: -4},
	})).EntSize = RelaSize
	return b.Encode()
}

func TestDecodeRoundTrip(t *testing.T) {
	f, err := Decode(buildSample())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.Header.Type != TypeZebinExe || f.Header.Machine != MachineIntelGT {
		t.Errorf("header type/machine = %v/%v", f.Header.Type, f.Header.Machine)
	}

	wantNames := []string{"", ".text.k", ".ze_info", ".bss.global", ".symtab", ".strtab", ".rela.text.k", ".shstrtab"}
	if len(f.Sections) != len(wantNames) {
		t.Fatalf("sections = %d, want %d", len(f.Sections), len(wantNames))
	}
	for i, want := range wantNames {
		if got := f.Sections[i].Name; got != want {
			t.Errorf("section %d name = %q, want %q", i, got, want)
		}
	}

	text, ok := f.SectionByName(".text.k")
	if !ok || !bytes.Equal(text.Data, []byte{1, 2, 3, 4, 5}) {
		t.Errorf(".text.k data = %v", text)
	}
	bss, _ := f.SectionByName(".bss.global")
	if bss.Data != nil || bss.Header.Size != 128 {
		t.Errorf(".bss.global data = %v size = %d, want nil/128", bss.Data, bss.Header.Size)
	}
	zeinfo, _ := f.SectionByName(".ze_info")
	if zeinfo.Header.Type != SectionZebinZeInfo || string(zeinfo.Data) != "kernels:\n" {
		t.Errorf(".ze_info = %v %q", zeinfo.Header.Type, zeinfo.Data)
	}
}

func TestSymbols(t *testing.T) {
	f, err := Decode(buildSample())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	symtab, _ := f.SectionByName(".symtab")
	syms, err := f.Symbols(symtab)
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}
	if len(syms) != 2 {
		t.Fatalf("symbols = %d, want 2", len(syms))
	}
	k := syms[1]
	if k.Name != "k" || k.Shndx != 1 || k.Size != 5 {
		t.Errorf("symbol = %+v", k)
	}
	if k.Bind() != SymbolBindGlobal || k.Type() != SymbolTypeFunc {
		t.Errorf("bind/type = %d/%d", k.Bind(), k.Type())
	}

	symtab.Header.EntSize = 16
	if _, err := f.Symbols(symtab); err == nil {
		t.Error("Symbols with entsize 16: expected error")
	}
}

func TestRelocations(t *testing.T) {
	f, err := Decode(buildSample())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sec, _ := f.SectionByName(".rela.text.k")
	rels, err := f.Relocations(sec)
	if err != nil {
		t.Fatalf("Relocations: %v", err)
	}
	want := Relocation{Offset: 16, Symbol: 1, Type: 2, Addend: -4}
	if len(rels) != 1 || rels[0] != want {
		t.Errorf("relocations = %+v, want [%+v]", rels, want)
	}

	text, _ := f.SectionByName(".text.k")
	if _, err := f.Relocations(text); err == nil {
		t.Error("Relocations on PROGBITS: expected error")
	}
}

func TestDecodeInvalid(t *testing.T) {
	good := buildSample()

	corrupt := func(fn func([]byte)) []byte {
		data := append([]byte(nil), good...)
		fn(data)
		return data
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", good[:10]},
		{"bad magic", corrupt(func(d []byte) { d[1] = 'X' })},
		{"32-bit", corrupt(func(d []byte) { d[4] = Class32 })},
		{"big endian", corrupt(func(d []byte) { d[5] = DataBigEndian })},
		{"bad shentsize", corrupt(func(d []byte) { d[58] = 40 })},
		{"section table past end", good[:len(good)-10]},
		{"section data past end", corrupt(func(d []byte) {
			// Size field of section 1.
			shoff := int(le64(d[40:]))
			d[shoff+SectionHeaderSize+32+7] = 0x10
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if err == nil {
				t.Fatal("Decode: expected error")
			}
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Phase != errors.PhaseContainer {
				t.Errorf("error = %v, want container phase *errors.Error", err)
			}
		})
	}
}

func TestDecodeNoSections(t *testing.T) {
	data := buildSample()
	data[60], data[61] = 0, 0 // e_shnum
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(f.Sections) != 0 {
		t.Errorf("sections = %d, want 0", len(f.Sections))
	}
}

func TestIsELF(t *testing.T) {
	if !IsELF(buildSample()) {
		t.Error("IsELF(sample) = false")
	}
	if IsELF([]byte("kernels:\n")) {
		t.Error("IsELF(text) = true")
	}
}

func TestSectionTypeString(t *testing.T) {
	tests := []struct {
		t    SectionType
		want string
	}{
		{SectionProgbits, "PROGBITS"},
		{SectionZebinZeInfo, "ZEBIN_ZEINFO"},
		{SectionType(0x70000001), "0x70000001"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func le64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
