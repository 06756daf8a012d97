package elf

import (
	"github.com/wippyai/zebin/internal/binary"
)

const dataAlignment = 8

// Builder assembles a 64-bit little-endian ELF image. The section name
// table is appended automatically and section 0 is the NULL section.
type Builder struct {
	Type     FileType
	Machine  Machine
	Flags    uint32
	sections []*Section
}

// NewBuilder returns a builder with the NULL section in place.
func NewBuilder(typ FileType, machine Machine) *Builder {
	return &Builder{
		Type:     typ,
		Machine:  machine,
		sections: []*Section{{}},
	}
}

// Add appends a section and returns its header for further tweaks
// (EntSize, Link, Flags). For NOBITS sections set Header.Size instead of
// passing data.
func (b *Builder) Add(name string, typ SectionType, data []byte) *SectionHeader {
	s := &Section{Name: name, Data: data}
	s.Header.Type = typ
	s.Header.Size = uint64(len(data))
	s.Header.AddrAlign = dataAlignment
	b.sections = append(b.sections, s)
	return &s.Header
}

// Index returns the section index the next Add will use.
func (b *Builder) Index() uint32 {
	return uint32(len(b.sections))
}

// Encode lays the image out as header, section data, name table and the
// section header table.
func (b *Builder) Encode() []byte {
	names := binary.NewWriter()
	names.Byte(0)
	nameOff := func(name string) uint32 {
		if name == "" {
			return 0
		}
		off := uint32(names.Len())
		names.WriteBytes([]byte(name))
		names.Byte(0)
		return off
	}

	shstrtab := &Section{Name: ".shstrtab"}
	shstrtab.Header.Type = SectionStrtab
	shstrtab.Header.AddrAlign = 1
	sections := append(append([]*Section(nil), b.sections...), shstrtab)
	for _, s := range sections {
		s.Header.Name = nameOff(s.Name)
	}
	shstrtab.Data = names.Bytes()
	shstrtab.Header.Size = uint64(len(shstrtab.Data))

	w := binary.NewWriter()
	w.WriteBytes(make([]byte, HeaderSize))
	for _, s := range sections[1:] {
		if s.Header.Type == SectionNobits {
			continue
		}
		w.Align(dataAlignment)
		s.Header.Offset = uint64(w.Len())
		w.WriteBytes(s.Data)
	}
	w.Align(dataAlignment)
	shoff := uint64(w.Len())
	for _, s := range sections {
		writeSectionHeader(w, s.Header)
	}

	out := w.Bytes()
	hw := binary.NewWriter()
	writeHeader(hw, Header{
		Class:     Class64,
		Data:      DataLittleEndian,
		Version:   1,
		Type:      b.Type,
		Machine:   b.Machine,
		EVersion:  1,
		ShOff:     shoff,
		Flags:     b.Flags,
		EhSize:    HeaderSize,
		ShEntSize: SectionHeaderSize,
		ShNum:     uint16(len(sections)),
		ShStrNdx:  uint16(len(sections) - 1),
	})
	copy(out, hw.Bytes())
	return out
}

func writeHeader(w *binary.Writer, h Header) {
	ident := make([]byte, identSize)
	copy(ident, Magic)
	ident[4], ident[5], ident[6], ident[7], ident[8] = h.Class, h.Data, h.Version, h.OSABI, h.ABIVersion
	w.WriteBytes(ident)
	w.WriteU16LE(uint16(h.Type))
	w.WriteU16LE(uint16(h.Machine))
	w.WriteU32LE(h.EVersion)
	w.WriteU64LE(h.Entry)
	w.WriteU64LE(h.PhOff)
	w.WriteU64LE(h.ShOff)
	w.WriteU32LE(h.Flags)
	w.WriteU16LE(h.EhSize)
	w.WriteU16LE(h.PhEntSize)
	w.WriteU16LE(h.PhNum)
	w.WriteU16LE(h.ShEntSize)
	w.WriteU16LE(h.ShNum)
	w.WriteU16LE(h.ShStrNdx)
}

func writeSectionHeader(w *binary.Writer, sh SectionHeader) {
	w.WriteU32LE(sh.Name)
	w.WriteU32LE(uint32(sh.Type))
	w.WriteU64LE(sh.Flags)
	w.WriteU64LE(sh.Addr)
	w.WriteU64LE(sh.Offset)
	w.WriteU64LE(sh.Size)
	w.WriteU32LE(sh.Link)
	w.WriteU32LE(sh.Info)
	w.WriteU64LE(sh.AddrAlign)
	w.WriteU64LE(sh.EntSize)
}

// EncodeSymbols serializes symbols for a SYMTAB section. Names are appended
// to strtab, which must start with a NUL byte.
func EncodeSymbols(symbols []Symbol, strtab *[]byte) []byte {
	w := binary.NewWriter()
	for _, sym := range symbols {
		var off uint32
		if sym.Name != "" {
			off = uint32(len(*strtab))
			*strtab = append(append(*strtab, sym.Name...), 0)
		}
		w.WriteU32LE(off)
		w.Byte(sym.Info)
		w.Byte(sym.Other)
		w.WriteU16LE(sym.Shndx)
		w.WriteU64LE(sym.Value)
		w.WriteU64LE(sym.Size)
	}
	return w.Bytes()
}

// EncodeRelocations serializes RELA entries.
func EncodeRelocations(rels []Relocation) []byte {
	w := binary.NewWriter()
	for _, r := range rels {
		w.WriteU64LE(r.Offset)
		w.WriteU64LE(uint64(r.Symbol)<<32 | uint64(r.Type))
		w.WriteU64LE(uint64(r.Addend))
	}
	return w.Bytes()
}
