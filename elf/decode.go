package elf

import (
	"bytes"

	"github.com/wippyai/zebin/internal/binary"
	"github.com/wippyai/zebin/errors"
)

// IsELF reports whether data starts with the ELF magic.
func IsELF(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// Decode parses a 64-bit little-endian ELF image. Section names are resolved
// when e_shstrndx points at a section; otherwise they stay empty.
func Decode(data []byte) (*File, error) {
	if len(data) < HeaderSize || !IsELF(data) {
		return nil, invalid("Invalid or missing ELF header")
	}
	r := binary.NewReader(bytes.NewReader(data))
	h, err := readHeader(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseContainer, errors.KindInvalidData, err, "Invalid or missing ELF header")
	}
	if h.Class != Class64 {
		return nil, invalid("Invalid ELF class %d, expected %d (64-bit)", h.Class, Class64)
	}
	if h.Data != DataLittleEndian {
		return nil, invalid("Unhandled ELF data encoding %d, expected little endian", h.Data)
	}

	f := &File{Header: h}
	if h.ShNum == 0 {
		return f, nil
	}
	if h.ShEntSize != SectionHeaderSize {
		return nil, invalid("Invalid section header entry size %d, expected %d", h.ShEntSize, SectionHeaderSize)
	}
	end := h.ShOff + uint64(h.ShNum)*SectionHeaderSize
	if h.ShOff > uint64(len(data)) || end > uint64(len(data)) {
		return nil, invalid("Out of bounds section headers table")
	}

	if err := r.Reset(int(h.ShOff)); err != nil {
		return nil, errors.Wrap(errors.PhaseContainer, errors.KindInvalidData, err, "section headers")
	}
	f.Sections = make([]*Section, h.ShNum)
	for i := range f.Sections {
		sh, err := readSectionHeader(r)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseContainer, errors.KindInvalidData, r.WrapError("section header", err), "section headers")
		}
		s := &Section{Header: sh}
		if sh.Type != SectionNobits && sh.Type != SectionNull {
			if sh.Offset > uint64(len(data)) || sh.Size > uint64(len(data))-sh.Offset {
				return nil, invalid("Out of bounds section data for section %d (offset %d, size %d)", i, sh.Offset, sh.Size)
			}
			s.Data = data[sh.Offset : sh.Offset+sh.Size : sh.Offset+sh.Size]
		}
		f.Sections[i] = s
	}

	if h.ShStrNdx != SectionIndexUndef && int(h.ShStrNdx) < len(f.Sections) {
		names := f.Sections[h.ShStrNdx].Data
		for i, s := range f.Sections {
			if s.Header.Name == 0 {
				continue
			}
			name, err := binary.CString(names, s.Header.Name)
			if err != nil {
				return nil, errors.New(errors.PhaseContainer, errors.KindInvalidData).
					Cause(err).
					Detail("Invalid section name offset for section %d", i).
					Build()
			}
			s.Name = name
		}
	}
	return f, nil
}

func readHeader(r *binary.Reader) (Header, error) {
	var h Header
	ident, err := r.ReadBytes(identSize)
	if err != nil {
		return h, err
	}
	h.Class, h.Data, h.Version, h.OSABI, h.ABIVersion = ident[4], ident[5], ident[6], ident[7], ident[8]

	var typ, machine uint16
	fields := []any{
		&typ, &machine, &h.EVersion, &h.Entry, &h.PhOff, &h.ShOff, &h.Flags,
		&h.EhSize, &h.PhEntSize, &h.PhNum, &h.ShEntSize, &h.ShNum, &h.ShStrNdx,
	}
	if err := readFields(r, fields); err != nil {
		return h, err
	}
	h.Type, h.Machine = FileType(typ), Machine(machine)
	return h, nil
}

func readSectionHeader(r *binary.Reader) (SectionHeader, error) {
	var sh SectionHeader
	var typ uint32
	fields := []any{
		&sh.Name, &typ, &sh.Flags, &sh.Addr, &sh.Offset, &sh.Size,
		&sh.Link, &sh.Info, &sh.AddrAlign, &sh.EntSize,
	}
	if err := readFields(r, fields); err != nil {
		return sh, err
	}
	sh.Type = SectionType(typ)
	return sh, nil
}

// readFields fills each pointer with a little-endian value of its width.
func readFields(r *binary.Reader, fields []any) error {
	for _, f := range fields {
		var err error
		switch p := f.(type) {
		case *uint16:
			*p, err = r.ReadU16LE()
		case *uint32:
			*p, err = r.ReadU32LE()
		case *uint64:
			*p, err = r.ReadU64LE()
		case *byte:
			*p, err = r.ReadByte()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Symbols decodes a SYMTAB section. Names come from the string table the
// section links to.
func (f *File) Symbols(s *Section) ([]Symbol, error) {
	if s.Header.Type != SectionSymtab {
		return nil, invalid("Section %s is not a symbol table", s.Name)
	}
	if s.Header.EntSize != SymbolSize {
		return nil, invalid("Invalid symbol table entries size - expected : %d, got : %d", SymbolSize, s.Header.EntSize)
	}
	var strtab []byte
	if int(s.Header.Link) < len(f.Sections) {
		strtab = f.Sections[s.Header.Link].Data
	}

	r := binary.NewReader(bytes.NewReader(s.Data))
	out := make([]Symbol, 0, len(s.Data)/SymbolSize)
	for range len(s.Data) / SymbolSize {
		var sym Symbol
		if err := readFields(r, []any{&sym.NameOff, &sym.Info, &sym.Other, &sym.Shndx, &sym.Value, &sym.Size}); err != nil {
			return nil, errors.Wrap(errors.PhaseContainer, errors.KindInvalidData, r.WrapError("symbol", err), "symbol table")
		}
		if sym.NameOff != 0 && strtab != nil {
			name, err := binary.CString(strtab, sym.NameOff)
			if err != nil {
				return nil, errors.Wrap(errors.PhaseContainer, errors.KindInvalidData, err, "symbol name")
			}
			sym.Name = name
		}
		out = append(out, sym)
	}
	return out, nil
}

// Relocations decodes a REL or RELA section.
func (f *File) Relocations(s *Section) ([]Relocation, error) {
	size := uint64(RelSize)
	switch s.Header.Type {
	case SectionRel:
	case SectionRela:
		size = RelaSize
	default:
		return nil, invalid("Section %s is not a relocation section", s.Name)
	}
	if s.Header.EntSize != 0 && s.Header.EntSize != size {
		return nil, invalid("Invalid relocation entries size - expected : %d, got : %d", size, s.Header.EntSize)
	}

	r := binary.NewReader(bytes.NewReader(s.Data))
	out := make([]Relocation, 0, uint64(len(s.Data))/size)
	for range uint64(len(s.Data)) / size {
		var rel Relocation
		var info, addend uint64
		fields := []any{&rel.Offset, &info}
		if size == RelaSize {
			fields = append(fields, &addend)
		}
		if err := readFields(r, fields); err != nil {
			return nil, errors.Wrap(errors.PhaseContainer, errors.KindInvalidData, r.WrapError("relocation", err), "relocation table")
		}
		rel.Symbol = uint32(info >> 32)
		rel.Type = uint32(info)
		rel.Addend = int64(addend)
		out = append(out, rel)
	}
	return out, nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.PhaseContainer, errors.KindInvalidData).Detail(format, args...).Build()
}
