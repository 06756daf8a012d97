package elf

// Header is the 64-bit ELF file header.
type Header struct {
	Class      byte
	Data       byte
	Version    byte
	OSABI      byte
	ABIVersion byte

	Type      FileType
	Machine   Machine
	EVersion  uint32
	Entry     uint64
	PhOff     uint64
	ShOff     uint64
	Flags     uint32
	EhSize    uint16
	PhEntSize uint16
	PhNum     uint16
	ShEntSize uint16
	ShNum     uint16
	ShStrNdx  uint16
}

// SectionHeader is one 64-bit section header entry.
type SectionHeader struct {
	Name      uint32 // offset into the section name table
	Type      SectionType
	Flags     uint64
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64
}

// Section pairs a header with its resolved name and contents. Data is nil
// for NOBITS sections, whose Header.Size still gives the in-memory size.
type Section struct {
	Header SectionHeader
	Name   string
	Data   []byte
}

// File is a decoded ELF image. Section data aliases the input buffer.
type File struct {
	Header   Header
	Sections []*Section
}

// Symbol is one symbol table entry.
type Symbol struct {
	Name    string
	NameOff uint32
	Info    byte
	Other   byte
	Shndx   uint16
	Value   uint64
	Size    uint64
}

// Bind returns the symbol binding.
func (s Symbol) Bind() byte { return s.Info >> 4 }

// Type returns the symbol type.
func (s Symbol) Type() byte { return s.Info & 0xf }

// Relocation is one REL or RELA entry. Addend is zero for REL.
type Relocation struct {
	Offset uint64
	Symbol uint32
	Type   uint32
	Addend int64
}

// SectionByName returns the first section called name.
func (f *File) SectionByName(name string) (*Section, bool) {
	for _, s := range f.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
