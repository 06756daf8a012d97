package elf

import "fmt"

// Identification bytes.
const (
	Magic = "\x7fELF"

	ClassNone byte = 0
	Class32   byte = 1
	Class64   byte = 2

	DataLittleEndian byte = 1
	DataBigEndian    byte = 2

	identSize = 16
)

// Fixed record sizes of the 64-bit format, in bytes.
const (
	HeaderSize        = 64
	SectionHeaderSize = 64
	SymbolSize        = 24
	RelSize           = 16
	RelaSize          = 24
	NoteHeaderSize    = 12
)

// SectionIndexUndef is the reserved "no section" index.
const SectionIndexUndef uint16 = 0

// FileType is e_type.
type FileType uint16

const (
	TypeNone FileType = 0
	TypeRel  FileType = 1
	TypeExec FileType = 2
	TypeDyn  FileType = 3

	TypeZebinExe FileType = 0xff12 // zebin executable
)

// Machine is e_machine.
type Machine uint16

const (
	MachineNone    Machine = 0
	MachineIntelGT Machine = 205
)

// SectionType is sh_type.
type SectionType uint32

const (
	SectionNull     SectionType = 0
	SectionProgbits SectionType = 1
	SectionSymtab   SectionType = 2
	SectionStrtab   SectionType = 3
	SectionRela     SectionType = 4
	SectionHash     SectionType = 5
	SectionDynamic  SectionType = 6
	SectionNote     SectionType = 7
	SectionNobits   SectionType = 8
	SectionRel      SectionType = 9

	// Zebin specific types, in the processor-specific range.
	SectionZebinSPIRV     SectionType = 0xff000009
	SectionZebinZeInfo    SectionType = 0xff000011
	SectionZebinGTPinInfo SectionType = 0xff000012
	SectionZebinVISAAsm   SectionType = 0xff000013
	SectionZebinMisc      SectionType = 0xff000014
)

var sectionTypeNames = map[SectionType]string{
	SectionNull:           "NULL",
	SectionProgbits:       "PROGBITS",
	SectionSymtab:         "SYMTAB",
	SectionStrtab:         "STRTAB",
	SectionRela:           "RELA",
	SectionHash:           "HASH",
	SectionDynamic:        "DYNAMIC",
	SectionNote:           "NOTE",
	SectionNobits:         "NOBITS",
	SectionRel:            "REL",
	SectionZebinSPIRV:     "ZEBIN_SPIRV",
	SectionZebinZeInfo:    "ZEBIN_ZEINFO",
	SectionZebinGTPinInfo: "ZEBIN_GTPIN_INFO",
	SectionZebinVISAAsm:   "ZEBIN_VISA_ASM",
	SectionZebinMisc:      "ZEBIN_MISC",
}

func (t SectionType) String() string {
	if s, ok := sectionTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("0x%x", uint32(t))
}

// Symbol binding and type, packed into st_info.
const (
	SymbolBindLocal  byte = 0
	SymbolBindGlobal byte = 1

	SymbolTypeNone    byte = 0
	SymbolTypeObject  byte = 1
	SymbolTypeFunc    byte = 2
	SymbolTypeSection byte = 3
)
