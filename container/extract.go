package container

import (
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/zebin/elf"
	"github.com/wippyai/zebin/errors"
)

// Section names with a fixed meaning in a zebin.
const (
	TextPrefix          = ".text."
	DebugPrefix         = ".debug_"
	DataConst           = ".data.const"
	DataGlobal          = ".data.global"
	DataConstString     = ".data.const.string"
	DataGlobalConstTypo = ".data.global_const"
	BssConst            = ".bss.const"
	BssGlobal           = ".bss.global"
	NoteIntelGT         = ".note.intelgt.compat"
	ZeInfo              = ".ze_info"
)

// Sections buckets the sections of a zebin by role. Every slice keeps file
// order.
type Sections struct {
	ZeInfo         []*elf.Section
	Text           []*elf.Section
	ConstData      []*elf.Section
	GlobalData     []*elf.Section
	ConstString    []*elf.Section
	ConstZeroInit  []*elf.Section
	GlobalZeroInit []*elf.Section
	Symtab         []*elf.Section
	SPIRV          []*elf.Section
	Notes          []*elf.Section
	Debug          []*elf.Section
	Relocations    []*elf.Section
}

// KernelText returns the .text.<name> section of a kernel.
func (s *Sections) KernelText(name string) (*elf.Section, bool) {
	for _, t := range s.Text {
		if t.Name == TextPrefix+name {
			return t, true
		}
	}
	return nil, false
}

// Extract classifies the sections of f. Unknown PROGBITS and foreign notes
// are reported to w and skipped. Any section type a zebin never carries
// fails the extraction.
func Extract(f *elf.File, w *errors.Warnings) (*Sections, error) {
	if int(f.Header.ShStrNdx) == int(elf.SectionIndexUndef) || int(f.Header.ShStrNdx) >= len(f.Sections) {
		return nil, errors.New(errors.PhaseContainer, errors.KindInvalidData).
			Value(f.Header.ShStrNdx).
			Detail("Invalid or missing shStrNdx in elf header").
			Build()
	}

	out := &Sections{}
	for i, s := range f.Sections {
		switch s.Header.Type {
		case elf.SectionProgbits:
			out.progbits(s, w)
		case elf.SectionNobits:
			switch s.Name {
			case BssConst:
				out.ConstZeroInit = append(out.ConstZeroInit, s)
			case BssGlobal:
				out.GlobalZeroInit = append(out.GlobalZeroInit, s)
			default:
				w.Addf("Unhandled SHT_NOBITS section : %s currently supports only : %s and %s.", s.Name, BssConst, BssGlobal)
			}
		case elf.SectionZebinZeInfo:
			out.ZeInfo = append(out.ZeInfo, s)
		case elf.SectionSymtab:
			out.Symtab = append(out.Symtab, s)
		case elf.SectionZebinSPIRV:
			out.SPIRV = append(out.SPIRV, s)
		case elf.SectionNote:
			if s.Name == NoteIntelGT {
				out.Notes = append(out.Notes, s)
			} else {
				w.Addf("Unhandled SHT_NOTE section : %s, ignoring", s.Name)
			}
		case elf.SectionRel, elf.SectionRela:
			out.Relocations = append(out.Relocations, s)
		case elf.SectionStrtab, elf.SectionNull, elf.SectionZebinGTPinInfo,
			elf.SectionZebinVISAAsm, elf.SectionZebinMisc:
		default:
			return nil, errors.New(errors.PhaseContainer, errors.KindInvalidData).
				Value(s.Header.Type).
				Detail("Unhandled ELF section header type : %s (section %d %s)", s.Header.Type, i, s.Name).
				Build()
		}
	}

	Logger().Debug("extracted zebin sections",
		zap.Int("sections", len(f.Sections)),
		zap.Int("kernels", len(out.Text)),
		zap.Int("zeinfo", len(out.ZeInfo)),
	)
	return out, nil
}

func (s *Sections) progbits(sec *elf.Section, w *errors.Warnings) {
	switch name := sec.Name; {
	case strings.HasPrefix(name, TextPrefix):
		s.Text = append(s.Text, sec)
	case name == DataConst:
		s.ConstData = append(s.ConstData, sec)
	case name == DataGlobalConstTypo:
		w.Addf("Misspelled section name : %s, should be : %s", name, DataConst)
		s.ConstData = append(s.ConstData, sec)
	case name == DataGlobal:
		s.GlobalData = append(s.GlobalData, sec)
	case name == DataConstString:
		s.ConstString = append(s.ConstString, sec)
	case strings.HasPrefix(name, DebugPrefix):
		s.Debug = append(s.Debug, sec)
	default:
		w.Addf("Unhandled SHT_PROGBITS section : %s, ignoring", name)
	}
}

// ValidateCounts checks that every singleton bucket holds at most one
// section. All violations are reported together.
func (s *Sections) ValidateCounts() error {
	var err error
	atMostOne := func(bucket []*elf.Section, tag string) {
		if len(bucket) > 1 {
			err = multierr.Append(err, errors.Cardinality(errors.PhaseContainer, nil, tag, "at most", 1, len(bucket)))
		}
	}
	atMostOne(s.ZeInfo, ZeInfo)
	atMostOne(s.GlobalData, DataGlobal)
	atMostOne(s.ConstData, DataConst)
	atMostOne(s.ConstString, DataConstString)
	atMostOne(s.ConstZeroInit, BssConst)
	atMostOne(s.GlobalZeroInit, BssGlobal)
	atMostOne(s.Symtab, "symbol table")
	atMostOne(s.SPIRV, "spirv section")
	atMostOne(s.Notes, NoteIntelGT)
	return err
}
