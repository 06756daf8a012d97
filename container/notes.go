package container

import (
	"bytes"
	"strings"

	"go.uber.org/multierr"

	"github.com/wippyai/zebin/elf"
	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/internal/binary"
)

// NoteOwner names the vendor of every note DecodeNotes understands.
const NoteOwner = "IntelGT"

// NoteType is the n_type of an IntelGT note.
type NoteType uint32

const (
	NoteProductFamily  NoteType = 1
	NoteGfxCore        NoteType = 2
	NoteTargetMetadata NoteType = 3
	NoteZebinVersion   NoteType = 4
	NoteVISAABIVersion NoteType = 5
	NoteProductConfig  NoteType = 6
)

// TargetMetadata unpacks the generator flags and the revision range.
type TargetMetadata struct {
	GeneratorSpecificFlags    uint8
	MinHwRevisionID           uint8
	ValidateRevisionID        bool
	DisableExtendedValidation bool
	UseGfxCoreFamily          bool
	MaxHwRevisionID           uint8
	GeneratorID               uint8
}

func unpackTargetMetadata(v uint32) TargetMetadata {
	return TargetMetadata{
		GeneratorSpecificFlags:    uint8(v),
		MinHwRevisionID:           uint8(v>>8) & 0x1f,
		ValidateRevisionID:        v>>13&1 == 1,
		DisableExtendedValidation: v>>14&1 == 1,
		UseGfxCoreFamily:          v>>15&1 == 1,
		MaxHwRevisionID:           uint8(v>>16) & 0x1f,
		GeneratorID:               uint8(v>>21) & 0x7,
	}
}

// Pack returns the note encoding of m.
func (m TargetMetadata) Pack() uint32 {
	bit := func(b bool) uint32 {
		if b {
			return 1
		}
		return 0
	}
	return uint32(m.GeneratorSpecificFlags) |
		uint32(m.MinHwRevisionID&0x1f)<<8 |
		bit(m.ValidateRevisionID)<<13 |
		bit(m.DisableExtendedValidation)<<14 |
		bit(m.UseGfxCoreFamily)<<15 |
		uint32(m.MaxHwRevisionID&0x1f)<<16 |
		uint32(m.GeneratorID&0x7)<<21
}

// Notes is the decoded .note.intelgt.compat section. Absent notes stay nil.
type Notes struct {
	ProductFamily  *uint32
	GfxCore        *uint32
	Metadata       *TargetMetadata
	ZebinVersion   string
	VISAABIVersion *uint32
	ProductConfig  *uint32
}

// Note is one raw ELF note.
type Note struct {
	Owner string
	Type  NoteType
	Desc  []byte
}

// ParseNotes splits a note section into entries. Names and descriptors are
// padded to 4 bytes.
func ParseNotes(data []byte) ([]Note, error) {
	r := binary.NewReader(bytes.NewReader(data))
	var out []Note
	for r.Position() < len(data) {
		if len(data)-r.Position() < elf.NoteHeaderSize {
			return nil, noteError("Truncated note header at offset %d", r.Position())
		}
		namesz, _ := r.ReadU32LE()
		descsz, _ := r.ReadU32LE()
		typ, _ := r.ReadU32LE()
		if align4(namesz)+align4(descsz) > uint64(len(data)-r.Position()) {
			return nil, noteError("Out of bounds note payload at offset %d (name %d, desc %d)", r.Position()-elf.NoteHeaderSize, namesz, descsz)
		}

		name, err := r.ReadBytes(int(align4(namesz)))
		if err != nil {
			return nil, errors.Wrap(errors.PhaseContainer, errors.KindInvalidData, r.WrapError("note name", err), "notes")
		}
		desc, err := r.ReadBytes(int(align4(descsz)))
		if err != nil {
			return nil, errors.Wrap(errors.PhaseContainer, errors.KindInvalidData, r.WrapError("note descriptor", err), "notes")
		}
		out = append(out, Note{
			Owner: strings.TrimRight(string(name[:namesz]), "\x00"),
			Type:  NoteType(typ),
			Desc:  desc[:descsz],
		})
	}
	return out, nil
}

// EncodeNotes is the inverse of ParseNotes.
func EncodeNotes(notes []Note) []byte {
	w := binary.NewWriter()
	for _, n := range notes {
		name := append([]byte(n.Owner), 0)
		w.WriteU32LE(uint32(len(name)))
		w.WriteU32LE(uint32(len(n.Desc)))
		w.WriteU32LE(uint32(n.Type))
		w.WriteBytes(name)
		w.Align(4)
		w.WriteBytes(n.Desc)
		w.Align(4)
	}
	return w.Bytes()
}

func align4(n uint32) uint64 {
	return (uint64(n) + 3) &^ 3
}

// DecodeNotes interprets the IntelGT notes of a note section. Notes of other
// owners and unknown types are reported to w.
func DecodeNotes(data []byte, w *errors.Warnings) (*Notes, error) {
	raw, err := ParseNotes(data)
	if err != nil {
		return nil, err
	}
	out := &Notes{}
	var errs error
	for _, n := range raw {
		if n.Owner != NoteOwner {
			w.Addf("Unhandled note owner : %s, ignoring", n.Owner)
			continue
		}
		switch n.Type {
		case NoteProductFamily:
			out.ProductFamily, err = noteU32(n)
		case NoteGfxCore:
			out.GfxCore, err = noteU32(n)
		case NoteTargetMetadata:
			var v *uint32
			if v, err = noteU32(n); err == nil {
				m := unpackTargetMetadata(*v)
				out.Metadata = &m
			}
		case NoteZebinVersion:
			out.ZebinVersion = strings.TrimRight(string(n.Desc), "\x00")
		case NoteVISAABIVersion:
			out.VISAABIVersion, err = noteU32(n)
		case NoteProductConfig:
			out.ProductConfig, err = noteU32(n)
		default:
			w.Addf("Unhandled IntelGT note type : %d, ignoring", n.Type)
		}
		errs = multierr.Append(errs, err)
		err = nil
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func noteU32(n Note) (*uint32, error) {
	if len(n.Desc) != 4 {
		return nil, noteError("Invalid descriptor size for IntelGT note %d - expected : 4, got : %d", n.Type, len(n.Desc))
	}
	v := uint32(n.Desc[0]) | uint32(n.Desc[1])<<8 | uint32(n.Desc[2])<<16 | uint32(n.Desc[3])<<24
	return &v, nil
}

func noteError(format string, args ...any) error {
	return errors.New(errors.PhaseContainer, errors.KindInvalidData).Detail(format, args...).Build()
}

// Target describes the device a binary is loaded on. Zero fields are not
// checked.
type Target struct {
	ProductFamily uint32
	GfxCore       uint32
	ProductConfig uint32
	RevisionID    uint32
}

// Validate checks the notes against t. A product config match settles the
// device; otherwise the family (or gfx core, when the metadata says so) must
// match and the revision must fall in the advertised range.
func (n *Notes) Validate(t Target) error {
	if n.ProductConfig != nil && t.ProductConfig != 0 {
		if *n.ProductConfig != t.ProductConfig {
			return mismatch("product config", *n.ProductConfig, t.ProductConfig)
		}
		return nil
	}

	useCore := n.Metadata != nil && n.Metadata.UseGfxCoreFamily
	switch {
	case useCore && n.GfxCore != nil && t.GfxCore != 0:
		if *n.GfxCore != t.GfxCore {
			return mismatch("gfx core family", *n.GfxCore, t.GfxCore)
		}
	case !useCore && n.ProductFamily != nil && t.ProductFamily != 0:
		if *n.ProductFamily != t.ProductFamily {
			return mismatch("product family", *n.ProductFamily, t.ProductFamily)
		}
	case n.ProductFamily == nil && n.GfxCore == nil && n.ProductConfig == nil:
		return errors.New(errors.PhaseContainer, errors.KindTargetMismatch).
			Detail("Missing target device information in %s", NoteIntelGT).
			Build()
	}

	if m := n.Metadata; m != nil && m.ValidateRevisionID {
		rev := t.RevisionID
		if rev < uint32(m.MinHwRevisionID) || rev > uint32(m.MaxHwRevisionID) {
			return errors.New(errors.PhaseContainer, errors.KindTargetMismatch).
				Value(rev).
				Detail("Unhandled target device revision : %d, supported range : [%d, %d]", rev, m.MinHwRevisionID, m.MaxHwRevisionID).
				Build()
		}
	}
	return nil
}

func mismatch(what string, got, want uint32) error {
	return errors.New(errors.PhaseContainer, errors.KindTargetMismatch).
		Value(got).
		Detail("Unhandled target device %s : %d, expected : %d", what, got, want).
		Build()
}
