package zebin

import (
	"go.uber.org/zap"

	"github.com/wippyai/zebin/container"
	"github.com/wippyai/zebin/elf"
	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/kernel"
	"github.com/wippyai/zebin/zeinfo"
)

// Result is the outcome of one decode. Warnings is always set; Program is
// nil when the decode failed.
type Result struct {
	Program  *kernel.ProgramInfo
	Notes    *container.Notes
	Symbols  []elf.Symbol
	Warnings *errors.Warnings
	Outcome  errors.Outcome
}

// Decode decodes a zebin ELF image, or a bare zeinfo document when data does
// not start with the ELF magic.
func Decode(data []byte, opts ...Option) (*Result, error) {
	if elf.IsELF(data) {
		return DecodeContainer(data, opts...)
	}
	return DecodeZeInfo(string(data), opts...)
}

// DecodeZeInfo decodes a bare zeinfo document. Kernels carry no ISA.
func DecodeZeInfo(text string, opts ...Option) (*Result, error) {
	o := NewOptions(opts...)
	res := &Result{Warnings: &errors.Warnings{}}
	prog, err := zeinfo.Decode(text, o.Config, res.Warnings)
	return res.finish(o.Logger, prog, err)
}

// DecodeContainer decodes a zebin ELF image.
func DecodeContainer(data []byte, opts ...Option) (*Result, error) {
	o := NewOptions(opts...)
	res := &Result{Warnings: &errors.Warnings{}}
	prog, err := res.decodeContainer(data, o)
	return res.finish(o.Logger, prog, err)
}

func (r *Result) finish(log *zap.Logger, prog *kernel.ProgramInfo, err error) (*Result, error) {
	r.Outcome = errors.OutcomeOf(err)
	if err != nil {
		log.Debug("zebin decode failed",
			zap.Stringer("outcome", r.Outcome),
			zap.Error(err),
		)
		return r, err
	}
	r.Program = prog
	log.Debug("zebin decoded",
		zap.Int("kernels", len(prog.KernelInfos)),
		zap.Int("warnings", r.Warnings.Len()),
	)
	return r, nil
}

func (r *Result) decodeContainer(data []byte, o Options) (*kernel.ProgramInfo, error) {
	w := r.Warnings
	f, err := elf.Decode(data)
	if err != nil {
		return nil, err
	}
	secs, err := container.Extract(f, w)
	if err != nil {
		return nil, err
	}
	if err := secs.ValidateCounts(); err != nil {
		return nil, err
	}

	if len(secs.Notes) > 0 {
		if r.Notes, err = container.DecodeNotes(secs.Notes[0].Data, w); err != nil {
			return nil, err
		}
		if err := r.checkNotes(o); err != nil {
			return nil, err
		}
	}

	if len(secs.Symtab) > 0 {
		symtab := secs.Symtab[0]
		if symtab.Header.EntSize != elf.SymbolSize {
			w.Addf("Invalid symbol table entries size - expected : %d, got : %d. Ignoring symbol table", elf.SymbolSize, symtab.Header.EntSize)
		} else if r.Symbols, err = f.Symbols(symtab); err != nil {
			return nil, err
		}
	}

	if len(secs.ZeInfo) == 0 {
		w.Addf("Expected at least one %s section, got 0", container.ZeInfo)
		prog := kernel.NewProgramInfo()
		setGlobals(prog, secs)
		return prog, nil
	}

	prog, err := zeinfo.Decode(string(secs.ZeInfo[0].Data), o.Config, w)
	if err != nil {
		return nil, err
	}
	setGlobals(prog, secs)

	for _, k := range prog.KernelInfos {
		text, ok := secs.KernelText(k.Name())
		if !ok {
			return nil, errors.NotFound(errors.PhaseContainer, "text section for kernel", k.Name())
		}
		k.ISA = text.Data
	}
	return prog, nil
}

// checkNotes gates the binary on the target device and the zeinfo version
// advertised in the notes.
func (r *Result) checkNotes(o Options) error {
	if o.Target != nil {
		if err := r.Notes.Validate(*o.Target); err != nil {
			return err
		}
	}
	if r.Notes.ZebinVersion == "" {
		return nil
	}
	v, err := zeinfo.ParseVersion(r.Notes.ZebinVersion)
	if err != nil {
		return err
	}
	return v.Check(r.Warnings)
}

func setGlobals(prog *kernel.ProgramInfo, secs *container.Sections) {
	surface := func(data, bss []*elf.Section) kernel.Surface {
		var s kernel.Surface
		if len(data) > 0 {
			s.InitData = data[0].Data
		}
		if len(bss) > 0 {
			s.ZeroInitSize = bss[0].Header.Size
		}
		return s
	}
	prog.GlobalVariables = surface(secs.GlobalData, secs.GlobalZeroInit)
	prog.GlobalConstants = surface(secs.ConstData, secs.ConstZeroInit)
	prog.GlobalStrings = surface(secs.ConstString, nil)
}

// ZeInfoText returns the .ze_info document of data: the section contents for
// an ELF image, data itself otherwise.
func ZeInfoText(data []byte) (string, error) {
	if !elf.IsELF(data) {
		return string(data), nil
	}
	f, err := elf.Decode(data)
	if err != nil {
		return "", err
	}
	secs, err := container.Extract(f, nil)
	if err != nil {
		return "", err
	}
	if err := secs.ValidateCounts(); err != nil {
		return "", err
	}
	if len(secs.ZeInfo) == 0 {
		return "", errors.NotFound(errors.PhaseContainer, "section", container.ZeInfo)
	}
	return string(secs.ZeInfo[0].Data), nil
}
