package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"

	"github.com/wippyai/zebin"
	"github.com/wippyai/zebin/container"
	"github.com/wippyai/zebin/dump"
	"github.com/wippyai/zebin/errors"
)

// File is the decoded options file.
//
//	decoder {
//	  tolerate_unknown       = false
//	  min_scratch_space_size = kib(1)
//	  grf_size               = 64
//	  append_elws            = true
//	}
//
//	target {
//	  product_family = 33
//	  revision_id    = 3
//	}
//
//	output {
//	  format = "json"
//	}
type File struct {
	Decoder *Decoder `hcl:"decoder,block"`
	Target  *Target  `hcl:"target,block"`
	Output  *Output  `hcl:"output,block"`
}

// Decoder mirrors the zeinfo decoder settings. Unset attributes keep their
// defaults.
type Decoder struct {
	TolerateUnknown     *bool   `hcl:"tolerate_unknown,optional"`
	MinScratchSpaceSize *uint32 `hcl:"min_scratch_space_size,optional"`
	GRFSize             *uint32 `hcl:"grf_size,optional"`
	AppendElws          *bool   `hcl:"append_elws,optional"`
}

// Target is the device the notes are validated against.
type Target struct {
	ProductFamily uint32 `hcl:"product_family,optional"`
	GfxCore       uint32 `hcl:"gfx_core,optional"`
	ProductConfig uint32 `hcl:"product_config,optional"`
	RevisionID    uint32 `hcl:"revision_id,optional"`
}

// Output selects how results are rendered.
type Output struct {
	Format string `hcl:"format,optional"`
}

// Load reads and decodes the options file at path.
func Load(path string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindSyntax, diags, "parse "+path)
	}
	return decode(f, path)
}

// Parse decodes options from src. filename only labels diagnostics.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindSyntax, diags, "parse "+filename)
	}
	return decode(f, filename)
}

func decode(f *hcl.File, filename string) (*File, error) {
	var out File
	if diags := gohcl.DecodeBody(f.Body, EvalContext(), &out); diags.HasErrors() {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, diags, "decode "+filename)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	Logger().Debug("options file loaded",
		zap.String("file", filename),
		zap.Bool("target", out.Target != nil),
	)
	return &out, nil
}

// Validate checks values the schema cannot express.
func (f *File) Validate() error {
	if f.Decoder != nil && f.Decoder.GRFSize != nil && *f.Decoder.GRFSize == 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("decoder", "grf_size").
			Detail("grf_size must be positive").
			Build()
	}
	if f.Output != nil {
		if _, err := dump.ParseFormat(f.Output.Format); err != nil {
			return err
		}
	}
	return nil
}

// Options converts the file to decode options.
func (f *File) Options() []zebin.Option {
	var opts []zebin.Option
	if d := f.Decoder; d != nil {
		if d.TolerateUnknown != nil {
			opts = append(opts, zebin.WithTolerateUnknown(*d.TolerateUnknown))
		}
		if d.MinScratchSpaceSize != nil {
			opts = append(opts, zebin.WithMinScratchSpaceSize(*d.MinScratchSpaceSize))
		}
		if d.GRFSize != nil {
			opts = append(opts, zebin.WithGRFSize(*d.GRFSize))
		}
		if d.AppendElws != nil {
			opts = append(opts, zebin.WithAppendElws(*d.AppendElws))
		}
	}
	if t := f.Target; t != nil {
		opts = append(opts, zebin.WithTarget(container.Target{
			ProductFamily: t.ProductFamily,
			GfxCore:       t.GfxCore,
			ProductConfig: t.ProductConfig,
			RevisionID:    t.RevisionID,
		}))
	}
	return opts
}

// Format returns the configured output format, text when unset.
func (f *File) Format() dump.Format {
	if f.Output == nil {
		return dump.FormatText
	}
	format, _ := dump.ParseFormat(f.Output.Format)
	return format
}
