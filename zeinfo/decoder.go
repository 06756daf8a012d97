package zeinfo

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/kernel"
	"github.com/wippyai/zebin/yaml"
)

// decoder holds the state shared by every group of one document.
type decoder struct {
	p       *yaml.Parser
	cfg     Config
	w       *errors.Warnings
	version Version
}

// globalSections buckets the root children by tag.
type globalSections struct {
	kernels         []yaml.NodeID
	version         []yaml.NodeID
	hostAccessTable []yaml.NodeID
	functions       []yaml.NodeID
	miscInfo        []yaml.NodeID
}

// Decode walks a zeinfo document into a program. Warnings go to w, which
// may be nil. Classify a returned error with errors.OutcomeOf.
func Decode(text string, cfg Config, w *errors.Warnings) (*kernel.ProgramInfo, error) {
	p, err := yaml.Parse(text, w)
	if err != nil {
		return nil, err
	}
	prog := kernel.NewProgramInfo()
	if p.Empty() {
		w.Addf("empty kernels metadata section (.ze_info)")
		return prog, nil
	}

	d := &decoder{p: p, cfg: cfg, w: w, version: DecoderVersion}
	if err := d.decode(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

func (d *decoder) decode(prog *kernel.ProgramInfo) error {
	s, err := d.extractGlobalSections()
	if err != nil {
		return err
	}
	if err := s.validate(); err != nil {
		return err
	}
	if err := d.decodeVersion(s.version); err != nil {
		return err
	}
	if err := d.decodeHostAccessTable(prog, s.hostAccessTable); err != nil {
		return err
	}
	if err := d.decodeFunctions(prog, s.functions); err != nil {
		return err
	}
	for id := range d.p.Children(s.kernels[0]) {
		ki, err := d.decodeKernel(id)
		if err != nil {
			return err
		}
		Logger().Debug("decoded kernel",
			zap.String("name", ki.Name()),
			zap.Int("args", len(ki.Descriptor.PayloadMappings.ExplicitArgs)),
			zap.Uint16("cross_thread_data", ki.Descriptor.Attributes.CrossThreadDataSize))
		prog.KernelInfos = append(prog.KernelInfos, ki)
	}
	if len(s.miscInfo) > 0 {
		if err := d.decodeMiscInfo(prog, s.miscInfo[0]); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) extractGlobalSections() (*globalSections, error) {
	s := &globalSections{}
	g := d.group("global scope of .ze_info")
	for id := range d.p.Children(d.p.Root()) {
		switch d.p.ReadKey(id) {
		case tagKernels:
			s.kernels = append(s.kernels, id)
		case tagVersion:
			s.version = append(s.version, id)
		case tagGlobalHostAccessTable:
			s.hostAccessTable = append(s.hostAccessTable, id)
		case tagFunctions:
			s.functions = append(s.functions, id)
		case tagKernelsMiscInfo:
			s.miscInfo = append(s.miscInfo, id)
		default:
			g.unknown(id, "in global scope of .ze_info", globalTags)
		}
	}
	return s, g.err
}

func (s *globalSections) validate() error {
	var err error
	err = multierr.Append(err, countExactly(s.kernels, 1, tagKernels))
	err = multierr.Append(err, countAtMost(s.version, 1, tagVersion))
	err = multierr.Append(err, countAtMost(s.hostAccessTable, 1, tagGlobalHostAccessTable))
	err = multierr.Append(err, countAtMost(s.functions, 1, tagFunctions))
	err = multierr.Append(err, countAtMost(s.miscInfo, 1, tagKernelsMiscInfo))
	return err
}

func countExactly(ids []yaml.NodeID, n int, tag string, path ...string) error {
	if len(ids) == n {
		return nil
	}
	return errors.Cardinality(errors.PhaseDecode, path, tag, "exactly", n, len(ids))
}

func countAtMost(ids []yaml.NodeID, n int, tag string, path ...string) error {
	if len(ids) <= n {
		return nil
	}
	return errors.Cardinality(errors.PhaseDecode, path, tag, "at most", n, len(ids))
}

func (d *decoder) decodeVersion(ids []yaml.NodeID) error {
	if len(ids) == 0 {
		d.w.Addf("No version info provided (i.e. no %s entry in global scope of .ze_info) - will use decoder's default : '%s'", tagVersion, DecoderVersion)
		return nil
	}
	if _, ok := d.p.ValueToken(ids[0]); !ok {
		return errors.New(errors.PhaseVersion, errors.KindInvalidData).
			Path(tagVersion).
			Detail("Invalid version format - expected 'MAJOR.MINOR' string").
			Build()
	}
	v, err := ParseVersion(d.p.ReadValueNoQuotes(ids[0]))
	if err != nil {
		return err
	}
	if err := v.Check(d.w); err != nil {
		return err
	}
	d.version = v
	Logger().Debug("zeinfo version", zap.Stringer("version", v))
	return nil
}

func (d *decoder) decodeHostAccessTable(prog *kernel.ProgramInfo, ids []yaml.NodeID) error {
	if len(ids) == 0 {
		return nil
	}
	g := d.group("globalHostAccessTable")
	for entry := range d.p.Children(ids[0]) {
		var device, host string
		for id := range d.p.Children(entry) {
			switch d.p.ReadKey(id) {
			case tagDeviceName:
				readString(g, id, &device)
			case tagHostName:
				readString(g, id, &host)
			default:
				g.unknown(id, "for global host access table in context of "+g.ctx, []string{tagDeviceName, tagHostName})
			}
		}
		prog.GlobalsDeviceToHostNameMap[device] = host
	}
	return g.err
}

func (d *decoder) decodeFunctions(prog *kernel.ProgramInfo, ids []yaml.NodeID) error {
	if len(ids) == 0 {
		return nil
	}
	for fn := range d.p.Children(ids[0]) {
		g := d.group("external functions")
		var name string
		env := newExecEnv()
		for id := range d.p.Children(fn) {
			switch d.p.ReadKey(id) {
			case tagName:
				name = d.p.ReadValueNoQuotes(id)
			case tagExecutionEnv:
				if err := d.readExecEnv(id, g.ctx, env); err != nil {
					g.fail(err)
				}
			default:
				g.unknown(id, "in context of : external functions", []string{tagName, tagExecutionEnv})
			}
		}
		if g.err != nil {
			return g.err
		}
		prog.ExternalFunctions = append(prog.ExternalFunctions, kernel.ExternalFunctionInfo{
			Name:           name,
			BarrierCount:   uint8(env.barrierCount),
			NumGrfRequired: uint16(env.grfCount),
			SimdSize:       uint8(env.simdSize),
			HasRTCalls:     env.hasRTCalls,
		})
	}
	return nil
}
