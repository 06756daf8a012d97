package zeinfo

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/yaml"
)

// group reads the members of one metadata group. Read failures are
// collected so that every bad member of the group is reported at once.
type group struct {
	d   *decoder
	ctx string
	err error
}

func (d *decoder) group(ctx string) *group {
	return &group{d: d, ctx: ctx}
}

func (g *group) p() *yaml.Parser { return g.d.p }

func (g *group) fail(err error) {
	g.err = multierr.Append(g.err, err)
}

func (g *group) failf(id yaml.NodeID, kind errors.Kind, format string, args ...any) {
	g.fail(errors.New(errors.PhaseDecode, kind).
		Path(g.p().Path(id)...).
		Detail(format, args...).
		Build())
}

// unknown reports a key the schema does not define. where completes the
// sentence "Unknown entry "key" ...".
func (g *group) unknown(id yaml.NodeID, where string, known []string) {
	key := g.p().ReadKey(id)
	msg := fmt.Sprintf("Unknown entry %q %s%s", key, where, hint(key, known))
	if g.d.cfg.TolerateUnknown {
		g.d.w.Addf("%s", msg)
		return
	}
	g.fail(errors.New(errors.PhaseDecode, errors.KindFieldUnknown).
		Path(g.p().Path(id)...).
		Value(key).
		Detail("%s", msg).
		Build())
}

func (g *group) valueError(id yaml.NodeID, cause error) error {
	kind := errors.KindInvalidData
	if e, ok := cause.(*errors.Error); ok {
		kind = e.Kind
	}
	return errors.New(errors.PhaseDecode, kind).
		Path(g.p().Path(id)...).
		Value(g.p().ReadValue(id)).
		Cause(cause).
		Detail("could not read %s from : [%s] in context of : %s", g.p().ReadKey(id), g.p().ReadValue(id), g.ctx).
		Build()
}

func readInt[T yaml.Integer](g *group, id yaml.NodeID, out *T) {
	v, err := yaml.ReadInt[T](g.p(), id)
	if err != nil {
		g.fail(g.valueError(id, err))
		return
	}
	*out = v
}

func readBool(g *group, id yaml.NodeID, out *bool) {
	v, err := yaml.ReadBool(g.p(), id)
	if err != nil {
		g.fail(g.valueError(id, err))
		return
	}
	*out = v
}

func readString(g *group, id yaml.NodeID, out *string) {
	v, err := yaml.ReadString(g.p(), id)
	if err != nil {
		g.fail(g.valueError(id, err))
		return
	}
	*out = v
}

// readTriple reads an inline collection of exactly three integers.
func readTriple[T yaml.Integer](g *group, id yaml.NodeID, out *[3]T) {
	n := 0
	for c := range g.p().Children(id) {
		if n < len(out) {
			readInt(g, c, &out[n])
		}
		n++
	}
	if n != len(out) {
		g.failf(id, errors.KindCardinality, "wrong size of collection %s in context of : %s. Got : %d expected : %d",
			g.p().ReadKey(id), g.ctx, n, len(out))
	}
}

// readEnum looks the raw value token up in table.
func readEnum[T ~uint8](g *group, id yaml.NodeID, table *enumTable[T], out *T) {
	tok, ok := g.p().ValueToken(id)
	if !ok {
		g.fail(errors.FieldMissing(errors.PhaseDecode, g.p().Path(id), g.p().ReadKey(id)))
		return
	}
	v, ok := table.lookup(tok.Value)
	*out = v
	if !ok {
		g.fail(errors.New(errors.PhaseDecode, errors.KindInvalidEnum).
			Path(g.p().Path(id)...).
			Value(tok.Value).
			Detail("Unhandled %q %s in context of %s%s", tok.Value, table.name, g.ctx, hint(tok.Value, table.spellings())).
			Build())
	}
}
