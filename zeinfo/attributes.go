package zeinfo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/yaml"
)

var attributeTags = []string{
	tagIntelReqdSubgroupSize, tagIntelReqdWorkgroupWalkOrder, tagReqdWorkgroupSize,
	tagInvalidKernel, tagVecTypeHint, tagWorkgroupSizeHint, tagIntelReqdThreadgroupDispatchSize,
}

// userAttributes holds the source-level kernel attributes. Nil pointers were
// not written.
type userAttributes struct {
	reqdSubgroupSize            *int32
	reqdWorkgroupWalkOrder      *[3]int32
	reqdWorkgroupSize           *[3]int32
	workgroupSizeHint           *[3]int32
	reqdThreadgroupDispatchSize *int32
	vecTypeHint                 *string
	invalidKernel               *string
	otherHints                  [][2]string
}

func (d *decoder) readAttributes(id yaml.NodeID, ctx string) (*userAttributes, error) {
	g := d.group(ctx)
	attrs := &userAttributes{}
	for c := range d.p.Children(id) {
		key := d.p.ReadKey(c)
		switch {
		case key == tagIntelReqdSubgroupSize:
			attrs.reqdSubgroupSize = new(int32)
			readInt(g, c, attrs.reqdSubgroupSize)
		case key == tagIntelReqdWorkgroupWalkOrder:
			attrs.reqdWorkgroupWalkOrder = new([3]int32)
			readTriple(g, c, attrs.reqdWorkgroupWalkOrder)
		case key == tagReqdWorkgroupSize:
			attrs.reqdWorkgroupSize = new([3]int32)
			readTriple(g, c, attrs.reqdWorkgroupSize)
		case key == tagWorkgroupSizeHint:
			attrs.workgroupSizeHint = new([3]int32)
			readTriple(g, c, attrs.workgroupSizeHint)
		case key == tagIntelReqdThreadgroupDispatchSize:
			attrs.reqdThreadgroupDispatchSize = new(int32)
			readInt(g, c, attrs.reqdThreadgroupDispatchSize)
		case key == tagInvalidKernel:
			v := d.p.ReadValue(c)
			attrs.invalidKernel = &v
		case key == tagVecTypeHint:
			v := d.p.ReadValue(c)
			attrs.vecTypeHint = &v
		case strings.Contains(key, hintSuffix):
			attrs.otherHints = append(attrs.otherHints, [2]string{key, d.p.ReadValue(c)})
		default:
			g.fail(errors.New(errors.PhaseDecode, errors.KindFieldUnknown).
				Path(d.p.Path(c)...).
				Value(key).
				Detail("Unknown attribute entry %q in context of %s%s", key, ctx, hint(key, attributeTags)).
				Build())
		}
	}
	return attrs, g.err
}

// languageAttributes renders the attributes the way the source spelled them,
// e.g. "work_group_size_hint(1,1,1) intel_reqd_sub_group_size(16)".
func (a *userAttributes) languageAttributes() string {
	var parts []string
	add := func(name, value string) {
		parts = append(parts, fmt.Sprintf("%s(%s)", name, value))
	}
	for _, h := range a.otherHints {
		add(h[0], h[1])
	}
	if a.reqdSubgroupSize != nil {
		add(tagIntelReqdSubgroupSize, strconv.Itoa(int(*a.reqdSubgroupSize)))
	}
	if a.reqdWorkgroupWalkOrder != nil {
		add(tagIntelReqdWorkgroupWalkOrder, joinTriple(*a.reqdWorkgroupWalkOrder))
	}
	if a.reqdWorkgroupSize != nil {
		add(tagReqdWorkgroupSize, joinTriple(*a.reqdWorkgroupSize))
	}
	if a.workgroupSizeHint != nil {
		add(tagWorkgroupSizeHint, joinTriple(*a.workgroupSizeHint))
	}
	if a.vecTypeHint != nil {
		add(tagVecTypeHint, *a.vecTypeHint)
	}
	if a.invalidKernel != nil {
		add(tagInvalidKernel, *a.invalidKernel)
	}
	return strings.Join(parts, " ")
}

func joinTriple(v [3]int32) string {
	return fmt.Sprintf("%d,%d,%d", v[0], v[1], v[2])
}

func (k *kernelDecoder) decodeAttributes() error {
	if len(k.s.attributes) == 0 {
		return nil
	}
	attrs, err := k.readAttributes(k.s.attributes[0], k.name)
	if err != nil {
		return err
	}

	md := &k.desc.Metadata
	md.LanguageAttributes = attrs.languageAttributes()
	k.desc.Attributes.Flags.IsInvalid = attrs.invalidKernel != nil
	if attrs.reqdSubgroupSize != nil {
		md.RequiredSubGroupSize = uint8(*attrs.reqdSubgroupSize)
	}
	if attrs.reqdThreadgroupDispatchSize != nil {
		md.RequiredThreadGroupDispatchSize = uint32(*attrs.reqdThreadgroupDispatchSize)
	}
	return nil
}
