package yaml

import (
	"slices"
	"testing"

	yamlv3 "gopkg.in/yaml.v3"
)

const zeinfoDoc = `# generated
version: '1.52'
kernels:
  - name: k0
    execution_env:
      grf_count: 128
      simd_size: 16
      required_work_group_size: [8, 1, 1]
    payload_arguments:
      - arg_type: global_id_offset
        offset: 0
        size: 12
      - arg_type: arg_bypointer
        offset: 32
        size: 8
        arg_index: 0
        addrmode: stateless
        addrspace: global
        access_type: readwrite
    binding_table_indices:
      - bti_value: 0
        arg_index: 0
  - name: k1
    execution_env:
      simd_size: 8
functions:
  - name: f
    execution_env:
      grf_count: 128
`

func collectKeys(n *yamlv3.Node, out *[]string) {
	switch n.Kind {
	case yamlv3.DocumentNode, yamlv3.SequenceNode:
		for _, c := range n.Content {
			collectKeys(c, out)
		}
	case yamlv3.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			*out = append(*out, n.Content[i].Value)
			collectKeys(n.Content[i+1], out)
		}
	}
}

func TestParseKeyOrderMatchesYAML(t *testing.T) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal([]byte(zeinfoDoc), &doc); err != nil {
		t.Fatalf("yaml.v3: %v", err)
	}
	var want []string
	collectKeys(&doc, &want)

	p, err := Parse(zeinfoDoc, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var got []string
	for id := range p.DFS(RootID) {
		if k := p.ReadKey(id); k != "" {
			got = append(got, k)
		}
	}

	if !slices.Equal(got, want) {
		t.Errorf("key order:\ngot  %v\nwant %v", got, want)
	}
}

func TestParseDeterministic(t *testing.T) {
	a, err := Parse(zeinfoDoc, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Parse(zeinfoDoc, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.DebugNodes() != b.DebugNodes() {
		t.Error("two parses of the same text differ")
	}
	if a.NumNodes() != b.NumNodes() {
		t.Errorf("node counts differ: %d vs %d", a.NumNodes(), b.NumNodes())
	}
}

func TestChildrenRestartable(t *testing.T) {
	p, err := Parse(zeinfoDoc, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	kernels, _ := p.Child(RootID, "kernels")
	seq := p.Children(kernels)

	var first, second []NodeID
	for id := range seq {
		first = append(first, id)
		break
	}
	for id := range seq {
		second = append(second, id)
	}
	if len(second) != 2 {
		t.Fatalf("second range: got %d children, want 2", len(second))
	}
	if first[0] != second[0] {
		t.Errorf("restart began at %d, want %d", second[0], first[0])
	}
}

func TestReadValueNoQuotes(t *testing.T) {
	p, err := Parse(zeinfoDoc, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, _ := p.Child(RootID, "version")
	if got := p.ReadValue(v); got != "'1.52'" {
		t.Errorf("ReadValue = %q, want '1.52'", got)
	}
	if got := p.ReadValueNoQuotes(v); got != "1.52" {
		t.Errorf("ReadValueNoQuotes = %q, want 1.52", got)
	}
	if got := p.ReadValue(RootID); got != "" {
		t.Errorf("root value = %q, want empty", got)
	}
}

func TestDump(t *testing.T) {
	p, err := Parse("a: 1\nb:\n  - x\n", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := "a: 1\nb:\n  - x\n"
	if got := p.DebugNodes(); got != want {
		t.Errorf("DebugNodes:\n%s\nwant:\n%s", got, want)
	}
}

func TestNodeOutOfRange(t *testing.T) {
	p, err := Parse("a: 1\n", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n := p.Node(42)
	if n.ID != NoNode || n.FirstChild != NoNode {
		t.Errorf("Node(42) = %+v, want detached", n)
	}
	for range p.Children(42) {
		t.Error("Children(42) yielded a node")
	}
}
