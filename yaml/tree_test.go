package yaml

import (
	"strings"
	"testing"

	"github.com/wippyai/zebin/errors"
)

const kernelDoc = `kernels:
  - name: k
    execution_env:
      simd_size: 8
version: 1.5
`

func TestBuildTreeLinks(t *testing.T) {
	p, err := Parse(kernelDoc, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.NumNodes() != 7 {
		t.Fatalf("nodes: got %d, want 7", p.NumNodes())
	}

	root := p.Node(RootID)
	if root.NumChildren != 2 {
		t.Errorf("root children: got %d, want 2", root.NumChildren)
	}

	kernels, ok := p.Child(RootID, "kernels")
	if !ok {
		t.Fatal("kernels not found")
	}
	version, ok := p.Child(RootID, "version")
	if !ok {
		t.Fatal("version not found")
	}
	if p.Node(kernels).NextSibling != version {
		t.Errorf("kernels.NextSibling = %d, want %d", p.Node(kernels).NextSibling, version)
	}
	if p.Node(version).NextSibling != NoNode {
		t.Errorf("version.NextSibling = %d, want NoNode", p.Node(version).NextSibling)
	}

	item := p.Node(kernels).FirstChild
	if p.Node(item).Key != NoToken || p.Node(item).Value != NoToken {
		t.Errorf("list item = %+v, want pure container", p.Node(item))
	}
	if p.Node(item).Parent != kernels {
		t.Errorf("item.Parent = %d, want %d", p.Node(item).Parent, kernels)
	}

	simd, ok := p.FindNodeWithKeyDFS("simd_size")
	if !ok {
		t.Fatal("simd_size not found")
	}
	n := p.Node(simd)
	if n.FirstChild != NoNode || n.LastChild != NoNode {
		t.Errorf("leaf links = %d/%d, want NoNode", n.FirstChild, n.LastChild)
	}
	if got := p.ReadValue(simd); got != "8" {
		t.Errorf("simd_size = %q, want 8", got)
	}
	if got := strings.Join(p.Path(simd), "."); got != "kernels.execution_env.simd_size" {
		t.Errorf("Path = %q", got)
	}
}

func TestBuildTreeDocumentOrder(t *testing.T) {
	p, err := Parse(kernelDoc, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	prev := NodeID(-1)
	for id := range p.DFS(RootID) {
		if id <= prev {
			t.Errorf("DFS visited %d after %d", id, prev)
		}
		prev = id
	}
}

func TestBuildTreeIndentationError(t *testing.T) {
	tests := []string{
		"a:\n  b: 1\n c: 2\n",
		"  a: 1\nb: 2\n",
	}
	for _, text := range tests {
		_, err := Parse(text, nil)
		if err == nil {
			t.Errorf("Parse(%q): expected error", text)
			continue
		}
		e, ok := err.(*errors.Error)
		if !ok || e.Kind != errors.KindIndentation {
			t.Errorf("Parse(%q) error = %v, want indentation", text, err)
		}
	}
}

func TestBuildTreeEmptyVector(t *testing.T) {
	tests := []struct {
		text    string
		wantErr bool
	}{
		{"payload_arguments:\nversion: 1\n", true},
		{"execution_env:\n", true},
		{"kernels:\nversion: 1\n", false},
		{"functions:\n", false},
		{"a: []\n", false},
		{"a:\n  - \n", false},
	}
	for _, tt := range tests {
		_, err := Parse(tt.text, nil)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			continue
		}
		if err != nil && !strings.Contains(err.Error(), "vector data type expects to have at least one value starting with -") {
			t.Errorf("Parse(%q) error = %v", tt.text, err)
		}
	}
}

func TestBuildTreeInlineCollection(t *testing.T) {
	p, err := Parse("a: [1, 2, 3]\n", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a, _ := p.Child(RootID, "a")
	if p.Node(a).NumChildren != 3 {
		t.Fatalf("children: got %d, want 3", p.Node(a).NumChildren)
	}
	var got []string
	for c := range p.Children(a) {
		if p.Node(c).Key != NoToken {
			t.Errorf("element %d has a key", c)
		}
		got = append(got, p.ReadValue(c))
	}
	if strings.Join(got, ",") != "1,2,3" {
		t.Errorf("elements = %v, want [1 2 3]", got)
	}
}

func TestBuildTreeNestedSingleLine(t *testing.T) {
	p, err := Parse("a: b: c\n", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a, _ := p.Child(RootID, "a")
	if p.Node(a).Value != NoToken {
		t.Errorf("a keeps value %q", p.ReadValue(a))
	}
	b, ok := p.Child(a, "b")
	if !ok {
		t.Fatal("synthetic child b not found")
	}
	if got := p.ReadValue(b); got != "c" {
		t.Errorf("b = %q, want c", got)
	}
}

func TestBuildTreeNoData(t *testing.T) {
	var w errors.Warnings
	p, err := Parse("# only a comment\n\n", &w)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.Empty() {
		t.Error("Empty() = false, want true")
	}
	if !w.Contains("text has no data") {
		t.Errorf("warnings = %v", w.List())
	}
}
