package yaml

import (
	"slices"

	"github.com/wippyai/zebin/errors"
)

// NodeID indexes the node arena of one Parser.
type NodeID int

// NoNode marks an absent link.
const NoNode NodeID = -1

// RootID is the synthetic document node.
const RootID NodeID = 0

// Node is one entry of the tree. Relationships are arena ids, never pointers.
type Node struct {
	ID          NodeID
	Key         TokenID
	Value       TokenID
	Parent      NodeID
	FirstChild  NodeID
	LastChild   NodeID
	NextSibling NodeID
	NumChildren int
	Indent      int

	inline bool
}

// AllowedEmptyVectors lists keys that may appear with neither value nor children.
var AllowedEmptyVectors = []string{"kernels", "functions"}

type treeBuilder struct {
	text   string
	tokens []Token
	lines  []Line
	nodes  []Node
	stack  []NodeID
}

func buildTree(text string, tokens []Token, lines []Line, w *errors.Warnings) ([]Node, error) {
	b := &treeBuilder{text: text, tokens: tokens, lines: lines}
	b.nodes = append(b.nodes, Node{
		ID:          RootID,
		Key:         NoToken,
		Value:       NoToken,
		Parent:      NoNode,
		FirstChild:  NoNode,
		LastChild:   NoNode,
		NextSibling: NoNode,
		Indent:      -1,
	})
	b.stack = []NodeID{RootID}

	last := NoNode
	for i := range b.lines {
		line := &b.lines[i]
		if line.Type != LineDictionaryEntry && line.Type != LineListEntry {
			continue
		}

		var parent NodeID
		switch {
		case last == NoNode:
			parent = RootID
		case line.Indent == b.nodes[last].Indent:
			if err := b.finalize(last); err != nil {
				return nil, err
			}
			parent = b.top()
		case line.Indent > b.nodes[last].Indent:
			b.stack = append(b.stack, last)
			parent = last
		default:
			if err := b.finalize(last); err != nil {
				return nil, err
			}
			p, err := b.unwind(line)
			if err != nil {
				return nil, err
			}
			parent = p
		}

		last = b.addChild(parent, line.Indent)
		b.fill(last, line)
	}

	if last != NoNode {
		if err := b.finalize(last); err != nil {
			return nil, err
		}
		for i := len(b.stack) - 1; i > 0; i-- {
			if err := b.finalize(b.stack[i]); err != nil {
				return nil, err
			}
		}
	}

	if len(b.nodes) == 1 {
		w.Addf("text has no data")
	}
	return b.nodes, nil
}

func (b *treeBuilder) top() NodeID {
	return b.stack[len(b.stack)-1]
}

// unwind pops open ancestors until one sits at the line's indent and returns
// that ancestor's parent.
func (b *treeBuilder) unwind(line *Line) (NodeID, error) {
	for {
		top := b.top()
		if top == RootID || b.nodes[top].Indent < line.Indent {
			return NoNode, errors.Indentation(line.Number, b.excerpt(line))
		}
		b.stack = b.stack[:len(b.stack)-1]
		if err := b.finalize(top); err != nil {
			return NoNode, err
		}
		if b.nodes[top].Indent == line.Indent {
			return b.top(), nil
		}
	}
}

func (b *treeBuilder) addChild(parent NodeID, indent int) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		ID:          id,
		Key:         NoToken,
		Value:       NoToken,
		Parent:      parent,
		FirstChild:  NoNode,
		LastChild:   NoNode,
		NextSibling: NoNode,
		Indent:      indent,
	})
	p := &b.nodes[parent]
	if p.LastChild == NoNode {
		p.FirstChild = id
	} else {
		b.nodes[p.LastChild].NextSibling = id
	}
	p.LastChild = id
	p.NumChildren++
	return id
}

func (b *treeBuilder) fill(id NodeID, line *Line) {
	first := line.First
	switch line.Type {
	case LineListEntry:
		if v := first + 1; b.isValue(v, line.End) {
			b.nodes[id].Value = v
		}

	case LineDictionaryEntry:
		b.nodes[id].Key = first
		if first+1 >= line.End || !b.tokens[first+1].Is(':') {
			return
		}
		v := first + 2
		if line.Traits.HasInlineCollection && v < line.End && b.tokens[v].Is('[') {
			b.nodes[id].inline = true
			indent := b.nodes[id].Indent + 1
			for t := v + 1; t < line.End && !b.tokens[t].Is(']'); t++ {
				if b.tokens[t].Is(',') {
					continue
				}
				child := b.addChild(id, indent)
				b.nodes[child].Value = t
			}
			return
		}
		if b.isValue(v, line.End) {
			b.nodes[id].Value = v
		}
	}
}

func (b *treeBuilder) isValue(id, end TokenID) bool {
	if id >= end {
		return false
	}
	switch b.tokens[id].Type {
	case Identifier, LiteralString, LiteralNumber:
		return true
	}
	return false
}

func (b *treeBuilder) finalize(id NodeID) error {
	n := &b.nodes[id]

	// key: value: nested on one line
	if n.Value != NoToken && n.Value+1 < TokenID(len(b.tokens)) && b.tokens[n.Value+1].Is(':') {
		key := n.Value
		n.Value = NoToken
		child := b.prependChild(id, n.Indent+1)
		b.nodes[child].Key = key
		if v := key + 2; b.isValue(v, TokenID(len(b.tokens))) && b.tokens[v].Line == b.tokens[key].Line {
			b.nodes[child].Value = v
		}
		if err := b.finalize(child); err != nil {
			return err
		}
		n = &b.nodes[id]
	}

	if n.Key != NoToken && n.Value == NoToken && n.NumChildren == 0 && !n.inline {
		key := b.tokens[n.Key].Value
		if !slices.Contains(AllowedEmptyVectors, key) {
			return errors.New(errors.PhaseTree, errors.KindInvalidData).
				Path(key).
				Value(b.tokens[n.Key].Line).
				Detail("vector data type expects to have at least one value starting with -").
				Build()
		}
	}
	return nil
}

func (b *treeBuilder) prependChild(parent NodeID, indent int) NodeID {
	id := NodeID(len(b.nodes))
	p := &b.nodes[parent]
	b.nodes = append(b.nodes, Node{
		ID:          id,
		Key:         NoToken,
		Value:       NoToken,
		Parent:      parent,
		FirstChild:  NoNode,
		LastChild:   NoNode,
		NextSibling: p.FirstChild,
		Indent:      indent,
	})
	p = &b.nodes[parent]
	if p.LastChild == NoNode {
		p.LastChild = id
	}
	p.FirstChild = id
	p.NumChildren++
	return id
}

func (b *treeBuilder) excerpt(line *Line) string {
	if line.First >= line.End {
		return ""
	}
	start := b.tokens[line.First].Pos
	end := len(b.text)
	if last := b.tokens[line.End-1]; last.Is('\n') && last.Pos <= len(b.text) {
		end = last.Pos
	}
	if start > end {
		return ""
	}
	return b.text[start:end]
}
