package yaml

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/wippyai/zebin/errors"
)

// Parser owns the token, line and node arenas of one document.
type Parser struct {
	text   string
	tokens []Token
	lines  []Line
	nodes  []Node
}

// Parse tokenizes text and builds its tree. Warnings go to w, which may be nil.
func Parse(text string, w *errors.Warnings) (*Parser, error) {
	tokens, lines, err := Tokenize(text, w)
	if err != nil {
		return nil, err
	}
	p := &Parser{text: text, tokens: tokens, lines: lines}
	if len(tokens) == 0 {
		return p, nil
	}
	nodes, err := buildTree(text, tokens, lines, w)
	if err != nil {
		return nil, err
	}
	p.nodes = nodes
	return p, nil
}

// Empty reports whether the document holds no data nodes.
func (p *Parser) Empty() bool {
	return len(p.nodes) <= 1
}

func (p *Parser) Root() NodeID {
	return RootID
}

// Node returns a copy of the node. Out-of-range ids yield a detached node.
func (p *Parser) Node(id NodeID) Node {
	if !p.valid(id) {
		return Node{ID: NoNode, Key: NoToken, Value: NoToken, Parent: NoNode, FirstChild: NoNode, LastChild: NoNode, NextSibling: NoNode}
	}
	return p.nodes[id]
}

func (p *Parser) Token(id TokenID) Token {
	if id < 0 || int(id) >= len(p.tokens) {
		return Token{}
	}
	return p.tokens[id]
}

func (p *Parser) Tokens() []Token { return p.tokens }
func (p *Parser) Lines() []Line   { return p.lines }
func (p *Parser) NumNodes() int   { return len(p.nodes) }

func (p *Parser) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(p.nodes)
}

// Children iterates the direct children of id in document order. Each range
// starts again from the first child.
func (p *Parser) Children(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if !p.valid(id) {
			return
		}
		for c := p.nodes[id].FirstChild; c != NoNode; c = p.nodes[c].NextSibling {
			if !yield(c) {
				return
			}
		}
	}
}

// Child returns the first direct child of id whose key is key.
func (p *Parser) Child(id NodeID, key string) (NodeID, bool) {
	for c := range p.Children(id) {
		if p.ReadKey(c) == key {
			return c, true
		}
	}
	return NoNode, false
}

// ReadKey returns the key text of id, or "" for value-only nodes.
func (p *Parser) ReadKey(id NodeID) string {
	if !p.valid(id) || p.nodes[id].Key == NoToken {
		return ""
	}
	return unquote(p.tokens[p.nodes[id].Key])
}

// ReadValue returns the raw value text of id including any quotes.
func (p *Parser) ReadValue(id NodeID) string {
	tok, ok := p.ValueToken(id)
	if !ok {
		return ""
	}
	return tok.Value
}

// ReadValueNoQuotes returns the value text with surrounding quotes removed.
func (p *Parser) ReadValueNoQuotes(id NodeID) string {
	tok, ok := p.ValueToken(id)
	if !ok {
		return ""
	}
	return unquote(tok)
}

func (p *Parser) ValueToken(id NodeID) (Token, bool) {
	if !p.valid(id) || p.nodes[id].Value == NoToken {
		return Token{}, false
	}
	return p.tokens[p.nodes[id].Value], true
}

// FindNodeWithKeyDFS returns the first node in document order keyed by key.
func (p *Parser) FindNodeWithKeyDFS(key string) (NodeID, bool) {
	for id := range p.DFS(RootID) {
		if id != RootID && p.ReadKey(id) == key {
			return id, true
		}
	}
	return NoNode, false
}

// DFS walks the subtree rooted at id in pre-order.
func (p *Parser) DFS(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if !p.valid(id) {
			return
		}
		stack := []NodeID{id}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			mark := len(stack)
			for c := range p.Children(n) {
				stack = append(stack, c)
			}
			for i, j := mark, len(stack)-1; i < j; i, j = i+1, j-1 {
				stack[i], stack[j] = stack[j], stack[i]
			}
		}
	}
}

// Path returns the keys from the root to id, skipping value-only nodes.
func (p *Parser) Path(id NodeID) []string {
	var path []string
	for n := id; p.valid(n) && n != RootID; n = p.nodes[n].Parent {
		if k := p.ReadKey(n); k != "" {
			path = append(path, k)
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// DebugNodes renders the tree one node per line, indented by depth.
func (p *Parser) DebugNodes() string {
	var b strings.Builder
	_ = p.Dump(&b)
	return b.String()
}

func (p *Parser) Dump(w io.Writer) error {
	for c := range p.Children(RootID) {
		if err := p.dump(w, c, 0); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) dump(w io.Writer, id NodeID, depth int) error {
	n := p.nodes[id]
	pad := strings.Repeat("  ", depth)
	var err error
	switch {
	case n.Key != NoToken && n.Value != NoToken:
		_, err = fmt.Fprintf(w, "%s%s: %s\n", pad, p.ReadKey(id), p.ReadValue(id))
	case n.Key != NoToken:
		_, err = fmt.Fprintf(w, "%s%s:\n", pad, p.ReadKey(id))
	case n.Value != NoToken:
		_, err = fmt.Fprintf(w, "%s- %s\n", pad, p.ReadValue(id))
	default:
		_, err = fmt.Fprintf(w, "%s-\n", pad)
	}
	if err != nil {
		return err
	}
	for c := range p.Children(id) {
		if err := p.dump(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func unquote(tok Token) string {
	v := tok.Value
	if tok.Type == LiteralString && len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
