package yaml

import (
	"regexp"
	"strings"

	"github.com/wippyai/zebin/errors"
)

// TokenType discriminates tokens produced by Tokenize.
type TokenType int

const (
	Identifier TokenType = iota
	LiteralString
	LiteralNumber
	SingleCharacter
	Comment
	FileSectionBeg
	FileSectionEnd
	CollectionBracket
)

func (t TokenType) String() string {
	switch t {
	case Identifier:
		return "identifier"
	case LiteralString:
		return "literal string"
	case LiteralNumber:
		return "literal number"
	case SingleCharacter:
		return "single character"
	case Comment:
		return "comment"
	case FileSectionBeg:
		return "file section begin"
	case FileSectionEnd:
		return "file section end"
	case CollectionBracket:
		return "collection bracket"
	}
	return "unknown"
}

// TokenID indexes the token sequence of one parse.
type TokenID int

// NoToken marks an absent key or value.
const NoToken TokenID = -1

// Token is a view into the source text.
type Token struct {
	Value string
	Type  TokenType
	Line  int
	Pos   int
}

// Is reports whether t is the punctuation character c.
func (t Token) Is(c byte) bool {
	return (t.Type == SingleCharacter || t.Type == CollectionBracket) && len(t.Value) == 1 && t.Value[0] == c
}

// LineType classifies a logical line.
type LineType int

const (
	LineEmpty LineType = iota
	LineComment
	LineFileSection
	LineDictionaryEntry
	LineListEntry
)

func (t LineType) String() string {
	switch t {
	case LineEmpty:
		return "empty"
	case LineComment:
		return "comment"
	case LineFileSection:
		return "file section"
	case LineDictionaryEntry:
		return "dictionary entry"
	case LineListEntry:
		return "list entry"
	}
	return "unknown"
}

// LineTraits carries per-line flags gathered while tokenizing.
type LineTraits struct {
	HasDictionaryEntry  bool
	HasInlineCollection bool
}

// Line is one logical line. A list marker followed by a dictionary entry on
// the same physical line yields two logical lines.
type Line struct {
	Type   LineType
	Indent int
	First  TokenID // first token of the line
	End    TokenID // one past the last token
	Traits LineTraits
	Number int // zero-based physical line
}

const collectionFormat = `^\[(\s*(\d|\w)+,?)*\s*\]\s*\n`

var collectionRe = regexp.MustCompile(`^\[\s*(?:\w+\s*,\s*)*(?:\w+\s*)?\]\s*$`)

type tokenizer struct {
	text   string
	pos    int
	line   int
	w      *errors.Warnings
	tokens []Token
	lines  []Line

	lineStart    int
	lineFirst    TokenID
	indent       int
	leading      bool
	traits       LineTraits
	inCollection bool
	tabWarned    bool
}

// Tokenize splits zeinfo text into tokens and logical lines.
// Empty input is not an error: it yields no tokens and a warning.
func Tokenize(text string, w *errors.Warnings) ([]Token, []Line, error) {
	if len(text) == 0 {
		w.Addf("input text is empty")
		return nil, nil, nil
	}

	t := &tokenizer{text: text, w: w, leading: true}
	if err := t.run(); err != nil {
		return nil, nil, err
	}
	if len(t.tokens) == 0 {
		w.Addf("text tokenized to 0 tokens")
		return nil, nil, nil
	}

	if text[len(text)-1] != '\n' {
		w.Addf("text does not end with newline")
		t.tokens = append(t.tokens, Token{Value: "\n", Type: SingleCharacter, Line: t.line, Pos: len(text)})
		if err := t.closeLine(); err != nil {
			return nil, nil, err
		}
	}

	return t.tokens, t.lines, nil
}

func (t *tokenizer) run() error {
	for t.pos < len(t.text) {
		c := t.text[t.pos]
		switch {
		case c == ' ':
			if t.leading {
				t.indent++
			}
			t.pos++

		case c == '\t':
			if t.leading {
				t.indent += 4
				if !t.tabWarned {
					t.w.Addf("tabs used as indent at line : %d", t.line)
					t.tabWarned = true
				}
			}
			t.pos++

		case c == '\r' || c == 0:
			t.pos++

		case c == '\n':
			t.emit(t.pos, t.pos+1, SingleCharacter)
			if err := t.closeLine(); err != nil {
				return err
			}
			t.pos++
			t.line++
			t.lineStart = t.pos

		case c == '#':
			t.emit(t.pos, t.pos+1, SingleCharacter)
			t.pos++
			end := t.physicalLineEnd()
			if end > t.pos {
				t.emit(t.pos, end, Comment)
			}
			t.pos = end

		case c == '"' || c == '\'':
			end := t.pos + 1
			for end < len(t.text) && t.text[end] != c && t.text[end] != '\n' {
				if t.text[end] == '\\' && end+1 < len(t.text) && t.text[end+1] != '\n' {
					end++
				}
				end++
			}
			if end >= len(t.text) || t.text[end] != c {
				return t.fail("unterminated string")
			}
			t.emit(t.pos, end+1, LiteralString)
			t.pos = end + 1

		case c == '-':
			if strings.HasPrefix(t.text[t.pos:], "---") {
				t.emit(t.pos, t.pos+3, FileSectionBeg)
				t.pos += 3
				continue
			}
			if t.pos+1 < len(t.text) && isDigit(t.text[t.pos+1]) {
				if err := t.number(); err != nil {
					return err
				}
				continue
			}
			listMarker := t.lineTokens() == 0
			t.emit(t.pos, t.pos+1, SingleCharacter)
			t.pos++
			if listMarker && t.restHasDictionaryEntry() {
				t.splitListEntry()
			}

		case c == '.':
			if strings.HasPrefix(t.text[t.pos:], "...") {
				t.emit(t.pos, t.pos+3, FileSectionEnd)
				t.pos += 3
				continue
			}
			if t.pos+1 < len(t.text) && t.text[t.pos+1] == '.' {
				return t.fail("unhandled keyword character : .")
			}
			t.emit(t.pos, t.pos+1, SingleCharacter)
			t.pos++

		case c == '[':
			if t.inCollection || !collectionRe.MatchString(t.text[t.pos:t.physicalLineEnd()]) {
				return t.fail("inline collection is not in valid regex format - " + collectionFormat)
			}
			t.emit(t.pos, t.pos+1, CollectionBracket)
			t.traits.HasInlineCollection = true
			t.inCollection = true
			t.pos++

		case c == ']':
			if !t.inCollection {
				return t.fail("inline collection is not in valid regex format - " + collectionFormat)
			}
			t.emit(t.pos, t.pos+1, CollectionBracket)
			t.inCollection = false
			t.pos++

		case c == ',':
			if !t.inCollection {
				return t.fail("inline collection is not in valid regex format - " + collectionFormat)
			}
			t.emit(t.pos, t.pos+1, SingleCharacter)
			t.pos++

		case c == '{' || c == '}':
			return t.fail("inline dictionaries are not supported")

		case c == ':':
			if t.lineTokens() == 0 {
				return t.fail("unhandled keyword character : :")
			}
			t.emit(t.pos, t.pos+1, SingleCharacter)
			t.traits.HasDictionaryEntry = true
			t.pos++

		case isIdentStart(c):
			end := t.pos + 1
			for {
				for end < len(t.text) && isIdentChar(t.text[end]) {
					end++
				}
				if end+1 < len(t.text) && t.text[end] == ' ' && isIdentChar(t.text[end+1]) {
					end += 2
					continue
				}
				break
			}
			t.emit(t.pos, end, Identifier)
			t.pos = end

		case isDigit(c) || c == '+':
			if err := t.number(); err != nil {
				return err
			}

		default:
			return t.fail("unhandled keyword character : " + string(c))
		}
	}
	return nil
}

// number consumes an optionally signed decimal, fractional or 0x-prefixed literal.
func (t *tokenizer) number() error {
	i := t.pos
	if t.text[i] == '+' || t.text[i] == '-' {
		i++
	}
	digits := i
	if i+1 < len(t.text) && t.text[i] == '0' && (t.text[i+1] == 'x' || t.text[i+1] == 'X') {
		i += 2
		digits = i
		for i < len(t.text) && isHexDigit(t.text[i]) {
			i++
		}
	} else {
		for i < len(t.text) && isDigit(t.text[i]) {
			i++
		}
		if i+1 < len(t.text) && i > digits && t.text[i] == '.' && isDigit(t.text[i+1]) {
			i++
			for i < len(t.text) && isDigit(t.text[i]) {
				i++
			}
		}
	}
	if i == digits || (i < len(t.text) && isIdentChar(t.text[i])) {
		return t.fail("invalid numeric literal")
	}
	t.emit(t.pos, i, LiteralNumber)
	t.pos = i
	return nil
}

func (t *tokenizer) emit(start, end int, typ TokenType) {
	t.tokens = append(t.tokens, Token{Value: t.text[start:end], Type: typ, Line: t.line, Pos: start})
	t.leading = false
}

func (t *tokenizer) lineTokens() int {
	return len(t.tokens) - int(t.lineFirst)
}

func (t *tokenizer) physicalLineEnd() int {
	if i := strings.IndexByte(t.text[t.pos:], '\n'); i >= 0 {
		return t.pos + i
	}
	return len(t.text)
}

// restHasDictionaryEntry looks for a key colon in the remainder of the
// physical line, skipping quoted literals and stopping at a comment.
func (t *tokenizer) restHasDictionaryEntry() bool {
	end := t.physicalLineEnd()
	for i := t.pos; i < end; i++ {
		switch c := t.text[i]; c {
		case '#':
			return false
		case ':':
			return true
		case '"', '\'':
			for i++; i < end && t.text[i] != c; i++ {
			}
		}
	}
	return false
}

// splitListEntry closes the current line right after its list marker and
// opens a new logical line at the column of the next token.
func (t *tokenizer) splitListEntry() {
	first := t.lineFirst
	t.lines = append(t.lines, Line{
		Type:   LineListEntry,
		Indent: t.indent,
		First:  first,
		End:    TokenID(len(t.tokens)),
		Traits: LineTraits{},
		Number: t.line,
	})

	next := t.pos
	for next < len(t.text) && (t.text[next] == ' ' || t.text[next] == '\t') {
		next++
	}
	col := t.indent + next - (t.pos - 1)
	t.pos = next
	t.lineFirst = TokenID(len(t.tokens))
	t.indent = col
	t.traits = LineTraits{}
}

func (t *tokenizer) closeLine() error {
	first := t.lineFirst
	end := TokenID(len(t.tokens))
	contentEnd := end
	if contentEnd > first && t.tokens[contentEnd-1].Is('\n') {
		contentEnd--
	}

	line := Line{Indent: t.indent, First: first, End: end, Traits: t.traits, Number: t.line}
	switch head := t.tokens[min(first, end-1)]; {
	case contentEnd == first:
		line.Type = LineEmpty
	case head.Is('#'):
		line.Type = LineComment
	case head.Type == FileSectionBeg || head.Type == FileSectionEnd:
		line.Type = LineFileSection
	case head.Is('-'):
		line.Type = LineListEntry
	case head.Type == Identifier || head.Type == LiteralString:
		line.Type = LineDictionaryEntry
	case head.Type == LiteralNumber && contentEnd-first >= 2 && t.tokens[first+1].Is(':'):
		line.Type = LineDictionaryEntry
	default:
		return t.fail("internal error - undefined line type")
	}

	for i := first; i+1 < contentEnd; i++ {
		if t.tokens[i].Is(':') && t.tokens[i+1].Type == Identifier {
			t.tokens[i+1].Type = LiteralString
		}
	}

	t.lines = append(t.lines, line)
	t.lineFirst = end
	t.indent = 0
	t.leading = true
	t.traits = LineTraits{}
	t.inCollection = false
	t.tabWarned = false
	return nil
}

func (t *tokenizer) fail(reason string) error {
	end := t.physicalLineEnd()
	excerpt := t.text[t.lineStart:min(t.pos+1, end)]
	return errors.Syntax(t.line, excerpt, reason)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
