package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseTokenize  Phase = "tokenize"  // zeinfo text to tokens
	PhaseTree      Phase = "tree"      // tokens to node arena
	PhaseQuery     Phase = "query"     // typed value reads
	PhaseDecode    Phase = "decode"    // schema walk
	PhaseVersion   Phase = "version"   // zeinfo version checks
	PhaseContainer Phase = "container" // ELF section handling
	PhaseHeap      Phase = "heap"      // generated heaps
	PhaseConfig    Phase = "config"    // options file
	PhaseDump      Phase = "dump"      // output encoding
)

// Kind categorizes the error
type Kind string

const (
	KindSyntax             Kind = "syntax"
	KindIndentation        Kind = "indentation"
	KindInvalidData        Kind = "invalid_data"
	KindFieldMissing       Kind = "field_missing"
	KindFieldUnknown       Kind = "field_unknown"
	KindInvalidEnum        Kind = "invalid_enum"
	KindOverflow           Kind = "overflow"
	KindCardinality        Kind = "cardinality"
	KindUnsupportedVersion Kind = "unsupported_version"
	KindTargetMismatch     Kind = "target_mismatch"
	KindOutOfBounds        Kind = "out_of_bounds"
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
)

// Error is the structured error type used throughout the decoder
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the metadata path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Syntax creates a tokenizer error anchored at a source line.
func Syntax(line int, excerpt, reason string) *Error {
	return &Error{
		Phase:  PhaseTokenize,
		Kind:   KindSyntax,
		Value:  line,
		Detail: fmt.Sprintf("could not parse line : [%d] : [%s] <-- parser position on error. Reason : %s", line, excerpt, reason),
	}
}

// Indentation creates a tree builder error for a line that matches no open ancestor.
func Indentation(line int, excerpt string) *Error {
	return &Error{
		Phase:  PhaseTree,
		Kind:   KindIndentation,
		Value:  line,
		Detail: fmt.Sprintf("could not parse line : [%d] : [%s] <-- parser position on error. Reason : invalid indentation", line, excerpt),
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Value:  fieldName,
		Detail: fmt.Sprintf("unknown entry %q", fieldName),
	}
}

// InvalidEnum creates an invalid enum value error
func InvalidEnum(phase Phase, path []string, value any, enumType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEnum,
		Path:   path,
		Detail: fmt.Sprintf("unhandled %q %s", value, enumType),
		Value:  value,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// Cardinality creates an error for a tag that appears the wrong number of times.
// mode is "exactly" or "at most".
func Cardinality(phase Phase, path []string, tag, mode string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCardinality,
		Path:   path,
		Value:  got,
		Detail: fmt.Sprintf("expected %s %d of %s, got : %d", mode, want, tag, got),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(phase Phase, what string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
