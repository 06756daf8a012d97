package yaml

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/zebin/errors"
)

// Integer is every fixed and platform width integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ParseInt parses s as T. Decimal and 0x/0X hex are accepted with an
// optional sign; the whole string must parse and fit T.
func ParseInt[T Integer](s string) (T, error) {
	var zero T
	neg := false
	digits := s
	switch {
	case strings.HasPrefix(digits, "-"):
		neg = true
		digits = digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}
	base := 10
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		base = 16
		digits = digits[2:]
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return zero, errors.New(errors.PhaseQuery, errors.KindInvalidData).
			Value(s).
			Detail("could not parse %q as integer", s).
			Build()
	}

	signed := ^zero < 0
	var out T
	if signed {
		v, err := strconv.ParseInt(digits, base, 64)
		switch {
		case err == nil:
			if neg {
				v = -v
			}
		case neg && isMinInt64(digits, base):
			v = math.MinInt64
		default:
			return zero, parseError(s, err)
		}
		out = T(v)
		if int64(out) != v {
			return zero, errors.Overflow(errors.PhaseQuery, nil, s, typeName[T]())
		}
		return out, nil
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return zero, parseError(s, err)
	}
	if neg && v != 0 {
		return zero, errors.Overflow(errors.PhaseQuery, nil, s, typeName[T]())
	}
	out = T(v)
	if uint64(out) != v {
		return zero, errors.Overflow(errors.PhaseQuery, nil, s, typeName[T]())
	}
	return out, nil
}

// isMinInt64 covers the one negative value whose magnitude ParseInt rejects.
func isMinInt64(digits string, base int) bool {
	u, err := strconv.ParseUint(digits, base, 64)
	return err == nil && u == 1<<63
}

func parseError(s string, err error) error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return errors.New(errors.PhaseQuery, errors.KindOverflow).
			Value(s).
			Cause(err).
			Detail("value %s overflows 64 bits", s).
			Build()
	}
	return errors.New(errors.PhaseQuery, errors.KindInvalidData).
		Value(s).
		Cause(err).
		Detail("could not parse %q as integer", s).
		Build()
}

func typeName[T Integer]() string {
	var zero T
	switch any(zero).(type) {
	case int8:
		return "int8"
	case int16:
		return "int16"
	case int32:
		return "int32"
	case int64:
		return "int64"
	case uint8:
		return "uint8"
	case uint16:
		return "uint16"
	case uint32:
		return "uint32"
	case uint64:
		return "uint64"
	case uint:
		return "uint"
	case int:
		return "int"
	}
	return "integer"
}

// ReadInt reads the value of id as T. The value must be a number token.
func ReadInt[T Integer](p *Parser, id NodeID) (T, error) {
	var zero T
	tok, ok := p.ValueToken(id)
	if !ok {
		return zero, errors.New(errors.PhaseQuery, errors.KindFieldMissing).
			Path(p.Path(id)...).
			Detail("expected integer value").
			Build()
	}
	if tok.Type != LiteralNumber {
		return zero, errors.New(errors.PhaseQuery, errors.KindInvalidData).
			Path(p.Path(id)...).
			Value(tok.Value).
			Detail("could not read %q as integer, got %s", tok.Value, tok.Type).
			Build()
	}
	v, err := ParseInt[T](tok.Value)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Path = p.Path(id)
		}
		return zero, err
	}
	return v, nil
}

// ParseBool accepts y/n, yes/no, true/false and on/off in any case.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "y", "yes", "true", "on":
		return true, true
	case "n", "no", "false", "off":
		return false, true
	}
	return false, false
}

// ReadBool reads the value of id as a boolean literal.
func ReadBool(p *Parser, id NodeID) (bool, error) {
	tok, ok := p.ValueToken(id)
	if !ok {
		return false, errors.New(errors.PhaseQuery, errors.KindFieldMissing).
			Path(p.Path(id)...).
			Detail("expected boolean value").
			Build()
	}
	if tok.Type == LiteralNumber {
		return false, errors.New(errors.PhaseQuery, errors.KindInvalidData).
			Path(p.Path(id)...).
			Value(tok.Value).
			Detail("could not read %q as boolean", tok.Value).
			Build()
	}
	v, ok := ParseBool(unquote(tok))
	if !ok {
		return false, errors.New(errors.PhaseQuery, errors.KindInvalidData).
			Path(p.Path(id)...).
			Value(tok.Value).
			Detail("could not read %q as boolean", tok.Value).
			Build()
	}
	return v, nil
}

// ReadString reads the unquoted value of id.
func ReadString(p *Parser, id NodeID) (string, error) {
	tok, ok := p.ValueToken(id)
	if !ok {
		return "", errors.New(errors.PhaseQuery, errors.KindFieldMissing).
			Path(p.Path(id)...).
			Detail("expected string value").
			Build()
	}
	return unquote(tok), nil
}
