package yaml

import (
	"math"
	"testing"

	"github.com/wippyai/zebin/errors"
)

func TestParseIntSigned(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"+5", 5},
		{"-5", -5},
		{"0x10", 16},
		{"0X1f", 31},
		{"-0x10", -16},
		{"9223372036854775807", math.MaxInt64},
		{"-9223372036854775808", math.MinInt64},
		{"-0x8000000000000000", math.MinInt64},
	}
	for _, tt := range tests {
		got, err := ParseInt[int64](tt.in)
		if err != nil {
			t.Errorf("ParseInt[int64](%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseInt[int64](%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseIntWidths(t *testing.T) {
	if v, err := ParseInt[int8]("127"); err != nil || v != 127 {
		t.Errorf("int8 127 = %d, %v", v, err)
	}
	if v, err := ParseInt[int8]("-128"); err != nil || v != -128 {
		t.Errorf("int8 -128 = %d, %v", v, err)
	}
	if v, err := ParseInt[uint8]("0xff"); err != nil || v != 255 {
		t.Errorf("uint8 0xff = %d, %v", v, err)
	}
	if v, err := ParseInt[uint64]("0xFFFFFFFFFFFFFFFF"); err != nil || v != math.MaxUint64 {
		t.Errorf("uint64 max = %d, %v", v, err)
	}
	if v, err := ParseInt[uint32]("-0"); err != nil || v != 0 {
		t.Errorf("uint32 -0 = %d, %v", v, err)
	}
}

func TestParseIntRejects(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
		kind errors.Kind
	}{
		{"int8 overflow", func() error { _, err := ParseInt[int8]("128"); return err }, errors.KindOverflow},
		{"int8 underflow", func() error { _, err := ParseInt[int8]("-129"); return err }, errors.KindOverflow},
		{"uint8 overflow", func() error { _, err := ParseInt[uint8]("256"); return err }, errors.KindOverflow},
		{"uint negative", func() error { _, err := ParseInt[uint32]("-1"); return err }, errors.KindOverflow},
		{"int64 overflow", func() error { _, err := ParseInt[int64]("9223372036854775808"); return err }, errors.KindOverflow},
		{"fraction", func() error { _, err := ParseInt[int32]("1.5"); return err }, errors.KindInvalidData},
		{"letters", func() error { _, err := ParseInt[int32]("abc"); return err }, errors.KindInvalidData},
		{"empty", func() error { _, err := ParseInt[int32](""); return err }, errors.KindInvalidData},
		{"bare prefix", func() error { _, err := ParseInt[int32]("0x"); return err }, errors.KindInvalidData},
		{"double sign", func() error { _, err := ParseInt[int32]("--1"); return err }, errors.KindInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if err == nil {
				t.Fatal("expected error")
			}
			e, ok := err.(*errors.Error)
			if !ok {
				t.Fatalf("error type = %T, want *errors.Error", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", e.Kind, tt.kind)
			}
			if e.Phase != errors.PhaseQuery {
				t.Errorf("phase = %s, want %s", e.Phase, errors.PhaseQuery)
			}
		})
	}
}

func TestReadInt(t *testing.T) {
	p, err := Parse("a: 0x20\nb: text\nc:\n  - 1\nd: 300\n", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a, _ := p.Child(RootID, "a")
	if v, err := ReadInt[int32](p, a); err != nil || v != 32 {
		t.Errorf("ReadInt(a) = %d, %v; want 32", v, err)
	}

	b, _ := p.Child(RootID, "b")
	if _, err := ReadInt[int32](p, b); err == nil {
		t.Error("ReadInt(b): expected error for string value")
	}

	c, _ := p.Child(RootID, "c")
	if _, err := ReadInt[int32](p, c); err == nil {
		t.Error("ReadInt(c): expected error for missing value")
	}

	d, _ := p.Child(RootID, "d")
	_, err = ReadInt[uint8](p, d)
	e, ok := err.(*errors.Error)
	if !ok || e.Kind != errors.KindOverflow {
		t.Fatalf("ReadInt[uint8](d) error = %v, want overflow", err)
	}
	if len(e.Path) != 1 || e.Path[0] != "d" {
		t.Errorf("error path = %v, want [d]", e.Path)
	}
}

func TestReadBool(t *testing.T) {
	tests := []struct {
		text string
		want bool
		ok   bool
	}{
		{"v: true\n", true, true},
		{"v: Yes\n", true, true},
		{"v: y\n", true, true},
		{"v: ON\n", true, true},
		{"v: false\n", false, true},
		{"v: no\n", false, true},
		{"v: N\n", false, true},
		{"v: off\n", false, true},
		{"v: 1\n", false, false},
		{"v: maybe\n", false, false},
	}
	for _, tt := range tests {
		p, err := Parse(tt.text, nil)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.text, err)
		}
		v, _ := p.Child(RootID, "v")
		got, err := ReadBool(p, v)
		if (err == nil) != tt.ok {
			t.Errorf("ReadBool(%q) error = %v, want ok %v", tt.text, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadBool(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestReadString(t *testing.T) {
	p, err := Parse("s: \"quoted value\"\nm:\n  - x\n", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, _ := p.Child(RootID, "s")
	if got, err := ReadString(p, s); err != nil || got != "quoted value" {
		t.Errorf("ReadString = %q, %v", got, err)
	}
	m, _ := p.Child(RootID, "m")
	if _, err := ReadString(p, m); err == nil {
		t.Error("ReadString(m): expected error")
	}
}
