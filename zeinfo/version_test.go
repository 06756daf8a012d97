package zeinfo

import (
	"testing"

	"github.com/wippyai/zebin/errors"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"1.52", Version{1, 52}, false},
		{"1.0", Version{1, 0}, false},
		{"2.11", Version{2, 11}, false},
		{"1", Version{}, true},
		{"1.", Version{}, true},
		{".5", Version{}, true},
		{"a.b", Version{}, true},
		{"1.x", Version{}, true},
		{"-1.2", Version{}, true},
		{"", Version{}, true},
	}
	for _, tt := range tests {
		got, err := ParseVersion(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVersion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVersion(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{1, 38}, Version{1, 38}, 0},
		{Version{1, 37}, Version{1, 38}, -1},
		{Version{1, 100}, Version{1, 38}, 1},
		{Version{2, 0}, Version{1, 99}, 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
	if !(Version{1, 52}).AtLeast(scratchSlotVersion) {
		t.Error("1.52 should be at least 1.38")
	}
	if (Version{1, 9}).AtLeast(scratchSlotVersion) {
		t.Error("1.9 should be older than 1.38")
	}
}

func TestVersionCheck(t *testing.T) {
	var w errors.Warnings
	if err := DecoderVersion.Check(&w); err != nil || w.Len() != 0 {
		t.Errorf("Check(decoder version) = %v, warnings %v", err, w.List())
	}

	newer := Version{DecoderVersion.Major, DecoderVersion.Minor + 1}
	if err := newer.Check(&w); err != nil {
		t.Errorf("Check(%v) = %v, want nil", newer, err)
	}
	if !w.Contains("newer than available in decoder") {
		t.Errorf("warnings = %v, want newer minor warning", w.List())
	}

	err := Version{DecoderVersion.Major + 1, 0}.Check(nil)
	if got := errors.OutcomeOf(err); got != errors.OutcomeUnhandledBinary {
		t.Errorf("OutcomeOf(major mismatch) = %v, want %v", got, errors.OutcomeUnhandledBinary)
	}
}
