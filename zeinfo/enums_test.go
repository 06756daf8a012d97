package zeinfo

import (
	"testing"

	"github.com/wippyai/zebin/kernel"
)

func TestValidateTables(t *testing.T) {
	if err := validateTables(); err != nil {
		t.Fatalf("validateTables: %v", err)
	}
}

func TestEnumTableValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		table *enumTable[AccessType]
	}{
		{"missing value", &enumTable[AccessType]{name: "t", count: 3, rows: []enumRow[AccessType]{
			{"readonly", AccessTypeReadOnly},
			{"writeonly", AccessTypeWriteOnly},
		}}},
		{"duplicate value", &enumTable[AccessType]{name: "t", count: 2, rows: []enumRow[AccessType]{
			{"readonly", AccessTypeReadOnly},
			{"ro", AccessTypeReadOnly},
		}}},
		{"duplicate spelling", &enumTable[AccessType]{name: "t", count: 2, rows: []enumRow[AccessType]{
			{"readonly", AccessTypeReadOnly},
			{"readonly", AccessTypeWriteOnly},
		}}},
		{"unknown value spelled", &enumTable[AccessType]{name: "t", count: 1, rows: []enumRow[AccessType]{
			{"unknown", AccessTypeUnknown},
			{"readonly", AccessTypeReadOnly},
		}}},
		{"out of range", &enumTable[AccessType]{name: "t", count: 1, rows: []enumRow[AccessType]{
			{"readonly", AccessTypeReadOnly},
			{"writeonly", AccessTypeWriteOnly},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.table.validate(); err == nil {
				t.Error("validate() = nil, want error")
			}
		})
	}
}

func TestEnumLookup(t *testing.T) {
	if got, ok := argTypes.lookup("arg_bypointer"); !ok || got != ArgTypeArgByPointer {
		t.Errorf("lookup(arg_bypointer) = %v, %v, want %v, true", got, ok, ArgTypeArgByPointer)
	}
	if got, ok := argTypes.lookup("arg_by_pointer"); ok || got != ArgTypeUnknown {
		t.Errorf("lookup(arg_by_pointer) = %v, %v, want unknown, false", got, ok)
	}
	if got, ok := imageTypes.lookup("image_2d_media_block"); !ok || got != kernel.ImageType2DMediaBlock {
		t.Errorf("lookup(image_2d_media_block) = %v, %v", got, ok)
	}
	if got, ok := samplerTypes.lookup("vme"); !ok || got != kernel.SamplerTypeVME {
		t.Errorf("lookup(vme) = %v, %v", got, ok)
	}
}

func TestEnumString(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{ArgTypeLocalID.String(), "local_id"},
		{ArgTypeDataConstBuffer.String(), "const_base"},
		{AddressingModeSLM.String(), "slm"},
		{MemoryUsageSpillFillSpace.String(), "spill_fill_space"},
		{ThreadSchedulingModeRoundRobinStall.String(), "round_robin_stall"},
		{ArgTypeUnknown.String(), "unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestArgTypeCount(t *testing.T) {
	if got := len(argTypes.rows); got != 47 {
		t.Errorf("arg type spellings = %d, want 47", got)
	}
}
