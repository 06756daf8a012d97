package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderReadByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(bytes.NewReader(data))

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	_, err := r.ReadByte()
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReaderFixedWidth(t *testing.T) {
	data := []byte{
		0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}
	r := NewReader(bytes.NewReader(data))

	u16, err := r.ReadU16LE()
	if err != nil || u16 != 0x1234 {
		t.Errorf("ReadU16LE = 0x%x, %v, want 0x1234", u16, err)
	}
	u32, err := r.ReadU32LE()
	if err != nil || u32 != 0x12345678 {
		t.Errorf("ReadU32LE = 0x%x, %v, want 0x12345678", u32, err)
	}
	u64, err := r.ReadU64LE()
	if err != nil || u64 != 0x0102030405060708 {
		t.Errorf("ReadU64LE = 0x%x, %v, want 0x0102030405060708", u64, err)
	}
	if r.Position() != len(data) {
		t.Errorf("position = %d, want %d", r.Position(), len(data))
	}
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3}))
	if _, err := r.ReadU32LE(); err == nil {
		t.Error("ReadU32LE on 3 bytes: expected error")
	}
	r = NewReader(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	if _, err := r.ReadU64LE(); err == nil {
		t.Error("ReadU64LE on 5 bytes: expected error")
	}
}

func TestReaderReset(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0, 1, 2, 3, 4}))
	if err := r.Reset(3); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	b, err := r.ReadByte()
	if err != nil || b != 3 {
		t.Errorf("ReadByte after Reset(3) = %d, %v, want 3", b, err)
	}
	if r.Position() != 4 {
		t.Errorf("position = %d, want 4", r.Position())
	}
}

func TestReaderResetNonSeeker(t *testing.T) {
	r := NewReader(bytes.NewBufferString("abc"))
	if err := r.Reset(1); err == nil {
		t.Error("Reset on bytes.Buffer: expected error")
	}
}

func TestCString(t *testing.T) {
	table := []byte("\x00.text\x00.data\x00tail")
	tests := []struct {
		off     uint32
		want    string
		wantErr bool
	}{
		{0, "", false},
		{1, ".text", false},
		{7, ".data", false},
		{9, "ata", false},
		{13, "", true},
		{100, "", true},
	}
	for _, tt := range tests {
		got, err := CString(table, tt.off)
		if (err != nil) != tt.wantErr {
			t.Errorf("CString(%d) error = %v, wantErr %v", tt.off, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("CString(%d) = %q, want %q", tt.off, got, tt.want)
		}
	}
}

func TestWrapError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1}))
	_, _ = r.ReadByte()
	err := r.WrapError("header", io.ErrUnexpectedEOF)

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("WrapError = %T, want *ParseError", err)
	}
	if pe.Position != 1 || pe.Section != "header" {
		t.Errorf("ParseError = %+v", pe)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("ParseError does not unwrap to its cause")
	}
	if got := err.Error(); got != "elf: header at position 1: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.Byte(0x7f)
	w.WriteU16LE(0xbeef)
	w.WriteU32LE(0xdeadbeef)
	w.WriteU64LE(0x0123456789abcdef)
	w.Align(8)
	w.WriteBytes([]byte("xy"))

	if w.Len() != 18 {
		t.Fatalf("Len = %d, want 18", w.Len())
	}
	r := NewReader(bytes.NewReader(w.Bytes()))
	b, _ := r.ReadByte()
	u16, _ := r.ReadU16LE()
	u32, _ := r.ReadU32LE()
	u64, _ := r.ReadU64LE()
	if b != 0x7f || u16 != 0xbeef || u32 != 0xdeadbeef || u64 != 0x0123456789abcdef {
		t.Errorf("round trip = %x %x %x %x", b, u16, u32, u64)
	}
	if err := r.Reset(16); err != nil {
		t.Fatal(err)
	}
	tail, _ := r.ReadBytes(2)
	if string(tail) != "xy" {
		t.Errorf("tail = %q, want xy", tail)
	}
}
