package binary

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/112RG/metasonic/internal/types"
)

func TestReadFull(t *testing.T) {
	buf := make([]byte, 4)
	if err := ReadFull(bytes.NewReader([]byte("fLaC")), buf, "marker"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(buf) != "fLaC" {
		t.Errorf("got %q, want fLaC", buf)
	}
}

func TestReadFull_Truncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		got  int
	}{
		{"empty", nil, 0},
		{"partial", []byte{0x01, 0x02}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ReadFull(bytes.NewReader(tt.data), make([]byte, 4), "header")
			if !errors.Is(err, types.ErrTruncated) {
				t.Fatalf("expected ErrTruncated, got %v", err)
			}
			var te *types.TruncatedError
			if !errors.As(err, &te) {
				t.Fatalf("expected *TruncatedError, got %T", err)
			}
			if te.Got != tt.got || te.Want != 4 {
				t.Errorf("Got/Want = %d/%d, want %d/4", te.Got, te.Want, tt.got)
			}
		})
	}
}

func TestReadFull_IOError(t *testing.T) {
	cause := errors.New("disk on fire")
	err := ReadFull(iotest.ErrReader(cause), make([]byte, 4), "marker")

	var ioErr *types.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T (%v)", err, err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("IOError should unwrap to cause, got %v", err)
	}
	if errors.Is(err, types.ErrTruncated) {
		t.Error("I/O failure must not look like truncation")
	}
}

func TestCursor(t *testing.T) {
	c := NewCursor([]byte{0x03, 0x00, 0x00, 0x00, 'a', 'b', 'c', 0xFF})

	n, err := ReadLE[uint32](c, "length")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("length = %d, want 3", n)
	}

	s, err := c.Bytes(int(n), "string")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(s) != "abc" {
		t.Errorf("string = %q, want abc", s)
	}
	if c.Offset() != 7 || c.Remaining() != 1 {
		t.Errorf("Offset/Remaining = %d/%d, want 7/1", c.Offset(), c.Remaining())
	}

	if _, err := ReadLE[uint32](c, "past end"); !errors.Is(err, types.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	// A failed read does not move the cursor.
	if c.Offset() != 7 {
		t.Errorf("Offset after failure = %d, want 7", c.Offset())
	}
}

func TestReadEndian(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78}

	be, err := ReadEndian[uint32](NewCursor(data), "be", BigEndian)
	if err != nil || be != 0x12345678 {
		t.Errorf("ReadEndian(BigEndian) = 0x%x, %v", be, err)
	}
	le, err := ReadLE[uint32](NewCursor(data), "le")
	if err != nil || le != 0x78563412 {
		t.Errorf("ReadLE = 0x%x, %v", le, err)
	}
	u16, err := ReadLE[uint16](NewCursor(data), "u16")
	if err != nil || u16 != 0x3412 {
		t.Errorf("ReadLE[uint16] = 0x%x, %v", u16, err)
	}
}

func TestCursor_NegativeLength(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	if _, err := c.Bytes(-1, "negative"); !errors.Is(err, types.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := c.Bytes(4, "past end"); !errors.Is(err, types.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}
