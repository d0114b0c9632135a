package flac

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/112RG/metasonic/internal/types"
)

func TestValidateMarker(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		target error
	}{
		{"valid", []byte{0x66, 0x4C, 0x61, 0x43}, nil},
		{"valid with trailing data", []byte("fLaC\x00\x00\x00\x22"), nil},
		{"wrong case", []byte("flac"), types.ErrInvalidMarker},
		{"ogg", []byte("OggS"), types.ErrInvalidMarker},
		{"id3 prefix", []byte("ID3\x04"), types.ErrInvalidMarker},
		{"empty", nil, types.ErrTruncated},
		{"three bytes", []byte("fLa"), types.ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMarker(bytes.NewReader(tt.data))
			if tt.target == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("ValidateMarker() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestValidateMarker_ConsumesFourBytes(t *testing.T) {
	for _, data := range [][]byte{[]byte("fLaCrest"), []byte("OggSrest")} {
		r := bytes.NewReader(data)
		_ = ValidateMarker(r)
		if r.Len() != 4 {
			t.Errorf("%q: %d bytes left, want 4", data, r.Len())
		}
	}
}

func TestValidateMarker_IOError(t *testing.T) {
	cause := errors.New("mock I/O error")
	err := ValidateMarker(iotest.ErrReader(cause))

	var ioErr *types.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T (%v)", err, err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error should wrap the cause: %v", err)
	}
}
