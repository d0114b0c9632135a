package flac

import (
	"bytes"
	"errors"
	"testing"

	"github.com/112RG/metasonic/internal/types"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name  string
		bytes [4]byte
		want  Header
	}{
		{"streaminfo", [4]byte{0x00, 0x00, 0x00, 0x22}, Header{Type: types.BlockTypeStreamInfo, Length: 34}},
		{"last vorbis comment", [4]byte{0x84, 0x00, 0x01, 0x00}, Header{Type: types.BlockTypeVorbisComment, Length: 256, IsLast: true}},
		{"picture 24-bit length", [4]byte{0x06, 0x12, 0x34, 0x56}, Header{Type: types.BlockTypePicture, Length: 0x123456}},
		{"max length", [4]byte{0x81, 0xFF, 0xFF, 0xFF}, Header{Type: types.BlockTypePadding, Length: MaxBlockLength, IsLast: true}},
		{"reserved tag", [4]byte{0x0A, 0x00, 0x00, 0x05}, Header{Type: types.BlockType(10), Length: 5}},
		{"invalid tag not last", [4]byte{0x7F, 0x00, 0x00, 0x00}, Header{Type: types.BlockTypeInvalid}},
		{"invalid tag last", [4]byte{0xFF, 0x00, 0x00, 0x00}, Header{Type: types.BlockTypeInvalid, IsLast: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseHeader(tt.bytes); got != tt.want {
				t.Errorf("ParseHeader(% x) = %+v, want %+v", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestParseHeader_LastFlagNeverLeaksIntoType(t *testing.T) {
	for v := 0; v < 256; v++ {
		h := ParseHeader([4]byte{byte(v), 0, 0, 0})
		if uint8(h.Type) > 127 {
			t.Fatalf("byte 0x%02x produced type %d", v, h.Type)
		}
		if h.IsLast != (v >= 0x80) {
			t.Fatalf("byte 0x%02x: IsLast = %v", v, h.IsLast)
		}
	}
}

func TestReadHeader(t *testing.T) {
	r := bytes.NewReader([]byte{0x84, 0x00, 0x00, 0x10, 0xAA})
	h, err := ReadHeader(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Type != types.BlockTypeVorbisComment || h.Length != 16 || !h.IsLast {
		t.Errorf("ReadHeader() = %+v", h)
	}
	if r.Len() != 1 {
		t.Errorf("ReadHeader consumed payload bytes: %d left, want 1", r.Len())
	}
}

func TestReadHeader_Truncated(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader([]byte{0x00, 0x00}))
	var te *types.TruncatedError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TruncatedError, got %v", err)
	}
	if te.Got != 2 || te.Want != HeaderSize {
		t.Errorf("Got/Want = %d/%d, want 2/%d", te.Got, te.Want, HeaderSize)
	}
}
