package flac

import (
	"io"

	"github.com/112RG/metasonic/internal/binary"
	"github.com/112RG/metasonic/internal/types"
)

// HeaderSize is the size of a metadata block header in bytes.
const HeaderSize = 4

// MaxBlockLength is the largest payload a block header can declare.
const MaxBlockLength = 1<<24 - 1

// Header is a metadata block header:
//
//	bit 0      last-metadata-block flag
//	bits 1-7   block type
//	bits 8-31  payload length in bytes (big-endian)
type Header struct {
	Length uint32
	Type   types.BlockType
	IsLast bool
}

// ReadHeader reads one block header from r. It never reads the payload.
//
// Every type value is accepted; reserved and invalid tags are reported as-is.
func ReadHeader(r io.Reader) (Header, error) {
	var b [HeaderSize]byte
	if err := binary.ReadFull(r, b[:], "metadata block header"); err != nil {
		return Header{}, err
	}
	return ParseHeader(b), nil
}

// ParseHeader decodes a header from its 4 bytes.
func ParseHeader(b [HeaderSize]byte) Header {
	fr := binary.NewFieldReader(b[:])
	// Widths sum to 32, so fr cannot fail.
	return Header{
		IsLast: fr.Read(1, "last-block flag") == 1,
		Type:   types.BlockType(fr.Read(7, "block type")),
		Length: uint32(fr.Read(24, "block length")),
	}
}
