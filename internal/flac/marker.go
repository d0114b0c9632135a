// Package flac decodes the metadata region of a FLAC stream: the "fLaC"
// marker followed by metadata blocks up to the one carrying the last-block
// flag.
package flac

import (
	"bytes"
	"io"

	"github.com/112RG/metasonic/internal/binary"
	"github.com/112RG/metasonic/internal/types"
)

// Marker is the signature at the start of every FLAC stream.
var Marker = [4]byte{0x66, 0x4C, 0x61, 0x43} // "fLaC"

// ValidateMarker reads 4 bytes from r and checks them against Marker.
//
// It returns types.ErrInvalidMarker on a mismatch, *types.TruncatedError if
// fewer than 4 bytes are available and *types.IOError on a read failure.
func ValidateMarker(r io.Reader) error {
	var magic [4]byte
	if err := binary.ReadFull(r, magic[:], "FLAC marker"); err != nil {
		return err
	}
	if !bytes.Equal(magic[:], Marker[:]) {
		return types.ErrInvalidMarker
	}
	return nil
}
