package binary

import (
	"fmt"

	"github.com/112RG/metasonic/internal/types"
)

// MaxFieldWidth is the widest field Bits can return.
const MaxFieldWidth = 64

// Bits returns the unsigned integer formed by the width bits of b starting at
// bit offset, most significant bit first. Fields may start at any bit and
// span any number of bytes.
//
// Reading past the end of b yields *types.OutOfBoundsError with Offset,
// Length and Size expressed in bits.
func Bits(b []byte, offset, width int) (uint64, error) {
	if width < 0 || width > MaxFieldWidth {
		return 0, fmt.Errorf("bit field width %d not in [0, %d]", width, MaxFieldWidth)
	}
	size := len(b) * 8
	if offset < 0 || offset > size || width > size-offset {
		return 0, &types.OutOfBoundsError{
			What:   fmt.Sprintf("%d-bit field", width),
			Offset: offset,
			Length: width,
			Size:   size,
		}
	}

	var v uint64
	for width > 0 {
		bit := offset % 8
		avail := 8 - bit
		n := min(avail, width)
		chunk := uint64(b[offset/8]>>(avail-n)) & (1<<n - 1)
		v = v<<n | chunk
		offset += n
		width -= n
	}
	return v, nil
}

// FieldReader reads consecutive bit fields with deferred error checking.
// After the first failure every read returns zero and Err reports the
// failure.
//
// Example:
//
//	fr := binary.NewFieldReader(payload)
//	rate := fr.Read(20, "sample rate")
//	channels := fr.Read(3, "channel count")
//	if err := fr.Err(); err != nil {
//		return err
//	}
type FieldReader struct {
	b   []byte
	pos int
	err error
}

// NewFieldReader creates a FieldReader positioned at bit 0 of b.
func NewFieldReader(b []byte) *FieldReader {
	return &FieldReader{b: b}
}

// Read returns the next width bits.
func (fr *FieldReader) Read(width int, what string) uint64 {
	if fr.err != nil {
		return 0
	}
	v, err := Bits(fr.b, fr.pos, width)
	if err != nil {
		fr.err = fmt.Errorf("%s: %w", what, err)
		return 0
	}
	fr.pos += width
	return v
}

// Bytes returns the next n whole bytes. The reader must be byte aligned.
func (fr *FieldReader) Bytes(n int, what string) []byte {
	if fr.err != nil {
		return nil
	}
	if fr.pos%8 != 0 {
		fr.err = fmt.Errorf("%s: reader not byte aligned (bit %d)", what, fr.pos)
		return nil
	}
	start := fr.pos / 8
	if n < 0 || n > len(fr.b)-start {
		fr.err = fmt.Errorf("%s: %w", what, &types.OutOfBoundsError{
			What:   what,
			Offset: start,
			Length: n,
			Size:   len(fr.b),
		})
		return nil
	}
	fr.pos += n * 8
	return fr.b[start : start+n]
}

// Pos returns the current bit offset.
func (fr *FieldReader) Pos() int {
	return fr.pos
}

// Err returns the first error encountered, if any.
func (fr *FieldReader) Err() error {
	return fr.err
}
