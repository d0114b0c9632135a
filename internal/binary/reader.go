// Package binary provides bounds-checked binary reading primitives for
// metadata payloads and the underlying stream.
package binary

import (
	"errors"
	"io"

	"github.com/112RG/metasonic/internal/types"
)

// ReadFull fills b from r.
//
// A stream that ends early yields *types.TruncatedError carrying the number
// of bytes that were read; any other failure yields *types.IOError.
func ReadFull(r io.Reader, b []byte, what string) error {
	n, err := io.ReadFull(r, b)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &types.TruncatedError{What: what, Want: len(b), Got: n}
	default:
		return &types.IOError{What: what, Err: err}
	}
}

// Cursor provides sequential reading over a byte slice with automatic
// offset tracking. Every read is checked against the slice length.
type Cursor struct {
	b      []byte
	offset int
}

// NewCursor creates a Cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Offset returns the current offset.
func (c *Cursor) Offset() int {
	return c.offset
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.b) - c.offset
}

// Bytes returns the next n bytes and advances the offset. The returned slice
// aliases the underlying buffer.
func (c *Cursor) Bytes(n int, what string) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, &types.OutOfBoundsError{
			What:   what,
			Offset: c.offset,
			Length: n,
			Size:   len(c.b),
		}
	}
	out := c.b[c.offset : c.offset+n : c.offset+n]
	c.offset += n
	return out, nil
}
