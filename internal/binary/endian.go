package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian uses big-endian byte order.
	// Used by: FLAC block headers and STREAMINFO.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order.
	// Used by: Vorbis comment length prefixes.
	LittleEndian
)

// ReadLE reads a value of type T from c using little-endian byte order.
//
// Example:
//
//	length, err := binary.ReadLE[uint32](c, "vendor string length")
func ReadLE[T uint8 | uint16 | uint32 | uint64](c *Cursor, what string) (T, error) {
	return ReadEndian[T](c, what, LittleEndian)
}

// ReadEndian reads a value of type T from c with the given byte order and
// advances the cursor.
func ReadEndian[T uint8 | uint16 | uint32 | uint64](c *Cursor, what string, endian Endianness) (T, error) {
	var zero T
	var size int

	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	buf, err := c.Bytes(size, what)
	if err != nil {
		return zero, err
	}

	order := binary.ByteOrder(binary.BigEndian)
	if endian == LittleEndian {
		order = binary.LittleEndian
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		val = T(order.Uint16(buf))
	case uint32:
		val = T(order.Uint32(buf))
	case uint64:
		val = T(order.Uint64(buf))
	}

	return val, nil
}
