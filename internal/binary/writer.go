package binary

import (
	"encoding/binary"
)

// FieldWriter packs bit fields most significant bit first, the inverse of
// FieldReader. It is used to build metadata payloads in tests and tools.
type FieldWriter struct {
	buf   []byte
	nbits int
}

// NewFieldWriter creates an empty FieldWriter.
func NewFieldWriter() *FieldWriter {
	return &FieldWriter{}
}

// Write appends the low width bits of v. Widths above 64 are clamped.
func (fw *FieldWriter) Write(v uint64, width int) {
	width = min(width, MaxFieldWidth)
	for i := width - 1; i >= 0; i-- {
		if fw.nbits%8 == 0 {
			fw.buf = append(fw.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			fw.buf[len(fw.buf)-1] |= 0x80 >> uint(fw.nbits%8)
		}
		fw.nbits++
	}
}

// WriteBytes appends b, padding any partial byte with zero bits first.
func (fw *FieldWriter) WriteBytes(b []byte) {
	fw.nbits = len(fw.buf) * 8
	fw.buf = append(fw.buf, b...)
	fw.nbits += len(b) * 8
}

// WriteLE appends v as a little-endian uint32 on a byte boundary.
func (fw *FieldWriter) WriteLE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	fw.WriteBytes(b[:])
}

// Bits returns the number of bits written.
func (fw *FieldWriter) Bits() int {
	return fw.nbits
}

// Bytes returns the packed bytes. A trailing partial byte is zero padded.
func (fw *FieldWriter) Bytes() []byte {
	return fw.buf
}
