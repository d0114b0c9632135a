// Package flactest builds synthetic FLAC metadata streams for tests.
package flactest

import (
	"bytes"

	"github.com/112RG/metasonic/internal/binary"
	"github.com/112RG/metasonic/internal/types"
)

// Reference holds the STREAMINFO values of a 48 kHz, 16-bit stereo
// reference file.
var Reference = types.StreamInfo{
	MinBlockSize: 4608,
	MaxBlockSize: 4608,
	MinFrameSize: 783,
	MaxFrameSize: 4744,
	SampleRate:   48000,
	Channels:     2,
	BitDepth:     16,
	TotalSamples: 68546,
}

// Header returns a 4-byte metadata block header.
func Header(t types.BlockType, length int, last bool) []byte {
	b0 := byte(t) & 0x7F
	if last {
		b0 |= 0x80
	}
	return []byte{b0, byte(length >> 16), byte(length >> 8), byte(length)}
}

// StreamInfoPayload packs si into a 34-byte STREAMINFO payload. Channels and
// BitDepth are stored minus one, as in the format.
func StreamInfoPayload(si types.StreamInfo) []byte {
	fw := binary.NewFieldWriter()
	fw.Write(uint64(si.MinBlockSize), 16)
	fw.Write(uint64(si.MaxBlockSize), 16)
	fw.Write(uint64(si.MinFrameSize), 24)
	fw.Write(uint64(si.MaxFrameSize), 24)
	fw.Write(uint64(si.SampleRate), 20)
	fw.Write(uint64(si.Channels-1), 3)
	fw.Write(uint64(si.BitDepth-1), 5)
	fw.Write(si.TotalSamples, 36)
	fw.WriteBytes(si.MD5[:])
	return fw.Bytes()
}

// VorbisCommentPayload builds a VORBIS_COMMENT payload from raw entries.
func VorbisCommentPayload(vendor string, entries ...string) []byte {
	fw := binary.NewFieldWriter()
	fw.WriteLE(uint32(len(vendor)))
	fw.WriteBytes([]byte(vendor))
	fw.WriteLE(uint32(len(entries)))
	for _, e := range entries {
		fw.WriteLE(uint32(len(e)))
		fw.WriteBytes([]byte(e))
	}
	return fw.Bytes()
}

// Builder assembles a metadata stream block by block.
type Builder struct {
	buf bytes.Buffer
}

// New returns a Builder that has written the "fLaC" marker.
func New() *Builder {
	b := &Builder{}
	b.buf.WriteString("fLaC")
	return b
}

// Block appends a block with an arbitrary payload.
func (b *Builder) Block(t types.BlockType, payload []byte, last bool) *Builder {
	b.buf.Write(Header(t, len(payload), last))
	b.buf.Write(payload)
	return b
}

// StreamInfo appends a STREAMINFO block.
func (b *Builder) StreamInfo(si types.StreamInfo, last bool) *Builder {
	return b.Block(types.BlockTypeStreamInfo, StreamInfoPayload(si), last)
}

// VorbisComment appends a VORBIS_COMMENT block.
func (b *Builder) VorbisComment(vendor string, entries []string, last bool) *Builder {
	return b.Block(types.BlockTypeVorbisComment, VorbisCommentPayload(vendor, entries...), last)
}

// Raw appends arbitrary bytes, such as a torn header.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// Bytes returns the stream built so far.
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}
