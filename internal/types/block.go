// Package types provides the core data structures produced by the FLAC
// metadata decoder.
//
// This package defines the Block variants (StreamInfo, VorbisComment, Raw),
// the BlockType tag space, the Metadata result and the error taxonomy shared
// by every decoder.
package types

import (
	"fmt"
	"math"
	"time"
)

// BlockType is the 7-bit metadata block type tag.
//
// Values 0-6 are defined by the FLAC format. Values 7-126 are reserved and
// 127 is invalid; both are carried as-is so that streams containing them can
// still be traversed.
type BlockType uint8

// Metadata block types.
const (
	BlockTypeStreamInfo    BlockType = 0
	BlockTypePadding       BlockType = 1
	BlockTypeApplication   BlockType = 2
	BlockTypeSeekTable     BlockType = 3
	BlockTypeVorbisComment BlockType = 4
	BlockTypeCueSheet      BlockType = 5
	BlockTypePicture       BlockType = 6
	BlockTypeInvalid       BlockType = 127
)

var blockTypeNames = [...]string{
	BlockTypeStreamInfo:    "STREAMINFO",
	BlockTypePadding:       "PADDING",
	BlockTypeApplication:   "APPLICATION",
	BlockTypeSeekTable:     "SEEKTABLE",
	BlockTypeVorbisComment: "VORBIS_COMMENT",
	BlockTypeCueSheet:      "CUESHEET",
	BlockTypePicture:       "PICTURE",
}

// String returns the FLAC name of the block type.
func (t BlockType) String() string {
	switch {
	case int(t) < len(blockTypeNames):
		return blockTypeNames[t]
	case t == BlockTypeInvalid:
		return "INVALID"
	default:
		return fmt.Sprintf("RESERVED(%d)", uint8(t))
	}
}

// IsReserved reports whether t falls outside the defined types (7-127).
func (t BlockType) IsReserved() bool {
	return int(t) >= len(blockTypeNames)
}

// Block is a decoded metadata block.
//
// The concrete type is one of *StreamInfo, *VorbisComment or *Raw, or a
// caller-provided type returned by a registered decoder.
type Block interface {
	Type() BlockType
}

// StreamInfo holds the global audio parameters of a FLAC stream.
//
// Values are reported as stored; out-of-range sample rates, channel counts
// and bit depths are not rejected.
type StreamInfo struct {
	MinBlockSize uint16 // samples
	MaxBlockSize uint16 // samples
	MinFrameSize uint32 // bytes, 0 = unknown
	MaxFrameSize uint32 // bytes, 0 = unknown
	SampleRate   uint32 // Hz
	Channels     uint8
	BitDepth     uint8
	TotalSamples uint64 // inter-channel samples, 0 = unknown

	// MD5 of the unencoded audio; opaque, not validated.
	MD5 [16]byte
}

// Type implements Block.
func (*StreamInfo) Type() BlockType { return BlockTypeStreamInfo }

// Duration returns the stream length, or zero when either the sample rate or
// the sample count is unknown.
func (s *StreamInfo) Duration() time.Duration {
	if s.SampleRate == 0 || s.TotalSamples == 0 {
		return 0
	}
	secs := s.TotalSamples / uint64(s.SampleRate)
	rem := s.TotalSamples % uint64(s.SampleRate)
	frac := time.Duration(rem) * time.Second / time.Duration(s.SampleRate)

	// Saturate rather than wrap for very low sample rates.
	if secs > uint64((math.MaxInt64-frac)/time.Second) {
		return math.MaxInt64
	}
	return time.Duration(secs)*time.Second + frac
}

// VorbisComment holds a VORBIS_COMMENT block.
type VorbisComment struct {
	Vendor   string
	Comments *Comments
}

// Type implements Block.
func (*VorbisComment) Type() BlockType { return BlockTypeVorbisComment }

// Raw is an undecoded block: a type without a registered decoder, a
// reserved tag, or a recognized block whose payload failed to decode.
type Raw struct {
	Tag  BlockType
	Data []byte
}

// Type implements Block.
func (r *Raw) Type() BlockType { return r.Tag }

// Metadata is the result of parsing the metadata region of one stream.
type Metadata struct {
	// Blocks in stream order.
	Blocks []Block

	// Block-local decode failures. The failed block is present in Blocks
	// as *Raw.
	Errors []*BlockError

	// Warnings encountered during parsing (non-fatal issues).
	Warnings []Warning
}

// StreamInfo returns the first STREAMINFO block, or nil.
func (m *Metadata) StreamInfo() *StreamInfo {
	for _, b := range m.Blocks {
		if si, ok := b.(*StreamInfo); ok {
			return si
		}
	}
	return nil
}

// VorbisComment returns the first decoded VORBIS_COMMENT block, or nil.
func (m *Metadata) VorbisComment() *VorbisComment {
	for _, b := range m.Blocks {
		if vc, ok := b.(*VorbisComment); ok {
			return vc
		}
	}
	return nil
}

// Raw returns every undecoded block with the given tag.
func (m *Metadata) Raw(t BlockType) []*Raw {
	var out []*Raw
	for _, b := range m.Blocks {
		if r, ok := b.(*Raw); ok && r.Tag == t {
			out = append(out, r)
		}
	}
	return out
}
