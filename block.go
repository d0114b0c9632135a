package metasonic

import (
	"github.com/112RG/metasonic/internal/registry"
	"github.com/112RG/metasonic/internal/types"
)

// BlockType is an alias to types.BlockType.
// Re-exporting from internal/types to maintain public API.
type BlockType = types.BlockType

// Re-export the block type constants.
const (
	BlockTypeStreamInfo    = types.BlockTypeStreamInfo
	BlockTypePadding       = types.BlockTypePadding
	BlockTypeApplication   = types.BlockTypeApplication
	BlockTypeSeekTable     = types.BlockTypeSeekTable
	BlockTypeVorbisComment = types.BlockTypeVorbisComment
	BlockTypeCueSheet      = types.BlockTypeCueSheet
	BlockTypePicture       = types.BlockTypePicture
	BlockTypeInvalid       = types.BlockTypeInvalid
)

// Block is a decoded metadata block: *StreamInfo, *VorbisComment, *Raw, or
// a type produced by a decoder registered with WithDecoder.
type Block = types.Block

// StreamInfo holds the global audio parameters of a stream.
type StreamInfo = types.StreamInfo

// VorbisComment holds the vendor string and tags of a VORBIS_COMMENT block.
type VorbisComment = types.VorbisComment

// Comments is the insertion-ordered, case-insensitive tag multimap.
type Comments = types.Comments

// Raw is an undecoded block.
type Raw = types.Raw

// Metadata is the result of a parse: blocks in stream order plus block-local
// errors and warnings.
type Metadata = types.Metadata

// Decoder decodes the payload of one block type. See WithDecoder.
type Decoder = registry.Decoder

// WarnFunc lets a Decoder report non-fatal problems.
type WarnFunc = registry.WarnFunc

// NewComments returns an empty Comments, for use by custom decoders.
func NewComments() *Comments {
	return types.NewComments()
}
