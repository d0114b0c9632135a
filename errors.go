package metasonic

import (
	"github.com/112RG/metasonic/internal/types"
)

// Sentinel errors, re-exported from internal/types. Match them with
// errors.Is.
var (
	ErrTruncated        = types.ErrTruncated
	ErrInvalidMarker    = types.ErrInvalidMarker
	ErrMalformedBlock   = types.ErrMalformedBlock
	ErrInvalidUTF8      = types.ErrInvalidUTF8
	ErrOutOfBounds      = types.ErrOutOfBounds
	ErrMetadataTooLarge = types.ErrMetadataTooLarge
)

// TruncatedError is an alias to types.TruncatedError.
// Re-exporting from internal/types to maintain public API.
type TruncatedError = types.TruncatedError

// IOError is an alias to types.IOError.
// Re-exporting from internal/types to maintain public API.
type IOError = types.IOError

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to maintain public API.
type OutOfBoundsError = types.OutOfBoundsError

// MalformedBlockError is an alias to types.MalformedBlockError.
// Re-exporting from internal/types to maintain public API.
type MalformedBlockError = types.MalformedBlockError

// UTF8Error is an alias to types.UTF8Error.
// Re-exporting from internal/types to maintain public API.
type UTF8Error = types.UTF8Error

// BlockError is an alias to types.BlockError.
// Re-exporting from internal/types to maintain public API.
type BlockError = types.BlockError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning

// Block failure stages, see BlockError.Stage.
const (
	StageHeader  = types.StageHeader
	StagePayload = types.StagePayload
	StageDecode  = types.StageDecode
)
