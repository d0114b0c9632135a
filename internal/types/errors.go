package types

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches one of these with
// errors.Is.
var (
	ErrTruncated        = errors.New("truncated stream")
	ErrInvalidMarker    = errors.New("invalid FLAC marker")
	ErrMalformedBlock   = errors.New("malformed block")
	ErrInvalidUTF8      = errors.New("invalid UTF-8")
	ErrOutOfBounds      = errors.New("out of bounds")
	ErrMetadataTooLarge = errors.New("metadata exceeds size limit")
)

// TruncatedError is returned when the stream ends before a fixed-size read
// completes.
type TruncatedError struct {
	What string
	Want int
	Got  int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated stream while reading %s: got %d of %d bytes", e.What, e.Got, e.Want)
}

// Is reports whether target is ErrTruncated.
func (e *TruncatedError) Is(target error) bool { return target == ErrTruncated }

// IOError wraps a failure of the underlying reader.
type IOError struct {
	What string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.What, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// OutOfBoundsError is returned when a declared length or offset exceeds the
// bytes available.
type OutOfBoundsError struct {
	What   string
	Offset int // bytes, or bits for bit fields
	Length int
	Size   int
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("offset %d out of bounds (size: %d) while reading %s",
			e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("read of %d at offset %d would exceed size %d while reading %s",
		e.Length, e.Offset, e.Size, e.What)
}

// Is reports whether target is ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// MalformedBlockError is returned when a payload violates the fixed layout
// of its block type.
type MalformedBlockError struct {
	Reason string
	Type   BlockType
}

func (e *MalformedBlockError) Error() string {
	return fmt.Sprintf("malformed %s block: %s", e.Type, e.Reason)
}

// Is reports whether target is ErrMalformedBlock.
func (e *MalformedBlockError) Is(target error) bool { return target == ErrMalformedBlock }

// UTF8Error is returned when a declared text span is not valid UTF-8.
type UTF8Error struct {
	What   string
	Offset int
}

func (e *UTF8Error) Error() string {
	return fmt.Sprintf("invalid UTF-8 in %s at offset %d", e.What, e.Offset)
}

// Is reports whether target is ErrInvalidUTF8.
func (e *UTF8Error) Is(target error) bool { return target == ErrInvalidUTF8 }

// Stages at which a block can fail.
const (
	StageHeader  = "header"  // the 4-byte block header could not be read
	StagePayload = "payload" // the declared payload could not be read
	StageDecode  = "decode"  // the payload was read but did not decode
)

// BlockError attributes a failure to a metadata block.
//
// Index is the zero-based position of the block in the stream and Offset the
// stream offset of its header. Type is meaningless when Stage is
// StageHeader.
type BlockError struct {
	Err    error
	Stage  string
	Offset int64
	Index  int
	Type   BlockType
}

func (e *BlockError) Error() string {
	if e.Stage == StageHeader {
		return fmt.Sprintf("block %d header at offset %d: %v", e.Index, e.Offset, e.Err)
	}
	return fmt.Sprintf("block %d (%s) %s at offset %d: %v", e.Index, e.Type, e.Stage, e.Offset, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent metadata extraction but
// may indicate corrupted or unusual data. Examples include:
//   - A Vorbis comment entry without '='
//   - A first block that is not STREAMINFO
//   - A stream that ends without a last-block flag
type Warning struct {
	// Stage where the warning occurred
	Stage string // "stream", "streaminfo", "vorbis_comment"

	// Warning message
	Message string

	// Stream offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
