// Package vorbis decodes Vorbis comment payloads.
//
// A Vorbis comment is a vendor string followed by a list of UTF-8
// "KEY=VALUE" entries. All lengths are 32-bit little-endian, unlike the
// big-endian FLAC framing around them.
package vorbis

import (
	"fmt"
	"unicode/utf8"

	"github.com/112RG/metasonic/internal/binary"
	"github.com/112RG/metasonic/internal/registry"
	"github.com/112RG/metasonic/internal/types"
)

// ParseComment splits a single comment on its first '='.
//
// Field names are case-insensitive; the returned key is upper-cased. The
// value is returned verbatim and may itself contain '='.
//
// Returns an error if the comment is not in "KEY=VALUE" format.
func ParseComment(comment string) (key, value string, err error) {
	eq := -1
	for i := 0; i < len(comment); i++ {
		if comment[i] == '=' {
			eq = i
			break
		}
	}
	if eq == -1 {
		return "", "", fmt.Errorf("missing '=' in comment: %q", comment)
	}
	return types.NormalizeKey(comment[:eq]), comment[eq+1:], nil
}

// Decode decodes a VORBIS_COMMENT payload.
//
// Length prefixes that overrun the payload and an invalid vendor string
// fail the whole block. A single entry that is not UTF-8 or has no '=' is
// skipped and reported through warn, unless strict is set, in which case it
// fails the block too.
func Decode(payload []byte, strict bool, warn registry.WarnFunc) (*types.VorbisComment, error) {
	if warn == nil {
		warn = func(string) {}
	}
	c := binary.NewCursor(payload)

	vendorLength, err := binary.ReadLE[uint32](c, "vendor string length")
	if err != nil {
		return nil, err
	}
	vendorOffset := c.Offset()
	vendor, err := c.Bytes(int(vendorLength), "vendor string")
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(vendor) {
		return nil, &types.UTF8Error{What: "vendor string", Offset: vendorOffset}
	}

	numComments, err := binary.ReadLE[uint32](c, "number of comments")
	if err != nil {
		return nil, err
	}

	vc := &types.VorbisComment{
		Vendor:   string(vendor),
		Comments: types.NewComments(),
	}

	for i := uint32(0); i < numComments; i++ {
		commentLength, err := binary.ReadLE[uint32](c, "comment length")
		if err != nil {
			return nil, fmt.Errorf("comment %d: %w", i, err)
		}
		offset := c.Offset()
		data, err := c.Bytes(int(commentLength), "comment")
		if err != nil {
			return nil, fmt.Errorf("comment %d: %w", i, err)
		}

		if !utf8.Valid(data) {
			uerr := &types.UTF8Error{What: fmt.Sprintf("comment %d", i), Offset: offset}
			if strict {
				return nil, uerr
			}
			warn(fmt.Sprintf("skipped comment: %v", uerr))
			continue
		}

		key, value, err := ParseComment(string(data))
		if err != nil {
			if strict {
				return nil, &types.MalformedBlockError{
					Type:   types.BlockTypeVorbisComment,
					Reason: fmt.Sprintf("comment %d: %v", i, err),
				}
			}
			warn(fmt.Sprintf("skipped comment %d: %v", i, err))
			continue
		}
		vc.Comments.Add(key, value)
	}

	if n := c.Remaining(); n > 0 {
		warn(fmt.Sprintf("%d trailing bytes after last comment", n))
	}

	return vc, nil
}

// NewDecoder returns a registry decoder for VORBIS_COMMENT blocks.
func NewDecoder(strict bool) registry.Decoder {
	return func(payload []byte, warn registry.WarnFunc) (types.Block, error) {
		vc, err := Decode(payload, strict, warn)
		if err != nil {
			return nil, err
		}
		return vc, nil
	}
}
