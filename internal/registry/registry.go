// Package registry maps metadata block types to payload decoders.
package registry

import (
	"github.com/112RG/metasonic/internal/types"
)

// WarnFunc records a non-fatal problem found while decoding a payload.
type WarnFunc func(msg string)

// Decoder decodes the payload of one metadata block.
//
// The payload is exactly the block's declared length. A returned error is
// block-local: the caller keeps the payload as *types.Raw and moves on.
type Decoder func(payload []byte, warn WarnFunc) (types.Block, error)

// Registry maps block types to decoders. Types without a decoder are kept
// as raw blocks.
//
// A Registry is not safe for concurrent modification; build it before
// parsing and treat it as read-only afterwards.
type Registry struct {
	decoders map[types.BlockType]Decoder
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{decoders: make(map[types.BlockType]Decoder)}
}

// Register sets the decoder for a block type, replacing any previous one.
// A nil decoder removes the registration.
func (r *Registry) Register(t types.BlockType, d Decoder) {
	if d == nil {
		delete(r.decoders, t)
		return
	}
	r.decoders[t] = d
}

// Lookup returns the decoder for a block type.
func (r *Registry) Lookup(t types.BlockType) (Decoder, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.decoders[t]
	return d, ok
}
