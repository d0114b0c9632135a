package flac

import (
	"io"

	"github.com/112RG/metasonic/internal/binary"
	"github.com/112RG/metasonic/internal/registry"
	"github.com/112RG/metasonic/internal/types"
	"github.com/112RG/metasonic/internal/vorbis"
)

// DefaultRegistry returns a registry with decoders for STREAMINFO and
// VORBIS_COMMENT. strictComments makes a malformed comment entry fail the
// whole VORBIS_COMMENT block instead of being skipped.
func DefaultRegistry(strictComments bool) *registry.Registry {
	r := registry.New()
	r.Register(types.BlockTypeStreamInfo, decodeStreamInfo)
	r.Register(types.BlockTypeVorbisComment, vorbis.NewDecoder(strictComments))
	return r
}

// Dispatched is the outcome of dispatching one block.
type Dispatched struct {
	// Block is the decoded block, or *types.Raw when no decoder is
	// registered or decoding failed.
	Block types.Block

	// Err is the block-local decode error, if any.
	Err error

	// Decoded reports whether a registered decoder produced Block.
	Decoded bool
}

// Dispatch reads exactly h.Length payload bytes from r and decodes them with
// the decoder registered for h.Type.
//
// The payload is consumed whatever the decode outcome, so the stream stays
// framed. The returned error is non-nil only when the payload could not be
// read; decode failures are reported in Dispatched.Err.
func Dispatch(r io.Reader, h Header, reg *registry.Registry, warn registry.WarnFunc) (Dispatched, error) {
	payload := make([]byte, h.Length)
	if err := binary.ReadFull(r, payload, h.Type.String()+" payload"); err != nil {
		return Dispatched{}, err
	}

	raw := &types.Raw{Tag: h.Type, Data: payload}

	decode, ok := reg.Lookup(h.Type)
	if !ok {
		return Dispatched{Block: raw}, nil
	}

	block, err := decode(payload, warn)
	if err != nil {
		return Dispatched{Block: raw, Err: err}, nil
	}
	if block == nil {
		return Dispatched{Block: raw}, nil
	}
	return Dispatched{Block: block, Decoded: true}, nil
}
