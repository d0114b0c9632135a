package metasonic

import (
	"github.com/112RG/metasonic/internal/flac"
	"github.com/112RG/metasonic/internal/types"
)

// Option configures a parse.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	md, err := metasonic.Parse(ctx, r,
//	    metasonic.WithStrictComments(),
//	    metasonic.WithObserver(metasonic.NewSlogObserver(logger)),
//	)
type Option func(*parseOptions)

// parseOptions holds configuration for a single parse.
type parseOptions struct {
	observers       []Observer
	decoders        map[BlockType]Decoder
	maxMetadataSize int64
	strictParsing   bool // Fail on any block error or warning
	strictComments  bool // Fail a VORBIS_COMMENT block on a bad entry
	ignoreWarnings  bool // Drop all warnings
}

// defaultOptions returns the default configuration.
func defaultOptions() *parseOptions {
	return &parseOptions{
		maxMetadataSize: flac.DefaultMaxMetadataSize,
	}
}

func applyOptions(opts []Option) *parseOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// streamConfig builds the decoder configuration for one stream.
func (o *parseOptions) streamConfig() flac.Config {
	reg := flac.DefaultRegistry(o.strictComments)
	for t, d := range o.decoders {
		reg.Register(t, d)
	}

	var observer types.Observer
	switch len(o.observers) {
	case 0:
	case 1:
		observer = o.observers[0]
	default:
		observer = MultiObserver(o.observers...)
	}

	limit := o.maxMetadataSize
	if limit == 0 {
		limit = -1
	}

	return flac.Config{
		Registry:        reg,
		Observer:        observer,
		MaxMetadataSize: limit,
		Strict:          o.strictParsing,
	}
}

// WithObserver adds an observer that receives parse events.
//
// It may be given several times; every observer sees every event, in the
// order the options were given.
func WithObserver(obs Observer) Option {
	return func(o *parseOptions) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithStrictParsing treats any block error or warning as a fatal error.
//
// By default, metasonic keeps going when a recognized block fails to decode:
// the block is returned as *Raw and the failure is recorded in
// Metadata.Errors. With strict parsing enabled, the first such failure stops
// the parse, and a parse that produced warnings returns an error.
func WithStrictParsing() Option {
	return func(o *parseOptions) {
		o.strictParsing = true
	}
}

// WithStrictComments fails a VORBIS_COMMENT block when one of its entries is
// not valid UTF-8 or lacks '='. By default such entries are skipped with a
// warning.
func WithStrictComments() Option {
	return func(o *parseOptions) {
		o.strictComments = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Observers still receive warning events; only Metadata.Warnings is
// cleared.
func WithIgnoreWarnings() Option {
	return func(o *parseOptions) {
		o.ignoreWarnings = true
	}
}

// WithMaxMetadataSize caps the total declared payload size of all blocks.
//
// A block whose declared length would push the total past the limit fails
// the parse with ErrMetadataTooLarge before its payload is allocated.
// Default is 64 MiB; 0 disables the limit.
func WithMaxMetadataSize(bytes int64) Option {
	return func(o *parseOptions) {
		o.maxMetadataSize = bytes
	}
}

// WithDecoder registers d for block type t, replacing the built-in decoder
// if there is one. A nil d makes blocks of type t decode as *Raw.
//
// Example:
//
//	metasonic.WithDecoder(metasonic.BlockTypePadding,
//	    func(p []byte, warn metasonic.WarnFunc) (metasonic.Block, error) {
//	        return &Padding{Size: len(p)}, nil
//	    })
func WithDecoder(t BlockType, d Decoder) Option {
	return func(o *parseOptions) {
		if o.decoders == nil {
			o.decoders = make(map[BlockType]Decoder)
		}
		o.decoders[t] = d
	}
}
