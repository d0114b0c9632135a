package flac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/112RG/metasonic/internal/registry"
	"github.com/112RG/metasonic/internal/types"
)

// DefaultMaxMetadataSize bounds the sum of declared payload lengths.
const DefaultMaxMetadataSize = 64 << 20

// State is the position of a Stream in its state machine.
type State int

// Stream states. Done and Failed are terminal.
const (
	StateStart State = iota
	StateReadingBlocks
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateReadingBlocks:
		return "reading_blocks"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config controls a Stream. The zero value uses DefaultRegistry(false), no
// observer and DefaultMaxMetadataSize.
type Config struct {
	// Registry maps block types to decoders.
	Registry *registry.Registry

	// Observer receives events as blocks are processed.
	Observer types.Observer

	// MaxMetadataSize caps the sum of payload lengths. Negative disables
	// the limit.
	MaxMetadataSize int64

	// Strict makes the first block-local decode error fatal.
	Strict bool
}

// Stream iterates over the metadata blocks of a FLAC stream.
//
// A Stream reads sequentially from its reader and never seeks. Each call to
// Next consumes one block header and its full declared payload.
type Stream struct {
	r        io.Reader
	reg      *registry.Registry
	observer types.Observer
	err      error
	errors   []*types.BlockError
	warnings []types.Warning
	offset   int64
	total    int64
	limit    int64
	index    int
	state    State
	strict   bool
}

// NewStream creates a Stream reading from r.
func NewStream(r io.Reader, cfg Config) *Stream {
	s := &Stream{
		r:        r,
		reg:      cfg.Registry,
		observer: cfg.Observer,
		limit:    cfg.MaxMetadataSize,
		strict:   cfg.Strict,
	}
	if s.reg == nil {
		s.reg = DefaultRegistry(false)
	}
	if s.observer == nil {
		s.observer = types.NopObserver{}
	}
	if s.limit == 0 {
		s.limit = DefaultMaxMetadataSize
	}
	return s
}

// State returns the current state.
func (s *Stream) State() State { return s.state }

// Offset returns the number of stream bytes consumed so far.
func (s *Stream) Offset() int64 { return s.offset }

// Errors returns the block-local errors recorded so far.
func (s *Stream) Errors() []*types.BlockError { return s.errors }

// Warnings returns the warnings recorded so far.
func (s *Stream) Warnings() []types.Warning { return s.warnings }

// Err returns the fatal error once the stream has failed.
func (s *Stream) Err() error { return s.err }

// Next returns the next block.
//
// It returns io.EOF once the block carrying the last-block flag has been
// returned, or when the stream ends cleanly on a header boundary. Any other
// error is fatal and is returned again by every later call. A block whose
// payload failed to decode is returned as *types.Raw with a nil error; the
// failure is recorded in Errors.
//
// ctx is checked before each block, not while a block is being read.
func (s *Stream) Next(ctx context.Context) (types.Block, error) {
	switch s.state {
	case StateDone:
		return nil, io.EOF
	case StateFailed:
		return nil, s.err
	}

	if err := ctx.Err(); err != nil {
		return nil, s.fail(err)
	}

	if s.state == StateStart {
		if err := ValidateMarker(s.r); err != nil {
			return nil, s.fail(fmt.Errorf("FLAC marker: %w", err))
		}
		s.offset = int64(len(Marker))
		s.state = StateReadingBlocks
	}

	headerOffset := s.offset
	h, err := ReadHeader(s.r)
	if err != nil {
		var te *types.TruncatedError
		if errors.As(err, &te) && te.Got == 0 {
			s.warn(types.Warning{
				Stage:   "stream",
				Message: "stream ended without a last-block flag",
				Offset:  headerOffset,
			})
			s.finish()
			return nil, io.EOF
		}
		return nil, s.fail(&types.BlockError{
			Index:  s.index,
			Stage:  types.StageHeader,
			Offset: headerOffset,
			Err:    err,
		})
	}
	s.offset += HeaderSize

	blockErr := func(stage string, err error) *types.BlockError {
		return &types.BlockError{
			Index:  s.index,
			Type:   h.Type,
			Stage:  stage,
			Offset: headerOffset,
			Err:    err,
		}
	}

	if s.limit > 0 && s.total+int64(h.Length) > s.limit {
		return nil, s.fail(blockErr(types.StagePayload, fmt.Errorf("%w: %d bytes declared after %d, limit %d",
			types.ErrMetadataTooLarge, h.Length, s.total, s.limit)))
	}
	s.total += int64(h.Length)

	if s.index == 0 && h.Type != types.BlockTypeStreamInfo {
		s.warn(types.Warning{
			Stage:   "stream",
			Message: fmt.Sprintf("first block is %s, not STREAMINFO", h.Type),
			Offset:  headerOffset,
		})
	}

	payloadOffset := s.offset
	stage := strings.ToLower(h.Type.String())
	warn := func(msg string) {
		s.warn(types.Warning{Stage: stage, Message: msg, Offset: payloadOffset})
	}

	d, err := Dispatch(s.r, h, s.reg, warn)
	if err != nil {
		return nil, s.fail(blockErr(types.StagePayload, err))
	}
	s.offset += int64(h.Length)

	event := types.Event{
		Index:  s.index,
		Type:   h.Type,
		Offset: headerOffset,
		Size:   int(h.Length),
		Block:  d.Block,
	}
	switch {
	case d.Err != nil:
		be := blockErr(types.StageDecode, d.Err)
		if s.strict {
			return nil, s.fail(be)
		}
		s.errors = append(s.errors, be)
		event.Kind = types.EventBlockFailed
		event.Err = be
	case d.Decoded:
		event.Kind = types.EventBlockDecoded
	default:
		event.Kind = types.EventBlockSkipped
	}
	s.observer.OnEvent(event)

	s.index++
	if h.IsLast {
		s.finish()
	}
	return d.Block, nil
}

// Blocks returns an iterator over the remaining blocks. A fatal error is
// yielded once with a nil block, after which iteration stops.
func (s *Stream) Blocks(ctx context.Context) iter.Seq2[types.Block, error] {
	return func(yield func(types.Block, error) bool) {
		for {
			b, err := s.Next(ctx)
			if err == io.EOF {
				return
			}
			if !yield(b, err) || err != nil {
				return
			}
		}
	}
}

// ReadAll reads the remaining blocks.
//
// The returned Metadata always holds every block read so far, together with
// the recorded block-local errors and warnings, even when a fatal error is
// returned.
func (s *Stream) ReadAll(ctx context.Context) (*types.Metadata, error) {
	md := &types.Metadata{}
	var err error
	for b, berr := range s.Blocks(ctx) {
		if berr != nil {
			err = berr
			break
		}
		md.Blocks = append(md.Blocks, b)
	}
	md.Errors = s.errors
	md.Warnings = s.warnings
	return md, err
}

func (s *Stream) warn(w types.Warning) {
	s.warnings = append(s.warnings, w)
	s.observer.OnEvent(types.Event{
		Kind:    types.EventWarning,
		Index:   s.index,
		Offset:  w.Offset,
		Warning: w,
	})
}

func (s *Stream) finish() {
	s.state = StateDone
	s.observer.OnEvent(types.Event{
		Kind:   types.EventStreamFinished,
		Index:  s.index,
		Offset: s.offset,
	})
}

func (s *Stream) fail(err error) error {
	s.state = StateFailed
	s.err = err

	var be *types.BlockError
	if errors.As(err, &be) {
		s.observer.OnEvent(types.Event{
			Kind:   types.EventBlockFailed,
			Index:  be.Index,
			Type:   be.Type,
			Offset: be.Offset,
			Err:    err,
			Fatal:  true,
		})
	}
	s.observer.OnEvent(types.Event{
		Kind:   types.EventStreamFinished,
		Index:  s.index,
		Offset: s.offset,
		Err:    err,
	})
	return err
}
