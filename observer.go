package metasonic

import (
	"context"
	"log/slog"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/112RG/metasonic/internal/types"
)

// Observer receives parse events. Calls are synchronous and made from the
// goroutine running the parse, so an Observer shared between concurrent
// parses must be safe for concurrent use.
type Observer = types.Observer

// ObserverFunc adapts a function to Observer.
type ObserverFunc = types.ObserverFunc

// Event describes one step of a parse.
type Event = types.Event

// EventKind identifies the kind of an Event.
type EventKind = types.EventKind

// Event kinds.
const (
	EventBlockDecoded   = types.EventBlockDecoded
	EventBlockSkipped   = types.EventBlockSkipped
	EventBlockFailed    = types.EventBlockFailed
	EventWarning        = types.EventWarning
	EventStreamFinished = types.EventStreamFinished
)

type multiObserver []Observer

func (m multiObserver) OnEvent(e Event) {
	for _, o := range m {
		o.OnEvent(e)
	}
}

// MultiObserver returns an Observer that forwards every event to each of
// obs in order. Nil observers are dropped.
func MultiObserver(obs ...Observer) Observer {
	m := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

// slogObserver logs events to a *slog.Logger.
type slogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver returns an Observer that logs each event to logger.
//
// Decoded and skipped blocks are logged at debug level, block-local
// failures and warnings at warn, and a failed stream at error.
func NewSlogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogObserver{logger: logger}
}

func (o *slogObserver) OnEvent(e Event) {
	ctx := context.Background()
	switch e.Kind {
	case EventBlockDecoded, EventBlockSkipped:
		o.logger.LogAttrs(ctx, slog.LevelDebug, e.Kind.String(), blockAttrs(e)...)
	case EventBlockFailed:
		lvl := slog.LevelWarn
		if e.Fatal {
			// Reported again, with the stream, by EventStreamFinished.
			lvl = slog.LevelDebug
		}
		o.logger.LogAttrs(ctx, lvl, "block failed",
			append(blockAttrs(e), slog.Bool("fatal", e.Fatal), slog.Any("err", e.Err))...)
	case EventWarning:
		o.logger.LogAttrs(ctx, slog.LevelWarn, e.Warning.Message,
			slog.String("stage", e.Warning.Stage),
			slog.Int64("offset", e.Warning.Offset),
		)
	case EventStreamFinished:
		if e.Err != nil {
			o.logger.LogAttrs(ctx, slog.LevelError, "stream failed",
				slog.Int("blocks", e.Index),
				slog.Int64("offset", e.Offset),
				slog.Any("err", e.Err),
			)
			return
		}
		o.logger.LogAttrs(ctx, slog.LevelDebug, "stream finished",
			slog.Int("blocks", e.Index),
			slog.Int64("offset", e.Offset),
		)
	}
}

func blockAttrs(e Event) []slog.Attr {
	return []slog.Attr{
		slog.Int("index", e.Index),
		slog.String("type", e.Type.String()),
		slog.Int64("offset", e.Offset),
		slog.Int("size", e.Size),
	}
}

// kitLogObserver logs events to a go-kit logger.
type kitLogObserver struct {
	logger kitlog.Logger
}

// NewKitLogObserver returns an Observer that logs events as key/value pairs
// through a go-kit logger, such as kitlog.NewLogfmtLogger. Levels match
// NewSlogObserver and are attached with the go-kit level package, so
// level.NewFilter can be applied to logger.
func NewKitLogObserver(logger kitlog.Logger) Observer {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &kitLogObserver{logger: logger}
}

func (o *kitLogObserver) OnEvent(e Event) {
	switch e.Kind {
	case EventBlockDecoded, EventBlockSkipped:
		_ = level.Debug(o.logger).Log(kitBlockKeyvals(e, "msg", e.Kind.String())...)
	case EventBlockFailed:
		l := level.Warn(o.logger)
		if e.Fatal {
			l = level.Debug(o.logger)
		}
		_ = l.Log(kitBlockKeyvals(e, "msg", "block failed", "fatal", e.Fatal, "err", e.Err)...)
	case EventWarning:
		_ = level.Warn(o.logger).Log(
			"msg", e.Warning.Message,
			"stage", e.Warning.Stage,
			"offset", e.Warning.Offset,
		)
	case EventStreamFinished:
		if e.Err != nil {
			_ = level.Error(o.logger).Log("msg", "stream failed", "blocks", e.Index, "offset", e.Offset, "err", e.Err)
			return
		}
		_ = level.Debug(o.logger).Log("msg", "stream finished", "blocks", e.Index, "offset", e.Offset)
	}
}

func kitBlockKeyvals(e Event, keyvals ...any) []any {
	return append(keyvals,
		"index", e.Index,
		"type", e.Type.String(),
		"offset", e.Offset,
		"size", e.Size,
	)
}
