package types

// EventKind identifies a notable step of a parse.
type EventKind int

const (
	// EventBlockDecoded: a registered decoder produced Block.
	EventBlockDecoded EventKind = iota + 1
	// EventBlockSkipped: the block was kept as *Raw without decoding.
	EventBlockSkipped
	// EventBlockFailed: a block-local or fatal error; Err is set.
	EventBlockFailed
	// EventWarning: a non-fatal issue; Warning is set.
	EventWarning
	// EventStreamFinished: the parse reached a terminal state. Err holds the
	// fatal error, if any.
	EventStreamFinished
)

func (k EventKind) String() string {
	switch k {
	case EventBlockDecoded:
		return "block_decoded"
	case EventBlockSkipped:
		return "block_skipped"
	case EventBlockFailed:
		return "block_failed"
	case EventWarning:
		return "warning"
	case EventStreamFinished:
		return "stream_finished"
	default:
		return "unknown"
	}
}

// Event describes one observable step. Fields not relevant to Kind are zero.
type Event struct {
	Block   Block
	Err     error
	Warning Warning
	Kind    EventKind
	Index   int
	Offset  int64
	Size    int // payload bytes
	Type    BlockType
	Fatal   bool // EventBlockFailed only
}

// Observer receives events from the decoder. Calls are synchronous and made
// from the parsing goroutine.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent implements Observer.
func (f ObserverFunc) OnEvent(e Event) { f(e) }

// NopObserver discards every event.
type NopObserver struct{}

// OnEvent implements Observer.
func (NopObserver) OnEvent(Event) {}
