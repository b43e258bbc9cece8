package saguaro

// EventType identifies a kind of scene event.
type EventType uint8

const (
	EventWatermarkCrossed EventType = iota // scroll reached a new extreme
	EventBatchGenerated                    // a batch of cacti was grown
	EventEvicted                           // off-screen cacti were dropped
	EventCycleWrapped                      // the day/night clock wrapped to 0
)

// String returns a short name used in logs.
func (t EventType) String() string {
	switch t {
	case EventWatermarkCrossed:
		return "watermark_crossed"
	case EventBatchGenerated:
		return "batch_generated"
	case EventEvicted:
		return "evicted"
	case EventCycleWrapped:
		return "cycle_wrapped"
	default:
		return "unknown"
	}
}

// SceneEvent carries scene event data for an EventSink.
type SceneEvent struct {
	Type EventType
	// Frame is the number of ticks completed before the one that fired the
	// event.
	Frame    uint64
	Position int
	Crossing Crossing
	// Count is the number of cacti generated or evicted.
	Count int
	// Total is the size of the cactus collection after the change.
	Total int
}

// EventSink receives scene events. When set on a SceneAnimator, events are
// emitted synchronously from inside the tick that produced them.
type EventSink interface {
	EmitEvent(event SceneEvent)
}

// EventFlusher is implemented by sinks that queue events. The animator
// calls Flush once at the end of every tick, after all of that tick's
// events have been emitted.
type EventFlusher interface {
	Flush()
}
