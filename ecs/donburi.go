package ecs

import (
	"github.com/phanxgames/saguaro"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for saguaro scene events.
var SceneEventType = events.NewEventType[saguaro.SceneEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to SceneEventType and delivered when the animator flushes the
// sink at the end of each tick, or on an explicit ProcessEvents.
func NewDonburiSink(world donburi.World) saguaro.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event saguaro.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}

// Flush delivers the queued scene events to subscribers.
func (s *donburiSink) Flush() {
	SceneEventType.ProcessEvents(s.world)
}

// Tally counts scene events by type. Register it with Subscribe to keep
// running totals inside an ECS system.
type Tally struct {
	Crossings int
	Batches   int
	Evicted   int
	Wraps     int
	// LastTotal is the cactus count reported by the most recent event.
	LastTotal int
}

// Subscribe registers t as a SceneEventType handler on world.
func (t *Tally) Subscribe(world donburi.World) {
	SceneEventType.Subscribe(world, t.handle)
}

func (t *Tally) handle(_ donburi.World, e saguaro.SceneEvent) {
	switch e.Type {
	case saguaro.EventWatermarkCrossed:
		t.Crossings++
	case saguaro.EventBatchGenerated:
		t.Batches++
	case saguaro.EventEvicted:
		t.Evicted += e.Count
	case saguaro.EventCycleWrapped:
		t.Wraps++
	}
	t.LastTotal = e.Total
}
