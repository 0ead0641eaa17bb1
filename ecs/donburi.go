package ecs

import (
	"github.com/phanxgames/driftwood"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// StripEventType is the Donburi event type for driftwood strip events.
// Subscribe to this in your ECS systems to receive drag, snap, and texture
// lifecycle events.
var StripEventType = events.NewEventType[driftwood.StripEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Strip events
// are published to StripEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiSink(world donburi.World) driftwood.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitStripEvent(event driftwood.StripEvent) {
	StripEventType.Publish(s.world, event)
}
