// Package ecs provides ECS adapters for driftwood's strip event system.
//
// The primary adapter is [NewDonburiSink], which bridges strip events (drag
// start/end, panel snap, texture load) into a [Donburi] world as typed
// events. Subscribe to [StripEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	strip.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
