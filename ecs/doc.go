// Package ecs provides ECS adapters for saguaro's scene events.
//
// The primary adapter is [NewDonburiSink], which bridges scene events
// (watermark crossings, generated batches, evictions, clock wraps) into a
// [Donburi] world as typed events. Subscribe to [SceneEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	anim.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
