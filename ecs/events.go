package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallkick/ecs/component"
)

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventCollision = "collision"
	EventContact   = "contact"
)

// DefaultEventCapacity bounds a single tick's event list.
const DefaultEventCapacity = 256

// CollisionDirection tags a pair transition reported by the physics engine.
type CollisionDirection int

const (
	CollisionStarted CollisionDirection = iota + 1
	CollisionStopped
)

func (d CollisionDirection) String() string {
	switch d {
	case CollisionStarted:
		return "started"
	case CollisionStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Participant is one side of a collision pair. Entity is zero when the
// engine side could not be mapped back to an entity.
type Participant struct {
	Entity Entity
	Layers component.CollisionLayer
}

// CollisionEvent is one pair transition for the current tick. Normals are
// only filled for Stopped events.
type CollisionEvent struct {
	A         Participant
	B         Participant
	Direction CollisionDirection
	Normals   []cp.Vector
}

// ContactSignal is a classified collision event addressed to the player
// entity that owns the matching detector.
type ContactSignal struct {
	Kind      component.DetectorKind
	Direction CollisionDirection
	Parent    Entity
	Detector  Entity
	Normals   []cp.Vector
}

// EventQueue is a FIFO holding the current tick's events. Every event type
// has its own per-tick bound. It is flushed at the end of every tick.
type EventQueue struct {
	items    []Event
	counts   map[string]int
	capacity int
	dropped  int
}

// SetCapacity changes the per-type, per-tick bound. Zero or less restores the
// default.
func (q *EventQueue) SetCapacity(n int) {
	if q == nil {
		return
	}
	q.capacity = n
}

func (q *EventQueue) limit() int {
	if q.capacity <= 0 {
		return DefaultEventCapacity
	}
	return q.capacity
}

// Push appends an event. It returns false once the tick's bound is reached.
func (q *EventQueue) Push(evt Event) bool {
	if q == nil {
		return false
	}
	if q.counts[evt.Type] >= q.limit() {
		q.dropped++
		return false
	}
	if q.counts == nil {
		q.counts = make(map[string]int)
	}
	q.counts[evt.Type]++
	q.items = append(q.items, evt)
	return true
}

// Peek returns the pending events in arrival order without consuming them.
func (q *EventQueue) Peek() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := make([]Event, len(q.items))
	copy(out, q.items)
	return out
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	clear(q.counts)
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Dropped returns how many events were rejected by the bound since creation.
func (q *EventQueue) Dropped() int {
	if q == nil {
		return 0
	}
	return q.dropped
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
	clear(q.counts)
}

// CollisionEvents returns the tick's collision events in arrival order.
func CollisionEvents(w *World) []CollisionEvent {
	var out []CollisionEvent
	for _, evt := range w.Events().Peek() {
		if evt.Type != EventCollision {
			continue
		}
		if ce, ok := evt.Data.(CollisionEvent); ok {
			out = append(out, ce)
		}
	}
	return out
}

// ContactSignals returns the tick's contact signals of one detector kind in
// arrival order.
func ContactSignals(w *World, kind component.DetectorKind) []ContactSignal {
	var out []ContactSignal
	for _, evt := range w.Events().Peek() {
		if evt.Type != EventContact {
			continue
		}
		if sig, ok := evt.Data.(ContactSignal); ok && sig.Kind == kind {
			out = append(out, sig)
		}
	}
	return out
}
