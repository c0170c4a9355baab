package system

import (
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

// BusyTimerSystem counts Busy lockouts down by the tick's elapsed time and
// removes them on the tick they run out.
type BusyTimerSystem struct{}

func NewBusyTimerSystem() *BusyTimerSystem {
	return &BusyTimerSystem{}
}

func (s *BusyTimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	if dt <= 0 {
		return
	}

	ecs.ForEach(w, component.BusyComponent.Kind(), func(e ecs.Entity, busy *component.Busy) {
		busy.Remaining -= dt
		if busy.Remaining > 0 {
			return
		}
		ecs.Remove(w, e, component.BusyComponent.Kind())
	})
}

// StartBusy puts e into lockout for d seconds, replacing any running timer.
func StartBusy(w *ecs.World, e ecs.Entity, d float64) error {
	return ecs.Add(w, e, component.BusyComponent.Kind(), &component.Busy{Remaining: d, Duration: d})
}
