package system

import (
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

// MovementSystem sets horizontal speed from the held direction keys.
// Moving left is refused while the right wall flag is set and moving right
// while the left wall flag is set. With no key held the horizontal speed is
// left alone.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.VelocityComponent.Kind(),
	)
	for _, e := range entities {
		if ecs.Has(w, e, component.BusyComponent.Kind()) {
			continue
		}
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			continue
		}
		ctrl := controllerFor(w, e)
		flags := ReadContactFlags(w, e)

		x := 0.0
		if input.Left && !flags.TouchingRightWall {
			x = -ctrl.MoveSpeed
		}
		if input.Right && !flags.TouchingLeftWall {
			x = ctrl.MoveSpeed
		}
		if x != 0 {
			vel.X = x
		}
	}
}
