package system

import (
	"log"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

// JumpSystem applies ground jumps and wall jumps. Rows are evaluated left
// wall, right wall, then ground, and later rows overwrite earlier ones, so a
// grounded wall jump keeps the wall's push but takes the ground jump speed.
type JumpSystem struct {
	logger *log.Logger
}

func NewJumpSystem(logger *log.Logger) *JumpSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &JumpSystem{logger: logger}
}

func (s *JumpSystem) Update(w *ecs.World) {
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
		ctrl := controllerFor(w, e)
		if !jumpRequested(input, ctrl.Trigger) {
			continue
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			continue
		}

		flags := ReadContactFlags(w, e)
		x, y, wall := decideJump(flags, ctrl)
		if x != 0 {
			vel.X = x
		}
		if y != 0 {
			vel.Y = y
		}
		if wall {
			s.lockout(w, e, ctrl.WallJumpLock)
		}
	}
}

func (s *JumpSystem) lockout(w *ecs.World, e ecs.Entity, d float64) {
	if err := StartBusy(w, e, d); err != nil {
		s.logger.Printf("jump: lockout for entity %s: %v", e, err)
	}
}

func jumpRequested(input *component.Input, trigger component.JumpTrigger) bool {
	if trigger == component.JumpOnPress {
		return input.JumpPressed
	}
	return input.Jump
}

// decideJump returns the velocity components to apply (zero means leave
// untouched) and whether a wall was involved.
func decideJump(flags component.ContactFlags, ctrl component.Controller) (x, y float64, wall bool) {
	if flags.TouchingLeftWall {
		x, y = ctrl.WallJumpX, ctrl.WallJumpY
		wall = true
	}
	if flags.TouchingRightWall {
		x, y = -ctrl.WallJumpX, ctrl.WallJumpY
		wall = true
	}
	if flags.Grounded {
		y = ctrl.JumpSpeed
	}
	return x, y, wall
}

func controllerFor(w *ecs.World, e ecs.Entity) component.Controller {
	if ctrl, ok := ecs.Get(w, e, component.ControllerComponent.Kind()); ok {
		return *ctrl
	}
	return component.DefaultController()
}
