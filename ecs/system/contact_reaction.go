package system

import (
	"log"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

// ContactReactionSystem mirrors one detector kind's signals onto the parent
// entity's contact flag. Started adds the flag, Stopped removes it; both are
// idempotent and a despawned parent is skipped.
type ContactReactionSystem struct {
	kind   component.DetectorKind
	logger *log.Logger
}

func NewContactReactionSystem(kind component.DetectorKind, logger *log.Logger) *ContactReactionSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &ContactReactionSystem{kind: kind, logger: logger}
}

func NewGroundReactionSystem(logger *log.Logger) *ContactReactionSystem {
	return NewContactReactionSystem(component.DetectorGround, logger)
}

func NewLeftWallReactionSystem(logger *log.Logger) *ContactReactionSystem {
	return NewContactReactionSystem(component.DetectorLeftWall, logger)
}

func NewRightWallReactionSystem(logger *log.Logger) *ContactReactionSystem {
	return NewContactReactionSystem(component.DetectorRightWall, logger)
}

func (s *ContactReactionSystem) Kind() component.DetectorKind {
	return s.kind
}

func (s *ContactReactionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, sig := range ecs.ContactSignals(w, s.kind) {
		s.apply(w, sig)
	}
}

func (s *ContactReactionSystem) apply(w *ecs.World, sig ecs.ContactSignal) {
	if !w.IsAlive(sig.Parent) {
		return
	}
	switch sig.Direction {
	case ecs.CollisionStarted:
		if err := setContactFlag(w, sig.Parent, s.kind); err != nil {
			return
		}
		if s.kind == component.DetectorGround {
			s.logger.Printf("contacts: entity %s landed", sig.Parent)
		}
	case ecs.CollisionStopped:
		if s.kind == component.DetectorGround {
			s.logger.Printf("contacts: ground contact ended with %d normals", len(sig.Normals))
			for _, n := range sig.Normals {
				s.logger.Printf("contacts: normal (%.3f, %.3f)", n.X, n.Y)
			}
			s.logger.Printf("contacts: entity %s left the ground", sig.Parent)
		}
		clearContactFlag(w, sig.Parent, s.kind)
	}
}

func setContactFlag(w *ecs.World, e ecs.Entity, kind component.DetectorKind) error {
	switch kind {
	case component.DetectorGround:
		return ecs.Add(w, e, component.GroundedComponent.Kind(), &component.Grounded{})
	case component.DetectorLeftWall:
		return ecs.Add(w, e, component.TouchingLeftWallComponent.Kind(), &component.TouchingLeftWall{})
	case component.DetectorRightWall:
		return ecs.Add(w, e, component.TouchingRightWallComponent.Kind(), &component.TouchingRightWall{})
	}
	return component.ErrInvalidComponentKind
}

func clearContactFlag(w *ecs.World, e ecs.Entity, kind component.DetectorKind) {
	switch kind {
	case component.DetectorGround:
		ecs.Remove(w, e, component.GroundedComponent.Kind())
	case component.DetectorLeftWall:
		ecs.Remove(w, e, component.TouchingLeftWallComponent.Kind())
	case component.DetectorRightWall:
		ecs.Remove(w, e, component.TouchingRightWallComponent.Kind())
	}
}

// ReadContactFlags snapshots the contact markers and lockout of e.
func ReadContactFlags(w *ecs.World, e ecs.Entity) component.ContactFlags {
	flags := component.ContactFlags{
		Grounded:          ecs.Has(w, e, component.GroundedComponent.Kind()),
		TouchingLeftWall:  ecs.Has(w, e, component.TouchingLeftWallComponent.Kind()),
		TouchingRightWall: ecs.Has(w, e, component.TouchingRightWallComponent.Kind()),
	}
	if busy, ok := ecs.Get(w, e, component.BusyComponent.Kind()); ok {
		flags.Busy = true
		flags.BusyRemaining = busy.Remaining
	}
	return flags
}
