package system

import (
	"log"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/input"
)

// Stage names of the controller tick, in run order.
const (
	StageInput          = "input"
	StagePhysics        = "physics"
	StageClassify       = "classify"
	StageReactGround    = "react-ground"
	StageReactLeftWall  = "react-left-wall"
	StageReactRightWall = "react-right-wall"
	StageBusyTimer      = "busy-timer"
	StageJump           = "jump"
	StageMovement       = "movement"
)

// ControllerSystems is the set of systems making up one controller tick.
type ControllerSystems struct {
	Input     *InputSystem
	Physics   *PhysicsSystem
	Classify  *ContactClassifierSystem
	Ground    *ContactReactionSystem
	LeftWall  *ContactReactionSystem
	RightWall *ContactReactionSystem
	BusyTimer *BusyTimerSystem
	Jump      *JumpSystem
	Movement  *MovementSystem
}

// NewControllerSystems builds every controller system. physics may be nil
// when the caller feeds collision events itself.
func NewControllerSystems(physics *PhysicsSystem, source input.Source, logger *log.Logger) *ControllerSystems {
	return &ControllerSystems{
		Input:     NewInputSystem(source),
		Physics:   physics,
		Classify:  NewContactClassifierSystem(logger),
		Ground:    NewGroundReactionSystem(logger),
		LeftWall:  NewLeftWallReactionSystem(logger),
		RightWall: NewRightWallReactionSystem(logger),
		BusyTimer: NewBusyTimerSystem(),
		Jump:      NewJumpSystem(logger),
		Movement:  NewMovementSystem(),
	}
}

// Scheduler lays the systems out in the fixed tick order: the physics step
// produces the tick's collision events, which are classified and mirrored
// onto contact flags before the lockout timer advances, and only then do the
// decisions read flags and lockout. A wall jump's lockout therefore survives
// into the next tick's decisions, and a lockout that expires is visible to
// the decisions of the same tick.
func (s *ControllerSystems) Scheduler() *ecs.Scheduler {
	sched := ecs.NewScheduler()
	sched.AddStage(StageInput, s.Input)
	if s.Physics != nil {
		sched.AddStage(StagePhysics, s.Physics)
	}
	sched.AddStage(StageClassify, s.Classify)
	sched.AddStage(StageReactGround, s.Ground)
	sched.AddStage(StageReactLeftWall, s.LeftWall)
	sched.AddStage(StageReactRightWall, s.RightWall)
	sched.AddStage(StageBusyTimer, s.BusyTimer)
	sched.AddStage(StageJump, s.Jump)
	sched.AddStage(StageMovement, s.Movement)
	return sched
}

// NewControllerScheduler is a shorthand for building the systems and their
// scheduler in one go.
func NewControllerScheduler(physics *PhysicsSystem, source input.Source, logger *log.Logger) *ecs.Scheduler {
	return NewControllerSystems(physics, source, logger).Scheduler()
}
