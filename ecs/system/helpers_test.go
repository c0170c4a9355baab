package system

import (
	"io"
	"log"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type testPlayer struct {
	body      ecs.Entity
	detectors map[component.DetectorKind]ecs.Entity
}

// newTestPlayer builds a player and its three detectors without physics.
func newTestPlayer(t *testing.T, w *ecs.World) testPlayer {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	must(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	must(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))

	p := testPlayer{body: e, detectors: make(map[component.DetectorKind]ecs.Entity)}
	for _, kind := range []component.DetectorKind{component.DetectorGround, component.DetectorLeftWall, component.DetectorRightWall} {
		d := ecs.CreateEntity(w)
		must(t, ecs.Add(w, d, component.DetectorComponent.Kind(), &component.Detector{Kind: kind}))
		must(t, ecs.Add(w, d, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(e)}))
		p.detectors[kind] = d
	}
	return p
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func worldSide() ecs.Participant {
	return ecs.Participant{Layers: component.NewCollisionLayer(component.LayerWorld, component.LayerPlayer, component.LayerGroundDetector)}
}

func detectorSideOf(kind component.DetectorKind, e ecs.Entity) ecs.Participant {
	layer, _ := kind.Layer()
	return ecs.Participant{Entity: e, Layers: component.NewCollisionLayer(layer, component.LayerWorld)}
}

func pushCollision(w *ecs.World, a, b ecs.Participant, dir ecs.CollisionDirection, normals ...cp.Vector) {
	w.Events().Push(ecs.Event{Type: ecs.EventCollision, Data: ecs.CollisionEvent{A: a, B: b, Direction: dir, Normals: normals}})
}

// runContacts runs classification and the three reactions over the queued
// collision events, then ends the tick.
func runContacts(w *ecs.World) {
	sched := ecs.NewScheduler(
		NewContactClassifierSystem(discardLogger()),
		NewGroundReactionSystem(discardLogger()),
		NewLeftWallReactionSystem(discardLogger()),
		NewRightWallReactionSystem(discardLogger()),
	)
	sched.Update(w)
}
