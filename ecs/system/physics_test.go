package system

import (
	"testing"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

func addStatic(t *testing.T, w *ecs.World, x, y, hw, hh float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	must(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyStatic, HalfWidth: hw, HalfHeight: hh}))
	layers := component.NewCollisionLayer(component.LayerWorld,
		component.LayerPlayer, component.LayerGroundDetector, component.LayerLeftWallDetector, component.LayerRightWallDetector)
	must(t, ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layers))
	return e
}

// addBody gives a test player a dynamic circle and sensor detectors at the
// usual offsets.
func addBody(t *testing.T, w *ecs.World, p testPlayer, x, y float64) {
	t.Helper()
	must(t, ecs.Add(w, p.body, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	must(t, ecs.Add(w, p.body, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyDynamic, Radius: 25, Mass: 1, LockRotation: true}))
	layers := component.NewCollisionLayer(component.LayerPlayer, component.LayerWorld)
	must(t, ecs.Add(w, p.body, component.CollisionLayerComponent.Kind(), &layers))

	offsets := map[component.DetectorKind][4]float64{
		component.DetectorGround:    {0, -31, 3, 3},
		component.DetectorLeftWall:  {-31, 0, 3, 10},
		component.DetectorRightWall: {31, 0, 3, 10},
	}
	for kind, d := range p.detectors {
		o := offsets[kind]
		layer, _ := kind.Layer()
		must(t, ecs.Add(w, d, component.TransformComponent.Kind(), &component.Transform{X: x + o[0], Y: y + o[1]}))
		must(t, ecs.Add(w, d, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind: component.BodySensor, OffsetX: o[0], OffsetY: o[1], HalfWidth: o[2], HalfHeight: o[3],
		}))
		dl := component.NewCollisionLayer(layer, component.LayerWorld)
		must(t, ecs.Add(w, d, component.CollisionLayerComponent.Kind(), &dl))
	}
}

func TestPhysicsLandingSetsGrounded(t *testing.T) {
	w := ecs.NewWorld()
	addStatic(t, w, 0, 0, 250, 5)
	p := newTestPlayer(t, w)
	addBody(t, w, p, 0, 100)

	physics := NewPhysicsSystem(DefaultGravity, discardLogger())
	sched := NewControllerScheduler(physics, nil, discardLogger())
	w.SetDeltaTime(1.0 / 60)

	landed := -1
	for tick := 0; tick < 180 && landed < 0; tick++ {
		sched.Update(w)
		if ReadContactFlags(w, p.body).Grounded {
			landed = tick
		}
	}
	if landed < 0 {
		t.Fatalf("player never became grounded")
	}
	flags := ReadContactFlags(w, p.body)
	if flags.TouchingLeftWall || flags.TouchingRightWall {
		t.Fatalf("no wall nearby, got %+v", flags)
	}

	tr, _ := ecs.Get(w, p.body, component.TransformComponent.Kind())
	if tr.Y >= 100 {
		t.Fatalf("player should have fallen, y=%v", tr.Y)
	}
	dt, _ := ecs.Get(w, p.detectors[component.DetectorGround], component.TransformComponent.Kind())
	if dt.Y != tr.Y-31 {
		t.Fatalf("detector transform should follow the body, got %v vs %v", dt.Y, tr.Y)
	}
}

func TestPhysicsWallContactAndRelease(t *testing.T) {
	w := ecs.NewWorld()
	addStatic(t, w, 0, 0, 250, 5)
	addStatic(t, w, -50, 0, 5, 250)
	p := newTestPlayer(t, w)
	// Resting against the wall: wall face at x=-45, circle edge at -45.
	addBody(t, w, p, -20, 31)

	physics := NewPhysicsSystem(DefaultGravity, discardLogger())
	sched := NewControllerScheduler(physics, nil, discardLogger())
	w.SetDeltaTime(1.0 / 60)

	for tick := 0; tick < 10; tick++ {
		sched.Update(w)
	}
	if !ReadContactFlags(w, p.body).TouchingLeftWall {
		t.Fatalf("left detector should touch the wall")
	}

	// Push away from the wall until the detector separates.
	for tick := 0; tick < 60; tick++ {
		vel, _ := ecs.Get(w, p.body, component.VelocityComponent.Kind())
		vel.X = 100
		sched.Update(w)
	}
	if ReadContactFlags(w, p.body).TouchingLeftWall {
		t.Fatalf("left wall flag should clear after moving away")
	}
}

func TestPhysicsRemovesDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	addStatic(t, w, 0, 0, 250, 5)
	p := newTestPlayer(t, w)
	addBody(t, w, p, 0, 100)

	physics := NewPhysicsSystem(DefaultGravity, discardLogger())
	w.SetDeltaTime(1.0 / 60)
	physics.Update(w)
	if len(physics.entities) != 5 {
		t.Fatalf("expected floor, body and 3 sensors registered, got %d", len(physics.entities))
	}

	ecs.DestroyEntity(w, p.body)
	physics.Update(w)
	if len(physics.entities) != 1 {
		t.Fatalf("body and its sensors should be removed, got %d left", len(physics.entities))
	}
}

func TestPhysicsVelocityWritesReachBody(t *testing.T) {
	cases := []struct {
		name string
		dt   float64
	}{
		{"stepped", 1.0 / 60},
		{"paused", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			p := newTestPlayer(t, w)
			addBody(t, w, p, 0, 100)
			physics := NewPhysicsSystem(0, discardLogger())
			w.SetDeltaTime(c.dt)
			physics.Update(w)

			vel, _ := ecs.Get(w, p.body, component.VelocityComponent.Kind())
			vel.X = 50
			physics.Update(w)

			if got := physics.entities[p.body].body.Velocity().X; got != 50 {
				t.Fatalf("body velocity x = %v, want 50", got)
			}
			if vel.X != 50 {
				t.Fatalf("component should keep the written velocity, got %v", vel.X)
			}
		})
	}
}
