package entity

import (
	"io"
	"log"
	"testing"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/ecs/system"
	"github.com/milk9111/wallkick/input"
	"github.com/milk9111/wallkick/prefabs"
)

func loadPlayer(t *testing.T) prefabs.PlayerSpec {
	t.Helper()
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("load player spec: %v", err)
	}
	return *spec
}

func TestSpawnPlayer(t *testing.T) {
	w := ecs.NewWorld()
	p, err := SpawnPlayer(w, loadPlayer(t), component.DefaultController())
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if len(ecs.Entities(w)) != 4 {
		t.Fatalf("expected body and 3 detectors, got %d entities", len(ecs.Entities(w)))
	}
	if !ecs.Has(w, p.Body, component.PlayerTagComponent.Kind()) {
		t.Fatalf("body missing player tag")
	}
	body, _ := ecs.Get(w, p.Body, component.PhysicsBodyComponent.Kind())
	if body.Kind != component.BodyDynamic || body.Radius != 25 || !body.LockRotation {
		t.Fatalf("unexpected body %+v", body)
	}

	cases := []struct {
		kind    component.DetectorKind
		layer   component.Layer
		offsetX float64
		offsetY float64
	}{
		{component.DetectorGround, component.LayerGroundDetector, 0, -31},
		{component.DetectorLeftWall, component.LayerLeftWallDetector, -31, 0},
		{component.DetectorRightWall, component.LayerRightWallDetector, 31, 0},
	}
	for _, c := range cases {
		t.Run(c.kind.String(), func(t *testing.T) {
			d, ok := p.Detectors[c.kind]
			if !ok {
				t.Fatalf("missing detector")
			}
			parent, _ := ecs.Get(w, d, component.ParentComponent.Kind())
			if parent == nil || ecs.Entity(parent.Entity) != p.Body {
				t.Fatalf("detector should point at the body")
			}
			layers, _ := ecs.Get(w, d, component.CollisionLayerComponent.Kind())
			if !layers.ContainsGroup(c.layer) || !layers.Mask.Has(component.LayerWorld) || layers.Mask.Has(component.LayerPlayer) {
				t.Fatalf("unexpected layers %+v", layers)
			}
			pb, _ := ecs.Get(w, d, component.PhysicsBodyComponent.Kind())
			if pb.Kind != component.BodySensor || pb.OffsetX != c.offsetX || pb.OffsetY != c.offsetY {
				t.Fatalf("unexpected sensor %+v", pb)
			}
		})
	}
}

func TestSpawnPlayerRejectsBadDetectors(t *testing.T) {
	cases := []struct {
		name      string
		detectors []prefabs.DetectorSpec
	}{
		{"unknown_kind", []prefabs.DetectorSpec{{Kind: "ceiling"}}},
		{"duplicate_kind", []prefabs.DetectorSpec{{Kind: "ground"}, {Kind: "ground"}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := prefabs.PlayerSpec{Radius: 10, Detectors: c.detectors}
			if _, err := SpawnPlayer(ecs.NewWorld(), spec, component.DefaultController()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewGeometry(t *testing.T) {
	w := ecs.NewWorld()
	blocks, err := NewGeometry(w, DefaultGeometry)
	if err != nil {
		t.Fatalf("geometry: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected floor and wall, got %d", len(blocks))
	}
	player := component.NewCollisionLayer(component.LayerPlayer, component.LayerWorld)
	ground := component.NewCollisionLayer(component.LayerGroundDetector, component.LayerWorld)
	for _, e := range blocks {
		layers, _ := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
		if !layers.Accepts(player) || !layers.Accepts(ground) {
			t.Fatalf("world block should pair with the player and detectors")
		}
		if !ecs.Has(w, e, component.WorldTagComponent.Kind()) {
			t.Fatalf("missing world tag")
		}
	}
}

func TestSpawnedSceneLandsOnFloor(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := NewGeometry(w, DefaultGeometry); err != nil {
		t.Fatalf("geometry: %v", err)
	}
	p, err := SpawnPlayer(w, loadPlayer(t), component.DefaultController())
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	logger := log.New(io.Discard, "", 0)
	sched := system.NewControllerScheduler(system.NewPhysicsSystem(system.DefaultGravity, logger), nil, logger)
	w.SetDeltaTime(1.0 / 60)
	for tick := 0; tick < 120; tick++ {
		sched.Update(w)
	}

	flags := system.ReadContactFlags(w, p.Body)
	if !flags.Grounded {
		t.Fatalf("player should rest on the floor, flags %+v", flags)
	}
	if flags.TouchingLeftWall || flags.TouchingRightWall {
		t.Fatalf("spawn point is clear of the wall, flags %+v", flags)
	}
}

func TestWalkingIntoWallKeepsContact(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := NewGeometry(w, DefaultGeometry); err != nil {
		t.Fatalf("geometry: %v", err)
	}
	p, err := SpawnPlayer(w, loadPlayer(t), component.DefaultController())
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	const settle = 60
	jumpAt := settle + 120
	src := input.SourceFunc(func(ctx input.Context) input.State {
		return input.State{Left: ctx.Tick > settle, Jump: ctx.Tick == jumpAt}
	})
	logger := log.New(io.Discard, "", 0)
	sched := system.NewControllerScheduler(system.NewPhysicsSystem(system.DefaultGravity, logger), src, logger)
	w.SetDeltaTime(1.0 / 60)

	wallFace := DefaultGeometry[1].X + DefaultGeometry[1].HalfWidth
	touched := false
	for tick := 1; tick < jumpAt; tick++ {
		sched.Update(w)
		flags := system.ReadContactFlags(w, p.Body)
		if flags.TouchingLeftWall {
			touched = true
		} else if touched {
			tr, _ := ecs.Get(w, p.Body, component.TransformComponent.Kind())
			t.Fatalf("tick %d: left wall contact lost while pressing into it, x=%.2f", tick, tr.X)
		}
	}
	if !touched {
		t.Fatalf("player never reached the wall")
	}

	tr, _ := ecs.Get(w, p.Body, component.TransformComponent.Kind())
	body, _ := ecs.Get(w, p.Body, component.PhysicsBodyComponent.Kind())
	if edge := tr.X - body.Radius; edge < wallFace-1 {
		t.Fatalf("player sank into the wall: left edge %.2f, wall face %.2f", edge, wallFace)
	}

	// Jumping while standing against the wall is a wall jump with the
	// ground's vertical speed.
	sched.Update(w)
	vel, _ := ecs.Get(w, p.Body, component.VelocityComponent.Kind())
	if vel.X != 200 || vel.Y != 250 {
		t.Fatalf("expected a wall jump, got velocity %+v", *vel)
	}
	if !system.ReadContactFlags(w, p.Body).Busy {
		t.Fatalf("wall jump should start the lockout")
	}
}
