package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/prefabs"
)

// Player is the spawned player body and its detector children.
type Player struct {
	Body      ecs.Entity
	Detectors map[component.DetectorKind]ecs.Entity
}

var (
	playerColor   = color.NRGBA{B: 0xff, A: 0xff}
	detectorColor = color.NRGBA{G: 0xff, A: 0xff}
)

// SpawnPlayer creates the player body plus one sensor child per detector in
// spec. Detectors are created after the body so queries see the body first.
func SpawnPlayer(w *ecs.World, spec prefabs.PlayerSpec, ctrl component.Controller) (Player, error) {
	e := ecs.CreateEntity(w)
	p := Player{Body: e, Detectors: make(map[component.DetectorKind]ecs.Entity)}

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return p, fmt.Errorf("player: add tag: %w", err)
	}
	name := spec.Name
	if name == "" {
		name = "Player"
	}
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return p, fmt.Errorf("player: add name: %w", err)
	}
	tr := &component.Transform{X: spec.Transform.X, Y: spec.Transform.Y, Rotation: spec.Transform.Rotation}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		return p, fmt.Errorf("player: add transform: %w", err)
	}

	radius := spec.Radius
	if radius <= 0 {
		radius = 25
	}
	body := &component.PhysicsBody{
		Kind:         component.BodyDynamic,
		Radius:       radius,
		Mass:         spec.Mass,
		Friction:     spec.Friction,
		LockRotation: true,
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return p, fmt.Errorf("player: add physics body: %w", err)
	}
	layers := component.NewCollisionLayer(component.LayerPlayer, component.LayerWorld)
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layers); err != nil {
		return p, fmt.Errorf("player: add collision layer: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return p, fmt.Errorf("player: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return p, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.ControllerComponent.Kind(), &ctrl); err != nil {
		return p, fmt.Errorf("player: add controller: %w", err)
	}
	rect := &component.RectRender{Width: radius * 2, Height: radius * 2, Color: spec.Color.ColorOr(playerColor), Layer: 1}
	if err := ecs.Add(w, e, component.RectRenderComponent.Kind(), rect); err != nil {
		return p, fmt.Errorf("player: add render: %w", err)
	}

	for _, ds := range spec.Detectors {
		kind, err := ds.DetectorKind()
		if err != nil {
			return p, fmt.Errorf("player: %w", err)
		}
		if _, dup := p.Detectors[kind]; dup {
			return p, fmt.Errorf("player: duplicate %s detector", kind)
		}
		d, err := spawnDetector(w, e, tr, kind, ds)
		if err != nil {
			return p, err
		}
		p.Detectors[kind] = d
	}

	return p, nil
}

func spawnDetector(w *ecs.World, parent ecs.Entity, parentTr *component.Transform, kind component.DetectorKind, spec prefabs.DetectorSpec) (ecs.Entity, error) {
	layer, ok := kind.Layer()
	if !ok {
		return 0, fmt.Errorf("detector: no layer for %s", kind)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.DetectorComponent.Kind(), &component.Detector{Kind: kind}); err != nil {
		return 0, fmt.Errorf("detector: add detector: %w", err)
	}
	if err := ecs.Add(w, e, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)}); err != nil {
		return 0, fmt.Errorf("detector: add parent: %w", err)
	}
	name := spec.Name
	if name == "" {
		name = kind.String() + "_detector"
	}
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return 0, fmt.Errorf("detector: add name: %w", err)
	}
	tr := &component.Transform{X: parentTr.X + spec.OffsetX, Y: parentTr.Y + spec.OffsetY}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		return 0, fmt.Errorf("detector: add transform: %w", err)
	}

	hw, hh := spec.HalfWidth, spec.HalfHeight
	if hw <= 0 {
		hw = 3
	}
	if hh <= 0 {
		hh = 3
	}
	body := &component.PhysicsBody{
		Kind:       component.BodySensor,
		HalfWidth:  hw,
		HalfHeight: hh,
		OffsetX:    spec.OffsetX,
		OffsetY:    spec.OffsetY,
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return 0, fmt.Errorf("detector: add physics body: %w", err)
	}
	layers := component.NewCollisionLayer(layer, component.LayerWorld)
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layers); err != nil {
		return 0, fmt.Errorf("detector: add collision layer: %w", err)
	}
	rect := &component.RectRender{Width: hw * 2, Height: hh * 2, Color: spec.Color.ColorOr(detectorColor), Layer: 2}
	if err := ecs.Add(w, e, component.RectRenderComponent.Kind(), rect); err != nil {
		return 0, fmt.Errorf("detector: add render: %w", err)
	}
	return e, nil
}
