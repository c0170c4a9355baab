package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

var geometryColor = color.NRGBA{R: 0xf0, G: 0xf8, B: 0xff, A: 0xff}

// Block is a static world rectangle centred on X/Y.
type Block struct {
	Name       string
	X, Y       float64
	HalfWidth  float64
	HalfHeight float64
}

// DefaultGeometry is the fixed test scene: a floor and a wall to its left.
var DefaultGeometry = []Block{
	{Name: "Floor", X: 0, Y: 0, HalfWidth: 250, HalfHeight: 5},
	{Name: "Wall", X: -50, Y: 0, HalfWidth: 5, HalfHeight: 250},
}

// NewGeometry spawns static world blocks that collide with the player and
// every detector layer.
func NewGeometry(w *ecs.World, blocks []Block) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(blocks))
	for _, b := range blocks {
		e, err := newBlock(w, b)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

func newBlock(w *ecs.World, b Block) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.WorldTagComponent.Kind(), &component.WorldTag{}); err != nil {
		return 0, fmt.Errorf("geometry: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: b.Name}); err != nil {
		return 0, fmt.Errorf("geometry: add name: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: b.X, Y: b.Y}); err != nil {
		return 0, fmt.Errorf("geometry: add transform: %w", err)
	}
	body := &component.PhysicsBody{
		Kind:       component.BodyStatic,
		HalfWidth:  b.HalfWidth,
		HalfHeight: b.HalfHeight,
		Friction:   0.8,
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return 0, fmt.Errorf("geometry: add physics body: %w", err)
	}
	layers := component.NewCollisionLayer(component.LayerWorld,
		component.LayerPlayer,
		component.LayerGroundDetector,
		component.LayerLeftWallDetector,
		component.LayerRightWallDetector,
	)
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layers); err != nil {
		return 0, fmt.Errorf("geometry: add collision layer: %w", err)
	}
	rect := &component.RectRender{Width: b.HalfWidth * 2, Height: b.HalfHeight * 2, Color: geometryColor}
	if err := ecs.Add(w, e, component.RectRenderComponent.Kind(), rect); err != nil {
		return 0, fmt.Errorf("geometry: add render: %w", err)
	}
	return e, nil
}
