package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

// Camera maps world coordinates (y up) to screen pixels (y down) with the
// camera position at the centre of the screen.
type Camera struct {
	X, Y    float64
	Zoom    float64
	ScreenW float64
	ScreenH float64
}

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// ToScreen converts a world point to screen pixels.
func (c Camera) ToScreen(x, y float64) (float64, float64) {
	z := c.zoom()
	return (x-c.X)*z + c.ScreenW/2, (c.Y-y)*z + c.ScreenH/2
}

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, cam Camera) {
	if r == nil || w == nil || screen == nil {
		return
	}

	entities := w.Query(component.TransformComponent.Kind(), component.RectRenderComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		ri, _ := ecs.Get(w, entities[i], component.RectRenderComponent.Kind())
		rj, _ := ecs.Get(w, entities[j], component.RectRenderComponent.Kind())
		return ri.Layer < rj.Layer
	})

	z := cam.zoom()
	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		rect, ok := ecs.Get(w, e, component.RectRenderComponent.Kind())
		if !ok || rect.Color == nil {
			continue
		}
		x, y := cam.ToScreen(t.X-rect.Width/2, t.Y+rect.Height/2)
		vector.FillRect(screen, float32(x), float32(y), float32(rect.Width*z), float32(rect.Height*z), rect.Color, false)
	}
}
