package component

import "image/color"

// RectRender draws an axis-aligned coloured rectangle centred on the
// entity's transform.
type RectRender struct {
	Width  float64
	Height float64
	Color  color.Color
	Layer  int
}

var RectRenderComponent = NewComponent[RectRender]()
