// Package input provides the button sources the controller polls each tick.
package input

import "github.com/milk9111/wallkick/ecs/component"

// State is the polled state of the logical buttons. Jump is the held level,
// JumpPressed is true only on the tick the button went down.
type State struct {
	Left        bool
	Right       bool
	Jump        bool
	JumpPressed bool
}

// Context is what a source may look at when deciding the tick's buttons.
type Context struct {
	Tick  int
	Flags component.ContactFlags
}

// Source yields button state once per tick.
type Source interface {
	Poll(ctx Context) State
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx Context) State

func (f SourceFunc) Poll(ctx Context) State {
	return f(ctx)
}

// edge tracks the previous jump level to derive JumpPressed for sources that
// only know the held level.
type edge struct {
	last bool
}

func (e *edge) update(held bool) bool {
	pressed := held && !e.last
	e.last = held
	return pressed
}
