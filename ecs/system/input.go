package system

import (
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/input"
)

// InputSystem polls the input source once per tick and writes the result
// onto every entity carrying an Input component. The source sees the contact
// flags of the oldest such entity.
type InputSystem struct {
	source input.Source
	tick   int
}

func NewInputSystem(source input.Source) *InputSystem {
	return &InputSystem{source: source}
}

// SetSource swaps the input source, e.g. when toggling the autopilot.
func (i *InputSystem) SetSource(source input.Source) {
	i.source = source
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	i.tick++
	if i.source == nil {
		return
	}

	entities := w.Query(component.InputComponent.Kind())
	if len(entities) == 0 {
		return
	}
	st := i.source.Poll(input.Context{Tick: i.tick, Flags: ReadContactFlags(w, entities[0])})
	for _, e := range entities {
		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		in.Left = st.Left
		in.Right = st.Right
		in.Jump = st.Jump
		in.JumpPressed = st.JumpPressed
	}
}
