package ecs

import "github.com/milk9111/wallkick/ecs/component"

// Query returns the live entities that carry every given kind, in creation
// order.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		if k == nil {
			return nil
		}
		s := w.store(k.ID(), false)
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}

	var out []Entity
	for _, e := range w.entities.order {
		if hasAll(sets, e) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the oldest live entity carrying kind.
func (w *World) First(kind component.AnyKind) (Entity, bool) {
	matches := w.Query(kind)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0], true
}

func hasAll(sets []*SparseSet, e Entity) bool {
	for _, s := range sets {
		if !s.Has(e) {
			return false
		}
	}
	return true
}
