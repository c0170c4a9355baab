package system

import (
	"log"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

// DetectorRef is a live detector as seen by the classifier.
type DetectorRef struct {
	Entity ecs.Entity
	Kind   component.DetectorKind
	Parent ecs.Entity
}

// LiveDetectors lists every detector entity that still has a parent link, in
// creation order.
func LiveDetectors(w *ecs.World) []DetectorRef {
	if w == nil {
		return nil
	}
	var out []DetectorRef
	for _, e := range w.Query(component.DetectorComponent.Kind(), component.ParentComponent.Kind()) {
		det, ok := ecs.Get(w, e, component.DetectorComponent.Kind())
		if !ok {
			continue
		}
		parent, ok := ecs.Get(w, e, component.ParentComponent.Kind())
		if !ok {
			continue
		}
		out = append(out, DetectorRef{Entity: e, Kind: det.Kind, Parent: ecs.Entity(parent.Entity)})
	}
	return out
}

// ClassifyContact pairs one collision event with the detectors it concerns.
// The engine does not say which side of a pair is "self", so both orderings
// are tried. A detector matches when one side carries the detector's group
// and the other side carries the world group. When the detector side names
// an entity it must be this detector; an unnamed side matches by layer only.
// At most one signal is produced per detector, in detector order.
func ClassifyContact(evt ecs.CollisionEvent, detectors []DetectorRef) []ecs.ContactSignal {
	var out []ecs.ContactSignal
	for _, d := range detectors {
		layer, ok := d.Kind.Layer()
		if !ok {
			continue
		}
		if !detectorSide(evt.A, evt.B, d.Entity, layer) && !detectorSide(evt.B, evt.A, d.Entity, layer) {
			continue
		}
		out = append(out, ecs.ContactSignal{
			Kind:      d.Kind,
			Direction: evt.Direction,
			Parent:    d.Parent,
			Detector:  d.Entity,
			Normals:   evt.Normals,
		})
	}
	return out
}

func detectorSide(self, other ecs.Participant, detector ecs.Entity, layer component.Layer) bool {
	if !self.Layers.ContainsGroup(layer) || !other.Layers.ContainsGroup(component.LayerWorld) {
		return false
	}
	return self.Entity == 0 || self.Entity == detector
}

// ContactClassifierSystem turns the tick's raw collision events into contact
// signals for the reaction systems.
type ContactClassifierSystem struct {
	logger *log.Logger
}

func NewContactClassifierSystem(logger *log.Logger) *ContactClassifierSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &ContactClassifierSystem{logger: logger}
}

func (s *ContactClassifierSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	events := ecs.CollisionEvents(w)
	if len(events) == 0 {
		return
	}
	detectors := LiveDetectors(w)
	for _, evt := range events {
		for _, sig := range ClassifyContact(evt, detectors) {
			if !w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: sig}) {
				s.logger.Printf("contacts: event queue full, dropped %s %s signal for entity %s", sig.Kind, sig.Direction, sig.Parent)
			}
		}
	}
}
