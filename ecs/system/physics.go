package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

const (
	collisionTypeWorld cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeGroundDetector
	collisionTypeLeftWallDetector
	collisionTypeRightWallDetector
)

// DefaultGravity pulls bodies down the y axis (y grows upward).
const DefaultGravity = -500.0

// PhysicsSystem is the boundary to the Chipmunk space. It registers bodies
// and sensors for entities carrying PhysicsBody, Transform and
// CollisionLayer, pushes Velocity into the bodies, steps the space by the
// tick's elapsed time and turns begin/separate callbacks into CollisionEvents
// on the world queue, in the order the engine reported them.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	logger        *log.Logger

	entities      map[ecs.Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]ecs.Entity
	shapeLayers   map[*cp.Shape]component.CollisionLayer
	pending       []ecs.CollisionEvent
}

type bodyInfo struct {
	body     *cp.Body
	shape    *cp.Shape
	ownsBody bool
	parent   ecs.Entity
	offsetX  float64
	offsetY  float64
	dynamic  bool

	// pulled is the body velocity copied into Velocity after the last step.
	// Components the game changed since then are held in want and applied
	// inside the engine's velocity update, ahead of contact solving.
	pulled    cp.Vector
	want      cp.Vector
	overrideX bool
	overrideY bool
}

// updateVelocity integrates gravity and damping, then applies the velocity
// written by the decision systems so the solver still clamps it against
// contacts in the same step.
func (info *bodyInfo) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, gravity, damping, dt)
	info.applyOverride(body)
}

func (info *bodyInfo) applyOverride(body *cp.Body) {
	if !info.overrideX && !info.overrideY {
		return
	}
	v := body.Velocity()
	if info.overrideX {
		v.X = info.want.X
	}
	if info.overrideY {
		v.Y = info.want.Y
	}
	body.SetVelocity(v.X, v.Y)
}

func NewPhysicsSystem(gravity float64, logger *log.Logger) *PhysicsSystem {
	if logger == nil {
		logger = log.Default()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:         space,
		logger:        logger,
		entities:      make(map[ecs.Entity]*bodyInfo),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
		shapeLayers:   make(map[*cp.Shape]component.CollisionLayer),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetGravity updates the vertical gravity of the space.
func (ps *PhysicsSystem) SetGravity(gravity float64) {
	if ps == nil || ps.space == nil {
		return
	}
	ps.space.SetGravity(cp.Vector{X: 0, Y: gravity})
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.pushVelocities(w)

	if dt := w.DeltaTime(); dt > 0 {
		ps.space.Step(dt)
	} else {
		ps.applyVelocities()
	}

	ps.pullState(w)
	ps.flushEvents(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}
	for _, t := range []cp.CollisionType{
		collisionTypePlayer,
		collisionTypeGroundDetector,
		collisionTypeLeftWallDetector,
		collisionTypeRightWallDetector,
	} {
		handler := ps.space.NewCollisionHandler(t, collisionTypeWorld)
		handler.UserData = ps
		handler.BeginFunc = beginContact
		handler.SeparateFunc = separateContact
	}
	ps.handlersReady = true
}

func beginContact(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	sys.record(arb, ecs.CollisionStarted, nil)
	return true
}

func separateContact(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return
	}
	set := arb.ContactPointSet()
	normals := make([]cp.Vector, 0, set.Count)
	for i := 0; i < set.Count; i++ {
		normals = append(normals, set.Normal)
	}
	sys.record(arb, ecs.CollisionStopped, normals)
}

func (ps *PhysicsSystem) record(arb *cp.Arbiter, dir ecs.CollisionDirection, normals []cp.Vector) {
	shapeA, shapeB := arb.Shapes()
	ps.pending = append(ps.pending, ecs.CollisionEvent{
		A:         ps.participant(shapeA),
		B:         ps.participant(shapeB),
		Direction: dir,
		Normals:   normals,
	})
}

func (ps *PhysicsSystem) participant(shape *cp.Shape) ecs.Participant {
	return ecs.Participant{Entity: ps.shapeToEntity[shape], Layers: ps.shapeLayers[shape]}
}

func (ps *PhysicsSystem) flushEvents(w *ecs.World) {
	for _, evt := range ps.pending {
		if !w.Events().Push(ecs.Event{Type: ecs.EventCollision, Data: evt}) {
			ps.logger.Printf("physics: event queue full, dropped %s event", evt.Direction)
		}
	}
	ps.pending = ps.pending[:0]
}

func collisionTypeFor(layers component.CollisionLayer) cp.CollisionType {
	switch {
	case layers.ContainsGroup(component.LayerWorld):
		return collisionTypeWorld
	case layers.ContainsGroup(component.LayerGroundDetector):
		return collisionTypeGroundDetector
	case layers.ContainsGroup(component.LayerLeftWallDetector):
		return collisionTypeLeftWallDetector
	case layers.ContainsGroup(component.LayerRightWallDetector):
		return collisionTypeRightWallDetector
	default:
		return collisionTypePlayer
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.CollisionLayerComponent.Kind(),
	)
	// Bodies first so that sensors can attach to their parent's body.
	var children []ecs.Entity
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		if ecs.Has(w, e, component.ParentComponent.Kind()) {
			children = append(children, e)
			continue
		}
		ps.register(w, e, 0)
	}
	for _, e := range children {
		parent, ok := ecs.Get(w, e, component.ParentComponent.Kind())
		if !ok {
			continue
		}
		ps.register(w, e, ecs.Entity(parent.Entity))
	}
}

func (ps *PhysicsSystem) register(w *ecs.World, e ecs.Entity, parent ecs.Entity) {
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	layers, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
	if !ok {
		return
	}

	info := &bodyInfo{parent: parent, offsetX: pb.OffsetX, offsetY: pb.OffsetY}
	var cx, cy float64
	switch {
	case parent.Valid():
		owner := ps.entities[parent]
		if owner == nil || owner.body == nil {
			// Parent not registered yet; retry next tick.
			return
		}
		info.body = owner.body
		cx, cy = pb.OffsetX, pb.OffsetY
		if !owner.dynamic {
			if pt, ok := ecs.Get(w, parent, component.TransformComponent.Kind()); ok {
				cx += pt.X
				cy += pt.Y
			}
		}
	case pb.Kind == component.BodyDynamic:
		mass := pb.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := math.Inf(1)
		if !pb.LockRotation {
			if pb.Radius > 0 {
				moment = cp.MomentForCircle(mass, 0, pb.Radius, cp.Vector{})
			} else {
				moment = cp.MomentForBox(mass, pb.HalfWidth*2, pb.HalfHeight*2)
			}
		}
		body := cp.NewBody(mass, moment)
		body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		body.SetAngle(t.Rotation)
		body.SetVelocityUpdateFunc(info.updateVelocity)
		ps.space.AddBody(body)
		info.body = body
		info.ownsBody = true
		info.dynamic = true
		cx, cy = pb.OffsetX, pb.OffsetY
	default:
		info.body = ps.space.StaticBody
		cx, cy = t.X+pb.OffsetX, t.Y+pb.OffsetY
	}

	shape := newShape(info.body, pb, cx, cy)
	shape.SetFriction(pb.Friction)
	shape.SetSensor(pb.Kind == component.BodySensor)
	shape.SetFilter(layers.Filter())
	shape.SetCollisionType(collisionTypeFor(*layers))
	ps.space.AddShape(shape)
	info.shape = shape

	ps.entities[e] = info
	ps.shapeToEntity[shape] = e
	ps.shapeLayers[shape] = *layers

	pb.Body = info.body
	pb.Shape = shape
}

func newShape(body *cp.Body, pb *component.PhysicsBody, cx, cy float64) *cp.Shape {
	if pb.Radius > 0 {
		return cp.NewCircle(body, pb.Radius, cp.Vector{X: cx, Y: cy})
	}
	hw, hh := pb.HalfWidth, pb.HalfHeight
	if hw <= 0 || hh <= 0 {
		hw, hh = 16, 16
	}
	bb := cp.BB{L: cx - hw, B: cy - hh, R: cx + hw, T: cy + hh}
	return cp.NewBox2(body, bb, 0)
}

// pushVelocities marks the velocity components the game wrote since the last
// pull. They reach the body through updateVelocity during Step.
func (ps *PhysicsSystem) pushVelocities(w *ecs.World) {
	for e, info := range ps.entities {
		if !info.dynamic {
			continue
		}
		info.overrideX, info.overrideY = false, false
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			continue
		}
		info.want = cp.Vector{X: vel.X, Y: vel.Y}
		info.overrideX = vel.X != info.pulled.X
		info.overrideY = vel.Y != info.pulled.Y
	}
}

// applyVelocities writes pending overrides directly when no step runs.
func (ps *PhysicsSystem) applyVelocities() {
	for _, info := range ps.entities {
		if info.dynamic {
			info.applyOverride(info.body)
		}
	}
}

func (ps *PhysicsSystem) pullState(w *ecs.World) {
	for e, info := range ps.entities {
		if !info.dynamic {
			continue
		}
		pos := info.body.Position()
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X = pos.X
			t.Y = pos.Y
			t.Rotation = info.body.Angle()
		}
		v := info.body.Velocity()
		info.pulled = v
		info.overrideX, info.overrideY = false, false
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			vel.X = v.X
			vel.Y = v.Y
		}
	}
	for e, info := range ps.entities {
		if !info.parent.Valid() {
			continue
		}
		owner := ps.entities[info.parent]
		if owner == nil || !owner.dynamic {
			continue
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			pos := owner.body.Position()
			t.X = pos.X + info.offsetX
			t.Y = pos.Y + info.offsetY
		}
	}
}

// cleanupEntities removes shapes and bodies of entities that died or lost
// their PhysicsBody. Removing a shape fires its separate callbacks, so the
// shape mapping is dropped only afterwards.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	var gone []ecs.Entity
	for e := range ps.entities {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			gone = append(gone, e)
		}
	}
	for e, info := range ps.entities {
		if info.parent.Valid() && ps.entities[info.parent] == nil {
			gone = append(gone, e)
		}
	}
	for _, e := range gone {
		for child, info := range ps.entities {
			if info.parent == e {
				ps.remove(child)
			}
		}
		ps.remove(e)
	}
}

func (ps *PhysicsSystem) remove(e ecs.Entity) {
	info := ps.entities[e]
	if info == nil {
		return
	}
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
		delete(ps.shapeToEntity, info.shape)
		delete(ps.shapeLayers, info.shape)
	}
	if info.ownsBody && info.body != nil {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
}
