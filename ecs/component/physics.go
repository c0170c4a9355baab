package component

import "github.com/jakecoffman/cp"

// BodyKind selects how the physics engine treats a body.
type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyStatic
	// BodySensor reports overlaps but applies no force. A sensor with a
	// Parent is attached to the parent's body at OffsetX/OffsetY.
	BodySensor
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Radius > 0 makes a circle, otherwise HalfWidth/HalfHeight make a box.
type PhysicsBody struct {
	Body         *cp.Body
	Shape        *cp.Shape
	Kind         BodyKind
	Radius       float64
	HalfWidth    float64
	HalfHeight   float64
	OffsetX      float64
	OffsetY      float64
	Mass         float64
	Friction     float64
	LockRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Velocity is the linear velocity the controller systems read and write.
// The physics system pushes it into the body before stepping and pulls the
// integrated value back afterwards.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
