package component

import "github.com/jakecoffman/cp"

// Layer is one collision identity.
type Layer uint8

const (
	LayerWorld Layer = iota
	LayerPlayer
	LayerGroundDetector
	LayerLeftWallDetector
	LayerRightWallDetector
	layerCount
)

var layerNames = [...]string{
	LayerWorld:             "world",
	LayerPlayer:            "player",
	LayerGroundDetector:    "ground_detector",
	LayerLeftWallDetector:  "left_wall_detector",
	LayerRightWallDetector: "right_wall_detector",
}

func (l Layer) String() string {
	if l < layerCount {
		return layerNames[l]
	}
	return "unknown"
}

// LayerMask is a bitset with one bit per Layer.
type LayerMask uint32

// MaskOf builds a mask from layers.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m = m.With(l)
	}
	return m
}

func (m LayerMask) With(l Layer) LayerMask {
	if l >= layerCount {
		return m
	}
	return m | 1<<l
}

func (m LayerMask) Has(l Layer) bool {
	return l < layerCount && m&(1<<l) != 0
}

func (m LayerMask) Bits() uint32 {
	return uint32(m)
}

// CollisionLayer declares an entity's own identity (Group) and the
// identities it is willing to generate contacts against (Mask).
type CollisionLayer struct {
	Group LayerMask
	Mask  LayerMask
}

// NewCollisionLayer returns a layer pairing with a single group.
func NewCollisionLayer(group Layer, mask ...Layer) CollisionLayer {
	return CollisionLayer{Group: MaskOf(group), Mask: MaskOf(mask...)}
}

func (c CollisionLayer) ContainsGroup(l Layer) bool {
	return c.Group.Has(l)
}

// Accepts reports whether a pair of bodies may generate events: each side
// must mask the other's group.
func (c CollisionLayer) Accepts(other CollisionLayer) bool {
	return c.Mask&other.Group != 0 && other.Mask&c.Group != 0
}

// Filter converts the pairing into a Chipmunk shape filter.
func (c CollisionLayer) Filter() cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(c.Group),
		Mask:       uint(c.Mask),
	}
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
