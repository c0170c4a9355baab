package component

// DetectorKind names which contact flag a sensor feeds.
type DetectorKind int

const (
	DetectorGround DetectorKind = iota + 1
	DetectorLeftWall
	DetectorRightWall
)

func (k DetectorKind) String() string {
	switch k {
	case DetectorGround:
		return "ground"
	case DetectorLeftWall:
		return "left_wall"
	case DetectorRightWall:
		return "right_wall"
	default:
		return "unknown"
	}
}

// Layer returns the collision group a detector of this kind carries.
func (k DetectorKind) Layer() (Layer, bool) {
	switch k {
	case DetectorGround:
		return LayerGroundDetector, true
	case DetectorLeftWall:
		return LayerLeftWallDetector, true
	case DetectorRightWall:
		return LayerRightWallDetector, true
	default:
		return 0, false
	}
}

// Detector tags a sensor child of the player.
type Detector struct {
	Kind DetectorKind
}

var DetectorComponent = NewComponent[Detector]()

// Parent links a child entity back to its owner (ecs.Entity is uint64).
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()
