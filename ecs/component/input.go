package component

// Input stores per-frame input state for an entity. Jump is the held level,
// JumpPressed the edge of this frame.
type Input struct {
	Left        bool
	Right       bool
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
