package component

// JumpTrigger selects which input level fires a jump.
type JumpTrigger int

const (
	JumpOnHeld JumpTrigger = iota
	JumpOnPress
)

// Controller holds the movement tuning of a player.
type Controller struct {
	MoveSpeed    float64
	JumpSpeed    float64
	WallJumpX    float64
	WallJumpY    float64
	WallJumpLock float64
	Trigger      JumpTrigger
}

var ControllerComponent = NewComponent[Controller]()

// DefaultController returns the tuning used when an entity carries none.
func DefaultController() Controller {
	return Controller{
		MoveSpeed:    100,
		JumpSpeed:    250,
		WallJumpX:    200,
		WallJumpY:    200,
		WallJumpLock: 0.25,
		Trigger:      JumpOnHeld,
	}
}
