package component

// Grounded marks a player whose ground detector touches world geometry.
type Grounded struct{}

var GroundedComponent = NewComponent[Grounded]()

// TouchingLeftWall marks a player whose left detector touches world geometry.
type TouchingLeftWall struct{}

var TouchingLeftWallComponent = NewComponent[TouchingLeftWall]()

// TouchingRightWall marks a player whose right detector touches world geometry.
type TouchingRightWall struct{}

var TouchingRightWallComponent = NewComponent[TouchingRightWall]()

// ContactFlags is a read-only snapshot of the contact markers on one entity.
type ContactFlags struct {
	Grounded          bool
	TouchingLeftWall  bool
	TouchingRightWall bool
	Busy              bool
	BusyRemaining     float64
}
