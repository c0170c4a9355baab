package component

// Busy locks out jump and movement decisions until Remaining (seconds)
// runs out. Adding a new Busy replaces the running one.
type Busy struct {
	Remaining float64
	Duration  float64
}

var BusyComponent = NewComponent[Busy]()
