package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type WorldTag struct{}

var WorldTagComponent = NewComponent[WorldTag]()

// Name is a human-readable label shown by the debug overlay.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
