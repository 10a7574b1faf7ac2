package component

// Hook is the opaque gameplay event attached to an object. It fires once each
// time the player enters the object's bounds.
type Hook struct {
	EventClass string
	ImportPath string
	Inside     bool
}

var HookComponent = NewComponent[Hook]()
