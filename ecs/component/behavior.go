package component

import "github.com/milk9111/resonance/tilemap"

// Behavior carries what a map object is, for the gameplay layer to act on.
type Behavior struct {
	Type       tilemap.EntityType
	Name       string
	Properties map[string]any
}

var BehaviorComponent = NewComponent[Behavior]()
