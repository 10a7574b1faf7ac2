package component

import "github.com/milk9111/resonance/tilemap"

// TransitionZone defines an area that sends the player to another map when
// entered. Bounds come from the entity's Transform.
type TransitionZone struct {
	Target tilemap.TransitionTarget
}

var TransitionZoneComponent = NewComponent[TransitionZone]()
