// Package tilemap turns raw map documents into render-ready maps.
package tilemap

import (
	"github.com/milk9111/resonance/levels"
	"github.com/milk9111/resonance/vibrancy"
)

// EntityType is the behavior class of a map object.
type EntityType string

const (
	EntityNPC            EntityType = "npc"
	EntityChest          EntityType = "chest"
	EntityTransition     EntityType = "transition"
	EntityTrigger        EntityType = "trigger"
	EntityResonanceStone EntityType = "resonance-stone"
)

// EventHook references a scripted event handler. Its contents are owned by
// the scripting layer.
type EventHook struct {
	EventClass string
	ImportPath string
}

// TransitionTarget is where a transition zone leads.
type TransitionTarget struct {
	// Entity is the name of the transition object.
	Entity     string
	MapID      string
	SpawnID    string
	ChildWorld bool
}

// EntityDescriptor is one object with game behavior. Position and size are
// in tiles.
type EntityDescriptor struct {
	Type       EntityType
	Name       string
	X          int
	Y          int
	Width      int
	Height     int
	Properties map[string]any
	Hook       *EventHook
	// Target is set on transition entities that lead somewhere.
	Target *TransitionTarget
}

// LoadedMap is the immutable render-ready form of one map.
type LoadedMap struct {
	ID         string
	Width      int
	Height     int
	TileWidth  int
	TileHeight int

	// LayerOrder lists layer names bottom to top.
	LayerOrder []string
	// Layers holds one row-major buffer of Width*Height tile indices per
	// layer. Index 0 is empty.
	Layers map[string][]uint16
	// TileStrings maps a tile index back to its semantic id; entry 0 is "".
	TileStrings []string
	// Collision holds one flag per cell; 1 is blocked.
	Collision []uint8

	Entities      []EntityDescriptor
	SpawnPoints   []levels.SpawnPoint
	VibrancyAreas []vibrancy.Area
	Transitions   []levels.Transition
}

// PixelSize returns the map extent in pixels.
func (m *LoadedMap) PixelSize() (int, int) {
	if m == nil {
		return 0, 0
	}
	return m.Width * m.TileWidth, m.Height * m.TileHeight
}

// Layer returns the buffer for a layer, or nil.
func (m *LoadedMap) Layer(name string) []uint16 {
	if m == nil {
		return nil
	}
	return m.Layers[name]
}

// TileString resolves a tile index to its semantic id.
func (m *LoadedMap) TileString(idx uint16) string {
	if m == nil || int(idx) >= len(m.TileStrings) {
		return ""
	}
	return m.TileStrings[idx]
}

// Blocked reports whether the cell is impassable. Cells outside the map are
// blocked.
func (m *LoadedMap) Blocked(tx, ty int) bool {
	if m == nil || tx < 0 || ty < 0 || tx >= m.Width || ty >= m.Height {
		return true
	}
	return m.Collision[ty*m.Width+tx] != 0
}

// EntitiesOfType returns the entities with type t, in map order.
func (m *LoadedMap) EntitiesOfType(t EntityType) []EntityDescriptor {
	if m == nil {
		return nil
	}
	var out []EntityDescriptor
	for _, e := range m.Entities {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
