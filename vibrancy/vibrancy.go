// Package vibrancy holds the per-area "remembered" state of a map. One Map is
// created per loaded map and shared by reference with the fog overlay, the mote
// spawner and gameplay; only gameplay writes to it.
package vibrancy

import (
	"fmt"
	"strings"
)

// State is how much of an area has been remembered.
type State uint8

const (
	Forgotten State = iota
	Partial
	Remembered
)

func (s State) String() string {
	switch s {
	case Forgotten:
		return "forgotten"
	case Partial:
		return "partial"
	case Remembered:
		return "remembered"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Valid reports whether s is one of the three known states.
func (s State) Valid() bool {
	return s <= Remembered
}

// ParseState maps an authored state name to a State. Unknown or empty names
// read as Remembered so an unauthored area never hides content.
func ParseState(name string) State {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "forgotten":
		return Forgotten
	case "partial":
		return Partial
	default:
		return Remembered
	}
}

// Area is a named rectangle in tile coordinates.
type Area struct {
	ID     string
	X      int
	Y      int
	Width  int
	Height int
	State  State
}

// Contains reports whether the tile (tx, ty) lies inside the area.
func (a Area) Contains(tx, ty int) bool {
	return tx >= a.X && tx-a.X < a.Width && ty >= a.Y && ty-a.Y < a.Height
}

// Clip returns the half-open span [start, end) of the area's columns or rows
// (pos, size) that falls inside [0, limit). end <= start means no overlap.
func Clip(pos, size, limit int) (start, end int) {
	if size <= 0 || pos >= limit {
		return 0, 0
	}
	start = max(pos, 0)
	end = limit
	if pos >= 0 && size < limit-pos {
		end = pos + size
	} else if pos < 0 && size+pos < limit {
		// pos+size cannot overflow: pos is negative and size positive.
		end = pos + size
	}
	return start, end
}

// Change describes one state write.
type Change struct {
	AreaID string
	From   State
	To     State
}

// Map is the authoritative area store. Areas keep their authored order:
// where areas overlap, the later one wins.
type Map struct {
	areas     []Area
	index     map[string]int
	version   uint64
	listeners []func(Change)
}

// NewMap copies areas into a new store.
func NewMap(areas []Area) *Map {
	m := &Map{
		areas: make([]Area, len(areas)),
		index: make(map[string]int, len(areas)),
	}
	copy(m.areas, areas)
	for i, a := range m.areas {
		m.index[a.ID] = i
	}
	return m
}

// Areas returns the areas in authored order. The slice is owned by the Map
// and must be treated as read-only.
func (m *Map) Areas() []Area {
	if m == nil {
		return nil
	}
	return m.areas
}

// Version increases on every effective state change.
func (m *Map) Version() uint64 {
	if m == nil {
		return 0
	}
	return m.version
}

// Area looks an area up by id.
func (m *Map) Area(id string) (Area, bool) {
	if m == nil {
		return Area{}, false
	}
	i, ok := m.index[id]
	if !ok {
		return Area{}, false
	}
	return m.areas[i], true
}

// State returns the state of the area with the given id.
func (m *Map) State(id string) (State, bool) {
	a, ok := m.Area(id)
	return a.State, ok
}

// StateAt returns the state covering tile (tx, ty). The last containing area
// wins; tiles outside every area are Remembered.
func (m *Map) StateAt(tx, ty int) State {
	if m == nil {
		return Remembered
	}
	for i := len(m.areas) - 1; i >= 0; i-- {
		if m.areas[i].Contains(tx, ty) {
			return m.areas[i].State
		}
	}
	return Remembered
}

// AreaAt returns the topmost area containing tile (tx, ty).
func (m *Map) AreaAt(tx, ty int) (Area, bool) {
	if m == nil {
		return Area{}, false
	}
	for i := len(m.areas) - 1; i >= 0; i-- {
		if m.areas[i].Contains(tx, ty) {
			return m.areas[i], true
		}
	}
	return Area{}, false
}

// SetState writes a new state for an area and notifies subscribers. It
// returns false when the area does not exist. Writing the current state is a
// no-op. An invalid state panics.
func (m *Map) SetState(id string, s State) bool {
	if m == nil {
		return false
	}
	if !s.Valid() {
		panic(fmt.Sprintf("vibrancy: invalid state %d for area %q", uint8(s), id))
	}
	i, ok := m.index[id]
	if !ok {
		return false
	}
	prev := m.areas[i].State
	if prev == s {
		return true
	}
	m.areas[i].State = s
	m.version++
	change := Change{AreaID: id, From: prev, To: s}
	for _, fn := range m.listeners {
		fn(change)
	}
	return true
}

// Subscribe registers fn to run after every effective state change.
func (m *Map) Subscribe(fn func(Change)) {
	if m == nil || fn == nil {
		return
	}
	m.listeners = append(m.listeners, fn)
}
