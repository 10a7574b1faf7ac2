// Package transition sequences map swaps. Every step is a pure function on a
// State value; calling a step from the wrong phase returns the input
// unchanged.
package transition

import (
	"math"
	"strings"

	"github.com/milk9111/resonance/common"
	"github.com/milk9111/resonance/tilemap"
)

// Phase is where a transition is in its lifecycle.
type Phase uint8

const (
	Idle Phase = iota
	Loading
	Crossfade
	Complete
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Crossfade:
		return "crossfade"
	case Complete:
		return "complete"
	}
	return "idle"
}

// Kind tells whether the target map replaces the current world or is entered
// as a child of it.
type Kind uint8

const (
	SameWorld Kind = iota
	ChildWorld
)

func (k Kind) String() string {
	if k == ChildWorld {
		return "child-world"
	}
	return "same-world"
}

// ParseKind maps an authored transition type to a Kind.
func ParseKind(s string) Kind {
	if tilemap.IsChildWorldType(strings.TrimSpace(s)) {
		return ChildWorld
	}
	return SameWorld
}

// State is one snapshot of the machine.
type State struct {
	Phase    Phase
	MapID    string
	SpawnID  string
	Kind     Kind
	Progress float64
	Map      *tilemap.LoadedMap
	// Seq increases on every Begin so a caller can tell which request an
	// asynchronous load belongs to.
	Seq uint64
}

// Result is what a finished transition hands back to the caller.
type Result struct {
	Map     *tilemap.LoadedMap
	SpawnID string
	Kind    Kind
}

// Active reports whether a transition is in flight.
func (s State) Active() bool {
	return s.Phase != Idle
}

// Begin starts a transition to mapID. It is legal from any phase and
// supersedes whatever was in flight.
func Begin(s State, mapID, spawnID string, kind Kind) State {
	return State{
		Phase:   Loading,
		MapID:   mapID,
		SpawnID: spawnID,
		Kind:    kind,
		Seq:     s.Seq + 1,
	}
}

// OnMapLoaded attaches the loaded map and starts the crossfade.
func OnMapLoaded(s State, m *tilemap.LoadedMap) State {
	if s.Phase != Loading {
		return s
	}
	s.Phase = Crossfade
	s.Map = m
	s.Progress = 0
	return s
}

// UpdateCrossfade advances the crossfade by deltaMs of a durationMs fade. A
// non-positive duration finishes immediately.
func UpdateCrossfade(s State, deltaMs, durationMs float64) State {
	if s.Phase != Crossfade {
		return s
	}
	if !(durationMs > 0) || math.IsInf(durationMs, 1) {
		s.Progress = 1
	} else if deltaMs > 0 {
		s.Progress = common.Clamp01(s.Progress + deltaMs/durationMs)
	}
	if s.Progress >= 1 {
		s.Progress = 1
		s.Phase = Complete
	}
	return s
}

// CompleteTransition finishes a completed transition, returning the idle
// state and the map and spawn to place the player at. ok is false, and s is
// returned unchanged, outside the Complete phase.
func CompleteTransition(s State) (State, Result, bool) {
	if s.Phase != Complete {
		return s, Result{}, false
	}
	res := Result{Map: s.Map, SpawnID: s.SpawnID, Kind: s.Kind}
	return State{Seq: s.Seq}, res, true
}

// Alpha returns the visibility of the incoming map: 0 while loading, the
// crossfade progress while fading and 1 once complete.
func Alpha(s State) float64 {
	switch s.Phase {
	case Crossfade:
		return s.Progress
	case Complete:
		return 1
	}
	return 0
}
