package scene

import (
	"github.com/milk9111/resonance/fog"
	"github.com/milk9111/resonance/physics"
	"github.com/milk9111/resonance/tilemap"
	"github.com/milk9111/resonance/vibrancy"
)

// Stage bundles one loaded map with the state derived from it. The vibrancy
// store is shared by reference with the fog overlay and the mote spawner.
type Stage struct {
	Map         *tilemap.LoadedMap
	Vibrancy    *vibrancy.Map
	Fog         *fog.Overlay
	Physics     *physics.World
	Transitions []tilemap.EntityDescriptor
}

// newStage derives a stage from m. saved overrides the authored state of
// areas the player already changed on an earlier visit.
func newStage(m *tilemap.LoadedMap, saved map[string]vibrancy.State) *Stage {
	if m == nil {
		m = tilemap.LoadMapData(nil)
	}
	areas := append([]vibrancy.Area(nil), m.VibrancyAreas...)
	for i := range areas {
		if st, ok := saved[areas[i].ID]; ok && st.Valid() {
			areas[i].State = st
		}
	}
	store := vibrancy.NewMap(areas)
	return &Stage{
		Map:         m,
		Vibrancy:    store,
		Fog:         fog.NewOverlay(store, m.Width, m.Height),
		Physics:     physics.NewWorld(m),
		Transitions: m.EntitiesOfType(tilemap.EntityTransition),
	}
}

// ID returns the map id, or "" for a nil stage.
func (st *Stage) ID() string {
	if st == nil || st.Map == nil {
		return ""
	}
	return st.Map.ID
}

// snapshot returns the current state of every area.
func (st *Stage) snapshot() map[string]vibrancy.State {
	if st == nil {
		return nil
	}
	out := make(map[string]vibrancy.State, len(st.Vibrancy.Areas()))
	for _, a := range st.Vibrancy.Areas() {
		out[a.ID] = a.State
	}
	return out
}
