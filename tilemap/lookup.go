package tilemap

import "github.com/milk9111/resonance/levels"

// GetSpawnPosition returns the pixel position of the top-left of the named
// spawn point's cell.
func GetSpawnPosition(m *LoadedMap, spawnID string) (x, y float64, ok bool) {
	if m == nil || spawnID == "" {
		return 0, 0, false
	}
	for _, sp := range m.SpawnPoints {
		if sp.Key() == spawnID {
			return sp.X * float64(m.TileWidth), sp.Y * float64(m.TileHeight), true
		}
	}
	return 0, 0, false
}

// DefaultSpawn returns the first spawn point of the map.
func (m *LoadedMap) DefaultSpawn() (levels.SpawnPoint, bool) {
	if m == nil || len(m.SpawnPoints) == 0 {
		return levels.SpawnPoint{}, false
	}
	return m.SpawnPoints[0], true
}

// SpawnPositionOrDefault resolves spawnID, then the first spawn point, then
// the map centre.
func (m *LoadedMap) SpawnPositionOrDefault(spawnID string) (float64, float64) {
	if x, y, ok := GetSpawnPosition(m, spawnID); ok {
		return x, y
	}
	if sp, ok := m.DefaultSpawn(); ok {
		return sp.X * float64(m.TileWidth), sp.Y * float64(m.TileHeight)
	}
	w, h := m.PixelSize()
	return float64(w) / 2, float64(h) / 2
}

// FindTransitionAtPosition returns the target of the first transition entity
// whose tile rectangle contains the pixel point. Entities of other types and
// transitions without a destination are ignored.
func FindTransitionAtPosition(entities []EntityDescriptor, px, py float64, tileW, tileH int) (TransitionTarget, bool) {
	if tileW <= 0 || tileH <= 0 {
		return TransitionTarget{}, false
	}
	for _, e := range entities {
		if e.Type != EntityTransition || e.Target == nil {
			continue
		}
		if containsPixel(e, px, py, tileW, tileH) {
			return *e.Target, true
		}
	}
	return TransitionTarget{}, false
}

// TransitionAt is FindTransitionAtPosition over the map's own entities.
func (m *LoadedMap) TransitionAt(px, py float64) (TransitionTarget, bool) {
	if m == nil {
		return TransitionTarget{}, false
	}
	return FindTransitionAtPosition(m.Entities, px, py, m.TileWidth, m.TileHeight)
}

// Entity returns the named entity.
func (m *LoadedMap) Entity(name string) (EntityDescriptor, bool) {
	if m == nil {
		return EntityDescriptor{}, false
	}
	for _, e := range m.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return EntityDescriptor{}, false
}

func containsPixel(e EntityDescriptor, px, py float64, tileW, tileH int) bool {
	left := float64(e.X * tileW)
	top := float64(e.Y * tileH)
	right := float64((e.X + e.Width) * tileW)
	bottom := float64((e.Y + e.Height) * tileH)
	return px >= left && px < right && py >= top && py < bottom
}
