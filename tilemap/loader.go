package tilemap

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/resonance/common"
	"github.com/milk9111/resonance/levels"
	"github.com/milk9111/resonance/vibrancy"
)

// MaxMapDimension caps each map axis, in tiles. Larger documents are
// truncated to it.
const MaxMapDimension = 4096

// LoadMapData converts a raw document into a LoadedMap. It never fails:
// missing or malformed data degrades to empty tiles, passable cells and
// dropped objects.
func LoadMapData(raw *levels.RawMap) *LoadedMap {
	if raw == nil {
		raw = &levels.RawMap{}
	}

	width := min(max(raw.Width, 0), MaxMapDimension)
	height := min(max(raw.Height, 0), MaxMapDimension)
	cells := width * height

	m := &LoadedMap{
		ID:         raw.ID,
		Width:      width,
		Height:     height,
		TileWidth:  raw.TileWidth,
		TileHeight: raw.TileHeight,
		Layers:     make(map[string][]uint16),
	}
	if m.TileWidth <= 0 {
		m.TileWidth = common.TileSize
	}
	if m.TileHeight <= 0 {
		m.TileHeight = common.TileSize
	}

	m.LayerOrder = layerOrder(raw)
	table := newStringTable()
	for _, name := range m.LayerOrder {
		src := raw.Layers[name]
		buf := make([]uint16, cells)
		for i := 0; i < cells && i < len(src); i++ {
			buf[i] = table.index(string(src[i]))
		}
		m.Layers[name] = buf
	}
	m.TileStrings = table.strings

	m.Collision = make([]uint8, cells)
	for i := 0; i < cells && i < len(raw.Collision); i++ {
		if raw.Collision[i] != 0 {
			m.Collision[i] = 1
		}
	}

	m.SpawnPoints = append([]levels.SpawnPoint(nil), raw.SpawnPoints...)
	m.Transitions = append([]levels.Transition(nil), raw.Transitions...)
	m.VibrancyAreas = vibrancyAreas(raw.VibrancyAreas)
	m.Entities, m.SpawnPoints = extractEntities(raw, m.SpawnPoints)

	return m
}

// layerOrder returns the authored order followed by any layers missing from
// it, sorted by name so the result is stable.
func layerOrder(raw *levels.RawMap) []string {
	seen := make(map[string]bool, len(raw.LayerOrder))
	order := make([]string, 0, len(raw.LayerOrder))
	for _, name := range raw.LayerOrder {
		if seen[name] {
			continue
		}
		seen[name] = true
		order = append(order, name)
	}
	var extra []string
	for name := range raw.Layers {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

type stringTable struct {
	strings []string
	lookup  map[string]uint16
}

func newStringTable() *stringTable {
	return &stringTable{strings: []string{""}, lookup: map[string]uint16{"": 0}}
}

// index returns the table index of s, appending it on first sight. Once the
// 16-bit index space is exhausted new strings read as empty.
func (t *stringTable) index(s string) uint16 {
	if idx, ok := t.lookup[s]; ok {
		return idx
	}
	if len(t.strings) > math.MaxUint16 {
		return 0
	}
	idx := uint16(len(t.strings))
	t.strings = append(t.strings, s)
	t.lookup[s] = idx
	return idx
}

func vibrancyAreas(raw []levels.RawVibrancyArea) []vibrancy.Area {
	out := make([]vibrancy.Area, 0, len(raw))
	for _, a := range raw {
		out = append(out, vibrancy.Area{
			ID:     a.ID,
			X:      floorInt(a.X),
			Y:      floorInt(a.Y),
			Width:  floorInt(a.Width),
			Height: floorInt(a.Height),
			State:  vibrancy.ParseState(a.InitialState),
		})
	}
	return out
}

// extractEntities maps behavioral objects to descriptors. Spawn objects are
// not entities; they are added to the spawn list unless a spawn point with
// the same id already exists.
func extractEntities(raw *levels.RawMap, spawns []levels.SpawnPoint) ([]EntityDescriptor, []levels.SpawnPoint) {
	hooks := make(map[string]*EventHook, len(raw.Hooks))
	for _, h := range raw.Hooks {
		if _, ok := hooks[h.ObjectName]; ok || h.ObjectName == "" {
			continue
		}
		hooks[h.ObjectName] = &EventHook{EventClass: h.EventClass, ImportPath: h.ImportPath}
	}
	transitions := make(map[string]levels.Transition, len(raw.Transitions))
	for _, tr := range raw.Transitions {
		transitions[tr.ID] = tr
	}
	known := make(map[string]bool, len(spawns))
	for _, sp := range spawns {
		known[sp.Key()] = true
	}

	entities := make([]EntityDescriptor, 0, len(raw.Objects))
	for _, obj := range raw.Objects {
		kind := strings.ToLower(strings.TrimSpace(obj.Type))
		if kind == "spawn" {
			if obj.Name != "" && !known[obj.Name] {
				known[obj.Name] = true
				spawns = append(spawns, levels.SpawnPoint{ID: obj.Name, X: obj.X, Y: obj.Y})
			}
			continue
		}

		var et EntityType
		switch kind {
		case "npc":
			et = EntityNPC
			if isResonanceStone(obj.Properties) {
				et = EntityResonanceStone
			}
		case "chest":
			et = EntityChest
		case "transition":
			et = EntityTransition
		case "trigger":
			et = EntityTrigger
		default:
			continue
		}

		ed := EntityDescriptor{
			Type:       et,
			Name:       obj.Name,
			X:          floorInt(obj.X),
			Y:          floorInt(obj.Y),
			Width:      max(floorInt(obj.Width), 1),
			Height:     max(floorInt(obj.Height), 1),
			Properties: obj.Properties,
			Hook:       hooks[obj.Name],
		}
		if ed.Properties == nil {
			ed.Properties = map[string]any{}
		}
		if et == EntityTransition {
			ed.Target = resolveTarget(obj, transitions)
		}
		entities = append(entities, ed)
	}
	return entities, spawns
}

func isResonanceStone(props map[string]any) bool {
	if truthy(props["resonanceStone"]) {
		return true
	}
	if s, ok := props["subtype"].(string); ok {
		switch strings.ToLower(s) {
		case "resonance-stone", "resonance_stone", "resonancestone":
			return true
		}
	}
	return false
}

// resolveTarget reads the destination from the object's properties, falling
// back to the transition entry with the object's name.
func resolveTarget(obj levels.RawObject, transitions map[string]levels.Transition) *TransitionTarget {
	target := TransitionTarget{
		Entity:  obj.Name,
		MapID:   stringProp(obj.Properties, "targetMap"),
		SpawnID: stringProp(obj.Properties, "targetSpawn"),
	}
	kind := stringProp(obj.Properties, "transitionType")
	if tr, ok := transitions[obj.Name]; ok {
		if target.MapID == "" {
			target.MapID = tr.TargetMap
		}
		if target.SpawnID == "" {
			target.SpawnID = tr.TargetSpawn
		}
		if kind == "" {
			kind = tr.Type
		}
	}
	if target.MapID == "" {
		return nil
	}
	target.ChildWorld = IsChildWorldType(kind)
	return &target
}

// IsChildWorldType reports whether an authored transition type names a
// child-world transition.
func IsChildWorldType(kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "child-world", "child_world", "childworld", "child":
		return true
	}
	return false
}

func stringProp(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(t)
		return err == nil && b
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return false
}

// floorInt floors f, saturating to ±MaxInt32. NaN reads as 0.
func floorInt(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Floor(f))))
}
