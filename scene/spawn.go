package scene

import (
	"github.com/milk9111/resonance/ecs"
	"github.com/milk9111/resonance/ecs/component"
	"github.com/milk9111/resonance/tilemap"
)

// spawnEntities creates one entity per map object, positioned in pixels.
func spawnEntities(w *ecs.World, m *tilemap.LoadedMap) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(m.Entities))
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	for _, desc := range m.Entities {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			X:      float64(desc.X) * tw,
			Y:      float64(desc.Y) * th,
			Width:  float64(desc.Width) * tw,
			Height: float64(desc.Height) * th,
		})
		_ = ecs.Add(w, e, component.BehaviorComponent.Kind(), &component.Behavior{
			Type:       desc.Type,
			Name:       desc.Name,
			Properties: desc.Properties,
		})
		if desc.Hook != nil {
			_ = ecs.Add(w, e, component.HookComponent.Kind(), &component.Hook{
				EventClass: desc.Hook.EventClass,
				ImportPath: desc.Hook.ImportPath,
			})
		}
		if desc.Target != nil {
			_ = ecs.Add(w, e, component.TransitionZoneComponent.Kind(), &component.TransitionZone{Target: *desc.Target})
		}
		if desc.Type == tilemap.EntityResonanceStone {
			_ = ecs.Add(w, e, component.ResonanceStoneTagComponent.Kind(), &component.ResonanceStoneTag{})
		}
		out = append(out, e)
	}
	return out
}

// spawnPlayer creates the player entity centred on (cx, cy).
func spawnPlayer(w *ecs.World, cx, cy, speed, size float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: speed, Size: size})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      cx - size/2,
		Y:      cy - size/2,
		Width:  size,
		Height: size,
	})
	return e
}
