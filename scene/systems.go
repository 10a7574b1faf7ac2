package scene

import (
	"github.com/milk9111/resonance/ecs"
	"github.com/milk9111/resonance/ecs/component"
)

// syncPlayer copies the physics body position onto the player transform.
func (s *Scene) syncPlayer(w *ecs.World) {
	cx, cy, ok := s.PlayerCenter()
	if !ok {
		return
	}
	t, ok := ecs.Get(w, s.player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.X = cx - t.Width/2
	t.Y = cy - t.Height/2
}

// releaseCooldown clears the arrival cooldown once the player has left the
// zone it names.
func (s *Scene) releaseCooldown(w *ecs.World) {
	cd, ok := ecs.Get(w, s.player, component.TransitionCooldownComponent.Kind())
	if !ok || !cd.Active {
		return
	}
	cx, cy, ok := s.PlayerCenter()
	if !ok {
		return
	}
	inside := false
	ecs.ForEach2(w, component.TransitionZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, z *component.TransitionZone, t *component.Transform) {
		if z.Target.Entity == cd.Zone && t.Contains(cx, cy) {
			inside = true
		}
	})
	if !inside {
		cd.Active = false
		cd.Zone = ""
	}
}

// fireHooks queues a hook event each time the player enters an object that
// carries one.
func (s *Scene) fireHooks(w *ecs.World) {
	cx, cy, ok := s.PlayerCenter()
	if !ok {
		return
	}
	ecs.ForEach2(w, component.HookComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Hook, t *component.Transform) {
		inside := t.Contains(cx, cy)
		if inside && !h.Inside {
			w.Events().Push(ecs.Event{Type: ecs.EventHookFired, Entity: e, Data: *h})
			s.log.WithField("hook", h.EventClass).Debug("hook fired")
		}
		h.Inside = inside
	})
}
