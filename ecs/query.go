package ecs

import "github.com/milk9111/resonance/ecs/component"

// The ForEach family walks the first kind's store from the back, so fn may
// remove the component it is visiting.

// ForEach calls fn for every entity carrying a.
func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, a, false)
	if sa == nil {
		return
	}
	for i := len(sa.dense) - 1; i >= 0; i-- {
		if i >= len(sa.dense) {
			continue
		}
		id := sa.dense[i]
		fn(w.entity(id), sa.values[i])
	}
}

// ForEach2 calls fn for every entity carrying both kinds.
func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sb := storeFor(w, b, false)
	if sb == nil {
		return
	}
	ForEach(w, a, func(e Entity, va *A) {
		if vb, ok := sb.get(e.id()); ok {
			fn(e, va, vb)
		}
	})
}

// ForEach3 calls fn for every entity carrying all three kinds.
func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := storeFor(w, c, false)
	if sc == nil {
		return
	}
	ForEach2(w, a, b, func(e Entity, va *A, vb *B) {
		if vc, ok := sc.get(e.id()); ok {
			fn(e, va, vb, vc)
		}
	})
}

// ForEach4 calls fn for every entity carrying all four kinds.
func ForEach4[A, B, C, D any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], d component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sd := storeFor(w, d, false)
	if sd == nil {
		return
	}
	ForEach3(w, a, b, c, func(e Entity, va *A, vb *B, vc *C) {
		if vd, ok := sd.get(e.id()); ok {
			fn(e, va, vb, vc, vd)
		}
	})
}
