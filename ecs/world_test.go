package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/resonance/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second destroy should report false")
			}
			if Count(w) != c.create-1 {
				t.Fatalf("count = %d", Count(w))
			}
		})
	}
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("slot not reused: %v vs %v", fresh, old)
	}
	if fresh.generation() == old.generation() {
		t.Fatalf("generation not bumped")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reads as alive")
	}
	if err := Add(w, old, component.TransformComponent.Kind(), &component.Transform{}); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("add to stale handle: %v", err)
	}
	if Entity(0).Valid() || IsAlive(w, 0) {
		t.Fatalf("zero entity must never be alive")
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	transforms := component.TransformComponent.Kind()
	behaviors := component.BehaviorComponent.Kind()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_transform_to_e1",
			setup: func() error { return Add(w, e1, transforms, &component.Transform{X: 10, Width: 32, Height: 32}) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, transforms)
				if !ok || v.X != 10 {
					t.Fatalf("expected X=10, got %+v ok=%v", v, ok)
				}
				if Has(w, e2, transforms) {
					t.Fatalf("e2 should not have a transform")
				}
			},
			teardown: func() bool { return Remove(w, e1, transforms) },
		},
		{
			name: "add_behavior_to_both",
			setup: func() error {
				if err := Add(w, e1, behaviors, &component.Behavior{Name: "elder"}); err != nil {
					return err
				}
				return Add(w, e2, behaviors, &component.Behavior{Name: "chest"})
			},
			check: func(t *testing.T) {
				if !Has(w, e1, behaviors) || !Has(w, e2, behaviors) {
					t.Fatalf("expected both entities to have a behavior")
				}
			},
			teardown: func() bool { return Remove(w, e1, behaviors) && Remove(w, e2, behaviors) },
		},
		{
			name:  "replace_keeps_one_value",
			setup: func() error { return Add(w, e2, transforms, &component.Transform{X: 1}) },
			check: func(t *testing.T) {
				if err := Add(w, e2, transforms, &component.Transform{X: 2}); err != nil {
					t.Fatal(err)
				}
				v, _ := Get(w, e2, transforms)
				if v.X != 2 {
					t.Fatalf("replace did not stick: %+v", v)
				}
			},
			teardown: func() bool { return Remove(w, e2, transforms) && !Remove(w, e2, transforms) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	if err := Add[component.Transform](w, e1, transforms, nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("nil component: %v", err)
	}
	if err := Add(w, e1, component.ComponentKind[int]{}, new(int)); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("zero kind: %v", err)
	}
}

func TestDestroyDropsComponents(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	e := CreateEntity(w)
	v := 7
	if err := Add(w, e, k, &v); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, e)

	reused := CreateEntity(w)
	if Has(w, reused, k) {
		t.Fatalf("component leaked into reused slot")
	}
	if _, ok := First(w, k); ok {
		t.Fatalf("destroyed entity still listed")
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	one, three := 1, 3
	_ = Add(w, e1, h.Kind(), &one)
	_ = Add(w, e3, h.Kind(), &three)

	seen := map[Entity]int{}
	ForEach(w, h.Kind(), func(e Entity, v *int) { seen[e] = *v })
	if len(seen) != 2 || seen[e1] != 1 || seen[e3] != 3 {
		t.Fatalf("ForEach visited %v", seen)
	}
	if _, ok := seen[e2]; ok {
		t.Fatalf("did not expect e2")
	}

	ForEach(w, h.Kind(), func(e Entity, _ *int) { Remove(w, e, h.Kind()) })
	if Has(w, e1, h.Kind()) || Has(w, e3, h.Kind()) {
		t.Fatalf("removing while iterating skipped an entity")
	}
}

func TestForEachIntersections(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()

	ents := make([]Entity, 5)
	for i := range ents {
		ents[i] = CreateEntity(w)
	}
	// ents[1] carries all four kinds.
	layout := map[int][]component.ComponentKind[int]{
		0: {ka},
		1: {ka, kb, kc, kd},
		2: {kb, kc},
		3: {ka, kb, kc},
		4: {kd},
	}
	for i, kinds := range layout {
		for _, k := range kinds {
			v := i
			if err := Add(w, ents[i], k, &v); err != nil {
				t.Fatal(err)
			}
		}
	}

	var two, three, four []Entity
	ForEach2(w, ka, kb, func(e Entity, _, _ *int) { two = append(two, e) })
	ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { three = append(three, e) })
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { four = append(four, e) })

	if len(two) != 2 || len(three) != 2 {
		t.Fatalf("ForEach2=%v ForEach3=%v", two, three)
	}
	if len(four) != 1 || four[0] != ents[1] {
		t.Fatalf("ForEach4=%v, want only %v", four, ents[1])
	}

	DestroyEntity(w, ents[1])
	four = nil
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { four = append(four, e) })
	if len(four) != 0 {
		t.Fatalf("dead entity visited: %v", four)
	}

	missing := component.NewComponentKind[int]()
	called := false
	ForEach2(w, ka, missing, func(Entity, *int, *int) { called = true })
	if called {
		t.Fatalf("missing store should visit nothing")
	}
}

func TestEventQueue(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	q.Push(Event{Type: EventHookFired})
	q.Push(Event{Type: EventTransitionEnter})
	if q.Len() != 2 {
		t.Fatalf("len = %d", q.Len())
	}
	got := q.Drain()
	if len(got) != 2 || got[0].Type != EventHookFired {
		t.Fatalf("drain = %+v", got)
	}
	if q.Drain() != nil {
		t.Fatalf("queue not cleared")
	}
}

func TestScheduler(t *testing.T) {
	var order []int
	s := NewScheduler(
		SystemFunc(func(*World) { order = append(order, 1) }),
		nil,
		SystemFunc(func(*World) { order = append(order, 2) }),
	)
	s.Update(NewWorld())
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("order = %v", order)
	}
	if len(s.Systems()) != 2 {
		t.Fatalf("systems = %d", len(s.Systems()))
	}
}
