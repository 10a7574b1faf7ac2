package component

import (
	"strings"
	"testing"
)

func TestComponentKinds(t *testing.T) {
	a := NewComponent[Transform]().Kind()
	b := NewComponent[Transform]().Kind()
	if !a.Valid() || !b.Valid() || a.ID() == b.ID() {
		t.Fatalf("kinds not unique: %v %v", a.ID(), b.ID())
	}
	if (ComponentKind[int]{}).Valid() {
		t.Fatalf("zero kind should be invalid")
	}
	if s := TransformComponent.Kind().String(); !strings.HasPrefix(s, "component.Transform#") {
		t.Fatalf("String = %q", s)
	}
}

func TestTransformContains(t *testing.T) {
	tr := Transform{X: 10, Y: 20, Width: 16, Height: 8}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{25.9, 27.9, true},
		{26, 20, false},
		{10, 28, false},
		{9.9, 21, false},
	}
	for _, tc := range tests {
		if got := tr.Contains(tc.x, tc.y); got != tc.want {
			t.Fatalf("Contains(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}
