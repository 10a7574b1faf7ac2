package main

import (
	"reflect"
	"testing"

	"github.com/milk9111/resonance/levels"
	"github.com/milk9111/resonance/tilemap"
	"github.com/milk9111/resonance/vibrancy"
)

func genParams() Params {
	return Params{ID: "g", Width: 20, Height: 12, TileSize: 16, Seed: 7, AreasX: 3, AreasY: 2, Exit: "meadow", ExitSpawn: "start"}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(genParams())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(genParams())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different maps")
	}
}

func TestGenerateTooSmall(t *testing.T) {
	if _, err := Generate(Params{Width: 3, Height: 10}); err == nil {
		t.Fatalf("expected an error for a tiny map")
	}
}

func TestGenerateLayout(t *testing.T) {
	raw, err := Generate(genParams())
	if err != nil {
		t.Fatal(err)
	}
	m := tilemap.LoadMapData(raw)

	for x := 0; x < m.Width; x++ {
		if !m.Blocked(x, 0) || !m.Blocked(x, m.Height-1) {
			t.Fatalf("north or south wall open at column %d", x)
		}
	}

	sp, ok := m.DefaultSpawn()
	if !ok || sp.Key() != "start" {
		t.Fatalf("default spawn = %+v", sp)
	}
	sx, sy := int(sp.X), int(sp.Y)
	for y := sy - 1; y <= sy+1; y++ {
		for x := sx - 1; x <= sx+1; x++ {
			if m.Blocked(x, y) {
				t.Fatalf("spawn clearing blocked at %d,%d", x, y)
			}
		}
	}
	for x := sx; x < m.Width; x++ {
		if m.Blocked(x, sy) {
			t.Fatalf("path to the exit blocked at %d,%d", x, sy)
		}
	}

	px := float64((m.Width-1)*m.TileWidth) + 1
	py := float64(sy*m.TileHeight) + 1
	target, ok := m.TransitionAt(px, py)
	if !ok || target.MapID != "meadow" || target.SpawnID != "start" || target.ChildWorld {
		t.Fatalf("exit = %+v, %v", target, ok)
	}
}

func TestGenerateAreasCoverMap(t *testing.T) {
	raw, err := Generate(genParams())
	if err != nil {
		t.Fatal(err)
	}
	if len(raw.VibrancyAreas) != 6 {
		t.Fatalf("areas = %d, want 6", len(raw.VibrancyAreas))
	}
	m := tilemap.LoadMapData(raw)
	store := vibrancy.NewMap(m.VibrancyAreas)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if _, ok := store.AreaAt(x, y); !ok {
				t.Fatalf("tile %d,%d outside every area", x, y)
			}
		}
	}
}

func TestGenerateChildExitRoundTrips(t *testing.T) {
	p := genParams()
	p.ChildWorld = true
	raw, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	data, err := levels.Encode(raw, true)
	if err != nil {
		t.Fatal(err)
	}
	back, err := levels.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	m := tilemap.LoadMapData(back)
	exit, ok := m.Entity("exit")
	if !ok || exit.Target == nil || !exit.Target.ChildWorld {
		t.Fatalf("exit = %+v", exit)
	}
}
