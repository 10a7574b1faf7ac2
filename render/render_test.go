package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/milk9111/resonance/levels"
	"github.com/milk9111/resonance/particles"
	"github.com/milk9111/resonance/prefabs"
	"github.com/milk9111/resonance/tilemap"
)

func TestInsetRect(t *testing.T) {
	tests := []struct {
		name        string
		w, h, inset int
		want        image.Rectangle
	}{
		{"none", 16, 16, 0, image.Rect(0, 0, 16, 16)},
		{"negative", 16, 16, -3, image.Rect(0, 0, 16, 16)},
		{"inset", 32, 32, 4, image.Rect(4, 4, 28, 28)},
		{"clamped", 8, 8, 10, image.Rect(3, 3, 5, 5)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := insetRect(tc.w, tc.h, tc.inset); got != tc.want {
				t.Fatalf("insetRect = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIncomingCamera(t *testing.T) {
	m := tilemap.LoadMapData(&levels.RawMap{
		ID: "x", Width: 40, Height: 30, TileWidth: 16, TileHeight: 16,
		SpawnPoints: []levels.SpawnPoint{{ID: "mid", X: 20, Y: 15}, {ID: "corner", X: 0, Y: 0}},
	})

	cam := IncomingCamera(m, "mid", 160, 120)
	if cam.X != 248 || cam.Y != 188 || cam.ViewportW != 160 {
		t.Fatalf("mid camera = %+v", cam)
	}
	if cam := IncomingCamera(m, "corner", 160, 120); cam.X != 0 || cam.Y != 0 {
		t.Fatalf("corner camera = %+v", cam)
	}
	if cam := IncomingCamera(nil, "", 160, 120); cam.X != 0 || cam.ViewportH != 120 {
		t.Fatalf("nil map camera = %+v", cam)
	}
}

func TestFade(t *testing.T) {
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if _, _, _, a := fade(c, 0).RGBA(); a != 0 {
		t.Fatalf("alpha at 0 = %d", a)
	}
	if r, _, _, a := fade(c, 1).RGBA(); a != 0xffff || r != 0xffff {
		t.Fatalf("full fade = %d,%d", r, a)
	}
	r, _, _, a := fade(c, 0.5).RGBA()
	if a < 0x7ff0 || a > 0x8010 || r != a {
		t.Fatalf("half fade = r %d a %d", r, a)
	}
	if _, _, _, a := fade(c, 4).RGBA(); a != 0xffff {
		t.Fatalf("alpha above 1 should clamp, got %d", a)
	}
}

func TestTilesetColors(t *testing.T) {
	spec := &prefabs.TilesetSpec{
		Entities: map[string]prefabs.YAMLColor{"npc": {Color: color.NRGBA{R: 1, A: 255}}},
		Motes:    map[string]prefabs.YAMLColor{"wisp": {Color: color.NRGBA{B: 9, A: 255}}},
	}
	ts := NewTileset(spec)
	if got := ts.EntityColor(tilemap.EntityNPC); got != (color.NRGBA{R: 1, A: 255}) {
		t.Fatalf("npc colour = %v", got)
	}
	if got := ts.MoteColor(particles.MoteWisp); got != (color.NRGBA{B: 9, A: 255}) {
		t.Fatalf("wisp colour = %v", got)
	}
	if ts.EntityColor(tilemap.EntityChest) == nil || ts.MoteColor(particles.MoteSparkle) == nil {
		t.Fatalf("missing entries should fall back")
	}
	if ts.Image("", 16, 16) != nil {
		t.Fatalf("empty tile id should have no image")
	}
}
