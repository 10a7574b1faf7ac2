package fog

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/milk9111/resonance/camera"
	"github.com/milk9111/resonance/vibrancy"
)

func TestBuildGridDefaultsToRemembered(t *testing.T) {
	g := BuildGrid(nil, 5, 3)
	if g.Width != 5 || g.Height != 3 || len(g.Cells) != 15 {
		t.Fatalf("grid = %dx%d (%d cells)", g.Width, g.Height, len(g.Cells))
	}
	for i, v := range g.Cells {
		if v != 1 {
			t.Fatalf("cell %d = %v, want 1", i, v)
		}
	}
}

func TestBuildGridClampsSize(t *testing.T) {
	g := BuildGrid(nil, 200, 80)
	if g.Width != MaxGridSize || g.Height != MaxGridSize {
		t.Fatalf("grid = %dx%d, want %dx%d", g.Width, g.Height, MaxGridSize, MaxGridSize)
	}
	if g := BuildGrid(nil, -3, 0); len(g.Cells) != 0 {
		t.Fatalf("negative size produced %d cells", len(g.Cells))
	}
}

func TestBuildGridStamping(t *testing.T) {
	tests := []struct {
		name  string
		areas []vibrancy.Area
		check map[[2]int]float32
	}{
		{
			name:  "single_area",
			areas: []vibrancy.Area{{ID: "a", X: 1, Y: 1, Width: 2, Height: 2, State: vibrancy.Forgotten}},
			check: map[[2]int]float32{{1, 1}: 0, {2, 2}: 0, {3, 3}: 1, {0, 0}: 1},
		},
		{
			name: "later_wins_on_overlap",
			areas: []vibrancy.Area{
				{ID: "a", X: 0, Y: 0, Width: 3, Height: 3, State: vibrancy.Forgotten},
				{ID: "b", X: 2, Y: 2, Width: 2, Height: 2, State: vibrancy.Partial},
			},
			check: map[[2]int]float32{{1, 1}: 0, {2, 2}: 0.5, {3, 3}: 0.5, {2, 0}: 0},
		},
		{
			name:  "clipped_past_edges",
			areas: []vibrancy.Area{{ID: "a", X: -2, Y: 3, Width: 4, Height: 10, State: vibrancy.Partial}},
			check: map[[2]int]float32{{0, 3}: 0.5, {1, 3}: 0.5, {2, 3}: 1, {0, 2}: 1},
		},
		{
			name:  "oversized",
			areas: []vibrancy.Area{{ID: "a", X: 0, Y: 0, Width: math.MaxInt, Height: math.MaxInt32, State: vibrancy.Forgotten}},
			check: map[[2]int]float32{{0, 0}: 0, {3, 3}: 0, {3, 0}: 0},
		},
		{
			name:  "oversized_negative_origin",
			areas: []vibrancy.Area{{ID: "a", X: math.MinInt32, Y: 1, Width: math.MaxInt, Height: 1, State: vibrancy.Partial}},
			check: map[[2]int]float32{{0, 1}: 0.5, {3, 1}: 0.5, {0, 0}: 1},
		},
		{
			name:  "entirely_outside",
			areas: []vibrancy.Area{{ID: "a", X: 10, Y: 10, Width: 2, Height: 2, State: vibrancy.Forgotten}},
			check: map[[2]int]float32{{3, 3}: 1},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := BuildGrid(tc.areas, 4, 4)
			for pos, want := range tc.check {
				if got := g.At(pos[0], pos[1]); got != want {
					t.Fatalf("cell %v = %v, want %v", pos, got, want)
				}
			}
		})
	}
}

func TestStateValuePanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	StateValue(vibrancy.State(9))
}

func TestBuildPixelData(t *testing.T) {
	g := Grid{Width: 3, Height: 1, Cells: []float32{0, 0.5, 1}}
	got := BuildPixelData(g)
	want := []byte{0, 0, 0, 255, 128, 128, 128, 255, 255, 255, 255, 255}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], want[i])
		}
	}

	buf := make([]byte, 0, 64)
	out := FillPixelData(buf, g)
	if &out[0] != &buf[:1][0] {
		t.Fatalf("FillPixelData did not reuse the buffer")
	}
}

func TestBuildUniforms(t *testing.T) {
	cam := camera.State{X: 12, Y: 40, ViewportW: 320, ViewportH: 180}
	tests := []struct {
		name       string
		transition float64
		want       float32
	}{
		{"default", DefaultTransition, 1},
		{"half", 0.5, 0.5},
		{"clamped_high", 3, 1},
		{"clamped_low", -1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := BuildUniforms(cam, 100, 20, tc.transition)
			if u.Transition != tc.want {
				t.Fatalf("transition = %v, want %v", u.Transition, tc.want)
			}
			if u.GridW != MaxGridSize || u.GridH != 20 {
				t.Fatalf("grid = %vx%v", u.GridW, u.GridH)
			}
			if u.ResolutionX != 320 || u.CameraY != 40 || u.TileSize != UniformTileSize {
				t.Fatalf("uniforms = %+v", u)
			}
		})
	}
	m := BuildUniforms(cam, 4, 4, 1).ShaderUniforms()
	for _, key := range []string{"Resolution", "Camera", "TileSize", "GridSize", "Transition", "Unlock"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("shader uniforms missing %q", key)
		}
	}
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		v    float64
		want Band
	}{
		{1, BandClear},
		{0.76, BandClear},
		{0.75, BandHaze},
		{0.5, BandHaze},
		{0.26, BandHaze},
		{0.25, BandDark},
		{0, BandDark},
	}
	for _, tc := range tests {
		if got := BandOf(tc.v); got != tc.want {
			t.Fatalf("BandOf(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestShade(t *testing.T) {
	base := RGB{0.2, 0.6, 0.4}

	if got := Shade(base, 1, 1, 1, 1); got != base {
		t.Fatalf("remembered should pass through, got %+v", got)
	}
	if got := Shade(base, 0, 0, 1, 0); got != base {
		t.Fatalf("zero transition should pass through, got %+v", got)
	}

	dark := Shade(base, 0, 0, 1, 1)
	if luminance(dark) > 0.1 {
		t.Fatalf("forgotten should be near black, got %+v", dark)
	}

	haze := Shade(base, 0.5, 0.5, 1, 1)
	if luminance(haze) < luminance(dark) || haze == base {
		t.Fatalf("partial should be hazy but visible, got %+v", haze)
	}
	if haze.R <= base.R {
		t.Fatalf("haze should warm the red channel, got %+v", haze)
	}

	mid := Shade(base, 0, 1, 0.5, 1)
	want := mixRGB(Filter(base, 0), base, 0.5)
	if math.Abs(mid.G-want.G) > 1e-9 {
		t.Fatalf("unlock blend = %+v, want %+v", mid, want)
	}
}

func TestApply(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{200, 200, 200, 255})
		}
	}
	grid := Grid{Width: 2, Height: 1, Cells: []float32{1, 0}}
	u := BuildUniforms(camera.State{ViewportW: 8, ViewportH: 4}, 2, 1, 1)
	Apply(img, Grid{}, grid, camera.State{ViewportW: 8, ViewportH: 4}, 4, u)

	if c := img.RGBAAt(1, 1); c.R != 200 {
		t.Fatalf("remembered pixel changed: %+v", c)
	}
	if c := img.RGBAAt(6, 1); c.R > 40 {
		t.Fatalf("forgotten pixel not darkened: %+v", c)
	}
}

func TestOverlayTracksStore(t *testing.T) {
	store := vibrancy.NewMap([]vibrancy.Area{
		{ID: "field", X: 0, Y: 0, Width: 2, Height: 2, State: vibrancy.Forgotten},
	})
	o := NewOverlay(store, 4, 4)
	if o.Animating() {
		t.Fatalf("new overlay should be settled")
	}
	if _, cur := o.Grids(); cur.At(0, 0) != 0 {
		t.Fatalf("initial grid not built")
	}
	if _, _, changed := o.Pixels(); !changed {
		t.Fatalf("first pixel read should report a change")
	}

	if o.Update(16 * time.Millisecond) {
		t.Fatalf("update without a store change rebuilt the grid")
	}

	store.SetState("field", vibrancy.Remembered)
	if !o.Update(16 * time.Millisecond) {
		t.Fatalf("store change not picked up")
	}
	prev, cur := o.Grids()
	if prev.At(0, 0) != 0 || cur.At(0, 0) != 1 {
		t.Fatalf("grids prev=%v cur=%v", prev.At(0, 0), cur.At(0, 0))
	}
	if !o.Animating() || o.Progress() != 0 {
		t.Fatalf("unlock should restart, progress %v", o.Progress())
	}

	o.Update(250 * time.Millisecond)
	if p := o.Progress(); math.Abs(p-0.5) > 1e-9 {
		t.Fatalf("progress = %v, want 0.5", p)
	}
	if u := o.Uniforms(camera.State{}, 1); math.Abs(float64(u.Unlock)-0.5) > 1e-6 {
		t.Fatalf("unlock uniform = %v", u.Unlock)
	}

	o.Update(time.Second)
	if o.Animating() {
		t.Fatalf("unlock should finish after %v", UnlockDuration)
	}

	prevPix, curPix, changed := o.Pixels()
	if !changed || prevPix[0] != 0 || curPix[0] != 255 {
		t.Fatalf("pixels prev=%d cur=%d changed=%v", prevPix[0], curPix[0], changed)
	}
	if _, _, changed := o.Pixels(); changed {
		t.Fatalf("second read should not report a change")
	}
}
