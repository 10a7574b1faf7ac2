package camera

import (
	"image"
	"testing"
)

func TestVisibleTileRange(t *testing.T) {
	tests := []struct {
		name string
		cam  State
		want TileRange
	}{
		{"origin", State{X: 0, Y: 0, ViewportW: 64, ViewportH: 64}, TileRange{0, 0, 3, 3}},
		{"middle", State{X: 100, Y: 50, ViewportW: 64, ViewportH: 32}, TileRange{2, 0, 6, 3}},
		{"far_edge", State{X: 260, Y: 260, ViewportW: 64, ViewportH: 64}, TileRange{7, 7, 9, 9}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := VisibleTileRange(tc.cam, 10, 10, 32, 32)
			if got != tc.want {
				t.Fatalf("range = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestVisibleTileRangeEmptyMap(t *testing.T) {
	if r := VisibleTileRange(State{ViewportW: 64, ViewportH: 64}, 0, 0, 32, 32); !r.Empty() {
		t.Fatalf("empty map should give empty range, got %+v", r)
	}
}

func TestVisibleTilesSkipsEmpty(t *testing.T) {
	// 4x3 map, 16px tiles
	layer := []uint16{
		0, 1, 0, 2,
		3, 0, 0, 0,
		0, 0, 4, 0,
	}
	cam := State{X: 8, Y: 4, ViewportW: 32, ViewportH: 32}
	tiles := VisibleTiles(layer, 4, 3, 16, 16, cam)

	if len(tiles) != 4 {
		t.Fatalf("got %d tiles, want 4: %+v", len(tiles), tiles)
	}
	for _, vt := range tiles {
		if vt.TileIndex == 0 {
			t.Fatalf("empty tile returned: %+v", vt)
		}
		if vt.TileIndex > 4 {
			t.Fatalf("tile index out of layer range: %+v", vt)
		}
		if vt.ScreenX != float64(vt.Col*16)-cam.X || vt.ScreenY != float64(vt.Row*16)-cam.Y {
			t.Fatalf("bad screen position: %+v", vt)
		}
	}
	first := tiles[0]
	if first.TileIndex != 1 || first.ScreenX != 8 || first.ScreenY != -4 {
		t.Fatalf("first tile = %+v", first)
	}
}

func TestAppendVisibleTilesReusesBuffer(t *testing.T) {
	layer := []uint16{1, 1, 1, 1}
	buf := make([]VisibleTile, 0, 8)
	buf = AppendVisibleTiles(buf[:0], layer, 2, 2, 16, 16, State{ViewportW: 32, ViewportH: 32})
	if len(buf) != 4 || cap(buf) != 8 {
		t.Fatalf("len=%d cap=%d", len(buf), cap(buf))
	}
}

func TestTileSourceRect(t *testing.T) {
	tests := []struct {
		name             string
		idx, cols, first int
		want             image.Rectangle
	}{
		{"first_tile", 1, 4, 1, image.Rect(0, 0, 16, 16)},
		{"wraps_row", 6, 4, 1, image.Rect(16, 16, 32, 32)},
		{"zero_first_index", 4, 4, 0, image.Rect(0, 16, 16, 32)},
		{"below_first", 0, 4, 1, image.Rectangle{}},
		{"no_columns", 3, 0, 0, image.Rectangle{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TileSourceRect(tc.idx, tc.cols, 16, 16, tc.first); got != tc.want {
				t.Fatalf("rect = %v, want %v", got, tc.want)
			}
		})
	}
}
