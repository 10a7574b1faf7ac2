package camera

import (
	"image"
	"math"

	"github.com/milk9111/resonance/common"
)

// TileRange is an inclusive range of tile columns and rows.
type TileRange struct {
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// Empty reports whether the range covers no tiles.
func (r TileRange) Empty() bool {
	return r.EndCol < r.StartCol || r.EndRow < r.StartRow
}

// VisibleTile is a non-empty tile inside the culled range.
type VisibleTile struct {
	TileIndex uint16
	Col       int
	Row       int
	ScreenX   float64
	ScreenY   float64
}

// VisibleTileRange returns the tiles covering the viewport plus one tile of
// margin on every side, clamped to the map.
func VisibleTileRange(cam State, mapWidthTiles, mapHeightTiles, tileW, tileH int) TileRange {
	if tileW <= 0 || tileH <= 0 || mapWidthTiles <= 0 || mapHeightTiles <= 0 {
		return TileRange{StartCol: 0, StartRow: 0, EndCol: -1, EndRow: -1}
	}
	tw := float64(tileW)
	th := float64(tileH)
	startCol := int(math.Floor(cam.X/tw)) - 1
	startRow := int(math.Floor(cam.Y/th)) - 1
	endCol := int(math.Floor((cam.X+cam.ViewportW)/tw)) + 1
	endRow := int(math.Floor((cam.Y+cam.ViewportH)/th)) + 1

	return TileRange{
		StartCol: common.ClampInt(startCol, 0, mapWidthTiles-1),
		StartRow: common.ClampInt(startRow, 0, mapHeightTiles-1),
		EndCol:   common.ClampInt(endCol, 0, mapWidthTiles-1),
		EndRow:   common.ClampInt(endRow, 0, mapHeightTiles-1),
	}
}

// VisibleTiles returns every non-zero tile of layer inside the visible range
// with its screen position.
func VisibleTiles(layer []uint16, mapW, mapH, tileW, tileH int, cam State) []VisibleTile {
	return AppendVisibleTiles(nil, layer, mapW, mapH, tileW, tileH, cam)
}

// AppendVisibleTiles is VisibleTiles appending into dst so callers can reuse
// one buffer across frames.
func AppendVisibleTiles(dst []VisibleTile, layer []uint16, mapW, mapH, tileW, tileH int, cam State) []VisibleTile {
	r := VisibleTileRange(cam, mapW, mapH, tileW, tileH)
	if r.Empty() {
		return dst
	}
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			idx := row*mapW + col
			if idx >= len(layer) {
				continue
			}
			v := layer[idx]
			if v == 0 {
				continue
			}
			dst = append(dst, VisibleTile{
				TileIndex: v,
				Col:       col,
				Row:       row,
				ScreenX:   float64(col*tileW) - cam.X,
				ScreenY:   float64(row*tileH) - cam.Y,
			})
		}
	}
	return dst
}

// TileSourceRect returns the atlas rectangle of a tile. firstIndex is the
// index of the atlas's first tile. Out-of-range input yields an empty rect.
func TileSourceRect(tileIndex, atlasColumns, tileW, tileH, firstIndex int) image.Rectangle {
	local := tileIndex - firstIndex
	if atlasColumns <= 0 || local < 0 || tileW <= 0 || tileH <= 0 {
		return image.Rectangle{}
	}
	col := local % atlasColumns
	row := local / atlasColumns
	x := col * tileW
	y := row * tileH
	return image.Rect(x, y, x+tileW, y+tileH)
}
