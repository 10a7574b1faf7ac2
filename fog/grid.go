// Package fog turns a map's vibrancy areas into the lookup grid, pixel data
// and uniforms consumed by the fog shader.
package fog

import (
	"fmt"
	"math"

	"github.com/milk9111/resonance/vibrancy"
)

// MaxGridSize is the largest grid edge the fog texture supports. Larger maps
// are clipped.
const MaxGridSize = 64

// Grid holds one vibrancy value per tile, row-major.
type Grid struct {
	Width  int
	Height int
	Cells  []float32
}

// At returns the value of cell (x, y). Cells outside the grid read as fully
// remembered.
func (g Grid) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 1
	}
	return g.Cells[y*g.Width+x]
}

// Equal reports whether two grids hold the same values.
func (g Grid) Equal(o Grid) bool {
	if g.Width != o.Width || g.Height != o.Height || len(g.Cells) != len(o.Cells) {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != o.Cells[i] {
			return false
		}
	}
	return true
}

// StateValue maps a vibrancy state to its grid value.
func StateValue(s vibrancy.State) float32 {
	switch s {
	case vibrancy.Forgotten:
		return 0
	case vibrancy.Partial:
		return 0.5
	case vibrancy.Remembered:
		return 1
	}
	panic(fmt.Sprintf("fog: unknown vibrancy state %d", uint8(s)))
}

// GridSize clamps map dimensions to the supported grid size.
func GridSize(mapW, mapH int) (int, int) {
	return min(max(mapW, 0), MaxGridSize), min(max(mapH, 0), MaxGridSize)
}

// BuildGrid stamps areas in order onto a grid that defaults to 1.0. Later
// areas overwrite earlier ones; anything outside the grid is clipped.
func BuildGrid(areas []vibrancy.Area, mapW, mapH int) Grid {
	w, h := GridSize(mapW, mapH)
	g := Grid{Width: w, Height: h, Cells: make([]float32, w*h)}
	for i := range g.Cells {
		g.Cells[i] = 1
	}
	for _, a := range areas {
		v := StateValue(a.State)
		x0, x1 := vibrancy.Clip(a.X, a.Width, w)
		y0, y1 := vibrancy.Clip(a.Y, a.Height, h)
		for y := y0; y < y1; y++ {
			row := g.Cells[y*w : (y+1)*w]
			for x := x0; x < x1; x++ {
				row[x] = v
			}
		}
	}
	return g
}

// BuildPixelData encodes the grid as RGBA bytes, one pixel per cell, with
// the value in R, G and B and an opaque alpha.
func BuildPixelData(g Grid) []byte {
	return FillPixelData(nil, g)
}

// FillPixelData is BuildPixelData reusing dst when it has room.
func FillPixelData(dst []byte, g Grid) []byte {
	n := len(g.Cells) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, v := range g.Cells {
		c := byte(math.Round(float64(min(max(v, 0), 1)) * 255))
		p := dst[i*4 : i*4+4]
		p[0], p[1], p[2], p[3] = c, c, c, 0xff
	}
	return dst
}
