package physics

// Rect is a rectangle of solid tiles, in tile units.
type Rect struct {
	X, Y, W, H int
}

// MergeSolidRects covers every blocked cell of a width×height collision
// buffer with as few rectangles as a greedy row-major scan finds: grow right
// first, then down while the whole span stays solid.
func MergeSolidRects(collision []uint8, width, height int) []Rect {
	if width <= 0 || height <= 0 {
		return nil
	}
	n := width * height
	solid := func(i int) bool {
		return i < len(collision) && collision[i] != 0
	}
	processed := make([]bool, n)
	var out []Rect
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			if !solid(idx) {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < width {
				i := y*width + x + w
				if processed[i] || !solid(i) {
					break
				}
				w++
			}

			h := 1
		grow:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					i := (y+h)*width + xi
					if processed[i] || !solid(i) {
						break grow
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
			out = append(out, Rect{X: x, Y: y, W: w, H: h})
		}
	}
	return out
}
