package camera

import "github.com/milk9111/resonance/common"

// Point is a position in world pixels.
type Point struct {
	X float64
	Y float64
}

// State is the camera's top-left world position and viewport size for the
// current frame.
type State struct {
	X         float64
	Y         float64
	ViewportW float64
	ViewportH float64
}

// Position returns the top-left as a Point.
func (s State) Position() Point {
	return Point{X: s.X, Y: s.Y}
}

// ComputePosition centres the target in the viewport and clamps each axis to
// [0, max(0, mapSize-viewportSize)]. A viewport larger than the map pins that
// axis to 0.
func ComputePosition(targetX, targetY, viewportW, viewportH, mapWidthPx, mapHeightPx float64) Point {
	return Point{
		X: common.Clamp(targetX-viewportW/2, 0, max(0, mapWidthPx-viewportW)),
		Y: common.Clamp(targetY-viewportH/2, 0, max(0, mapHeightPx-viewportH)),
	}
}

// Lerp moves current a factor of the remaining distance toward target. The
// factor is clamped to [0, 1].
func Lerp(current, target Point, factor float64) Point {
	f := common.Clamp01(factor)
	return Point{
		X: common.Lerp(current.X, target.X, f),
		Y: common.Lerp(current.Y, target.Y, f),
	}
}
