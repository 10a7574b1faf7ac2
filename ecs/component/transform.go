package component

// Transform is an entity's top-left position in world pixels and its size.
type Transform struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether the pixel (px, py) lies inside the transform,
// right and bottom edges excluded.
func (t Transform) Contains(px, py float64) bool {
	return px >= t.X && px < t.X+t.Width && py >= t.Y && py < t.Y+t.Height
}

var TransformComponent = NewComponent[Transform]()
