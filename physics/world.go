// Package physics builds a chipmunk space from a map's collision buffer and
// moves the player through it.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/resonance/tilemap"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
)

const (
	edgeThickness = 1.0
	friction      = 0.8
)

// World owns the chipmunk space for one loaded map.
type World struct {
	space  *cp.Space
	tileW  int
	tileH  int
	worldW float64
	worldH float64
	solids []Rect

	player      *cp.Body
	playerShape *cp.Shape
}

// NewWorld builds the static geometry of m: merged solid rectangles plus a
// segment along each world edge. Gravity is zero; the world is top-down.
func NewWorld(m *tilemap.LoadedMap) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})

	w := &World{space: space}
	if m == nil {
		return w
	}
	w.tileW, w.tileH = m.TileWidth, m.TileHeight
	pw, ph := m.PixelSize()
	w.worldW, w.worldH = float64(pw), float64(ph)

	w.solids = MergeSolidRects(m.Collision, m.Width, m.Height)
	for _, r := range w.solids {
		bb := cp.BB{
			L: float64(r.X * w.tileW),
			B: float64(r.Y * w.tileH),
			R: float64((r.X + r.W) * w.tileW),
			T: float64((r.Y + r.H) * w.tileH),
		}
		shape := cp.NewBox2(space.StaticBody, bb, 0)
		shape.SetFriction(friction)
		shape.SetCollisionType(collisionTypeSolid)
		space.AddShape(shape)
	}

	if w.worldW > 0 && w.worldH > 0 {
		segments := [][2]cp.Vector{
			{{X: 0, Y: 0}, {X: w.worldW, Y: 0}},
			{{X: 0, Y: w.worldH}, {X: w.worldW, Y: w.worldH}},
			{{X: 0, Y: 0}, {X: 0, Y: w.worldH}},
			{{X: w.worldW, Y: 0}, {X: w.worldW, Y: w.worldH}},
		}
		for _, seg := range segments {
			shape := cp.NewSegment(space.StaticBody, seg[0], seg[1], edgeThickness)
			shape.SetFriction(friction)
			shape.SetCollisionType(collisionTypeSolid)
			space.AddShape(shape)
		}
	}
	return w
}

// Space returns the underlying chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Solids returns the merged solid rectangles in tile units.
func (w *World) Solids() []Rect {
	if w == nil {
		return nil
	}
	return w.solids
}

// SpawnPlayer places a square body of the given edge centred on (x, y),
// replacing any previous player body.
func (w *World) SpawnPlayer(x, y, size float64) {
	if w == nil || w.space == nil {
		return
	}
	if w.player != nil {
		w.space.RemoveShape(w.playerShape)
		w.space.RemoveBody(w.player)
	}
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewBox(body, size, size, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypePlayer)
	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.player = body
	w.playerShape = shape
}

// SetPlayerVelocity sets the player's velocity in pixels per second.
func (w *World) SetPlayerVelocity(vx, vy float64) {
	if w == nil || w.player == nil {
		return
	}
	w.player.SetVelocity(vx, vy)
}

// PlayerPosition returns the centre of the player body.
func (w *World) PlayerPosition() (float64, float64, bool) {
	if w == nil || w.player == nil {
		return 0, 0, false
	}
	p := w.player.Position()
	return p.X, p.Y, true
}

// Teleport moves the player without simulating the path in between.
func (w *World) Teleport(x, y float64) {
	if w == nil || w.player == nil {
		return
	}
	w.player.SetPosition(cp.Vector{X: x, Y: y})
	w.player.SetVelocity(0, 0)
	w.space.ReindexShapesForBody(w.player)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}
