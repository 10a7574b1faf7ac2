// Package render draws a running scene with ebiten: culled tile layers,
// entity markers, motes, the fog overlay and a debug HUD.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/resonance/camera"
	"github.com/milk9111/resonance/ecs"
	"github.com/milk9111/resonance/ecs/component"
	"github.com/milk9111/resonance/particles"
	"github.com/milk9111/resonance/scene"
	"github.com/milk9111/resonance/tilemap"
	"github.com/milk9111/resonance/transition"
)

// Options configures a Renderer.
type Options struct {
	Width       int
	Height      int
	Fog         bool
	Debug       bool
	PlayerColor color.Color
}

// Renderer owns the offscreen targets used to draw a scene.
type Renderer struct {
	opts  Options
	tiles *Tileset

	stage   *ebiten.Image
	fogs    [2]*fogPass
	visible []camera.VisibleTile
	hud     *hud
}

// NewRenderer allocates a renderer for a Width×Height logical screen.
func NewRenderer(tiles *Tileset, opts Options) *Renderer {
	opts.Width = max(opts.Width, 1)
	opts.Height = max(opts.Height, 1)
	if opts.PlayerColor == nil {
		opts.PlayerColor = colornames.Wheat
	}
	r := &Renderer{
		opts:    opts,
		tiles:   tiles,
		stage:   ebiten.NewImage(opts.Width, opts.Height),
		visible: make([]camera.VisibleTile, 0, 1024),
		hud:     newHUD(),
	}
	if opts.Fog {
		shader := compileFogShader()
		r.fogs[0] = newFogPass(shader, opts.Width, opts.Height)
		r.fogs[1] = newFogPass(shader, opts.Width, opts.Height)
	}
	return r
}

// SetTileset swaps the tileset, typically after a hot reload.
func (r *Renderer) SetTileset(t *Tileset) {
	if r != nil && t != nil {
		r.tiles = t
	}
}

// SetDebug toggles the HUD.
func (r *Renderer) SetDebug(on bool) {
	if r != nil {
		r.opts.Debug = on
	}
}

// Draw renders the scene. During a crossfade the incoming map is drawn over
// the outgoing one at the transition alpha.
func (r *Renderer) Draw(screen *ebiten.Image, sc *scene.Scene) {
	if r == nil || screen == nil || sc == nil || sc.Current() == nil {
		return
	}
	screen.Fill(r.tiles.Background())

	cam := sc.Camera()
	r.drawStage(screen, 0, sc.Current(), cam, 1, func(dst *ebiten.Image) {
		r.drawWorldEntities(dst, sc.World(), cam)
		r.drawMotes(dst, sc.Pool(), cam)
	})

	tr := sc.Transition()
	if in := sc.Incoming(); in != nil && tr.Phase == transition.Crossfade {
		inCam := IncomingCamera(in.Map, tr.SpawnID, float64(r.opts.Width), float64(r.opts.Height))
		r.drawStage(screen, 1, in, inCam, float32(transition.Alpha(tr)), func(dst *ebiten.Image) {
			r.drawMapEntities(dst, in.Map, inCam)
		})
	}

	if r.opts.Debug {
		r.hud.draw(screen, sc)
	}
}

// IncomingCamera is where the camera will sit once the player arrives at
// spawnID on m.
func IncomingCamera(m *tilemap.LoadedMap, spawnID string, viewW, viewH float64) camera.State {
	cam := camera.State{ViewportW: viewW, ViewportH: viewH}
	if m == nil {
		return cam
	}
	x, y := m.SpawnPositionOrDefault(spawnID)
	x += float64(m.TileWidth) / 2
	y += float64(m.TileHeight) / 2
	w, h := m.PixelSize()
	p := camera.ComputePosition(x, y, viewW, viewH, float64(w), float64(h))
	cam.X, cam.Y = p.X, p.Y
	return cam
}

func (r *Renderer) drawStage(dst *ebiten.Image, slot int, st *scene.Stage, cam camera.State, alpha float32, overlay func(*ebiten.Image)) {
	r.stage.Fill(r.tiles.Background())
	r.drawLayers(r.stage, st.Map, cam)
	overlay(r.stage)

	if p := r.fogs[slot]; p != nil && st.Fog != nil {
		p.draw(dst, r.stage, st.Fog, cam, st.Map.TileWidth, st.Map.TileHeight, alpha)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(r.stage, op)
}

func (r *Renderer) drawLayers(dst *ebiten.Image, m *tilemap.LoadedMap, cam camera.State) {
	tw, th := m.TileWidth, m.TileHeight
	for _, name := range m.LayerOrder {
		r.visible = camera.AppendVisibleTiles(r.visible[:0], m.Layer(name), m.Width, m.Height, tw, th, cam)
		for _, vt := range r.visible {
			img := r.tiles.Image(m.TileString(vt.TileIndex), tw, th)
			if img == nil {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(vt.ScreenX, vt.ScreenY)
			dst.DrawImage(img, op)
		}
	}
}

func (r *Renderer) drawWorldEntities(dst *ebiten.Image, w *ecs.World, cam camera.State) {
	ecs.ForEach2(w, component.BehaviorComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Behavior, t *component.Transform) {
		r.marker(dst, t.X-cam.X, t.Y-cam.Y, t.Width, t.Height, r.tiles.EntityColor(b.Type))
	})
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		vector.FillRect(dst, float32(t.X-cam.X), float32(t.Y-cam.Y), float32(t.Width), float32(t.Height), r.opts.PlayerColor, false)
	})
}

func (r *Renderer) drawMapEntities(dst *ebiten.Image, m *tilemap.LoadedMap, cam camera.State) {
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	for _, e := range m.Entities {
		r.marker(dst, float64(e.X)*tw-cam.X, float64(e.Y)*th-cam.Y, float64(e.Width)*tw, float64(e.Height)*th, r.tiles.EntityColor(e.Type))
	}
}

// marker draws an inset outline for an entity rectangle in screen space.
func (r *Renderer) marker(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	if x+w < 0 || y+h < 0 || x > float64(r.opts.Width) || y > float64(r.opts.Height) {
		return
	}
	vector.StrokeRect(dst, float32(x+2), float32(y+2), float32(w-4), float32(h-4), 2, c, false)
}

func (r *Renderer) drawMotes(dst *ebiten.Image, p *particles.Pool, cam camera.State) {
	if p == nil || p.ActiveCount == 0 {
		return
	}
	wisp := r.tiles.MoteColor(particles.MoteWisp)
	sparkle := r.tiles.MoteColor(particles.MoteSparkle)
	for i := 0; i < p.Size(); i++ {
		if p.Active[i] == 0 {
			continue
		}
		x := p.X[i] - float32(cam.X)
		y := p.Y[i] - float32(cam.Y)
		if x < -2 || y < -2 || x > float32(r.opts.Width)+2 || y > float32(r.opts.Height)+2 {
			continue
		}
		c, size := wisp, float32(2)
		if p.Type[i] == particles.MoteSparkle {
			c, size = sparkle, 1.5
		}
		vector.FillRect(dst, x-size/2, y-size/2, size, size, fade(c, p.Alpha(i)), false)
	}
}

// fade scales a colour's alpha by a in [0, 1], premultiplied.
func fade(c color.Color, a float32) color.Color {
	a = min(max(a, 0), 1)
	r, g, b, al := c.RGBA()
	return color.RGBA64{
		R: uint16(float32(r) * a),
		G: uint16(float32(g) * a),
		B: uint16(float32(b) * a),
		A: uint16(float32(al) * a),
	}
}
