package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/resonance/camera"
	"github.com/milk9111/resonance/fog"
	"github.com/milk9111/resonance/logger"
)

// fogPass composites a stage image onto the screen through the fog shader.
// Each pass keeps its own grid and mask images, so the outgoing and incoming
// maps of a crossfade never share uploads.
type fogPass struct {
	shader *ebiten.Shader

	overlay  *fog.Overlay
	gridW    int
	gridH    int
	prevGrid *ebiten.Image
	curGrid  *ebiten.Image

	prevMask *ebiten.Image
	curMask  *ebiten.Image

	// CPU fallback buffers.
	rgba *image.RGBA
	out  *ebiten.Image
}

func compileFogShader() *ebiten.Shader {
	s, err := ebiten.NewShader(fog.ShaderSource)
	if err != nil {
		logger.Log.WithError(err).Warn("fog shader failed to compile, using CPU fallback")
		return nil
	}
	return s
}

func newFogPass(shader *ebiten.Shader, w, h int) *fogPass {
	return &fogPass{
		shader:   shader,
		prevMask: ebiten.NewImage(w, h),
		curMask:  ebiten.NewImage(w, h),
	}
}

// upload pushes the overlay's grids to the GPU when they changed or when the
// pass switched overlays.
func (p *fogPass) upload(ov *fog.Overlay) {
	prevPix, curPix, changed := ov.Pixels()
	prev, cur := ov.Grids()
	if cur.Width == 0 || cur.Height == 0 {
		p.overlay = ov
		return
	}
	if p.curGrid == nil || p.gridW != cur.Width || p.gridH != cur.Height {
		if p.curGrid != nil {
			p.curGrid.Deallocate()
			p.prevGrid.Deallocate()
		}
		p.gridW, p.gridH = cur.Width, cur.Height
		p.curGrid = ebiten.NewImage(cur.Width, cur.Height)
		p.prevGrid = ebiten.NewImage(cur.Width, cur.Height)
		changed = true
	}
	if !changed && p.overlay == ov {
		return
	}
	p.overlay = ov
	p.curGrid.WritePixels(curPix)
	if prev.Width == cur.Width && prev.Height == cur.Height {
		p.prevGrid.WritePixels(prevPix)
	} else {
		p.prevGrid.WritePixels(curPix)
	}
}

// stretch draws a grid image as a screen-sized mask, one grid cell per tile.
func stretch(mask, grid *ebiten.Image, cam camera.State, tileW, tileH int) {
	mask.Clear()
	if grid == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(tileW), float64(tileH))
	op.GeoM.Translate(-cam.X, -cam.Y)
	op.Filter = ebiten.FilterNearest
	mask.DrawImage(grid, op)
}

// draw composites src onto dst with the fog of ov applied, at opacity alpha.
func (p *fogPass) draw(dst, src *ebiten.Image, ov *fog.Overlay, cam camera.State, tileW, tileH int, alpha float32) {
	p.upload(ov)
	u := ov.Uniforms(cam, fog.DefaultTransition)
	u.TileSize = float32(tileW)

	if p.shader == nil {
		p.drawCPU(dst, src, ov, cam, tileW, u, alpha)
		return
	}

	stretch(p.curMask, p.curGrid, cam, tileW, tileH)
	stretch(p.prevMask, p.prevGrid, cam, tileW, tileH)

	b := src.Bounds()
	op := &ebiten.DrawRectShaderOptions{}
	op.Uniforms = u.ShaderUniforms()
	op.Images[0] = src
	op.Images[1] = p.curMask
	op.Images[2] = p.prevMask
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawRectShader(b.Dx(), b.Dy(), p.shader, op)
}

func (p *fogPass) drawCPU(dst, src *ebiten.Image, ov *fog.Overlay, cam camera.State, tileW int, u fog.Uniforms, alpha float32) {
	b := src.Bounds()
	if p.rgba == nil || p.rgba.Rect.Dx() != b.Dx() || p.rgba.Rect.Dy() != b.Dy() {
		p.rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		p.out = ebiten.NewImage(b.Dx(), b.Dy())
	}
	src.ReadPixels(p.rgba.Pix)
	prev, cur := ov.Grids()
	fog.Apply(p.rgba, prev, cur, cam, tileW, u)
	p.out.WritePixels(p.rgba.Pix)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(p.out, op)
}
