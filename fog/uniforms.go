package fog

import (
	"github.com/milk9111/resonance/camera"
	"github.com/milk9111/resonance/common"
)

// UniformTileSize is the tile edge, in pixels, the fog grid is laid out on.
const UniformTileSize = 32

// DefaultTransition applies the fog fully.
const DefaultTransition = 1.0

// Uniforms is the scalar input of the fog pass.
type Uniforms struct {
	ResolutionX float32
	ResolutionY float32
	CameraX     float32
	CameraY     float32
	TileSize    float32
	GridW       float32
	GridH       float32
	// Transition blends between the unfiltered image (0) and full fog (1).
	Transition float32
	// Unlock blends the previous grid (0) into the current one (1).
	Unlock float32
}

// BuildUniforms fills the uniform set for a camera over a map of mapW×mapH
// tiles. transition is clamped to [0, 1].
func BuildUniforms(cam camera.State, mapW, mapH int, transition float64) Uniforms {
	gw, gh := GridSize(mapW, mapH)
	return Uniforms{
		ResolutionX: float32(cam.ViewportW),
		ResolutionY: float32(cam.ViewportH),
		CameraX:     float32(cam.X),
		CameraY:     float32(cam.Y),
		TileSize:    UniformTileSize,
		GridW:       float32(gw),
		GridH:       float32(gh),
		Transition:  float32(common.Clamp01(transition)),
		Unlock:      1,
	}
}

// ShaderUniforms returns the values read by fog.kage, keyed the way
// ebiten.DrawRectShaderOptions expects.
func (u Uniforms) ShaderUniforms() map[string]any {
	return map[string]any{
		"Resolution": []float32{u.ResolutionX, u.ResolutionY},
		"Camera":     []float32{u.CameraX, u.CameraY},
		"TileSize":   u.TileSize,
		"GridSize":   []float32{u.GridW, u.GridH},
		"Transition": u.Transition,
		"Unlock":     u.Unlock,
	}
}
