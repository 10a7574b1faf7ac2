package main

import (
	"fmt"

	"github.com/aquilax/go-perlin"

	"github.com/milk9111/resonance/levels"
	"github.com/milk9111/resonance/vibrancy"
)

// Params describes one generated map.
type Params struct {
	ID       string
	Width    int
	Height   int
	TileSize int
	Seed     int64
	// AreasX and AreasY split the map into a grid of vibrancy areas.
	AreasX int
	AreasY int
	// Exit, when set, places a transition on the east edge leading there.
	Exit       string
	ExitSpawn  string
	ChildWorld bool
}

const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = int32(3)
	noiseScale  = 12.0
)

type field struct {
	p *perlin.Perlin
}

// at samples the noise field in [0, 1].
func (f field) at(x, y int, offset float64) float64 {
	n := f.p.Noise2D(float64(x)/noiseScale+offset, float64(y)/noiseScale+offset)
	return min(max((n+1)/2, 0), 1)
}

// Generate builds a walled map of perlin terrain with a clear spawn at the
// centre and, when Exit is set, a clear path east to a transition zone.
func Generate(p Params) (*levels.RawMap, error) {
	if p.Width < 5 || p.Height < 5 {
		return nil, fmt.Errorf("worldgen: map %dx%d is too small", p.Width, p.Height)
	}
	if p.TileSize <= 0 {
		p.TileSize = 32
	}
	p.AreasX = max(p.AreasX, 1)
	p.AreasY = max(p.AreasY, 1)

	f := field{p: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, p.Seed)}
	w, h := p.Width, p.Height
	ground := make([]levels.RawTile, w*h)
	objects := make([]levels.RawTile, w*h)
	collision := make([]levels.RawFlag, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				ground[i] = "terrain:wall"
				collision[i] = 1
				continue
			}
			switch v := f.at(x, y, 0); {
			case v < 0.3:
				ground[i] = "terrain:water"
				collision[i] = 1
			case v < 0.6:
				ground[i] = "terrain:grass"
			case v < 0.75:
				ground[i] = "terrain:path"
			default:
				ground[i] = "terrain:stone"
			}
			if ground[i] == "terrain:grass" && f.at(x, y, 100) > 0.72 {
				objects[i] = "object:tree"
				collision[i] = 1
			}
		}
	}

	cx, cy := w/2, h/2
	carve := func(x, y int) {
		i := y*w + x
		ground[i] = "terrain:path"
		objects[i] = ""
		collision[i] = 0
	}
	for y := cy - 1; y <= cy+1; y++ {
		for x := cx - 1; x <= cx+1; x++ {
			carve(x, y)
		}
	}

	raw := &levels.RawMap{
		ID:         p.ID,
		Width:      w,
		Height:     h,
		TileWidth:  p.TileSize,
		TileHeight: p.TileSize,
		LayerOrder: []string{"ground", "objects"},
		Layers:     map[string][]levels.RawTile{"ground": ground, "objects": objects},
		Collision:  collision,
		SpawnPoints: []levels.SpawnPoint{
			{ID: "start", X: float64(cx), Y: float64(cy)},
		},
	}

	if p.Exit != "" {
		for x := cx; x < w-1; x++ {
			carve(x, cy)
		}
		carve(w-1, cy)
		kind := ""
		if p.ChildWorld {
			kind = "child-world"
		}
		raw.SpawnPoints = append(raw.SpawnPoints, levels.SpawnPoint{ID: "east", X: float64(w - 3), Y: float64(cy)})
		raw.Objects = append(raw.Objects, levels.RawObject{
			Name: "exit",
			Type: "transition",
			X:    float64(w - 1),
			Y:    float64(cy),
			Properties: map[string]any{
				"targetMap":   p.Exit,
				"targetSpawn": p.ExitSpawn,
			},
		})
		raw.Transitions = append(raw.Transitions, levels.Transition{
			ID: "exit", TargetMap: p.Exit, TargetSpawn: p.ExitSpawn, Type: kind,
		})
	}

	raw.VibrancyAreas = areas(f, w, h, p.AreasX, p.AreasY)
	return raw, nil
}

// areas tiles the map with an ax×ay grid of areas, each seeded from the
// noise at its centre.
func areas(f field, w, h, ax, ay int) []levels.RawVibrancyArea {
	ax = min(ax, w)
	ay = min(ay, h)
	out := make([]levels.RawVibrancyArea, 0, ax*ay)
	for j := 0; j < ay; j++ {
		y0, y1 := j*h/ay, (j+1)*h/ay
		for i := 0; i < ax; i++ {
			x0, x1 := i*w/ax, (i+1)*w/ax
			state := vibrancy.Forgotten
			switch v := f.at((x0+x1)/2, (y0+y1)/2, 200); {
			case v >= 0.6:
				state = vibrancy.Remembered
			case v >= 0.4:
				state = vibrancy.Partial
			}
			out = append(out, levels.RawVibrancyArea{
				ID:           fmt.Sprintf("area-%d-%d", i, j),
				X:            float64(x0),
				Y:            float64(y0),
				Width:        float64(x1 - x0),
				Height:       float64(y1 - y0),
				InitialState: state.String(),
			})
		}
	}
	return out
}
