package fog

import (
	"image"
	"math"

	"github.com/milk9111/resonance/camera"
)

// Band thresholds on the grid value.
const (
	RememberedAbove = 0.75
	ForgottenAtMost = 0.25
)

// RGB is a straight-alpha colour with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

func mixRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// Colours and strengths shared with fog.kage.
var (
	HazeColor = RGB{0.85, 0.72, 0.55}
	DarkColor = RGB{0.04, 0.03, 0.06}
)

const (
	hazeStrength = 0.6
	darkStrength = 0.92
)

// Band is the visual treatment a grid value selects.
type Band uint8

const (
	BandClear Band = iota
	BandHaze
	BandDark
)

func (b Band) String() string {
	switch b {
	case BandHaze:
		return "haze"
	case BandDark:
		return "dark"
	}
	return "clear"
}

// BandOf classifies a grid value.
func BandOf(v float64) Band {
	switch {
	case v > RememberedAbove:
		return BandClear
	case v > ForgottenAtMost:
		return BandHaze
	}
	return BandDark
}

func luminance(c RGB) float64 {
	return c.R*0.299 + c.G*0.587 + c.B*0.114
}

// Filter returns the fully fogged colour of base under grid value v.
func Filter(base RGB, v float64) RGB {
	switch BandOf(v) {
	case BandHaze:
		l := luminance(base)
		haze := RGB{
			R: HazeColor.R * (0.4 + 0.6*l),
			G: HazeColor.G * (0.4 + 0.6*l),
			B: HazeColor.B * (0.4 + 0.6*l),
		}
		return mixRGB(base, haze, hazeStrength)
	case BandDark:
		return mixRGB(base, DarkColor, darkStrength)
	}
	return base
}

// Shade is the per-pixel fog rule: the filtered colour of the previous and
// current grid values blended by unlock, then blended over base by
// transition. It matches fog.kage.
func Shade(base RGB, prev, cur, unlock, transition float64) RGB {
	filtered := mixRGB(Filter(base, prev), Filter(base, cur), unlock)
	return mixRGB(base, filtered, transition)
}

// Apply runs the fog pass on the CPU over img, which holds the world as seen
// by cam. prev may be the zero Grid when no unlock is in progress.
func Apply(img *image.RGBA, prev, cur Grid, cam camera.State, tileSize int, u Uniforms) {
	if img == nil || tileSize <= 0 {
		return
	}
	if prev.Width == 0 {
		prev = cur
	}
	b := img.Bounds()
	ts := float64(tileSize)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		ty := int(math.Floor((float64(y-b.Min.Y) + cam.Y) / ts))
		for x := b.Min.X; x < b.Max.X; x++ {
			tx := int(math.Floor((float64(x-b.Min.X) + cam.X) / ts))
			cv := float64(cur.At(tx, ty))
			pv := float64(prev.At(tx, ty))
			if cv > RememberedAbove && pv > RememberedAbove {
				continue
			}
			i := img.PixOffset(x, y)
			p := img.Pix[i : i+4]
			out := Shade(RGB{
				R: float64(p[0]) / 255,
				G: float64(p[1]) / 255,
				B: float64(p[2]) / 255,
			}, pv, cv, float64(u.Unlock), float64(u.Transition))
			p[0] = toByte(out.R)
			p[1] = toByte(out.G)
			p[2] = toByte(out.B)
		}
	}
}

func toByte(v float64) byte {
	v = min(max(v, 0), 1)
	return byte(v*255 + 0.5)
}
