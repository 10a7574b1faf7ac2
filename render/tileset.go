package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/milk9111/resonance/camera"
	"github.com/milk9111/resonance/logger"
	"github.com/milk9111/resonance/particles"
	"github.com/milk9111/resonance/prefabs"
	"github.com/milk9111/resonance/tilemap"
)

type tileKey struct {
	id   string
	w, h int
}

// Tileset turns semantic tile ids into images using a TilesetSpec. Images
// are built on first use and cached per id and tile size.
type Tileset struct {
	spec  *prefabs.TilesetSpec
	atlas *ebiten.Image
	cache map[tileKey]*ebiten.Image
}

// NewTileset prepares a tileset. A missing atlas degrades to flat colours.
func NewTileset(spec *prefabs.TilesetSpec) *Tileset {
	if spec == nil {
		spec = &prefabs.TilesetSpec{}
	}
	t := &Tileset{spec: spec, cache: make(map[tileKey]*ebiten.Image)}
	if spec.Atlas != "" {
		ForgetImage(spec.Atlas)
		img, err := LoadImage(spec.Atlas)
		if err != nil {
			logger.Log.WithError(err).WithField("atlas", spec.Atlas).Warn("tileset atlas unavailable, using flat colours")
		} else {
			t.atlas = img
		}
	}
	return t
}

// Image returns the image for tile id at the given size, or nil for the
// empty id.
func (t *Tileset) Image(id string, w, h int) *ebiten.Image {
	if t == nil || id == "" || w <= 0 || h <= 0 {
		return nil
	}
	key := tileKey{id: id, w: w, h: h}
	if img, ok := t.cache[key]; ok {
		return img
	}

	style := t.spec.Style(id)
	var img *ebiten.Image
	if style.Atlas != nil && t.atlas != nil {
		r := camera.TileSourceRect(*style.Atlas, t.spec.AtlasColumns, w, h, t.spec.FirstIndex)
		if !r.Empty() && r.In(t.atlas.Bounds()) {
			img = t.atlas.SubImage(r).(*ebiten.Image)
		}
	}
	if img == nil {
		img = ebiten.NewImage(w, h)
		inner := insetRect(w, h, style.Inset)
		img.SubImage(inner).(*ebiten.Image).Fill(style.Color.ColorOr(t.fallback()))
	}
	t.cache[key] = img
	return img
}

// Background is the clear colour behind every map.
func (t *Tileset) Background() color.Color {
	if t == nil {
		return colornames.Black
	}
	return t.spec.Background.ColorOr(colornames.Black)
}

// EntityColor is the marker colour of an entity type.
func (t *Tileset) EntityColor(et tilemap.EntityType) color.Color {
	if t != nil {
		if c, ok := t.spec.Entities[string(et)]; ok {
			return c.ColorOr(colornames.Gold)
		}
	}
	return colornames.Gold
}

// MoteColor is the colour of a mote type.
func (t *Tileset) MoteColor(mt particles.MoteType) color.Color {
	if t != nil {
		if c, ok := t.spec.Motes[mt.String()]; ok {
			return c.ColorOr(colornames.White)
		}
	}
	return colornames.White
}

func (t *Tileset) fallback() color.Color {
	return t.spec.Fallback.ColorOr(colornames.Magenta)
}

// insetRect shrinks a w×h cell by inset on every side, never below one
// pixel.
func insetRect(w, h, inset int) image.Rectangle {
	inset = max(inset, 0)
	inset = min(inset, (w-1)/2, (h-1)/2)
	return image.Rect(inset, inset, w-inset, h-inset)
}
