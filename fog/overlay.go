package fog

import (
	"time"

	"github.com/milk9111/resonance/camera"
	"github.com/milk9111/resonance/vibrancy"
)

// UnlockDuration is how long a vibrancy change takes to fade in.
const UnlockDuration = 500 * time.Millisecond

// Overlay keeps the fog grids in sync with a vibrancy store. A state change
// is instant in the store; the overlay animates it by blending the previous
// grid into the new one over UnlockDuration.
type Overlay struct {
	store   *vibrancy.Map
	mapW    int
	mapH    int
	version uint64

	cur     Grid
	prev    Grid
	elapsed time.Duration
	pixels  []byte
	dirty   bool
}

// NewOverlay builds the grid for store over a map of mapW×mapH tiles.
func NewOverlay(store *vibrancy.Map, mapW, mapH int) *Overlay {
	o := &Overlay{store: store, mapW: mapW, mapH: mapH}
	o.cur = BuildGrid(store.Areas(), mapW, mapH)
	o.prev = o.cur
	o.version = store.Version()
	o.elapsed = UnlockDuration
	o.dirty = true
	return o
}

// Update advances the unlock animation by dt and picks up any store change.
// It reports whether the grid was rebuilt.
func (o *Overlay) Update(dt time.Duration) bool {
	if o == nil {
		return false
	}
	if o.elapsed < UnlockDuration {
		o.elapsed = min(o.elapsed+max(dt, 0), UnlockDuration)
	}
	v := o.store.Version()
	if v == o.version {
		return false
	}
	o.version = v
	next := BuildGrid(o.store.Areas(), o.mapW, o.mapH)
	if next.Equal(o.cur) {
		return false
	}
	o.prev = o.cur
	o.cur = next
	o.elapsed = 0
	o.dirty = true
	return true
}

// Grids returns the previous and current grids.
func (o *Overlay) Grids() (prev, cur Grid) {
	if o == nil {
		return Grid{}, Grid{}
	}
	return o.prev, o.cur
}

// Progress is the unlock blend in [0, 1]; 1 when no animation is running.
func (o *Overlay) Progress() float64 {
	if o == nil || o.elapsed >= UnlockDuration {
		return 1
	}
	return float64(o.elapsed) / float64(UnlockDuration)
}

// Animating reports whether an unlock is in progress.
func (o *Overlay) Animating() bool {
	return o.Progress() < 1
}

// Uniforms builds the uniform set for this frame.
func (o *Overlay) Uniforms(cam camera.State, transition float64) Uniforms {
	if o == nil {
		return BuildUniforms(cam, 0, 0, transition)
	}
	u := BuildUniforms(cam, o.mapW, o.mapH, transition)
	u.Unlock = float32(o.Progress())
	return u
}

// Pixels returns the RGBA data of the previous and current grids and whether
// they changed since the last call.
func (o *Overlay) Pixels() (prev, cur []byte, changed bool) {
	if o == nil {
		return nil, nil, false
	}
	changed = o.dirty
	if o.dirty || o.pixels == nil {
		n := len(o.cur.Cells) * 4
		if cap(o.pixels) < 2*n {
			o.pixels = make([]byte, 2*n)
		}
		o.pixels = o.pixels[:2*n]
		FillPixelData(o.pixels[:n], o.prev)
		FillPixelData(o.pixels[n:], o.cur)
		o.dirty = false
	}
	n := len(o.pixels) / 2
	return o.pixels[:n:n], o.pixels[n:], changed
}
