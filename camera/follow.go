package camera

// Follow is a smoothed camera that tracks a target and stays inside the
// world bounds.
type Follow struct {
	pos Point

	viewW float64
	viewH float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in pixels
	worldW float64
	worldH float64
}

// NewFollow creates a camera with the given viewport size and smoothing.
func NewFollow(viewW, viewH, smooth float64) *Follow {
	c := &Follow{viewW: viewW, viewH: viewH}
	c.SetSmooth(smooth)
	return c
}

// SetViewport updates the viewport size.
func (c *Follow) SetViewport(w, h float64) {
	if c == nil || w <= 0 || h <= 0 {
		return
	}
	c.viewW = w
	c.viewH = h
}

// SetWorldBounds sets the world pixel dimensions for clamping.
func (c *Follow) SetWorldBounds(w, h float64) {
	if c == nil {
		return
	}
	c.worldW = w
	c.worldH = h
}

func (c *Follow) SetSmooth(f float64) {
	if c == nil {
		return
	}
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	c.smooth = f
}

// Update moves the camera toward the position that centres (targetX,
// targetY). Call once per fixed update for consistent smoothing. A zero
// smoothing factor snaps.
func (c *Follow) Update(targetX, targetY float64) {
	if c == nil {
		return
	}
	ideal := ComputePosition(targetX, targetY, c.viewW, c.viewH, c.worldW, c.worldH)
	if c.smooth <= 0 {
		c.pos = ideal
		return
	}
	c.pos = Lerp(c.pos, ideal, c.smooth)
}

// SnapTo places the camera immediately, e.g. right after a map load.
func (c *Follow) SnapTo(targetX, targetY float64) {
	if c == nil {
		return
	}
	c.pos = ComputePosition(targetX, targetY, c.viewW, c.viewH, c.worldW, c.worldH)
}

// State returns this frame's camera values.
func (c *Follow) State() State {
	if c == nil {
		return State{}
	}
	return State{X: c.pos.X, Y: c.pos.Y, ViewportW: c.viewW, ViewportH: c.viewH}
}
