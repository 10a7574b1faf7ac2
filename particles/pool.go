// Package particles implements the ambient mote pool. Motes live in fixed
// parallel buffers; spawning reuses dead slots and nothing allocates after
// NewPool.
package particles

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/milk9111/resonance/vibrancy"
)

// MoteType tags a slot's visual.
type MoteType uint8

const (
	MoteNone MoteType = iota
	MoteWisp
	MoteSparkle
)

func (t MoteType) String() string {
	switch t {
	case MoteWisp:
		return "wisp"
	case MoteSparkle:
		return "sparkle"
	}
	return "none"
}

// Mote tuning, in pixels per frame and frames.
const (
	WispRiseMin    = 0.2
	WispRiseMax    = 0.6
	WispJitter     = 0.2
	WispLifeMin    = 60
	WispLifeMax    = 120
	SparkleSpeedLo = 0.5
	SparkleSpeedHi = 1.5
	SparkleLifeMin = 20
	SparkleLifeMax = 40
)

// MoteTypeForState maps an area's vibrancy to the mote it emits.
func MoteTypeForState(s vibrancy.State) MoteType {
	switch s {
	case vibrancy.Partial:
		return MoteWisp
	case vibrancy.Remembered:
		return MoteSparkle
	}
	return MoteNone
}

// Pool is a struct-of-arrays mote buffer of fixed capacity. Renderers read
// the exported buffers directly; only slots with Active[i] == 1 are live.
type Pool struct {
	X       []float32
	Y       []float32
	VX      []float32
	VY      []float32
	Life    []float32
	MaxLife []float32
	Type    []MoteType
	Active  []uint8

	ActiveCount int
	size        int
	rng         *rand.Rand
}

// NewPool allocates a pool with room for capacity motes.
func NewPool(capacity int) *Pool {
	seed := uint64(time.Now().UnixNano())
	return NewPoolWithRand(capacity, rand.New(rand.NewPCG(seed, seed>>17|1)))
}

// NewPoolWithRand is NewPool with an explicit random source.
func NewPoolWithRand(capacity int, rng *rand.Rand) *Pool {
	capacity = max(capacity, 0)
	return &Pool{
		X:       make([]float32, capacity),
		Y:       make([]float32, capacity),
		VX:      make([]float32, capacity),
		VY:      make([]float32, capacity),
		Life:    make([]float32, capacity),
		MaxLife: make([]float32, capacity),
		Type:    make([]MoteType, capacity),
		Active:  make([]uint8, capacity),
		size:    capacity,
		rng:     rng,
	}
}

// Size returns the pool capacity.
func (p *Pool) Size() int {
	if p == nil {
		return 0
	}
	return p.size
}

// Spawn places a mote at (x, y) in the first dead slot. It does nothing and
// returns false for MoteNone or when the pool is full.
func (p *Pool) Spawn(x, y float32, t MoteType) bool {
	if p == nil || t == MoteNone || p.ActiveCount >= p.size {
		return false
	}
	slot := -1
	for i := 0; i < p.size; i++ {
		if p.Active[i] == 0 {
			slot = i
			break
		}
	}
	if slot < 0 {
		return false
	}

	var vx, vy, life float32
	switch t {
	case MoteWisp:
		vx = (p.rng.Float32()*2 - 1) * WispJitter
		vy = -(WispRiseMin + p.rng.Float32()*(WispRiseMax-WispRiseMin))
		life = float32(WispLifeMin + p.rng.IntN(WispLifeMax-WispLifeMin+1))
	case MoteSparkle:
		angle := p.rng.Float64() * 2 * math.Pi
		speed := SparkleSpeedLo + p.rng.Float64()*(SparkleSpeedHi-SparkleSpeedLo)
		vx = float32(math.Cos(angle) * speed)
		vy = float32(math.Sin(angle) * speed)
		life = float32(SparkleLifeMin + p.rng.IntN(SparkleLifeMax-SparkleLifeMin+1))
	default:
		return false
	}

	p.Active[slot] = 1
	p.Type[slot] = t
	p.X[slot] = x
	p.Y[slot] = y
	p.VX[slot] = vx
	p.VY[slot] = vy
	p.Life[slot] = life
	p.MaxLife[slot] = life
	p.ActiveCount++
	return true
}

// Update advances every live mote one frame and retires expired ones.
func (p *Pool) Update() {
	if p == nil || p.ActiveCount == 0 {
		return
	}
	for i := 0; i < p.size; i++ {
		if p.Active[i] == 0 {
			continue
		}
		p.X[i] += p.VX[i]
		p.Y[i] += p.VY[i]
		p.Life[i]--
		if p.Life[i] <= 0 {
			p.Active[i] = 0
			p.Type[i] = MoteNone
			p.ActiveCount--
		}
	}
}

// SpawnAreaMotes spawns rate motes at random points inside the area, typed
// by the area's current state.
func (p *Pool) SpawnAreaMotes(area vibrancy.Area, rate int, tileW, tileH int) int {
	if p == nil || rate <= 0 {
		return 0
	}
	t := MoteTypeForState(area.State)
	if t == MoteNone || area.Width <= 0 || area.Height <= 0 {
		return 0
	}
	left := float32(area.X * tileW)
	top := float32(area.Y * tileH)
	w := float32(area.Width * tileW)
	h := float32(area.Height * tileH)

	spawned := 0
	for i := 0; i < rate; i++ {
		x := left + p.rng.Float32()*w
		y := top + p.rng.Float32()*h
		if p.Spawn(x, y, t) {
			spawned++
		}
	}
	return spawned
}

// Alpha returns the fade of a live slot, 1 when fresh and 0 at death.
func (p *Pool) Alpha(slot int) float32 {
	if p == nil || slot < 0 || slot >= p.size || p.MaxLife[slot] <= 0 {
		return 0
	}
	return p.Life[slot] / p.MaxLife[slot]
}

// Reset kills every mote in place.
func (p *Pool) Reset() {
	if p == nil {
		return
	}
	for i := 0; i < p.size; i++ {
		p.Active[i] = 0
		p.Type[i] = MoteNone
		p.Life[i] = 0
	}
	p.ActiveCount = 0
}
