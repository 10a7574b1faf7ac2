// Package scene runs one world: the active map, its vibrancy, motes, camera,
// collision and entities, and the transitions between maps. Everything runs
// on the caller's goroutine except map fetches, which happen in the
// background while the old map keeps playing.
package scene

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/resonance/camera"
	"github.com/milk9111/resonance/ecs"
	"github.com/milk9111/resonance/ecs/component"
	"github.com/milk9111/resonance/levels"
	"github.com/milk9111/resonance/logger"
	"github.com/milk9111/resonance/particles"
	"github.com/milk9111/resonance/tilemap"
	"github.com/milk9111/resonance/transition"
	"github.com/milk9111/resonance/vibrancy"
)

// Input is the player's movement intent for one frame, each axis in [-1, 1].
type Input struct {
	DX float64
	DY float64
}

// ReturnPoint is where ReturnToParent sends the player.
type ReturnPoint struct {
	MapID string
	X     float64
	Y     float64
}

type loadResult struct {
	seq uint64
	m   *tilemap.LoadedMap
	err error
}

// arrival places the player at an exact position instead of a spawn point.
type arrival struct {
	mapID string
	x, y  float64
}

// Scene owns the running world.
type Scene struct {
	cfg    Config
	source levels.Source
	ctx    context.Context
	log    *logrus.Entry

	current  *Stage
	incoming *Stage
	trans    transition.State
	results  chan loadResult
	cancel   context.CancelFunc

	returns   []ReturnPoint
	departure *ReturnPoint
	arrival   *arrival
	// saved keeps each visited map's area states across visits.
	saved map[string]map[string]vibrancy.State

	pool   *particles.Pool
	cam    *camera.Follow
	world  *ecs.World
	player ecs.Entity
	sched  *ecs.Scheduler

	frame int
}

// New creates an empty scene reading maps from source. ctx bounds every
// background load.
func New(ctx context.Context, cfg Config, source levels.Source) *Scene {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &Scene{
		cfg:     cfg,
		source:  source,
		ctx:     ctx,
		log:     logger.Log.WithField("component", "scene"),
		results: make(chan loadResult, 4),
		pool:    particles.NewPool(cfg.MoteCapacity),
		cam:     camera.NewFollow(cfg.ViewportW, cfg.ViewportH, cfg.CameraSmooth),
		world:   ecs.NewWorld(),
		saved:   make(map[string]map[string]vibrancy.State),
	}
	s.sched = ecs.NewScheduler(
		ecs.SystemFunc(s.syncPlayer),
		ecs.SystemFunc(s.releaseCooldown),
		ecs.SystemFunc(s.fireHooks),
	)
	return s
}

// Start loads mapID synchronously and places the player at spawnID.
func (s *Scene) Start(mapID, spawnID string) error {
	if s.source == nil {
		return errors.New("scene: no map source")
	}
	raw, err := s.source.Load(s.ctx, mapID)
	if err != nil {
		return fmt.Errorf("scene: start %s: %w", mapID, err)
	}
	m := tilemap.LoadMapData(raw)
	s.install(newStage(m, s.saved[m.ID]), spawnID)
	return nil
}

// Update advances the scene by one frame of length dt.
func (s *Scene) Update(dt time.Duration, in Input) {
	if s == nil || s.current == nil {
		return
	}
	s.frame++

	s.pollLoads()
	s.advanceTransition(dt)

	if !s.trans.Active() {
		s.movePlayer(dt, in)
	} else {
		s.current.Physics.SetPlayerVelocity(0, 0)
	}
	s.sched.Update(s.world)

	if !s.trans.Active() {
		s.detectTransition()
	}

	s.updateMotes()
	s.current.Fog.Update(dt)
	if px, py, ok := s.PlayerCenter(); ok {
		s.cam.Update(px, py)
	}
}

// Close cancels any in-flight load.
func (s *Scene) Close() {
	if s != nil && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Travel starts a transition to mapID, superseding any in flight.
func (s *Scene) Travel(mapID, spawnID string, kind transition.Kind) {
	if s == nil {
		return
	}
	if kind == transition.ChildWorld {
		if px, py, ok := s.PlayerCenter(); ok {
			s.departure = &ReturnPoint{MapID: s.current.ID(), X: px, Y: py}
		}
	} else {
		s.departure = nil
	}
	s.begin(mapID, spawnID, kind)
}

// ReturnToParent leaves the current child world for the map it was entered
// from. It returns false at the top level.
func (s *Scene) ReturnToParent() bool {
	if s == nil || len(s.returns) == 0 {
		return false
	}
	rp := s.returns[len(s.returns)-1]
	s.returns = s.returns[:len(s.returns)-1]
	s.departure = nil
	s.arrival = &arrival{mapID: rp.MapID, x: rp.X, y: rp.Y}
	s.begin(rp.MapID, "", transition.SameWorld)
	return true
}

// Reload reloads mapID in place if it is the current map, keeping the
// player where they stand.
func (s *Scene) Reload(mapID string) bool {
	if s == nil || s.current == nil || s.current.ID() != mapID {
		return false
	}
	px, py, ok := s.PlayerCenter()
	if !ok {
		return false
	}
	s.departure = nil
	s.arrival = &arrival{mapID: mapID, x: px, y: py}
	s.begin(mapID, "", transition.SameWorld)
	return true
}

func (s *Scene) begin(mapID, spawnID string, kind transition.Kind) {
	if s.cancel != nil {
		s.cancel()
	}
	s.trans = transition.Begin(s.trans, mapID, spawnID, kind)
	s.incoming = nil

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	seq := s.trans.Seq
	source := s.source

	s.log.WithFields(logrus.Fields{
		"target": mapID,
		"spawn":  spawnID,
		"kind":   kind.String(),
		"seq":    seq,
	}).Info("transition started")

	go func() {
		res := loadResult{seq: seq}
		if source == nil {
			res.err = errors.New("scene: no map source")
		} else if raw, err := source.Load(ctx, mapID); err != nil {
			res.err = err
		} else {
			res.m = tilemap.LoadMapData(raw)
		}
		select {
		case s.results <- res:
		case <-ctx.Done():
		}
	}()
}

func (s *Scene) pollLoads() {
	for {
		select {
		case res := <-s.results:
			s.handleLoad(res)
		default:
			return
		}
	}
}

func (s *Scene) handleLoad(res loadResult) {
	if res.seq != s.trans.Seq || s.trans.Phase != transition.Loading {
		s.log.WithField("seq", res.seq).Debug("dropping stale map load")
		return
	}
	if res.err != nil {
		s.log.WithError(res.err).WithField("target", s.trans.MapID).Error("map load failed")
		s.trans = transition.State{Seq: s.trans.Seq}
		s.departure = nil
		s.arrival = nil
		return
	}
	s.incoming = newStage(res.m, s.savedFor(res.m.ID))
	s.trans = transition.OnMapLoaded(s.trans, res.m)
	logger.WithMap(res.m.ID).WithField("phase", s.trans.Phase.String()).Debug("map loaded")
}

// savedFor returns the remembered area states of mapID. The live store wins
// over the last snapshot when mapID is the current map.
func (s *Scene) savedFor(mapID string) map[string]vibrancy.State {
	if s.current != nil && s.current.ID() == mapID {
		return s.current.snapshot()
	}
	return s.saved[mapID]
}

func (s *Scene) advanceTransition(dt time.Duration) {
	if s.trans.Phase != transition.Crossfade {
		return
	}
	s.trans = transition.UpdateCrossfade(s.trans, float64(dt)/float64(time.Millisecond), s.cfg.CrossfadeMs)
	if s.trans.Phase != transition.Complete {
		return
	}
	next, res, ok := transition.CompleteTransition(s.trans)
	if !ok {
		return
	}
	s.trans = next

	stage := s.incoming
	if stage == nil || stage.Map != res.Map {
		stage = newStage(res.Map, s.savedFor(res.Map.ID))
	}
	s.incoming = nil
	if res.Kind == transition.ChildWorld && s.departure != nil {
		s.returns = append(s.returns, *s.departure)
	} else if n := len(s.returns); n > 0 && s.returns[n-1].MapID == stage.ID() {
		// Walking back out through an authored exit closes the child world.
		s.returns = s.returns[:n-1]
	}
	s.departure = nil
	s.install(stage, res.SpawnID)
}

// install swaps stage in as the current map and places the player.
func (s *Scene) install(stage *Stage, spawnID string) {
	m := stage.Map
	if s.current != nil {
		s.saved[s.current.ID()] = s.current.snapshot()
	}
	s.current = stage
	s.pool.Reset()

	w, h := m.PixelSize()
	s.cam.SetWorldBounds(float64(w), float64(h))

	ecs.Clear(s.world)
	spawnEntities(s.world, m)

	var cx, cy float64
	if s.arrival != nil && s.arrival.mapID == m.ID {
		cx, cy = s.arrival.x, s.arrival.y
	} else {
		x, y := m.SpawnPositionOrDefault(spawnID)
		cx, cy = x+float64(m.TileWidth)/2, y+float64(m.TileHeight)/2
	}
	s.arrival = nil

	size := s.cfg.PlayerSize
	stage.Physics.SpawnPlayer(cx, cy, size)
	s.player = spawnPlayer(s.world, cx, cy, s.cfg.PlayerSpeed, size)

	if s.cfg.Cooldown {
		if zone, ok := tilemap.FindTransitionAtPosition(stage.Transitions, cx, cy, m.TileWidth, m.TileHeight); ok {
			_ = ecs.Add(s.world, s.player, component.TransitionCooldownComponent.Kind(), &component.TransitionCooldown{Active: true, Zone: zone.Entity})
		}
	}

	stage.Vibrancy.Subscribe(func(c vibrancy.Change) {
		s.world.Events().Push(ecs.Event{Type: ecs.EventVibrancyChanged, Data: c})
		logger.WithMap(m.ID).WithFields(logrus.Fields{
			"area": c.AreaID,
			"from": c.From.String(),
			"to":   c.To.String(),
		}).Info("vibrancy changed")
	})

	s.cam.SnapTo(cx, cy)
	logger.WithMap(m.ID).WithFields(logrus.Fields{
		"spawn":    spawnID,
		"entities": len(m.Entities),
		"areas":    len(m.VibrancyAreas),
	}).Info("map installed")
}

func (s *Scene) movePlayer(dt time.Duration, in Input) {
	dx := clampAxis(in.DX)
	dy := clampAxis(in.DY)
	if l := math.Hypot(dx, dy); l > 1 {
		dx /= l
		dy /= l
	}
	speed := s.cfg.PlayerSpeed
	if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok {
		speed = p.MoveSpeed
	}
	s.current.Physics.SetPlayerVelocity(dx*speed, dy*speed)
	s.current.Physics.Step(dt.Seconds())
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

func (s *Scene) detectTransition() {
	px, py, ok := s.PlayerCenter()
	if !ok {
		return
	}
	m := s.current.Map
	target, ok := tilemap.FindTransitionAtPosition(s.current.Transitions, px, py, m.TileWidth, m.TileHeight)
	if !ok {
		return
	}
	if cd, ok := ecs.Get(s.world, s.player, component.TransitionCooldownComponent.Kind()); ok && cd.Active && cd.Zone == target.Entity {
		return
	}
	kind := transition.SameWorld
	if target.ChildWorld {
		kind = transition.ChildWorld
	}
	s.world.Events().Push(ecs.Event{Type: ecs.EventTransitionEnter, Entity: s.player, Data: target})
	s.Travel(target.MapID, target.SpawnID, kind)
}

func (s *Scene) updateMotes() {
	if s.cfg.MoteInterval > 0 && s.frame%s.cfg.MoteInterval == 0 {
		m := s.current.Map
		for _, area := range s.current.Vibrancy.Areas() {
			s.pool.SpawnAreaMotes(area, s.cfg.MoteRate, m.TileWidth, m.TileHeight)
		}
	}
	s.pool.Update()
}

// CycleAreaAt advances the vibrancy of the area under the player one step,
// wrapping from remembered back to forgotten. It returns the area id.
func (s *Scene) CycleAreaAt() (string, bool) {
	px, py, ok := s.PlayerCenter()
	if !ok {
		return "", false
	}
	m := s.current.Map
	tx := int(math.Floor(px / float64(m.TileWidth)))
	ty := int(math.Floor(py / float64(m.TileHeight)))
	area, ok := s.current.Vibrancy.AreaAt(tx, ty)
	if !ok {
		return "", false
	}
	next := (area.State + 1) % (vibrancy.Remembered + 1)
	s.current.Vibrancy.SetState(area.ID, next)
	return area.ID, true
}

// PlayerCenter returns the player's centre in world pixels.
func (s *Scene) PlayerCenter() (float64, float64, bool) {
	if s == nil || s.current == nil {
		return 0, 0, false
	}
	return s.current.Physics.PlayerPosition()
}

// Current returns the active stage.
func (s *Scene) Current() *Stage { return s.current }

// Incoming returns the stage fading in during a crossfade, or nil.
func (s *Scene) Incoming() *Stage { return s.incoming }

// Transition returns the transition state.
func (s *Scene) Transition() transition.State { return s.trans }

// Camera returns the camera for this frame.
func (s *Scene) Camera() camera.State { return s.cam.State() }

// Pool returns the mote pool.
func (s *Scene) Pool() *particles.Pool { return s.pool }

// World returns the entity world.
func (s *Scene) World() *ecs.World { return s.world }

// Player returns the player entity.
func (s *Scene) Player() ecs.Entity { return s.player }

// Returns lists the pending return points, innermost last.
func (s *Scene) Returns() []ReturnPoint {
	return append([]ReturnPoint(nil), s.returns...)
}

// Frame returns the number of updates run.
func (s *Scene) Frame() int { return s.frame }

// DrainEvents returns and clears the events queued since the last call.
func (s *Scene) DrainEvents() []ecs.Event {
	if s == nil {
		return nil
	}
	return s.world.Events().Drain()
}
