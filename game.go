package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/resonance/ecs"
	"github.com/milk9111/resonance/levels"
	"github.com/milk9111/resonance/logger"
	"github.com/milk9111/resonance/prefabs"
	"github.com/milk9111/resonance/render"
	"github.com/milk9111/resonance/scene"
	"github.com/milk9111/resonance/tilemap"
	"github.com/milk9111/resonance/vibrancy"
)

var errQuit = errors.New("quit")

// levelsDir is where edited maps are read from before the embedded copies.
const levelsDir = "levels"

type Game struct {
	spec   *prefabs.WorldSpec
	debug  bool
	width  int
	height int

	input    *Input
	scene    *scene.Scene
	renderer *render.Renderer
	cancel   context.CancelFunc

	watcher *prefabs.Watcher
}

func NewGame(spec *prefabs.WorldSpec, levelName, spawnName string, debug bool) (*Game, error) {
	if levelName == "" {
		levelName = spec.Start.Map
	}
	if spawnName == "" && levelName == spec.Start.Map {
		spawnName = spec.Start.Spawn
	}

	source := levels.MultiSource{
		levels.FSSource{FS: os.DirFS(levelsDir)},
		levels.Embedded(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc := scene.New(ctx, scene.ConfigFromSpec(spec), source)
	if err := sc.Start(levelName, spawnName); err != nil {
		cancel()
		return nil, err
	}

	tiles, err := prefabs.LoadTilesetSpec()
	if err != nil {
		logger.Log.WithError(err).Warn("tileset spec unavailable, using fallback colours")
	}

	g := &Game{
		spec:   spec,
		debug:  debug,
		width:  spec.Screen.Width,
		height: spec.Screen.Height,
		input:  NewInput(),
		scene:  sc,
		cancel: cancel,
	}
	g.renderer = render.NewRenderer(render.NewTileset(tiles), render.Options{
		Width:       g.width,
		Height:      g.height,
		Fog:         spec.Fog.Enabled,
		Debug:       debug,
		PlayerColor: spec.Player.Color.ColorOr(nil),
	})

	if debug {
		w, err := prefabs.NewWatcher(prefabs.SpecDir, levelsDir)
		if err != nil {
			logger.Log.WithError(err).Warn("hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.input.Update()
	if g.input.QuitPressed {
		return errQuit
	}
	if g.input.DebugPressed {
		g.debug = !g.debug
		g.renderer.SetDebug(g.debug)
	}
	g.pollReloads()

	if g.input.CyclePressed {
		if id, ok := g.scene.CycleAreaAt(); !ok {
			logger.Log.Debug("no vibrancy area under the player")
		} else {
			logger.Log.WithField("area", id).Debug("cycled area")
		}
	}
	if g.input.ReturnPressed && !g.scene.ReturnToParent() {
		logger.Log.Debug("already at the top-level world")
	}

	g.scene.Update(time.Second/time.Duration(ebiten.TPS()), g.input.Move)
	g.logEvents()
	return nil
}

// logEvents drains the scene's event queue. Scripting is out of scope, so
// hooks are only reported.
func (g *Game) logEvents() {
	for _, evt := range g.scene.DrainEvents() {
		entry := logger.WithMap(g.scene.Current().ID()).WithField("entity", evt.Entity.String())
		switch evt.Type {
		case ecs.EventHookFired:
			entry.WithField("hook", evt.Data).Info("hook fired")
		case ecs.EventTransitionEnter:
			if t, ok := evt.Data.(tilemap.TransitionTarget); ok {
				entry = entry.WithFields(logrus.Fields{"target": t.MapID, "spawn": t.SpawnID})
			}
			entry.Debug("entered transition zone")
		case ecs.EventVibrancyChanged:
			if c, ok := evt.Data.(vibrancy.Change); ok {
				entry.WithField("area", c.AreaID).Debug("vibrancy event")
			}
		}
	}
}

// pollReloads applies pending hot-reload notifications without blocking.
func (g *Game) pollReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				logger.Log.WithError(err).Warn("watcher error")
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	switch {
	case prefabs.IsMapFile(path):
		id := prefabs.MapID(path)
		if g.scene.Reload(id) {
			logger.WithMap(id).Info("reloading map")
		}
	case prefabs.IsSpecFile(path):
		tiles, err := prefabs.LoadTilesetSpec()
		if err != nil {
			logger.Log.WithError(err).Warn("tileset reload failed")
			return
		}
		g.renderer.SetTileset(render.NewTileset(tiles))
		logger.Log.WithField("file", path).Info("reloaded tileset")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops background work.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.scene.Close()
	g.cancel()
}
