package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/resonance/logger"
	"github.com/milk9111/resonance/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (HUD, hot reload, debug logging)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "map id in levels/ (defaults to world.yaml start.map)")
	spawnName := flag.String("spawn", "", "spawn point id (defaults to world.yaml start.spawn)")
	flag.Parse()

	logger.Init(*debug)

	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load world spec")
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(float64(spec.Screen.Width)*spec.Screen.Scale), int(float64(spec.Screen.Height)*spec.Screen.Scale))
	ebiten.SetWindowTitle(spec.Name)

	game, err := NewGame(spec, *levelName, *spawnName, *debug)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != errQuit {
		logger.Log.WithError(err).Fatal("game exited")
	}
}
