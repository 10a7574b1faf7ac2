package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/resonance/levels"
	"github.com/milk9111/resonance/logger"
)

func main() {
	id := flag.String("id", "generated", "map id, also the output file name")
	width := flag.Int("w", 48, "map width in tiles")
	height := flag.Int("h", 32, "map height in tiles")
	tile := flag.Int("tile", 32, "tile edge in pixels")
	seed := flag.Int64("seed", 1, "noise seed")
	areasX := flag.Int("areas-x", 3, "vibrancy areas across")
	areasY := flag.Int("areas-y", 2, "vibrancy areas down")
	exit := flag.String("exit", "", "map id the east exit leads to (no exit when empty)")
	exitSpawn := flag.String("exit-spawn", "", "spawn id on the exit's target map")
	child := flag.Bool("child", false, "make the exit a child-world transition")
	zst := flag.Bool("zst", false, "write a zstd-compressed .json.zst document")
	out := flag.String("out", "levels", "output directory")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger.Init(*debug)
	log := logger.Log.WithField("component", "worldgen")

	raw, err := Generate(Params{
		ID:         *id,
		Width:      *width,
		Height:     *height,
		TileSize:   *tile,
		Seed:       *seed,
		AreasX:     *areasX,
		AreasY:     *areasY,
		Exit:       *exit,
		ExitSpawn:  *exitSpawn,
		ChildWorld: *child,
	})
	if err != nil {
		log.WithError(err).Fatal("generate failed")
	}

	data, err := levels.Encode(raw, *zst)
	if err != nil {
		log.WithError(err).Fatal("encode failed")
	}

	name := *id + ".json"
	if *zst {
		name += ".zst"
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.WithError(err).Fatal("create output directory")
	}
	path := filepath.Join(*out, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.WithError(err).Fatal("write failed")
	}
	log.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(data),
		"areas": len(raw.VibrancyAreas),
	}).Info("map written")
}
