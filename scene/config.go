package scene

import "github.com/milk9111/resonance/prefabs"

// Config tunes a Scene.
type Config struct {
	ViewportW float64
	ViewportH float64

	CameraSmooth float64

	PlayerSpeed float64
	PlayerSize  float64

	MoteCapacity int
	// MoteInterval is how many frames pass between ambient spawns.
	MoteInterval int
	MoteRate     int

	CrossfadeMs float64
	// Cooldown suppresses the zone the player arrives in until they leave it.
	Cooldown bool
}

// DefaultConfig matches the shipped world.yaml.
func DefaultConfig() Config {
	return Config{
		ViewportW:    640,
		ViewportH:    360,
		CameraSmooth: 0.12,
		PlayerSpeed:  120,
		PlayerSize:   20,
		MoteCapacity: 512,
		MoteInterval: 8,
		MoteRate:     1,
		CrossfadeMs:  600,
		Cooldown:     true,
	}
}

// ConfigFromSpec builds a Config from a loaded world spec.
func ConfigFromSpec(spec *prefabs.WorldSpec) Config {
	cfg := DefaultConfig()
	if spec == nil {
		return cfg
	}
	cfg.ViewportW = float64(spec.Screen.Width)
	cfg.ViewportH = float64(spec.Screen.Height)
	cfg.CameraSmooth = spec.Camera.Smoothness
	cfg.PlayerSpeed = spec.Player.MoveSpeed
	cfg.PlayerSize = spec.Player.Size
	cfg.MoteCapacity = spec.Motes.Capacity
	cfg.MoteInterval = spec.Motes.SpawnInterval
	cfg.MoteRate = spec.Motes.RatePerArea
	cfg.CrossfadeMs = spec.Transition.CrossfadeMs
	cfg.Cooldown = spec.Transition.Cooldown
	return cfg
}
