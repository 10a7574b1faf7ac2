package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ScreenSpec struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

type StartSpec struct {
	Map   string `yaml:"map"`
	Spawn string `yaml:"spawn"`
}

type CameraSpec struct {
	Smoothness float64 `yaml:"smoothness"`
}

type PlayerSpec struct {
	MoveSpeed float64   `yaml:"move_speed"`
	Size      float64   `yaml:"size"`
	Color     YAMLColor `yaml:"color"`
}

type MotesSpec struct {
	Capacity      int `yaml:"capacity"`
	SpawnInterval int `yaml:"spawn_interval"`
	RatePerArea   int `yaml:"rate_per_area"`
}

type TransitionSpec struct {
	CrossfadeMs float64 `yaml:"crossfade_ms"`
	Cooldown    bool    `yaml:"cooldown"`
}

type FogSpec struct {
	Enabled bool `yaml:"enabled"`
}

// WorldSpec is the runtime configuration in world.yaml.
type WorldSpec struct {
	Name       string         `yaml:"name"`
	Screen     ScreenSpec     `yaml:"screen"`
	Start      StartSpec      `yaml:"start"`
	Camera     CameraSpec     `yaml:"camera"`
	Player     PlayerSpec     `yaml:"player"`
	Motes      MotesSpec      `yaml:"motes"`
	Transition TransitionSpec `yaml:"transition"`
	Fog        FogSpec        `yaml:"fog"`
}

// LoadWorldSpec reads world.yaml and fills unset fields with defaults.
func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	return &spec, nil
}

func (s *WorldSpec) applyDefaults() {
	if s.Screen.Width <= 0 {
		s.Screen.Width = 640
	}
	if s.Screen.Height <= 0 {
		s.Screen.Height = 360
	}
	if s.Screen.Scale <= 0 {
		s.Screen.Scale = 1
	}
	if s.Player.MoveSpeed <= 0 {
		s.Player.MoveSpeed = 120
	}
	if s.Player.Size <= 0 {
		s.Player.Size = 20
	}
	if s.Motes.Capacity <= 0 {
		s.Motes.Capacity = 512
	}
	if s.Motes.SpawnInterval <= 0 {
		s.Motes.SpawnInterval = 8
	}
	if s.Motes.RatePerArea < 0 {
		s.Motes.RatePerArea = 0
	}
	if s.Transition.CrossfadeMs < 0 {
		s.Transition.CrossfadeMs = 0
	}
	if s.Camera.Smoothness < 0 || s.Camera.Smoothness > 1 {
		s.Camera.Smoothness = 0.12
	}
}

// TileStyle is how one semantic tile id is drawn: a cell of the atlas when
// Atlas is set, otherwise a flat colour inset by Inset pixels.
type TileStyle struct {
	Color YAMLColor `yaml:"color"`
	Inset int       `yaml:"inset"`
	Atlas *int      `yaml:"atlas"`
}

// TilesetSpec maps the semantic tile ids used by maps to visuals.
type TilesetSpec struct {
	Atlas        string               `yaml:"atlas"`
	AtlasColumns int                  `yaml:"atlas_columns"`
	FirstIndex   int                  `yaml:"first_index"`
	Background   YAMLColor            `yaml:"background"`
	Fallback     YAMLColor            `yaml:"fallback"`
	Tiles        map[string]TileStyle `yaml:"tiles"`
	Entities     map[string]YAMLColor `yaml:"entities"`
	Motes        map[string]YAMLColor `yaml:"motes"`
}

func LoadTilesetSpec() (*TilesetSpec, error) {
	spec, err := LoadSpec[TilesetSpec]("tileset.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Style returns the style of a semantic tile id. Unknown ids use the
// "<prefix>:*" entry when present, then the fallback colour.
func (s *TilesetSpec) Style(id string) TileStyle {
	if s == nil {
		return TileStyle{}
	}
	if st, ok := s.Tiles[id]; ok {
		return st
	}
	if prefix, _, ok := strings.Cut(id, ":"); ok {
		if st, ok := s.Tiles[prefix+":*"]; ok {
			return st
		}
	}
	return TileStyle{Color: s.Fallback}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// ColorOr returns c's colour, or def when c was never set.
func (c YAMLColor) ColorOr(def color.Color) color.Color {
	if c.Color == nil {
		return def
	}
	return c.Color
}
