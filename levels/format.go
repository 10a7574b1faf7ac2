package levels

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// RawMap is one serialized map document as produced by the content pipeline.
// Every field is optional; consumers default missing data.
type RawMap struct {
	ID            string               `json:"id"`
	Width         int                  `json:"width"`
	Height        int                  `json:"height"`
	TileWidth     int                  `json:"tileWidth"`
	TileHeight    int                  `json:"tileHeight"`
	LayerOrder    []string             `json:"layerOrder,omitempty"`
	Layers        map[string][]RawTile `json:"layers,omitempty"`
	Collision     []RawFlag            `json:"collision,omitempty"`
	Objects       []RawObject          `json:"objects,omitempty"`
	Hooks         []RawHook            `json:"hooks,omitempty"`
	SpawnPoints   []SpawnPoint         `json:"spawnPoints,omitempty"`
	VibrancyAreas []RawVibrancyArea    `json:"vibrancyAreas,omitempty"`
	Transitions   []Transition         `json:"transitions,omitempty"`
}

// RawObject is a placed object. Positions and sizes are in tiles.
type RawObject struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Width      float64        `json:"width,omitempty"`
	Height     float64        `json:"height,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// RawHook binds a scripted event class to an object by name. The class and
// import path are opaque here.
type RawHook struct {
	ObjectName string `json:"objectName"`
	EventClass string `json:"eventClass"`
	ImportPath string `json:"importPath"`
}

// SpawnPoint is a named player placement in tile coordinates.
type SpawnPoint struct {
	ID   string  `json:"id"`
	Name string  `json:"name,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Key returns the id, falling back to the name for older documents.
func (sp SpawnPoint) Key() string {
	if sp.ID != "" {
		return sp.ID
	}
	return sp.Name
}

// RawVibrancyArea is a named rectangle in tile coordinates.
type RawVibrancyArea struct {
	ID           string  `json:"id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	InitialState string  `json:"initialState"`
}

// Transition describes where a transition zone leads. ID matches the name of
// the transition object it belongs to.
type Transition struct {
	ID          string `json:"id"`
	TargetMap   string `json:"targetMap"`
	TargetSpawn string `json:"targetSpawn"`
	Type        string `json:"type,omitempty"`
}

// RawTile is a semantic tile identifier. The empty string means blank.
// It decodes from a string, from null, or from a number where 0 is blank and
// any other number becomes its decimal text.
type RawTile string

func (t *RawTile) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte("false")):
		*t = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = RawTile(s)
		return nil
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || f == 0 {
		*t = ""
		return nil
	}
	*t = RawTile(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (t RawTile) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("0"), nil
	}
	return json.Marshal(string(t))
}

// RawFlag is a collision cell. Non-zero numbers and true mean blocked.
type RawFlag uint8

func (f *RawFlag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "true":
		*f = 1
		return nil
	case "", "null", "false":
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil || v == 0 {
		*f = 0
		return nil
	}
	*f = 1
	return nil
}

func (f RawFlag) MarshalJSON() ([]byte, error) {
	if f != 0 {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}
