package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWorldSpec(t *testing.T) {
	spec, err := LoadWorldSpec()
	if err != nil {
		t.Fatalf("LoadWorldSpec: %v", err)
	}
	if spec.Start.Map == "" || spec.Screen.Width <= 0 || spec.Motes.Capacity <= 0 {
		t.Fatalf("spec = %+v", spec)
	}
	if spec.Camera.Smoothness <= 0 || spec.Camera.Smoothness > 1 {
		t.Fatalf("smoothness = %v", spec.Camera.Smoothness)
	}
}

func TestWorldSpecDefaults(t *testing.T) {
	var s WorldSpec
	s.Camera.Smoothness = 4
	s.applyDefaults()
	if s.Screen.Width != 640 || s.Screen.Scale != 1 || s.Player.Size != 20 || s.Motes.SpawnInterval != 8 {
		t.Fatalf("defaults = %+v", s)
	}
	if s.Camera.Smoothness != 0.12 {
		t.Fatalf("out of range smoothness not reset: %v", s.Camera.Smoothness)
	}
}

func TestTilesetStyle(t *testing.T) {
	spec, err := LoadTilesetSpec()
	if err != nil {
		t.Fatalf("LoadTilesetSpec: %v", err)
	}
	tests := []struct {
		name string
		id   string
		want color.Color
	}{
		{"exact", "terrain:grass", color.NRGBA{0x4f, 0x7d, 0x3a, 0xff}},
		{"prefix_wildcard", "terrain:sand", color.NRGBA{0x55, 0x6b, 0x2f, 0xff}},
		{"fallback", "mystery", color.NRGBA{0xff, 0x00, 0xff, 0xff}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := spec.Style(tc.id).Color.Color; got != tc.want {
				t.Fatalf("Style(%q) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
	if spec.Style("object:well").Inset == 0 {
		t.Fatalf("object inset not read")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 0xff}, false},
		{"10203040", color.NRGBA{0x10, 0x20, 0x30, 0x40}, false},
		{"#12345", color.NRGBA{}, true},
		{"#zz0000", color.NRGBA{}, true},
	}
	for _, tc := range tests {
		got, err := ParseHexColor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseHexColor(%q) err = %v", tc.in, err)
		}
		if !tc.wantErr && got != tc.want {
			t.Fatalf("ParseHexColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if c := (YAMLColor{}).ColorOr(color.Black); c != color.Black {
		t.Fatalf("ColorOr on unset color = %v", c)
	}
}

func TestMapFileHelpers(t *testing.T) {
	tests := []struct {
		path  string
		isMap bool
		id    string
	}{
		{"levels/meadow.json", true, "meadow"},
		{"levels/cellar.JSON.zst", true, "cellar"},
		{"prefabs/world.yaml", false, "world.yaml"},
	}
	for _, tc := range tests {
		if IsMapFile(tc.path) != tc.isMap {
			t.Fatalf("IsMapFile(%q) = %v", tc.path, !tc.isMap)
		}
		if got := MapID(tc.path); got != tc.id {
			t.Fatalf("MapID(%q) = %q, want %q", tc.path, got, tc.id)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "meadow.json")
	if err := os.WriteFile(target, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if MapID(name) != "meadow" {
			t.Fatalf("unexpected event %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", target)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for range w.Events {
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	tests := []struct {
		name   string
		writes int
	}{
		{"single", 1},
		{"burst", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w, err := NewWatcher(dir)
			if err != nil {
				t.Skipf("fsnotify unavailable: %v", err)
			}
			defer w.Close()

			target := filepath.Join(dir, "meadow.json")
			for i := 0; i < tt.writes; i++ {
				if err := os.WriteFile(target, []byte(fmt.Sprintf(`{"rev":%d}`, i)), 0o644); err != nil {
					t.Fatal(err)
				}
				time.Sleep(10 * time.Millisecond)
			}

			select {
			case name := <-w.Events:
				if MapID(name) != "meadow" {
					t.Fatalf("unexpected event %q", name)
				}
			case <-time.After(2 * time.Second):
				t.Fatalf("no event for %s", target)
			}
			// The event is emitted only after the last write went quiet.
			data, err := os.ReadFile(target)
			if err != nil {
				t.Fatal(err)
			}
			if want := fmt.Sprintf(`{"rev":%d}`, tt.writes-1); string(data) != want {
				t.Fatalf("content = %s, want %s", data, want)
			}
			select {
			case name := <-w.Events:
				t.Fatalf("burst reported twice: %q", name)
			case <-time.After(3 * debounce):
			}
		})
	}
}
