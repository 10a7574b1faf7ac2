package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/resonance/assets"
)

var (
	imagesMu sync.Mutex
	images   = map[string]*ebiten.Image{}
)

// LoadImage loads an image from disk or the embedded assets and caches it
// by key. Disk wins so edited art shows up on the next reload.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	img, err := loadImageFromFSOrAssets(key)
	if err != nil {
		return nil, err
	}
	RegisterImage(key, img)
	return img, nil
}

func loadImageFromFSOrAssets(path string) (*ebiten.Image, error) {
	tried := []string{path, filepath.Join("assets", path)}
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
			return ebiten.NewImageFromImage(im), nil
		}
	}
	if img, err := assets.LoadImage(path); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("render: load image %s: not found", path)
}

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	imagesMu.Lock()
	images[key] = img
	imagesMu.Unlock()
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	imagesMu.Lock()
	defer imagesMu.Unlock()
	return images[key]
}

// ForgetImage drops a cached image so the next LoadImage reads it again.
func ForgetImage(key string) {
	imagesMu.Lock()
	delete(images, key)
	imagesMu.Unlock()
}
