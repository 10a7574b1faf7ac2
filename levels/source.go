package levels

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//go:embed *.json
var LevelsFS embed.FS

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Source fetches raw map documents by id.
type Source interface {
	Load(ctx context.Context, id string) (*RawMap, error)
}

// FSSource reads `<id>.json.zst` or `<id>.json` from an fs.FS.
type FSSource struct {
	FS  fs.FS
	Dir string
}

// Embedded returns a source over the maps compiled into the binary.
func Embedded() FSSource {
	return FSSource{FS: LevelsFS}
}

func (s FSSource) Load(ctx context.Context, id string) (*RawMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.FS == nil {
		return nil, fmt.Errorf("levels: load %s: %w", id, fs.ErrNotExist)
	}
	name := cleanLevelName(id)
	for _, candidate := range []string{name + ".json.zst", name + ".json"} {
		data, err := fs.ReadFile(s.FS, path.Join(s.dirOrRoot(), candidate))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", candidate, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("levels: decode %s: %w", candidate, err)
		}
		if raw.ID == "" {
			raw.ID = name
		}
		return raw, nil
	}
	return nil, fmt.Errorf("levels: load %s: %w", id, fs.ErrNotExist)
}

func (s FSSource) dirOrRoot() string {
	if s.Dir == "" {
		return "."
	}
	return s.Dir
}

// MultiSource tries each source in order, moving on only when a map does not
// exist in the current one.
type MultiSource []Source

func (m MultiSource) Load(ctx context.Context, id string) (*RawMap, error) {
	for _, src := range m {
		if src == nil {
			continue
		}
		raw, err := src.Load(ctx, id)
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("levels: load %s: %w", id, fs.ErrNotExist)
}

// Decode parses a map document, transparently inflating zstd frames.
func Decode(data []byte) (*RawMap, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decode: %w", err)
		}
	}
	var raw RawMap
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal map: %w", err)
	}
	return &raw, nil
}

// Encode serializes a map document, optionally as a zstd frame.
func Encode(raw *RawMap, compress bool) ([]byte, error) {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("levels: marshal %s: %w", raw.ID, err)
	}
	if !compress {
		return data, nil
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("levels: zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func cleanLevelName(id string) string {
	s := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(id, "\\", "/")), "/")
	s = strings.TrimPrefix(s, "levels/")
	s = strings.TrimSuffix(s, ".zst")
	return strings.TrimSuffix(s, ".json")
}
