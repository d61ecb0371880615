package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Loader loads game configuration using the fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem the loader reads from
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadGame loads game.json and fills in defaults
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, "game.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read game.json: %w", err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game.json: %w", err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// LoadLevel loads levels/<name>.yaml, falling back to levels/<name>.json
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	base := path.Join("levels", name)

	data, err := fs.ReadFile(l.fsys, base+".yaml")
	if err == nil {
		var cfg LevelConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
		}
		return finishLevel(&cfg, name), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}

	data, err = fs.ReadFile(l.fsys, base+".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}
	var cfg LevelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}
	return finishLevel(&cfg, name), nil
}

func finishLevel(cfg *LevelConfig, name string) *LevelConfig {
	if cfg.ID == "" {
		cfg.ID = name
	}
	if cfg.Name == "" {
		cfg.Name = cfg.ID
	}
	return cfg
}
