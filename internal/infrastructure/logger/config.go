package logger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level"`
	Format         string `yaml:"format"` // "text" or "json"
	ConsoleEnabled bool   `yaml:"console_enabled"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// fileConfig is the on-disk shape: everything lives under a "logging" key
type fileConfig struct {
	Logging Config `yaml:"logging"`
}

// DefaultConfig returns console-only INFO text logging
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		Format:         "text",
		ConsoleEnabled: true,
		FilePath:       "logs/game.log",
		FileMaxSizeMB:  10,
		FileMaxBackups: 3,
		FileMaxAgeDays: 14,
	}
}

// LoadConfig reads name from fsys on top of the defaults, then applies
// LOG_LEVEL, LOG_FORMAT, LOG_FILE_ENABLED and LOG_FILE_PATH overrides.
// A missing file is not an error.
func LoadConfig(fsys fs.FS, name string) (Config, error) {
	cfg := DefaultConfig()

	if fsys != nil && name != "" {
		data, err := fs.ReadFile(fsys, name)
		switch {
		case err == nil:
			wrapper := fileConfig{Logging: cfg}
			if err := yaml.Unmarshal(data, &wrapper); err != nil {
				return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", name, err)
			}
			cfg = wrapper.Logging
		case !errors.Is(err, fs.ErrNotExist):
			return DefaultConfig(), fmt.Errorf("failed to read %s: %w", name, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_FILE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.FileEnabled = enabled
		}
	}
	if v := os.Getenv("LOG_FILE_PATH"); v != "" {
		cfg.FilePath = v
	}
}
