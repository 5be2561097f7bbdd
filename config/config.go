// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: TOML configuration for docktile.
// Usage: Missing files fall back to defaults and a default file is written
// on first run; a broken file degrades to defaults with an error returned
// for the caller to report.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full on-disk configuration.
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Frame   FrameConfig   `toml:"frame"`
	Storage StorageConfig `toml:"storage"`
}

// LayoutConfig carries the sizing floors and defaults in pixels.
type LayoutConfig struct {
	HeaderHeight       int `toml:"header_height"`
	MinPanelHeight     int `toml:"min_panel_height"`
	MinColumnWidth     int `toml:"min_column_width"`
	MinRowHeight       int `toml:"min_row_height"`
	DefaultRowHeight   int `toml:"default_row_height"`
	DefaultColumnWidth int `toml:"default_column_width"`
	DefaultGroupHeight int `toml:"default_group_height"`
}

// FrameConfig controls the resize relayout cadence.
type FrameConfig struct {
	// Interval between coalesced relayout ticks.
	Interval duration `toml:"interval"`
}

// StorageConfig locates the layout database.
type StorageConfig struct {
	// Path to the SQLite file. Empty means <user config dir>/docktile/layouts.db.
	Path string `toml:"path"`
}

// duration wraps time.Duration with TOML string decoding ("16ms").
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			HeaderHeight:       24,
			MinPanelHeight:     48,
			MinColumnWidth:     150,
			MinRowHeight:       80,
			DefaultRowHeight:   240,
			DefaultColumnWidth: 260,
			DefaultGroupHeight: 180,
		},
		Frame:   FrameConfig{Interval: duration{16 * time.Millisecond}},
		Storage: StorageConfig{},
	}
}

// Dir returns the docktile configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "docktile"), nil
}

// Path returns the configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StoragePath resolves the layout database path, honoring an override from
// the config file.
func (c Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "layouts.db"), nil
}

// Load reads the configuration file, writing the defaults on first run.
// On read or decode failure it returns the defaults alongside the error so
// callers always get a usable config.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		if werr := writeDefault(path); werr != nil {
			return Default(), werr
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %s", path, undec[0])
	}
	return cfg, nil
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(Default())
}
