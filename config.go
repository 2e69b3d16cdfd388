// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// Config is the module's file configuration. Files may be TOML (.toml) or
// YAML (.yaml, .yml).
type Config struct {
	Bridge  BridgeConfig   `toml:"bridge" yaml:"bridge"`
	Logging LoggingConfig  `toml:"logging" yaml:"logging"`
	Display DisplayConfig  `toml:"display" yaml:"display"`
	Input   InputConfig    `toml:"input" yaml:"input"`
	CVars   map[string]int `toml:"cvars" yaml:"cvars"` // applied with SetByConfigFile priority
	Watch   bool           `toml:"watch" yaml:"watch"` // re-apply cvars when the file changes
}

type BridgeConfig struct {
	BaseDir string `toml:"base_dir" yaml:"base_dir"` // directory holding the imgui_bridge library; defaults to the working directory, then the executable's
	Debug   bool   `toml:"debug" yaml:"debug"`       // bridge writes imgui_bridge.log
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// DisplayConfig is the display size used until the first Draw reports the
// real screen size.
type DisplayConfig struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

type InputConfig struct {
	ToggleKey string `toml:"toggle_key" yaml:"toggle_key"` // ebiten key name, e.g. "F1"; empty disables the hotkey
	DemoKey   string `toml:"demo_key" yaml:"demo_key"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Display: DisplayConfig{
			Width:  1280,
			Height: 720,
		},
	}
}

// LoadConfig reads path on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := decodeConfig(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml", "":
		return toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// parseKey converts a key name such as "F1" or "Backquote" to an ebiten key.
func parseKey(name string) (ebiten.Key, bool, error) {
	if name == "" {
		return 0, false, nil
	}
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(name)); err != nil {
		return 0, false, fmt.Errorf("unknown key %q: %w", name, err)
	}
	return key, true, nil
}
