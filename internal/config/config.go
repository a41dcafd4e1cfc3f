// Package config loads and persists the widget configuration from a YAML
// file under the user's config directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Colour defaults match the hub dashboard theme fallbacks.
const (
	DefaultSlotColor       = "#03a9f4"
	DefaultActiveSlotColor = "#ff9800"
	DefaultRemovalColor    = "#f44336"
	DefaultHubURL          = "http://homeassistant.local:8123"
)

// ErrNoEntity is the ConfigMissing failure: the widget cannot start
// without a schedule entity.
var ErrNoEntity = errors.New("config: entity is required")

// HubConfig describes how to reach the hub's websocket API.
type HubConfig struct {
	// URL is the hub base URL; http(s) schemes are converted to ws(s).
	URL string `yaml:"url"`
	// Token is a long-lived access token. Leave empty to resolve it from
	// the DOORSCHED_TOKEN environment variable or the OS keyring.
	Token string `yaml:"token,omitempty"`
}

// Config is the widget configuration.
type Config struct {
	Hub HubConfig `yaml:"hub"`

	// Entity is the schedule entity to edit (required).
	Entity string `yaml:"entity"`

	SlotColor       string `yaml:"slot_color"`
	ActiveSlotColor string `yaml:"active_slot_color"`
	RemovalColor    string `yaml:"removal_color"`

	// Timezone is the IANA zone used for "today" and the current-time
	// indicator; empty means the system zone.
	Timezone string `yaml:"timezone,omitempty"`

	Debug bool `yaml:"debug,omitempty"`
}

// Default returns the in-memory default configuration. Entity is left
// empty and must be configured before the widget can start.
func Default() *Config {
	return &Config{
		Hub:             HubConfig{URL: DefaultHubURL},
		SlotColor:       DefaultSlotColor,
		ActiveSlotColor: DefaultActiveSlotColor,
		RemovalColor:    DefaultRemovalColor,
	}
}

// Stub returns the configuration skeleton handed to a fresh setup flow.
func Stub() *Config {
	c := Default()
	c.Entity = ""
	return c
}

// Normalize fills missing values with defaults so partially filled configs
// behave correctly.
func (c *Config) Normalize() {
	if c.Hub.URL == "" {
		c.Hub.URL = DefaultHubURL
	}
	if c.SlotColor == "" {
		c.SlotColor = DefaultSlotColor
	}
	if c.ActiveSlotColor == "" {
		c.ActiveSlotColor = DefaultActiveSlotColor
	}
	if c.RemovalColor == "" {
		c.RemovalColor = DefaultRemovalColor
	}
}

// Validate reports configuration errors that must surface synchronously.
func (c *Config) Validate() error {
	if c.Entity == "" {
		return ErrNoEntity
	}
	return nil
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "doorsched", "config.yaml")
}

// Dir returns the directory holding the given config file; logs and the
// schedule cache live alongside it.
func Dir(path string) string {
	return filepath.Dir(path)
}

// Load reads the config file at path. A missing file yields the default
// configuration written back to disk, so first runs leave an editable
// file behind.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the config to path with owner-only permissions, creating
// parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
