// Package config loads the tool inventory settings: which tools are
// enabled, which are invoked at startup, and per-tool context menu
// overrides. Settings live in a TOML file; a missing file simply yields
// the defaults.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/toolflow/internal/menu"
)

// ToolSettings holds the per-tool section of the settings file.
type ToolSettings struct {
	// Enabled controls whether the tool is registered at all. Defaults
	// to true when the section or field is absent.
	Enabled *bool `toml:"enabled"`

	// MenuTrigger overrides the tool's context menu trigger: "off",
	// "now" or "button". Empty means no override.
	MenuTrigger string `toml:"menu-trigger"`
}

// Config is the parsed settings file.
type Config struct {
	// Startup lists tool names invoked, in order, after registration.
	Startup []string `toml:"startup"`

	// Tools maps tool names to their settings.
	Tools map[string]ToolSettings `toml:"tools"`
}

// Default returns the configuration used when no settings file exists.
func Default() *Config {
	return &Config{Tools: map[string]ToolSettings{}}
}

// Load reads the settings file at path. A missing file is not an error:
// the defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML settings data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Message: err.Error(), Err: err}
	}
	if cfg.Tools == nil {
		cfg.Tools = map[string]ToolSettings{}
	}
	return cfg, nil
}

// ToolEnabled reports whether the named tool should be registered.
// Unknown tools default to enabled.
func (c *Config) ToolEnabled(name string) bool {
	ts, ok := c.Tools[name]
	if !ok || ts.Enabled == nil {
		return true
	}
	return *ts.Enabled
}

// MenuTrigger returns the context menu trigger override for the named
// tool. ok is false when there is no override.
func (c *Config) MenuTrigger(name string) (menu.Trigger, bool) {
	ts, found := c.Tools[name]
	if !found {
		return menu.TriggerOff, false
	}
	switch ts.MenuTrigger {
	case "off":
		return menu.TriggerOff, true
	case "now":
		return menu.TriggerNow, true
	case "button":
		return menu.TriggerButton, true
	default:
		return menu.TriggerOff, false
	}
}

// ParseError describes a malformed settings file.
type ParseError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "parsing settings: " + e.Message
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
