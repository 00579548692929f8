// Package config provides YAML-based configuration loading for the game,
// its frontends and the SSH server.
package config

import (
	"fmt"
	"time"

	"github.com/mraof/gbjam5/internal/core"
)

// Config is the whole configuration file.
type Config struct {
	Game     GameConfig    `yaml:"game"`
	Palettes PaletteConfig `yaml:"palettes"`
	Input    InputConfig   `yaml:"input"`
	Window   WindowConfig  `yaml:"window"`
	Audio    AudioConfig   `yaml:"audio"`
	SSH      SSHConfig     `yaml:"ssh"`
	Storage  StorageConfig `yaml:"storage"`
}

// GameConfig holds simulation settings.
type GameConfig struct {
	StartLevel string `yaml:"start_level"` // level entered from the title screen
	TickRate   int    `yaml:"tick_rate"`   // ticks per second
}

// PaletteConfig holds the two base palettes, darkest shade first.
type PaletteConfig struct {
	Life  []string `yaml:"life"`
	Death []string `yaml:"death"`
}

// InputConfig holds terminal input settings.
type InputConfig struct {
	HoldMS int `yaml:"hold_ms"` // how long a key press counts as held
}

// WindowConfig holds settings for the desktop window.
type WindowConfig struct {
	Scale int `yaml:"scale"`
}

// AudioConfig holds sound cue settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// SSHConfig holds settings for the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// StorageConfig holds the records database location.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Runtime returns the simulation settings.
func (c Config) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if c.Game.TickRate > 0 {
		rc.TickRate = c.Game.TickRate
	}
	if c.Game.StartLevel != "" {
		rc.StartLevel = c.Game.StartLevel
	}
	return rc
}

// ParsePalettes decodes the life and death palettes.
func (c Config) ParsePalettes() (life, death core.Palette, err error) {
	life, err = core.ParsePalette(c.Palettes.Life)
	if err != nil {
		return life, death, fmt.Errorf("config: palettes.life: %w", err)
	}
	death, err = core.ParsePalette(c.Palettes.Death)
	if err != nil {
		return life, death, fmt.Errorf("config: palettes.death: %w", err)
	}
	return life, death, nil
}

// HoldWindow returns how long a terminal key press keeps a button held.
func (c Config) HoldWindow() time.Duration {
	if c.Input.HoldMS <= 0 {
		return DefaultHoldWindow
	}
	return time.Duration(c.Input.HoldMS) * time.Millisecond
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Game.TickRate < 0 {
		return fmt.Errorf("config: game.tick_rate must not be negative, got %d", c.Game.TickRate)
	}
	if c.Window.Scale < 0 {
		return fmt.Errorf("config: window.scale must not be negative, got %d", c.Window.Scale)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio.volume must be within [0, 1], got %g", c.Audio.Volume)
	}
	if _, _, err := c.ParsePalettes(); err != nil {
		return err
	}
	return nil
}
