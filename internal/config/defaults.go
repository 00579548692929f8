package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/gbjam5.yaml
var defaultYAML []byte

// DefaultHoldWindow is used when input.hold_ms is unset.
const DefaultHoldWindow = 120 * time.Millisecond

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			StartLevel: "Death_Jumping_Level",
			TickRate:   50,
		},
		Palettes: PaletteConfig{
			Life:  []string{"#0f380f", "#306230", "#8bac0f", "#9bbc0f"},
			Death: []string{"#1a1028", "#4a3a6a", "#8a7fa8", "#c8c0d8"},
		},
		Input: InputConfig{
			HoldMS: 120,
		},
		Window: WindowConfig{
			Scale: 4,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.5,
		},
		SSH: SSHConfig{
			Address:     ":23234",
			HostKey:     ".ssh/gbjam5_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Storage: StorageConfig{
			Path: "~/.gbjam5/records.db",
		},
	}
}
