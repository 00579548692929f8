package core

import "time"

// Handheld screen geometry in pixels.
const (
	ScreenW = 160
	ScreenH = 144
)

// DefaultTickRate matches the 20ms simulation step.
const DefaultTickRate = 50

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	TickRate   int    // Simulation ticks per second (default 50)
	StartLevel string // Level entered from the title menu
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate:   DefaultTickRate,
		StartLevel: "Death_Jumping_Level",
	}
}

// TickInterval returns the wall-clock duration of a single tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}
