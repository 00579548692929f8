package core

import (
	"fmt"
	"strings"
)

// Version selects one of the two parallel world layouts.
// Per-version data is stored in [2]T arrays indexed by Version.
type Version int

const (
	Life Version = iota
	Death
)

// Versions lists both world versions in index order.
var Versions = [2]Version{Life, Death}

// Other returns the opposite world version.
func (v Version) Other() Version {
	if v == Life {
		return Death
	}
	return Life
}

// String returns a human-readable name for the version.
func (v Version) String() string {
	switch v {
	case Life:
		return "life"
	case Death:
		return "death"
	default:
		return "unknown"
	}
}

// Direction is a cardinal direction used by arrow tiles, pacing enemies and
// collision reports.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// Opposite returns the reversed direction (Left<->Right, Up<->Down).
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return DirNone
	}
}

// Vector returns the unit step for the direction in y-up space.
func (d Direction) Vector() (int, int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	default:
		return 0, 0
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// ParseDirection parses a direction keyword case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	}
	return DirNone, fmt.Errorf("core: unknown direction %q", s)
}
