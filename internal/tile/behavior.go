// Package tile implements the tile catalog and the two-version tile grid.
//
// Tile definitions live in an arena (Catalog) and grid cells hold indices
// into it, so many cells share one immutable definition.
package tile

import "github.com/mraof/gbjam5/internal/core"

// Behavior is the closed set of tile behaviors. Switch on the concrete type.
type Behavior interface {
	isBehavior()
}

// Background tiles are scenery.
type Background struct{}

// Solid tiles block movement.
type Solid struct{}

// Door leads to another level once every key of the level is collected.
type Door struct {
	Target string
	Closed int // visual shown while locked
}

// KeyBackground is scenery that changes visual once every key is collected.
type KeyBackground struct {
	Closed int
}

// Checkpoint records the respawn position and revives a dead player.
type Checkpoint struct{}

// Switch lets the player swap worlds by hand.
type Switch struct{}

// SwitchBlock is a solid block.
type SwitchBlock struct{}

// Arrow redirects pacing enemies.
type Arrow struct {
	Dir core.Direction
}

func (Background) isBehavior()    {}
func (Solid) isBehavior()         {}
func (Door) isBehavior()          {}
func (KeyBackground) isBehavior() {}
func (Checkpoint) isBehavior()    {}
func (Switch) isBehavior()        {}
func (SwitchBlock) isBehavior()   {}
func (Arrow) isBehavior()         {}

// IsSolid reports whether entities collide with the behavior.
func IsSolid(b Behavior) bool {
	switch b.(type) {
	case Solid, SwitchBlock:
		return true
	}
	return false
}

// Name returns the legend keyword of the behavior.
func Name(b Behavior) string {
	switch b.(type) {
	case Background:
		return "background"
	case Solid:
		return "solid"
	case Door:
		return "door"
	case KeyBackground:
		return "keybackground"
	case Checkpoint:
		return "checkpoint"
	case Switch:
		return "switch"
	case SwitchBlock:
		return "switchblock"
	case Arrow:
		return "arrow"
	}
	return "unknown"
}
