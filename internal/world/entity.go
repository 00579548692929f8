package world

import (
	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/sprite"
)

// Collisions is the set of directions an entity was blocked in during its
// last physics step.
type Collisions uint8

// Has reports whether d was hit.
func (c Collisions) Has(d core.Direction) bool {
	return c&(1<<uint(d)) != 0
}

// Add records a hit in direction d.
func (c *Collisions) Add(d core.Direction) {
	*c |= 1 << uint(d)
}

// Entity is anything that moves: the player, enemies and keys.
// Entity 0 of a level is always the player.
type Entity struct {
	X, Y   int     // bottom-left corner, pixels
	VX, VY float64 // pixels per tick

	remX, remY float64 // sub-pixel movement not yet applied

	Facing     bool // true when facing right
	Dead       bool
	Versions   [2]bool // worlds the entity exists in
	Physics    bool
	Gravity    bool
	Collisions Collisions

	Kind Kind
}

// Box returns the entity's collision box.
func (e *Entity) Box() core.Rect {
	return core.TileRect(e.X, e.Y)
}

// Center returns the centre pixel of the entity.
func (e *Entity) Center() (int, int) {
	return e.Box().Center()
}

func (e *Entity) stop() {
	e.VX, e.VY = 0, 0
	e.remX, e.remY = 0, 0
}

// Kind is the closed set of entity kinds. Switch on the concrete type.
type Kind interface {
	isKind()
}

// PlayerState is the player's state machine state.
type PlayerState int

const (
	Standing PlayerState = iota
	Walking
	Falling
	Jumping
	Dying
	Turning
	Reviving
)

// String returns a human-readable name for the state.
func (s PlayerState) String() string {
	switch s {
	case Standing:
		return "standing"
	case Walking:
		return "walking"
	case Falling:
		return "falling"
	case Jumping:
		return "jumping"
	case Dying:
		return "dying"
	case Turning:
		return "turning"
	case Reviving:
		return "reviving"
	default:
		return "unknown"
	}
}

// PlayerSprites is the animation set of one world.
type PlayerSprites struct {
	Stand, Walk, Fall, Jump, Die, Turn, Revive *sprite.Sprite
}

// For returns the animation matching a state.
func (ps *PlayerSprites) For(s PlayerState) *sprite.Sprite {
	switch s {
	case Walking:
		return ps.Walk
	case Falling:
		return ps.Fall
	case Jumping:
		return ps.Jump
	case Dying:
		return ps.Die
	case Turning:
		return ps.Turn
	case Reviving:
		return ps.Revive
	default:
		return ps.Stand
	}
}

// Player is the entity controlled by input.
type Player struct {
	State  PlayerState
	Target string // door target while Turning

	CheckX, CheckY int
	HasCheckpoint  bool

	Sprites [2]PlayerSprites
}

// Enemy paces in a direction.
type Enemy struct {
	Dir       core.Direction
	Collision bool
	Gravity   bool
	Deadly    bool
	Sprites   [2]*sprite.Sprite // alive in life, dead in death
}

// Key is a collectible that trails the player once picked up.
type Key struct {
	Collected bool
	Homing    int
	Sprite    *sprite.Sprite
}

func (*Player) isKind() {}
func (*Enemy) isKind()  {}
func (*Key) isKind()    {}

// player returns entity 0 and its Player data.
func (l *Level) player() (*Entity, *Player) {
	e := l.Entities[0]
	return e, e.Kind.(*Player)
}
