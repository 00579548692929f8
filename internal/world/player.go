package world

import (
	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/tile"
)

// playerSprites returns the animation set of the active world.
func (l *Level) playerSprites(pl *Player) *PlayerSprites {
	return &pl.Sprites[l.version]
}

// enter switches state and restarts the new state's animation.
func (l *Level) enter(pl *Player, s PlayerState) {
	pl.State = s
	l.playerSprites(pl).For(s).Reset()
}

func (l *Level) stepPlayer(e *Entity, pl *Player, in core.InputFrame) {
	sprites := l.playerSprites(pl)

	switch {
	case e.Dead && pl.State != Dying:
		l.enter(pl, Dying)
		e.stop()
		l.deaths++
		l.emit(Died{Version: l.version})
		return

	case pl.State == Dying:
		if sprites.Die.OnLastFrame() {
			e.Dead = false
			l.arm(causeDeath)
		}
		return

	case pl.State == Turning:
		if sprites.Turn.OnLastFrame() && l.request == "" {
			l.request = pl.Target
		}
		return

	case pl.State == Reviving:
		if sprites.Revive.OnLastFrame() {
			l.arm(causeRevive)
		}
		return
	}

	left, right := in.Has(core.ButtonLeft), in.Has(core.ButtonRight)
	switch {
	case left && !right:
		e.VX = -WalkSpeed
		e.Facing = false
		pl.State = Walking
	case right && !left:
		e.VX = WalkSpeed
		e.Facing = true
		pl.State = Walking
	default:
		pl.State = Standing
	}

	grounded := l.grounded(e)
	switch {
	case in.Has(core.ButtonA) && grounded:
		e.VY = JumpSpeed
		pl.State = Jumping
		l.emit(Jumped{})
	case e.VY < 0:
		pl.State = Falling
	case e.VY > 0 && !grounded:
		pl.State = Jumping
	}

	if in.Has(core.ButtonB) && l.interact(e, pl) {
		return
	}

	l.physics(e)
}

// interact runs the context action of the tile under the player's centre.
// It reports whether the tick's movement should be skipped.
func (l *Level) interact(e *Entity, pl *Player) bool {
	cx, cy := e.Center()
	switch b := l.grid.AtPixel(l.version, cx, cy).Behavior.(type) {
	case tile.Checkpoint:
		// Stored position is where the player stands.
		e.stop()
		if !pl.HasCheckpoint || pl.CheckX != e.X || pl.CheckY != e.Y {
			pl.CheckX, pl.CheckY, pl.HasCheckpoint = e.X, e.Y, true
			l.emit(CheckpointSet{X: e.X, Y: e.Y})
		}
		if l.version == core.Death {
			l.enter(pl, Reviving)
		}
		return true
	case tile.Door:
		if l.Unlocked() {
			e.stop()
			pl.Target = b.Target
			l.enter(pl, Turning)
			l.emit(DoorOpened{Target: b.Target})
			return true
		}
	case tile.Switch:
		l.arm(causeManual)
		return true
	}
	return false
}
