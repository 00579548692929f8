package world

import "github.com/mraof/gbjam5/internal/core"

// arm starts a world switch. The active world flips at once; the old world's
// cached draws stay on screen until the commit tick.
func (l *Level) arm(cause switchCause) {
	if l.Switch > 0 {
		return
	}
	if l.cache[l.version] == nil {
		l.updateCamera()
		l.cache[l.version] = l.composeWorld(l.version)
	}
	l.Switch = switchTicks
	l.cause = cause
	l.Paused = true
	l.shown = l.version
	l.version = l.version.Other()
	l.emit(WorldSwitched{To: l.version})
}

// Switching reports whether the sequencer is running.
func (l *Level) Switching() bool {
	return l.Switch > 0
}

func (l *Level) stepSwitch() {
	l.Switch--
	if l.Switch == commitAt {
		l.commit()
	}
	if l.Switch == 0 {
		l.Paused = false
	}
}

// commit places the player in the new world and swaps the displayed cache.
func (l *Level) commit() {
	e, pl := l.player()
	switch {
	case l.cause == causeDeath && l.version == core.Life && pl.HasCheckpoint:
		e.X, e.Y = pl.CheckX, pl.CheckY
	case l.cause == causeDeath && l.version == core.Life:
		e.X, e.Y = l.def.SpawnX, l.def.SpawnY
	default:
		l.pushOut(e)
	}
	e.stop()
	e.Dead = false
	pl.State = Standing
	pl.Target = ""

	l.commits++
	l.shown = l.version
	l.updateCamera()
	l.cache[l.version] = l.composeWorld(l.version)
}
