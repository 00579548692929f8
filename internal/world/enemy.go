package world

import (
	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/tile"
)

func (l *Level) stepEnemy(e *Entity, en *Enemy, player *Entity) {
	if e.Collisions.Has(en.Dir) {
		en.Dir = en.Dir.Opposite()
	}
	cx, cy := e.Center()
	if a, ok := l.grid.AtPixel(l.version, cx, cy).Behavior.(tile.Arrow); ok {
		en.Dir = a.Dir
	}
	switch en.Dir {
	case core.DirLeft:
		e.Facing = false
	case core.DirRight:
		e.Facing = true
	}

	dx, dy := en.Dir.Vector()
	if en.Collision {
		switch en.Dir {
		case core.DirLeft, core.DirRight:
			e.VX = float64(dx) * PaceSpeed
		case core.DirUp, core.DirDown:
			e.VY = float64(dy) * PaceSpeed
		}
		l.physics(e)
	} else {
		e.X += dx
		e.Y += dy
		if l.grid.Wrap {
			e.Y = core.Mod(e.Y, l.grid.PixelHeight())
		}
	}

	if en.Deadly && !player.Dead && touches(e, player) {
		player.Dead = true
	}
}
