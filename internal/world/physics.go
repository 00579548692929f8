package world

import (
	"math"

	"github.com/mraof/gbjam5/internal/core"
)

// Movement constants, in pixels per tick.
const (
	WalkSpeed   = 2.0
	JumpSpeed   = 4.0
	PaceSpeed   = 2.0
	Gravity     = 0.18
	TerminalVY  = -2.0
	Friction    = 0.75
	snapSpeed   = 1.0
	deadlyRange = 2 * core.TileSize
)

// decay applies horizontal friction, snapping small speeds to zero.
func decay(v float64) float64 {
	v *= Friction
	if math.Abs(v) < snapSpeed {
		return 0
	}
	return v
}

// solidAt reports whether the pixel is inside a solid tile of the active world.
func (l *Level) solidAt(px, py int) bool {
	return l.grid.SolidAt(l.version, px, py)
}

// grounded reports whether either foot corner stands on a solid tile.
func (l *Level) grounded(e *Entity) bool {
	return l.solidAt(e.X, e.Y-1) || l.solidAt(e.X+core.TileSize-1, e.Y-1)
}

// overlapsSolid reports whether any corner of the box is inside a solid tile.
func (l *Level) overlapsSolid(e *Entity) bool {
	r := e.Box()
	return l.solidAt(r.X, r.Y) || l.solidAt(r.Right()-1, r.Y) ||
		l.solidAt(r.X, r.Top()-1) || l.solidAt(r.Right()-1, r.Top()-1)
}

// pushOut moves the entity up until it no longer overlaps solid tiles.
func (l *Level) pushOut(e *Entity) {
	for i := 0; i < l.grid.PixelHeight() && l.overlapsSolid(e); i++ {
		e.Y++
	}
	if l.grid.Wrap {
		e.Y = core.Mod(e.Y, l.grid.PixelHeight())
	}
}

// physics advances one entity by one tick. Collisions holds the directions
// that blocked it afterwards.
func (l *Level) physics(e *Entity) {
	e.Collisions = 0
	if !e.Physics || e.Dead {
		return
	}

	l.moveX(e)
	e.VX = decay(e.VX)
	if e.VX == 0 {
		e.remX = 0
	}

	grounded := l.grounded(e)
	if e.Gravity && !grounded {
		e.VY = math.Max(e.VY-Gravity, TerminalVY)
	}
	if grounded && e.VY < 0 {
		e.VY, e.remY = 0, 0
	}
	l.moveY(e)
}

// integral splits v plus the carried remainder into whole pixels.
func integral(v float64, rem *float64) int {
	step := v + *rem
	n := int(step)
	*rem = step - float64(n)
	return n
}

func (l *Level) moveX(e *Entity) {
	dx := integral(e.VX, &e.remX)
	for dx != 0 {
		s := core.Sign(dx)
		nx := e.X + s
		lead := nx
		dir := core.DirLeft
		if s > 0 {
			lead = nx + core.TileSize - 1
			dir = core.DirRight
		}
		blocked := nx < 0 || nx+core.TileSize > l.grid.PixelWidth() ||
			l.solidAt(lead, e.Y) || l.solidAt(lead, e.Y+core.TileSize-1)
		if blocked {
			e.VX, e.remX = 0, 0
			e.Collisions.Add(dir)
			return
		}
		e.X = nx
		dx -= s
	}
}

func (l *Level) moveY(e *Entity) {
	dy := integral(e.VY, &e.remY)
	height := l.grid.PixelHeight()
	for dy != 0 {
		s := core.Sign(dy)
		ny := e.Y + s
		lead := ny
		dir := core.DirDown
		if s > 0 {
			lead = ny + core.TileSize - 1
			dir = core.DirUp
		}

		if !l.grid.Wrap {
			if ny < 0 {
				if _, ok := e.Kind.(*Player); ok {
					e.Dead = true
				}
				e.VY, e.remY = 0, 0
				e.Collisions.Add(dir)
				return
			}
			if ny+core.TileSize > height {
				e.VY, e.remY = 0, 0
				e.Collisions.Add(dir)
				return
			}
		}

		if l.solidAt(e.X, lead) || l.solidAt(e.X+core.TileSize-1, lead) {
			e.VY, e.remY = 0, 0
			e.Collisions.Add(dir)
			return
		}
		e.Y = ny
		dy -= s
	}
	if l.grid.Wrap {
		e.Y = core.Mod(e.Y, height)
	}
}

// touches is the deadly contact test: a cheap distance check, then overlap.
func touches(a, b *Entity) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx*dx+dy*dy >= deadlyRange*deadlyRange {
		return false
	}
	return a.Box().Intersects(b.Box())
}
