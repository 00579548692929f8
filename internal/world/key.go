package world

import "github.com/mraof/gbjam5/internal/core"

// homingGap is the horizontal gap each collected key adds to the trail.
const homingGap = 12

func (l *Level) stepKey(e *Entity, k *Key, player *Entity) {
	if !k.Collected {
		if !e.Box().Intersects(player.Box()) {
			return
		}
		k.Collected = true
		l.KeysCollected++
		k.Homing = l.KeysCollected * homingGap
		e.Versions = [2]bool{true, true}
		l.emit(KeyCollected{Count: l.KeysCollected, Required: l.KeysRequired})
		return
	}

	e.X += homeStep(player.X-e.X, k.Homing)
	e.Y += homeStep(player.Y-e.Y, 0)
}

// homeStep moves a quarter of the distance beyond gap, at least one pixel,
// without overshooting.
func homeStep(d, gap int) int {
	excess := core.Abs(d) - gap
	if excess <= 0 {
		return 0
	}
	return core.Sign(d) * core.Max(1, excess/4)
}
