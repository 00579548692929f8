package world

// EntityState is the primitive state of one entity.
type EntityState struct {
	X, Y       int
	VX, VY     float64
	Facing     bool
	Dead       bool
	Versions   [2]bool
	Collisions Collisions
}

// Snapshot is a comparable copy of the simulation state, used to check that
// identical inputs give identical runs.
type Snapshot struct {
	Tick          uint64
	InMenu        bool
	Level         string
	Version       int
	Switch        int
	Paused        bool
	PlayerState   string
	KeysCollected int
	Deaths        int
	CamX, CamY    int
	Entities      []EntityState
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{Tick: g.tick, InMenu: g.InMenu()}
	l := g.level
	if l == nil {
		return s
	}
	s.Level = l.Name
	s.Version = int(l.version)
	s.Switch = l.Switch
	s.Paused = l.Paused
	s.KeysCollected = l.KeysCollected
	s.Deaths = l.deaths
	s.CamX, s.CamY = l.CamX, l.CamY
	_, pl := l.player()
	s.PlayerState = pl.State.String()
	for _, e := range l.Entities {
		s.Entities = append(s.Entities, EntityState{
			X: e.X, Y: e.Y, VX: e.VX, VY: e.VY,
			Facing: e.Facing, Dead: e.Dead,
			Versions: e.Versions, Collisions: e.Collisions,
		})
	}
	return s
}
