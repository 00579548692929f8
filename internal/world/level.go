package world

import (
	"fmt"

	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/level"
	"github.com/mraof/gbjam5/internal/sprite"
	"github.com/mraof/gbjam5/internal/tile"
)

// Sheets the simulation needs besides those a level names.
const (
	FadeSheet  = "fade/fade"
	TitleSheet = "menu/title"
)

var playerAnimations = []struct {
	name  string
	state PlayerState
}{
	{"stand", Standing},
	{"walk", Walking},
	{"fall", Falling},
	{"jump", Jumping},
	{"die", Dying},
	{"turn", Turning},
	{"revive", Reviving},
}

// PlayerSheet returns the sheet name of one player animation.
func PlayerSheet(v core.Version, s PlayerState) string {
	prefix := "life"
	if v == core.Death {
		prefix = "death"
	}
	for _, a := range playerAnimations {
		if a.state == s {
			return "player/" + prefix + "_" + a.name
		}
	}
	return "player/" + prefix + "_stand"
}

// RequiredSheets lists every sheet the game loads regardless of level.
func RequiredSheets() []string {
	names := []string{level.BlankVisual, FadeSheet, TitleSheet}
	for _, v := range core.Versions {
		for _, a := range playerAnimations {
			names = append(names, PlayerSheet(v, a.state))
		}
	}
	return names
}

type switchCause int

const (
	causeManual switchCause = iota
	causeDeath
	causeRevive
)

// Level is the running state of one parsed level.
type Level struct {
	Name     string
	Entities []*Entity

	KeysCollected int
	KeysRequired  int

	Paused bool
	Switch int // sequencer countdown; 0 when idle
	CamX   int
	CamY   int

	def         *level.Definition
	grid        *tile.Grid
	visuals     []*sprite.Sprite
	backgrounds []*sprite.Sprite
	fade        *sprite.Sheet

	version core.Version // active world
	shown   core.Version // world whose cached draws are on screen while paused
	cause   switchCause
	cache   [2][]DrawRequest

	ticks   int
	deaths  int
	commits int
	request string
	events  []Event
}

// NewLevel builds the running state for a definition. Every sprite the level
// can draw is resolved up front; a missing one is an error.
func NewLevel(def *level.Definition, lookup level.Lookup, clock sprite.Clock) (*Level, error) {
	sheet := func(name string) (*sprite.Sheet, error) {
		s, ok := lookup.Sheet(name)
		if !ok {
			return nil, fmt.Errorf("world: %s: %w: %s", def.Name, level.ErrMissingSheet, name)
		}
		return s, nil
	}

	fade, err := sheet(FadeSheet)
	if err != nil {
		return nil, err
	}
	if len(fade.Frames) < fadeFrames {
		return nil, fmt.Errorf("world: %s: %s needs %d frames, has %d", def.Name, FadeSheet, fadeFrames, len(fade.Frames))
	}

	pl := &Player{}
	for _, v := range core.Versions {
		set := &pl.Sprites[v]
		for _, a := range playerAnimations {
			s, err := sheet(PlayerSheet(v, a.state))
			if err != nil {
				return nil, err
			}
			spr := sprite.New(s, clock)
			switch a.state {
			case Standing:
				set.Stand = spr
			case Walking:
				set.Walk = spr
			case Falling:
				set.Fall = spr
			case Jumping:
				set.Jump = spr
			case Dying:
				set.Die = spr
			case Turning:
				set.Turn = spr
			case Reviving:
				set.Revive = spr
			}
		}
	}

	l := &Level{
		Name:         def.Name,
		KeysRequired: def.KeyTotal,
		def:          def,
		grid:         def.Grid,
		fade:         fade,
		version:      core.Life,
		shown:        core.Life,
	}

	l.visuals = make([]*sprite.Sprite, len(def.Visuals))
	for i, s := range def.Visuals {
		l.visuals[i] = sprite.New(s, clock)
	}
	for _, s := range def.Backgrounds {
		l.backgrounds = append(l.backgrounds, sprite.New(s, clock))
	}

	l.Entities = append(l.Entities, &Entity{
		X:        def.SpawnX,
		Y:        def.SpawnY,
		Facing:   true,
		Versions: [2]bool{true, true},
		Physics:  true,
		Gravity:  true,
		Kind:     pl,
	})

	for _, sp := range def.Spawns {
		e := &Entity{X: sp.X, Y: sp.Y, Facing: true}
		e.Versions[sp.Version] = true
		switch k := sp.Kind.(type) {
		case level.EnemyKind:
			e.Physics = k.Collision
			e.Gravity = k.Gravity
			e.Facing = k.Dir != core.DirLeft
			e.Kind = &Enemy{
				Dir:       k.Dir,
				Collision: k.Collision,
				Gravity:   k.Gravity,
				Deadly:    k.Deadly,
				Sprites:   [2]*sprite.Sprite{sprite.New(k.Sheets[core.Life], clock), sprite.New(k.Sheets[core.Death], clock)},
			}
		case level.KeyKind:
			e.Kind = &Key{Sprite: sprite.New(k.Sheet, clock)}
		default:
			return nil, fmt.Errorf("world: %s: unsupported spawn %T", def.Name, sp.Kind)
		}
		l.Entities = append(l.Entities, e)
	}

	l.updateCamera()
	return l, nil
}

// Definition returns the parsed level behind this state.
func (l *Level) Definition() *level.Definition {
	return l.def
}

// Grid returns the tile grid.
func (l *Level) Grid() *tile.Grid {
	return l.grid
}

// Version returns the active world.
func (l *Level) Version() core.Version {
	return l.version
}

// Shown returns the world currently displayed.
func (l *Level) Shown() core.Version {
	if l.Paused {
		return l.shown
	}
	return l.version
}

// Player returns the player entity.
func (l *Level) Player() *Entity {
	return l.Entities[0]
}

// Ticks returns the number of ticks spent in the level.
func (l *Level) Ticks() int {
	return l.ticks
}

// Deaths returns how many times the player died in the level.
func (l *Level) Deaths() int {
	return l.deaths
}

// Palette returns the palette index for the current tick.
func (l *Level) Palette() int {
	return PaletteFor(l.Switch, l.version)
}

// Unlocked reports whether doors and key backgrounds are open.
func (l *Level) Unlocked() bool {
	return l.KeysCollected >= l.KeysRequired
}

// Step advances the level by one tick.
func (l *Level) Step(in core.InputFrame) {
	l.events = l.events[:0]
	l.ticks++

	if l.Switch > 0 {
		l.stepSwitch()
		return
	}
	if in.Has(core.ButtonStart) {
		if _, pl := l.player(); pl.State != Dying && pl.State != Turning {
			l.arm(causeManual)
			return
		}
	}

	player, pl := l.player()
	l.stepPlayer(player, pl, in)
	for _, e := range l.Entities[1:] {
		if !e.Versions[l.version] {
			continue
		}
		switch k := e.Kind.(type) {
		case *Enemy:
			l.stepEnemy(e, k, player)
		case *Key:
			l.stepKey(e, k, player)
		}
	}
}

// takeRequest returns and clears a pending level transition target.
func (l *Level) takeRequest() string {
	r := l.request
	l.request = ""
	return r
}

// cancelTurn returns a turning player to normal control after a failed
// transition.
func (l *Level) cancelTurn() {
	if _, pl := l.player(); pl.State == Turning {
		pl.State = Standing
		pl.Target = ""
	}
}
