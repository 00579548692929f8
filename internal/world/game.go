// Package world is the deterministic simulation: levels, entities, the
// world-switch sequencer and the compositor that turns them into draw lists.
// A Game is stepped once per tick with the buttons held during that tick.
package world

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/level"
	"github.com/mraof/gbjam5/internal/sprite"
)

// MenuTarget is the door target that returns to the title screen.
const MenuTarget = "menu"

// Assets resolves sheets and level texts.
type Assets interface {
	level.Lookup
	LevelText(name string) (string, error)
}

// Frame is everything a frontend needs to present one tick.
type Frame struct {
	Draws          []DrawRequest
	Palette        int
	PaletteChanged bool
	Events         []Event
}

type gameState int

const (
	stateMenu gameState = iota
	stateLevel
)

// Option configures a Game.
type Option func(*Game)

// WithClock sets the clock driving sprite animation.
func WithClock(c sprite.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithPalettes sets the two base palettes.
func WithPalettes(life, death core.Palette) Option {
	return func(g *Game) { g.palettes = BuildPalettes(life, death) }
}

// Game is the top-level state: the title menu or a running level, plus a
// level transition deferred to the end of the tick.
type Game struct {
	assets Assets
	cfg    core.RuntimeConfig
	clock  sprite.Clock
	logger *log.Logger

	palettes       Palettes
	paletteChanged bool

	state   gameState
	title   *sprite.Sprite
	level   *Level
	pending string
	events  []Event
	tick    uint64

	startHeld bool
}

// DefaultPalettes returns the built-in life and death palettes.
func DefaultPalettes() (core.Palette, core.Palette) {
	life := core.Palette{{R: 0x0f, G: 0x38, B: 0x0f}, {R: 0x30, G: 0x62, B: 0x30}, {R: 0x8b, G: 0xac, B: 0x0f}, {R: 0x9b, G: 0xbc, B: 0x0f}}
	death := core.Palette{{R: 0x1a, G: 0x10, B: 0x28}, {R: 0x4a, G: 0x3a, B: 0x6a}, {R: 0x8a, G: 0x7f, B: 0xa8}, {R: 0xc8, G: 0xc0, B: 0xd8}}
	return life, death
}

// New creates a game on the title screen.
func New(assets Assets, cfg core.RuntimeConfig, opts ...Option) (*Game, error) {
	life, death := DefaultPalettes()
	g := &Game{
		assets:         assets,
		cfg:            cfg,
		clock:          sprite.SystemClock{},
		logger:         log.Default(),
		palettes:       BuildPalettes(life, death),
		paletteChanged: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.cfg.StartLevel == "" {
		g.cfg.StartLevel = core.DefaultConfig().StartLevel
	}

	title, ok := assets.Sheet(TitleSheet)
	if !ok {
		return nil, fmt.Errorf("world: %w: %s", level.ErrMissingSheet, TitleSheet)
	}
	g.title = sprite.New(title, g.clock)
	return g, nil
}

// Build parses a level text and constructs its running state.
func Build(name string, assets Assets, clock sprite.Clock) (*Level, error) {
	text, err := assets.LevelText(name)
	if err != nil {
		return nil, fmt.Errorf("world: load %s: %w", name, err)
	}
	def, err := level.Parse(name, text, assets)
	if err != nil {
		return nil, err
	}
	return NewLevel(def, assets, clock)
}

// LoadLevel enters a level immediately, leaving the menu if needed.
func (g *Game) LoadLevel(name string) error {
	l, err := Build(name, g.assets, g.clock)
	if err != nil {
		return err
	}
	g.level = l
	g.state = stateLevel
	g.logger.Info("level loaded", "level", name,
		"width", l.grid.Width, "height", l.grid.Height,
		"wrap", l.grid.Wrap, "keys", l.KeysRequired)
	return nil
}

// Reload re-parses the current level if its name matches, restarting it.
func (g *Game) Reload(name string) error {
	if g.level == nil || g.level.Name != name {
		return nil
	}
	return g.LoadLevel(name)
}

// ReturnToMenu drops the running level.
func (g *Game) ReturnToMenu() {
	g.level = nil
	g.state = stateMenu
	g.title.Reset()
}

// InMenu reports whether the title screen is showing.
func (g *Game) InMenu() bool {
	return g.state == stateMenu
}

// Level returns the running level, or nil on the title screen.
func (g *Game) Level() *Level {
	return g.level
}

// Palettes returns the palette variants a frame index selects from.
func (g *Game) Palettes() Palettes {
	return g.palettes
}

// SetPalettes rebuilds the palette variants. The next frame reports the
// change.
func (g *Game) SetPalettes(life, death core.Palette) {
	g.palettes = BuildPalettes(life, death)
	g.paletteChanged = true
}

// Tick returns the number of steps taken.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Step advances the game by one tick and returns the frame to present.
func (g *Game) Step(in core.InputFrame) Frame {
	g.tick++
	g.events = nil

	// Start only counts on the tick it goes down.
	start := in.Has(core.ButtonStart)
	if start && g.startHeld {
		in = in.Clone()
		in.Release(core.ButtonStart)
	}
	g.startHeld = start

	var frame Frame
	switch g.state {
	case stateMenu:
		if in.Has(core.ButtonStart) || in.Has(core.ButtonA) {
			g.pending = g.cfg.StartLevel
		}
		frame.Draws = []DrawRequest{{Frame: g.title.Frame()}}
		frame.Palette = PaletteLife

	case stateLevel:
		l := g.level
		l.Step(in)
		g.events = append(g.events, l.events...)
		if target := l.takeRequest(); target != "" {
			g.pending = target
		}
		frame.Draws = l.Compose()
		frame.Palette = l.Palette()
	}

	g.applyPending()

	frame.Events = g.events
	frame.PaletteChanged = g.paletteChanged
	g.paletteChanged = false
	return frame
}

// applyPending performs the transition requested during the tick.
func (g *Game) applyPending() {
	target := g.pending
	if target == "" {
		return
	}
	g.pending = ""

	prev := g.level
	if target == MenuTarget {
		g.ReturnToMenu()
	} else if err := g.LoadLevel(target); err != nil {
		g.logger.Error("level transition failed", "level", target, "err", err)
		g.events = append(g.events, LevelFailed{Level: target, Err: err})
		if prev != nil {
			prev.cancelTurn()
		}
		return
	}

	if prev != nil {
		g.events = append(g.events, LevelComplete{
			Level:  prev.Name,
			Next:   target,
			Ticks:  prev.ticks,
			Deaths: prev.deaths,
		})
	}
}
