// Package window runs the game in a desktop window with ebiten.
package window

import (
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mraof/gbjam5/internal/audio"
	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/render"
	"github.com/mraof/gbjam5/internal/storage"
	"github.com/mraof/gbjam5/internal/world"
)

// keys lists the keyboard keys behind each button.
var keys = map[core.Button][]ebiten.Key{
	core.ButtonLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	core.ButtonRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	core.ButtonUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	core.ButtonDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	core.ButtonA:     {ebiten.KeyX, ebiten.KeyK, ebiten.KeySpace},
	core.ButtonB:     {ebiten.KeyZ, ebiten.KeyJ},
	core.ButtonStart: {ebiten.KeyEnter},
}

// pads lists the standard gamepad buttons behind each button.
var pads = map[core.Button][]ebiten.StandardGamepadButton{
	core.ButtonLeft:  {ebiten.StandardGamepadButtonLeftLeft},
	core.ButtonRight: {ebiten.StandardGamepadButtonLeftRight},
	core.ButtonUp:    {ebiten.StandardGamepadButtonLeftTop},
	core.ButtonDown:  {ebiten.StandardGamepadButtonLeftBottom},
	core.ButtonA:     {ebiten.StandardGamepadButtonRightBottom},
	core.ButtonB:     {ebiten.StandardGamepadButtonRightRight},
	core.ButtonStart: {ebiten.StandardGamepadButtonCenterRight},
}

// Options wires the window to storage and audio. Both are optional.
type Options struct {
	Store    *storage.Store
	Audio    *audio.Player
	Player   string
	Scale    int
	TickRate int
	Logger   *log.Logger
}

// Game adapts a world.Game to ebiten. ebiten calls Update at the tick rate
// and Draw once per display frame.
type Game struct {
	game    *world.Game
	opts    Options
	screen  *core.Screen
	rgba    *image.RGBA
	img     *ebiten.Image
	palette int
	gamepad []ebiten.GamepadID
}

// New creates the window adapter.
func New(game *world.Game, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Scale <= 0 {
		opts.Scale = 4
	}
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultTickRate
	}
	return &Game{
		game:   game,
		opts:   opts,
		screen: core.NewScreen(core.ScreenW, core.ScreenH),
		img:    ebiten.NewImage(core.ScreenW, core.ScreenH),
	}
}

// input samples held keys and gamepad buttons.
func (g *Game) input() core.InputFrame {
	f := core.NewInputFrame()
	g.gamepad = ebiten.AppendGamepadIDs(g.gamepad[:0])
	for b, ks := range keys {
		for _, k := range ks {
			if ebiten.IsKeyPressed(k) {
				f.Set(b)
			}
		}
		for _, id := range g.gamepad {
			for _, pb := range pads[b] {
				if ebiten.IsStandardGamepadButtonPressed(id, pb) {
					f.Set(b)
				}
			}
		}
	}
	return f
}

// Update advances the simulation by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !g.game.InMenu() {
		g.game.ReturnToMenu()
	}

	frame := g.game.Step(g.input())
	render.Rasterize(g.screen, frame.Draws)
	g.palette = frame.Palette
	g.handleEvents(frame.Events)
	return nil
}

func (g *Game) handleEvents(events []world.Event) {
	if g.opts.Audio != nil {
		g.opts.Audio.Handle(events)
	}
	for _, ev := range events {
		done, ok := ev.(world.LevelComplete)
		if !ok || g.opts.Store == nil {
			continue
		}
		run := storage.Run{Level: done.Level, Player: g.opts.Player, Ticks: done.Ticks, Deaths: done.Deaths}
		if _, err := g.opts.Store.SaveRun(run); err != nil {
			g.opts.Logger.Warn("could not save run", "level", done.Level, "err", err)
		}
	}
}

// Draw resolves the indexed screen through the active palette.
func (g *Game) Draw(dst *ebiten.Image) {
	g.rgba = render.RGBA(g.screen, g.game.Palettes()[g.palette], g.rgba)
	g.img.WritePixels(g.rgba.Pix)
	dst.DrawImage(g.img, nil)
}

// Layout keeps the handheld resolution; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return core.ScreenW, core.ScreenH
}

// Run opens the window and blocks until it closes.
func Run(game *world.Game, opts Options) error {
	g := New(game, opts)
	ebiten.SetWindowSize(core.ScreenW*g.opts.Scale, core.ScreenH*g.opts.Scale)
	ebiten.SetWindowTitle("gbjam5")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.opts.TickRate)
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
