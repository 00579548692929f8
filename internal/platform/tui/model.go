package tui

import (
	"fmt"
	"image/png"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/mraof/gbjam5/internal/assets"
	"github.com/mraof/gbjam5/internal/audio"
	"github.com/mraof/gbjam5/internal/config"
	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/render"
	"github.com/mraof/gbjam5/internal/storage"
	"github.com/mraof/gbjam5/internal/world"
)

// Options wires a model to the rest of the program. Every field but the
// tick rate is optional.
type Options struct {
	Bundle   *assets.Bundle  // reload target for watcher events
	Watcher  *assets.Watcher // level hot reload
	Store    *storage.Store  // run records
	Audio    *audio.Player
	Player   string // name stored with runs
	Hold     time.Duration
	TickRate int
	Logger   *log.Logger
	Renderer *lipgloss.Renderer // per-session renderer over SSH

	ScreenshotDir string
}

// assetChangedMsg carries a file edited under the override directory.
type assetChangedMsg struct {
	path string
}

// watchErrMsg carries a watcher failure.
type watchErrMsg struct {
	err error
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game     *world.Game
	opts     Options
	keys     *KeyMapper
	screen   *core.Screen
	blocks   *HalfBlocks
	interval time.Duration

	palette  int
	status   string
	width    int
	height   int
	quitting bool
}

// NewModel creates a model for a game on its title screen or in a level.
func NewModel(game *world.Game, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultTickRate
	}
	return Model{
		game:     game,
		opts:     opts,
		keys:     NewKeyMapper(opts.Hold),
		screen:   core.NewScreen(core.ScreenW, core.ScreenH),
		blocks:   NewHalfBlocks(opts.Renderer),
		interval: core.RuntimeConfig{TickRate: opts.TickRate}.TickInterval(),
	}
}

// Init starts the tick loop and the watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), watchCmd(m.opts.Watcher))
}

func watchCmd(w *assets.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case p, ok := <-w.Events:
			if !ok {
				return nil
			}
			return assetChangedMsg{path: p}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.step(time.Time(msg))
		return m, tickCmd(m.interval)

	case assetChangedMsg:
		m.reload(msg.path)
		return m, watchCmd(m.opts.Watcher)

	case watchErrMsg:
		m.opts.Logger.Warn("watcher error", "err", msg.err)
		return m, watchCmd(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "esc":
		if !m.game.InMenu() {
			m.game.ReturnToMenu()
			m.keys.Release()
		}
		return m, nil
	}

	if m.keys.Press(msg, time.Now()) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// step advances the simulation by one tick.
func (m *Model) step(now time.Time) {
	frame := m.game.Step(m.keys.Frame(now))
	render.Rasterize(m.screen, frame.Draws)
	m.palette = frame.Palette
	m.handleEvents(frame.Events)
}

func (m *Model) handleEvents(events []world.Event) {
	if m.opts.Audio != nil {
		m.opts.Audio.Handle(events)
	}
	for _, ev := range events {
		switch ev := ev.(type) {
		case world.LevelComplete:
			m.status = fmt.Sprintf("%s cleared in %s", ev.Level, FormatTicks(ev.Ticks, m.opts.TickRate))
			m.saveRun(ev)
		case world.LevelFailed:
			m.status = fmt.Sprintf("cannot load %s", ev.Level)
		case world.CheckpointSet:
			m.status = "checkpoint"
		}
	}
}

func (m *Model) saveRun(ev world.LevelComplete) {
	if m.opts.Store == nil {
		return
	}
	run := storage.Run{Level: ev.Level, Player: m.opts.Player, Ticks: ev.Ticks, Deaths: ev.Deaths}
	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.opts.Logger.Warn("could not save run", "level", ev.Level, "err", err)
		return
	}
	m.opts.Logger.Info("run saved", "level", ev.Level, "ticks", ev.Ticks, "deaths", ev.Deaths)
}

// reload re-reads an edited asset and restarts the current level when it
// depends on it.
func (m *Model) reload(file string) {
	if m.opts.Bundle == nil {
		return
	}
	if err := m.opts.Bundle.Reload(file); err != nil {
		m.opts.Logger.Warn("asset reload failed", "file", file, "err", err)
		m.status = "reload failed: " + filepath.Base(file)
		return
	}

	current := m.game.Level()
	if current == nil {
		return
	}
	// Edits to other levels only refresh their text.
	if name, ok := levelName(file); ok && name != current.Name {
		return
	}
	if err := m.game.Reload(current.Name); err != nil {
		m.opts.Logger.Warn("level reload failed", "level", current.Name, "err", err)
		m.status = "reload failed: " + current.Name
		return
	}
	m.status = "reloaded " + current.Name
}

// levelName returns the level a file defines, if it is a level text.
func levelName(file string) (string, bool) {
	slashed := filepath.ToSlash(file)
	if path.Ext(slashed) != ".txt" || path.Base(path.Dir(slashed)) != "levels" {
		return "", false
	}
	return strings.TrimSuffix(path.Base(slashed), ".txt"), true
}

// saveScreenshot writes the current frame as a PNG.
func (m *Model) saveScreenshot() {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = config.ExpandHome("~/.gbjam5/screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("gbjam5_%s.png", time.Now().Format("20060102_150405"))
	file := filepath.Join(dir, name)
	f, err := os.Create(file)
	if err != nil {
		m.opts.Logger.Warn("could not save screenshot", "err", err)
		return
	}
	defer f.Close()

	img := render.RGBA(m.screen, m.game.Palettes()[m.palette], nil)
	if err := png.Encode(f, img); err != nil {
		m.opts.Logger.Warn("could not encode screenshot", "err", err)
		return
	}
	m.status = "saved " + name
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// statusLine summarises the level below the screen.
func (m Model) statusLine() string {
	var parts []string
	if l := m.game.Level(); l != nil {
		parts = append(parts,
			l.Name,
			fmt.Sprintf("keys %d/%d", l.KeysCollected, l.KeysRequired),
			fmt.Sprintf("deaths %d", l.Deaths()),
			FormatTicks(l.Ticks(), m.opts.TickRate),
		)
	} else {
		parts = append(parts, "enter: start", "q: quit")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return statusStyle.Render(strings.Join(parts, "  "))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	needW, needH := core.ScreenW, (core.ScreenH+1)/2+1
	if m.width > 0 && (m.width < needW || m.height < needH) {
		return fmt.Sprintf("terminal too small: %dx%d, need %dx%d\nq: quit",
			m.width, m.height, needW, needH)
	}

	m.blocks.SetPalette(m.game.Palettes()[m.palette])
	return m.blocks.Render(m.screen) + "\n" + m.statusLine()
}

// Run starts the Bubble Tea program for a local terminal.
func Run(game *world.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
