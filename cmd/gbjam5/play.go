package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mraof/gbjam5/internal/assets"
	"github.com/mraof/gbjam5/internal/audio"
	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/platform/tui"
)

var (
	flagWatch bool
	flagSound bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal, on the title screen or directly in a level.

The screen is drawn with half-block characters in true colour and needs a
terminal of at least 160x73 cells.

Controls:
  Arrows/WASD  - Move
  X/K/Space    - Jump (A)
  Z/J          - Interact (B): checkpoints, doors, switches
  Enter        - Switch worlds (Start)
  Esc          - Back to the title screen
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  gbjam5 play
  gbjam5 play Key_Level
  gbjam5 play --assets ./mylevels --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload levels edited under --assets")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues (also audio.enabled in config)")
}

func runPlay(_ *cobra.Command, args []string) {
	e, err := loadEnv()
	if err != nil {
		die(err)
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		die(err)
	}
	defer closeLog()
	logger.Info("starting", "config", e.source, "tps", e.runtime.TickRate)

	game, err := e.newGame(logger, args)
	if err != nil {
		die(err)
	}

	opts := tui.Options{
		Bundle:   e.bundle,
		Player:   playerName(),
		Hold:     e.cfg.HoldWindow(),
		TickRate: e.runtime.TickRate,
		Logger:   logger,
	}

	if store := e.openStore(logger); store != nil {
		defer store.Close()
		opts.Store = store
	}

	if flagWatch {
		if e.bundle.Dir() == "" {
			die(errors.New("--watch needs --assets"))
		}
		watcher, err := assets.NewWatcher(e.bundle.Dir())
		if err != nil {
			die(fmt.Errorf("cannot watch %s: %w", e.bundle.Dir(), err))
		}
		defer watcher.Close()
		opts.Watcher = watcher
	}

	if flagSound || e.cfg.Audio.Enabled {
		player := audio.NewPlayer(e.cfg.Audio.Volume, logger)
		if err := player.Start(); err != nil {
			logger.Warn("sound disabled", "err", err)
		}
		defer player.Close()
		opts.Audio = player
	}

	needH := (core.ScreenH+1)/2 + 1
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < core.ScreenW || h < needH) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the game needs %dx%d\n", w, h, core.ScreenW, needH)
	}

	if err := tui.Run(game, opts); err != nil {
		die(fmt.Errorf("running game: %w", err))
	}
}
