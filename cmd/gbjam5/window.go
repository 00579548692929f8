package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mraof/gbjam5/internal/audio"
	"github.com/mraof/gbjam5/internal/platform/window"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window [level]",
	Short: "Play in a desktop window",
	Long: `Open a desktop window at a whole multiple of 160x144.
Keys are the same as in the terminal, and a standard gamepad works too.
F12 quits, Esc returns to the title screen.

Examples:
  gbjam5 window
  gbjam5 window Switch_Level --scale 6`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 0, "Window scale (0 = from config)")
	windowCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues (also audio.enabled in config)")
}

func runWindow(_ *cobra.Command, args []string) {
	e, err := loadEnv()
	if err != nil {
		die(err)
	}

	logger := newLogger(os.Stderr)
	game, err := e.newGame(logger, args)
	if err != nil {
		die(err)
	}

	scale := e.cfg.Window.Scale
	if flagScale > 0 {
		scale = flagScale
	}
	opts := window.Options{
		Player:   playerName(),
		Scale:    scale,
		TickRate: e.runtime.TickRate,
		Logger:   logger,
	}

	if store := e.openStore(logger); store != nil {
		defer store.Close()
		opts.Store = store
	}

	if flagSound || e.cfg.Audio.Enabled {
		player := audio.NewPlayer(e.cfg.Audio.Volume, logger)
		if err := player.Start(); err != nil {
			logger.Warn("sound disabled", "err", err)
		}
		defer player.Close()
		opts.Audio = player
	}

	if err := window.Run(game, opts); err != nil {
		die(err)
	}
}
