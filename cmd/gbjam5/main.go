// gbjam5 is a two-world platformer for the terminal, SSH and a desktop window.
//
// Usage:
//
//	gbjam5 play [level]      - Play in the terminal
//	gbjam5 window [level]    - Play in a desktop window
//	gbjam5 serve             - Start SSH server for remote play
//	gbjam5 levels            - List levels
//	gbjam5 check <file...>   - Validate level files
//	gbjam5 records [level]   - Show the best runs
//
// Global flags:
//
//	--tps <rate>     - Set tick rate (default: from config, 50)
//	--db <path>      - Set database path (default: ~/.gbjam5/records.db)
//	--config <path>  - Use a specific config file
//	--assets <dir>   - Override embedded levels and sprites from a directory
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mraof/gbjam5/internal/assets"
	"github.com/mraof/gbjam5/internal/config"
	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/storage"
	"github.com/mraof/gbjam5/internal/world"
)

var (
	// Global flags
	flagTPS     int
	flagDBPath  string
	flagConfig  string
	flagAssets  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gbjam5",
	Short: "gbjam5 - a platformer between life and death",
	Long: `gbjam5 is a small platformer played on a 160x144 four-shade screen.
Every level exists twice, once among the living and once among the dead,
and dying or pulling a switch moves you between them.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  levels   - List levels
  check    - Validate level files
  records  - View the best runs

Examples:
  gbjam5 play
  gbjam5 play Key_Level
  gbjam5 play --assets ./mylevels --watch
  gbjam5 window --scale 5
  gbjam5 serve --ssh :2222
  gbjam5 records Switch_Level`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Directory with levels/ and sprites/ overriding the embedded ones")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(recordsCmd)
}

// env is everything a command needs before it picks a frontend.
type env struct {
	cfg     config.Config
	source  string
	bundle  *assets.Bundle
	runtime core.RuntimeConfig
	life    core.Palette
	death   core.Palette
}

// loadEnv reads the configuration and the asset bundle, applying flags.
func loadEnv() (*env, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return nil, err
	}
	life, death, err := cfg.ParsePalettes()
	if err != nil {
		return nil, err
	}
	bundle, err := assets.Load(flagAssets)
	if err != nil {
		return nil, err
	}

	rc := cfg.Runtime()
	if flagTPS > 0 {
		rc.TickRate = flagTPS
	}
	return &env{cfg: cfg, source: source, bundle: bundle, runtime: rc, life: life, death: death}, nil
}

// dbPath returns the records database location.
func (e *env) dbPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return e.cfg.Storage.Path
}

// openStore opens the records database. Failure is not fatal: the game runs
// without records.
func (e *env) openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(e.dbPath())
	if err != nil {
		logger.Warn("could not open records database", "path", e.dbPath(), "err", err)
		return nil
	}
	return store
}

// newGame creates a game, entering level directly when one is named.
func (e *env) newGame(logger *log.Logger, args []string) (*world.Game, error) {
	game, err := world.New(e.bundle, e.runtime,
		world.WithLogger(logger),
		world.WithPalettes(e.life, e.death),
	)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		if err := game.LoadLevel(args[0]); err != nil {
			return nil, err
		}
	}
	return game, nil
}

// newLogger writes timestamped logs to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gbjam5",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger logs to ~/.gbjam5/gbjam5.log, since the terminal belongs to the
// game while it runs.
func fileLogger() (*log.Logger, func(), error) {
	path := config.ExpandHome("~/.gbjam5/gbjam5.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f), func() { f.Close() }, nil
}

// playerName is the name stored with local runs.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// die reports an error the way every command does and exits.
func die(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
