package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mraof/gbjam5/internal/level"
	"github.com/mraof/gbjam5/internal/platform/tui"
	"github.com/mraof/gbjam5/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows every level in the bundle with its size, key count and best time.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	e, err := loadEnv()
	if err != nil {
		die(err)
	}

	names := e.bundle.Levels()
	if len(names) == 0 {
		fmt.Println("No levels available.")
		return
	}

	store := e.openStore(log.New(io.Discard))
	if store != nil {
		defer store.Close()
	}

	// Calculate column widths
	maxNameLen := len("Level")
	for _, n := range names {
		maxNameLen = max(maxNameLen, len(n))
	}

	fmt.Printf("  %-*s  %-7s  %-4s  %-4s  %s\n", maxNameLen, "Level", "Size", "Wrap", "Keys", "Best")
	fmt.Printf("  %-*s  %-7s  %-4s  %-4s  %s\n", maxNameLen, "-----", "----", "----", "----", "----")

	for _, name := range names {
		text, err := e.bundle.LevelText(name)
		if err != nil {
			die(err)
		}
		def, err := level.Parse(name, text, e.bundle)
		if err != nil {
			fmt.Printf("  %-*s  %v\n", maxNameLen, name, err)
			continue
		}

		wrap := "no"
		if def.Grid.Wrap {
			wrap = "yes"
		}
		fmt.Printf("  %-*s  %-7s  %-4s  %-4d  %s\n", maxNameLen, name,
			fmt.Sprintf("%dx%d", def.Grid.Width, def.Grid.Height), wrap, def.KeyTotal,
			bestTime(store, name, e.runtime.TickRate))
	}

	fmt.Println()
	fmt.Fprintf(os.Stdout, "Start level: %s. Run 'gbjam5 play <level>' to jump in.\n", e.runtime.StartLevel)
}

// bestTime formats the fastest recorded run, or "-".
func bestTime(store *storage.Store, name string, tickRate int) string {
	if store == nil {
		return "-"
	}
	best, err := store.BestRun(name)
	if err != nil || best == nil {
		return "-"
	}
	return tui.FormatTicks(best.Ticks, tickRate)
}
