package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mraof/gbjam5/internal/platform/tui"
	"github.com/mraof/gbjam5/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [level]",
	Short: "Show the best runs",
	Long: `Display the fastest runs per level. In a terminal this opens an
interactive board; with --plain, or when output is piped, it prints the
top 10 of each level.

Examples:
  gbjam5 records
  gbjam5 records Key_Level --plain
  gbjam5 records Key_Level --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print instead of opening the board")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the runs of the given level")
}

func runRecords(_ *cobra.Command, args []string) {
	e, err := loadEnv()
	if err != nil {
		die(err)
	}

	store, err := storage.Open(e.dbPath())
	if err != nil {
		die(err)
	}
	defer store.Close()

	first := ""
	if len(args) > 0 {
		first = args[0]
	}

	if flagClear {
		if first == "" {
			die(fmt.Errorf("--clear needs a level"))
		}
		if err := store.ClearRuns(first); err != nil {
			die(err)
		}
		fmt.Printf("Cleared runs of %s\n", first)
		return
	}

	// Levels in the bundle first, then any with runs but no longer shipped.
	levels := e.bundle.Levels()
	stats, err := store.GetAllLevelStats()
	if err != nil {
		die(err)
	}
	seen := make(map[string]bool)
	for _, l := range levels {
		seen[l] = true
	}
	for l := range stats {
		if !seen[l] {
			levels = append(levels, l)
		}
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := tui.RunRecords(store, levels, first, e.runtime.TickRate); err != nil {
			die(err)
		}
		return
	}

	if first != "" {
		levels = []string{first}
	}
	for _, l := range levels {
		printRuns(store, l, e.runtime.TickRate)
	}
}

func printRuns(store *storage.Store, name string, tickRate int) {
	runs, err := store.BestRuns(name, 10)
	if err != nil {
		die(err)
	}

	fmt.Printf("%s\n", name)
	if len(runs) == 0 {
		fmt.Println("  No runs recorded yet.")
		fmt.Println()
		return
	}

	fmt.Printf("  %-4s  %-12s  %-9s  %-6s  %s\n", "Rank", "Player", "Time", "Deaths", "Date")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-9s  %-6d  %s\n", i+1, player,
			tui.FormatTicks(r.Ticks, tickRate), r.Deaths, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
}
