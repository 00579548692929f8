package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mraof/gbjam5/internal/level"
	"github.com/mraof/gbjam5/internal/sprite"
	"github.com/mraof/gbjam5/internal/tile"
	"github.com/mraof/gbjam5/internal/world"
)

var checkCmd = &cobra.Command{
	Use:   "check <file...>",
	Short: "Validate level files",
	Long: `Parse level files against the sprite sheets in the bundle and report
errors. Door targets that name no known level are reported as warnings.

Examples:
  gbjam5 check levels/My_Level.txt
  gbjam5 check --assets ./mylevels ./mylevels/levels/*.txt`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	e, err := loadEnv()
	if err != nil {
		die(err)
	}

	known := map[string]bool{world.MenuTarget: true}
	for _, n := range e.bundle.Levels() {
		known[n] = true
	}
	for _, file := range args {
		known[strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))] = true
	}

	failed := 0
	for _, file := range args {
		if err := checkLevel(file, e, known); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL  %s: %v\n", file, err)
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d of %d levels failed\n", failed, len(args))
		os.Exit(1)
	}
}

func checkLevel(file string, e *env, known map[string]bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	def, err := level.Parse(name, string(data), e.bundle)
	if err != nil {
		return err
	}
	if _, err := world.NewLevel(def, e.bundle, sprite.SystemClock{}); err != nil {
		return err
	}

	for _, target := range doorTargets(def) {
		if !known[target] {
			fmt.Printf("WARN  %s: door leads to unknown level %q\n", file, target)
		}
	}
	fmt.Printf("ok    %s (%dx%d, %d keys)\n", file, def.Grid.Width, def.Grid.Height, def.KeyTotal)
	return nil
}

// doorTargets lists the distinct door targets of a level.
func doorTargets(def *level.Definition) []string {
	seen := make(map[string]bool)
	var targets []string
	catalog := def.Grid.Catalog()
	for i := 0; i < catalog.Len(); i++ {
		if d, ok := catalog.Get(i).Behavior.(tile.Door); ok && !seen[d.Target] {
			seen[d.Target] = true
			targets = append(targets, d.Target)
		}
	}
	return targets
}
