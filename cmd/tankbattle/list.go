package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle/stages"
	"github.com/vovakirdan/tui-tankbattle/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and stages",
	Long: `Shows the registered game modes and the stages available to
episode.stage in the configuration (built-in, or episode.stage_dir).`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	fmt.Println("Game modes:")
	fmt.Println()
	maxIDLen := 2
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Players", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "-------", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %-7d  %s\n", maxIDLen, g.ID, g.Players, g.Title)
	}

	list := stages.Builtin()
	source := "built-in"
	if dir := gameCfg.Episode.StageDir; dir != "" {
		loaded, err := stages.NewLoader(dir).LoadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading stages from %s: %v\n", dir, err)
			os.Exit(1)
		}
		list, source = loaded, dir
	}

	fmt.Println()
	fmt.Printf("Stages (%s):\n", source)
	fmt.Println()
	fmt.Printf("  %-5s  %-12s  %-5s  %s\n", "Index", "ID", "Walls", "Name")
	for i, s := range list {
		marker := " "
		if i == gameCfg.Episode.Stage {
			marker = "*"
		}
		fmt.Printf("%s %-5d  %-12s  %-5d  %s\n", marker, i, s.ID, len(s.Walls()), s.Name)
	}

	fmt.Println()
	fmt.Println("Run 'tankbattle play <id>' to play a mode.")
}
