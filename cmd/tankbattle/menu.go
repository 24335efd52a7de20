package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tankbattle/internal/platform/tui"
	"github.com/vovakirdan/tui-tankbattle/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a game mode from a menu",
	Long: `Start tank battle in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode and Tab for the
scoreboard. Press B after a game ends (or while paused) to come back.

Examples:
  tankbattle menu
  tankbattle menu --fps 30
  tankbattle menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	var saver tui.ScoreSaver
	if store != nil {
		saver = store
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config

		if res.Quit {
			return
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return
			}
			continue
		}

		game, err := registry.Create(res.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if !seedGiven {
			cfg.Seed = time.Now().UnixNano()
		}
		back, err := tui.Run(game, saver, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			return
		}
	}
}
