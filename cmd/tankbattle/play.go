package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tankbattle/internal/core"
	"github.com/vovakirdan/tui-tankbattle/internal/platform/tui"
	"github.com/vovakirdan/tui-tankbattle/internal/registry"
)

var flagTwoPlayers bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing tank battle. The mode defaults to "tankbattle".

Controls (single player):
  Arrows     - Move
  Space      - Fire

Controls (two players):
  Player 1   - Arrows to move, Enter to fire
  Player 2   - WASD to move, Space to fire

Common:
  P/Esc      - Pause
  R          - Restart (after game over)
  B          - Back (when paused or after game over)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Fewer enemies that reload slowly
  normal - Default settings
  hard   - More enemies that reload quickly
  fixed  - Enemies never get tougher as the score grows

Examples:
  tankbattle play
  tankbattle play tankbattle_2p
  tankbattle play --2p --difficulty hard
  tankbattle play --config ./my-tankbattle.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagTwoPlayers, "2p", false, "Two local players")
}

// terminalConfig reads the terminal size into a runtime config.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "tankbattle"
	if flagTwoPlayers {
		gameID = "tankbattle_2p"
	}
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tankbattle list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var saver tui.ScoreSaver
	store := openStore()
	if store != nil {
		saver = store
		defer store.Close()
	}

	if _, err := tui.Run(game, saver, terminalConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
