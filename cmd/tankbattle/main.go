// tankbattle is a terminal tank battle and a headless training ground for
// game-playing agents.
//
// Usage:
//
//	tankbattle list              - List game modes and stages
//	tankbattle play [mode]       - Play a mode (tankbattle, tankbattle_2p)
//	tankbattle menu              - Pick a mode interactively
//	tankbattle train             - Run agent episodes without a display
//	tankbattle replay <file>     - Re-simulate and verify a recorded episode
//	tankbattle scores [mode]     - Show high scores or agent runs
//	tankbattle serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tankbattle/scores.db)
//	--config <path>       - Load a custom tankbattle.yaml
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tankbattle/internal/config"
	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle"
	"github.com/vovakirdan/tui-tankbattle/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

// Set up by the root command before any subcommand runs.
var (
	logger    *log.Logger
	gameCfg   config.TankBattleConfig
	seedGiven bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tankbattle",
	Short: "Tank Battle - defend the base in your terminal",
	Long: `Tank Battle is a tile-based tank game for the terminal. Enemy tanks roam
the arena; protect the base and destroy as many of them as you can.

The same simulation runs headless for agents: "train" plays episodes with
a built-in agent, stores the results and can record replays.

Available commands:
  list     - Show game modes and built-in stages
  play     - Play a mode directly
  menu     - Interactive mode picker
  train    - Run headless agent episodes
  replay   - Verify a recorded episode
  scores   - View high scores and agent runs
  serve    - Start SSH server for remote play

Examples:
  tankbattle play
  tankbattle play tankbattle_2p --difficulty hard
  tankbattle train --episodes 20 --record ./replays
  tankbattle replay ./replays/<id>.tbr`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tankbattle/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tankbattle.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup builds the logger and the game configuration shared by every
// subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tankbattle",
		Level:           level,
	})

	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	cfg, err := config.LoadTankBattle(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyTankBattlePreset(&cfg, preset)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	gameCfg = cfg
	seedGiven = cmd.Flags().Changed("seed")
	tankbattle.SetConfig(cfg)
	tankbattle.SetLogger(logger)

	logger.Debug("configuration loaded",
		"path", flagConfig,
		"difficulty", preset,
		"enemies", cfg.Episode.NumOfEnemies,
		"stage", cfg.Episode.Stage,
	)
	return nil
}

// openStore opens the scores database, logging instead of failing.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// envSeed returns the --seed value, or NoSeed when it was not given.
func envSeed() int64 {
	if seedGiven {
		return flagSeed
	}
	return tankbattle.NoSeed
}
