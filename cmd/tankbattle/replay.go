package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle"
	"github.com/vovakirdan/tui-tankbattle/internal/replay"
)

var flagTraceEvery int

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded episode and verify its result",
	Long: `Load a replay written by "tankbattle train --record", run it again from
its seed and configuration, and check that the final frame and scores match
the recording.

Examples:
  tankbattle replay ./replays/0b6c...tbr
  tankbattle replay ./replays/0b6c...tbr --trace 500`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagTraceEvery, "trace", 0, "Log progress every N steps (0 = off)")
}

func runReplay(_ *cobra.Command, args []string) {
	rec, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("replaying",
		"id", rec.ID,
		"seed", rec.Seed,
		"steps", len(rec.Steps),
		"recorded", rec.CreatedAt.Format("2006-01-02 15:04"),
	)

	var trace func(int, *tankbattle.Env)
	if flagTraceEvery > 0 {
		trace = func(i int, env *tankbattle.Env) {
			if (i+1)%flagTraceEvery == 0 {
				s := env.Score()
				logger.Info("step", "n", i+1, "frame", env.Frame(), "score", s.Total)
			}
		}
	}

	env, err := rec.Play(trace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	got, err := rec.Compare(env)
	fmt.Printf("Frames: %d  Score: %d (P1 %d, P2 %d)", got.Frame, got.Total, got.P1, got.P2)
	if got.Terminal {
		fmt.Printf("  Ended: %s", got.Reason)
	}
	fmt.Println()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Replay diverged: %v\n", err)
		os.Exit(2)
	}
	fmt.Println("Replay verified.")
}
