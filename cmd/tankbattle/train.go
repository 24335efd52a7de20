package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tankbattle/internal/agent"
	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle"
	"github.com/vovakirdan/tui-tankbattle/internal/observation"
	"github.com/vovakirdan/tui-tankbattle/internal/storage"
)

var (
	flagEpisodes   int
	flagMaxSteps   int
	flagAgent      string
	flagRecordDir  string
	flagObserve    bool
	flagObsSize    int
	flagTrainTwoP  bool
	flagNoSave     bool
	flagDebugFrame bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run headless agent episodes",
	Long: `Play episodes without a display, with a built-in agent controlling
every tank. Results are stored in the scores database and shown on the
scoreboard's "Agent runs" board.

Episode i runs with seed (--seed + i) mod 9999; without --seed a base seed
is drawn. With --record each episode is saved as a replay that
"tankbattle replay" can verify.

Agents:
  random - Uniform random actions
  idle   - Never acts
  fire   - Fires whenever it can

Examples:
  tankbattle train --episodes 10
  tankbattle train --episodes 5 --seed 42 --record ./replays
  tankbattle train --agent random --2p --max-steps 5000 --observe`,
	Args: cobra.NoArgs,
	Run:  runTrain,
}

func init() {
	trainCmd.Flags().IntVarP(&flagEpisodes, "episodes", "n", 1, "Number of episodes")
	trainCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Step limit per episode (0 = until terminal)")
	trainCmd.Flags().StringVar(&flagAgent, "agent", "random", "Agent: random, idle, fire")
	trainCmd.Flags().StringVar(&flagRecordDir, "record", "", "Directory to save replays into")
	trainCmd.Flags().BoolVar(&flagObserve, "observe", false, "Preprocess a grayscale observation every step")
	trainCmd.Flags().IntVar(&flagObsSize, "obs-size", observation.DefaultSize, "Observation edge length")
	trainCmd.Flags().BoolVar(&flagTrainTwoP, "2p", false, "Two agent-controlled players (default from config)")
	trainCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store results in the database")
	trainCmd.Flags().BoolVar(&flagDebugFrame, "debug", false, "Log engine counters every 60 frames")
}

// newAgent builds the named agent; seed feeds random agents.
func newAgent(name string, seed int64) (agent.Agent, error) {
	switch name {
	case "random":
		return agent.NewRandom(seed), nil
	case "idle":
		return agent.Idle, nil
	case "fire":
		return agent.Fixed(tankbattle.ActionFire), nil
	}
	return nil, fmt.Errorf("unknown agent %q", name)
}

func runTrain(cmd *cobra.Command, _ []string) {
	p1, err := newAgent(flagAgent, flagSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p2, _ := newAgent(flagAgent, flagSeed+1)

	opts := tankbattle.DefaultOptions()
	opts.Config = gameCfg
	if cmd.Flags().Changed("2p") {
		opts.Config.Episode.TwoPlayers = flagTrainTwoP
	}
	opts.Debug = flagDebugFrame
	opts.Logger = logger.WithPrefix("engine")

	runner, err := agent.NewRunner(agent.RunConfig{
		Options:  opts,
		Episodes: flagEpisodes,
		MaxSteps: flagMaxSteps,
		Seed:     envSeed(),
		Observe:  flagObserve,
		ObsSize:  flagObsSize,
		Record:   flagRecordDir != "",
	}, p1, p2, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if !flagNoSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var results []agent.EpisodeResult
	for i := range flagEpisodes {
		res, err := runner.RunEpisode(ctx, i)
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted", "finished", len(results))
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		results = append(results, res)

		replayPath := ""
		if res.Replay != nil {
			replayPath, err = res.Replay.Save(flagRecordDir)
			if err != nil {
				logger.Error("could not save replay", "episode", res.ID, "error", err)
			}
		}

		if store != nil {
			_, err := store.SaveEpisode(storage.EpisodeRecord{
				EpisodeID:  res.ID,
				Agent:      flagAgent,
				Seed:       res.Seed,
				TwoPlayers: opts.Config.Episode.TwoPlayers,
				Steps:      res.Steps,
				Frames:     res.Frames,
				Score:      res.Score.Total,
				ScoreP1:    res.Score.P1,
				ScoreP2:    res.Score.P2,
				Terminal:   res.Terminal,
				Reason:     res.Reason,
				Duration:   res.Duration,
				ReplayPath: replayPath,
			})
			if err != nil {
				logger.Error("could not store episode", "episode", res.ID, "error", err)
			}
		}
	}

	printSummary(results)
}

func printSummary(results []agent.EpisodeResult) {
	if len(results) == 0 {
		fmt.Println("No episodes finished.")
		return
	}

	fmt.Println()
	fmt.Printf("  %-3s  %-5s  %-7s  %-7s  %-5s  %-5s  %s\n", "#", "Seed", "Steps", "Frames", "P1", "P2", "End")
	for i, r := range results {
		end := r.Reason
		if !r.Terminal {
			end = "step limit"
		}
		fmt.Printf("  %-3d  %-5d  %-7d  %-7d  %-5d  %-5d  %s\n",
			i+1, r.Seed, r.Steps, r.Frames, r.Score.P1, r.Score.P2, end)
	}

	s := agent.Summarize(results)
	fmt.Println()
	fmt.Printf("Episodes: %d  Best: %d  Mean score: %.1f  Mean frames: %.0f  Terminated: %d\n",
		s.Episodes, s.BestScore, s.MeanScore, s.MeanFrames, s.Terminated)
}
