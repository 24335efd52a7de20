package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tankbattle/internal/registry"
	"github.com/vovakirdan/tui-tankbattle/internal/storage"
)

var (
	flagAgentRuns   bool
	flagAgentFilter string
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores or agent runs",
	Long: `Display the top high scores for a mode (every mode when none is given),
or the most recent headless agent episodes with --agents.

Examples:
  tankbattle scores
  tankbattle scores tankbattle_2p
  tankbattle scores --agents
  tankbattle scores --agents --agent random --limit 50`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagAgentRuns, "agents", false, "Show agent episodes instead of high scores")
	scoresCmd.Flags().StringVar(&flagAgentFilter, "agent", "", "Filter agent episodes by agent name")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagAgentRuns {
		printEpisodes(store)
		return
	}

	var ids []string
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'tankbattle list' to see available modes.")
			os.Exit(1)
		}
		ids = append(ids, args[0])
	} else {
		for _, g := range registry.List() {
			ids = append(ids, g.ID)
		}
	}

	for i, id := range ids {
		if i > 0 {
			fmt.Println()
		}
		if err := printHighScores(store, id); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
	}
}

func printHighScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'tankbattle play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	return nil
}

func printEpisodes(store *storage.Store) {
	eps, err := store.RecentEpisodes(flagAgentFilter, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving episodes: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent agent episodes")
	fmt.Println()
	if len(eps) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println("Run 'tankbattle train' to play some.")
		return
	}

	fmt.Printf("  %-8s  %-5s  %-7s  %-6s  %-22s  %s\n", "Agent", "Seed", "Frames", "Score", "End", "Replay")
	agents := make(map[string]bool)
	for _, ep := range eps {
		end := ep.Reason
		if !ep.Terminal {
			end = "step limit"
		}
		replayPath := ep.ReplayPath
		if replayPath == "" {
			replayPath = "-"
		}
		fmt.Printf("  %-8s  %-5d  %-7d  %-6d  %-22s  %s\n", ep.Agent, ep.Seed, ep.Frames, ep.Score, end, replayPath)
		agents[ep.Agent] = true
	}

	fmt.Println()
	for _, name := range slices.Sorted(maps.Keys(agents)) {
		stats, err := store.GetEpisodeStats(name)
		if err != nil {
			continue
		}
		fmt.Printf("%s: %d episodes  best %d  mean score %.1f  mean frames %.0f\n",
			name, stats.Episodes, stats.BestScore, stats.AvgScore, stats.AvgFrames)
	}
}
