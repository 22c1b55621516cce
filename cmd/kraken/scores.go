package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kraken/internal/core"
	"github.com/vovakirdan/tui-kraken/internal/registry"
	"github.com/vovakirdan/tui-kraken/internal/storage"
)

var (
	flagRuns  bool
	flagRunID string
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Print high scores and recent runs",
	Long: `Display the top 10 high scores.

Examples:
  kraken scores
  kraken scores --runs
  kraken scores --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  kraken scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Also list the 10 most recent runs")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by ID")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs of the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fail("%v (run 'kraken list')", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		err = store.ClearScores(gameID)
		if err == nil {
			fmt.Printf("Cleared all scores for %s.\n", game.Title())
		}
	case flagRunID != "":
		err = printRun(store, flagRunID)
	default:
		err = printScores(store, gameID, game.Title())
		if err == nil && flagRuns {
			err = printRuns(store, gameID)
		}
	}
	if err != nil {
		store.Close()
		fail("%v", err)
	}
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", title)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'kraken play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f  Octopuses sunk: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalKills)
	}
	return nil
}

func printRuns(store *storage.Store, gameID string) error {
	runs, err := store.RecentRuns(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("\nRecent Runs\n\n")
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}
	fmt.Printf("  %-36s  %-6s  %-5s  %-6s  %-12s  %s\n", "Run", "Score", "Kills", "Time", "Player", "Date")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-6d  %-5d  %-6s  %-12s  %s\n",
			r.RunID, r.Score, r.Kills, core.FormatTicks(r.Ticks, flagFPS), r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRun(store *storage.Store, raw string) error {
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", raw, err)
	}
	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "No run with id %s.\n", id)
		return nil
	}

	fmt.Printf("Run     %s\n", run.RunID)
	fmt.Printf("Game    %s\n", run.GameID)
	fmt.Printf("Player  %s\n", run.Player)
	fmt.Printf("Score   %d\n", run.Score)
	fmt.Printf("Kills   %d\n", run.Kills)
	fmt.Printf("Time    %s\n", core.FormatTicks(run.Ticks, flagFPS))
	fmt.Printf("Date    %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
