package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
	flagAllSizes    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores for the configured board size.

Examples:
  t2048 scores
  t2048 scores --size 5
  t2048 scores --limit 20
  t2048 scores --clear
  t2048 scores --all`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the board size")
	scoresCmd.Flags().BoolVar(&flagAllSizes, "all", false, "Show a summary for every board size played")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	size := cfg.Board.Size

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagAllSizes {
		return printAllStats(out, store)
	}

	if flagClear {
		if err := store.ClearScores(size); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %dx%d.\n", size, size)
		return nil
	}

	scores, err := store.TopScores(size, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - 2048 (%dx%d)\n", size, size)
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 't2048 play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-5s  %-12s  %s\n", "Rank", "Score", "Tile", "Moves", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-5s  %-12s  %s\n", "----", "-----", "----", "-----", "------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(out, "  %-4d  %-8d  %-6d  %-5d  %-12s  %s\n",
			i+1, entry.Score, entry.MaxTile, entry.Moves, player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(size)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Games: %d  Best: %d  Best tile: %d  Avg: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestTile, stats.AvgScore)
	}
	return nil
}

// printAllStats prints one summary line per board size.
func printAllStats(out io.Writer, store *storage.Store) error {
	all, err := store.AllStats()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}

	sizes := make([]int, 0, len(all))
	for size := range all {
		sizes = append(sizes, size)
	}
	slices.Sort(sizes)

	fmt.Fprintf(out, "  %-6s  %-5s  %-8s  %-6s  %-8s  %s\n", "Board", "Games", "Best", "Tile", "Avg", "Last played")
	fmt.Fprintf(out, "  %-6s  %-5s  %-8s  %-6s  %-8s  %s\n", "-----", "-----", "----", "----", "---", "-----------")
	for _, size := range sizes {
		st := all[size]
		fmt.Fprintf(out, "  %-6s  %-5d  %-8d  %-6d  %-8.0f  %s\n",
			fmt.Sprintf("%dx%d", size, size), st.GamesCount, st.HighScore, st.BestTile, st.AvgScore,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
