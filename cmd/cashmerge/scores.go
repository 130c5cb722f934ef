package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cash-merge/internal/platform/tui"
	"github.com/vovakirdan/cash-merge/internal/storage"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best finished games.

Examples:
  cashmerge scores
  cashmerge scores --limit 25
  cashmerge scores -i          # Scrollable table
  cashmerge scores --clear     # Forget every score`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the scrollable scoreboard")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores")
}

func runScores(cmd *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClearScores:
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All scores cleared.")
	case flagInteractive:
		if err := tui.RunScoreboard(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
	default:
		if err := printScores(cmd.OutOrStdout(), store, flagScoresLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
	}
}

// printScores writes the top limit scores as a plain table.
func printScores(w io.Writer, store *storage.Store, limit int) error {
	scores, err := store.TopScores(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "High Scores - Cash Merge")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'cashmerge play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-8s  %-6s  %-6s  %s\n", "Rank", "Player", "Score", "Merges", "Coupon", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-8s  %-6s  %-6s  %s\n", "----", "------", "-----", "------", "------", "----")
	for i, e := range scores {
		coupon := "-"
		if e.CouponPercent > 0 {
			coupon = fmt.Sprintf("%d%%", e.CouponPercent)
		}
		fmt.Fprintf(w, "  %-4d  %-16s  %-8d  %-6d  %-6s  %s\n",
			i+1, e.Player, e.Score, e.Merges, coupon, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(); err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Best: %d\n", best)
	}
	return nil
}
