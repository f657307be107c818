package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/ranking"
	"github.com/pable/rivalstats/internal/report"
	"github.com/pable/rivalstats/internal/selection"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [category]",
	Short: "Show a leaderboard category",
	Long: `Show one leaderboard category exactly as ranked upstream.

Categories: winRate (default), kda, damage, healing, blocked.
An unrecognised category falls back to winRate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	_, snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	state := selection.Default()
	if len(args) == 1 {
		state.SetCategory(args[0])
		if string(state.Category) != args[0] {
			log.Warn().Str("category", args[0]).Msg("unknown leaderboard category, showing winRate")
		}
	}

	entries := ranking.LeaderboardEntries(snap.Leaderboard, state.Category)
	fmt.Fprintf(os.Stdout, "\n--- %s ---\n\n", state.Category.Title())
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No entries.")
		return nil
	}
	report.PrintLeaderboard(os.Stdout, state.Category, entries)
	return nil
}
