package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/aggregator"
	"github.com/pable/rivalstats/internal/ranking"
	"github.com/pable/rivalstats/internal/report"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Rank players by win rate and show role recommendations",
	Long: `Rank every player with at least one game by win rate, then list each
player's recommended primary and secondary role.`,
	Args: cobra.NoArgs,
	RunE: runPlayers,
}

func runPlayers(cmd *cobra.Command, args []string) error {
	_, snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	if len(snap.Players) == 0 {
		fmt.Fprintln(os.Stdout, "No players in snapshot.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n--- Win Rate ---\n\n")
	report.PrintWinRateRanking(os.Stdout, ranking.WinRateRanking(snap.Players))

	fmt.Fprintf(os.Stdout, "\n--- Role Recommendations ---\n\n")
	report.PrintRecommendations(os.Stdout, aggregator.RoleRecommendations(snap.Players))
	return nil
}
