package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/aggregator"
	"github.com/pable/rivalstats/internal/report"
)

// summaryCmd prints the squad overview: totals, role coverage and the
// games-per-role distribution.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the squad overview",
	Long: `Display squad totals (games, wins, win rate, MVP/SVP counts), which
players can cover each role, and how the squad's games split across roles.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	_, snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	report.PrintSquadSummary(os.Stdout, aggregator.SquadSummary(snap))

	fmt.Fprintf(os.Stdout, "--- Role Coverage ---\n\n")
	report.PrintRoleCoverage(os.Stdout, aggregator.CoverageShare(aggregator.RoleCoverage(snap), len(snap.Players)))

	fmt.Fprintf(os.Stdout, "\n--- Games per Role ---\n\n")
	report.PrintRoleDistribution(os.Stdout, aggregator.RoleDistribution(snap.HeroStats))
	return nil
}
