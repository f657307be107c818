package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/herofilter"
	"github.com/pable/rivalstats/internal/report"
	"github.com/pable/rivalstats/internal/selection"
)

var (
	heroesRoles string
	heroesTop   int
)

var heroesCmd = &cobra.Command{
	Use:   "heroes",
	Short: "Show the squad's most played heroes",
	Long: `Show squad-wide hero stats ordered by games played, limited to the
selected roles. Heroes without a known role are never listed when filtering
by role.`,
	Args: cobra.NoArgs,
	RunE: runHeroes,
}

func init() {
	heroesCmd.Flags().StringVar(&heroesRoles, "roles", "", "comma-separated roles to include (default all)")
	heroesCmd.Flags().IntVar(&heroesTop, "top", herofilter.ChartSize, "maximum number of heroes to show")
}

func runHeroes(cmd *cobra.Command, args []string) error {
	_, snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	active := selection.ParseRoleSet(heroesRoles)
	if len(active.List()) == 0 {
		return fmt.Errorf("no valid roles in %q (want vanguard, duelist, strategist)", heroesRoles)
	}

	list := herofilter.TopN(herofilter.SortByGamesDescending(herofilter.FilterByActiveRoles(snap.HeroStats, active)), heroesTop)
	fmt.Fprintf(os.Stdout, "\nRoles: %s\n\n", active)
	if len(list) == 0 {
		fmt.Fprintln(os.Stdout, "No heroes.")
		return nil
	}
	report.PrintHeroTable(os.Stdout, list)
	return nil
}
