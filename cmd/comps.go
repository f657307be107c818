package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/composition"
	"github.com/pable/rivalstats/internal/model"
	"github.com/pable/rivalstats/internal/report"
)

var compsIndex int

var compsCmd = &cobra.Command{
	Use:   "comps",
	Short: "List suggested team compositions",
	Long: `List the suggested compositions with their score and the role left open
for a random teammate. With --index N (1-based), show that composition's
players grouped by role.`,
	Args:    cobra.NoArgs,
	PreRunE: validateCompsFlags,
	RunE:    runComps,
}

func init() {
	compsCmd.Flags().IntVar(&compsIndex, "index", 0, "show the Nth composition in detail (1-based)")
}

func validateCompsFlags(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("index") {
		_, err := compositionIndex(compsIndex)
		return err
	}
	return nil
}

func runComps(cmd *cobra.Command, args []string) error {
	_, snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	if len(snap.Compositions) == 0 {
		fmt.Fprintln(os.Stdout, "No compositions in snapshot.")
		return nil
	}

	if !cmd.Flags().Changed("index") {
		missing := make([]*model.Role, len(snap.Compositions))
		for i, c := range snap.Compositions {
			if r, ok := composition.MissingRole(c); ok {
				missing[i] = &r
			}
		}
		report.PrintCompositionList(os.Stdout, snap.Compositions, missing)
		return nil
	}
	idx, err := compositionIndex(compsIndex)
	if err != nil {
		return err
	}
	return showComposition(snap.Compositions, idx)
}

// compositionIndex converts the 1-based --index value to a slice index.
func compositionIndex(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("invalid --index %d: compositions are numbered from 1", n)
	}
	return n - 1, nil
}

// showComposition prints the composition at a zero-based index.
func showComposition(comps []model.Composition, idx int) error {
	c, ok := composition.Select(comps, idx)
	if !ok {
		return fmt.Errorf("no composition #%d (have %d)", idx+1, len(comps))
	}
	groups, err := composition.GroupByRole(*c)
	if err != nil {
		return fmt.Errorf("composition #%d: %w", idx+1, err)
	}
	var missing *model.Role
	if r, ok := composition.MissingRole(*c); ok {
		missing = &r
	}
	report.PrintComposition(os.Stdout, idx, *c, groups, missing)
	return nil
}
