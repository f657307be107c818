package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the snapshot against its consistency rules",
	Long: `Load the snapshot and report every violation of the rules the producer
promises: wins never exceed games, player names are unique, and no player
appears twice in one composition. Exits non-zero when anything is wrong.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	_, snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	verr := snap.Validate()
	if verr == nil {
		fmt.Fprintf(os.Stdout, "OK: %d players, %d compositions, %d heroes\n",
			len(snap.Players), len(snap.Compositions), len(snap.HeroStats))
		return nil
	}

	issues := []error{verr}
	if joined, ok := verr.(interface{ Unwrap() []error }); ok {
		issues = joined.Unwrap()
	}
	for _, e := range issues {
		fmt.Fprintf(os.Stdout, "  - %v\n", e)
	}
	return fmt.Errorf("%d problem(s) found", len(issues))
}
