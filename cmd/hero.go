package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/report"
	"github.com/pable/rivalstats/internal/snapshot"
)

var heroCmd = &cobra.Command{
	Use:   "hero <name>",
	Short: "Show who plays a hero best",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHero,
}

func runHero(cmd *cobra.Command, args []string) error {
	_, snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	name := strings.Join(args, " ")
	h, ok := snapshot.FindHero(snap, name)
	if !ok {
		return fmt.Errorf("no hero matching %q", name)
	}
	report.PrintHeroPlayers(os.Stdout, *h)
	return nil
}
