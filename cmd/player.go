package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/report"
	"github.com/pable/rivalstats/internal/snapshot"
)

var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Show one player's profile",
	Long: `Show a player's totals, role scores, top heroes (in upstream rank order)
and per-role hero breakdown. Names match case-insensitively and tolerate
small typos.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	_, snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	name := strings.Join(args, " ")
	p, ok := snapshot.FindPlayer(snap, name)
	if !ok {
		return fmt.Errorf("no player matching %q", name)
	}
	report.PrintPlayerCard(os.Stdout, *p)
	return nil
}
