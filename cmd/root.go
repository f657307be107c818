package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/config"
	"github.com/pable/rivalstats/internal/logger"
	"github.com/pable/rivalstats/internal/model"
	"github.com/pable/rivalstats/internal/snapshot"
)

var (
	snapshotLocation string
	logLevel         string
	noColor          bool

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rivalstats",
	Short: "Marvel Rivals squad stats explorer",
	Long: `Load a squad stats snapshot (players, heroes, compositions, leaderboards)
and print ranked, filtered views of it, or serve them as a JSON API.

Settings are read from RIVALSTATS_* environment variables and an optional
.env file; flags take precedence.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&snapshotLocation, "snapshot", "", "snapshot file path or http(s) URL (default $RIVALSTATS_SNAPSHOT or stats.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default $RIVALSTATS_LOG_LEVEL or warn)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(compsCmd)
	rootCmd.AddCommand(heroesCmd)
	rootCmd.AddCommand(heroCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shellCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("snapshot") {
		c.Snapshot = snapshotLocation
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = logLevel
	}
	cfg = c
	log = logger.Console(cfg.LogLevel)
	if noColor {
		color.NoColor = true
	}
	return nil
}

// loadSnapshot builds a store for the configured source and performs its
// single load.
func loadSnapshot(ctx context.Context) (*snapshot.Store, *model.Snapshot, error) {
	src := snapshot.NewSource(cfg.Snapshot, cfg.HTTPTimeout)
	if hs, ok := src.(*snapshot.HTTPSource); ok {
		hs.Token = cfg.SnapshotToken
	}
	store := snapshot.NewStore(src, log)
	snap, err := store.Load(ctx)
	if err != nil {
		return store, nil, err
	}
	return store, snap, nil
}
