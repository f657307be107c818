package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a SQL query against the loaded snapshot",
	Long: `Load the snapshot into a throwaway in-memory SQLite database and print
the query result as a table. Nothing is written to disk.

Schema overview:
  squad_summary(total_games, total_wins, win_rate, total_mvps, total_svps, player_count)
  players(name, total_games, total_wins, win_rate, primary_role, secondary_role,
    vanguard_score, duelist_score, strategist_score)
  player_heroes(player, hero, role, top_rank, games_played, win_rate, kda,
    performance_score, avg_damage, avg_healing, avg_blocked, mvp_count, svp_count)
    (top_rank and the avg_/count columns are NULL for heroes outside the top list)
  heroes(name, role, total_games, total_wins, win_rate)
  hero_players(hero, player, rank, games_played, win_rate, performance_score)
  compositions(idx, score)
  assignments(composition_idx, slot, player, hero, role)
  leaderboard(category, rank, name, value)

Example: rivalstats sql "SELECT hero, games_played FROM player_heroes WHERE player = 'Moth'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	_, snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	db, err := storage.Open()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := db.LoadSnapshot(snap); err != nil {
		return err
	}

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
