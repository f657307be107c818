package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/rivalstats/internal/model"
	"github.com/pable/rivalstats/internal/ranking"
)

// LoadSnapshot writes every record of snap in one transaction.
func (db *DB) LoadSnapshot(snap *model.Snapshot) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	s := snap.SquadSummary
	if _, err := tx.Exec(`
		INSERT INTO squad_summary(total_games, total_wins, win_rate, total_mvps, total_svps, player_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.TotalGames, s.TotalWins, s.WinRate, s.TotalMVPs, s.TotalSVPs, s.PlayerCount,
	); err != nil {
		return fmt.Errorf("insert squad_summary: %w", err)
	}

	if err := insertPlayers(tx, snap.Players); err != nil {
		return err
	}
	if err := insertHeroes(tx, snap.HeroStats); err != nil {
		return err
	}
	if err := insertCompositions(tx, snap.Compositions); err != nil {
		return err
	}
	if err := insertLeaderboard(tx, snap.Leaderboard); err != nil {
		return err
	}
	return tx.Commit()
}

func insertPlayers(tx *sql.Tx, players []model.Player) error {
	pstmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO players(
			name, total_games, total_wins, win_rate, primary_role, secondary_role,
			vanguard_score, duelist_score, strategist_score
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer pstmt.Close()

	hstmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO player_heroes(player, hero, role, games_played, win_rate, kda, performance_score)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer hstmt.Close()

	// Top heroes carry the per-minute and MVP columns; they may also be
	// absent from the breakdown when their role is unknown.
	tstmt, err := tx.Prepare(`
		INSERT INTO player_heroes(
			player, hero, role, top_rank, games_played, win_rate, kda, performance_score,
			avg_damage, avg_healing, avg_blocked, mvp_count, svp_count
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(player, hero) DO UPDATE SET
			top_rank = excluded.top_rank,
			avg_damage = excluded.avg_damage,
			avg_healing = excluded.avg_healing,
			avg_blocked = excluded.avg_blocked,
			mvp_count = excluded.mvp_count,
			svp_count = excluded.svp_count`)
	if err != nil {
		return err
	}
	defer tstmt.Close()

	for _, p := range players {
		_, err := pstmt.Exec(
			p.Name, p.TotalGames, p.TotalWins, p.WinRate,
			rolePtrValue(p.PrimaryRole), rolePtrValue(p.SecondaryRole),
			p.RoleScores[model.Vanguard], p.RoleScores[model.Duelist], p.RoleScores[model.Strategist],
		)
		if err != nil {
			return fmt.Errorf("insert player %q: %w", p.Name, err)
		}
		for _, r := range model.Roles {
			for _, h := range p.HeroBreakdown[r] {
				if _, err := hstmt.Exec(p.Name, h.Name, string(r), h.GamesPlayed, h.WinRate, h.KDA, h.PerformanceScore); err != nil {
					return fmt.Errorf("insert player_heroes %q/%q: %w", p.Name, h.Name, err)
				}
			}
		}
		for i, h := range p.TopHeroes {
			_, err := tstmt.Exec(
				p.Name, h.Name, string(h.Role), i+1, h.GamesPlayed, h.WinRate, h.KDA, h.PerformanceScore,
				h.AvgDamage, h.AvgHealing, h.AvgBlocked, h.MVPCount, h.SVPCount,
			)
			if err != nil {
				return fmt.Errorf("insert top hero %q/%q: %w", p.Name, h.Name, err)
			}
		}
	}
	return nil
}

func insertHeroes(tx *sql.Tx, heroes []model.HeroAggregate) error {
	hstmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO heroes(name, role, total_games, total_wins, win_rate)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer hstmt.Close()

	pstmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO hero_players(hero, player, rank, games_played, win_rate, performance_score)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer pstmt.Close()

	for _, h := range heroes {
		if _, err := hstmt.Exec(h.Name, string(h.Role), h.TotalGames, h.TotalWins, h.WinRate); err != nil {
			return fmt.Errorf("insert hero %q: %w", h.Name, err)
		}
		for i, p := range h.Players {
			if _, err := pstmt.Exec(h.Name, p.Name, i+1, p.GamesPlayed, p.WinRate, p.PerformanceScore); err != nil {
				return fmt.Errorf("insert hero_players %q/%q: %w", h.Name, p.Name, err)
			}
		}
	}
	return nil
}

func insertCompositions(tx *sql.Tx, comps []model.Composition) error {
	cstmt, err := tx.Prepare(`INSERT INTO compositions(idx, score) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer cstmt.Close()

	astmt, err := tx.Prepare(`
		INSERT INTO assignments(composition_idx, slot, player, hero, role)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer astmt.Close()

	for i, c := range comps {
		if _, err := cstmt.Exec(i, c.Score); err != nil {
			return fmt.Errorf("insert composition %d: %w", i, err)
		}
		for slot, a := range c.Assignments {
			if _, err := astmt.Exec(i, slot, a.Player, a.Hero, string(a.Role)); err != nil {
				return fmt.Errorf("insert assignment %d/%d: %w", i, slot, err)
			}
		}
	}
	return nil
}

func insertLeaderboard(tx *sql.Tx, lb model.Leaderboard) error {
	stmt, err := tx.Prepare(`INSERT INTO leaderboard(category, rank, name, value) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, cat := range ranking.Categories {
		for i, e := range ranking.LeaderboardEntries(lb, cat) {
			if _, err := stmt.Exec(string(cat), i+1, e.Name, e.Value); err != nil {
				return fmt.Errorf("insert leaderboard %s/%d: %w", cat, i+1, err)
			}
		}
	}
	return nil
}

// QueryRaw runs an arbitrary query and returns column names and rows rendered
// as strings. NULL renders as an empty string.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = v.String
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// TableCounts returns the row count of every snapshot table, keyed by name.
func (db *DB) TableCounts() (map[string]int, error) {
	tables := []string{"players", "player_heroes", "heroes", "hero_players", "compositions", "assignments", "leaderboard"}
	out := make(map[string]int, len(tables))
	for _, t := range tables {
		var n int
		if err := db.conn.QueryRow("SELECT COUNT(1) FROM " + t).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", t, err)
		}
		out[t] = n
	}
	return out, nil
}

func rolePtrValue(r *model.Role) any {
	if r == nil {
		return nil
	}
	return string(*r)
}
