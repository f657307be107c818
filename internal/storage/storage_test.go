package storage

import (
	"testing"

	"github.com/pable/rivalstats/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open()
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func rolePtr(r model.Role) *model.Role { return &r }

func intPtr(i int) *int { return &i }

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		SquadSummary: model.SquadSummary{TotalGames: 50, TotalWins: 27, WinRate: 54, TotalMVPs: 4, TotalSVPs: 6, PlayerCount: 2},
		Players: []model.Player{
			{
				Name: "Kestrel", TotalGames: 30, TotalWins: 18, WinRate: 60,
				PrimaryRole: rolePtr(model.Duelist),
				RoleScores:  map[model.Role]float64{model.Duelist: 57.5},
				TopHeroes: []model.HeroStat{
					{Name: "Psylocke", Role: "duelist", GamesPlayed: 20, WinRate: 65, KDA: 3.1, PerformanceScore: 60, AvgDamage: 1450, MVPCount: 2},
					{Name: "Ultron", Role: "unknown", GamesPlayed: 3, WinRate: 33.3, KDA: 1.2, PerformanceScore: 30},
				},
				HeroBreakdown: map[model.Role][]model.HeroSummary{
					model.Duelist: {
						{Name: "Psylocke", GamesPlayed: 20, WinRate: 65, KDA: 3.1, PerformanceScore: 60},
						{Name: "Hela", GamesPlayed: 7, WinRate: 42.9, KDA: 2.0, PerformanceScore: 41},
					},
				},
			},
			{Name: "Moth", TotalGames: 20, TotalWins: 9, WinRate: 45},
		},
		Compositions: []model.Composition{
			{Score: 240, Assignments: []model.Assignment{
				{Player: "Kestrel", Hero: "Psylocke", Role: model.Duelist},
				{Player: "Moth", Hero: "Groot", Role: model.Vanguard},
			}},
		},
		HeroStats: []model.HeroAggregate{
			{Name: "Psylocke", Role: "duelist", TotalGames: 20, TotalWins: 13, WinRate: 65,
				Players: []model.HeroPlayer{{Name: "Kestrel", GamesPlayed: 20, WinRate: 65, PerformanceScore: 60}}},
		},
		Leaderboard: model.Leaderboard{
			WinRate: []model.LeaderboardEntry{
				{Name: "Kestrel", Value: 60, Games: intPtr(30)},
				{Name: "Moth", Value: 45, Games: intPtr(20)},
			},
			KDA: []model.LeaderboardEntry{{Name: "Kestrel", Value: 2.8}},
		},
	}
}

func TestLoadSnapshotCounts(t *testing.T) {
	db := openMemDB(t)
	if err := db.LoadSnapshot(testSnapshot()); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	counts, err := db.TableCounts()
	if err != nil {
		t.Fatalf("TableCounts: %v", err)
	}
	want := map[string]int{
		"players":       2,
		"player_heroes": 3, // Psylocke merged, Hela, Ultron
		"heroes":        1,
		"hero_players":  1,
		"compositions":  1,
		"assignments":   2,
		"leaderboard":   3,
	}
	for table, n := range want {
		if counts[table] != n {
			t.Errorf("%s: expected %d rows, got %d", table, n, counts[table])
		}
	}
}

func TestTopHeroMergesIntoBreakdownRow(t *testing.T) {
	db := openMemDB(t)
	if err := db.LoadSnapshot(testSnapshot()); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	cols, rows, err := db.QueryRaw(`
		SELECT hero, top_rank, avg_damage FROM player_heroes
		WHERE player = 'Kestrel' ORDER BY games_played DESC`)
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %v", cols)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Psylocke" || rows[0][1] != "1" || rows[0][2] != "1450" {
		t.Errorf("unexpected Psylocke row %v", rows[0])
	}
	if rows[1][0] != "Hela" || rows[1][1] != "" {
		t.Errorf("expected Hela with NULL top_rank, got %v", rows[1])
	}
}

func TestLeaderboardKeepsUpstreamRank(t *testing.T) {
	db := openMemDB(t)
	if err := db.LoadSnapshot(testSnapshot()); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	_, rows, err := db.QueryRaw(`SELECT rank, name FROM leaderboard WHERE category = 'winRate' ORDER BY rank`)
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(rows) != 2 || rows[0][1] != "Kestrel" || rows[1][1] != "Moth" {
		t.Errorf("unexpected leaderboard rows %v", rows)
	}
}

func TestNullPrimaryRole(t *testing.T) {
	db := openMemDB(t)
	if err := db.LoadSnapshot(testSnapshot()); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	_, rows, err := db.QueryRaw(`SELECT name FROM players WHERE primary_role IS NULL`)
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "Moth" {
		t.Errorf("expected only Moth without a primary role, got %v", rows)
	}
}

func TestQueryRawError(t *testing.T) {
	db := openMemDB(t)
	if _, _, err := db.QueryRaw("SELECT * FROM no_such_table"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestEmptySnapshot(t *testing.T) {
	db := openMemDB(t)
	if err := db.LoadSnapshot(&model.Snapshot{}); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	counts, err := db.TableCounts()
	if err != nil {
		t.Fatalf("TableCounts: %v", err)
	}
	for table, n := range counts {
		if n != 0 {
			t.Errorf("%s: expected empty, got %d", table, n)
		}
	}
}
