package herofilter

import (
	"fmt"
	"testing"

	"github.com/pable/rivalstats/internal/model"
	"github.com/pable/rivalstats/internal/selection"
)

func heroes() []model.HeroAggregate {
	return []model.HeroAggregate{
		{Name: "Luna Snow", Role: "strategist", TotalGames: 25},
		{Name: "Psylocke", Role: "duelist", TotalGames: 40},
		{Name: "Ultron", Role: "unknown", TotalGames: 50},
		{Name: "Magneto", Role: "vanguard", TotalGames: 25},
		{Name: "Hela", Role: "duelist", TotalGames: 12},
	}
}

func names(hs []model.HeroAggregate) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Name
	}
	return out
}

func TestFilterByActiveRoles(t *testing.T) {
	got := names(FilterByActiveRoles(heroes(), selection.AllRoles()))
	if fmt.Sprint(got) != "[Luna Snow Psylocke Magneto Hela]" {
		t.Errorf("all roles: unexpected %v", got)
	}

	got = names(FilterByActiveRoles(heroes(), selection.RoleSet{model.Duelist: true}))
	if fmt.Sprint(got) != "[Psylocke Hela]" {
		t.Errorf("duelist only: unexpected %v", got)
	}

	if got := FilterByActiveRoles(heroes(), selection.RoleSet{}); len(got) != 0 {
		t.Errorf("no roles: expected empty, got %v", names(got))
	}
}

func TestSortByGamesDescending_Stable(t *testing.T) {
	in := heroes()
	got := names(SortByGamesDescending(in))
	if fmt.Sprint(got) != "[Ultron Psylocke Luna Snow Magneto Hela]" {
		t.Errorf("unexpected order %v", got)
	}
	if in[0].Name != "Luna Snow" {
		t.Error("input slice must not be reordered")
	}
}

func TestTopN(t *testing.T) {
	hs := heroes()
	if got := TopN(hs, 2); len(got) != 2 || got[0].Name != "Luna Snow" {
		t.Errorf("TopN(2) = %v", names(got))
	}
	if got := TopN(hs, 99); len(got) != len(hs) {
		t.Errorf("TopN beyond length should return all, got %d", len(got))
	}
	if got := TopN(hs, 0); len(got) != 0 {
		t.Errorf("TopN(0) should be empty, got %d", len(got))
	}
}

func TestChartHeroes(t *testing.T) {
	var many []model.HeroAggregate
	for i := 0; i < 15; i++ {
		many = append(many, model.HeroAggregate{
			Name:       fmt.Sprintf("hero%02d", i),
			Role:       "duelist",
			TotalGames: i,
		})
	}
	got := ChartHeroes(many, selection.AllRoles())
	if len(got) != ChartSize {
		t.Fatalf("expected %d heroes, got %d", ChartSize, len(got))
	}
	if got[0].Name != "hero14" || got[9].Name != "hero05" {
		t.Errorf("unexpected chart range %s..%s", got[0].Name, got[9].Name)
	}
}

func TestBestPlayerForHero(t *testing.T) {
	h := model.HeroAggregate{Name: "Psylocke", Players: []model.HeroPlayer{
		{Name: "Kestrel", PerformanceScore: 58},
		{Name: "Moth", PerformanceScore: 71},
	}}
	p, ok := BestPlayerForHero(h)
	if !ok || p.Name != "Kestrel" || p.PerformanceScore != 58 {
		t.Errorf("expected first listed player Kestrel (58), got %+v %v", p, ok)
	}
	if _, ok := BestPlayerForHero(model.HeroAggregate{Name: "Blade"}); ok {
		t.Error("expected no best player for hero without players")
	}
}
