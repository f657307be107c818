package aggregator

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/pable/rivalstats/internal/model"
)

func hero(name string, role model.HeroRole, games int) model.HeroAggregate {
	return model.HeroAggregate{Name: name, Role: role, TotalGames: games}
}

func rolePtr(r model.Role) *model.Role { return &r }

func TestRoleDistribution_Empty(t *testing.T) {
	got := RoleDistribution(nil)
	want := []RoleGames{
		{Role: model.Vanguard, Games: 0},
		{Role: model.Duelist, Games: 0},
		{Role: model.Strategist, Games: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RoleDistribution(nil) = %v, want %v", got, want)
	}
}

func TestRoleDistribution_SumsAndSkipsUnknown(t *testing.T) {
	heroes := []model.HeroAggregate{
		hero("Psylocke", model.HeroRole(model.Duelist), 40),
		hero("Luna Snow", model.HeroRole(model.Strategist), 25),
		hero("Hela", model.HeroRole(model.Duelist), 12),
		hero("Ultron", model.HeroUnknown, 99),
		hero("Magneto", model.HeroRole(model.Vanguard), 8),
	}
	got := RoleDistribution(heroes)

	if len(got) != 3 {
		t.Fatalf("expected exactly 3 entries, got %d", len(got))
	}
	want := map[model.Role]int{model.Vanguard: 8, model.Duelist: 52, model.Strategist: 25}
	for i, r := range model.Roles {
		if got[i].Role != r {
			t.Errorf("entry %d: expected role %s, got %s", i, r, got[i].Role)
		}
		if got[i].Games != want[r] {
			t.Errorf("%s: expected %d games, got %d", r, want[r], got[i].Games)
		}
	}
}

// Loading a document and reading the passthrough views must give back exactly
// what the document said.
func TestPassthroughViewsMatchInput(t *testing.T) {
	doc := `{
	  "squadSummary": {"totalGames": 212, "totalWins": 109, "winRate": 51.4, "totalMvps": 17, "totalSvps": 23, "playerCount": 5},
	  "roleCoverage": {
	    "vanguard": {"count": 2, "players": ["Moth", "Rook"]},
	    "duelist": {"count": 3, "players": ["Kestrel", "Moth", "Wren"]},
	    "strategist": {"count": 1, "players": ["Ash"]}
	  }
	}`
	var snap model.Snapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	wantSummary := model.SquadSummary{TotalGames: 212, TotalWins: 109, WinRate: 51.4, TotalMVPs: 17, TotalSVPs: 23, PlayerCount: 5}
	if got := SquadSummary(&snap); got != wantSummary {
		t.Errorf("SquadSummary = %+v, want %+v", got, wantSummary)
	}

	wantCoverage := model.RoleCoverage{
		model.Vanguard:   {Count: 2, Players: []string{"Moth", "Rook"}},
		model.Duelist:    {Count: 3, Players: []string{"Kestrel", "Moth", "Wren"}},
		model.Strategist: {Count: 1, Players: []string{"Ash"}},
	}
	if got := RoleCoverage(&snap); !reflect.DeepEqual(got, wantCoverage) {
		t.Errorf("RoleCoverage = %+v, want %+v", got, wantCoverage)
	}
}

func TestCoverageShare(t *testing.T) {
	cov := model.RoleCoverage{
		model.Vanguard: {Count: 2, Players: []string{"Moth", "Rook"}},
		model.Duelist:  {Count: 5, Players: []string{"a", "b", "c", "d", "e"}},
	}
	got := CoverageShare(cov, 5)
	if got[0].Percent != 40 {
		t.Errorf("vanguard: expected 40%%, got %.1f", got[0].Percent)
	}
	if got[1].Percent != 100 {
		t.Errorf("duelist: expected 100%%, got %.1f", got[1].Percent)
	}
	if got[2].Count != 0 || got[2].Percent != 0 {
		t.Errorf("strategist: expected zero share, got %+v", got[2])
	}

	for _, s := range CoverageShare(cov, 0) {
		if s.Percent != 0 {
			t.Errorf("%s: expected 0%% with no players, got %.1f", s.Role, s.Percent)
		}
	}
}

func TestRoleRecommendations(t *testing.T) {
	players := []model.Player{
		{
			Name:          "Kestrel",
			PrimaryRole:   rolePtr(model.Duelist),
			SecondaryRole: rolePtr(model.Strategist),
			RoleScores:    map[model.Role]float64{model.Duelist: 58.2, model.Strategist: 41.0},
			TopHeroes:     []model.HeroStat{{Name: "Psylocke", Role: model.HeroRole(model.Duelist)}, {Name: "Mantis"}},
		},
		{Name: "Newcomer"},
	}
	got := RoleRecommendations(players)
	if len(got) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(got))
	}
	k := got[0]
	if *k.Primary != model.Duelist || k.PrimaryScore != 58.2 || k.SecondaryScore != 41.0 {
		t.Errorf("unexpected recommendation %+v", k)
	}
	if k.BestHero != "Psylocke" || k.BestHeroRole != "duelist" {
		t.Errorf("expected best hero Psylocke (duelist), got %s (%s)", k.BestHero, k.BestHeroRole)
	}
	n := got[1]
	if n.Primary != nil || n.Secondary != nil || n.BestHero != "" {
		t.Errorf("expected empty recommendation for player without roles, got %+v", n)
	}
}
