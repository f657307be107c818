// Package aggregator provides the squad-level read views over a snapshot:
// summary, role coverage and how games split across roles.
package aggregator

import (
	"github.com/pable/rivalstats/internal/model"
)

// SquadSummary returns the upstream squad totals unchanged.
func SquadSummary(snap *model.Snapshot) model.SquadSummary {
	return snap.SquadSummary
}

// RoleCoverage returns the upstream role coverage unchanged.
func RoleCoverage(snap *model.Snapshot) model.RoleCoverage {
	return snap.RoleCoverage
}

// RoleGames is the number of games played on heroes of one role.
type RoleGames struct {
	Role  model.Role `json:"role"`
	Games int        `json:"games"`
}

// RoleDistribution sums TotalGames per role across hero records. The result
// always has one entry per role in model.Roles order; heroes with an unknown
// role are not counted anywhere.
func RoleDistribution(heroes []model.HeroAggregate) []RoleGames {
	totals := make(map[model.Role]int, len(model.Roles))
	for _, h := range heroes {
		r, ok := h.Role.Role()
		if !ok {
			continue
		}
		totals[r] += h.TotalGames
	}

	out := make([]RoleGames, len(model.Roles))
	for i, r := range model.Roles {
		out[i] = RoleGames{Role: r, Games: totals[r]}
	}
	return out
}

// RoleShare is one role's coverage expressed against the whole squad.
type RoleShare struct {
	Role    model.Role `json:"role"`
	Count   int        `json:"count"`
	Percent float64    `json:"percent"`
	Players []string   `json:"players"`
}

// CoverageShare reports, per role, how many of playerCount players can fill
// it. Roles missing from coverage read as zero.
func CoverageShare(coverage model.RoleCoverage, playerCount int) []RoleShare {
	out := make([]RoleShare, len(model.Roles))
	for i, r := range model.Roles {
		e := coverage[r]
		pct := 0.0
		if playerCount > 0 {
			pct = float64(e.Count) / float64(playerCount) * 100
		}
		out[i] = RoleShare{Role: r, Count: e.Count, Percent: pct, Players: e.Players}
	}
	return out
}

// Recommendation summarises which roles a player should queue for.
type Recommendation struct {
	Player         string      `json:"player"`
	Primary        *model.Role `json:"primary"`
	PrimaryScore   float64     `json:"primaryScore"`
	Secondary      *model.Role `json:"secondary"`
	SecondaryScore float64     `json:"secondaryScore"`
	BestHero       string      `json:"bestHero,omitempty"`
	BestHeroRole   string      `json:"bestHeroRole,omitempty"`
}

// RoleRecommendations reads each player's upstream primary/secondary role and
// role score, plus their top-ranked hero. Players keep snapshot order.
func RoleRecommendations(players []model.Player) []Recommendation {
	out := make([]Recommendation, 0, len(players))
	for _, p := range players {
		rec := Recommendation{
			Player:    p.Name,
			Primary:   p.PrimaryRole,
			Secondary: p.SecondaryRole,
		}
		if p.PrimaryRole != nil {
			rec.PrimaryScore = p.RoleScores[*p.PrimaryRole]
		}
		if p.SecondaryRole != nil {
			rec.SecondaryScore = p.RoleScores[*p.SecondaryRole]
		}
		if len(p.TopHeroes) > 0 {
			rec.BestHero = p.TopHeroes[0].Name
			rec.BestHeroRole = string(p.TopHeroes[0].Role)
		}
		out = append(out, rec)
	}
	return out
}
