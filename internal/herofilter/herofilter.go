// Package herofilter narrows and orders squad hero records for the hero chart
// and table.
package herofilter

import (
	"sort"

	"github.com/pable/rivalstats/internal/model"
	"github.com/pable/rivalstats/internal/selection"
)

// ChartSize is how many heroes the games-played chart shows.
const ChartSize = 10

// FilterByActiveRoles keeps heroes whose role is enabled. Heroes with an
// unknown role never pass.
func FilterByActiveRoles(heroes []model.HeroAggregate, active selection.RoleSet) []model.HeroAggregate {
	out := make([]model.HeroAggregate, 0, len(heroes))
	for _, h := range heroes {
		r, ok := h.Role.Role()
		if !ok || !active.Has(r) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// SortByGamesDescending returns a copy ordered by TotalGames, most first.
// Ties keep their input order.
func SortByGamesDescending(heroes []model.HeroAggregate) []model.HeroAggregate {
	out := make([]model.HeroAggregate, len(heroes))
	copy(out, heroes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalGames > out[j].TotalGames
	})
	return out
}

// TopN returns at most the first n heroes.
func TopN(heroes []model.HeroAggregate, n int) []model.HeroAggregate {
	if n <= 0 {
		return []model.HeroAggregate{}
	}
	if n > len(heroes) {
		n = len(heroes)
	}
	return heroes[:n]
}

// ChartHeroes is the chart pipeline: filter by role, sort by games, keep the
// top ChartSize.
func ChartHeroes(heroes []model.HeroAggregate, active selection.RoleSet) []model.HeroAggregate {
	return TopN(SortByGamesDescending(FilterByActiveRoles(heroes, active)), ChartSize)
}

// BestPlayerForHero returns the hero's top-ranked player as ordered upstream.
func BestPlayerForHero(h model.HeroAggregate) (model.HeroPlayer, bool) {
	if len(h.Players) == 0 {
		return model.HeroPlayer{}, false
	}
	return h.Players[0], true
}
