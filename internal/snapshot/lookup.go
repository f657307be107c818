package snapshot

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pable/rivalstats/internal/model"
)

// minSimilarity is the normalised Levenshtein similarity a name must reach to
// count as a match when no exact match exists.
const minSimilarity = 0.6

// FindPlayer looks up a player by name, tolerating case and small typos.
func FindPlayer(snap *model.Snapshot, name string) (*model.Player, bool) {
	names := make([]string, len(snap.Players))
	for i, p := range snap.Players {
		names[i] = p.Name
	}
	i := bestMatch(names, name)
	if i < 0 {
		return nil, false
	}
	return &snap.Players[i], true
}

// FindHero looks up an aggregate hero record by name.
func FindHero(snap *model.Snapshot, name string) (*model.HeroAggregate, bool) {
	names := make([]string, len(snap.HeroStats))
	for i, h := range snap.HeroStats {
		names[i] = h.Name
	}
	i := bestMatch(names, name)
	if i < 0 {
		return nil, false
	}
	return &snap.HeroStats[i], true
}

func bestMatch(candidates []string, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1
	}
	for i, c := range candidates {
		if strings.ToLower(c) == q {
			return i
		}
	}

	best, bestSim := -1, 0.0
	for i, c := range candidates {
		lc := strings.ToLower(c)
		dist := fuzzy.LevenshteinDistance(q, lc)
		maxLen := float64(max(utf8.RuneCountInString(q), utf8.RuneCountInString(lc)))
		sim := 1 - float64(dist)/maxLen
		if sim >= minSimilarity && sim > bestSim {
			best, bestSim = i, sim
		}
	}
	return best
}
