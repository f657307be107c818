package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pable/rivalstats/internal/aggregator"
	"github.com/pable/rivalstats/internal/composition"
	"github.com/pable/rivalstats/internal/herofilter"
	"github.com/pable/rivalstats/internal/model"
	"github.com/pable/rivalstats/internal/ranking"
	"github.com/pable/rivalstats/internal/selection"
	"github.com/pable/rivalstats/internal/snapshot"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.store.Current(); !ok {
		reason := "snapshot not loaded"
		if lerr := s.store.Err(); lerr != nil {
			reason = lerr.Reason
		}
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unavailable",
			"reason": reason,
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, aggregator.SquadSummary(snap))
}

func (s *Server) coverage(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"coverage": aggregator.RoleCoverage(snap),
		"shares":   aggregator.CoverageShare(snap.RoleCoverage, len(snap.Players)),
	})
}

func (s *Server) roleDistribution(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, aggregator.RoleDistribution(snap.HeroStats))
}

func (s *Server) recommendations(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, aggregator.RoleRecommendations(snap.Players))
}

type rankedRow struct {
	Name  string       `json:"name"`
	Value float64      `json:"value"`
	Band  ranking.Band `json:"band"`
	Medal string       `json:"medal,omitempty"`
}

func (s *Server) winRateRanking(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	ranked := ranking.WinRateRanking(snap.Players)
	rows := make([]rankedRow, len(ranked))
	for i, p := range ranked {
		rows[i] = rankedRow{
			Name:  p.Name,
			Value: p.Value,
			Band:  ranking.ClassifyRate(p.Value),
			Medal: ranking.RankBand(i).String(),
		}
	}
	s.respondJSON(w, http.StatusOK, rows)
}

type leaderboardRow struct {
	model.LeaderboardEntry
	Display string `json:"display"`
	Medal   string `json:"medal,omitempty"`
}

// MarshalJSON merges the display fields into the entry's own encoding so
// passthrough fields stay at the top level.
func (l leaderboardRow) MarshalJSON() ([]byte, error) {
	e := l.LeaderboardEntry
	extra := make(map[string]json.RawMessage, len(e.Extra)+2)
	for k, v := range e.Extra {
		extra[k] = v
	}
	var err error
	if extra["display"], err = json.Marshal(l.Display); err != nil {
		return nil, err
	}
	if l.Medal != "" {
		if extra["medal"], err = json.Marshal(l.Medal); err != nil {
			return nil, err
		}
	}
	e.Extra = extra
	return json.Marshal(e)
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	cat, err := ranking.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	entries := ranking.LeaderboardEntries(snap.Leaderboard, cat)
	rows := make([]leaderboardRow, len(entries))
	for i, e := range entries {
		rows[i] = leaderboardRow{
			LeaderboardEntry: e,
			Display:          ranking.FormatValue(cat, e.Value),
			Medal:            ranking.RankBand(i).String(),
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"category": cat,
		"title":    cat.Title(),
		"entries":  rows,
	})
}

type compositionView struct {
	Index       int                               `json:"index"`
	Score       float64                           `json:"score"`
	Assignments []model.Assignment                `json:"assignments"`
	Groups      map[model.Role][]model.Assignment `json:"groups,omitempty"`
	Counts      map[model.Role]int                `json:"counts"`
	MissingRole *model.Role                       `json:"missingRole"`
}

func newCompositionView(i int, c model.Composition) compositionView {
	v := compositionView{
		Index:       i,
		Score:       c.Score,
		Assignments: c.Assignments,
		Counts:      composition.RoleCounts(c),
	}
	if r, ok := composition.MissingRole(c); ok {
		v.MissingRole = &r
	}
	return v
}

func (s *Server) compositions(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	views := make([]compositionView, len(snap.Compositions))
	for i, c := range snap.Compositions {
		views[i] = newCompositionView(i, c)
	}
	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) composition(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "composition index must be an integer", err)
		return
	}
	c, found := composition.Select(snap.Compositions, idx)
	if !found {
		s.respondError(w, http.StatusNotFound, "no composition at index "+strconv.Itoa(idx), nil)
		return
	}
	groups, err := composition.GroupByRole(*c)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}
	v := newCompositionView(idx, *c)
	v.Groups = groups
	s.respondJSON(w, http.StatusOK, v)
}

type heroRow struct {
	model.HeroAggregate
	BestPlayer *model.HeroPlayer `json:"bestPlayer"`
}

// heroes applies ?roles=a,b (default all) and ?top=N (default the chart
// size; 0 or negative yields none).
func (s *Server) heroes(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	active := selection.ParseRoleSet(r.URL.Query().Get("roles"))
	top := parseIntParam(r, "top", herofilter.ChartSize)

	filtered := herofilter.FilterByActiveRoles(snap.HeroStats, active)
	list := herofilter.TopN(herofilter.SortByGamesDescending(filtered), top)

	rows := make([]heroRow, len(list))
	for i, h := range list {
		rows[i] = heroRow{HeroAggregate: h}
		if best, ok := herofilter.BestPlayerForHero(h); ok {
			rows[i].BestPlayer = &best
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"roles":  active.List(),
		"heroes": rows,
		"count":  len(rows),
	})
}

func (s *Server) hero(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	name, ok := s.nameParam(w, r)
	if !ok {
		return
	}
	h, found := snapshot.FindHero(snap, name)
	if !found {
		s.respondError(w, http.StatusNotFound, "hero not found", nil)
		return
	}
	s.respondJSON(w, http.StatusOK, h)
}

func (s *Server) heroBest(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	name, ok := s.nameParam(w, r)
	if !ok {
		return
	}
	h, found := snapshot.FindHero(snap, name)
	if !found {
		s.respondError(w, http.StatusNotFound, "hero not found", nil)
		return
	}
	best, ok := herofilter.BestPlayerForHero(*h)
	if !ok {
		s.respondError(w, http.StatusNotFound, "no player has played "+h.Name, nil)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"hero":   h.Name,
		"player": best,
	})
}

func (s *Server) player(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	name, ok := s.nameParam(w, r)
	if !ok {
		return
	}
	p, found := snapshot.FindPlayer(snap, name)
	if !found {
		s.respondError(w, http.StatusNotFound, "player not found", nil)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

// nameParam returns the decoded {name} segment. chi hands back the raw
// segment when the request path carries escapes such as %26.
func (s *Server) nameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed name in path", err)
		return "", false
	}
	return name, true
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
