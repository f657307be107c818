package model

import (
	"encoding/json"
	"fmt"
)

// Leaderboard holds five independently ranked categories. Each slice is
// already ordered by the upstream source.
type Leaderboard struct {
	WinRate []LeaderboardEntry `json:"winRate"`
	KDA     []LeaderboardEntry `json:"kda"`
	Damage  []LeaderboardEntry `json:"damage"`
	Healing []LeaderboardEntry `json:"healing"`
	Blocked []LeaderboardEntry `json:"blocked"`
}

// LeaderboardEntry is one ranked row. Which auxiliary fields are set depends on
// the category: Games for win rate, Kills/Deaths/Assists for KDA, Total for the
// per-minute rate categories. Fields the decoder does not recognise are kept in
// Extra and written back unchanged.
type LeaderboardEntry struct {
	Name    string
	Value   float64
	Games   *int
	Kills   *int
	Deaths  *int
	Assists *int
	Total   *float64
	Extra   map[string]json.RawMessage
}

var leaderboardKnownKeys = map[string]bool{
	"name": true, "value": true, "games": true,
	"kills": true, "deaths": true, "assists": true, "total": true,
}

func (e *LeaderboardEntry) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var out LeaderboardEntry
	fields := []struct {
		key string
		dst any
	}{
		{"name", &out.Name},
		{"value", &out.Value},
		{"games", &out.Games},
		{"kills", &out.Kills},
		{"deaths", &out.Deaths},
		{"assists", &out.Assists},
		{"total", &out.Total},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return fmt.Errorf("leaderboard entry field %q: %w", f.key, err)
		}
	}
	for k, v := range raw {
		if leaderboardKnownKeys[k] {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = v
	}
	*e = out
	return nil
}

func (e LeaderboardEntry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 2+len(e.Extra))
	for k, v := range e.Extra {
		m[k] = v
	}
	m["name"] = e.Name
	m["value"] = e.Value
	if e.Games != nil {
		m["games"] = *e.Games
	}
	if e.Kills != nil {
		m["kills"] = *e.Kills
	}
	if e.Deaths != nil {
		m["deaths"] = *e.Deaths
	}
	if e.Assists != nil {
		m["assists"] = *e.Assists
	}
	if e.Total != nil {
		m["total"] = *e.Total
	}
	return json.Marshal(m)
}
