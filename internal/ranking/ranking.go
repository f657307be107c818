// Package ranking orders players, classifies win rates into display bands and
// formats leaderboard values.
package ranking

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/pable/rivalstats/internal/model"
)

// Ranked is one row of a derived ranking.
type Ranked struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// WinRateRanking ranks players by win rate, highest first. Players with no
// games are left out. Equal win rates keep their snapshot order.
func WinRateRanking(players []model.Player) []Ranked {
	out := make([]Ranked, 0, len(players))
	for _, p := range players {
		if p.TotalGames == 0 {
			continue
		}
		out = append(out, Ranked{Name: p.Name, Value: p.WinRate})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// Band is the colour class a win rate is displayed with.
type Band int

const (
	Low Band = iota
	Mid
	High
)

func (b Band) String() string {
	switch b {
	case High:
		return "high"
	case Mid:
		return "mid"
	default:
		return "low"
	}
}

func (b Band) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// ClassifyRate puts a 0–100 win rate into its band. The same thresholds are
// used for players, heroes and leaderboard rows.
func ClassifyRate(rate float64) Band {
	switch {
	case rate >= 50:
		return High
	case rate >= 40:
		return Mid
	default:
		return Low
	}
}

// Medal is the positional highlight of a leaderboard row.
type Medal int

const (
	Default Medal = iota
	Gold
	Silver
	Bronze
)

func (m Medal) String() string {
	switch m {
	case Gold:
		return "gold"
	case Silver:
		return "silver"
	case Bronze:
		return "bronze"
	default:
		return ""
	}
}

func (m Medal) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// RankBand maps a zero-based position to its medal. It looks only at the
// position, never at the value.
func RankBand(index int) Medal {
	switch index {
	case 0:
		return Gold
	case 1:
		return Silver
	case 2:
		return Bronze
	default:
		return Default
	}
}

// ---- Leaderboard ----

// Category names one of the five leaderboards.
type Category string

const (
	CategoryWinRate Category = "winRate"
	CategoryKDA     Category = "kda"
	CategoryDamage  Category = "damage"
	CategoryHealing Category = "healing"
	CategoryBlocked Category = "blocked"
)

// Categories lists the leaderboards in tab order.
var Categories = []Category{CategoryWinRate, CategoryKDA, CategoryDamage, CategoryHealing, CategoryBlocked}

var ErrUnknownCategory = errors.New("unknown leaderboard category")

// ParseCategory accepts the wire name of a category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Title is the column heading for a category.
func (c Category) Title() string {
	switch c {
	case CategoryWinRate:
		return "Win Rate"
	case CategoryKDA:
		return "KDA"
	case CategoryDamage:
		return "Damage/min"
	case CategoryHealing:
		return "Healing/min"
	case CategoryBlocked:
		return "Blocked/min"
	default:
		return string(c)
	}
}

// LeaderboardEntries returns the entries of one category exactly as ranked
// upstream. An unknown category yields nil.
func LeaderboardEntries(lb model.Leaderboard, cat Category) []model.LeaderboardEntry {
	switch cat {
	case CategoryWinRate:
		return lb.WinRate
	case CategoryKDA:
		return lb.KDA
	case CategoryDamage:
		return lb.Damage
	case CategoryHealing:
		return lb.Healing
	case CategoryBlocked:
		return lb.Blocked
	default:
		return nil
	}
}

// FormatValue renders a leaderboard value for display: win rate as a whole
// percentage, KDA to two decimals, and per-minute rates abbreviated with a k
// suffix from 1000 up.
func FormatValue(cat Category, v float64) string {
	switch cat {
	case CategoryWinRate:
		return fmt.Sprintf("%.0f%%", v)
	case CategoryKDA:
		return fmt.Sprintf("%.2f", v)
	case CategoryDamage, CategoryHealing, CategoryBlocked:
		if v < 1000 {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return fmt.Sprintf("%.1fk", v/1000)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
