package model

import (
	"errors"
	"fmt"
)

// Role is one of the three playable roles a squad slot can be assigned to.
type Role string

const (
	Vanguard   Role = "vanguard"
	Duelist    Role = "duelist"
	Strategist Role = "strategist"
)

// Roles lists every Role in display order. Coverage, distribution, grouping and
// quota checks all iterate in this order.
var Roles = []Role{Vanguard, Duelist, Strategist}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case Vanguard, Duelist, Strategist:
		return true
	}
	return false
}

// Title returns the capitalised role name used in table headers.
func (r Role) Title() string {
	switch r {
	case Vanguard:
		return "Vanguard"
	case Duelist:
		return "Duelist"
	case Strategist:
		return "Strategist"
	default:
		return string(r)
	}
}

// UnmarshalText rejects anything outside the enumeration, so a decoded
// Assignment or role-keyed map can never carry an unknown role.
func (r *Role) UnmarshalText(b []byte) error {
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRole converts a wire string into a Role.
func ParseRole(s string) (Role, error) {
	if !Role(s).Valid() {
		return "", &InvalidRoleError{Value: s}
	}
	return Role(s), nil
}

// HeroRole is the role tag carried by hero records. Unlike Role it admits
// "unknown" for heroes missing from the upstream role table.
type HeroRole string

const HeroUnknown HeroRole = "unknown"

// Role returns the hero's playable role, or false for unknown heroes.
func (h HeroRole) Role() (Role, bool) {
	r := Role(h)
	return r, r.Valid()
}

func (h *HeroRole) UnmarshalText(b []byte) error {
	s := string(b)
	if s != string(HeroUnknown) && !Role(s).Valid() {
		return &InvalidRoleError{Value: s}
	}
	*h = HeroRole(s)
	return nil
}

// InvalidRoleError reports a role string outside the fixed enumeration.
type InvalidRoleError struct {
	Value string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid role %q", e.Value)
}

// ---- Snapshot ----

// Snapshot is the root document produced upstream. It is decoded once and
// treated as read-only afterwards.
type Snapshot struct {
	SquadSummary SquadSummary    `json:"squadSummary"`
	Players      []Player        `json:"players"`
	Compositions []Composition   `json:"compositions"`
	HeroStats    []HeroAggregate `json:"heroStats"`
	RoleCoverage RoleCoverage    `json:"roleCoverage"`
	Leaderboard  Leaderboard     `json:"leaderboard"`
}

type SquadSummary struct {
	TotalGames  int     `json:"totalGames"`
	TotalWins   int     `json:"totalWins"`
	WinRate     float64 `json:"winRate"` // 0–100, one decimal
	TotalMVPs   int     `json:"totalMvps"`
	TotalSVPs   int     `json:"totalSvps"`
	PlayerCount int     `json:"playerCount"`
}

// Player is one squad member's profile. TopHeroes arrives ranked by
// performance score and must be displayed in that order.
type Player struct {
	Name          string                 `json:"name"`
	TotalGames    int                    `json:"totalGames"`
	TotalWins     int                    `json:"totalWins"`
	WinRate       float64                `json:"winRate"`
	PrimaryRole   *Role                  `json:"primaryRole"`
	SecondaryRole *Role                  `json:"secondaryRole"`
	RoleScores    map[Role]float64       `json:"roleScores"`
	TopHeroes     []HeroStat             `json:"topHeroes"`
	HeroBreakdown map[Role][]HeroSummary `json:"heroBreakdown"`
}

// HeroStat is a player's record on a single hero.
type HeroStat struct {
	Name             string   `json:"name"`
	Role             HeroRole `json:"role"`
	GamesPlayed      int      `json:"gamesPlayed"`
	WinRate          float64  `json:"winRate"`
	KDA              float64  `json:"kda"`
	PerformanceScore float64  `json:"performanceScore"`
	AvgDamage        float64  `json:"avgDamage"`
	AvgHealing       float64  `json:"avgHealing"`
	AvgBlocked       float64  `json:"avgBlocked"`
	MVPCount         int      `json:"mvpCount"`
	SVPCount         int      `json:"svpCount"`
}

// HeroSummary is a row of a player's per-role hero breakdown.
type HeroSummary struct {
	Name             string  `json:"name"`
	GamesPlayed      int     `json:"gamesPlayed"`
	WinRate          float64 `json:"winRate"`
	KDA              float64 `json:"kda"`
	PerformanceScore float64 `json:"performanceScore"`
}

// HeroAggregate holds squad-wide stats for one hero. Players is ranked by
// performance score upstream.
type HeroAggregate struct {
	Name       string       `json:"name"`
	Role       HeroRole     `json:"role"`
	TotalGames int          `json:"totalGames"`
	TotalWins  int          `json:"totalWins"`
	WinRate    float64      `json:"winRate"`
	Players    []HeroPlayer `json:"players"`
}

type HeroPlayer struct {
	Name             string  `json:"name"`
	GamesPlayed      int     `json:"gamesPlayed"`
	WinRate          float64 `json:"winRate"`
	PerformanceScore float64 `json:"performanceScore"`
}

// Composition is a suggested line-up. It may hold fewer than six assignments;
// the open slot is left for a random teammate.
type Composition struct {
	Score       float64      `json:"score"`
	Assignments []Assignment `json:"assignments"`
}

type Assignment struct {
	Player string `json:"player"`
	Hero   string `json:"hero"`
	Role   Role   `json:"role"`
}

// RoleCoverage maps each role to the players able to fill it.
type RoleCoverage map[Role]CoverageEntry

type CoverageEntry struct {
	Count   int      `json:"count"`
	Players []string `json:"players"`
}

// ---- Validation ----

// Validate checks the invariants upstream promises. It never modifies the
// snapshot; all violations are returned joined.
func (s *Snapshot) Validate() error {
	var errs []error
	if s.SquadSummary.TotalWins > s.SquadSummary.TotalGames {
		errs = append(errs, fmt.Errorf("squad summary: totalWins %d > totalGames %d",
			s.SquadSummary.TotalWins, s.SquadSummary.TotalGames))
	}

	seen := make(map[string]bool, len(s.Players))
	for _, p := range s.Players {
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("player %q: duplicate name", p.Name))
		}
		seen[p.Name] = true
		if p.TotalWins > p.TotalGames {
			errs = append(errs, fmt.Errorf("player %q: totalWins %d > totalGames %d",
				p.Name, p.TotalWins, p.TotalGames))
		}
	}

	for i, c := range s.Compositions {
		inComp := make(map[string]bool, len(c.Assignments))
		for _, a := range c.Assignments {
			if inComp[a.Player] {
				errs = append(errs, fmt.Errorf("composition %d: player %q assigned twice", i, a.Player))
			}
			inComp[a.Player] = true
		}
	}
	return errors.Join(errs...)
}
