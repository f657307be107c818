// Package selection holds the caller-owned view state: which roles are
// filtered in, which composition is shown and which leaderboard tab is open.
// A State is not safe for concurrent mutation.
package selection

import (
	"strings"

	"github.com/pable/rivalstats/internal/model"
	"github.com/pable/rivalstats/internal/ranking"
)

// RoleSet is a set of enabled roles.
type RoleSet map[model.Role]bool

// AllRoles returns a set with every role enabled.
func AllRoles() RoleSet {
	rs := make(RoleSet, len(model.Roles))
	for _, r := range model.Roles {
		rs[r] = true
	}
	return rs
}

// ParseRoleSet reads a comma-separated role list. Blank input means all
// roles; unrecognised names are skipped.
func ParseRoleSet(s string) RoleSet {
	if strings.TrimSpace(s) == "" {
		return AllRoles()
	}
	rs := make(RoleSet, len(model.Roles))
	for _, part := range strings.Split(s, ",") {
		r, err := model.ParseRole(strings.ToLower(strings.TrimSpace(part)))
		if err != nil {
			continue
		}
		rs[r] = true
	}
	return rs
}

func (rs RoleSet) Has(r model.Role) bool { return rs[r] }

// List returns the enabled roles in model.Roles order.
func (rs RoleSet) List() []model.Role {
	var out []model.Role
	for _, r := range model.Roles {
		if rs[r] {
			out = append(out, r)
		}
	}
	return out
}

func (rs RoleSet) String() string {
	names := make([]string, 0, len(model.Roles))
	for _, r := range rs.List() {
		names = append(names, string(r))
	}
	return strings.Join(names, ",")
}

type State struct {
	ActiveRoles      RoleSet
	CompositionIndex int
	Category         ranking.Category
}

// Default is every role enabled, the first composition and the win-rate tab.
func Default() *State {
	return &State{
		ActiveRoles:      AllRoles(),
		CompositionIndex: 0,
		Category:         ranking.CategoryWinRate,
	}
}

// ToggleRole flips one role in the active filter. Invalid roles are ignored.
func (s *State) ToggleRole(r model.Role) {
	if !r.Valid() {
		return
	}
	if s.ActiveRoles == nil {
		s.ActiveRoles = AllRoles()
	}
	s.ActiveRoles[r] = !s.ActiveRoles[r]
}

// SetCompositionIndex stores the index as given. An index outside the
// composition list simply selects nothing.
func (s *State) SetCompositionIndex(i int) {
	s.CompositionIndex = i
}

// SetCategory switches leaderboard tab. Unknown names fall back to win rate.
func (s *State) SetCategory(name string) {
	c, err := ranking.ParseCategory(name)
	if err != nil {
		c = ranking.CategoryWinRate
	}
	s.Category = c
}
