// Package composition checks suggested line-ups against the 2-2-2 role quota.
package composition

import (
	"github.com/pable/rivalstats/internal/model"
)

// IdealQuota is the standard six-player split: two of each role.
var IdealQuota = map[model.Role]int{
	model.Vanguard:   2,
	model.Duelist:    2,
	model.Strategist: 2,
}

// GroupByRole splits the assignments into the three role buckets, keeping
// encounter order. Every bucket is present even when empty.
func GroupByRole(c model.Composition) (map[model.Role][]model.Assignment, error) {
	groups := make(map[model.Role][]model.Assignment, len(model.Roles))
	for _, r := range model.Roles {
		groups[r] = []model.Assignment{}
	}
	for _, a := range c.Assignments {
		if !a.Role.Valid() {
			return nil, &model.InvalidRoleError{Value: string(a.Role)}
		}
		groups[a.Role] = append(groups[a.Role], a)
	}
	return groups, nil
}

// RoleCounts returns how many assignments each role has. Assignments with a
// role outside the enumeration are ignored.
func RoleCounts(c model.Composition) map[model.Role]int {
	counts := make(map[model.Role]int, len(model.Roles))
	for _, r := range model.Roles {
		counts[r] = 0
	}
	for _, a := range c.Assignments {
		if a.Role.Valid() {
			counts[a.Role]++
		}
	}
	return counts
}

// MissingRole reports the first role, in vanguard, duelist, strategist order,
// that is below quota. Only one role is ever reported: the open slot belongs
// to a single random teammate.
func MissingRole(c model.Composition) (model.Role, bool) {
	counts := RoleCounts(c)
	for _, r := range model.Roles {
		if counts[r] < IdealQuota[r] {
			return r, true
		}
	}
	return "", false
}

// Select returns the composition at index, or false when index is out of
// range.
func Select(comps []model.Composition, index int) (*model.Composition, bool) {
	if index < 0 || index >= len(comps) {
		return nil, false
	}
	return &comps[index], true
}
