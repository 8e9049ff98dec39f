// Package league holds the static per-sport configuration data: provider keys,
// lookahead windows, team alias tables and team-to-group membership tables.
package league

import (
	"sort"
	"strings"

	"github.com/Aidan-usc/Game-Line/internal/names"
)

// Sport describes one board (page) and how its teams are grouped.
type Sport struct {
	Key           string
	ProviderKey   string
	Title         string
	LookaheadDays int
	HideLocation  bool

	// GroupLabel names the grouping ("Division", "Conference").
	GroupLabel string
	// AllGroup is the filter option that matches every game.
	AllGroup string
	Groups   []string
	// Members maps team display names to a group in Groups.
	Members map[string]string
	// Aliases maps provider name variants to the display names used in Members.
	Aliases map[string]string
	// AllowedGroups restricts the sport's event universe to games where at
	// least one team belongs to one of these groups. Empty means no restriction.
	AllowedGroups []string
	// GroupAliases lets a selected group also match teams mapped to other groups.
	GroupAliases map[string][]string
}

// GroupOptions returns the filter options in display order, sentinel first.
func (s Sport) GroupOptions() []string {
	return append([]string{s.AllGroup}, s.Groups...)
}

// IsAll reports whether a filter value is the "all" sentinel (empty or starting with "all").
func IsAll(group string) bool {
	g := names.Normalize(group)
	return g == "" || g == "all" || strings.HasPrefix(g, "all ")
}

type compiled struct {
	sport   Sport
	members map[string]string   // canonical team key -> normalized group
	allowed map[string]bool     // normalized groups
	aliases map[string][]string // normalized selected group -> normalized matching groups
}

// Registry is the read-only lookup service over a set of sports.
type Registry struct {
	sports   map[string]*compiled
	order    []string
	resolver *names.Resolver
}

// NewRegistry compiles the given sports. Later duplicates of a key replace earlier ones.
func NewRegistry(sports ...Sport) *Registry {
	aliasTables := make(map[string]map[string]string, len(sports))
	for _, s := range sports {
		aliasTables[s.Key] = s.Aliases
	}
	r := &Registry{
		sports:   make(map[string]*compiled, len(sports)),
		resolver: names.NewResolver(aliasTables),
	}

	for _, s := range sports {
		c := &compiled{
			sport:   s,
			members: make(map[string]string, len(s.Members)),
			allowed: make(map[string]bool, len(s.AllowedGroups)),
			aliases: make(map[string][]string, len(s.GroupAliases)),
		}
		for team, group := range s.Members {
			c.members[r.resolver.Resolve(s.Key, team)] = names.Normalize(group)
		}
		for _, g := range s.AllowedGroups {
			c.allowed[names.Normalize(g)] = true
		}
		for sel, groups := range s.GroupAliases {
			key := names.Normalize(sel)
			for _, g := range groups {
				c.aliases[key] = append(c.aliases[key], names.Normalize(g))
			}
		}
		if _, exists := r.sports[s.Key]; !exists {
			r.order = append(r.order, s.Key)
		}
		r.sports[s.Key] = c
	}
	return r
}

// Default returns a registry over the built-in sports.
func Default() *Registry {
	return NewRegistry(Defaults()...)
}

// Resolver returns the alias resolver shared by every sport in the registry.
func (r *Registry) Resolver() *names.Resolver {
	return r.resolver
}

// Get returns the sport registered under key.
func (r *Registry) Get(key string) (Sport, bool) {
	c, ok := r.sports[key]
	if !ok {
		return Sport{}, false
	}
	return c.sport, true
}

// Sports returns all sports in registration order.
func (r *Registry) Sports() []Sport {
	out := make([]Sport, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.sports[k].sport)
	}
	return out
}

// Keys returns the sport keys sorted alphabetically.
func (r *Registry) Keys() []string {
	keys := append([]string(nil), r.order...)
	sort.Strings(keys)
	return keys
}

// GroupOf returns the normalized group of a canonical team key, or "" when unmapped.
func (r *Registry) GroupOf(sportKey, teamKey string) string {
	c, ok := r.sports[sportKey]
	if !ok {
		return ""
	}
	return c.members[teamKey]
}

// InGroup reports whether the team with canonical key teamKey belongs to group.
// The "all" sentinel always matches, and a sport without a membership table
// never filters anything out.
func (r *Registry) InGroup(sportKey, teamKey, group string) bool {
	if IsAll(group) {
		return true
	}
	c, ok := r.sports[sportKey]
	if !ok || len(c.members) == 0 {
		return true
	}
	got := c.members[teamKey]
	if got == "" {
		return false
	}
	want := names.Normalize(group)
	if got == want {
		return true
	}
	for _, alt := range c.aliases[want] {
		if got == alt {
			return true
		}
	}
	return false
}

// Restricted reports whether the sport applies an allow-list pre-filter.
func (r *Registry) Restricted(sportKey string) bool {
	c, ok := r.sports[sportKey]
	return ok && len(c.allowed) > 0
}

// Allowed reports whether a team passes the sport's allow-list. Sports
// without an allow-list admit every team.
func (r *Registry) Allowed(sportKey, teamKey string) bool {
	c, ok := r.sports[sportKey]
	if !ok || len(c.allowed) == 0 {
		return true
	}
	return c.allowed[c.members[teamKey]]
}
