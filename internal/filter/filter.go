// Package filter provides the pure predicates that bound and narrow a game list.
//
// Every predicate is side-effect free so it can be evaluated on each
// request or timer tick without touching the cache.
package filter

import (
	"strings"
	"time"

	"github.com/Aidan-usc/Game-Line/internal/league"
	"github.com/Aidan-usc/Game-Line/internal/models"
)

// DefaultGrace is how long a game stays visible after its start time.
const DefaultGrace = 10 * time.Minute

// Predicate reports whether a game should be kept.
type Predicate func(models.GameEvent) bool

// State is the user-selected filter state for one board.
type State struct {
	Group string
	Query string
}

// Window keeps games starting no later than now + days. There is no lower
// bound; started games are handled by PostKickoff.
func Window(now time.Time, days int) Predicate {
	limit := now.AddDate(0, 0, days)
	return func(g models.GameEvent) bool {
		return !g.StartTime.After(limit)
	}
}

// PostKickoff drops games whose start time plus grace is before now.
func PostKickoff(now time.Time, grace time.Duration) Predicate {
	return func(g models.GameEvent) bool {
		return !g.StartTime.Add(grace).Before(now)
	}
}

// Membership keeps games where either team belongs to group. The "all"
// sentinel keeps everything.
func Membership(r *league.Registry, sportKey, group string) Predicate {
	if league.IsAll(group) {
		return keepAll
	}
	return func(g models.GameEvent) bool {
		return r.InGroup(sportKey, g.Away.Key, group) || r.InGroup(sportKey, g.Home.Key, group)
	}
}

// PreFilter applies the sport's allow-list: a game survives when at least one
// team is in an allowed group. Unrestricted sports keep everything.
func PreFilter(r *league.Registry, sportKey string) Predicate {
	if !r.Restricted(sportKey) {
		return keepAll
	}
	return func(g models.GameEvent) bool {
		return r.Allowed(sportKey, g.Away.Key) || r.Allowed(sportKey, g.Home.Key)
	}
}

// Text keeps games where q is a case-insensitive substring of either team's
// display name. A blank query keeps everything.
func Text(q string) Predicate {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return keepAll
	}
	return func(g models.GameEvent) bool {
		return strings.Contains(strings.ToLower(g.Away.Name), q) ||
			strings.Contains(strings.ToLower(g.Home.Name), q)
	}
}

// All composes predicates by logical AND.
func All(preds ...Predicate) Predicate {
	return func(g models.GameEvent) bool {
		for _, p := range preds {
			if !p(g) {
				return false
			}
		}
		return true
	}
}

// Apply returns the games that satisfy p, preserving order. The input is not modified.
func Apply(games []models.GameEvent, p Predicate) []models.GameEvent {
	out := make([]models.GameEvent, 0, len(games))
	for _, g := range games {
		if p(g) {
			out = append(out, g)
		}
	}
	return out
}

// Visible is the full composed filter for a board at time now: pre-filter,
// lookahead window, post-kickoff hide, membership and text.
func Visible(r *league.Registry, sport league.Sport, now time.Time, grace time.Duration, st State) Predicate {
	return All(
		PreFilter(r, sport.Key),
		Window(now, sport.LookaheadDays),
		PostKickoff(now, grace),
		Membership(r, sport.Key, st.Group),
		Text(st.Query),
	)
}

func keepAll(models.GameEvent) bool { return true }
