package ingest

import (
	"sort"
	"strings"

	"github.com/Aidan-usc/Game-Line/internal/league"
	"github.com/Aidan-usc/Game-Line/internal/models"
	"github.com/Aidan-usc/Game-Line/internal/names"
	"github.com/Aidan-usc/Game-Line/internal/oddsapi"
)

var (
	overKey  = names.Normalize("over")
	underKey = names.Normalize("under")
)

// MoneylineQuote is a validated h2h quote.
type MoneylineQuote struct {
	Bookmaker string
	Away      models.Number
	Home      models.Number
}

// TotalsQuote is a validated totals quote.
type TotalsQuote struct {
	Bookmaker string
	Line      models.Number
	Over      models.Number
	Under     models.Number
}

// Normalizer converts provider events into GameEvents.
type Normalizer struct {
	registry *league.Registry
	resolver *names.Resolver
	selector *Selector
}

// NewNormalizer creates a normalizer using the registry's alias tables and the given selector.
func NewNormalizer(registry *league.Registry, selector *Selector) *Normalizer {
	return &Normalizer{
		registry: registry,
		resolver: registry.Resolver(),
		selector: selector,
	}
}

// Identity resolves a provider team name within sportKey.
func (n *Normalizer) Identity(sportKey, name string) models.TeamIdentity {
	return models.TeamIdentity{
		Name: name,
		Key:  n.resolver.Resolve(sportKey, name),
		Logo: logoPath(sportKey, name),
	}
}

// Normalize converts one provider event. Missing or malformed markets leave
// the corresponding prices null.
func (n *Normalizer) Normalize(raw oddsapi.Event, sportKey string) models.GameEvent {
	away := n.Identity(sportKey, raw.AwayTeam)
	home := n.Identity(sportKey, raw.HomeTeam)

	quotes := Quotes(raw.Bookmakers)

	var ml MoneylineQuote
	if q, ok := n.selector.Select(quotes, models.Moneyline); ok {
		ml = n.moneyline(q, sportKey, away.Key, home.Key)
	}
	var tot TotalsQuote
	if q, ok := n.selector.Select(quotes, models.Totals); ok {
		tot = totals(q)
	}

	return models.GameEvent{
		ID:        raw.ID,
		SportKey:  sportKey,
		StartTime: raw.CommenceTime,
		Away:      away,
		Home:      home,
		Location:  n.location(sportKey, raw.HomeTeam),
		Moneyline: models.MoneylinePrices{Away: ml.Away, Home: ml.Home},
		Totals:    models.TotalsPrices{Line: tot.Line, Over: tot.Over, Under: tot.Under},
	}
}

// NormalizeAll converts events and orders them by start time, then ID.
func (n *Normalizer) NormalizeAll(raw []oddsapi.Event, sportKey string) []models.GameEvent {
	games := make([]models.GameEvent, 0, len(raw))
	for _, e := range raw {
		games = append(games, n.Normalize(e, sportKey))
	}
	SortByStart(games)
	return games
}

// SortByStart orders games by start time, then ID.
func SortByStart(games []models.GameEvent) {
	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].StartTime.Equal(games[j].StartTime) {
			return games[i].StartTime.Before(games[j].StartTime)
		}
		return games[i].ID < games[j].ID
	})
}

func (n *Normalizer) moneyline(q MarketQuote, sportKey, awayKey, homeKey string) MoneylineQuote {
	out := MoneylineQuote{Bookmaker: q.BookmakerID}
	foundAway, foundHome := false, false
	for _, o := range q.Outcomes {
		key := n.resolver.Resolve(sportKey, o.Name)
		switch {
		case !foundAway && key == awayKey:
			out.Away, foundAway = o.Price, true
		case !foundHome && key == homeKey:
			out.Home, foundHome = o.Price, true
		}
	}
	return out
}

func totals(q MarketQuote) TotalsQuote {
	out := TotalsQuote{Bookmaker: q.BookmakerID}
	var over, under *oddsapi.Outcome
	for i := range q.Outcomes {
		switch names.Normalize(q.Outcomes[i].Name) {
		case overKey:
			if over == nil {
				over = &q.Outcomes[i]
			}
		case underKey:
			if under == nil {
				under = &q.Outcomes[i]
			}
		}
	}
	if over != nil {
		out.Over = over.Price
		out.Line = over.Point
	}
	if under != nil {
		out.Under = under.Price
		if !out.Line.Valid() {
			out.Line = under.Point
		}
	}
	return out
}

// location derives the home city by dropping the team nickname.
func (n *Normalizer) location(sportKey, homeTeam string) string {
	if s, ok := n.registry.Get(sportKey); ok && s.HideLocation {
		return ""
	}
	words := strings.Fields(homeTeam)
	if len(words) <= 1 {
		return strings.TrimSpace(homeTeam)
	}
	return strings.Join(words[:len(words)-1], " ")
}

func logoPath(sportKey, team string) string {
	slug := names.Slug(team)
	if slug == "" {
		return ""
	}
	return sportKey + "/" + slug + ".png"
}
