// Package models defines the core domain entities: games, teams, and parlay legs.
package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Market is the kind of wager offered on a game.
type Market string

const (
	Moneyline Market = "moneyline"
	Totals    Market = "totals"
)

// Selection is the side of a market a leg backs.
type Selection string

const (
	Away  Selection = "away"
	Home  Selection = "home"
	Over  Selection = "over"
	Under Selection = "under"
)

// Valid reports whether s is a selection offered by market m.
func (s Selection) Valid(m Market) bool {
	switch m {
	case Moneyline:
		return s == Away || s == Home
	case Totals:
		return s == Over || s == Under
	}
	return false
}

// TeamIdentity pairs a provider display name with its canonical comparison key.
type TeamIdentity struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Logo string `json:"logo,omitempty"`
}

// MoneylinePrices holds the selected moneyline quote for a game.
type MoneylinePrices struct {
	Away Number `json:"away"`
	Home Number `json:"home"`
}

// TotalsPrices holds the selected totals quote for a game.
type TotalsPrices struct {
	Line  Number `json:"line"`
	Over  Number `json:"over"`
	Under Number `json:"under"`
}

// GameEvent is the flat, render-ready form of one provider event.
// Values are never mutated after construction; a refresh builds new ones.
type GameEvent struct {
	ID        string          `json:"id"`
	SportKey  string          `json:"sport_key"`
	StartTime time.Time       `json:"start_time"`
	Away      TeamIdentity    `json:"away"`
	Home      TeamIdentity    `json:"home"`
	Location  string          `json:"location,omitempty"`
	Moneyline MoneylinePrices `json:"moneyline"`
	Totals    TotalsPrices    `json:"totals"`
}

// Matchup returns the "Away @ Home" label.
func (g GameEvent) Matchup() string {
	return g.Away.Name + " @ " + g.Home.Name
}

// Price returns the American price for a selection, and the totals line for over/under.
func (g GameEvent) Price(sel Selection) (price Number, line Number) {
	switch sel {
	case Away:
		return g.Moneyline.Away, Null()
	case Home:
		return g.Moneyline.Home, Null()
	case Over:
		return g.Totals.Over, g.Totals.Line
	case Under:
		return g.Totals.Under, g.Totals.Line
	}
	return Null(), Null()
}

// Leg is one selected outcome on one game and market.
type Leg struct {
	EventID      string    `json:"event_id"`
	Market       Market    `json:"market"`
	Selection    Selection `json:"selection"`
	Line         Number    `json:"line"`
	AmericanOdds float64   `json:"american_odds"`
	Label        string    `json:"label,omitempty"`
	Matchup      string    `json:"matchup,omitempty"`
}

// Key identifies the (event, market) slot a leg occupies in a slip.
func (l Leg) Key() string {
	return l.EventID + "_" + string(l.Market)
}

// MaxLegOdds bounds the American price of a single leg.
const MaxLegOdds = 100000

// Validate checks leg field constraints.
func (l Leg) Validate() error {
	if l.EventID == "" {
		return errors.New("event ID must not be empty")
	}
	if l.Market != Moneyline && l.Market != Totals {
		return fmt.Errorf("unknown market %q", l.Market)
	}
	if !l.Selection.Valid(l.Market) {
		return fmt.Errorf("selection %q is not offered by market %q", l.Selection, l.Market)
	}
	if !Some(l.AmericanOdds).Valid() {
		return errors.New("american odds must be a finite number")
	}
	if l.AmericanOdds > -100 && l.AmericanOdds < 100 {
		return errors.New("american odds must be <= -100 or >= +100")
	}
	if math.Abs(l.AmericanOdds) > MaxLegOdds {
		return fmt.Errorf("american odds must be within +/-%d", MaxLegOdds)
	}
	return nil
}

// LegFor builds a leg for the given selection on g. It fails when the game has
// no price for that selection.
func LegFor(g GameEvent, sel Selection) (Leg, error) {
	market := Moneyline
	if sel == Over || sel == Under {
		market = Totals
	}
	if !sel.Valid(market) {
		return Leg{}, fmt.Errorf("unknown selection %q", sel)
	}
	price, line := g.Price(sel)
	odds, ok := price.Get()
	if !ok {
		return Leg{}, fmt.Errorf("no %s price for event %s", sel, g.ID)
	}

	var label string
	switch sel {
	case Away:
		label = g.Away.Name + " ML"
	case Home:
		label = g.Home.Name + " ML"
	case Over:
		label = "Over"
	case Under:
		label = "Under"
	}
	if line.Valid() {
		label += " " + line.String()
	}

	leg := Leg{
		EventID:      g.ID,
		Market:       market,
		Selection:    sel,
		Line:         line,
		AmericanOdds: odds,
		Label:        label,
		Matchup:      g.Matchup(),
	}
	return leg, leg.Validate()
}
