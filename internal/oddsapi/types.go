package oddsapi

import (
	"time"

	"github.com/Aidan-usc/Game-Line/internal/models"
)

// Provider market keys.
const (
	MarketH2H    = "h2h"
	MarketTotals = "totals"
)

// MarketKey returns the provider key for a domain market.
func MarketKey(m models.Market) string {
	switch m {
	case models.Moneyline:
		return MarketH2H
	case models.Totals:
		return MarketTotals
	}
	return string(m)
}

// Event is one game as returned by the odds endpoint.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key,omitempty"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one sportsbook's markets for an event.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title,omitempty"`
	Markets []Market `json:"markets"`
}

// Market is one market (h2h or totals) offered by a bookmaker.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one priced side of a market. Price and Point decode leniently:
// numeric strings are accepted and anything non-finite becomes null.
type Outcome struct {
	Name  string        `json:"name"`
	Price models.Number `json:"price"`
	Point models.Number `json:"point"`
}

// Quota reports the request budget headers returned by the provider.
type Quota struct {
	Remaining string
	Used      string
	Last      string
}
