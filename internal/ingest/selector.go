// Package ingest turns raw provider events into GameEvent records.
package ingest

import (
	"strings"

	"github.com/Aidan-usc/Game-Line/internal/models"
	"github.com/Aidan-usc/Game-Line/internal/oddsapi"
)

// DefaultBookmakers is the built-in bookmaker priority order.
var DefaultBookmakers = []string{"draftkings", "fanduel", "betmgm", "caesars", "pointsbetus", "barstool"}

// minOutcomes is the number of outcomes a quote needs to be usable.
const minOutcomes = 2

// MarketQuote is one bookmaker's prices for one market on one event.
type MarketQuote struct {
	BookmakerID string
	Market      models.Market
	Outcomes    []oddsapi.Outcome
}

// Usable reports whether the quote carries enough outcomes to price both sides.
func (q MarketQuote) Usable() bool {
	return len(q.Outcomes) >= minOutcomes
}

// Quotes flattens provider bookmakers into quotes, in input order.
// Markets other than h2h and totals are dropped.
func Quotes(bookmakers []oddsapi.Bookmaker) []MarketQuote {
	var out []MarketQuote
	for _, b := range bookmakers {
		for _, m := range b.Markets {
			var market models.Market
			switch m.Key {
			case oddsapi.MarketH2H:
				market = models.Moneyline
			case oddsapi.MarketTotals:
				market = models.Totals
			default:
				continue
			}
			out = append(out, MarketQuote{BookmakerID: b.Key, Market: market, Outcomes: m.Outcomes})
		}
	}
	return out
}

// Selector picks the quote to display from competing bookmakers.
type Selector struct {
	priority []string
}

// NewSelector creates a selector over the given bookmaker priority order.
// An empty list falls back to DefaultBookmakers.
func NewSelector(priority []string) *Selector {
	if len(priority) == 0 {
		priority = DefaultBookmakers
	}
	p := make([]string, 0, len(priority))
	for _, b := range priority {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			p = append(p, b)
		}
	}
	return &Selector{priority: p}
}

// Priority returns a copy of the bookmaker priority order.
func (s *Selector) Priority() []string {
	return append([]string(nil), s.priority...)
}

// Select returns the quote for market from the first prioritized bookmaker
// with a usable quote, then from the first usable quote in input order.
// ok is false when nothing qualifies.
func (s *Selector) Select(quotes []MarketQuote, market models.Market) (quote MarketQuote, ok bool) {
	for _, book := range s.priority {
		for _, q := range quotes {
			if q.BookmakerID != book || q.Market != market {
				continue
			}
			if q.Usable() {
				return q, true
			}
			break
		}
	}
	for _, q := range quotes {
		if q.Market == market && q.Usable() {
			return q, true
		}
	}
	return MarketQuote{}, false
}
