// Package parlay holds the parlay slip state machine and its receipts.
package parlay

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Aidan-usc/Game-Line/internal/logger"
	"github.com/Aidan-usc/Game-Line/internal/models"
	"github.com/Aidan-usc/Game-Line/internal/oddsmath"
)

// Defaults for a new ledger.
const (
	DefaultMaxLegs  = 10
	DefaultMaxStake = 50.0
	DefaultStake    = 10.0
)

var (
	// ErrCapacity is returned when adding a leg to a full slip. The slip is unchanged.
	ErrCapacity = errors.New("parlay: slip is full")
	// ErrInvalidLeg is returned when a candidate leg fails validation.
	ErrInvalidLeg = errors.New("parlay: invalid leg")
	// ErrEmptySlip is returned when submitting a slip without legs.
	ErrEmptySlip = errors.New("parlay: slip has no legs")
	// ErrNoStake is returned when submitting a slip with a zero stake.
	ErrNoStake = errors.New("parlay: stake must be greater than zero")
)

var log = logger.Named("parlay")

// State is the slip's position in the Empty -> Building -> Full lifecycle.
type State string

const (
	Empty    State = "empty"
	Building State = "building"
	Full     State = "full"
)

// Action is what a toggle did to the slip.
type Action string

const (
	Added    Action = "added"
	Replaced Action = "replaced"
	Removed  Action = "removed"
)

// Limits bounds a slip.
type Limits struct {
	MaxLegs      int
	MaxStake     float64
	DefaultStake float64
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return Limits{MaxLegs: DefaultMaxLegs, MaxStake: DefaultMaxStake, DefaultStake: DefaultStake}
}

// Ledger is one parlay slip. It is safe for concurrent use.
type Ledger struct {
	mu     sync.Mutex
	legs   []models.Leg
	stake  float64
	limits Limits
	now    func() time.Time
}

// NewLedger creates an empty slip. Non-positive limits fall back to the defaults.
func NewLedger(limits Limits) *Ledger {
	def := DefaultLimits()
	if limits.MaxLegs <= 0 {
		limits.MaxLegs = def.MaxLegs
	}
	if limits.MaxStake <= 0 {
		limits.MaxStake = def.MaxStake
	}
	l := &Ledger{limits: limits, now: time.Now}
	l.stake = l.clamp(limits.DefaultStake)
	return l
}

// Toggle adds, replaces or removes a leg in the candidate's (event, market) slot.
// A matching selection and price removes the leg; a different one replaces it.
func (l *Ledger) Toggle(candidate models.Leg) (Action, error) {
	if err := candidate.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLeg, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := candidate.Key()
	for i, existing := range l.legs {
		if existing.Key() != key {
			continue
		}
		if existing.Selection == candidate.Selection && existing.AmericanOdds == candidate.AmericanOdds {
			l.legs = append(l.legs[:i:i], l.legs[i+1:]...)
			return Removed, nil
		}
		l.legs[i] = candidate
		return Replaced, nil
	}

	if len(l.legs) >= l.limits.MaxLegs {
		log.Debug("rejected leg %s: slip holds %d legs", key, len(l.legs))
		return "", ErrCapacity
	}
	l.legs = append(l.legs, candidate)
	return Added, nil
}

// SetStake clamps amount to [0, MaxStake] and returns the stored stake.
func (l *Ledger) SetStake(amount float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stake = l.clamp(amount)
	return l.stake
}

func (l *Ledger) clamp(amount float64) float64 {
	if math.IsNaN(amount) || amount < 0 {
		return 0
	}
	return math.Min(amount, l.limits.MaxStake)
}

// Clear removes every leg. The stake is kept.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.legs = nil
}

// Len returns the number of legs.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.legs)
}

// State returns the current lifecycle state.
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state()
}

func (l *Ledger) state() State {
	switch n := len(l.legs); {
	case n == 0:
		return Empty
	case n >= l.limits.MaxLegs:
		return Full
	default:
		return Building
	}
}

// Snapshot is a read-only view of a slip with its computed odds.
type Snapshot struct {
	State           State        `json:"state"`
	Legs            []models.Leg `json:"legs"`
	Stake           float64      `json:"stake"`
	MaxLegs         int          `json:"max_legs"`
	MaxStake        float64      `json:"max_stake"`
	DecimalOdds     float64      `json:"decimal_odds"`
	AmericanOdds    int          `json:"american_odds"`
	AmericanDisplay string       `json:"american_display"`
	Payout          float64      `json:"payout"`
	CanSubmit       bool         `json:"can_submit"`
}

// Snapshot returns the slip's current legs and derived odds.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Ledger) snapshot() Snapshot {
	legs := append([]models.Leg{}, l.legs...)
	prices := make([]float64, len(legs))
	for i, leg := range legs {
		prices[i] = leg.AmericanOdds
	}
	dec := oddsmath.Combined(prices...)
	american := oddsmath.DecimalToAmerican(dec)
	return Snapshot{
		State:           l.state(),
		Legs:            legs,
		Stake:           l.stake,
		MaxLegs:         l.limits.MaxLegs,
		MaxStake:        l.limits.MaxStake,
		DecimalOdds:     dec,
		AmericanOdds:    american,
		AmericanDisplay: oddsmath.FormatAmerican(american),
		Payout:          oddsmath.Payout(l.stake, dec),
		CanSubmit:       len(legs) > 0 && l.stake > 0,
	}
}
