package parlay

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Aidan-usc/Game-Line/internal/models"
)

// Receipt records a submitted mock parlay. Nothing is charged or stored.
type Receipt struct {
	ID           string       `json:"id"`
	Legs         []models.Leg `json:"legs"`
	Stake        float64      `json:"stake"`
	DecimalOdds  float64      `json:"decimal_odds"`
	AmericanOdds string       `json:"american_odds"`
	Payout       float64      `json:"payout"`
	SubmittedAt  time.Time    `json:"submitted_at"`
}

// Submitter receives receipts for submitted slips.
type Submitter interface {
	Submit(ctx context.Context, r Receipt) error
}

// LogSubmitter logs receipts and always succeeds.
type LogSubmitter struct{}

func (LogSubmitter) Submit(_ context.Context, r Receipt) error {
	log.Info("submitted %s: %d legs, stake $%.2f at %s, payout $%.2f",
		r.ID, len(r.Legs), r.Stake, r.AmericanOdds, r.Payout)
	return nil
}

// Submit validates the slip, hands a receipt to s, and clears the legs once s accepts it.
// On error the slip is unchanged.
func (l *Ledger) Submit(ctx context.Context, s Submitter) (Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.legs) == 0 {
		return Receipt{}, ErrEmptySlip
	}
	if l.stake <= 0 {
		return Receipt{}, ErrNoStake
	}

	snap := l.snapshot()
	r := Receipt{
		ID:           uuid.NewString(),
		Legs:         snap.Legs,
		Stake:        snap.Stake,
		DecimalOdds:  snap.DecimalOdds,
		AmericanOdds: snap.AmericanDisplay,
		Payout:       snap.Payout,
		SubmittedAt:  l.now(),
	}
	if err := s.Submit(ctx, r); err != nil {
		return Receipt{}, err
	}
	l.legs = nil
	return r, nil
}
