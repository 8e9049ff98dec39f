package parlay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/Aidan-usc/Game-Line/internal/models"
	"github.com/Aidan-usc/Game-Line/internal/oddsmath"
)

func leg(event string, market models.Market, sel models.Selection, odds float64) models.Leg {
	return models.Leg{EventID: event, Market: market, Selection: sel, AmericanOdds: odds}
}

func TestToggleIdempotence(t *testing.T) {
	l := NewLedger(DefaultLimits())
	x := leg("e1", models.Moneyline, models.Home, -150)

	if act, err := l.Toggle(x); err != nil || act != Added {
		t.Fatalf("first toggle = %v, %v", act, err)
	}
	if l.State() != Building {
		t.Errorf("state = %s, want building", l.State())
	}
	if act, err := l.Toggle(x); err != nil || act != Removed {
		t.Fatalf("second toggle = %v, %v", act, err)
	}
	if l.Len() != 0 || l.State() != Empty {
		t.Errorf("slip not empty after double toggle: %d legs, %s", l.Len(), l.State())
	}
}

func TestToggleReplacesWithinSlot(t *testing.T) {
	l := NewLedger(DefaultLimits())
	if _, err := l.Toggle(leg("e1", models.Moneyline, models.Home, -150)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		leg  models.Leg
	}{
		{"other side", leg("e1", models.Moneyline, models.Away, 130)},
		{"same side new price", leg("e1", models.Moneyline, models.Away, 125)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := l.Toggle(tt.leg)
			if err != nil || act != Replaced {
				t.Fatalf("Toggle = %v, %v, want replaced", act, err)
			}
			snap := l.Snapshot()
			if len(snap.Legs) != 1 || snap.Legs[0] != tt.leg {
				t.Errorf("legs = %+v", snap.Legs)
			}
		})
	}

	// A different market on the same event is a new slot.
	if act, _ := l.Toggle(leg("e1", models.Totals, models.Over, -110)); act != Added {
		t.Errorf("totals leg = %v, want added", act)
	}
	if l.Len() != 2 {
		t.Errorf("len = %d, want 2", l.Len())
	}
}

func TestMaxLegs(t *testing.T) {
	l := NewLedger(DefaultLimits())
	for i := 0; i < DefaultMaxLegs; i++ {
		if _, err := l.Toggle(leg(fmt.Sprintf("e%d", i), models.Moneyline, models.Home, 110)); err != nil {
			t.Fatalf("leg %d: %v", i+1, err)
		}
	}
	if l.State() != Full {
		t.Errorf("state = %s, want full", l.State())
	}

	before := l.Snapshot()
	_, err := l.Toggle(leg("extra", models.Moneyline, models.Home, 110))
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("err = %v, want ErrCapacity", err)
	}
	after := l.Snapshot()
	if len(after.Legs) != DefaultMaxLegs || after.DecimalOdds != before.DecimalOdds {
		t.Error("rejected addition changed the slip")
	}

	// Replacing and removing still work at capacity.
	if act, err := l.Toggle(leg("e0", models.Moneyline, models.Away, -120)); err != nil || act != Replaced {
		t.Errorf("replace at capacity = %v, %v", act, err)
	}
	if act, err := l.Toggle(leg("e0", models.Moneyline, models.Away, -120)); err != nil || act != Removed {
		t.Errorf("remove at capacity = %v, %v", act, err)
	}
	if l.State() != Building {
		t.Errorf("state = %s, want building", l.State())
	}
}

func TestToggleRejectsInvalidLeg(t *testing.T) {
	l := NewLedger(DefaultLimits())
	bad := []models.Leg{
		leg("", models.Moneyline, models.Home, -110),
		leg("e1", models.Moneyline, models.Over, -110),
		leg("e1", models.Totals, models.Over, 50),
		leg("e1", models.Totals, models.Over, math.NaN()),
	}
	for _, b := range bad {
		if _, err := l.Toggle(b); !errors.Is(err, ErrInvalidLeg) {
			t.Errorf("Toggle(%+v) err = %v, want ErrInvalidLeg", b, err)
		}
	}
	if l.Len() != 0 {
		t.Error("invalid legs must not be stored")
	}
}

func TestSetStakeClamps(t *testing.T) {
	l := NewLedger(DefaultLimits())
	if got := l.Snapshot().Stake; got != DefaultStake {
		t.Errorf("initial stake = %v, want %v", got, DefaultStake)
	}
	tests := []struct {
		in, want float64
	}{
		{25, 25},
		{-5, 0},
		{500, DefaultMaxStake},
		{math.NaN(), 0},
		{math.Inf(1), DefaultMaxStake},
	}
	for _, tt := range tests {
		if got := l.SetStake(tt.in); got != tt.want {
			t.Errorf("SetStake(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSnapshotOdds(t *testing.T) {
	l := NewLedger(DefaultLimits())
	empty := l.Snapshot()
	if empty.DecimalOdds != 1 || empty.AmericanDisplay != "+0" || empty.CanSubmit {
		t.Errorf("empty snapshot = %+v", empty)
	}

	l.Toggle(leg("e1", models.Moneyline, models.Away, 120))
	l.Toggle(leg("e2", models.Moneyline, models.Home, -110))
	l.SetStake(10)

	snap := l.Snapshot()
	if math.Abs(snap.DecimalOdds-4.2) > 0.0005 {
		t.Errorf("decimal = %v, want 4.2", snap.DecimalOdds)
	}
	if snap.AmericanOdds != 320 || snap.AmericanDisplay != "+320" {
		t.Errorf("american = %d %q", snap.AmericanOdds, snap.AmericanDisplay)
	}
	if math.Abs(snap.Payout-42) > 0.01 {
		t.Errorf("payout = %v, want 42.00", snap.Payout)
	}
	if !snap.CanSubmit {
		t.Error("slip with legs and stake should be submittable")
	}

	snap.Legs[0].AmericanOdds = 999
	if l.Snapshot().Legs[0].AmericanOdds != 120 {
		t.Error("snapshot legs must be a copy")
	}
}

func TestSnapshotLongOddsStayEncodable(t *testing.T) {
	l := NewLedger(DefaultLimits())
	for i := 0; i < DefaultMaxLegs; i++ {
		if _, err := l.Toggle(leg(fmt.Sprintf("e%d", i), models.Moneyline, models.Away, models.MaxLegOdds)); err != nil {
			t.Fatalf("Toggle(%d): %v", i, err)
		}
	}
	l.SetStake(DefaultMaxStake)

	snap := l.Snapshot()
	if snap.AmericanOdds != oddsmath.MaxAmerican || snap.AmericanDisplay[0] != '+' {
		t.Errorf("american = %d %q, want saturated positive", snap.AmericanOdds, snap.AmericanDisplay)
	}
	if math.IsInf(snap.DecimalOdds, 0) || math.IsInf(snap.Payout, 0) {
		t.Errorf("snapshot holds infinity: %+v", snap)
	}
	if _, err := json.Marshal(snap); err != nil {
		t.Errorf("json.Marshal(snapshot) = %v", err)
	}

	if _, err := l.Toggle(leg("e0", models.Moneyline, models.Away, 1e40)); !errors.Is(err, ErrInvalidLeg) {
		t.Errorf("Toggle(+1e40) = %v, want ErrInvalidLeg", err)
	}
}

func TestClear(t *testing.T) {
	l := NewLedger(DefaultLimits())
	l.Toggle(leg("e1", models.Moneyline, models.Away, 120))
	l.Clear()
	if l.State() != Empty {
		t.Errorf("state = %s after clear", l.State())
	}
}

type recordingSubmitter struct {
	receipts []Receipt
	err      error
}

func (r *recordingSubmitter) Submit(_ context.Context, rc Receipt) error {
	if r.err != nil {
		return r.err
	}
	r.receipts = append(r.receipts, rc)
	return nil
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(DefaultLimits())
	l.now = func() time.Time { return time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC) }
	sub := &recordingSubmitter{}

	if _, err := l.Submit(ctx, sub); !errors.Is(err, ErrEmptySlip) {
		t.Fatalf("empty submit err = %v", err)
	}

	l.Toggle(leg("e1", models.Moneyline, models.Away, 120))
	l.SetStake(0)
	if _, err := l.Submit(ctx, sub); !errors.Is(err, ErrNoStake) {
		t.Fatalf("zero stake submit err = %v", err)
	}

	l.SetStake(10)
	sub.err = errors.New("boom")
	if _, err := l.Submit(ctx, sub); err == nil {
		t.Fatal("submitter error should propagate")
	}
	if l.Len() != 1 {
		t.Fatal("failed submit must leave the slip unchanged")
	}

	sub.err = nil
	r, err := l.Submit(ctx, sub)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r.ID == "" || r.Payout != 22 || r.AmericanOdds != "+120" || len(r.Legs) != 1 {
		t.Errorf("receipt = %+v", r)
	}
	if !r.SubmittedAt.Equal(l.now()) {
		t.Errorf("submitted at = %v", r.SubmittedAt)
	}
	if l.Len() != 0 || len(sub.receipts) != 1 {
		t.Error("successful submit must clear the slip and deliver one receipt")
	}
}
