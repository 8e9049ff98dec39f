package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Aidan-usc/Game-Line/internal/oddsapi"
	"github.com/Aidan-usc/Game-Line/internal/storage"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(t *testing.T, start time.Time) (*OddsCache, *storage.SQLite, *clock) {
	t.Helper()
	s, err := storage.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	clk := &clock{t: start}
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return New(s, Options{Location: loc, Now: clk.Now}), s, clk
}

func events(now time.Time, offsets ...time.Duration) []oddsapi.Event {
	out := make([]oddsapi.Event, len(offsets))
	for i, d := range offsets {
		out[i] = oddsapi.Event{ID: "e" + d.String(), CommenceTime: now.Add(d), AwayTeam: "A", HomeTeam: "B"}
	}
	return out
}

// 14:00 in New York.
var start = time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC)

func TestChooseTTL(t *testing.T) {
	tests := []struct {
		name    string
		offsets []time.Duration
		want    time.Duration
	}{
		{"empty", nil, 120 * time.Minute},
		{"12h", []time.Duration{12 * time.Hour}, 20 * time.Minute},
		{"36h", []time.Duration{36 * time.Hour}, 60 * time.Minute},
		{"90h", []time.Duration{90 * time.Hour}, 120 * time.Minute},
		{"exactly 24h", []time.Duration{24 * time.Hour}, 20 * time.Minute},
		{"exactly 48h", []time.Duration{48 * time.Hour}, 60 * time.Minute},
		{"soonest wins", []time.Duration{90 * time.Hour, 30 * time.Hour, 72 * time.Hour}, 60 * time.Minute},
		{"already started", []time.Duration{-time.Hour, 90 * time.Hour}, 20 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseTTL(events(start, tt.offsets...), start); got != tt.want {
				t.Errorf("ChooseTTL = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDayStampAndKey(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	// 02:00 UTC is still the previous evening in New York.
	ts := time.Date(2026, 10, 4, 2, 0, 0, 0, time.UTC)
	if got := DayStamp(ts, loc); got != "20261003" {
		t.Errorf("DayStamp = %s, want 20261003", got)
	}
	if got := DailyKey("nfl", "20261003"); got != "odds_daily_nfl_20261003" {
		t.Errorf("DailyKey = %s", got)
	}
}

func TestGetMissThenPut(t *testing.T) {
	ctx := context.Background()
	c, s, _ := newTestCache(t, start)

	if ev, tier := c.Get(ctx, "nfl"); tier != Miss || ev != nil {
		t.Fatalf("empty cache returned %v from %q", ev, tier)
	}
	if err := c.Put(ctx, "nfl", events(start, 5*time.Hour)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	ev, tier := c.Get(ctx, "nfl")
	if tier != Daily || len(ev) != 1 {
		t.Fatalf("Get = %d events from %q, want daily", len(ev), tier)
	}
	if _, ok, _ := s.Get(ctx, "odds_daily_nfl_20261003"); !ok {
		t.Error("daily key not written")
	}
	if _, tier := c.Get(ctx, "mlb"); tier != Miss {
		t.Error("tiers are keyed by sport")
	}
}

func TestDailyEntryFromYesterdayIsIgnored(t *testing.T) {
	ctx := context.Background()
	c, s, clk := newTestCache(t, start)

	if err := c.Put(ctx, "nfl", events(start, 90*time.Hour)); err != nil {
		t.Fatal(err)
	}
	// Session TTL is 120m; jumping a day expires it too.
	clk.Advance(24 * time.Hour)

	if _, tier := c.Get(ctx, "nfl"); tier != Miss {
		t.Fatalf("yesterday's entry served from %q", tier)
	}

	if err := c.Put(ctx, "nfl", events(clk.t, 90*time.Hour)); err != nil {
		t.Fatal(err)
	}
	keys, _ := s.Keys(ctx, "odds_daily_nfl_")
	if len(keys) != 1 || keys[0] != "odds_daily_nfl_20261004" {
		t.Errorf("stale entries not purged: %v", keys)
	}
}

func TestDailyEntryWithWrongStampIsIgnored(t *testing.T) {
	ctx := context.Background()
	c, s, _ := newTestCache(t, start)
	// Hand-written entry claiming another day under today's key.
	raw := `{"sport_key":"nfl","day_stamp":"20261002","events":[]}`
	if err := s.Set(ctx, "odds_daily_nfl_20261003", raw); err != nil {
		t.Fatal(err)
	}
	if _, tier := c.Get(ctx, "nfl"); tier != Miss {
		t.Errorf("mismatched day stamp served from %q", tier)
	}
}

func TestCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, s, _ := newTestCache(t, start)
	if err := s.Set(ctx, "odds_daily_nfl_20261003", "{not json"); err != nil {
		t.Fatal(err)
	}
	if ev, tier := c.Get(ctx, "nfl"); tier != Miss || ev != nil {
		t.Errorf("corrupt entry returned %v from %q", ev, tier)
	}
	if err := c.Put(ctx, "nfl", events(start, time.Hour)); err != nil {
		t.Fatal(err)
	}
	if _, tier := c.Get(ctx, "nfl"); tier != Daily {
		t.Error("Put should replace the corrupt entry")
	}
}

func TestSessionTierExpiry(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: start}
	c := New(nil, Options{Now: clk.Now})

	if err := c.Put(ctx, "nfl", events(start, 12*time.Hour)); err != nil {
		t.Fatal(err)
	}
	clk.Advance(19 * time.Minute)
	if _, tier := c.Get(ctx, "nfl"); tier != Session {
		t.Fatalf("tier = %q before expiry, want session", tier)
	}
	clk.Advance(time.Minute)
	if _, tier := c.Get(ctx, "nfl"); tier != Miss {
		t.Errorf("tier = %q at expiry, want miss", tier)
	}
}

func TestSessionServesWhenDailyMissing(t *testing.T) {
	ctx := context.Background()
	c, s, _ := newTestCache(t, start)
	if err := c.Put(ctx, "mlb", events(start, 36*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "odds_daily_mlb_20261003"); err != nil {
		t.Fatal(err)
	}
	if _, tier := c.Get(ctx, "mlb"); tier != Session {
		t.Errorf("tier = %q, want session", tier)
	}
}

func TestDailyOutlivesSession(t *testing.T) {
	ctx := context.Background()
	c, _, clk := newTestCache(t, start)
	if err := c.Put(ctx, "nfl", events(start, 12*time.Hour)); err != nil {
		t.Fatal(err)
	}
	clk.Advance(3 * time.Hour)
	if _, tier := c.Get(ctx, "nfl"); tier != Daily {
		t.Errorf("same-day durable entry should take precedence, got %q", tier)
	}
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	c, s, _ := newTestCache(t, start)
	if err := c.Put(ctx, "nfl", events(start, time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(ctx, "mlb", events(start, time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := c.Invalidate(ctx, "nfl"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, tier := c.Get(ctx, "nfl"); tier != Miss {
		t.Errorf("invalidated sport served from %q", tier)
	}
	if _, tier := c.Get(ctx, "mlb"); tier != Daily {
		t.Error("other sports must be untouched")
	}
	if keys, _ := s.Keys(ctx, "odds_daily_nfl_"); len(keys) != 0 {
		t.Errorf("daily keys left: %v", keys)
	}
}

func TestEntryRoundTripsEvents(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(t, start)
	in := events(start, 2*time.Hour)
	in[0].Bookmakers = []oddsapi.Bookmaker{{Key: "draftkings", Markets: []oddsapi.Market{{Key: "h2h"}}}}
	if err := c.Put(ctx, "nfl", in); err != nil {
		t.Fatal(err)
	}
	out, _ := c.Get(ctx, "nfl")
	if len(out) != 1 || !out[0].CommenceTime.Equal(in[0].CommenceTime) || out[0].Bookmakers[0].Key != "draftkings" {
		t.Errorf("round trip lost data: %+v", out)
	}
}
