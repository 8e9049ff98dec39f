// Package cache implements the two-tier odds cache: a per-process session
// tier with proximity-based TTLs and a durable tier keyed by calendar day.
//
// Both tiers store the raw provider payload so games can be re-derived on
// every read. Entries are replaced wholesale and never merged. Concurrent
// writers for the same sport race with last-write-wins semantics.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Aidan-usc/Game-Line/internal/logger"
	"github.com/Aidan-usc/Game-Line/internal/oddsapi"
	"github.com/Aidan-usc/Game-Line/internal/storage"
)

// DailyPrefix starts every durable cache key.
const DailyPrefix = "odds_daily_"

// Session TTLs by time to the soonest kickoff.
const (
	NearTTL    = 20 * time.Minute
	MidTTL     = 60 * time.Minute
	DefaultTTL = 120 * time.Minute
)

var log = logger.Named("cache")

// Tier names where a read was served from.
type Tier string

const (
	Miss    Tier = ""
	Daily   Tier = "daily"
	Session Tier = "session"
)

// Entry is one sport's cached provider payload.
type Entry struct {
	SportKey  string          `json:"sport_key"`
	DayStamp  string          `json:"day_stamp"`
	Events    []oddsapi.Event `json:"events"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Options configures an OddsCache.
type Options struct {
	// Location defines calendar days for the durable tier. Nil means time.Local.
	Location *time.Location
	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

// OddsCache is safe for concurrent use.
type OddsCache struct {
	store storage.KV
	loc   *time.Location
	now   func() time.Time

	mu      sync.Mutex
	session map[string]Entry
}

// New creates a cache over store. A nil store disables the durable tier.
func New(store storage.KV, opts Options) *OddsCache {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &OddsCache{
		store:   store,
		loc:     opts.Location,
		now:     opts.Now,
		session: make(map[string]Entry),
	}
}

// ChooseTTL picks the session TTL from the soonest kickoff in events.
func ChooseTTL(events []oddsapi.Event, now time.Time) time.Duration {
	if len(events) == 0 {
		return DefaultTTL
	}
	soonest := events[0].CommenceTime.Sub(now)
	for _, e := range events[1:] {
		if d := e.CommenceTime.Sub(now); d < soonest {
			soonest = d
		}
	}
	switch {
	case soonest <= 24*time.Hour:
		return NearTTL
	case soonest <= 48*time.Hour:
		return MidTTL
	default:
		return DefaultTTL
	}
}

// DayStamp formats t as YYYYMMDD in loc.
func DayStamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("20060102")
}

// DailyKey returns the durable key for sportKey on dayStamp.
func DailyKey(sportKey, dayStamp string) string {
	return dailyPrefix(sportKey) + dayStamp
}

func dailyPrefix(sportKey string) string {
	return DailyPrefix + sportKey + "_"
}

func nextMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// Get returns the cached payload for sportKey. The durable tier wins when it
// holds today's entry; otherwise an unexpired session entry is used.
// Store failures and corrupt entries are logged and reported as a miss.
func (c *OddsCache) Get(ctx context.Context, sportKey string) ([]oddsapi.Event, Tier) {
	now := c.now()
	today := DayStamp(now, c.loc)

	if e, ok := c.getDaily(ctx, sportKey, today); ok {
		log.Debug("%s served from daily tier (%d events)", sportKey, len(e.Events))
		return e.Events, Daily
	}

	c.mu.Lock()
	e, ok := c.session[sportKey]
	c.mu.Unlock()
	if ok && now.Before(e.ExpiresAt) {
		log.Debug("%s served from session tier (%d events, expires %s)",
			sportKey, len(e.Events), e.ExpiresAt.Format(time.RFC3339))
		return e.Events, Session
	}

	log.Debug("%s cache miss", sportKey)
	return nil, Miss
}

func (c *OddsCache) getDaily(ctx context.Context, sportKey, today string) (Entry, bool) {
	if c.store == nil {
		return Entry{}, false
	}
	key := DailyKey(sportKey, today)
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Warn("read %s: %v", key, err)
		return Entry{}, false
	}
	if !ok {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		log.Warn("ignoring corrupt entry %s: %v", key, err)
		return Entry{}, false
	}
	if e.SportKey != sportKey || e.DayStamp != today {
		log.Warn("ignoring mismatched entry %s (sport %q, day %q)", key, e.SportKey, e.DayStamp)
		return Entry{}, false
	}
	return e, true
}

// Put replaces both tiers for sportKey with events and purges durable
// entries from other days. The session tier is always written; an error
// reports a durable-tier failure.
func (c *OddsCache) Put(ctx context.Context, sportKey string, events []oddsapi.Event) error {
	now := c.now()
	today := DayStamp(now, c.loc)
	ttl := ChooseTTL(events, now)

	session := Entry{
		SportKey:  sportKey,
		DayStamp:  today,
		Events:    events,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	c.mu.Lock()
	c.session[sportKey] = session
	c.mu.Unlock()
	log.Debug("%s cached %d events, session ttl %v", sportKey, len(events), ttl)

	if c.store == nil {
		return nil
	}

	c.purge(ctx, sportKey, today)

	daily := session
	daily.ExpiresAt = nextMidnight(now, c.loc)
	data, err := json.Marshal(daily)
	if err != nil {
		return fmt.Errorf("failed to encode %s entry: %w", sportKey, err)
	}
	if err := c.store.Set(ctx, DailyKey(sportKey, today), string(data)); err != nil {
		return fmt.Errorf("failed to write daily entry: %w", err)
	}
	return nil
}

// purge deletes durable entries for sportKey from days other than today.
func (c *OddsCache) purge(ctx context.Context, sportKey, today string) {
	keys, err := c.store.Keys(ctx, dailyPrefix(sportKey))
	if err != nil {
		log.Warn("list %s keys: %v", sportKey, err)
		return
	}
	keep := DailyKey(sportKey, today)
	purged := 0
	for _, k := range keys {
		if k == keep {
			continue
		}
		if err := c.store.Delete(ctx, k); err != nil {
			log.Warn("purge %s: %v", k, err)
			continue
		}
		purged++
	}
	if purged > 0 {
		log.Info("purged %d stale daily entries for %s", purged, sportKey)
	}
}

// Invalidate drops both tiers for sportKey.
func (c *OddsCache) Invalidate(ctx context.Context, sportKey string) error {
	c.mu.Lock()
	delete(c.session, sportKey)
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	keys, err := c.store.Keys(ctx, dailyPrefix(sportKey))
	if err != nil {
		return fmt.Errorf("failed to list %s entries: %w", sportKey, err)
	}
	for _, k := range keys {
		if err := c.store.Delete(ctx, k); err != nil {
			return fmt.Errorf("failed to delete %s: %w", k, err)
		}
	}
	return nil
}
