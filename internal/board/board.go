// Package board serves filtered game lists per sport. It ties the provider
// client, the odds cache, the normalizer and the filters together.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Aidan-usc/Game-Line/internal/cache"
	"github.com/Aidan-usc/Game-Line/internal/filter"
	"github.com/Aidan-usc/Game-Line/internal/ingest"
	"github.com/Aidan-usc/Game-Line/internal/league"
	"github.com/Aidan-usc/Game-Line/internal/logger"
	"github.com/Aidan-usc/Game-Line/internal/models"
	"github.com/Aidan-usc/Game-Line/internal/oddsapi"
	"github.com/Aidan-usc/Game-Line/internal/scheduler"
)

// ErrUnknownSport is returned for sport keys missing from the registry.
var ErrUnknownSport = errors.New("board: unknown sport")

var log = logger.Named("board")

// Fetcher loads raw events for a provider sport key.
type Fetcher interface {
	FetchOdds(ctx context.Context, providerSportKey string) ([]oddsapi.Event, error)
}

// Notifier is told about the first failure of a run and the recovery after it.
type Notifier interface {
	SendError(sport string, err error) error
	SendRecovery(sport string, failures int) error
}

// Options tunes a Board. Zero values take the defaults.
type Options struct {
	Grace        time.Duration
	HideInterval time.Duration
	Notifier     Notifier
	Now          func() time.Time
}

// DefaultHideInterval is how often open views re-apply the post-kickoff filter.
const DefaultHideInterval = 60 * time.Second

// Board is safe for concurrent use.
type Board struct {
	fetcher    Fetcher
	cache      *cache.OddsCache
	registry   *league.Registry
	normalizer *ingest.Normalizer
	sched      *scheduler.Scheduler

	notifier     Notifier
	grace        time.Duration
	hideInterval time.Duration
	now          func() time.Time

	flight singleflight.Group

	mu       sync.Mutex
	failures map[string]int
}

// New creates a board.
func New(f Fetcher, c *cache.OddsCache, r *league.Registry, n *ingest.Normalizer, s *scheduler.Scheduler, opts Options) *Board {
	if opts.Grace <= 0 {
		opts.Grace = filter.DefaultGrace
	}
	if opts.HideInterval <= 0 {
		opts.HideInterval = DefaultHideInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Board{
		fetcher:      f,
		cache:        c,
		registry:     r,
		normalizer:   n,
		sched:        s,
		notifier:     opts.Notifier,
		grace:        opts.Grace,
		hideInterval: opts.HideInterval,
		now:          opts.Now,
		failures:     make(map[string]int),
	}
}

// Registry returns the sports the board serves.
func (b *Board) Registry() *league.Registry {
	return b.registry
}

func (b *Board) sport(key string) (league.Sport, error) {
	s, ok := b.registry.Get(key)
	if !ok {
		return league.Sport{}, fmt.Errorf("%w: %q", ErrUnknownSport, key)
	}
	return s, nil
}

// Games returns the sport's games inside the lookahead window and the allow-list,
// ordered by start time. Games past kickoff are still included; see Visible.
func (b *Board) Games(ctx context.Context, sportKey string) ([]models.GameEvent, error) {
	s, err := b.sport(sportKey)
	if err != nil {
		return nil, err
	}
	raw, tier := b.cache.Get(ctx, s.Key)
	if tier == cache.Miss {
		if raw, err = b.load(ctx, s); err != nil {
			return nil, err
		}
	}
	return b.bound(s, raw), nil
}

// Visible returns the games a user sees right now for the given filter state.
func (b *Board) Visible(ctx context.Context, sportKey string, st filter.State) ([]models.GameEvent, error) {
	s, err := b.sport(sportKey)
	if err != nil {
		return nil, err
	}
	games, err := b.Games(ctx, s.Key)
	if err != nil {
		return nil, err
	}
	return b.visible(s, games, st), nil
}

func (b *Board) visible(s league.Sport, games []models.GameEvent, st filter.State) []models.GameEvent {
	return filter.Apply(games, filter.Visible(b.registry, s, b.now(), b.grace, st))
}

// Refresh drops both cache tiers for the sport and refetches.
func (b *Board) Refresh(ctx context.Context, sportKey string) ([]models.GameEvent, error) {
	s, err := b.sport(sportKey)
	if err != nil {
		return nil, err
	}
	if err := b.cache.Invalidate(ctx, s.Key); err != nil {
		log.Warn("invalidate %s: %v", s.Key, err)
	}
	raw, err := b.load(ctx, s)
	if err != nil {
		return nil, err
	}
	return b.bound(s, raw), nil
}

// Prefetch warms every sport through the normal read path.
func (b *Board) Prefetch(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, key := range b.registry.Keys() {
		g.Go(func() error {
			if _, err := b.Games(ctx, key); err != nil {
				return fmt.Errorf("prefetch %s: %w", key, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// bound normalizes raw events and applies the window and allow-list.
func (b *Board) bound(s league.Sport, raw []oddsapi.Event) []models.GameEvent {
	games := b.normalizer.NormalizeAll(raw, s.Key)
	keep := filter.All(filter.PreFilter(b.registry, s.Key), filter.Window(b.now(), s.LookaheadDays))
	return filter.Apply(games, keep)
}

// load fetches the sport once for all concurrent callers. The shared fetch is
// not cancelled when one caller gives up.
func (b *Board) load(ctx context.Context, s league.Sport) ([]oddsapi.Event, error) {
	ch := b.flight.DoChan(s.Key, func() (interface{}, error) {
		return b.fetch(context.WithoutCancel(ctx), s)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			log.Debug("%s fetch shared with concurrent callers", s.Key)
		}
		return res.Val.([]oddsapi.Event), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *Board) fetch(ctx context.Context, s league.Sport) ([]oddsapi.Event, error) {
	start := time.Now()
	raw, err := b.fetcher.FetchOdds(ctx, s.ProviderKey)
	b.record(s.Key, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s odds: %w", s.Key, err)
	}

	kept := b.retain(s, raw)
	if err := b.cache.Put(ctx, s.Key, kept); err != nil {
		log.Warn("cache write for %s: %v", s.Key, err)
	}
	log.Info("Loaded %s: %d of %d events in window (%v)", s.Key, len(kept), len(raw), time.Since(start))
	return kept, nil
}

// retain keeps the raw events whose normalized games pass the window and allow-list.
func (b *Board) retain(s league.Sport, raw []oddsapi.Event) []oddsapi.Event {
	keepIDs := make(map[string]bool, len(raw))
	for _, g := range b.bound(s, raw) {
		keepIDs[g.ID] = true
	}
	kept := make([]oddsapi.Event, 0, len(keepIDs))
	for _, e := range raw {
		if keepIDs[e.ID] {
			kept = append(kept, e)
		}
	}
	return kept
}

// record tracks consecutive fetch failures per sport and notifies on the
// first failure of a run and on recovery.
func (b *Board) record(sportKey string, err error) {
	b.mu.Lock()
	failures := b.failures[sportKey]
	if err != nil {
		b.failures[sportKey] = failures + 1
	} else {
		delete(b.failures, sportKey)
	}
	b.mu.Unlock()

	if err != nil {
		log.Error("%s fetch failed: %v", sportKey, err)
		if failures == 0 && b.notifier != nil {
			if sendErr := b.notifier.SendError(sportKey, err); sendErr != nil {
				log.Warn("Failed to send error notification: %v", sendErr)
			}
		}
		return
	}
	if failures > 0 {
		log.Info("%s recovered after %d consecutive failures", sportKey, failures)
		if b.notifier != nil {
			if sendErr := b.notifier.SendRecovery(sportKey, failures); sendErr != nil {
				log.Warn("Failed to send recovery notification: %v", sendErr)
			}
		}
	}
}

// Failures returns the current consecutive failure count for a sport.
func (b *Board) Failures(sportKey string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures[sportKey]
}
