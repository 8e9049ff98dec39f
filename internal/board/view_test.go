package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Aidan-usc/Game-Line/internal/filter"
	"github.com/Aidan-usc/Game-Line/internal/league"
	"github.com/Aidan-usc/Game-Line/internal/models"
)

type recorder struct {
	mu      sync.Mutex
	renders [][]string
}

func (r *recorder) Render(_ league.Sport, games []models.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders = append(r.renders, ids(games))
}

func (r *recorder) last() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders[len(r.renders)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}

func TestOpenRendersAndFilters(t *testing.T) {
	h := newHarness(t)
	rec := &recorder{}
	v, err := h.board.Open(context.Background(), league.NFL, rec)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer v.Close()

	if rec.count() != 1 || len(rec.last()) != 2 {
		t.Fatalf("initial render = %v", rec.renders)
	}

	v.SetFilter(filter.State{Group: "NFC North"})
	if got := rec.last(); len(got) != 1 || got[0] != "soon" {
		t.Errorf("filtered render = %v, want [soon]", got)
	}

	// A tick after kickoff plus grace drops the game without a refetch.
	h.clock.Advance(2 * time.Hour)
	v.render()
	if got := rec.last(); len(got) != 0 {
		t.Errorf("render after kickoff = %v, want none", got)
	}
}

func TestOpenUnknownSport(t *testing.T) {
	h := newHarness(t)
	if _, err := h.board.Open(context.Background(), "nba", &recorder{}); !errors.Is(err, ErrUnknownSport) {
		t.Errorf("err = %v", err)
	}
}

func TestHideTimerIsNotDoubleRegistered(t *testing.T) {
	h := newHarness(t)
	v, err := h.board.Open(context.Background(), league.NFL, &recorder{})
	if err != nil {
		t.Fatal(err)
	}
	if v.StartHideTimer() {
		t.Error("second start should be a no-op")
	}
	if len(h.sched.Names()) != 1 {
		t.Errorf("timers = %v", h.sched.Names())
	}
	v.Close()
	if len(h.sched.Names()) != 0 {
		t.Errorf("timers after close = %v", h.sched.Names())
	}
	if !v.StartHideTimer() {
		t.Error("restart after close should register")
	}
	v.Close()
}

func TestViewRefresh(t *testing.T) {
	h := newHarness(t)
	rec := &recorder{}
	v, err := h.board.Open(context.Background(), league.MLB, rec)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()

	if err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rec.count() != 2 {
		t.Errorf("renders = %d, want 2", rec.count())
	}
	if n := h.fetcher.calls.Load(); n != 2 {
		t.Errorf("fetcher called %d times, want 2", n)
	}
}

func TestHideTimerTicks(t *testing.T) {
	h := newHarness(t)
	h.board.hideInterval = time.Second
	rec := &recorder{}
	v, err := h.board.Open(context.Background(), league.NFL, rec)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()
	h.sched.Start()
	defer h.sched.Stop(context.Background())

	deadline := time.After(5 * time.Second)
	for rec.count() < 2 {
		select {
		case <-deadline:
			t.Fatal("hide timer never re-rendered")
		case <-time.After(50 * time.Millisecond):
		}
	}
}
