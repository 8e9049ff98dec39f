package board

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Aidan-usc/Game-Line/internal/filter"
	"github.com/Aidan-usc/Game-Line/internal/league"
	"github.com/Aidan-usc/Game-Line/internal/models"
)

// Renderer receives the current visible games whenever they may have changed.
type Renderer interface {
	Render(sport league.Sport, games []models.GameEvent)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(sport league.Sport, games []models.GameEvent)

func (f RendererFunc) Render(sport league.Sport, games []models.GameEvent) { f(sport, games) }

// LogRenderer logs each render.
type LogRenderer struct{}

func (LogRenderer) Render(sport league.Sport, games []models.GameEvent) {
	log.Info("%s board shows %d games", sport.Key, len(games))
	for _, g := range games {
		log.Debug("  %s  %s", g.StartTime.Format("Mon 01/02 15:04"), g.Matchup())
	}
}

// View is one open board page. It renders on open, on filter changes, on
// refresh and on every hide-timer tick.
type View struct {
	board    *Board
	sport    league.Sport
	renderer Renderer
	timer    string

	mu    sync.Mutex
	state filter.State
	games []models.GameEvent
}

// Open loads the sport, renders it and starts the hide timer.
func (b *Board) Open(ctx context.Context, sportKey string, r Renderer) (*View, error) {
	s, err := b.sport(sportKey)
	if err != nil {
		return nil, err
	}
	games, err := b.Games(ctx, s.Key)
	if err != nil {
		return nil, err
	}
	v := &View{
		board:    b,
		sport:    s,
		renderer: r,
		timer:    "hide:" + s.Key + ":" + uuid.NewString(),
		games:    games,
	}
	v.render()
	v.StartHideTimer()
	return v, nil
}

// Sport returns the view's sport.
func (v *View) Sport() league.Sport {
	return v.sport
}

// SetFilter replaces the filter state and re-renders.
func (v *View) SetFilter(st filter.State) {
	v.mu.Lock()
	v.state = st
	v.mu.Unlock()
	v.render()
}

// Refresh refetches the sport and re-renders. On error the previous games stay.
func (v *View) Refresh(ctx context.Context) error {
	games, err := v.board.Refresh(ctx, v.sport.Key)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.games = games
	v.mu.Unlock()
	v.render()
	return nil
}

// Visible returns what the view currently shows.
func (v *View) Visible() []models.GameEvent {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.board.visible(v.sport, v.games, v.state)
}

func (v *View) render() {
	v.renderer.Render(v.sport, v.Visible())
}

// StartHideTimer registers the recurring re-render. Calling it again while
// the timer runs does nothing.
func (v *View) StartHideTimer() bool {
	return v.board.sched.Every(v.timer, v.board.hideInterval, v.render)
}

// StopHideTimer cancels the recurring re-render.
func (v *View) StopHideTimer() bool {
	return v.board.sched.Cancel(v.timer)
}

// Close stops the view's timer.
func (v *View) Close() {
	v.StopHideTimer()
}
