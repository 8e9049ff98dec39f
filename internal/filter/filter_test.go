package filter

import (
	"testing"
	"time"

	"github.com/Aidan-usc/Game-Line/internal/league"
	"github.com/Aidan-usc/Game-Line/internal/models"
	"github.com/Aidan-usc/Game-Line/internal/names"
)

var now = time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC)

func game(id, away, home string, start time.Time) models.GameEvent {
	return models.GameEvent{
		ID:        id,
		StartTime: start,
		Away:      models.TeamIdentity{Name: away, Key: names.Normalize(away)},
		Home:      models.TeamIdentity{Name: home, Key: names.Normalize(home)},
	}
}

func TestPostKickoff(t *testing.T) {
	p := PostKickoff(now, DefaultGrace)
	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"eleven minutes ago hidden", now.Add(-11 * time.Minute), false},
		{"nine minutes ago visible", now.Add(-9 * time.Minute), true},
		{"exactly at grace visible", now.Add(-10 * time.Minute), true},
		{"future visible", now.Add(time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p(game("g", "A", "B", tt.start)); got != tt.want {
				t.Errorf("PostKickoff = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	p := Window(now, 5)
	if !p(game("g", "A", "B", now.Add(-2*time.Hour))) {
		t.Error("started games are not bounded below")
	}
	if !p(game("g", "A", "B", now.AddDate(0, 0, 5))) {
		t.Error("game at the horizon should be kept")
	}
	if p(game("g", "A", "B", now.AddDate(0, 0, 5).Add(time.Second))) {
		t.Error("game past the horizon should be dropped")
	}
}

func TestMembership(t *testing.T) {
	r := league.Default()
	g := game("g", "Cleveland Browns", "Detroit Lions", now)

	tests := []struct {
		group string
		want  bool
	}{
		{"All Divisions", true},
		{"", true},
		{"AFC North", true},
		{"NFC North", true},
		{"AFC West", false},
	}
	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			if got := Membership(r, league.NFL, tt.group)(g); got != tt.want {
				t.Errorf("Membership(%q) = %v, want %v", tt.group, got, tt.want)
			}
		})
	}
}

func TestPreFilter(t *testing.T) {
	r := league.Default()
	p := PreFilter(r, league.CFB)

	if !p(game("g", "Appalachian State Mountaineers", "Clemson Tigers", now)) {
		t.Error("one allowed team is enough")
	}
	if p(game("g", "Appalachian State Mountaineers", "Coastal Carolina Chanticleers", now)) {
		t.Error("games without an allowed team must be dropped")
	}
	if !PreFilter(r, league.NFL)(game("g", "X", "Y", now)) {
		t.Error("unrestricted sport must keep everything")
	}
}

func TestText(t *testing.T) {
	g := game("g", "New York Jets", "Buffalo Bills", now)
	tests := []struct {
		q    string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"jets", true},
		{"BUFF", true},
		{"york j", true},
		{"dolphins", false},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			if got := Text(tt.q)(g); got != tt.want {
				t.Errorf("Text(%q) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestVisibleComposesAnd(t *testing.T) {
	r := league.Default()
	sport, _ := r.Get(league.NFL)
	games := []models.GameEvent{
		game("keep", "Cleveland Browns", "Detroit Lions", now.Add(time.Hour)),
		game("stale", "Cleveland Browns", "Pittsburgh Steelers", now.Add(-time.Hour)),
		game("far", "Cleveland Browns", "Baltimore Ravens", now.AddDate(0, 0, 20)),
		game("other", "Denver Broncos", "Kansas City Chiefs", now.Add(time.Hour)),
	}
	got := Apply(games, Visible(r, sport, now, DefaultGrace, State{Group: "AFC North", Query: "lions"}))
	if len(got) != 1 || got[0].ID != "keep" {
		t.Fatalf("Visible kept %v", ids(got))
	}
	if len(games) != 4 {
		t.Error("Apply must not modify its input")
	}
}

func ids(games []models.GameEvent) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.ID
	}
	return out
}
