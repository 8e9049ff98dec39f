package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Aidan-usc/Game-Line/internal/board"
	"github.com/Aidan-usc/Game-Line/internal/filter"
	"github.com/Aidan-usc/Game-Line/internal/league"
	"github.com/Aidan-usc/Game-Line/internal/models"
)

type sportResponse struct {
	Key           string   `json:"key"`
	Title         string   `json:"title"`
	GroupLabel    string   `json:"group_label"`
	Groups        []string `json:"groups"`
	LookaheadDays int      `json:"lookahead_days"`
	ShowLocation  bool     `json:"show_location"`
}

type gamesResponse struct {
	Sport string             `json:"sport"`
	Group string             `json:"group,omitempty"`
	Query string             `json:"query,omitempty"`
	Count int                `json:"count"`
	Games []models.GameEvent `json:"games"`
}

func (s *Server) listSports(w http.ResponseWriter, r *http.Request) {
	sports := s.board.Registry().Sports()
	out := make([]sportResponse, 0, len(sports))
	for _, sp := range sports {
		out = append(out, toSportResponse(sp))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"sports": out})
}

func toSportResponse(sp league.Sport) sportResponse {
	return sportResponse{
		Key:           sp.Key,
		Title:         sp.Title,
		GroupLabel:    sp.GroupLabel,
		Groups:        sp.GroupOptions(),
		LookaheadDays: sp.LookaheadDays,
		ShowLocation:  !sp.HideLocation,
	}
}

// listGames returns the visible games. Query params: group, q
func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	sport := chi.URLParam(r, "sport")
	st := filter.State{Group: r.URL.Query().Get("group"), Query: r.URL.Query().Get("q")}
	games, err := s.board.Visible(r.Context(), sport, st)
	if err != nil {
		respondGamesError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, gamesResponse{
		Sport: sport, Group: st.Group, Query: st.Query, Count: len(games), Games: games,
	})
}

func (s *Server) refreshGames(w http.ResponseWriter, r *http.Request) {
	sport := chi.URLParam(r, "sport")
	if _, err := s.board.Refresh(r.Context(), sport); err != nil {
		respondGamesError(w, err)
		return
	}
	games, err := s.board.Visible(r.Context(), sport, filter.State{})
	if err != nil {
		respondGamesError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, gamesResponse{Sport: sport, Count: len(games), Games: games})
}

func respondGamesError(w http.ResponseWriter, err error) {
	if errors.Is(err, board.ErrUnknownSport) {
		respondError(w, http.StatusNotFound, err.Error(), nil)
		return
	}
	respondError(w, http.StatusBadGateway, "couldn't load games", err)
}
