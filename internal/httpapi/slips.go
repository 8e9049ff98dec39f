package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Aidan-usc/Game-Line/internal/filter"
	"github.com/Aidan-usc/Game-Line/internal/models"
	"github.com/Aidan-usc/Game-Line/internal/parlay"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 16

type slipEntry struct {
	ledger  *parlay.Ledger
	touched time.Time
}

// slipStore holds slips in memory. Idle slips are dropped by evictIdle and
// the oldest slip makes room when the store is full.
type slipStore struct {
	limits parlay.Limits
	idle   time.Duration
	max    int
	now    func() time.Time

	mu    sync.Mutex
	slips map[string]*slipEntry
}

func newSlipStore(limits parlay.Limits, idle time.Duration, maxSlips int, now func() time.Time) *slipStore {
	return &slipStore{
		limits: limits,
		idle:   idle,
		max:    maxSlips,
		now:    now,
		slips:  make(map[string]*slipEntry),
	}
}

func (st *slipStore) create() (string, *parlay.Ledger) {
	id := uuid.NewString()
	l := parlay.NewLedger(st.limits)
	st.mu.Lock()
	defer st.mu.Unlock()
	if len(st.slips) >= st.max {
		st.evictOldestLocked()
	}
	st.slips[id] = &slipEntry{ledger: l, touched: st.now()}
	return id, l
}

func (st *slipStore) get(id string) (*parlay.Ledger, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.slips[id]
	if !ok {
		return nil, false
	}
	e.touched = st.now()
	return e.ledger, true
}

func (st *slipStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range st.slips {
		if oldestID == "" || e.touched.Before(oldest) {
			oldestID, oldest = id, e.touched
		}
	}
	if oldestID != "" {
		delete(st.slips, oldestID)
		log.Debug("slip store full, dropped slip %s", oldestID)
	}
}

func (st *slipStore) evictIdle() int {
	cutoff := st.now().Add(-st.idle)
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, e := range st.slips {
		if e.touched.Before(cutoff) {
			delete(st.slips, id)
			n++
		}
	}
	return n
}

func (st *slipStore) count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.slips)
}

type slipResponse struct {
	ID string `json:"id"`
	parlay.Snapshot
}

type toggleRequest struct {
	Sport     string           `json:"sport"`
	EventID   string           `json:"event_id"`
	Selection models.Selection `json:"selection"`
}

type toggleResponse struct {
	Action parlay.Action `json:"action,omitempty"`
	Error  string        `json:"error,omitempty"`
	Slip   slipResponse  `json:"slip"`
}

type stakeRequest struct {
	Amount *float64 `json:"amount"`
}

func (s *Server) slip(w http.ResponseWriter, r *http.Request) (string, *parlay.Ledger, bool) {
	id := chi.URLParam(r, "id")
	l, ok := s.slips.get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "slip not found", nil)
	}
	return id, l, ok
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return false
	}
	return true
}

func (s *Server) createSlip(w http.ResponseWriter, r *http.Request) {
	id, l := s.slips.create()
	respondJSON(w, http.StatusCreated, slipResponse{ID: id, Snapshot: l.Snapshot()})
}

func (s *Server) getSlip(w http.ResponseWriter, r *http.Request) {
	id, l, ok := s.slip(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, slipResponse{ID: id, Snapshot: l.Snapshot()})
}

// toggleLeg builds the leg from the server's own prices for the event, so
// clients only name the game and side. Only games still on the visible board
// can be added.
func (s *Server) toggleLeg(w http.ResponseWriter, r *http.Request) {
	id, l, ok := s.slip(w, r)
	if !ok {
		return
	}
	var req toggleRequest
	if !decode(w, r, &req) {
		return
	}

	games, err := s.board.Visible(r.Context(), req.Sport, filter.State{})
	if err != nil {
		respondGamesError(w, err)
		return
	}
	var game *models.GameEvent
	for i := range games {
		if games[i].ID == req.EventID {
			game = &games[i]
			break
		}
	}
	if game == nil {
		respondError(w, http.StatusNotFound, "event not found", nil)
		return
	}
	leg, err := models.LegFor(*game, req.Selection)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	action, err := l.Toggle(leg)
	switch {
	case errors.Is(err, parlay.ErrCapacity):
		respondJSON(w, http.StatusConflict, toggleResponse{
			Error: err.Error(),
			Slip:  slipResponse{ID: id, Snapshot: l.Snapshot()},
		})
	case err != nil:
		respondError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		respondJSON(w, http.StatusOK, toggleResponse{
			Action: action,
			Slip:   slipResponse{ID: id, Snapshot: l.Snapshot()},
		})
	}
}

func (s *Server) setStake(w http.ResponseWriter, r *http.Request) {
	id, l, ok := s.slip(w, r)
	if !ok {
		return
	}
	var req stakeRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Amount == nil {
		respondError(w, http.StatusBadRequest, "amount is required", nil)
		return
	}
	l.SetStake(*req.Amount)
	respondJSON(w, http.StatusOK, slipResponse{ID: id, Snapshot: l.Snapshot()})
}

func (s *Server) clearSlip(w http.ResponseWriter, r *http.Request) {
	id, l, ok := s.slip(w, r)
	if !ok {
		return
	}
	l.Clear()
	respondJSON(w, http.StatusOK, slipResponse{ID: id, Snapshot: l.Snapshot()})
}

func (s *Server) submitSlip(w http.ResponseWriter, r *http.Request) {
	_, l, ok := s.slip(w, r)
	if !ok {
		return
	}
	receipt, err := l.Submit(r.Context(), s.submitter)
	switch {
	case errors.Is(err, parlay.ErrEmptySlip), errors.Is(err, parlay.ErrNoStake):
		respondError(w, http.StatusBadRequest, err.Error(), nil)
	case err != nil:
		respondError(w, http.StatusBadGateway, "submission failed", err)
	default:
		respondJSON(w, http.StatusOK, receipt)
	}
}
