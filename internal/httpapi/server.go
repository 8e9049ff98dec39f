// Package httpapi exposes game boards and parlay slips over JSON HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Aidan-usc/Game-Line/internal/filter"
	"github.com/Aidan-usc/Game-Line/internal/league"
	"github.com/Aidan-usc/Game-Line/internal/logger"
	"github.com/Aidan-usc/Game-Line/internal/models"
	"github.com/Aidan-usc/Game-Line/internal/parlay"
)

var log = logger.Named("http")

// Board is the game source behind the API.
type Board interface {
	Registry() *league.Registry
	Visible(ctx context.Context, sportKey string, st filter.State) ([]models.GameEvent, error)
	Refresh(ctx context.Context, sportKey string) ([]models.GameEvent, error)
}

// Defaults for the in-memory slip store.
const (
	DefaultSlipIdleTTL = 2 * time.Hour
	DefaultMaxSlips    = 10000
)

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	// SlipIdleTTL is how long a slip survives without being read or changed.
	SlipIdleTTL time.Duration
	// MaxSlips caps the slip store. The least recently used slip is dropped
	// to make room.
	MaxSlips int
	Now      func() time.Time
}

// Server routes API requests. Slips live in process memory only.
type Server struct {
	board     Board
	slips     *slipStore
	submitter parlay.Submitter
	router    chi.Router
}

// New builds the router.
func New(b Board, limits parlay.Limits, submitter parlay.Submitter, opts Options) *Server {
	if submitter == nil {
		submitter = parlay.LogSubmitter{}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.SlipIdleTTL <= 0 {
		opts.SlipIdleTTL = DefaultSlipIdleTTL
	}
	if opts.MaxSlips <= 0 {
		opts.MaxSlips = DefaultMaxSlips
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{
		board:     b,
		slips:     newSlipStore(limits, opts.SlipIdleTTL, opts.MaxSlips, opts.Now),
		submitter: submitter,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/sports", s.listSports)
		r.Get("/sports/{sport}/games", s.listGames)
		r.Post("/sports/{sport}/refresh", s.refreshGames)

		r.Post("/slips", s.createSlip)
		r.Route("/slips/{id}", func(r chi.Router) {
			r.Get("/", s.getSlip)
			r.Post("/legs", s.toggleLeg)
			r.Delete("/legs", s.clearSlip)
			r.Put("/stake", s.setStake)
			r.Post("/submit", s.submitSlip)
		})
	})
	s.router = r
	return s
}

// EvictIdleSlips drops slips idle for longer than the configured TTL and
// returns how many were removed.
func (s *Server) EvictIdleSlips() int {
	n := s.slips.evictIdle()
	if n > 0 {
		log.Debug("evicted %d idle slips, %d remain", n, s.slips.count())
	}
	return n
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "gameline",
	})
}

// requestLogger logs one line per request at debug, or info for server errors.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status >= 500 {
			log.Info("%s %s -> %d in %v", r.Method, r.URL.Path, status, time.Since(start))
			return
		}
		log.Debug("%s %s -> %d in %v", r.Method, r.URL.Path, status, time.Since(start))
	})
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// respondJSON encodes data before writing the header, so an encoding failure
// becomes a 500 instead of a truncated body.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		log.Warn("error encoding response: %v", err)
		buf.Reset()
		status = http.StatusInternalServerError
		json.NewEncoder(&buf).Encode(errorResponse{
			Error:   http.StatusText(status),
			Message: "couldn't encode response",
			Code:    status,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil && status >= 500 {
		log.Warn("%s: %v", message, err)
	}
	respondJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
