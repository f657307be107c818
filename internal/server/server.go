// Package server exposes the snapshot view-models as a read-only JSON API.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/pable/rivalstats/internal/model"
	"github.com/pable/rivalstats/internal/snapshot"
)

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

// Server serves derived views of the snapshot held by a Store. Selection
// state comes from each request's path and query, never from the server.
type Server struct {
	store *snapshot.Store
	log   zerolog.Logger
	opts  Options
}

func New(store *snapshot.Store, log zerolog.Logger, opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Server{store: store, log: log, opts: opts}
}

// Routes builds the chi router with middleware and every endpoint.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.opts.Timeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.summary)
		r.Get("/coverage", s.coverage)
		r.Get("/roles/distribution", s.roleDistribution)
		r.Get("/recommendations", s.recommendations)
		r.Get("/rankings/winrate", s.winRateRanking)
		r.Get("/leaderboard/{category}", s.leaderboard)

		r.Get("/compositions", s.compositions)
		r.Get("/compositions/{index}", s.composition)

		r.Get("/heroes", s.heroes)
		r.Get("/heroes/{name}", s.hero)
		r.Get("/heroes/{name}/best", s.heroBest)

		r.Get("/players/{name}", s.player)
	})
	return r
}

// requestLogger logs one line per request once the handler returns.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("elapsed", time.Since(start)).
					Str("request_id", chimiddleware.GetReqID(r.Context())).
					Msg("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// snapshot writes a 503 and returns false when nothing is loaded.
func (s *Server) snapshot(w http.ResponseWriter) (*model.Snapshot, bool) {
	snap, ok := s.store.Current()
	if ok {
		return snap, true
	}
	msg := "snapshot not loaded"
	if lerr := s.store.Err(); lerr != nil {
		msg = lerr.Reason
	}
	s.respondError(w, http.StatusServiceUnavailable, msg, nil)
	return nil, false
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		s.log.Warn().Err(err).Int("status", status).Msg(message)
	}
	s.respondJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
