// Package adapthttp is the JSON HTTP surface of the BMI tracker.
package adapthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bmitracker/internal/app"
	"bmitracker/internal/metrics"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	users          *app.UserService
	history        *app.HistoryService
	log            *zap.Logger
	metrics        metrics.Recorder
	metricsHandler http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithMetrics records response statuses on rec and serves h on /metrics.
func WithMetrics(rec metrics.Recorder, h http.Handler) Option {
	return func(s *Server) {
		s.metrics = rec
		s.metricsHandler = h
	}
}

// New creates a Server wired to the given application services.
func New(users *app.UserService, history *app.HistoryService, opts ...Option) *Server {
	s := &Server{
		users:   users,
		history: history,
		log:     zap.NewNop(),
		metrics: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID, s.withLogging, s.withRecovery, withNoCache)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)

			r.Route("/{name}", func(r chi.Router) {
				r.Post("/measurements", s.handleRecordMeasurement)
				r.Get("/history", s.handleHistory)
				r.Get("/trend", s.handleTrend)
			})
		})
	})

	if s.metricsHandler != nil {
		r.Handle("/metrics", s.metricsHandler)
	}

	return r
}
