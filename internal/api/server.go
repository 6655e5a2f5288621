// Package api serves the tracker over a local JSON HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/ledger"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/metrics"
	"github.com/ratedzzz/small-steps/internal/quotes"
	"github.com/ratedzzz/small-steps/internal/subscription"
	"github.com/ratedzzz/small-steps/internal/tracker"
)

// Server is the smallsteps HTTP API server.
type Server struct {
	svc            *tracker.Service
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(svc *tracker.Service) *Server {
	return &Server{svc: svc}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(instrument)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": constants.Version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)

		r.Route("/habits", func(r chi.Router) {
			r.Get("/", s.handleListHabits)
			r.Post("/", s.handleAddHabit)
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", s.handleUpdateHabit)
				r.Post("/deactivate", s.handleDeactivateHabit)
				r.Post("/goal", s.handleLinkHabit)
				r.Delete("/goal", s.handleUnlinkHabit)
				r.Get("/progress/{date}", s.handleGetProgress)
				r.Put("/progress/{date}", s.handleSetProgress)
				r.Put("/journal/{date}", s.handleSetJournal)
				r.Get("/streak", s.handleStreak)
				r.Get("/history", s.handleHistory)
			})
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", s.handleListGoals)
			r.Post("/", s.handleAddGoal)
			r.Patch("/{id}", s.handleUpdateGoal)
			r.Get("/{id}/progress", s.handleGoalProgress)
		})

		r.Get("/stats", s.handleStats)
		r.Get("/badges", s.handleBadges)
		r.Post("/badges/check", s.handleCheckBadges)
		r.Get("/level", s.handleLevel)
		r.Get("/subscription", s.handleGetSubscription)
		r.Put("/subscription", s.handleSetSubscription)
		r.Get("/quotes/today", s.handleTodayQuote)
		r.Get("/quotes/liked", s.handleLikedQuotes)
		r.Post("/quotes/{id}/like", s.handleLikeQuote)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("API server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// instrument records request counts and latency by route pattern
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeErr maps domain errors onto HTTP statuses
func writeErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("API request failed", "error", err)
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrHabitNotFound),
		errors.Is(err, ledger.ErrGoalNotFound),
		errors.Is(err, quotes.ErrQuoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, subscription.ErrLimitReached),
		errors.Is(err, subscription.ErrHistoryLocked):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrInvalidDate),
		errors.Is(err, ledger.ErrTitleRequired),
		errors.Is(err, subscription.ErrUnknownTier),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
