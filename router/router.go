// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/click-experiment/cliparse"
	"github.com/danielhkuo/click-experiment/handlers"
	"github.com/danielhkuo/click-experiment/leaderboard"
	"github.com/danielhkuo/click-experiment/metrics"
	"github.com/danielhkuo/click-experiment/middleware"
)

func NewRouter(svc *leaderboard.Service, m *metrics.Metrics, cfg cliparse.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Initialize handlers
	lbHandler := handlers.NewLeaderboardHandler(svc)
	feedHandler := handlers.NewFeedHandler(svc, m)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", middleware.WithLogging(lbHandler.SubmitSession))
		r.Get("/leaderboard", middleware.WithLogging(lbHandler.GetLeaderboard))

		// Hijacked by the websocket upgrade, so not wrapped with logging
		r.Get("/leaderboard/ws", feedHandler.ServeWS)
	})

	if cfg.Profile {
		r.Mount("/debug", chimw.Profiler())
	}

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("click-experiment API v1"))
	})

	return r
}
