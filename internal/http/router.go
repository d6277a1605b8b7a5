package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/http/middleware"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/metrics"
)

const requestTimeout = 60 * time.Second

// RouterConfig carries the cross-cutting router settings.
type RouterConfig struct {
	CORSOrigins []string
	CronSecret  string
	Recorder    *metrics.Recorder
	Logger      *slog.Logger
}

// NewRouter assembles the route tree. The websocket route sits outside the
// timeout group; everything is wrapped in the logging middleware.
func NewRouter(h *Handler, cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))

		r.Get("/health", h.Health)
		r.Get("/ready", h.Ready)

		r.Route("/cron", func(r chi.Router) {
			r.Use(middleware.TriggerSecret(cfg.CronSecret, cfg.Logger))
			r.Get("/{job}", h.TriggerJob)
		})

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/leaderboard", h.Leaderboard)
			r.Get("/standings/{tourID}", h.Standings)
		})
	})

	r.Get("/ws/leaderboard", h.LeaderboardSocket)

	return middleware.Logging(cfg.Logger, cfg.Recorder, r)
}
