// Package http exposes the service over HTTP: the cron trigger endpoints
// that run the batch stages, the read API for leaderboard and standings, the
// websocket endpoint for live updates, and the health probes.
package http

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/cron"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/live"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

const healthPingTimeout = 2 * time.Second

// HandlerConfig carries the handler's collaborators. Live, Hub and Ready
// are optional; absent live pieces disable the websocket endpoint and Ready
// defaults to always ready.
type HandlerConfig struct {
	Runner *cron.Runner
	Jobs   []cron.Job
	Live   *live.Service
	Hub    *live.Hub
	Store  store.Store
	Ready  func() bool
	Logger *slog.Logger
}

// Handler wires HTTP routes to the jobs, the store and the live layer.
type Handler struct {
	runner *cron.Runner
	jobs   map[string]cron.Job
	live   *live.Service
	hub    *live.Hub
	store  store.Store
	ready  func() bool
	logger *slog.Logger
}

// NewHandler constructs a Handler; trigger routes are derived from the job
// names.
func NewHandler(cfg HandlerConfig) *Handler {
	jobs := make(map[string]cron.Job, len(cfg.Jobs))
	for _, job := range cfg.Jobs {
		jobs[job.Name()] = job
	}
	return &Handler{
		runner: cfg.Runner,
		jobs:   jobs,
		live:   cfg.Live,
		hub:    cfg.Hub,
		store:  cfg.Store,
		ready:  cfg.Ready,
		logger: cfg.Logger,
	}
}

// Health reports liveness; the store is pinged so a dead database surfaces
// here rather than on the first trigger.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			writeJSON(w, nethttp.StatusServiceUnavailable, map[string]string{"status": "store unavailable"}, h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports scheduler readiness; without an in-process scheduler the
// service is ready as soon as it serves.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.ready != nil && !h.ready() {
		writeJSON(w, nethttp.StatusServiceUnavailable, map[string]string{"status": "not ready"}, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}
