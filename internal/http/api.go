package http

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/cron"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/live"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The leaderboard is public read-only data, same as the REST API.
	CheckOrigin: func(*nethttp.Request) bool { return true },
}

// Leaderboard serves the current tournament's leaderboard document, cached
// when Redis is configured.
func (h *Handler) Leaderboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	if h.live == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "leaderboard not configured", logger)
		return
	}
	lb, err := h.live.Leaderboard(r.Context())
	if errors.Is(err, cron.ErrNothingToDo) {
		writeError(w, r, nethttp.StatusNotFound, err.Error(), logger)
		return
	}
	if err != nil {
		logging.Error(logger, "leaderboard load failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "leaderboard unavailable", logger)
		return
	}
	writeSuccess(w, r, nethttp.StatusOK, "", lb, logger)
}

// Standings serves the season standings for one tour, ordered by points.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	season, err := h.store.CurrentSeason(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, nethttp.StatusNotFound, "no current season", logger)
		return
	}
	if err != nil {
		logging.Error(logger, "season load failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "standings unavailable", logger)
		return
	}

	tourID := chi.URLParam(r, "tourID")
	tours, err := h.store.ToursBySeason(r.Context(), season.ID)
	if err != nil {
		logging.Error(logger, "tours load failed", err, slog.String(logging.FieldSeasonID, season.ID))
		writeError(w, r, nethttp.StatusInternalServerError, "standings unavailable", logger)
		return
	}
	var tour *domain.Tour
	for i := range tours {
		if tours[i].ID == tourID {
			tour = &tours[i]
			break
		}
	}
	if tour == nil {
		writeError(w, r, nethttp.StatusNotFound, "unknown tour "+tourID, logger)
		return
	}

	cards, err := h.store.TourCardsBySeason(r.Context(), season.ID)
	if err != nil {
		logging.Error(logger, "tour cards load failed", err, slog.String(logging.FieldSeasonID, season.ID))
		writeError(w, r, nethttp.StatusInternalServerError, "standings unavailable", logger)
		return
	}
	standings := make([]domain.TourCard, 0, len(cards))
	for _, c := range cards {
		if c.TourID == tourID {
			standings = append(standings, c)
		}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		if standings[i].Earnings != standings[j].Earnings {
			return standings[i].Earnings > standings[j].Earnings
		}
		return standings[i].DisplayName < standings[j].DisplayName
	})

	writeSuccess(w, r, nethttp.StatusOK, "", map[string]any{
		"tour":      *tour,
		"standings": standings,
	}, logger)
}

// LeaderboardSocket upgrades the connection and attaches it to the hub.
func (h *Handler) LeaderboardSocket(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	if h.hub == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "live updates disabled", logger)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		logging.Warn(logger, "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	live.ServeClient(h.hub, conn, logger)
}
