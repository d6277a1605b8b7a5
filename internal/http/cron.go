package http

import (
	"errors"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/cron"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
)

// TriggerJob runs the batch stage named in the path. GET keeps the triggers
// reachable from plain scheduled fetches; idempotence makes that safe.
func (h *Handler) TriggerJob(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	name := chi.URLParam(r, "job")
	job, ok := h.jobs[name]
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "unknown job "+name, logger)
		return
	}

	res, err := h.runner.Run(r.Context(), job)
	if errors.Is(err, cron.ErrNothingToDo) {
		writeError(w, r, nethttp.StatusNotFound, err.Error(), logger)
		return
	}
	if err != nil {
		writeError(w, r, nethttp.StatusInternalServerError, err.Error(), logger)
		return
	}
	writeSuccess(w, r, nethttp.StatusOK, res.Message, res, logger)
}
