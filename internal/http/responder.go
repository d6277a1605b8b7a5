package http

import (
	"encoding/json"
	"log/slog"
	nethttp "net/http"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/http/middleware"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
)

// envelope is the uniform response body. Trigger responses carry the job
// result under data; failures carry error instead.
type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w nethttp.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "encode response failed", err)
	}
}

func writeSuccess(w nethttp.ResponseWriter, r *nethttp.Request, status int, message string, data any, logger *slog.Logger) {
	writeJSON(w, status, envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	}, logger)
}

func writeError(w nethttp.ResponseWriter, r *nethttp.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, envelope{
		Success:   false,
		Error:     message,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	}, logger)
}
