package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
)

// TriggerSecret gates the cron triggers with a bearer token. An empty secret
// leaves them open, the expected local and dev posture.
func TriggerSecret(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+secret {
				logging.Warn(logger, "trigger unauthorized",
					slog.String(logging.FieldPath, r.URL.Path),
					slog.String("client_ip", clientIP(r)),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
