package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService      = "service"
	FieldVersion      = "version"
	FieldProvider     = "provider"
	FieldRequestID    = "request_id"
	FieldPath         = "path"
	FieldMethod       = "method"
	FieldStatusCode   = "status_code"
	FieldJob          = "job"
	FieldRunID        = "run_id"
	FieldTournamentID = "tournament_id"
	FieldSeasonID     = "season_id"
	FieldTourID       = "tour_id"
	FieldGolferAPIID  = "golfer_api_id"
	FieldTeamID       = "team_id"
	FieldTourCardID   = "tour_card_id"
	FieldRound        = "round"
	FieldCount        = "count"
	FieldDurationMS   = "duration_ms"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
