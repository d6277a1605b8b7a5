package server

import "time"

const (
	readTimeout = 10 * time.Second
	// writeTimeout sits above the router's per-request timeout so a slow
	// batch trigger times out through the handler, not a dropped connection.
	writeTimeout = 2 * time.Minute
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
