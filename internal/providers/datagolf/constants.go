package datagolf

import "time"

const (
	providerName = "datagolf"

	defaultBaseURL     = "https://feeds.datagolf.com"
	defaultTour        = "pga"
	defaultHTTPTimeout = 10 * time.Second

	pathFieldUpdates = "/field-updates"
	pathInPlay       = "/preds/in-play"
	pathRankings     = "/preds/get-dg-rankings"
)
