package providers

import "context"

// FieldProvider fetches the current event's entrant list with tee times.
// Feeds are point-in-time snapshots scoped to the event in progress (or next
// up); callers match the snapshot to a stored tournament themselves.
type FieldProvider interface {
	FetchField(ctx context.Context) (*Field, error)
}

// LiveProvider fetches in-play scoring for the event in progress.
type LiveProvider interface {
	FetchLive(ctx context.Context) (*Live, error)
}

// RankingProvider fetches the global skill rankings.
type RankingProvider interface {
	FetchRankings(ctx context.Context) ([]Ranking, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	FieldProvider
	LiveProvider
	RankingProvider
}
