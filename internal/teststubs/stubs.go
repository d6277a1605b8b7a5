// Package teststubs holds shared test doubles for the provider and store
// interfaces.
package teststubs

import (
	"context"
	"sync/atomic"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/providers"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

// StubProvider is a test double for providers.DataProvider. Each fetch
// returns a copy of the configured snapshot, so tests can mutate their
// fixtures between calls without aliasing surprises.
type StubProvider struct {
	Field    providers.Field
	Live     providers.Live
	Rankings []providers.Ranking

	FieldErr    error
	LiveErr     error
	RankingsErr error

	FieldCalls    atomic.Int32
	LiveCalls     atomic.Int32
	RankingsCalls atomic.Int32
}

// FetchField returns the configured field snapshot.
func (s *StubProvider) FetchField(ctx context.Context) (*providers.Field, error) {
	_ = ctx
	s.FieldCalls.Add(1)
	if s.FieldErr != nil {
		return nil, s.FieldErr
	}
	field := s.Field
	field.Golfers = append([]providers.FieldGolfer(nil), s.Field.Golfers...)
	return &field, nil
}

// FetchLive returns the configured in-play snapshot.
func (s *StubProvider) FetchLive(ctx context.Context) (*providers.Live, error) {
	_ = ctx
	s.LiveCalls.Add(1)
	if s.LiveErr != nil {
		return nil, s.LiveErr
	}
	live := s.Live
	live.Golfers = append([]providers.LiveGolfer(nil), s.Live.Golfers...)
	return &live, nil
}

// FetchRankings returns the configured skill rankings.
func (s *StubProvider) FetchRankings(ctx context.Context) ([]providers.Ranking, error) {
	_ = ctx
	s.RankingsCalls.Add(1)
	if s.RankingsErr != nil {
		return nil, s.RankingsErr
	}
	return append([]providers.Ranking(nil), s.Rankings...), nil
}

// FailingStore wraps a Store and fails selected writes, for tests that
// verify one entity's failure never blocks its siblings.
type FailingStore struct {
	store.Store
	GolferErrs   map[int64]error
	TeamErrs     map[int64]error
	TourCardErrs map[string]error
}

// UpdateGolfer fails when the golfer id is marked, else delegates.
func (s *FailingStore) UpdateGolfer(ctx context.Context, id int64, patch domain.GolferPatch) error {
	if err, ok := s.GolferErrs[id]; ok {
		return err
	}
	return s.Store.UpdateGolfer(ctx, id, patch)
}

// UpdateTeam fails when the team id is marked, else delegates.
func (s *FailingStore) UpdateTeam(ctx context.Context, id int64, patch domain.TeamPatch) error {
	if err, ok := s.TeamErrs[id]; ok {
		return err
	}
	return s.Store.UpdateTeam(ctx, id, patch)
}

// UpdateTourCard fails when the card id is marked, else delegates.
func (s *FailingStore) UpdateTourCard(ctx context.Context, id string, patch domain.TourCardPatch) error {
	if err, ok := s.TourCardErrs[id]; ok {
		return err
	}
	return s.Store.UpdateTourCard(ctx, id, patch)
}
