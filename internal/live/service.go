package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/cron"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

// Service owns the leaderboard document lifecycle: the refresh job rebuilds,
// caches and publishes it after scoring cycles, and Leaderboard serves reads
// from the cache with a store-backed fallback. With a nil cache and
// publisher the service is the plain store-backed read path.
type Service struct {
	store     store.Store
	cache     *Cache
	publisher *Publisher
	now       func() time.Time
}

// NewService constructs the leaderboard service. cache and publisher may be
// nil when Redis is not configured.
func NewService(st store.Store, cache *Cache, publisher *Publisher) *Service {
	return &Service{store: st, cache: cache, publisher: publisher, now: time.Now}
}

// Name implements cron.Job.
func (s *Service) Name() string { return "refresh-leaderboard" }

// Run implements cron.Job: rebuild the document for the tournament in play,
// cache it and publish a stream update.
func (s *Service) Run(ctx context.Context) (cron.Result, error) {
	lb, err := s.build(ctx)
	if err != nil {
		return cron.Result{}, err
	}
	if err := s.cache.WriteLeaderboard(ctx, lb); err != nil {
		return cron.Result{}, err
	}
	if err := s.publisher.Publish(ctx, lb); err != nil {
		return cron.Result{}, err
	}
	return cron.Result{
		Processed: len(lb.Golfers) + len(lb.Teams),
		Updated:   1,
		Message:   fmt.Sprintf("leaderboard refreshed, %d golfers, %d teams", len(lb.Golfers), len(lb.Teams)),
	}, nil
}

// Leaderboard returns the current tournament's document. Cache problems
// other than a miss degrade to a fresh store build.
func (s *Service) Leaderboard(ctx context.Context) (Leaderboard, error) {
	logger := logging.FromContext(ctx, nil)

	season, tournament, err := s.currentTournament(ctx)
	if err != nil {
		return Leaderboard{}, err
	}
	lb, err := s.cache.ReadLeaderboard(ctx, tournament.ID)
	if err == nil {
		return lb, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logging.Warn(logger, "leaderboard cache read failed, serving from store",
			slog.String(logging.FieldTournamentID, tournament.ID),
			slog.String("error", err.Error()))
	}
	return s.buildFor(ctx, season, tournament)
}

func (s *Service) build(ctx context.Context) (Leaderboard, error) {
	season, tournament, err := s.currentTournament(ctx)
	if err != nil {
		return Leaderboard{}, err
	}
	return s.buildFor(ctx, season, tournament)
}

func (s *Service) currentTournament(ctx context.Context) (domain.Season, domain.Tournament, error) {
	season, err := s.store.CurrentSeason(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Season{}, domain.Tournament{}, fmt.Errorf("%w: no current season", cron.ErrNothingToDo)
	}
	if err != nil {
		return domain.Season{}, domain.Tournament{}, fmt.Errorf("load current season: %w", err)
	}
	tournament, err := s.store.CurrentTournament(ctx, season.ID, s.now())
	if errors.Is(err, store.ErrNotFound) {
		return domain.Season{}, domain.Tournament{}, fmt.Errorf("%w: no tournament in play", cron.ErrNothingToDo)
	}
	if err != nil {
		return domain.Season{}, domain.Tournament{}, fmt.Errorf("load current tournament: %w", err)
	}
	return season, tournament, nil
}

func (s *Service) buildFor(ctx context.Context, season domain.Season, tournament domain.Tournament) (Leaderboard, error) {
	golfers, err := s.store.GolfersByTournament(ctx, tournament.ID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("load golfers: %w", err)
	}
	teams, err := s.store.TeamsByTournament(ctx, tournament.ID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("load teams: %w", err)
	}
	cards, err := s.store.TourCardsBySeason(ctx, season.ID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("load tour cards: %w", err)
	}
	return BuildLeaderboard(tournament, golfers, teams, cards, s.now()), nil
}
