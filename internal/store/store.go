// Package store persists the league: seasons, tours, tiers, tournaments,
// golfer rows, teams and tour cards. Two implementations exist, an in-memory
// store for tests and fixture-driven development and a Postgres store for
// real deployments. Both apply the same patch semantics, so the batch jobs
// behave identically against either.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// Store is the full persistence surface used by the batch jobs and the HTTP
// layer. Tournament EndDate names the final scheduled day of play; the
// active window runs through the end of that day.
type Store interface {
	// CurrentSeason returns the latest season on record.
	CurrentSeason(ctx context.Context) (domain.Season, error)
	ToursBySeason(ctx context.Context, seasonID string) ([]domain.Tour, error)
	TiersBySeason(ctx context.Context, seasonID string) ([]domain.Tier, error)
	TierByID(ctx context.Context, id string) (domain.Tier, error)

	TournamentsBySeason(ctx context.Context, seasonID string) ([]domain.Tournament, error)
	TournamentByID(ctx context.Context, id string) (domain.Tournament, error)
	// NextTournament returns the season's earliest tournament starting after
	// now.
	NextTournament(ctx context.Context, seasonID string, now time.Time) (domain.Tournament, error)
	// CurrentTournament returns the season's tournament whose play window
	// contains now.
	CurrentTournament(ctx context.Context, seasonID string, now time.Time) (domain.Tournament, error)
	UpdateTournament(ctx context.Context, id string, patch domain.TournamentPatch) error

	GolfersByTournament(ctx context.Context, tournamentID string) ([]domain.Golfer, error)
	CreateGolfers(ctx context.Context, golfers []domain.Golfer) error
	UpdateGolfer(ctx context.Context, id int64, patch domain.GolferPatch) error

	TeamsByTournament(ctx context.Context, tournamentID string) ([]domain.Team, error)
	TeamsBySeason(ctx context.Context, seasonID string) ([]domain.Team, error)
	UpdateTeam(ctx context.Context, id int64, patch domain.TeamPatch) error

	TourCardsBySeason(ctx context.Context, seasonID string) ([]domain.TourCard, error)
	UpdateTourCard(ctx context.Context, id string, patch domain.TourCardPatch) error

	Ping(ctx context.Context) error
	Close() error
}
