package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/scoring"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

// StandingsJob rebuilds every tour card's season totals from its completed
// teams, then resolves the season standings per tour. Stats for all cards
// persist before any position does; a rank computed against half-refreshed
// points would be wrong.
type StandingsJob struct {
	store      store.Store
	batchSize  int
	batchDelay time.Duration
}

// NewStandingsJob constructs the standings-update job.
func NewStandingsJob(st store.Store, cronCfg config.CronConfig) *StandingsJob {
	return &StandingsJob{
		store:      st,
		batchSize:  cronCfg.BatchSize,
		batchDelay: cronCfg.BatchDelay,
	}
}

// Name implements Job.
func (j *StandingsJob) Name() string { return "update-standings" }

// Run implements Job.
func (j *StandingsJob) Run(ctx context.Context) (Result, error) {
	logger := logging.FromContext(ctx, nil)

	season, err := j.store.CurrentSeason(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: no current season", ErrNothingToDo)
	}
	if err != nil {
		return Result{}, fmt.Errorf("load current season: %w", err)
	}

	cards, err := j.store.TourCardsBySeason(ctx, season.ID)
	if err != nil {
		return Result{}, fmt.Errorf("load tour cards: %w", err)
	}
	if len(cards) == 0 {
		return Result{Skipped: true, Message: "no tour cards on file"}, nil
	}

	teams, err := j.store.TeamsBySeason(ctx, season.ID)
	if err != nil {
		return Result{}, fmt.Errorf("load teams: %w", err)
	}
	byCard := make(map[string][]domain.Team)
	for _, t := range teams {
		if !t.Finished() {
			continue
		}
		byCard[t.TourCardID] = append(byCard[t.TourCardID], t)
	}

	touched := make(map[string]bool)

	snapshot := make([]domain.TourCard, 0, len(cards))
	statsFailed, err := InBatches(ctx, cards, j.batchSize, j.batchDelay, func(ctx context.Context, card domain.TourCard) error {
		patch := cardStatsPatch(card, byCard[card.ID])
		if patch.IsZero() {
			snapshot = append(snapshot, card)
			return nil
		}
		if err := j.store.UpdateTourCard(ctx, card.ID, patch); err != nil {
			logging.Error(logger, "tour card stats update failed", err,
				slog.String(logging.FieldTourCardID, card.ID),
				slog.String(logging.FieldTourID, card.TourID))
			snapshot = append(snapshot, card)
			return err
		}
		patch.Apply(&card)
		snapshot = append(snapshot, card)
		touched[card.ID] = true
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("stats pass: %w", err)
	}

	positions := cardPositions(snapshot)
	posFailed, err := InBatches(ctx, snapshot, j.batchSize, j.batchDelay, func(ctx context.Context, card domain.TourCard) error {
		pos, ok := positions[card.ID]
		if !ok || card.Position == pos {
			return nil
		}
		patch := domain.TourCardPatch{Position: domain.Set(pos)}
		if err := j.store.UpdateTourCard(ctx, card.ID, patch); err != nil {
			logging.Error(logger, "tour card position update failed", err,
				slog.String(logging.FieldTourCardID, card.ID),
				slog.String(logging.FieldTourID, card.TourID))
			return err
		}
		touched[card.ID] = true
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("position pass: %w", err)
	}

	return Result{
		Processed: len(cards),
		Updated:   len(touched),
		Failed:    statsFailed + posFailed,
		Message:   fmt.Sprintf("updated %d of %d tour cards", len(touched), len(cards)),
	}, nil
}

// cardStatsPatch re-aggregates one card's season totals from its completed
// teams. Totals rebuild from scratch every cycle, so a corrected or removed
// team settles out on the next run.
func cardStatsPatch(card domain.TourCard, teams []domain.Team) domain.TourCardPatch {
	wins, topTens, madeCuts, points := 0, 0, 0, 0
	earnings := 0.0
	for _, t := range teams {
		if pos, ok := domain.ParsePosition(t.Position); ok {
			if pos.Rank == 1 {
				wins++
			}
			if pos.Rank <= 10 {
				topTens++
			}
		}
		if !domain.IsTerminalPosition(t.Position) {
			madeCuts++
		}
		if t.Points != nil {
			points += *t.Points
		}
		if t.Earnings != nil {
			earnings += scoring.RoundCents(*t.Earnings)
		}
	}
	earnings = scoring.RoundCents(earnings)

	var patch domain.TourCardPatch
	if card.Points != points {
		patch.Points = domain.Set(points)
	}
	if card.Earnings != earnings {
		patch.Earnings = domain.Set(earnings)
	}
	if card.Win != wins {
		patch.Win = domain.Set(wins)
	}
	if card.TopTen != topTens {
		patch.TopTen = domain.Set(topTens)
	}
	if card.MadeCut != madeCuts {
		patch.MadeCut = domain.Set(madeCuts)
	}
	if card.Appearances != len(teams) {
		patch.Appearances = domain.Set(len(teams))
	}
	return patch
}

// cardPositions resolves the season standing for every card, grouped by
// tour. Rank follows points alone; cards on equal points share a tied rank
// regardless of earnings.
func cardPositions(cards []domain.TourCard) map[string]string {
	pools := make(map[string][]int)
	for i, c := range cards {
		pools[c.TourID] = append(pools[c.TourID], i)
	}
	positions := make(map[string]string, len(cards))
	for _, pool := range pools {
		points := make([]float64, len(pool))
		for k, i := range pool {
			points[k] = float64(cards[i].Points)
		}
		ranked := scoring.PositionsDesc(points)
		for k, i := range pool {
			positions[cards[i].ID] = ranked[k].String()
		}
	}
	return positions
}
