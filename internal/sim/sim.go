// Package sim implements the Monte Carlo finish-probability job. It draws
// the unplayed remainder of the tournament in play many times, recomputes
// team totals under the team-update aggregation rules, and stores each
// team's cut, top-ten, top-five, top-three and win probabilities.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/cron"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

// Job simulates finish probabilities for the tournament in play. With a
// fixed seed the job is fully deterministic, so reruns against unchanged
// state write nothing.
type Job struct {
	store      store.Store
	iterations int
	stdDev     float64
	seed       int64
	batchSize  int
	batchDelay time.Duration
	now        func() time.Time
}

// NewJob constructs the simulation job.
func NewJob(st store.Store, cfg config.SimConfig, cronCfg config.CronConfig) *Job {
	return &Job{
		store:      st,
		iterations: cfg.Iterations,
		stdDev:     cfg.RoundStdDev,
		seed:       cfg.Seed,
		batchSize:  cronCfg.BatchSize,
		batchDelay: cronCfg.BatchDelay,
		now:        time.Now,
	}
}

// Name implements cron.Job.
func (j *Job) Name() string { return "simulate" }

// Run implements cron.Job.
func (j *Job) Run(ctx context.Context) (cron.Result, error) {
	logger := logging.FromContext(ctx, nil)

	season, err := j.store.CurrentSeason(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return cron.Result{}, fmt.Errorf("%w: no current season", cron.ErrNothingToDo)
	}
	if err != nil {
		return cron.Result{}, fmt.Errorf("load current season: %w", err)
	}

	tournament, err := j.store.CurrentTournament(ctx, season.ID, j.now())
	if errors.Is(err, store.ErrNotFound) {
		return cron.Result{}, fmt.Errorf("%w: no tournament in play", cron.ErrNothingToDo)
	}
	if err != nil {
		return cron.Result{}, fmt.Errorf("load current tournament: %w", err)
	}

	teams, err := j.store.TeamsByTournament(ctx, tournament.ID)
	if err != nil {
		return cron.Result{}, fmt.Errorf("load teams: %w", err)
	}
	if len(teams) == 0 {
		return cron.Result{Skipped: true, Message: "no teams on file"}, nil
	}

	golfers, err := j.store.GolfersByTournament(ctx, tournament.ID)
	if err != nil {
		return cron.Result{}, fmt.Errorf("load golfers: %w", err)
	}

	cards, err := j.store.TourCardsBySeason(ctx, season.ID)
	if err != nil {
		return cron.Result{}, fmt.Errorf("load tour cards: %w", err)
	}
	cardByID := make(map[string]domain.TourCard, len(cards))
	for _, c := range cards {
		cardByID[c.ID] = c
	}

	entries := make([]teamEntry, len(teams))
	for i, team := range teams {
		entries[i] = teamEntry{team: team}
		if card, ok := cardByID[team.TourCardID]; ok {
			entries[i].tourID = card.TourID
		}
	}

	n := j.iterations
	if n <= 0 {
		n = 1
	}
	seed := j.seed
	if seed == 0 {
		seed = j.now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	eng := newEngine(rng, j.stdDev, tournament, golfers)
	tallies := eng.run(entries, n)

	updated := 0
	failed, err := cron.InBatches(ctx, indexesOf(entries), j.batchSize, j.batchDelay, func(ctx context.Context, i int) error {
		team := entries[i].team
		patch := probsPatch(team, entries[i].tourID, tallies[i], n)
		if patch.IsZero() {
			return nil
		}
		if err := j.store.UpdateTeam(ctx, team.ID, patch); err != nil {
			logging.Error(logger, "team probability update failed", err,
				slog.Int64(logging.FieldTeamID, team.ID),
				slog.String(logging.FieldTournamentID, team.TournamentID))
			return err
		}
		updated++
		return nil
	})
	if err != nil {
		return cron.Result{}, fmt.Errorf("probability batch: %w", err)
	}

	return cron.Result{
		Processed: len(teams),
		Updated:   updated,
		Failed:    failed,
		Message:   fmt.Sprintf("simulated %d teams over %d iterations", len(teams), n),
	}, nil
}

func indexesOf(entries []teamEntry) []int {
	idx := make([]int, len(entries))
	for i := range entries {
		idx[i] = i
	}
	return idx
}

// probsPatch stages the team's probability fields. Cut teams settle to all
// zeroes; teams outside every tour pool are left untouched.
func probsPatch(team domain.Team, tourID string, tally probs, n int) domain.TeamPatch {
	var patch domain.TeamPatch
	if team.Cut() {
		stageProb(&patch.MakeCut, team.MakeCut, 0)
		stageProb(&patch.TopTen, team.TopTen, 0)
		stageProb(&patch.TopFive, team.TopFive, 0)
		stageProb(&patch.TopThree, team.TopThree, 0)
		stageProb(&patch.Win, team.Win, 0)
		return patch
	}
	if tourID == "" {
		return patch
	}
	total := float64(n)
	stageProb(&patch.MakeCut, team.MakeCut, roundProb(float64(tally.madeCut)/total))
	stageProb(&patch.TopTen, team.TopTen, roundProb(float64(tally.topTen)/total))
	stageProb(&patch.TopFive, team.TopFive, roundProb(float64(tally.topFive)/total))
	stageProb(&patch.TopThree, team.TopThree, roundProb(float64(tally.topThree)/total))
	stageProb(&patch.Win, team.Win, roundProb(float64(tally.win)/total))
	return patch
}

func stageProb(dst *domain.Field[float64], current *float64, v float64) {
	if current != nil && *current == v {
		return
	}
	*dst = domain.Set(v)
}
