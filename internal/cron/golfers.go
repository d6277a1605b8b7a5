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
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/providers"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/timeutil"
)

// GolfersJob merges the provider's field and in-play feeds into the stored
// golfer rows of the tournament in play, then rolls the tournament's round
// pointer and live flag up from the result.
type GolfersJob struct {
	store      store.Store
	provider   providers.DataProvider
	batchSize  int
	batchDelay time.Duration
	exclude    map[int]bool
	now        func() time.Time
}

// NewGolfersJob constructs the golfer-update job.
func NewGolfersJob(st store.Store, provider providers.DataProvider, cronCfg config.CronConfig, groupsCfg config.GroupsConfig) *GolfersJob {
	exclude := make(map[int]bool, len(groupsCfg.ExcludeApiIDs))
	for _, id := range groupsCfg.ExcludeApiIDs {
		exclude[id] = true
	}
	return &GolfersJob{
		store:      st,
		provider:   provider,
		batchSize:  cronCfg.BatchSize,
		batchDelay: cronCfg.BatchDelay,
		exclude:    exclude,
		now:        time.Now,
	}
}

// Name implements Job.
func (j *GolfersJob) Name() string { return "update-golfers" }

// Run implements Job. A provider fetch failure aborts the whole cycle; a
// failure on one golfer never blocks the rest of the batch.
func (j *GolfersJob) Run(ctx context.Context) (Result, error) {
	logger := logging.FromContext(ctx, nil)
	now := j.now()

	season, err := j.store.CurrentSeason(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: no current season", ErrNothingToDo)
	}
	if err != nil {
		return Result{}, fmt.Errorf("load current season: %w", err)
	}

	tournament, err := j.store.CurrentTournament(ctx, season.ID, now)
	if errors.Is(err, store.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: no tournament in play", ErrNothingToDo)
	}
	if err != nil {
		return Result{}, fmt.Errorf("load current tournament: %w", err)
	}

	field, err := j.provider.FetchField(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch field: %w", err)
	}
	live, err := j.provider.FetchLive(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch live: %w", err)
	}

	golfers, err := j.store.GolfersByTournament(ctx, tournament.ID)
	if err != nil {
		return Result{}, fmt.Errorf("load golfers: %w", err)
	}

	created, err := j.createNewEntrants(ctx, tournament, field, golfers)
	if err != nil {
		return Result{}, err
	}
	if created > 0 {
		golfers, err = j.store.GolfersByTournament(ctx, tournament.ID)
		if err != nil {
			return Result{}, fmt.Errorf("reload golfers: %w", err)
		}
	}
	if len(golfers) == 0 {
		return Result{Skipped: true, Message: "no golfers on file"}, nil
	}

	usage, err := j.usageShares(ctx, tournament)
	if err != nil {
		return Result{}, err
	}

	fieldByID := make(map[int]providers.FieldGolfer, len(field.Golfers))
	for _, fg := range field.Golfers {
		fieldByID[fg.ApiID] = fg
	}
	liveByID := make(map[int]providers.LiveGolfer, len(live.Golfers))
	for _, lg := range live.Golfers {
		liveByID[lg.ApiID] = lg
	}

	merged := make([]domain.Golfer, 0, len(golfers))
	updated := 0
	failed, err := InBatches(ctx, golfers, j.batchSize, j.batchDelay, func(ctx context.Context, g domain.Golfer) error {
		var fg *providers.FieldGolfer
		if v, ok := fieldByID[g.ApiID]; ok {
			fg = &v
		}
		var lg *providers.LiveGolfer
		if v, ok := liveByID[g.ApiID]; ok {
			lg = &v
		}
		patch := golferPatch(g, fg, lg, tournament, usage, now)
		if patch.IsZero() {
			merged = append(merged, g)
			return nil
		}
		if err := j.store.UpdateGolfer(ctx, g.ID, patch); err != nil {
			logging.Error(logger, "golfer update failed", err,
				slog.Int(logging.FieldGolferAPIID, g.ApiID),
				slog.String(logging.FieldTournamentID, g.TournamentID))
			merged = append(merged, g)
			return err
		}
		patch.Apply(&g)
		merged = append(merged, g)
		updated++
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("golfer batch: %w", err)
	}

	if err := j.rollupTournament(ctx, tournament, merged); err != nil {
		return Result{}, err
	}

	return Result{
		Processed: len(golfers),
		Created:   created,
		Updated:   updated,
		Failed:    failed,
		Message:   fmt.Sprintf("updated %d of %d golfers", updated, len(golfers)),
	}, nil
}

// createNewEntrants inserts golfers who appear in the field feed but have no
// stored row, using the same derivations as group assignment. They carry
// group zero; the draft has already happened.
func (j *GolfersJob) createNewEntrants(ctx context.Context, tournament domain.Tournament, field *providers.Field, stored []domain.Golfer) (int, error) {
	known := make(map[int]bool, len(stored))
	for _, g := range stored {
		known[g.ApiID] = true
	}
	var newcomers []providers.FieldGolfer
	for _, fg := range field.Golfers {
		if !known[fg.ApiID] && !j.exclude[fg.ApiID] {
			newcomers = append(newcomers, fg)
		}
	}
	if len(newcomers) == 0 {
		return 0, nil
	}

	rankings, err := j.provider.FetchRankings(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch rankings: %w", err)
	}
	byApiID := make(map[int]providers.Ranking, len(rankings))
	for _, r := range rankings {
		byApiID[r.ApiID] = r
	}

	rows := make([]domain.Golfer, 0, len(newcomers))
	for _, fg := range newcomers {
		var ranking *providers.Ranking
		if r, ok := byApiID[fg.ApiID]; ok {
			rr := r
			ranking = &rr
		}
		rows = append(rows, newGolferRow(tournament.ID, fg, ranking, 0))
	}
	if err := j.store.CreateGolfers(ctx, rows); err != nil {
		return 0, fmt.Errorf("create entrants: %w", err)
	}
	return len(rows), nil
}

// usageShares computes each golfer's roster share once, on round one while
// play is live. A nil map means usage is not computed this cycle.
func (j *GolfersJob) usageShares(ctx context.Context, tournament domain.Tournament) (map[int]float64, error) {
	if tournament.Round() != 1 || !tournament.LivePlay {
		return nil, nil
	}
	teams, err := j.store.TeamsByTournament(ctx, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	if len(teams) == 0 {
		return nil, nil
	}
	counts := make(map[int]int)
	for _, t := range teams {
		for _, id := range t.GolferIDs {
			counts[id]++
		}
	}
	shares := make(map[int]float64, len(counts))
	for id, c := range counts {
		shares[id] = float64(c) / float64(len(teams))
	}
	return shares, nil
}

// rollupTournament recomputes the tournament's round pointer and live flag
// from the merged golfer states, writing only on change.
func (j *GolfersJob) rollupTournament(ctx context.Context, tournament domain.Tournament, golfers []domain.Golfer) error {
	round := currentRoundFrom(golfers)
	live := anyLive(golfers)

	var patch domain.TournamentPatch
	if tournament.CurrentRound == nil || *tournament.CurrentRound != round {
		patch.CurrentRound = domain.Set(round)
	}
	if tournament.LivePlay != live {
		patch.LivePlay = domain.Set(live)
	}
	if !patch.CurrentRound.IsSet() && !patch.LivePlay.IsSet() {
		return nil
	}
	if err := j.store.UpdateTournament(ctx, tournament.ID, patch); err != nil {
		return fmt.Errorf("update tournament: %w", err)
	}
	return nil
}

// golferPatch merges every decision rule for one golfer; later rules win.
func golferPatch(g domain.Golfer, field *providers.FieldGolfer, live *providers.LiveGolfer, tournament domain.Tournament, usage map[int]float64, now time.Time) domain.GolferPatch {
	status := effectiveStatus(g, live)
	patch := teeTimesPatch(g, field)
	patch = patch.Merge(roundScoresPatch(g, live, status, tournament, now))
	patch = patch.Merge(liveStatePatch(g, live, status, tournament))
	patch = patch.Merge(terminalStatePatch(g, status, tournament))
	patch = patch.Merge(usagePatch(g, usage))
	return patch
}

// effectiveStatus is the provider's position when the feed carries one, else
// the stored position.
func effectiveStatus(g domain.Golfer, live *providers.LiveGolfer) string {
	if live != nil && live.Position != "" {
		return live.Position
	}
	return g.Position
}

// teeTimesPatch fills tee times from the field feed, only where unset.
func teeTimesPatch(g domain.Golfer, field *providers.FieldGolfer) domain.GolferPatch {
	var patch domain.GolferPatch
	if field == nil {
		return patch
	}
	for r := 1; r <= domain.RoundCount; r++ {
		if g.TeeTime(r) == nil && field.TeeTimes[r-1] != "" {
			patch.SetTeeTime(r, field.TeeTimes[r-1])
		}
	}
	return patch
}

// roundScoresPatch mirrors posted round strokes from the live feed and
// backfills the penalty value for closed rounds the feed never scored. The
// backfill requires a passed tee time, so golfers who were never scheduled
// for a round (a missed cut) keep it null.
func roundScoresPatch(g domain.Golfer, live *providers.LiveGolfer, status string, tournament domain.Tournament, now time.Time) domain.GolferPatch {
	var patch domain.GolferPatch
	for r := 1; r <= domain.RoundCount; r++ {
		stored := g.RoundScore(r)
		if live != nil && live.Rounds[r-1] != nil {
			if !intEq(stored, *live.Rounds[r-1]) {
				patch.SetRound(r, *live.Rounds[r-1])
			}
			continue
		}
		if stored != nil || !roundClosed(r, status, tournament) {
			continue
		}
		tee := g.TeeTime(r)
		if tee == nil || !timeutil.TeeTimePassed(*tee, now) {
			continue
		}
		patch.SetRound(r, tournament.CoursePar+domain.PenaltyOverPar)
	}
	return patch
}

// roundClosed reports whether round r can no longer produce live scores.
func roundClosed(r int, status string, tournament domain.Tournament) bool {
	if status == domain.PositionWithdrawn || status == domain.PositionDQ {
		return true
	}
	return tournament.Round() > r
}

// liveStatePatch mirrors the feed's position, probabilities, score and
// in-progress fields. Score freezes once the golfer is withdrawn or
// disqualified; today/thru stay with terminalStatePatch for terminal states.
func liveStatePatch(g domain.Golfer, live *providers.LiveGolfer, status string, tournament domain.Tournament) domain.GolferPatch {
	var patch domain.GolferPatch
	if live == nil {
		return patch
	}
	if live.Position != "" && live.Position != g.Position {
		patch.Position = domain.Set(live.Position)
	}
	if live.MakeCut != nil && !floatEq(g.MakeCut, *live.MakeCut) {
		patch.MakeCut = domain.Set(*live.MakeCut)
	}
	if live.TopTen != nil && !floatEq(g.TopTen, *live.TopTen) {
		patch.TopTen = domain.Set(*live.TopTen)
	}
	if live.Win != nil && !floatEq(g.Win, *live.Win) {
		patch.Win = domain.Set(*live.Win)
	}
	if live.Round != nil && !intEq(g.Round, *live.Round) {
		patch.Round = domain.Set(*live.Round)
	}
	if status != domain.PositionWithdrawn && status != domain.PositionDQ {
		if live.Score != nil && !intEq(g.Score, *live.Score) {
			patch.Score = domain.Set(*live.Score)
		}
	}
	if !suppressInProgress(status, tournament) {
		if live.Today != nil && !intEq(g.Today, *live.Today) {
			patch.Today = domain.Set(*live.Today)
		}
		if live.Thru != nil && !intEq(g.Thru, *live.Thru) {
			patch.Thru = domain.Set(*live.Thru)
		}
	}
	return patch
}

// suppressInProgress reports whether today/thru should no longer mirror the
// feed for this golfer.
func suppressInProgress(status string, tournament domain.Tournament) bool {
	switch status {
	case domain.PositionWithdrawn, domain.PositionDQ:
		return true
	case domain.PositionCut:
		return tournament.Round() >= 3
	}
	return false
}

// terminalStatePatch pins the in-progress fields for golfers out of the
// tournament: withdrawn and disqualified golfers show a completed penalty
// round, cut golfers show nothing once the weekend rounds begin.
func terminalStatePatch(g domain.Golfer, status string, tournament domain.Tournament) domain.GolferPatch {
	var patch domain.GolferPatch
	switch status {
	case domain.PositionWithdrawn, domain.PositionDQ:
		if !intEq(g.Today, domain.PenaltyOverPar) {
			patch.Today = domain.Set(domain.PenaltyOverPar)
		}
		if !intEq(g.Thru, domain.HolesPerRound) {
			patch.Thru = domain.Set(domain.HolesPerRound)
		}
	case domain.PositionCut:
		if tournament.Round() >= 3 {
			if g.Today != nil {
				patch.Today = domain.Null[int]()
			}
			if g.Thru != nil {
				patch.Thru = domain.Null[int]()
			}
		}
	}
	return patch
}

// usagePatch writes the roster share once per tournament.
func usagePatch(g domain.Golfer, usage map[int]float64) domain.GolferPatch {
	var patch domain.GolferPatch
	if usage == nil || g.Usage != nil {
		return patch
	}
	patch.Usage = domain.Set(usage[g.ApiID])
	return patch
}

// currentRoundFrom returns the lowest round any non-terminal golfer still
// lacks a score for, parked at RoundFinished when none remain open.
func currentRoundFrom(golfers []domain.Golfer) int {
	for r := 1; r <= domain.RoundCount; r++ {
		for _, g := range golfers {
			if g.Terminal() {
				continue
			}
			if g.RoundScore(r) == nil {
				return r
			}
		}
	}
	return domain.RoundFinished
}

// anyLive reports whether any golfer is mid-round.
func anyLive(golfers []domain.Golfer) bool {
	for _, g := range golfers {
		if g.Thru != nil && *g.Thru > 0 && *g.Thru < domain.HolesPerRound {
			return true
		}
	}
	return false
}

func intEq(p *int, v int) bool {
	return p != nil && *p == v
}

func floatEq(p *float64, v float64) bool {
	return p != nil && *p == v
}
