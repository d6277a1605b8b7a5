package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/scoring"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/timeutil"
)

// teamCounted is the number of golfers counted toward weekend rounds, which
// doubles as the cut threshold: a team that cannot field this many is out.
const teamCounted = 5

// TeamsJob recomputes every team's aggregate score from its golfers' stored
// state, then resolves tour-scoped positions and, once the tournament closes,
// points and earnings.
type TeamsJob struct {
	store      store.Store
	batchSize  int
	batchDelay time.Duration
	now        func() time.Time
}

// NewTeamsJob constructs the team-update job.
func NewTeamsJob(st store.Store, cronCfg config.CronConfig) *TeamsJob {
	return &TeamsJob{
		store:      st,
		batchSize:  cronCfg.BatchSize,
		batchDelay: cronCfg.BatchDelay,
		now:        time.Now,
	}
}

// Name implements Job.
func (j *TeamsJob) Name() string { return "update-teams" }

// teamUpdate pairs a team's post-recompute state with its staged patch. The
// position pass reads the state and appends to the patch before the single
// persist per team.
type teamUpdate struct {
	team  domain.Team
	patch domain.TeamPatch
}

// Run implements Job. Scores are recomputed for every team before any
// position is resolved; rankings over a half-scored pool would be wrong.
func (j *TeamsJob) Run(ctx context.Context) (Result, error) {
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

	teams, err := j.store.TeamsByTournament(ctx, tournament.ID)
	if err != nil {
		return Result{}, fmt.Errorf("load teams: %w", err)
	}
	if len(teams) == 0 {
		return Result{Skipped: true, Message: "no teams on file"}, nil
	}

	golfers, err := j.store.GolfersByTournament(ctx, tournament.ID)
	if err != nil {
		return Result{}, fmt.Errorf("load golfers: %w", err)
	}
	byApiID := make(map[int]domain.Golfer, len(golfers))
	for _, g := range golfers {
		byApiID[g.ApiID] = g
	}

	cards, err := j.store.TourCardsBySeason(ctx, season.ID)
	if err != nil {
		return Result{}, fmt.Errorf("load tour cards: %w", err)
	}
	cardByID := make(map[string]domain.TourCard, len(cards))
	for _, c := range cards {
		cardByID[c.ID] = c
	}

	var tier *domain.Tier
	if tournament.Finished() && !tournament.LivePlay {
		t, err := j.store.TierByID(ctx, tournament.TierID)
		if err != nil {
			return Result{}, fmt.Errorf("load tier: %w", err)
		}
		tier = &t
	}

	updates := make([]teamUpdate, len(teams))
	for i, team := range teams {
		patch := teamScorePatch(team, byApiID, tournament, now)
		patch.Apply(&team)
		updates[i] = teamUpdate{team: team, patch: patch}
	}

	applyPositions(updates, cardByID, tier, tournament)

	updated := 0
	failed, err := InBatches(ctx, updates, j.batchSize, j.batchDelay, func(ctx context.Context, u teamUpdate) error {
		if u.patch.IsZero() {
			return nil
		}
		if err := j.store.UpdateTeam(ctx, u.team.ID, u.patch); err != nil {
			logging.Error(logger, "team update failed", err,
				slog.Int64(logging.FieldTeamID, u.team.ID),
				slog.String(logging.FieldTournamentID, u.team.TournamentID))
			return err
		}
		updated++
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("team batch: %w", err)
	}

	return Result{
		Processed: len(teams),
		Updated:   updated,
		Failed:    failed,
		Message:   fmt.Sprintf("updated %d of %d teams", updated, len(teams)),
	}, nil
}

// teamScorePatch stages one team's full recompute: round mirror, cut check,
// tee times, closed-round means and the score aggregates.
func teamScorePatch(team domain.Team, byApiID map[int]domain.Golfer, tournament domain.Tournament, now time.Time) domain.TeamPatch {
	patch := teamRoundPatch(team, tournament)
	usable := usableGolfers(team, byApiID)
	if team.Cut() || len(usable) < teamCounted {
		return patch.Merge(teamCutPatch(team))
	}
	patch = patch.Merge(teamTeeTimesPatch(team, usable, now))
	means := closedRoundMeans(team, byApiID, tournament)
	patch = patch.Merge(teamRoundsPatch(team, means))
	patch = patch.Merge(teamAggregatesPatch(team, usable, means, tournament))
	return patch
}

// usableGolfers returns the rostered golfers still in contention.
func usableGolfers(team domain.Team, byApiID map[int]domain.Golfer) []domain.Golfer {
	usable := make([]domain.Golfer, 0, len(team.GolferIDs))
	for _, id := range team.GolferIDs {
		g, ok := byApiID[id]
		if !ok || g.Terminal() {
			continue
		}
		usable = append(usable, g)
	}
	return usable
}

// teamRoundPatch mirrors the tournament's round pointer onto the team. The
// mirror applies to cut teams too; standings only count teams whose round
// pointer reached the finished sentinel.
func teamRoundPatch(team domain.Team, tournament domain.Tournament) domain.TeamPatch {
	var patch domain.TeamPatch
	round := tournament.Round()
	if team.Round == nil || *team.Round != round {
		patch.Round = domain.Set(round)
	}
	return patch
}

// teamCutPatch stages the terminal CUT state: no score, zero value. Points
// and earnings settle to zero rather than null so standings still count the
// appearance.
func teamCutPatch(team domain.Team) domain.TeamPatch {
	var patch domain.TeamPatch
	if team.Position != domain.PositionCut {
		patch.Position = domain.Set(domain.PositionCut)
	}
	if team.Score != nil {
		patch.Score = domain.Null[float64]()
	}
	if team.Today != nil {
		patch.Today = domain.Null[float64]()
	}
	if team.Thru != nil {
		patch.Thru = domain.Null[float64]()
	}
	if team.Points == nil || *team.Points != 0 {
		patch.Points = domain.Set(0)
	}
	if team.Earnings == nil || *team.Earnings != 0 {
		patch.Earnings = domain.Set(0.0)
	}
	return patch
}

// teamTeeTimesPatch refreshes per-round tee times from the contending
// golfers' start order. Rounds one and two take the earliest time; the
// weekend rounds take the sixth earliest to match paired starts, falling
// back to the latest when the roster starts fewer. A stored time still in
// the future is left alone.
func teamTeeTimesPatch(team domain.Team, usable []domain.Golfer, now time.Time) domain.TeamPatch {
	var patch domain.TeamPatch
	for r := 1; r <= domain.RoundCount; r++ {
		stored := team.TeeTime(r)
		if stored != nil && timeutil.TeeTimeFuture(*stored, now) {
			continue
		}
		times := roundTeeTimes(usable, r)
		if len(times) == 0 {
			continue
		}
		idx := 0
		if r >= 3 {
			idx = teamCounted
			if idx >= len(times) {
				idx = len(times) - 1
			}
		}
		if stored == nil || *stored != times[idx] {
			patch.SetTeeTime(r, times[idx])
		}
	}
	return patch
}

// roundTeeTimes returns the golfers' tee times for round r in start order.
// The tee-time layout sorts chronologically as text.
func roundTeeTimes(golfers []domain.Golfer, r int) []string {
	times := make([]string, 0, len(golfers))
	for _, g := range golfers {
		if tt := g.TeeTime(r); tt != nil && *tt != "" {
			times = append(times, *tt)
		}
	}
	sort.Strings(times)
	return times
}

// closedRoundMeans recomputes the per-round stroke means for every closed
// round, indexed by round minus one; open rounds hold nil. Recomputing
// rather than trusting the stored value lets a cycle heal rounds scored
// after the fact.
func closedRoundMeans(team domain.Team, byApiID map[int]domain.Golfer, tournament domain.Tournament) [domain.RoundCount]*float64 {
	var means [domain.RoundCount]*float64
	for r := 1; r < tournament.Round() && r <= domain.RoundCount; r++ {
		m := roundMean(team, byApiID, r, tournament.CoursePar)
		means[r-1] = &m
	}
	return means
}

// roundMean is the team's aggregate strokes for one closed round: the mean
// over the full roster for rounds one and two, the mean of the five lowest
// for the weekend rounds. A golfer with no strokes on file contributes the
// penalty score.
func roundMean(team domain.Team, byApiID map[int]domain.Golfer, r, par int) float64 {
	fallback := float64(par + domain.PenaltyOverPar)
	if r <= 2 {
		values := make([]float64, 0, len(team.GolferIDs))
		for _, id := range team.GolferIDs {
			values = append(values, roundStrokes(byApiID, id, r, fallback))
		}
		return scoring.RoundTenth(scoring.Mean(values))
	}
	entries := make([]scoring.Entry, 0, len(team.GolferIDs))
	for _, id := range team.GolferIDs {
		entries = append(entries, scoring.Entry{ID: id, Value: roundStrokes(byApiID, id, r, fallback)})
	}
	return scoring.RoundTenth(scoring.MeanBestN(entries, teamCounted))
}

func roundStrokes(byApiID map[int]domain.Golfer, apiID, r int, fallback float64) float64 {
	g, ok := byApiID[apiID]
	if !ok {
		return fallback
	}
	rs := g.RoundScore(r)
	if rs == nil {
		return fallback
	}
	return float64(*rs)
}

// teamRoundsPatch stages the recomputed closed-round means where they differ
// from storage.
func teamRoundsPatch(team domain.Team, means [domain.RoundCount]*float64) domain.TeamPatch {
	var patch domain.TeamPatch
	for r := 1; r <= domain.RoundCount; r++ {
		m := means[r-1]
		if m == nil {
			continue
		}
		if stored := team.RoundScore(r); stored == nil || *stored != *m {
			patch.SetRound(r, *m)
		}
	}
	return patch
}

// teamAggregatesPatch stages score and, while play is live, today and thru.
// Score is the sum of closed-round differentials to par, plus the live today
// when mid-round. Outside live play the in-progress fields keep their last
// values, and score stays untouched until a round has closed.
func teamAggregatesPatch(team domain.Team, usable []domain.Golfer, means [domain.RoundCount]*float64, tournament domain.Tournament) domain.TeamPatch {
	var patch domain.TeamPatch

	base := 0.0
	closed := 0
	for r := 1; r <= domain.RoundCount; r++ {
		if means[r-1] == nil {
			continue
		}
		base += *means[r-1] - float64(tournament.CoursePar)
		closed++
	}

	if tournament.LivePlay && tournament.Round() <= domain.RoundCount {
		today, thru := liveMeans(usable, tournament.Round())
		if !floatEq(team.Today, today) {
			patch.Today = domain.Set(today)
		}
		if !floatEq(team.Thru, thru) {
			patch.Thru = domain.Set(thru)
		}
		if score := scoring.RoundTenth(base + today); !floatEq(team.Score, score) {
			patch.Score = domain.Set(score)
		}
		return patch
	}

	if closed == 0 {
		return patch
	}
	if score := scoring.RoundTenth(base); !floatEq(team.Score, score) {
		patch.Score = domain.Set(score)
	}
	return patch
}

// liveMeans returns the team's mean today and thru for the round in play.
// The first two rounds count every contending golfer; the weekend rounds
// count the five lowest by today, ties broken by golfer ID.
func liveMeans(usable []domain.Golfer, round int) (today, thru float64) {
	counted := usable
	if round >= 3 {
		entries := make([]scoring.Entry, len(usable))
		for i, g := range usable {
			entries[i] = scoring.Entry{ID: g.ApiID, Value: golferToday(g)}
		}
		keep := make(map[int]bool, teamCounted)
		for _, e := range scoring.BestN(entries, teamCounted) {
			keep[e.ID] = true
		}
		selected := make([]domain.Golfer, 0, teamCounted)
		for _, g := range usable {
			if keep[g.ApiID] {
				selected = append(selected, g)
			}
		}
		counted = selected
	}
	todays := make([]float64, len(counted))
	thrus := make([]float64, len(counted))
	for i, g := range counted {
		todays[i] = golferToday(g)
		thrus[i] = golferThru(g)
	}
	return scoring.RoundTenth(scoring.Mean(todays)), scoring.RoundTenth(scoring.Mean(thrus))
}

// golferToday is the golfer's current-round differential, defaulting to the
// penalty differential when the feed has none.
func golferToday(g domain.Golfer) float64 {
	if g.Today != nil {
		return float64(*g.Today)
	}
	return float64(domain.PenaltyOverPar)
}

func golferThru(g domain.Golfer) float64 {
	if g.Thru != nil {
		return float64(*g.Thru)
	}
	return 0
}

// applyPositions resolves tour-scoped standings over the freshly scored
// teams, then settles points and earnings once the tournament has closed.
// Cut and unscored teams stay out of the ranking pool.
func applyPositions(updates []teamUpdate, cards map[string]domain.TourCard, tier *domain.Tier, tournament domain.Tournament) {
	pools := make(map[string][]int)
	for i := range updates {
		t := updates[i].team
		if t.Cut() || t.Score == nil {
			continue
		}
		card, ok := cards[t.TourCardID]
		if !ok {
			continue
		}
		pools[card.TourID] = append(pools[card.TourID], i)
	}

	finished := tournament.Finished() && !tournament.LivePlay
	for _, pool := range pools {
		scores := make([]float64, len(pool))
		pasts := make([]float64, len(pool))
		for k, i := range pool {
			t := updates[i].team
			scores[k] = *t.Score
			pasts[k] = *t.Score
			if t.Today != nil {
				pasts[k] -= *t.Today
			}
		}
		positions := scoring.PositionsAsc(scores)
		pastPositions := scoring.PositionsAsc(pasts)

		for k, i := range pool {
			u := &updates[i]
			if pos := positions[k].String(); u.team.Position != pos {
				u.patch.Position = domain.Set(pos)
			}
			if past := pastPositions[k].String(); u.team.PastPosition != past {
				u.patch.PastPosition = domain.Set(past)
			}
			if !finished || tier == nil {
				continue
			}
			width := tieWidth(scores, scores[k])
			points := scoring.RoundPoints(scoring.PointsShare(tier.Points, positions[k].Rank, width))
			if u.team.Points == nil || *u.team.Points != points {
				u.patch.Points = domain.Set(points)
			}
			earnings := scoring.RoundCents(scoring.PayoutShare(tier.Payouts, positions[k].Rank, width))
			if u.team.Earnings == nil || *u.team.Earnings != earnings {
				u.patch.Earnings = domain.Set(earnings)
			}
		}
	}
}

// tieWidth counts pool teams sharing a score.
func tieWidth(scores []float64, score float64) int {
	n := 0
	for _, s := range scores {
		if s == score {
			n++
		}
	}
	return n
}
