package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/providers"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

const groupCount = 5

// defaultWorldRank stands in for golfers absent from the rankings feed.
const defaultWorldRank = 501

// missingSkillFloor sorts unranked golfers to the bottom of the field.
const missingSkillFloor = float64(-100)

// ratingFromSkill converts the provider's continuous skill estimate into the
// stored display rating.
func ratingFromSkill(skill float64) float64 {
	return math.Round((skill+2)/0.0004) / 100
}

// GroupsJob partitions the next tournament's field into five skill groups so
// every lineup drafts one golfer per group. Later events of a playoff series
// copy the roster from the series' first event instead.
type GroupsJob struct {
	store    store.Store
	provider providers.DataProvider
	cfg      config.GroupsConfig
	now      func() time.Time
}

// NewGroupsJob constructs the group-assignment job.
func NewGroupsJob(st store.Store, provider providers.DataProvider, cfg config.GroupsConfig) *GroupsJob {
	return &GroupsJob{store: st, provider: provider, cfg: cfg, now: time.Now}
}

// Name implements Job.
func (j *GroupsJob) Name() string { return "create-groups" }

// Run implements Job. The stage is a no-op once the tournament has any
// golfer rows; inserts happen one group at a time so a provider failure
// before the first insert leaves the store untouched.
func (j *GroupsJob) Run(ctx context.Context) (Result, error) {
	logger := logging.FromContext(ctx, nil)

	season, err := j.store.CurrentSeason(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: no current season", ErrNothingToDo)
	}
	if err != nil {
		return Result{}, fmt.Errorf("load current season: %w", err)
	}

	tournament, err := j.store.NextTournament(ctx, season.ID, j.now())
	if errors.Is(err, store.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: no upcoming tournament", ErrNothingToDo)
	}
	if err != nil {
		return Result{}, fmt.Errorf("load next tournament: %w", err)
	}

	existing, err := j.store.GolfersByTournament(ctx, tournament.ID)
	if err != nil {
		return Result{}, fmt.Errorf("load golfers: %w", err)
	}
	if len(existing) > 0 {
		return Result{Skipped: true, Message: "groups already created"}, nil
	}

	copied, result, err := j.tryPlayoffCopy(ctx, season.ID, tournament)
	if err != nil {
		return Result{}, err
	}
	if copied {
		return result, nil
	}

	field, err := j.provider.FetchField(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch field: %w", err)
	}
	rankings, err := j.provider.FetchRankings(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch rankings: %w", err)
	}

	golfers := buildField(tournament.ID, field.Golfers, rankings, j.cfg)
	created := 0
	for group := 1; group <= groupCount; group++ {
		batch := golfersInGroup(golfers, group)
		if len(batch) == 0 {
			continue
		}
		if err := j.store.CreateGolfers(ctx, batch); err != nil {
			return Result{}, fmt.Errorf("create group %d golfers: %w", group, err)
		}
		created += len(batch)
		logging.Info(logger, "group persisted",
			slog.Int("group", group), slog.Int(logging.FieldCount, len(batch)))
	}

	return Result{
		Processed: len(field.Golfers),
		Created:   created,
		Message:   fmt.Sprintf("created %d golfers across %d groups for %s", created, groupCount, tournament.Name),
	}, nil
}

// tryPlayoffCopy carries the roster of the season's first playoff event into
// later playoff events that share a tour. Group assignments, ratings and
// world ranks are preserved; live fields start fresh.
func (j *GroupsJob) tryPlayoffCopy(ctx context.Context, seasonID string, tournament domain.Tournament) (bool, Result, error) {
	tier, err := j.store.TierByID(ctx, tournament.TierID)
	if err != nil {
		return false, Result{}, fmt.Errorf("load tier: %w", err)
	}
	if tier.Name != domain.TierPlayoff {
		return false, Result{}, nil
	}

	first, ok, err := j.firstPlayoff(ctx, seasonID, tournament)
	if err != nil || !ok || first.ID == tournament.ID {
		return false, Result{}, err
	}

	source, err := j.store.GolfersByTournament(ctx, first.ID)
	if err != nil {
		return false, Result{}, fmt.Errorf("load playoff roster: %w", err)
	}
	if len(source) == 0 {
		return false, Result{}, nil
	}

	rows := make([]domain.Golfer, 0, len(source))
	for _, g := range source {
		rows = append(rows, domain.Golfer{
			ApiID:        g.ApiID,
			TournamentID: tournament.ID,
			PlayerName:   g.PlayerName,
			Group:        g.Group,
			WorldRank:    g.WorldRank,
			Rating:       g.Rating,
			Country:      g.Country,
		})
	}
	if err := j.store.CreateGolfers(ctx, rows); err != nil {
		return false, Result{}, fmt.Errorf("copy playoff roster: %w", err)
	}
	return true, Result{
		Processed: len(source),
		Created:   len(rows),
		Message:   fmt.Sprintf("copied %d golfers from %s", len(rows), first.Name),
	}, nil
}

// firstPlayoff finds the season's earliest playoff tournament sharing a tour
// with the current one.
func (j *GroupsJob) firstPlayoff(ctx context.Context, seasonID string, current domain.Tournament) (domain.Tournament, bool, error) {
	tiers, err := j.store.TiersBySeason(ctx, seasonID)
	if err != nil {
		return domain.Tournament{}, false, fmt.Errorf("load tiers: %w", err)
	}
	playoffTiers := make(map[string]bool)
	for _, t := range tiers {
		if t.Name == domain.TierPlayoff {
			playoffTiers[t.ID] = true
		}
	}

	tournaments, err := j.store.TournamentsBySeason(ctx, seasonID)
	if err != nil {
		return domain.Tournament{}, false, fmt.Errorf("load schedule: %w", err)
	}
	for _, t := range tournaments {
		if playoffTiers[t.TierID] && sharesTour(t.TourIDs, current.TourIDs) {
			return t, true, nil
		}
	}
	return domain.Tournament{}, false, nil
}

func sharesTour(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// fieldEntry pairs a field entrant with its ranking for the skill sort.
type fieldEntry struct {
	golfer  providers.FieldGolfer
	ranking *providers.Ranking
	skill   float64
}

// buildField sorts the field by descending skill and materialises golfer
// rows with group assignments. Denylisted golfers are dropped before
// grouping; unranked golfers sort last via the skill floor.
func buildField(tournamentID string, field []providers.FieldGolfer, rankings []providers.Ranking, cfg config.GroupsConfig) []domain.Golfer {
	excluded := make(map[int]bool, len(cfg.ExcludeApiIDs))
	for _, id := range cfg.ExcludeApiIDs {
		excluded[id] = true
	}
	byApiID := make(map[int]providers.Ranking, len(rankings))
	for _, r := range rankings {
		byApiID[r.ApiID] = r
	}

	entries := make([]fieldEntry, 0, len(field))
	for _, fg := range field {
		if excluded[fg.ApiID] {
			continue
		}
		e := fieldEntry{golfer: fg, skill: missingSkillFloor}
		if r, ok := byApiID[fg.ApiID]; ok {
			ranking := r
			e.ranking = &ranking
			e.skill = r.SkillEstimate
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].skill != entries[j].skill {
			return entries[i].skill > entries[j].skill
		}
		return entries[i].golfer.ApiID < entries[j].golfer.ApiID
	})

	groups := assignGroups(len(entries), cfg)
	golfers := make([]domain.Golfer, len(entries))
	for i, e := range entries {
		golfers[i] = newGolferRow(tournamentID, e.golfer, e.ranking, groups[i])
	}
	return golfers
}

// assignGroups splits a skill-sorted field of n golfers into five groups.
// Groups one through four fill to their share of the field, bounded by their
// caps; the remainder feeds group five. Under the alternate policy, early
// remainder golfers balance back into groups three and four by index parity
// while capacity lasts, until the pool left for group five falls to half the
// combined group-four-and-five target or a single golfer remains.
func assignGroups(n int, cfg config.GroupsConfig) []int {
	groups := make([]int, n)

	var targets [4]int
	total := 0
	for i := 0; i < 4; i++ {
		t := int(math.Round(float64(n) * cfg.Shares[i]))
		if t > cfg.Caps[i] {
			t = cfg.Caps[i]
		}
		targets[i] = t
		total += t
	}
	fifth := n - total
	if fifth < 0 {
		fifth = 0
	}
	threshold := (targets[3] + fifth) / 2

	idx := 0
	for g := 0; g < 4 && idx < n; g++ {
		for c := 0; c < targets[g] && idx < n; c++ {
			groups[idx] = g + 1
			idx++
		}
	}

	size3, size4 := targets[2], targets[3]
	parity := 0
	for ; idx < n; idx++ {
		remaining := n - idx
		if cfg.OverflowPolicy == config.OverflowFill || remaining == 1 || remaining <= threshold {
			groups[idx] = 5
			continue
		}
		placed := false
		for attempt := 0; attempt < 2 && !placed; attempt++ {
			if (parity+attempt)%2 == 0 {
				if size3 < cfg.Caps[2] {
					groups[idx] = 3
					size3++
					placed = true
				}
			} else if size4 < cfg.Caps[3] {
				groups[idx] = 4
				size4++
				placed = true
			}
		}
		if !placed {
			groups[idx] = 5
			continue
		}
		parity++
	}
	return groups
}

// newGolferRow materialises a stored golfer from provider data, applying the
// rating transform and the world-rank default. Shared with the golfer-update
// job for entrants who join the field after grouping.
func newGolferRow(tournamentID string, fg providers.FieldGolfer, ranking *providers.Ranking, group int) domain.Golfer {
	g := domain.Golfer{
		ApiID:        fg.ApiID,
		TournamentID: tournamentID,
		PlayerName:   fg.Name,
		Group:        group,
	}
	if fg.Country != "" {
		country := fg.Country
		g.Country = &country
	}
	worldRank := defaultWorldRank
	if ranking != nil {
		if ranking.WorldRank != nil {
			worldRank = *ranking.WorldRank
		}
		rating := ratingFromSkill(ranking.SkillEstimate)
		g.Rating = &rating
	}
	g.WorldRank = &worldRank
	return g
}

func golfersInGroup(golfers []domain.Golfer, group int) []domain.Golfer {
	out := make([]domain.Golfer, 0)
	for _, g := range golfers {
		if g.Group == group {
			out = append(out, g)
		}
	}
	return out
}
