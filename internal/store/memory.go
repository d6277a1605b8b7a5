package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
)

// MemoryStore keeps the whole league in process memory behind one RWMutex.
// Reads return deep copies, so callers can never reach the stored rows.
type MemoryStore struct {
	mu sync.RWMutex

	seasons     map[string]domain.Season
	tours       map[string]domain.Tour
	tiers       map[string]domain.Tier
	tournaments map[string]domain.Tournament
	golfers     map[int64]domain.Golfer
	teams       map[int64]domain.Team
	tourCards   map[string]domain.TourCard

	nextGolferID int64
	nextTeamID   int64
}

// Seed is a full snapshot used to initialise a MemoryStore. Golfers and
// teams with a zero ID are assigned one on load.
type Seed struct {
	Seasons     []domain.Season
	Tours       []domain.Tour
	Tiers       []domain.Tier
	Tournaments []domain.Tournament
	Golfers     []domain.Golfer
	Teams       []domain.Team
	TourCards   []domain.TourCard
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seasons:      make(map[string]domain.Season),
		tours:        make(map[string]domain.Tour),
		tiers:        make(map[string]domain.Tier),
		tournaments:  make(map[string]domain.Tournament),
		golfers:      make(map[int64]domain.Golfer),
		teams:        make(map[int64]domain.Team),
		tourCards:    make(map[string]domain.TourCard),
		nextGolferID: 1,
		nextTeamID:   1,
	}
}

// Load replaces the store contents with the seed snapshot.
func (s *MemoryStore) Load(seed Seed) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seasons = make(map[string]domain.Season, len(seed.Seasons))
	for _, v := range seed.Seasons {
		s.seasons[v.ID] = v
	}
	s.tours = make(map[string]domain.Tour, len(seed.Tours))
	for _, v := range seed.Tours {
		s.tours[v.ID] = v
	}
	s.tiers = make(map[string]domain.Tier, len(seed.Tiers))
	for _, v := range seed.Tiers {
		s.tiers[v.ID] = cloneTier(v)
	}
	s.tournaments = make(map[string]domain.Tournament, len(seed.Tournaments))
	for _, v := range seed.Tournaments {
		s.tournaments[v.ID] = cloneTournament(v)
	}
	s.tourCards = make(map[string]domain.TourCard, len(seed.TourCards))
	for _, v := range seed.TourCards {
		s.tourCards[v.ID] = v
	}

	s.golfers = make(map[int64]domain.Golfer, len(seed.Golfers))
	s.nextGolferID = 1
	for _, v := range seed.Golfers {
		if v.ID == 0 {
			v.ID = s.nextGolferID
		}
		if v.ID >= s.nextGolferID {
			s.nextGolferID = v.ID + 1
		}
		s.golfers[v.ID] = cloneGolfer(v)
	}

	s.teams = make(map[int64]domain.Team, len(seed.Teams))
	s.nextTeamID = 1
	for _, v := range seed.Teams {
		if v.ID == 0 {
			v.ID = s.nextTeamID
		}
		if v.ID >= s.nextTeamID {
			s.nextTeamID = v.ID + 1
		}
		s.teams[v.ID] = cloneTeam(v)
	}
}

// CurrentSeason returns the season with the highest year and number.
func (s *MemoryStore) CurrentSeason(ctx context.Context) (domain.Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best domain.Season
	found := false
	for _, season := range s.seasons {
		if !found || season.Year > best.Year || (season.Year == best.Year && season.Number > best.Number) {
			best = season
			found = true
		}
	}
	if !found {
		return domain.Season{}, ErrNotFound
	}
	return best, nil
}

// ToursBySeason returns the season's tours ordered by name.
func (s *MemoryStore) ToursBySeason(ctx context.Context, seasonID string) ([]domain.Tour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Tour, 0)
	for _, tour := range s.tours {
		if tour.SeasonID == seasonID {
			result = append(result, tour)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// TiersBySeason returns the season's tiers ordered by name.
func (s *MemoryStore) TiersBySeason(ctx context.Context, seasonID string) ([]domain.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Tier, 0)
	for _, tier := range s.tiers {
		if tier.SeasonID == seasonID {
			result = append(result, cloneTier(tier))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// TierByID retrieves one tier.
func (s *MemoryStore) TierByID(ctx context.Context, id string) (domain.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tier, ok := s.tiers[id]
	if !ok {
		return domain.Tier{}, ErrNotFound
	}
	return cloneTier(tier), nil
}

// TournamentsBySeason returns the season's schedule ordered by start date.
func (s *MemoryStore) TournamentsBySeason(ctx context.Context, seasonID string) ([]domain.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Tournament, 0)
	for _, t := range s.tournaments {
		if t.SeasonID == seasonID {
			result = append(result, cloneTournament(t))
		}
	}
	sortTournaments(result)
	return result, nil
}

// TournamentByID retrieves one tournament.
func (s *MemoryStore) TournamentByID(ctx context.Context, id string) (domain.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tournaments[id]
	if !ok {
		return domain.Tournament{}, ErrNotFound
	}
	return cloneTournament(t), nil
}

// NextTournament returns the season's earliest tournament starting after now.
func (s *MemoryStore) NextTournament(ctx context.Context, seasonID string, now time.Time) (domain.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]domain.Tournament, 0)
	for _, t := range s.tournaments {
		if t.SeasonID == seasonID && t.StartDate.After(now) {
			candidates = append(candidates, cloneTournament(t))
		}
	}
	if len(candidates) == 0 {
		return domain.Tournament{}, ErrNotFound
	}
	sortTournaments(candidates)
	return candidates[0], nil
}

// CurrentTournament returns the season's tournament whose play window
// contains now. The window closes at the end of the final scheduled day.
func (s *MemoryStore) CurrentTournament(ctx context.Context, seasonID string, now time.Time) (domain.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]domain.Tournament, 0)
	for _, t := range s.tournaments {
		if t.SeasonID == seasonID && windowContains(t, now) {
			candidates = append(candidates, cloneTournament(t))
		}
	}
	if len(candidates) == 0 {
		return domain.Tournament{}, ErrNotFound
	}
	sortTournaments(candidates)
	return candidates[len(candidates)-1], nil
}

// UpdateTournament applies a patch to one tournament.
func (s *MemoryStore) UpdateTournament(ctx context.Context, id string, patch domain.TournamentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[id]
	if !ok {
		return ErrNotFound
	}
	patch.Apply(&t)
	s.tournaments[id] = t
	return nil
}

// GolfersByTournament returns the tournament's field ordered by provider id.
func (s *MemoryStore) GolfersByTournament(ctx context.Context, tournamentID string) ([]domain.Golfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Golfer, 0)
	for _, g := range s.golfers {
		if g.TournamentID == tournamentID {
			result = append(result, cloneGolfer(g))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ApiID < result[j].ApiID })
	return result, nil
}

// CreateGolfers inserts new golfer rows, assigning fresh ids. Rows that
// collide with an existing tournament and provider id pair are skipped.
func (s *MemoryStore) CreateGolfers(ctx context.Context, golfers []domain.Golfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range golfers {
		if s.golferExistsLocked(g.TournamentID, g.ApiID) {
			continue
		}
		g.ID = s.nextGolferID
		s.nextGolferID++
		s.golfers[g.ID] = cloneGolfer(g)
	}
	return nil
}

// UpdateGolfer applies a patch to one golfer row.
func (s *MemoryStore) UpdateGolfer(ctx context.Context, id int64, patch domain.GolferPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.golfers[id]
	if !ok {
		return ErrNotFound
	}
	patch.Apply(&g)
	s.golfers[id] = g
	return nil
}

// TeamsByTournament returns the tournament's teams ordered by id.
func (s *MemoryStore) TeamsByTournament(ctx context.Context, tournamentID string) ([]domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Team, 0)
	for _, t := range s.teams {
		if t.TournamentID == tournamentID {
			result = append(result, cloneTeam(t))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// TeamsBySeason returns every team fielded in the season's tournaments.
func (s *MemoryStore) TeamsBySeason(ctx context.Context, seasonID string) ([]domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Team, 0)
	for _, t := range s.teams {
		tournament, ok := s.tournaments[t.TournamentID]
		if ok && tournament.SeasonID == seasonID {
			result = append(result, cloneTeam(t))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UpdateTeam applies a patch to one team row.
func (s *MemoryStore) UpdateTeam(ctx context.Context, id int64, patch domain.TeamPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.teams[id]
	if !ok {
		return ErrNotFound
	}
	patch.Apply(&t)
	s.teams[id] = t
	return nil
}

// TourCardsBySeason returns the season's tour cards ordered by id.
func (s *MemoryStore) TourCardsBySeason(ctx context.Context, seasonID string) ([]domain.TourCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.TourCard, 0)
	for _, c := range s.tourCards {
		if c.SeasonID == seasonID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UpdateTourCard applies a patch to one tour card.
func (s *MemoryStore) UpdateTourCard(ctx context.Context, id string, patch domain.TourCardPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.tourCards[id]
	if !ok {
		return ErrNotFound
	}
	patch.Apply(&c)
	s.tourCards[id] = c
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close releases nothing for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) golferExistsLocked(tournamentID string, apiID int) bool {
	for _, g := range s.golfers {
		if g.TournamentID == tournamentID && g.ApiID == apiID {
			return true
		}
	}
	return false
}

// windowContains reports whether now falls inside the tournament's play
// window, end date inclusive through end of day.
func windowContains(t domain.Tournament, now time.Time) bool {
	return !now.Before(t.StartDate) && now.Before(t.EndDate.Add(24*time.Hour))
}

func sortTournaments(ts []domain.Tournament) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].StartDate.Equal(ts[j].StartDate) {
			return ts[i].StartDate.Before(ts[j].StartDate)
		}
		return ts[i].ID < ts[j].ID
	})
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneGolfer(g domain.Golfer) domain.Golfer {
	out := g
	out.WorldRank = clonePtr(g.WorldRank)
	out.Rating = clonePtr(g.Rating)
	out.Country = clonePtr(g.Country)
	out.RoundOne = clonePtr(g.RoundOne)
	out.RoundTwo = clonePtr(g.RoundTwo)
	out.RoundThree = clonePtr(g.RoundThree)
	out.RoundFour = clonePtr(g.RoundFour)
	out.RoundOneTeeTime = clonePtr(g.RoundOneTeeTime)
	out.RoundTwoTeeTime = clonePtr(g.RoundTwoTeeTime)
	out.RoundThreeTeeTime = clonePtr(g.RoundThreeTeeTime)
	out.RoundFourTeeTime = clonePtr(g.RoundFourTeeTime)
	out.Score = clonePtr(g.Score)
	out.Today = clonePtr(g.Today)
	out.Thru = clonePtr(g.Thru)
	out.MakeCut = clonePtr(g.MakeCut)
	out.TopTen = clonePtr(g.TopTen)
	out.Win = clonePtr(g.Win)
	out.Usage = clonePtr(g.Usage)
	out.Round = clonePtr(g.Round)
	out.Earnings = clonePtr(g.Earnings)
	return out
}

func cloneTeam(t domain.Team) domain.Team {
	out := t
	out.GolferIDs = append([]int(nil), t.GolferIDs...)
	out.Score = clonePtr(t.Score)
	out.Today = clonePtr(t.Today)
	out.Thru = clonePtr(t.Thru)
	out.RoundOne = clonePtr(t.RoundOne)
	out.RoundTwo = clonePtr(t.RoundTwo)
	out.RoundThree = clonePtr(t.RoundThree)
	out.RoundFour = clonePtr(t.RoundFour)
	out.RoundOneTeeTime = clonePtr(t.RoundOneTeeTime)
	out.RoundTwoTeeTime = clonePtr(t.RoundTwoTeeTime)
	out.RoundThreeTeeTime = clonePtr(t.RoundThreeTeeTime)
	out.RoundFourTeeTime = clonePtr(t.RoundFourTeeTime)
	out.Points = clonePtr(t.Points)
	out.Earnings = clonePtr(t.Earnings)
	out.Round = clonePtr(t.Round)
	out.MakeCut = clonePtr(t.MakeCut)
	out.TopTen = clonePtr(t.TopTen)
	out.TopFive = clonePtr(t.TopFive)
	out.TopThree = clonePtr(t.TopThree)
	out.Win = clonePtr(t.Win)
	return out
}

func cloneTournament(t domain.Tournament) domain.Tournament {
	out := t
	out.CurrentRound = clonePtr(t.CurrentRound)
	out.TourIDs = append([]string(nil), t.TourIDs...)
	return out
}

func cloneTier(t domain.Tier) domain.Tier {
	out := t
	out.Points = append([]int(nil), t.Points...)
	out.Payouts = append([]float64(nil), t.Payouts...)
	return out
}

var _ Store = (*MemoryStore)(nil)
