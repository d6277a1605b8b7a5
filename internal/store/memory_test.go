package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
)

func testSeed() Seed {
	return Seed{
		Seasons: []domain.Season{
			{ID: "season-2024", Year: 2024, Number: 3},
			{ID: "season-2025", Year: 2025, Number: 4},
		},
		Tours: []domain.Tour{
			{ID: "tour-pgc", SeasonID: "season-2025", Name: "PGC Tour", ShortForm: "PGC"},
			{ID: "tour-ccg", SeasonID: "season-2025", Name: "CCG Tour", ShortForm: "CCG"},
		},
		Tiers: []domain.Tier{
			{ID: "tier-standard", SeasonID: "season-2025", Name: "Standard", Points: []int{500, 300}, Payouts: []float64{750, 400}},
		},
		Tournaments: []domain.Tournament{
			{
				ID: "t-masters", SeasonID: "season-2025", TierID: "tier-standard", ApiID: "14",
				Name: "The Masters", CoursePar: 72,
				StartDate: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC),
				TourIDs:   []string{"tour-pgc", "tour-ccg"},
			},
			{
				ID: "t-byron", SeasonID: "season-2025", TierID: "tier-standard", ApiID: "19",
				Name: "The CJ Cup Byron Nelson", CoursePar: 71,
				StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC),
				TourIDs:   []string{"tour-pgc"},
			},
		},
		Golfers: []domain.Golfer{
			{ApiID: 18417, TournamentID: "t-masters", PlayerName: "Scottie Scheffler", Group: 1},
			{ApiID: 5321, TournamentID: "t-masters", PlayerName: "Rory McIlroy", Group: 1},
		},
		Teams: []domain.Team{
			{TournamentID: "t-masters", TourCardID: "card-1", GolferIDs: []int{18417, 5321}},
		},
		TourCards: []domain.TourCard{
			{ID: "card-1", SeasonID: "season-2025", TourID: "tour-pgc", MemberID: "m-1", DisplayName: "Duty"},
		},
	}
}

func TestMemoryStoreCurrentSeason(t *testing.T) {
	s := NewMemoryStore()
	s.Load(testSeed())

	season, err := s.CurrentSeason(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if season.ID != "season-2025" {
		t.Fatalf("expected latest season, got %s", season.ID)
	}

	empty := NewMemoryStore()
	if _, err := empty.CurrentSeason(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreNextTournament(t *testing.T) {
	s := NewMemoryStore()
	s.Load(testSeed())

	now := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)
	next, err := s.NextTournament(context.Background(), "season-2025", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.ID != "t-byron" {
		t.Fatalf("expected t-byron, got %s", next.ID)
	}

	after := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := s.NextTournament(context.Background(), "season-2025", after); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after season end, got %v", err)
	}
}

func TestMemoryStoreCurrentTournamentWindow(t *testing.T) {
	s := NewMemoryStore()
	s.Load(testSeed())

	cases := []struct {
		name    string
		now     time.Time
		wantID  string
		wantErr bool
	}{
		{name: "mid tournament", now: time.Date(2025, 4, 11, 15, 0, 0, 0, time.UTC), wantID: "t-masters"},
		{name: "evening of final day", now: time.Date(2025, 4, 13, 22, 0, 0, 0, time.UTC), wantID: "t-masters"},
		{name: "day after final day", now: time.Date(2025, 4, 14, 1, 0, 0, 0, time.UTC), wantErr: true},
		{name: "before start", now: time.Date(2025, 4, 9, 23, 0, 0, 0, time.UTC), wantErr: true},
	}
	for _, tc := range cases {
		got, err := s.CurrentTournament(context.Background(), "season-2025", tc.now)
		if tc.wantErr {
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("%s: expected ErrNotFound, got %v", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got.ID != tc.wantID {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.wantID, got.ID)
		}
	}
}

func TestMemoryStoreCreateGolfersAssignsIDsAndSkipsDuplicates(t *testing.T) {
	s := NewMemoryStore()
	s.Load(testSeed())

	err := s.CreateGolfers(context.Background(), []domain.Golfer{
		{ApiID: 18417, TournamentID: "t-masters", PlayerName: "Scottie Scheffler"},
		{ApiID: 12345, TournamentID: "t-masters", PlayerName: "Ludvig Aberg", Group: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	golfers, err := s.GolfersByTournament(context.Background(), "t-masters")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(golfers) != 3 {
		t.Fatalf("expected 3 golfers after duplicate skip, got %d", len(golfers))
	}
	for i := 1; i < len(golfers); i++ {
		if golfers[i-1].ApiID >= golfers[i].ApiID {
			t.Fatalf("expected golfers ordered by api id, got %d before %d", golfers[i-1].ApiID, golfers[i].ApiID)
		}
	}
	for _, g := range golfers {
		if g.ID == 0 {
			t.Fatalf("expected assigned id for golfer %d", g.ApiID)
		}
	}
}

func TestMemoryStoreUpdateGolferAppliesPatch(t *testing.T) {
	s := NewMemoryStore()
	s.Load(testSeed())

	golfers, _ := s.GolfersByTournament(context.Background(), "t-masters")
	target := golfers[0]

	patch := domain.GolferPatch{
		Score:    domain.Set(-4),
		Position: domain.Set("T2"),
		Today:    domain.Null[int](),
	}
	if err := s.UpdateGolfer(context.Background(), target.ID, patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	golfers, _ = s.GolfersByTournament(context.Background(), "t-masters")
	for _, g := range golfers {
		if g.ID != target.ID {
			continue
		}
		if g.Score == nil || *g.Score != -4 {
			t.Fatalf("expected score -4, got %v", g.Score)
		}
		if g.Position != "T2" {
			t.Fatalf("expected position T2, got %q", g.Position)
		}
		if g.Today != nil {
			t.Fatalf("expected today cleared, got %v", *g.Today)
		}
	}

	if err := s.UpdateGolfer(context.Background(), 9999, patch); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing golfer, got %v", err)
	}
}

func TestMemoryStoreReadsReturnCopies(t *testing.T) {
	s := NewMemoryStore()
	s.Load(testSeed())

	teams, err := s.TeamsByTournament(context.Background(), "t-masters")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	teams[0].GolferIDs[0] = -1
	teams[0].TourCardID = "tampered"

	fresh, _ := s.TeamsByTournament(context.Background(), "t-masters")
	if fresh[0].GolferIDs[0] != 18417 {
		t.Fatalf("expected stored roster untouched, got %d", fresh[0].GolferIDs[0])
	}
	if fresh[0].TourCardID != "card-1" {
		t.Fatalf("expected stored tour card untouched, got %s", fresh[0].TourCardID)
	}
}

func TestMemoryStoreTeamsBySeason(t *testing.T) {
	s := NewMemoryStore()
	s.Load(testSeed())

	teams, err := s.TeamsBySeason(context.Background(), "season-2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected 1 team, got %d", len(teams))
	}

	teams, err = s.TeamsBySeason(context.Background(), "season-2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 0 {
		t.Fatalf("expected no teams in prior season, got %d", len(teams))
	}
}

func TestMemoryStoreUpdateTournamentAndTourCard(t *testing.T) {
	s := NewMemoryStore()
	s.Load(testSeed())

	err := s.UpdateTournament(context.Background(), "t-masters", domain.TournamentPatch{
		CurrentRound: domain.Set(3),
		LivePlay:     domain.Set(true),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tournament, _ := s.TournamentByID(context.Background(), "t-masters")
	if tournament.Round() != 3 || !tournament.LivePlay {
		t.Fatalf("expected round 3 live, got round %d live %v", tournament.Round(), tournament.LivePlay)
	}

	err = s.UpdateTourCard(context.Background(), "card-1", domain.TourCardPatch{
		Points:   domain.Set(500),
		Position: domain.Set("1"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cards, _ := s.TourCardsBySeason(context.Background(), "season-2025")
	if cards[0].Points != 500 || cards[0].Position != "1" {
		t.Fatalf("expected updated card, got points %d position %q", cards[0].Points, cards[0].Position)
	}
}
