package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/cron"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

var simNow = time.Date(2025, 4, 11, 15, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func simSeed() store.Seed {
	return store.Seed{
		Seasons: []domain.Season{{ID: "s25", Year: 2025, Number: 1}},
		Tours: []domain.Tour{
			{ID: "pgc", SeasonID: "s25", Name: "PGC Tour", ShortForm: "PGC"},
		},
		Tiers: []domain.Tier{
			{ID: "tier-standard", SeasonID: "s25", Name: "Standard", Points: []int{500, 300}, Payouts: []float64{10000, 6000}},
		},
		Tournaments: []domain.Tournament{
			{
				ID: "t1", SeasonID: "s25", TierID: "tier-standard", Name: "Spring Invitational", CoursePar: 72,
				StartDate: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC),
				TourIDs:   []string{"pgc"},
			},
		},
		TourCards: []domain.TourCard{
			{ID: "card-a", SeasonID: "s25", TourID: "pgc", MemberID: "m-a", DisplayName: "Alpha"},
			{ID: "card-b", SeasonID: "s25", TourID: "pgc", MemberID: "m-b", DisplayName: "Bravo"},
		},
	}
}

// rosterSeed adds two ten-golfer teams, one rated well above the other.
func rosterSeed() store.Seed {
	seed := simSeed()
	strong := make([]int, 10)
	weak := make([]int, 10)
	for i := 0; i < 10; i++ {
		strong[i] = 701 + i
		weak[i] = 711 + i
		seed.Golfers = append(seed.Golfers,
			domain.Golfer{ApiID: 701 + i, TournamentID: "t1", PlayerName: "Strong", Group: 1, Rating: floatPtr(100)},
			domain.Golfer{ApiID: 711 + i, TournamentID: "t1", PlayerName: "Weak", Group: 5, Rating: floatPtr(50)},
		)
	}
	seed.Teams = []domain.Team{
		{TournamentID: "t1", TourCardID: "card-a", GolferIDs: strong},
		{TournamentID: "t1", TourCardID: "card-b", GolferIDs: weak},
	}
	return seed
}

func newSimJob(st store.Store, seed int64, iterations int) *Job {
	job := NewJob(st, config.SimConfig{Iterations: iterations, RoundStdDev: 2.75, Seed: seed}, config.CronConfig{BatchSize: 10})
	job.now = func() time.Time { return simNow }
	return job
}

func teamByCard(t *testing.T, teams []domain.Team, cardID string) domain.Team {
	t.Helper()
	for _, team := range teams {
		if team.TourCardID == cardID {
			return team
		}
	}
	t.Fatalf("team for card %s not found", cardID)
	return domain.Team{}
}

func TestJobFavorsStrongerTeam(t *testing.T) {
	st := store.NewMemoryStore()
	st.Load(rosterSeed())
	job := newSimJob(st, 42, 300)

	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Updated != 2 {
		t.Fatalf("expected both teams written, got %+v", res)
	}

	teams, _ := st.TeamsByTournament(context.Background(), "t1")
	strong := teamByCard(t, teams, "card-a")
	weak := teamByCard(t, teams, "card-b")

	if strong.Win == nil || weak.Win == nil {
		t.Fatalf("expected win probabilities stored, got %v/%v", strong.Win, weak.Win)
	}
	if *strong.Win <= *weak.Win {
		t.Fatalf("expected the rated roster favored, got %v vs %v", *strong.Win, *weak.Win)
	}
	if *strong.Win < 0.9 || *weak.Win > 0.1 {
		t.Fatalf("expected a decisive edge at two strokes per round, got %v vs %v", *strong.Win, *weak.Win)
	}
	for _, team := range []domain.Team{strong, weak} {
		for name, p := range map[string]*float64{
			"makeCut": team.MakeCut, "topTen": team.TopTen, "topFive": team.TopFive,
			"topThree": team.TopThree, "win": team.Win,
		} {
			if p == nil || *p < 0 || *p > 1 {
				t.Fatalf("expected %s in [0,1], got %v", name, p)
			}
		}
	}
	if *strong.MakeCut != 1 || *weak.MakeCut != 1 {
		t.Fatalf("expected a field under the cut line to all advance, got %v/%v", *strong.MakeCut, *weak.MakeCut)
	}
	if *strong.TopThree != 1 || *weak.TopThree != 1 {
		t.Fatalf("expected both of two teams inside the top three, got %v/%v", *strong.TopThree, *weak.TopThree)
	}
}

func TestJobZeroesCutTeam(t *testing.T) {
	seed := rosterSeed()
	seed.Teams[1].Position = domain.PositionCut
	seed.Teams[1].MakeCut = floatPtr(0.4)
	seed.Teams[1].TopTen = floatPtr(0.2)
	seed.Teams[1].Win = floatPtr(0.05)
	st := store.NewMemoryStore()
	st.Load(seed)
	job := newSimJob(st, 42, 100)

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	teams, _ := st.TeamsByTournament(context.Background(), "t1")
	cut := teamByCard(t, teams, "card-b")
	for name, p := range map[string]*float64{
		"makeCut": cut.MakeCut, "topTen": cut.TopTen, "topFive": cut.TopFive,
		"topThree": cut.TopThree, "win": cut.Win,
	} {
		if p == nil || *p != 0 {
			t.Fatalf("expected %s zeroed for a cut team, got %v", name, p)
		}
	}
	if survivor := teamByCard(t, teams, "card-a"); survivor.Win == nil || *survivor.Win != 1 {
		t.Fatalf("expected the last team standing to always win, got %v", survivor.Win)
	}
}

func TestJobRerunWithFixedSeedWritesNothing(t *testing.T) {
	st := store.NewMemoryStore()
	st.Load(rosterSeed())
	job := newSimJob(st, 7, 200)

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Updated != 0 {
		t.Fatalf("expected a seeded rerun to be a no-op, got %+v", res)
	}
}

func TestJobSkipsWithoutTeams(t *testing.T) {
	st := store.NewMemoryStore()
	st.Load(simSeed())
	job := newSimJob(st, 42, 100)

	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Skipped {
		t.Fatalf("expected skip with no teams, got %+v", res)
	}
}

func TestJobNothingInWindow(t *testing.T) {
	st := store.NewMemoryStore()
	st.Load(rosterSeed())
	job := newSimJob(st, 42, 100)
	job.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	if _, err := job.Run(context.Background()); !errors.Is(err, cron.ErrNothingToDo) {
		t.Fatalf("expected nothing to do, got %v", err)
	}
}

func TestSurvivorsRankAgainstCutLine(t *testing.T) {
	golfers := make([]domain.Golfer, 70)
	field := make(map[int][domain.RoundCount]float64, 70)
	for i := 0; i < 70; i++ {
		apiID := i + 1
		golfers[i] = domain.Golfer{ApiID: apiID}
		total := 141.0 + float64(i)
		if apiID == 65 || apiID == 66 {
			total = 210
		}
		if apiID > 66 {
			total = 220 + float64(i)
		}
		field[apiID] = [domain.RoundCount]float64{total / 2, total / 2}
	}
	e := &engine{golfers: golfers}

	alive := e.survivors(field)

	count := 0
	for _, ok := range alive {
		if ok {
			count++
		}
	}
	if count != 66 {
		t.Fatalf("expected 65 and ties to advance, got %d", count)
	}
	if !alive[65] || !alive[66] {
		t.Fatal("expected both tied golfers on the number to advance")
	}
	if alive[67] {
		t.Fatal("expected the golfer outside the line to miss")
	}
}

func TestSurvivorsAfterRealCut(t *testing.T) {
	golfers := []domain.Golfer{
		{ApiID: 1, Position: "T10"},
		{ApiID: 2, Position: domain.PositionCut},
		{ApiID: 3, Position: domain.PositionWithdrawn},
	}
	e := &engine{golfers: golfers, weekend: true}

	alive := e.survivors(nil)
	if !alive[1] || alive[2] || alive[3] {
		t.Fatalf("expected stored positions to decide the weekend field, got %v", alive)
	}
}

func TestTeamScoreUsesStoredRounds(t *testing.T) {
	golfers := make([]domain.Golfer, 10)
	ids := make([]int, 10)
	field := make(map[int][domain.RoundCount]float64, 10)
	for i := 0; i < 10; i++ {
		ids[i] = 801 + i
		golfers[i] = domain.Golfer{ApiID: 801 + i}
		field[801+i] = [domain.RoundCount]float64{70, 70, 70, 70}
	}
	e := &engine{par: 72, golfers: golfers}

	score := e.teamScore(domain.Team{GolferIDs: ids}, field)
	if score != -8 {
		t.Fatalf("expected four rounds of 70 to total -8, got %v", score)
	}
}
