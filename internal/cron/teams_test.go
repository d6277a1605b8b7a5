package cron

import (
	"context"
	"testing"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

func newTeamsJob(st store.Store) *TeamsJob {
	job := NewTeamsJob(st, testCronConfig())
	job.now = fixedNow
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

func TestTeamsJobScoresCompletedRoundOne(t *testing.T) {
	seed := baseSeed()
	seed.Tournaments[0].CurrentRound = intPtr(2)
	seed.TourCards = []domain.TourCard{
		{ID: "card-a", SeasonID: "s25", TourID: "pgc", MemberID: "m-a", DisplayName: "Team A"},
	}
	strokes := []int{70, 71, 73, 68, 75, 74, 72, 69, 76, 70}
	ids := make([]int, len(strokes))
	for i, s := range strokes {
		ids[i] = 401 + i
		seed.Golfers = append(seed.Golfers, domain.Golfer{
			ApiID: 401 + i, TournamentID: "t1", PlayerName: "Golfer", Group: 1, RoundOne: intPtr(s),
		})
	}
	seed.Teams = []domain.Team{{TournamentID: "t1", TourCardID: "card-a", GolferIDs: ids}}
	st := seedStore(seed)
	job := newTeamsJob(st)

	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Updated != 1 || res.Processed != 1 {
		t.Fatalf("expected one team updated, got %+v", res)
	}

	teams, _ := st.TeamsByTournament(context.Background(), "t1")
	team := teamByCard(t, teams, "card-a")
	if team.RoundOne == nil || *team.RoundOne != 71.8 {
		t.Fatalf("expected round one mean 71.8, got %v", team.RoundOne)
	}
	if team.Score == nil || *team.Score != -0.2 {
		t.Fatalf("expected score -0.2, got %v", team.Score)
	}
	if team.Round == nil || *team.Round != 2 {
		t.Fatalf("expected team round 2, got %v", team.Round)
	}
	if team.Today != nil || team.Thru != nil {
		t.Fatalf("expected no in-progress fields outside live play, got %v/%v", team.Today, team.Thru)
	}
	if team.Position != "1" || team.PastPosition != "1" {
		t.Fatalf("expected sole team ranked first, got %q/%q", team.Position, team.PastPosition)
	}

	res, err = job.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Updated != 0 {
		t.Fatalf("expected no writes on rerun, got %+v", res)
	}
}

func TestTeamsJobCutsShortRoster(t *testing.T) {
	seed := baseSeed()
	seed.Tournaments[0].CurrentRound = intPtr(3)
	seed.Tournaments[0].LivePlay = true
	seed.TourCards = []domain.TourCard{
		{ID: "card-a", SeasonID: "s25", TourID: "pgc", MemberID: "m-a", DisplayName: "Team A"},
	}
	ids := make([]int, 10)
	for i := 0; i < 10; i++ {
		ids[i] = 411 + i
		g := domain.Golfer{ApiID: 411 + i, TournamentID: "t1", PlayerName: "Golfer", Group: 1}
		if i < 6 {
			g.Position = domain.PositionCut
		}
		seed.Golfers = append(seed.Golfers, g)
	}
	seed.Teams = []domain.Team{{
		TournamentID: "t1", TourCardID: "card-a", GolferIDs: ids,
		Position: "T20", Score: floatPtr(2.4), Today: floatPtr(1.2), Thru: floatPtr(18), Round: intPtr(2),
	}}
	st := seedStore(seed)
	job := newTeamsJob(st)
	job.now = func() time.Time { return time.Date(2025, 4, 12, 15, 0, 0, 0, time.UTC) }

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	teams, _ := st.TeamsByTournament(context.Background(), "t1")
	team := teamByCard(t, teams, "card-a")
	if team.Position != domain.PositionCut {
		t.Fatalf("expected team cut with four contenders, got %q", team.Position)
	}
	if team.Score != nil || team.Today != nil || team.Thru != nil {
		t.Fatalf("expected score fields cleared, got %v/%v/%v", team.Score, team.Today, team.Thru)
	}
	if team.Points == nil || *team.Points != 0 || team.Earnings == nil || *team.Earnings != 0 {
		t.Fatalf("expected zero points and earnings, got %v/%v", team.Points, team.Earnings)
	}
	if team.Round == nil || *team.Round != 3 {
		t.Fatalf("expected round mirrored onto the cut team, got %v", team.Round)
	}

	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Updated != 0 {
		t.Fatalf("expected cut team stable on rerun, got %+v", res)
	}
}

func TestTeamsJobLiveRoundOne(t *testing.T) {
	seed := baseSeed()
	seed.Tournaments[0].CurrentRound = intPtr(1)
	seed.Tournaments[0].LivePlay = true
	seed.TourCards = []domain.TourCard{
		{ID: "card-a", SeasonID: "s25", TourID: "pgc", MemberID: "m-a", DisplayName: "Team A"},
	}
	ids := make([]int, 10)
	for i := 0; i < 10; i++ {
		ids[i] = 421 + i
		g := domain.Golfer{ApiID: 421 + i, TournamentID: "t1", PlayerName: "Golfer", Group: 1}
		if i < 8 {
			g.Today = intPtr(-1)
			g.Thru = intPtr(9)
		}
		seed.Golfers = append(seed.Golfers, g)
	}
	seed.Teams = []domain.Team{{TournamentID: "t1", TourCardID: "card-a", GolferIDs: ids}}
	st := seedStore(seed)
	job := newTeamsJob(st)
	job.now = func() time.Time { return time.Date(2025, 4, 10, 15, 0, 0, 0, time.UTC) }

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	teams, _ := st.TeamsByTournament(context.Background(), "t1")
	team := teamByCard(t, teams, "card-a")
	if team.Today == nil || *team.Today != 0.8 {
		t.Fatalf("expected penalty-weighted today 0.8, got %v", team.Today)
	}
	if team.Thru == nil || *team.Thru != 7.2 {
		t.Fatalf("expected mean thru 7.2, got %v", team.Thru)
	}
	if team.Score == nil || *team.Score != 0.8 {
		t.Fatalf("expected live score 0.8, got %v", team.Score)
	}
	if team.RoundOne != nil {
		t.Fatalf("expected no round mean while the round is open, got %v", *team.RoundOne)
	}
}

func TestTeamsJobLiveWeekendCountsFive(t *testing.T) {
	seed := baseSeed()
	seed.Tournaments[0].CurrentRound = intPtr(3)
	seed.Tournaments[0].LivePlay = true
	seed.TourCards = []domain.TourCard{
		{ID: "card-a", SeasonID: "s25", TourID: "pgc", MemberID: "m-a", DisplayName: "Team A"},
	}
	ids := make([]int, 10)
	for i := 0; i < 10; i++ {
		ids[i] = 431 + i
		seed.Golfers = append(seed.Golfers, domain.Golfer{
			ApiID: 431 + i, TournamentID: "t1", PlayerName: "Golfer", Group: 1,
			RoundOne: intPtr(72), RoundTwo: intPtr(72),
			Today: intPtr(-5 + i), Thru: intPtr(10),
		})
	}
	seed.Teams = []domain.Team{{
		TournamentID: "t1", TourCardID: "card-a", GolferIDs: ids,
		RoundOne: floatPtr(72), RoundTwo: floatPtr(72), Round: intPtr(3),
		Score: floatPtr(-2.9), Today: floatPtr(-2.9), Thru: floatPtr(9),
	}}
	st := seedStore(seed)
	job := newTeamsJob(st)
	job.now = func() time.Time { return time.Date(2025, 4, 12, 15, 0, 0, 0, time.UTC) }

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	teams, _ := st.TeamsByTournament(context.Background(), "t1")
	team := teamByCard(t, teams, "card-a")
	if team.Today == nil || *team.Today != -3 {
		t.Fatalf("expected mean of the five lowest todays, got %v", team.Today)
	}
	if team.Thru == nil || *team.Thru != 10 {
		t.Fatalf("expected thru averaged over the counted five, got %v", team.Thru)
	}
	if team.Score == nil || *team.Score != -3 {
		t.Fatalf("expected score -3, got %v", team.Score)
	}
	if team.RoundOne == nil || *team.RoundOne != 72 || team.RoundTwo == nil || *team.RoundTwo != 72 {
		t.Fatalf("expected closed round means unchanged, got %v/%v", team.RoundOne, team.RoundTwo)
	}
}

func TestTeamsJobSettlesFinishedTournament(t *testing.T) {
	seed := baseSeed()
	seed.Tournaments[0].CurrentRound = intPtr(domain.RoundFinished)
	seed.TourCards = []domain.TourCard{
		{ID: "card-a", SeasonID: "s25", TourID: "pgc", MemberID: "m-a", DisplayName: "Team A"},
		{ID: "card-b", SeasonID: "s25", TourID: "pgc", MemberID: "m-b", DisplayName: "Team B"},
		{ID: "card-c", SeasonID: "s25", TourID: "pgc", MemberID: "m-c", DisplayName: "Team C"},
	}
	rosters := []struct {
		card    string
		baseID  int
		strokes int
	}{
		{card: "card-a", baseID: 501, strokes: 70},
		{card: "card-b", baseID: 511, strokes: 70},
		{card: "card-c", baseID: 521, strokes: 72},
	}
	for _, r := range rosters {
		ids := make([]int, 10)
		for i := 0; i < 10; i++ {
			ids[i] = r.baseID + i
			seed.Golfers = append(seed.Golfers, domain.Golfer{
				ApiID: r.baseID + i, TournamentID: "t1", PlayerName: "Golfer", Group: 1,
				RoundOne: intPtr(r.strokes), RoundTwo: intPtr(r.strokes),
				RoundThree: intPtr(r.strokes), RoundFour: intPtr(r.strokes),
			})
		}
		seed.Teams = append(seed.Teams, domain.Team{
			TournamentID: "t1", TourCardID: r.card, GolferIDs: ids,
			Round: intPtr(4), Today: floatPtr(-2), Thru: floatPtr(18),
		})
	}
	st := seedStore(seed)
	job := newTeamsJob(st)
	job.now = func() time.Time { return time.Date(2025, 4, 13, 19, 0, 0, 0, time.UTC) }

	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Updated != 3 {
		t.Fatalf("expected all three teams updated, got %+v", res)
	}

	teams, _ := st.TeamsByTournament(context.Background(), "t1")
	a := teamByCard(t, teams, "card-a")
	b := teamByCard(t, teams, "card-b")
	c := teamByCard(t, teams, "card-c")

	if a.Position != "T1" || b.Position != "T1" || c.Position != "3" {
		t.Fatalf("expected T1/T1/3, got %q/%q/%q", a.Position, b.Position, c.Position)
	}
	if a.Score == nil || *a.Score != -8 || c.Score == nil || *c.Score != 0 {
		t.Fatalf("expected scores -8 and 0, got %v/%v", a.Score, c.Score)
	}
	if a.Points == nil || *a.Points != 400 || b.Points == nil || *b.Points != 400 {
		t.Fatalf("expected tied winners to split 500 and 300, got %v/%v", a.Points, b.Points)
	}
	if c.Points == nil || *c.Points != 200 {
		t.Fatalf("expected third place points 200, got %v", c.Points)
	}
	if a.Earnings == nil || *a.Earnings != 8000 || c.Earnings == nil || *c.Earnings != 4000 {
		t.Fatalf("expected earnings 8000 and 4000, got %v/%v", a.Earnings, c.Earnings)
	}
	if a.Round == nil || *a.Round != domain.RoundFinished {
		t.Fatalf("expected team round at the finished sentinel, got %v", a.Round)
	}
	if a.RoundFour == nil || *a.RoundFour != 70 {
		t.Fatalf("expected round four mean 70, got %v", a.RoundFour)
	}

	res, err = job.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Updated != 0 {
		t.Fatalf("expected settled teams stable on rerun, got %+v", res)
	}
}

func TestApplyPositionsPoolsAndTies(t *testing.T) {
	cards := map[string]domain.TourCard{
		"c1": {ID: "c1", TourID: "pgc"},
		"c2": {ID: "c2", TourID: "pgc"},
		"c3": {ID: "c3", TourID: "pgc"},
		"c4": {ID: "c4", TourID: "pgc"},
		"c5": {ID: "c5", TourID: "clt"},
	}
	tier := domain.Tier{Points: []int{10, 8, 6, 4}, Payouts: []float64{100, 80, 60, 40}}
	tournament := domain.Tournament{CurrentRound: intPtr(domain.RoundFinished)}

	updates := []teamUpdate{
		{team: domain.Team{ID: 1, TourCardID: "c1", Score: floatPtr(-10)}},
		{team: domain.Team{ID: 2, TourCardID: "c2", Score: floatPtr(-8), Today: floatPtr(-5)}},
		{team: domain.Team{ID: 3, TourCardID: "c3", Score: floatPtr(-6)}},
		{team: domain.Team{ID: 4, TourCardID: "c4", Score: floatPtr(-6)}},
		{team: domain.Team{ID: 5, TourCardID: "c5", Score: floatPtr(-1)}},
		{team: domain.Team{ID: 6, TourCardID: "c1", Position: domain.PositionCut}},
		{team: domain.Team{ID: 7, TourCardID: "ghost", Score: floatPtr(-4)}},
	}

	applyPositions(updates, cards, &tier, tournament)

	apply := func(i int) domain.Team {
		team := updates[i].team
		updates[i].patch.Apply(&team)
		return team
	}

	first := apply(0)
	if first.Position != "1" || first.PastPosition != "1" {
		t.Fatalf("expected leader 1/1, got %q/%q", first.Position, first.PastPosition)
	}
	if first.Points == nil || *first.Points != 10 || first.Earnings == nil || *first.Earnings != 100 {
		t.Fatalf("expected full winner share, got %v/%v", first.Points, first.Earnings)
	}

	mover := apply(1)
	if mover.Position != "2" || mover.PastPosition != "4" {
		t.Fatalf("expected 2 now and 4 overnight, got %q/%q", mover.Position, mover.PastPosition)
	}

	tiedA, tiedB := apply(2), apply(3)
	if tiedA.Position != "T3" || tiedB.Position != "T3" {
		t.Fatalf("expected shared third, got %q/%q", tiedA.Position, tiedB.Position)
	}
	if tiedA.Points == nil || *tiedA.Points != 5 || tiedB.Points == nil || *tiedB.Points != 5 {
		t.Fatalf("expected tied pair to split 6 and 4 points, got %v/%v", tiedA.Points, tiedB.Points)
	}
	if tiedA.Earnings == nil || *tiedA.Earnings != 50 {
		t.Fatalf("expected tied pair to split 60 and 40, got %v", tiedA.Earnings)
	}

	other := apply(4)
	if other.Position != "1" {
		t.Fatalf("expected the other tour ranked on its own, got %q", other.Position)
	}
	if other.Points == nil || *other.Points != 10 {
		t.Fatalf("expected the other tour's winner share, got %v", other.Points)
	}

	if !updates[5].patch.IsZero() {
		t.Fatal("expected cut team left out of the pool")
	}
	if !updates[6].patch.IsZero() {
		t.Fatal("expected team without a tour card left out of the pool")
	}
}

func TestTeamTeeTimesPatch(t *testing.T) {
	r1Times := []string{
		"2025-04-10 09:10", "2025-04-10 08:30", "2025-04-10 10:00", "2025-04-10 09:50",
		"2025-04-10 11:20", "2025-04-10 07:45", "2025-04-10 12:05",
	}
	r3Times := []string{
		"2025-04-12 07:30", "2025-04-12 08:00", "2025-04-12 08:45", "2025-04-12 09:15",
		"2025-04-12 09:55", "2025-04-12 10:30", "2025-04-12 11:10",
	}
	r4Times := []string{"2025-04-13 08:00", "2025-04-13 08:50", "2025-04-13 09:40"}

	golfers := make([]domain.Golfer, 7)
	for i := range golfers {
		golfers[i] = domain.Golfer{
			ApiID:             601 + i,
			RoundOneTeeTime:   strPtr(r1Times[i]),
			RoundTwoTeeTime:   strPtr("2025-04-11 09:00"),
			RoundThreeTeeTime: strPtr(r3Times[i]),
		}
		if i < len(r4Times) {
			golfers[i].RoundFourTeeTime = strPtr(r4Times[i])
		}
	}
	team := domain.Team{
		RoundOneTeeTime: strPtr("2025-04-10 09:10"),
		RoundTwoTeeTime: strPtr("2025-04-12 10:00"),
	}

	patch := teamTeeTimesPatch(team, golfers, testNow)
	patch.Apply(&team)

	if team.RoundOneTeeTime == nil || *team.RoundOneTeeTime != "2025-04-10 07:45" {
		t.Fatalf("expected stale time corrected to the earliest start, got %v", team.RoundOneTeeTime)
	}
	if team.RoundTwoTeeTime == nil || *team.RoundTwoTeeTime != "2025-04-12 10:00" {
		t.Fatalf("expected future stored time untouched, got %v", team.RoundTwoTeeTime)
	}
	if team.RoundThreeTeeTime == nil || *team.RoundThreeTeeTime != "2025-04-12 10:30" {
		t.Fatalf("expected sixth earliest weekend start, got %v", team.RoundThreeTeeTime)
	}
	if team.RoundFourTeeTime == nil || *team.RoundFourTeeTime != "2025-04-13 09:40" {
		t.Fatalf("expected latest start when fewer than six tee off, got %v", team.RoundFourTeeTime)
	}
}

func TestTeamsJobSkipsWithoutTeams(t *testing.T) {
	st := seedStore(baseSeed())
	job := newTeamsJob(st)

	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Skipped {
		t.Fatalf("expected skip with no teams, got %+v", res)
	}
}
