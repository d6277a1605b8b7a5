package fixture

import (
	"context"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/providers"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/timeutil"
)

const eventName = "Fixture Invitational"

// golferSeed drives all three feeds so the fixture data stays consistent.
type golferSeed struct {
	apiID     int
	name      string
	country   string
	skill     float64
	worldRank int
	position  string
	score     int
	today     int
	thru      int
	rounds    [4]int // 0 = not yet played
	makeCut   float64
	topTen    float64
	win       float64
}

var seeds = []golferSeed{
	{apiID: 101, name: "Aaron Pike", country: "USA", skill: 2.45, worldRank: 3, position: "1", score: -8, today: -3, thru: 14, rounds: [4]int{67, 0, 0, 0}, makeCut: 1, topTen: 0.88, win: 0.41},
	{apiID: 102, name: "Ben Keller", country: "USA", skill: 2.05, worldRank: 7, position: "T2", score: -6, today: -2, thru: 12, rounds: [4]int{68, 0, 0, 0}, makeCut: 1, topTen: 0.74, win: 0.18},
	{apiID: 103, name: "Carlos Vega", country: "ESP", skill: 1.9, worldRank: 11, position: "T2", score: -6, today: -4, thru: 16, rounds: [4]int{70, 0, 0, 0}, makeCut: 1, topTen: 0.7, win: 0.14},
	{apiID: 104, name: "Derek Shaw", country: "CAN", skill: 1.55, worldRank: 19, position: "4", score: -4, today: -1, thru: 18, rounds: [4]int{69, 0, 0, 0}, makeCut: 0.97, topTen: 0.52, win: 0.08},
	{apiID: 105, name: "Evan Brooks", country: "USA", skill: 1.3, worldRank: 24, position: "T5", score: -3, today: 0, thru: 9, rounds: [4]int{69, 0, 0, 0}, makeCut: 0.95, topTen: 0.4, win: 0.05},
	{apiID: 106, name: "Felix Marsh", country: "ENG", skill: 1.1, worldRank: 33, position: "T5", score: -3, today: -3, thru: 18, rounds: [4]int{72, 0, 0, 0}, makeCut: 0.93, topTen: 0.38, win: 0.04},
	{apiID: 107, name: "Gavin Cole", country: "AUS", skill: 0.85, worldRank: 41, position: "T7", score: -1, today: 1, thru: 11, rounds: [4]int{70, 0, 0, 0}, makeCut: 0.81, topTen: 0.22, win: 0.02},
	{apiID: 108, name: "Henry Dodd", country: "IRL", skill: 0.6, worldRank: 58, position: "T7", score: -1, today: -1, thru: 13, rounds: [4]int{72, 0, 0, 0}, makeCut: 0.79, topTen: 0.19, win: 0.02},
	{apiID: 109, name: "Ivan Petrov", country: "GER", skill: 0.35, worldRank: 77, position: "T9", score: 1, today: 0, thru: 6, rounds: [4]int{73, 0, 0, 0}, makeCut: 0.48, topTen: 0.08, win: 0.01},
	{apiID: 110, name: "Jack Reiner", country: "USA", skill: 0.2, worldRank: 96, position: "T9", score: 1, today: 2, thru: 18, rounds: [4]int{71, 0, 0, 0}, makeCut: 0.42, topTen: 0.06, win: 0.01},
	{apiID: 111, name: "Kyle Norman", country: "SCO", skill: -0.1, worldRank: 140, position: "CUT", score: 9, today: 0, thru: 0, rounds: [4]int{78, 0, 0, 0}, makeCut: 0, topTen: 0, win: 0},
	{apiID: 112, name: "Liam Carty", country: "USA", skill: -0.4, worldRank: 0, position: "WD", score: 11, today: 8, thru: 18, rounds: [4]int{80, 0, 0, 0}, makeCut: 0, topTen: 0, win: 0},
}

// Provider returns a static golf event useful for local testing and
// bootstrapping without a Data Golf key.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchField returns a deterministic field list with round one and two tee
// times anchored to the provider's clock.
func (p *Provider) FetchField(ctx context.Context) (*providers.Field, error) {
	_ = ctx

	day := p.now().UTC().Truncate(24 * time.Hour)
	field := &providers.Field{
		EventName:    eventName,
		CurrentRound: 2,
		Golfers:      make([]providers.FieldGolfer, 0, len(seeds)),
	}
	for i, s := range seeds {
		teeOne := day.Add(8 * time.Hour).Add(time.Duration(i*11) * time.Minute)
		teeTwo := day.Add(32 * time.Hour).Add(time.Duration(i*11) * time.Minute)
		field.Golfers = append(field.Golfers, providers.FieldGolfer{
			ApiID:   s.apiID,
			Name:    s.name,
			Country: s.country,
			TeeTimes: [4]string{
				teeOne.Format(timeutil.TeeTimeLayout),
				teeTwo.Format(timeutil.TeeTimeLayout),
				"",
				"",
			},
		})
	}
	return field, nil
}

// FetchLive returns deterministic in-play scoring for the fixture event.
func (p *Provider) FetchLive(ctx context.Context) (*providers.Live, error) {
	_ = ctx

	live := &providers.Live{
		EventName:    eventName,
		CurrentRound: 2,
		Golfers:      make([]providers.LiveGolfer, 0, len(seeds)),
	}
	for i := range seeds {
		s := seeds[i]
		g := providers.LiveGolfer{
			ApiID:    s.apiID,
			Name:     s.name,
			Country:  s.country,
			Position: s.position,
			Score:    intPtr(s.score),
			MakeCut:  floatPtr(s.makeCut),
			TopTen:   floatPtr(s.topTen),
			Win:      floatPtr(s.win),
		}
		if s.position != "CUT" {
			g.Today = intPtr(s.today)
			g.Thru = intPtr(s.thru)
			g.Round = intPtr(2)
		}
		for r, strokes := range s.rounds {
			if strokes > 0 {
				g.Rounds[r] = intPtr(strokes)
			}
		}
		live.Golfers = append(live.Golfers, g)
	}
	return live, nil
}

// FetchRankings returns deterministic skill rankings covering the fixture
// field.
func (p *Provider) FetchRankings(ctx context.Context) ([]providers.Ranking, error) {
	_ = ctx

	rankings := make([]providers.Ranking, 0, len(seeds))
	for i := range seeds {
		s := seeds[i]
		r := providers.Ranking{
			ApiID:         s.apiID,
			Name:          s.name,
			Country:       s.country,
			SkillEstimate: s.skill,
		}
		if s.worldRank > 0 {
			r.WorldRank = intPtr(s.worldRank)
		}
		rankings = append(rankings, r)
	}
	return rankings, nil
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
