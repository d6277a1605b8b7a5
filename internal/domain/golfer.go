package domain

// Rounds in a stroke-play tournament. The round pointer advances 1..4 while
// play is open and parks at RoundFinished once every round is closed.
const (
	RoundCount    = 4
	RoundFinished = 5
)

// PenaltyOverPar is the differential assigned for a round the provider never
// scored: the golfer teed off (or was WD/DQ'd) and the round is closed, so the
// slot is filled with par + 8 strokes.
const PenaltyOverPar = 8

// HolesPerRound is the thru value of a completed round.
const HolesPerRound = 18

// Golfer is one entrant in one tournament's field. Rows are created by group
// assignment (or on the fly when the provider adds a late entrant) and
// mutated by every golfer-update cycle until the tournament closes.
type Golfer struct {
	ID           int64    `json:"id"`
	ApiID        int      `json:"apiId"`
	TournamentID string   `json:"tournamentId"`
	PlayerName   string   `json:"playerName"`
	Group        int      `json:"group"`
	WorldRank    *int     `json:"worldRank"`
	Rating       *float64 `json:"rating"`
	Country      *string  `json:"country,omitempty"`

	RoundOne          *int    `json:"roundOne"`
	RoundTwo          *int    `json:"roundTwo"`
	RoundThree        *int    `json:"roundThree"`
	RoundFour         *int    `json:"roundFour"`
	RoundOneTeeTime   *string `json:"roundOneTeeTime"`
	RoundTwoTeeTime   *string `json:"roundTwoTeeTime"`
	RoundThreeTeeTime *string `json:"roundThreeTeeTime"`
	RoundFourTeeTime  *string `json:"roundFourTeeTime"`

	// Score is the cumulative differential to par; Today and Thru describe the
	// in-progress round. All three are nil until the provider reports them.
	Score *int `json:"score"`
	Today *int `json:"today"`
	Thru  *int `json:"thru"`

	// Position carries the provider's leaderboard standing verbatim, including
	// the "T" tie prefix and the CUT/WD/DQ sentinels.
	Position string `json:"position"`

	// Provider-computed finish probabilities, mirrored when present.
	MakeCut *float64 `json:"makeCut"`
	TopTen  *float64 `json:"topTen"`
	Win     *float64 `json:"win"`

	// Usage is the fraction of teams in the tournament that drafted this
	// golfer, computed once on round one.
	Usage *float64 `json:"usage"`

	// Round is the golfer's own current round per the provider feed.
	Round *int `json:"round"`

	// Earnings is the golfer's purse share once the provider publishes it.
	Earnings *float64 `json:"earnings,omitempty"`
}

// RoundScore returns the stored strokes for round r (1-4), nil when unplayed.
func (g *Golfer) RoundScore(r int) *int {
	switch r {
	case 1:
		return g.RoundOne
	case 2:
		return g.RoundTwo
	case 3:
		return g.RoundThree
	case 4:
		return g.RoundFour
	}
	return nil
}

// TeeTime returns the stored tee time for round r (1-4).
func (g *Golfer) TeeTime(r int) *string {
	switch r {
	case 1:
		return g.RoundOneTeeTime
	case 2:
		return g.RoundTwoTeeTime
	case 3:
		return g.RoundThreeTeeTime
	case 4:
		return g.RoundFourTeeTime
	}
	return nil
}

// CurrentRound returns the golfer's round pointer, defaulting to 1.
func (g *Golfer) CurrentRound() int {
	if g.Round == nil {
		return 1
	}
	return *g.Round
}

// Terminal reports whether the golfer's tournament is over for them.
func (g *Golfer) Terminal() bool {
	return IsTerminalPosition(g.Position)
}
