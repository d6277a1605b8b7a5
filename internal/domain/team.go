package domain

// Team is one tour card's ten-golfer lineup for one tournament. Aggregate
// fields mirror Golfer's shape but hold means across the counted roster, so
// they are floats rounded to one decimal. Points and earnings stay nil until
// the tournament fully closes.
type Team struct {
	ID           int64  `json:"id"`
	TournamentID string `json:"tournamentId"`
	TourCardID   string `json:"tourCardId"`

	// GolferIDs lists the roster by provider ApiID. Logical membership only;
	// golfer rows are tournament-scoped entities of their own.
	GolferIDs []int `json:"golferIds"`

	Score *float64 `json:"score"`
	Today *float64 `json:"today"`
	Thru  *float64 `json:"thru"`

	RoundOne   *float64 `json:"roundOne"`
	RoundTwo   *float64 `json:"roundTwo"`
	RoundThree *float64 `json:"roundThree"`
	RoundFour  *float64 `json:"roundFour"`

	RoundOneTeeTime   *string `json:"roundOneTeeTime"`
	RoundTwoTeeTime   *string `json:"roundTwoTeeTime"`
	RoundThreeTeeTime *string `json:"roundThreeTeeTime"`
	RoundFourTeeTime  *string `json:"roundFourTeeTime"`

	// Position and PastPosition are tour-scoped standings ("T3" form).
	// PastPosition is the standing as of the start of the current round.
	Position     string `json:"position"`
	PastPosition string `json:"pastPosition"`

	Points   *int     `json:"points"`
	Earnings *float64 `json:"earnings"`

	// Round points at the round currently being aggregated; RoundFinished
	// marks the tournament closed for this team.
	Round *int `json:"round"`

	// Simulation-derived finish probabilities, filled by the optional
	// Monte-Carlo job.
	MakeCut  *float64 `json:"makeCut"`
	TopTen   *float64 `json:"topTen"`
	TopFive  *float64 `json:"topFive"`
	TopThree *float64 `json:"topThree"`
	Win      *float64 `json:"win"`
}

// RoundScore returns the stored aggregate for round r (1-4).
func (t *Team) RoundScore(r int) *float64 {
	switch r {
	case 1:
		return t.RoundOne
	case 2:
		return t.RoundTwo
	case 3:
		return t.RoundThree
	case 4:
		return t.RoundFour
	}
	return nil
}

// TeeTime returns the stored tee time for round r (1-4).
func (t *Team) TeeTime(r int) *string {
	switch r {
	case 1:
		return t.RoundOneTeeTime
	case 2:
		return t.RoundTwoTeeTime
	case 3:
		return t.RoundThreeTeeTime
	case 4:
		return t.RoundFourTeeTime
	}
	return nil
}

// CurrentRound returns the team's round pointer, defaulting to 1.
func (t *Team) CurrentRound() int {
	if t.Round == nil {
		return 1
	}
	return *t.Round
}

// Finished reports whether the tournament is closed for this team.
func (t *Team) Finished() bool {
	return t.Round != nil && *t.Round >= RoundFinished
}

// Cut reports whether the team reached the terminal CUT state.
func (t *Team) Cut() bool {
	return t.Position == PositionCut
}

// HasGolfer reports whether apiID is on this team's roster.
func (t *Team) HasGolfer(apiID int) bool {
	for _, id := range t.GolferIDs {
		if id == apiID {
			return true
		}
	}
	return false
}
