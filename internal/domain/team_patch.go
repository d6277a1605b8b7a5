package domain

// TeamPatch is a partial update to one team row, built by the team-update job
// and applied in a single store write.
type TeamPatch struct {
	Score Field[float64]
	Today Field[float64]
	Thru  Field[float64]

	RoundOne   Field[float64]
	RoundTwo   Field[float64]
	RoundThree Field[float64]
	RoundFour  Field[float64]

	RoundOneTeeTime   Field[string]
	RoundTwoTeeTime   Field[string]
	RoundThreeTeeTime Field[string]
	RoundFourTeeTime  Field[string]

	Position     Field[string]
	PastPosition Field[string]

	Points   Field[int]
	Earnings Field[float64]
	Round    Field[int]

	MakeCut  Field[float64]
	TopTen   Field[float64]
	TopFive  Field[float64]
	TopThree Field[float64]
	Win      Field[float64]
}

// Merge combines two patches; fields set in next win.
func (p TeamPatch) Merge(next TeamPatch) TeamPatch {
	return TeamPatch{
		Score: p.Score.or(next.Score),
		Today: p.Today.or(next.Today),
		Thru:  p.Thru.or(next.Thru),

		RoundOne:   p.RoundOne.or(next.RoundOne),
		RoundTwo:   p.RoundTwo.or(next.RoundTwo),
		RoundThree: p.RoundThree.or(next.RoundThree),
		RoundFour:  p.RoundFour.or(next.RoundFour),

		RoundOneTeeTime:   p.RoundOneTeeTime.or(next.RoundOneTeeTime),
		RoundTwoTeeTime:   p.RoundTwoTeeTime.or(next.RoundTwoTeeTime),
		RoundThreeTeeTime: p.RoundThreeTeeTime.or(next.RoundThreeTeeTime),
		RoundFourTeeTime:  p.RoundFourTeeTime.or(next.RoundFourTeeTime),

		Position:     p.Position.or(next.Position),
		PastPosition: p.PastPosition.or(next.PastPosition),

		Points:   p.Points.or(next.Points),
		Earnings: p.Earnings.or(next.Earnings),
		Round:    p.Round.or(next.Round),

		MakeCut:  p.MakeCut.or(next.MakeCut),
		TopTen:   p.TopTen.or(next.TopTen),
		TopFive:  p.TopFive.or(next.TopFive),
		TopThree: p.TopThree.or(next.TopThree),
		Win:      p.Win.or(next.Win),
	}
}

// IsZero reports whether no field carries an update.
func (p TeamPatch) IsZero() bool {
	fields := []bool{
		p.Score.IsSet(), p.Today.IsSet(), p.Thru.IsSet(),
		p.RoundOne.IsSet(), p.RoundTwo.IsSet(), p.RoundThree.IsSet(), p.RoundFour.IsSet(),
		p.RoundOneTeeTime.IsSet(), p.RoundTwoTeeTime.IsSet(), p.RoundThreeTeeTime.IsSet(), p.RoundFourTeeTime.IsSet(),
		p.Position.IsSet(), p.PastPosition.IsSet(),
		p.Points.IsSet(), p.Earnings.IsSet(), p.Round.IsSet(),
		p.MakeCut.IsSet(), p.TopTen.IsSet(), p.TopFive.IsSet(), p.TopThree.IsSet(), p.Win.IsSet(),
	}
	for _, set := range fields {
		if set {
			return false
		}
	}
	return true
}

// SetRound stages an aggregate for round r (1-4).
func (p *TeamPatch) SetRound(r int, mean float64) {
	switch r {
	case 1:
		p.RoundOne = Set(mean)
	case 2:
		p.RoundTwo = Set(mean)
	case 3:
		p.RoundThree = Set(mean)
	case 4:
		p.RoundFour = Set(mean)
	}
}

// SetTeeTime stages a tee time for round r (1-4).
func (p *TeamPatch) SetTeeTime(r int, teeTime string) {
	switch r {
	case 1:
		p.RoundOneTeeTime = Set(teeTime)
	case 2:
		p.RoundTwoTeeTime = Set(teeTime)
	case 3:
		p.RoundThreeTeeTime = Set(teeTime)
	case 4:
		p.RoundFourTeeTime = Set(teeTime)
	}
}

// Apply writes the patch into t, the way the store's UPDATE would.
func (p TeamPatch) Apply(t *Team) {
	apply(p.Score, &t.Score)
	apply(p.Today, &t.Today)
	apply(p.Thru, &t.Thru)

	apply(p.RoundOne, &t.RoundOne)
	apply(p.RoundTwo, &t.RoundTwo)
	apply(p.RoundThree, &t.RoundThree)
	apply(p.RoundFour, &t.RoundFour)

	apply(p.RoundOneTeeTime, &t.RoundOneTeeTime)
	apply(p.RoundTwoTeeTime, &t.RoundTwoTeeTime)
	apply(p.RoundThreeTeeTime, &t.RoundThreeTeeTime)
	apply(p.RoundFourTeeTime, &t.RoundFourTeeTime)

	applyValue(p.Position, &t.Position)
	applyValue(p.PastPosition, &t.PastPosition)

	apply(p.Points, &t.Points)
	apply(p.Earnings, &t.Earnings)
	apply(p.Round, &t.Round)

	apply(p.MakeCut, &t.MakeCut)
	apply(p.TopTen, &t.TopTen)
	apply(p.TopFive, &t.TopFive)
	apply(p.TopThree, &t.TopThree)
	apply(p.Win, &t.Win)
}

// TourCardPatch is a partial update to one tour card, split between the
// stats pass and the position pass of the standings job.
type TourCardPatch struct {
	Points      Field[int]
	Earnings    Field[float64]
	Win         Field[int]
	TopTen      Field[int]
	MadeCut     Field[int]
	Appearances Field[int]
	Position    Field[string]
}

// IsZero reports whether no field carries an update.
func (p TourCardPatch) IsZero() bool {
	fields := []bool{
		p.Points.IsSet(), p.Earnings.IsSet(), p.Win.IsSet(), p.TopTen.IsSet(),
		p.MadeCut.IsSet(), p.Appearances.IsSet(), p.Position.IsSet(),
	}
	for _, set := range fields {
		if set {
			return false
		}
	}
	return true
}

// Apply writes the patch into c, the way the store's UPDATE would.
func (p TourCardPatch) Apply(c *TourCard) {
	applyValue(p.Points, &c.Points)
	applyValue(p.Earnings, &c.Earnings)
	applyValue(p.Win, &c.Win)
	applyValue(p.TopTen, &c.TopTen)
	applyValue(p.MadeCut, &c.MadeCut)
	applyValue(p.Appearances, &c.Appearances)
	applyValue(p.Position, &c.Position)
}

// TournamentPatch updates the rolling tournament pointers after a golfer
// cycle.
type TournamentPatch struct {
	CurrentRound Field[int]
	LivePlay     Field[bool]
}

// Apply writes the patch into t.
func (p TournamentPatch) Apply(t *Tournament) {
	apply(p.CurrentRound, &t.CurrentRound)
	applyValue(p.LivePlay, &t.LivePlay)
}
