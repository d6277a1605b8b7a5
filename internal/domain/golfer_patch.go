package domain

// GolferPatch is a partial update to one golfer row. Decision rules in the
// golfer-update job each return a fragment; fragments merge with later-wins
// semantics before a single store write.
type GolferPatch struct {
	Group     Field[int]
	WorldRank Field[int]
	Rating    Field[float64]
	Country   Field[string]

	RoundOne   Field[int]
	RoundTwo   Field[int]
	RoundThree Field[int]
	RoundFour  Field[int]

	RoundOneTeeTime   Field[string]
	RoundTwoTeeTime   Field[string]
	RoundThreeTeeTime Field[string]
	RoundFourTeeTime  Field[string]

	Score    Field[int]
	Today    Field[int]
	Thru     Field[int]
	Position Field[string]

	MakeCut Field[float64]
	TopTen  Field[float64]
	Win     Field[float64]

	Usage    Field[float64]
	Round    Field[int]
	Earnings Field[float64]
}

// Merge combines two patches; fields set in next win.
func (p GolferPatch) Merge(next GolferPatch) GolferPatch {
	return GolferPatch{
		Group:     p.Group.or(next.Group),
		WorldRank: p.WorldRank.or(next.WorldRank),
		Rating:    p.Rating.or(next.Rating),
		Country:   p.Country.or(next.Country),

		RoundOne:   p.RoundOne.or(next.RoundOne),
		RoundTwo:   p.RoundTwo.or(next.RoundTwo),
		RoundThree: p.RoundThree.or(next.RoundThree),
		RoundFour:  p.RoundFour.or(next.RoundFour),

		RoundOneTeeTime:   p.RoundOneTeeTime.or(next.RoundOneTeeTime),
		RoundTwoTeeTime:   p.RoundTwoTeeTime.or(next.RoundTwoTeeTime),
		RoundThreeTeeTime: p.RoundThreeTeeTime.or(next.RoundThreeTeeTime),
		RoundFourTeeTime:  p.RoundFourTeeTime.or(next.RoundFourTeeTime),

		Score:    p.Score.or(next.Score),
		Today:    p.Today.or(next.Today),
		Thru:     p.Thru.or(next.Thru),
		Position: p.Position.or(next.Position),

		MakeCut: p.MakeCut.or(next.MakeCut),
		TopTen:  p.TopTen.or(next.TopTen),
		Win:     p.Win.or(next.Win),

		Usage:    p.Usage.or(next.Usage),
		Round:    p.Round.or(next.Round),
		Earnings: p.Earnings.or(next.Earnings),
	}
}

// IsZero reports whether no field carries an update.
func (p GolferPatch) IsZero() bool {
	fields := []bool{
		p.Group.IsSet(), p.WorldRank.IsSet(), p.Rating.IsSet(), p.Country.IsSet(),
		p.RoundOne.IsSet(), p.RoundTwo.IsSet(), p.RoundThree.IsSet(), p.RoundFour.IsSet(),
		p.RoundOneTeeTime.IsSet(), p.RoundTwoTeeTime.IsSet(), p.RoundThreeTeeTime.IsSet(), p.RoundFourTeeTime.IsSet(),
		p.Score.IsSet(), p.Today.IsSet(), p.Thru.IsSet(), p.Position.IsSet(),
		p.MakeCut.IsSet(), p.TopTen.IsSet(), p.Win.IsSet(),
		p.Usage.IsSet(), p.Round.IsSet(), p.Earnings.IsSet(),
	}
	for _, set := range fields {
		if set {
			return false
		}
	}
	return true
}

// SetRound stages strokes for round r (1-4).
func (p *GolferPatch) SetRound(r int, strokes int) {
	switch r {
	case 1:
		p.RoundOne = Set(strokes)
	case 2:
		p.RoundTwo = Set(strokes)
	case 3:
		p.RoundThree = Set(strokes)
	case 4:
		p.RoundFour = Set(strokes)
	}
}

// SetTeeTime stages a tee time for round r (1-4).
func (p *GolferPatch) SetTeeTime(r int, teeTime string) {
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

// Apply writes the patch into g, the way the store's UPDATE would.
func (p GolferPatch) Apply(g *Golfer) {
	applyValue(p.Group, &g.Group)
	apply(p.WorldRank, &g.WorldRank)
	apply(p.Rating, &g.Rating)
	apply(p.Country, &g.Country)

	apply(p.RoundOne, &g.RoundOne)
	apply(p.RoundTwo, &g.RoundTwo)
	apply(p.RoundThree, &g.RoundThree)
	apply(p.RoundFour, &g.RoundFour)

	apply(p.RoundOneTeeTime, &g.RoundOneTeeTime)
	apply(p.RoundTwoTeeTime, &g.RoundTwoTeeTime)
	apply(p.RoundThreeTeeTime, &g.RoundThreeTeeTime)
	apply(p.RoundFourTeeTime, &g.RoundFourTeeTime)

	apply(p.Score, &g.Score)
	apply(p.Today, &g.Today)
	apply(p.Thru, &g.Thru)
	applyValue(p.Position, &g.Position)

	apply(p.MakeCut, &g.MakeCut)
	apply(p.TopTen, &g.TopTen)
	apply(p.Win, &g.Win)

	apply(p.Usage, &g.Usage)
	apply(p.Round, &g.Round)
	apply(p.Earnings, &g.Earnings)
}
