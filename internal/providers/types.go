package providers

// FieldGolfer is one entrant in the current event's field feed.
type FieldGolfer struct {
	ApiID   int
	Name    string
	Country string
	Amateur bool
	// TeeTimes holds the scheduled tee time per round, formatted
	// "2006-01-02 15:04" in course-local time, empty until scheduled.
	TeeTimes [4]string
}

// Field is a point-in-time snapshot of the field-updates feed.
type Field struct {
	EventName    string
	CurrentRound int
	Golfers      []FieldGolfer
}

// LiveGolfer is one golfer's in-play scoring state.
type LiveGolfer struct {
	ApiID    int
	Name     string
	Country  string
	Position string
	// Score is the cumulative differential to par; Today the current-round
	// differential; Thru holes completed in the current round.
	Score *int
	Today *int
	Thru  *int
	Round *int
	// Rounds holds strokes per round, nil until the round is posted.
	Rounds  [4]*int
	MakeCut *float64
	TopTen  *float64
	Win     *float64
}

// Live is a point-in-time snapshot of the in-play feed.
type Live struct {
	EventName    string
	CurrentRound int
	Golfers      []LiveGolfer
}

// Ranking is one entry of the global skill-rankings feed.
type Ranking struct {
	ApiID         int
	Name          string
	Country       string
	Amateur       bool
	SkillEstimate float64
	WorldRank     *int
}
