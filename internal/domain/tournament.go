package domain

import "time"

// Tournament is one scheduled event in a season. Stages resolve "the
// upcoming" and "the current" tournament through the store's lifecycle
// queries rather than re-deriving them from raw date comparisons.
type Tournament struct {
	ID       string `json:"id"`
	SeasonID string `json:"seasonId"`
	TierID   string `json:"tierId"`
	// ApiID is the provider's event identifier.
	ApiID     string    `json:"apiId"`
	Name      string    `json:"name"`
	CoursePar int       `json:"coursePar"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	// CurrentRound is the lowest round any non-terminal golfer still lacks a
	// score for, parked at RoundFinished once round four closes.
	CurrentRound *int `json:"currentRound"`
	// LivePlay is true while at least one golfer is mid-round.
	LivePlay bool `json:"livePlay"`

	// TourIDs lists the tours whose cards field teams in this event.
	TourIDs []string `json:"tourIds"`
}

// Round returns the tournament round pointer, defaulting to 1.
func (t *Tournament) Round() int {
	if t.CurrentRound == nil {
		return 1
	}
	return *t.CurrentRound
}

// Finished reports whether every round has closed.
func (t *Tournament) Finished() bool {
	return t.CurrentRound != nil && *t.CurrentRound >= RoundFinished
}

// Season is one league year. TourCards, tiers and tournaments all hang off a
// season.
type Season struct {
	ID     string `json:"id"`
	Year   int    `json:"year"`
	Number int    `json:"number"`
}

// Tour is a named sub-league within a season; members join one via a tour
// card and compete only against cards on the same tour.
type Tour struct {
	ID        string `json:"id"`
	SeasonID  string `json:"seasonId"`
	Name      string `json:"name"`
	ShortForm string `json:"shortForm"`
}

// Tier classifies a tournament (Standard, Major, Playoff, ...) and carries the
// payout tables indexed by zero-based finishing position.
type Tier struct {
	ID       string    `json:"id"`
	SeasonID string    `json:"seasonId"`
	Name     string    `json:"name"`
	Points   []int     `json:"points"`
	Payouts  []float64 `json:"payouts"`
}

// TierPlayoff is the tier name that marks a playoff event; playoff rosters
// carry over from the season's first playoff tournament.
const TierPlayoff = "Playoff"
