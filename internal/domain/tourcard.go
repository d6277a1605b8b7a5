package domain

// TourCard is a member's season-long enrollment in one tour. The aggregate
// fields are recomputed from scratch by every standings-update cycle; only
// fully completed tournaments count.
type TourCard struct {
	ID          string `json:"id"`
	SeasonID    string `json:"seasonId"`
	TourID      string `json:"tourId"`
	MemberID    string `json:"memberId"`
	DisplayName string `json:"displayName"`

	Points      int     `json:"points"`
	Earnings    float64 `json:"earnings"`
	Win         int     `json:"win"`
	TopTen      int     `json:"topTen"`
	MadeCut     int     `json:"madeCut"`
	Appearances int     `json:"appearances"`

	// Position is the tour-scoped season standing ("T3" form).
	Position string `json:"position"`
}
