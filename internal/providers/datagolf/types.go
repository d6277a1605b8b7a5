package datagolf

type fieldResponse struct {
	EventName    string                `json:"event_name"`
	CurrentRound int                   `json:"current_round"`
	Field        []fieldGolferResponse `json:"field"`
}

type fieldGolferResponse struct {
	DgID       int     `json:"dg_id"`
	PlayerName string  `json:"player_name"`
	Country    string  `json:"country"`
	Amateur    int     `json:"am"`
	R1TeeTime  *string `json:"r1_teetime"`
	R2TeeTime  *string `json:"r2_teetime"`
	R3TeeTime  *string `json:"r3_teetime"`
	R4TeeTime  *string `json:"r4_teetime"`
}

type inPlayResponse struct {
	Info inPlayInfoResponse     `json:"info"`
	Data []inPlayGolferResponse `json:"data"`
}

type inPlayInfoResponse struct {
	EventName    string `json:"event_name"`
	CurrentRound int    `json:"current_round"`
	LastUpdate   string `json:"last_update"`
}

type inPlayGolferResponse struct {
	DgID         int      `json:"dg_id"`
	PlayerName   string   `json:"player_name"`
	Country      string   `json:"country"`
	CurrentPos   string   `json:"current_pos"`
	CurrentScore *int     `json:"current_score"`
	Today        *int     `json:"today"`
	Thru         *int     `json:"thru"`
	Round        *int     `json:"round"`
	R1           *int     `json:"R1"`
	R2           *int     `json:"R2"`
	R3           *int     `json:"R3"`
	R4           *int     `json:"R4"`
	MakeCut      *float64 `json:"make_cut"`
	Top10        *float64 `json:"top_10"`
	Win          *float64 `json:"win"`
}

type rankingsResponse struct {
	LastUpdated string            `json:"last_updated"`
	Rankings    []rankingResponse `json:"rankings"`
}

type rankingResponse struct {
	DgID            int      `json:"dg_id"`
	PlayerName      string   `json:"player_name"`
	Country         string   `json:"country"`
	Amateur         int      `json:"am"`
	OWGRRank        *int     `json:"owgr_rank"`
	DgSkillEstimate *float64 `json:"dg_skill_estimate"`
}
