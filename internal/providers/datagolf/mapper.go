package datagolf

import (
	"strings"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/providers"
)

func mapField(payload fieldResponse) *providers.Field {
	field := &providers.Field{
		EventName:    payload.EventName,
		CurrentRound: payload.CurrentRound,
		Golfers:      make([]providers.FieldGolfer, 0, len(payload.Field)),
	}
	for _, g := range payload.Field {
		field.Golfers = append(field.Golfers, providers.FieldGolfer{
			ApiID:   g.DgID,
			Name:    normalizeName(g.PlayerName),
			Country: g.Country,
			Amateur: g.Amateur == 1,
			TeeTimes: [4]string{
				stringValue(g.R1TeeTime),
				stringValue(g.R2TeeTime),
				stringValue(g.R3TeeTime),
				stringValue(g.R4TeeTime),
			},
		})
	}
	return field
}

func mapLive(payload inPlayResponse) *providers.Live {
	live := &providers.Live{
		EventName:    payload.Info.EventName,
		CurrentRound: payload.Info.CurrentRound,
		Golfers:      make([]providers.LiveGolfer, 0, len(payload.Data)),
	}
	for _, g := range payload.Data {
		live.Golfers = append(live.Golfers, providers.LiveGolfer{
			ApiID:    g.DgID,
			Name:     normalizeName(g.PlayerName),
			Country:  g.Country,
			Position: strings.TrimSpace(g.CurrentPos),
			Score:    g.CurrentScore,
			Today:    g.Today,
			Thru:     g.Thru,
			Round:    g.Round,
			Rounds:   [4]*int{g.R1, g.R2, g.R3, g.R4},
			MakeCut:  g.MakeCut,
			TopTen:   g.Top10,
			Win:      g.Win,
		})
	}
	return live
}

func mapRankings(payload rankingsResponse) []providers.Ranking {
	rankings := make([]providers.Ranking, 0, len(payload.Rankings))
	for _, r := range payload.Rankings {
		if r.DgSkillEstimate == nil {
			continue
		}
		rankings = append(rankings, providers.Ranking{
			ApiID:         r.DgID,
			Name:          normalizeName(r.PlayerName),
			Country:       r.Country,
			Amateur:       r.Amateur == 1,
			SkillEstimate: *r.DgSkillEstimate,
			WorldRank:     r.OWGRRank,
		})
	}
	return rankings
}

// normalizeName converts the feed's "Last, First" form to "First Last".
func normalizeName(name string) string {
	parts := strings.SplitN(name, ",", 2)
	if len(parts) != 2 {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0])
}

func stringValue(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
