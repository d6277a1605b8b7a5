// Package live distributes the in-play leaderboard. After golfer and team
// cycles the refresh job rebuilds a leaderboard document, caches it in Redis
// and publishes a stream update; a consumer goroutine forwards updates to a
// websocket hub for connected browsers. With no Redis configured the layer
// degrades to store-backed reads and the stream and hub stay idle.
package live

import (
	"sort"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
)

// Leaderboard is the cached and broadcast document for one tournament.
type Leaderboard struct {
	TournamentID string    `json:"tournamentId"`
	Name         string    `json:"name"`
	Round        int       `json:"round"`
	LivePlay     bool      `json:"livePlay"`
	Final        bool      `json:"final"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Golfers []GolferRow `json:"golfers"`
	Teams   []TeamRow   `json:"teams"`
}

// GolferRow is one field entrant in leaderboard order.
type GolferRow struct {
	ApiID      int      `json:"apiId"`
	PlayerName string   `json:"playerName"`
	Country    string   `json:"country,omitempty"`
	Group      int      `json:"group"`
	Position   string   `json:"position,omitempty"`
	Score      *int     `json:"score"`
	Today      *int     `json:"today"`
	Thru       *int     `json:"thru"`
	Usage      *float64 `json:"usage,omitempty"`
}

// TeamRow is one lineup in leaderboard order, tagged with its tour pool.
type TeamRow struct {
	TeamID       int64    `json:"teamId"`
	TourID       string   `json:"tourId"`
	DisplayName  string   `json:"displayName"`
	Position     string   `json:"position,omitempty"`
	PastPosition string   `json:"pastPosition,omitempty"`
	Score        *float64 `json:"score"`
	Today        *float64 `json:"today"`
	Thru         *float64 `json:"thru"`
	Points       *int     `json:"points,omitempty"`
	Earnings     *float64 `json:"earnings,omitempty"`
}

// BuildLeaderboard assembles the document from stored state. Rows are ordered
// by parsed position, unranked entrants by score, terminal entrants last.
func BuildLeaderboard(tournament domain.Tournament, golfers []domain.Golfer, teams []domain.Team, cards []domain.TourCard, at time.Time) Leaderboard {
	cardByID := make(map[string]domain.TourCard, len(cards))
	for _, c := range cards {
		cardByID[c.ID] = c
	}

	lb := Leaderboard{
		TournamentID: tournament.ID,
		Name:         tournament.Name,
		Round:        tournament.Round(),
		LivePlay:     tournament.LivePlay,
		Final:        tournament.Finished(),
		UpdatedAt:    at.UTC(),
		Golfers:      make([]GolferRow, 0, len(golfers)),
		Teams:        make([]TeamRow, 0, len(teams)),
	}

	for _, g := range golfers {
		row := GolferRow{
			ApiID:      g.ApiID,
			PlayerName: g.PlayerName,
			Group:      g.Group,
			Position:   g.Position,
			Score:      g.Score,
			Today:      g.Today,
			Thru:       g.Thru,
			Usage:      g.Usage,
		}
		if g.Country != nil {
			row.Country = *g.Country
		}
		lb.Golfers = append(lb.Golfers, row)
	}
	sort.SliceStable(lb.Golfers, func(i, j int) bool {
		a, b := lb.Golfers[i], lb.Golfers[j]
		ak, bk := rowKey(a.Position, intScore(a.Score)), rowKey(b.Position, intScore(b.Score))
		if ak != bk {
			return ak < bk
		}
		return a.PlayerName < b.PlayerName
	})

	for _, t := range teams {
		row := TeamRow{
			TeamID:       t.ID,
			TourID:       cardByID[t.TourCardID].TourID,
			DisplayName:  cardByID[t.TourCardID].DisplayName,
			Position:     t.Position,
			PastPosition: t.PastPosition,
			Score:        t.Score,
			Today:        t.Today,
			Thru:         t.Thru,
			Points:       t.Points,
			Earnings:     t.Earnings,
		}
		lb.Teams = append(lb.Teams, row)
	}
	sort.SliceStable(lb.Teams, func(i, j int) bool {
		a, b := lb.Teams[i], lb.Teams[j]
		if a.TourID != b.TourID {
			return a.TourID < b.TourID
		}
		ak, bk := rowKey(a.Position, floatScore(a.Score)), rowKey(b.Position, floatScore(b.Score))
		if ak != bk {
			return ak < bk
		}
		return a.DisplayName < b.DisplayName
	})

	return lb
}

// rowKey orders rows in three bands: ranked positions by rank, unranked by
// score, terminal states at the bottom by score.
func rowKey(position string, score float64) float64 {
	if p, ok := domain.ParsePosition(position); ok {
		return float64(p.Rank)
	}
	if domain.IsTerminalPosition(position) {
		return 2_000_000 + score
	}
	return 1_000_000 + score
}

func intScore(v *int) float64 {
	if v == nil {
		return 999
	}
	return float64(*v)
}

func floatScore(v *float64) float64 {
	if v == nil {
		return 999
	}
	return *v
}
