package store

import (
	"fmt"
	"strings"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
)

// setClauses accumulates SET fragments and their positional arguments while
// a patch is translated into an UPDATE. Unset fields contribute nothing, so
// the statement touches only the columns the job actually decided on.
type setClauses struct {
	cols []string
	args []any
}

func addSet[T any](c *setClauses, col string, f domain.Field[T]) {
	v, ok := f.Get()
	if !ok {
		return
	}
	if v == nil {
		c.args = append(c.args, nil)
	} else {
		c.args = append(c.args, *v)
	}
	c.cols = append(c.cols, fmt.Sprintf("%s = $%d", col, len(c.args)))
}

// build finishes the statement, appending the key as the final argument.
// ok is false when the patch set nothing.
func (c *setClauses) build(table, keyCol string, key any) (query string, args []any, ok bool) {
	if len(c.cols) == 0 {
		return "", nil, false
	}
	c.args = append(c.args, key)
	query = fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(c.cols, ", "), keyCol, len(c.args))
	return query, c.args, true
}

func buildGolferUpdate(id int64, p domain.GolferPatch) (string, []any, bool) {
	var c setClauses
	addSet(&c, `"group"`, p.Group)
	addSet(&c, "world_rank", p.WorldRank)
	addSet(&c, "rating", p.Rating)
	addSet(&c, "country", p.Country)
	addSet(&c, "round_one", p.RoundOne)
	addSet(&c, "round_two", p.RoundTwo)
	addSet(&c, "round_three", p.RoundThree)
	addSet(&c, "round_four", p.RoundFour)
	addSet(&c, "round_one_tee_time", p.RoundOneTeeTime)
	addSet(&c, "round_two_tee_time", p.RoundTwoTeeTime)
	addSet(&c, "round_three_tee_time", p.RoundThreeTeeTime)
	addSet(&c, "round_four_tee_time", p.RoundFourTeeTime)
	addSet(&c, "score", p.Score)
	addSet(&c, "today", p.Today)
	addSet(&c, "thru", p.Thru)
	addSet(&c, "position", p.Position)
	addSet(&c, "make_cut", p.MakeCut)
	addSet(&c, "top_ten", p.TopTen)
	addSet(&c, "win", p.Win)
	addSet(&c, "usage", p.Usage)
	addSet(&c, "round", p.Round)
	addSet(&c, "earnings", p.Earnings)
	return c.build("golfers", "id", id)
}

func buildTeamUpdate(id int64, p domain.TeamPatch) (string, []any, bool) {
	var c setClauses
	addSet(&c, "score", p.Score)
	addSet(&c, "today", p.Today)
	addSet(&c, "thru", p.Thru)
	addSet(&c, "round_one", p.RoundOne)
	addSet(&c, "round_two", p.RoundTwo)
	addSet(&c, "round_three", p.RoundThree)
	addSet(&c, "round_four", p.RoundFour)
	addSet(&c, "round_one_tee_time", p.RoundOneTeeTime)
	addSet(&c, "round_two_tee_time", p.RoundTwoTeeTime)
	addSet(&c, "round_three_tee_time", p.RoundThreeTeeTime)
	addSet(&c, "round_four_tee_time", p.RoundFourTeeTime)
	addSet(&c, "position", p.Position)
	addSet(&c, "past_position", p.PastPosition)
	addSet(&c, "points", p.Points)
	addSet(&c, "earnings", p.Earnings)
	addSet(&c, "round", p.Round)
	addSet(&c, "make_cut", p.MakeCut)
	addSet(&c, "top_ten", p.TopTen)
	addSet(&c, "top_five", p.TopFive)
	addSet(&c, "top_three", p.TopThree)
	addSet(&c, "win", p.Win)
	return c.build("teams", "id", id)
}

func buildTourCardUpdate(id string, p domain.TourCardPatch) (string, []any, bool) {
	var c setClauses
	addSet(&c, "points", p.Points)
	addSet(&c, "earnings", p.Earnings)
	addSet(&c, "win", p.Win)
	addSet(&c, "top_ten", p.TopTen)
	addSet(&c, "made_cut", p.MadeCut)
	addSet(&c, "appearances", p.Appearances)
	addSet(&c, "position", p.Position)
	return c.build("tour_cards", "id", id)
}

func buildTournamentUpdate(id string, p domain.TournamentPatch) (string, []any, bool) {
	var c setClauses
	addSet(&c, "current_round", p.CurrentRound)
	addSet(&c, "live_play", p.LivePlay)
	return c.build("tournaments", "id", id)
}
