package sim

import (
	"math"
	"math/rand"
	"sort"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/scoring"
)

// cutSize is the stroke-play cut line: the top 65 golfers and ties advance
// to the weekend.
const cutSize = 65

// teamCounted mirrors the team-update rule: five golfers count toward
// weekend rounds, and a team that cannot field five is out.
const teamCounted = 5

// probs accumulates one team's outcome tallies across iterations.
type probs struct {
	madeCut  int
	win      int
	topThree int
	topFive  int
	topTen   int
}

// teamEntry is one simulated team with its resolved tour pool.
type teamEntry struct {
	team   domain.Team
	tourID string
}

// engine draws the unplayed remainder of one tournament. All randomness
// flows through rng so a fixed seed reproduces the full run.
type engine struct {
	rng       *rand.Rand
	stdDev    float64
	par       int
	liveRound int
	weekend   bool

	golfers []domain.Golfer
}

func newEngine(rng *rand.Rand, stdDev float64, tournament domain.Tournament, golfers []domain.Golfer) *engine {
	e := &engine{
		rng:     rng,
		stdDev:  stdDev,
		par:     tournament.CoursePar,
		weekend: tournament.Round() > 2,
		golfers: golfers,
	}
	if tournament.LivePlay && tournament.Round() <= domain.RoundCount {
		e.liveRound = tournament.Round()
	}
	return e
}

// skillOffset inverts the stored rating back to the provider's skill
// estimate, the golfer's expected strokes gained per round. Unrated golfers
// simulate at par.
func skillOffset(g domain.Golfer) float64 {
	if g.Rating == nil {
		return 0
	}
	return *g.Rating*0.04 - 2
}

// drawField simulates strokes for every golfer's four rounds. Posted rounds
// are taken as-is; the round in play continues from the golfer's live
// differential with noise scaled to the holes remaining; rounds out of the
// tournament contribute the penalty strokes.
func (e *engine) drawField() map[int][domain.RoundCount]float64 {
	fallback := float64(e.par + domain.PenaltyOverPar)
	field := make(map[int][domain.RoundCount]float64, len(e.golfers))
	for _, g := range e.golfers {
		var rounds [domain.RoundCount]float64
		mean := float64(e.par) - skillOffset(g)
		for r := 1; r <= domain.RoundCount; r++ {
			if s := g.RoundScore(r); s != nil {
				rounds[r-1] = float64(*s)
				continue
			}
			if g.Terminal() {
				rounds[r-1] = fallback
				continue
			}
			if r == e.liveRound && g.Thru != nil && *g.Thru > 0 {
				remaining := float64(domain.HolesPerRound-*g.Thru) / domain.HolesPerRound
				if remaining < 0 {
					remaining = 0
				}
				today := 0.0
				if g.Today != nil {
					today = float64(*g.Today)
				}
				rounds[r-1] = float64(e.par) + today + e.rng.NormFloat64()*e.stdDev*math.Sqrt(remaining)
				continue
			}
			rounds[r-1] = mean + e.rng.NormFloat64()*e.stdDev
		}
		field[g.ApiID] = rounds
	}
	return field
}

// survivors resolves which golfers reach the weekend in this iteration.
// Once the real cut is in the stored positions decide; before that the
// simulated two-round totals are ranked against the cut line.
func (e *engine) survivors(field map[int][domain.RoundCount]float64) map[int]bool {
	out := make(map[int]bool, len(e.golfers))
	if e.weekend {
		for _, g := range e.golfers {
			out[g.ApiID] = !g.Terminal()
		}
		return out
	}

	totals := make([]float64, 0, len(e.golfers))
	for _, g := range e.golfers {
		if g.Terminal() {
			continue
		}
		rounds := field[g.ApiID]
		totals = append(totals, rounds[0]+rounds[1])
	}
	if len(totals) <= cutSize {
		for _, g := range e.golfers {
			out[g.ApiID] = !g.Terminal()
		}
		return out
	}
	sort.Float64s(totals)
	cutoff := totals[cutSize-1]
	for _, g := range e.golfers {
		if g.Terminal() {
			continue
		}
		rounds := field[g.ApiID]
		out[g.ApiID] = rounds[0]+rounds[1] <= cutoff
	}
	return out
}

// teamScore recomputes the team total from simulated strokes with the
// team-update aggregation: full-roster means for the first two rounds, the
// five lowest for the weekend rounds, penalty fallback for golfers without
// strokes on file.
func (e *engine) teamScore(team domain.Team, field map[int][domain.RoundCount]float64) float64 {
	fallback := float64(e.par + domain.PenaltyOverPar)
	total := 0.0
	for r := 1; r <= domain.RoundCount; r++ {
		if r <= 2 {
			values := make([]float64, 0, len(team.GolferIDs))
			for _, id := range team.GolferIDs {
				values = append(values, e.roundStrokes(field, id, r, fallback))
			}
			total += scoring.RoundTenth(scoring.Mean(values)) - float64(e.par)
			continue
		}
		entries := make([]scoring.Entry, 0, len(team.GolferIDs))
		for _, id := range team.GolferIDs {
			entries = append(entries, scoring.Entry{ID: id, Value: e.roundStrokes(field, id, r, fallback)})
		}
		total += scoring.RoundTenth(scoring.MeanBestN(entries, teamCounted)) - float64(e.par)
	}
	return total
}

func (e *engine) roundStrokes(field map[int][domain.RoundCount]float64, apiID, r int, fallback float64) float64 {
	rounds, ok := field[apiID]
	if !ok {
		return fallback
	}
	return rounds[r-1]
}

// run tallies outcome counts for every entry over n iterations. Cut teams
// never score; within each tour pool the surviving teams are ranked by
// simulated total, rank one counting as the win.
func (e *engine) run(entries []teamEntry, n int) []probs {
	tallies := make([]probs, len(entries))
	pools := make(map[string][]int)
	for i, entry := range entries {
		if entry.team.Cut() || entry.tourID == "" {
			continue
		}
		pools[entry.tourID] = append(pools[entry.tourID], i)
	}

	type scored struct {
		idx   int
		score float64
	}

	for it := 0; it < n; it++ {
		field := e.drawField()
		alive := e.survivors(field)

		for _, pool := range pools {
			ranked := make([]scored, 0, len(pool))
			for _, i := range pool {
				team := entries[i].team
				if e.usableCount(team, alive) < teamCounted {
					continue
				}
				tallies[i].madeCut++
				ranked = append(ranked, scored{idx: i, score: e.teamScore(team, field)})
			}
			for _, s := range ranked {
				rank := 1
				for _, other := range ranked {
					if other.score < s.score {
						rank++
					}
				}
				if rank == 1 {
					tallies[s.idx].win++
				}
				if rank <= 3 {
					tallies[s.idx].topThree++
				}
				if rank <= 5 {
					tallies[s.idx].topFive++
				}
				if rank <= 10 {
					tallies[s.idx].topTen++
				}
			}
		}
	}
	return tallies
}

// usableCount counts rostered golfers alive in this iteration.
func (e *engine) usableCount(team domain.Team, alive map[int]bool) int {
	n := 0
	for _, id := range team.GolferIDs {
		if alive[id] {
			n++
		}
	}
	return n
}

// roundProb rounds a probability to three decimals for storage.
func roundProb(v float64) float64 {
	return math.Round(v*1000) / 1000
}
