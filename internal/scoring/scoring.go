// Package scoring holds the numeric helpers shared by the cron jobs: rounding
// policies, best-N selection and tie-aware rank resolution.
package scoring

import (
	"math"
	"sort"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
)

// RoundTenth rounds to one decimal place, the precision every persisted team
// score uses.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// RoundCents rounds to the nearest cent.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundPoints rounds to the nearest whole point.
func RoundPoints(v float64) int {
	return int(math.Round(v))
}

// Mean returns the unweighted mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Entry pairs a score with the provider golfer ID used as the deterministic
// tie-break key.
type Entry struct {
	ID    int
	Value float64
}

// BestN returns the n lowest entries ordered by value then ID. Fewer than n
// entries returns them all. The input slice is not modified.
func BestN(entries []Entry, n int) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value < sorted[j].Value
		}
		return sorted[i].ID < sorted[j].ID
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// MeanBestN returns the mean of the n lowest entry values.
func MeanBestN(entries []Entry, n int) float64 {
	best := BestN(entries, n)
	values := make([]float64, len(best))
	for i, e := range best {
		values[i] = e.Value
	}
	return Mean(values)
}

// PositionsAsc resolves tie-aware positions where lower values rank first.
// Tied values share the lowest rank among them.
func PositionsAsc(values []float64) []domain.Position {
	positions := make([]domain.Position, len(values))
	for i, v := range values {
		rank := 1
		tied := false
		for j, other := range values {
			if j == i {
				continue
			}
			if other < v {
				rank++
			} else if other == v {
				tied = true
			}
		}
		positions[i] = domain.Position{Rank: rank, Tied: tied}
	}
	return positions
}

// PositionsDesc resolves tie-aware positions where higher values rank first.
func PositionsDesc(values []float64) []domain.Position {
	negated := make([]float64, len(values))
	for i, v := range values {
		negated[i] = -v
	}
	return PositionsAsc(negated)
}

// PointsShare returns the mean of the points table slice spanning a tie band
// starting at rank (1-based) and width teams wide. Ranks past the end of the
// table contribute zero.
func PointsShare(table []int, rank, width int) float64 {
	if width <= 0 {
		return 0
	}
	var sum float64
	for i := rank - 1; i < rank-1+width; i++ {
		if i >= 0 && i < len(table) {
			sum += float64(table[i])
		}
	}
	return sum / float64(width)
}

// PayoutShare returns the mean of the payouts table slice spanning a tie band
// starting at rank (1-based) and width teams wide, zero-extended like
// PointsShare.
func PayoutShare(table []float64, rank, width int) float64 {
	if width <= 0 {
		return 0
	}
	var sum float64
	for i := rank - 1; i < rank-1+width; i++ {
		if i >= 0 && i < len(table) {
			sum += table[i]
		}
	}
	return sum / float64(width)
}
