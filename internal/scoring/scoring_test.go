package scoring

import (
	"testing"
)

func TestRoundTenth(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{71.84, 71.8},
		{71.85, 71.9},
		{-0.25, -0.2},
		{-0.26, -0.3},
		{0, 0},
	}
	for _, tc := range cases {
		if got := RoundTenth(tc.in); got != tc.want {
			t.Fatalf("RoundTenth(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRoundCents(t *testing.T) {
	if got := RoundCents(8000.004); got != 8000.0 {
		t.Fatalf("expected 8000.00, got %v", got)
	}
	if got := RoundCents(1234.567); got != 1234.57 {
		t.Fatalf("expected 1234.57, got %v", got)
	}
}

func TestRoundPoints(t *testing.T) {
	if got := RoundPoints(399.5); got != 400 {
		t.Fatalf("expected 400, got %d", got)
	}
	if got := RoundPoints(399.4); got != 399 {
		t.Fatalf("expected 399, got %d", got)
	}
}

func TestMeanRoundOneScenario(t *testing.T) {
	// Ten round-one stroke counts on a par 72 course.
	strokes := []float64{70, 71, 73, 68, 75, 74, 72, 69, 76, 70}
	mean := Mean(strokes)
	if got := RoundTenth(mean); got != 71.8 {
		t.Fatalf("expected round one mean 71.8, got %v", got)
	}
	if got := RoundTenth(mean - 72); got != -0.2 {
		t.Fatalf("expected score -0.2, got %v", got)
	}
}

func TestMeanEmpty(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Fatalf("expected 0 for empty mean, got %v", got)
	}
}

func TestBestNOrdersByValueThenID(t *testing.T) {
	entries := []Entry{
		{ID: 30, Value: 70},
		{ID: 10, Value: 68},
		{ID: 20, Value: 70},
		{ID: 40, Value: 72},
	}

	best := BestN(entries, 3)
	if len(best) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(best))
	}
	if best[0].ID != 10 || best[1].ID != 20 || best[2].ID != 30 {
		t.Fatalf("expected deterministic order [10 20 30], got %+v", best)
	}
	// Input order untouched.
	if entries[0].ID != 30 {
		t.Fatalf("expected input slice unmodified, got %+v", entries)
	}
}

func TestBestNShorterThanN(t *testing.T) {
	entries := []Entry{{ID: 1, Value: 70}, {ID: 2, Value: 71}}
	if got := BestN(entries, 5); len(got) != 2 {
		t.Fatalf("expected all entries when fewer than n, got %d", len(got))
	}
}

func TestMeanBestN(t *testing.T) {
	entries := []Entry{
		{ID: 1, Value: 70},
		{ID: 2, Value: 74},
		{ID: 3, Value: 68},
	}
	if got := MeanBestN(entries, 2); got != 69 {
		t.Fatalf("expected mean 69 of best two, got %v", got)
	}
}

func TestPositionsAscTiesShareLowestRank(t *testing.T) {
	// Scores -4, -2, -2, 0 should rank 1, T2, T2, 4.
	positions := PositionsAsc([]float64{-4, -2, -2, 0})

	want := []struct {
		rank int
		tied bool
	}{
		{1, false},
		{2, true},
		{2, true},
		{4, false},
	}
	for i, w := range want {
		if positions[i].Rank != w.rank || positions[i].Tied != w.tied {
			t.Fatalf("position %d = %+v, want rank %d tied %v", i, positions[i], w.rank, w.tied)
		}
	}
}

func TestPositionsDescHigherWins(t *testing.T) {
	positions := PositionsDesc([]float64{120, 300, 120, 90})

	if positions[1].Rank != 1 || positions[1].Tied {
		t.Fatalf("expected outright first for 300, got %+v", positions[1])
	}
	if positions[0].Rank != 2 || !positions[0].Tied {
		t.Fatalf("expected T2 for first 120, got %+v", positions[0])
	}
	if positions[2].Rank != 2 || !positions[2].Tied {
		t.Fatalf("expected T2 for second 120, got %+v", positions[2])
	}
	if positions[3].Rank != 4 || positions[3].Tied {
		t.Fatalf("expected 4th for 90, got %+v", positions[3])
	}
}

func TestPointsShareTieBand(t *testing.T) {
	table := []int{500, 300, 200}

	// Two teams tied for first split the top two table slots.
	if got := PointsShare(table, 1, 2); got != 400 {
		t.Fatalf("expected 400, got %v", got)
	}
	// A tie at position 3 two wide runs past the table end; missing slots
	// contribute zero.
	if got := PointsShare(table, 3, 2); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestPayoutShareTieBand(t *testing.T) {
	table := []float64{10000, 6000, 4000}
	if got := PayoutShare(table, 1, 2); got != 8000 {
		t.Fatalf("expected 8000, got %v", got)
	}
	if got := PayoutShare(table, 4, 1); got != 0 {
		t.Fatalf("expected 0 past table end, got %v", got)
	}
}

func TestPointsShareTieBandFromTierTables(t *testing.T) {
	// Two teams tied at position 3 in points = [10,8,6,4] each get 5.
	table := []int{10, 8, 6, 4}
	if got := PointsShare(table, 3, 2); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
}
