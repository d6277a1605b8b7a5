package datagolf

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Scheffler, Scottie", "Scottie Scheffler"},
		{"Van Rooyen, Erik", "Erik Van Rooyen"},
		{"Ludvig Aberg", "Ludvig Aberg"},
		{"  Day,  Jason ", "Jason Day"},
	}
	for _, tc := range cases {
		if got := normalizeName(tc.in); got != tc.want {
			t.Fatalf("normalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMapFieldDefaultsMissingTeeTimes(t *testing.T) {
	tee := "2025-04-10 08:15"
	field := mapField(fieldResponse{
		EventName:    "Test Open",
		CurrentRound: 1,
		Field: []fieldGolferResponse{
			{DgID: 1, PlayerName: "One, Golfer", R1TeeTime: &tee},
		},
	})

	g := field.Golfers[0]
	if g.TeeTimes[0] != tee {
		t.Fatalf("expected round one tee time, got %q", g.TeeTimes[0])
	}
	for r := 1; r < 4; r++ {
		if g.TeeTimes[r] != "" {
			t.Fatalf("expected empty tee time for round %d, got %q", r+1, g.TeeTimes[r])
		}
	}
}

func TestMapLiveTrimsPosition(t *testing.T) {
	pos := " T3 "
	live := mapLive(inPlayResponse{
		Data: []inPlayGolferResponse{{DgID: 1, PlayerName: "One, Golfer", CurrentPos: pos}},
	})
	if live.Golfers[0].Position != "T3" {
		t.Fatalf("expected trimmed position, got %q", live.Golfers[0].Position)
	}
}
