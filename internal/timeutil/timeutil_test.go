package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestTeeTimePassed(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		teeTime string
		want    bool
	}{
		{"2025-04-10 08:15", true},
		{"2025-04-10 12:00", true},
		{"2025-04-10 13:40", false},
		{"", false},
		{"not a time", false},
	}
	for _, tc := range cases {
		if got := TeeTimePassed(tc.teeTime, now); got != tc.want {
			t.Fatalf("TeeTimePassed(%q) = %v, want %v", tc.teeTime, got, tc.want)
		}
	}
}

func TestTeeTimeFuture(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	if !TeeTimeFuture("2025-04-11 07:00", now) {
		t.Fatalf("expected tomorrow's tee time to be future")
	}
	if TeeTimeFuture("2025-04-10 07:00", now) {
		t.Fatalf("expected this morning's tee time not to be future")
	}
	if TeeTimeFuture("", now) {
		t.Fatalf("expected empty tee time not to be future")
	}
}
