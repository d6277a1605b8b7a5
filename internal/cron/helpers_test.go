package cron

import (
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

// testNow sits mid-tournament: round two Friday afternoon of the seeded
// April event.
var testNow = time.Date(2025, 4, 11, 15, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func testCronConfig() config.CronConfig {
	return config.CronConfig{BatchSize: 3, BatchDelay: 0}
}

func testGroupsConfig() config.GroupsConfig {
	return config.GroupsConfig{
		Shares:         [4]float64{0.10, 0.175, 0.225, 0.25},
		Caps:           [4]int{10, 16, 22, 30},
		OverflowPolicy: config.OverflowAlternate,
	}
}

// baseSeed is one season with a single tour and a standard-tier tournament
// running April 10-13, par 72.
func baseSeed() store.Seed {
	return store.Seed{
		Seasons: []domain.Season{{ID: "s25", Year: 2025, Number: 1}},
		Tours: []domain.Tour{
			{ID: "pgc", SeasonID: "s25", Name: "PGC Tour", ShortForm: "PGC"},
		},
		Tiers: []domain.Tier{
			{
				ID:       "tier-standard",
				SeasonID: "s25",
				Name:     "Standard",
				Points:   []int{500, 300, 200, 100},
				Payouts:  []float64{10000, 6000, 4000, 2000},
			},
		},
		Tournaments: []domain.Tournament{
			{
				ID:        "t1",
				SeasonID:  "s25",
				TierID:    "tier-standard",
				ApiID:     "ev-100",
				Name:      "Spring Invitational",
				CoursePar: 72,
				StartDate: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC),
				TourIDs:   []string{"pgc"},
			},
		},
	}
}

func seedStore(seed store.Seed) *store.MemoryStore {
	s := store.NewMemoryStore()
	s.Load(seed)
	return s
}
