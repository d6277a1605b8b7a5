package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/cron"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/live"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

type stubJob struct {
	name string
	res  cron.Result
	err  error
}

func (j *stubJob) Name() string { return j.name }

func (j *stubJob) Run(context.Context) (cron.Result, error) { return j.res, j.err }

// failingPingStore reports the database as unreachable. Only Ping is called
// through it.
type failingPingStore struct {
	store.Store
}

func (failingPingStore) Ping(context.Context) error { return errors.New("connection refused") }

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// apiSeed returns a store snapshot with one tournament in play around now.
func apiSeed(now time.Time) store.Seed {
	return store.Seed{
		Seasons: []domain.Season{{ID: "s25", Year: 2025, Number: 1}},
		Tours: []domain.Tour{
			{ID: "pgc", SeasonID: "s25", Name: "PGC Tour", ShortForm: "PGC"},
			{ID: "clt", SeasonID: "s25", Name: "Coolangatta Tour", ShortForm: "CLT"},
		},
		Tournaments: []domain.Tournament{{
			ID:           "t1",
			SeasonID:     "s25",
			TierID:       "tier-standard",
			Name:         "Harbour Classic",
			CoursePar:    72,
			StartDate:    now.Add(-24 * time.Hour),
			EndDate:      now.Add(48 * time.Hour),
			CurrentRound: intPtr(2),
			LivePlay:     true,
			TourIDs:      []string{"pgc"},
		}},
		Golfers: []domain.Golfer{
			{ID: 1, ApiID: 101, TournamentID: "t1", PlayerName: "Aaron Rai", Group: 1, Position: "1", Score: intPtr(-6), Today: intPtr(-2), Thru: intPtr(9)},
			{ID: 2, ApiID: 102, TournamentID: "t1", PlayerName: "Ben An", Group: 2, Position: "2", Score: intPtr(-4), Today: intPtr(-1), Thru: intPtr(11)},
		},
		Teams: []domain.Team{
			{ID: 1, TournamentID: "t1", TourCardID: "card-a", GolferIDs: []int{101, 102}, Score: floatPtr(-5), Position: "1"},
		},
		TourCards: []domain.TourCard{
			{ID: "card-a", SeasonID: "s25", TourID: "pgc", DisplayName: "Alpha", Points: 290, Earnings: 48000},
			{ID: "card-b", SeasonID: "s25", TourID: "pgc", DisplayName: "Beta", Points: 420, Earnings: 61000},
			{ID: "card-c", SeasonID: "s25", TourID: "clt", DisplayName: "Gamma", Points: 510, Earnings: 72000},
		},
	}
}

type serverOptions struct {
	jobs   []cron.Job
	store  store.Store
	liveSv *live.Service
	hub    *live.Hub
	ready  func() bool
	secret string
}

func newTestServer(t *testing.T, opts serverOptions) *httptest.Server {
	t.Helper()
	if opts.store == nil {
		opts.store = store.NewMemoryStore()
	}
	h := NewHandler(HandlerConfig{
		Runner: cron.NewRunner(nil, nil),
		Jobs:   opts.jobs,
		Live:   opts.liveSv,
		Hub:    opts.hub,
		Store:  opts.store,
		Ready:  opts.ready,
	})
	router := NewRouter(h, RouterConfig{
		CORSOrigins: []string{"*"},
		CronSecret:  opts.secret,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type testEnvelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	RequestID string          `json:"requestId"`
}

func getEnvelope(t *testing.T, srv *httptest.Server, path string, headers map[string]string) (int, testEnvelope) {
	t.Helper()
	req, err := nethttp.NewRequest(nethttp.MethodGet, srv.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env testEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope from %s: %v", body, err)
	}
	return resp.StatusCode, env
}
