package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:        "0",
		Provider:    "fixture",
		CORSOrigins: []string{"*"},
		Cron: config.CronConfig{
			BatchSize:  10,
			BatchDelay: time.Millisecond,
		},
		Sim: config.SimConfig{Iterations: 50, RoundStdDev: 2.75},
	}
}

func newTestHandler(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	s, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s.Handler()
}

func TestNewServesHealth(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t, testConfig()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestTriggersRegisteredThroughWiring(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t, testConfig()))
	defer srv.Close()

	// Every trigger resolves to a job; the empty store makes each one a
	// nothing-to-do 404 rather than an unknown-job 404.
	for _, name := range []string{
		"create-groups", "update-golfers", "update-teams",
		"update-standings", "simulate", "refresh-leaderboard",
	} {
		resp, err := srv.Client().Get(srv.URL + "/cron/" + name)
		if err != nil {
			t.Fatalf("trigger %s: %v", name, err)
		}
		var env struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode %s response: %v", name, err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("trigger %s: expected 404, got %d", name, resp.StatusCode)
		}
		if env.Success || !strings.Contains(env.Error, "nothing to do") {
			t.Fatalf("trigger %s: unexpected envelope %+v", name, env)
		}
	}

	resp, err := srv.Client().Get(srv.URL + "/cron/not-a-job")
	if err != nil {
		t.Fatalf("unknown trigger: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown job, got %d", resp.StatusCode)
	}
}

func TestWebsocketDisabledWithoutRedis(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t, testConfig()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/ws/leaderboard")
	if err != nil {
		t.Fatalf("ws request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without redis, got %d", resp.StatusCode)
	}
}

func TestReadinessTracksScheduler(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t, testConfig()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ready without a scheduler, got %d", resp.StatusCode)
	}

	cfg := testConfig()
	cfg.Cron.ScheduleEnabled = true
	cfg.Cron.ScheduleInterval = time.Hour
	srv2 := httptest.NewServer(newTestHandler(t, cfg))
	defer srv2.Close()

	// The scheduler has not started, so no cycle has succeeded yet.
	resp, err = srv2.Client().Get(srv2.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected not ready before the first cycle, got %d", resp.StatusCode)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s, err := New(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after cancellation")
	}
}
