// Package cron implements the batch stages that score the league: group
// assignment, golfer update, team update, standings update, and the optional
// finish-probability simulation. Every stage is idempotent and safe to
// re-run; the scheduler's retry cadence is the recovery mechanism.
package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/metrics"
)

// ErrNothingToDo signals a missing precondition the scheduler will satisfy on
// a later cadence (no current season, no tournament in the window). Triggers
// map it to a 404 envelope.
var ErrNothingToDo = errors.New("nothing to do")

// Result is the outcome of one job invocation, surfaced in the trigger
// response envelope.
type Result struct {
	Job        string `json:"job"`
	RunID      string `json:"runId"`
	Processed  int    `json:"processed"`
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	Failed     int    `json:"failed"`
	Skipped    bool   `json:"skipped,omitempty"`
	Message    string `json:"message,omitempty"`
	DurationMS int64  `json:"durationMs"`
}

// Job is one idempotent batch stage.
type Job interface {
	Name() string
	Run(ctx context.Context) (Result, error)
}

// Runner executes jobs one at a time per job name, stamps every invocation
// with a run id, and records cycle metrics. Overlapping triggers of the same
// job are rejected with a skipped result; idempotence makes the reject safe.
type Runner struct {
	logger   *slog.Logger
	recorder *metrics.Recorder

	mu      sync.Mutex
	running map[string]bool
}

// NewRunner constructs a Runner. Both collaborators may be nil in tests.
func NewRunner(logger *slog.Logger, recorder *metrics.Recorder) *Runner {
	return &Runner{
		logger:   logger,
		recorder: recorder,
		running:  make(map[string]bool),
	}
}

// Run executes job unless the same job is already in flight.
func (r *Runner) Run(ctx context.Context, job Job) (Result, error) {
	name := job.Name()
	if !r.tryAcquire(name) {
		return Result{Job: name, Skipped: true, Message: "already running"}, nil
	}
	defer r.release(name)

	runID := uuid.NewString()
	logger := r.logger
	if logger != nil {
		logger = logger.With(
			slog.String(logging.FieldJob, name),
			slog.String(logging.FieldRunID, runID),
		)
	}
	ctx = logging.WithLogger(ctx, logger)

	start := time.Now()
	result, err := job.Run(ctx)
	elapsed := time.Since(start)

	result.Job = name
	result.RunID = runID
	result.DurationMS = elapsed.Milliseconds()

	if errors.Is(err, ErrNothingToDo) {
		r.recorder.RecordJobCycle(name, elapsed, nil)
		logging.Info(logger, "job found nothing to do", slog.String("reason", err.Error()))
		return result, err
	}
	r.recorder.RecordJobCycle(name, elapsed, err)
	if err != nil {
		logging.Error(logger, "job failed", err,
			slog.Int64(logging.FieldDurationMS, result.DurationMS))
		return result, err
	}

	r.recorder.RecordJobEntities(name, result.Created+result.Updated, result.Failed)
	logging.Info(logger, "job finished",
		slog.Int(logging.FieldCount, result.Processed),
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("failed", result.Failed),
		slog.Bool("skipped", result.Skipped),
		slog.Int64(logging.FieldDurationMS, result.DurationMS),
	)
	return result, nil
}

func (r *Runner) tryAcquire(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running[name] {
		return false
	}
	r.running[name] = true
	return true
}

func (r *Runner) release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.running, name)
}
