package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
)

const defaultScheduleInterval = 5 * time.Minute

// Scheduler drives the in-play pipeline on a fixed interval: golfer update
// then team update, in order, so team aggregates always follow fresh golfer
// state. The HTTP triggers stay available either way; the scheduler covers
// deployments without an external cron.
type Scheduler struct {
	runner   *Runner
	pipeline []Job
	logger   *slog.Logger
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the schedule loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the loop has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// NewScheduler constructs a Scheduler running jobs in pipeline order.
func NewScheduler(runner *Runner, pipeline []Job, logger *slog.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultScheduleInterval
	}
	return &Scheduler{
		runner:   runner,
		pipeline: pipeline,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins the schedule loop until the context is cancelled or Stop is
// called.
func (s *Scheduler) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	s.ticker = time.NewTicker(s.interval)

	go func() {
		logging.Info(s.logger, "scheduler started", slog.Int64(logging.FieldDurationMS, s.interval.Milliseconds()))
		// First cycle on boot so a fresh deploy catches up immediately.
		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				s.stopTicker()
				logging.Info(s.logger, "scheduler stopped")
				return
			case <-s.done:
				s.stopTicker()
				logging.Info(s.logger, "scheduler stopped")
				return
			case <-s.ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the schedule loop.
func (s *Scheduler) Stop(ctx context.Context) error {
	_ = ctx
	s.stopOnce.Do(func() {
		close(s.done)
		s.stopTicker()
	})
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	s.recordAttempt(start)
	for _, job := range s.pipeline {
		_, err := s.runner.Run(ctx, job)
		if errors.Is(err, ErrNothingToDo) {
			// Nothing in play; the rest of the pipeline would find the same.
			break
		}
		if err != nil {
			s.recordFailure(err, start)
			logging.Error(s.logger, "scheduled cycle failed", err,
				slog.String(logging.FieldJob, job.Name()),
				slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
			return
		}
	}
	s.recordSuccess(start)
}

func (s *Scheduler) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
}

func (s *Scheduler) recordAttempt(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastAttempt = at
}

func (s *Scheduler) recordSuccess(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = at
}

func (s *Scheduler) recordFailure(err error, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures++
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
