// Package server wires configuration, store, provider, jobs, the live layer
// and the HTTP surface into one runnable service.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/cron"
	httpapi "github.com/dreamsbydutch/pgc-tour-sub006/internal/http"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/metrics"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/sim"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

var metricsSetup = metrics.Setup

// Server owns every long-lived component and coordinates startup and
// shutdown.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	recorder *metrics.Recorder

	store store.Store
	live  liveComponents

	scheduler *cron.Scheduler

	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a fully wired server. The context bounds store connection
// retries.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsStop := buildMetrics(cfg, logger)

	st, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	provider := newProviderFactory(logger, recorder).build(cfg)
	lv := buildLive(cfg, st, logger)

	golfersJob := cron.NewGolfersJob(st, provider, cfg.Cron, cfg.Groups)
	teamsJob := cron.NewTeamsJob(st, cfg.Cron)
	jobs := []cron.Job{
		cron.NewGroupsJob(st, provider, cfg.Groups),
		golfersJob,
		teamsJob,
		cron.NewStandingsJob(st, cfg.Cron),
		sim.NewJob(st, cfg.Sim, cfg.Cron),
		lv.service,
	}

	runner := cron.NewRunner(logger, recorder)

	var scheduler *cron.Scheduler
	var ready func() bool
	if cfg.Cron.ScheduleEnabled {
		// Team aggregates read golfer state, so the cycle runs golfers
		// before teams; the live refresh tails the cycle.
		pipeline := []cron.Job{golfersJob, teamsJob, lv.service}
		scheduler = cron.NewScheduler(runner, pipeline, logger, cfg.Cron.ScheduleInterval)
		ready = func() bool { return scheduler.Status().IsReady() }
	}

	handler := httpapi.NewHandler(httpapi.HandlerConfig{
		Runner: runner,
		Jobs:   jobs,
		Live:   lv.service,
		Hub:    lv.hub,
		Store:  st,
		Ready:  ready,
		Logger: logger,
	})
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		CronSecret:  cfg.Cron.Secret,
		Recorder:    recorder,
		Logger:      logger,
	})

	return &Server{
		cfg:       cfg,
		logger:    logger,
		recorder:  recorder,
		store:     st,
		live:      lv,
		scheduler: scheduler,
		httpServer: netHTTPServer{srv: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		}},
		metricsServer: metricsSrv,
		metricsStop:   metricsStop,
	}, nil
}

// Run starts every component, blocks until the context is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()

	if s.live.hub != nil {
		go s.live.hub.Run(ctx)
	}
	if s.live.consumer != nil {
		go s.live.consumer.Run(ctx)
	}
	if s.scheduler != nil {
		s.scheduler.Start(ctx)
	}

	s.startHTTP(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startHTTP(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.scheduler != nil {
		if err := s.scheduler.Stop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "scheduler stop failed", slog.String("error", err.Error()))
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.String("error", err.Error()))
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.String("error", err.Error()))
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "http server shutdown failed", err)
	}

	if s.live.client != nil {
		if err := s.live.client.Close(); err != nil {
			logging.Warn(s.logger, "redis close failed", slog.String("error", err.Error()))
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logging.Warn(s.logger, "store close failed", slog.String("error", err.Error()))
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	telCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), telCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry",
			slog.String("error", err.Error()))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && telCfg.Enabled {
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:    ":" + telCfg.Port,
			Handler: handler,
		}}
	}
	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, name+" server starting", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", slog.String("error", err.Error()))
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
