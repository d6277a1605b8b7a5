package server

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/live"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

// liveComponents is the Redis-backed distribution layer. Without a
// configured Redis only the service itself is built, serving reads straight
// from the store, and the websocket endpoint reports live updates as
// disabled.
type liveComponents struct {
	client   *redis.Client
	hub      *live.Hub
	consumer *live.Consumer
	service  *live.Service
}

func buildLive(cfg config.Config, st store.Store, logger *slog.Logger) liveComponents {
	if !cfg.Redis.Enabled() {
		logging.Info(logger, "redis not configured, live updates disabled")
		return liveComponents{service: live.NewService(st, nil, nil)}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	hub := live.NewHub(logger)
	return liveComponents{
		client:   client,
		hub:      hub,
		consumer: live.NewConsumer(client, hub, logger),
		service:  live.NewService(st, live.NewCache(client), live.NewPublisher(client)),
	}
}
