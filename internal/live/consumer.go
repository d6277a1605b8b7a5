package live

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
)

const (
	consumerReadCount = 16
	consumerBlock     = 5 * time.Second
)

// Consumer tails the leaderboard stream and forwards documents to the hub.
// Read errors back off exponentially and never give up; a Redis restart
// resumes the tail where it left off.
type Consumer struct {
	client *redis.Client
	hub    *Hub
	logger *slog.Logger
}

// NewConsumer wraps an established Redis client.
func NewConsumer(client *redis.Client, h *Hub, logger *slog.Logger) *Consumer {
	return &Consumer{client: client, hub: h, logger: logger}
}

// Run tails the stream until the context is cancelled. New consumers start
// at the stream tip; replaying stale leaderboards helps nobody.
func (c *Consumer) Run(ctx context.Context) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 0

	lastID := "$"
	logging.Info(c.logger, "stream consumer started", slog.String("stream", StreamLeaderboard))
	for {
		if ctx.Err() != nil {
			logging.Info(c.logger, "stream consumer stopped")
			return
		}
		streams, err := c.client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{StreamLeaderboard, lastID},
			Count:   consumerReadCount,
			Block:   consumerBlock,
		}).Result()
		if errors.Is(err, redis.Nil) {
			policy.Reset()
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				logging.Info(c.logger, "stream consumer stopped")
				return
			}
			wait := policy.NextBackOff()
			logging.Warn(c.logger, "stream read failed, backing off",
				slog.String("stream", StreamLeaderboard),
				slog.Int64(logging.FieldDurationMS, wait.Milliseconds()),
				slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
			case <-time.After(wait):
			}
			continue
		}
		policy.Reset()
		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				c.forward(msg)
			}
		}
	}
}

func (c *Consumer) forward(msg redis.XMessage) {
	data, ok := msg.Values["data"].(string)
	if !ok {
		logging.Warn(c.logger, "stream message without data field", slog.String("message_id", msg.ID))
		return
	}
	var lb Leaderboard
	if err := json.Unmarshal([]byte(data), &lb); err != nil {
		logging.Warn(c.logger, "stream message decode failed",
			slog.String("message_id", msg.ID), slog.String("error", err.Error()))
		return
	}
	c.hub.Broadcast(lb)
}
