package live

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// StreamLeaderboard is the Redis stream carrying leaderboard updates.
const StreamLeaderboard = "leaderboard.updates"

// streamMaxLen bounds the stream; consumers only care about recent entries.
const streamMaxLen = 256

// Publisher appends leaderboard updates to the Redis stream. A nil
// *Publisher drops updates.
type Publisher struct {
	client *redis.Client
}

// NewPublisher wraps an established Redis client.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish appends the document to the update stream.
func (p *Publisher) Publish(ctx context.Context, lb Leaderboard) error {
	if p == nil || p.client == nil {
		return nil
	}
	data, err := json.Marshal(lb)
	if err != nil {
		return fmt.Errorf("marshal leaderboard update: %w", err)
	}
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamLeaderboard,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":          string(data),
			"tournament_id": lb.TournamentID,
			"round":         strconv.Itoa(lb.Round),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish leaderboard update: %w", err)
	}
	return nil
}
