package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// rateLimitedProvider wraps a DataProvider and enforces a minimum interval
// between upstream calls across all feeds.
type rateLimitedProvider struct {
	next     DataProvider
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	last time.Time
}

// NewRateLimitedProvider returns a DataProvider that spaces calls at least
// interval apart to stay under upstream quotas. Calls block until their slot
// arrives.
func NewRateLimitedProvider(next DataProvider, interval time.Duration, logger *slog.Logger) DataProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
	}
}

// reserve claims the next call slot and returns how long to wait for it.
func (p *rateLimitedProvider) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	slot := p.last.Add(p.interval)
	if slot.Before(now) {
		slot = now
	}
	p.last = slot
	return slot.Sub(now)
}

func (p *rateLimitedProvider) wait(ctx context.Context, feed string) error {
	if p == nil || p.next == nil {
		if p != nil && p.logger != nil {
			p.logger.Warn("provider unavailable", slog.String("provider", "rate-limited"))
		}
		return ErrProviderUnavailable
	}

	delay := p.reserve()
	if delay <= 0 {
		return nil
	}
	if p.logger != nil {
		p.logger.Info("rate-limited provider waiting",
			slog.String("provider", "rate-limited"),
			slog.String("feed", feed),
			slog.String("delay", delay.String()),
		)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func (p *rateLimitedProvider) FetchField(ctx context.Context) (*Field, error) {
	if err := p.wait(ctx, "field"); err != nil {
		return nil, err
	}
	return p.next.FetchField(ctx)
}

func (p *rateLimitedProvider) FetchLive(ctx context.Context) (*Live, error) {
	if err := p.wait(ctx, "in-play"); err != nil {
		return nil, err
	}
	return p.next.FetchLive(ctx)
}

func (p *rateLimitedProvider) FetchRankings(ctx context.Context) ([]Ranking, error) {
	if err := p.wait(ctx, "rankings"); err != nil {
		return nil, err
	}
	return p.next.FetchRankings(ctx)
}
